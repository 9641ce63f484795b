package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GroupRecord is a row in the remote "groups" collection. The backend
// assigns the identifier; callers never set it.
type GroupRecord struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	GroupName string    `gorm:"not null;size:50" json:"group_name"`
	CreatedBy string    `gorm:"not null;size:255" json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

func (g *GroupRecord) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}

// NewGroup carries the required fields for creating a group record,
// minus the identifier.
type NewGroup struct {
	GroupName string `json:"group_name"`
	CreatedBy string `json:"created_by"`
}

// GroupPatch is a partial update; only non-nil fields apply.
type GroupPatch struct {
	GroupName *string `json:"group_name,omitempty"`
}

// Group is the mirror's view of a group: the remote identifier plus the
// insertion-ordered expense list used for rendering.
type Group struct {
	GroupID   string    `json:"group_id"`
	GroupName string    `json:"group_name"`
	CreatedBy string    `json:"created_by"`
	Expenses  []Expense `json:"expenses"`
}

// GroupNames is the fixed set of categories a group can be created for.
// A group's name doubles as its natural key in the mirror.
var GroupNames = []string{"grocery", "travelling", "rent", "bills"}

func ValidGroupName(name string) bool {
	for _, n := range GroupNames {
		if n == name {
			return true
		}
	}
	return false
}

// Request structs
type CreateGroupRequest struct {
	GroupName string `json:"group_name" binding:"required"`
}
