package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ExpenseRecord is a row in the remote "expenses" collection.
type ExpenseRecord struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Amount      float64   `gorm:"type:decimal(12,2);not null" json:"amount"`
	Description string    `gorm:"not null;size:255" json:"description"`
	GroupID     uuid.UUID `gorm:"type:uuid;index" json:"group_id"`
	CreatedBy   string    `gorm:"not null;size:255" json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
}

func (e *ExpenseRecord) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// NewExpense carries the required fields for creating an expense record,
// minus the identifier. GroupID is the opaque remote group identifier
// taken from the mirror.
type NewExpense struct {
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
	GroupID     string  `json:"group_id"`
	CreatedBy   string  `json:"created_by"`
}

// ExpensePatch is a partial update; only non-nil fields apply.
type ExpensePatch struct {
	Amount      *float64 `json:"amount,omitempty"`
	Description *string  `json:"description,omitempty"`
}

// Expense is the mirror's view of an expense. The identifier is the
// remote one; it is never assigned locally.
type Expense struct {
	ExpenseID   string  `json:"expense_id"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
}

// Request structs. Amounts arrive as the raw form string and are
// validated as numeric before anything else happens.
type AddExpenseRequest struct {
	GroupName   string `json:"group_name" binding:"required"`
	Amount      string `json:"amount" binding:"required"`
	Description string `json:"description" binding:"required"`
}

type EditExpenseRequest struct {
	Amount      string `json:"amount" binding:"required"`
	Description string `json:"description" binding:"required"`
}
