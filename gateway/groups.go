package gateway

import (
	"context"

	"grouptracker-backend/models"

	"github.com/google/uuid"
)

// CreateGroup persists a new group and returns the full record including
// the backend-assigned identifier.
func (g *Gateway) CreateGroup(ctx context.Context, in models.NewGroup) (models.GroupRecord, error) {
	record := models.GroupRecord{
		GroupName: in.GroupName,
		CreatedBy: in.CreatedBy,
	}
	if err := g.db.WithContext(ctx).Create(&record).Error; err != nil {
		return models.GroupRecord{}, persistenceErr("create group", err)
	}
	return record, nil
}

// FetchGroups returns all group records.
func (g *Gateway) FetchGroups(ctx context.Context) ([]models.GroupRecord, error) {
	var records []models.GroupRecord
	if err := g.db.WithContext(ctx).Order("created_at").Find(&records).Error; err != nil {
		return nil, persistenceErr("fetch groups", err)
	}
	return records, nil
}

// UpdateGroup applies the non-nil patch fields to the record and returns
// the updated record. An unknown identifier is an error.
func (g *Gateway) UpdateGroup(ctx context.Context, id string, patch models.GroupPatch) (models.GroupRecord, error) {
	gid, err := uuid.Parse(id)
	if err != nil {
		return models.GroupRecord{}, persistenceErr("update group", err)
	}

	var record models.GroupRecord
	if err := g.db.WithContext(ctx).First(&record, "id = ?", gid).Error; err != nil {
		return models.GroupRecord{}, persistenceErr("update group", err)
	}

	updates := map[string]interface{}{}
	if patch.GroupName != nil {
		updates["group_name"] = *patch.GroupName
	}
	if len(updates) > 0 {
		if err := g.db.WithContext(ctx).Model(&record).Updates(updates).Error; err != nil {
			return models.GroupRecord{}, persistenceErr("update group", err)
		}
	}
	return record, nil
}

// DeleteGroup removes the record. Deleting an unknown identifier is left
// to the backend, which treats it as a no-op.
func (g *Gateway) DeleteGroup(ctx context.Context, id string) error {
	gid, err := uuid.Parse(id)
	if err != nil {
		return persistenceErr("delete group", err)
	}
	if err := g.db.WithContext(ctx).Delete(&models.GroupRecord{}, "id = ?", gid).Error; err != nil {
		return persistenceErr("delete group", err)
	}
	return nil
}
