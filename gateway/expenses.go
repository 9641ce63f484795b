package gateway

import (
	"context"

	"grouptracker-backend/models"

	"github.com/google/uuid"
)

// CreateExpense persists a new expense and returns the full record
// including the backend-assigned identifier.
func (g *Gateway) CreateExpense(ctx context.Context, in models.NewExpense) (models.ExpenseRecord, error) {
	gid, err := uuid.Parse(in.GroupID)
	if err != nil {
		return models.ExpenseRecord{}, persistenceErr("create expense", err)
	}

	record := models.ExpenseRecord{
		Amount:      in.Amount,
		Description: in.Description,
		GroupID:     gid,
		CreatedBy:   in.CreatedBy,
	}
	if err := g.db.WithContext(ctx).Create(&record).Error; err != nil {
		return models.ExpenseRecord{}, persistenceErr("create expense", err)
	}
	return record, nil
}

// FetchExpenses returns all expense records, filtered by group when
// groupID is non-empty.
func (g *Gateway) FetchExpenses(ctx context.Context, groupID string) ([]models.ExpenseRecord, error) {
	query := g.db.WithContext(ctx).Order("created_at")
	if groupID != "" {
		gid, err := uuid.Parse(groupID)
		if err != nil {
			return nil, persistenceErr("fetch expenses", err)
		}
		query = query.Where("group_id = ?", gid)
	}

	var records []models.ExpenseRecord
	if err := query.Find(&records).Error; err != nil {
		return nil, persistenceErr("fetch expenses", err)
	}
	return records, nil
}

// UpdateExpense applies the non-nil patch fields to the record and
// returns the updated record. An unknown identifier is an error.
func (g *Gateway) UpdateExpense(ctx context.Context, id string, patch models.ExpensePatch) (models.ExpenseRecord, error) {
	eid, err := uuid.Parse(id)
	if err != nil {
		return models.ExpenseRecord{}, persistenceErr("update expense", err)
	}

	var record models.ExpenseRecord
	if err := g.db.WithContext(ctx).First(&record, "id = ?", eid).Error; err != nil {
		return models.ExpenseRecord{}, persistenceErr("update expense", err)
	}

	updates := map[string]interface{}{}
	if patch.Amount != nil {
		updates["amount"] = *patch.Amount
	}
	if patch.Description != nil {
		updates["description"] = *patch.Description
	}
	if len(updates) > 0 {
		if err := g.db.WithContext(ctx).Model(&record).Updates(updates).Error; err != nil {
			return models.ExpenseRecord{}, persistenceErr("update expense", err)
		}
	}
	return record, nil
}

// DeleteExpense removes the record.
func (g *Gateway) DeleteExpense(ctx context.Context, id string) error {
	eid, err := uuid.Parse(id)
	if err != nil {
		return persistenceErr("delete expense", err)
	}
	if err := g.db.WithContext(ctx).Delete(&models.ExpenseRecord{}, "id = ?", eid).Error; err != nil {
		return persistenceErr("delete expense", err)
	}
	return nil
}
