package gateway_test

import (
	"context"
	"path/filepath"
	"testing"

	"grouptracker-backend/gateway"
	"grouptracker-backend/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestGateway(t *testing.T) *gateway.Gateway {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "gateway.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.GroupRecord{}, &models.ExpenseRecord{}))

	return gateway.New(db)
}

func TestCreateGroupAssignsIdentifier(t *testing.T) {
	gw := newTestGateway(t)
	ctx := context.Background()

	record, err := gw.CreateGroup(ctx, models.NewGroup{GroupName: "grocery", CreatedBy: "a@x.com"})
	require.NoError(t, err)

	assert.NotEmpty(t, record.ID)
	assert.Equal(t, "grocery", record.GroupName)
	assert.Equal(t, "a@x.com", record.CreatedBy)
	assert.False(t, record.CreatedAt.IsZero())
}

func TestFetchGroups(t *testing.T) {
	gw := newTestGateway(t)
	ctx := context.Background()

	_, err := gw.CreateGroup(ctx, models.NewGroup{GroupName: "grocery", CreatedBy: "a@x.com"})
	require.NoError(t, err)
	_, err = gw.CreateGroup(ctx, models.NewGroup{GroupName: "rent", CreatedBy: "b@x.com"})
	require.NoError(t, err)

	records, err := gw.FetchGroups(ctx)
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestDeleteGroup(t *testing.T) {
	gw := newTestGateway(t)
	ctx := context.Background()

	record, err := gw.CreateGroup(ctx, models.NewGroup{GroupName: "grocery", CreatedBy: "a@x.com"})
	require.NoError(t, err)

	require.NoError(t, gw.DeleteGroup(ctx, record.ID.String()))

	records, err := gw.FetchGroups(ctx)
	require.NoError(t, err)
	assert.Empty(t, records)

	// The backend treats an unknown identifier as a no-op.
	assert.NoError(t, gw.DeleteGroup(ctx, record.ID.String()))
}

func TestUpdateGroup(t *testing.T) {
	gw := newTestGateway(t)
	ctx := context.Background()

	record, err := gw.CreateGroup(ctx, models.NewGroup{GroupName: "grocery", CreatedBy: "a@x.com"})
	require.NoError(t, err)

	name := "bills"
	updated, err := gw.UpdateGroup(ctx, record.ID.String(), models.GroupPatch{GroupName: &name})
	require.NoError(t, err)
	assert.Equal(t, "bills", updated.GroupName)
	assert.Equal(t, record.ID, updated.ID)

	_, err = gw.UpdateGroup(ctx, "0b06d47c-76a7-4b1c-a59b-0c44bd40f6b9", models.GroupPatch{GroupName: &name})
	var pErr *gateway.PersistenceError
	require.ErrorAs(t, err, &pErr)
}

func TestDeleteGroupMalformedID(t *testing.T) {
	gw := newTestGateway(t)

	err := gw.DeleteGroup(context.Background(), "not-a-uuid")

	var pErr *gateway.PersistenceError
	require.ErrorAs(t, err, &pErr)
}

func TestCreateExpense(t *testing.T) {
	gw := newTestGateway(t)
	ctx := context.Background()

	group, err := gw.CreateGroup(ctx, models.NewGroup{GroupName: "grocery", CreatedBy: "a@x.com"})
	require.NoError(t, err)

	record, err := gw.CreateExpense(ctx, models.NewExpense{
		Amount:      12.50,
		Description: "milk",
		GroupID:     group.ID.String(),
		CreatedBy:   "a@x.com",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, record.ID)
	assert.Equal(t, 12.50, record.Amount)
	assert.Equal(t, group.ID, record.GroupID)
}

func TestFetchExpensesFilterByGroup(t *testing.T) {
	gw := newTestGateway(t)
	ctx := context.Background()

	grocery, err := gw.CreateGroup(ctx, models.NewGroup{GroupName: "grocery", CreatedBy: "a@x.com"})
	require.NoError(t, err)
	rent, err := gw.CreateGroup(ctx, models.NewGroup{GroupName: "rent", CreatedBy: "a@x.com"})
	require.NoError(t, err)

	_, err = gw.CreateExpense(ctx, models.NewExpense{Amount: 12.50, Description: "milk", GroupID: grocery.ID.String(), CreatedBy: "a@x.com"})
	require.NoError(t, err)
	_, err = gw.CreateExpense(ctx, models.NewExpense{Amount: 800, Description: "march", GroupID: rent.ID.String(), CreatedBy: "a@x.com"})
	require.NoError(t, err)

	all, err := gw.FetchExpenses(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	filtered, err := gw.FetchExpenses(ctx, grocery.ID.String())
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "milk", filtered[0].Description)
}

func TestUpdateExpenseAppliesOnlyPresentFields(t *testing.T) {
	gw := newTestGateway(t)
	ctx := context.Background()

	group, err := gw.CreateGroup(ctx, models.NewGroup{GroupName: "grocery", CreatedBy: "a@x.com"})
	require.NoError(t, err)
	record, err := gw.CreateExpense(ctx, models.NewExpense{Amount: 12.50, Description: "milk", GroupID: group.ID.String(), CreatedBy: "a@x.com"})
	require.NoError(t, err)

	amount := 9.99
	updated, err := gw.UpdateExpense(ctx, record.ID.String(), models.ExpensePatch{Amount: &amount})
	require.NoError(t, err)

	assert.Equal(t, 9.99, updated.Amount)
	assert.Equal(t, "milk", updated.Description, "absent patch fields must not change")
}

func TestUpdateExpenseUnknownIdentifier(t *testing.T) {
	gw := newTestGateway(t)

	amount := 1.0
	_, err := gw.UpdateExpense(context.Background(), "0b06d47c-76a7-4b1c-a59b-0c44bd40f6b9", models.ExpensePatch{Amount: &amount})

	var pErr *gateway.PersistenceError
	require.ErrorAs(t, err, &pErr)
	assert.Contains(t, pErr.Message, "record not found")
}
