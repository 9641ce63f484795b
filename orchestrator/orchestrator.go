// Package orchestrator drives the manage-groups flow: every user action
// mutates the local mirror and issues a corresponding call through the
// persistence gateway. Creates are non-optimistic (the mirror is only
// updated after the backend assigns an identifier); deletes and edits
// are optimistic (the mirror is mutated first and a remote failure is
// logged, never rolled back).
package orchestrator

import (
	"context"
	"log"
	"math"
	"strconv"
	"strings"
	"sync"

	"grouptracker-backend/mirror"
	"grouptracker-backend/models"
)

// Gateway is the slice of the persistence gateway the orchestrator
// drives. Fetch is deliberately absent: the mirror is the sole read
// model and remote collections are only written to.
type Gateway interface {
	CreateGroup(ctx context.Context, in models.NewGroup) (models.GroupRecord, error)
	DeleteGroup(ctx context.Context, id string) error
	CreateExpense(ctx context.Context, in models.NewExpense) (models.ExpenseRecord, error)
	UpdateExpense(ctx context.Context, id string, patch models.ExpensePatch) (models.ExpenseRecord, error)
	DeleteExpense(ctx context.Context, id string) error
}

// Orchestrator holds one client's mirror snapshot, loaded once at
// construction the way the original view loads it at mount.
type Orchestrator struct {
	key    string
	email  string
	store  mirror.Store
	remote Gateway

	mu     sync.Mutex
	groups []models.Group

	inflight sync.WaitGroup
}

// New loads the mirror snapshot and email slot for key.
func New(ctx context.Context, key string, store mirror.Store, remote Gateway) (*Orchestrator, error) {
	groups, err := store.LoadGroups(ctx, key)
	if err != nil {
		return nil, err
	}
	email, err := store.LoadEmail(ctx, key)
	if err != nil {
		return nil, err
	}

	return &Orchestrator{
		key:    key,
		email:  email,
		store:  store,
		remote: remote,
		groups: groups,
	}, nil
}

// CreateGroup creates a group remotely, then mirrors it locally with the
// backend-assigned identifier. No mirror mutation happens on failure, so
// a group without a valid identifier is never visible.
func (o *Orchestrator) CreateGroup(ctx context.Context, name string) (models.Group, error) {
	if o.email == "" {
		return models.Group{}, &ValidationError{Message: "User email not found. Please log in again."}
	}
	if !models.ValidGroupName(name) {
		return models.Group{}, &ValidationError{Message: "Invalid group name: " + strconv.Quote(name)}
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	for _, g := range o.groups {
		if g.GroupName == name {
			return models.Group{}, &ValidationError{Message: "A group for " + strconv.Quote(name) + " already exists."}
		}
	}

	record, err := o.remote.CreateGroup(ctx, models.NewGroup{
		GroupName: name,
		CreatedBy: o.email,
	})
	if err != nil {
		return models.Group{}, err
	}

	group := models.Group{
		GroupID:   record.ID.String(),
		GroupName: name,
		CreatedBy: o.email,
		Expenses:  []models.Expense{},
	}
	o.groups = append(o.groups, group)
	if err := o.store.SaveGroups(ctx, o.key, o.groups); err != nil {
		return models.Group{}, err
	}
	return group, nil
}

// AddExpense creates an expense remotely against the named group's real
// identifier, then appends it to that group's sequence in the mirror.
// Groups are resolved by name; the mirror's name uniqueness keeps that
// unambiguous.
func (o *Orchestrator) AddExpense(ctx context.Context, groupName, amount, description string) (models.Expense, error) {
	value, err := parseAmount(amount)
	if err != nil {
		return models.Expense{}, err
	}
	if strings.TrimSpace(description) == "" {
		return models.Expense{}, &ValidationError{Message: "Description is required."}
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	idx := -1
	for i, g := range o.groups {
		if g.GroupName == groupName {
			idx = i
			break
		}
	}
	if idx < 0 {
		return models.Expense{}, &ValidationError{Message: "Group " + strconv.Quote(groupName) + " not found in local state."}
	}

	record, err := o.remote.CreateExpense(ctx, models.NewExpense{
		Amount:      value,
		Description: description,
		GroupID:     o.groups[idx].GroupID,
		CreatedBy:   o.email,
	})
	if err != nil {
		return models.Expense{}, err
	}

	expense := models.Expense{
		ExpenseID:   record.ID.String(),
		Amount:      record.Amount,
		Description: record.Description,
	}
	o.groups[idx].Expenses = append(o.groups[idx].Expenses, expense)
	if err := o.store.SaveGroups(ctx, o.key, o.groups); err != nil {
		return models.Expense{}, err
	}
	return expense, nil
}

// DeleteGroup removes the group from the mirror immediately and issues
// the remote delete in the background. Local delete always wins: a
// remote failure is logged and the group is not restored. Deleting an
// absent identifier is a no-op on the mirror.
func (o *Orchestrator) DeleteGroup(ctx context.Context, groupID string) error {
	found := false
	o.mu.Lock()
	kept := o.groups[:0]
	for _, g := range o.groups {
		if g.GroupID != groupID {
			kept = append(kept, g)
		} else {
			found = true
		}
	}
	o.groups = kept
	err := o.store.SaveGroups(ctx, o.key, o.groups)
	o.mu.Unlock()
	if err != nil {
		return err
	}
	if !found {
		return nil
	}

	o.background(func() {
		if err := o.remote.DeleteGroup(context.Background(), groupID); err != nil {
			log.Printf("❌ Remote delete of group %s failed: %v", groupID, err)
		}
	})
	return nil
}

// DeleteExpense removes one expense from one group in the mirror, then
// issues the remote delete in the background with the same
// local-delete-wins policy as DeleteGroup.
func (o *Orchestrator) DeleteExpense(ctx context.Context, groupID, expenseID string) error {
	found := false
	o.mu.Lock()
	for i, g := range o.groups {
		if g.GroupID != groupID {
			continue
		}
		kept := g.Expenses[:0]
		for _, e := range g.Expenses {
			if e.ExpenseID != expenseID {
				kept = append(kept, e)
			} else {
				found = true
			}
		}
		o.groups[i].Expenses = kept
		break
	}
	err := o.store.SaveGroups(ctx, o.key, o.groups)
	o.mu.Unlock()
	if err != nil {
		return err
	}
	if !found {
		return nil
	}

	o.background(func() {
		if err := o.remote.DeleteExpense(context.Background(), expenseID); err != nil {
			log.Printf("❌ Remote delete of expense %s failed: %v", expenseID, err)
		}
	})
	return nil
}

// EditExpense mutates the expense in the mirror immediately, then issues
// the remote update in the background as an explicit patch. A
// non-numeric amount rejects the whole edit: no mutation, no remote
// call. A remote failure is logged, not reverted.
func (o *Orchestrator) EditExpense(ctx context.Context, groupID, expenseID, amount, description string) error {
	value, err := parseAmount(amount)
	if err != nil {
		return err
	}

	found := false
	o.mu.Lock()
	for i, g := range o.groups {
		if g.GroupID != groupID {
			continue
		}
		for j, e := range g.Expenses {
			if e.ExpenseID == expenseID {
				o.groups[i].Expenses[j].Amount = value
				o.groups[i].Expenses[j].Description = description
				found = true
			}
		}
		break
	}
	saveErr := o.store.SaveGroups(ctx, o.key, o.groups)
	o.mu.Unlock()
	if saveErr != nil {
		return saveErr
	}
	if !found {
		return nil
	}

	o.background(func() {
		patch := models.ExpensePatch{Amount: &value, Description: &description}
		if _, err := o.remote.UpdateExpense(context.Background(), expenseID, patch); err != nil {
			log.Printf("❌ Remote update of expense %s failed: %v", expenseID, err)
		}
	})
	return nil
}

func (o *Orchestrator) background(fn func()) {
	o.inflight.Add(1)
	go func() {
		defer o.inflight.Done()
		fn()
	}()
}

// Wait blocks until in-flight background gateway calls have finished.
// Used on shutdown and by tests.
func (o *Orchestrator) Wait() {
	o.inflight.Wait()
}

func parseAmount(amount string) (float64, error) {
	value, err := strconv.ParseFloat(strings.TrimSpace(amount), 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) || value < 0 {
		return 0, &ValidationError{Message: "Please enter a valid amount."}
	}
	return value, nil
}
