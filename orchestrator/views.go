package orchestrator

import (
	"grouptracker-backend/models"
	"grouptracker-backend/utils"
)

// DashboardExpense is one row of the dashboard's flat expense view: an
// expense annotated with its group context.
type DashboardExpense struct {
	models.Expense
	GroupID   string `json:"group_id"`
	GroupName string `json:"group_name"`
	CreatedBy string `json:"created_by"`
}

// GroupTotal summarizes one group for the dashboard's by-group view.
type GroupTotal struct {
	GroupID      string  `json:"group_id"`
	GroupName    string  `json:"group_name"`
	CreatedBy    string  `json:"created_by"`
	ExpenseCount int     `json:"expense_count"`
	Total        float64 `json:"total"`
}

// Groups returns a copy of the mirror snapshot, insertion-ordered.
func (o *Orchestrator) Groups() []models.Group {
	o.mu.Lock()
	defer o.mu.Unlock()

	out := make([]models.Group, len(o.groups))
	copy(out, o.groups)
	return out
}

// Group returns one group from the mirror by its remote identifier.
func (o *Orchestrator) Group(groupID string) (models.Group, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()

	for _, g := range o.groups {
		if g.GroupID == groupID {
			return g, true
		}
	}
	return models.Group{}, false
}

// AllExpenses flattens every group's expenses for the dashboard's
// by-expense view.
func (o *Orchestrator) AllExpenses() []DashboardExpense {
	o.mu.Lock()
	defer o.mu.Unlock()

	expenses := []DashboardExpense{}
	for _, g := range o.groups {
		for _, e := range g.Expenses {
			expenses = append(expenses, DashboardExpense{
				Expense:   e,
				GroupID:   g.GroupID,
				GroupName: g.GroupName,
				CreatedBy: g.CreatedBy,
			})
		}
	}
	return expenses
}

// GroupTotals sums each group's expenses for the dashboard's by-group
// view.
func (o *Orchestrator) GroupTotals() []GroupTotal {
	o.mu.Lock()
	defer o.mu.Unlock()

	totals := []GroupTotal{}
	for _, g := range o.groups {
		var sum float64
		for _, e := range g.Expenses {
			sum += e.Amount
		}
		totals = append(totals, GroupTotal{
			GroupID:      g.GroupID,
			GroupName:    g.GroupName,
			CreatedBy:    g.CreatedBy,
			ExpenseCount: len(g.Expenses),
			Total:        utils.RoundToTwo(sum),
		})
	}
	return totals
}
