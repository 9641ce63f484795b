package handlers

import (
	"errors"
	"net/http"

	"grouptracker-backend/gateway"
	"grouptracker-backend/models"
	"grouptracker-backend/orchestrator"
	"grouptracker-backend/utils"

	"github.com/gin-gonic/gin"
)

// GET /manage-groups
func GetManagedGroups(c *gin.Context) {
	orch, ok := orchestratorFor(c)
	if !ok {
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", gin.H{"groups": orch.Groups()})
}

// POST /manage-groups/groups
func CreateGroup(c *gin.Context) {
	var req models.CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	orch, ok := orchestratorFor(c)
	if !ok {
		return
	}

	group, err := orch.CreateGroup(c.Request.Context(), req.GroupName)
	if err != nil {
		respondMutationError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Group created", group)
}

// GET /manage-groups/groups/:id
func GetGroupDetails(c *gin.Context) {
	orch, ok := orchestratorFor(c)
	if !ok {
		return
	}

	group, found := orch.Group(c.Param("id"))
	if !found {
		utils.NotFound(c, "Group not found.")
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", group)
}

// DELETE /manage-groups/groups/:id
func DeleteGroup(c *gin.Context) {
	orch, ok := orchestratorFor(c)
	if !ok {
		return
	}

	if err := orch.DeleteGroup(c.Request.Context(), c.Param("id")); err != nil {
		utils.InternalError(c, err.Error())
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Group deleted", nil)
}

// POST /manage-groups/expenses
func AddExpense(c *gin.Context) {
	var req models.AddExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	orch, ok := orchestratorFor(c)
	if !ok {
		return
	}

	expense, err := orch.AddExpense(c.Request.Context(), req.GroupName, req.Amount, req.Description)
	if err != nil {
		respondMutationError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Expense added", expense)
}

// PUT /manage-groups/groups/:id/expenses/:eid
func UpdateExpense(c *gin.Context) {
	var req models.EditExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	orch, ok := orchestratorFor(c)
	if !ok {
		return
	}

	if err := orch.EditExpense(c.Request.Context(), c.Param("id"), c.Param("eid"), req.Amount, req.Description); err != nil {
		respondMutationError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Expense updated", nil)
}

// DELETE /manage-groups/groups/:id/expenses/:eid
func DeleteExpense(c *gin.Context) {
	orch, ok := orchestratorFor(c)
	if !ok {
		return
	}

	if err := orch.DeleteExpense(c.Request.Context(), c.Param("id"), c.Param("eid")); err != nil {
		utils.InternalError(c, err.Error())
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Expense deleted", nil)
}

// respondMutationError maps orchestrator failures to the HTTP envelope:
// validation failures are the caller's problem, backend failures from
// the non-optimistic create path surface as bad gateway.
func respondMutationError(c *gin.Context, err error) {
	var vErr *orchestrator.ValidationError
	if errors.As(err, &vErr) {
		utils.BadRequest(c, vErr.Message)
		return
	}

	var pErr *gateway.PersistenceError
	if errors.As(err, &pErr) {
		utils.BadGateway(c, pErr.Message)
		return
	}

	utils.InternalError(c, err.Error())
}
