package handlers

import (
	"net/http"

	"grouptracker-backend/utils"

	"github.com/gin-gonic/gin"
)

// GET /dashboard?view=expenses|groups
//
// Read-only aggregates over the mirror: a flat expense list across all
// groups, or per-group totals. Nothing here consults the remote store.
func GetDashboard(c *gin.Context) {
	orch, ok := orchestratorFor(c)
	if !ok {
		return
	}

	switch view := c.DefaultQuery("view", "expenses"); view {
	case "expenses":
		utils.SuccessResponse(c, http.StatusOK, "", gin.H{
			"view":     view,
			"expenses": orch.AllExpenses(),
		})
	case "groups":
		utils.SuccessResponse(c, http.StatusOK, "", gin.H{
			"view":   view,
			"groups": orch.GroupTotals(),
		})
	default:
		utils.BadRequest(c, "Invalid view mode: "+view)
	}
}
