package handlers

import (
	"grouptracker-backend/auth"
	"grouptracker-backend/gateway"
	"grouptracker-backend/mirror"
	"grouptracker-backend/orchestrator"
	"grouptracker-backend/utils"

	"github.com/gin-gonic/gin"
)

// Shared dependencies, wired once from main.
var (
	Gateway  *gateway.Gateway
	Mirror   mirror.Store
	Identity *auth.Provider
)

func Init(gw *gateway.Gateway, store mirror.Store, provider *auth.Provider) {
	Gateway = gw
	Mirror = store
	Identity = provider
}

// orchestratorFor loads the caller's mirror snapshot for this request,
// the per-mount load of the original view.
func orchestratorFor(c *gin.Context) (*orchestrator.Orchestrator, bool) {
	email := utils.GetCurrentEmail(c)
	orch, err := orchestrator.New(c.Request.Context(), email, Mirror, Gateway)
	if err != nil {
		utils.InternalError(c, "Failed to load groups")
		return nil, false
	}
	return orch, true
}
