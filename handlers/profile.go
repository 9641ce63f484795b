package handlers

import (
	"net/http"

	"grouptracker-backend/utils"

	"github.com/gin-gonic/gin"
)

// GET /profile
//
// Visiting the profile stamps the email slot in the mirror; group
// creation reads it back as the created_by stamp.
func GetProfile(c *gin.Context) {
	email := utils.GetCurrentEmail(c)

	if err := Mirror.SaveEmail(c.Request.Context(), email, email); err != nil {
		utils.InternalError(c, "Failed to save profile state")
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", gin.H{"email": email})
}
