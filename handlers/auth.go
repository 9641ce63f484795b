package handlers

import (
	"net/http"
	"strings"
	"time"

	"grouptracker-backend/middleware"
	"grouptracker-backend/utils"

	"github.com/gin-gonic/gin"
)

type SignupRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// GET /login
func LoginView(c *gin.Context) {
	utils.SuccessResponse(c, http.StatusOK, "", gin.H{
		"view":            "login",
		"redirected_from": c.Query("redirectedFrom"),
	})
}

// GET /signup
func SignupView(c *gin.Context) {
	utils.SuccessResponse(c, http.StatusOK, "", gin.H{"view": "signup"})
}

// POST /auth/signup
func Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	if err := Identity.SignUp(c.Request.Context(), req.Email, req.Password); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	utils.SuccessResponse(c, http.StatusCreated,
		"Sign-up successful! Please check your email to verify your account.", nil)
}

// POST /auth/login
func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	session, err := Identity.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		utils.Unauthorized(c, err.Error())
		return
	}

	setSessionCookie(c, session.Token, session.ExpiresAt)

	// Send the user back where the route guard intercepted them.
	redirectTo := c.Query("redirectedFrom")
	if !strings.HasPrefix(redirectTo, "/") {
		redirectTo = "/profile"
	}

	utils.SuccessResponse(c, http.StatusOK, "Login successful", gin.H{
		"email":       session.Email,
		"redirect_to": redirectTo,
	})
}

// GET /auth/callback
//
// The confirmation link from the signup email lands here. The code is
// exchanged for a session; with or without one, the user ends up on the
// profile view.
func Callback(c *gin.Context) {
	if code := c.Query("code"); code != "" {
		session, err := Identity.ExchangeCode(c.Request.Context(), code)
		if err == nil {
			setSessionCookie(c, session.Token, session.ExpiresAt)
		}
	}
	c.Redirect(http.StatusSeeOther, "/profile")
}

// POST /auth/logout
//
// Revokes the session. The mirror is deliberately left intact.
func Logout(c *gin.Context) {
	if token, err := c.Cookie(middleware.SessionCookie); err == nil && token != "" {
		Identity.SignOut(c.Request.Context(), token)
	}
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", false, true)
	utils.SuccessResponse(c, http.StatusOK, "Logged out", nil)
}

func setSessionCookie(c *gin.Context, token string, expiresAt time.Time) {
	maxAge := int(time.Until(expiresAt).Seconds())
	c.SetCookie(middleware.SessionCookie, token, maxAge, "/", "", false, true)
}
