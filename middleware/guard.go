package middleware

import (
	"net/http"
	"net/url"

	"grouptracker-backend/auth"

	"github.com/gin-gonic/gin"
)

// SessionCookie is the cookie holding the session token.
const SessionCookie = "session"

// RouteGuard protects a route group: requests without an active session
// are redirected to the login view, carrying the originally requested
// path so login can send the user back.
func RouteGuard(provider *auth.Provider) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookie)
		if err != nil || token == "" {
			redirectToLogin(c)
			return
		}

		session, err := provider.Session(c.Request.Context(), token)
		if err != nil {
			redirectToLogin(c)
			return
		}

		c.Set("user_email", session.Email)
		c.Next()
	}
}

func redirectToLogin(c *gin.Context) {
	from := c.Request.URL.Path
	if c.Request.URL.RawQuery != "" {
		from += "?" + c.Request.URL.RawQuery
	}
	c.Redirect(http.StatusSeeOther, "/login?redirectedFrom="+url.QueryEscape(from))
	c.Abort()
}
