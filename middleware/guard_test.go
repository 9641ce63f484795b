package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"grouptracker-backend/auth"
	"grouptracker-backend/middleware"
	"grouptracker-backend/models"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type discardMailer struct{ link string }

func (m *discardMailer) SendConfirmation(toEmail, link string) error {
	m.link = link
	return nil
}

func newGuardedRouter(t *testing.T) (*gin.Engine, *auth.Provider, *discardMailer) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "guard.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))

	mailer := &discardMailer{}
	provider := auth.NewProvider(db, auth.NewMemorySessions(), mailer, "test-secret", "http://localhost")

	r := gin.New()
	protected := r.Group("/")
	protected.Use(middleware.RouteGuard(provider))
	protected.GET("/profile", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"email": c.GetString("user_email")})
	})
	return r, provider, mailer
}

func sessionFor(t *testing.T, provider *auth.Provider, mailer *discardMailer, email string) auth.Session {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, provider.SignUp(ctx, email, "hunter22"))
	code := mailer.link[len("http://localhost/auth/callback?code="):]
	session, err := provider.ExchangeCode(ctx, code)
	require.NoError(t, err)
	return session
}

func TestGuardRedirectsWithoutSession(t *testing.T) {
	r, _, _ := newGuardedRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login?redirectedFrom=%2Fprofile", w.Header().Get("Location"))
}

func TestGuardRedirectKeepsQueryString(t *testing.T) {
	r, _, _ := newGuardedRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/profile?tab=settings&n=1", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login?redirectedFrom=%2Fprofile%3Ftab%3Dsettings%26n%3D1", w.Header().Get("Location"))
}

func TestGuardRedirectsOnInvalidToken(t *testing.T) {
	r, _, _ := newGuardedRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: "garbage"})
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusSeeOther, w.Code)
}

func TestGuardPassesActiveSession(t *testing.T) {
	r, provider, mailer := newGuardedRouter(t)
	session := sessionFor(t, provider, mailer, "a@x.com")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: session.Token})
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "a@x.com")
}

func TestGuardRedirectsAfterSignOut(t *testing.T) {
	r, provider, mailer := newGuardedRouter(t)
	session := sessionFor(t, provider, mailer, "a@x.com")

	require.NoError(t, provider.SignOut(context.Background(), session.Token))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: session.Token})
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusSeeOther, w.Code)
}
