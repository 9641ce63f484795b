// Package auth is the session/identity provider: sign-up and sign-in by
// email and password, sign-out, one-time code exchange for the email
// confirmation callback, and session lookup. Every failure carries a
// human-readable message that is surfaced to the user verbatim.
package auth

import (
	"context"
	"strings"
	"time"

	"grouptracker-backend/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	// SessionTTL bounds both the JWT and its registry entry.
	SessionTTL = 24 * time.Hour
	// CodeTTL bounds how long a confirmation link stays valid.
	CodeTTL = 24 * time.Hour
)

// SessionError is any rejection by the identity provider.
type SessionError struct {
	Message string
}

func (e *SessionError) Error() string {
	return e.Message
}

// Mailer sends account emails. A no-op implementation is fine for
// environments without an email provider.
type Mailer interface {
	SendConfirmation(toEmail, link string) error
}

// Session is an active, registry-backed session.
type Session struct {
	Email     string
	Token     string
	ExpiresAt time.Time
}

// Provider implements the identity surface against the users table, a
// session registry and a mailer.
type Provider struct {
	db       *gorm.DB
	sessions SessionStore
	mailer   Mailer
	secret   []byte
	appURL   string
}

func NewProvider(db *gorm.DB, sessions SessionStore, mailer Mailer, secret, appURL string) *Provider {
	return &Provider{
		db:       db,
		sessions: sessions,
		mailer:   mailer,
		secret:   []byte(secret),
		appURL:   appURL,
	}
}

// SignUp registers a new user and sends the confirmation email whose
// link carries the one-time code for the auth callback.
func (p *Provider) SignUp(ctx context.Context, email, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return &SessionError{Message: "Email and password are required"}
	}

	var existing models.User
	if err := p.db.WithContext(ctx).Where("email = ?", email).First(&existing).Error; err == nil {
		return &SessionError{Message: "Email already registered"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return &SessionError{Message: "Failed to hash password"}
	}

	user := models.User{
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := p.db.WithContext(ctx).Create(&user).Error; err != nil {
		return &SessionError{Message: "Failed to create user"}
	}

	code := uuid.NewString()
	if err := p.sessions.PutCode(ctx, code, email, CodeTTL); err != nil {
		return &SessionError{Message: "Failed to issue confirmation code"}
	}

	link := p.appURL + "/auth/callback?code=" + code
	if err := p.mailer.SendConfirmation(email, link); err != nil {
		return &SessionError{Message: "Failed to send confirmation email: " + err.Error()}
	}
	return nil
}

// SignIn verifies the credentials and issues a session. Unconfirmed
// accounts are rejected until the callback code is exchanged.
func (p *Provider) SignIn(ctx context.Context, email, password string) (Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var user models.User
	if err := p.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return Session{}, &SessionError{Message: "Invalid email or password"}
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return Session{}, &SessionError{Message: "Invalid email or password"}
	}
	if !user.Confirmed {
		return Session{}, &SessionError{Message: "Email not confirmed"}
	}

	return p.issueSession(ctx, user.Email)
}

// ExchangeCode consumes a confirmation code, marks the account
// confirmed and issues a session.
func (p *Provider) ExchangeCode(ctx context.Context, code string) (Session, error) {
	email, err := p.sessions.TakeCode(ctx, code)
	if err != nil {
		return Session{}, &SessionError{Message: "Failed to look up confirmation code"}
	}
	if email == "" {
		return Session{}, &SessionError{Message: "Invalid or expired confirmation code"}
	}

	if err := p.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Update("confirmed", true).Error; err != nil {
		return Session{}, &SessionError{Message: "Failed to confirm account"}
	}

	return p.issueSession(ctx, email)
}

// Session validates a token and returns the current session, or a
// SessionError when there is none.
func (p *Provider) Session(ctx context.Context, token string) (Session, error) {
	claims, err := p.parseToken(token)
	if err != nil {
		return Session{}, &SessionError{Message: "No active session"}
	}

	email, err := p.sessions.GetSession(ctx, claims.ID)
	if err != nil || email == "" || email != claims.Subject {
		return Session{}, &SessionError{Message: "No active session"}
	}

	return Session{Email: email, Token: token, ExpiresAt: claims.ExpiresAt.Time}, nil
}

// SignOut revokes the session behind the token. Unknown or malformed
// tokens are ignored: signing out is best-effort.
func (p *Provider) SignOut(ctx context.Context, token string) error {
	claims, err := p.parseToken(token)
	if err != nil {
		return nil
	}
	return p.sessions.DeleteSession(ctx, claims.ID)
}

func (p *Provider) issueSession(ctx context.Context, email string) (Session, error) {
	expiresAt := time.Now().Add(SessionTTL)
	claims := jwt.RegisteredClaims{
		Subject:   email,
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(p.secret)
	if err != nil {
		return Session{}, &SessionError{Message: "Failed to generate session token"}
	}

	if err := p.sessions.PutSession(ctx, claims.ID, email, SessionTTL); err != nil {
		return Session{}, &SessionError{Message: "Failed to register session"}
	}

	return Session{Email: email, Token: token, ExpiresAt: expiresAt}, nil
}

func (p *Provider) parseToken(token string) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return p.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !parsed.Valid {
		return nil, &SessionError{Message: "Invalid session token"}
	}
	return claims, nil
}
