package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/anonto42/nano-social/backend/internal/apperror"
	"github.com/anonto42/nano-social/backend/internal/middleware"
	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/anonto42/nano-social/backend/internal/services"
	"github.com/anonto42/nano-social/backend/internal/token"
)

// FirebaseVerifier exchanges a Firebase ID token for the verified email.
type FirebaseVerifier interface {
	VerifyEmail(ctx context.Context, idToken string) (string, error)
}

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	auth     *services.Auth
	users    *services.Users
	firebase FirebaseVerifier
	ttl      time.Duration
	secure   bool
}

// NewAuthHandler creates a new AuthHandler. firebase may be nil, in which
// case the Firebase login route is not registered.
func NewAuthHandler(auth *services.Auth, users *services.Users, firebase FirebaseVerifier, ttl time.Duration, secure bool) *AuthHandler {
	return &AuthHandler{
		auth:     auth,
		users:    users,
		firebase: firebase,
		ttl:      ttl,
		secure:   secure,
	}
}

// RegisterAuthRoutes registers authentication-related routes
func (h *AuthHandler) RegisterAuthRoutes(g *echo.Group, protect echo.MiddlewareFunc) {
	g.POST("/signup", h.Signup)
	g.POST("/login", h.Login)
	g.POST("/logout", h.Logout)
	if h.firebase != nil {
		g.POST("/firebase", h.FirebaseLogin)
	}
	g.GET("/me", h.Me, protect)
}

// Signup handles local user registration
func (h *AuthHandler) Signup(c echo.Context) error {
	var req models.SignupRequest
	if err := c.Bind(&req); err != nil {
		return badPayload()
	}

	session, err := h.auth.Signup(c.Request().Context(), req)
	if err != nil {
		return err
	}
	c.SetCookie(token.NewCookie(session.Token, h.ttl, h.secure))
	return c.JSON(http.StatusCreated, session.Profile)
}

// Login handles username/password authentication
func (h *AuthHandler) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return badPayload()
	}

	session, err := h.auth.Login(c.Request().Context(), req)
	if err != nil {
		return err
	}
	c.SetCookie(token.NewCookie(session.Token, h.ttl, h.secure))
	return c.JSON(http.StatusOK, session.Profile)
}

// Logout clears the session cookie.
func (h *AuthHandler) Logout(c echo.Context) error {
	c.SetCookie(token.ExpiredCookie(h.secure))
	return c.JSON(http.StatusOK, echo.Map{"message": "Logged out successfully"})
}

// FirebaseLogin verifies a Firebase ID token and opens a local session for
// the account with the same email.
func (h *AuthHandler) FirebaseLogin(c echo.Context) error {
	var req models.FirebaseLoginRequest
	if err := c.Bind(&req); err != nil {
		return badPayload()
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	email, err := h.firebase.VerifyEmail(c.Request().Context(), req.IDToken)
	if err != nil {
		return apperror.NewUnauthorized("Invalid Firebase ID token", err)
	}

	session, err := h.auth.LoginByEmail(c.Request().Context(), email)
	if err != nil {
		return err
	}
	c.SetCookie(token.NewCookie(session.Token, h.ttl, h.secure))
	return c.JSON(http.StatusOK, session.Profile)
}

// Me returns the authenticated user's profile.
func (h *AuthHandler) Me(c echo.Context) error {
	profile, err := h.users.View(c.Request().Context(), middleware.CurrentUser(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}
