package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"regexp"
	"strings"

	"prevently/internal/model"
	"prevently/internal/repository"
	"prevently/internal/session"
	"prevently/pkg/identity"

	"github.com/gin-gonic/gin"
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]{3,20}$`)

type IdentityProvider interface {
	SignUp(ctx context.Context, email, password string) (*identity.AuthResponse, error)
	SignIn(ctx context.Context, email, password string) (*identity.AuthResponse, error)
	SignInWithGoogle(ctx context.Context, googleIDToken, requestURI string) (*identity.AuthResponse, error)
	SendPasswordReset(ctx context.Context, email string) error
	SendEmailVerification(ctx context.Context, idToken string) error
	ConfirmEmailVerification(ctx context.Context, oobCode string) (*identity.User, error)
	Lookup(ctx context.Context, idToken string) (*identity.User, error)
	Refresh(ctx context.Context, refreshToken string) (*identity.TokenResponse, error)
}

type UsernameStore interface {
	GetByUsername(ctx context.Context, username string) (*model.UsernameRecord, error)
	Exists(ctx context.Context, username string) (bool, error)
	SaveUsername(ctx context.Context, rec model.UsernameRecord) error
}

type AuthHandler struct {
	identity          IdentityProvider
	users             UsernameStore
	revoker           session.Revoker
	googleRedirectURI string
}

func NewAuthHandler(provider IdentityProvider, users UsernameStore, revoker session.Revoker, googleRedirectURI string) *AuthHandler {
	if revoker == nil {
		revoker = session.NopRevoker{}
	}
	return &AuthHandler{
		identity:          provider,
		users:             users,
		revoker:           revoker,
		googleRedirectURI: googleRedirectURI,
	}
}

type registerRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Username string `json:"username"`
}

type loginRequest struct {
	EmailOrUsername string `json:"email_or_username"`
	Email           string `json:"email"`
	Password        string `json:"password" binding:"required"`
}

type emailRequest struct {
	Email string `json:"email" binding:"required"`
}

type verifyEmailRequest struct {
	OOBCode string `json:"oob_code" binding:"required"`
}

type credentialsRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type googleRequest struct {
	IDToken string `json:"id_token" binding:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if !bindJSON(c, &req) {
		return
	}
	ctx := c.Request.Context()

	if !usernamePattern.MatchString(req.Username) {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Username must be 3-20 characters of letters, digits or underscores"})
		return
	}

	taken, err := h.users.Exists(ctx, req.Username)
	if err != nil {
		slog.Error("error checking username", "error", err, "username", req.Username)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to check username"})
		return
	}
	if taken {
		c.JSON(http.StatusConflict, gin.H{"detail": "Username already taken"})
		return
	}

	account, err := h.identity.SignUp(ctx, req.Email, req.Password)
	if err != nil {
		writeIdentityError(c, err, "error signing up")
		return
	}

	if err := h.users.SaveUsername(ctx, model.UsernameRecord{
		Username: req.Username,
		Email:    account.Email,
		UID:      account.LocalID,
	}); err != nil {
		slog.Error("error saving username", "error", err, "username", req.Username)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to save username"})
		return
	}

	if err := h.identity.SendEmailVerification(ctx, account.IDToken); err != nil {
		slog.Warn("error sending verification email", "error", err, "email", account.Email)
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Registration successful. Please check your email to verify your account.",
		"email":    account.Email,
		"localId":  account.LocalID,
		"username": req.Username,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if !bindJSON(c, &req) {
		return
	}
	ctx := c.Request.Context()

	email := req.EmailOrUsername
	if email == "" {
		email = req.Email
	}
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "email_or_username is required"})
		return
	}

	if !strings.Contains(email, "@") {
		resolved, err := h.users.GetByUsername(ctx, email)
		if errors.Is(err, repository.ErrUsernameNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"detail": "Username not found"})
			return
		}
		if err != nil {
			slog.Error("error resolving username", "error", err, "username", email)
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to resolve username"})
			return
		}
		email = resolved.Email
	}

	account, err := h.identity.SignIn(ctx, email, req.Password)
	if err != nil {
		writeIdentityError(c, err, "error signing in")
		return
	}

	user, err := h.identity.Lookup(ctx, account.IDToken)
	if err != nil {
		writeIdentityError(c, err, "error looking up account")
		return
	}
	if !user.EmailVerified {
		c.JSON(http.StatusForbidden, gin.H{"detail": gin.H{
			"error": gin.H{"code": http.StatusForbidden, "message": "EMAIL_NOT_VERIFIED"},
		}})
		return
	}

	c.Data(http.StatusOK, "application/json", account.Raw)
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req emailRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.identity.SendPasswordReset(c.Request.Context(), req.Email); err != nil {
		writeIdentityError(c, err, "error sending password reset")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password reset email sent"})
}

func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	var req verifyEmailRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.identity.ConfirmEmailVerification(c.Request.Context(), req.OOBCode)
	if err != nil {
		writeIdentityError(c, err, "error verifying email")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":       "Email verified successfully",
		"email":         user.Email,
		"emailVerified": user.EmailVerified,
	})
}

func (h *AuthHandler) ResendVerification(c *gin.Context) {
	var req credentialsRequest
	if !bindJSON(c, &req) {
		return
	}
	ctx := c.Request.Context()

	account, err := h.identity.SignIn(ctx, req.Email, req.Password)
	if err != nil {
		writeIdentityError(c, err, "error signing in for verification resend")
		return
	}

	if err := h.identity.SendEmailVerification(ctx, account.IDToken); err != nil {
		writeIdentityError(c, err, "error resending verification email")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Verification email sent"})
}

func (h *AuthHandler) GoogleSignIn(c *gin.Context) {
	var req googleRequest
	if !bindJSON(c, &req) {
		return
	}

	account, err := h.identity.SignInWithGoogle(c.Request.Context(), req.IDToken, h.googleRedirectURI)
	if err != nil {
		writeIdentityError(c, err, "error signing in with google")
		return
	}

	c.Data(http.StatusOK, "application/json", account.Raw)
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var req refreshRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.RefreshToken == "" {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "refresh_token is required"})
		return
	}
	ctx := c.Request.Context()

	revoked, err := h.revoker.IsRevoked(ctx, req.RefreshToken)
	if err != nil {
		slog.Error("error checking revoked token", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to refresh session"})
		return
	}
	if revoked {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Session has been logged out"})
		return
	}

	tokens, err := h.identity.Refresh(ctx, req.RefreshToken)
	if err != nil {
		writeIdentityError(c, err, "error refreshing token")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"idToken":      tokens.IDToken,
		"refreshToken": tokens.RefreshToken,
		"expiresIn":    tokens.ExpiresIn,
		"localId":      tokens.UserID,
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	var req refreshRequest
	if !bindJSON(c, &req) {
		return
	}

	if req.RefreshToken != "" {
		if err := h.revoker.Revoke(c.Request.Context(), req.RefreshToken); err != nil {
			slog.Error("error revoking token", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "Logout failed"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

func (h *AuthHandler) GetUsername(c *gin.Context) {
	username := c.Param("username")

	rec, err := h.users.GetByUsername(c.Request.Context(), username)
	if errors.Is(err, repository.ErrUsernameNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Username not found"})
		return
	}
	if err != nil {
		slog.Error("error fetching username", "error", err, "username", username)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to resolve username"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"username": rec.Username, "email": rec.Email})
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		slog.Warn("invalid request body", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid request body"})
		return false
	}
	return true
}

// writeIdentityError forwards upstream identity errors unchanged; anything
// else is a transport failure.
func writeIdentityError(c *gin.Context, err error, msg string) {
	var apiErr *identity.APIError
	if errors.As(err, &apiErr) {
		slog.Warn(msg, "status", apiErr.Status, "error", err)
		c.JSON(apiErr.Status, gin.H{"detail": apiErr.Body})
		return
	}

	slog.Error(msg, "error", err)
	c.JSON(http.StatusBadGateway, gin.H{"detail": "Identity service unavailable"})
}
