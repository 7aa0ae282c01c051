package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/weekly-availability/internal/domain/user"
	"github.com/BruksfildServices01/weekly-availability/internal/httperr"
	"github.com/BruksfildServices01/weekly-availability/internal/models"
	"github.com/BruksfildServices01/weekly-availability/internal/validators"
)

type AuthHandler struct {
	users  user.Repository
	secret []byte
	ttl    time.Duration
	log    *zap.Logger

	// emailDomainOK is swapped out in tests to avoid DNS lookups.
	emailDomainOK func(context.Context, string) bool
}

func NewAuthHandler(users user.Repository, secret string, ttl time.Duration, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		users:         users,
		secret:        []byte(secret),
		ttl:           ttl,
		log:           log,
		emailDomainOK: validators.NewEmailDomainChecker().Check,
	}
}

// --------- Requests ---------

type RegisterRequest struct {
	Username string `json:"username" binding:"required,max=150"`
	Email    string `json:"email" binding:"omitempty,email,max=100"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type authResponse struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	username := strings.TrimSpace(req.Username)
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if email != "" && !h.emailDomainOK(c.Request.Context(), email) {
		httperr.BadRequest(c, "invalid_email_domain", "The email domain does not look valid.")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.log.Error("hash password", zap.Error(err))
		httperr.Internal(c, "failed_to_hash_password", "Internal error.")
		return
	}

	u := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hashed),
	}

	if err := h.users.Create(c.Request.Context(), u); err != nil {
		if errors.Is(err, user.ErrUsernameTaken) {
			httperr.BadRequest(c, "username_taken", "Username already taken.")
			return
		}
		h.log.Error("create user", zap.Error(err))
		httperr.Internal(c, "failed_to_create_user", "Internal error.")
		return
	}

	token, err := h.generateToken(u)
	if err != nil {
		h.log.Error("sign token", zap.Error(err))
		httperr.Internal(c, "failed_to_generate_token", "Internal error.")
		return
	}

	c.JSON(http.StatusCreated, authResponse{User: u, Token: token})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	u, err := h.users.GetByUsername(c.Request.Context(), strings.TrimSpace(req.Username))
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			httperr.Unauthorized(c, "invalid_credentials", "Invalid username or password.")
			return
		}
		h.log.Error("load user", zap.Error(err))
		httperr.Internal(c, "internal_error", "Internal error.")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		httperr.Unauthorized(c, "invalid_credentials", "Invalid username or password.")
		return
	}

	token, err := h.generateToken(u)
	if err != nil {
		h.log.Error("sign token", zap.Error(err))
		httperr.Internal(c, "failed_to_generate_token", "Internal error.")
		return
	}

	c.JSON(http.StatusOK, authResponse{User: u, Token: token})
}

// --------- JWT ---------

func (h *AuthHandler) generateToken(u *models.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      u.ID,
		"username": u.Username,
		"exp":      now.Add(h.ttl).Unix(),
		"iat":      now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(h.secret)
}
