package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jobtrackr/jobtrackr/internal/auth"
	"github.com/jobtrackr/jobtrackr/internal/dtos"
	"github.com/jobtrackr/jobtrackr/internal/middleware"
	"github.com/jobtrackr/jobtrackr/internal/services"
)

type AuthHandler struct {
	Users     *services.UserService
	JWTSecret []byte
	TokenTTL  time.Duration
}

func NewAuthHandler(users *services.UserService, secret []byte, ttl time.Duration) *AuthHandler {
	return &AuthHandler{Users: users, JWTSecret: secret, TokenTTL: ttl}
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var req dtos.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	user, err := h.Users.Signup(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "signup failed: " + err.Error()})
		return
	}

	h.respondWithToken(c, http.StatusCreated, user.ID, user.Email)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dtos.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	user, err := h.Users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed: " + err.Error()})
		return
	}

	h.respondWithToken(c, http.StatusOK, user.ID, user.Email)
}

func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req dtos.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	if err := h.Users.ChangePassword(c.Request.Context(), middleware.UserID(c), req.NewPassword); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update password: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "password updated"})
}

func (h *AuthHandler) DeleteAccount(c *gin.Context) {
	if err := h.Users.DeleteAccount(c.Request.Context(), middleware.UserID(c)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete account: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "account deleted"})
}

func (h *AuthHandler) respondWithToken(c *gin.Context, status int, userID, email string) {
	token, err := auth.GenerateToken(userID, h.JWTSecret, h.TokenTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue token"})
		return
	}
	c.JSON(status, gin.H{
		"token": token,
		"user":  gin.H{"id": userID, "email": email},
	})
}
