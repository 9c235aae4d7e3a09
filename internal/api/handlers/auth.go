package handlers

import (
	"net/http"

	"staffdesk/internal/api/middleware"
	"staffdesk/internal/api/respond"
	"staffdesk/internal/config"
	"staffdesk/internal/models"
	"staffdesk/internal/services"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService  *services.AuthService
	resetService *services.PasswordResetService
	cfg          *config.Config
}

func NewAuthHandler(authService *services.AuthService, resetService *services.PasswordResetService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		resetService: resetService,
		cfg:          cfg,
	}
}

type LoginRequest struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token    string           `json:"token"`
	Employee *models.Employee `json:"employee"`
}

type VerifyResponse struct {
	Employee   *models.Employee  `json:"employee"`
	Permission models.Permission `json:"permission"`
}

type ResetRequestBody struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetConfirmBody struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

type HashPasswordRequest struct {
	Password string `json:"password" binding:"required"`
}

// Login authenticates by login or email and opens a session.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadRequest(c, "login and password are required")
		return
	}

	token, emp, err := h.authService.Login(req.Login, req.Password, c.ClientIP())
	if err != nil {
		respond.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		Token:    token,
		Employee: emp,
	})
}

// Verify resolves the bearer token to an employee summary and permission.
func (h *AuthHandler) Verify(c *gin.Context) {
	token, ok := middleware.BearerToken(c)
	if !ok {
		respond.Error(c, services.ErrMissingToken)
		return
	}

	emp, err := h.authService.Verify(token, c.ClientIP())
	if err != nil {
		respond.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, VerifyResponse{
		Employee:   emp,
		Permission: emp.PermissionLevel(),
	})
}

// Logout closes the session behind the presented token.
func (h *AuthHandler) Logout(c *gin.Context) {
	token, ok := middleware.BearerToken(c)
	if !ok {
		respond.Error(c, services.ErrMissingToken)
		return
	}

	if err := h.authService.Logout(token, c.ClientIP()); err != nil {
		respond.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// HashPassword hashes a password with the server's bcrypt settings. Admin
// utility for provisioning accounts out of band.
func (h *AuthHandler) HashPassword(c *gin.Context) {
	var req HashPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadRequest(c, "password is required")
		return
	}

	hash, err := h.authService.HashPassword(req.Password)
	if err != nil {
		respond.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"hash": hash})
}

// ResetRequest issues a password reset token for the given email. The token
// is handed to the notification channel; the response only acknowledges.
func (h *AuthHandler) ResetRequest(c *gin.Context) {
	var req ResetRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadRequest(c, "a valid email is required")
		return
	}

	reset, err := h.resetService.Request(req.Email, c.ClientIP())
	if err != nil {
		respond.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"accepted":   true,
		"token":      reset.Token,
		"expires_at": reset.ExpiresAt,
	})
}

// ResetConfirm consumes a reset token and sets the new password.
func (h *AuthHandler) ResetConfirm(c *gin.Context) {
	var req ResetConfirmBody
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadRequest(c, "token and new_password are required")
		return
	}

	if err := h.resetService.Confirm(req.Token, req.NewPassword, c.ClientIP()); err != nil {
		respond.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "password updated"})
}
