package handler

import (
	"net/http"

	"user-management-service/internal/usecase/auth"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthHandler handles registration and login requests
type AuthHandler struct {
	uc  auth.Service
	log *zap.Logger
}

// NewAuthHandler creates a new AuthHandler instance
func NewAuthHandler(uc auth.Service, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		uc:  uc,
		log: log,
	}
}

// RegisterRequest represents the HTTP request body for registration
type RegisterRequest struct {
	UserName       string `json:"userName" binding:"required,min=3,max=100"`
	AccountNumber  string `json:"accountNumber" binding:"required"`
	EmailAddress   string `json:"emailAddress" binding:"required,email"`
	IdentityNumber string `json:"identityNumber" binding:"required"`
	Password       string `json:"password" binding:"required,min=6"`
}

// LoginRequest represents the HTTP request body for login
type LoginRequest struct {
	EmailAddress string `json:"emailAddress" binding:"required,email"`
	Password     string `json:"password" binding:"required"`
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("invalid register request", zap.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
		return
	}

	resp, err := h.uc.Register(c.Request.Context(), auth.RegisterRequest{
		UserName:       req.UserName,
		AccountNumber:  req.AccountNumber,
		EmailAddress:   req.EmailAddress,
		IdentityNumber: req.IdentityNumber,
		Password:       req.Password,
	})
	if err != nil {
		h.log.Error("Register failed", zap.Error(err))
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("invalid login request", zap.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
		return
	}

	resp, err := h.uc.Login(c.Request.Context(), auth.LoginRequest{
		EmailAddress: req.EmailAddress,
		Password:     req.Password,
	})
	if err != nil {
		h.log.Warn("Login failed", zap.Error(err))
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
