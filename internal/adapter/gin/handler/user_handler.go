package handler

import (
	"net/http"
	"strconv"

	"user-management-service/internal/usecase/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserHandler handles HTTP requests for user operations
type UserHandler struct {
	uc  user.Service
	log *zap.Logger
}

// NewUserHandler creates a new UserHandler instance
func NewUserHandler(uc user.Service, log *zap.Logger) *UserHandler {
	return &UserHandler{
		uc:  uc,
		log: log,
	}
}

// CreateUserRequest represents the HTTP request body for creating a user
type CreateUserRequest struct {
	UserName       string `json:"userName" binding:"required,min=3,max=100"`
	AccountNumber  string `json:"accountNumber" binding:"required"`
	EmailAddress   string `json:"emailAddress" binding:"required,email"`
	IdentityNumber string `json:"identityNumber" binding:"required"`
	Password       string `json:"password" binding:"required,min=6"`
}

// UpdateUserRequest represents the HTTP request body for a partial update.
// Absent fields are left untouched.
type UpdateUserRequest struct {
	UserName       *string `json:"userName" binding:"omitempty,min=3,max=100"`
	AccountNumber  *string `json:"accountNumber" binding:"omitempty"`
	EmailAddress   *string `json:"emailAddress" binding:"omitempty,email"`
	IdentityNumber *string `json:"identityNumber" binding:"omitempty"`
}

// ListUsers handles GET /users
// Query: page (default 1), limit (default 10), paginate (disabled only by the literal value "0").
func (h *UserHandler) ListUsers(c *gin.Context) {
	pageStr := c.DefaultQuery("page", "1")
	limitStr := c.DefaultQuery("limit", "10")
	paginate := c.DefaultQuery("paginate", "1") != "0"

	page, err := strconv.ParseInt(pageStr, 10, 64)
	if err != nil || page < 1 {
		page = 1
	}

	limit, err := strconv.ParseInt(limitStr, 10, 64)
	if err != nil || limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	h.log.Info("ListUsers request", zap.Int64("page", page), zap.Int64("limit", limit), zap.Bool("paginate", paginate))

	resp, err := h.uc.ListUsers(c.Request.Context(), user.ListUsersRequest{
		Page:     page,
		Limit:    limit,
		Paginate: paginate,
	})
	if err != nil {
		h.log.Error("ListUsers failed", zap.Error(err))
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// CreateUser handles POST /users
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("invalid create user request", zap.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
		return
	}

	resp, err := h.uc.CreateUser(c.Request.Context(), user.CreateUserRequest{
		UserName:       req.UserName,
		AccountNumber:  req.AccountNumber,
		EmailAddress:   req.EmailAddress,
		IdentityNumber: req.IdentityNumber,
		Password:       req.Password,
	})
	if err != nil {
		h.log.Error("CreateUser failed", zap.Error(err))
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// GetByAccountNumber handles GET /users/account/:accountNumber
func (h *UserHandler) GetByAccountNumber(c *gin.Context) {
	accountNumber := c.Param("accountNumber")

	resp, err := h.uc.GetByAccountNumber(c.Request.Context(), accountNumber)
	if err != nil {
		h.log.Error("GetByAccountNumber failed", zap.String("accountNumber", accountNumber), zap.Error(err))
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetByIdentityNumber handles GET /users/identity/:identityNumber
func (h *UserHandler) GetByIdentityNumber(c *gin.Context) {
	identityNumber := c.Param("identityNumber")

	resp, err := h.uc.GetByIdentityNumber(c.Request.Context(), identityNumber)
	if err != nil {
		h.log.Error("GetByIdentityNumber failed", zap.String("identityNumber", identityNumber), zap.Error(err))
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// UpdateUser handles PUT /users/:id
func (h *UserHandler) UpdateUser(c *gin.Context) {
	idStr := c.Param("id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		h.log.Warn("invalid user ID", zap.String("id", idStr), zap.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_id",
			Message: "user ID must be a valid number",
		})
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("invalid update user request", zap.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
		return
	}

	resp, err := h.uc.UpdateUser(c.Request.Context(), user.UpdateUserRequest{
		ID:             id,
		UserName:       req.UserName,
		AccountNumber:  req.AccountNumber,
		EmailAddress:   req.EmailAddress,
		IdentityNumber: req.IdentityNumber,
	})
	if err != nil {
		h.log.Error("UpdateUser failed", zap.Int64("id", id), zap.Error(err))
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// DeleteUser handles DELETE /users/:id
func (h *UserHandler) DeleteUser(c *gin.Context) {
	idStr := c.Param("id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		h.log.Warn("invalid user ID", zap.String("id", idStr), zap.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_id",
			Message: "user ID must be a valid number",
		})
		return
	}

	resp, err := h.uc.DeleteUser(c.Request.Context(), id)
	if err != nil {
		h.log.Error("DeleteUser failed", zap.Int64("id", id), zap.Error(err))
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
