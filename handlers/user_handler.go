package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"go-web-services/config"
	"go-web-services/services"
	"go-web-services/types"
)

const (
	invalidUserID      = "Invalid user id"
	invalidUserData    = "Invalid user data"
	missingSearchName  = "Please provide a name to search"
	userNotFound       = "User not found"
	emailAlreadyExists = "User with this email already exists"
	invalidCredentials = "Invalid email or password"
)

// UserHandlerInterface defines the methods that a user handler should implement.
type UserHandlerInterface interface {
	Home(c *gin.Context)
	ListUsers(c *gin.Context)
	GetUser(c *gin.Context)
	CreateUser(c *gin.Context)
	UpdateUser(c *gin.Context)
	DeleteUser(c *gin.Context)
	SearchUsers(c *gin.Context)
	Login(c *gin.Context)
}

// UserHandler struct holds the dependencies for handling user-related operations.
type UserHandler struct {
	service  services.UserService
	validate *validator.Validate
	config   *config.Config
	logger   *zap.Logger
}

// NewUserHandler creates and returns a new UserHandler instance.
func NewUserHandler(ctx context.Context, service services.UserService, cfg *config.Config, logger *zap.Logger) (UserHandlerInterface, error) {
	if service == nil {
		return nil, errors.New("service cannot be nil")
	}
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	handler := &UserHandler{
		service:  service,
		validate: validator.New(),
		config:   cfg,
		logger:   logger,
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	return handler, nil
}

// handleError maps service errors to HTTP status codes. Internal failures
// are logged but never leak detail to the client.
func (h *UserHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": userNotFound})
	case errors.Is(err, services.ErrEmailExists):
		c.JSON(http.StatusConflict, gin.H{"error": emailAlreadyExists})
	case errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": invalidCredentials})
	case errors.Is(err, context.DeadlineExceeded):
		c.JSON(http.StatusRequestTimeout, gin.H{"error": errorTimeout})
	default:
		h.logger.Error("Unexpected error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

func (h *UserHandler) userID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": invalidUserID})
		return 0, false
	}
	return id, true
}

// Home handles the health check endpoint of the user service.
func (h *UserHandler) Home(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "User Management System",
	})
}

// ListUsers returns all users. Password digests never appear in the payload.
func (h *UserHandler) ListUsers(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.config.UserAPI.RequestTimeout)
	defer cancel()

	users, err := h.service.List(ctx)
	if err != nil {
		h.handleError(c, err)
		return
	}

	responses := make([]types.UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, types.NewUserResponse(u))
	}
	c.JSON(http.StatusOK, gin.H{"users": responses})
}

// GetUser returns a single user by id.
func (h *UserHandler) GetUser(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.config.UserAPI.RequestTimeout)
	defer cancel()

	id, ok := h.userID(c)
	if !ok {
		return
	}

	user, err := h.service.Get(ctx, id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.NewUserResponse(user))
}

// CreateUser registers a new user.
func (h *UserHandler) CreateUser(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.config.UserAPI.RequestTimeout)
	defer cancel()

	var input types.CreateUserRequest

	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("Error decoding request body", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": invalidRequestBody})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		h.logger.Warn("Invalid user data", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": invalidUserData})
		return
	}

	user, err := h.service.Create(ctx, input.Name, input.Email, input.Password)
	if err != nil {
		h.handleError(c, err)
		return
	}

	h.logger.Info("User created", zap.Int64("user_id", user.ID))
	c.JSON(http.StatusCreated, types.NewUserResponse(user))
}

// UpdateUser applies a partial update to a user.
func (h *UserHandler) UpdateUser(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.config.UserAPI.RequestTimeout)
	defer cancel()

	id, ok := h.userID(c)
	if !ok {
		return
	}

	var input types.UpdateUserRequest

	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("Error decoding request body", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": invalidRequestBody})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		h.logger.Warn("Invalid user data", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": invalidUserData})
		return
	}

	user, err := h.service.Update(ctx, id, services.UserUpdate{
		Name:     input.Name,
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	h.logger.Info("User updated", zap.Int64("user_id", user.ID))
	c.JSON(http.StatusOK, types.NewUserResponse(user))
}

// DeleteUser removes a user by id.
func (h *UserHandler) DeleteUser(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.config.UserAPI.RequestTimeout)
	defer cancel()

	id, ok := h.userID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(ctx, id); err != nil {
		h.handleError(c, err)
		return
	}

	h.logger.Info("User deleted", zap.Int64("user_id", id))
	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}

// SearchUsers returns the users whose name starts with the given query.
func (h *UserHandler) SearchUsers(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.config.UserAPI.RequestTimeout)
	defer cancel()

	name := c.Query("name")
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": missingSearchName})
		return
	}

	users, err := h.service.Search(ctx, name)
	if err != nil {
		h.handleError(c, err)
		return
	}

	responses := make([]types.UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, types.NewUserResponse(u))
	}
	c.JSON(http.StatusOK, gin.H{"users": responses})
}

// Login authenticates email and password. Every failure produces the same
// 401 response regardless of which credential was wrong.
func (h *UserHandler) Login(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.config.UserAPI.RequestTimeout)
	defer cancel()

	var input types.LoginRequest

	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("Error decoding request body", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": invalidRequestBody})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": invalidUserData})
		return
	}

	user, err := h.service.Authenticate(ctx, input.Email, input.Password)
	if err != nil {
		h.handleError(c, err)
		return
	}

	h.logger.Info("User logged in", zap.Int64("user_id", user.ID))
	c.JSON(http.StatusOK, gin.H{
		"user_id": user.ID,
		"message": "Login successful",
	})
}
