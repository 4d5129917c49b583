// Package handlers provides HTTP request handlers for both services.
package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"go-web-services/config"
	"go-web-services/metrics"
	"go-web-services/services"
	"go-web-services/shortcode"
	"go-web-services/types"
)

const (
	invalidRequestBody  = "Invalid request body"
	invalidURLProvided  = "Invalid URL provided"
	errorCreatingURL    = "Error creating short URL"
	errorRetrievingURL  = "Error retrieving URL"
	errorTimeout        = "Request timed out"
	storageCapacityFull = "Storage capacity reached"
	shortCodeNotFound   = "Short code not found"
)

// URLHandlerInterface defines the methods that a URL handler should implement.
type URLHandlerInterface interface {
	CreateShortURL(c *gin.Context)
	Stats(c *gin.Context)
	Redirect(c *gin.Context)
	HealthCheck(c *gin.Context)
}

// URLHandler struct holds the dependencies for handling URL-related operations.
type URLHandler struct {
	service  services.URLService
	validate *validator.Validate
	config   *config.Config
	logger   *zap.Logger
}

// NewURLHandler creates and returns a new URLHandler instance.
func NewURLHandler(ctx context.Context, service services.URLService, cfg *config.Config, logger *zap.Logger) (URLHandlerInterface, error) {
	if service == nil {
		return nil, errors.New("service cannot be nil")
	}
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	handler := &URLHandler{
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

// handleError is a helper function to handle errors and send appropriate responses
func (h *URLHandler) handleError(c *gin.Context, err error, customMessages map[error]string) {
	var statusCode int
	var errorMessage string

	switch {
	case errors.Is(err, services.ErrShortCodeNotFound):
		statusCode = http.StatusNotFound
		errorMessage = customMessages[services.ErrShortCodeNotFound]
	case errors.Is(err, services.ErrCapacityReached):
		statusCode = http.StatusInsufficientStorage
		errorMessage = customMessages[services.ErrCapacityReached]
	case errors.Is(err, context.DeadlineExceeded):
		statusCode = http.StatusRequestTimeout
		errorMessage = customMessages[context.DeadlineExceeded]
	default:
		h.logger.Error("Unexpected error", zap.Error(err))
		statusCode = http.StatusInternalServerError
		errorMessage = customMessages[nil]
		if errorMessage == "" {
			errorMessage = "Internal server error"
		}
	}

	c.JSON(statusCode, gin.H{"error": errorMessage})
}

// CreateShortURL handles the creation of a new shortened URL. The input is
// normalized (scheme added when absent) before validation, so bare hosts
// like "example.com/a" are accepted.
func (h *URLHandler) CreateShortURL(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.config.Shortener.RequestTimeout)
	defer cancel()

	var input types.ShortenRequest

	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("Error decoding request body", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": invalidRequestBody})
		return
	}

	normalizedURL := shortcode.Normalize(input.URL)
	if err := h.validate.Var(normalizedURL, "required,url"); err != nil {
		h.logger.Warn("Invalid URL provided", zap.String("url", input.URL))
		c.JSON(http.StatusBadRequest, gin.H{"error": invalidURLProvided})
		return
	}

	record, err := h.service.CreateShortURL(ctx, normalizedURL)
	if err != nil {
		h.handleError(c, err, map[error]string{
			services.ErrCapacityReached: storageCapacityFull,
			context.DeadlineExceeded:    errorTimeout,
			nil:                         errorCreatingURL,
		})
		return
	}

	metrics.URLsCreated.Inc()

	response := types.ShortenResponse{
		ShortCode:   record.ShortCode,
		ShortURL:    h.config.Shortener.BaseURL + "/" + record.ShortCode,
		OriginalURL: record.OriginalURL,
	}
	c.JSON(http.StatusCreated, response)
}

// Stats reports the analytics for a short code without counting a click.
func (h *URLHandler) Stats(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.config.Shortener.RequestTimeout)
	defer cancel()

	code := c.Param("code")

	record, err := h.service.Stats(ctx, code)
	if err != nil {
		h.handleError(c, err, map[error]string{
			services.ErrShortCodeNotFound: shortCodeNotFound,
			context.DeadlineExceeded:      errorTimeout,
			nil:                           errorRetrievingURL,
		})
		return
	}

	response := types.StatsResponse{
		URL:          record.OriginalURL,
		Clicks:       record.Clicks,
		CreatedAt:    record.CreatedAt,
		LastAccessed: record.LastAccessedAt,
	}
	c.JSON(http.StatusOK, response)
}
