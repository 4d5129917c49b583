package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-web-services/metrics"
	"go-web-services/services"
)

const errInvalidRedirectURL = "Invalid redirect URL"

// Redirect handles the redirection from a short code to its original URL.
// The click is counted atomically with the lookup, so a successful redirect
// always increments the counter exactly once.
func (h *URLHandler) Redirect(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.config.Shortener.RequestTimeout)
	defer cancel()

	code := c.Param("code")

	record, err := h.service.Resolve(ctx, code)
	if err != nil {
		h.handleRedirectError(c, err, code)
		return
	}

	// Validate the original URL to prevent open redirects
	if err := h.validate.Var(record.OriginalURL, "url"); err != nil {
		h.logger.Warn("Invalid original URL",
			zap.String("short_code", code),
			zap.String("original_url", record.OriginalURL))
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidRedirectURL})
		return
	}

	metrics.Redirects.Inc()

	h.logger.Info("Redirecting",
		zap.String("short_code", code),
		zap.String("original_url", record.OriginalURL),
		zap.Int64("clicks", record.Clicks),
		zap.String("ip", c.ClientIP()),
		zap.String("user_agent", c.Request.UserAgent()))
	c.Redirect(http.StatusFound, record.OriginalURL)
}

func (h *URLHandler) handleRedirectError(c *gin.Context, err error, code string) {
	switch {
	case errors.Is(err, services.ErrShortCodeNotFound):
		h.logger.Info("Short code not found", zap.String("short_code", code))
		c.JSON(http.StatusNotFound, gin.H{"error": shortCodeNotFound})
	case errors.Is(err, context.DeadlineExceeded):
		h.logger.Warn("Request timed out", zap.String("short_code", code))
		c.JSON(http.StatusRequestTimeout, gin.H{"error": errorTimeout})
	default:
		h.logger.Error("Error retrieving URL",
			zap.String("short_code", code),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": errorRetrievingURL})
	}
}
