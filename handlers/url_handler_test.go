package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"go-web-services/config"
	"go-web-services/services"
	"go-web-services/services/mocks"
	"go-web-services/types"
)

func testConfig() *config.Config {
	return &config.Config{
		Shortener: config.ShortenerConfig{
			Port:           3000,
			BaseURL:        "http://localhost:3000",
			RequestTimeout: 5 * time.Second,
			StoreCapacity:  1000,
			CodeLength:     6,
		},
		UserAPI: config.UserAPIConfig{
			Port:           3001,
			RequestTimeout: 5 * time.Second,
		},
	}
}

func setupURLHandler(t *testing.T, service services.URLService) URLHandlerInterface {
	t.Helper()
	gin.SetMode(gin.TestMode)

	handler, err := NewURLHandler(context.Background(), service, testConfig(), zap.NewNop())
	require.NoError(t, err)
	return handler
}

func TestNewURLHandler(t *testing.T) {
	tests := []struct {
		name        string
		service     services.URLService
		cfg         *config.Config
		logger      *zap.Logger
		expectedErr string
	}{
		{
			name:        "Valid configuration",
			service:     &mocks.MockURLService{},
			cfg:         testConfig(),
			logger:      zap.NewNop(),
			expectedErr: "",
		},
		{
			name:        "Nil service",
			service:     nil,
			cfg:         testConfig(),
			logger:      zap.NewNop(),
			expectedErr: "service cannot be nil",
		},
		{
			name:        "Nil config",
			service:     &mocks.MockURLService{},
			cfg:         nil,
			logger:      zap.NewNop(),
			expectedErr: "config cannot be nil",
		},
		{
			name:        "Nil logger",
			service:     &mocks.MockURLService{},
			cfg:         testConfig(),
			logger:      nil,
			expectedErr: "logger cannot be nil",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, err := NewURLHandler(context.Background(), tt.service, tt.cfg, tt.logger)

			if tt.expectedErr != "" {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedErr)
				assert.Nil(t, handler)
			} else {
				require.NoError(t, err)
				assert.NotNil(t, handler)
			}
		})
	}
}

func TestNewURLHandlerWithCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	handler, err := NewURLHandler(ctx, &mocks.MockURLService{}, testConfig(), zap.NewNop())

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "context canceled")
	assert.Nil(t, handler)
}

func TestCreateShortURL(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockService := new(mocks.MockURLService)
		handler := setupURLHandler(t, mockService)

		mockService.On("CreateShortURL", mock.Anything, "https://example.com/a").
			Return(types.URLRecord{
				ShortCode:   "Xy12Ab",
				OriginalURL: "https://example.com/a",
				CreatedAt:   time.Now(),
			}, nil).Once()

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body := bytes.NewBufferString(`{"url": "example.com/a"}`)
		c.Request = httptest.NewRequest(http.MethodPost, "/api/shorten", body)
		c.Request.Header.Set("Content-Type", "application/json")

		handler.CreateShortURL(c)

		assert.Equal(t, http.StatusCreated, w.Code)

		var resp types.ShortenResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Xy12Ab", resp.ShortCode)
		assert.Equal(t, "http://localhost:3000/Xy12Ab", resp.ShortURL)
		assert.Equal(t, "https://example.com/a", resp.OriginalURL, "Scheme should be added before storage")
		mockService.AssertExpectations(t)
	})

	t.Run("Invalid request body", func(t *testing.T) {
		mockService := new(mocks.MockURLService)
		handler := setupURLHandler(t, mockService)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/api/shorten", bytes.NewBufferString(`not-json`))
		c.Request.Header.Set("Content-Type", "application/json")

		handler.CreateShortURL(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), invalidRequestBody)
		mockService.AssertNotCalled(t, "CreateShortURL")
	})

	t.Run("Invalid URL", func(t *testing.T) {
		mockService := new(mocks.MockURLService)
		handler := setupURLHandler(t, mockService)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/api/shorten", bytes.NewBufferString(`{"url": "   "}`))
		c.Request.Header.Set("Content-Type", "application/json")

		handler.CreateShortURL(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), invalidURLProvided)
		mockService.AssertNotCalled(t, "CreateShortURL")
	})

	t.Run("Capacity reached", func(t *testing.T) {
		mockService := new(mocks.MockURLService)
		handler := setupURLHandler(t, mockService)

		mockService.On("CreateShortURL", mock.Anything, mock.AnythingOfType("string")).
			Return(types.URLRecord{}, services.ErrCapacityReached).Once()

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/api/shorten", bytes.NewBufferString(`{"url": "https://example.com"}`))
		c.Request.Header.Set("Content-Type", "application/json")

		handler.CreateShortURL(c)

		assert.Equal(t, http.StatusInsufficientStorage, w.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("Internal error is not leaked", func(t *testing.T) {
		mockService := new(mocks.MockURLService)
		handler := setupURLHandler(t, mockService)

		mockService.On("CreateShortURL", mock.Anything, mock.AnythingOfType("string")).
			Return(types.URLRecord{}, assert.AnError).Once()

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/api/shorten", bytes.NewBufferString(`{"url": "https://example.com"}`))
		c.Request.Header.Set("Content-Type", "application/json")

		handler.CreateShortURL(c)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), assert.AnError.Error())
		mockService.AssertExpectations(t)
	})
}

func TestStatsHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockService := new(mocks.MockURLService)
		handler := setupURLHandler(t, mockService)

		created := time.Now().Add(-time.Hour)
		accessed := time.Now()
		mockService.On("Stats", mock.Anything, "Xy12Ab").
			Return(types.URLRecord{
				ShortCode:      "Xy12Ab",
				OriginalURL:    "https://example.com",
				CreatedAt:      created,
				Clicks:         3,
				LastAccessedAt: &accessed,
			}, nil).Once()

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/api/stats/Xy12Ab", nil)
		c.Params = gin.Params{{Key: "code", Value: "Xy12Ab"}}

		handler.Stats(c)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp types.StatsResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "https://example.com", resp.URL)
		assert.Equal(t, int64(3), resp.Clicks)
		assert.NotNil(t, resp.LastAccessed)
		mockService.AssertExpectations(t)
	})

	t.Run("Unknown code", func(t *testing.T) {
		mockService := new(mocks.MockURLService)
		handler := setupURLHandler(t, mockService)

		mockService.On("Stats", mock.Anything, "nope").
			Return(types.URLRecord{}, services.ErrShortCodeNotFound).Once()

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/api/stats/nope", nil)
		c.Params = gin.Params{{Key: "code", Value: "nope"}}

		handler.Stats(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), shortCodeNotFound)
		mockService.AssertExpectations(t)
	})
}
