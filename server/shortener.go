package server

import (
	"context"

	"go.uber.org/zap"

	"go-web-services/config"
	"go-web-services/handlers"
	"go-web-services/services"
	"go-web-services/storage"
)

// RunShortener assembles the URL shortener service and blocks until the
// process is interrupted.
func RunShortener(logger *zap.Logger, cfg *config.Config) error {
	store := storage.NewInMemoryStorage(cfg.Shortener.StoreCapacity, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	urlService := services.NewURLService(store, cfg.Shortener.CodeLength)

	handlerCtx, handlerCancel := context.WithTimeout(ctx, cfg.Shortener.RequestTimeout)
	defer handlerCancel()

	urlHandler, err := handlers.NewURLHandler(handlerCtx, urlService, cfg, logger)
	if err != nil {
		logger.Error("Failed to create URL handler", zap.Error(err))
		return err
	}

	router := newRouter(logger)
	handlers.RegisterShortenerRoutes(router, urlHandler)

	srv := newHTTPServer(cfg.Shortener.Addr(), router)
	go startServer(srv, logger)

	return waitForShutdown(ctx, srv, logger)
}
