package server

import (
	"context"

	"go.uber.org/zap"

	"go-web-services/config"
	"go-web-services/handlers"
	"go-web-services/services"
	"go-web-services/storage"
)

// RunUserAPI assembles the user management service and blocks until the
// process is interrupted.
func RunUserAPI(logger *zap.Logger, cfg *config.Config) error {
	db, err := storage.OpenUserDB(cfg.UserAPI.DatabasePath)
	if err != nil {
		logger.Error("Failed to open user database", zap.Error(err))
		return err
	}
	defer db.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	repo := storage.NewSQLUserRepository(db)

	userService, err := services.NewUserService(repo, cfg.UserAPI.BcryptCost)
	if err != nil {
		logger.Error("Failed to create user service", zap.Error(err))
		return err
	}

	handlerCtx, handlerCancel := context.WithTimeout(ctx, cfg.UserAPI.RequestTimeout)
	defer handlerCancel()

	userHandler, err := handlers.NewUserHandler(handlerCtx, userService, cfg, logger)
	if err != nil {
		logger.Error("Failed to create user handler", zap.Error(err))
		return err
	}

	router := newRouter(logger)
	handlers.RegisterUserRoutes(router, userHandler)

	srv := newHTTPServer(cfg.UserAPI.Addr(), router)
	go startServer(srv, logger)

	return waitForShutdown(ctx, srv, logger)
}
