package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/DDismyname28/home-portal/config"
	"github.com/DDismyname28/home-portal/database"
	requestRepoPkg "github.com/DDismyname28/home-portal/database/repository/request"
	serviceRepoPkg "github.com/DDismyname28/home-portal/database/repository/service"
	userRepoPkg "github.com/DDismyname28/home-portal/database/repository/user"
	"github.com/DDismyname28/home-portal/handlers"
	"github.com/DDismyname28/home-portal/middleware"
	"github.com/DDismyname28/home-portal/routes"
	"github.com/DDismyname28/home-portal/services/catalog"
	"github.com/DDismyname28/home-portal/services/notification"
	"github.com/DDismyname28/home-portal/services/report"
	"github.com/DDismyname28/home-portal/services/request"
	"github.com/DDismyname28/home-portal/services/storage"
	"github.com/DDismyname28/home-portal/services/user"
	"github.com/DDismyname28/home-portal/utils"
	"github.com/DDismyname28/home-portal/workers"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	utils.InitializeLogger()
	logger := utils.GetLogger()
	defer logger.Sync()

	database.InitDB()
	utils.InitCache()
	utils.InitAuthCache()
	utils.FirebaseInit()

	for _, ensure := range []func() error{
		userRepoPkg.EnsureUserIndexes,
		requestRepoPkg.EnsureRequestIndexes,
		serviceRepoPkg.EnsureServiceIndexes,
	} {
		if err := ensure(); err != nil {
			logger.Sugar().Fatalf("main: failed to ensure indexes: %v", err)
		}
	}

	var blobStore storage.StorageService
	if cld, err := storage.NewCloudinaryStorage(); err != nil {
		logger.Warn("Cloudinary not configured, photo uploads disabled", zap.Error(err))
	} else {
		blobStore = cld
	}

	mailQueue := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisMailQueue,
	})
	defer mailQueue.Close()

	// Repositories.
	users := userRepoPkg.NewMongoUserRepo()
	requests := requestRepoPkg.NewMongoRequestRepo()
	offerings := serviceRepoPkg.NewMongoServiceRepo()

	// Services.
	dispatcher := notification.NewDefaultDispatcher(users, mailQueue, config.AppConfig.AdminEmail)
	userService := &user.DefaultUserService{Repo: users, Queue: mailQueue}
	requestService := &request.DefaultRequestService{
		Repo:     requests,
		Users:    users,
		Notifier: dispatcher,
		Blobs:    blobStore,
	}
	catalogService := &catalog.DefaultCatalogService{
		Repo:  offerings,
		Users: users,
		Cache: utils.GetCacheClient(),
	}
	reportService := &report.DefaultReportService{
		Requests: requests,
		Services: offerings,
		Users:    users,
	}

	// Handlers.
	handlerBundle := &handlers.HandlerBundle{
		UserRepo: users,
		Auth:     handlers.NewAuthHandler(userService),
		Request:  handlers.NewRequestHandler(requestService, catalogService, blobStore),
		Vendor:   handlers.NewVendorHandler(requestService),
		Catalog:  handlers.NewCatalogHandler(catalogService),
		Report:   handlers.NewReportHandler(reportService),
	}

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimit(config.AppConfig.MaxRequestsPerMin))
	routes.RegisterRoutes(router, handlerBundle)

	// Mail worker drains the notification queue alongside the API.
	mailServer, mailMux := workers.NewMailServer(&config.AppConfig)
	go func() {
		if err := mailServer.Run(mailMux); err != nil {
			logger.Sugar().Fatalf("main: mail worker stopped: %v", err)
		}
	}()

	srv := &http.Server{
		Addr:    ":" + config.AppConfig.AppPort,
		Handler: router,
	}

	go func() {
		logger.Info("Server listening", zap.String("port", config.AppConfig.AppPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down")

	mailServer.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: forced shutdown: %v", err)
	}
	logger.Info("Server stopped")
}
