package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/tlsdygks1992-dotcom/church-management-sub001/internal/application/dispatcher"
	"github.com/tlsdygks1992-dotcom/church-management-sub001/internal/application/service"
	"github.com/tlsdygks1992-dotcom/church-management-sub001/internal/config"
	"github.com/tlsdygks1992-dotcom/church-management-sub001/internal/domain/event"
	"github.com/tlsdygks1992-dotcom/church-management-sub001/internal/infrastructure/notification"
	"github.com/tlsdygks1992-dotcom/church-management-sub001/internal/infrastructure/persistence/repository"
	"github.com/tlsdygks1992-dotcom/church-management-sub001/internal/infrastructure/persistence/sqlite"
	httpserver "github.com/tlsdygks1992-dotcom/church-management-sub001/internal/interfaces/http"
	"github.com/tlsdygks1992-dotcom/church-management-sub001/pkg/database"
	"github.com/tlsdygks1992-dotcom/church-management-sub001/pkg/utils"
)

func main() {
	// Load configuration
	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, err := utils.NewLogger(utils.LoggerConfig{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting Church Report Approval System",
		zap.String("version", "1.0.0"),
		zap.Int("port", cfg.Server.Port))

	// Initialize database
	db, err := database.New(database.Config{
		Path:            cfg.Database.Path,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}, logger)
	if err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer db.Close()

	// Run migrations
	migrator := database.NewMigrator(db, logger)
	if err := migrator.RunMigrations(cfg.Database.MigrationsDir); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	sugar := utils.NewSugarAdapter(logger)

	// Repositories
	reportRepo := repository.NewReportRepository(db.DB, logger)
	historyRepo := repository.NewHistoryRepository(db.DB, logger)
	userRepo := repository.NewUserRepository(db.DB, logger)
	departmentRepo := repository.NewDepartmentRepository(db.DB, logger)
	notificationRepo := repository.NewNotificationRepository(db.DB, logger)

	txManager := sqlite.NewDB(db.DB, logger)

	// Event dispatcher and subscribers
	eventDispatcher := dispatcher.NewDispatcher(dispatcher.WithLogger(sugar))
	defer eventDispatcher.Close()

	pushSender := notification.NewWebhookSender(notification.Config{
		WebhookURL: cfg.Notification.WebhookURL,
		AuthToken:  cfg.Notification.AuthToken,
		Timeout:    cfg.Notification.Timeout,
	}, logger)

	notificationService := service.NewNotificationService(
		reportRepo, userRepo, notificationRepo, pushSender, sugar)
	eventDispatcher.SubscribeNamed(event.TypeStatusChanged, "push-notification",
		notificationService.HandleStatusChanged)

	// Application services
	reportService := service.NewReportService(reportRepo, historyRepo, userRepo, departmentRepo, sugar)
	approvalService := service.NewApprovalService(
		reportRepo, historyRepo, txManager, eventDispatcher, sugar)

	// HTTP server
	server := httpserver.NewServer(httpserver.ServerConfig{
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}, reportService, approvalService, userRepo, departmentRepo, sugar)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := server.Start(ctx); err != nil {
		logger.Fatal("Server error", zap.Error(err))
	}

	logger.Info("Server shut down cleanly")
}
