package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/litrevu/litrevu/internal/api/http"
	"github.com/litrevu/litrevu/internal/api/http/handlers"
	"github.com/litrevu/litrevu/internal/auth"
	"github.com/litrevu/litrevu/internal/config"
	"github.com/litrevu/litrevu/internal/events"
	"github.com/litrevu/litrevu/internal/observability"
	"github.com/litrevu/litrevu/internal/persistence"
	"github.com/litrevu/litrevu/internal/repository"
	"github.com/litrevu/litrevu/internal/service"
	"github.com/litrevu/litrevu/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	repos := repository.NewRepositories(pool)
	txManager := repository.NewTxManager(pool)

	dispatcher := events.NewInMemoryDispatcher()
	metrics := observability.NewMetrics()

	mediaService, err := service.NewMediaService(cfg.Media, logger)
	if err != nil {
		logger.Fatal("failed to init media storage", zap.Error(err))
	}

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		UserRepo:          repos.Users,
		PasswordResetRepo: repos.Resets,
		RevocationStore:   auth.NewRedisRevocationStore(redis.Client),
	})
	ticketService := service.NewTicketService(service.TicketDependencies{
		TicketRepo: repos.Tickets,
		ReviewRepo: repos.Reviews,
		TxManager:  txManager,
		Dispatcher: dispatcher,
	})
	followService := service.NewFollowService(service.FollowDependencies{
		UserRepo:   repos.Users,
		FollowRepo: repos.Follows,
		Dispatcher: dispatcher,
	})
	feedService := service.NewFeedService(service.FeedDependencies{
		TicketRepo: repos.Tickets,
		ReviewRepo: repos.Reviews,
		FollowRepo: repos.Follows,
	})

	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), repos.Users, auth.NewRedisRevocationStore(redis.Client))

	app := fiber.New(fiber.Config{
		AppName:   cfg.App.Name,
		BodyLimit: int(cfg.Media.MaxUploadBytes) + 1<<20,
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	app.Static("/media", mediaService.Dir())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Tickets:        handlers.NewTicketsHandler(ticketService),
		Reviews:        handlers.NewReviewsHandler(ticketService),
		Follows:        handlers.NewFollowsHandler(followService),
		Feed:           handlers.NewFeedHandler(feedService),
		Media:          handlers.NewMediaHandler(mediaService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
