package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/gonexe/coupon-book-service/internal/api/http"
	"github.com/gonexe/coupon-book-service/internal/api/http/handlers"
	"github.com/gonexe/coupon-book-service/internal/auth"
	"github.com/gonexe/coupon-book-service/internal/config"
	"github.com/gonexe/coupon-book-service/internal/events"
	"github.com/gonexe/coupon-book-service/internal/lockstore"
	"github.com/gonexe/coupon-book-service/internal/observability"
	"github.com/gonexe/coupon-book-service/internal/persistence"
	"github.com/gonexe/coupon-book-service/internal/repository"
	"github.com/gonexe/coupon-book-service/internal/service"
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
	userRepo := repository.NewUserRepository(pool)
	bookRepo := repository.NewCouponBookRepository(pool)
	couponRepo := repository.NewCouponRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()
	events.RegisterAuditSubscriber(dispatcher, logger)

	authService := service.NewAuthService(*cfg, userRepo)
	bookService := service.NewCouponBookService(bookRepo, couponRepo)
	couponService := service.NewCouponService(service.CouponDependencies{
		CouponRepo: couponRepo,
		LockStore:  lockstore.NewRedisLockStore(redis.Client),
		Dispatcher: dispatcher,
		LockTTL:    cfg.Lock.TTL(),
		Logger:     logger,
	})

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), userRepo)
	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Users:          handlers.NewUsersHandler(authService),
		CouponBooks:    handlers.NewCouponBooksHandler(bookService),
		Coupons:        handlers.NewCouponsHandler(couponService),
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
