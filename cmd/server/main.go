package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront-service/internal/catalog"
	"storefront-service/internal/config"
	httpapi "storefront-service/internal/controllers/http"
	"storefront-service/internal/domain"
	"storefront-service/internal/infra"
	mmysql "storefront-service/internal/infra/mysql"
	"storefront-service/internal/infra/rabbitmq"
	"storefront-service/internal/logger"
	mysqlrepo "storefront-service/internal/repository/mysql"
	"storefront-service/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	lg, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer lg.Sync()

	db, err := mmysql.NewMySQL(cfg.MySQL)
	if err != nil {
		lg.Fatal("db: connect", zap.Error(err))
	}

	orderRepo := mysqlrepo.NewOrderRepository(db, lg)
	expenseRepo := mysqlrepo.NewExpenseRepository(db, lg)
	reviewRepo := mysqlrepo.NewReviewRepository(db, lg)
	productRepo := mysqlrepo.NewProductRepository(db, lg)

	redisClient := redis.NewClient(&redis.Options{
		Addr:         cfg.RedisAddr(),
		DB:           0,
		PoolSize:     50,
		MinIdleConns: 5,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  500 * time.Millisecond,
		WriteTimeout: 500 * time.Millisecond,
	})
	defer redisClient.Close()

	gateway := catalog.NewGateway(productRepo, redisClient, cfg.ProductCacheTTL, lg)

	publisher, err := rabbitmq.NewPublisher(cfg.RabbitMQURL, cfg.OrderExchange, lg)
	if err != nil {
		lg.Fatal("failed to init publisher", zap.Error(err))
	}
	defer publisher.Close()

	dispatcher := services.NewDispatcher(rabbitmq.NewEventNotifier(publisher), lg)
	uploader := infra.NewUploadClient(cfg.UploadURL, cfg.UploadTimeout)

	watcher := catalog.NewWatcher(gateway, cfg.CatalogPollInterval, func(ctx context.Context, products []domain.Product) {
		gateway.Warm(ctx, products)
	}, lg)

	handler := httpapi.NewHandler(httpapi.Services{
		Checkout:  services.NewCheckoutService(orderRepo, gateway, uploader, dispatcher, lg),
		Orders:    services.NewOrderService(orderRepo, dispatcher, lg),
		Payments:  services.NewPaymentService(orderRepo, dispatcher, lg),
		Analytics: services.NewAnalyticsService(orderRepo, expenseRepo, gateway, cfg.Location()),
		Expenses:  services.NewExpenseService(expenseRepo, lg),
		Reviews:   services.NewReviewService(reviewRepo, gateway, lg),
		Products:  watcher,
	}, []byte(cfg.JWTSecret), lg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go watcher.Run(ctx)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), httpapi.RequestLogger(lg))
	handler.RegisterRoutes(r)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		lg.Info("starting storefront service", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			lg.Fatal("server run", zap.Error(err))
		}
	}()

	<-ctx.Done()
	lg.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		lg.Error("server shutdown", zap.Error(err))
	}
	dispatcher.Wait()
}
