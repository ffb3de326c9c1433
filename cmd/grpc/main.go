package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fekuna/kiwi-storefront-service/config"
	"github.com/fekuna/kiwi-storefront-service/pkg/cache"
	"github.com/fekuna/kiwi-storefront-service/pkg/database"
	"github.com/fekuna/kiwi-storefront-service/pkg/i18n"
	"github.com/fekuna/kiwi-storefront-service/pkg/kvstore"
	"github.com/fekuna/kiwi-storefront-service/pkg/logger"
	"github.com/fekuna/kiwi-storefront-service/pkg/rpc"

	cartH "github.com/fekuna/kiwi-storefront-service/internal/cart/handler"
	cartRepoPkg "github.com/fekuna/kiwi-storefront-service/internal/cart/repository"
	cartUCPkg "github.com/fekuna/kiwi-storefront-service/internal/cart/usecase"

	catH "github.com/fekuna/kiwi-storefront-service/internal/category/handler"
	catRepoPkg "github.com/fekuna/kiwi-storefront-service/internal/category/repository"
	catUCPkg "github.com/fekuna/kiwi-storefront-service/internal/category/usecase"

	prodH "github.com/fekuna/kiwi-storefront-service/internal/product/handler"
	prodRepoPkg "github.com/fekuna/kiwi-storefront-service/internal/product/repository"
	prodUCPkg "github.com/fekuna/kiwi-storefront-service/internal/product/usecase"

	"github.com/fekuna/kiwi-storefront-service/internal/search"
	searchH "github.com/fekuna/kiwi-storefront-service/internal/search/handler"
	searchUCPkg "github.com/fekuna/kiwi-storefront-service/internal/search/usecase"

	userH "github.com/fekuna/kiwi-storefront-service/internal/user/handler"
	userRepoPkg "github.com/fekuna/kiwi-storefront-service/internal/user/repository"
	userUCPkg "github.com/fekuna/kiwi-storefront-service/internal/user/usecase"

	"github.com/fekuna/kiwi-storefront-service/internal/web"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/reflection"
)

func main() {
	// 1. Load Configuration
	_ = godotenv.Load() // Load .env file if it exists
	cfg := config.LoadEnv()

	// 2. Initialize Logger
	logConfig := &logger.ZapLoggerConfig{
		IsDevelopment:     false,
		Encoding:          cfg.Logger.Encoding,
		Level:             cfg.Logger.Level,
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
	}

	if cfg.Server.AppEnv == "development" {
		logConfig.IsDevelopment = true
		logConfig.Encoding = "console"
		logConfig.Level = "debug"
	}

	appLogger := logger.NewZapLogger(logConfig)
	defer appLogger.Sync()

	// 3. Initialize i18n
	translator, err := i18n.New(cfg.I18n.DefaultLocale)
	if err != nil {
		appLogger.Fatal("Could not load locales", zap.Error(err))
	}

	// 4. Load Catalog
	catalog, err := prodRepoPkg.LoadCatalog(cfg.Catalog.Path)
	if err != nil {
		appLogger.Fatal("Could not load catalog", zap.String("path", cfg.Catalog.Path), zap.Error(err))
	}
	appLogger.Info("Catalog loaded",
		zap.Int("products", len(catalog.Products)),
		zap.Int("categories", len(catalog.Categories)),
	)

	// 5. Open durable storage
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, err := openStore(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Could not open storage", zap.String("driver", cfg.Storage.Driver), zap.Error(err))
	}
	defer store.Close()

	// 6. Initialize Repositories
	prodRepo := prodRepoPkg.NewStaticRepository(catalog.Products)
	catRepo := catRepoPkg.NewStaticRepository(catalog.Categories)
	cartRepo := cartRepoPkg.NewKVRepository(store)
	userRepo := userRepoPkg.NewKVRepository(store)

	// 7. Initialize UseCases
	prodUC := prodUCPkg.NewProductUseCase(prodRepo, appLogger)
	catUC := catUCPkg.NewCategoryUseCase(catRepo, appLogger)
	searchUC := searchUCPkg.NewSearchUseCase(prodUC, catUC, search.Options{
		CheapBelow:     decimal.NewFromInt(int64(cfg.Search.CheapThreshold)),
		ExpensiveAbove: decimal.NewFromInt(int64(cfg.Search.ExpensiveThreshold)),
		Limit:          cfg.Search.QuickLimit,
		Debounce:       cfg.Search.Debounce,
	}, appLogger)
	cartUC := cartUCPkg.NewCartUseCase(cartRepo, prodUC, cartUCPkg.PaymentConfig{
		GatewayURL:  cfg.Payment.GatewayURL,
		ProductCode: cfg.Payment.ProductCode,
		SuccessURL:  cfg.Payment.SuccessURL,
		FailureURL:  cfg.Payment.FailureURL,
	}, cfg.Cart.SessionCacheSize, appLogger)
	userUC := userUCPkg.NewUserUseCase(userRepo, cfg.Auth.SimulatedLatency, appLogger)

	// 8. Initialize Handlers
	prodHandler := prodH.NewProductHandler(prodUC, appLogger)
	catHandler := catH.NewCategoryHandler(catUC, appLogger)
	searchHandler := searchH.NewSearchHandler(searchUC, appLogger)
	cartHandler := cartH.NewCartHandler(cartUC, appLogger)
	userHandler := userH.NewUserHandler(userUC, translator, appLogger)
	webHandler := web.NewHandler(prodUC, searchUC, cartUC, translator, appLogger)

	// 9. Start gRPC Server
	port := normalizePort(cfg.Server.GRPCPort)
	lis, err := net.Listen("tcp", port)
	if err != nil {
		log.Fatalf("failed to listen: %v", err)
	}

	grpcServer := grpc.NewServer(
		grpc.UnaryInterceptor(rpc.LoggingInterceptor(appLogger)),
		grpc.StreamInterceptor(rpc.StreamLoggingInterceptor(appLogger)),
	)

	// Register Services
	prodH.RegisterProductServiceServer(grpcServer, prodHandler)
	catH.RegisterCategoryServiceServer(grpcServer, catHandler)
	searchH.RegisterSearchServiceServer(grpcServer, searchHandler)
	cartH.RegisterCartServiceServer(grpcServer, cartHandler)
	userH.RegisterUserServiceServer(grpcServer, userHandler)

	// Register Reflection
	reflection.Register(grpcServer)

	appLogger.Info("Starting gRPC server", zap.String("port", port))
	go func() {
		if err := grpcServer.Serve(lis); err != nil {
			appLogger.Fatal("failed to serve", zap.Error(err))
		}
	}()

	// 10. Start HTTP Server
	httpServer := &http.Server{
		Addr:              normalizePort(cfg.Server.HTTPPort),
		Handler:           webHandler.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	appLogger.Info("Starting HTTP server", zap.String("addr", httpServer.Addr))
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("failed to serve http", zap.Error(err))
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		appLogger.Warn("HTTP shutdown incomplete", zap.Error(err))
	}
	grpcServer.GracefulStop()

	appLogger.Info("Server stopped")
}

func normalizePort(port string) string {
	if !strings.Contains(port, ":") {
		return ":" + port
	}
	return port
}

// openStore connects the durable medium selected by STORAGE_DRIVER.
func openStore(ctx context.Context, cfg *config.Config, appLogger logger.ZapLogger) (kvstore.Store, error) {
	switch cfg.Storage.Driver {
	case "memory":
		appLogger.Warn("Using in-memory storage; carts and users are lost on restart")
		return kvstore.NewMemoryStore(), nil

	case "sqlite":
		db, err := database.NewSQLite(cfg.Storage.SQLitePath)
		if err != nil {
			return nil, err
		}
		store, err := kvstore.NewSQLStore(ctx, db)
		if err != nil {
			db.Close()
			return nil, err
		}
		appLogger.Info("Opened SQLite storage", zap.String("path", cfg.Storage.SQLitePath))
		return store, nil

	case "postgres":
		db, err := database.NewPostgres(&database.PostgresConfig{
			Host:            cfg.Postgres.Host,
			Port:            cfg.Postgres.Port,
			User:            cfg.Postgres.User,
			Password:        cfg.Postgres.Password,
			DBName:          cfg.Postgres.DBName,
			SSLMode:         cfg.Postgres.SSLMode,
			MaxOpenConns:    cfg.Postgres.MaxOpenConns,
			MaxIdleConns:    cfg.Postgres.MaxIdleConns,
			ConnMaxLifetime: time.Duration(cfg.Postgres.ConnMaxLifetime) * time.Second,
			ConnMaxIdleTime: time.Duration(cfg.Postgres.ConnMaxIdleTime) * time.Second,
		})
		if err != nil {
			return nil, err
		}
		store, err := kvstore.NewSQLStore(ctx, db)
		if err != nil {
			db.Close()
			return nil, err
		}
		appLogger.Info("Connected to PostgreSQL database", zap.String("db_name", cfg.Postgres.DBName))
		return store, nil

	case "redis":
		redisClient, err := cache.NewRedisClient(&cache.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, err
		}
		appLogger.Info("Connected to Redis", zap.String("addr", cfg.Redis.Addr))
		return kvstore.NewRedisStore(redisClient.Client, cfg.Storage.RedisPrefix), nil
	}
	return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
}
