package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"stable-route.backend/internal/config"
	"stable-route.backend/internal/domain/entities"
	"stable-route.backend/internal/infrastructure/blockchain"
	"stable-route.backend/internal/infrastructure/bridges"
	"stable-route.backend/internal/infrastructure/events"
	"stable-route.backend/internal/infrastructure/jobs"
	"stable-route.backend/internal/infrastructure/repositories"
	"stable-route.backend/internal/interfaces/http/handlers"
	"stable-route.backend/internal/interfaces/http/middleware"
	"stable-route.backend/internal/usecases"
	"stable-route.backend/pkg/jwt"
	"stable-route.backend/pkg/logger"
	"stable-route.backend/pkg/redis"
)

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	openDB     = func(dsn string) (*gorm.DB, error) {
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			PrepareStmt: false,
		})
	}
	runServer = func(r *gin.Engine, port string) error { return r.Run(":" + port) }
	getStdDB  = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	// Load .env file
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg := loadCfg()

	// Initialize Logger
	initLog(cfg.Server.Env)
	logger.Info(context.Background(), "Logger initialized", zap.String("env", cfg.Server.Env))

	// Initialize Redis
	if err := initRedis(cfg.Redis.URL, cfg.Redis.Password); err != nil {
		logger.Error(context.Background(), "Failed to initialize Redis", zap.Error(err))
		return fmt.Errorf("failed to initialize redis: %w", err)
	}
	logger.Info(context.Background(), "Redis initialized")

	// Set Gin mode
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database using GORM
	dsn := cfg.Database.URL()
	db, err := openDB(dsn)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := getStdDB(db)
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		log.Printf("⚠️ Database not available: %v (endpoints will return errors)", err)
	} else {
		log.Println("✅ Connected to PostgreSQL via GORM")
	}

	// Initialize JWT service for transport relayer tokens
	jwtService := jwt.NewJWTService(cfg.Security.JWTSecret, cfg.Security.JWTExpiry)

	// Initialize repositories
	routeRepo := repositories.NewRouteRepository(db)
	contractRepo := repositories.NewProtocolContractRepository(db)
	senderRepo := repositories.NewAuthorizedSenderRepository(db)
	tokenRepo := repositories.NewSupportedTokenRepository(db)
	feeRepo := repositories.NewFeeRepository(db)
	transferRepo := repositories.NewTransferRepository(db)
	eventRepo := repositories.NewTransferEventRepository(db)
	nonceRepo := repositories.NewNonceRepository(db)
	inboundNonceRepo := repositories.NewInboundNonceRepository(db)
	uow := repositories.NewUnitOfWork(db)

	// Seed the dispatcher's collector identity so fee accrual works on a
	// fresh database. Only runs when the allow-list is empty, so an admin
	// revocation survives restarts.
	if cfg.Chain.FeeCollector != "" {
		if collectors, err := feeRepo.ListCollectors(context.Background()); err == nil && len(collectors) == 0 {
			if err := feeRepo.SetCollector(context.Background(), cfg.Chain.FeeCollector, true); err != nil {
				log.Printf("⚠️ Failed to seed fee collector: %v", err)
			} else {
				log.Printf("💰 Fee collector registered: %s", cfg.Chain.FeeCollector)
			}
		}
	}

	// Initialize blockchain client and custody
	clientFactory := blockchain.NewClientFactory()
	evmClient, err := clientFactory.GetEVMClient(cfg.Chain.RPCURL)
	if err != nil {
		return fmt.Errorf("failed to connect chain rpc: %w", err)
	}
	custody := blockchain.NewERC20Custody(evmClient, cfg.Chain.CustodyAddress, cfg.Security.OwnerPrivateKey)

	// Initialize protocol adapters
	adapters := usecases.AdapterRegistry{
		entities.ProtocolCCTP:      bridges.NewCCTPAdapter(evmClient, custody, cfg.Security.OwnerPrivateKey),
		entities.ProtocolCCTPHooks: bridges.NewCCTPHooksAdapter(evmClient, custody, cfg.Security.OwnerPrivateKey),
		entities.ProtocolLayerZero: bridges.NewLayerZeroAdapter(evmClient, custody, cfg.Security.OwnerPrivateKey),
		entities.ProtocolStargate:  bridges.NewStargateAdapter(evmClient, custody, cfg.Security.OwnerPrivateKey),
	}
	swapper := bridges.NewSwapExecutor(evmClient, custody, cfg.Security.OwnerPrivateKey)

	// Initialize event publisher
	publisher := events.NewRedisPublisher(events.DefaultChannel)

	// Initialize usecases
	registryUsecase := usecases.NewRouteRegistryUsecase(routeRepo, contractRepo, senderRepo, tokenRepo, eventRepo, uow, publisher, cfg.Chain.ChainID)
	feeUsecase := usecases.NewFeeUsecase(feeRepo, routeRepo, adapters, cfg.Chain.ChainID)
	dispatcherUsecase := usecases.NewDispatcherUsecase(routeRepo, feeRepo, transferRepo, eventRepo, nonceRepo, uow, custody, swapper, adapters, publisher, cfg.Chain.ChainID, cfg.Chain.FeeCollector)
	receiverUsecase := usecases.NewHookReceiverUsecase(senderRepo, tokenRepo, routeRepo, eventRepo, inboundNonceRepo, uow, custody, swapper, publisher, cfg.Chain.LocalTransport, cfg.Chain.ChainID)

	// Initialize handlers
	adminHandler := handlers.NewAdminHandler(registryUsecase, feeUsecase, dispatcherUsecase)
	routeHandler := handlers.NewRouteHandler(registryUsecase, feeUsecase, usecases.NewPlannerUsecase(), cfg.Chain.ChainID)
	transferHandler := handlers.NewTransferHandler(dispatcherUsecase)
	settlementHandler := handlers.NewSettlementHandler(receiverUsecase)

	// Auth middleware
	adminAuthMiddleware := middleware.AdminAuthMiddleware(cfg.Security.AdminAPIKeyHash)
	transportAuthMiddleware := middleware.TransportAuthMiddleware(jwtService)

	// Start background jobs
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	attestationJob := jobs.NewAttestationPollJob(transferRepo, eventRepo, cfg.Attestation.BaseURL, cfg.Attestation.LocalDomain, cfg.Attestation.PollInterval)
	go attestationJob.Start(ctx)

	// Initialize router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.MetricsMiddleware())

	applyCORSMiddleware(r)
	registerHealthRoute(r)
	registerMetricsRoute(r)
	registerAPIV1Routes(r, routeDeps{
		adminHandler:            adminHandler,
		routeHandler:            routeHandler,
		transferHandler:         transferHandler,
		settlementHandler:       settlementHandler,
		adminAuthMiddleware:     adminAuthMiddleware,
		transportAuthMiddleware: transportAuthMiddleware,
	})

	// Graceful shutdown
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Println("🛑 Shutting down server...")
		attestationJob.Stop()
		cancel()
	}()

	// Start server
	log.Printf("🚀 Stable-Route Backend starting on port %s", cfg.Server.Port)
	log.Printf("📚 API: http://localhost:%s/api/v1", cfg.Server.Port)
	log.Printf("❤️ Health: http://localhost:%s/health", cfg.Server.Port)

	if err := runServer(r, cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}
