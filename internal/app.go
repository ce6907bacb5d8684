package internal

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"file-drive-api/config"
	"file-drive-api/internal/application/ports"
	"file-drive-api/internal/application/services"
	"file-drive-api/internal/infrastructure/db/postgres"
	"file-drive-api/internal/infrastructure/db/postgres/favorite"
	"file-drive-api/internal/infrastructure/db/postgres/file"
	"file-drive-api/internal/infrastructure/db/postgres/user"
	"file-drive-api/internal/infrastructure/jwt"
	"file-drive-api/internal/infrastructure/metrics"
	"file-drive-api/internal/infrastructure/mq"
	"file-drive-api/internal/infrastructure/s3"
	"file-drive-api/internal/interface/api/rest"
	"file-drive-api/internal/interface/api/rest/middleware"
	"file-drive-api/pkg/rmqconsumer"
)

const healthTimeout = 2 * time.Second

type App struct {
	logger     *zap.Logger
	cfg        config.Config
	db         *pgxpool.Pool
	s3         ports.S3Client
	verifier   ports.TokenVerifier
	httpSrv    *http.Server
	router     *gin.Engine
	mCounter   *prometheus.CounterVec
	mq         ports.RabbitMQ
	mqConsumer ports.RMQConsumer
}

func NewApp(ctx context.Context) (*App, error) {
	// logger
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("cannot initialize zap logger: %v", err)
	}
	defer logger.Sync()

	// config
	if err = godotenv.Load(".env"); err != nil {
		logger.Warn("no .env file, using process environment", zap.Error(err))
	}
	cfg := config.Load()
	if err = cfg.Validate(); err != nil {
		logger.Fatal("config error", zap.Error(err))
	}

	// metrics
	mCounter := metrics.NewCounter()
	mDuration := metrics.NewRequestDuration()

	// router
	switch cfg.App.Env {
	case gin.ReleaseMode, "prod", "production":
		gin.SetMode(gin.ReleaseMode)
	case gin.TestMode:
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.New(corsConfig(cfg.App.CORSOrigins)))
	r.Use(middleware.RequestLogGin(logger, mCounter, mDuration))

	// httpServer
	httpSrv := &http.Server{
		Addr:              cfg.App.Host + ":" + cfg.App.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// db
	dbDsn, err := cfg.DBDSN()
	if err != nil {
		logger.Fatal("DB config error", zap.Error(err))
	}
	if cfg.DB.Migrate {
		if err = postgres.MigrateUp(logger, dbDsn); err != nil {
			logger.Fatal("failed to migrate database", zap.Error(err))
		}
	}
	dbPool, err := postgres.New(ctx, logger, dbDsn)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}

	// s3
	s3Client, err := s3.New(ctx, logger, cfg.S3)
	if err != nil {
		logger.Fatal("failed to connect to S3", zap.Error(err))
	}

	// token verification
	var verifier ports.TokenVerifier
	if cfg.Auth.JWKSURL != "" {
		verifier, err = jwt.NewJWKSVerifier(ctx, cfg.Auth.JWKSURL, cfg.Auth.Issuer)
		if err != nil {
			logger.Fatal("failed to load JWKS", zap.Error(err))
		}
	} else {
		verifier = jwt.New(cfg.Auth.JWTSecret, cfg.Auth.Issuer)
	}

	// rabbitMQ
	rabbitDsn, err := cfg.AMQPDSN()
	if err != nil {
		logger.Fatal("RabbitMQ config error", zap.Error(err))
	}
	rbMQ := mq.New(cfg.MQ, logger)
	if err = rbMQ.Connect(ctx, rabbitDsn); err != nil {
		logger.Fatal("failed to connect to rabbitMQ", zap.Error(err))
	}
	if err = rbMQ.Init(); err != nil {
		logger.Fatal("failed init rabbitMQ", zap.Error(err))
	}
	// audit consumer
	rmqConsumer := rmqconsumer.New(cfg.MQ, logger, rbMQ.GetConn())
	if err = rmqConsumer.Connect(rabbitDsn); err != nil {
		logger.Fatal("failed to connect rabbitMQ consumer", zap.Error(err))
	}
	if err = rmqConsumer.Init(); err != nil {
		logger.Fatal("failed to init rabbitMQ consumer", zap.Error(err))
	}

	return &App{
		logger:     logger,
		cfg:        cfg,
		db:         dbPool,
		s3:         s3Client,
		verifier:   verifier,
		httpSrv:    httpSrv,
		router:     r,
		mCounter:   mCounter,
		mq:         rbMQ,
		mqConsumer: rmqConsumer,
	}, nil
}

func corsConfig(origins []string) cors.Config {
	c := cors.DefaultConfig()
	c.AllowHeaders = append(c.AllowHeaders, "Authorization")
	if len(origins) == 0 {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = origins
	}
	return c
}

func (a *App) Close() {
	if a.db != nil {
		a.db.Close()
	}
	if a.mqConsumer != nil {
		if err := a.mqConsumer.Close(); err != nil && a.logger != nil {
			a.logger.Warn("rabbitMQ consumer close error", zap.Error(err))
		}
	}
	if a.mq != nil && a.mq.GetConn() != nil {
		_ = a.mq.GetConn().Close()
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

// Run starts the http server, the event publisher and the audit consumer
// under one context and stops them together on SIGINT/SIGTERM.
func (a *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGUSR1)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.logger.Info("starting "+a.cfg.App.Name, zap.String("addr", a.httpSrv.Addr))
		if err := a.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server "+a.cfg.App.Name+" error: %w", err)
		}

		return nil
	})

	g.Go(func() error {
		a.mq.PublisherWorker(ctx)
		return nil
	})

	g.Go(func() error {
		a.mqConsumer.DeliveryWorker(ctx)
		return nil
	})

	<-ctx.Done()

	a.logger.Info("shutting down " + a.cfg.App.Name + " gracefully...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if a.httpSrv != nil {
		if err := a.httpSrv.Shutdown(shutdownCtx); err != nil {
			a.logger.Error("http server shutdown "+a.cfg.App.Name+" error", zap.Error(err))
			return err
		}
	}

	if err := g.Wait(); err != nil {
		a.logger.Error(a.cfg.App.Name+" returning an error", zap.Error(err))
		return err
	}

	a.logger.Info(a.cfg.App.Name + " gracefully stopped")

	return nil
}

func (a *App) InitControllers() {
	// repos
	userRepo := user.NewRepository(a.db)
	fileRepo := file.NewRepository(a.db)
	favoriteRepo := favorite.NewRepository(a.db)

	// services
	accessService := services.NewAccessService(userRepo, a.cfg.Auth.TokenOrgFallback, a.logger)
	userService := services.NewUserService(userRepo, a.mCounter)
	fileService := services.NewFileService(
		fileRepo,
		favoriteRepo,
		userRepo,
		accessService,
		a.s3,
		a.mq,
		a.mCounter,
		a.logger,
	)

	// identity resolution for every route below
	a.router.Use(middleware.IdentityGate(a.verifier, userService, a.logger))

	// controllers
	rest.NewFileController(
		a.router,
		fileService,
		a.logger,
		middleware.NewRateLimiter(a.cfg.Limits.UploadURLPerMinute, a.cfg.Limits.UploadURLBurst),
	)
	rest.NewWebhookController(a.router, userService, a.cfg.Auth.WebhookSecret, a.cfg.Auth.Issuer, a.logger)

	// ops
	a.router.GET(rest.RouteHealth, a.health)
	a.router.GET(rest.RouteMetrics, gin.WrapH(promhttp.Handler()))
}

func (a *App) health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
	defer cancel()

	if err := a.db.Ping(ctx); err != nil {
		a.logger.Warn("health check: db ping failed", zap.Error(err))
		c.Status(http.StatusServiceUnavailable)
		return
	}
	c.Status(http.StatusOK)
}

func (a *App) Logger() *zap.Logger { return a.logger }
