package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"mqbroker/internal/broker"
	"mqbroker/internal/config"
	"mqbroker/internal/constants"
	"mqbroker/internal/events"
	"mqbroker/internal/filter"
	"mqbroker/internal/logger"
	"mqbroker/internal/message"
	"mqbroker/internal/queue"
	"mqbroker/pkg/bootstrap"
	"mqbroker/pkg/health"
	"mqbroker/pkg/metrics"
	"mqbroker/pkg/middleware"
	"mqbroker/pkg/ratelimit"
	"mqbroker/pkg/tracing"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type App struct {
	config         *config.Config
	logger         logger.Logger
	base           *bootstrap.Base
	notifier       *events.Notifier
	service        *broker.Service
	server         *http.Server
	router         *gin.Engine
	tracerProvider *tracing.TracerProvider
}

func NewApp(cfg *config.Config, log logger.Logger) *App {
	return &App{
		config: cfg,
		logger: log,
		base:   bootstrap.NewBase(cfg, log),
	}
}

func (a *App) Initialize(ctx context.Context) error {
	tp, err := tracing.Init(a.config.Tracing, constants.ServiceName)
	if err != nil {
		return fmt.Errorf("failed to initialize tracing: %w", err)
	}
	a.tracerProvider = tp

	if err := a.base.InitEvents(ctx); err != nil {
		return fmt.Errorf("failed to initialize events: %w", err)
	}

	if err := a.initService(); err != nil {
		return fmt.Errorf("failed to initialize service: %w", err)
	}

	if err := a.initRouter(ctx); err != nil {
		return fmt.Errorf("failed to initialize router: %w", err)
	}

	a.initServer()
	return nil
}

func (a *App) initService() error {
	engine, err := filter.NewEngine()
	if err != nil {
		return fmt.Errorf("failed to create filter engine: %w", err)
	}

	store := queue.NewStore(message.NewFingerprinter(a.config.Queue.FingerprintAlgorithm))
	a.notifier = events.NewNotifier(a.base.Publisher, a.config.Events, a.config.CircuitBreaker, a.logger)
	a.service = broker.NewService(store, engine, a.notifier, a.logger)
	return nil
}

func (a *App) initRouter(ctx context.Context) error {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.HandleMethodNotAllowed = true

	if a.config.Tracing.Enabled {
		router.Use(tracing.GinMiddleware(constants.ServiceName))
	}

	router.Use(middleware.RecoveryMiddleware(a.logger))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggerMiddleware(a.logger))

	if a.config.Server.RateLimit.Enabled {
		rateLimitConfig := ratelimit.FromConfig(a.config.Server.RateLimit)
		router.Use(ratelimit.RateLimitMiddleware(ctx, rateLimitConfig))
		a.logger.InfowCtx(ctx, "Rate limiting enabled", "rps", rateLimitConfig.RPS, "burst", rateLimitConfig.Burst)
	}

	router.NoRoute(middleware.NoRouteHandler())
	router.NoMethod(middleware.NoMethodHandler())

	broker.NewHandler(a.service, a.logger).RegisterRoutes(router)

	metrics.Register()

	router.GET("/health", a.healthHandler())
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if a.config.Server.EnableSwagger {
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	a.router = router
	return nil
}

func (a *App) healthHandler() gin.HandlerFunc {
	registry := health.NewCheckerRegistry()
	registry.Register(health.NewQueueChecker(a.service.QueueSize))
	for _, checker := range a.base.Checkers {
		registry.Register(checker)
	}
	if cb := a.notifier.Breaker(); cb != nil {
		registry.Register(health.NewBreakerChecker(cb.Name(), cb.IsOpen))
	}

	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), constants.HealthCheckTimeout)
		defer cancel()

		h := registry.Check(ctx)
		statusCode := http.StatusOK
		if h.Status == health.StatusUnhealthy {
			statusCode = http.StatusServiceUnavailable
		}
		c.JSON(statusCode, h)
	}
}

func (a *App) initServer() {
	a.server = &http.Server{
		Addr:         health.HostPort(a.config.Server.Host, a.config.Server.Port),
		Handler:      a.router,
		ReadTimeout:  a.config.Server.ReadTimeout(),
		WriteTimeout: a.config.Server.WriteTimeout(),
	}
}

// Run serves until ctx is cancelled or the listener fails, then shuts down.
func (a *App) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.logger.InfowCtx(ctx, "Server listening", "addr", a.server.Addr)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		return a.Shutdown(ctx)
	})

	return g.Wait()
}

func (a *App) Shutdown(ctx context.Context) error {
	a.logger.InfowCtx(ctx, "Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
	defer cancel()

	return a.base.Shutdown(shutdownCtx, func(ctx context.Context) []error {
		var errs []error

		if a.server != nil {
			if err := a.server.Shutdown(ctx); err != nil {
				errs = append(errs, fmt.Errorf("server shutdown error: %w", err))
			}
		}

		if a.tracerProvider != nil {
			if err := a.tracerProvider.Shutdown(ctx); err != nil {
				errs = append(errs, fmt.Errorf("tracer provider shutdown error: %w", err))
			}
		}

		return errs
	})
}
