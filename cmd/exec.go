package cmd

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"governance-dashboard/config"
	"governance-dashboard/internal/handlers"
	"governance-dashboard/internal/seed"
	"governance-dashboard/internal/services"
	"governance-dashboard/monitoring"
	"governance-dashboard/utils"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	pubnub "github.com/pubnub/go"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

func Start() error {
	app := pocketbase.New()

	// Load configuration
	cfg := config.LoadConfig()

	registerCommands(app.RootCmd, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Setup graceful shutdown
	go handleShutdown(cancel)

	// Seed, Redis and the background workers are only needed by serve;
	// other subcommands must run without them.
	var redisClient *redis.Client
	defer func() {
		if redisClient != nil {
			redisClient.Close()
		}
	}()

	app.OnServe().BindFunc(func(e *core.ServeEvent) error {
		client, err := setupServer(ctx, cfg, e)
		if err != nil {
			return err
		}
		redisClient = client

		return e.Next()
	})

	// Start server
	return app.Start()
}

func registerCommands(root *cobra.Command, cfg *config.Config) {
	root.AddCommand(newValidateSeedCommand(cfg))
}

// setupServer builds the services and registers the routes on e.Router. The
// returned client is owned by the caller.
func setupServer(ctx context.Context, cfg *config.Config, e *core.ServeEvent) (*redis.Client, error) {
	data, err := seed.Load(cfg.SeedFile)
	if err != nil {
		return nil, err
	}
	directory, store, err := data.Build()
	if err != nil {
		return nil, err
	}
	log.Printf("Loaded %d users, %d venues, %d events", directory.Len(), len(data.Venues), len(data.Events))

	// Initialize Redis
	redisClient, err := utils.NewRedisClient(cfg.RedisURL)
	if err != nil {
		return nil, err
	}

	// Initialize services
	var notifier services.Notifier
	if cfg.PubNubEnabled() {
		pnConfig := pubnub.NewConfig()
		pnConfig.PublishKey = cfg.PubNubPublishKey
		pnConfig.SubscribeKey = cfg.PubNubSubscribeKey
		pnConfig.SecretKey = cfg.PubNubSecretKey
		pnConfig.UUID = cfg.PubNubUserID

		notifier = services.NewPubNubNotifier(pubnub.NewPubNub(pnConfig), cfg.OccupancyChannel)
	} else {
		log.Println("PubNub keys not set, occupancy notifications disabled")
	}

	sessionStore := services.NewSessionStore(redisClient, cfg.SessionTTL)
	accessControl := services.NewAccessControl(directory)
	dashboardService := services.NewDashboardService(accessControl, store, notifier)

	monitor := monitoring.NewMonitor(store, sessionStore, cfg.MetricsInterval)
	if cfg.EnableMetrics {
		go monitor.Run(ctx)
		go serveMetrics(ctx, cfg.MetricsPort)
	}

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(accessControl, sessionStore, monitor)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService, sessionStore)
	adminHandler := handlers.NewAdminHandler(dashboardService, sessionStore, monitor)

	api := e.Router.Group("/api/v1")

	// Auth endpoints
	api.GET("/roles", authHandler.Roles)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/logout", authHandler.Logout)
	api.GET("/auth/session", authHandler.Session)

	// Dashboard endpoints
	api.GET("/dashboard", dashboardHandler.GetDashboard)
	api.GET("/dashboard/summary", dashboardHandler.GetSummary)

	// Admin endpoints
	api.PUT("/admin/venues/{name}/occupancy", adminHandler.SetOccupancy)

	// Health check
	e.Router.GET("/health", healthCheck(redisClient))

	log.Println("Server routes registered")

	return redisClient, nil
}

func healthCheck(redisClient *redis.Client) func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := utils.RedisHealthCheck(e.Request.Context(), redisClient); err != nil {
			return e.JSON(http.StatusServiceUnavailable, map[string]string{
				"status": "unhealthy",
				"error":  err.Error(),
			})
		}
		return e.JSON(http.StatusOK, map[string]string{"status": "healthy"})
	}
}

func serveMetrics(ctx context.Context, port string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", monitoring.Handler())

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	slog.Info("Metrics listener started", "addr", srv.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Metrics listener stopped", "error", err)
	}
}

// handleShutdown handles graceful shutdown
func handleShutdown(cancel context.CancelFunc) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	log.Println("Shutdown signal received, cleaning up...")
	cancel()
}
