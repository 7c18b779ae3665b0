package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/yeremiapane/gastro-os/config"
	"github.com/yeremiapane/gastro-os/events"
	"github.com/yeremiapane/gastro-os/metrics"
	"github.com/yeremiapane/gastro-os/router"
	"github.com/yeremiapane/gastro-os/services"
	"github.com/yeremiapane/gastro-os/utils"
	"gorm.io/gorm"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var cfg *config.Config

	root := &cobra.Command{
		Use:          "gastro-os",
		Short:        "GastroOS salon backend",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cfg = config.Load()
			utils.InitLogger(cfg.LogLevel)
			utils.SetJWTSecret(cfg.JWTSecret)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), cfg)
		},
	}

	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API, websocket hub and change monitor",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), cfg)
		},
	})
	root.AddCommand(&cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := openDB(cfg)
			if err == nil {
				utils.InfoLogger.Println("AutoMigrate completed.")
			}
			return err
		},
	})
	return root
}

func openDB(cfg *config.Config) (*gorm.DB, error) {
	db, err := config.InitDB(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := config.AutoMigrate(db); err != nil {
		return nil, fmt.Errorf("failed to AutoMigrate: %w", err)
	}
	return db, nil
}

func serve(ctx context.Context, cfg *config.Config) error {
	if cfg.GinMode == gin.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := openDB(cfg)
	if err != nil {
		return err
	}

	publisher, err := events.FromURL(cfg.AMQP.URL, cfg.AMQP.Exchange, utils.Component("events"))
	if err != nil {
		utils.ErrorLogger.WithError(err).Error("RabbitMQ unavailable, salon events disabled")
		publisher = events.Nop{}
	}
	defer publisher.Close()

	salon := services.NewSalonService(db)
	layouts := services.NewLayoutService(salon,
		services.WithLayoutObserver(metrics.Observer{}),
		services.WithCommitTimeout(cfg.Salon.CommitTimeout),
	)

	monitor := services.NewChangeMonitor(db, layouts, publisher)
	monitor.Interval = cfg.Salon.MonitorInterval
	monitor.Start()
	defer monitor.Stop()

	go housekeeping(ctx, layouts, cfg.Salon.EditorIdleTTL)

	r := router.SetupRouter(db, router.Options{
		Layouts:           layouts,
		TokenTTL:          cfg.TokenTTL,
		CORSOrigins:       cfg.CORSOrigins,
		TrustedProxies:    cfg.TrustedProxies,
		RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
		Burst:             cfg.RateLimit.Burst,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		utils.InfoLogger.Printf("Listening on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	utils.InfoLogger.Println("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Salon.CommitTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		utils.ErrorLogger.WithError(err).Error("server forced to shutdown")
	}

	// let in-flight layout writes land before the database goes away
	layouts.Drain()
	utils.InfoLogger.Println("Server exited")
	return nil
}

// housekeeping drops idle editors and expired revoked tokens.
func housekeeping(ctx context.Context, layouts *services.LayoutService, idleTTL time.Duration) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			editors := layouts.Evict(idleTTL)
			tokens := utils.PruneBlacklist()
			if editors > 0 || tokens > 0 {
				utils.InfoLogger.WithField("editors", editors).WithField("tokens", tokens).Debug("housekeeping")
			}
		case <-ctx.Done():
			return
		}
	}
}
