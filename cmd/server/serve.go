package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/shire-forum/shire/internal/auth"
	"github.com/shire-forum/shire/internal/config"
	"github.com/shire-forum/shire/internal/redis"
	"github.com/shire-forum/shire/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the forum HTTP server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, logger, err := bootstrap()
	if err != nil {
		return err
	}
	defer logger.Sync()

	if cfg.Session.SecretKey == config.DefaultSecretKey {
		logger.Warn("using the built-in session secret; set SECRET_KEY before deploying")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := openDatabase(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	opts := server.Options{
		DB:           db,
		Hasher:       auth.NewHasher(cfg.Password.Iterations),
		Codec:        auth.NewSessionCodec(cfg.Session.SecretKey),
		CookieName:   cfg.Session.CookieName,
		CookieSecure: cfg.Session.CookieSecure,
		Logger:       logger,
	}

	if client := connectTracker(ctx, cfg, logger); client != nil {
		defer client.Close()
		opts.Tracker = client
	}

	handler, err := server.New(opts)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("starting server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down", zap.Duration("grace", cfg.Server.ShutdownTimeout))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// connectTracker returns nil when activity tracking is disabled or the
// cache cannot be reached; the forum runs without it.
func connectTracker(ctx context.Context, cfg *config.Config, logger *zap.Logger) *redis.Client {
	if !cfg.Redis.Enabled {
		return nil
	}

	client, err := redis.NewClient(ctx, &redis.Config{
		Host:        cfg.Redis.Host,
		Port:        cfg.Redis.Port,
		Password:    cfg.Redis.Password,
		DB:          cfg.Redis.DB,
		PoolSize:    cfg.Redis.PoolSize,
		DialTimeout: cfg.Redis.DialTimeout,
	}, logger.Named("redis"))
	if err != nil {
		logger.Warn("activity tracking disabled", zap.Error(err))
		return nil
	}
	return client
}
