package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/cors"
	"github.com/spf13/cobra"

	"github.com/andrewpaige1/flipsnap-api/auth"
	"github.com/andrewpaige1/flipsnap-api/config"
	"github.com/andrewpaige1/flipsnap-api/handlers"
	"github.com/andrewpaige1/flipsnap-api/mastery"
	"github.com/andrewpaige1/flipsnap-api/middleware"
	"github.com/andrewpaige1/flipsnap-api/notice"
	"github.com/andrewpaige1/flipsnap-api/review"
	"github.com/andrewpaige1/flipsnap-api/scheduler"
	"github.com/andrewpaige1/flipsnap-api/store"
	"github.com/andrewpaige1/flipsnap-api/worker"
)

const (
	changeBuffer  = 256
	pruneInterval = 5 * time.Minute
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg)
		},
	}
}

func serve(ctx context.Context, cfg *config.Config) error {
	db, err := config.Connect(cfg.Database)
	if err != nil {
		return fmt.Errorf("config.Connect() > %w", err)
	}
	s := store.New(db)
	notices := notice.NewBoard()

	pool := worker.NewPool(worker.Options{
		Workers:       cfg.Writer.Workers,
		Queue:         cfg.Writer.Queue,
		RetryAttempts: cfg.Writer.RetryAttempts,
	})
	pool.Start()
	// Runs after server.Shutdown so writes from in-flight requests are stored.
	defer pool.Close()

	engine := review.NewEngine(s, pool, notices, review.Options{
		SwipeThreshold: cfg.Review.SwipeThreshold,
		SessionTTL:     cfg.Review.SessionTTL,
	})

	aggregator := mastery.NewAggregator(s, notices)
	changes, unsubscribe := s.Subscribe(changeBuffer)
	defer unsubscribe()
	go aggregator.Run(ctx, changes)

	sched := scheduler.New(aggregator, engine)
	if err := sched.Start(ctx, cfg.Mastery.ReconcileInterval, pruneInterval); err != nil {
		return err
	}
	defer sched.Stop()

	authMiddleware, err := middleware.EnsureValidToken(auth.TokenOptions{
		Secret:   cfg.Auth.JWTSecret,
		Issuer:   cfg.Auth.Issuer,
		Audience: cfg.Auth.Audience,
	})
	if err != nil {
		return fmt.Errorf("middleware.EnsureValidToken() > %w", err)
	}

	mux := http.NewServeMux()
	h := &handlers.DBHandler{Store: s, Engine: engine, Mastery: aggregator, Notices: notices}
	h.Routes(mux)

	// Configure CORS with specific options
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.Server.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Requested-With", "Accept", "Origin"},
		AllowCredentials: true,
		MaxAge:           86400,
	}).Handler(authMiddleware(middleware.SyncUserMiddleware(s)(mux)))

	server := &http.Server{
		Addr:              "0.0.0.0:" + cfg.Server.Port,
		Handler:           corsHandler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Default().Info("starting server", slog.String("addr", server.Addr))
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server.ListenAndServe() > %w", err)
	case <-ctx.Done():
	}

	slog.Default().Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
