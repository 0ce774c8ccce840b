package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-redisstream/pkg/redisstream"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/dictgate/dictgate/adapters/events"
	"github.com/dictgate/dictgate/adapters/reward"
	"github.com/dictgate/dictgate/adapters/store"
	"github.com/dictgate/dictgate/config"
	"github.com/dictgate/dictgate/corpus"
	"github.com/dictgate/dictgate/metrics"
	"github.com/dictgate/dictgate/ports"
	"github.com/dictgate/dictgate/service"
	transport "github.com/dictgate/dictgate/transport/http"
)

func serveCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the challenge gate server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), configPath)
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to YAML config file")

	return cmd
}

func runServe(ctx context.Context, configPath string) error {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	corp, err := corpus.Load(cfg.DictionaryPath)
	if err != nil {
		return err
	}
	logger.Info("corpus loaded", "path", cfg.DictionaryPath, "words", corp.Len())

	var issuer ports.RewardIssuer
	switch cfg.Reward.Mode {
	case config.RewardModeJWT:
		issuer = reward.NewJWTIssuer([]byte(cfg.Reward.JWTKey), cfg.Secret)
	default:
		issuer = reward.NewStaticFlag(cfg.Secret)
	}

	wmLogger := watermill.NewSlogLogger(logger)

	var (
		sessions  ports.SessionStore
		publisher message.Publisher
	)
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("invalid redis url: %w", err)
		}
		client := redis.NewClient(opts)
		if err := client.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("redis ping: %w", err)
		}
		defer client.Close()

		sessions = store.NewRedisStore(client, cfg.SessionTTL.Std())
		publisher, err = redisstream.NewPublisher(redisstream.PublisherConfig{Client: client}, wmLogger)
		if err != nil {
			return fmt.Errorf("failed to create redis publisher: %w", err)
		}
	} else {
		sessions = store.NewMemoryStore()
		publisher = gochannel.NewGoChannel(gochannel.Config{}, wmLogger)
	}
	defer publisher.Close()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	gate := service.NewGateService(
		service.Config{Threshold: cfg.Threshold, Window: cfg.AnswerWindow.Std()},
		sessions,
		corp,
		issuer,
		service.WithEvents(events.NewWatermillPublisher(publisher)),
		service.WithLogger(logger),
		service.WithMetrics(metrics.New(registry)),
	)

	gin.SetMode(gin.ReleaseMode)
	srv := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: transport.SetupRouter(gate, corp, logger, registry),
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("gate listening",
			"addr", cfg.ListenAddr,
			"threshold", cfg.Threshold,
			"window", cfg.AnswerWindow.Std())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
