package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"diabetesapi/config"
	dhttp "diabetesapi/http"
	"diabetesapi/logger"
	"diabetesapi/ml"
	"diabetesapi/monitoring"
)

func newServeCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Load the model and start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), *configPath)
		},
	}
}

func runServe(ctx context.Context, configPath string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	// Look for config in the parent directory too, for runs from a subdir
	if _, err := os.Stat(configPath); errors.Is(err, os.ErrNotExist) && !filepath.IsAbs(configPath) {
		if _, perr := os.Stat(filepath.Join("..", configPath)); perr == nil {
			configPath = filepath.Join("..", configPath)
		}
	}

	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, level, err := logger.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	log.Info("config loaded", zap.String("path", configPath), zap.String("log_level", cfg.Log.Level))

	model, err := ml.LoadModel(cfg.ML.ModelType, cfg.ML.ModelPath)
	if err != nil {
		log.Error("failed to load model",
			zap.String("type", cfg.ML.ModelType),
			zap.String("path", cfg.ML.ModelPath),
			zap.Error(err),
		)
		return fmt.Errorf("load model: %w", err)
	}
	log.Info("model loaded",
		zap.String("type", cfg.ML.ModelType),
		zap.String("path", cfg.ML.ModelPath),
		zap.Ints("classes", model.Classes()),
	)

	handlers := dhttp.NewHandlers(ml.NewPredictor(model), monitoring.NewMetricsCollector(), log)
	server := dhttp.NewServer(dhttp.ServerConfig{
		Port:           cfg.Http.Port,
		Timeout:        cfg.Http.Timeout,
		AllowedOrigins: cfg.Http.AllowedOrigins,
	}, handlers, log)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(server.Start)
	g.Go(func() error {
		<-gctx.Done()
		return server.Stop()
	})
	g.Go(func() error {
		err := config.Watch(gctx, configPath, log, func(next *config.Config) {
			if err := logger.SetLevel(level, next.Log.Level); err != nil {
				log.Warn("ignoring log level from reloaded config", zap.Error(err))
				return
			}
			log.Info("log level updated", zap.String("level", next.Log.Level))
		})
		if err != nil {
			log.Warn("config watcher disabled", zap.Error(err))
		}
		return nil
	})

	err = g.Wait()
	log.Info("exiting")
	return err
}
