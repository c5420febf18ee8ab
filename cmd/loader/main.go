package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"catalog-assistant/internal/config"
	"catalog-assistant/internal/database"
	"catalog-assistant/internal/loader"
	"catalog-assistant/internal/logger"
	"catalog-assistant/internal/repository"

	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	dataDir := flag.String("data-dir", cfg.Loader.DataDir, "directory holding the source CSV or XLSX files")
	batchSize := flag.Int("batch-size", cfg.Loader.BatchSize, "records per insert batch")
	only := flag.String("only", "", "comma-separated entities to load (default: all)")
	flag.Parse()

	log, err := logger.New(cfg.Server.Env, "loader")
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}

	if err := run(cfg, log, *dataDir, *batchSize, *only); err != nil {
		log.Error("Loader failed", zap.Error(err))
		log.Sync()
		os.Exit(1)
	}
	log.Sync()
}

func run(cfg *config.Config, log *zap.Logger, dataDir string, batchSize int, only string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var opts []loader.Option
	if only != "" {
		jobs, err := loader.SelectJobs(strings.Split(only, ","))
		if err != nil {
			return err
		}
		opts = append(opts, loader.WithJobs(jobs...))
	}

	dbService, err := database.New(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer dbService.Close()

	if err := database.RunMigrations(dbService.DB(), log); err != nil {
		return err
	}

	redisClient, err := database.OpenRedis(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer redisClient.Close()
		opts = append(opts, loader.WithLocker(loader.NewRedisLocker(redisClient, loader.DefaultLockTTL, log)))
	}

	store := repository.NewBulkRepository(dbService.DB())
	l := loader.NewLoader(store, batchSize, log)

	_, err = loader.NewPipeline(l, store, dataDir, log, opts...).Run(ctx)
	return err
}
