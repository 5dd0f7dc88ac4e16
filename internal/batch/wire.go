package batch

import (
	"fmt"

	"allocation/internal/batch/repository"
	"allocation/internal/batch/service"
	"allocation/internal/config"
	"allocation/internal/infrastructure/logger"

	"go.uber.org/zap"
)

func NewModule(cfg *config.Config, zapLogger *zap.Logger) *service.AllocationService {
	batchRepo := repository.NewInMemoryBatchRepository()

	return service.NewAllocationService(
		batchRepo,
		zapLogger.Named("allocation"),
		cfg.Allocation.MaxLineQuantity,
	)
}

// Bootstrap loads configuration, builds the logger and returns a ready module.
// An empty configPath reads configuration from the environment only. The
// caller owns the returned logger and should Sync it.
func Bootstrap(configPath string) (*service.AllocationService, *zap.Logger, error) {
	var (
		cfg *config.Config
		err error
	)
	if configPath == "" {
		cfg, err = config.Load()
	} else {
		cfg, err = config.LoadFile(configPath)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}

	zapLogger, err := logger.New(cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("creating logger: %w", err)
	}

	zapLogger.Debug("allocation module configured",
		zap.String("logLevel", cfg.Log.Level),
		zap.Int("maxLineQuantity", cfg.Allocation.MaxLineQuantity),
	)

	return NewModule(cfg, zapLogger), zapLogger, nil
}
