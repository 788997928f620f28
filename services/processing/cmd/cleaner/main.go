// Command cleaner normalizes the raw job files into data/cleaned.
package main

import (
	"log"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"jobtagger/common/logging"
	"jobtagger/services/processing/internal/config"
	"jobtagger/services/processing/internal/processor"
	"jobtagger/services/processing/internal/stages"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.LogFormat)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	c, err := stages.NewCleaner(logger)
	if err != nil {
		logger.Fatal("Failed to build cleaner", zap.Error(err))
	}

	pipeline := processor.NewPipeline(logger, c, nil, processor.NewMetrics(prometheus.NewRegistry()))
	if _, err := pipeline.RunCleaner(cfg.RawInputFiles, cfg.CleanedDir); err != nil {
		logger.Fatal("Failed to save cleaned jobs", zap.Error(err))
	}
}
