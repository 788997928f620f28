// Command annotator labels the cleaned jobs and writes data/annotated.
package main

import (
	"log"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"jobtagger/common/logging"
	"jobtagger/common/models"
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

	c, err := stages.NewClassifier(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to build classifier", zap.Error(err))
	}

	pipeline := processor.NewPipeline(logger, nil, stages.NewAnnotator(c, logger), processor.NewMetrics(prometheus.NewRegistry()))
	annotated, err := pipeline.RunAnnotator(cfg.CleanedFile(), cfg.AnnotatedDir)
	if err != nil {
		logger.Fatal("Failed to save annotated jobs", zap.Error(err))
	}

	if len(annotated) == 0 {
		return
	}
	sample := annotated[0]
	logger.Info("Sample job",
		zap.String("title", sample.String(models.FieldTitle)),
		zap.String("type", sample.String(models.FieldJobType)),
		zap.String("experience", sample.String(models.FieldExperience)),
		zap.String("education", sample.String(models.FieldEducation)),
		zap.String("salary", sample.String(models.FieldSalary)),
	)
}
