// Package stages builds the processing stages from configuration. The service and
// the file commands share it.
package stages

import (
	"fmt"

	"go.uber.org/zap"

	"jobtagger/services/processing/internal/annotator"
	"jobtagger/services/processing/internal/classifier"
	"jobtagger/services/processing/internal/cleaner"
	"jobtagger/services/processing/internal/config"
	"jobtagger/services/processing/internal/skills"
	"jobtagger/services/processing/internal/text"
)

func NewCleaner(logger *zap.Logger) (*cleaner.Cleaner, error) {
	lemmatizer, err := text.NewLemmatizer()
	if err != nil {
		return nil, fmt.Errorf("load lemmatizer: %w", err)
	}
	return cleaner.New(
		text.NewNormalizer(lemmatizer),
		skills.NewExtractor(skills.DefaultVocabulary),
		logger,
	), nil
}

// NewClassifier uses the built-in keyword tables, overlaid with
// cfg.KeywordsFile when set.
func NewClassifier(cfg *config.Config, logger *zap.Logger) (*classifier.Classifier, error) {
	tables := classifier.DefaultTables(cfg.EducationFullTable)
	if cfg.KeywordsFile != "" {
		loaded, err := classifier.LoadTables(cfg.KeywordsFile, tables)
		if err != nil {
			return nil, err
		}
		tables = loaded
		logger.Info("Loaded keyword tables", zap.String("file", cfg.KeywordsFile))
	}
	if cfg.EducationFullTable {
		logger.Info("Using full education table")
	}
	return classifier.New(tables), nil
}

func NewAnnotator(c *classifier.Classifier, logger *zap.Logger) *annotator.Annotator {
	return annotator.New(c, logger)
}
