// Command sampledata writes a synthetic raw job file for exercising the
// processing pipeline without a browser.
package main

import (
	"flag"
	"log"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"jobtagger/common/logging"
	"jobtagger/common/storage"
	"jobtagger/services/ingestion/internal/sampledata"
)

func main() {
	out := flag.String("out", "data/raw/test_jobs.json", "output file")
	seed := flag.Int64("seed", 0, "random seed, 0 for time based")
	flag.Parse()

	logger, err := logging.New("console")
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	now := time.Now()
	if *seed == 0 {
		*seed = now.UnixNano()
	}

	records := sampledata.Generate(rand.New(rand.NewSource(*seed)), now)
	if err := storage.SaveJSON(records, *out); err != nil {
		logger.Fatal("failed to write sample data", zap.Error(err))
	}
	logger.Info("wrote sample jobs", zap.Int("count", len(records)), zap.String("file", *out))
}
