package logging

import (
	"go.uber.org/zap"
)

// New builds the process logger. "console" gives the development encoder,
// anything else the production JSON encoder.
func New(format string) (*zap.Logger, error) {
	if format == "console" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
