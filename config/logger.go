package config

import (
	"log"
	"strings"

	"go.uber.org/zap"
)

// NewLogger builds the service logger. LOG_LEVEL=debug selects the
// human-readable development encoder.
func NewLogger(service string) *zap.Logger {
	var (
		logger *zap.Logger
		err    error
	)
	if strings.EqualFold(Getenv("LOG_LEVEL", "info"), "debug") {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	return logger.With(zap.String("service", service))
}
