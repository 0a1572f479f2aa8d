// Package logger builds the zap logger used across the application.
package logger

import "go.uber.org/zap"

// New returns a production logger, or a human-readable development logger
// when env is "local".
func New(env string) (*zap.Logger, error) {
	if env == "local" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
