package testutil

import (
	"io"
	"log/slog"

	"github.com/dmaslov/campuschat-server/internal/logger"
)

// Discard returns a logger that drops everything written to it.
func Discard() *logger.Logger {
	return &logger.Logger{Logger: slog.New(slog.NewJSONHandler(io.Discard, &slog.HandlerOptions{}))}
}
