package obs

import (
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
)

const serviceName = "autorent"

// NewLogger configures slog with colorful dev output and JSON for
// production-like envs. Every record carries the service attribute so the
// booking logs can be told apart from the fleet services sharing a sink.
func NewLogger(env string) *slog.Logger {
	level := slog.LevelInfo
	writer := os.Stdout
	var handler slog.Handler
	if env == "dev" || env == "local" {
		handler = tint.NewHandler(writer, &tint.Options{
			Level:      level,
			TimeFormat: time.RFC3339,
			AddSource:  true,
		})
	} else {
		handler = slog.NewJSONHandler(writer, &slog.HandlerOptions{
			Level:     level,
			AddSource: true,
		})
	}
	return slog.New(handler).With("service", serviceName)
}
