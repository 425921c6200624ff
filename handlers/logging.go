package handlers

import (
	"log/slog"
	"time"

	"github.com/dispatchkit/stratum/router"
)

// LoggingConfig configures the Logging middleware behaviour.
type LoggingConfig struct {
	// Logger receives the request records. Defaults to slog.Default.
	Logger *slog.Logger

	// Level is the level request records are emitted at.
	// Defaults to slog.LevelInfo.
	Level slog.Level

	// Skip, when set, suppresses logging for requests it returns true
	// for (health checks, metrics scrapes).
	Skip func(c *router.Context) bool
}

// Logging returns a middleware that emits one structured record per
// request with method, path, matched route, duration, and the error
// returned by the chain, if any. The error is logged and passed through
// unchanged.
func Logging(cfg LoggingConfig) router.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return func(c *router.Context, next router.Next) error {
		if cfg.Skip != nil && cfg.Skip(c) {
			return next()
		}

		start := time.Now()
		err := next()

		attrs := []any{
			slog.String("method", c.Method()),
			slog.String("path", c.Path()),
			slog.Duration("duration", time.Since(start)),
		}
		if l := c.Layer(); l != nil {
			if name := l.Name(); name != "" {
				attrs = append(attrs, slog.String("route", name))
			} else {
				attrs = append(attrs, slog.String("route", l.Path()))
			}
		}
		if err != nil {
			attrs = append(attrs, slog.Any("error", err))
		}

		logger.Log(c.Request.Context(), cfg.Level, "request", attrs...)

		return err
	}
}
