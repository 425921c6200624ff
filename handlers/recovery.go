package handlers

import (
	"fmt"

	"github.com/dispatchkit/stratum/router"
)

// RecoveryConfig configures the Recovery middleware behaviour.
type RecoveryConfig struct {
	// LogFunc is an optional callback invoked with the context and the
	// recovered value when a panic occurs. When nil, no logging is
	// performed.
	LogFunc func(c *router.Context, recovered any)
}

// Recovery returns a middleware that recovers from panics in downstream
// handlers and converts them into chain errors, so the dispatcher's error
// path handles them like any other failure.
func Recovery(cfg RecoveryConfig) router.Handler {
	return func(c *router.Context, next router.Next) (err error) {
		defer func() {
			if recovered := recover(); recovered != nil {
				if cfg.LogFunc != nil {
					cfg.LogFunc(c, recovered)
				}

				err = fmt.Errorf("stratum: recovered from panic: %v", recovered)
			}
		}()

		return next()
	}
}
