package router

import (
	"errors"
	"fmt"
)

// ErrNoRoute is returned by Dispatch when no registered layer matches the
// request, and wrapped by URL for unknown route names.
var ErrNoRoute = errors.New("stratum: no matching route")

// ConfigError reports an invalid route definition: a nil handler, an
// invalid method token, or a template that fails to compile. It is fatal
// to route registration and never retried.
type ConfigError struct {
	// Methods is the method list the route was registered with, as given.
	Methods []string

	// Route identifies the route by name when one was set, path otherwise.
	Route string

	// Reason describes the offending value.
	Reason string

	// Err holds the underlying cause, if any.
	Err error
}

func (e *ConfigError) Error() string {
	msg := fmt.Sprintf("stratum: %v %s: %s", e.Methods, e.Route, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}
