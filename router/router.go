package router

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"strings"
)

// Router owns a collection of layers and dispatches requests across them.
// It implements http.Handler.
//
// All registration must complete before the router serves concurrent
// traffic; no internal locking is provided.
type Router struct {
	layers   []*Layer
	mw       []Handler
	params   map[string]ParamHandler
	prefix   string
	logger   *slog.Logger
	notFound Handler

	sensitive bool
	strict    bool

	// err holds the first registration error. Checked by Dispatch and
	// exposed via Err, mirroring the sticky-error style of chained
	// registration.
	err error
}

// New returns an empty router.
func New() *Router {
	return &Router{
		params: make(map[string]ParamHandler),
	}
}

// Logger sets the logger used to trace route definitions. Nil (the
// default) disables tracing.
func (r *Router) Logger(logger *slog.Logger) *Router {
	r.logger = logger
	return r
}

// Sensitive makes path matching case-sensitive for subsequently
// registered routes.
func (r *Router) Sensitive(v bool) *Router {
	r.sensitive = v
	return r
}

// Strict makes subsequently registered routes require the exact
// trailing-slash form of their template.
func (r *Router) Strict(v bool) *Router {
	r.strict = v
	return r
}

// NotFound sets the handler invoked when no route matches. Without one,
// Dispatch returns ErrNoRoute and ServeHTTP replies 404.
func (r *Router) NotFound(h Handler) *Router {
	r.notFound = h
	return r
}

// Err returns the first registration error recorded by the router.
func (r *Router) Err() error {
	return r.err
}

// Layers returns the registered layers in registration order. The
// returned slice must not be modified.
func (r *Router) Layers() []*Layer {
	return r.layers
}

// Register creates a layer for the given route and adds it to the router.
// The router's prefix is applied to the template and previously registered
// parameter handlers are inserted into the new layer's stack. Registration
// errors are recorded on the layer and surfaced through Err.
func (r *Router) Register(path string, methods []string, handlers []Handler, opts Options) *Layer {
	if opts.Prefix == "" {
		opts.Prefix = r.prefix
	}
	opts.Sensitive = opts.Sensitive || r.sensitive
	opts.Strict = opts.Strict || r.strict

	l := newLayer(path, nil, methods, handlers, opts)
	if l.err == nil && r.prefix != "" {
		l.SetPrefix(r.prefix)
	}
	for name, fn := range r.params {
		l.Param(name, fn)
	}

	if l.err != nil && r.err == nil {
		r.err = l.err
	}
	r.layers = append(r.layers, l)

	if r.logger != nil {
		r.logger.Debug("route defined",
			slog.Any("methods", l.Methods()),
			slog.String("path", l.Path()),
			slog.String("name", l.Name()),
		)
	}

	return l
}

// Handle registers a named route.
func (r *Router) Handle(name, path string, methods []string, handlers ...Handler) *Layer {
	return r.Register(path, methods, handlers, Options{Name: name})
}

// Get registers a GET route. HEAD is implied.
func (r *Router) Get(path string, handlers ...Handler) *Layer {
	return r.Register(path, []string{http.MethodGet}, handlers, Options{})
}

// Post registers a POST route.
func (r *Router) Post(path string, handlers ...Handler) *Layer {
	return r.Register(path, []string{http.MethodPost}, handlers, Options{})
}

// Put registers a PUT route.
func (r *Router) Put(path string, handlers ...Handler) *Layer {
	return r.Register(path, []string{http.MethodPut}, handlers, Options{})
}

// Patch registers a PATCH route.
func (r *Router) Patch(path string, handlers ...Handler) *Layer {
	return r.Register(path, []string{http.MethodPatch}, handlers, Options{})
}

// Delete registers a DELETE route.
func (r *Router) Delete(path string, handlers ...Handler) *Layer {
	return r.Register(path, []string{http.MethodDelete}, handlers, Options{})
}

// Head registers a HEAD route.
func (r *Router) Head(path string, handlers ...Handler) *Layer {
	return r.Register(path, []string{http.MethodHead}, handlers, Options{})
}

// Options registers an OPTIONS route.
func (r *Router) Options(path string, handlers ...Handler) *Layer {
	return r.Register(path, []string{http.MethodOptions}, handlers, Options{})
}

// All registers a route answering every standard method.
func (r *Router) All(path string, handlers ...Handler) *Layer {
	methods := []string{
		http.MethodGet, http.MethodPost, http.MethodPut,
		http.MethodPatch, http.MethodDelete, http.MethodOptions,
	}
	return r.Register(path, methods, handlers, Options{})
}

// Use appends middleware run ahead of every matched layer's stack.
func (r *Router) Use(handlers ...Handler) *Router {
	r.mw = append(r.mw, handlers...)
	return r
}

// Param registers a parameter handler applied to every current and future
// layer whose template names the parameter. Final stack order follows
// template parameter order regardless of registration order.
func (r *Router) Param(name string, fn ParamHandler) *Router {
	r.params[name] = fn
	for _, l := range r.layers {
		l.Param(name, fn)
	}
	return r
}

// Prefix mounts the router's routes under the given path prefix. Existing
// layers are re-prefixed in place; subsequently registered layers pick the
// prefix up at registration. A trailing slash on the prefix is dropped.
func (r *Router) Prefix(prefix string) *Router {
	prefix = strings.TrimSuffix(prefix, "/")
	r.prefix = prefix
	for _, l := range r.layers {
		l.SetPrefix(prefix)
	}
	return r
}

// Route returns the layer registered under the given name, or nil.
func (r *Router) Route(name string) *Layer {
	if name == "" {
		return nil
	}
	for _, l := range r.layers {
		if l.Name() == name {
			return l
		}
	}
	return nil
}

// URL generates a concrete path for the named route. Returns an error
// wrapping ErrNoRoute for unknown names.
func (r *Router) URL(name string, params map[string]string, opts ...URLOption) (string, error) {
	l := r.Route(name)
	if l == nil {
		return "", fmt.Errorf("%w: no route named %q", ErrNoRoute, name)
	}
	return l.URL(params, opts...)
}

// MatchResult lists the layers matching a request.
type MatchResult struct {
	// Path holds the layers whose matcher accepts the path.
	Path []*Layer

	// PathAndMethod holds the subset also registered for the method,
	// including method-less middleware layers.
	PathAndMethod []*Layer

	// Route is true when at least one method-bearing layer matched both
	// path and method.
	Route bool
}

// Match collects the layers matching the given path and method, in
// registration order.
func (r *Router) Match(path, method string) *MatchResult {
	m := &MatchResult{}
	for _, l := range r.layers {
		if !l.Match(path) {
			continue
		}
		m.Path = append(m.Path, l)

		if len(l.Methods()) == 0 {
			m.PathAndMethod = append(m.PathAndMethod, l)
			continue
		}
		if slices.Contains(l.Methods(), method) {
			m.PathAndMethod = append(m.PathAndMethod, l)
			m.Route = true
		}
	}
	return m
}

// Dispatch matches the request and runs the composed handler chain:
// global middleware first, then for each matched layer a parameter
// extraction step followed by the layer's stack. Returns ErrNoRoute when
// nothing matches and no NotFound handler is set.
func (r *Router) Dispatch(c *Context) error {
	if r.err != nil {
		return r.err
	}

	path := c.Request.URL.Path
	m := r.Match(path, c.Request.Method)
	if !m.Route {
		if r.notFound != nil {
			return r.notFound(c, func() error { return nil })
		}
		return ErrNoRoute
	}

	if c.Params == nil {
		c.Params = make(map[string]string)
	}

	handlers := make([]Handler, 0, len(r.mw)+2*len(m.PathAndMethod))
	handlers = append(handlers, r.mw...)
	for _, matched := range m.PathAndMethod {
		layer := matched
		handlers = append(handlers, func(c *Context, next Next) error {
			c.Params = layer.Params(layer.Captures(path), c.Params)
			c.layer = layer
			return next()
		})
		for _, e := range layer.Stack() {
			handlers = append(handlers, e.Handler)
		}
	}

	return Compose(handlers)(c, nil)
}

// ServeHTTP implements http.Handler. Unmatched requests reply 404; handler
// errors reply 500. Callers needing finer control use Dispatch directly.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	c := NewContext(w, req)
	err := r.Dispatch(c)
	switch {
	case err == nil:
	case errors.Is(err, ErrNoRoute):
		http.NotFound(w, req)
	default:
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}
