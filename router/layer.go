package router

import (
	"net/http"
	"net/url"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/net/http/httpguts"

	"github.com/dispatchkit/stratum/pathtpl"
)

// Options configure a single layer.
type Options struct {
	// Name identifies the route for reverse routing. Optional.
	Name string

	// Sensitive enables case-sensitive path matching.
	Sensitive bool

	// Strict requires the exact trailing-slash form of the template.
	Strict bool

	// IgnoreCaptures skips capture extraction for matched paths.
	IgnoreCaptures bool

	// Prefix records the path prefix the layer was mounted under.
	// Diagnostic only; SetPrefix is what actually rewrites the template.
	Prefix string
}

// HandlerEntry is one unit of a layer's stack: a handler, tagged with the
// parameter name it validates when it was registered through Param.
type HandlerEntry struct {
	Handler Handler
	Param   string
}

// Layer binds one route template to its HTTP methods, its ordered handler
// stack, and its compiled matcher. Layers are created by the Router during
// route registration; NewLayer is exported for callers assembling routes
// by hand.
//
// A layer must not be mutated (SetPrefix, Param) once it is exposed to
// concurrent request dispatch. Match, Captures, Params, and URL are
// read-only and safe for concurrent use after registration completes.
type Layer struct {
	opts    Options
	methods []string
	stack   []HandlerEntry
	path    string
	tpl     *pathtpl.Template
	err     error
}

// NewLayer builds a layer from a path template. Methods are normalized to
// uppercase; registering GET implies HEAD, which is prepended ahead of it.
// Returns *ConfigError when a handler is nil, the stack is empty, a method
// is not a valid HTTP token, or the template fails to compile.
func NewLayer(path string, methods []string, handlers []Handler, opts Options) (*Layer, error) {
	l := newLayer(path, nil, methods, handlers, opts)
	return l, l.err
}

// NewRegexpLayer builds a layer from a precompiled matcher instead of a
// template. Such a layer has no parameter descriptors, cannot build URLs,
// and is unaffected by SetPrefix.
func NewRegexpLayer(re *regexp.Regexp, methods []string, handlers []Handler, opts Options) (*Layer, error) {
	l := newLayer("", re, methods, handlers, opts)
	return l, l.err
}

func newLayer(path string, re *regexp.Regexp, methods []string, handlers []Handler, opts Options) *Layer {
	l := &Layer{
		opts: opts,
		path: path,
	}

	for _, m := range methods {
		if !httpguts.ValidHeaderFieldName(m) {
			l.err = &ConfigError{
				Methods: methods,
				Route:   l.routeIdent(),
				Reason:  "invalid method token " + strconv.Quote(m),
			}
			return l
		}
		u := strings.ToUpper(m)
		if u == http.MethodGet {
			// GET routes answer HEAD as well. Duplicate GET entries
			// produce duplicate HEAD entries; callers own deduplication.
			l.methods = append([]string{http.MethodHead}, l.methods...)
		}
		l.methods = append(l.methods, u)
	}

	if len(handlers) == 0 {
		l.err = &ConfigError{
			Methods: methods,
			Route:   l.routeIdent(),
			Reason:  "no handlers",
		}
		return l
	}
	for i, h := range handlers {
		if h == nil {
			l.err = &ConfigError{
				Methods: methods,
				Route:   l.routeIdent(),
				Reason:  "nil handler at index " + strconv.Itoa(i),
			}
			return l
		}
		l.stack = append(l.stack, HandlerEntry{Handler: h})
	}

	if re != nil {
		l.tpl = pathtpl.FromRegexp(re)
		return l
	}

	tpl, err := pathtpl.Compile(path, pathtpl.Options{
		Sensitive: opts.Sensitive,
		Strict:    opts.Strict,
	})
	if err != nil {
		l.err = &ConfigError{
			Methods: methods,
			Route:   l.routeIdent(),
			Reason:  "invalid path template",
			Err:     err,
		}
		return l
	}
	l.tpl = tpl

	return l
}

// routeIdent identifies the layer in error messages: name when set, path
// otherwise.
func (l *Layer) routeIdent() string {
	if l.opts.Name != "" {
		return l.opts.Name
	}
	if l.path != "" {
		return l.path
	}
	return "<regexp>"
}

// Err returns the first configuration error recorded for the layer.
func (l *Layer) Err() error {
	return l.err
}

// Name returns the route name from the layer options.
func (l *Layer) Name() string {
	return l.opts.Name
}

// Path returns the current path template, including any applied prefix.
// Empty for layers built from a precompiled matcher.
func (l *Layer) Path() string {
	return l.path
}

// Methods returns the normalized method sequence. The returned slice must
// not be modified.
func (l *Layer) Methods() []string {
	return l.methods
}

// Stack returns the ordered handler stack. The returned slice must not be
// modified.
func (l *Layer) Stack() []HandlerEntry {
	return l.stack
}

// ParamNames returns the parameter descriptors of the current template in
// template order.
func (l *Layer) ParamNames() []pathtpl.Param {
	if l.tpl == nil {
		return nil
	}
	return l.tpl.Params()
}

// Match reports whether the matcher accepts the request path.
func (l *Layer) Match(path string) bool {
	return l.err == nil && l.tpl.MatchString(path)
}

// Captures returns the captured parameter values for a matching path in
// template order, or nil when IgnoreCaptures is set. The caller must have
// verified Match first; captures of a non-matching path are nil.
func (l *Layer) Captures(path string) []string {
	if l.opts.IgnoreCaptures || l.tpl == nil {
		return nil
	}
	return l.tpl.Captures(path)
}

// Params builds the name-to-value parameter mapping from captures. Each
// non-empty capture is percent-decoded; on malformed encoding the original
// text is kept. Empty captures are stored unchanged. When existing is
// non-nil the values are merged into it, preserving parameters
// accumulated by enclosing layers.
func (l *Layer) Params(captures []string, existing map[string]string) map[string]string {
	params := existing
	if params == nil {
		params = make(map[string]string, len(captures))
	}

	for i, p := range l.ParamNames() {
		if i >= len(captures) {
			break
		}
		if captures[i] != "" {
			params[p.Name] = safeDecode(captures[i])
		} else {
			params[p.Name] = captures[i]
		}
	}

	return params
}

// urlOptions collect optional URL generation settings.
type urlOptions struct {
	query url.Values
}

// URLOption customizes URL generation.
type URLOption func(*urlOptions)

// WithQuery appends the serialized query values to the generated path.
func WithQuery(query url.Values) URLOption {
	return func(o *urlOptions) {
		o.query = query
	}
}

// URL generates a concrete path from the template and named parameter
// values. Returns *pathtpl.BuildError when a required parameter has no
// value.
func (l *Layer) URL(params map[string]string, opts ...URLOption) (string, error) {
	if l.err != nil {
		return "", l.err
	}

	built, err := l.tpl.Build(params)
	if err != nil {
		return "", err
	}

	var o urlOptions
	for _, opt := range opts {
		opt(&o)
	}
	if len(o.query) > 0 {
		built = appendQuery(built, o.query)
	}

	return built, nil
}

// URLPositional generates a concrete path from values consumed strictly in
// template parameter order: the i-th value fills the i-th parameter token
// regardless of name.
func (l *Layer) URLPositional(values []string, opts ...URLOption) (string, error) {
	descs := l.ParamNames()
	params := make(map[string]string, len(values))
	for i, v := range values {
		if i >= len(descs) {
			break
		}
		params[descs[i].Name] = v
	}
	return l.URL(params, opts...)
}

// Param inserts a parameter handler for name into the stack. The handler
// runs with the decoded parameter value ahead of plain handlers. Handlers
// for parameters appearing earlier in the template run first regardless of
// registration order. Registration for a name absent from the template is
// a silent no-op.
func (l *Layer) Param(name string, fn ParamHandler) *Layer {
	order := paramOrder(l.ParamNames())
	idx, ok := order[name]
	if !ok {
		return l
	}

	entry := HandlerEntry{
		Param: name,
		Handler: func(c *Context, next Next) error {
			return fn(c.Params[name], c, next)
		},
	}

	pos := paramInsertIndex(l.stack, order, idx)
	l.stack = slices.Insert(l.stack, pos, entry)
	return l
}

// SetPrefix prepends prefix to the path template and recompiles the
// matcher and parameter descriptors from the new template. No-op for
// layers built from a precompiled matcher. Descriptor metadata not
// derivable from the template text is rebuilt from scratch.
func (l *Layer) SetPrefix(prefix string) *Layer {
	if l.path == "" {
		return l
	}

	l.path = prefix + l.path
	tpl, err := pathtpl.Compile(l.path, pathtpl.Options{
		Sensitive: l.opts.Sensitive,
		Strict:    l.opts.Strict,
	})
	if err != nil {
		if l.err == nil {
			l.err = &ConfigError{
				Methods: l.methods,
				Route:   l.routeIdent(),
				Reason:  "invalid path template after prefixing",
				Err:     err,
			}
		}
		return l
	}
	l.tpl = tpl

	return l
}

// paramOrder maps parameter names to their template-order index.
func paramOrder(params []pathtpl.Param) map[string]int {
	order := make(map[string]int, len(params))
	for i, p := range params {
		order[p.Name] = i
	}
	return order
}

// paramInsertIndex computes where a parameter handler with template-order
// index idx belongs: immediately before the first entry that is not a
// parameter handler, or whose parameter sits later in the template.
// Entries tagged with names unknown to the current template (left behind
// by a template rewrite) are skipped. Returns len(stack) when no entry
// disqualifies.
func paramInsertIndex(stack []HandlerEntry, order map[string]int, idx int) int {
	for i, e := range stack {
		if e.Param == "" {
			return i
		}
		j, ok := order[e.Param]
		if !ok {
			continue
		}
		if j > idx {
			return i
		}
	}
	return len(stack)
}

// safeDecode percent-decodes a capture, returning the input unchanged on
// malformed encoding.
func safeDecode(s string) string {
	if decoded, err := url.PathUnescape(s); err == nil {
		return decoded
	}
	return s
}

// appendQuery serializes query values and appends them to the path after
// "?". Keys and values are percent-encoded, keys sorted.
func appendQuery(path string, query url.Values) string {
	return path + "?" + query.Encode()
}
