package router

import "net/http"

// Next resumes the remainder of a handler chain.
type Next func() error

// Handler is one unit of a layer's stack. It receives the request context
// and a continuation that invokes the rest of the chain.
type Handler func(c *Context, next Next) error

// ParamHandler validates or transforms a single path parameter. It
// receives the decoded parameter value ahead of the context and
// continuation.
type ParamHandler func(value string, c *Context, next Next) error

// Context carries one request through a handler chain.
type Context struct {
	Response http.ResponseWriter
	Request  *http.Request

	// Params holds the decoded path parameters accumulated across all
	// matched layers.
	Params map[string]string

	layer *Layer
}

// NewContext returns a Context for the given response/request pair with an
// empty parameter set.
func NewContext(w http.ResponseWriter, r *http.Request) *Context {
	return &Context{
		Response: w,
		Request:  r,
		Params:   make(map[string]string),
	}
}

// Layer returns the most recently matched layer, or nil before dispatch.
func (c *Context) Layer() *Layer {
	return c.layer
}

// Param returns the decoded value of a single path parameter.
func (c *Context) Param(name string) string {
	return c.Params[name]
}

// Path returns the request path.
func (c *Context) Path() string {
	return c.Request.URL.Path
}

// Method returns the request method.
func (c *Context) Method() string {
	return c.Request.Method
}
