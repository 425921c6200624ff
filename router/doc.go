// Package router implements path routing built from layers.
//
// A Layer binds one route template to a set of HTTP methods and an ordered
// handler stack. It decides whether a request path matches, extracts named
// path parameters, regenerates concrete URLs from the template, and keeps
// per-parameter handlers ordered by the position their parameter occupies
// in the template.
//
// The Router owns a collection of layers and dispatches requests across
// them. It implements http.Handler, so it can be served directly:
//
//	r := router.New()
//	r.Get("/users/:id", func(c *router.Context, next router.Next) error {
//		_, err := fmt.Fprintf(c.Response, "user %s", c.Params["id"])
//		return err
//	})
//	http.ListenAndServe(":8080", r)
//
// Handlers form a continuation chain: each handler receives the context
// and a next function that invokes the rest of the chain. Parameter
// handlers registered with Param run before plain handlers and receive the
// decoded parameter value:
//
//	r.Param("id", func(id string, c *router.Context, next router.Next) error {
//		if !isValid(id) {
//			return ErrBadID
//		}
//		return next()
//	})
//
// All registration (Get, Use, Param, Prefix) must complete before the
// router serves concurrent traffic. Matching, parameter extraction, and
// URL building are read-only afterwards and safe for concurrent use.
package router
