// Package pathtpl compiles route path templates into matchers and
// reverse path builders.
//
// A template mixes literal segments with named parameters:
//
//	/users/:id
//	/users/:id/files/:path+
//	/posts/:slug(slug)
//	/static/(.*)
//
// Parameter syntax:
//
//	:name          required parameter, matches one path segment
//	:name?         optional parameter
//	:name+         repeated parameter, one or more segments
//	:name*         repeated optional parameter
//	:name(pattern) parameter with a custom regexp or macro pattern
//	(.*)           catch-all wildcard matching the remaining path
//
// Compile returns a Template holding the anchored matcher regexp and the
// ordered parameter descriptors. Build reverses the process, producing a
// concrete path from parameter values with each value percent-encoded.
package pathtpl
