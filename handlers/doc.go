// Package handlers provides middleware for the stratum router: request ID
// propagation, structured request logging, and panic recovery. Each
// middleware is a plain router.Handler and is registered with Router.Use.
package handlers
