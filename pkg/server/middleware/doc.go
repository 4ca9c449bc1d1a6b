// Package middleware contains the HTTP middleware chain of the demo
// service. Each middleware is a func(http.Handler) http.Handler so
// chains compose by nesting; the recovery middleware sits outermost.
package middleware
