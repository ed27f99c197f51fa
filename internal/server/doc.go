// Package server provides HTTP routing, middleware, and the tracklist search API.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally with method-prefixed patterns.
//
// # Search API
//
// [SearchHandler] accepts a raw tracklist via POST /search, sweeps the configured
// music stores for each parsed track, and returns matches as JSON. Each request
// also writes the run's CSV and stats artifacts under the data directory, so
// API runs leave the same trail as CLI runs.
//
// [HealthHandler] answers GET /health for liveness checks.
//
// # Handler Interface
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// allowing handlers to register multiple routes to encapsulate route definitions within the implementation.
package server
