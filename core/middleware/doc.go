// Package middleware contains HTTP middleware for the Fiber application.
//
// It provides cross-cutting concerns that sit between the request and the
// handler of the read-only inspection API.
//
// # Components
//
//   - Auth: validates the X-API-Key header against the configured key.
//     Requests without a matching key get 401 and a JSON error body. An
//     empty key disables the check for local use.
//   - RequestID: tags every request with a UUID, stores it in the Fiber
//     locals under logger.RequestIDKey and echoes it in the X-Request-ID
//     response header, so logger.WithRequestID can correlate log lines.
//
// # Usage
//
// The start command registers RequestID first so every later log line can
// carry the id, then the request logger, then Auth:
//
//	app.Use(middleware.RequestID())
//	app.Use(middleware.Auth(cfg.Server.ApiKey))
package middleware
