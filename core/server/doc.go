// Package server holds the HTTP server configuration.
//
// The start command serves a read-only inspection API over the worlds named
// by merge.target_world and merge.source_world. This package only defines
// how that server is reached and protected; the routes live in the
// feature packages and are mounted through core/loader.
//
// # Configuration
//
// The Config struct defines the HTTP port (SERVER_PORT) and the optional
// API key (SERVER_API_KEY). Addr turns the port into a listen address and
// AuthEnabled reports whether requests must carry the key.
//
// # Usage
//
// This package is embedded by core/config and read by the start command:
//
//	app.Listen(cfg.Server.Addr())
//	app.Use(middleware.Auth(cfg.Server.ApiKey))
package server
