// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance for the CLI commands and the
// inspection server.
//
// # Request IDs
//
// The WithRequestID helper reads the id stored by fiber's requestid
// middleware and attaches it to the log entry, so that all logs of one
// API request can be correlated.
//
// # Configuration
//
// The package supports configuration for:
//   - Level: debug, info, warn, error
//   - Encoding: json (production) or console (development)
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info"})
//	log.Info("Merge started")
package logger
