// Package loader provides the feature loading system for the HTTP server.
//
// Each feature implements the Feature interface and is registered on a
// Manager, which mounts the enabled ones in registration order.
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(app fiber.Router) error
//	}
package loader
