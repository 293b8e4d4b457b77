// Package delivery defines the contract shared by all transport servers.
package delivery

import "context"

// Delivery is implemented by every transport (HTTP today) that serves the
// application. Serve blocks until the server stops; shutdown is driven by
// the lifecycle hooks registered at construction.
type Delivery interface {
	Serve(ctx context.Context) error
}
