// Package delivery defines the contract every transport entrypoint
// (HTTP server, future workers) exposes to the composition root.
package delivery

import "context"

// Delivery is a long-running transport adapter. Serve blocks until the
// listener fails or the passed context is cancelled.
type Delivery interface {
	Serve(ctx context.Context) error
}
