// Package delivery defines the contract every transport (HTTP, worker) fulfills.
package delivery

import "context"

// Delivery is a long-running transport serving the application. Serve blocks
// until the transport stops; shutdown is handled through the fx lifecycle.
type Delivery interface {
	Serve(ctx context.Context) error
}
