// Package objectstore models the read-only object storage collaborator
// C1 resolves tenant configs from (spec.md §6.2), as an interface so the
// dispatcher can be constructed with a fake in tests (SPEC_FULL.md §9's
// "model each external dependency as an interface" note).
package objectstore

import "context"

// Store reads opaque objects by key. The core never writes through this
// interface (spec.md §6.2: "Neither file is written by the core").
type Store interface {
	// Get returns the object body, or found=false if the key does not
	// exist. Any other failure is returned as an error.
	Get(ctx context.Context, key string) (body []byte, found bool, err error)
	// Put writes an object body. Used only by the fulfillment archive
	// channel (C10), never by the config read path.
	Put(ctx context.Context, key string, body []byte, contentType string) error
}
