// Package kernel provides the shared value objects of the fulfillment domain.
//
// The package includes:
//   - UUID: identifier for orders and catalog items, wrapping github.com/google/uuid
//   - Address: the immutable delivery destination embedded by value in an order
//
// Both types reject their zero value in Validate, so a value that did not come
// from a constructor cannot reach an aggregate.
package kernel
