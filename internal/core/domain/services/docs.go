// Package services provides domain services of the fulfillment system: business
// rules that sit between an aggregate and the use cases driving it.
//
// The package includes:
//   - DeliveryAdvancer: decides whether a candidate order is frozen, terminal or
//     eligible, and advances eligible ones by one delivery step
package services
