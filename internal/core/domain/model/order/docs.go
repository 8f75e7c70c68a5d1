// Package order provides the Order aggregate root of the fulfillment domain.
//
// An order carries two independent lifecycles:
//   - OrderStatus: the commercial state, Ordered -> Cancelled (terminal)
//   - DeliveryStatus: the physical state, Ready -> InTransit -> Delivered
//
// Key business rules:
//   - An order has at least one Line, fixed at creation, each with a positive
//     unit price and count; lines keep the sequence number they were created with
//   - The total price is always derived from the lines and never stored
//   - AdvanceDelivery moves delivery exactly one step forward and refuses
//     cancelled or delivered orders with ErrInvalidTransition
//   - Cancel is idempotent and leaves the delivery status untouched
//   - OverrideStatus and OverrideDeliveryStatus are the administrative escape
//     hatch; they only check that the target value exists
package order
