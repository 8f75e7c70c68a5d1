// Package errs provides the typed error family shared across the fulfillment
// service.
//
// Every error type follows the same shape:
//   - a sentinel (ErrObjectNotFound, ErrValueIsInvalid, ...) usable with errors.Is
//   - a struct carrying the parameter name and an optional cause
//   - NewX and NewXWithCause constructors
//   - Unwrap returning the sentinel
//
// ErrObjectNotFound is the NotFound failure surfaced by order commands and
// queries. ErrVersionIsInvalid backs optimistic-concurrency conflicts on order
// updates.
package errs
