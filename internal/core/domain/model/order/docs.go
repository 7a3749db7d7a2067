// Package order models a production order moving through its lifecycle
// between the local record store and the remote execution system.
//
// The package includes:
//   - Order: the aggregate root, identified by its production order number
//   - Status: the persisted integer code kept for compatibility with stored data
//   - State and Event: the tagged lifecycle and the outcomes that move it
//
// Key business rules:
//   - New orders must satisfy 50000 < productionOrder < 1000000
//   - Start is legal only while the code lies in 900..999
//   - Stop has no state precondition; the remote system decides
//   - Delete is rejected once the code is above 1000
//   - A status only changes through Apply with an explicit outcome
package order
