// Package order defines the order status workflow of the operations platform.
//
// The package includes:
//   - Status: the closed enumeration of order lifecycle stages
//   - the phases that group statuses for progress views
//   - Workflow: the engine compiled from the order transition table
//
// Key business rules:
//   - orders are created as Draft or Pending, the caller picks which
//   - procurement may loop between sourcing, negotiation and quoting
//   - quality control may send goods back to production
//   - any non-terminal order can be cancelled directly
//   - Completed, Cancelled and Refunded are terminal
//
// The order service owns the entities and re-validates every transition; this
// package only answers which transitions are legal and how a status renders.
package order
