// Package order provides domain entities and business logic for the parcel
// ledger. It implements the Order aggregate root with its status state
// machine, status history and group membership.
//
// The package includes:
//   - Order: the aggregate root owning identity, items, status, history,
//     group membership and the dispatch economics snapshot
//   - Status: the lifecycle state machine backed by an exhaustive
//     transition table
//   - Item, Recipient, TariffInfo, StatusChange: supporting value objects
//
// Key business rules:
//   - Every status change is checked against the transition table and
//     appends an immutable history entry
//   - A group reference exists exactly while the order is in a grouped
//     stage, or in problem after having been grouped
//   - Orders in received_warehouse with no group are the grouping pool
//   - Totals are derived from items; money is integer kopecks
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are
// enforced.
package order
