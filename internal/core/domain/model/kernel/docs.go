// Package kernel provides shared value objects and building blocks for the
// domain model of the consolidation service.
//
// The package includes:
//   - UUID: identity value object for entities and aggregates
//   - PostalCode: validated six-digit Russian postal index
//   - TransitionTable: generic status registry parameterized by a state enum,
//     instantiated once for orders and once for shipment groups
//
// Kernel types are immutable value objects. They validate themselves on
// construction and are safe for concurrent use.
package kernel
