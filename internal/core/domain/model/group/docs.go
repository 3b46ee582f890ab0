// Package group provides domain entities and business logic for shipment
// groups: consolidated batches of orders routed to the same hub and shipped
// under one contract tariff.
//
// The package includes:
//   - Group: the aggregate root owning identity, membership, economics and
//     the group lifecycle
//   - Status: the forming → scheduled → dispatched state machine
//   - Economics: the stamped cost comparison value object
//
// Key business rules:
//   - Membership changes only while the group is forming; the member list
//     preserves join order
//   - Scheduling requires stamped economics; only a forced dispatch may
//     ship without them
//   - Cancelling a group returns its members to the grouping pool
package group
