// Package services provides domain services for parcel consolidation: hub
// routing, the public-versus-contract tariff comparator, the grouping
// policy engine and the all-or-nothing group dispatch.
//
// The services are stateless and operate on aggregates passed in by the
// application layer; only the tariff comparator talks to the outside world,
// through the ports.TariffProvider contract.
package services
