package group

import (
	"errors"
	"time"

	"ostrov/internal/core/domain/model/kernel"
	"ostrov/internal/pkg/errs"
)

var (
	// ErrGroupIsNotConstructed is returned when a Group instance was not
	// created through NewGroup or RestoreGroup.
	ErrGroupIsNotConstructed = errors.New("Group must be created via NewGroup or RestoreGroup constructor")

	// ErrNotForming is returned when a membership change is applied to a
	// group that is no longer accepting members.
	ErrNotForming = errors.New("group is not in forming status")

	// ErrMemberNotFound is returned when removing an order that is not a
	// member of the group.
	ErrMemberNotFound = errors.New("order is not a member of the group")

	// ErrEconomicsMissing is returned when scheduling or dispatching a group
	// whose cost comparison was never stamped.
	ErrEconomicsMissing = errors.New("group economics are not stamped")
)

// Economics is the group-level cost comparison stamped before scheduling or
// dispatch: the sum of individual public quotes, the single contract quote
// for the consolidated shipment, and the resulting savings. The contract
// cost is nil when the group was force-dispatched while the tariff provider
// was unavailable. All money is in kopecks.
type Economics struct {
	publicCostKopecks   int64
	contractCostKopecks *int64
	savingsKopecks      int64
	savingsPercent      float64
	isConstructed       bool
}

// NewEconomics creates a validated cost comparison.
func NewEconomics(publicCostKopecks int64, contractCostKopecks *int64,
	savingsKopecks int64, savingsPercent float64) (Economics, error) {
	if publicCostKopecks < 0 {
		return Economics{}, errs.NewValueIsInvalidError("public cost")
	}
	if contractCostKopecks != nil && *contractCostKopecks < 0 {
		return Economics{}, errs.NewValueIsInvalidError("contract cost")
	}

	return Economics{
		publicCostKopecks:   publicCostKopecks,
		contractCostKopecks: contractCostKopecks,
		savingsKopecks:      savingsKopecks,
		savingsPercent:      savingsPercent,
		isConstructed:       true,
	}, nil
}

// PublicCostKopecks returns the sum of individual public quotes.
func (e Economics) PublicCostKopecks() int64 {
	return e.publicCostKopecks
}

// ContractCostKopecks returns the consolidated contract quote, nil when the
// group shipped without one.
func (e Economics) ContractCostKopecks() *int64 {
	return e.contractCostKopecks
}

// SavingsKopecks returns public minus contract cost.
func (e Economics) SavingsKopecks() int64 {
	return e.savingsKopecks
}

// SavingsPercent returns the savings as a percentage of the public cost,
// rounded to one decimal place.
func (e Economics) SavingsPercent() float64 {
	return e.savingsPercent
}

// HasContract reports whether a contract quote was obtained.
func (e Economics) HasContract() bool {
	return e.contractCostKopecks != nil
}

// Validate ensures the comparison was created via NewEconomics.
func (e Economics) Validate() error {
	if !e.isConstructed {
		return errs.NewValueIsRequiredError("economics must be created via NewEconomics")
	}
	return nil
}

// Group is the aggregate root of a consolidated shipment: a set of orders
// routed to the same hub and shipped together under one contract tariff.
//
// Group maintains these invariants:
//   - Membership changes only while the group is forming.
//   - The member list preserves join order.
//   - Scheduling requires stamped economics; dispatch without economics is
//     allowed only when forced.
//   - Instances are created only through NewGroup or RestoreGroup.
type Group struct {
	id            kernel.UUID
	number        string
	hubCode       string
	hubName       string
	transportType string

	status    Status
	memberIDs []kernel.UUID

	totalWeightGrams int
	economics        *Economics
	operatorNote     string

	scheduledAt    *time.Time
	dispatchedAt   *time.Time
	arrivedAtHubAt *time.Time
	createdAt      time.Time
	updatedAt      time.Time

	isConstructed bool
}

// NewGroup opens a new forming group for the given hub. The number is the
// human-readable group identifier, e.g. GRP-20250314-MSK-0001.
func NewGroup(id kernel.UUID, number, hubCode, hubName, transportType string,
	now time.Time) (*Group, error) {
	g := &Group{
		status:        Forming,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		g.setID(id),
		g.setNumber(number),
		g.setHub(hubCode, hubName, transportType),
	); err != nil {
		return nil, err
	}

	return g, nil
}

// RestoreGroup reconstructs a group from persistence. The stored state is
// trusted; only structural validity is checked.
func RestoreGroup(id kernel.UUID, number, hubCode, hubName, transportType string,
	status Status, memberIDs []kernel.UUID, totalWeightGrams int,
	economics *Economics, operatorNote string,
	scheduledAt, dispatchedAt, arrivedAtHubAt *time.Time,
	createdAt, updatedAt time.Time) (*Group, error) {
	if err := errors.Join(id.Validate(), status.Validate()); err != nil {
		return nil, err
	}

	return &Group{
		id:               id,
		number:           number,
		hubCode:          hubCode,
		hubName:          hubName,
		transportType:    transportType,
		status:           status,
		memberIDs:        memberIDs,
		totalWeightGrams: totalWeightGrams,
		economics:        economics,
		operatorNote:     operatorNote,
		scheduledAt:      scheduledAt,
		dispatchedAt:     dispatchedAt,
		arrivedAtHubAt:   arrivedAtHubAt,
		createdAt:        createdAt,
		updatedAt:        updatedAt,
		isConstructed:    true,
	}, nil
}

// Validate ensures the group was created through a constructor.
func (g *Group) Validate() error {
	if g == nil || !g.isConstructed {
		return ErrGroupIsNotConstructed
	}
	return nil
}

// IsEqual compares two groups by identifier.
func (g *Group) IsEqual(other *Group) bool {
	return other != nil && g.id.IsEqual(other.id)
}

// ID returns the group's unique identifier.
func (g *Group) ID() kernel.UUID {
	return g.id
}

// Number returns the human-readable group number.
func (g *Group) Number() string {
	return g.number
}

// HubCode returns the destination hub code.
func (g *Group) HubCode() string {
	return g.hubCode
}

// HubName returns the destination hub display name.
func (g *Group) HubName() string {
	return g.hubName
}

// TransportType returns the trunk transport of the hub route.
func (g *Group) TransportType() string {
	return g.transportType
}

// Status returns the current lifecycle status.
func (g *Group) Status() Status {
	return g.status
}

// MemberIDs returns the member order ids in join order.
func (g *Group) MemberIDs() []kernel.UUID {
	return g.memberIDs
}

// OrdersCount returns the number of member orders.
func (g *Group) OrdersCount() int {
	return len(g.memberIDs)
}

// TotalWeightGrams returns the summed weight of all members.
func (g *Group) TotalWeightGrams() int {
	return g.totalWeightGrams
}

// Economics returns the stamped cost comparison, nil until stamped.
func (g *Group) Economics() *Economics {
	return g.economics
}

// OperatorNote returns the note attached at dispatch or cancellation.
func (g *Group) OperatorNote() string {
	return g.operatorNote
}

// ScheduledAt returns when the group was scheduled, nil before that.
func (g *Group) ScheduledAt() *time.Time {
	return g.scheduledAt
}

// DispatchedAt returns when the group was dispatched, nil before that.
func (g *Group) DispatchedAt() *time.Time {
	return g.dispatchedAt
}

// ArrivedAtHubAt returns when the shipment reached its hub, nil before that.
func (g *Group) ArrivedAtHubAt() *time.Time {
	return g.arrivedAtHubAt
}

// CreatedAt returns when the group was opened.
func (g *Group) CreatedAt() time.Time {
	return g.createdAt
}

// UpdatedAt returns the time of the last state change.
func (g *Group) UpdatedAt() time.Time {
	return g.updatedAt
}

// HasMember reports whether the order belongs to the group.
func (g *Group) HasMember(orderID kernel.UUID) bool {
	for _, id := range g.memberIDs {
		if id.IsEqual(orderID) {
			return true
		}
	}
	return false
}

// AddMember appends an order to the group while it is forming.
func (g *Group) AddMember(orderID kernel.UUID, weightGrams int, now time.Time) error {
	if g.status != Forming {
		return ErrNotForming
	}
	if err := orderID.Validate(); err != nil {
		return err
	}
	if g.HasMember(orderID) {
		return errs.NewValueIsInvalidError("order is already a member of the group")
	}

	g.memberIDs = append(g.memberIDs, orderID)
	g.totalWeightGrams += weightGrams
	g.updatedAt = now
	return nil
}

// RemoveMember drops an order from the group while it is forming. The
// caller reverts the order's own status separately.
func (g *Group) RemoveMember(orderID kernel.UUID, weightGrams int, now time.Time) error {
	if g.status != Forming {
		return ErrNotForming
	}

	for i, id := range g.memberIDs {
		if id.IsEqual(orderID) {
			g.memberIDs = append(g.memberIDs[:i], g.memberIDs[i+1:]...)
			g.totalWeightGrams -= weightGrams
			g.updatedAt = now
			return nil
		}
	}
	return ErrMemberNotFound
}

// SetEconomics stamps the cost comparison. Allowed only before dispatch.
func (g *Group) SetEconomics(economics Economics, now time.Time) error {
	if err := economics.Validate(); err != nil {
		return err
	}
	if g.status.IsTerminal() {
		return errs.NewValueIsInvalidError("economics cannot be stamped on a closed group")
	}

	g.economics = &economics
	g.updatedAt = now
	return nil
}

// Schedule closes the group for membership and marks it ready for dispatch.
// The economics must be stamped first.
func (g *Group) Schedule(now time.Time) error {
	if g.economics == nil {
		return ErrEconomicsMissing
	}
	if err := g.status.ValidateTransitionTo(Scheduled); err != nil {
		return err
	}

	g.status = Scheduled
	g.scheduledAt = &now
	g.updatedAt = now
	return nil
}

// Dispatch ships the group. A regular dispatch requires stamped economics;
// a forced dispatch proceeds without them, recording the operator's note.
func (g *Group) Dispatch(forced bool, note string, now time.Time) error {
	if !forced && g.economics == nil {
		return ErrEconomicsMissing
	}
	if err := g.status.ValidateTransitionTo(Dispatched); err != nil {
		return err
	}

	g.status = Dispatched
	g.dispatchedAt = &now
	if note != "" {
		g.operatorNote = note
	}
	g.updatedAt = now
	return nil
}

// MarkArrivedAtHub records the shipment's arrival at the destination hub.
// Only a dispatched group can arrive.
func (g *Group) MarkArrivedAtHub(now time.Time) error {
	if g.status != Dispatched {
		return errs.NewValueIsInvalidError("only a dispatched group can arrive at its hub")
	}

	g.arrivedAtHubAt = &now
	g.updatedAt = now
	return nil
}

// Cancel dissolves the group, dropping its member list and accumulated
// weight. The caller returns members to the grouping pool separately.
func (g *Group) Cancel(note string, now time.Time) error {
	if err := g.status.ValidateTransitionTo(Cancelled); err != nil {
		return err
	}

	g.status = Cancelled
	g.memberIDs = nil
	g.totalWeightGrams = 0
	if note != "" {
		g.operatorNote = note
	}
	g.updatedAt = now
	return nil
}

func (g *Group) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	g.id = id
	return nil
}

func (g *Group) setNumber(number string) error {
	if number == "" {
		return errs.NewValueIsRequiredError("group number")
	}
	g.number = number
	return nil
}

func (g *Group) setHub(hubCode, hubName, transportType string) error {
	if hubCode == "" {
		return errs.NewValueIsRequiredError("hub code")
	}
	if hubName == "" {
		return errs.NewValueIsRequiredError("hub name")
	}
	if transportType == "" {
		return errs.NewValueIsRequiredError("transport type")
	}
	g.hubCode = hubCode
	g.hubName = hubName
	g.transportType = transportType
	return nil
}
