package order

import "time"

// StatusChange is one append-only entry of an order's status history: the
// old status (nil for the intake entry), the new status, an optional
// operator comment and the time of the change.
type StatusChange struct {
	oldStatus  *Status
	newStatus  Status
	comment    string
	occurredAt time.Time
}

// NewStatusChange creates a history entry. oldStatus is nil only for the
// entry recorded at intake.
func NewStatusChange(oldStatus *Status, newStatus Status, comment string, occurredAt time.Time) StatusChange {
	return StatusChange{
		oldStatus:  oldStatus,
		newStatus:  newStatus,
		comment:    comment,
		occurredAt: occurredAt,
	}
}

// OldStatus returns the status before the change, nil for the intake entry.
func (c StatusChange) OldStatus() *Status {
	return c.oldStatus
}

// NewStatus returns the status after the change.
func (c StatusChange) NewStatus() Status {
	return c.newStatus
}

// Comment returns the optional operator comment.
func (c StatusChange) Comment() string {
	return c.comment
}

// OccurredAt returns when the change was recorded.
func (c StatusChange) OccurredAt() time.Time {
	return c.occurredAt
}
