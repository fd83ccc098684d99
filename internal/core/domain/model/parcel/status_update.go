package parcel

import (
	"errors"
	"time"

	"parceltrack/internal/core/domain/model/kernel"
)

// StatusUpdate is one immutable entry of a parcel's status history.
type StatusUpdate struct {
	id        kernel.UUID
	status    Status
	timestamp time.Time
	actorID   string
	branchID  string
	note      string
}

// NewStatusUpdate records a move to status performed by actor at the given time.
func NewStatusUpdate(status Status, actor Actor, at time.Time, note string) (StatusUpdate, error) {
	return RestoreStatusUpdate(kernel.NewUUID(), status, at, actor.ID, actor.BranchID, note)
}

// RestoreStatusUpdate rebuilds a history entry from storage or the sync log.
func RestoreStatusUpdate(
	id kernel.UUID,
	status Status,
	at time.Time,
	actorID, branchID, note string,
) (StatusUpdate, error) {
	if err := errors.Join(
		id.Validate(),
		status.Validate(),
		Actor{ID: actorID}.Validate(),
	); err != nil {
		return StatusUpdate{}, err
	}
	return StatusUpdate{
		id:        id,
		status:    status,
		timestamp: at.UTC(),
		actorID:   actorID,
		branchID:  branchID,
		note:      note,
	}, nil
}

func (u StatusUpdate) ID() kernel.UUID      { return u.id }
func (u StatusUpdate) Status() Status       { return u.status }
func (u StatusUpdate) Timestamp() time.Time { return u.timestamp }
func (u StatusUpdate) ActorID() string      { return u.actorID }
func (u StatusUpdate) BranchID() string     { return u.branchID }
func (u StatusUpdate) Note() string         { return u.note }

// historyLess orders entries by timestamp, then by lifecycle rank, then by id.
// Every edge of the Status graph goes to a higher rank, so entries one copy
// wrote at a clamped, equal timestamp keep their order.
func historyLess(a, b StatusUpdate) bool {
	if !a.timestamp.Equal(b.timestamp) {
		return a.timestamp.Before(b.timestamp)
	}
	if a.status != b.status {
		return a.status < b.status
	}
	return a.id.String() < b.id.String()
}
