package queries

import (
	"errors"
	"strings"
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/errs"
	"parceltrack/internal/pkg/guard"
)

// DefaultInboxLimit applies when GetNotificationsQuery is built with limit 0.
const DefaultInboxLimit = 50

var ErrGetNotificationsQueryIsNotConstructed = errors.New(
	"GetNotificationsQuery must be created via NewGetNotificationsQuery constructor",
)

// GetNotificationsQuery reads a recipient's inbox, newest first.
type GetNotificationsQuery struct {
	recipient string
	limit     int
	guard     guard.ConstructorGuard
}

func NewGetNotificationsQuery(recipient string, limit int) (GetNotificationsQuery, error) {
	recipient = strings.TrimSpace(recipient)

	var err error
	if recipient == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("recipient"))
	}
	if limit < 0 || limit > MaxListLimit {
		err = errors.Join(err, errs.NewValueIsOutOfRangeError("limit", limit, 0, MaxListLimit))
	}
	if err != nil {
		return GetNotificationsQuery{}, err
	}

	if limit == 0 {
		limit = DefaultInboxLimit
	}
	return GetNotificationsQuery{recipient: recipient, limit: limit, guard: guard.NewConstructorGuard()}, nil
}

func (q GetNotificationsQuery) Validate() error {
	return q.guard.Validate(ErrGetNotificationsQueryIsNotConstructed)
}

func (q GetNotificationsQuery) Recipient() string {
	return q.recipient
}

func (q GetNotificationsQuery) Limit() int {
	return q.limit
}

type NotificationView struct {
	ID        kernel.UUID
	Recipient string
	Title     string
	Message   string
	CreatedAt time.Time
}
