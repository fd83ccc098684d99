// Package notification holds the per-recipient inbox record.
package notification

import (
	"errors"
	"strings"
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/errs"
)

var ErrNotificationIsNotConstructed = errors.New("notification must be created via NewNotification")

// Notification is one entry of a recipient's inbox. Dismissing removes it;
// it is never edited.
type Notification struct {
	id        kernel.UUID
	recipient string
	title     string
	message   string
	createdAt time.Time

	isConstructed bool
}

func NewNotification(id kernel.UUID, recipient, title, message string, createdAt time.Time) (*Notification, error) {
	n := &Notification{
		recipient:     strings.TrimSpace(recipient),
		title:         strings.TrimSpace(title),
		message:       message,
		createdAt:     createdAt.UTC(),
		isConstructed: true,
	}

	var err error
	if vErr := id.Validate(); vErr != nil {
		err = errors.Join(err, vErr)
	}
	if n.recipient == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("recipient"))
	}
	if n.title == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("title"))
	}
	if createdAt.IsZero() {
		err = errors.Join(err, errs.NewValueIsRequiredError("createdAt"))
	}
	if err != nil {
		return nil, err
	}

	n.id = id
	return n, nil
}

func (n *Notification) Validate() error {
	if n == nil || !n.isConstructed {
		return ErrNotificationIsNotConstructed
	}
	return nil
}

func (n *Notification) ID() kernel.UUID      { return n.id }
func (n *Notification) Recipient() string    { return n.recipient }
func (n *Notification) Title() string        { return n.title }
func (n *Notification) Message() string      { return n.message }
func (n *Notification) CreatedAt() time.Time { return n.createdAt }
