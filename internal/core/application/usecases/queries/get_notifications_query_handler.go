package queries

import (
	"context"

	"parceltrack/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetNotificationsQueryHandler struct {
	db *gorm.DB
}

func NewGetNotificationsQueryHandler(db *gorm.DB) GetNotificationsQueryHandler {
	return GetNotificationsQueryHandler{db: db}
}

func (h GetNotificationsQueryHandler) Handle(ctx context.Context, query GetNotificationsQuery) ([]NotificationView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT id, recipient, title, message, created_at
		FROM notifications
		WHERE recipient = ?
		ORDER BY created_at DESC, id
		LIMIT ?
	`, query.Recipient(), query.Limit()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	views := make([]NotificationView, 0)
	for rows.Next() {
		var (
			v  NotificationView
			id uuid.UUID
		)
		if err = rows.Scan(&id, &v.Recipient, &v.Title, &v.Message, &v.CreatedAt); err != nil {
			return nil, err
		}

		notificationID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		v.ID = notificationID
		v.CreatedAt = v.CreatedAt.UTC()
		views = append(views, v)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return views, nil
}
