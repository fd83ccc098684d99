// Package notificationrepo stores per-recipient notification inboxes.
package notificationrepo

import (
	"context"
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/notification"
	"parceltrack/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type NotificationDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Recipient string    `gorm:"type:varchar(255);not null;index:idx_notifications_inbox,priority:1"`
	Title     string    `gorm:"type:varchar(255);not null"`
	Message   string    `gorm:"type:text"`
	CreatedAt time.Time `gorm:"type:timestamptz;not null;index:idx_notifications_inbox,priority:2;autoCreateTime:false"`
}

func (NotificationDTO) TableName() string {
	return "notifications"
}

// GormNotificationRepository implements ports.NotificationRepository using GORM.
type GormNotificationRepository struct {
	db *gorm.DB
}

func NewGormNotificationRepository(db *gorm.DB) *GormNotificationRepository {
	return &GormNotificationRepository{db: db}
}

// AddMany inserts records, skipping ids that are already stored.
func (r *GormNotificationRepository) AddMany(ctx context.Context, records []*notification.Notification) error {
	if len(records) == 0 {
		return nil
	}

	dtos := make([]NotificationDTO, 0, len(records))
	for _, n := range records {
		if err := n.Validate(); err != nil {
			return err
		}
		dtos = append(dtos, fromDomain(n))
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&dtos).Error
}

// ListByRecipient returns the inbox newest first.
func (r *GormNotificationRepository) ListByRecipient(
	ctx context.Context,
	recipient string,
	limit int,
) ([]*notification.Notification, error) {
	if recipient == "" {
		return nil, errs.NewValueIsRequiredError("recipient")
	}

	q := r.db.WithContext(ctx).Where("recipient = ?", recipient).Order("created_at DESC").Order("id")
	if limit > 0 {
		q = q.Limit(limit)
	}

	var dtos []NotificationDTO
	if err := q.Find(&dtos).Error; err != nil {
		return nil, err
	}

	out := make([]*notification.Notification, 0, len(dtos))
	for _, dto := range dtos {
		n, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

// Delete dismisses one record.
func (r *GormNotificationRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&NotificationDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("notification", id.String())
	}
	return nil
}

func fromDomain(n *notification.Notification) NotificationDTO {
	return NotificationDTO{
		ID:        n.ID().Bytes(),
		Recipient: n.Recipient(),
		Title:     n.Title(),
		Message:   n.Message(),
		CreatedAt: n.CreatedAt(),
	}
}

func toDomain(dto NotificationDTO) (*notification.Notification, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	return notification.NewNotification(id, dto.Recipient, dto.Title, dto.Message, dto.CreatedAt)
}
