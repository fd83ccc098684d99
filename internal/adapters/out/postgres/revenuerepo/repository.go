// Package revenuerepo stores the revenue ledger as a single row.
package revenuerepo

import (
	"context"
	"errors"
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/revenue"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const ledgerRowID = 1

type RevenueDTO struct {
	ID        int             `gorm:"primaryKey;autoIncrement:false"`
	Total     decimal.Decimal `gorm:"type:numeric(16,2);not null"`
	UpdatedAt time.Time       `gorm:"type:timestamptz;autoUpdateTime:false"`
}

func (RevenueDTO) TableName() string {
	return "revenue"
}

// GormRevenueRepository implements ports.RevenueRepository using GORM.
type GormRevenueRepository struct {
	db *gorm.DB
}

func NewGormRevenueRepository(db *gorm.DB) *GormRevenueRepository {
	return &GormRevenueRepository{db: db}
}

// Get returns a zero ledger until the first Save.
func (r *GormRevenueRepository) Get(ctx context.Context) (revenue.Ledger, error) {
	var dto RevenueDTO
	if err := r.db.WithContext(ctx).First(&dto, ledgerRowID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return revenue.NewLedger(kernel.Zero(), time.Time{}), nil
		}
		return revenue.Ledger{}, err
	}
	return toDomain(dto)
}

// GetForUpdate creates the row if needed and locks it with SELECT ... FOR UPDATE,
// so concurrent credits serialize until the surrounding transaction ends.
func (r *GormRevenueRepository) GetForUpdate(ctx context.Context) (revenue.Ledger, error) {
	db := r.db.WithContext(ctx)

	seed := RevenueDTO{ID: ledgerRowID, Total: decimal.Zero}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&seed).Error; err != nil {
		return revenue.Ledger{}, err
	}

	var dto RevenueDTO
	if err := db.Clauses(clause.Locking{Strength: "UPDATE"}).First(&dto, ledgerRowID).Error; err != nil {
		return revenue.Ledger{}, err
	}
	return toDomain(dto)
}

func (r *GormRevenueRepository) Save(ctx context.Context, ledger revenue.Ledger) error {
	dto := RevenueDTO{
		ID:        ledgerRowID,
		Total:     ledger.Total().Decimal(),
		UpdatedAt: ledger.UpdatedAt(),
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"total", "updated_at"}),
	}).Create(&dto).Error
}

func toDomain(dto RevenueDTO) (revenue.Ledger, error) {
	total, err := kernel.NewMoney(dto.Total)
	if err != nil {
		return revenue.Ledger{}, err
	}
	return revenue.NewLedger(total, dto.UpdatedAt), nil
}
