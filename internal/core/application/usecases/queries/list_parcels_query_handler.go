package queries

import (
	"context"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

type ListParcelsQueryHandler struct {
	db *gorm.DB
}

func NewListParcelsQueryHandler(db *gorm.DB) ListParcelsQueryHandler {
	return ListParcelsQueryHandler{db: db}
}

// Handle returns list rows without status history. Ties on creation time
// are ordered by id so pages are stable.
func (h ListParcelsQueryHandler) Handle(ctx context.Context, query ListParcelsQuery) ([]ParcelView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	statuses := make([]string, 0, len(query.Statuses()))
	for _, s := range query.Statuses() {
		statuses = append(statuses, s.String())
	}
	branch := query.BranchID()

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT `+parcelColumns+`
		FROM parcels
		WHERE (? = '' OR sender_branch_id = ? OR destination_branch_id = ?)
		  AND (cardinality(?::text[]) = 0 OR status = ANY(?::text[]))
		ORDER BY created_at DESC, id
		LIMIT NULLIF(?, 0)
	`, branch, branch, branch, pq.Array(statuses), pq.Array(statuses), query.Limit()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	views := make([]ParcelView, 0)
	for rows.Next() {
		view, err := scanParcelView(rows)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return views, nil
}
