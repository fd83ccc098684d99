package queries

import (
	"errors"
	"strings"

	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/pkg/errs"
	"parceltrack/internal/pkg/guard"
)

// MaxListLimit caps a single page of ListParcelsQuery.
const MaxListLimit = 1000

var ErrListParcelsQueryIsNotConstructed = errors.New(
	"ListParcelsQuery must be created via NewListParcelsQuery constructor",
)

// ListParcelsQuery lists parcels newest first. An empty branch matches every
// branch; otherwise a parcel matches when it was sent from or is destined to
// the branch. An empty status list matches every status. A zero limit
// returns all matches.
type ListParcelsQuery struct {
	branchID string
	statuses []parcel.Status
	limit    int
	guard    guard.ConstructorGuard
}

func NewListParcelsQuery(branchID string, statuses []parcel.Status, limit int) (ListParcelsQuery, error) {
	var err error
	for _, s := range statuses {
		if vErr := s.Validate(); vErr != nil {
			err = errors.Join(err, vErr)
		}
	}
	if limit < 0 || limit > MaxListLimit {
		err = errors.Join(err, errs.NewValueIsOutOfRangeError("limit", limit, 0, MaxListLimit))
	}
	if err != nil {
		return ListParcelsQuery{}, err
	}

	return ListParcelsQuery{
		branchID: strings.TrimSpace(branchID),
		statuses: append([]parcel.Status(nil), statuses...),
		limit:    limit,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (q ListParcelsQuery) Validate() error {
	return q.guard.Validate(ErrListParcelsQueryIsNotConstructed)
}

func (q ListParcelsQuery) BranchID() string {
	return q.branchID
}

func (q ListParcelsQuery) Statuses() []parcel.Status {
	return append([]parcel.Status(nil), q.statuses...)
}

func (q ListParcelsQuery) Limit() int {
	return q.limit
}
