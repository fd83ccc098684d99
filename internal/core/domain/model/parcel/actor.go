package parcel

import (
	"strings"

	"parceltrack/internal/pkg/errs"
)

// Actor identifies the staff member or system process performing an action.
// BranchID is empty for actors not tied to a branch.
type Actor struct {
	ID       string
	BranchID string
}

// SystemActor is used for changes made by the service itself.
var SystemActor = Actor{ID: "system"}

func NewActor(id, branchID string) (Actor, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Actor{}, errs.NewValueIsRequiredError("actorId")
	}
	return Actor{ID: id, BranchID: strings.TrimSpace(branchID)}, nil
}

func (a Actor) Validate() error {
	if strings.TrimSpace(a.ID) == "" {
		return errs.NewValueIsRequiredError("actorId")
	}
	return nil
}
