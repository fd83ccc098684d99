package parcel

import (
	"strings"

	"parceltrack/internal/pkg/errs"
)

// Party is the sender or receiver of a parcel.
type Party struct {
	Name  string
	Email string
	Phone string
}

func NewParty(name, email, phone string) (Party, error) {
	p := Party{
		Name:  strings.TrimSpace(name),
		Email: strings.ToLower(strings.TrimSpace(email)),
		Phone: strings.TrimSpace(phone),
	}
	if err := p.Validate(); err != nil {
		return Party{}, err
	}
	return p, nil
}

func (p Party) Validate() error {
	if p.Name == "" {
		return errs.NewValueIsRequiredError("party name")
	}
	return nil
}

// Recipient is the inbox key notifications for this party are stored under:
// the email when known, otherwise the phone, otherwise the name.
func (p Party) Recipient() string {
	switch {
	case p.Email != "":
		return p.Email
	case p.Phone != "":
		return p.Phone
	default:
		return p.Name
	}
}
