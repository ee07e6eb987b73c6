package rsvp

import (
	"strings"

	"github.com/mannyandcelesti/rsvp-api/internal/models"
)

// Submission is a create payload before it becomes a stored row.
type Submission struct {
	Name       string
	Email      string
	Phone      string
	Attending  string
	GuestCount int
	Guests     models.GuestList
}

// ValidateSubmission checks a submission in order, first failure wins:
// required fields, then guest-count/guest-list consistency when attending.
// requirePhone distinguishes the public entry point (phone mandatory) from
// the admin one (optional). Duplicate email/phone detection happens in the
// store, inside the same transaction as the write.
func ValidateSubmission(sub Submission, requirePhone bool) error {
	if strings.TrimSpace(sub.Name) == "" {
		return &MissingFieldError{Field: "name"}
	}
	if strings.TrimSpace(sub.Email) == "" {
		return &MissingFieldError{Field: "email"}
	}
	if requirePhone && strings.TrimSpace(sub.Phone) == "" {
		return &MissingFieldError{Field: "phone"}
	}

	if sub.Attending != models.AttendingYes {
		return nil
	}

	if sub.GuestCount < 1 {
		return ErrInvalidGuestCount
	}
	if len(sub.Guests) != sub.GuestCount {
		return ErrGuestListMismatch
	}
	for i, g := range sub.Guests {
		if strings.TrimSpace(g.Name) == "" {
			return &MissingGuestNameError{Index: i}
		}
	}
	return nil
}

// NewRecord converts a validated submission into storable fields, applying
// the canonical rules: email lower-cased, normalized phone persisted, and a
// declined RSVP always carries zero guests and an empty list.
func NewRecord(sub Submission) models.RSVPFields {
	f := models.RSVPFields{
		Name:            strings.TrimSpace(sub.Name),
		Email:           NormalizeEmail(sub.Email),
		Phone:           strings.TrimSpace(sub.Phone),
		NormalizedPhone: NormalizePhone(sub.Phone),
		Attending:       sub.Attending,
		GuestCount:      sub.GuestCount,
		Guests:          sub.Guests,
	}
	if f.Attending != models.AttendingYes {
		f.GuestCount = 0
		f.Guests = nil
	}
	return f
}
