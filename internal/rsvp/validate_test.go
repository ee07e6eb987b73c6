package rsvp

import (
	"errors"
	"testing"

	"github.com/mannyandcelesti/rsvp-api/internal/models"
)

func attendingSubmission() Submission {
	return Submission{
		Name:       "Jo",
		Email:      "jo@x.com",
		Phone:      "555-123-4567",
		Attending:  models.AttendingYes,
		GuestCount: 2,
		Guests:     models.GuestList{{Name: "Jo"}, {Name: "Sam"}},
	}
}

func TestValidateSubmission(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		if err := ValidateSubmission(attendingSubmission(), true); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("MissingName", func(t *testing.T) {
		sub := attendingSubmission()
		sub.Name = "   "
		var mf *MissingFieldError
		if err := ValidateSubmission(sub, true); !errors.As(err, &mf) || mf.Field != "name" {
			t.Fatalf("expected missing name, got %v", err)
		}
	})

	t.Run("MissingPhoneOnlyWhenRequired", func(t *testing.T) {
		sub := attendingSubmission()
		sub.Phone = ""
		var mf *MissingFieldError
		if err := ValidateSubmission(sub, true); !errors.As(err, &mf) || mf.Field != "phone" {
			t.Fatalf("expected missing phone, got %v", err)
		}
		if err := ValidateSubmission(sub, false); err != nil {
			t.Fatalf("phone should be optional here, got %v", err)
		}
	})

	t.Run("GuestCountZero", func(t *testing.T) {
		sub := attendingSubmission()
		sub.GuestCount = 0
		sub.Guests = nil
		if err := ValidateSubmission(sub, true); !errors.Is(err, ErrInvalidGuestCount) {
			t.Fatalf("expected ErrInvalidGuestCount, got %v", err)
		}
	})

	t.Run("GuestListMismatch", func(t *testing.T) {
		sub := attendingSubmission()
		sub.Guests = models.GuestList{{Name: "Jo"}}
		if err := ValidateSubmission(sub, true); !errors.Is(err, ErrGuestListMismatch) {
			t.Fatalf("expected ErrGuestListMismatch, got %v", err)
		}
	})

	t.Run("MissingGuestName", func(t *testing.T) {
		sub := attendingSubmission()
		sub.Guests = models.GuestList{{Name: "Jo"}, {Name: "  "}}
		var mg *MissingGuestNameError
		if err := ValidateSubmission(sub, true); !errors.As(err, &mg) || mg.Index != 1 {
			t.Fatalf("expected missing name at index 1, got %v", err)
		}
	})

	t.Run("DeclinedSkipsGuestRules", func(t *testing.T) {
		sub := attendingSubmission()
		sub.Attending = models.AttendingNo
		sub.GuestCount = 0
		sub.Guests = nil
		if err := ValidateSubmission(sub, true); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestNewRecord(t *testing.T) {
	sub := attendingSubmission()
	sub.Email = "Jo@X.Com"
	f := NewRecord(sub)

	if f.Email != "jo@x.com" {
		t.Errorf("email not normalized: %q", f.Email)
	}
	if f.NormalizedPhone != "5551234567" {
		t.Errorf("phone not normalized: %q", f.NormalizedPhone)
	}

	// Declining discards guest data regardless of input.
	sub.Attending = models.AttendingNo
	f = NewRecord(sub)
	if f.GuestCount != 0 || f.Guests != nil {
		t.Errorf("declined record kept guest data: count=%d guests=%v", f.GuestCount, f.Guests)
	}
}
