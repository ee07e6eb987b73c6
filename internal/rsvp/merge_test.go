package rsvp

import (
	"testing"
	"time"

	"github.com/mannyandcelesti/rsvp-api/internal/models"
)

func existingRow() models.RSVPFields {
	return models.RSVPFields{
		Name:            "Jo",
		Email:           "jo@x.com",
		Phone:           "555-123-4567",
		NormalizedPhone: "5551234567",
		Attending:       models.AttendingYes,
		GuestCount:      2,
		Guests:          models.GuestList{{Name: "Jo"}, {Name: "Sam", Dietary: "vegan"}},
	}
}

func TestResolveUpdatePreservesUntouchedFields(t *testing.T) {
	out := ResolveUpdate(existingRow(), Patch{Name: "Joanna"})

	if out.Name != "Joanna" {
		t.Errorf("name not patched: %q", out.Name)
	}
	if out.Email != "jo@x.com" || out.Phone != "555-123-4567" || out.GuestCount != 2 {
		t.Errorf("untouched fields changed: %+v", out)
	}
	if len(out.Guests) != 2 || out.Guests[1].Dietary != "vegan" {
		t.Errorf("guest list should be preserved: %+v", out.Guests)
	}
}

func TestResolveUpdateDeclineZeroesGuests(t *testing.T) {
	// No guest count supplied: declining must still zero guest data.
	out := ResolveUpdate(existingRow(), Patch{Attending: models.AttendingNo})

	if out.GuestCount != 0 {
		t.Errorf("expected guestCount 0, got %d", out.GuestCount)
	}
	if out.Guests != nil {
		t.Errorf("expected empty guest list, got %v", out.Guests)
	}

	// Even an explicit guest payload loses to the decline rule.
	three := 3
	out = ResolveUpdate(existingRow(), Patch{
		Attending:  models.AttendingNo,
		GuestCount: &three,
		Guests:     models.GuestList{{Name: "X"}},
	})
	if out.GuestCount != 0 || out.Guests != nil {
		t.Errorf("decline rule not enforced: %+v", out)
	}
}

func TestResolveUpdateExplicitZeroGuestCount(t *testing.T) {
	zero := 0
	out := ResolveUpdate(existingRow(), Patch{GuestCount: &zero})
	if out.GuestCount != 0 {
		t.Errorf("explicit zero ignored, got %d", out.GuestCount)
	}
}

func TestResolveUpdateGuestListPrecedence(t *testing.T) {
	structured := models.GuestList{{Name: "New", Dietary: "gf"}}

	out := ResolveUpdate(existingRow(), Patch{
		Guests:           structured,
		LegacyGuestNames: []string{"Old"},
	})
	if len(out.Guests) != 1 || out.Guests[0].Name != "New" {
		t.Errorf("structured list should win: %+v", out.Guests)
	}

	out = ResolveUpdate(existingRow(), Patch{LegacyGuestNames: []string{"A", "B"}})
	want := models.GuestList{{Name: "A"}, {Name: "B"}}
	if len(out.Guests) != 2 || out.Guests[0] != want[0] || out.Guests[1] != want[1] {
		t.Errorf("legacy names should be upgraded: %+v", out.Guests)
	}
}

func TestResolveUpdateNormalizesContactFields(t *testing.T) {
	out := ResolveUpdate(existingRow(), Patch{Email: "New@Y.Com", Phone: "(777) 888-9999"})
	if out.Email != "new@y.com" {
		t.Errorf("email not normalized: %q", out.Email)
	}
	if out.NormalizedPhone != "7778889999" {
		t.Errorf("normalized phone not recomputed: %q", out.NormalizedPhone)
	}
	if out.Phone != "(777) 888-9999" {
		t.Errorf("raw phone should be stored as given: %q", out.Phone)
	}
}

func TestUpgradeGuestNames(t *testing.T) {
	got := UpgradeGuestNames([]string{"A"})
	if len(got) != 1 || got[0].Name != "A" || got[0].Dietary != "" || got[0].Allergies != "" {
		t.Errorf("unexpected upgrade: %+v", got)
	}
}

func TestBeforeDeadline(t *testing.T) {
	deadline := time.Date(2026, 3, 15, 23, 59, 59, 0, time.UTC)

	if !BeforeDeadline(deadline.Add(-time.Hour), deadline) {
		t.Error("an hour before the deadline should pass")
	}
	if !BeforeDeadline(deadline, deadline) {
		t.Error("the deadline instant itself should pass")
	}
	if BeforeDeadline(deadline.Add(time.Second), deadline) {
		t.Error("past the deadline should fail")
	}
}

func TestComputeStats(t *testing.T) {
	rows := []models.RSVP{
		{RSVPFields: models.RSVPFields{Attending: models.AttendingYes, GuestCount: 3}},
		{RSVPFields: models.RSVPFields{Attending: models.AttendingYes, GuestCount: 0}},
		{RSVPFields: models.RSVPFields{Attending: models.AttendingNo}},
	}
	s := ComputeStats(rows)
	if s.Total != 3 || s.Attending != 2 || s.Declined != 1 {
		t.Errorf("unexpected stats: %+v", s)
	}
	if s.TotalGuests != 4 {
		t.Errorf("expected 4 total guests (zero counts as one), got %d", s.TotalGuests)
	}
}
