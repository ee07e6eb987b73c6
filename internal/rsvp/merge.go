package rsvp

import (
	"github.com/mannyandcelesti/rsvp-api/internal/models"
)

// Patch is a partial update. String fields follow the original form contract:
// empty means absent. GuestCount uses a pointer so an explicit zero survives.
// Guests (structured) takes precedence over LegacyGuestNames (plain strings),
// which in turn beats the existing stored list.
type Patch struct {
	Name             string
	Email            string
	Phone            string
	Attending        string
	GuestCount       *int
	Guests           models.GuestList
	LegacyGuestNames []string
}

// UpgradeGuestNames lifts the legacy plain-name list into the structured
// form with empty dietary/allergy fields.
func UpgradeGuestNames(names []string) models.GuestList {
	list := make(models.GuestList, len(names))
	for i, n := range names {
		list[i] = models.Guest{Name: n}
	}
	return list
}

// ResolveUpdate computes the new row from an existing row and a patch.
// Untouched fields are preserved. A resolved attending of "no" zeroes the
// guest count and clears the list no matter what the patch carried; this is
// applied uniformly on every update path.
func ResolveUpdate(existing models.RSVPFields, p Patch) models.RSVPFields {
	out := existing

	if p.Name != "" {
		out.Name = p.Name
	}
	if p.Email != "" {
		out.Email = NormalizeEmail(p.Email)
	}
	if p.Phone != "" {
		out.Phone = p.Phone
		out.NormalizedPhone = NormalizePhone(p.Phone)
	}
	if p.Attending != "" {
		out.Attending = p.Attending
	}
	if p.GuestCount != nil {
		out.GuestCount = *p.GuestCount
	}

	switch {
	case p.Guests != nil:
		out.Guests = p.Guests
	case p.LegacyGuestNames != nil:
		out.Guests = UpgradeGuestNames(p.LegacyGuestNames)
	}

	if out.Attending == models.AttendingNo {
		out.GuestCount = 0
		out.Guests = nil
	}
	return out
}
