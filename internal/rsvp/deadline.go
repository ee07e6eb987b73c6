package rsvp

import (
	"time"

	"github.com/mannyandcelesti/rsvp-api/internal/models"
)

// BeforeDeadline reports whether self-service changes are still open.
// Admin endpoints never consult this.
func BeforeDeadline(now, deadline time.Time) bool {
	return !now.After(deadline)
}

// Stats summarizes a table for the admin dashboard.
type Stats struct {
	Total       int `json:"total"`
	Attending   int `json:"attending"`
	Declined    int `json:"declined"`
	TotalGuests int `json:"totalGuests"`
}

// ComputeStats tallies rows; an attending row with a zero guest count still
// counts one guest, matching what the dashboard has always shown.
func ComputeStats(rows []models.RSVP) Stats {
	s := Stats{Total: len(rows)}
	for _, r := range rows {
		switch r.Attending {
		case models.AttendingYes:
			s.Attending++
			if r.GuestCount > 0 {
				s.TotalGuests += r.GuestCount
			} else {
				s.TotalGuests++
			}
		case models.AttendingNo:
			s.Declined++
		}
	}
	return s
}
