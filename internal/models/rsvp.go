package models

import (
	"time"
)

// Guest is a single member of a party, with optional dietary notes.
type Guest struct {
	Name      string `json:"name"`
	Dietary   string `json:"dietary,omitempty"`
	Allergies string `json:"allergies,omitempty"`
}

// GuestList is the structured guest-list form. Older clients submitted a
// plain array of name strings; those are upgraded via rsvp.UpgradeGuestNames
// before they ever reach storage, so the persisted form is always structured.
type GuestList []Guest

// RSVPFields holds everything mutable about an RSVP. Embedded so the wedding
// and baby-shower tables share one shape.
type RSVPFields struct {
	Name            string    `json:"name"`
	Email           string    `json:"email" gorm:"index"`
	Phone           string    `json:"phone"`
	NormalizedPhone string    `json:"-" gorm:"index"`
	Attending       string    `json:"attending"`
	GuestCount      int       `json:"guestCount"`
	Guests          GuestList `json:"guestList" gorm:"serializer:json"`
}

type RSVP struct {
	ID         string    `json:"id" gorm:"primaryKey"`
	CreatedAt  time.Time `json:"createdAt"`
	RSVPFields `gorm:"embedded"`
}

const (
	AttendingYes = "yes"
	AttendingNo  = "no"
)
