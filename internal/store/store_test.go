package store

import (
	"context"
	"errors"
	"testing"

	"github.com/mannyandcelesti/rsvp-api/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	if err := db.Table(WeddingTable).AutoMigrate(&models.RSVP{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return New(db, WeddingTable)
}

func fields(name, email, phone string) models.RSVPFields {
	norm := ""
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			norm += string(r)
		}
	}
	return models.RSVPFields{
		Name:            name,
		Email:           email,
		Phone:           phone,
		NormalizedPhone: norm,
		Attending:       models.AttendingYes,
		GuestCount:      1,
		Guests:          models.GuestList{{Name: name}},
	}
}

func TestCreateAndDuplicates(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	row, err := s.Create(ctx, fields("Jo", "jo@x.com", "555-123-4567"))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if row.ID == "" {
		t.Fatal("expected an assigned id")
	}
	if row.CreatedAt.IsZero() {
		t.Fatal("expected createdAt to be set")
	}

	// Same email, stored form is lower-cased so equality catches it.
	_, err = s.Create(ctx, fields("Jo2", "jo@x.com", "999-999-9999"))
	if !errors.Is(err, ErrDuplicateEmail) {
		t.Errorf("expected ErrDuplicateEmail, got %v", err)
	}

	// Same phone, differently formatted.
	_, err = s.Create(ctx, fields("Jo3", "jo3@x.com", "(555) 123 4567"))
	if !errors.Is(err, ErrDuplicatePhone) {
		t.Errorf("expected ErrDuplicatePhone, got %v", err)
	}

	// Short phone strings are not treated as identifying.
	if _, err = s.Create(ctx, fields("Jo4", "jo4@x.com", "123")); err != nil {
		t.Errorf("short phone should not conflict: %v", err)
	}
}

func TestUpdate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	a, _ := s.Create(ctx, fields("A", "a@x.com", "111-222-3333"))
	s.Create(ctx, fields("B", "b@x.com", "444-555-6666"))

	// Updating A onto B's email conflicts.
	f := a.RSVPFields
	f.Email = "b@x.com"
	if err := s.Update(ctx, a.ID, f); !errors.Is(err, ErrDuplicateEmail) {
		t.Errorf("expected ErrDuplicateEmail, got %v", err)
	}

	// Keeping its own contact details does not.
	f = a.RSVPFields
	f.Name = "A2"
	if err := s.Update(ctx, a.ID, f); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	got, err := s.Get(ctx, a.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Name != "A2" {
		t.Errorf("expected updated name, got %q", got.Name)
	}
	if len(got.Guests) != 1 || got.Guests[0].Name != "A" {
		t.Errorf("guest list did not round-trip: %+v", got.Guests)
	}

	if err := s.Update(ctx, "missing", f); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestListOrder(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	s.Create(ctx, fields("A", "a@x.com", "111-222-3333"))
	s.Create(ctx, fields("B", "b@x.com", "444-555-6666"))

	rows, err := s.List(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
}

func TestDelete(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	row, _ := s.Create(ctx, fields("A", "a@x.com", "111-222-3333"))
	if err := s.Delete(ctx, row.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := s.Delete(ctx, row.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestVerifyIdentity(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	row, _ := s.Create(ctx, fields("Jo", "a@x.com", "5551234567"))

	// Case-insensitive email, formatted phone.
	got, err := s.VerifyIdentity(ctx, row.ID, "A@X.Com", "(555) 123-4567")
	if err != nil {
		t.Fatalf("expected match, got %v", err)
	}
	if got.ID != row.ID {
		t.Errorf("wrong row: %s", got.ID)
	}

	// Correct id and email but wrong phone: no partial match.
	if _, err := s.VerifyIdentity(ctx, row.ID, "a@x.com", "999"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	// Correct contact details but wrong id.
	if _, err := s.VerifyIdentity(ctx, "other", "a@x.com", "5551234567"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestFindByIdentity(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	row, _ := s.Create(ctx, fields("Jo", "a@x.com", "5551234567"))

	got, err := s.FindByIdentity(ctx, "A@X.COM", "555-123-4567")
	if err != nil {
		t.Fatalf("expected match, got %v", err)
	}
	if got.ID != row.ID {
		t.Errorf("wrong row: %s", got.ID)
	}

	if _, err := s.FindByIdentity(ctx, "a@x.com", "0000000000"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
