// Package store is the persistence layer for RSVP rows. The wedding and
// baby-shower tables share one model, so a Store is scoped to a table name.
// Duplicate checks run inside the same transaction as the write they guard,
// closing the check-then-insert race the handlers would otherwise carry.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/mannyandcelesti/rsvp-api/internal/models"
	"github.com/mannyandcelesti/rsvp-api/internal/rsvp"
	"gorm.io/gorm"
)

const (
	WeddingTable    = "wedding_rsvps"
	BabyShowerTable = "baby_shower_rsvps"
)

// Phone uniqueness only applies to real numbers; shorter strings are too
// ambiguous to treat as identifying.
const minPhoneDigits = 10

var (
	ErrDuplicateEmail = errors.New("an RSVP with this email address already exists")
	ErrDuplicatePhone = errors.New("an RSVP with this phone number already exists")
	ErrNotFound       = errors.New("RSVP not found")
)

type Store struct {
	db    *gorm.DB
	table string
}

func New(db *gorm.DB, table string) *Store {
	return &Store{db: db, table: table}
}

func (s *Store) scoped(tx *gorm.DB) *gorm.DB {
	return tx.Table(s.table)
}

// checkDuplicates fails with ErrDuplicateEmail or ErrDuplicatePhone when
// another row (excluding excludeID) already uses the contact details.
// Email is checked first. Stored emails and normalized phones are written
// in canonical form, so plain equality is enough.
func (s *Store) checkDuplicates(tx *gorm.DB, f models.RSVPFields, excludeID string) error {
	var count int64

	q := s.scoped(tx).Where("email = ?", f.Email)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrDuplicateEmail
	}

	if len(f.NormalizedPhone) < minPhoneDigits {
		return nil
	}
	q = s.scoped(tx).Where("normalized_phone = ?", f.NormalizedPhone)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrDuplicatePhone
	}
	return nil
}

// Create inserts a new row, assigning its id and creation time, after the
// in-transaction duplicate checks pass.
func (s *Store) Create(ctx context.Context, f models.RSVPFields) (*models.RSVP, error) {
	row := &models.RSVP{
		ID:         uuid.NewString(),
		CreatedAt:  time.Now(),
		RSVPFields: f,
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.checkDuplicates(tx, f, ""); err != nil {
			return err
		}
		return s.scoped(tx).Create(row).Error
	})
	if err != nil {
		return nil, err
	}
	return row, nil
}

// Update replaces the fields of an existing row, re-running the duplicate
// checks against every other row in the same transaction.
func (s *Store) Update(ctx context.Context, id string, f models.RSVPFields) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.RSVP
		if err := s.scoped(tx).Where("id = ?", id).First(&existing).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if err := s.checkDuplicates(tx, f, id); err != nil {
			return err
		}
		existing.RSVPFields = f
		return s.scoped(tx).Save(&existing).Error
	})
}

func (s *Store) Get(ctx context.Context, id string) (*models.RSVP, error) {
	var row models.RSVP
	err := s.scoped(s.db.WithContext(ctx)).Where("id = ?", id).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// List returns every row, newest first.
func (s *Store) List(ctx context.Context) ([]models.RSVP, error) {
	var rows []models.RSVP
	err := s.scoped(s.db.WithContext(ctx)).Order("created_at DESC").Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	res := s.scoped(s.db.WithContext(ctx)).Where("id = ?", id).Delete(&models.RSVP{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// FindByIdentity locates a row by the claimed email and phone. Both must
// match; a single-field match is not enough to claim a row.
func (s *Store) FindByIdentity(ctx context.Context, email, phone string) (*models.RSVP, error) {
	var row models.RSVP
	err := s.scoped(s.db.WithContext(ctx)).
		Where("email = ? AND normalized_phone = ?", rsvp.NormalizeEmail(email), rsvp.NormalizePhone(phone)).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// VerifyIdentity is the self-service gate: id, email and phone must all
// match the stored row.
func (s *Store) VerifyIdentity(ctx context.Context, id, email, phone string) (*models.RSVP, error) {
	var row models.RSVP
	err := s.scoped(s.db.WithContext(ctx)).
		Where("id = ? AND email = ? AND normalized_phone = ?",
			id, rsvp.NormalizeEmail(email), rsvp.NormalizePhone(phone)).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}
