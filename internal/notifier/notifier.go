// Package notifier sends the best-effort confirmations that follow a
// successful RSVP write: guest email via Resend, guest SMS via Twilio, and
// an admin alert to a Discord channel. Every channel is optional; a missing
// configuration or a send failure is logged and never surfaces as an error
// to the HTTP caller.
package notifier

import (
	"context"
	"errors"
	"sync"

	"github.com/mannyandcelesti/rsvp-api/internal/models"
	"github.com/rs/zerolog"
)

// Event describes which celebration a notification belongs to.
type Event struct {
	Label        string // "wedding" or "baby shower"
	Hosts        string
	EditURL      string
	DeadlineText string
}

// Notifier is the boundary the handlers depend on.
type Notifier interface {
	SendGuestConfirmation(ctx context.Context, ev Event, r models.RSVP) error
	SendAdminAlert(ctx context.Context, ev Event, r models.RSVP, isUpdate bool) error
	SendSMS(ctx context.Context, ev Event, r models.RSVP) error
}

var errNotConfigured = errors.New("channel not configured")

// Service is the production Notifier. Nil clients mean the channel is off.
type Service struct {
	email *ResendClient
	sms   *TwilioClient
	admin *DiscordNotifier
}

func NewService(email *ResendClient, sms *TwilioClient, admin *DiscordNotifier) *Service {
	return &Service{email: email, sms: sms, admin: admin}
}

func (s *Service) SendGuestConfirmation(ctx context.Context, ev Event, r models.RSVP) error {
	if s.email == nil {
		return errNotConfigured
	}
	subject, html, text := buildConfirmation(ev, r)
	return s.email.Send(ctx, r.Email, subject, html, text)
}

func (s *Service) SendAdminAlert(ctx context.Context, ev Event, r models.RSVP, isUpdate bool) error {
	if s.admin == nil {
		return errNotConfigured
	}
	return s.admin.NotifyRSVP(ev, r, isUpdate)
}

func (s *Service) SendSMS(ctx context.Context, ev Event, r models.RSVP) error {
	if s.sms == nil {
		return errNotConfigured
	}
	return s.sms.SendMessage(ctx, r.Phone, buildSMS(ev, r))
}

// Outcome is the best-effort status reflected in a create/update response.
type Outcome struct {
	EmailSent bool `json:"email"`
}

// Dispatcher fans a finalized RSVP out to all channels concurrently. It is
// called only after the write has committed; failures are logged, never
// propagated, and never roll anything back.
type Dispatcher struct {
	notifier Notifier
	log      zerolog.Logger
}

func NewDispatcher(n Notifier, log zerolog.Logger) *Dispatcher {
	return &Dispatcher{notifier: n, log: log}
}

// Dispatch runs all sends in parallel and waits for them only to assemble
// the informational outcome. SMS is skipped for rows without a phone.
func (d *Dispatcher) Dispatch(ctx context.Context, ev Event, r models.RSVP, isUpdate bool) Outcome {
	var (
		wg       sync.WaitGroup
		out      Outcome
		emailErr error
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		emailErr = d.notifier.SendGuestConfirmation(ctx, ev, r)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := d.notifier.SendAdminAlert(ctx, ev, r, isUpdate); err != nil && !errors.Is(err, errNotConfigured) {
			d.log.Error().Err(err).Str("event", ev.Label).Str("rsvp", r.ID).Msg("admin alert failed")
		}
	}()

	if r.Phone != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := d.notifier.SendSMS(ctx, ev, r); err != nil && !errors.Is(err, errNotConfigured) {
				d.log.Error().Err(err).Str("event", ev.Label).Str("rsvp", r.ID).Msg("sms failed")
			}
		}()
	}

	wg.Wait()

	if emailErr != nil {
		if !errors.Is(emailErr, errNotConfigured) {
			d.log.Error().Err(emailErr).Str("event", ev.Label).Str("rsvp", r.ID).Msg("confirmation email failed")
		}
	} else {
		out.EmailSent = true
	}
	return out
}

// DispatchAdminAlert sends only the admin alert; the self-service and admin
// update paths use it so guests are not re-mailed on every edit.
func (d *Dispatcher) DispatchAdminAlert(ctx context.Context, ev Event, r models.RSVP, isUpdate bool) {
	if err := d.notifier.SendAdminAlert(ctx, ev, r, isUpdate); err != nil && !errors.Is(err, errNotConfigured) {
		d.log.Error().Err(err).Str("event", ev.Label).Str("rsvp", r.ID).Msg("admin alert failed")
	}
}
