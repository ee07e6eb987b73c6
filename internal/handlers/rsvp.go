package handlers

import (
	"context"
	"errors"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/mannyandcelesti/rsvp-api/internal/auth"
	"github.com/mannyandcelesti/rsvp-api/internal/models"
	"github.com/mannyandcelesti/rsvp-api/internal/notifier"
	"github.com/mannyandcelesti/rsvp-api/internal/ratelimit"
	"github.com/mannyandcelesti/rsvp-api/internal/rsvp"
	"github.com/mannyandcelesti/rsvp-api/internal/store"
	"github.com/rs/zerolog"
)

// Per-call-site rate limits. One shared limiter instance is parameterized
// here rather than each handler keeping its own map.
const (
	createWindow = time.Hour
	createMax    = 5

	lookupWindow = 5 * time.Minute
	lookupMax    = 10

	publicUpdateWindow = time.Hour
	publicUpdateMax    = 10

	listWindow = time.Minute
	listMax    = 30

	adminWriteWindow = time.Minute
	adminWriteMax    = 20

	adminDeleteWindow = time.Minute
	adminDeleteMax    = 10
)

// Event binds an RSVP handler to one celebration: its table's store, its
// modification deadline, and the notification wording.
type Event struct {
	Label    string
	Deadline time.Time
	Info     notifier.Event
}

// RSVPHandler serves one event's endpoints. Instantiated twice: wedding and
// baby shower.
type RSVPHandler struct {
	store      *store.Store
	limiter    *ratelimit.Limiter
	auth       *auth.Service
	dispatcher *notifier.Dispatcher
	event      Event
	log        zerolog.Logger
	now        func() time.Time
}

func NewRSVPHandler(s *store.Store, limiter *ratelimit.Limiter, authSvc *auth.Service, dispatcher *notifier.Dispatcher, event Event, log zerolog.Logger) *RSVPHandler {
	return &RSVPHandler{
		store:      s,
		limiter:    limiter,
		auth:       authSvc,
		dispatcher: dispatcher,
		event:      event,
		log:        log.With().Str("event", event.Label).Logger(),
		now:        time.Now,
	}
}

func (h *RSVPHandler) beforeDeadline() bool {
	return rsvp.BeforeDeadline(h.now(), h.event.Deadline)
}

// storeError hides persistence details from the caller; specifics go to the
// server log only.
func (h *RSVPHandler) storeError(op string, err error) error {
	h.log.Error().Err(err).Str("op", op).Msg("store error")
	return huma.Error500InternalServerError("Something went wrong. Please try again.")
}

type CreateRequest struct {
	Body struct {
		Name       string           `json:"name,omitempty" doc:"Display name of the person responding"`
		Email      string           `json:"email,omitempty"`
		Phone      string           `json:"phone,omitempty"`
		Attending  string           `json:"attending,omitempty" doc:"yes or no"`
		GuestCount int              `json:"guestCount,omitempty"`
		GuestList  models.GuestList `json:"guestList,omitempty"`
	}
}

type CreateResponse struct {
	Body struct {
		Success       bool             `json:"success"`
		Message       string           `json:"message"`
		ID            string           `json:"id"`
		Notifications notifier.Outcome `json:"notifications"`
	}
}

// HandleCreate is the public submission endpoint: rate-limited, phone
// required, full validation, duplicate-checked insert, then best-effort
// notifications.
func (h *RSVPHandler) HandleCreate(ctx context.Context, input *CreateRequest) (*CreateResponse, error) {
	if !h.limiter.Allow(ClientIP(ctx), createWindow, createMax) {
		return nil, huma.Error429TooManyRequests("Too many submissions. Please try again later.")
	}

	if input.Body.Attending == "" {
		return nil, huma.Error400BadRequest("Missing required fields")
	}

	sub := rsvp.Submission{
		Name:       input.Body.Name,
		Email:      input.Body.Email,
		Phone:      input.Body.Phone,
		Attending:  input.Body.Attending,
		GuestCount: input.Body.GuestCount,
		Guests:     input.Body.GuestList,
	}
	if err := rsvp.ValidateSubmission(sub, true); err != nil {
		return nil, huma.Error400BadRequest(err.Error())
	}

	row, err := h.store.Create(ctx, rsvp.NewRecord(sub))
	if err != nil {
		switch {
		case errors.Is(err, store.ErrDuplicateEmail):
			return nil, huma.Error409Conflict("An RSVP has already been submitted with this email address. If you need to make changes, please use the modify RSVP link.")
		case errors.Is(err, store.ErrDuplicatePhone):
			return nil, huma.Error409Conflict("An RSVP has already been submitted with this phone number. If you need to make changes, please use the modify RSVP link.")
		default:
			return nil, h.storeError("create", err)
		}
	}

	outcome := h.dispatcher.Dispatch(ctx, h.event.Info, *row, false)

	resp := &CreateResponse{}
	resp.Body.Success = true
	resp.Body.Message = "RSVP submitted successfully"
	resp.Body.ID = row.ID
	resp.Body.Notifications = outcome
	return resp, nil
}

type LookupRequest struct {
	Body struct {
		Email string `json:"email,omitempty"`
		Phone string `json:"phone,omitempty"`
	}
}

type LookupResponse struct {
	Body struct {
		Success bool        `json:"success"`
		RSVP    models.RSVP `json:"rsvp"`
	}
}

// HandleLookup is the self-service lookup: both email and phone must match
// one row, so neither alone is enough to enumerate RSVPs.
func (h *RSVPHandler) HandleLookup(ctx context.Context, input *LookupRequest) (*LookupResponse, error) {
	if !h.limiter.Allow(ClientIP(ctx), lookupWindow, lookupMax) {
		return nil, huma.Error429TooManyRequests("Too many attempts. Please try again in a few minutes.")
	}
	if !h.beforeDeadline() {
		return nil, huma.Error403Forbidden("The deadline for RSVP changes has passed. Please contact us directly.")
	}
	if input.Body.Email == "" || input.Body.Phone == "" {
		return nil, huma.Error400BadRequest("Email and phone number are required")
	}

	row, err := h.store.FindByIdentity(ctx, input.Body.Email, input.Body.Phone)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, huma.Error404NotFound("No RSVP found with those details. Please check your email and phone number.")
		}
		return nil, h.storeError("lookup", err)
	}

	resp := &LookupResponse{}
	resp.Body.Success = true
	resp.Body.RSVP = *row
	return resp, nil
}

type PublicUpdateRequest struct {
	Body struct {
		ID         string           `json:"id,omitempty"`
		Email      string           `json:"email,omitempty"`
		Phone      string           `json:"phone,omitempty"`
		Name       string           `json:"name,omitempty"`
		Attending  string           `json:"attending,omitempty"`
		GuestCount *int             `json:"guestCount,omitempty"`
		GuestList  models.GuestList `json:"guestList,omitempty"`
	}
}

type UpdateResponse struct {
	Body struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
}

// HandlePublicUpdate lets a guest change their own RSVP. Identity is the
// id/email/phone triplet; contact fields are never patchable here, and any
// other keys in the payload are silently ignored.
func (h *RSVPHandler) HandlePublicUpdate(ctx context.Context, input *PublicUpdateRequest) (*UpdateResponse, error) {
	if !h.limiter.Allow(ClientIP(ctx), publicUpdateWindow, publicUpdateMax) {
		return nil, huma.Error429TooManyRequests("Too many updates. Please try again later.")
	}
	if !h.beforeDeadline() {
		return nil, huma.Error403Forbidden("The deadline for RSVP changes has passed. Please contact us directly.")
	}
	if input.Body.ID == "" || input.Body.Email == "" || input.Body.Phone == "" {
		return nil, huma.Error400BadRequest("Missing required fields")
	}

	row, err := h.store.VerifyIdentity(ctx, input.Body.ID, input.Body.Email, input.Body.Phone)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// One message for every mismatch; no hint at which field
			// was wrong.
			return nil, huma.Error403Forbidden("Unable to verify your identity. Please try looking up your RSVP again.")
		}
		return nil, h.storeError("verify", err)
	}

	resolved := rsvp.ResolveUpdate(row.RSVPFields, rsvp.Patch{
		Name:       input.Body.Name,
		Attending:  input.Body.Attending,
		GuestCount: input.Body.GuestCount,
		Guests:     input.Body.GuestList,
	})

	if err := h.store.Update(ctx, row.ID, resolved); err != nil {
		return nil, h.storeError("public update", err)
	}

	row.RSVPFields = resolved
	h.dispatcher.DispatchAdminAlert(ctx, h.event.Info, *row, true)

	resp := &UpdateResponse{}
	resp.Body.Success = true
	resp.Body.Message = "RSVP updated successfully"
	return resp, nil
}
