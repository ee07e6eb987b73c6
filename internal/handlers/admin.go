package handlers

import (
	"context"
	"errors"
	"fmt"

	"github.com/danielgtaylor/huma/v2"
	"github.com/mannyandcelesti/rsvp-api/internal/auth"
	"github.com/mannyandcelesti/rsvp-api/internal/models"
	"github.com/mannyandcelesti/rsvp-api/internal/ratelimit"
	"github.com/mannyandcelesti/rsvp-api/internal/rsvp"
	"github.com/mannyandcelesti/rsvp-api/internal/store"
	"github.com/rs/zerolog"
)

// authorize maps auth failures to HTTP errors: a missing secret is a server
// configuration problem, everything else is a plain 401.
func (h *RSVPHandler) authorize(header string) error {
	err := h.auth.Authorize(header)
	if err == nil {
		return nil
	}
	if errors.Is(err, auth.ErrNotConfigured) {
		h.log.Error().Msg("admin password not configured")
		return huma.Error500InternalServerError("Server configuration error")
	}
	return huma.Error401Unauthorized("Unauthorized")
}

type ListRequest struct {
	Authorization string `header:"Authorization"`
}

type ListResponse struct {
	Body struct {
		RSVPs []models.RSVP `json:"rsvps"`
		Stats rsvp.Stats    `json:"stats"`
	}
}

func (h *RSVPHandler) HandleList(ctx context.Context, input *ListRequest) (*ListResponse, error) {
	if !h.limiter.Allow(ClientIP(ctx), listWindow, listMax) {
		return nil, huma.Error429TooManyRequests("Too many requests. Please try again later.")
	}
	if err := h.authorize(input.Authorization); err != nil {
		return nil, err
	}

	rows, err := h.store.List(ctx)
	if err != nil {
		return nil, h.storeError("list", err)
	}

	resp := &ListResponse{}
	resp.Body.RSVPs = rows
	resp.Body.Stats = rsvp.ComputeStats(rows)
	return resp, nil
}

type AdminCreateRequest struct {
	Authorization string `header:"Authorization"`
	Body          struct {
		Name       string           `json:"name,omitempty"`
		Email      string           `json:"email,omitempty"`
		Phone      string           `json:"phone,omitempty"`
		Attending  string           `json:"attending,omitempty"`
		GuestCount int              `json:"guestCount,omitempty"`
		GuestList  models.GuestList `json:"guestList,omitempty"`
	}
}

type AdminCreateResponse struct {
	Body struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
		ID      string `json:"id"`
	}
}

// HandleAdminCreate adds a row on a guest's behalf. Phone is optional here
// and attending defaults to yes; the guest-list consistency rules still
// apply.
func (h *RSVPHandler) HandleAdminCreate(ctx context.Context, input *AdminCreateRequest) (*AdminCreateResponse, error) {
	if !h.limiter.Allow(ClientIP(ctx), adminWriteWindow, adminWriteMax) {
		return nil, huma.Error429TooManyRequests("Too many requests. Please try again later.")
	}
	if err := h.authorize(input.Authorization); err != nil {
		return nil, err
	}

	attending := input.Body.Attending
	if attending == "" {
		attending = models.AttendingYes
	}

	sub := rsvp.Submission{
		Name:       input.Body.Name,
		Email:      input.Body.Email,
		Phone:      input.Body.Phone,
		Attending:  attending,
		GuestCount: input.Body.GuestCount,
		Guests:     input.Body.GuestList,
	}
	if err := rsvp.ValidateSubmission(sub, false); err != nil {
		return nil, huma.Error400BadRequest(err.Error())
	}

	row, err := h.store.Create(ctx, rsvp.NewRecord(sub))
	if err != nil {
		switch {
		case errors.Is(err, store.ErrDuplicateEmail):
			return nil, huma.Error409Conflict("An RSVP with this email already exists")
		case errors.Is(err, store.ErrDuplicatePhone):
			return nil, huma.Error409Conflict("An RSVP with this phone number already exists")
		default:
			return nil, h.storeError("admin create", err)
		}
	}

	resp := &AdminCreateResponse{}
	resp.Body.Success = true
	resp.Body.Message = "RSVP added successfully"
	resp.Body.ID = row.ID
	return resp, nil
}

type AdminUpdateRequest struct {
	Authorization string `header:"Authorization"`
	Body          struct {
		ID         string           `json:"id,omitempty"`
		Name       string           `json:"name,omitempty"`
		Email      string           `json:"email,omitempty"`
		Phone      string           `json:"phone,omitempty"`
		Attending  string           `json:"attending,omitempty"`
		GuestCount *int             `json:"guestCount,omitempty"`
		GuestList  models.GuestList `json:"guestList,omitempty"`
		GuestNames []string         `json:"guestNames,omitempty" doc:"Legacy plain-name guest list"`
	}
}

// HandleAdminUpdate patches any field of an existing row, including contact
// details, re-checking uniqueness against the rest of the table.
func (h *RSVPHandler) HandleAdminUpdate(ctx context.Context, input *AdminUpdateRequest) (*UpdateResponse, error) {
	if !h.limiter.Allow(ClientIP(ctx), adminWriteWindow, adminWriteMax) {
		return nil, huma.Error429TooManyRequests("Too many requests. Please try again later.")
	}
	if err := h.authorize(input.Authorization); err != nil {
		return nil, err
	}
	if input.Body.ID == "" {
		return nil, huma.Error400BadRequest("Missing RSVP ID")
	}

	row, err := h.store.Get(ctx, input.Body.ID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, huma.Error404NotFound("RSVP not found")
		}
		return nil, h.storeError("admin update", err)
	}

	resolved := rsvp.ResolveUpdate(row.RSVPFields, rsvp.Patch{
		Name:             input.Body.Name,
		Email:            input.Body.Email,
		Phone:            input.Body.Phone,
		Attending:        input.Body.Attending,
		GuestCount:       input.Body.GuestCount,
		Guests:           input.Body.GuestList,
		LegacyGuestNames: input.Body.GuestNames,
	})

	if err := h.store.Update(ctx, row.ID, resolved); err != nil {
		switch {
		case errors.Is(err, store.ErrDuplicateEmail):
			return nil, huma.Error409Conflict("Another RSVP already uses this email address")
		case errors.Is(err, store.ErrDuplicatePhone):
			return nil, huma.Error409Conflict("Another RSVP already uses this phone number")
		default:
			return nil, h.storeError("admin update", err)
		}
	}

	row.RSVPFields = resolved
	h.dispatcher.DispatchAdminAlert(ctx, h.event.Info, *row, true)

	resp := &UpdateResponse{}
	resp.Body.Success = true
	resp.Body.Message = "RSVP updated successfully"
	return resp, nil
}

type DeleteRequest struct {
	Authorization string `header:"Authorization"`
	Body          struct {
		ID string `json:"id,omitempty"`
	}
}

func (h *RSVPHandler) HandleAdminDelete(ctx context.Context, input *DeleteRequest) (*UpdateResponse, error) {
	if !h.limiter.Allow(ClientIP(ctx), adminDeleteWindow, adminDeleteMax) {
		return nil, huma.Error429TooManyRequests("Too many requests. Please try again later.")
	}
	if err := h.authorize(input.Authorization); err != nil {
		return nil, err
	}
	if input.Body.ID == "" {
		return nil, huma.Error400BadRequest("Missing RSVP ID")
	}

	if err := h.store.Delete(ctx, input.Body.ID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, huma.Error404NotFound("RSVP not found")
		}
		return nil, h.storeError("delete", err)
	}

	resp := &UpdateResponse{}
	resp.Body.Success = true
	resp.Body.Message = "RSVP deleted successfully"
	return resp, nil
}

// LoginHandler exchanges admin credentials for a session token, with a
// lockout limiter in front of it.
type LoginHandler struct {
	auth    *auth.Service
	limiter *ratelimit.LoginLimiter
	log     zerolog.Logger
}

func NewLoginHandler(authSvc *auth.Service, limiter *ratelimit.LoginLimiter, log zerolog.Logger) *LoginHandler {
	return &LoginHandler{auth: authSvc, limiter: limiter, log: log}
}

type LoginRequest struct {
	Body struct {
		Username string `json:"username,omitempty"`
		Password string `json:"password,omitempty"`
	}
}

type LoginResponse struct {
	Body struct {
		Success bool   `json:"success"`
		Token   string `json:"token"`
	}
}

func (h *LoginHandler) HandleLogin(ctx context.Context, input *LoginRequest) (*LoginResponse, error) {
	ip := ClientIP(ctx)

	allowed, remainingMinutes := h.limiter.Check(ip)
	if !allowed {
		return nil, huma.Error429TooManyRequests(fmt.Sprintf("Too many login attempts. Please try again in %d minutes.", remainingMinutes))
	}

	if input.Body.Username == "" || input.Body.Password == "" {
		return nil, huma.Error400BadRequest("Username and password required")
	}

	if err := h.auth.CheckCredentials(input.Body.Username, input.Body.Password); err != nil {
		if errors.Is(err, auth.ErrNotConfigured) {
			h.log.Error().Msg("admin password not configured")
			return nil, huma.Error500InternalServerError("Server configuration error")
		}
		remaining := h.limiter.RecordFailure(ip)
		return nil, huma.Error401Unauthorized(fmt.Sprintf("Invalid username or password. %d attempts remaining.", remaining))
	}

	h.limiter.Reset(ip)

	token, err := h.auth.GenerateToken(input.Body.Username)
	if err != nil {
		h.log.Error().Err(err).Msg("token generation failed")
		return nil, huma.Error500InternalServerError("Server configuration error")
	}

	resp := &LoginResponse{}
	resp.Body.Success = true
	resp.Body.Token = token
	return resp, nil
}
