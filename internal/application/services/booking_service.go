package services

import (
	"context"
	"strings"

	"github.com/medqueue/medqueue-go/internal/domain/entities"
	"github.com/medqueue/medqueue-go/internal/domain/providers"
	"github.com/medqueue/medqueue-go/internal/infrastructure/observability"
	apperrors "github.com/medqueue/medqueue-go/pkg/errors"
)

// CacheInvalidator drops the cached hospital listing. Called after every
// successful mutation so the next read reflects the updated queue counts.
type CacheInvalidator interface {
	Invalidate(ctx context.Context)
}

// BookingService orchestrates appointment creation: local validation, the
// directory call, and cache invalidation on success.
//
// Submission is not idempotent at the protocol level: the backend has no
// client-generated request token, so a resubmitted request books a second
// slot. Callers must never auto-retry a failed submission; only the human
// re-triggers it.
type BookingService struct {
	directory providers.DirectoryClient
	gate      providers.AuthGate
	cache     CacheInvalidator
}

// NewBookingService creates a new booking service
func NewBookingService(directory providers.DirectoryClient, gate providers.AuthGate, cache CacheInvalidator) *BookingService {
	return &BookingService{
		directory: directory,
		gate:      gate,
		cache:     cache,
	}
}

// Submit books an appointment from the full form. The patient name is
// required on top of the hospital and datetime.
func (s *BookingService) Submit(ctx context.Context, req *entities.AppointmentRequest) (*entities.Appointment, error) {
	return s.submit(ctx, req, true)
}

// SubmitQuick books an appointment from a hospital card. A missing patient
// name is replaced with the guest placeholder.
func (s *BookingService) SubmitQuick(ctx context.Context, req *entities.AppointmentRequest) (*entities.Appointment, error) {
	if strings.TrimSpace(req.PatientName) == "" {
		req.PatientName = entities.GuestName
	}
	return s.submit(ctx, req, false)
}

func (s *BookingService) submit(ctx context.Context, req *entities.AppointmentRequest, requireName bool) (*entities.Appointment, error) {
	if !s.gate.IsAuthenticated(ctx) {
		return nil, apperrors.NewAuthRequiredError("sign in to book an appointment")
	}

	// Local validation runs before any network call.
	if req.HospitalID == 0 || strings.TrimSpace(req.Datetime) == "" {
		return nil, apperrors.NewValidationError("hospital and datetime are required")
	}
	if requireName && strings.TrimSpace(req.PatientName) == "" {
		return nil, apperrors.NewValidationError("patient name is required")
	}

	appointment, err := s.directory.CreateAppointment(ctx, req)
	if err != nil {
		if apperrors.IsValidation(err) {
			// Backend-provided field message, surfaced verbatim.
			return nil, err
		}
		return nil, apperrors.NewTransportError("could not reach the booking service", err)
	}

	// The just-incremented queue count must be visible on the next read.
	s.cache.Invalidate(ctx)

	if req.Phone != "" {
		s.syncPhone(ctx, req.Phone)
	}

	observability.LoggerFromContext(ctx).Info().
		Str("code", appointment.Code).
		Int("queue_position", appointment.QueuePosition).
		Msg("appointment booked")

	return appointment, nil
}

// syncPhone writes the phone captured by the form back to the stored
// profile. Best effort; a failure never fails the booking.
func (s *BookingService) syncPhone(ctx context.Context, phone string) {
	updater, ok := s.gate.(providers.ProfileUpdater)
	if !ok {
		return
	}
	if err := updater.UpdatePhone(ctx, phone); err != nil {
		observability.LoggerFromContext(ctx).Warn().Err(err).Msg("failed to sync phone to profile")
	}
}
