package services

import (
	"context"
	"strings"
	"sync"

	"github.com/medqueue/medqueue-go/internal/domain/entities"
	"github.com/medqueue/medqueue-go/internal/domain/providers"
	"github.com/medqueue/medqueue-go/internal/infrastructure/observability"
	apperrors "github.com/medqueue/medqueue-go/pkg/errors"
)

// StatusService looks up reservations by code and performs cancellation.
// It keeps only transient state: the record of the last successful lookup,
// dropped as soon as the reservation is cancelled so a cancelled queue
// position can never be re-displayed without a fresh lookup.
type StatusService struct {
	directory providers.DirectoryClient
	cache     CacheInvalidator

	mu   sync.Mutex
	last *entities.Appointment
}

// NewStatusService creates a new status service
func NewStatusService(directory providers.DirectoryClient, cache CacheInvalidator) *StatusService {
	return &StatusService{
		directory: directory,
		cache:     cache,
	}
}

// CheckStatus resolves a reservation code. Empty input is rejected locally;
// a not found result is a normal, user-facing outcome.
func (s *StatusService) CheckStatus(ctx context.Context, code string) (*entities.Appointment, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	if normalized == "" {
		return nil, apperrors.NewValidationError("reservation code is required")
	}

	appointment, err := s.directory.LookupAppointment(ctx, normalized)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.last = appointment
	s.mu.Unlock()

	return appointment, nil
}

// AutoCheck runs a single status check when a code arrives through a deep
// link. A blank code is not an error; there is simply nothing to check.
func (s *StatusService) AutoCheck(ctx context.Context, code string) (*entities.Appointment, error) {
	if strings.TrimSpace(code) == "" {
		return nil, nil
	}
	return s.CheckStatus(ctx, code)
}

// Last returns the record of the most recent successful lookup, or nil.
func (s *StatusService) Last() *entities.Appointment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

// Cancel cancels the reservation identified by code. The confirmed flag is
// the caller's explicit confirmation gesture; without it nothing is sent.
// A not found response means the code is unknown or already cancelled:
// the goal state is reached, but the outcome is still reported as a failure
// so a code that never existed is not claimed cancelled.
func (s *StatusService) Cancel(ctx context.Context, code string, confirmed bool) error {
	if !confirmed {
		return apperrors.NewValidationError("cancellation requires explicit confirmation")
	}

	normalized := strings.ToUpper(strings.TrimSpace(code))
	if normalized == "" {
		return apperrors.NewValidationError("reservation code is required")
	}

	err := s.directory.CancelAppointment(ctx, normalized)
	if err != nil {
		if apperrors.IsNotFound(err) {
			s.forget(normalized)
		}
		return err
	}

	s.cache.Invalidate(ctx)
	s.forget(normalized)

	observability.LoggerFromContext(ctx).Info().
		Str("code", normalized).
		Msg("appointment cancelled")

	return nil
}

// forget drops the remembered record when it matches the cancelled code.
func (s *StatusService) forget(code string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.last != nil && strings.EqualFold(s.last.Code, code) {
		s.last.Status = entities.AppointmentStatusCancelled
		s.last = nil
	}
}
