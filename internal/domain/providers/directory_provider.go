package providers

import (
	"context"

	"github.com/medqueue/medqueue-go/internal/domain/entities"
)

// DirectoryClient issues single-shot requests against the booking backend.
// Implementations perform no retries; every failure is reported upward so
// the calling workflow decides how to degrade.
type DirectoryClient interface {
	// ListHospitals returns the full hospital directory.
	ListHospitals(ctx context.Context) ([]entities.Hospital, error)

	// CreateAppointment books a queue slot and returns the backend-assigned
	// reservation. The operation is not idempotent: submitting the same
	// request twice creates two reservations.
	CreateAppointment(ctx context.Context, req *entities.AppointmentRequest) (*entities.Appointment, error)

	// LookupAppointment resolves a reservation code. Codes are compared
	// case-insensitively.
	LookupAppointment(ctx context.Context, code string) (*entities.Appointment, error)

	// CancelAppointment cancels the reservation identified by code.
	CancelAppointment(ctx context.Context, code string) error
}
