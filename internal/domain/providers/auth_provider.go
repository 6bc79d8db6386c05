package providers

import (
	"context"

	"github.com/medqueue/medqueue-go/internal/domain/entities"
)

// AuthGate reports whether the client has a signed-in identity. Booking
// refuses to contact the backend without one.
type AuthGate interface {
	IsAuthenticated(ctx context.Context) bool

	// CurrentUser returns the signed-in user, or an AUTH_REQUIRED error.
	CurrentUser(ctx context.Context) (*entities.User, error)
}

// ProfileUpdater is implemented by auth gates that can write profile fields
// back to the stored session, such as a phone number captured during booking.
type ProfileUpdater interface {
	UpdatePhone(ctx context.Context, phone string) error
}
