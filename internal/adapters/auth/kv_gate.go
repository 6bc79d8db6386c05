package auth

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/google/uuid"

	"github.com/medqueue/medqueue-go/internal/domain/entities"
	"github.com/medqueue/medqueue-go/internal/domain/providers"
	"github.com/medqueue/medqueue-go/internal/infrastructure/observability"
	apperrors "github.com/medqueue/medqueue-go/pkg/errors"
)

// SessionKey is the fixed key the signed-in identity lives under in the
// durable store.
const SessionKey = "medqueue_current_user"

// KVGate is an AuthGate backed by the durable key-value store: the session
// record under SessionKey is the signed-in identity. Corrupt stored state
// counts as signed out.
type KVGate struct {
	store providers.KeyValueStore
}

// NewKVGate creates an auth gate over the given store
func NewKVGate(store providers.KeyValueStore) *KVGate {
	return &KVGate{
		store: store,
	}
}

var (
	_ providers.AuthGate       = (*KVGate)(nil)
	_ providers.ProfileUpdater = (*KVGate)(nil)
)

// IsAuthenticated reports whether a session record exists
func (g *KVGate) IsAuthenticated(ctx context.Context) bool {
	return g.read(ctx) != nil
}

// CurrentUser returns the signed-in user or an auth required error
func (g *KVGate) CurrentUser(ctx context.Context) (*entities.User, error) {
	user := g.read(ctx)
	if user == nil {
		return nil, apperrors.NewAuthRequiredError("no signed-in user")
	}
	return user, nil
}

// SignIn stores a session for the given identity and returns it
func (g *KVGate) SignIn(ctx context.Context, name, email string) (*entities.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewValidationError("name is required")
	}

	user := &entities.User{
		ID:    uuid.New().String(),
		Name:  name,
		Email: strings.TrimSpace(email),
	}
	if err := g.write(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// SignOut removes the stored session
func (g *KVGate) SignOut(ctx context.Context) error {
	return g.store.Remove(ctx, SessionKey)
}

// UpdatePhone writes a phone number back to the stored session. A phone
// captured during booking is kept on the profile for the next form.
func (g *KVGate) UpdatePhone(ctx context.Context, phone string) error {
	user := g.read(ctx)
	if user == nil {
		return apperrors.NewAuthRequiredError("no signed-in user")
	}
	user.Phone = strings.TrimSpace(phone)
	return g.write(ctx, user)
}

func (g *KVGate) read(ctx context.Context) *entities.User {
	data, err := g.store.Get(ctx, SessionKey)
	if err != nil {
		return nil
	}
	user := &entities.User{}
	if err := json.Unmarshal(data, user); err != nil || user.Name == "" {
		return nil
	}
	return user
}

func (g *KVGate) write(ctx context.Context, user *entities.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}
	if err := g.store.Set(ctx, SessionKey, data); err != nil {
		observability.LoggerFromContext(ctx).Warn().Err(err).Msg("failed to persist session")
		return err
	}
	return nil
}
