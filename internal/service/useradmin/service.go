// Package useradmin orchestrates user administration across the
// identity service, the credential store, and the notification hooks.
package useradmin

import (
	"context"
	"log/slog"
	"sort"

	"socuser/internal/credstore"
	"socuser/internal/crypto"
	"socuser/internal/domain"
	"socuser/internal/identity"
	"socuser/internal/notify"
	"socuser/internal/validate"
)

// Service provides the user administration operations.
type Service struct {
	client   *identity.Client
	store    *credstore.Store
	hasher   *crypto.Hasher
	notifier notify.Notifier
	logger   *slog.Logger
}

// NewService creates a new Service.
func NewService(client *identity.Client, store *credstore.Store, hasher *crypto.Hasher, notifier notify.Notifier, logger *slog.Logger) *Service {
	return &Service{
		client:   client,
		store:    store,
		hasher:   hasher,
		notifier: notifier,
		logger:   logger,
	}
}

// Preflight confirms the identity service answers its readiness probe.
// The credential database file was already checked when the store was
// opened, so together these cover every prerequisite for a mutation.
func (s *Service) Preflight(ctx context.Context) error {
	if err := s.client.Ping(ctx); err != nil {
		return domain.ErrEnvironment("identity service is not reachable: %v", err)
	}
	return nil
}

// List returns all identities sorted by email.
func (s *Service) List(ctx context.Context) ([]domain.Identity, error) {
	identities, err := s.client.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(identities, func(i, j int) bool {
		return identities[i].Email() < identities[j].Email()
	})
	return identities, nil
}

// FindByEmail returns the identity whose email matches exactly.
func (s *Service) FindByEmail(ctx context.Context, email string) (*domain.Identity, error) {
	identities, err := s.client.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range identities {
		if identities[i].Email() == email {
			return &identities[i], nil
		}
	}
	return nil, domain.ErrNotFound("User not found")
}

// Add creates a new active identity, stores its password hash, and
// notifies the hooks. Validation runs before anything is mutated.
func (s *Service) Add(ctx context.Context, email, password string) (*domain.Identity, error) {
	if err := validate.Email(email); err != nil {
		return nil, err
	}
	if err := validate.Password(password); err != nil {
		return nil, err
	}

	ident, err := s.client.Create(ctx, domain.Traits{Email: email, Status: domain.StatusActive})
	if err != nil {
		return nil, err
	}
	s.logger.DebugContext(ctx, "identity created", "id", ident.ID, "email", email)

	encoded, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}
	if err := s.store.SetPassword(ctx, ident.ID, encoded); err != nil {
		return nil, err
	}

	s.notify(ctx, email, true)
	return ident, nil
}

// SetPassword rotates the password of an existing identity.
func (s *Service) SetPassword(ctx context.Context, identityID, password string) error {
	if err := validate.Password(password); err != nil {
		return err
	}
	encoded, err := s.hasher.Hash(password)
	if err != nil {
		return err
	}
	return s.store.SetPassword(ctx, identityID, encoded)
}

// Enable reactivates a disabled user: the status trait goes back to
// active and the credential record returns to its hashed form, which
// restores the password from before the account was disabled. Sessions
// are left alone; a disabled user has none.
func (s *Service) Enable(ctx context.Context, email string) error {
	ident, err := s.FindByEmail(ctx, email)
	if err != nil {
		return err
	}

	traits := domain.Traits{Email: ident.Traits.Email, Status: domain.StatusActive}
	if err := s.client.UpdateTraits(ctx, ident.ID, traits); err != nil {
		return err
	}
	if err := s.store.Unlock(ctx, ident.ID); err != nil {
		return err
	}

	s.notify(ctx, ident.Email(), true)
	return nil
}

// Disable locks a user out: the status trait goes to locked, the
// credential record to its locked form, and every session is purged so
// the lockout is immediate rather than waiting for session expiry.
func (s *Service) Disable(ctx context.Context, email string) error {
	ident, err := s.FindByEmail(ctx, email)
	if err != nil {
		return err
	}

	traits := domain.Traits{Email: ident.Traits.Email, Status: domain.StatusLocked}
	if err := s.client.UpdateTraits(ctx, ident.ID, traits); err != nil {
		return err
	}
	if err := s.store.Lock(ctx, ident.ID); err != nil {
		return err
	}
	purged, err := s.store.DeleteSessions(ctx, ident.ID)
	if err != nil {
		return err
	}
	s.logger.DebugContext(ctx, "sessions purged", "email", ident.Email(), "count", purged)

	s.notify(ctx, ident.Email(), false)
	return nil
}

// Delete removes the identity from the service, which cascades to its
// credential and session rows on the service side.
func (s *Service) Delete(ctx context.Context, email string) error {
	ident, err := s.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if err := s.client.Delete(ctx, ident.ID); err != nil {
		return err
	}

	s.notify(ctx, ident.Email(), false)
	return nil
}

// notify delivers a change notification. The mutation has already been
// applied by the time hooks run, so a hook failure is logged rather
// than turned into an operation failure.
func (s *Service) notify(ctx context.Context, email string, enabled bool) {
	if err := s.notifier.Notify(ctx, email, enabled); err != nil {
		s.logger.WarnContext(ctx, "notification hook failed", "email", email, "error", err)
	}
}
