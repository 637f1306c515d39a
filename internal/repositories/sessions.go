package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/gourmetgo/storefront/internal/kvstore"
	"github.com/gourmetgo/storefront/internal/models"
)

// SessionRepository persists one session record per logged-in client.
// Logout deletes the record, which invalidates the session everywhere.
type SessionRepository struct {
	store kvstore.Store
}

func NewSessionRepository(store kvstore.Store) *SessionRepository {
	return &SessionRepository{store: store}
}

func (r *SessionRepository) key(id uuid.UUID) string {
	return kvstore.Key(kvstore.SessionKeyPrefix, id.String())
}

func (r *SessionRepository) Save(ctx context.Context, session *models.Session) error {

	if err := r.store.Set(ctx, r.key(session.ID), session); err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	return nil
}

func (r *SessionRepository) Get(ctx context.Context, id uuid.UUID) (*models.Session, error) {

	var session models.Session

	found, err := r.store.Get(ctx, r.key(id), &session)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	if !found {
		return nil, ErrNotFound
	}

	return &session, nil
}

func (r *SessionRepository) Delete(ctx context.Context, id uuid.UUID) error {

	if err := r.store.Delete(ctx, r.key(id)); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}

	return nil
}
