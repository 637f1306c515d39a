package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/gourmetgo/storefront/internal/kvstore"
	"github.com/gourmetgo/storefront/internal/models"
)

// MessageRepository stores message threads per store name under a single
// snapshot key.
type MessageRepository struct {
	mu    sync.Mutex
	store kvstore.Store
}

func NewMessageRepository(store kvstore.Store) *MessageRepository {
	return &MessageRepository{store: store}
}

func (r *MessageRepository) load(ctx context.Context) (map[string][]models.Message, error) {

	threads := make(map[string][]models.Message)

	if _, err := r.store.Get(ctx, kvstore.KeyMessages, &threads); err != nil {
		return nil, fmt.Errorf("load messages: %w", err)
	}

	return threads, nil
}

func (r *MessageRepository) Append(ctx context.Context, msg *models.Message) error {

	r.mu.Lock()
	defer r.mu.Unlock()

	threads, err := r.load(ctx)
	if err != nil {
		return err
	}

	threads[msg.Store] = append(threads[msg.Store], *msg)

	if err := r.store.Set(ctx, kvstore.KeyMessages, threads); err != nil {
		return fmt.Errorf("save messages: %w", err)
	}

	return nil
}

func (r *MessageRepository) Thread(ctx context.Context, store string) ([]models.Message, error) {

	r.mu.Lock()
	defer r.mu.Unlock()

	threads, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	return threads[store], nil
}
