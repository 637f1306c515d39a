package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"

	"github.com/gourmetgo/storefront/internal/config"
	apperrors "github.com/gourmetgo/storefront/internal/errors"
	"github.com/gourmetgo/storefront/internal/models"
	repository "github.com/gourmetgo/storefront/internal/repositories"
)

// MessageService stores customer messages per store and answers each one
// with a canned bot reply after a fixed delay. Replies always arrive.
type MessageService struct {
	messages  *repository.MessageRepository
	notifier  *NotifyService
	sanitizer *bluemonday.Policy
	cfg       *config.Chat
}

func NewMessageService(messages *repository.MessageRepository, notifier *NotifyService, cfg *config.Chat) *MessageService {
	return &MessageService{
		messages:  messages,
		notifier:  notifier,
		sanitizer: bluemonday.StrictPolicy(),
		cfg:       cfg,
	}
}

func (s *MessageService) Post(ctx context.Context, req *models.PostMessageRequest) (*models.Message, error) {

	body := strings.TrimSpace(s.sanitizer.Sanitize(req.Body))
	if body == "" {
		return nil, apperrors.ValidationError("Message body is empty")
	}

	msg := &models.Message{
		ID:        uuid.New(),
		Store:     req.Store,
		Author:    models.AuthorCustomer,
		Body:      body,
		CreatedAt: time.Now(),
	}

	if err := s.messages.Append(ctx, msg); err != nil {
		return nil, apperrors.StorageError("Failed to store message").WithError(err)
	}

	if s.notifier != nil {
		s.notifier.MessagePosted(ctx, msg)
	}

	reply := cannedReply(body)

	time.AfterFunc(s.cfg.ReplyDelay, func() {
		botMsg := &models.Message{
			ID:        uuid.New(),
			Store:     req.Store,
			Author:    models.AuthorBot,
			Body:      reply,
			CreatedAt: time.Now(),
		}

		if err := s.messages.Append(context.Background(), botMsg); err != nil {
			slog.Error("Failed to store bot reply", slog.String("store", req.Store), slog.String("error", err.Error()))
		}
	})

	return msg, nil
}

func (s *MessageService) Thread(ctx context.Context, store string) ([]models.Message, error) {

	thread, err := s.messages.Thread(ctx, store)
	if err != nil {
		return nil, apperrors.StorageError("Failed to load messages").WithError(err)
	}

	if thread == nil {
		thread = []models.Message{}
	}

	return thread, nil
}

func cannedReply(body string) string {

	lower := strings.ToLower(body)

	switch {
	case strings.Contains(lower, "delivery") || strings.Contains(lower, "deliver"):
		return "Your order is on its way! Delivery usually takes 30 to 45 minutes."
	case strings.Contains(lower, "open") || strings.Contains(lower, "hours"):
		return "We are open every day from 11:00 to 23:00."
	case strings.Contains(lower, "thank"):
		return "You're welcome! Enjoy your meal."
	default:
		return "Thanks for reaching out! A team member will get back to you shortly."
	}
}
