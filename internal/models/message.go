package models

import (
	"time"

	"github.com/google/uuid"
)

type MessageAuthor string

const (
	AuthorCustomer MessageAuthor = "customer"
	AuthorBot      MessageAuthor = "bot"
)

type Message struct {
	ID        uuid.UUID     `json:"id"`
	Store     string        `json:"store"`
	Author    MessageAuthor `json:"author"`
	Body      string        `json:"body"`
	CreatedAt time.Time     `json:"created_at"`
}

type PostMessageRequest struct {
	Store string `json:"store" validate:"required"`
	Body  string `json:"body" validate:"required,max=2000"`
}
