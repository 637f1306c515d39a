package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/gourmetgo/storefront/internal/errors"
	"github.com/gourmetgo/storefront/internal/models"
	service "github.com/gourmetgo/storefront/internal/services"
	"github.com/gourmetgo/storefront/internal/utils"
	"github.com/gourmetgo/storefront/internal/utils/response"
)

type MessageHandler struct {
	messageService *service.MessageService
	validator      *validator.Validate
}

func NewMessageHandler(messageService *service.MessageService) *MessageHandler {
	return &MessageHandler{
		messageService: messageService,
		validator:      validator.New(),
	}
}

func (h *MessageHandler) PostMessage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		if _, ok := requireClaims(w, r); !ok {
			return
		}

		var req models.PostMessageRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		msg, err := h.messageService.Post(r.Context(), &req)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusCreated, msg)
	}
}

func (h *MessageHandler) Thread() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		if _, ok := requireClaims(w, r); !ok {
			return
		}

		store := r.URL.Query().Get("store")
		if store == "" {
			response.Error(w, errors.BadRequestError("Query parameter 'store' is required"))
			return
		}

		thread, err := h.messageService.Thread(r.Context(), store)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, thread)
	}
}
