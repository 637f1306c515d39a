package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/gourmetgo/storefront/internal/api/middleware"
	"github.com/gourmetgo/storefront/internal/models"
	service "github.com/gourmetgo/storefront/internal/services"
	"github.com/gourmetgo/storefront/internal/utils"
	"github.com/gourmetgo/storefront/internal/utils/response"
)

type AuthHandler struct {
	authService *service.AuthService
	validator   *validator.Validate
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validator:   validator.New(),
	}
}

func (h *AuthHandler) Login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.LoginRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		resp, err := h.authService.Login(r.Context(), &req)
		if err != nil {
			logger.Error("Login failed", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		if !resp.Success {
			logger.Warn("Login rejected", slog.String("username", req.Username))
			response.WriteJson(w, http.StatusUnauthorized, resp)
			return
		}

		logger.Info("Login succeeded", slog.String("username", req.Username), slog.String("role", string(resp.Role)))
		response.Success(w, http.StatusOK, resp)
	}
}

func (h *AuthHandler) Signup() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.SignupRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		supplier, err := h.authService.Signup(r.Context(), &req)
		if err != nil {
			logger.Warn("Signup failed", slog.String("username", req.Username), slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		logger.Info("Supplier registered", slog.String("username", supplier.Username))
		response.Success(w, http.StatusCreated, supplier)
	}
}

func (h *AuthHandler) Guest() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.GuestRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		resp, err := h.authService.Guest(r.Context(), &req)
		if err != nil {
			logger.Error("Guest entry failed", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		logger.Info("Guest session opened", slog.String("store", req.StoreName))
		response.Success(w, http.StatusOK, resp)
	}
}

func (h *AuthHandler) Logout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		claims, ok := requireClaims(w, r)
		if !ok {
			return
		}

		logger := middleware.LoggerFromContext(r.Context())

		if err := h.authService.Logout(r.Context(), claims.SessionID); err != nil {
			logger.Error("Logout failed", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		logger.Info("Session destroyed")
		response.Success(w, http.StatusOK, map[string]bool{"logged_out": true})
	}
}

func (h *AuthHandler) Profile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		claims, ok := requireClaims(w, r)
		if !ok {
			return
		}

		session, err := h.authService.Session(r.Context(), claims.SessionID)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, session)
	}
}
