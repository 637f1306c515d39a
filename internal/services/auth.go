package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/gourmetgo/storefront/internal/errors"
	"github.com/gourmetgo/storefront/internal/models"
	repository "github.com/gourmetgo/storefront/internal/repositories"
)

// The one built-in administrator credential pair. Every other account
// lives in the registered-supplier collection.
const (
	adminUsername = "admin"
	adminPassword = "admin"
)

const tokenLifetime = 24 * time.Hour

type AuthService struct {
	suppliers   *repository.SupplierRepository
	sessions    *repository.SessionRepository
	rateLimiter repository.RateLimitRepository
	jwtKey      []byte
}

func NewAuthService(suppliers *repository.SupplierRepository, sessions *repository.SessionRepository, rateLimiter repository.RateLimitRepository, jwtKey []byte) *AuthService {
	return &AuthService{
		suppliers:   suppliers,
		sessions:    sessions,
		rateLimiter: rateLimiter,
		jwtKey:      jwtKey,
	}
}

// Login resolves the credential pair against the admin account first and
// the supplier collection second. A bad pair is a recoverable lookup
// failure with a generic message, never an internal error.
func (s *AuthService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {

	remaining := 0

	if s.rateLimiter != nil {
		allowed, rem, retryAfter, err := s.rateLimiter.CheckLoginRateLimit(ctx, req.Username)
		if err != nil {
			return nil, apperrors.InternalError("Rate limit check failed").WithError(err)
		}

		if !allowed {
			return &models.LoginResponse{
				Success:    false,
				Message:    "Too many login attempts. Please try again later.",
				RetryAfter: retryAfter,
			}, nil
		}

		remaining = rem
	}

	if req.Username == adminUsername &&
		subtle.ConstantTimeCompare([]byte(req.Password), []byte(adminPassword)) == 1 {
		return s.openSession(ctx, &models.Session{
			ID:        uuid.New(),
			Username:  adminUsername,
			Role:      models.RoleAdmin,
			CreatedAt: time.Now(),
		})
	}

	supplier, err := s.suppliers.GetByUsername(ctx, req.Username)
	if err != nil || bcrypt.CompareHashAndPassword([]byte(supplier.PasswordHash), []byte(req.Password)) != nil {
		return &models.LoginResponse{
			Success:        false,
			Message:        "Invalid username or password",
			RemainingTries: remaining,
		}, nil
	}

	return s.openSession(ctx, &models.Session{
		ID:        uuid.New(),
		Username:  supplier.Username,
		Role:      models.RoleSupplier,
		StoreName: supplier.StoreName,
		CreatedAt: time.Now(),
	})
}

// Signup appends a supplier record if and only if the username is free.
func (s *AuthService) Signup(ctx context.Context, req *models.SignupRequest) (*models.Supplier, error) {

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.InternalError("Failed to secure password").WithError(err)
	}

	supplier := &models.Supplier{
		Username:     req.Username,
		PasswordHash: string(hashedPassword),
		StoreName:    req.StoreName,
		Email:        req.Email,
		CreatedAt:    time.Now(),
	}

	if err := s.suppliers.Create(ctx, supplier); err != nil {
		if errors.Is(err, repository.ErrDuplicateEntry) {
			return nil, apperrors.DuplicateEntryError("Username is already taken")
		}

		return nil, apperrors.StorageError("Failed to create supplier").WithError(err)
	}

	return supplier, nil
}

// Guest bypasses credential checking and opens a throwaway supplier-role
// session scoped to the given store name. No supplier record is created.
func (s *AuthService) Guest(ctx context.Context, req *models.GuestRequest) (*models.LoginResponse, error) {

	return s.openSession(ctx, &models.Session{
		ID:        uuid.New(),
		Username:  "guest",
		Role:      models.RoleSupplier,
		Guest:     true,
		StoreName: req.StoreName,
		CreatedAt: time.Now(),
	})
}

// Logout destroys the persisted session record, invalidating the token.
func (s *AuthService) Logout(ctx context.Context, sessionID uuid.UUID) error {

	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return apperrors.StorageError("Failed to destroy session").WithError(err)
	}

	return nil
}

func (s *AuthService) Session(ctx context.Context, sessionID uuid.UUID) (*models.Session, error) {

	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFoundError("Session not found").WithError(err)
		}

		return nil, apperrors.StorageError("Failed to load session").WithError(err)
	}

	return session, nil
}

func (s *AuthService) openSession(ctx context.Context, session *models.Session) (*models.LoginResponse, error) {

	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, apperrors.StorageError("Failed to persist session").WithError(err)
	}

	claims := &models.Claims{
		SessionID: session.ID,
		Username:  session.Username,
		Role:      session.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenLifetime)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString(s.jwtKey)
	if err != nil {
		return nil, apperrors.InternalError("Failed to generate authentication token").WithError(err)
	}

	return &models.LoginResponse{
		Success:   true,
		Token:     tokenString,
		ExpiresIn: int(time.Until(claims.ExpiresAt.Time).Seconds()),
		Role:      session.Role,
	}, nil
}
