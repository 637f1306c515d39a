package service_test

import (
	"context"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/gourmetgo/storefront/internal/errors"
	"github.com/gourmetgo/storefront/internal/kvstore"
	"github.com/gourmetgo/storefront/internal/models"
	repository "github.com/gourmetgo/storefront/internal/repositories"
	service "github.com/gourmetgo/storefront/internal/services"
)

var testJWTKey = []byte("unit-test-signing-key")

func sessionIDFromToken(t *testing.T, tokenString string) uuid.UUID {
	t.Helper()

	claims := &models.Claims{}

	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return testJWTKey, nil
	})
	require.NoError(t, err)

	return claims.SessionID
}

func newAuthFixture(t *testing.T) (*service.AuthService, *repository.Repositories) {
	t.Helper()

	repos := repository.New(kvstore.NewMemoryStore())

	return service.NewAuthService(repos.Suppliers, repos.Sessions, nil, testJWTKey), repos
}

func TestAuthServiceLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - built-in admin credentials", func(t *testing.T) {
		// Arrange
		authService, _ := newAuthFixture(t)

		// Act
		resp, err := authService.Login(ctx, &models.LoginRequest{Username: "admin", Password: "admin"})

		// Assert
		assert.NoError(t, err)
		assert.True(t, resp.Success)
		assert.NotEmpty(t, resp.Token)
		assert.Equal(t, models.RoleAdmin, resp.Role)
	})

	t.Run("Failure - wrong admin password", func(t *testing.T) {
		// Arrange
		authService, _ := newAuthFixture(t)

		// Act
		resp, err := authService.Login(ctx, &models.LoginRequest{Username: "admin", Password: "hunter2"})

		// Assert
		assert.NoError(t, err)
		assert.False(t, resp.Success)
		assert.Equal(t, "Invalid username or password", resp.Message)
		assert.Empty(t, resp.Token)
	})

	t.Run("Success - registered supplier", func(t *testing.T) {
		// Arrange
		authService, _ := newAuthFixture(t)

		_, err := authService.Signup(ctx, &models.SignupRequest{
			Username:  "marco",
			Password:  "pizza",
			StoreName: "Pizza Marco",
		})
		require.NoError(t, err)

		// Act
		resp, err := authService.Login(ctx, &models.LoginRequest{Username: "marco", Password: "pizza"})

		// Assert
		assert.NoError(t, err)
		assert.True(t, resp.Success)
		assert.Equal(t, models.RoleSupplier, resp.Role)
	})

	t.Run("Failure - supplier with wrong password gets the generic message", func(t *testing.T) {
		// Arrange
		authService, _ := newAuthFixture(t)

		_, err := authService.Signup(ctx, &models.SignupRequest{
			Username:  "marco",
			Password:  "pizza",
			StoreName: "Pizza Marco",
		})
		require.NoError(t, err)

		// Act
		resp, err := authService.Login(ctx, &models.LoginRequest{Username: "marco", Password: "sushi"})

		// Assert
		assert.NoError(t, err)
		assert.False(t, resp.Success)
		assert.Equal(t, "Invalid username or password", resp.Message)
	})

	t.Run("Failure - unknown username gets the same generic message", func(t *testing.T) {
		// Arrange
		authService, _ := newAuthFixture(t)

		// Act
		resp, err := authService.Login(ctx, &models.LoginRequest{Username: "nobody", Password: "anything"})

		// Assert
		assert.NoError(t, err)
		assert.False(t, resp.Success)
		assert.Equal(t, "Invalid username or password", resp.Message)
	})
}

func TestAuthServiceSignup(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - password is stored hashed", func(t *testing.T) {
		// Arrange
		authService, repos := newAuthFixture(t)

		// Act
		supplier, err := authService.Signup(ctx, &models.SignupRequest{
			Username:  "yuki",
			Password:  "sakura",
			StoreName: "Sushi Yuki",
		})

		// Assert
		assert.NoError(t, err)
		assert.NotEqual(t, "sakura", supplier.PasswordHash)

		stored, err := repos.Suppliers.GetByUsername(ctx, "yuki")
		assert.NoError(t, err)
		assert.Equal(t, "Sushi Yuki", stored.StoreName)
	})

	t.Run("Failure - duplicate username", func(t *testing.T) {
		// Arrange
		authService, _ := newAuthFixture(t)

		_, err := authService.Signup(ctx, &models.SignupRequest{
			Username:  "yuki",
			Password:  "first",
			StoreName: "Sushi Yuki",
		})
		require.NoError(t, err)

		// Act
		_, err = authService.Signup(ctx, &models.SignupRequest{
			Username:  "yuki",
			Password:  "second",
			StoreName: "Another Store",
		})

		// Assert
		assert.Error(t, err)

		appErr, ok := apperrors.IsAppError(err)
		assert.True(t, ok)
		assert.Equal(t, apperrors.ErrCodeDuplicateEntry, appErr.Code)
	})
}

func TestAuthServiceGuest(t *testing.T) {
	ctx := context.Background()

	// Arrange
	authService, repos := newAuthFixture(t)

	// Act
	resp, err := authService.Guest(ctx, &models.GuestRequest{StoreName: "Pizza Marco"})

	// Assert
	assert.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, models.RoleSupplier, resp.Role)

	suppliers, err := repos.Suppliers.List(ctx)
	assert.NoError(t, err)
	assert.Empty(t, suppliers, "guest sessions must not create supplier records")
}

func TestAuthServiceLogout(t *testing.T) {
	ctx := context.Background()

	// Arrange
	authService, repos := newAuthFixture(t)

	resp, err := authService.Login(ctx, &models.LoginRequest{Username: "admin", Password: "admin"})
	require.NoError(t, err)
	require.True(t, resp.Success)

	sessionID := sessionIDFromToken(t, resp.Token)

	_, err = repos.Sessions.Get(ctx, sessionID)
	require.NoError(t, err)

	// Act
	err = authService.Logout(ctx, sessionID)

	// Assert
	assert.NoError(t, err)

	_, err = authService.Session(ctx, sessionID)
	assert.Error(t, err)

	appErr, ok := apperrors.IsAppError(err)
	assert.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeNotFound, appErr.Code)
}
