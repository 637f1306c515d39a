package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gourmetgo/storefront/internal/api/handlers"
	"github.com/gourmetgo/storefront/internal/kvstore"
	repository "github.com/gourmetgo/storefront/internal/repositories"
	service "github.com/gourmetgo/storefront/internal/services"
	"github.com/gourmetgo/storefront/internal/testutils"
)

func newAuthHandlerFixture(t *testing.T) *handlers.AuthHandler {
	t.Helper()

	repos := repository.New(kvstore.NewMemoryStore())
	authService := service.NewAuthService(repos.Suppliers, repos.Sessions, nil, []byte("unit-test-signing-key"))

	return handlers.NewAuthHandler(authService)
}

func TestAuthHandlerLogin(t *testing.T) {

	t.Run("Success - admin credentials return a token", func(t *testing.T) {
		// Arrange
		handler := newAuthHandlerFixture(t)

		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/api/v1/auth/login",
			strings.NewReader(`{"username": "admin", "password": "admin"}`), nil)
		rr := httptest.NewRecorder()

		// Act
		handler.Login().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"token"`)
		assert.Contains(t, rr.Body.String(), `"role":"admin"`)
	})

	t.Run("Failure - bad credentials return 401 without a token", func(t *testing.T) {
		// Arrange
		handler := newAuthHandlerFixture(t)

		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/api/v1/auth/login",
			strings.NewReader(`{"username": "admin", "password": "wrong"}`), nil)
		rr := httptest.NewRecorder()

		// Act
		handler.Login().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.NotContains(t, rr.Body.String(), `"token"`)
		assert.Contains(t, rr.Body.String(), "Invalid username or password")
	})

	t.Run("Failure - missing fields fail validation", func(t *testing.T) {
		// Arrange
		handler := newAuthHandlerFixture(t)

		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/api/v1/auth/login",
			strings.NewReader(`{"username": "admin"}`), nil)
		rr := httptest.NewRecorder()

		// Act
		handler.Login().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestAuthHandlerSignup(t *testing.T) {

	signup := func(t *testing.T, handler *handlers.AuthHandler, body string) *httptest.ResponseRecorder {
		t.Helper()

		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/api/v1/auth/signup",
			strings.NewReader(body), nil)
		rr := httptest.NewRecorder()
		handler.Signup().ServeHTTP(rr, req)

		return rr
	}

	t.Run("Success - new supplier is created", func(t *testing.T) {
		// Arrange
		handler := newAuthHandlerFixture(t)

		// Act
		rr := signup(t, handler, `{"username": "marco", "password": "pizza", "store_name": "Pizza Marco"}`)

		// Assert
		assert.Equal(t, http.StatusCreated, rr.Code)
		assert.Contains(t, rr.Body.String(), `"store_name":"Pizza Marco"`)
		assert.NotContains(t, rr.Body.String(), "password", "password hash must never leave the server")
	})

	t.Run("Failure - duplicate username returns 409", func(t *testing.T) {
		// Arrange
		handler := newAuthHandlerFixture(t)

		first := signup(t, handler, `{"username": "marco", "password": "pizza", "store_name": "Pizza Marco"}`)
		require.Equal(t, http.StatusCreated, first.Code)

		// Act
		rr := signup(t, handler, `{"username": "marco", "password": "other", "store_name": "Other Store"}`)

		// Assert
		assert.Equal(t, http.StatusConflict, rr.Code)
		assert.Contains(t, rr.Body.String(), "Username is already taken")
	})
}

func TestAuthHandlerGuest(t *testing.T) {

	// Arrange
	handler := newAuthHandlerFixture(t)

	req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/api/v1/auth/guest",
		strings.NewReader(`{"store_name": "Pizza Marco"}`), nil)
	rr := httptest.NewRecorder()

	// Act
	handler.Guest().ServeHTTP(rr, req)

	// Assert
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"token"`)
	assert.Contains(t, rr.Body.String(), `"role":"supplier"`)
}

func TestAuthHandlerLogout(t *testing.T) {

	t.Run("Failure - no authenticated session", func(t *testing.T) {
		// Arrange
		handler := newAuthHandlerFixture(t)

		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/api/v1/auth/logout", nil, nil)
		rr := httptest.NewRecorder()

		// Act
		handler.Logout().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Contains(t, rr.Body.String(), "Authentication required")
	})
}
