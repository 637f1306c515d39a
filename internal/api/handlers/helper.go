package handlers

import (
	"net/http"

	"github.com/gourmetgo/storefront/internal/api/middleware"
	"github.com/gourmetgo/storefront/internal/errors"
	"github.com/gourmetgo/storefront/internal/models"
	"github.com/gourmetgo/storefront/internal/utils/response"
)

// requireClaims pulls the authenticated claims from the request context,
// writing the error response when they are missing.
func requireClaims(w http.ResponseWriter, r *http.Request) (*models.Claims, bool) {

	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		response.Error(w, errors.UnauthorizedError("Authentication required"))
		return nil, false
	}

	return claims, true
}
