package handlers

import (
	"net/http"
	"strconv"

	service "github.com/gourmetgo/storefront/internal/services"
	"github.com/gourmetgo/storefront/internal/utils/response"
)

type GeoHandler struct {
	geoService *service.GeoService
}

func NewGeoHandler(geoService *service.GeoService) *GeoHandler {
	return &GeoHandler{geoService: geoService}
}

// Nearby lists restaurants ordered by distance. Missing or malformed
// coordinates silently fall back to the default position, the same way a
// denied geolocation prompt does.
func (h *GeoHandler) Nearby() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		var lat, lng *float64

		if v, err := strconv.ParseFloat(r.URL.Query().Get("lat"), 64); err == nil {
			lat = &v
		}

		if v, err := strconv.ParseFloat(r.URL.Query().Get("lng"), 64); err == nil {
			lng = &v
		}

		response.Success(w, http.StatusOK, h.geoService.Nearby(lat, lng))
	}
}
