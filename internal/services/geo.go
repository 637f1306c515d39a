package service

import (
	"math"
	"sort"

	"github.com/gourmetgo/storefront/internal/config"
	"github.com/gourmetgo/storefront/internal/models"
)

const earthRadiusKm = 6371.0

// GeoService computes straight-line distances from a client coordinate to
// the fixed set of restaurant locations. A missing coordinate falls back
// to the configured default, mirroring denied geolocation permission.
type GeoService struct {
	cfg         *config.Geo
	restaurants []models.Restaurant
}

func NewGeoService(cfg *config.Geo) *GeoService {
	return &GeoService{
		cfg: cfg,
		restaurants: []models.Restaurant{
			{Name: "GourmetGo Central", Lat: 48.8606, Lng: 2.3376},
			{Name: "GourmetGo Riverside", Lat: 48.8530, Lng: 2.3499},
			{Name: "GourmetGo North", Lat: 48.8809, Lng: 2.3553},
			{Name: "GourmetGo Station", Lat: 48.8443, Lng: 2.3744},
		},
	}
}

// Nearby returns all restaurants sorted by distance ascending.
func (s *GeoService) Nearby(lat, lng *float64) []models.RestaurantDistance {

	fromLat := s.cfg.DefaultLat
	fromLng := s.cfg.DefaultLng

	if lat != nil && lng != nil && validCoordinate(*lat, *lng) {
		fromLat = *lat
		fromLng = *lng
	}

	distances := make([]models.RestaurantDistance, 0, len(s.restaurants))

	for _, r := range s.restaurants {
		distances = append(distances, models.RestaurantDistance{
			Restaurant: r,
			DistanceKm: haversine(fromLat, fromLng, r.Lat, r.Lng),
		})
	}

	sort.Slice(distances, func(i, j int) bool {
		return distances[i].DistanceKm < distances[j].DistanceKm
	})

	return distances
}

func validCoordinate(lat, lng float64) bool {
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}

func haversine(lat1, lng1, lat2, lng2 float64) float64 {

	dLat := toRadians(lat2 - lat1)
	dLng := toRadians(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*
			math.Sin(dLng/2)*math.Sin(dLng/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
