package models

type Restaurant struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
}

type RestaurantDistance struct {
	Restaurant Restaurant `json:"restaurant"`
	DistanceKm float64    `json:"distance_km"`
}
