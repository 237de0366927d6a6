package domain

import "errors"

var ErrCityNotFound = errors.New("city not found")

// City is read-only reference data used to resolve quote endpoints.
// Coordinates default to 0 when absent.
type City struct {
	ID        string  `json:"id" bson:"_id"`
	Name      string  `json:"name" bson:"name"`
	Latitude  float64 `json:"latitude" bson:"latitude"`
	Longitude float64 `json:"longitude" bson:"longitude"`
}
