package ports

import "context"

// CityItem is the projection served by the city listing.
type CityItem struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CityService lists selectable cities.
type CityService interface {
	List(ctx context.Context) ([]CityItem, error)
}
