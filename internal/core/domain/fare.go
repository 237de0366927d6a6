package domain

import "errors"

// FareType is the pricing dimension a fare tier applies to.
type FareType string

const (
	FareTypeDistance FareType = "DISTANCE"
	FareTypeWeight   FareType = "WEIGHT"
)

var ErrFareNotFound = errors.New("no fare defined for this type and value")

// Fare is a read-only pricing tier: a price for values in
// [FromValue, ToValue], where a nil ToValue means the tier is unbounded.
// For a given type the configured tiers are non-overlapping and cover all
// valid values including an unbounded top tier.
type Fare struct {
	ID        string   `json:"id" bson:"_id"`
	Type      FareType `json:"type" bson:"type"`
	FromValue float64  `json:"from_value" bson:"from_value"`
	ToValue   *float64 `json:"to_value" bson:"to_value"`
	Price     float64  `json:"price" bson:"price"`
}

// Contains reports whether value falls inside this tier's range.
// Both bounds are inclusive.
func (f *Fare) Contains(value float64) bool {
	if value < f.FromValue {
		return false
	}
	return f.ToValue == nil || value <= *f.ToValue
}
