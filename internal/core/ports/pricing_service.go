package ports

import (
	"context"

	"github.com/parcelhub/shipping-api/internal/core/domain"
)

// QuoteInput carries pre-validated quote parameters. Weight is in kg,
// dimensions in cm, all positive.
type QuoteInput struct {
	OriginID      string
	DestinationID string
	Weight        float64
	Length        float64
	Width         float64
	Height        float64
}

// PricingService computes a priced parcel for a route and dimensions.
type PricingService interface {
	// Quote fails atomically: on any city or fare lookup error the
	// originating error is returned and no partial price is ever set.
	Quote(ctx context.Context, input QuoteInput) (*domain.Parcel, error)
}
