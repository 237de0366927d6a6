package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/parcelhub/shipping-api/internal/core/domain"
	"github.com/parcelhub/shipping-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub city repository
// ---------------------------------------------------------------------------

type stubCityRepo struct {
	cities  map[string]*domain.City
	getErr  error
	allErr  error
	getCnt  int // number of GetByID calls
	listCnt int // number of GetAll calls
}

func newStubCityRepo(cities ...*domain.City) *stubCityRepo {
	r := &stubCityRepo{cities: make(map[string]*domain.City)}
	for _, c := range cities {
		r.cities[c.ID] = c
	}
	return r
}

func (r *stubCityRepo) GetByID(_ context.Context, id string) (*domain.City, error) {
	r.getCnt++
	if r.getErr != nil {
		return nil, r.getErr
	}
	c, ok := r.cities[id]
	if !ok {
		return nil, domain.ErrCityNotFound
	}
	return c, nil
}

func (r *stubCityRepo) GetAll(_ context.Context) ([]*domain.City, error) {
	r.listCnt++
	if r.allErr != nil {
		return nil, r.allErr
	}
	out := make([]*domain.City, 0, len(r.cities))
	for _, c := range r.cities {
		out = append(out, c)
	}
	return out, nil
}

// two cities roughly 106 km apart, so the rounded distance lands in the
// second distance tier of standardFares (101-500 -> 2500).
func testCities() *stubCityRepo {
	return newStubCityRepo(
		&domain.City{ID: "cdmx", Name: "Mexico City", Latitude: 19.4326, Longitude: -99.1332},
		&domain.City{ID: "puebla", Name: "Puebla", Latitude: 19.0414, Longitude: -98.2063},
	)
}

func newParcelSvc(cities ports.CityRepository, fares *stubFareRepo) *ParcelService {
	return NewParcelService(cities, NewFareService(fares), zerolog.Nop())
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestParcelService_Quote_Success(t *testing.T) {
	svc := newParcelSvc(testCities(), standardFares())

	parcel, err := svc.Quote(context.Background(), ports.QuoteInput{
		OriginID:      "cdmx",
		DestinationID: "puebla",
		Weight:        1,
		Length:        22,
		Width:         16,
		Height:        11,
	})
	if err != nil {
		t.Fatalf("Quote returned error: %v", err)
	}

	// chargeable weight: max(1, ceil(22*16*11/2500)) = 2 -> weight tier w1 (500)
	if parcel.ChargeableWeight != 2 {
		t.Errorf("chargeable weight = %v, want 2", parcel.ChargeableWeight)
	}
	// distance ~107 km -> tier d2 (2500); total = 2500 + 500
	if parcel.Price != 3000 {
		t.Errorf("price = %v, want 3000 (distance fare + weight fare)", parcel.Price)
	}
}

func TestParcelService_Quote_UnknownCity(t *testing.T) {
	svc := newParcelSvc(testCities(), standardFares())

	for _, input := range []ports.QuoteInput{
		{OriginID: "nowhere", DestinationID: "puebla", Weight: 1, Length: 10, Width: 10, Height: 10},
		{OriginID: "cdmx", DestinationID: "nowhere", Weight: 1, Length: 10, Width: 10, Height: 10},
	} {
		_, err := svc.Quote(context.Background(), input)
		if !errors.Is(err, domain.ErrInvalidRoute) {
			t.Errorf("expected ErrInvalidRoute for %s -> %s, got %v", input.OriginID, input.DestinationID, err)
		}
	}
}

func TestParcelService_Quote_FareGapAbortsAtomically(t *testing.T) {
	// no weight tiers at all: the weight lookup must fail after the
	// distance lookup succeeded, and no parcel is returned
	fares := &stubFareRepo{fares: []*domain.Fare{
		{ID: "d3", Type: domain.FareTypeDistance, FromValue: 0, ToValue: nil, Price: 5000},
	}}
	svc := newParcelSvc(testCities(), fares)

	parcel, err := svc.Quote(context.Background(), ports.QuoteInput{
		OriginID:      "cdmx",
		DestinationID: "puebla",
		Weight:        1,
		Length:        10,
		Width:         10,
		Height:        10,
	})
	if !errors.Is(err, domain.ErrFareNotFound) {
		t.Fatalf("expected ErrFareNotFound, got %v", err)
	}
	if parcel != nil {
		t.Fatalf("expected no parcel on failed pricing, got %+v", parcel)
	}
}

func TestParcelService_Quote_StorageErrorStaysOpaque(t *testing.T) {
	cities := testCities()
	boom := errors.New("socket timeout")
	cities.getErr = boom
	svc := newParcelSvc(cities, standardFares())

	_, err := svc.Quote(context.Background(), ports.QuoteInput{
		OriginID:      "cdmx",
		DestinationID: "puebla",
		Weight:        1,
		Length:        10,
		Width:         10,
		Height:        10,
	})
	if errors.Is(err, domain.ErrInvalidRoute) {
		t.Fatalf("storage failure must not be reported as an invalid route")
	}
	if !errors.Is(err, boom) {
		t.Fatalf("expected storage error to propagate, got %v", err)
	}
}
