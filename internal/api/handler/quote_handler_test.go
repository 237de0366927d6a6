package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/parcelhub/shipping-api/internal/core/domain"
	"github.com/parcelhub/shipping-api/internal/core/ports"
)

type stubPricingService struct {
	parcel *domain.Parcel
	err    error
	input  ports.QuoteInput
}

func (s *stubPricingService) Quote(_ context.Context, input ports.QuoteInput) (*domain.Parcel, error) {
	s.input = input
	if s.err != nil {
		return nil, s.err
	}
	return s.parcel, nil
}

func doQuote(svc *stubPricingService, body string) (*httptest.ResponseRecorder, error) {
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(http.MethodPost, "/v1/quotes", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	return rec, NewQuoteHandler(svc).Quote(c)
}

const validQuoteBody = `{"origin_id":"cdmx","destination_id":"puebla","weight":1,"length":22,"width":16,"height":11}`

func TestQuoteHandler_Quote(t *testing.T) {
	svc := &stubPricingService{parcel: &domain.Parcel{ChargeableWeight: 2, Price: 3000}}

	rec, err := doQuote(svc, validQuoteBody)
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var resp quoteResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.ChargeableWeight != 2 || resp.Price != 3000 {
		t.Errorf("response = %+v, want chargeable_weight=2 price=3000", resp)
	}
	if svc.input.OriginID != "cdmx" || svc.input.Weight != 1 {
		t.Errorf("service received %+v", svc.input)
	}
}

func TestQuoteHandler_Quote_ValidationFailures(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing origin", `{"destination_id":"puebla","weight":1,"length":22,"width":16,"height":11}`},
		{"zero weight", `{"origin_id":"cdmx","destination_id":"puebla","weight":0,"length":22,"width":16,"height":11}`},
		{"negative dimension", `{"origin_id":"cdmx","destination_id":"puebla","weight":1,"length":-5,"width":16,"height":11}`},
		{"not json", `weight=1`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &stubPricingService{parcel: &domain.Parcel{}}
			_, err := doQuote(svc, tt.body)

			httpErr, ok := err.(*echo.HTTPError)
			if !ok {
				t.Fatalf("expected *echo.HTTPError, got %v", err)
			}
			if httpErr.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want %d", httpErr.Code, http.StatusBadRequest)
			}
		})
	}
}

func TestQuoteHandler_Quote_ServiceErrorPassesThrough(t *testing.T) {
	svc := &stubPricingService{err: domain.ErrInvalidRoute}

	_, err := doQuote(svc, validQuoteBody)
	if !errors.Is(err, domain.ErrInvalidRoute) {
		t.Fatalf("expected domain error to pass through for central mapping, got %v", err)
	}
}
