package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestRBAC(t *testing.T) {
	tests := []struct {
		name       string
		role       any
		allowed    []string
		wantStatus int
	}{
		{"allowed role", "admin", []string{"admin"}, http.StatusOK},
		{"one of several", "user", []string{"admin", "user"}, http.StatusOK},
		{"role not allowed", "user", []string{"admin"}, http.StatusForbidden},
		{"role missing from context", nil, []string{"admin"}, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodPatch, "/v1/shipments/s1/state", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)
			if tt.role != nil {
				c.Set("role", tt.role)
			}

			handler := RBAC(tt.allowed...)(func(c echo.Context) error {
				return c.NoContent(http.StatusOK)
			})
			if err := handler(c); err != nil {
				t.Fatalf("handler returned error: %v", err)
			}
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}
