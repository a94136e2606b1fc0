package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestRateLimit_DeniesAfterBurst(t *testing.T) {
	e := echo.New()
	handler := RateLimit(1)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	var denied int
	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
		req.RemoteAddr = "203.0.113.7:4000"
		c := e.NewContext(req, httptest.NewRecorder())
		err := handler(c)
		var he *echo.HTTPError
		if errors.As(err, &he) && he.Code == http.StatusTooManyRequests {
			denied++
		}
	}
	if denied == 0 {
		t.Fatal("expected some requests to be rate limited")
	}
}

func TestRateLimit_Disabled(t *testing.T) {
	e := echo.New()
	handler := RateLimit(0)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	for i := 0; i < 20; i++ {
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
		if err := handler(c); err != nil {
			t.Fatalf("request %d: unexpected error %v", i, err)
		}
	}
}
