package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/soaring-forecast/internal/config"
	"github.com/i474232898/soaring-forecast/internal/forecast"
	"github.com/i474232898/soaring-forecast/internal/health"
)

type stubService struct {
	view forecast.View
	err  error
	got  []string
}

func (s *stubService) View(_ context.Context, locationID string) (forecast.View, error) {
	s.got = append(s.got, locationID)
	return s.view, s.err
}

func sampleView() forecast.View {
	return forecast.View{
		LocationName: "LEWES",
		FetchedAt:    time.Date(2024, time.May, 1, 9, 30, 0, 0, time.UTC),
		Days: []forecast.DayView{{
			Day:  "Today",
			Date: "1st May",
			Slots: []forecast.SlotView{{
				Time:                "9-12pm",
				Condition:           "Sunny day",
				Temperature:         "14",
				WindDirection:       "N",
				WindSpeed:           8,
				WindGust:            12,
				GustDiff:            4,
				WindDirectionRating: forecast.Positive,
				WindSpeedRating:     forecast.Positive,
				GustRating:          forecast.Positive,
				GustDiffRating:      forecast.Positive,
				ConditionRating:     forecast.Positive,
				Sites:               forecast.SitesFor("N"),
			}},
		}},
	}
}

func newTestApp(svc ForecastService) *fiber.App {
	cfg := &config.AppConfig{LocationID: "351611", Locations: []string{"351611", "310042"}}

	app := NewApp("test")
	RegisterHealth(app, health.NewChecker("test"))
	RegisterRoutes(app, svc, Options{DefaultLocation: cfg.LocationID, HasLocation: cfg.HasLocation})
	return app
}

// TestGetForecastRendersFragment verifies the page loader endpoint returns
// an HTML fragment for the default location.
func TestGetForecastRendersFragment(t *testing.T) {
	svc := &stubService{view: sampleView()}
	app := newTestApp(svc)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/get-forecast", nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("expected html content type, got %q", ct)
	}

	body, _ := io.ReadAll(resp.Body)
	for _, want := range []string{"LEWES", "Today", "1st May", "9-12pm", "Sunny day", "Devils Dyke, Ditchling, Firle, Truleigh", `class="flyable"`} {
		if !strings.Contains(string(body), want) {
			t.Errorf("fragment missing %q", want)
		}
	}
	if len(svc.got) != 1 || svc.got[0] != "351611" {
		t.Fatalf("expected default location lookup, got %v", svc.got)
	}
}

// TestGetForecastUpstreamFailure verifies upstream errors surface as a
// non-2xx status so the page shows its error state.
func TestGetForecastUpstreamFailure(t *testing.T) {
	app := newTestApp(&stubService{err: errors.New("datapoint down")})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/get-forecast", nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusBadGateway {
		t.Fatalf("expected status %d, got %d", http.StatusBadGateway, resp.StatusCode)
	}

	var payload map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if payload["error"] != true {
		t.Fatalf("expected error payload, got %v", payload)
	}
	if payload["requestId"] == "" {
		t.Fatalf("expected request id in error payload")
	}
}

// TestForecastAPILocationValidation verifies that the JSON endpoint rejects
// malformed and unconfigured locations.
func TestForecastAPILocationValidation(t *testing.T) {
	app := newTestApp(&stubService{view: sampleView()})

	cases := map[string]int{
		"/api/v1/forecast":                 http.StatusOK,
		"/api/v1/forecast?location=310042": http.StatusOK,
		"/api/v1/forecast?location=abc":    http.StatusBadRequest,
		"/api/v1/forecast?location=999999": http.StatusNotFound,
	}
	for url, want := range cases {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, url, nil))
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", url, err)
		}
		if resp.StatusCode != want {
			t.Errorf("%s: expected status %d, got %d", url, want, resp.StatusCode)
		}
	}
}

// TestForecastAPIDefaultLocationOnly verifies that without a HasLocation
// lookup only the default location is served.
func TestForecastAPIDefaultLocationOnly(t *testing.T) {
	app := NewApp("test")
	RegisterRoutes(app, &stubService{view: sampleView()}, Options{DefaultLocation: "351611"})

	cases := map[string]int{
		"/api/v1/forecast?location=351611": http.StatusOK,
		"/api/v1/forecast?location=310042": http.StatusNotFound,
	}
	for url, want := range cases {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, url, nil))
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", url, err)
		}
		if resp.StatusCode != want {
			t.Errorf("%s: expected status %d, got %d", url, want, resp.StatusCode)
		}
	}
}

func TestForecastAPIReturnsView(t *testing.T) {
	app := newTestApp(&stubService{view: sampleView()})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/forecast?location=351611", nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var payload struct {
		Location string        `json:"location"`
		Forecast forecast.View `json:"forecast"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload.Location != "351611" || payload.Forecast.LocationName != "LEWES" {
		t.Fatalf("unexpected payload: %+v", payload)
	}
	if got := payload.Forecast.Days[0].Slots[0].WindSpeedRating; got != forecast.Positive {
		t.Fatalf("expected positive wind speed rating, got %q", got)
	}
}

func TestHealth(t *testing.T) {
	app := newTestApp(&stubService{})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var st health.Status
	if err := json.NewDecoder(resp.Body).Decode(&st); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if st.Status != "ok" || st.Service != "test" {
		t.Fatalf("unexpected health: %+v", st)
	}
}

func TestMountPageServesUnmatchedPaths(t *testing.T) {
	app := newTestApp(&stubService{view: sampleView()})
	MountPage(app, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "page:"+r.URL.Path)
	}))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/web/app.wasm", nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	if string(body) != "page:/web/app.wasm" {
		t.Fatalf("unexpected body %q", body)
	}

	// Routes registered earlier still win.
	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/get-forecast", nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	body, _ = io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "LEWES") {
		t.Fatalf("expected forecast fragment, got %q", body)
	}
}
