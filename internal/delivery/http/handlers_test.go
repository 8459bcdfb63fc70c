package http

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/satvikkk/travel-aware/internal/domain"
	"github.com/satvikkk/travel-aware/internal/repository/postgres"
	"github.com/satvikkk/travel-aware/internal/risk"
	"github.com/satvikkk/travel-aware/internal/service"
)

const testCSV = `latitude,longitude,category,occurred_at,time_of_day,victim_age,victim_sex,priority_tier
34.0522,-118.2437,THEFT,2024-03-01,2130,25,M,1
34.0610,-118.2500,ASSAULT,2024-02-15,900,31,F,2
`

func newTestApp(t *testing.T) (*fiber.App, *risk.Store) {
	t.Helper()

	datasetPath := filepath.Join(t.TempDir(), "incidents.csv")
	if err := os.WriteFile(datasetPath, []byte(testCSV), 0o644); err != nil {
		t.Fatalf("writing dataset: %v", err)
	}

	snap, err := risk.LoadSnapshot(datasetPath)
	if err != nil {
		t.Fatalf("loading dataset: %v", err)
	}
	store := risk.NewStore(snap)

	repo := postgres.NewMockRepository()
	routeSvc := service.NewRouteService(
		service.NewGeocodeService(""),
		service.NewDirectionsService("", service.DefaultMaxAlternatives),
		risk.NewScorer(store, risk.DefaultBufferRadiusKm),
		repo,
	)

	app := fiber.New()
	SetupRoutes(app, routeSvc, repo, store, datasetPath)
	return app, store
}

func TestHealthCheck(t *testing.T) {
	app, _ := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/health", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Errorf("Expected 200, got %d", resp.StatusCode)
	}
}

func TestScoreRoutesEndpoint(t *testing.T) {
	app, _ := newTestApp(t)

	body, _ := json.Marshal(map[string]interface{}{
		"start_location":       "Union Station",
		"destination_location": "Santa Monica Pier",
		"time_window":          "all",
		"age":                  25,
		"sex":                  "M",
		"travel_time":          2130,
		"preference":           0.5,
	})

	req := httptest.NewRequest("POST", "/api/v1/routes/score", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, int(5*time.Second/time.Millisecond))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}

	var payload struct {
		Success bool               `json:"success"`
		Data    service.PlanResult `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if !payload.Success {
		t.Error("Expected success=true")
	}
	if len(payload.Data.Routes) == 0 {
		t.Error("Expected scored routes in response")
	}
}

func TestScoreRoutesEndpointRejectsBadInput(t *testing.T) {
	app, _ := newTestApp(t)

	testCases := []struct {
		name string
		body map[string]interface{}
		want int
	}{
		{
			name: "invalid window",
			body: map[string]interface{}{
				"start_location": "A", "destination_location": "B",
				"time_window": "90d", "age": 25, "sex": "M", "preference": 0.5,
			},
			want: fiber.StatusBadRequest,
		},
		{
			name: "invalid profile",
			body: map[string]interface{}{
				"start_location": "A", "destination_location": "B",
				"time_window": "30d", "age": 0, "sex": "M", "preference": 0.5,
			},
			want: fiber.StatusBadRequest,
		},
		{
			name: "missing location",
			body: map[string]interface{}{
				"start_location": "", "destination_location": "B",
				"time_window": "30d", "age": 25, "sex": "M", "preference": 0.5,
			},
			want: fiber.StatusBadRequest,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			body, _ := json.Marshal(tc.body)
			req := httptest.NewRequest("POST", "/api/v1/routes/score", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")

			resp, err := app.Test(req, int(5*time.Second/time.Millisecond))
			if err != nil {
				t.Fatalf("request failed: %v", err)
			}
			if resp.StatusCode != tc.want {
				t.Errorf("Expected %d, got %d", tc.want, resp.StatusCode)
			}
		})
	}
}

func TestGetCategories(t *testing.T) {
	app, _ := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/categories", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}

	var payload struct {
		Data []struct {
			Label  string `json:"label"`
			Weight int    `json:"weight"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(payload.Data) != len(domain.KnownCategories()) {
		t.Errorf("Expected %d categories, got %d", len(domain.KnownCategories()), len(payload.Data))
	}
	for _, c := range payload.Data {
		if c.Weight < 1 || c.Weight > 10 {
			t.Errorf("Category %s weight %d out of 1-10", c.Label, c.Weight)
		}
	}
}

func TestReloadDataset(t *testing.T) {
	app, store := newTestApp(t)

	before := store.Current()

	resp, err := app.Test(httptest.NewRequest("POST", "/api/v1/dataset/reload", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}

	after := store.Current()
	if before == after {
		t.Error("Expected a fresh snapshot after reload")
	}
	if after.Len() != before.Len() {
		t.Errorf("Same file must load the same count: %d vs %d", before.Len(), after.Len())
	}
}
