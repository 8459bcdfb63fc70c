package http

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/satvikkk/travel-aware/internal/domain"
	"github.com/satvikkk/travel-aware/internal/risk"
	"github.com/satvikkk/travel-aware/internal/service"
)

// Handler contains all HTTP handlers
type Handler struct {
	routeSvc    *service.RouteService
	repo        service.ScoreLogRepository
	store       *risk.Store
	datasetPath string
}

// NewHandler creates a new handler
func NewHandler(routeSvc *service.RouteService, repo service.ScoreLogRepository, store *risk.Store, datasetPath string) *Handler {
	return &Handler{
		routeSvc:    routeSvc,
		repo:        repo,
		store:       store,
		datasetPath: datasetPath,
	}
}

// HealthCheck returns service health status
func (h *Handler) HealthCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":    "ok",
		"service":   "travel-aware",
		"version":   "1.0.0",
		"incidents": h.store.Current().Len(),
	})
}

// scoreRequest is the body of a route scoring request
type scoreRequest struct {
	StartLocation       string  `json:"start_location"`
	DestinationLocation string  `json:"destination_location"`
	TimeWindow          string  `json:"time_window"`
	Age                 int     `json:"age"`
	Sex                 string  `json:"sex"`
	TravelTime          *int    `json:"travel_time"`
	Preference          float64 `json:"preference"`
}

// ScoreRoutes geocodes both endpoints, fetches route alternatives, and
// returns them ranked by suitability
func (h *Handler) ScoreRoutes(c *fiber.Ctx) error {
	ctx := c.Context()

	var req scoreRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	window, ok := domain.ParseTimeWindow(req.TimeWindow)
	if !ok {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid time window")
	}

	travelTime := domain.NoTravelTime
	if req.TravelTime != nil {
		travelTime = *req.TravelTime
	}

	plan, err := h.routeSvc.Plan(ctx, service.PlanRequest{
		StartLocation:       req.StartLocation,
		DestinationLocation: req.DestinationLocation,
		Window:              window,
		Profile: domain.TravelerProfile{
			AgeYears:          req.Age,
			Sex:               domain.ParseSex(req.Sex),
			TravelTimeMinutes: travelTime,
			Preference:        req.Preference,
		},
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrLocationNotFound):
			return fiber.NewError(fiber.StatusBadRequest, "Invalid locations")
		case errors.Is(err, service.ErrNoRoutes):
			return fiber.NewError(fiber.StatusBadRequest, "No routes found")
		case errors.Is(err, domain.ErrInvalidProfile):
			return fiber.NewError(fiber.StatusBadRequest, "Invalid traveler profile")
		case errors.Is(err, domain.ErrEmptyCandidateSet):
			return fiber.NewError(fiber.StatusBadRequest, "No candidate routes")
		case errors.Is(err, domain.ErrComputation):
			return fiber.NewError(fiber.StatusUnprocessableEntity, "Route scores could not be computed")
		default:
			log.Printf("Route scoring failed: %v", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to score routes")
		}
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    plan,
	})
}

// GetCategories returns the known incident categories with their weights
func (h *Handler) GetCategories(c *fiber.Ctx) error {
	cats := domain.KnownCategories()
	out := make([]fiber.Map, len(cats))
	for i, cat := range cats {
		out[i] = fiber.Map{
			"label":  cat.String(),
			"weight": cat.Weight(),
		}
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    out,
	})
}

// GetHistory returns recent score logs within a time range
func (h *Handler) GetHistory(c *fiber.Ctx) error {
	ctx := c.Context()

	hours := c.QueryInt("hours", 24)
	if hours < 1 || hours > 720 { // max 30 days
		hours = 24
	}

	to := time.Now()
	from := to.Add(-time.Duration(hours) * time.Hour)

	data, err := h.repo.GetRecentScoreLogs(ctx, from, to)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch score history")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    data,
		"count":   len(data),
	})
}

// ReloadDataset re-reads the incident dataset and swaps it in atomically,
// so in-flight scoring keeps its snapshot
func (h *Handler) ReloadDataset(c *fiber.Ctx) error {
	snap, err := risk.LoadSnapshot(h.datasetPath)
	if err != nil {
		log.Printf("Dataset reload failed: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to reload incident dataset")
	}
	h.store.Swap(snap)

	return c.JSON(fiber.Map{
		"success":   true,
		"incidents": snap.Len(),
		"cutoff":    snap.Cutoff(),
	})
}
