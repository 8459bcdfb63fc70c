package domain

import (
	"context"
	"time"
)

// ScoreLog is the persisted summary of one scoring request.
type ScoreLog struct {
	Origin             string    `json:"origin"`
	Destination        string    `json:"destination"`
	TimeWindow         string    `json:"time_window"`
	RouteCount         int       `json:"route_count"`
	BestSuitability    float64   `json:"best_suitability"`
	DominantCategories []string  `json:"dominant_categories"`
	Timestamp          time.Time `json:"timestamp"`
}

// ScoreLogRepository defines the interface for score-log persistence.
// This follows the Dependency Inversion Principle - domain defines the interface
type ScoreLogRepository interface {
	// SaveScoreLog persists one scoring request summary
	SaveScoreLog(ctx context.Context, entry ScoreLog) error

	// GetRecentScoreLogs retrieves scoring history within a time range
	GetRecentScoreLogs(ctx context.Context, from, to time.Time) ([]ScoreLog, error)

	// Health checks database connectivity
	Health(ctx context.Context) error
}
