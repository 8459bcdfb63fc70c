package postgres

import (
	"context"
	"time"

	"github.com/satvikkk/travel-aware/internal/domain"
)

// MockRepository implements domain.ScoreLogRepository for testing/demo mode
type MockRepository struct{}

// NewMockRepository creates a new mock repository
func NewMockRepository() *MockRepository {
	return &MockRepository{}
}

// SaveScoreLog is a no-op in mock mode
func (r *MockRepository) SaveScoreLog(ctx context.Context, entry domain.ScoreLog) error {
	return nil
}

// GetRecentScoreLogs returns mock historical data
func (r *MockRepository) GetRecentScoreLogs(ctx context.Context, from, to time.Time) ([]domain.ScoreLog, error) {
	return []domain.ScoreLog{
		{
			Origin:             "Union Station",
			Destination:        "Santa Monica Pier",
			TimeWindow:         "30d",
			RouteCount:         3,
			BestSuitability:    0.4821,
			DominantCategories: []string{"THEFT", "ASSAULT"},
			Timestamp:          time.Now().Add(-24 * time.Hour),
		},
	}, nil
}

// Health always returns nil in mock mode
func (r *MockRepository) Health(ctx context.Context) error {
	return nil
}
