package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/satvikkk/travel-aware/internal/domain"
)

// PostgresRepository implements domain.ScoreLogRepository
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// SaveScoreLog persists a scoring request summary to PostgreSQL
func (r *PostgresRepository) SaveScoreLog(ctx context.Context, entry domain.ScoreLog) error {
	query := `
		INSERT INTO route_score_logs (
			origin, destination, time_window, route_count,
			best_suitability, dominant_categories, timestamp
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.pool.Exec(ctx, query,
		entry.Origin, entry.Destination, entry.TimeWindow, entry.RouteCount,
		entry.BestSuitability, entry.DominantCategories, entry.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("postgres: failed to save score log: %w", err)
	}

	return nil
}

// GetRecentScoreLogs retrieves scoring history from PostgreSQL
func (r *PostgresRepository) GetRecentScoreLogs(ctx context.Context, from, to time.Time) ([]domain.ScoreLog, error) {
	query := `
		SELECT origin, destination, time_window, route_count,
			   best_suitability, dominant_categories, timestamp
		FROM route_score_logs
		WHERE timestamp BETWEEN $1 AND $2
		ORDER BY timestamp DESC
		LIMIT 100
	`

	rows, err := r.pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to query score logs: %w", err)
	}
	defer rows.Close()

	var results []domain.ScoreLog
	for rows.Next() {
		var l domain.ScoreLog
		err := rows.Scan(
			&l.Origin, &l.Destination, &l.TimeWindow, &l.RouteCount,
			&l.BestSuitability, &l.DominantCategories, &l.Timestamp,
		)
		if err != nil {
			return nil, fmt.Errorf("postgres: failed to scan score log row: %w", err)
		}
		results = append(results, l)
	}

	return results, nil
}

// Health checks database connectivity
func (r *PostgresRepository) Health(ctx context.Context) error {
	if err := r.pool.Ping(ctx); err != nil {
		return fmt.Errorf("postgres: health check failed: %w", err)
	}
	return nil
}
