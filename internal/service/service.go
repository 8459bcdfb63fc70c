package service

import (
	"github.com/satvikkk/travel-aware/internal/domain"
)

// ScoreLogRepository is re-exported from domain for convenience
type ScoreLogRepository = domain.ScoreLogRepository
