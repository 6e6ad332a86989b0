package service

import (
	"context"
	"strings"
	"time"

	"visitorlog/internal/dto"
	"visitorlog/internal/model"
	"visitorlog/internal/repository"
)

type StatsService interface {
	Compute(ctx context.Context, now time.Time) (*dto.StatsResponse, error)
}

type statsService struct {
	repo repository.VisitorRepository
}

func NewStatsService(repo repository.VisitorRepository) StatsService {
	return &statsService{repo: repo}
}

// Compute recounts the whole collection on every call. Daily matches the
// calendar date, monthly matches the year-month prefix, active counts
// records without an exit timestamp.
func (s *statsService) Compute(ctx context.Context, now time.Time) (*dto.StatsResponse, error) {
	visitors, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	today := now.Format(model.DateLayout)
	month := now.Format("2006-01")

	stats := &dto.StatsResponse{Total: len(visitors)}
	for _, v := range visitors {
		if v.VisitDate == today {
			stats.Daily++
		}
		if strings.HasPrefix(v.VisitDate, month) {
			stats.Monthly++
		}
		if v.State() == model.StateOpen {
			stats.Active++
		}
	}
	return stats, nil
}
