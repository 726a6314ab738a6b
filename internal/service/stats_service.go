package service

import (
	"context"

	"criminaldiaries/internal/cache"
	"criminaldiaries/internal/repository"
)

// StatsService serves the admin dashboard aggregate with a short cache.
type StatsService struct {
	statsRepo repository.StatsRepository
}

// NewStatsService creates a new StatsService.
func NewStatsService(statsRepo repository.StatsRepository) *StatsService {
	return &StatsService{statsRepo: statsRepo}
}

func (s *StatsService) SiteStats(ctx context.Context) (*repository.SiteStats, error) {
	var stats repository.SiteStats
	err := cache.Aside(ctx, cache.StatsKey, &stats, cache.StatsTTL, func() error {
		fresh, err := s.statsRepo.SiteStats(ctx)
		if err != nil {
			return err
		}
		stats = *fresh
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
