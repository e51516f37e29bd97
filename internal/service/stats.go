package service

import (
	"CycleKeeper/internal/cache"
	"CycleKeeper/internal/repo"
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"
)

const (
	statsCacheKey = "stats:dashboard"
	statsCacheTTL = 30 * time.Second
)

// Stats — сводка по истории анализов для дашборда.
type Stats struct {
	TotalAnalyses  int64            `json:"total_analyses"`
	ByPhase        map[string]int64 `json:"by_phase"`
	LastAnalysisAt *time.Time       `json:"last_analysis_at,omitempty"`
}

// StatsService считает сводку по истории и кеширует её.
type StatsService struct {
	repo   repo.AnalysisRepository
	cache  cache.Provider
	logger *zap.SugaredLogger
}

// NewStatsService создаёт сервис статистики.
func NewStatsService(r repo.AnalysisRepository, c cache.Provider, logger *zap.SugaredLogger) *StatsService {
	return &StatsService{repo: r, cache: c, logger: logger}
}

// Get возвращает сводку, по возможности из кеша.
func (s *StatsService) Get(ctx context.Context) (*Stats, error) {
	if raw, ok := s.cache.Get(ctx, statsCacheKey); ok {
		var st Stats
		if err := json.Unmarshal(raw, &st); err == nil {
			return &st, nil
		}
		// битую запись убираем и считаем заново
		s.cache.Delete(ctx, statsCacheKey)
	}

	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, err
	}
	byPhase, err := s.repo.CountByPhase(ctx)
	if err != nil {
		return nil, err
	}
	last, err := s.repo.LastCreatedAt(ctx)
	if err != nil {
		return nil, err
	}

	st := &Stats{TotalAnalyses: total, ByPhase: byPhase, LastAnalysisAt: last}
	if raw, err := json.Marshal(st); err == nil {
		s.cache.Set(ctx, statsCacheKey, raw, statsCacheTTL)
	} else {
		s.logger.Warnw("failed to marshal stats for cache", "error", err)
	}
	return st, nil
}

// Invalidate сбрасывает кешированную сводку, например после нового анализа.
func (s *StatsService) Invalidate(ctx context.Context) {
	s.cache.Delete(ctx, statsCacheKey)
}
