package service

import (
	"CycleKeeper/internal/cache"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func TestStatsService_GetCachesResult(t *testing.T) {
	ctx := context.Background()
	m := new(mockAnalysisRepo)
	svc := NewStatsService(m, cache.NewMemCache(), zap.NewNop().Sugar())

	last := time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)
	m.On("Count", mock.Anything).Return(int64(3), nil).Once()
	m.On("CountByPhase", mock.Anything).Return(map[string]int64{"luteal": 2, "menstrual": 1}, nil).Once()
	m.On("LastCreatedAt", mock.Anything).Return(&last, nil).Once()

	st, err := svc.Get(ctx)
	assert.NoError(t, err)
	assert.Equal(t, int64(3), st.TotalAnalyses)
	assert.Equal(t, map[string]int64{"luteal": 2, "menstrual": 1}, st.ByPhase)
	if assert.NotNil(t, st.LastAnalysisAt) {
		assert.True(t, st.LastAnalysisAt.Equal(last))
	}

	// повторный вызов берёт сводку из кеша: репозиторий зарезервирован .Once()
	st2, err := svc.Get(ctx)
	assert.NoError(t, err)
	assert.Equal(t, st.TotalAnalyses, st2.TotalAnalyses)
	m.AssertExpectations(t)
}

func TestStatsService_Invalidate(t *testing.T) {
	ctx := context.Background()
	m := new(mockAnalysisRepo)
	svc := NewStatsService(m, cache.NewMemCache(), zap.NewNop().Sugar())

	m.On("Count", mock.Anything).Return(int64(1), nil).Twice()
	m.On("CountByPhase", mock.Anything).Return(map[string]int64{"luteal": 1}, nil).Twice()
	m.On("LastCreatedAt", mock.Anything).Return((*time.Time)(nil), nil).Twice()

	_, err := svc.Get(ctx)
	assert.NoError(t, err)

	svc.Invalidate(ctx)

	// после сброса кеша сводка пересчитывается
	_, err = svc.Get(ctx)
	assert.NoError(t, err)
	m.AssertExpectations(t)
}
