package service

import (
	"CycleKeeper/internal/advisor"
	"CycleKeeper/internal/model"
	"CycleKeeper/internal/repo"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

// мок для repo.AnalysisRepository
type mockAnalysisRepo struct{ mock.Mock }

func (m *mockAnalysisRepo) Save(ctx context.Context, a *model.Analysis, keep int) error {
	args := m.Called(ctx, a, keep)
	return args.Error(0)
}

func (m *mockAnalysisRepo) Recent(ctx context.Context, limit int) ([]model.Analysis, error) {
	args := m.Called(ctx, limit)
	if rows, ok := args.Get(0).([]model.Analysis); ok {
		return rows, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAnalysisRepo) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockAnalysisRepo) CountByPhase(ctx context.Context) (map[string]int64, error) {
	args := m.Called(ctx)
	if v, ok := args.Get(0).(map[string]int64); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAnalysisRepo) LastCreatedAt(ctx context.Context) (*time.Time, error) {
	args := m.Called(ctx)
	if v, ok := args.Get(0).(*time.Time); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

var _ repo.AnalysisRepository = (*mockAnalysisRepo)(nil)

func TestAnalysisService_Analyze(t *testing.T) {
	ctx := context.Background()
	adv, err := advisor.New()
	assert.NoError(t, err)

	m := new(mockAnalysisRepo)
	svc := NewAnalysisService(adv, m, zap.NewNop().Sugar())

	in := advisor.Intake{
		Age:           30,
		Phase:         "Luteal",
		PainLevel:     4,
		FlowIntensity: "Light",
		Fatigue:       "Low",
		Headaches:     "Low",
		Bloating:      "High",
		DayInCycle:    20,
	}
	uid := int64(7)

	m.On("Save", mock.Anything, mock.MatchedBy(func(a *model.Analysis) bool {
		return len(a.ID) == 8 && a.UserID != nil && *a.UserID == 7 &&
			a.PredictedPhase == "luteal" && len(a.Result) > 0
	}), 20).Return(nil).Once()

	row, res, err := svc.Analyze(ctx, in, &uid)
	assert.NoError(t, err)
	assert.Len(t, row.ID, 8)
	assert.Equal(t, []string{"cramps", "bloating"}, res.SymptomsIdentified)

	// в строке лежит валидный JSON с теми же прогнозами
	var stored advisor.Result
	assert.NoError(t, json.Unmarshal(row.Result, &stored))
	assert.Equal(t, res.Predictions, stored.Predictions)

	m.AssertExpectations(t)
}

func TestAnalysisService_NotLoaded(t *testing.T) {
	m := new(mockAnalysisRepo)
	svc := NewAnalysisService(&advisor.Advisor{}, m, zap.NewNop().Sugar())

	_, _, err := svc.Analyze(context.Background(), advisor.Intake{}, nil)
	assert.ErrorIs(t, err, ErrNotLoaded)
	m.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
}

func TestAnalysisService_History(t *testing.T) {
	ctx := context.Background()
	m := new(mockAnalysisRepo)
	svc := NewAnalysisService(&advisor.Advisor{}, m, zap.NewNop().Sugar())

	ts := time.Date(2025, 8, 1, 10, 0, 0, 0, time.UTC)
	rows := []model.Analysis{{
		ID:            "abc12345",
		Age:           25,
		Phase:         "menstrual",
		PainLevel:     6,
		FlowIntensity: "moderate",
		Mood:          "N/A",
		SleepHours:    7,
		Fatigue:       "Medium",
		Headaches:     "Medium",
		Bloating:      "Medium",
		DayInCycle:    3,
		Result:        []byte(`{"kg_used":true}`),
		CreatedAt:     ts,
	}}
	m.On("Recent", mock.Anything, 10).Return(rows, nil).Once()
	m.On("Count", mock.Anything).Return(int64(14), nil).Once()

	entries, total, err := svc.History(ctx)
	assert.NoError(t, err)
	assert.Equal(t, int64(14), total)
	if assert.Len(t, entries, 1) {
		e := entries[0]
		assert.Equal(t, "abc12345", e.ID)
		assert.Equal(t, 6, e.UserData.PainLevel)
		assert.Equal(t, "2025-08-01T10:00:00Z", e.Timestamp)
		assert.JSONEq(t, `{"kg_used":true}`, string(e.Analysis))

		// сериализованная запись истории использует ключи формы
		raw, err := json.Marshal(e)
		assert.NoError(t, err)
		assert.Contains(t, string(raw), `"pain_nrs":6`)
		assert.Contains(t, string(raw), `"user_data"`)
	}
	m.AssertExpectations(t)
}
