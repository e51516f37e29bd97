package service

import (
	"CycleKeeper/internal/advisor"
	"CycleKeeper/internal/metrics"
	"CycleKeeper/internal/model"
	"CycleKeeper/internal/repo"
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrNotLoaded возвращается, пока советник не готов отвечать.
var ErrNotLoaded = errors.New("advisor is not loaded")

const (
	// historyKeep — сколько последних анализов хранится.
	historyKeep = 20
	// historyPage — сколько записей отдаёт выборка истории.
	historyPage = 10
)

// AnalysisService прогоняет анкеты через советника и ведёт историю.
type AnalysisService struct {
	adv    *advisor.Advisor
	repo   repo.AnalysisRepository
	logger *zap.SugaredLogger
}

// NewAnalysisService создаёт сервис анализов.
func NewAnalysisService(adv *advisor.Advisor, r repo.AnalysisRepository, logger *zap.SugaredLogger) *AnalysisService {
	return &AnalysisService{adv: adv, repo: r, logger: logger}
}

// Loaded сообщает, готов ли советник.
func (s *AnalysisService) Loaded() bool { return s.adv.Loaded() }

// Analyze выполняет анализ анкеты и сохраняет результат в историю.
// userID равен nil для анонимного запроса.
func (s *AnalysisService) Analyze(ctx context.Context, in advisor.Intake, userID *int64) (*model.Analysis, *advisor.Result, error) {
	if !s.adv.Loaded() {
		return nil, nil, ErrNotLoaded
	}

	start := time.Now()
	res := s.adv.Analyze(in)
	metrics.AnalysisDuration.Observe(time.Since(start).Seconds())

	raw, err := json.Marshal(res)
	if err != nil {
		return nil, nil, err
	}

	row := &model.Analysis{
		ID:                uuid.NewString()[:8],
		UserID:            userID,
		Age:               in.Age,
		Phase:             in.Phase,
		PainLevel:         in.PainLevel,
		FlowIntensity:     in.FlowIntensity,
		ContraceptionType: in.ContraceptionType,
		Mood:              in.Mood,
		SleepHours:        in.SleepHours,
		Fatigue:           in.Fatigue,
		Headaches:         in.Headaches,
		Bloating:          in.Bloating,
		DayInCycle:        in.DayInCycle,
		PredictedPhase:    res.Predictions.PredictedPhase,
		Result:            raw,
		CreatedAt:         time.Now(),
	}
	if err := s.repo.Save(ctx, row, historyKeep); err != nil {
		return nil, nil, err
	}

	metrics.AnalysesTotal.Inc()
	s.logger.Infow("analysis stored",
		"analysis_id", row.ID,
		"symptoms", res.SymptomsIdentified,
		"predicted_phase", res.Predictions.PredictedPhase,
	)
	return row, res, nil
}

// HistoryEntry — одна запись истории в формате ответа API.
type HistoryEntry struct {
	ID        string          `json:"id"`
	UserData  advisor.Intake  `json:"user_data"`
	Analysis  json.RawMessage `json:"analysis"`
	Timestamp string          `json:"timestamp"`
}

// History возвращает последние записи истории и общее количество.
func (s *AnalysisService) History(ctx context.Context) ([]HistoryEntry, int64, error) {
	rows, err := s.repo.Recent(ctx, historyPage)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, 0, err
	}

	entries := make([]HistoryEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, HistoryEntry{
			ID: row.ID,
			UserData: advisor.Intake{
				Age:               row.Age,
				Phase:             row.Phase,
				PainLevel:         row.PainLevel,
				FlowIntensity:     row.FlowIntensity,
				ContraceptionType: row.ContraceptionType,
				Mood:              row.Mood,
				SleepHours:        row.SleepHours,
				Fatigue:           row.Fatigue,
				Headaches:         row.Headaches,
				Bloating:          row.Bloating,
				DayInCycle:        row.DayInCycle,
			},
			Analysis:  json.RawMessage(row.Result),
			Timestamp: row.CreatedAt.Format(time.RFC3339),
		})
	}
	return entries, total, nil
}
