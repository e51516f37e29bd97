package handlers

import (
	"CycleKeeper/internal/advisor"
	"CycleKeeper/internal/middleware"
	"CycleKeeper/internal/service"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"
)

// AnalysisHandler обрабатывает запросы анализа и историю.
type AnalysisHandler struct {
	AnalysisService *service.AnalysisService
	StatsService    *service.StatsService
	Logger          *zap.SugaredLogger
}

// NewAnalysisHandler создаёт хендлер анализа
func NewAnalysisHandler(analysisService *service.AnalysisService, statsService *service.StatsService, logger *zap.SugaredLogger) *AnalysisHandler {
	return &AnalysisHandler{AnalysisService: analysisService, StatsService: statsService, Logger: logger}
}

func formString(r *http.Request, key, def string) string {
	if v := r.FormValue(key); v != "" {
		return v
	}
	return def
}

func formInt(r *http.Request, key string, def int) (int, error) {
	v := r.FormValue(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("field %s: %w", key, err)
	}
	return n, nil
}

func formFloat(r *http.Request, key string, def float64) (float64, error) {
	v := r.FormValue(key)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("field %s: %w", key, err)
	}
	return f, nil
}

// intakeFromForm разбирает форму анализа. Обязательны только phase и
// pain_level, остальные поля получают дефолты исходного API.
func intakeFromForm(r *http.Request) (advisor.Intake, error) {
	var in advisor.Intake

	in.Phase = r.FormValue("phase")
	if in.Phase == "" {
		return in, errors.New("field phase is required")
	}
	pain := r.FormValue("pain_level")
	if pain == "" {
		return in, errors.New("field pain_level is required")
	}
	n, err := strconv.Atoi(pain)
	if err != nil {
		return in, fmt.Errorf("field pain_level: %w", err)
	}
	in.PainLevel = n

	in.FlowIntensity = formString(r, "flow_intensity", "moderate")
	in.Mood = formString(r, "mood", "N/A")
	in.Fatigue = formString(r, "fatigue", "Medium")
	in.Headaches = formString(r, "headaches", "Medium")
	in.Bloating = formString(r, "bloating", "Medium")
	in.ContraceptionType = formString(r, "contraception_type", "None")

	if in.SleepHours, err = formFloat(r, "sleep_hours", 7.0); err != nil {
		return in, err
	}
	if in.DayInCycle, err = formInt(r, "day_in_cycle", 15); err != nil {
		return in, err
	}
	if in.Age, err = formInt(r, "age", 25); err != nil {
		return in, err
	}
	return in, nil
}

// Analyze принимает форму анкеты, запускает анализ и сохраняет результат
func (h *AnalysisHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.Logger.Warnw("Analyze: invalid form", "error", err)
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	in, err := intakeFromForm(r)
	if err != nil {
		h.Logger.Warnw("Analyze: bad intake", "error", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	// Анализ доступен и анонимно, user_id сохраняем когда он есть
	var userID *int64
	if id, ok := middleware.GetUserIDFromContext(r.Context()); ok {
		userID = &id
	}

	row, res, err := h.AnalysisService.Analyze(r.Context(), in, userID)
	if err != nil {
		// Контракт исходного API: ошибки анализа отдаются как 200 с success=false
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if errors.Is(err, service.ErrNotLoaded) {
			_ = json.NewEncoder(w).Encode(map[string]any{
				"success": false,
				"error":   "System still loading. Please try again in a moment.",
			})
			return
		}
		h.Logger.Errorw("Analyze: service error", "error", err)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": false,
			"error":   "Analysis failed",
			"detail":  err.Error(),
		})
		return
	}

	h.StatsService.Invalidate(r.Context())

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success":        true,
		"analysis":       res,
		"analysis_id":    row.ID,
		"timestamp":      row.CreatedAt.UTC().Format(time.RFC3339),
		"ml_system_used": true,
		"llm_used":       res.LLMUsed,
	})
}

// History отдаёт последнюю страницу анализов в хронологическом порядке
func (h *AnalysisHandler) History(w http.ResponseWriter, r *http.Request) {
	entries, total, err := h.AnalysisService.History(r.Context())
	if err != nil {
		h.Logger.Errorw("History: service error", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success":        true,
		"history":        entries,
		"total_analyses": total,
	})
}
