package handlers

import (
	"CycleKeeper/internal/service"
	"encoding/json"
	"net/http"
	"time"
)

// HealthHandler отдаёт health-check и статус API.
type HealthHandler struct {
	AnalysisService *service.AnalysisService
}

// NewHealthHandler создаёт хендлер health
func NewHealthHandler(analysisService *service.AnalysisService) *HealthHandler {
	return &HealthHandler{AnalysisService: analysisService}
}

// Health проверка живости сервиса
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	state := "loading"
	if h.AnalysisService.Loaded() {
		state = "loaded"
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"ml_system": state,
	})
}

// Status корневой статус API
func (h *HealthHandler) Status(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"message":   "Menstrual Health AI API",
		"status":    "running",
		"ml_loaded": h.AnalysisService.Loaded(),
		"system":    "Knowledge Graph + Rule-based Predictor",
	})
}
