package handlers

import (
	"CycleKeeper/internal/service"
	"CycleKeeper/web"
	"fmt"
	"html/template"
	"net/http"

	"go.uber.org/zap"
)

// PageHandler рендерит HTML-страницы из встроенных шаблонов.
type PageHandler struct {
	AnalysisService *service.AnalysisService
	StatsService    *service.StatsService
	Logger          *zap.SugaredLogger
	tmpl            *template.Template
}

// NewPageHandler парсит шаблоны из web.Templates
func NewPageHandler(analysisService *service.AnalysisService, statsService *service.StatsService, logger *zap.SugaredLogger) (*PageHandler, error) {
	tmpl, err := template.ParseFS(web.Templates, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &PageHandler{
		AnalysisService: analysisService,
		StatsService:    statsService,
		Logger:          logger,
		tmpl:            tmpl,
	}, nil
}

// pageData — общий контекст всех страничных шаблонов.
type pageData struct {
	Title    string
	Active   string
	MLLoaded bool
	Stats    *service.Stats
}

func (h *PageHandler) render(w http.ResponseWriter, name string, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.tmpl.ExecuteTemplate(w, name, data); err != nil {
		h.Logger.Errorw("render: template error", "template", name, "error", err)
	}
}

func (h *PageHandler) page(title, active string) pageData {
	return pageData{Title: title, Active: active, MLLoaded: h.AnalysisService.Loaded()}
}

// Home главная страница
func (h *PageHandler) Home(w http.ResponseWriter, r *http.Request) {
	h.render(w, "index.html", h.page("Home", "home"))
}

// Login страница входа и регистрации
func (h *PageHandler) Login(w http.ResponseWriter, r *http.Request) {
	h.render(w, "login.html", h.page("Sign In", "login"))
}

// Dashboard страница с агрегированной статистикой
func (h *PageHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	data := h.page("Dashboard", "dashboard")
	stats, err := h.StatsService.Get(r.Context())
	if err != nil {
		// Страница живёт и без статистики
		h.Logger.Warnw("Dashboard: stats unavailable", "error", err)
	} else {
		data.Stats = stats
	}
	h.render(w, "dashboard.html", data)
}

// Analysis страница анкеты анализа
func (h *PageHandler) Analysis(w http.ResponseWriter, r *http.Request) {
	h.render(w, "analysis.html", h.page("Analysis", "analysis"))
}

// History страница истории анализов
func (h *PageHandler) History(w http.ResponseWriter, r *http.Request) {
	h.render(w, "history.html", h.page("History", "history"))
}
