// Package advisor реализует советника по менструальному здоровью:
// граф знаний, пороговый предсказатель фазы и сборку текстовых
// рекомендаций по данным анкеты.
package advisor

import (
	"fmt"
	"strings"
)

// Intake — данные анкеты одного запроса анализа.
// Теги json совпадают с полями формы и с ключом user_data в истории.
type Intake struct {
	Age               int     `json:"age"`
	Phase             string  `json:"phase"`
	PainLevel         int     `json:"pain_nrs"`
	FlowIntensity     string  `json:"flow_intensity"`
	ContraceptionType string  `json:"contraception_type"`
	Mood              string  `json:"mood"`
	SleepHours        float64 `json:"sleep_hours"`
	Fatigue           string  `json:"fatigue"`
	Headaches         string  `json:"headaches"`
	Bloating          string  `json:"bloating"`
	DayInCycle        int     `json:"day_in_cycle"`
}

// Predictions — прогноз по дню цикла.
type Predictions struct {
	NextPeriodInDays int    `json:"next_period_in_days"`
	PredictedPhase   string `json:"predicted_phase"`
}

// Result — полный результат анализа.
type Result struct {
	Advice             string          `json:"advice"`
	Recommendations    Recommendations `json:"knowledge_graph_recommendations"`
	SymptomsIdentified []string        `json:"symptoms_identified"`
	LLMUsed            bool            `json:"llm_used"`
	KGUsed             bool            `json:"kg_used"`
	Predictions        Predictions     `json:"predictions"`
}

// Advisor объединяет граф знаний и предсказатель.
type Advisor struct {
	graph  *Graph
	pred   Predictor
	loaded bool
}

// New строит советника со встроенным графом знаний.
func New() (*Advisor, error) {
	g, err := LoadGraph()
	if err != nil {
		return nil, err
	}
	return &Advisor{graph: g, loaded: true}, nil
}

// Loaded сообщает, готов ли советник отвечать на запросы.
func (a *Advisor) Loaded() bool { return a != nil && a.loaded }

// Graph возвращает граф знаний советника.
func (a *Advisor) Graph() *Graph { return a.graph }

// painThreshold — уровень боли по шкале NRS, начиная с которого
// фиксируются спазмы.
const painThreshold = 3

// severe перечисляет значения выраженности, считающиеся симптомом.
var severe = map[string]bool{"Medium": true, "High": true, "Very High": true}

// ExtractSymptoms переводит поля анкеты в список симптомов-узлов графа.
func ExtractSymptoms(in Intake) []string {
	symptoms := []string{}
	if in.PainLevel >= painThreshold {
		symptoms = append(symptoms, "cramps")
	}
	if severe[in.Headaches] {
		symptoms = append(symptoms, "headache")
	}
	if severe[in.Fatigue] {
		symptoms = append(symptoms, "fatigue")
	}
	if severe[in.Bloating] {
		symptoms = append(symptoms, "bloating")
	}
	return symptoms
}

// Analyze выполняет полный разбор анкеты: извлекает симптомы, опрашивает
// граф знаний, прогнозирует фазу и собирает текст рекомендаций.
func (a *Advisor) Analyze(in Intake) *Result {
	symptoms := ExtractSymptoms(in)
	phase := strings.ToLower(in.Phase)
	flow := strings.ToLower(in.FlowIntensity)

	rec := a.graph.Query(symptoms, phase, flow)

	predictedPhase := a.pred.PredictPhase(in.DayInCycle)
	onset := a.pred.PredictOnset(in.DayInCycle)

	return &Result{
		Advice:             composeAdvice(rec, symptoms, predictedPhase, onset),
		Recommendations:    rec,
		SymptomsIdentified: symptoms,
		LLMUsed:            false,
		KGUsed:             true,
		Predictions: Predictions{
			NextPeriodInDays: onset,
			PredictedPhase:   predictedPhase,
		},
	}
}

// composeAdvice собирает многострочный текст рекомендаций. Формат
// строк фиксированный, его разбирает клиентская часть.
func composeAdvice(rec Recommendations, symptoms []string, predictedPhase string, onset int) string {
	parts := []string{"Based on your symptoms and menstrual phase, here are personalized recommendations:\n"}

	if len(rec.Medications) > 0 {
		parts = append(parts, fmt.Sprintf("💊 **Medication Options**: %s", strings.Join(rec.Medications, ", ")))
	}
	if len(rec.HygieneProducts) > 0 {
		parts = append(parts, fmt.Sprintf("🩸 **Hygiene Products**: %s", strings.Join(rec.HygieneProducts, ", ")))
	}
	if len(rec.LifestyleTips) > 0 {
		parts = append(parts, "🏃 **Lifestyle Tips**:")
		for _, tip := range head(rec.LifestyleTips, 3) {
			parts = append(parts, "   • "+tip)
		}
	}
	if len(rec.PhaseSpecific) > 0 {
		parts = append(parts, "📅 **Phase Insights**:")
		for _, insight := range head(rec.PhaseSpecific, 2) {
			parts = append(parts, "   • "+insight)
		}
	}
	if len(symptoms) > 0 {
		parts = append(parts, fmt.Sprintf("🎯 **Symptoms Addressed**: %s", strings.Join(symptoms, ", ")))
	}

	parts = append(parts,
		"📊 **Cycle Predictions**:",
		fmt.Sprintf("   • Next period in approximately %d days", onset),
		fmt.Sprintf("   • Likely entering %s phase soon", predictedPhase),
		"\n💡 **General Wellness Tips**:",
		"   • Stay hydrated and maintain a balanced diet",
		"   • Get 7-9 hours of quality sleep nightly",
		"   • Gentle exercise can reduce symptoms",
		"   • Track your cycle to understand patterns",
	)

	return strings.Join(parts, "\n")
}

func head(list []string, n int) []string {
	if len(list) > n {
		return list[:n]
	}
	return list
}
