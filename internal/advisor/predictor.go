package advisor

// cycleLength — опорная длина цикла в днях для прогноза.
const cycleLength = 28

// Predictor — пороговый предсказатель фазы цикла и даты начала
// следующей менструации по дню цикла.
type Predictor struct{}

// PredictPhase возвращает фазу цикла по его дню.
func (Predictor) PredictPhase(dayInCycle int) string {
	switch {
	case dayInCycle <= 5:
		return "menstrual"
	case dayInCycle <= 13:
		return "follicular"
	case dayInCycle <= 15:
		return "ovulatory"
	default:
		return "luteal"
	}
}

// PredictOnset возвращает число дней до начала следующей менструации,
// не меньше одного.
func (Predictor) PredictOnset(dayInCycle int) int {
	days := cycleLength - dayInCycle
	if days < 1 {
		return 1
	}
	return days
}
