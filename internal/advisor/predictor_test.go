package advisor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPredictor_PredictPhase(t *testing.T) {
	var p Predictor

	cases := []struct {
		day  int
		want string
	}{
		{1, "menstrual"},
		{5, "menstrual"},
		{6, "follicular"},
		{13, "follicular"},
		{14, "ovulatory"},
		{15, "ovulatory"},
		{16, "luteal"},
		{28, "luteal"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, p.PredictPhase(c.day), "day %d", c.day)
	}
}

func TestPredictor_PredictOnset(t *testing.T) {
	var p Predictor

	assert.Equal(t, 13, p.PredictOnset(15))
	assert.Equal(t, 27, p.PredictOnset(1))
	// на 28-м дне и позже прогноз не опускается ниже одного дня
	assert.Equal(t, 1, p.PredictOnset(28))
	assert.Equal(t, 1, p.PredictOnset(35))
}
