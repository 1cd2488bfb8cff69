package bayes

import (
	"github.com/gorgonia/tictactoe/dataset"
	"github.com/gorgonia/tictactoe/game/ttt"
)

// Prediction pairs the label of an entry with what the model predicted.
type Prediction struct {
	Actual, Predicted dataset.Outcome
}

// Evaluate predicts every entry. A non negative signed probability is a positive prediction.
func Evaluate(entries []dataset.Entry, m *Model) []Prediction {
	retVal := make([]Prediction, len(entries))
	for i, e := range entries {
		predicted := dataset.Negative
		if Predict(ttt.FromCells(e.Cells, ttt.Cross), m) >= 0 {
			predicted = dataset.Positive
		}
		retVal[i] = Prediction{Actual: e.Outcome, Predicted: predicted}
	}
	return retVal
}

// Confusion is a binary confusion matrix, with positive as the positive class.
type Confusion struct {
	TP, TN, FP, FN int
}

// NewConfusion tallies the predictions.
func NewConfusion(predictions []Prediction) (cm Confusion) {
	for _, p := range predictions {
		switch {
		case p.Actual == dataset.Positive && p.Predicted == dataset.Positive:
			cm.TP++
		case p.Actual == dataset.Negative && p.Predicted == dataset.Negative:
			cm.TN++
		case p.Actual == dataset.Negative && p.Predicted == dataset.Positive:
			cm.FP++
		case p.Actual == dataset.Positive && p.Predicted == dataset.Negative:
			cm.FN++
		}
	}
	return cm
}

func (cm Confusion) Total() int { return cm.TP + cm.TN + cm.FP + cm.FN }

// Metrics are the usual scores derived from a confusion matrix.
type Metrics struct {
	Accuracy  float64
	Precision float64
	Recall    float64
	F1        float64
}

// Metrics computes the scores. A score whose denominator is zero is 0.
func (cm Confusion) Metrics() (m Metrics) {
	total := cm.Total()
	if total == 0 {
		return m
	}
	m.Accuracy = float64(cm.TP+cm.TN) / float64(total)
	if cm.TP+cm.FP != 0 {
		m.Precision = float64(cm.TP) / float64(cm.TP+cm.FP)
	}
	if cm.TP+cm.FN != 0 {
		m.Recall = float64(cm.TP) / float64(cm.TP+cm.FN)
	}
	if m.Precision+m.Recall != 0 {
		m.F1 = 2 * m.Precision * m.Recall / (m.Precision + m.Recall)
	}
	return m
}
