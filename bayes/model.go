// Package bayes is a Naive Bayes classifier of tic-tac-toe positions.
//
// Each of the nine cells is a categorical feature, assumed independent of the
// others given the outcome. The model is trained with X as the positive
// player.
package bayes

import (
	"math"

	"github.com/gorgonia/tictactoe/dataset"
	"github.com/gorgonia/tictactoe/game/ttt"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
)

// States is the number of states a cell can be in.
const States = 3

// tolerance for probabilities summing to 1
const tolerance = 1e-6

// Model holds the priors and the per cell likelihoods, indexed
// [outcome][row][col][cell state].
type Model struct {
	Prior      [dataset.Outcomes]float64
	Likelihood [dataset.Outcomes][ttt.Size][ttt.Size][States]float64
}

// Validate checks that every distribution in the model is a probability distribution.
func (m *Model) Validate() error {
	if err := distribution(m.Prior[:]); err != nil {
		return errors.WithMessage(err, "prior")
	}
	for o := range m.Likelihood {
		for r := range m.Likelihood[o] {
			for c := range m.Likelihood[o][r] {
				if err := distribution(m.Likelihood[o][r][c][:]); err != nil {
					return errors.WithMessagef(err, "likelihood of %v at (%d, %d)", dataset.Outcome(o), r, c)
				}
			}
		}
	}
	return nil
}

func distribution(p []float64) error {
	for _, v := range p {
		if math.IsNaN(v) || v <= 0 || v > 1 {
			return errors.Errorf("invalid probability %v", v)
		}
	}
	if sum := floats.Sum(p); math.Abs(sum-1) > tolerance {
		return errors.Errorf("probabilities sum to %v", sum)
	}
	return nil
}
