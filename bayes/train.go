package bayes

import (
	"github.com/gorgonia/tictactoe/dataset"
	"github.com/gorgonia/tictactoe/game/ttt"
)

// Alpha is the default Laplace smoothing factor.
const Alpha = 1.0

// Train fits a model to the entries with add-alpha smoothing:
//
//	prior[o]               = (count(o) + α) / (N + 2α)
//	likelihood[o][r][c][s] = (count(o, r, c, s) + α) / (count(o) + 3α)
func Train(entries []dataset.Entry, alpha float64) *Model {
	var outcomes [dataset.Outcomes]int
	var states [dataset.Outcomes][ttt.Size][ttt.Size][States]int
	for _, e := range entries {
		outcomes[e.Outcome]++
		for r, row := range e.Cells {
			for c, s := range row {
				states[e.Outcome][r][c][s]++
			}
		}
	}

	m := new(Model)
	n := float64(len(entries))
	for o := range m.Prior {
		m.Prior[o] = (float64(outcomes[o]) + alpha) / (n + alpha*dataset.Outcomes)
		for r := range m.Likelihood[o] {
			for c := range m.Likelihood[o][r] {
				for s := range m.Likelihood[o][r][c] {
					m.Likelihood[o][r][c][s] = (float64(states[o][r][c][s]) + alpha) / (float64(outcomes[o]) + alpha*States)
				}
			}
		}
	}
	return m
}
