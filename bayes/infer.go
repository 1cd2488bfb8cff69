package bayes

import (
	"math"

	"github.com/gorgonia/tictactoe/dataset"
	"github.com/gorgonia/tictactoe/game"
	"github.com/gorgonia/tictactoe/game/ttt"
	"gonum.org/v1/gonum/floats"
)

// Posterior returns P(outcome | cells) for both outcomes. The scores are computed in
// log space and normalized with log-sum-exp.
func Posterior(cells ttt.Cells, m *Model) (retVal [dataset.Outcomes]float64) {
	var scores [dataset.Outcomes]float64
	for o := range scores {
		score := math.Log(m.Prior[o])
		for r, row := range cells {
			for c, state := range row {
				score += math.Log(m.Likelihood[o][r][c][state])
			}
		}
		scores[o] = score
	}

	lse := floats.LogSumExp(scores[:])
	for o := range scores {
		retVal[o] = math.Exp(scores[o] - lse)
	}
	return retVal
}

// Predict classifies the board. It returns P(positive) if positive is at least as likely as
// negative, and -P(negative) otherwise.
//
// The sign carries the class, so candidates must be ranked by the signed value: any positive
// beats any negative, however confident.
func Predict(b ttt.Board, m *Model) float64 {
	p := Posterior(b.Cells(), m)
	if p[dataset.Positive] >= p[dataset.Negative] {
		return p[dataset.Positive]
	}
	return -p[dataset.Negative]
}

// FindMove picks the move whose resulting position the model likes best for the player to move.
// Ties go to the first move in row major order. If there are no legal moves, game.NoCell is returned.
func FindMove(b ttt.Board, m *Model) game.Cell {
	// the model thinks in terms of X, so O plays as X on the inverted board
	if b.ToMove() == ttt.Nought {
		b = ttt.FromCells(b.Inverted().Cells(), ttt.Cross)
	}

	best := game.NoCell
	bestScore := math.Inf(-1)
	for _, c := range b.EmptyCells() {
		next := b
		next.MakeMove(c)
		if score := Predict(next, m); score > bestScore {
			bestScore = score
			best = c
		}
	}
	return best
}
