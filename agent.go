package tictactoe

import (
	"math/rand"

	"github.com/gorgonia/tictactoe/bayes"
	"github.com/gorgonia/tictactoe/game"
	"github.com/gorgonia/tictactoe/game/ttt"
	"github.com/gorgonia/tictactoe/minimax"
	"github.com/pkg/errors"
)

// RandomStrategy plays uniformly at random.
type RandomStrategy struct {
	R *rand.Rand
}

func (s RandomStrategy) Name() string               { return Random.String() }
func (s RandomStrategy) Move(b ttt.Board) game.Cell { return ttt.RandomMove(b, s.R) }

// MinimaxStrategy plays with an alpha-beta search.
type MinimaxStrategy struct {
	minimax.Config
	R *rand.Rand // only needed when the config samples root moves
}

func (s MinimaxStrategy) Name() string {
	if s.IsPerfect() {
		return MinimaxPerfect.String()
	}
	return MinimaxHandicap.String()
}

func (s MinimaxStrategy) Move(b ttt.Board) game.Cell { return minimax.FindMove(b, s.Config, s.R) }

// BayesStrategy plays the move a Naive Bayes model likes best.
type BayesStrategy struct {
	Model *bayes.Model
}

func (s BayesStrategy) Name() string               { return NaiveBayes.String() }
func (s BayesStrategy) Move(b ttt.Board) game.Cell { return bayes.FindMove(b, s.Model) }

// NewStrategy creates a strategy of the given kind. model is only required by NaiveBayes,
// and handicap is only used by MinimaxHandicap.
func NewStrategy(k Kind, model *bayes.Model, handicap minimax.Config, r *rand.Rand) (Strategy, error) {
	switch k {
	case Random:
		return RandomStrategy{R: r}, nil
	case MinimaxPerfect:
		return MinimaxStrategy{Config: minimax.Perfect()}, nil
	case MinimaxHandicap:
		if handicap.IsPerfect() {
			return nil, errors.Errorf("handicap %+v does not weaken the search", handicap)
		}
		return MinimaxStrategy{Config: handicap, R: r}, nil
	case NaiveBayes:
		if model == nil {
			return nil, errors.New("the Naive Bayes strategy requires a model")
		}
		return BayesStrategy{Model: model}, nil
	}
	return nil, errors.Errorf("unknown strategy %d", int(k))
}

// An Agent is a player in an arena.
type Agent struct {
	Strategy
	Player game.Player

	// Statistics
	Wins int
	Loss int
	Draw int
}

func (a *Agent) update(w game.Winner) {
	switch {
	case w == game.Draw:
		a.Draw++
	case w.Player() == a.Player:
		a.Wins++
	default:
		a.Loss++
	}
}

func (a *Agent) resetStats() {
	a.Wins = 0
	a.Loss = 0
	a.Draw = 0
}
