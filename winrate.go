package tictactoe

import (
	"math/rand"

	"github.com/gorgonia/tictactoe/bayes"
	"github.com/gorgonia/tictactoe/game/ttt"
	"github.com/gorgonia/tictactoe/minimax"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// Episodes is the default number of games played by WinRate.
const Episodes = 1000

// WinStats counts the results of a strategy playing Cross.
type WinStats struct {
	Name   string
	Wins   int
	Losses int
	Draws  int
}

func (s WinStats) Games() int       { return s.Wins + s.Losses + s.Draws }
func (s WinStats) WinRate() float64 { return ratio(s.Wins, s.Games()) }

// WinRate plays perfect minimax, then the Naive Bayes model, as Cross moving first
// against a random Nought for the given number of episodes. Both runs start from
// the same seed.
func WinRate(model *bayes.Model, episodes int, seed int64) ([]WinStats, error) {
	if model == nil {
		return nil, errors.New("WinRate requires a Naive Bayes model")
	}
	if episodes < 1 {
		return nil, errors.Errorf("expected at least one episode. Got %d", episodes)
	}
	strategies := []Strategy{
		MinimaxStrategy{Config: minimax.Perfect()},
		BayesStrategy{Model: model},
	}
	retVal := make([]WinStats, 0, len(strategies))
	for _, strat := range strategies {
		r := rand.New(rand.NewSource(seed))
		arena := NewArena(strat, RandomStrategy{R: r}, "", zerolog.Nop())
		for i := 0; i < episodes; i++ {
			if _, err := arena.Play(ttt.Cross, ttt.Cross, nil); err != nil {
				return nil, err
			}
		}
		retVal = append(retVal, WinStats{
			Name:   strat.Name(),
			Wins:   arena.A.Wins,
			Losses: arena.A.Loss,
			Draws:  arena.A.Draw,
		})
	}
	return retVal, nil
}
