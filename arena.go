package tictactoe

import (
	"fmt"

	"github.com/gorgonia/tictactoe/game"
	"github.com/gorgonia/tictactoe/game/ttt"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

var _ game.MetaState = &Arena{}

// Arena plays games between two agents.
type Arena struct {
	A, B *Agent

	// state
	current       ttt.Board
	currentPlayer *Agent
	logger        zerolog.Logger

	name       string
	gameNumber int // which game is this in
}

// NewArena makes an arena given two strategies.
func NewArena(a, b Strategy, name string, logger zerolog.Logger) *Arena {
	if name == "" {
		name = a.Name() + " vs " + b.Name()
	}
	return &Arena{
		A:       &Agent{Strategy: a},
		B:       &Agent{Strategy: b},
		current: ttt.New(ttt.Cross),
		name:    name,
		logger:  logger,
	}
}

// Play plays a game to the end with A playing aPlayer, and returns the result.
// If enc is not nil, every position (including the empty board) is encoded.
func (a *Arena) Play(aPlayer, starting game.Player, enc OutputEncoder) (winner game.Winner, err error) {
	a.A.Player = aPlayer
	a.B.Player = aPlayer.Opponent()
	a.current = ttt.New(starting)
	a.currentPlayer = a.A
	if starting != aPlayer {
		a.currentPlayer = a.B
	}
	if enc != nil {
		if err = enc.Encode(a); err != nil {
			return game.Ongoing, errors.WithMessage(err, "unable to encode")
		}
	}

	for winner = a.current.Winner(); !winner.Ended(); winner = a.current.Winner() {
		best := a.currentPlayer.Move(a.current)
		if !a.current.MakeMove(best) {
			return winner, ErrInvalidMove{Strategy: a.currentPlayer.Name(), Move: best}
		}
		a.logger.Debug().
			Int("game", a.gameNumber).
			Str("player", fmt.Sprintf("%s", a.currentPlayer.Player)).
			Int("row", best.Row).
			Int("col", best.Col).
			Msg("move")
		a.switchPlayer()
		if enc != nil {
			if err = enc.Encode(a); err != nil {
				return winner, errors.WithMessage(err, "unable to encode")
			}
		}
	}

	a.A.update(winner)
	a.B.update(winner)
	a.logger.Debug().Int("game", a.gameNumber).Stringer("winner", winner).Msg("game over")
	a.gameNumber++
	return winner, nil
}

func (a *Arena) GameNumber() int   { return a.gameNumber }
func (a *Arena) Name() string      { return a.name }
func (a *Arena) State() game.State { return a.current }
func (a *Arena) Board() ttt.Board  { return a.current }
func (a *Arena) ResetStats()       { a.A.resetStats(); a.B.resetStats(); a.gameNumber = 0 }

func (a *Arena) switchPlayer() {
	switch a.currentPlayer {
	case a.A:
		a.currentPlayer = a.B
	case a.B:
		a.currentPlayer = a.A
	}
}
