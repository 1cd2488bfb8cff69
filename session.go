package tictactoe

import (
	"math/rand"

	"github.com/gorgonia/tictactoe/bayes"
	"github.com/gorgonia/tictactoe/game"
	"github.com/gorgonia/tictactoe/game/ttt"
	"github.com/gorgonia/tictactoe/minimax"
	"github.com/pkg/errors"
)

// Mode is who plays in a session.
type Mode int

const (
	PlayerVsAI Mode = iota
	PlayerVsPlayer
)

func (m Mode) String() string {
	switch m {
	case PlayerVsAI:
		return "1 player"
	case PlayerVsPlayer:
		return "2 players"
	}
	return "Unknown Mode"
}

// Difficulty selects the strategy of the AI.
type Difficulty int

const (
	Easy   Difficulty = iota // random
	Medium                   // Naive Bayes
	Hard                     // handicapped minimax
)

func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "easy"
	case Medium:
		return "medium"
	case Hard:
		return "hard"
	}
	return "unknown"
}

// ParseDifficulty parses the names returned by Difficulty.String.
func ParseDifficulty(s string) (Difficulty, error) {
	for d := Easy; d <= Hard; d++ {
		if d.String() == s {
			return d, nil
		}
	}
	return Easy, errors.Errorf("unknown difficulty %q", s)
}

// Scoreboard counts finished games.
type Scoreboard struct {
	Cross, Nought, Draws int
}

func (s *Scoreboard) record(w game.Winner, delta int) {
	switch w {
	case game.CrossWins:
		s.Cross += delta
	case game.NoughtWins:
		s.Nought += delta
	case game.Draw:
		s.Draws += delta
	}
}

// Session is an interactive game. It is owned by its caller and is not safe for concurrent use.
type Session struct {
	board    ttt.Board
	mode     Mode
	diff     Difficulty
	starting game.Player
	scores   Scoreboard

	model    *bayes.Model
	handicap minimax.Config
	r        *rand.Rand
}

// NewSession creates a one player session on easy, with Cross starting.
// model may be nil, in which case the medium difficulty is not available.
func NewSession(model *bayes.Model, r *rand.Rand) *Session {
	return &Session{
		board:    ttt.New(ttt.Cross),
		starting: ttt.Cross,
		model:    model,
		handicap: minimax.Handicap(),
		r:        r,
	}
}

func (s *Session) Board() ttt.Board         { return s.board }
func (s *Session) Winner() game.Winner      { return s.board.Winner() }
func (s *Session) Mode() Mode               { return s.mode }
func (s *Session) Difficulty() Difficulty   { return s.diff }
func (s *Session) FirstPlayer() game.Player { return s.starting }
func (s *Session) Scores() Scoreboard       { return s.scores }
func (s *Session) ResetScoreboard()         { s.scores = Scoreboard{} }
func (s *Session) SetMode(m Mode)           { s.mode = m }

// SetDifficulty changes the AI. Medium requires a model.
func (s *Session) SetDifficulty(d Difficulty) error {
	if d < Easy || d > Hard {
		return errors.Errorf("unknown difficulty %d", int(d))
	}
	if d == Medium && s.model == nil {
		return errors.New("the medium difficulty requires a Naive Bayes model")
	}
	s.diff = d
	return nil
}

// SetFirstPlayer sets who starts, and restarts the game.
func (s *Session) SetFirstPlayer(p game.Player) error {
	if p != ttt.Cross && p != ttt.Nought {
		return errors.Errorf("%v cannot start a game", p)
	}
	s.starting = p
	s.NewGame()
	return nil
}

// NewGame clears the board. The scoreboard is kept.
func (s *Session) NewGame() { s.board = ttt.New(s.starting) }

// Play plays c for the player to move. It returns false if the game is over or
// the move is illegal. The scoreboard is updated when the move ends the game.
func (s *Session) Play(c game.Cell) bool {
	if s.board.Winner().Ended() {
		return false
	}
	if !s.board.MakeMove(c) {
		return false
	}
	s.scores.record(s.board.Winner(), 1)
	return true
}

// Undo takes back the last move. If that move ended the game, the scoreboard is corrected.
func (s *Session) Undo() bool {
	w := s.board.Winner()
	if !s.board.UndoMove() {
		return false
	}
	s.scores.record(w, -1)
	return true
}

// AIMove picks a move for the player to move without playing it. The opening
// move and the easy difficulty are random.
func (s *Session) AIMove() game.Cell {
	if s.board.MoveNumber() == 0 || s.diff == Easy {
		return ttt.RandomMove(s.board, s.r)
	}
	switch s.diff {
	case Medium:
		if s.model != nil {
			return bayes.FindMove(s.board, s.model)
		}
	case Hard:
		return minimax.FindMove(s.board, s.handicap, s.r)
	}
	return ttt.RandomMove(s.board, s.r)
}

// PlayAI picks and plays a move. It returns game.NoCell if the game is over.
func (s *Session) PlayAI() game.Cell {
	if s.board.Winner().Ended() {
		return game.NoCell
	}
	c := s.AIMove()
	if !s.Play(c) {
		return game.NoCell
	}
	return c
}
