// Package minimax implements an exhaustive alpha-beta search for tic-tac-toe.
//
// A full search of the 3x3 game tree is fast, so the search can be made
// deliberately weaker with Config to tune the difficulty of the AI.
package minimax

import (
	"math"
	"math/rand"

	"github.com/gorgonia/tictactoe/game"
	"github.com/gorgonia/tictactoe/game/ttt"
)

const (
	// HandicapMaxDepth is the depth at which a handicapped search stops looking.
	HandicapMaxDepth = 1
	// HandicapSamples is the number of root moves a handicapped search considers.
	HandicapSamples = 2

	minScore = math.MinInt32
	maxScore = math.MaxInt32

	maxMoves = ttt.Size * ttt.Size
)

// Config weakens a search. The zero value is a perfect search.
type Config struct {
	MaxDepth int `yaml:"max_depth"` // positions at or beyond this depth score 0. 0 means no limit
	Samples  int `yaml:"samples"`   // only this many randomly chosen root moves are searched. 0 means all of them
}

// Perfect is the exhaustive search.
func Perfect() Config { return Config{} }

// Handicap is the weakened search used for the "hard" difficulty.
func Handicap() Config { return Config{MaxDepth: HandicapMaxDepth, Samples: HandicapSamples} }

// IsPerfect returns true if the config does not weaken the search.
func (c Config) IsPerfect() bool { return c.MaxDepth <= 0 && c.Samples <= 0 }

// MoveScore is a root move and its minimax value.
type MoveScore struct {
	game.Cell
	Score int
}

type searcher struct {
	ai   game.Player
	conf Config
	tr   *trace
}

// FindMove returns the best move for the player to move. Ties go to the first move
// in row major order. If there are no legal moves, game.NoCell is returned.
//
// r is only used when conf.Samples is set, and may be nil otherwise.
func FindMove(b ttt.Board, conf Config, r *rand.Rand) game.Cell {
	s := searcher{ai: b.ToMove(), conf: conf}
	return s.root(b, sample(b.EmptyCells(), conf.Samples, r))
}

// Score returns the minimax value of every legal move, in row major order.
// conf.Samples is ignored.
func Score(b ttt.Board, conf Config) []MoveScore {
	s := searcher{ai: b.ToMove(), conf: conf}
	moves := b.EmptyCells()
	retVal := make([]MoveScore, 0, len(moves))
	for _, m := range moves {
		next := b
		next.MakeMove(m)
		retVal = append(retVal, MoveScore{Cell: m, Score: s.minimax(next, false, minScore, maxScore, 0, -1)})
	}
	return retVal
}

func (s *searcher) root(b ttt.Board, moves []game.Cell) game.Cell {
	best := game.NoCell
	bestScore := minScore
	parent := s.tr.add(-1, b, -1)
	for _, m := range moves {
		next := b
		next.MakeMove(m)
		score := s.minimax(next, false, minScore, maxScore, 0, parent)
		if score > bestScore {
			bestScore = score
			best = m
		}
	}
	s.tr.score(parent, bestScore, minScore, maxScore)
	return best
}

// minimax scores b from the point of view of s.ai. Faster wins and slower losses
// are preferred by scoring terminal positions with 9 - depth.
func (s *searcher) minimax(b ttt.Board, maximizing bool, alpha, beta, depth, parent int) int {
	id := s.tr.add(parent, b, depth)
	if s.conf.MaxDepth > 0 && depth >= s.conf.MaxDepth {
		s.tr.score(id, 0, alpha, beta)
		return 0
	}

	switch w := b.Winner(); w {
	case game.Draw:
		s.tr.score(id, 0, alpha, beta)
		return 0
	case game.CrossWins, game.NoughtWins:
		score := maxMoves - depth
		if w.Player() != s.ai {
			score = -score
		}
		s.tr.score(id, score, alpha, beta)
		return score
	}

	moves := b.EmptyCells()
	var best int
	if maximizing {
		best = minScore
		for _, m := range moves {
			next := b
			next.MakeMove(m)
			score := s.minimax(next, false, alpha, beta, depth+1, id)
			if score > best {
				best = score
			}
			if best > alpha {
				alpha = best
			}
			if beta <= alpha {
				break
			}
		}
	} else {
		best = maxScore
		for _, m := range moves {
			next := b
			next.MakeMove(m)
			score := s.minimax(next, true, alpha, beta, depth+1, id)
			if score < best {
				best = score
			}
			if best < beta {
				beta = best
			}
			if beta <= alpha {
				break
			}
		}
	}
	s.tr.score(id, best, alpha, beta)
	return best
}

// sample truncates moves to k randomly chosen moves with a partial Fisher-Yates shuffle.
func sample(moves []game.Cell, k int, r *rand.Rand) []game.Cell {
	if k <= 0 || len(moves) <= k {
		return moves
	}
	for i := 0; i < k; i++ {
		j := i + r.Intn(len(moves)-i)
		moves[i], moves[j] = moves[j], moves[i]
	}
	return moves[:k]
}
