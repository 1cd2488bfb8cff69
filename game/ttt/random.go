package ttt

import (
	"math/rand"

	"github.com/gorgonia/tictactoe/game"
)

// RandomMove picks uniformly among the empty cells. A full board yields game.NoCell.
func RandomMove(b Board, r *rand.Rand) game.Cell {
	empty := b.EmptyCells()
	if len(empty) == 0 {
		return game.NoCell
	}
	return empty[r.Intn(len(empty))]
}
