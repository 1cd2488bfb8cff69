package ttt

import (
	"fmt"
	"hash/fnv"

	"github.com/gorgonia/tictactoe/game"
)

// Size is the length of a side of the board.
const Size = 3

// Cells is the 3x3 grid, indexed [row][col].
type Cells [Size][Size]game.Colour

var (
	Cross  = game.Player(game.Cross)
	Nought = game.Player(game.Nought)
)

var _ game.State = Board{}

// lines are the winning triples, scanned rows first, then columns, then diagonals.
var lines = [8][3]game.Cell{
	{{0, 0}, {0, 1}, {0, 2}},
	{{1, 0}, {1, 1}, {1, 2}},
	{{2, 0}, {2, 1}, {2, 2}},
	{{0, 0}, {1, 0}, {2, 0}},
	{{0, 1}, {1, 1}, {2, 1}},
	{{0, 2}, {1, 2}, {2, 2}},
	{{0, 0}, {1, 1}, {2, 2}},
	{{0, 2}, {1, 1}, {2, 0}},
}

// Board is a tic-tac-toe board. It is a value: assigning a Board copies it,
// which is how searches get their private copies.
//
// Only one move of history is kept. Undoing twice in a row fails.
type Board struct {
	cells     Cells
	toMove    game.Player
	moveCount int
	last      game.Cell
}

// New creates an empty board with p to move.
func New(p game.Player) Board {
	return Board{
		toMove: p,
		last:   game.NoCell,
	}
}

// FromCells creates a board from a grid. The move count is derived from the grid
// and nothing is undoable.
func FromCells(cells Cells, toMove game.Player) Board {
	b := New(toMove)
	b.cells = cells
	for _, row := range cells {
		for _, c := range row {
			if c != game.None {
				b.moveCount++
			}
		}
	}
	return b
}

func (b Board) Format(s fmt.State, c rune) {
	for _, row := range b.cells {
		fmt.Fprint(s, "⎢ ")
		for _, cl := range row {
			fmt.Fprintf(s, "%s ", cl)
		}
		fmt.Fprint(s, "⎥\n")
	}
}

func (b Board) Cells() Cells                   { return b.cells }
func (b Board) Colour(c game.Cell) game.Colour { return b.cells[c.Row][c.Col] }
func (b Board) ToMove() game.Player            { return b.toMove }
func (b Board) MoveNumber() int                { return b.moveCount }

// LastMove returns the undoable move. If there is none, the cell is game.NoCell.
func (b Board) LastMove() game.PlayerMove {
	if b.last.IsNone() {
		return game.PlayerMove{Player: game.Player(game.None), Cell: game.NoCell}
	}
	return game.PlayerMove{Player: b.toMove.Opponent(), Cell: b.last}
}

func (b Board) Hash() game.Zobrist {
	h := fnv.New32a()
	for _, row := range b.cells {
		for _, v := range row {
			h.Write([]byte{byte(v)})
		}
	}
	return game.Zobrist(h.Sum32())
}

// MakeMove places the mark of the player to move on c. It returns false, leaving
// the board untouched, if c is out of bounds or occupied.
func (b *Board) MakeMove(c game.Cell) bool {
	if !c.Valid(Size) || b.cells[c.Row][c.Col] != game.None {
		return false
	}
	b.cells[c.Row][c.Col] = game.Colour(b.toMove)
	b.moveCount++
	b.toMove = b.toMove.Opponent()
	b.last = c
	return true
}

// UndoMove takes back the last move. It returns false if there is nothing to undo.
func (b *Board) UndoMove() bool {
	if b.last.IsNone() {
		return false
	}
	b.cells[b.last.Row][b.last.Col] = game.None
	b.moveCount--
	b.toMove = b.toMove.Opponent()
	b.last = game.NoCell
	return true
}

// Winner is a function of the cells only.
func (b Board) Winner() game.Winner {
	if line, ok := b.WinningLine(); ok {
		if b.Colour(line[0]) == game.Cross {
			return game.CrossWins
		}
		return game.NoughtWins
	}
	for _, row := range b.cells {
		for _, c := range row {
			if c == game.None {
				return game.Ongoing
			}
		}
	}
	return game.Draw
}

// WinningLine returns the first winning triple in scan order.
func (b Board) WinningLine() ([3]game.Cell, bool) {
	for _, l := range lines {
		a := b.Colour(l[0])
		if a != game.None && a == b.Colour(l[1]) && a == b.Colour(l[2]) {
			return l, true
		}
	}
	return [3]game.Cell{}, false
}

// EmptyCells lists the empty cells in row major order.
func (b Board) EmptyCells() []game.Cell {
	retVal := make([]game.Cell, 0, Size*Size-b.moveCount)
	for i, row := range b.cells {
		for j, c := range row {
			if c == game.None {
				retVal = append(retVal, game.Cell{Row: i, Col: j})
			}
		}
	}
	return retVal
}

// Inverted returns a copy of the board with crosses and noughts swapped.
// The player to move and the undoable move are kept.
func (b Board) Inverted() Board {
	for i := range b.cells {
		for j := range b.cells[i] {
			switch b.cells[i][j] {
			case game.Cross:
				b.cells[i][j] = game.Nought
			case game.Nought:
				b.cells[i][j] = game.Cross
			}
		}
	}
	return b
}

// Rotate rotates a grid 90 degrees clockwise.
func Rotate(c Cells) Cells {
	var retVal Cells
	for i := 0; i < Size; i++ {
		for j := 0; j < Size; j++ {
			retVal[j][Size-1-i] = c[i][j]
		}
	}
	return retVal
}
