package game

import (
	"fmt"
)

type Colour int32

// The numeric values double as the cell state index of a learned model.
const (
	None Colour = iota
	Cross
	Nought
)

func (cl Colour) Format(s fmt.State, c rune) {
	switch c {
	case 'v': // used in debug
		switch cl {
		case None:
			fmt.Fprint(s, "None")
		case Cross:
			fmt.Fprint(s, "Cross")
		case Nought:
			fmt.Fprint(s, "Nought")
		}
	case 's': // used in board games
		switch cl {
		case None:
			fmt.Fprint(s, "·")
		case Cross:
			fmt.Fprint(s, "X")
		case Nought:
			fmt.Fprint(s, "O")
		}
	}
}

// Player represents a player. It's also a colour.
type Player Colour

func (p Player) Format(s fmt.State, c rune) { Colour(p).Format(s, c) }

// Opponent returns the other player. None has no opponent and is returned as is.
func (p Player) Opponent() Player {
	switch Colour(p) {
	case Cross:
		return Player(Nought)
	case Nought:
		return Player(Cross)
	}
	return p
}

// Cell represents a (row, col) coordinate.
//
// The Cell uses standard computer cartesian coordinates
//		- (0, 0) represents the top left
//		- (2, 2) represents the bottom right
//		- (-1, -1) represents "no move"
type Cell struct {
	Row, Col int
}

// NoCell is returned by move generators when there is no legal move.
var NoCell = Cell{-1, -1}

// IsNone returns true when the cell is the "no move" sentinel
func (c Cell) IsNone() bool { return c == NoCell }

// Valid returns true if the cell is within a size x size board
func (c Cell) Valid(size int) bool {
	return c.Row >= 0 && c.Row < size && c.Col >= 0 && c.Col < size
}

func (c Cell) Format(s fmt.State, r rune) {
	if c.IsNone() {
		fmt.Fprint(s, "none")
		return
	}
	fmt.Fprintf(s, "(%d, %d)", c.Row, c.Col)
}

// Winner is the derived status of a board.
type Winner int

const (
	Ongoing Winner = iota
	CrossWins
	NoughtWins
	Draw
)

func (w Winner) String() string {
	switch w {
	case Ongoing:
		return "Ongoing"
	case CrossWins:
		return "X wins"
	case NoughtWins:
		return "O wins"
	case Draw:
		return "Draw"
	}
	return fmt.Sprintf("Winner(%d)", int(w))
}

// Ended returns true if the game is over
func (w Winner) Ended() bool { return w != Ongoing }

// Player returns the winning player. Draws and ongoing games return None.
func (w Winner) Player() Player {
	switch w {
	case CrossWins:
		return Player(Cross)
	case NoughtWins:
		return Player(Nought)
	}
	return Player(None)
}

// PlayerMove is a tuple indicating the player and the move to be made.
type PlayerMove struct {
	Player
	Cell
}

// Eq returns true if both are equal
func (p PlayerMove) Eq(other PlayerMove) bool {
	return p.Player == other.Player && p.Cell == other.Cell
}

func (p PlayerMove) Format(s fmt.State, c rune) { fmt.Fprintf(s, "%v@%v", p.Player, p.Cell) }

// Zobrist is the hash of a board. Only the name is borrowed from Go and chess engines.
type Zobrist uint32

// State is the read only view of a game that renderers and spectators need.
type State interface {
	Colour(c Cell) Colour
	ToMove() Player
	MoveNumber() int
	LastMove() PlayerMove
	Winner() Winner
	fmt.Formatter
}

// MetaState is a State along with where it came from.
type MetaState interface {
	Name() string    // name of the match
	GameNumber() int // which game is this
	State() State
}
