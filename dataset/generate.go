package dataset

import (
	"bufio"
	"io"
	"os"

	"github.com/gorgonia/tictactoe/game"
	"github.com/gorgonia/tictactoe/game/ttt"
	"github.com/pkg/errors"
)

// Generate enumerates every distinct final position of games where X moves first.
// A position is positive if X has won. Positions are listed in the order a depth
// first search in row major order first reaches them.
//
// This yields the 958 positions of the UCI endgame corpus.
func Generate() []Entry {
	seen := make(map[ttt.Cells]struct{})
	var retVal []Entry
	var walk func(b ttt.Board)
	walk = func(b ttt.Board) {
		if w := b.Winner(); w.Ended() {
			cells := b.Cells()
			if _, ok := seen[cells]; ok {
				return
			}
			seen[cells] = struct{}{}
			e := Entry{Cells: cells, Outcome: Negative}
			if w == game.CrossWins {
				e.Outcome = Positive
			}
			retVal = append(retVal, e)
			return
		}
		for _, m := range b.EmptyCells() {
			next := b
			next.MakeMove(m)
			walk(next)
		}
	}
	walk(ttt.New(ttt.Cross))
	return retVal
}

var tokens = [...]string{game.None: "b", game.Cross: "x", game.Nought: "o"}

// Write writes entries in the format read by Parse.
func Write(w io.Writer, entries []Entry) error {
	bw := bufio.NewWriter(w)
	for _, e := range entries {
		for r := range e.Cells {
			for c := range e.Cells[r] {
				bw.WriteString(tokens[e.Cells[r][c]])
				bw.WriteByte(',')
			}
		}
		bw.WriteString(e.Outcome.String())
		bw.WriteByte('\n')
	}
	return errors.WithStack(bw.Flush())
}

// Save writes entries to filename.
func Save(entries []Entry, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return errors.WithStack(err)
	}
	if err := Write(f, entries); err != nil {
		f.Close()
		return err
	}
	return errors.WithStack(f.Close())
}
