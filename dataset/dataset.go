// Package dataset reads labelled tic-tac-toe positions.
//
// A record is one line: nine cells (x, o or b for blank) in row major order,
// followed by the outcome for X (positive or negative).
//
//	x,x,x,x,o,o,x,o,o,positive
package dataset

import (
	"bufio"
	"io"
	"math/rand"
	"os"
	"strings"

	"github.com/gorgonia/tictactoe/game"
	"github.com/gorgonia/tictactoe/game/ttt"
	"github.com/pkg/errors"
)

const (
	// Seed makes the train/test split reproducible.
	Seed = 1234
	// TrainRatio is the fraction of a shuffled dataset used for training.
	TrainRatio = 0.8

	fields = ttt.Size*ttt.Size + 1
)

// Outcome is the label of a position.
type Outcome int

const (
	Negative Outcome = iota // loss or draw for X
	Positive                // win for X
)

// Outcomes is the number of distinct labels.
const Outcomes = 2

func (o Outcome) String() string {
	switch o {
	case Negative:
		return "negative"
	case Positive:
		return "positive"
	}
	return "unknown"
}

// Entry is a labelled position.
type Entry struct {
	Cells   ttt.Cells
	Outcome Outcome
}

// Load parses the dataset at filename.
func Load(filename string) ([]Entry, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer f.Close()

	entries, err := Parse(f)
	if err != nil {
		return nil, errors.WithMessage(err, filename)
	}
	return entries, nil
}

// Parse reads records until EOF. Any malformed record fails the whole parse.
// Blank lines are skipped.
func Parse(r io.Reader) ([]Entry, error) {
	var entries []Entry
	s := bufio.NewScanner(r)
	var lineNum int
	for s.Scan() {
		lineNum++
		line := strings.TrimSpace(s.Text())
		if line == "" {
			continue
		}
		e, err := parseLine(line)
		if err != nil {
			return nil, errors.WithMessagef(err, "line %d", lineNum)
		}
		entries = append(entries, e)
	}
	if err := s.Err(); err != nil {
		return nil, errors.WithStack(err)
	}
	return entries, nil
}

func parseLine(line string) (e Entry, err error) {
	tokens := strings.Split(line, ",")
	if len(tokens) != fields {
		return e, errors.Errorf("expected %d fields. Got %d", fields, len(tokens))
	}
	for i, tok := range tokens[:fields-1] {
		var c game.Colour
		switch tok {
		case "x":
			c = game.Cross
		case "o":
			c = game.Nought
		case "b":
			c = game.None
		default:
			return e, errors.Errorf("unknown cell %q in field %d", tok, i+1)
		}
		e.Cells[i/ttt.Size][i%ttt.Size] = c
	}
	switch tok := tokens[fields-1]; tok {
	case "positive":
		e.Outcome = Positive
	case "negative":
		e.Outcome = Negative
	default:
		return e, errors.Errorf("unknown outcome %q", tok)
	}
	return e, nil
}

// Shuffle shuffles the entries in place with a Fisher-Yates shuffle driven by seed.
func Shuffle(entries []Entry, seed int64) {
	r := rand.New(rand.NewSource(seed))
	for i := len(entries) - 1; i > 0; i-- {
		j := r.Intn(i + 1)
		entries[i], entries[j] = entries[j], entries[i]
	}
}

// Split returns the first floor(len*ratio) entries for training and the rest for testing.
// Both slices share the backing array of entries.
func Split(entries []Entry, ratio float64) (train, test []Entry) {
	n := int(float64(len(entries)) * ratio)
	switch {
	case n < 0:
		n = 0
	case n > len(entries):
		n = len(entries)
	}
	return entries[:n], entries[n:]
}

// Augment returns the entries followed by their three rotations.
func Augment(entries []Entry) []Entry {
	retVal := make([]Entry, 0, 4*len(entries))
	retVal = append(retVal, entries...)
	for _, e := range entries {
		c := e.Cells
		for i := 0; i < 3; i++ {
			c = ttt.Rotate(c)
			retVal = append(retVal, Entry{Cells: c, Outcome: e.Outcome})
		}
	}
	return retVal
}
