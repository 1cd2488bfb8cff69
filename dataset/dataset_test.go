package dataset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/gorgonia/tictactoe/game"
	"github.com/gorgonia/tictactoe/game/ttt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	X = game.Cross
	O = game.Nought
	Z = game.None
)

const sample = `x,x,x,x,o,o,x,o,o,positive
x,o,x,x,o,o,o,x,x,negative

b,b,o,x,o,x,o,x,b,negative
`

func TestParse(t *testing.T) {
	entries, err := Parse(strings.NewReader(sample))
	require.NoError(t, err)
	want := []Entry{
		{Cells: ttt.Cells{{X, X, X}, {X, O, O}, {X, O, O}}, Outcome: Positive},
		{Cells: ttt.Cells{{X, O, X}, {X, O, O}, {O, X, X}}, Outcome: Negative},
		{Cells: ttt.Cells{{Z, Z, O}, {X, O, X}, {O, X, Z}}, Outcome: Negative},
	}
	if diff := cmp.Diff(want, entries); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestParseCRLF(t *testing.T) {
	entries, err := Parse(strings.NewReader("b,b,b,b,b,b,b,b,b,positive\r\n"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, Positive, entries[0].Outcome)
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name, input, msg string
	}{
		{"bad cell", "x,x,q,x,o,o,x,o,o,positive\n", `line 1: unknown cell "q" in field 3`},
		{"bad outcome", "x,x,x,x,o,o,x,o,o,positive\nx,x,x,x,o,o,x,o,o,maybe\n", `line 2: unknown outcome "maybe"`},
		{"too few", "x,x,x,x,o,o,x,o,positive\n", "line 1: expected 10 fields. Got 9"},
		{"too many", "x,x,x,x,o,o,x,o,o,b,positive\n", "line 1: expected 10 fields. Got 11"},
		{"upper case", "X,x,x,x,o,o,x,o,o,positive\n", `line 1: unknown cell "X" in field 1`},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			entries, err := Parse(strings.NewReader(c.input))
			require.Error(t, err)
			assert.Nil(t, entries, "no partial dataset on failure")
			assert.Equal(t, c.msg, err.Error())
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	filename := filepath.Join(dir, "ttt.data")
	require.NoError(t, os.WriteFile(filename, []byte(sample), 0644))

	entries, err := Load(filename)
	require.NoError(t, err)
	assert.Len(t, entries, 3)

	_, err = Load(filepath.Join(dir, "missing.data"))
	assert.Error(t, err)
}

func makeEntries(n int) []Entry {
	entries := make([]Entry, n)
	for i := range entries {
		// encode the index in the cells so entries are distinguishable
		for j := 0; j < 9; j++ {
			entries[i].Cells[j/3][j%3] = game.Colour((i >> uint(j)) & 1)
		}
		entries[i].Outcome = Outcome(i % 2)
	}
	return entries
}

func TestShuffle(t *testing.T) {
	a := makeEntries(100)
	b := makeEntries(100)
	Shuffle(a, Seed)
	Shuffle(b, Seed)
	assert.Equal(t, a, b, "same seed, same order")
	assert.NotEqual(t, makeEntries(100), a)

	c := makeEntries(100)
	Shuffle(c, Seed+1)
	assert.NotEqual(t, a, c)

	// a permutation: nothing lost, nothing duplicated
	count := make(map[Entry]int)
	for _, e := range makeEntries(100) {
		count[e]++
	}
	for _, e := range a {
		count[e]--
	}
	for e, n := range count {
		assert.Equal(t, 0, n, "%v", e)
	}

	Shuffle(nil, Seed)
	one := makeEntries(1)
	Shuffle(one, Seed)
	assert.Equal(t, makeEntries(1), one)
}

func TestSplit(t *testing.T) {
	entries := makeEntries(958)
	train, test := Split(entries, TrainRatio)
	assert.Len(t, train, 766)
	assert.Len(t, test, 192)
	assert.Equal(t, entries[766], test[0])

	train, test = Split(entries, 1.5)
	assert.Len(t, train, 958)
	assert.Empty(t, test)

	train, test = Split(nil, TrainRatio)
	assert.Empty(t, train)
	assert.Empty(t, test)
}

func TestAugment(t *testing.T) {
	e := Entry{Cells: ttt.Cells{{X, Z, Z}, {Z, Z, Z}, {Z, Z, O}}, Outcome: Positive}
	aug := Augment([]Entry{e})
	require.Len(t, aug, 4)
	assert.Equal(t, e, aug[0])
	assert.Equal(t, ttt.Cells{{Z, Z, X}, {Z, Z, Z}, {O, Z, Z}}, aug[1].Cells)
	assert.Equal(t, ttt.Cells{{O, Z, Z}, {Z, Z, Z}, {Z, Z, X}}, aug[2].Cells)
	assert.Equal(t, ttt.Cells{{Z, Z, O}, {Z, Z, Z}, {X, Z, Z}}, aug[3].Cells)
	for _, a := range aug {
		assert.Equal(t, Positive, a.Outcome)
	}
}

func TestGenerate(t *testing.T) {
	entries := Generate()
	require.Len(t, entries, 958)

	var pos, draws int
	for _, e := range entries {
		b := ttt.FromCells(e.Cells, ttt.Cross)
		w := b.Winner()
		require.True(t, w.Ended(), "%v", b)
		if e.Outcome == Positive {
			pos++
			assert.Equal(t, game.CrossWins, w)
		}
		if w == game.Draw {
			draws++
		}
	}
	assert.Equal(t, 626, pos)
	assert.Equal(t, 16, draws)
}

func TestWriteParse(t *testing.T) {
	entries, err := Parse(strings.NewReader(sample))
	require.NoError(t, err)

	var buf strings.Builder
	require.NoError(t, Write(&buf, entries))
	assert.Equal(t, strings.Replace(sample, "\n\n", "\n", 1), buf.String())

	filename := filepath.Join(t.TempDir(), "generated.data")
	generated := Generate()
	require.NoError(t, Save(generated, filename))
	loaded, err := Load(filename)
	require.NoError(t, err)
	if diff := cmp.Diff(generated, loaded); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}
