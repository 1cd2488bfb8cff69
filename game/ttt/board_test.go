package ttt

import (
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/gorgonia/tictactoe/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	X = game.Cross
	O = game.Nought
	Z = game.None
)

func TestTicTacToe(t *testing.T) {
	b := FromCells(Cells{
		{X, O, X},
		{O, X, O},
		{O, O, X},
	}, Nought)
	if w := b.Winner(); w != game.CrossWins {
		t.Errorf("expected X to be winner. Got %v", w)
	}

	b = FromCells(Cells{
		{X, O, O},
		{X, O, X},
		{O, X, X},
	}, Cross)
	if w := b.Winner(); w != game.NoughtWins {
		t.Errorf("expected O to be winner. Got %v", w)
	}

	b = FromCells(Cells{
		{X, O, X},
		{X, O, O},
		{O, X, X},
	}, Nought)
	if w := b.Winner(); w != game.Draw {
		t.Errorf("expected a draw. Got %v", w)
	}
}

func TestWinningLine(t *testing.T) {
	b := FromCells(Cells{
		{O, Z, X},
		{Z, Z, X},
		{Z, O, X},
	}, Nought)
	line, ok := b.WinningLine()
	require.True(t, ok)
	assert.Equal(t, [3]game.Cell{{0, 2}, {1, 2}, {2, 2}}, line)

	b = FromCells(Cells{
		{O, Z, X},
		{X, O, X},
		{O, Z, O},
	}, Cross)
	line, ok = b.WinningLine()
	require.True(t, ok)
	assert.Equal(t, [3]game.Cell{{0, 0}, {1, 1}, {2, 2}}, line)

	_, ok = New(Cross).WinningLine()
	assert.False(t, ok)
}

func TestEmptyBoard(t *testing.T) {
	b := New(Cross)
	require.True(t, b.MakeMove(game.Cell{1, 1}))
	assert.Equal(t, game.Ongoing, b.Winner())
	assert.Equal(t, 1, b.MoveNumber())
	assert.Equal(t, Nought, b.ToMove())
	assert.Equal(t, game.PlayerMove{Cross, game.Cell{1, 1}}, b.LastMove())
}

func TestMakeMoveRejects(t *testing.T) {
	b := New(Cross)
	require.True(t, b.MakeMove(game.Cell{0, 0}))
	before := b

	for _, c := range []game.Cell{{0, 0}, {-1, 0}, {0, 3}, {3, 3}, game.NoCell} {
		assert.False(t, b.MakeMove(c), "move %v", c)
		if diff := cmp.Diff(before, b, cmp.AllowUnexported(Board{})); diff != "" {
			t.Errorf("board changed after rejected move %v (-want +got):\n%s", c, diff)
		}
	}
}

func TestUndoMove(t *testing.T) {
	b := New(Nought)
	assert.False(t, b.UndoMove(), "nothing to undo on a fresh board")

	require.True(t, b.MakeMove(game.Cell{0, 1}))
	before := b
	require.True(t, b.MakeMove(game.Cell{2, 2}))
	require.True(t, b.UndoMove())
	if diff := cmp.Diff(before, b, cmp.AllowUnexported(Board{})); diff != "" {
		t.Errorf("undo did not restore the board (-want +got):\n%s", diff)
	}
	assert.Equal(t, game.NoCell, b.LastMove().Cell)
	assert.False(t, b.UndoMove(), "only one level of history is kept")
	assert.Equal(t, 1, b.MoveNumber())
}

func TestUndoRestoresExactly(t *testing.T) {
	b := New(Cross)
	require.True(t, b.MakeMove(game.Cell{1, 1}))
	require.True(t, b.MakeMove(game.Cell{0, 0}))
	require.True(t, b.UndoMove())
	// last move is now the sentinel, so the snapshot is taken here
	snapshot := b
	require.True(t, b.MakeMove(game.Cell{2, 0}))
	require.True(t, b.UndoMove())
	if diff := cmp.Diff(snapshot, b, cmp.AllowUnexported(Board{})); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

// walk visits every position reachable from b, stopping at finished games.
func walk(b Board, fn func(Board)) {
	fn(b)
	if b.Winner().Ended() {
		return
	}
	for _, c := range b.EmptyCells() {
		next := b
		next.MakeMove(c)
		walk(next, fn)
	}
}

func TestReachableInvariants(t *testing.T) {
	for _, start := range []game.Player{Cross, Nought} {
		var count int
		walk(New(start), func(b Board) {
			count++
			var occupied int
			for _, row := range b.Cells() {
				for _, c := range row {
					if c != game.None {
						occupied++
					}
				}
			}
			if occupied != b.MoveNumber() {
				t.Fatalf("move count %d, occupied %d\n%v", b.MoveNumber(), occupied, b)
			}
			want := start
			if b.MoveNumber()%2 == 1 {
				want = start.Opponent()
			}
			if b.ToMove() != want {
				t.Fatalf("expected %v to move\n%v", want, b)
			}
		})
		// 549946 nodes in the complete game tree including the root
		assert.Equal(t, 549946, count)
	}
}

func TestWinnerIgnoresHistory(t *testing.T) {
	a := New(Cross)
	for _, c := range []game.Cell{{0, 0}, {1, 0}, {0, 1}, {1, 1}, {0, 2}} {
		require.True(t, a.MakeMove(c))
	}
	b := New(Cross)
	for _, c := range []game.Cell{{0, 2}, {1, 1}, {0, 0}, {1, 0}, {0, 1}} {
		require.True(t, b.MakeMove(c))
	}
	assert.Equal(t, a.Cells(), b.Cells())
	assert.Equal(t, a.Winner(), b.Winner())
	assert.Equal(t, game.CrossWins, a.Winner())
	assert.Equal(t, a.Hash(), b.Hash())
}

func TestRandomMove(t *testing.T) {
	r := rand.New(rand.NewSource(1337))
	b := FromCells(Cells{
		{X, O, X},
		{Z, O, O},
		{O, X, Z},
	}, Cross)
	seen := make(map[game.Cell]int)
	for i := 0; i < 200; i++ {
		seen[RandomMove(b, r)]++
	}
	assert.Len(t, seen, 2)
	assert.Contains(t, seen, game.Cell{1, 0})
	assert.Contains(t, seen, game.Cell{2, 2})

	full := FromCells(Cells{
		{X, O, X},
		{X, O, O},
		{O, X, X},
	}, Nought)
	assert.Equal(t, game.NoCell, RandomMove(full, r))
}

func TestInverted(t *testing.T) {
	b := FromCells(Cells{
		{X, O, Z},
		{Z, X, Z},
		{Z, Z, O},
	}, Cross)
	inv := b.Inverted()
	assert.Equal(t, Cells{
		{O, X, Z},
		{Z, O, Z},
		{Z, Z, X},
	}, inv.Cells())
	assert.Equal(t, b.ToMove(), inv.ToMove())
	assert.Equal(t, b.Cells(), inv.Inverted().Cells())
}

func TestRotate(t *testing.T) {
	// ⎢ O · X ⎥
	// ⎢ · O · ⎥ // this line is to break rotational symmetry
	// ⎢ X · · ⎥
	c := Cells{
		{O, Z, X},
		{Z, O, Z},
		{X, Z, Z},
	}
	rot1 := Rotate(c)
	assert.Equal(t, Cells{
		{X, Z, O},
		{Z, O, Z},
		{Z, Z, X},
	}, rot1)
	assert.Equal(t, c, Rotate(Rotate(Rotate(rot1))), "After 4 rotations the board should be the same")
}
