package gif

import (
	"bytes"
	"image/gif"
	"math/rand"
	"testing"

	"github.com/gorgonia/tictactoe"
	"github.com/gorgonia/tictactoe/game"
	"github.com/gorgonia/tictactoe/game/ttt"
	"github.com/gorgonia/tictactoe/minimax"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncoder(t *testing.T) {
	r := rand.New(rand.NewSource(1337))
	arena := tictactoe.NewArena(tictactoe.RandomStrategy{R: r}, tictactoe.MinimaxStrategy{Config: minimax.Perfect()}, "", zerolog.Nop())

	var buf bytes.Buffer
	enc := NewGifEncoder(300, 500)
	enc.Writer = &buf
	_, err := arena.Play(ttt.Cross, ttt.Cross, enc)
	require.NoError(t, err)

	moves := arena.Board().MoveNumber()
	assert.Equal(t, moves+1, enc.Frames())
	require.NoError(t, enc.Flush())

	g, err := gif.DecodeAll(&buf)
	require.NoError(t, err)
	require.Len(t, g.Image, moves+1)
	assert.Equal(t, endDelay, g.Delay[len(g.Delay)-1])
	assert.Equal(t, 0, g.Delay[0])
	for _, im := range g.Image {
		assert.Equal(t, enc.W, im.Bounds().Dx())
		assert.Equal(t, enc.H, im.Bounds().Dy())
	}
	assert.True(t, enc.W <= 500 && enc.H <= 300)
}

func TestFlushErrors(t *testing.T) {
	enc := NewGifEncoder(100, 100)
	assert.Error(t, enc.Flush())
	enc.Writer = new(bytes.Buffer)
	assert.Error(t, enc.Flush())
}

type position struct{ b ttt.Board }

func (p position) Name() string      { return "X vs O" }
func (p position) GameNumber() int   { return 1 }
func (p position) State() game.State { return p.b }

func TestWinningLineShaded(t *testing.T) {
	const X, O, Z = game.Cross, game.Nought, game.None
	b := ttt.FromCells(ttt.Cells{
		{X, O, Z},
		{O, X, Z},
		{Z, Z, X},
	}, ttt.Nought)
	require.Equal(t, game.CrossWins, b.Winner())

	var buf bytes.Buffer
	enc := NewGifEncoder(300, 500)
	enc.Writer = &buf
	require.NoError(t, enc.Encode(position{b}))
	require.NoError(t, enc.Flush())

	g, err := gif.DecodeAll(&buf)
	require.NoError(t, err)
	require.Len(t, g.Image, 1)
	im := g.Image[0]
	at := func(c game.Cell) uint8 {
		r := enc.cellRect(c)
		return im.ColorIndexAt(r.Min.X+3, r.Min.Y+3)
	}
	for i := 0; i < 3; i++ {
		assert.Equal(t, hlIdx, at(game.Cell{Row: i, Col: i}))
	}
	assert.Equal(t, bgIdx, at(game.Cell{Row: 0, Col: 2}))
	assert.Equal(t, bgIdx, at(game.Cell{Row: 0, Col: 1}))
	assert.Equal(t, endDelay, g.Delay[0])
}
