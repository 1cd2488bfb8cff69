package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gorgonia/tictactoe/bayes"
	"github.com/gorgonia/tictactoe/game"
	"github.com/gorgonia/tictactoe/game/ttt"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEnv(t *testing.T, stdin string) (env, *strings.Builder) {
	dir := t.TempDir()
	out := new(strings.Builder)
	return env{
		stdin:   strings.NewReader(stdin),
		stdout:  out,
		logger:  zerolog.Nop(),
		dataset: filepath.Join(dir, "dataset", "tic-tac-toe.data"),
		model:   filepath.Join(dir, "model", "naive_bayes.bin"),
	}, out
}

func TestPipeline(t *testing.T) {
	e, out := testEnv(t, "")
	require.NoError(t, run(e, []string{"gen"}))
	require.NoError(t, run(e, []string{"train"}))
	m, err := bayes.Load(e.model)
	require.NoError(t, err)
	require.NoError(t, m.Validate())

	require.NoError(t, run(e, []string{"stats"}))
	assert.Contains(t, out.String(), "===== Confusion Matrix =====")
	assert.Contains(t, out.String(), "F1 Score: ")

	out.Reset()
	require.NoError(t, run(e, []string{"winrate", "-episodes", "20"}))
	assert.Contains(t, out.String(), "Minimax Perfect: win rate results after 20 episodes")
	assert.Contains(t, out.String(), "Naive Bayes: win rate results after 20 episodes")

	out.Reset()
	csvPath := filepath.Join(t.TempDir(), "bench.csv")
	require.NoError(t, run(e, []string{"bench", "-runs", "20", "-workers", "2", "-csv", csvPath}))
	for _, name := range []string{"Random", "Minimax Perfect", "Minimax Handicap", "Naive Bayes"} {
		assert.Contains(t, out.String(), name)
	}
	_, err = os.Stat(csvPath)
	assert.NoError(t, err)

	out.Reset()
	require.NoError(t, run(e, []string{"replay", "-x", "bayes", "-o", "handicap"}))
	assert.Contains(t, out.String(), "Naive Bayes vs Minimax Handicap, move 0")

	gifPath := filepath.Join(t.TempDir(), "replay.gif")
	require.NoError(t, run(e, []string{"replay", "-gif", gifPath}))
	fi, err := os.Stat(gifPath)
	require.NoError(t, err)
	assert.NotZero(t, fi.Size())
}

func TestTrainAugment(t *testing.T) {
	e, _ := testEnv(t, "")
	require.NoError(t, run(e, []string{"gen"}))
	require.NoError(t, run(e, []string{"train", "-augment", "-alpha", "0.5"}))
	_, err := bayes.Load(e.model)
	assert.NoError(t, err)
}

func TestDot(t *testing.T) {
	e, out := testEnv(t, "")
	require.NoError(t, run(e, []string{"dot", "-board", "xx.oo....", "-max", "50"}))
	assert.Contains(t, out.String(), "digraph G")

	assert.Error(t, run(e, []string{"dot", "-board", "xxx"}))
	assert.Error(t, run(e, []string{"dot", "-max", "0"}))
}

func TestParseBoard(t *testing.T) {
	b, err := parseBoard("x.. .o. ..x")
	require.NoError(t, err)
	assert.Equal(t, ttt.Nought, b.ToMove())
	assert.Equal(t, 3, b.MoveNumber())
	assert.Equal(t, game.Cross, b.Colour(game.Cell{Row: 2, Col: 2}))

	b, err = parseBoard("X-O------")
	require.NoError(t, err)
	assert.Equal(t, ttt.Cross, b.ToMove())

	for _, bad := range []string{"", "xxxxxxxxx", "ooo......", "x.......?"} {
		_, err := parseBoard(bad)
		assert.Error(t, err, bad)
	}
}

func TestGTP(t *testing.T) {
	e, out := testEnv(t, "name\ndifficulty easy\nplay x b2\ngenmove o\nquit\n")
	require.NoError(t, run(e, []string{"gtp"}))
	resps := strings.Split(strings.TrimSuffix(out.String(), "\n\n"), "\n\n")
	require.Len(t, resps, 5)
	assert.Equal(t, "= tictactoe", resps[0])
	assert.Equal(t, "= ", resps[1])
	assert.Equal(t, "= ", resps[2])
	assert.Regexp(t, `^= [abc][123]$`, resps[3])
	assert.Equal(t, "= ", resps[4])

	// medium needs a model
	e, _ = testEnv(t, "")
	assert.Error(t, run(e, []string{"gtp", "-difficulty", "medium"}))
}

func TestErrors(t *testing.T) {
	e, out := testEnv(t, "")
	assert.Error(t, run(e, nil))
	assert.Contains(t, out.String(), "Usage: tictactoe")
	assert.Error(t, run(e, []string{"fly"}))
	assert.Error(t, run(e, []string{"train", "extra"}))
	assert.Error(t, run(e, []string{"train"}), "no dataset")
	assert.Error(t, run(e, []string{"stats"}), "no dataset")
	assert.Error(t, run(e, []string{"winrate"}), "no model")
	assert.Error(t, run(e, []string{"replay", "-x", "bayes"}), "no model")
	assert.Error(t, run(e, []string{"replay", "-x", "deep-blue"}))
	assert.Error(t, run(e, []string{"bench", "-config", "missing.yaml"}))
}
