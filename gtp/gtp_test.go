package gtp

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/gorgonia/tictactoe"
	"github.com/gorgonia/tictactoe/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSession() *tictactoe.Session {
	return tictactoe.NewSession(nil, rand.New(rand.NewSource(1337)))
}

func Test_General(t *testing.T) {
	assert := assert.New(t)
	e := New(newSession(), "xx", "1", nil)
	var x string

	ch, ret := e.Start()
	ch <- "version"
	x = <-ret
	assert.Equal("= 1\n\n", x)

	ch <- "known_command hello"
	x = <-ret
	assert.Equal("= false\n\n", x)

	ch <- "known_command name"
	x = <-ret
	assert.Equal("= true\n\n", x)

	ch <- "completelyUnheardOfCommand xxx"
	x = <-ret
	assert.Equal("? Unknown command \"completelyunheardofcommand\"\n\n", x)

	ch <- "12 protocol_version"
	x = <-ret
	assert.Equal("= 12 2\n\n", x)

	ch <- "quit"
	x = <-ret
	assert.Equal("= \n\n", x)
	_, ok := <-ret
	assert.False(ok, "output is closed after quit")
}

func TestPlay(t *testing.T) {
	e := New(newSession(), "tictactoe", "1", nil)
	cases := []struct {
		cmd, resp string
	}{
		{"1 play x a1", "= 1 \n\n"},
		{"2 play x b1", "? 2 it is O's turn\n\n"},
		{"3 play o a1", "? 3 illegal move\n\n"},
		{"4 play o d4", "? 4 invalid vertex \"d4\"\n\n"},
		{"5 play o", "? 5 Not enough arguments for \"play\"\n\n"},
		{"play o b2", "= \n\n"},
		{"play x b1", "= \n\n"},
		{"undo", "= \n\n"},
		{"undo", "? cannot undo\n\n"},
		{"play x c1", "= \n\n"},
		{"final_score", "? game is not over\n\n"},
		{"play o a2", "= \n\n"},
		{"play x b1", "= \n\n"},
		{"final_score", "= X+\n\n"},
		{"scoreboard", "= X 1 O 0 draw 0\n\n"},
		{"play o c3", "? game is over\n\n"},
		{"showboard", "= \n⎢ X X X ⎥\n⎢ O O · ⎥\n⎢ · · · ⎥\n\n"},
		{"clear_board", "= \n\n"},
		{"showboard", "= \n⎢ · · · ⎥\n⎢ · · · ⎥\n⎢ · · · ⎥\n\n"},
		{"# just a comment", ""},
		{"", ""},
	}
	for _, c := range cases {
		resp, ok := e.Do(c.cmd)
		if c.resp == "" {
			assert.False(t, ok, c.cmd)
			continue
		}
		assert.True(t, ok, c.cmd)
		assert.Equal(t, c.resp, resp, c.cmd)
	}
}

func TestGenmove(t *testing.T) {
	e := New(newSession(), "tictactoe", "1", nil)
	for _, cmd := range []string{"difficulty hard", "first_player o"} {
		resp, _ := e.Do(cmd)
		require.Equal(t, "= \n\n", resp, cmd)
	}
	resp, _ := e.Do("difficulty")
	assert.Equal(t, "= hard\n\n", resp)
	resp, _ = e.Do("difficulty medium")
	assert.Equal(t, "? the medium difficulty requires a Naive Bayes model\n\n", resp)

	resp, _ = e.Do("genmove x")
	assert.Equal(t, "? it is O's turn\n\n", resp)

	colours := []string{"o", "x"}
	for i := 0; !e.Session().Winner().Ended(); i++ {
		resp, _ = e.Do("genmove " + colours[i%2])
		require.True(t, strings.HasPrefix(resp, "= "), resp)
		c, err := ParseVertex(strings.TrimSpace(strings.TrimPrefix(resp, "= ")))
		require.NoError(t, err)
		assert.Equal(t, c, e.Session().Board().LastMove().Cell)
	}
	resp, _ = e.Do("final_score")
	assert.Contains(t, []string{"= X+\n\n", "= O+\n\n", "= 0\n\n"}, resp)
}

func TestRun(t *testing.T) {
	e := New(newSession(), "tictactoe", "1", nil)
	in := strings.NewReader("name\n\nplay x b2\nquit\nname\n")
	var out strings.Builder
	require.NoError(t, e.Run(in, &out))
	assert.Equal(t, "= tictactoe\n\n= \n\n= \n\n", out.String())
}

func TestVertex(t *testing.T) {
	c, err := ParseVertex("a1")
	require.NoError(t, err)
	assert.Equal(t, game.Cell{Row: 0, Col: 0}, c)
	c, err = ParseVertex("c2")
	require.NoError(t, err)
	assert.Equal(t, game.Cell{Row: 1, Col: 2}, c)
	assert.Equal(t, "c2", Vertex(c))
	assert.Equal(t, "pass", Vertex(game.NoCell))

	for _, bad := range []string{"", "a", "a0", "d1", "a4", "1a", "b22"} {
		_, err := ParseVertex(bad)
		assert.Error(t, err, bad)
	}
}

func TestListCommands(t *testing.T) {
	e := New(newSession(), "tictactoe", "1", nil)
	resp, _ := e.Do("list_commands")
	lines := strings.Split(strings.TrimSpace(strings.TrimPrefix(resp, "=")), "\n")
	assert.Len(t, lines, len(StandardLib()))
	assert.Equal(t, "clear_board", lines[0])
}
