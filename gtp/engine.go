// Package gtp drives a tic-tac-toe session with a line protocol modelled on the
// Go Text Protocol.
//
// Vertices are written as a column letter and a row number counted from the top:
// a1 is the top left corner and c3 the bottom right.
package gtp

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gorgonia/tictactoe"
	"github.com/gorgonia/tictactoe/game"
	"github.com/gorgonia/tictactoe/game/ttt"
	"github.com/pkg/errors"
)

type Engine struct {
	s *tictactoe.Session

	known map[string]Command

	ch   chan string
	ret  chan string
	quit bool

	name, version string
}

// New creates an engine. If known is nil, StandardLib is used.
func New(s *tictactoe.Session, name, version string, known map[string]Command) *Engine {
	if known == nil {
		known = StandardLib()
	}
	return &Engine{
		s:       s,
		known:   known,
		name:    name,
		version: version,
	}
}

// Start starts the engine. Every command sent on input is answered on output.
// After a quit command has been answered, output is closed and input is no longer read.
func (e *Engine) Start() (input chan<- string, output <-chan string) {
	e.ch = make(chan string)
	e.ret = make(chan string)
	go e.start()
	return e.ch, e.ret
}

// Run reads commands from r and writes the responses to w until quit or EOF.
func (e *Engine) Run(r io.Reader, w io.Writer) error {
	s := bufio.NewScanner(r)
	for !e.quit && s.Scan() {
		resp, ok := e.Do(s.Text())
		if !ok {
			continue
		}
		if _, err := io.WriteString(w, resp); err != nil {
			return errors.WithStack(err)
		}
	}
	return errors.WithStack(s.Err())
}

func (e *Engine) Session() *tictactoe.Session { return e.s }

func (e *Engine) start() {
	defer close(e.ret)
	for cmd := range e.ch {
		resp, ok := e.Do(cmd)
		if !ok {
			continue
		}
		e.ret <- resp
		if e.quit {
			return
		}
	}
}

// Do executes one command line and returns the response. Empty lines and
// comments get no response.
func (e *Engine) Do(cmd string) (resp string, ok bool) {
	id, x, args, err := e.parse(cmd)
	if x == nil && err == nil {
		return "", false
	}
	if err != nil {
		return handleErr(id, err), true
	}
	id, result, err := x.Do(id, args, e)
	return handleResult(id, result, err), true
}

// refer to this
// https://www.lysator.liu.se/%7Egunnar/gtp/gtp2-spec-draft2/gtp2-spec.html#SECTION00030000000000000000
func (e *Engine) parse(cmd string) (id int, x Command, args []string, err error) {
	cmd = preprocess(cmd)
	tokens := strings.Fields(cmd)
	id = -1
	if len(tokens) == 0 {
		return id, nil, nil, nil
	}
	if i, err := strconv.Atoi(tokens[0]); err == nil {
		// we've consumed ID
		id = i
		tokens = tokens[1:]
	}

	if len(tokens) == 0 {
		return id, nil, nil, nil // GNUGo some how does nothing when there are no tokens left. An ID may be passed in but it'll be ignored
	}

	var ok bool
	if x, ok = e.known[tokens[0]]; !ok {
		return id, nil, nil, errors.Errorf("Unknown command %q", tokens[0])
	}
	if len(tokens) > 1 {
		args = tokens[1:]
	}
	return
}

func preprocess(a string) string {
	if i := strings.IndexByte(a, '#'); i >= 0 {
		a = a[:i]
	}
	return strings.ToLower(strings.TrimSpace(a))
}

func handleErr(id int, err error) string {
	if id != -1 {
		return fmt.Sprintf("? %d %v\n\n", id, err)
	}
	return fmt.Sprintf("? %v\n\n", err)
}

func handleResult(id int, result string, err error) string {
	if err != nil {
		return handleErr(id, err)
	}

	if id != -1 {
		return fmt.Sprintf("= %d %v\n\n", id, result)
	}
	return fmt.Sprintf("= %v\n\n", result)
}

// ParseVertex parses a vertex such as "b2".
func ParseVertex(v string) (game.Cell, error) {
	if len(v) != 2 {
		return game.NoCell, errors.Errorf("invalid vertex %q", v)
	}
	c := game.Cell{Row: int(v[1] - '1'), Col: int(v[0] - 'a')}
	if !c.Valid(ttt.Size) {
		return game.NoCell, errors.Errorf("invalid vertex %q", v)
	}
	return c, nil
}

// Vertex is the inverse of ParseVertex.
func Vertex(c game.Cell) string {
	if !c.Valid(ttt.Size) {
		return "pass"
	}
	return string([]byte{byte('a' + c.Col), byte('1' + c.Row)})
}

// ParseColour parses x, o, cross or nought.
func ParseColour(s string) (game.Player, error) {
	switch s {
	case "x", "cross":
		return ttt.Cross, nil
	case "o", "nought":
		return ttt.Nought, nil
	}
	return game.Player(game.None), errors.Errorf("invalid colour %q", s)
}
