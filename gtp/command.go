package gtp

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gorgonia/tictactoe"
	"github.com/gorgonia/tictactoe/game"
	"github.com/pkg/errors"
)

type Command interface {
	Do(id int, args []string, e *Engine) (int, string, error)
}

type stdlib func(e *Engine) string

type stdlib2 func(e *Engine, args []string) (string, error)

func (f stdlib) Do(id int, args []string, e *Engine) (int, string, error) {
	str := f(e)
	return id, str, nil
}

func (f stdlib2) Do(id int, args []string, e *Engine) (int, string, error) {
	str, err := f(e, args)
	return id, str, err
}

func protocolVersion(e *Engine) string { return "2" }
func name(e *Engine) string            { return e.name }
func version(e *Engine) string         { return e.version }

func listCommands(e *Engine) string {
	cmds := make([]string, 0, len(e.known))
	for c := range e.known {
		cmds = append(cmds, c)
	}
	sort.Strings(cmds)
	return strings.Join(cmds, "\n")
}

func quit(e *Engine) string       { e.quit = true; return "" }
func clearBoard(e *Engine) string { e.s.NewGame(); return "" }
func showboard(e *Engine) string  { return strings.TrimRight(fmt.Sprintf("\n%v", e.s.Board()), "\n") }

func undo(e *Engine, args []string) (string, error) {
	if !e.s.Undo() {
		return "", errors.New("cannot undo")
	}
	return "", nil
}

func knownCommand(e *Engine, args []string) (string, error) {
	if len(args) == 0 {
		return "", errors.New("Not enough arguments for \"known_command\"")
	}
	if _, ok := e.known[args[0]]; ok {
		return "true", nil
	}
	return "false", nil
}

// toMove checks that the colour argument is the player to move.
func toMove(e *Engine, arg string) error {
	p, err := ParseColour(arg)
	if err != nil {
		return err
	}
	if e.s.Winner().Ended() {
		return errors.New("game is over")
	}
	if b := e.s.Board(); p != b.ToMove() {
		return errors.Errorf("it is %s's turn", b.ToMove())
	}
	return nil
}

func play(e *Engine, args []string) (string, error) {
	if len(args) < 2 {
		return "", errors.New("Not enough arguments for \"play\"")
	}
	if err := toMove(e, args[0]); err != nil {
		return "", err
	}
	c, err := ParseVertex(args[1])
	if err != nil {
		return "", err
	}
	if !e.s.Play(c) {
		return "", errors.New("illegal move")
	}
	return "", nil
}

func genmove(e *Engine, args []string) (string, error) {
	if len(args) == 0 {
		return "", errors.New("Not enough arguments for \"genmove\"")
	}
	if err := toMove(e, args[0]); err != nil {
		return "", err
	}
	c := e.s.PlayAI()
	if c.IsNone() {
		return "", errors.New("Unable to generate a move")
	}
	return Vertex(c), nil
}

func difficulty(e *Engine, args []string) (string, error) {
	if len(args) == 0 {
		return e.s.Difficulty().String(), nil
	}
	d, err := tictactoe.ParseDifficulty(args[0])
	if err != nil {
		return "", err
	}
	if err = e.s.SetDifficulty(d); err != nil {
		return "", err
	}
	return "", nil
}

func firstPlayer(e *Engine, args []string) (string, error) {
	if len(args) == 0 {
		return "", errors.New("Not enough arguments for \"first_player\"")
	}
	p, err := ParseColour(args[0])
	if err != nil {
		return "", err
	}
	return "", e.s.SetFirstPlayer(p)
}

// finalScore reports X+ or O+ for a win and 0 for a draw.
func finalScore(e *Engine, args []string) (string, error) {
	switch w := e.s.Winner(); w {
	case game.Ongoing:
		return "", errors.New("game is not over")
	case game.Draw:
		return "0", nil
	default:
		return fmt.Sprintf("%s+", w.Player()), nil
	}
}

func scoreboard(e *Engine) string {
	sc := e.s.Scores()
	return fmt.Sprintf("X %d O %d draw %d", sc.Cross, sc.Nought, sc.Draws)
}

func StandardLib() map[string]Command {
	return map[string]Command{
		"protocol_version": stdlib(protocolVersion),
		"name":             stdlib(name),
		"version":          stdlib(version),
		"list_commands":    stdlib(listCommands),
		"quit":             stdlib(quit),
		"clear_board":      stdlib(clearBoard),
		"showboard":        stdlib(showboard),
		"scoreboard":       stdlib(scoreboard),

		"known_command": stdlib2(knownCommand),
		"undo":          stdlib2(undo),
		"play":          stdlib2(play),
		"genmove":       stdlib2(genmove),
		"difficulty":    stdlib2(difficulty),
		"first_player":  stdlib2(firstPlayer),
		"final_score":   stdlib2(finalScore),
	}
}
