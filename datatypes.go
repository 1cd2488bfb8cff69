package tictactoe

import (
	"fmt"

	"github.com/gorgonia/tictactoe/game"
	"github.com/gorgonia/tictactoe/game/ttt"
	"github.com/gorgonia/tictactoe/minimax"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// Config configures a benchmark.
type Config struct {
	Runs       int            `yaml:"runs"`    // games per strategy, for each of the win and latency phases
	Seed       int64          `yaml:"seed"`    // base seed. Every worker derives its own from it
	Workers    int            `yaml:"workers"` // workers per strategy
	Strategies []Kind         `yaml:"strategies"`
	Handicap   minimax.Config `yaml:"handicap"` // used by MinimaxHandicap

	Logger zerolog.Logger `yaml:"-"`
}

// DefaultConfig benchmarks every strategy over 1000 games.
func DefaultConfig() Config {
	return Config{
		Runs:       1000,
		Seed:       1337,
		Workers:    1,
		Strategies: []Kind{Random, MinimaxPerfect, MinimaxHandicap, NaiveBayes},
		Handicap:   minimax.Handicap(),
		Logger:     zerolog.Nop(),
	}
}

func (conf Config) IsValid() bool {
	return conf.Runs >= 1 &&
		conf.Workers >= 1 &&
		conf.Workers <= conf.Runs &&
		len(conf.Strategies) > 0 &&
		conf.Handicap.MaxDepth >= 0 &&
		conf.Handicap.Samples >= 0
}

// Strategy picks moves for the player to move.
type Strategy interface {
	Name() string
	// Move returns the chosen move, or game.NoCell if there is no legal move.
	Move(b ttt.Board) game.Cell
}

// OutputEncoder encodes the state of a match as whatever.
//
// An example OutputEncoder is the GifEncoder. Another example would be a websocket spectator.
type OutputEncoder interface {
	Encode(ms game.MetaState) error
	Flush() error
}

// Kind enumerates the built in strategies.
type Kind int

const (
	Random Kind = iota
	MinimaxPerfect
	MinimaxHandicap
	NaiveBayes
	MAXKIND
)

func (k Kind) String() string {
	switch k {
	case Random:
		return "Random"
	case MinimaxPerfect:
		return "Minimax Perfect"
	case MinimaxHandicap:
		return "Minimax Handicap"
	case NaiveBayes:
		return "Naive Bayes"
	}
	return "Unknown"
}

// ParseKind parses the short names used on the command line and in config files.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "random":
		return Random, nil
	case "minimax", "perfect", "minimax-perfect":
		return MinimaxPerfect, nil
	case "handicap", "minimax-handicap":
		return MinimaxHandicap, nil
	case "bayes", "naive-bayes":
		return NaiveBayes, nil
	}
	return MAXKIND, errors.Errorf("unknown strategy %q", s)
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	kind, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = kind
	return nil
}

// ErrInvalidMove is returned when a strategy returns a move that cannot be played.
type ErrInvalidMove struct {
	Strategy string
	Move     game.Cell
}

func (err ErrInvalidMove) Error() string {
	return fmt.Sprintf("invalid move %v returned by %s", err.Move, err.Strategy)
}
