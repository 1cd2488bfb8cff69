// Command tictactoe trains, evaluates and benchmarks the tic-tac-toe strategies.
//
//	tictactoe gen     [-d dataset]
//	tictactoe train   [-d dataset] [-m model] [-augment]
//	tictactoe stats   [-d dataset] [-m model]
//	tictactoe bench   [-m model] [-config bench.yaml] [-csv out.csv] [-runs n] [-workers n]
//	tictactoe winrate [-m model] [-episodes n] [-seed n]
//	tictactoe dot     [-board x...o....] [-handicap] [-max n]
//	tictactoe replay  [-m model] [-x kind] [-o kind] [-gif out.gif]
//	tictactoe gtp     [-m model] [-difficulty easy|medium|hard]
//
// The default dataset and model paths can be overridden with TICTACTOE_DATASET
// and TICTACTOE_MODEL, which are also read from a .env file.
package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

const version = "1.0.0"

const (
	defaultDataset = "dataset/tic-tac-toe.data"
	defaultModel   = "model/naive_bayes.bin"
)

// env holds what a command needs from the outside world.
type env struct {
	stdin  io.Reader
	stdout io.Writer
	logger zerolog.Logger

	dataset, model string // defaults for -d and -m
}

type command struct {
	usage string
	run   func(e env, args []string) error
}

var commands = map[string]command{
	"gen":     {"generate the dataset of final positions", gen},
	"train":   {"train a Naive Bayes model", train},
	"stats":   {"evaluate a Naive Bayes model on the test split", stats},
	"bench":   {"benchmark the strategies against a random player", bench},
	"winrate": {"play minimax and Naive Bayes against a random player", winrate},
	"dot":     {"export a minimax search tree as a Graphviz graph", dot},
	"replay":  {"play one game between two strategies", replay},
	"gtp":     {"play over a GTP style line protocol on stdin and stdout", play},
}

func usage(w io.Writer) {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	fmt.Fprintf(w, "Usage: tictactoe <command> [flags]\n\nCommands:\n")
	for _, name := range names {
		fmt.Fprintf(w, "  %-8s %s\n", name, commands[name].usage)
	}
}

func run(e env, args []string) error {
	if len(args) == 0 {
		usage(e.stdout)
		return errors.New("no command given")
	}
	cmd, ok := commands[args[0]]
	if !ok {
		usage(e.stdout)
		return errors.Errorf("unknown command %q", args[0])
	}
	return cmd.run(e, args[1:])
}

func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func main() {
	_ = godotenv.Load()

	level := zerolog.InfoLevel
	if os.Getenv("TICTACTOE_DEBUG") != "" {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()

	e := env{
		stdin:   os.Stdin,
		stdout:  os.Stdout,
		logger:  logger,
		dataset: getenv("TICTACTOE_DATASET", defaultDataset),
		model:   getenv("TICTACTOE_MODEL", defaultModel),
	}
	if err := run(e, os.Args[1:]); err != nil {
		logger.Error().Err(err).Msg("tictactoe failed")
		os.Exit(1)
	}
}
