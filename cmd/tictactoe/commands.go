package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"

	"github.com/gorgonia/tictactoe"
	"github.com/gorgonia/tictactoe/bayes"
	"github.com/gorgonia/tictactoe/dataset"
	"github.com/gorgonia/tictactoe/encoding/gif"
	"github.com/gorgonia/tictactoe/game"
	"github.com/gorgonia/tictactoe/game/ttt"
	"github.com/gorgonia/tictactoe/gtp"
	"github.com/gorgonia/tictactoe/minimax"
	"github.com/pkg/errors"
)

func newFlagSet(e env, name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(e.stdout)
	return fs
}

func parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return errors.Errorf("unexpected argument %q", fs.Arg(0))
	}
	return nil
}

func mkdirFor(filename string) error {
	if dir := filepath.Dir(filename); dir != "." {
		return errors.WithStack(os.MkdirAll(dir, 0755))
	}
	return nil
}

// split loads, shuffles and splits the dataset the same way for training and evaluation.
func split(e env, filename string) (train, test []dataset.Entry, err error) {
	entries, err := dataset.Load(filename)
	if err != nil {
		return nil, nil, err
	}
	e.logger.Info().Str("dataset", filename).Int("entries", len(entries)).Msg("dataset loaded")
	dataset.Shuffle(entries, dataset.Seed)
	train, test = dataset.Split(entries, dataset.TrainRatio)
	e.logger.Info().Int("train", len(train)).Int("test", len(test)).Msg("split")
	return train, test, nil
}

func gen(e env, args []string) error {
	fs := newFlagSet(e, "gen")
	path := fs.String("d", e.dataset, "where to write the dataset")
	if err := parse(fs, args); err != nil {
		return err
	}
	entries := dataset.Generate()
	if err := mkdirFor(*path); err != nil {
		return err
	}
	if err := dataset.Save(entries, *path); err != nil {
		return err
	}
	e.logger.Info().Str("dataset", *path).Int("entries", len(entries)).Msg("dataset written")
	return nil
}

func train(e env, args []string) error {
	fs := newFlagSet(e, "train")
	dataPath := fs.String("d", e.dataset, "dataset")
	modelPath := fs.String("m", e.model, "where to write the model")
	augment := fs.Bool("augment", false, "also train on the rotations of every training position")
	alpha := fs.Float64("alpha", bayes.Alpha, "Laplace smoothing")
	if err := parse(fs, args); err != nil {
		return err
	}

	trainSet, _, err := split(e, *dataPath)
	if err != nil {
		return err
	}
	if *augment {
		trainSet = dataset.Augment(trainSet)
	}
	m := bayes.Train(trainSet, *alpha)
	e.logger.Info().Int("entries", len(trainSet)).Msg("training completed")

	if err := mkdirFor(*modelPath); err != nil {
		return err
	}
	if err := bayes.Save(m, *modelPath); err != nil {
		return err
	}
	e.logger.Info().Str("model", *modelPath).Msg("model saved")
	return nil
}

func stats(e env, args []string) error {
	fs := newFlagSet(e, "stats")
	dataPath := fs.String("d", e.dataset, "dataset")
	modelPath := fs.String("m", e.model, "model")
	if err := parse(fs, args); err != nil {
		return err
	}

	_, testSet, err := split(e, *dataPath)
	if err != nil {
		return err
	}
	m, err := bayes.Load(*modelPath)
	if err != nil {
		return err
	}
	cm := bayes.NewConfusion(bayes.Evaluate(testSet, m))
	met := cm.Metrics()

	w := e.stdout
	fmt.Fprintf(w, "===== Confusion Matrix =====\n")
	fmt.Fprintf(w, "TP: %d\tTN: %d\n", cm.TP, cm.TN)
	fmt.Fprintf(w, "FP: %d\tFN: %d\n", cm.FP, cm.FN)
	fmt.Fprintf(w, "\n===== Metrics =====\n")
	fmt.Fprintf(w, "Accuracy: %.4f\n", met.Accuracy)
	fmt.Fprintf(w, "Precision: %.4f\n", met.Precision)
	fmt.Fprintf(w, "Recall: %.4f\n", met.Recall)
	fmt.Fprintf(w, "F1 Score: %.4f\n", met.F1)
	return nil
}

func bench(e env, args []string) error {
	fs := newFlagSet(e, "bench")
	modelPath := fs.String("m", e.model, "model")
	confPath := fs.String("config", "", "YAML benchmark config")
	csvPath := fs.String("csv", "", "also write the report as CSV")
	runs := fs.Int("runs", 0, "games per strategy and phase. Overrides the config")
	workers := fs.Int("workers", 0, "workers per strategy. Overrides the config")
	if err := parse(fs, args); err != nil {
		return err
	}

	conf := tictactoe.DefaultConfig()
	if *confPath != "" {
		var err error
		if conf, err = tictactoe.LoadConfig(*confPath); err != nil {
			return err
		}
	}
	if *runs > 0 {
		conf.Runs = *runs
	}
	if *workers > 0 {
		conf.Workers = *workers
	}
	conf.Logger = e.logger

	e.logger.Info().Int("runs", conf.Runs).Int("workers", conf.Workers).Msg("starting benchmarks")
	rep, err := tictactoe.RunBenchmarks(*modelPath, conf)
	if err != nil {
		return err
	}
	if err := rep.WriteTable(e.stdout); err != nil {
		return err
	}
	if *csvPath != "" {
		return rep.Dump(*csvPath)
	}
	return nil
}

func winrate(e env, args []string) error {
	fs := newFlagSet(e, "winrate")
	modelPath := fs.String("m", e.model, "model")
	episodes := fs.Int("episodes", tictactoe.Episodes, "games per strategy")
	seed := fs.Int64("seed", dataset.Seed, "random seed")
	if err := parse(fs, args); err != nil {
		return err
	}
	m, err := bayes.Load(*modelPath)
	if err != nil {
		return err
	}
	results, err := tictactoe.WinRate(m, *episodes, *seed)
	if err != nil {
		return err
	}
	for _, s := range results {
		fmt.Fprintf(e.stdout, "%s: win rate results after %d episodes\n", s.Name, s.Games())
		fmt.Fprintf(e.stdout, "Wins: %d\nLosses: %d\nDraws: %d\n", s.Wins, s.Losses, s.Draws)
		fmt.Fprintf(e.stdout, "Win Rate: %.2f%%\n\n", 100*s.WinRate())
	}
	return nil
}

// parseBoard parses 9 cells in row major order: x, o, and . or b for empty.
// The player to move is derived from the number of marks, with X moving first.
func parseBoard(s string) (ttt.Board, error) {
	s = strings.ToLower(strings.Join(strings.Fields(s), ""))
	if len(s) != ttt.Size*ttt.Size {
		return ttt.Board{}, errors.Errorf("expected %d cells. Got %d", ttt.Size*ttt.Size, len(s))
	}
	var cells ttt.Cells
	var xs, ns int
	for i, ch := range s {
		var c game.Colour
		switch ch {
		case 'x':
			c = game.Cross
			xs++
		case 'o':
			c = game.Nought
			ns++
		case '.', 'b', '-':
		default:
			return ttt.Board{}, errors.Errorf("invalid cell %q at %d", ch, i)
		}
		cells[i/ttt.Size][i%ttt.Size] = c
	}
	toMove := ttt.Cross
	switch xs - ns {
	case 0:
	case 1:
		toMove = ttt.Nought
	default:
		return ttt.Board{}, errors.Errorf("%d crosses and %d noughts cannot happen when X moves first", xs, ns)
	}
	return ttt.FromCells(cells, toMove), nil
}

func dot(e env, args []string) error {
	fs := newFlagSet(e, "dot")
	board := fs.String("board", "x...o....", "position to search")
	handicap := fs.Bool("handicap", false, "use the handicapped depth limit")
	maxNodes := fs.Int("max", 500, "maximum number of positions to draw")
	if err := parse(fs, args); err != nil {
		return err
	}
	b, err := parseBoard(*board)
	if err != nil {
		return err
	}
	conf := minimax.Perfect()
	if *handicap {
		conf.MaxDepth = minimax.HandicapMaxDepth
	}
	for _, ms := range minimax.Score(b, conf) {
		e.logger.Info().Int("row", ms.Row).Int("col", ms.Col).Int("score", ms.Score).Msg("root move")
	}
	g, err := minimax.ToDot(b, conf, *maxNodes)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(e.stdout, g)
	return errors.WithStack(err)
}

// textEncoder prints every position of a game.
type textEncoder struct{ e env }

func (t textEncoder) Encode(ms game.MetaState) error {
	g := ms.State()
	_, err := fmt.Fprintf(t.e.stdout, "%s, move %d (%v)\n%v\n", ms.Name(), g.MoveNumber(), g.LastMove(), g)
	return err
}

func (t textEncoder) Flush() error { return nil }

func replay(e env, args []string) error {
	fs := newFlagSet(e, "replay")
	modelPath := fs.String("m", e.model, "model. Only needed if a player uses it")
	xKind := fs.String("x", "minimax", "strategy playing X")
	oKind := fs.String("o", "random", "strategy playing O")
	first := fs.String("first", "x", "who moves first")
	gifPath := fs.String("gif", "", "write the game as an animated GIF instead of printing it")
	seed := fs.Int64("seed", 1337, "random seed")
	if err := parse(fs, args); err != nil {
		return err
	}
	x, err := tictactoe.ParseKind(*xKind)
	if err != nil {
		return err
	}
	o, err := tictactoe.ParseKind(*oKind)
	if err != nil {
		return err
	}
	starting, err := gtp.ParseColour(*first)
	if err != nil {
		return err
	}
	var m *bayes.Model
	if x == tictactoe.NaiveBayes || o == tictactoe.NaiveBayes {
		if m, err = bayes.Load(*modelPath); err != nil {
			return err
		}
	}
	r := rand.New(rand.NewSource(*seed))
	handicap := tictactoe.DefaultConfig().Handicap
	a, err := tictactoe.NewStrategy(x, m, handicap, r)
	if err != nil {
		return err
	}
	b, err := tictactoe.NewStrategy(o, m, handicap, r)
	if err != nil {
		return err
	}

	var enc tictactoe.OutputEncoder = textEncoder{e}
	var f *os.File
	if *gifPath != "" {
		if f, err = os.Create(*gifPath); err != nil {
			return errors.WithStack(err)
		}
		defer f.Close()
		ge := gif.NewGifEncoder(300, 500)
		ge.Writer = f
		enc = ge
	}

	arena := tictactoe.NewArena(a, b, "", e.logger)
	winner, err := arena.Play(ttt.Cross, starting, enc)
	if err != nil {
		return err
	}
	if err := enc.Flush(); err != nil {
		return err
	}
	if f != nil {
		if err := f.Close(); err != nil {
			return errors.WithStack(err)
		}
		e.logger.Info().Str("gif", *gifPath).Msg("replay written")
	}
	fmt.Fprintf(e.stdout, "%v\n", winner)
	return nil
}

func play(e env, args []string) error {
	fs := newFlagSet(e, "gtp")
	modelPath := fs.String("m", e.model, "model for the medium difficulty")
	diff := fs.String("difficulty", "hard", "easy, medium or hard")
	seed := fs.Int64("seed", 1337, "random seed")
	if err := parse(fs, args); err != nil {
		return err
	}
	m, err := bayes.Load(*modelPath)
	if err != nil {
		e.logger.Warn().Err(err).Msg("no model. The medium difficulty is unavailable")
		m = nil
	}
	s := tictactoe.NewSession(m, rand.New(rand.NewSource(*seed)))
	d, err := tictactoe.ParseDifficulty(*diff)
	if err != nil {
		return err
	}
	if err := s.SetDifficulty(d); err != nil {
		return err
	}
	return gtp.New(s, "tictactoe", version, nil).Run(e.stdin, e.stdout)
}
