package tictactoe

import (
	"context"
	"math/rand"
	"time"

	"github.com/gorgonia/tictactoe/bayes"
	"github.com/gorgonia/tictactoe/game"
	"github.com/gorgonia/tictactoe/game/ttt"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

const maxMoves = ttt.Size * ttt.Size

// Latency accumulates the time taken by Strategy.Move.
type Latency struct {
	Count int
	Total time.Duration
	Min   time.Duration
	Max   time.Duration
}

// Add records one sample.
func (l *Latency) Add(d time.Duration) {
	if l.Count == 0 || d < l.Min {
		l.Min = d
	}
	if d > l.Max {
		l.Max = d
	}
	l.Total += d
	l.Count++
}

// Avg is the mean of the samples. An empty accumulator averages 0.
func (l Latency) Avg() time.Duration {
	if l.Count == 0 {
		return 0
	}
	return l.Total / time.Duration(l.Count)
}

// Merge folds other into l.
func (l *Latency) Merge(other Latency) {
	if other.Count == 0 {
		return
	}
	if l.Count == 0 || other.Min < l.Min {
		l.Min = other.Min
	}
	if other.Max > l.Max {
		l.Max = other.Max
	}
	l.Total += other.Total
	l.Count += other.Count
}

// Result is the benchmark result of one strategy.
type Result struct {
	Kind Kind
	Name string

	// win phase
	Games      int
	Wins       int
	Draws      int
	FirstGames int // games where the strategy moved first
	FirstWins  int

	// Latency is indexed by the number of moves left on the board when the strategy was asked to move.
	Latency [maxMoves]Latency
}

func ratio(a, b int) float64 {
	if b == 0 {
		return 0
	}
	return float64(a) / float64(b)
}

func (r Result) Losses() int            { return r.Games - r.Wins - r.Draws }
func (r Result) WinRate() float64       { return ratio(r.Wins, r.Games) }
func (r Result) DrawRate() float64      { return ratio(r.Draws, r.Games) }
func (r Result) FirstWinRate() float64  { return ratio(r.FirstWins, r.FirstGames) }
func (r Result) SecondWinRate() float64 { return ratio(r.Wins-r.FirstWins, r.Games-r.FirstGames) }

func (r *Result) merge(other Result) {
	r.Games += other.Games
	r.Wins += other.Wins
	r.Draws += other.Draws
	r.FirstGames += other.FirstGames
	r.FirstWins += other.FirstWins
	for i := range r.Latency {
		r.Latency[i].Merge(other.Latency[i])
	}
}

// Benchmark pits every configured strategy against a uniformly random opponent.
type Benchmark struct {
	Config
	Model *bayes.Model // required if NaiveBayes is benchmarked
}

// Run runs the win phase and the latency phase of every strategy.
//
// Strategies, and the workers of a strategy, run concurrently. Each worker owns
// its RNG, strategy and Result, and the Results are merged once all workers are done.
// The context is checked between games.
func (bm Benchmark) Run(ctx context.Context) (Report, error) {
	if !bm.IsValid() {
		return Report{}, errors.Errorf("invalid benchmark config %+v", bm.Config)
	}
	logger := bm.Logger

	partials := make([][]Result, len(bm.Strategies))
	g, ctx := errgroup.WithContext(ctx)
	for si, k := range bm.Strategies {
		partials[si] = make([]Result, bm.Workers)
		for w := 0; w < bm.Workers; w++ {
			si, k, w := si, k, w
			seed := bm.Seed + int64(si*bm.Workers+w)
			g.Go(func() error {
				r := rand.New(rand.NewSource(seed))
				strat, err := NewStrategy(k, bm.Model, bm.Handicap, r)
				if err != nil {
					return err
				}
				res := &partials[si][w]
				if err := bm.winPhase(ctx, strat, w, r, res); err != nil {
					return errors.WithMessagef(err, "win phase of %v", k)
				}
				if err := bm.latencyPhase(ctx, strat, w, r, res); err != nil {
					return errors.WithMessagef(err, "latency phase of %v", k)
				}
				logger.Debug().Stringer("strategy", k).Int("worker", w).Int("games", res.Games).Msg("worker done")
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return Report{}, err
	}

	report := Report{Runs: bm.Runs, Results: make([]Result, len(bm.Strategies))}
	for si, k := range bm.Strategies {
		res := &report.Results[si]
		res.Kind = k
		res.Name = k.String()
		for _, p := range partials[si] {
			res.merge(p)
		}
		logger.Info().
			Str("strategy", res.Name).
			Float64("win_rate", res.WinRate()).
			Float64("draw_rate", res.DrawRate()).
			Msg("benchmarked")
	}
	return report, nil
}

// winPhase plays the games i ≡ worker (mod Workers). In game i the random
// opponent plays Cross if i is even, and Cross starts if i/2 is even.
func (bm Benchmark) winPhase(ctx context.Context, strat Strategy, worker int, r *rand.Rand, res *Result) error {
	arena := NewArena(strat, RandomStrategy{R: r}, "", bm.Logger)
	for i := worker; i < bm.Runs; i += bm.Workers {
		if err := ctx.Err(); err != nil {
			return err
		}
		randomSide := ttt.Cross
		if i%2 != 0 {
			randomSide = ttt.Nought
		}
		starting := ttt.Cross
		if (i/2)%2 != 0 {
			starting = ttt.Nought
		}
		us := randomSide.Opponent()

		winner, err := arena.Play(us, starting, nil)
		if err != nil {
			return err
		}
		res.Games++
		first := starting == us
		if first {
			res.FirstGames++
		}
		switch {
		case winner == game.Draw:
			res.Draws++
		case winner.Player() == us:
			res.Wins++
			if first {
				res.FirstWins++
			}
		}
	}
	return nil
}

// latencyPhase plays games where the opening move is random and the strategy
// then plays both sides. The starting player alternates with i.
func (bm Benchmark) latencyPhase(ctx context.Context, strat Strategy, worker int, r *rand.Rand, res *Result) error {
	for i := worker; i < bm.Runs; i += bm.Workers {
		if err := ctx.Err(); err != nil {
			return err
		}
		starting := ttt.Cross
		if i%2 != 0 {
			starting = ttt.Nought
		}
		b := ttt.New(starting)
		b.MakeMove(ttt.RandomMove(b, r))
		for !b.Winner().Ended() {
			left := maxMoves - b.MoveNumber()
			start := time.Now()
			mv := strat.Move(b)
			elapsed := time.Since(start)
			if !b.MakeMove(mv) {
				return ErrInvalidMove{Strategy: strat.Name(), Move: mv}
			}
			res.Latency[left].Add(elapsed)
		}
	}
	return nil
}

// RunBenchmarks loads the model at modelPath and runs a benchmark with conf.
// The model is only loaded when NaiveBayes is benchmarked.
func RunBenchmarks(modelPath string, conf Config) (Report, error) {
	var model *bayes.Model
	for _, k := range conf.Strategies {
		if k != NaiveBayes {
			continue
		}
		m, err := bayes.Load(modelPath)
		if err != nil {
			return Report{}, errors.WithMessage(err, "unable to load the Naive Bayes model")
		}
		conf.Logger.Info().Str("model", modelPath).Msg("model loaded")
		model = m
		break
	}
	return Benchmark{Config: conf, Model: model}.Run(context.Background())
}
