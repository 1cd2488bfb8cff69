// Command spectate plays strategies against each other forever and streams the
// games to websocket spectators on /ws.
package main

import (
	"context"
	"flag"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/gorgonia/tictactoe"
	"github.com/gorgonia/tictactoe/bayes"
	"github.com/gorgonia/tictactoe/game/ttt"
	"github.com/rs/zerolog"
)

var (
	addr      = flag.String("addr", ":8080", "address to serve spectators on")
	modelPath = flag.String("m", "model/naive_bayes.bin", "Naive Bayes model. Only needed if a player uses it")
	xKind     = flag.String("x", "handicap", "strategy playing X")
	oKind     = flag.String("o", "bayes", "strategy playing O")
	games     = flag.Int("games", 0, "number of games to play. 0 plays until interrupted")
	delay     = flag.Duration("delay", 500*time.Millisecond, "pause after every move")
	seed      = flag.Int64("seed", 1337, "random seed")
)

func main() {
	flag.Parse()
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	if err := run(logger); err != nil {
		logger.Error().Err(err).Msg("spectate failed")
		os.Exit(1)
	}
}

func run(logger zerolog.Logger) error {
	x, err := tictactoe.ParseKind(*xKind)
	if err != nil {
		return err
	}
	o, err := tictactoe.ParseKind(*oKind)
	if err != nil {
		return err
	}
	var model *bayes.Model
	if x == tictactoe.NaiveBayes || o == tictactoe.NaiveBayes {
		if model, err = bayes.Load(*modelPath); err != nil {
			return err
		}
	}
	r := rand.New(rand.NewSource(*seed))
	a, err := tictactoe.NewStrategy(x, model, tictactoe.DefaultConfig().Handicap, r)
	if err != nil {
		return err
	}
	b, err := tictactoe.NewStrategy(o, model, tictactoe.DefaultConfig().Handicap, r)
	if err != nil {
		return err
	}

	outEnc := NewEncoder(*delay, logger)
	mux := http.NewServeMux()
	mux.Handle("/ws", outEnc)
	srv := &http.Server{Addr: *addr, Handler: mux}
	go func() {
		logger.Info().Str("addr", *addr).Msg("serving spectators on /ws")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("server stopped")
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	defer srv.Close()

	arena := tictactoe.NewArena(a, b, "", logger)
	starting := ttt.Cross
	for i := 0; *games <= 0 || i < *games; i++ {
		if ctx.Err() != nil {
			break
		}
		winner, err := arena.Play(ttt.Cross, starting, outEnc)
		if err != nil {
			return err
		}
		logger.Info().
			Int("game", i).
			Stringer("winner", winner).
			Int("x_wins", arena.A.Wins).
			Int("o_wins", arena.B.Wins).
			Int("draws", arena.A.Draw).
			Msg("game over")
		starting = starting.Opponent()
	}
	return nil
}
