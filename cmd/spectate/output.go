package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorgonia/tictactoe/game"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

// frame is what spectators receive after every move.
type frame struct {
	Name   string    `json:"name"`
	Game   int       `json:"game"`
	Move   int       `json:"move"`
	Player string    `json:"player,omitempty"`
	Row    int       `json:"row"`
	Col    int       `json:"col"`
	Board  [3]string `json:"board"`
	Winner string    `json:"winner,omitempty"`
}

func newFrame(ms game.MetaState) frame {
	g := ms.State()
	last := g.LastMove()
	f := frame{
		Name: ms.Name(),
		Game: ms.GameNumber(),
		Move: g.MoveNumber(),
		Row:  last.Row,
		Col:  last.Col,
	}
	if !last.IsNone() {
		f.Player = fmt.Sprintf("%s", last.Player)
	}
	for r := range f.Board {
		var row [3]byte
		for c := range row {
			row[c] = '.'
			switch g.Colour(game.Cell{Row: r, Col: c}) {
			case game.Cross:
				row[c] = 'X'
			case game.Nought:
				row[c] = 'O'
			}
		}
		f.Board[r] = string(row[:])
	}
	if w := g.Winner(); w.Ended() {
		f.Winner = w.String()
	}
	return f
}

// Encoder is a structure that encodes a game state according to the tictactoe.OutputEncoder interface.
// Every connected spectator gets every frame. Slow spectators miss frames rather than hold up the game.
type Encoder struct {
	sync.Mutex
	clients map[chan []byte]struct{}
	delay   time.Duration
	logger  zerolog.Logger
}

var upgrader = websocket.Upgrader{} // use default options

func NewEncoder(delay time.Duration, logger zerolog.Logger) *Encoder {
	return &Encoder{
		clients: make(map[chan []byte]struct{}),
		delay:   delay,
		logger:  logger,
	}
}

func (enc *Encoder) subscribe() chan []byte {
	ch := make(chan []byte, 16)
	enc.Lock()
	enc.clients[ch] = struct{}{}
	enc.Unlock()
	return ch
}

func (enc *Encoder) unsubscribe(ch chan []byte) {
	enc.Lock()
	delete(enc.clients, ch)
	enc.Unlock()
}

func (enc *Encoder) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	c, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		enc.logger.Error().Err(err).Msg("upgrade")
		return
	}
	defer c.Close()
	ch := enc.subscribe()
	defer enc.unsubscribe(ch)
	enc.logger.Info().Str("remote", r.RemoteAddr).Msg("spectator joined")

	for {
		select {
		case b := <-ch:
			if err = c.WriteMessage(websocket.TextMessage, b); err != nil {
				enc.logger.Info().Err(err).Str("remote", r.RemoteAddr).Msg("spectator left")
				return
			}
		case <-r.Context().Done():
			return
		}
	}
}

// Encode a game
func (enc *Encoder) Encode(ms game.MetaState) error {
	b, err := json.Marshal(newFrame(ms))
	if err != nil {
		return err
	}
	enc.Lock()
	for ch := range enc.clients {
		select {
		case ch <- b:
		default:
		}
	}
	enc.Unlock()
	if enc.delay > 0 {
		time.Sleep(enc.delay)
	}
	return nil
}

// Flush ...
func (enc *Encoder) Flush() error { return nil }
