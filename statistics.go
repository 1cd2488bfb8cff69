package tictactoe

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/pkg/errors"
)

// Report is the outcome of a benchmark.
type Report struct {
	Runs    int
	Results []Result
}

func ms(d time.Duration) float64 { return float64(d) / float64(time.Millisecond) }

// WriteTable writes the win and draw rates, then the latencies of every strategy
// from the opening to the endgame. Buckets without samples are left out.
func (rep Report) WriteTable(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	fmt.Fprintf(tw, "Algorithm\tWin Rate (%%)\tDraw Rate (%%)\tFirst (%%)\tSecond (%%)\n")
	for _, r := range rep.Results {
		fmt.Fprintf(tw, "%s\t%.2f\t%.2f\t%.2f\t%.2f\n", r.Name,
			100*r.WinRate(), 100*r.DrawRate(), 100*r.FirstWinRate(), 100*r.SecondWinRate())
	}
	fmt.Fprintf(tw, "\nAlgorithm\tMoves Left\tAvg Time (ms)\tMin Time (ms)\tMax Time (ms)\n")
	for _, r := range rep.Results {
		for left := len(r.Latency) - 1; left >= 0; left-- {
			l := r.Latency[left]
			if l.Count == 0 {
				continue
			}
			fmt.Fprintf(tw, "%s\t%d\t%.6f\t%.6f\t%.6f\n", r.Name, left, ms(l.Avg()), ms(l.Min), ms(l.Max))
		}
	}
	return errors.WithStack(tw.Flush())
}

var csvHeader = []string{"strategy", "games", "wins", "draws", "losses", "win_rate", "draw_rate", "first_win_rate", "second_win_rate", "moves_left", "samples", "avg_ms", "min_ms", "max_ms"}

// Dump writes the report as CSV. There is one row per non empty latency bucket,
// and each row repeats the win phase figures of its strategy.
func (rep Report) Dump(filename string) error {
	f, err := os.OpenFile(filename, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return errors.WithStack(err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return errors.WithStack(err)
	}
	rate := func(f float64) string { return strconv.FormatFloat(f, 'f', 4, 64) }
	millis := func(d time.Duration) string { return strconv.FormatFloat(ms(d), 'f', 6, 64) }

	var records [][]string
	for _, r := range rep.Results {
		head := []string{
			r.Name,
			strconv.Itoa(r.Games),
			strconv.Itoa(r.Wins),
			strconv.Itoa(r.Draws),
			strconv.Itoa(r.Losses()),
			rate(r.WinRate()),
			rate(r.DrawRate()),
			rate(r.FirstWinRate()),
			rate(r.SecondWinRate()),
		}
		for left := len(r.Latency) - 1; left >= 0; left-- {
			l := r.Latency[left]
			if l.Count == 0 {
				continue
			}
			record := append(append([]string{}, head...),
				strconv.Itoa(left), strconv.Itoa(l.Count), millis(l.Avg()), millis(l.Min), millis(l.Max))
			records = append(records, record)
		}
	}
	if err := w.WriteAll(records); err != nil {
		return errors.WithStack(err)
	}
	return f.Close()
}
