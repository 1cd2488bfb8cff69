package gif

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"io"
	"math"

	"github.com/golang/freetype/truetype"
	"github.com/gorgonia/tictactoe/game"
	"github.com/pkg/errors"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/math/fixed"
)

var regular *truetype.Font

const (
	dpi             = 144.0
	fontsize        = 12.0
	lineheight      = 1.2
	dummyLongString = `Game Number: 10000, Move: 9`

	size     = 3
	pad      = 10
	rule     = 2   // thickness of the grid lines
	endDelay = 300 // hundredths of a second
)

func init() {
	var err error
	if regular, err = truetype.Parse(gomono.TTF); err != nil {
		panic(err)
	}
}

// palette indices
const (
	bgIdx uint8 = iota
	fgIdx
	hlIdx
)

var globPalette = color.Palette{
	color.Gray{253},
	color.Gray{0},
	color.Gray{200},
}

// winningLiner is implemented by boards that can tell which cells won.
type winningLiner interface {
	WinningLine() ([3]game.Cell, bool)
}

// Encoder renders every position it is given as a frame of an animated GIF: the
// grid, with the winning line shaded once there is one, and a caption underneath.
// It implements tictactoe.OutputEncoder.
type Encoder struct {
	H, W int
	font.Drawer
	io.Writer

	out  *gif.GIF
	face font.Face

	maxH, maxW  int
	cell, dy    int // side of a cell and height of a line of text
	initialized bool
}

// NewGifEncoder with the maximum height and width of a frame
func NewGifEncoder(h, w int) *Encoder {
	return &Encoder{
		H:    -1,
		W:    -1,
		maxH: h,
		maxW: w,

		Drawer: font.Drawer{
			Src: image.Black,
		},
		out: &gif.GIF{LoopCount: -1},
	}
}

// Frames is the number of frames encoded so far.
func (enc *Encoder) Frames() int { return len(enc.out.Image) }

// layout picks the largest square grid that leaves room for three lines of text.
func (enc *Encoder) layout(name string) {
	enc.face = truetype.NewFace(regular, &truetype.Options{
		Size:    fontsize,
		DPI:     dpi,
		Hinting: font.HintingFull,
	})
	enc.Face = enc.face
	enc.dy = int(math.Ceil(fontsize * lineheight * dpi / 72))

	side := minInt(enc.maxW, enc.maxH-3*enc.dy) - 2*pad
	enc.cell = maxInt(side/size, 1)
	textW := maxInt(enc.MeasureString(name).Ceil(), enc.MeasureString(dummyLongString).Ceil())

	enc.W = minInt(maxInt(size*enc.cell, textW)+2*pad, enc.maxW)
	enc.H = minInt(size*enc.cell+3*enc.dy+2*pad, enc.maxH)
	enc.initialized = true
}

// Encode a position
func (enc *Encoder) Encode(ms game.MetaState) error {
	g := ms.State()
	if !enc.initialized {
		enc.layout(ms.Name())
	}

	im := image.NewPaletted(image.Rect(0, 0, enc.W, enc.H), globPalette)
	draw.Draw(im, im.Bounds(), image.NewUniform(globPalette[bgIdx]), image.Point{}, draw.Src)
	enc.Dst = im

	if wl, ok := g.(winningLiner); ok {
		if line, won := wl.WinningLine(); won {
			hl := image.NewUniform(globPalette[hlIdx])
			for _, c := range line {
				draw.Draw(im, enc.cellRect(c), hl, image.Point{}, draw.Src)
			}
		}
	}
	enc.drawGrid(im)
	for row := 0; row < size; row++ {
		for col := 0; col < size; col++ {
			c := game.Cell{Row: row, Col: col}
			if cl := g.Colour(c); cl != game.None {
				enc.drawMark(c, fmt.Sprintf("%s", cl))
			}
		}
	}

	caption := []string{
		ms.Name(),
		fmt.Sprintf("Game Number: %d, Move: %d", ms.GameNumber(), g.MoveNumber()),
	}
	var delay int
	if winner := g.Winner(); winner.Ended() {
		delay = endDelay
		caption = append(caption, fmt.Sprintf("Result: %v", winner))
	}
	y := pad + size*enc.cell
	for _, s := range caption {
		y += enc.dy
		enc.Dot = fixed.P(pad, y)
		enc.DrawString(s)
	}

	enc.out.Image = append(enc.out.Image, im)
	enc.out.Delay = append(enc.out.Delay, delay)
	return nil
}

// Flush writes the gif into the writer
func (enc *Encoder) Flush() error {
	if enc.Writer == nil {
		return errors.New("no writer to flush the gif to")
	}
	if len(enc.out.Image) == 0 {
		return errors.New("nothing to flush")
	}
	return errors.WithStack(gif.EncodeAll(enc.Writer, enc.out))
}

func (enc *Encoder) cellRect(c game.Cell) image.Rectangle {
	x, y := pad+c.Col*enc.cell, pad+c.Row*enc.cell
	return image.Rect(x, y, x+enc.cell, y+enc.cell)
}

func (enc *Encoder) drawGrid(im draw.Image) {
	fg := image.NewUniform(globPalette[fgIdx])
	end := pad + size*enc.cell
	for i := 1; i < size; i++ {
		at := pad + i*enc.cell
		draw.Draw(im, image.Rect(at-rule/2, pad, at+rule/2, end), fg, image.Point{}, draw.Src)
		draw.Draw(im, image.Rect(pad, at-rule/2, end, at+rule/2), fg, image.Point{}, draw.Src)
	}
}

// drawMark centres s in the cell.
func (enc *Encoder) drawMark(c game.Cell, s string) {
	r := enc.cellRect(c)
	w := enc.MeasureString(s).Ceil()
	ascent := enc.face.Metrics().Ascent.Ceil()
	enc.Dot = fixed.P(r.Min.X+(enc.cell-w)/2, r.Min.Y+(enc.cell+ascent)/2)
	enc.DrawString(s)
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
