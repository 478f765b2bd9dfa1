// 6 Nov 2024

// Package plot draws a coverage figure for an alignment. There is one
// bar per column and its height is the fraction of sequences with a
// residue (not a gap) in that column. Labels are drawn with freetype
// using the Go regular font, so no font files are needed.
package plot

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"strconv"
	"sync"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/andrew-torda/alnstat/pkg/seq"
)

const (
	DefaultWidth  = 800
	DefaultHeight = 300
	DefaultDPI    = 72
	fontSize      = 10 // points
	margin        = 40 // pixels round the plotting area
	minPlot       = 10 // smallest plotting area we will try
)

var (
	BarColor  = color.RGBA{0x1f, 0x77, 0xb4, 0xff}
	AxisColor = color.Black
)

var loadFont = sync.OnceValues(func() (*truetype.Font, error) {
	return freetype.ParseFont(goregular.TTF)
})

// CoverageFigure holds the frequencies and how big the picture should
// be. Set the fields before calling Render or SaveFig.
type CoverageFigure struct {
	Title  string
	Width  int     // pixels
	Height int     // pixels
	DPI    float64 // only affects the size of text
	freq   []float64
}

// NewCoverageFigure keeps its own copy of freq.
func NewCoverageFigure(freq []float64) *CoverageFigure {
	return &CoverageFigure{
		Title:  "coverage",
		Width:  DefaultWidth,
		Height: DefaultHeight,
		DPI:    DefaultDPI,
		freq:   append([]float64(nil), freq...),
	}
}

// plotRect is the area inside the margins where bars go.
func (cf *CoverageFigure) plotRect() image.Rectangle {
	return image.Rect(margin, margin/2, cf.Width-margin/2, cf.Height-margin)
}

// fill paints a rectangle in one colour.
func fill(img draw.Image, r image.Rectangle, c color.Color) {
	draw.Draw(img, r, &image.Uniform{c}, image.Point{}, draw.Src)
}

// bars draws one bar per column. Bar i covers pixels from
// x0 + i*w/n to x0 + (i+1)*w/n, so bars fill the area without gaps
// even when there are more columns than pixels.
func (cf *CoverageFigure) bars(img draw.Image, pr image.Rectangle) {
	n := len(cf.freq)
	w, h := pr.Dx(), pr.Dy()
	for i, f := range cf.freq {
		if f <= 0 {
			continue
		}
		if f > 1 {
			f = 1
		}
		x0 := pr.Min.X + i*w/n
		x1 := pr.Min.X + (i+1)*w/n
		if x1 == x0 {
			x1 = x0 + 1
		}
		top := pr.Max.Y - int(f*float64(h)+0.5)
		fill(img, image.Rect(x0, top, x1, pr.Max.Y), BarColor)
	}
}

// labels puts the title, the y range and the column range on the
// figure.
func (cf *CoverageFigure) labels(img draw.Image, pr image.Rectangle) error {
	f, err := loadFont()
	if err != nil {
		return fmt.Errorf("loading font: %w", err)
	}
	c := freetype.NewContext()
	c.SetDPI(cf.DPI)
	c.SetFont(f)
	c.SetFontSize(fontSize)
	c.SetClip(img.Bounds())
	c.SetDst(img)
	c.SetSrc(image.NewUniform(AxisColor))
	c.SetHinting(font.HintingFull)

	lineHt := c.PointToFixed(fontSize).Ceil()
	type label struct {
		s    string
		x, y int
	}
	lbls := []label{
		{cf.Title, pr.Min.X, pr.Min.Y - 4},
		{"1.0", 4, pr.Min.Y + lineHt/2},
		{"0.0", 4, pr.Max.Y},
	}
	if n := len(cf.freq); n > 0 {
		lbls = append(lbls, label{"1", pr.Min.X, pr.Max.Y + lineHt + 4})
		last := strconv.Itoa(n)
		lbls = append(lbls, label{last, pr.Max.X - lineHt*len(last)/2, pr.Max.Y + lineHt + 4})
	}
	for _, l := range lbls {
		if _, err := c.DrawString(l.s, freetype.Pt(l.x, l.y)); err != nil {
			return fmt.Errorf("drawing label %q: %w", l.s, err)
		}
	}
	return nil
}

// Render draws the figure. Frequencies outside 0 to 1 are clipped.
func (cf *CoverageFigure) Render() (*image.RGBA, error) {
	if cf.Width < margin+minPlot || cf.Height < margin+minPlot {
		return nil, fmt.Errorf("%w: figure %d x %d is too small", seq.ErrValue, cf.Width, cf.Height)
	}
	if cf.DPI <= 0 {
		return nil, fmt.Errorf("%w: dpi %g", seq.ErrValue, cf.DPI)
	}
	img := image.NewRGBA(image.Rect(0, 0, cf.Width, cf.Height))
	fill(img, img.Bounds(), color.White)
	pr := cf.plotRect()
	if len(cf.freq) > 0 {
		cf.bars(img, pr)
	}
	// axes
	fill(img, image.Rect(pr.Min.X-1, pr.Min.Y, pr.Min.X, pr.Max.Y+1), AxisColor)
	fill(img, image.Rect(pr.Min.X-1, pr.Max.Y, pr.Max.X, pr.Max.Y+1), AxisColor)
	if err := cf.labels(img, pr); err != nil {
		return nil, err
	}
	return img, nil
}

// SaveFig renders the figure and writes it as a png file. It will not
// replace an existing file unless overwrite is set.
func (cf *CoverageFigure) SaveFig(fname string, overwrite bool) (err error) {
	if fname == "" {
		return errors.New("no file name for figure")
	}
	if err := seq.CheckExists(fname, overwrite); err != nil {
		return err
	}
	img, err := cf.Render()
	if err != nil {
		return err
	}
	fp, err := os.Create(fname)
	if err != nil {
		return fmt.Errorf("creating figure: %w", err)
	}
	defer func() {
		if cerr := fp.Close(); err == nil {
			err = cerr
		}
	}()
	if err := png.Encode(fp, img); err != nil {
		return fmt.Errorf("writing %s: %w", fname, err)
	}
	return nil
}
