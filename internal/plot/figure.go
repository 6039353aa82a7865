package plot

import (
	"image"
	"sync"

	"github.com/san-kum/dataviewer/internal/grid"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	bannerHeight = 18
	bannerPad    = 4
)

// Frame is one rendered animation frame.
type Frame struct {
	Index     int
	Title     string
	Colormap  string
	Image     *image.Paletted
	Histogram [256]int
}

// Plotter renders a grid with a colormap and a title into a frame.
type Plotter interface {
	Plot(g *grid.Grid, colormap, title string) (*Frame, error)
}

// Figure is the default Plotter. Every call appends a frame; the figure is
// never reset between calls.
type Figure struct {
	// Blank is the shape drawn for the empty grid sentinel.
	Blank grid.Shape
	// Scale is the integer upscaling factor applied to each sample.
	Scale int

	mu     sync.Mutex
	frames []*Frame
}

func NewFigure(blank grid.Shape, scale int) *Figure {
	if scale < 1 {
		scale = 1
	}
	return &Figure{Blank: blank, Scale: scale}
}

// Plot draws g below a title banner. An empty grid yields a blank frame of
// the figure's Blank shape.
func (f *Figure) Plot(g *grid.Grid, colormap, title string) (*Frame, error) {
	pal, err := Palette(colormap)
	if err != nil {
		return nil, err
	}

	src := g
	if src.IsEmpty() {
		src = grid.New(f.Blank)
	}
	w, h := src.Cols*f.Scale, src.Rows*f.Scale
	if tw := font.MeasureString(basicfont.Face7x13, title).Ceil() + 2*bannerPad; tw > w {
		w = tw
	}

	img := image.NewPaletted(image.Rect(0, 0, w, h+bannerHeight), pal)
	for i := range img.Pix {
		img.Pix[i] = bannerIndex
	}
	f.paint(img, src)
	drawTitle(img, title)

	frame := &Frame{Title: title, Colormap: colormap, Image: img}
	if !g.IsEmpty() {
		frame.Histogram = g.Histogram()
	}

	f.mu.Lock()
	frame.Index = len(f.frames)
	f.frames = append(f.frames, frame)
	f.mu.Unlock()
	return frame, nil
}

// paint maps samples to palette indices below the banner, upscaling with
// nearest-neighbour sampling when Scale > 1.
func (f *Figure) paint(img *image.Paletted, g *grid.Grid) {
	src := &image.Gray{Pix: g.Pix, Stride: g.Cols, Rect: image.Rect(0, 0, g.Cols, g.Rows)}
	if f.Scale > 1 {
		scaled := image.NewGray(image.Rect(0, 0, g.Cols*f.Scale, g.Rows*f.Scale))
		draw.NearestNeighbor.Scale(scaled, scaled.Bounds(), src, src.Bounds(), draw.Src, nil)
		src = scaled
	}
	b := src.Bounds()
	for y := 0; y < b.Dy(); y++ {
		row := img.Pix[(y+bannerHeight)*img.Stride:]
		for x, v := range src.Pix[y*src.Stride : y*src.Stride+b.Dx()] {
			row[x] = levelLUT[v]
		}
	}
}

func drawTitle(img *image.Paletted, title string) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(img.Palette[textIndex]),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(bannerPad, bannerHeight-bannerPad),
	}
	d.DrawString(title)
}

// Frames returns the frames plotted so far in call order.
func (f *Figure) Frames() []*Frame {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*Frame, len(f.frames))
	copy(out, f.frames)
	return out
}

func (f *Figure) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.frames)
}
