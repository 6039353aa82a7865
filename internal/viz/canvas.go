package viz

import (
	"image"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/draw"
)

// halfBlock paints the top pixel of a cell with the foreground colour and
// the bottom pixel with the background colour.
const halfBlock = "▀"

var canvasBackground = color.RGBA{A: 0xff}

// Canvas is a terminal raster of Width x Height cells. Each cell holds two
// vertically stacked pixels, so the pixel size is Width x 2*Height.
type Canvas struct {
	Width, Height int
	img           *image.RGBA
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{}
	c.Resize(w, h)
	return c
}

func (c *Canvas) Resize(w, h int) {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	c.Width, c.Height = w, h
	c.img = image.NewRGBA(image.Rect(0, 0, w, 2*h))
	c.Clear()
}

func (c *Canvas) Clear() {
	draw.Draw(c.img, c.img.Bounds(), image.NewUniform(canvasBackground), image.Point{}, draw.Src)
}

// Draw fits src into the canvas, keeping its aspect ratio and centring it.
func (c *Canvas) Draw(src image.Image) {
	c.Clear()
	if src == nil {
		return
	}
	sb := src.Bounds()
	if sb.Empty() {
		return
	}
	dw, dh := c.img.Bounds().Dx(), c.img.Bounds().Dy()
	scale := min(float64(dw)/float64(sb.Dx()), float64(dh)/float64(sb.Dy()))
	w := max(1, int(float64(sb.Dx())*scale))
	h := max(1, int(float64(sb.Dy())*scale))
	x0, y0 := (dw-w)/2, (dh-h)/2
	draw.NearestNeighbor.Scale(c.img, image.Rect(x0, y0, x0+w, y0+h), src, sb, draw.Src, nil)
}

// At returns the pixel colour at x, y in pixel coordinates.
func (c *Canvas) At(x, y int) color.RGBA {
	return c.img.RGBAAt(x, y)
}

func (c *Canvas) String() string {
	var b strings.Builder
	for row := 0; row < c.Height; row++ {
		for col := 0; col < c.Width; col++ {
			top := hexOf(c.img.RGBAAt(col, 2*row))
			bottom := hexOf(c.img.RGBAAt(col, 2*row+1))
			b.WriteString(lipgloss.NewStyle().
				Foreground(lipgloss.Color(top)).
				Background(lipgloss.Color(bottom)).
				Render(halfBlock))
		}
		if row < c.Height-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func hexOf(c color.RGBA) string {
	cf, _ := colorful.MakeColor(color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff})
	return cf.Hex()
}
