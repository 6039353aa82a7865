package grid

import (
	"fmt"
	"strconv"
	"strings"
)

// Shape is a grid size in rows and columns.
type Shape struct {
	Rows int `yaml:"rows"`
	Cols int `yaml:"cols"`
}

func (s Shape) Size() int   { return s.Rows * s.Cols }
func (s Shape) Valid() bool { return s.Rows > 0 && s.Cols > 0 }

func (s Shape) String() string {
	return fmt.Sprintf("%dx%d", s.Rows, s.Cols)
}

// ParseShape reads "ROWSxCOLS", e.g. "448x304".
func ParseShape(s string) (Shape, error) {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(s)), "x")
	if len(parts) != 2 {
		return Shape{}, fmt.Errorf("%w: %q (want ROWSxCOLS)", ErrInvalidShape, s)
	}
	rows, err1 := strconv.Atoi(parts[0])
	cols, err2 := strconv.Atoi(parts[1])
	shape := Shape{Rows: rows, Cols: cols}
	if err1 != nil || err2 != nil || !shape.Valid() {
		return Shape{}, fmt.Errorf("%w: %q (want ROWSxCOLS)", ErrInvalidShape, s)
	}
	return shape, nil
}

// Grid is a row-major 2-D array of byte samples.
type Grid struct {
	Rows int
	Cols int
	Pix  []uint8
}

// Empty is the sentinel returned when no grid is available. It has no
// samples; renderers draw it as a blank frame.
var Empty = &Grid{}

// New allocates a zeroed grid.
func New(shape Shape) *Grid {
	return &Grid{Rows: shape.Rows, Cols: shape.Cols, Pix: make([]uint8, shape.Size())}
}

// FromBytes wraps pix as a grid of the given shape. The byte count must match
// exactly; no truncation or padding happens.
func FromBytes(shape Shape, pix []uint8) (*Grid, error) {
	if !shape.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidShape, shape)
	}
	if len(pix) != shape.Size() {
		return nil, fmt.Errorf("%w: got %d bytes, want %d for %s", ErrCorrupt, len(pix), shape.Size(), shape)
	}
	return &Grid{Rows: shape.Rows, Cols: shape.Cols, Pix: pix}, nil
}

func (g *Grid) Shape() Shape {
	return Shape{Rows: g.Rows, Cols: g.Cols}
}

func (g *Grid) IsEmpty() bool {
	return g == nil || len(g.Pix) == 0
}

func (g *Grid) At(row, col int) uint8 {
	return g.Pix[row*g.Cols+col]
}

// Clamp returns a copy with every sample limited to limit. A zero limit
// disables clamping and returns g itself.
func (g *Grid) Clamp(limit uint8) *Grid {
	if limit == 0 || g.IsEmpty() {
		return g
	}
	out := &Grid{Rows: g.Rows, Cols: g.Cols, Pix: make([]uint8, len(g.Pix))}
	for i, v := range g.Pix {
		out.Pix[i] = min(v, limit)
	}
	return out
}

// Histogram counts samples per byte value.
func (g *Grid) Histogram() [256]int {
	var h [256]int
	if g == nil {
		return h
	}
	for _, v := range g.Pix {
		h[v]++
	}
	return h
}
