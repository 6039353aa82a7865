package plot

import (
	"errors"
	"fmt"
	"image/color"
	"strings"
	"sync"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/sahilm/fuzzy"
)

// Levels is the number of palette entries used for sample values. The two
// remaining GIF palette slots hold the banner colors.
const Levels = 254

const (
	bannerIndex = Levels
	textIndex   = Levels + 1
)

var ErrUnknownColormap = errors.New("plot: unknown colormap")

// Colormap is a named gradient defined by evenly spaced color stops.
type Colormap struct {
	Name  string
	Stops []string
}

var colormaps = []Colormap{
	{"Blues", []string{"#f7fbff", "#deebf7", "#c6dbef", "#9ecae1", "#6baed6", "#4292c6", "#2171b5", "#08519c", "#08306b"}},
	{"jet", []string{"#00007f", "#0000ff", "#007fff", "#00ffff", "#7fff7f", "#ffff00", "#ff7f00", "#ff0000", "#7f0000"}},
	{"terrain_r", []string{"#ffffff", "#805c54", "#ffff99", "#00cc66", "#0099ff", "#333399"}},
	{"winter", []string{"#0000ff", "#00ff80"}},
	{"gist_ncar", []string{"#000080", "#006aff", "#00ffff", "#00ff3a", "#a2ff00", "#ffff00", "#ff7c00", "#ff00e6", "#fef8fe"}},
	{"rainbow", []string{"#8000ff", "#1996f3", "#4df3ce", "#b2f396", "#ff964f", "#ff0000"}},
	{"magma", []string{"#000004", "#1c1044", "#4f127b", "#812581", "#b5367a", "#e55064", "#fb8761", "#fec287", "#fcfdbf"}},
	{"prism", []string{"#ff0000", "#ffa500", "#ffff00", "#00ff00", "#0000ff", "#8b00ff", "#ff0000", "#ffa500", "#ffff00", "#00ff00", "#0000ff", "#8b00ff"}},
	{"spectral", []string{"#000000", "#7b0089", "#0000c8", "#0088dd", "#00aa88", "#00bb00", "#00ff00", "#ccff00", "#ffcc00", "#ff0000", "#cccccc"}},
	{"cool", []string{"#00ffff", "#ff00ff"}},
	{"gist_earth_r", []string{"#fdfbfb", "#d2ab91", "#b6a966", "#8ca55b", "#4f9a5c", "#3b7e87", "#1f3f7a", "#000000"}},
}

var (
	paletteMu    sync.Mutex
	paletteCache = map[string]color.Palette{}
)

// Colormaps returns the names of every available colormap.
func Colormaps() []string {
	names := make([]string, len(colormaps))
	for i, c := range colormaps {
		names[i] = c.Name
	}
	return names
}

// LookupColormap finds a colormap by exact name.
func LookupColormap(name string) (Colormap, error) {
	for _, c := range colormaps {
		if c.Name == name {
			return c, nil
		}
	}
	var hint []string
	names := Colormaps()
	lower := make([]string, len(names))
	for i, n := range names {
		lower[i] = strings.ToLower(n)
	}
	for _, m := range fuzzy.Find(strings.ToLower(name), lower) {
		hint = append(hint, names[m.Index])
	}
	if len(hint) > 0 {
		return Colormap{}, fmt.Errorf("%w: %s (did you mean %s?)", ErrUnknownColormap, name, strings.Join(hint, ", "))
	}
	return Colormap{}, fmt.Errorf("%w: %s (available: %s)", ErrUnknownColormap, name, strings.Join(Colormaps(), ", "))
}

// Palette returns the 256-entry frame palette for a colormap: Levels
// gradient colors followed by the banner background and text colors.
func Palette(name string) (color.Palette, error) {
	paletteMu.Lock()
	defer paletteMu.Unlock()
	if p, ok := paletteCache[name]; ok {
		return p, nil
	}

	cm, err := LookupColormap(name)
	if err != nil {
		return nil, err
	}
	stops := make([]colorful.Color, len(cm.Stops))
	for i, hex := range cm.Stops {
		c, err := colorful.Hex(hex)
		if err != nil {
			return nil, fmt.Errorf("colormap %s stop %d: %w", name, i, err)
		}
		stops[i] = c
	}

	p := make(color.Palette, 0, 256)
	for i := 0; i < Levels; i++ {
		p = append(p, sample(stops, float64(i)/float64(Levels-1)))
	}
	p = append(p, color.RGBA{R: 16, G: 16, B: 24, A: 255}, color.White)
	paletteCache[name] = p
	return p, nil
}

func sample(stops []colorful.Color, t float64) color.Color {
	if len(stops) == 1 {
		return stops[0]
	}
	pos := t * float64(len(stops)-1)
	i := int(pos)
	if i >= len(stops)-1 {
		return stops[len(stops)-1].Clamped()
	}
	return stops[i].BlendLab(stops[i+1], pos-float64(i)).Clamped()
}

// levelLUT maps a byte sample to its gradient palette index.
var levelLUT = func() [256]uint8 {
	var lut [256]uint8
	for v := range lut {
		lut[v] = uint8(v * (Levels - 1) / 255)
	}
	return lut
}()
