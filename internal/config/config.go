package config

import (
	"fmt"
	"os"
	"time"

	"github.com/san-kum/dataviewer/internal/dates"
	"github.com/san-kum/dataviewer/internal/grid"
	"github.com/san-kum/dataviewer/internal/logging"
	"github.com/san-kum/dataviewer/internal/plot"
	"github.com/san-kum/dataviewer/internal/session"
	"github.com/san-kum/dataviewer/internal/source"
	"gopkg.in/yaml.v3"
)

const (
	DefaultSource   = "NSIDC_0051_NORTH_URL_FORMAT"
	DefaultColormap = "Blues"
	DefaultScale    = 1
	DefaultFPS      = 4
	DefaultOutput   = "dataviewer.gif"
)

type Config struct {
	Source   string         `yaml:"source"`
	Pattern  string         `yaml:"pattern"`
	Start    string         `yaml:"start"`
	End      string         `yaml:"end"`
	Mode     string         `yaml:"mode"`
	Range    bool           `yaml:"range"`
	PNG      bool           `yaml:"png"`
	Colormap string         `yaml:"colormap"`
	Clamp    int            `yaml:"clamp"`
	Shape    string         `yaml:"shape"`
	Verbose  bool           `yaml:"verbose"`
	Output   OutputConfig   `yaml:"output"`
	Logging  logging.Config `yaml:"logging"`
}

type OutputConfig struct {
	File  string `yaml:"file"`
	FPS   int    `yaml:"fps"`
	Scale int    `yaml:"scale"`
}

func DefaultConfig() *Config {
	return &Config{
		Source:   DefaultSource,
		Mode:     dates.Daily.String(),
		Start:    "2016-01-01",
		End:      "2016-01-31",
		Colormap: DefaultColormap,
		Output: OutputConfig{
			File:  DefaultOutput,
			FPS:   DefaultFPS,
			Scale: DefaultScale,
		},
		Logging: logging.Config{Level: "INFO"},
	}
}

func Load(path string) (*Config, error) {
	return LoadOver(path, DefaultConfig())
}

// LoadOver reads the YAML file at path on top of base, so keys missing from
// the file keep the values of base. base is not modified.
func LoadOver(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := *base
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Template resolves the configured source. A custom pattern wins over the
// registered template name.
func (c *Config) Template() (source.Template, error) {
	if c.Pattern != "" {
		kind := source.Binary
		if c.PNG {
			kind = source.Image
		}
		shape, err := c.GridShape()
		if err != nil {
			return source.Template{}, err
		}
		return source.Custom(c.Pattern, kind, shape), nil
	}
	return source.Lookup(c.Source)
}

// GridShape parses the configured "ROWSxCOLS" shape. An empty value yields
// the zero shape, meaning the template decides.
func (c *Config) GridShape() (grid.Shape, error) {
	if c.Shape == "" {
		return grid.Shape{}, nil
	}
	return grid.ParseShape(c.Shape)
}

// Dates expands the configured range into the frame dates.
func (c *Config) Dates() ([]time.Time, error) {
	start, err := dates.Parse(c.Start)
	if err != nil {
		return nil, fmt.Errorf("start: %w", err)
	}
	end, err := dates.Parse(c.End)
	if err != nil {
		return nil, fmt.Errorf("end: %w", err)
	}
	r, err := dates.NewRange(start, end)
	if err != nil {
		return nil, err
	}
	mode, err := dates.ParseMode(c.Mode)
	if err != nil {
		return nil, err
	}
	return dates.Generate(r, mode), nil
}

// Session builds a validated session. The template's shape is used unless
// the config sets one, and image templates switch on image mode.
func (c *Config) Session() (*session.Session, *plot.Figure, error) {
	tmpl, err := c.Template()
	if err != nil {
		return nil, nil, err
	}
	seq, err := c.Dates()
	if err != nil {
		return nil, nil, err
	}
	if _, err := plot.LookupColormap(c.Colormap); err != nil {
		return nil, nil, err
	}
	if c.Clamp < 0 || c.Clamp > 255 {
		return nil, nil, fmt.Errorf("clamp must be between 0 and 255, got %d", c.Clamp)
	}

	shape, err := c.GridShape()
	if err != nil {
		return nil, nil, err
	}
	if !shape.Valid() {
		shape = tmpl.Shape
	}
	imageMode := c.PNG || tmpl.Kind == source.Image
	fig := plot.NewFigure(shape, c.Output.Scale)

	sess, err := session.New(session.Config{
		Template:  tmpl,
		Dates:     seq,
		Colormap:  c.Colormap,
		Shape:     shape,
		Figure:    fig,
		ClampByte: uint8(c.Clamp),
		Verbose:   c.Verbose,
		ImageMode: imageMode,
		RangeMode: c.Range,
	})
	if err != nil {
		return nil, nil, err
	}
	return sess, fig, nil
}
