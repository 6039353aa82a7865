// Package session holds the state of one playback session: its validated
// configuration and the single-slot cache of the last good frame.
package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/san-kum/dataviewer/internal/grid"
	"github.com/san-kum/dataviewer/internal/plot"
	"github.com/san-kum/dataviewer/internal/source"
)

// rangeSpan is the number of days added to a start date to get the end date
// of a range-mode frame.
const rangeSpan = 6

var (
	ErrMissingField = errors.New("session: missing required field")
	ErrNoSuchFrame  = errors.New("session: frame index out of range")
)

// Config is the setup bundle of a session. Every field is required; the
// zero clamp byte and false flags are valid values.
type Config struct {
	Template  source.Template
	Dates     []time.Time
	Colormap  string
	Shape     grid.Shape
	Figure    plot.Plotter
	ClampByte uint8
	Verbose   bool
	ImageMode bool
	RangeMode bool
}

// Validate fails on the first missing or inconsistent field.
func (c *Config) Validate() error {
	switch {
	case c.Template.Pattern == "":
		return fmt.Errorf("%w: template", ErrMissingField)
	case len(c.Dates) == 0:
		return fmt.Errorf("%w: dates", ErrMissingField)
	case c.Colormap == "":
		return fmt.Errorf("%w: colormap", ErrMissingField)
	case !c.ImageMode && !c.Shape.Valid():
		return fmt.Errorf("%w: shape", ErrMissingField)
	case c.Figure == nil:
		return fmt.Errorf("%w: figure", ErrMissingField)
	}
	if c.Template.NeedsEndDate() && !c.RangeMode {
		return fmt.Errorf("session: template %s needs an end date, enable range mode", c.Template.Name)
	}
	for i := 1; i < len(c.Dates); i++ {
		if !c.Dates[i].After(c.Dates[i-1]) {
			return fmt.Errorf("session: dates must be strictly increasing (index %d)", i)
		}
	}
	return nil
}

// Session is a validated configuration plus its last-good-frame cache.
// The configuration is read-only once the session exists.
type Session struct {
	cfg  Config
	Last *LastFrame
}

// New validates cfg and takes a private copy of its date list.
func New(cfg Config) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.Dates = append([]time.Time(nil), cfg.Dates...)
	return &Session{cfg: cfg, Last: &LastFrame{}}, nil
}

// Config returns a copy of the session configuration.
func (s *Session) Config() Config {
	cfg := s.cfg
	cfg.Dates = append([]time.Time(nil), s.cfg.Dates...)
	return cfg
}

func (s *Session) Len() int { return len(s.cfg.Dates) }

// HeaderOffset is the number of header bytes to skip in binary files.
func (s *Session) HeaderOffset() int64 {
	return s.cfg.Template.Family.HeaderOffset()
}

// Resolve maps a frame index to the date shown in its title and the file
// path to load. In range mode the path spans the start date plus six days
// while the title keeps the start date.
func (s *Session) Resolve(index int) (time.Time, string, error) {
	if index < 0 || index >= len(s.cfg.Dates) {
		return time.Time{}, "", fmt.Errorf("%w: %d not in [0, %d)", ErrNoSuchFrame, index, len(s.cfg.Dates))
	}
	start := s.cfg.Dates[index]
	var end *time.Time
	if s.cfg.RangeMode {
		e := start.AddDate(0, 0, rangeSpan)
		end = &e
	}
	path, err := s.cfg.Template.URI(start, end)
	if err != nil {
		return start, "", err
	}
	return start, path, nil
}
