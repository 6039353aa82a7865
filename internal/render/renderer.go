// Package render resolves, decodes and plots single animation frames,
// falling back to the last good frame when a file is missing or corrupt.
package render

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/san-kum/dataviewer/internal/dates"
	"github.com/san-kum/dataviewer/internal/grid"
	"github.com/san-kum/dataviewer/internal/logging"
	"github.com/san-kum/dataviewer/internal/plot"
	"github.com/san-kum/dataviewer/internal/session"
)

const (
	missingPrefix = "FILE MISSING FOR"
	corruptPrefix = "CORRUPTED FILE FOR"
)

var ErrIndexOutOfRange = session.ErrNoSuchFrame

// ImageDecoder loads a pre-rendered image product as a grid.
type ImageDecoder interface {
	DecodeImage(path string) (*grid.Grid, error)
}

// ImageDecoderFunc adapts a function to ImageDecoder.
type ImageDecoderFunc func(path string) (*grid.Grid, error)

func (f ImageDecoderFunc) DecodeImage(path string) (*grid.Grid, error) { return f(path) }

// Renderer produces one frame per call for a session. Calls are expected in
// increasing index order; each call reads one file and closes it before
// returning.
type Renderer struct {
	sess   *session.Session
	cfg    session.Config
	images ImageDecoder
	log    *slog.Logger
}

func New(sess *session.Session, log *slog.Logger) *Renderer {
	if log == nil {
		log = logging.Discard()
	}
	return &Renderer{
		sess:   sess,
		cfg:    sess.Config(),
		images: ImageDecoderFunc(grid.DecodeImage),
		log:    log,
	}
}

// WithImageDecoder replaces the decoder used in image mode.
func (r *Renderer) WithImageDecoder(d ImageDecoder) *Renderer {
	r.images = d
	return r
}

// Len is the number of frames in the session.
func (r *Renderer) Len() int { return r.sess.Len() }

// Date returns the title date of a frame.
func (r *Renderer) Date(index int) (time.Time, error) {
	d, _, err := r.sess.Resolve(index)
	return d, err
}

// RenderFrame renders frame index and returns it as a one-element slice.
// Missing and corrupt files never fail the call: the last good grid (or a
// blank frame) is drawn with an annotated title instead. Errors are only
// returned for caller mistakes such as an out-of-range index or an unknown
// colormap.
func (r *Renderer) RenderFrame(index int) ([]*plot.Frame, error) {
	date, path, err := r.sess.Resolve(index)
	if err != nil {
		return nil, fmt.Errorf("render frame %d: %w", index, err)
	}
	day := date.Format(dates.Layout)

	g, err := r.decode(path)
	if err != nil {
		return r.fallback(index, day, path, err)
	}

	frame, err := r.cfg.Figure.Plot(g.Clamp(r.cfg.ClampByte), r.cfg.Colormap, day)
	if err != nil {
		return nil, fmt.Errorf("render frame %d: %w", index, err)
	}
	r.sess.Last.Record(g)
	if r.cfg.Verbose {
		r.log.Info("rendering data", "date", day, "index", index)
	}
	return []*plot.Frame{frame}, nil
}

func (r *Renderer) decode(path string) (*grid.Grid, error) {
	if r.cfg.ImageMode {
		return r.images.DecodeImage(path)
	}
	return grid.DecodeFlatBinary(path, r.cfg.Shape, r.sess.HeaderOffset())
}

// fallback plots the cached grid unclamped with a title naming the failure.
func (r *Renderer) fallback(index int, day, path string, cause error) ([]*plot.Frame, error) {
	prefix := corruptPrefix
	cached := r.sess.Last.Has()
	switch {
	case errors.Is(cause, grid.ErrNotFound):
		prefix = missingPrefix
		r.log.Warn("no file for date", "date", day, "path", path, "cached", cached)
	case errors.Is(cause, grid.ErrCorrupt):
		r.log.Warn("corrupt file for date", "date", day, "path", path, "cached", cached, "err", cause)
	default:
		r.log.Error("unreadable file for date", "date", day, "path", path, "cached", cached, "err", cause)
	}

	frame, err := r.cfg.Figure.Plot(r.sess.Last.Retrieve(), r.cfg.Colormap, prefix+" "+day)
	if err != nil {
		return nil, fmt.Errorf("render frame %d: %w", index, err)
	}
	return []*plot.Frame{frame}, nil
}
