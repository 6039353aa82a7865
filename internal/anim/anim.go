// Package anim drives a renderer through every frame of a session and
// encodes the result as an animated GIF.
package anim

import (
	"context"
	"fmt"
	"image"
	"image/gif"
	"io"
	"log/slog"
	"os"

	"github.com/san-kum/dataviewer/internal/logging"
	"github.com/san-kum/dataviewer/internal/plot"
)

// DefaultFPS is the playback rate used when none is configured.
const DefaultFPS = 4

// FrameSource renders frames by index.
type FrameSource interface {
	RenderFrame(index int) ([]*plot.Frame, error)
	Len() int
}

// Progress is called after each rendered frame.
type Progress func(done, total int)

// Recorder renders frames 0..Len()-1 in order.
type Recorder struct {
	src      FrameSource
	log      *slog.Logger
	progress Progress
}

func NewRecorder(src FrameSource, log *slog.Logger) *Recorder {
	if log == nil {
		log = logging.Discard()
	}
	return &Recorder{src: src, log: log}
}

// OnProgress registers a progress callback.
func (r *Recorder) OnProgress(fn Progress) *Recorder {
	r.progress = fn
	return r
}

// Record renders every frame. Cancellation is checked between frames; the
// frames rendered so far are returned with the context error.
func (r *Recorder) Record(ctx context.Context) ([]*plot.Frame, error) {
	total := r.src.Len()
	frames := make([]*plot.Frame, 0, total)
	for i := 0; i < total; i++ {
		if err := ctx.Err(); err != nil {
			return frames, err
		}
		out, err := r.src.RenderFrame(i)
		if err != nil {
			return frames, err
		}
		frames = append(frames, out...)
		r.log.Debug("frame rendered", "index", i, "total", total)
		if r.progress != nil {
			r.progress(i+1, total)
		}
	}
	return frames, nil
}

// Delay converts a frame rate to a GIF delay in hundredths of a second.
func Delay(fps int) int {
	if fps <= 0 {
		fps = DefaultFPS
	}
	d := 100 / fps
	if d < 2 {
		d = 2
	}
	return d
}

// EncodeGIF writes frames as a looping animation. The canvas is sized to the
// largest frame so fallback frames of a different shape still fit.
func EncodeGIF(w io.Writer, frames []*plot.Frame, fps int) error {
	if len(frames) == 0 {
		return fmt.Errorf("no frames to encode")
	}
	anim := gif.GIF{LoopCount: 0}
	var size image.Point
	for _, f := range frames {
		anim.Image = append(anim.Image, f.Image)
		anim.Delay = append(anim.Delay, Delay(fps))
		size.X = max(size.X, f.Image.Bounds().Dx())
		size.Y = max(size.Y, f.Image.Bounds().Dy())
	}
	anim.Config = image.Config{Width: size.X, Height: size.Y}
	return gif.EncodeAll(w, &anim)
}

// SaveGIF encodes frames into the file at path.
func SaveGIF(path string, frames []*plot.Frame, fps int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := EncodeGIF(f, frames, fps); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
