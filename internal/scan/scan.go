// Package scan checks every frame file of a session ahead of playback and
// reports the dates that would fall back to the last good frame.
package scan

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io/fs"
	"os"
	"time"

	"github.com/san-kum/dataviewer/internal/grid"
	"github.com/san-kum/dataviewer/internal/session"
	"golang.org/x/sync/errgroup"
)

// DefaultWorkers bounds the number of files checked at once.
const DefaultWorkers = 8

// Status is the outcome of checking one frame file.
type Status int

const (
	OK Status = iota
	Missing
	Corrupt
)

func (s Status) String() string {
	switch s {
	case Missing:
		return "missing"
	case Corrupt:
		return "corrupt"
	}
	return "ok"
}

// Entry describes one frame file.
type Entry struct {
	Index  int
	Date   time.Time
	Path   string
	Size   int64
	Status Status
	Detail string
}

// Report lists entries in frame order.
type Report struct {
	Entries []Entry
}

func (r *Report) Count(s Status) int {
	n := 0
	for _, e := range r.Entries {
		if e.Status == s {
			n++
		}
	}
	return n
}

// Problems returns the entries that are not OK.
func (r *Report) Problems() []Entry {
	var out []Entry
	for _, e := range r.Entries {
		if e.Status != OK {
			out = append(out, e)
		}
	}
	return out
}

// Run checks every frame of sess with at most workers concurrent checks.
// Binary files must hold exactly header+rows*cols bytes; image files must
// carry a decodable image header. Run does not touch the session's frame cache.
func Run(ctx context.Context, sess *session.Session, workers int) (*Report, error) {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	cfg := sess.Config()
	want := sess.HeaderOffset() + int64(cfg.Shape.Size())
	entries := make([]Entry, sess.Len())

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range entries {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			date, path, err := sess.Resolve(i)
			if err != nil {
				return err
			}
			e := Entry{Index: i, Date: date, Path: path}
			if cfg.ImageMode {
				checkImage(&e)
			} else {
				checkBinary(&e, want)
			}
			entries[i] = e
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &Report{Entries: entries}, nil
}

func checkBinary(e *Entry, want int64) {
	info, err := os.Stat(e.Path)
	if err != nil {
		classify(e, err)
		return
	}
	e.Size = info.Size()
	if e.Size != want {
		e.Status = Corrupt
		e.Detail = fmt.Sprintf("size %d, want %d", e.Size, want)
	}
}

func checkImage(e *Entry) {
	f, err := os.Open(e.Path)
	if err != nil {
		classify(e, err)
		return
	}
	defer f.Close()
	if info, err := f.Stat(); err == nil {
		e.Size = info.Size()
	}
	if _, _, err := image.DecodeConfig(f); err != nil {
		e.Status = Corrupt
		e.Detail = err.Error()
	}
}

func classify(e *Entry, err error) {
	if errors.Is(err, fs.ErrNotExist) {
		e.Status = Missing
		return
	}
	e.Status = Corrupt
	e.Detail = err.Error()
}

// DecodeCheck fully decodes one frame file, for callers that want the
// renderer's exact verdict rather than a size check.
func DecodeCheck(sess *session.Session, index int) (Status, error) {
	cfg := sess.Config()
	_, path, err := sess.Resolve(index)
	if err != nil {
		return OK, err
	}
	if cfg.ImageMode {
		_, err = grid.DecodeImage(path)
	} else {
		_, err = grid.DecodeFlatBinary(path, cfg.Shape, sess.HeaderOffset())
	}
	switch {
	case err == nil:
		return OK, nil
	case errors.Is(err, grid.ErrNotFound):
		return Missing, nil
	default:
		return Corrupt, nil
	}
}
