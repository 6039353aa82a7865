package render_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/dataviewer/internal/dates"
	"github.com/san-kum/dataviewer/internal/grid"
	"github.com/san-kum/dataviewer/internal/logging"
	"github.com/san-kum/dataviewer/internal/plot"
	"github.com/san-kum/dataviewer/internal/render"
	"github.com/san-kum/dataviewer/internal/session"
	"github.com/san-kum/dataviewer/internal/source"
)

type plotCall struct {
	grid     *grid.Grid
	colormap string
	title    string
}

// recordingPlotter remembers every grid it was asked to draw.
type recordingPlotter struct {
	calls []plotCall
}

func (p *recordingPlotter) Plot(g *grid.Grid, colormap, title string) (*plot.Frame, error) {
	p.calls = append(p.calls, plotCall{grid: g, colormap: colormap, title: title})
	return &plot.Frame{Index: len(p.calls) - 1, Title: title, Colormap: colormap}, nil
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func filled(shape grid.Shape, v byte) []byte {
	return bytes.Repeat([]byte{v}, shape.Size())
}

var _ = Describe("Renderer", func() {
	var (
		dir     string
		plotter *recordingPlotter
		logBuf  *bytes.Buffer
		shape   grid.Shape
		seq     []time.Time
	)

	write := func(name string, data []byte) {
		Expect(os.WriteFile(filepath.Join(dir, name), data, 0644)).To(Succeed())
	}

	daily := func(mutate func(*session.Config)) *render.Renderer {
		cfg := session.Config{
			Template: source.Custom(filepath.Join(dir, "daily_{yyyy}_{yymmdd}.bin"), source.Binary, shape),
			Dates:    seq,
			Colormap: "Blues",
			Shape:    shape,
			Figure:   plotter,
		}
		if mutate != nil {
			mutate(&cfg)
		}
		sess, err := session.New(cfg)
		Expect(err).NotTo(HaveOccurred())
		return render.New(sess, logging.New(logBuf, "info"))
	}

	warnings := func() []string {
		var out []string
		for _, line := range strings.Split(logBuf.String(), "\n") {
			if strings.Contains(line, "level=WARN") {
				out = append(out, line)
			}
		}
		return out
	}

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
		plotter = &recordingPlotter{}
		logBuf = &bytes.Buffer{}
		shape = grid.Shape{Rows: 448, Cols: 304}
		seq = dates.Generate(dates.Range{Start: day(2016, 3, 7), End: day(2016, 3, 10)}, dates.Daily)
	})

	Context("when the second file is missing", func() {
		It("reuses the first grid and emits a single diagnostic", func() {
			write("daily_2016_20160307.bin", filled(shape, 10))
			write("daily_2016_20160309.bin", filled(shape, 30))
			r := daily(nil)

			for i := 0; i < r.Len(); i++ {
				frames, err := r.RenderFrame(i)
				Expect(err).NotTo(HaveOccurred())
				Expect(frames).To(HaveLen(1))
			}

			Expect(plotter.calls).To(HaveLen(3))
			Expect(plotter.calls[0].title).To(Equal("2016-03-07"))
			Expect(plotter.calls[0].grid.Pix[0]).To(Equal(uint8(10)))
			Expect(plotter.calls[1].title).To(Equal("FILE MISSING FOR 2016-03-08"))
			Expect(plotter.calls[1].grid).To(BeIdenticalTo(plotter.calls[0].grid))
			Expect(plotter.calls[2].title).To(Equal("2016-03-09"))
			Expect(plotter.calls[2].grid.Pix[0]).To(Equal(uint8(30)))

			Expect(warnings()).To(HaveLen(1))
			Expect(warnings()[0]).To(ContainSubstring("2016-03-08"))
			Expect(warnings()[0]).To(ContainSubstring("cached=true"))
		})
	})

	Context("when the second file is truncated by one byte", func() {
		It("takes the corrupt path", func() {
			write("daily_2016_20160307.bin", filled(shape, 10))
			write("daily_2016_20160308.bin", filled(shape, 20)[1:])
			write("daily_2016_20160309.bin", filled(shape, 30))
			r := daily(nil)

			for i := 0; i < 3; i++ {
				_, err := r.RenderFrame(i)
				Expect(err).NotTo(HaveOccurred())
			}

			Expect(plotter.calls[1].title).To(Equal("CORRUPTED FILE FOR 2016-03-08"))
			Expect(plotter.calls[1].grid.Pix[0]).To(Equal(uint8(10)))
			Expect(plotter.calls[2].grid.Pix[0]).To(Equal(uint8(30)))
			Expect(warnings()).To(HaveLen(1))
			Expect(warnings()[0]).To(ContainSubstring("corrupt"))
		})
	})

	Context("in range mode", func() {
		It("resolves the path with start plus six days and titles with the start", func() {
			shape = grid.Shape{Rows: 4, Cols: 4}
			seq = []time.Time{day(2010, 1, 1)}
			write("snow.20100101-20100107.bin", filled(shape, 5))
			r := daily(func(c *session.Config) {
				c.Template = source.Custom(filepath.Join(dir, "snow.{syymmdd}-{eyymmdd}.bin"), source.Binary, shape)
				c.RangeMode = true
			})

			frames, err := r.RenderFrame(0)
			Expect(err).NotTo(HaveOccurred())
			Expect(frames).To(HaveLen(1))
			Expect(frames[0].Title).To(Equal("2010-01-01"))
			Expect(plotter.calls[0].grid.Pix[0]).To(Equal(uint8(5)))
			Expect(warnings()).To(BeEmpty())
		})
	})

	Context("when the very first frame fails", func() {
		It("plots the empty sentinel instead of panicking", func() {
			r := daily(nil)

			frames, err := r.RenderFrame(0)
			Expect(err).NotTo(HaveOccurred())
			Expect(frames).To(HaveLen(1))
			Expect(plotter.calls[0].grid).To(BeIdenticalTo(grid.Empty))
			Expect(plotter.calls[0].title).To(Equal("FILE MISSING FOR 2016-03-07"))
			Expect(warnings()).To(HaveLen(1))
			Expect(warnings()[0]).To(ContainSubstring("cached=false"))
		})

		It("draws a blank frame with the real figure", func() {
			fig := plot.NewFigure(shape, 1)
			r := daily(func(c *session.Config) { c.Figure = fig })

			frames, err := r.RenderFrame(0)
			Expect(err).NotTo(HaveOccurred())
			Expect(frames[0].Image.Bounds().Dx()).To(BeNumerically(">=", shape.Cols))
			Expect(fig.Len()).To(Equal(1))
		})
	})

	Context("with a clamp byte", func() {
		It("clamps fresh grids but caches and replays them unclamped", func() {
			data := filled(shape, 200)
			data[0] = 50
			write("daily_2016_20160307.bin", data)
			r := daily(func(c *session.Config) { c.ClampByte = 100 })

			_, err := r.RenderFrame(0)
			Expect(err).NotTo(HaveOccurred())
			_, err = r.RenderFrame(1)
			Expect(err).NotTo(HaveOccurred())

			Expect(plotter.calls[0].grid.Pix[0]).To(Equal(uint8(50)))
			Expect(plotter.calls[0].grid.Pix[1]).To(Equal(uint8(100)))
			Expect(plotter.calls[1].grid.Pix[1]).To(Equal(uint8(200)))
		})
	})

	Context("with a header offset family", func() {
		It("skips the 300 byte header", func() {
			shape = grid.Shape{Rows: 3, Cols: 3}
			header := bytes.Repeat([]byte{'#'}, 300)
			write("nsidc0051_20160307.bin", append(header, filled(shape, 9)...))
			r := daily(func(c *session.Config) {
				c.Template = source.Custom(filepath.Join(dir, "nsidc0051_{yymmdd}.bin"), source.Binary, shape)
			})

			_, err := r.RenderFrame(0)
			Expect(err).NotTo(HaveOccurred())
			Expect(plotter.calls[0].title).To(Equal("2016-03-07"))
			Expect(plotter.calls[0].grid.Pix).To(Equal(filled(shape, 9)))
		})
	})

	Context("in image mode", func() {
		It("delegates to the image decoder", func() {
			var paths []string
			decoder := render.ImageDecoderFunc(func(path string) (*grid.Grid, error) {
				paths = append(paths, path)
				if strings.Contains(path, "20160308") {
					return nil, &grid.DecodeError{Op: "decode image", Path: path, Err: grid.ErrCorrupt}
				}
				return &grid.Grid{Rows: 1, Cols: 1, Pix: []uint8{77}}, nil
			})
			r := daily(func(c *session.Config) {
				c.Template = source.Custom(filepath.Join(dir, "browse_{yymmdd}.png"), source.Image, grid.Shape{})
				c.ImageMode = true
			}).WithImageDecoder(decoder)

			for i := 0; i < 2; i++ {
				_, err := r.RenderFrame(i)
				Expect(err).NotTo(HaveOccurred())
			}
			Expect(paths).To(HaveLen(2))
			Expect(paths[0]).To(HaveSuffix("browse_20160307.png"))
			Expect(plotter.calls[1].title).To(Equal("CORRUPTED FILE FOR 2016-03-08"))
			Expect(plotter.calls[1].grid.Pix).To(Equal([]uint8{77}))
		})
	})

	Context("with verbose output", func() {
		It("logs a progress notice per decoded frame", func() {
			write("daily_2016_20160307.bin", filled(shape, 1))
			r := daily(func(c *session.Config) { c.Verbose = true })

			_, err := r.RenderFrame(0)
			Expect(err).NotTo(HaveOccurred())
			Expect(logBuf.String()).To(ContainSubstring("rendering data"))
			Expect(logBuf.String()).To(ContainSubstring("date=2016-03-07"))
		})
	})

	Context("when asked for frame dates", func() {
		It("returns the title date without reading any file", func() {
			r := daily(nil)

			d, err := r.Date(2)
			Expect(err).NotTo(HaveOccurred())
			Expect(d).To(BeTemporally("==", day(2016, 3, 9)))
			Expect(plotter.calls).To(BeEmpty())

			_, err = r.Date(3)
			Expect(err).To(MatchError(render.ErrIndexOutOfRange))
		})

		It("keeps the start date in range mode", func() {
			seq = []time.Time{day(2010, 1, 1)}
			r := daily(func(c *session.Config) {
				c.Template = source.Custom(filepath.Join(dir, "snow.{syymmdd}-{eyymmdd}.bin"), source.Binary, shape)
				c.RangeMode = true
			})

			d, err := r.Date(0)
			Expect(err).NotTo(HaveOccurred())
			Expect(d).To(BeTemporally("==", day(2010, 1, 1)))
		})
	})

	Context("with caller errors", func() {
		It("rejects out-of-range indices", func() {
			r := daily(nil)
			_, err := r.RenderFrame(3)
			Expect(errors.Is(err, render.ErrIndexOutOfRange)).To(BeTrue())
			_, err = r.RenderFrame(-1)
			Expect(err).To(MatchError(render.ErrIndexOutOfRange))
			Expect(plotter.calls).To(BeEmpty())
		})

		It("surfaces plotting errors", func() {
			write("daily_2016_20160307.bin", filled(shape, 1))
			r := daily(func(c *session.Config) {
				c.Colormap = "no-such-map"
				c.Figure = plot.NewFigure(shape, 1)
			})
			_, err := r.RenderFrame(0)
			Expect(err).To(MatchError(plot.ErrUnknownColormap))
		})
	})
})
