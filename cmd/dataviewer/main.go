package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/dataviewer/internal/anim"
	"github.com/san-kum/dataviewer/internal/config"
	"github.com/san-kum/dataviewer/internal/dates"
	"github.com/san-kum/dataviewer/internal/grid"
	"github.com/san-kum/dataviewer/internal/logging"
	"github.com/san-kum/dataviewer/internal/plot"
	"github.com/san-kum/dataviewer/internal/render"
	"github.com/san-kum/dataviewer/internal/scan"
	"github.com/san-kum/dataviewer/internal/session"
	"github.com/san-kum/dataviewer/internal/source"
	"github.com/san-kum/dataviewer/internal/viz"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"
)

var (
	configFile string
	preset     string
	srcName    string
	pattern    string
	startDate  string
	endDate    string
	mode       string
	rangeMode  bool
	pngMode    bool
	colormap   string
	clamp      int
	shape      string
	verbose    bool
	logLevel   string
	logFile    string
	saveConfig string

	// Output
	outFile  string
	fps      int
	scale    int
	loop     bool
	theme    string
	workers  int
	csvOut   string
	jsonOut  string
	deepScan bool

	// Probe and inspect
	colOffset int64
	rowOffset int64
	header    int64
)

var headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))

func main() {
	rootCmd := &cobra.Command{
		Use:           "dataviewer",
		Short:         "animate date-indexed remote sensing grids",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	playCmd := &cobra.Command{
		Use:   "play",
		Short: "play a session in the terminal",
		RunE:  runPlay,
	}
	sessionFlags(playCmd.Flags())
	playCmd.Flags().StringVar(&outFile, "out", config.DefaultOutput, "gif written by the save key")
	playCmd.Flags().IntVar(&fps, "fps", config.DefaultFPS, "frames per second")
	playCmd.Flags().BoolVar(&loop, "loop", false, "restart from the first frame at the end")
	playCmd.Flags().StringVar(&theme, "theme", "polar", "color theme ("+strings.Join(viz.ThemeNames(), ", ")+")")

	recordCmd := &cobra.Command{
		Use:   "record",
		Short: "render every frame of a session to an animated gif",
		RunE:  runRecord,
	}
	sessionFlags(recordCmd.Flags())
	recordCmd.Flags().StringVar(&outFile, "out", config.DefaultOutput, "output gif")
	recordCmd.Flags().IntVar(&fps, "fps", config.DefaultFPS, "frames per second")
	recordCmd.Flags().IntVar(&scale, "scale", config.DefaultScale, "integer upscaling factor")

	scanCmd := &cobra.Command{
		Use:   "scan",
		Short: "report missing and corrupt frame files",
		RunE:  runScan,
	}
	sessionFlags(scanCmd.Flags())
	scanCmd.Flags().IntVar(&workers, "workers", scan.DefaultWorkers, "concurrent file checks")
	scanCmd.Flags().StringVar(&csvOut, "csv", "", "also write the report as csv")
	scanCmd.Flags().StringVar(&jsonOut, "json", "", "also write the report as json")
	scanCmd.Flags().BoolVar(&deepScan, "decode", false, "fully decode files that pass the size check")

	sourcesCmd := &cobra.Command{
		Use:   "sources [dataset]",
		Short: "list path templates (0051 or 0046)",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSources,
	}

	colormapsCmd := &cobra.Command{
		Use:   "colormaps",
		Short: "list colormaps",
		RunE:  runColormaps,
	}

	probeCmd := &cobra.Command{
		Use:   "probe [file]",
		Short: "read the grid shape from a file header",
		Args:  cobra.ExactArgs(1),
		RunE:  runProbe,
	}
	probeCmd.Flags().Int64Var(&colOffset, "col-offset", 8, "byte offset of the column count")
	probeCmd.Flags().Int64Var(&rowOffset, "row-offset", 14, "byte offset of the row count")

	inspectCmd := &cobra.Command{
		Use:   "inspect [file]",
		Short: "decode one file and print its value histogram",
		Args:  cobra.ExactArgs(1),
		RunE:  runInspect,
	}
	inspectCmd.Flags().StringVar(&shape, "shape", "", "grid shape as ROWSxCOLS, e.g. 448x304")
	inspectCmd.Flags().Int64Var(&header, "header", -1, "header bytes to skip (-1 detects the dataset from the path)")
	inspectCmd.Flags().BoolVar(&pngMode, "png", false, "decode an image product")

	presetsCmd := &cobra.Command{
		Use:   "presets [dataset]",
		Short: "list session presets",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			datasets := []string{"0051", "0046"}
			if len(args) > 0 {
				datasets = args[:1]
			}
			for _, ds := range datasets {
				presets := config.ListPresets(ds)
				if len(presets) == 0 {
					fmt.Printf("no presets for dataset: %s\n", ds)
					continue
				}
				sort.Strings(presets)
				fmt.Println(headingStyle.Render("presets for " + ds + ":"))
				for _, p := range presets {
					cfg := config.GetPreset(ds, p)
					fmt.Printf("  %-16s %s %s..%s\n", p, cfg.Source, cfg.Start, cfg.End)
				}
			}
			return nil
		},
	}

	rootCmd.AddCommand(playCmd, recordCmd, scanCmd, sourcesCmd, colormapsCmd, probeCmd, inspectCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func sessionFlags(fs *pflag.FlagSet) {
	fs.StringVar(&configFile, "config", "", "session file (yaml)")
	fs.StringVar(&preset, "preset", "", "start from a named preset")
	fs.StringVar(&srcName, "source", config.DefaultSource, "registered template name")
	fs.StringVar(&pattern, "pattern", "", "custom path pattern, overrides --source")
	fs.StringVar(&startDate, "start", "", "first date (YYYY-MM-DD)")
	fs.StringVar(&endDate, "end", "", "end date, exclusive (YYYY-MM-DD)")
	fs.StringVar(&mode, "mode", "daily", "date step (daily, weekly)")
	fs.BoolVar(&rangeMode, "range", false, "resolve paths over start..start+6 days")
	fs.BoolVar(&pngMode, "png", false, "decode pre-rendered images")
	fs.StringVar(&colormap, "colormap", config.DefaultColormap, "colormap name")
	fs.IntVar(&clamp, "clamp", 0, "clamp samples to this byte value (0 disables)")
	fs.StringVar(&shape, "shape", "", "grid shape as ROWSxCOLS (defaults to the template)")
	fs.BoolVar(&verbose, "verbose", false, "log every rendered file")
	fs.StringVar(&logLevel, "log-level", "INFO", "log level")
	fs.StringVar(&logFile, "log-file", "", "write json logs to this file")
	fs.StringVar(&saveConfig, "save-config", "", "write the resolved session to this yaml file")
}

// loadConfig builds the session config. A preset is the base, a config file
// overrides it and explicitly set flags override both.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.FindPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v, %v)", preset, config.ListPresets("0051"), config.ListPresets("0046"))
		}
	}
	if configFile != "" {
		loaded, err := config.LoadOver(configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	set := func(name string, apply func()) {
		if flags.Lookup(name) != nil && flags.Changed(name) {
			apply()
		}
	}
	set("source", func() { cfg.Source = srcName })
	set("pattern", func() { cfg.Pattern = pattern })
	set("start", func() { cfg.Start = startDate })
	set("end", func() { cfg.End = endDate })
	set("mode", func() { cfg.Mode = mode })
	set("range", func() { cfg.Range = rangeMode })
	set("png", func() { cfg.PNG = pngMode })
	set("colormap", func() { cfg.Colormap = colormap })
	set("clamp", func() { cfg.Clamp = clamp })
	set("shape", func() { cfg.Shape = shape })
	set("verbose", func() { cfg.Verbose = verbose })
	set("log-level", func() { cfg.Logging.Level = logLevel })
	set("log-file", func() { cfg.Logging.File = logFile })
	set("out", func() { cfg.Output.File = outFile })
	set("fps", func() { cfg.Output.FPS = fps })
	set("scale", func() { cfg.Output.Scale = scale })
	return cfg, nil
}

// openSession resolves and validates the session. With --save-config the
// resolved config is written out before anything is rendered.
func openSession(cmd *cobra.Command) (*config.Config, *session.Session, *plot.Figure, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, nil, err
	}
	sess, fig, err := cfg.Session()
	if err != nil {
		return nil, nil, nil, err
	}
	if saveConfig != "" {
		if err := config.Save(saveConfig, cfg); err != nil {
			return nil, nil, nil, fmt.Errorf("failed to save config: %w", err)
		}
		fmt.Fprintf(os.Stderr, "session saved to %s\n", saveConfig)
	}
	return cfg, sess, fig, nil
}

func setupLogger(cfg logging.Config) (*slog.Logger, io.Closer, error) {
	log, closer, err := logging.Setup(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set up logging: %w", err)
	}
	return log, closer, nil
}

func runPlay(cmd *cobra.Command, args []string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("play needs a terminal; use record to write a gif")
	}
	cfg, sess, _, err := openSession(cmd)
	if err != nil {
		return err
	}

	// stderr is covered by the player, so only a log file receives records
	log := logging.Discard()
	if cfg.Logging.File != "" {
		l, closer, err := setupLogger(cfg.Logging)
		if err != nil {
			return err
		}
		defer closer.Close()
		log = l
	}

	viz.SetTheme(theme)
	return viz.Run(render.New(sess, log), viz.Options{
		FPS:    cfg.Output.FPS,
		Output: cfg.Output.File,
		Loop:   loop,
		Log:    log,
	})
}

func runRecord(cmd *cobra.Command, args []string) error {
	cfg, sess, fig, err := openSession(cmd)
	if err != nil {
		return err
	}
	log, closer, err := setupLogger(cfg.Logging)
	if err != nil {
		return err
	}
	defer closer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rend := render.New(sess, log)
	rec := anim.NewRecorder(rend, log).OnProgress(func(done, total int) {
		day, _ := rend.Date(done - 1)
		fmt.Fprintf(os.Stderr, "\rrendering frame %d/%d (%s)", done, total, day.Format(dates.Layout))
	})
	_, err = rec.Record(ctx)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return err
	}
	frames := fig.Frames()
	if err := anim.SaveGIF(cfg.Output.File, frames, cfg.Output.FPS); err != nil {
		return err
	}
	fmt.Printf("wrote %d frames to %s\n", len(frames), cfg.Output.File)
	return nil
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg, sess, _, err := openSession(cmd)
	if err != nil {
		return err
	}
	log, closer, err := setupLogger(cfg.Logging)
	if err != nil {
		return err
	}
	defer closer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	report, err := scan.Run(ctx, sess, workers)
	if err != nil {
		return err
	}
	if deepScan {
		for i, e := range report.Entries {
			if e.Status != scan.OK {
				continue
			}
			status, err := scan.DecodeCheck(sess, e.Index)
			if err != nil {
				return err
			}
			if status != scan.OK {
				report.Entries[i].Status = status
				report.Entries[i].Detail = "decode failed"
			}
		}
	}
	log.Debug("scan finished", "frames", len(report.Entries))

	fmt.Printf("frames: %d  ok: %d  missing: %d  corrupt: %d\n",
		len(report.Entries), report.Count(scan.OK), report.Count(scan.Missing), report.Count(scan.Corrupt))
	if problems := report.Problems(); len(problems) > 0 {
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "\nINDEX\tDATE\tSTATUS\tPATH\tDETAIL")
		for _, e := range problems {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", e.Index, e.Date.Format("2006-01-02"), e.Status, e.Path, e.Detail)
		}
		w.Flush()
	}
	if csvOut != "" {
		if err := report.SaveCSV(csvOut); err != nil {
			return err
		}
		fmt.Printf("report written to %s\n", csvOut)
	}
	if jsonOut != "" {
		if err := report.SaveJSON(jsonOut); err != nil {
			return err
		}
		fmt.Printf("report written to %s\n", jsonOut)
	}
	return nil
}

func runSources(cmd *cobra.Command, args []string) error {
	templates := source.All()
	if len(args) > 0 {
		templates = source.Templates(args[0])
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tKIND\tSHAPE\tPATTERN")
	for _, t := range templates {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", t.Name, t.Kind, t.Shape, t.Pattern)
	}
	return w.Flush()
}

func runColormaps(cmd *cobra.Command, args []string) error {
	for _, name := range plot.Colormaps() {
		pal, err := plot.Palette(name)
		if err != nil {
			return err
		}
		var swatch strings.Builder
		for i := 0; i < plot.Levels; i += plot.Levels / 24 {
			c, _ := colorful.MakeColor(pal[i])
			swatch.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(c.Hex())).Render("█"))
		}
		fmt.Printf("%-14s %s\n", name, swatch.String())
	}
	return nil
}

func runProbe(cmd *cobra.Command, args []string) error {
	probed, err := grid.ProbeShape(args[0], colOffset, rowOffset)
	if err != nil {
		return err
	}
	fmt.Printf("rows: %d\ncols: %d\n", probed.Rows, probed.Cols)
	return nil
}

func runInspect(cmd *cobra.Command, args []string) error {
	path := args[0]
	var (
		g   *grid.Grid
		err error
	)
	if pngMode {
		g, err = grid.DecodeImage(path)
	} else {
		offset := header
		if offset < 0 {
			offset = source.DetectFamily(path).HeaderOffset()
		}
		if shape == "" {
			return fmt.Errorf("inspect needs --shape for binary files")
		}
		gs, perr := grid.ParseShape(shape)
		if perr != nil {
			return perr
		}
		g, err = grid.DecodeFlatBinary(path, gs, offset)
	}
	if err != nil {
		return err
	}

	hist := g.Histogram()
	series := make([]float64, len(hist))
	lo, hi := -1, 0
	var sum float64
	for v, n := range hist {
		series[v] = float64(n)
		if n > 0 {
			if lo < 0 {
				lo = v
			}
			hi = v
		}
		sum += float64(v) * float64(n)
	}

	fmt.Println(headingStyle.Render(path))
	fmt.Printf("shape: %s\n", g.Shape())
	fmt.Printf("min: %d  max: %d  mean: %.2f\n", lo, hi, sum/float64(len(g.Pix)))
	fmt.Println()
	fmt.Println(asciigraph.Plot(series, asciigraph.Height(10), asciigraph.Width(64), asciigraph.Caption("value histogram")))
	return nil
}
