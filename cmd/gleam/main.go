package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/gogpu/gg"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/gleam/internal/analysis"
	"github.com/san-kum/gleam/internal/config"
	"github.com/san-kum/gleam/internal/export"
	"github.com/san-kum/gleam/internal/intro"
	"github.com/san-kum/gleam/internal/metrics"
	"github.com/san-kum/gleam/internal/render"
	"github.com/san-kum/gleam/internal/sim"
	"github.com/san-kum/gleam/internal/storage"
	"github.com/san-kum/gleam/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string
	seed       int64
	logFile    string
	debug      bool
	// live
	enterDelay time.Duration
	frameRate  int
	theme      string
	// render
	renderW   float64
	renderH   float64
	dpr       float64
	numFrames int
	renderFPS int
	outPath   string
	// trace
	traceW   float64
	traceH   float64
	traceFPS int
	duration float64
	svgPath  string
	jsonPath string
	ensemble int
	realtime bool
)

// main registers the commands; with no subcommand it shows the intro.
func main() {
	rootCmd := &cobra.Command{
		Use:          "gleam",
		Short:        "carving trail intro",
		RunE:         runLive,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".gleam", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "classic", "tuning preset")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	rootCmd.PersistentFlags().StringVar(&logFile, "log", "", "log file (live logs nowhere by default)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "debug logging")
	addLiveFlags(rootCmd)

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "show the intro in the terminal",
		RunE:  runLive,
	}
	addLiveFlags(liveCmd)

	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "render frames to PNG files or a GIF",
		RunE:  runRender,
	}
	renderCmd.Flags().Float64Var(&renderW, "width", 960, "viewport width (logical px)")
	renderCmd.Flags().Float64Var(&renderH, "height", 540, "viewport height (logical px)")
	renderCmd.Flags().Float64Var(&dpr, "dpr", 1, "device pixel ratio (clamped to 1..2)")
	renderCmd.Flags().IntVar(&numFrames, "frames", 240, "number of frames")
	renderCmd.Flags().IntVar(&renderFPS, "fps", 30, "frame rate")
	renderCmd.Flags().StringVar(&outPath, "out", "frames", "output directory, or a .gif file")

	traceCmd := &cobra.Command{
		Use:   "trace",
		Short: "run headless, check invariants, store the trace",
		RunE:  runTrace,
	}
	traceCmd.Flags().Float64Var(&duration, "time", 20, "duration (s)")
	traceCmd.Flags().IntVar(&traceFPS, "fps", 60, "frame rate")
	traceCmd.Flags().Float64Var(&traceW, "width", 1280, "viewport width")
	traceCmd.Flags().Float64Var(&traceH, "height", 720, "viewport height")
	traceCmd.Flags().StringVar(&svgPath, "svg", "", "write the head path as svg")
	traceCmd.Flags().StringVar(&jsonPath, "json", "", "write the whole trace as json")
	traceCmd.Flags().IntVar(&ensemble, "ensemble", 1, "run this many consecutive seeds in parallel")
	traceCmd.Flags().BoolVar(&realtime, "realtime", false, "pace frames on the wall clock")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored traces",
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "plot a stored trace",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list tuning presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Printf("  %-8s speed=%.0f steer=%.1f trail=%d run=%.0fs\n",
					name, p.Speed, p.SteerPerSec, p.MaxTrail, p.RunDuration)
			}
			return nil
		},
	}

	rootCmd.AddCommand(liveCmd, renderCmd, traceCmd, listCmd, showCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addLiveFlags(cmd *cobra.Command) {
	cmd.Flags().DurationVar(&enterDelay, "enter-delay", intro.DefaultEnterDelay, "delay before the skip button shows")
	cmd.Flags().IntVar(&frameRate, "fps", 60, "frame rate")
	cmd.Flags().StringVar(&theme, "theme", viz.ThemeNeon.Name, "theme: "+strings.Join(viz.ThemeNames(), ", "))
}

// loadConfig applies the preset, then the config file over it.
func loadConfig() (*config.Config, error) {
	cfg := config.GetPreset(preset)
	if cfg == nil {
		return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	return cfg, nil
}

// newLogger writes text logs to the --log file, or to fallback when unset.
func newLogger(fallback io.Writer) (*slog.Logger, func(), error) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	w, closeFn := fallback, func() {}
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, nil, err
		}
		w, closeFn = f, func() { f.Close() }
	}
	if w == nil {
		return slog.New(slog.DiscardHandler), closeFn, nil
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})), closeFn, nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("enter-delay") {
		cfg.EnterDelay = enterDelay
	}

	// stdout belongs to the terminal UI
	logger, closeLog, err := newLogger(nil)
	if err != nil {
		return err
	}
	defer closeLog()

	opts := viz.DefaultOptions()
	opts.Tuning = cfg.Tuning()
	opts.Style = cfg.Style()
	opts.EnterDelay = cfg.EnterDelay
	opts.FPS = frameRate
	opts.Seed = seed
	opts.Theme = theme
	opts.Logger = logger

	finished, err := viz.Run(opts, func() {
		logger.Info("intro dismissed")
	})
	if err != nil {
		return err
	}
	if finished {
		fmt.Println("enter")
	}
	return nil
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if renderFPS <= 0 || numFrames <= 0 {
		return fmt.Errorf("fps and frames must be positive")
	}

	logger, closeLog, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()
	gg.SetLogger(logger)

	surface := render.NewGGSurface()
	defer surface.Close()

	interval := time.Second / time.Duration(renderFPS)
	simCfg := sim.Config{
		Viewport:      intro.NewViewport(renderW, renderH, dpr),
		FrameInterval: interval,
		Duration:      time.Duration(numFrames) * interval,
		Seed:          seed,
		Tuning:        cfg.Tuning(),
		Style:         cfg.Style(),
		ValidateState: true,
	}

	runner := sim.New(render.NewRenderer(surface, simCfg.Style))
	runner.SetLogger(logger)

	asGIF := strings.EqualFold(filepath.Ext(outPath), ".gif")
	var (
		gifRec *export.GIFRecorder
		pngSeq *export.PNGSequence
	)
	if asGIF {
		gifRec = export.NewGIFRecorder(surface, 1, max(100/renderFPS, 1))
		runner.AddObserver(gifRec)
	} else {
		pngSeq, err = export.NewPNGSequence(surface, outPath)
		if err != nil {
			return err
		}
		runner.AddObserver(pngSeq)
	}

	start := time.Now()
	result, err := runner.Run(context.Background(), simCfg)
	if err != nil {
		return err
	}
	if err := surface.Err(); err != nil {
		return fmt.Errorf("rasterize: %w", err)
	}

	if asGIF {
		f, err := os.Create(outPath)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := gifRec.Encode(f); err != nil {
			return err
		}
	} else if err := pngSeq.Err(); err != nil {
		return err
	}

	fmt.Printf("rendered %d frames (%d runs) to %s in %v\n",
		result.Frames, result.Runs, outPath, time.Since(start).Round(time.Millisecond))
	return nil
}

func runTrace(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if traceFPS <= 0 {
		return fmt.Errorf("fps must be positive")
	}

	logger, closeLog, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	simCfg := sim.Config{
		Viewport:      intro.NewViewport(traceW, traceH, 1),
		FrameInterval: time.Second / time.Duration(traceFPS),
		Duration:      time.Duration(duration * float64(time.Second)),
		Seed:          seed,
		Tuning:        cfg.Tuning(),
		Style:         cfg.Style(),
		ValidateState: true,
		Realtime:      realtime,
	}

	if ensemble > 1 {
		return runEnsemble(simCfg, cfg.Speed)
	}

	runner := sim.New(nil)
	runner.SetLogger(logger)
	for _, m := range metrics.Standard(cfg.Speed) {
		runner.AddMetric(m)
	}

	fmt.Printf("tracing %s for %.1fs...\n", preset, duration)
	start := time.Now()

	result, err := runner.Run(context.Background(), simCfg)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(preset, simCfg, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", time.Since(start))
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("frames: %d  runs: %d\n", result.Frames, result.Runs)
	fmt.Println("\nmetrics:")
	for _, m := range metrics.Standard(cfg.Speed) {
		fmt.Printf("  %s: %.6f\n", m.Name(), result.Metrics[m.Name()])
	}
	for _, e := range result.Errors {
		fmt.Printf("  error: %v\n", e)
	}

	fmt.Printf("  weave: %.2f Hz\n", weaveFrequency(result.Samples, float64(traceFPS)))
	plotSamples(result.Samples)

	if svgPath != "" {
		svg := export.PathToSVG(result.Samples, int(traceW), int(traceH), result.Last.Color.Hex())
		if err := os.WriteFile(svgPath, []byte(svg), 0644); err != nil {
			return err
		}
		fmt.Printf("svg: %s\n", svgPath)
	}
	if jsonPath != "" {
		f, err := os.Create(jsonPath)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := storage.ExportJSON(f, preset, simCfg, result); err != nil {
			return err
		}
		fmt.Printf("json: %s\n", jsonPath)
	}

	if len(result.Errors) > 0 {
		return fmt.Errorf("%d invalid frames", len(result.Errors))
	}
	return nil
}

func runEnsemble(simCfg sim.Config, speed float64) error {
	e := sim.NewEnsemble(ensemble, simCfg.Seed, func() []sim.Metric { return metrics.Standard(speed) })
	results, err := e.Run(context.Background(), simCfg)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SEED\tFRAMES\tRUNS\tEXITS\tRETARGETS\tSPEED_DEV\tTRAIL_PEAK")
	for i, r := range results {
		fmt.Fprintf(w, "%d\t%d\t%d\t%.0f\t%.0f\t%.2e\t%.0f\n",
			simCfg.Seed+int64(i), r.Frames, r.Runs,
			r.Metrics["exits"], r.Metrics["retargets"], r.Metrics["speed_deviation"], r.Metrics["trail_peak"])
	}
	return w.Flush()
}

// weaveFrequency is the dominant frequency of the head's vertical motion
// over the longest carve stretch.
func weaveFrequency(samples []sim.Sample, fps float64) float64 {
	return analysis.WeaveFrequency(sim.CarveSegments(samples), fps)
}

func plotSamples(samples []sim.Sample) {
	if len(samples) < 2 {
		return
	}
	headY := make([]float64, len(samples))
	mix := make([]float64, len(samples))
	for i, s := range samples {
		headY[i] = s.HeadY
		mix[i] = s.Mix
	}

	fmt.Println()
	fmt.Println(asciigraph.Plot(headY, asciigraph.Height(10), asciigraph.Width(80), asciigraph.Caption("head y")))
	fmt.Println()
	fmt.Println(asciigraph.Plot(mix, asciigraph.Height(6), asciigraph.Width(80), asciigraph.Caption("color mix")))
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPRESET\tTIME\tDURATION\tFRAMES\tRUNS\tSEED")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.1fs\t%d\t%d\t%d\n",
			run.ID,
			run.Preset,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Frames,
			run.Runs,
			run.Seed,
		)
	}

	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	samples, err := st.LoadSamples(runID)
	if err != nil {
		return err
	}
	if len(samples) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("preset: %s  seed: %d  viewport: %.0fx%.0f\n", meta.Preset, meta.Seed, meta.Width, meta.Height)
	fmt.Printf("samples: %d\n", len(samples))
	for name, val := range meta.Metrics {
		fmt.Printf("  %s: %.6f\n", name, val)
	}
	fmt.Printf("  weave: %.2f Hz\n", weaveFrequency(samples, meta.FPS))

	plotSamples(samples)
	return nil
}
