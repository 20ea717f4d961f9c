package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/log"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/squish/internal/analysis"
	"github.com/san-kum/squish/internal/automation"
	"github.com/san-kum/squish/internal/config"
	"github.com/san-kum/squish/internal/export"
	"github.com/san-kum/squish/internal/gui"
	"github.com/san-kum/squish/internal/metrics"
	"github.com/san-kum/squish/internal/optim"
	"github.com/san-kum/squish/internal/sim"
	"github.com/san-kum/squish/internal/storage"
	"github.com/san-kum/squish/internal/viz"
)

var (
	dataDir string
	verbose bool
	// Scene overrides
	configFile   string
	preset       string
	dt           float64
	duration     float64
	seed         int64
	timeScale    float64
	gravity      float64
	dragStrength float64
	recordEvery  int
	// Output
	outPath    string
	jsonOut    string
	width      int
	height     int
	samples    int
	trajectory bool
	braille    bool
	// Ensemble size
	numRuns int
	// Sweeps
	sweepParam  string
	sweepMin    float64
	sweepMax    float64
	sweepSteps  int
	searchGrid  []string
	searchScore string

	logger *log.Logger
)

// main registers the commands and executes the root command. With no
// subcommand it opens the terminal preset picker.
func main() {
	rootCmd := &cobra.Command{
		Use:   "squish",
		Short: "2d soft body playground",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger = newLogger(verbose)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return viz.RunInteractive()
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".squish", "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a headless simulation and save it",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}
	sceneFlags(runCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot centroid heights and wobble of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run frames to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run frames to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&jsonOut, "out", "o", "", "output file (default stdout)")

	svgCmd := &cobra.Command{
		Use:   "svg",
		Short: "simulate and draw the final outlines as SVG",
		Args:  cobra.NoArgs,
		RunE:  renderSVG,
	}
	sceneFlags(svgCmd)
	svgCmd.Flags().StringVarP(&outPath, "out", "o", "squish.svg", "output file")
	svgCmd.Flags().IntVar(&width, "width", 800, "image width")
	svgCmd.Flags().IntVar(&height, "height", 600, "image height")
	svgCmd.Flags().IntVar(&samples, "samples", 12, "spline samples per segment")
	svgCmd.Flags().BoolVar(&trajectory, "trajectory", false, "draw centroid paths instead of outlines")
	svgCmd.Flags().BoolVar(&braille, "braille", false, "draw the terminal canvas as dots")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run a scene in the terminal with mouse drag",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	sceneFlags(liveCmd)

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "run a scene in a desktop window",
		Args:  cobra.NoArgs,
		RunE:  runGUI,
	}
	sceneFlags(guiCmd)

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE:  listPresets,
	}

	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write a config file to start from",
		Args:  cobra.ExactArgs(1),
		RunE:  initConfig,
	}
	initCmd.Flags().StringVar(&preset, "preset", "", "start from a preset")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark every preset",
		RunE:  benchPresets,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "wobble frequency analysis",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	ensembleCmd := &cobra.Command{
		Use:   "ensemble",
		Short: "run jittered copies of a scene in parallel",
		Args:  cobra.NoArgs,
		RunE:  runEnsemble,
	}
	sceneFlags(ensembleCmd)
	ensembleCmd.Flags().IntVarP(&numRuns, "runs", "n", 8, "number of runs")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run a scripted sequence of scenes and save each",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "vary one parameter and compare metrics",
		Args:  cobra.NoArgs,
		RunE:  runSweep,
	}
	sceneFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&sweepParam, "param", "shape.k", "parameter to vary ("+strings.Join(config.ParamNames(), ", ")+")")
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 0.5, "first value")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 10, "last value")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 8, "number of values")

	optimizeCmd := &cobra.Command{
		Use:   "optimize",
		Short: "grid search parameters minimising a metric",
		Args:  cobra.NoArgs,
		RunE:  runOptimize,
	}
	sceneFlags(optimizeCmd)
	optimizeCmd.Flags().StringArrayVar(&searchGrid, "grid", []string{"shape.k=1:10:4"}, "name=min:max:n, repeatable")
	optimizeCmd.Flags().StringVar(&searchScore, "metric", "max_deformation", "metric to minimise ("+strings.Join(metrics.Names(), ", ")+")")

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, exportCmd, exportCSVCmd, exportJSONCmd, svgCmd, liveCmd, guiCmd, presetsCmd, initCmd, benchCmd, analyzeCmd, ensembleCmd, scenarioCmd, sweepCmd, optimizeCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger(verbose bool) *log.Logger {
	l := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Prefix:          "squish",
	})
	if verbose {
		l.SetLevel(log.DebugLevel)
	}
	return l
}

func sceneFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	cmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration")
	cmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	cmd.Flags().Float64Var(&timeScale, "time-scale", 5, "physics steps faster than wall time by this factor")
	cmd.Flags().Float64Var(&gravity, "gravity", -200, "vertical gravity")
	cmd.Flags().Float64Var(&dragStrength, "drag", 1, "mouse drag strength")
	cmd.Flags().IntVar(&recordEvery, "record-every", 1, "record every n-th step")
}

// resolveConfig layers preset, config file and changed flags, in that order.
func resolveConfig(cmd *cobra.Command) (*config.Config, string, error) {
	cfg := config.DefaultConfig()
	name := "default"

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, "", fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		name = preset
	}

	if configFile != "" {
		if err := config.Merge(configFile, cfg); err != nil {
			return nil, "", fmt.Errorf("failed to load config: %w", err)
		}
		if preset == "" {
			name = strings.TrimSuffix(filepath.Base(configFile), filepath.Ext(configFile))
		}
	}

	flags := cmd.Flags()
	if flags.Changed("dt") {
		cfg.Dt = dt
	}
	if flags.Changed("time") {
		cfg.Duration = duration
	}
	if flags.Changed("seed") || cfg.Seed == 0 {
		cfg.Seed = seed
	}
	if flags.Changed("time-scale") {
		cfg.TimeScale = timeScale
	}
	if flags.Changed("gravity") {
		cfg.Gravity.Y = gravity
	}
	if flags.Changed("drag") {
		cfg.DragStrength = dragStrength
	}
	if flags.Changed("record-every") {
		cfg.RecordEvery = recordEvery
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}
	return cfg, name, nil
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, name, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	sc, err := cfg.BuildScene()
	if err != nil {
		return err
	}

	s := sim.New(sc).WithLogger(logger)
	for _, m := range metrics.All() {
		s.AddMetric(m)
	}

	ctx, cancel := signalContext()
	defer cancel()

	fmt.Printf("running %s (%d bodies)...\n", name, len(sc.Bodies))
	start := time.Now()

	result, err := s.Run(ctx, cfg.SimConfig())
	if err != nil {
		return fmt.Errorf("simulation failed: %w", err)
	}
	for _, e := range result.Errors {
		logger.Warn("run stopped early", "err", e)
	}

	elapsed := time.Since(start)

	runID, err := st.Save(storage.RunMetadata{
		Preset:    name,
		Seed:      cfg.Seed,
		Dt:        cfg.Dt,
		Duration:  cfg.Duration,
		TimeScale: cfg.TimeScale,
	}, result)
	if err != nil {
		return fmt.Errorf("saving run: %w", err)
	}
	logger.Debug("run saved", "id", runID, "dir", dataDir)

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", result.StepsTaken)
	fmt.Printf("frames: %d\n", len(result.Frames))
	fmt.Println("\nmetrics:")
	for _, name := range metrics.Names() {
		fmt.Printf("  %s: %.6f\n", name, result.Metrics[name])
	}

	return nil
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
	fmt.Fprintln(w, "ID\tPRESET\tTIME\tDURATION\tDT\tBODIES\tFRAMES")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2fs\t%.4fs\t%d\t%d\n",
			run.ID,
			run.Preset,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Dt,
			len(run.Bodies),
			run.Frames,
		)
	}

	return w.Flush()
}

func loadRun(runID string) (*storage.RunMetadata, []sim.Frame, error) {
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	frames, err := st.LoadFrames(runID)
	if err != nil {
		return nil, nil, err
	}
	if len(frames) == 0 {
		return nil, nil, fmt.Errorf("run %s has no frames", runID)
	}
	return meta, frames, nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, frames, err := loadRun(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("preset: %s\n", meta.Preset)
	fmt.Printf("frames: %d\n\n", len(frames))

	heights := make([][]float64, len(meta.Bodies))
	for b := range heights {
		heights[b] = make([]float64, len(frames))
		for i, f := range frames {
			heights[b][i] = f.Centroids[b].Y
		}
	}

	graph := asciigraph.PlotMany(heights,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("centroid height"),
	)
	fmt.Println(graph)
	fmt.Println()

	graph = asciigraph.Plot(analysis.WobbleSeries(frames, 0),
		asciigraph.Height(8),
		asciigraph.Width(80),
		asciigraph.Caption("radius of gyration (body 0)"),
	)
	fmt.Println(graph)
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	meta, frames, err := loadRun(args[0])
	if err != nil {
		return err
	}
	return storage.WriteFramesCSV(os.Stdout, meta.Bodies, frames)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	meta, frames, err := loadRun(args[0])
	if err != nil {
		return err
	}

	result := &sim.Result{
		Frames:     frames,
		Metrics:    meta.Metrics,
		StepsTaken: int(meta.Duration/meta.Dt + 0.5),
	}

	if jsonOut != "" {
		return storage.ExportJSON(jsonOut, meta.Preset, meta.Dt, meta.Duration, result)
	}
	return storage.WriteJSON(os.Stdout, meta.Preset, meta.Dt, meta.Duration, result)
}

func renderSVG(cmd *cobra.Command, args []string) error {
	cfg, name, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	sc, err := cfg.BuildScene()
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	result, err := sim.New(sc).WithLogger(logger).Run(ctx, cfg.SimConfig())
	if err != nil {
		return fmt.Errorf("simulation failed: %w", err)
	}

	var out string
	switch {
	case trajectory:
		out = export.TrajectorySVG(result.Frames, sc.HalfExtent, width, height)
	case braille:
		c := viz.NewCanvas(width/8, height/16)
		viz.RenderScene(c, viz.NewViewport(c, sc.HalfExtent), sc, samples, false)
		out = export.CanvasToSVG(c, 4)
	default:
		out = export.OutlineSVG(sc, width, height, samples)
	}

	if err := os.WriteFile(outPath, []byte(out), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s (%s, t=%.1fs)\n", outPath, name, cfg.Duration)
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, name, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	sc, err := cfg.BuildScene()
	if err != nil {
		return err
	}
	logger.Debug("starting live view", "preset", name, "bodies", len(sc.Bodies))
	return viz.Run(sc, cfg.Dt, name)
}

func runGUI(cmd *cobra.Command, args []string) error {
	if preset == "" && configFile == "" {
		return gui.RunInteractive()
	}
	cfg, name, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	return gui.Run(cfg, name)
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tBODIES\tPOINTS\tRING\tLINK\tSHAPE\tGRAVITY")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		points := 0
		for _, b := range p.Bodies {
			points += b.Points
		}
		fmt.Fprintf(w, "%s\t%d\t%d\t%.1f/%.1f\t%.1f/%.1f\t%.1f/%.1f\t%.0f\n",
			name, len(p.Bodies), points,
			p.Springs.Ring.Strength, p.Springs.Ring.Damping,
			p.Springs.Constraint.Strength, p.Springs.Constraint.Damping,
			p.Springs.Shape.Strength, p.Springs.Shape.Damping,
			p.Gravity.Y,
		)
	}
	return w.Flush()
}

func initConfig(cmd *cobra.Command, args []string) error {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return fmt.Errorf("unknown preset: %s", preset)
		}
	}
	if err := config.Save(args[0], cfg); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", args[0])
	return nil
}

func benchPresets(cmd *cobra.Command, args []string) error {
	dts := []float64{1.0 / 120, 1.0 / 60, 1.0 / 30}
	const benchDuration = 5.0

	fmt.Printf("benchmarking presets (%.0fs each)\n\n", benchDuration)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tDT\tSTEPS\tTIME\tSTEPS/SEC\tSTABLE")

	for _, name := range config.ListPresets() {
		for _, d := range dts {
			cfg := config.GetPreset(name)
			cfg.Dt = d
			cfg.Duration = benchDuration
			cfg.RecordEvery = 1 << 30

			sc, err := cfg.BuildScene()
			if err != nil {
				return err
			}

			start := time.Now()
			result, err := sim.New(sc).Run(context.Background(), cfg.SimConfig())
			if err != nil {
				return err
			}
			elapsed := time.Since(start)

			stepsPerSec := float64(result.StepsTaken) / elapsed.Seconds()
			fmt.Fprintf(w, "%s\t%.4fs\t%d\t%v\t%.0f\t%t\n",
				name, d, result.StepsTaken, elapsed.Round(time.Microsecond), stepsPerSec, len(result.Errors) == 0)
		}
	}

	return w.Flush()
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	meta, frames, err := loadRun(args[0])
	if err != nil {
		return err
	}
	if len(frames) < 4 {
		return fmt.Errorf("need at least 4 frames, got %d", len(frames))
	}

	fmt.Printf("wobble analysis: %s\n", meta.ID)
	fmt.Printf("preset: %s\n\n", meta.Preset)

	series := analysis.WobbleSeries(frames, 0)
	sampleDt := frames[1].Time - frames[0].Time
	spectrum := analysis.PowerSpectrum(series)

	plotData := spectrum
	if len(plotData) > 100 {
		plotData = plotData[:100]
	}
	graph := asciigraph.Plot(plotData,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption("wobble spectrum (body 0)"),
	)
	fmt.Println(graph)
	fmt.Println()

	freq := analysis.DominantFrequency(series, sampleDt)
	fmt.Printf("dominant frequency: %.3f hz\n", freq)
	if freq > 0 {
		fmt.Printf("period: %.3f s\n", 1.0/freq)
	}

	return nil
}

func runEnsemble(cmd *cobra.Command, args []string) error {
	cfg, name, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	sc, err := cfg.BuildScene()
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	logger.Info("running ensemble", "preset", name, "runs", numRuns, "seed", cfg.Seed)
	start := time.Now()
	results, err := sim.NewEnsemble(sc, numRuns, cfg.Seed, metrics.All).Run(ctx, cfg.SimConfig())
	if err != nil {
		return fmt.Errorf("ensemble failed: %w", err)
	}
	logger.Debug("ensemble finished", "elapsed", time.Since(start))

	names := metrics.Names()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SEED\t"+strings.ToUpper(strings.Join(names, "\t")))
	for i, r := range results {
		row := []string{fmt.Sprintf("%d", cfg.Seed+int64(i))}
		for _, n := range names {
			row = append(row, fmt.Sprintf("%.4f", r.Metrics[n]))
		}
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	return w.Flush()
}

func runScenario(cmd *cobra.Command, args []string) error {
	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	results, runErr := automation.RunScenario(ctx, scenario, logger)
	for i, r := range results {
		cfg, err := scenario.Steps[i].Resolve()
		if err != nil {
			return err
		}
		id, err := st.Save(storage.RunMetadata{
			Preset:    r.Name,
			Seed:      cfg.Seed,
			Dt:        cfg.Dt,
			Duration:  cfg.Duration,
			TimeScale: cfg.TimeScale,
		}, r.Result)
		if err != nil {
			return fmt.Errorf("saving %s: %w", r.Name, err)
		}
		fmt.Printf("%s: %s (%d steps)\n", r.Name, id, r.Result.StepsTaken)
	}
	return runErr
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, name, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	logger.Info("sweeping", "preset", name, "param", sweepParam, "min", sweepMin, "max", sweepMax)
	results, err := automation.RunSweep(ctx, &automation.ParameterSweep{
		Base:      cfg,
		ParamName: sweepParam,
		ParamMin:  sweepMin,
		ParamMax:  sweepMax,
		NumSteps:  sweepSteps,
	}, logger)
	if err != nil {
		return err
	}

	names := metrics.Names()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, strings.ToUpper(sweepParam)+"\tSTABLE\t"+strings.ToUpper(strings.Join(names, "\t")))
	deformation := make([]float64, len(results))
	for i, r := range results {
		row := []string{fmt.Sprintf("%.4g", r.ParamValue), fmt.Sprintf("%t", r.Stable)}
		for _, n := range names {
			row = append(row, fmt.Sprintf("%.4f", r.Metrics[n]))
		}
		fmt.Fprintln(w, strings.Join(row, "\t"))
		deformation[i] = r.Metrics["max_deformation"]
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if len(deformation) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(deformation,
			asciigraph.Height(8),
			asciigraph.Caption("max deformation vs "+sweepParam),
		))
	}
	return nil
}

// parseGrid reads "name=min:max:n".
func parseGrid(arg string) (string, []float64, error) {
	name, rng, ok := strings.Cut(arg, "=")
	if !ok {
		return "", nil, fmt.Errorf("bad grid %q, want name=min:max:n", arg)
	}
	var lo, hi float64
	var n int
	if _, err := fmt.Sscanf(rng, "%g:%g:%d", &lo, &hi, &n); err != nil {
		return "", nil, fmt.Errorf("bad grid %q: %w", arg, err)
	}
	return name, optim.Linspace(lo, hi, n), nil
}

func runOptimize(cmd *cobra.Command, args []string) error {
	cfg, name, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	var params []string
	var ranges [][]float64
	for _, g := range searchGrid {
		p, values, err := parseGrid(g)
		if err != nil {
			return err
		}
		params = append(params, p)
		ranges = append(ranges, values)
	}

	ctx, cancel := signalContext()
	defer cancel()

	logger.Info("searching", "preset", name, "params", params, "metric", searchScore)
	best, score, err := optim.NewGridSearch(params, ranges).Search(ctx, cfg, searchScore)
	if err != nil {
		return err
	}
	if best == nil {
		return fmt.Errorf("no combination could be evaluated")
	}

	fmt.Printf("best %s: %.6f\n", searchScore, score)
	for _, p := range params {
		fmt.Printf("  %s = %.4g\n", p, best[p])
	}
	return nil
}
