package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/san-kum/gravwell/internal/automation"
	"github.com/san-kum/gravwell/internal/config"
	"github.com/san-kum/gravwell/internal/export"
	"github.com/san-kum/gravwell/internal/gui"
	"github.com/san-kum/gravwell/internal/logging"
	"github.com/san-kum/gravwell/internal/metrics"
	"github.com/san-kum/gravwell/internal/sim"
	"github.com/san-kum/gravwell/internal/storage"
	"github.com/san-kum/gravwell/internal/viz"
	"github.com/san-kum/gravwell/internal/world"
)

var (
	dataDir    string
	configFile string
	preset     string
	seed       int64
	frameRate  int
	logFile    string
	// window
	width  int
	height int
	// terminal
	scale float64
	theme string
	// headless
	frames   int
	svgPath  string
	jsonOut  bool
	noSave   bool
	column   string
	outPath  string
	param    string
	paramMin float64
	paramMax float64
	steps    int
	trials   int
	perturb  float64
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "gravwell: reading .env: %v\n", err)
	}

	rootCmd := &cobra.Command{
		Use:           "gravwell",
		Short:         "drag to launch orbiters around a gravity well",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runGUI,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", config.DefaultDataDir, "run data directory")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "physics preset")
	pf.Int64Var(&seed, "seed", 0, "random seed (0 = clock)")
	pf.IntVar(&frameRate, "fps", config.DefaultFPS, "frame rate")
	pf.StringVar(&logFile, "log-file", "gravwell.log", "log file for the terminal view")

	rootCmd.Flags().IntVar(&width, "width", config.DefaultWindowWidth, "window width")
	rootCmd.Flags().IntVar(&height, "height", config.DefaultWindowHeight, "window height")

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "open the gravity well in a window",
		Args:  cobra.NoArgs,
		RunE:  runGUI,
	}
	guiCmd.Flags().IntVar(&width, "width", config.DefaultWindowWidth, "window width")
	guiCmd.Flags().IntVar(&height, "height", config.DefaultWindowHeight, "window height")

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "open the gravity well in the terminal",
		Args:  cobra.NoArgs,
		RunE:  runTUI,
	}
	tuiCmd.Flags().Float64Var(&scale, "scale", config.DefaultTUIScale, "surface units per braille dot")
	tuiCmd.Flags().StringVar(&theme, "theme", config.DefaultTheme, "theme: "+strings.Join(viz.ThemeNames(), ", "))

	runCmd := &cobra.Command{
		Use:   "run [scenario.yaml]",
		Short: "replay a scenario headlessly and record it",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}
	runCmd.Flags().IntVar(&frames, "frames", 0, "override the scenario frame count")
	runCmd.Flags().StringVar(&svgPath, "svg", "", "write the last frame as svg")
	runCmd.Flags().BoolVar(&jsonOut, "json", false, "print the run as json")
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "do not record the run")

	snapshotCmd := &cobra.Command{
		Use:   "snapshot [scenario.yaml]",
		Short: "render the last frame of a scenario as svg",
		Args:  cobra.ExactArgs(1),
		RunE:  snapshot,
	}
	snapshotCmd.Flags().IntVar(&frames, "frames", 0, "override the scenario frame count")
	snapshotCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run results",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&column, "column", "", "plot one column: "+strings.Join(sim.Columns(), ", "))
	plotCmd.Flags().StringVar(&svgPath, "svg", "", "write the column as an svg chart")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "print a recorded run as json",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep [scenario.yaml]",
		Short: "replay a scenario across a range of one parameter",
		Args:  cobra.ExactArgs(1),
		RunE:  sweepScenario,
	}
	sweepCmd.Flags().StringVar(&param, "param", "mass_divisor", "parameter: "+strings.Join(automation.Params(), ", "))
	sweepCmd.Flags().Float64Var(&paramMin, "min", 250, "first value")
	sweepCmd.Flags().Float64Var(&paramMax, "max", 1000, "last value")
	sweepCmd.Flags().IntVar(&steps, "steps", 4, "number of values")

	monteCarloCmd := &cobra.Command{
		Use:   "montecarlo [scenario.yaml]",
		Short: "replay a scenario with jittered launches",
		Args:  cobra.ExactArgs(1),
		RunE:  monteCarlo,
	}
	monteCarloCmd.Flags().IntVar(&trials, "trials", 20, "number of trials")
	monteCarloCmd.Flags().Float64Var(&perturb, "perturb", 5, "release point jitter in surface units")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list physics presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tMASS DIV\tRADIUS\tTRAIL\tLAUNCH\tFADE")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name).Physics
				fmt.Fprintf(w, "%s\t%g\t%g\t%d\t%g\t%g\n",
					name, p.MassDivisor, p.AttractorRadius, p.TrailLength, p.LaunchScale, p.FadeAlpha)
			}
			return w.Flush()
		},
	}

	rootCmd.AddCommand(guiCmd, tuiCmd, runCmd, snapshotCmd, listCmd, plotCmd, exportCmd, sweepCmd, monteCarloCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "gravwell: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig layers the config file, the preset and any flag the user set.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		var err error
		if cfg, err = config.Load(configFile); err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}
	if preset != "" {
		if err := config.ApplyPreset(cfg, preset); err != nil {
			return nil, fmt.Errorf("%w (available: %v)", err, config.ListPresets())
		}
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("fps") {
		cfg.FPS = frameRate
	}
	if flags.Changed("data") || cfg.DataDir == "" {
		cfg.DataDir = dataDir
	}
	if flags.Changed("width") {
		cfg.Window.Width = width
	}
	if flags.Changed("height") {
		cfg.Window.Height = height
	}
	if flags.Changed("scale") {
		cfg.TUI.Scale = scale
	}
	if flags.Changed("theme") {
		cfg.Theme = theme
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newWorld(cfg *config.Config) (*world.World, error) {
	return world.New(cfg.World())
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	w, err := newWorld(cfg)
	if err != nil {
		return err
	}
	log := logging.New(os.Stderr)
	return gui.Run(w, gui.Options{
		Width:  cfg.Window.Width,
		Height: cfg.Window.Height,
		FPS:    cfg.FPS,
		Log:    log,
	})
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	w, err := newWorld(cfg)
	if err != nil {
		return err
	}

	log, closer, err := logging.OpenFile(logFile)
	if err != nil {
		return err
	}
	defer closer.Close()

	err = viz.Run(w, viz.Options{
		FPS:   cfg.FPS,
		Scale: cfg.TUI.Scale,
		Theme: cfg.Theme,
		Log:   log,
	})
	if errors.Is(err, world.ErrNoSurface) {
		return fmt.Errorf("%w: stdout is not a terminal, try 'gravwell run'", err)
	}
	return err
}

// loadScenario reads a scenario and applies the --frames override.
func loadScenario(cmd *cobra.Command, path string) (*automation.Scenario, error) {
	sc, err := automation.LoadScenario(path)
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("frames") {
		sc.Frames = frames
		if err := sc.Validate(); err != nil {
			return nil, err
		}
	}
	return sc, nil
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func runScenario(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	sc, err := loadScenario(cmd, args[0])
	if err != nil {
		return err
	}

	opts := automation.Options{
		World:   cfg.World(),
		Metrics: metrics.Standard,
		Log:     logging.New(os.Stderr),
	}
	var svg *export.SVG
	if svgPath != "" {
		svg = export.NewSVG(sc.Width, sc.Height)
		opts.Surface = svg
	}

	ctx, cancel := signalContext()
	defer cancel()

	result, err := automation.RunScenario(ctx, sc, opts)
	if err != nil {
		return err
	}

	meta := storage.RunMetadata{
		Scenario: sc.Name,
		Seed:     opts.World.Seed,
		Width:    sc.Width,
		Height:   sc.Height,
	}
	if sc.Seed != 0 {
		meta.Seed = sc.Seed
	}

	if svg != nil {
		if err := writeFile(svgPath, svg); err != nil {
			return err
		}
	}

	if !noSave {
		st := storage.New(cfg.DataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(meta, result)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "run saved: %s\n", runID)
	}

	if jsonOut {
		return storage.ExportJSON(os.Stdout, meta, result)
	}
	printSummary(os.Stdout, result)
	return nil
}

func printSummary(out io.Writer, result *sim.Result) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "frames\t%d\n", len(result.Frames))
	fmt.Fprintf(w, "launched\t%d\n", result.Launched)
	fmt.Fprintf(w, "captured\t%d\n", result.Captured)
	fmt.Fprintf(w, "escaped\t%d\n", result.Escaped)
	fmt.Fprintf(w, "live\t%d\n", result.Live())
	for _, m := range metrics.Standard() {
		if v, ok := result.Metrics[m.Name()]; ok {
			fmt.Fprintf(w, "%s\t%.4f\n", m.Name(), v)
		}
	}
	w.Flush()
}

func writeFile(path string, wt io.WriterTo) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := wt.WriteTo(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func snapshot(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	sc, err := loadScenario(cmd, args[0])
	if err != nil {
		return err
	}

	svg := export.NewSVG(sc.Width, sc.Height)
	ctx, cancel := signalContext()
	defer cancel()
	if _, err := automation.RunScenario(ctx, sc, automation.Options{World: cfg.World(), Surface: svg}); err != nil {
		return err
	}

	if outPath == "" {
		_, err := svg.WriteTo(os.Stdout)
		return err
	}
	return writeFile(outPath, svg)
}

func listRuns(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	st := storage.New(cfg.DataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCENARIO\tTIME\tFRAMES\tSEED\tLAUNCHED\tCAPTURED\tESCAPED")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\t%d\t%d\n",
			run.ID,
			run.Scenario,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Frames,
			run.Seed,
			run.Launched,
			run.Captured,
			run.Escaped,
		)
	}

	return w.Flush()
}

// loadRun rebuilds a result from a recorded run.
func loadRun(st *storage.Store, runID string) (*storage.RunMetadata, *sim.Result, error) {
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	rows, err := st.LoadFrames(runID)
	if err != nil {
		return nil, nil, err
	}
	return meta, &sim.Result{
		Frames:   rows,
		Metrics:  meta.Metrics,
		Launched: meta.Launched,
		Captured: meta.Captured,
		Escaped:  meta.Escaped,
	}, nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	meta, result, err := loadRun(storage.New(cfg.DataDir), args[0])
	if err != nil {
		return err
	}
	if len(result.Frames) < 2 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scenario: %s\n", meta.Scenario)
	fmt.Printf("frames: %d\n\n", len(result.Frames))

	cols := sim.Columns()
	if column != "" {
		cols = []string{column}
	}

	for _, col := range cols {
		data, ok := result.Series(col)
		if !ok {
			return fmt.Errorf("unknown column %q (available: %v)", col, sim.Columns())
		}

		if svgPath != "" && column != "" {
			return os.WriteFile(svgPath, []byte(export.SeriesToSVG(data, 800, 300, "#64ffda")), 0644)
		}

		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(col+" vs frame"),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	meta, result, err := loadRun(storage.New(cfg.DataDir), args[0])
	if err != nil {
		return err
	}
	return storage.ExportJSON(os.Stdout, *meta, result)
}

func sweepScenario(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	sweep := &automation.ParameterSweep{ParamName: param, ParamMin: paramMin, ParamMax: paramMax, NumSteps: steps}
	results, err := automation.RunSweep(ctx, sc, sweep, automation.Options{World: cfg.World(), Log: logging.New(os.Stderr)})
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tCAPTURED\tESCAPED\tLIVE\tENERGY\n", strings.ToUpper(param))
	for _, r := range results {
		fmt.Fprintf(w, "%g\t%d\t%d\t%d\t%.4f\n", r.ParamValue, r.Captured, r.Escaped, r.Live, r.Energy)
	}
	return w.Flush()
}

func monteCarlo(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	mc := &automation.MonteCarloConfig{Perturbation: perturb, NumTrials: trials, Seed: cfg.World().Seed}
	results, err := automation.RunMonteCarlo(ctx, sc, mc, automation.Options{World: cfg.World(), Log: logging.New(os.Stderr)})
	if err != nil {
		return err
	}

	captured, escaped, live := automation.MonteCarloStats(results)
	total := captured + escaped + live
	fmt.Printf("trials: %d\n", len(results))
	if total == 0 {
		fmt.Println("no launches")
		return nil
	}
	fmt.Printf("captured: %d (%.1f%%)\n", captured, 100*float64(captured)/float64(total))
	fmt.Printf("escaped:  %d (%.1f%%)\n", escaped, 100*float64(escaped)/float64(total))
	fmt.Printf("live:     %d (%.1f%%)\n", live, 100*float64(live)/float64(total))
	return nil
}
