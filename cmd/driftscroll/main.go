package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/driftscroll/internal/analysis"
	"github.com/san-kum/driftscroll/internal/automation"
	"github.com/san-kum/driftscroll/internal/config"
	"github.com/san-kum/driftscroll/internal/consumers/audio"
	"github.com/san-kum/driftscroll/internal/engine"
	"github.com/san-kum/driftscroll/internal/experiment"
	"github.com/san-kum/driftscroll/internal/export"
	"github.com/san-kum/driftscroll/internal/scroll"
	"github.com/san-kum/driftscroll/internal/storage"
	"github.com/san-kum/driftscroll/internal/telemetry"
	"github.com/san-kum/driftscroll/internal/tui"
)

var (
	dataDir    string
	configFile string

	ease       float64
	integrator string
	fps        float64
	frames     int
	noSave     bool

	compareIntegrators []string
	compareEases       []float64

	withAudio bool

	mcTrials int
	mcEvents int
	mcDelta  float64
	mcRewind float64
	mcSeed   int64

	svgWidth  int
	svgHeight int
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "driftscroll",
		Short:         "eased scroll engine with momentum-driven consumers",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runLive,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".driftscroll", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")

	runCmd := &cobra.Command{
		Use:   "run [preset]",
		Short: "replay a scripted scroll session and save it",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runScript,
	}
	addEngineFlags(runCmd)
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the run")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot position, momentum and progress of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "momentum spectrum and phase portrait",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	compareCmd := &cobra.Command{
		Use:   "compare [preset]",
		Short: "replay one script across integrators and ease values",
		Args:  cobra.MaximumNArgs(1),
		RunE:  compareRuns,
	}
	compareCmd.Flags().StringSliceVar(&compareIntegrators, "integrators", []string{"exponential", "timed"}, "integrators to compare")
	compareCmd.Flags().Float64SliceVar(&compareEases, "eases", nil, "ease factors to compare (default: config ease)")
	compareCmd.Flags().Float64Var(&fps, "fps", 0, "frame rate override")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Run: func(cmd *cobra.Command, args []string) {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tINTEG\tEASE\tFPS\tFRAMES\tEVENTS")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%s\t%.3f\t%.0f\t%d\t%d\n",
					name, p.Engine.Integrator, p.Engine.Ease, p.Engine.FPS, p.Engine.Frames, len(p.Script))
			}
			w.Flush()
		},
	}

	liveCmd := &cobra.Command{
		Use:   "live [preset]",
		Short: "scroll a document in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	addEngineFlags(liveCmd)
	liveCmd.Flags().BoolVar(&withAudio, "audio", false, "play the momentum synth")

	initCmd := &cobra.Command{
		Use:   "init [path] [preset]",
		Short: "write a config file from a preset or the defaults",
		Args:  cobra.RangeArgs(1, 2),
		RunE:  initConfig,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "write a run's frames as csv to stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return storage.New(dataDir).ExportCSV(os.Stdout, args[0])
		},
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "write a run as json to stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return storage.New(dataDir).ExportJSON(os.Stdout, args[0])
		},
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "write a run's target and position as svg to stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().IntVar(&svgWidth, "width", 800, "svg width")
	exportSVGCmd.Flags().IntVar(&svgHeight, "height", 300, "svg height")

	sweepCmd := &cobra.Command{
		Use:   "sweep [file.yaml]",
		Short: "replay a preset over a grid of engine parameters",
		Args:  cobra.ExactArgs(1),
		RunE:  runSweep,
	}

	monteCarloCmd := &cobra.Command{
		Use:   "montecarlo [preset]",
		Short: "fuzz the engine with random input bursts",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runMonteCarlo,
	}
	monteCarloCmd.Flags().IntVar(&mcTrials, "trials", 100, "number of trials")
	monteCarloCmd.Flags().IntVar(&mcEvents, "events", 20, "input events per trial")
	monteCarloCmd.Flags().Float64Var(&mcDelta, "max-delta", 1500, "largest wheel delta in pixels")
	monteCarloCmd.Flags().Float64Var(&mcRewind, "rewind-odds", 0.05, "probability an event is a rewind")
	monteCarloCmd.Flags().Int64Var(&mcSeed, "seed", 0, "random seed (0: time based)")

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, analyzeCmd, compareCmd, presetsCmd, liveCmd, initCmd,
		exportCSVCmd, exportJSONCmd, exportSVGCmd, sweepCmd, monteCarloCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func addEngineFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&ease, "ease", config.DefaultEase, "ease factor in (0, 1]")
	cmd.Flags().StringVar(&integrator, "integrator", config.DefaultIntegrator, "integrator (exponential, timed)")
	cmd.Flags().Float64Var(&fps, "fps", config.DefaultFPS, "frame rate")
	cmd.Flags().IntVar(&frames, "frames", config.DefaultFrames, "frames to replay")
}

// loadConfig resolves, in increasing priority: defaults, preset, config
// file, DRIFTSCROLL_* environment, explicit flags.
func loadConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if len(args) > 0 {
		cfg = config.GetPreset(args[0])
		if cfg == nil {
			return nil, fmt.Errorf("%w: %s (available: %s)", scroll.ErrUnknownPreset, args[0], strings.Join(config.ListPresets(), ", "))
		}
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		if len(loaded.Script) == 0 {
			loaded.Script = cfg.Script
		}
		if loaded.Name == "" {
			loaded.Name = cfg.Name
		}
		cfg = loaded
	}

	if err := config.ApplyEnv(cfg); err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("ease") {
		cfg.Engine.Ease = ease
	}
	if flags.Changed("integrator") {
		cfg.Engine.Integrator = integrator
	}
	if flags.Changed("fps") {
		cfg.Engine.FPS = fps
	}
	if flags.Changed("frames") {
		cfg.Engine.Frames = frames
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runScript(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	shutdown, err := telemetry.Setup(ctx, "driftscroll")
	if err != nil {
		return fmt.Errorf("telemetry: %w", err)
	}
	defer shutdown(context.Background())

	exp, err := experiment.New(cfg, experiment.NewRegistry())
	if err != nil {
		return err
	}

	name := cfg.Name
	if name == "" {
		name = "custom"
	}
	fmt.Printf("running %s: %s integrator, ease %.3f, %d frames @ %.0f fps, %d events\n",
		name, cfg.Engine.Integrator, cfg.Engine.Ease, cfg.RunConfig().Frames, cfg.Engine.FPS, len(cfg.Script))

	start := time.Now()
	result, err := exp.Run(ctx)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	fmt.Printf("completed: %d frames in %v\n", result.StepsTaken, elapsed)
	for _, e := range result.Errors {
		fmt.Printf("warning: %v\n", e)
	}

	if n := len(result.Samples); n > 0 {
		last := result.Samples[n-1]
		fmt.Printf("final: position %.2f  target %.2f  momentum %+.3f  progress %.3f\n",
			last.State.Position, last.State.Target, last.State.Velocity, last.Progress)
	}
	printMetrics(result.Metrics)

	if noSave {
		return nil
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	rc := cfg.RunConfig()
	runID, err := st.Save(storage.RunMetadata{
		Preset:     name,
		Integrator: cfg.Engine.Integrator,
		Ease:       cfg.Engine.Ease,
		FPS:        rc.FPS,
		Frames:     rc.Frames,
		Content:    rc.Content,
		Viewport:   rc.Viewport,
	}, result)
	if err != nil {
		return err
	}
	fmt.Printf("saved: %s\n", runID)
	return nil
}

func printMetrics(m map[string]float64) {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %-18s %12.4f\n", name, m[name])
	}
}

func listRuns(cmd *cobra.Command, args []string) error {
	runs, err := storage.New(dataDir).List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPRESET\tTIME\tINTEG\tEASE\tFPS\tFRAMES")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.3f\t%.0f\t%d\n",
			run.ID,
			run.Preset,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Integrator,
			run.Ease,
			run.FPS,
			run.Frames,
		)
	}
	return w.Flush()
}

func loadRun(runID string) (*storage.RunMetadata, *engine.Result, error) {
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	samples, err := st.LoadSamples(runID)
	if err != nil {
		return nil, nil, err
	}
	if len(samples) == 0 {
		return nil, nil, fmt.Errorf("run %s has no frames", runID)
	}
	return meta, &engine.Result{Samples: samples, Metrics: meta.Metrics, StepsTaken: len(samples)}, nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, result, err := loadRun(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("preset: %s (%s, ease %.3f)\n", meta.Preset, meta.Integrator, meta.Ease)
	fmt.Printf("samples: %d\n\n", len(result.Samples))

	for _, field := range []struct{ name, caption string }{
		{"position", "position (px)"},
		{"momentum", "momentum (px to target)"},
		{"progress", "progress"},
	} {
		graph := asciigraph.Plot(result.Series(field.name),
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(field.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	meta, result, err := loadRun(args[0])
	if err != nil {
		return err
	}

	momentum := result.Series("momentum")
	fmt.Printf("momentum analysis: %s\n", meta.ID)
	fmt.Printf("preset: %s (%s @ %.0f fps)\n\n", meta.Preset, meta.Integrator, meta.FPS)

	if ps := analysis.Spectrum(momentum); len(ps) > 2 {
		graph := asciigraph.Plot(ps[1:],
			asciigraph.Height(12),
			asciigraph.Width(80),
			asciigraph.Caption("momentum spectrum (DC removed)"),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	freq, power := analysis.Dominant(momentum, meta.FPS)
	fmt.Printf("dominant frequency: %.3f hz (magnitude %.2f)\n", freq, power)
	fmt.Printf("high band ratio:    %.3f\n", analysis.HighBandRatio(momentum))

	peak := 0.0
	for _, v := range momentum {
		peak = math.Max(peak, math.Abs(v))
	}
	fmt.Printf("peak momentum:      %.2f\n\n", peak)

	fmt.Println("phase portrait (position vs momentum):")
	fmt.Print(analysis.PortraitASCII(analysis.Portrait(result.Series("position"), momentum), 70, 18))
	return nil
}

func compareRuns(cmd *cobra.Command, args []string) error {
	cfg := config.DefaultConfig()
	if len(args) > 0 {
		cfg = config.GetPreset(args[0])
		if cfg == nil {
			return fmt.Errorf("%w: %s", scroll.ErrUnknownPreset, args[0])
		}
	}
	if cmd.Flags().Changed("fps") {
		cfg.Engine.FPS = fps
	}

	reg := experiment.NewRegistry()
	variants, err := experiment.Variants(cfg, reg, compareIntegrators, compareEases)
	if err != nil {
		return err
	}

	rc := cfg.RunConfig()
	fmt.Printf("comparing %d variants (%d frames @ %.0f fps)\n\n", len(variants), rc.Frames, rc.FPS)

	start := time.Now()
	results, err := engine.NewEnsemble(variants...).Run(context.Background(), cfg.Script, rc)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "VARIANT\tFINAL_POS\tPEAK_MOM\tMOVING\tOVERSHOOT\tBOUNDS")
	for i, v := range variants {
		r := results[i]
		final := 0.0
		if n := len(r.Samples); n > 0 {
			final = r.Samples[n-1].State.Position
		}
		fmt.Fprintf(w, "%s\t%.3f\t%.2f\t%.0f\t%.0f\t%.0f\n",
			v.Name, final,
			r.Metrics["peak_momentum"],
			r.Metrics["moving_frames"],
			r.Metrics["overshoots"],
			r.Metrics["bound_violations"],
		)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Printf("\nelapsed: %v\n", elapsed)
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return err
	}
	logFile, err := tea.LogToFile(filepath.Join(dataDir, "live.log"), "driftscroll")
	if err != nil {
		return err
	}
	defer logFile.Close()
	logger := log.Default()

	integ, err := experiment.NewRegistry().GetIntegrator(cfg.Engine.Integrator)
	if err != nil {
		return err
	}
	host, err := tui.NewHost(cfg, integ, logger)
	if err != nil {
		return err
	}

	var player *audio.Player
	if withAudio {
		player = audio.NewPlayer(audio.NewSynth(host.Modulator()))
		if err := player.Start(); err != nil {
			logger.Printf("audio disabled: %v", err)
			player = nil
		} else {
			defer player.Stop()
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err = tui.Run(ctx, host, player)
	if errors.Is(err, tea.ErrProgramKilled) || errors.Is(err, context.Canceled) {
		err = nil
	}

	for _, l := range host.Loops() {
		if l.Panics() > 0 {
			fmt.Printf("%s loop: %d frames, %d recovered panics (last: %v)\n", l.Name(), l.Frames(), l.Panics(), l.LastPanic())
		}
	}
	return err
}

func initConfig(cmd *cobra.Command, args []string) error {
	cfg := config.DefaultConfig()
	if len(args) > 1 {
		cfg = config.GetPreset(args[1])
		if cfg == nil {
			return fmt.Errorf("%w: %s", scroll.ErrUnknownPreset, args[1])
		}
	}
	if err := config.Save(args[0], cfg); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", args[0])
	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	_, result, err := loadRun(args[0])
	if err != nil {
		return err
	}
	fmt.Println(export.RunToSVG(result.Samples, svgWidth, svgHeight))
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	sweep, err := automation.LoadSweep(args[0])
	if err != nil {
		return err
	}

	results, err := automation.RunSweep(context.Background(), sweep, experiment.NewRegistry(), os.Stdout)
	if err != nil {
		return err
	}

	objective := sweep.Objective
	if objective == "" {
		objective = "moving_frames"
	}

	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "INTEG\tPARAMS\tFINAL_POS\t%s\n", strings.ToUpper(objective))
	for _, r := range results {
		fmt.Fprintf(w, "%s\t%v\t%.3f\t%.3f\n", r.Integrator, r.Params, r.Final, r.Metrics[objective])
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if best, ok := automation.Best(results, objective); ok {
		fmt.Printf("\nbest %s: %s %v (%.3f)\n", objective, best.Integrator, best.Params, best.Metrics[objective])
	}
	return nil
}

func runMonteCarlo(cmd *cobra.Command, args []string) error {
	preset := "keyboard"
	if len(args) > 0 {
		preset = args[0]
		if config.GetPreset(preset) == nil {
			return fmt.Errorf("%w: %s", scroll.ErrUnknownPreset, preset)
		}
	}

	results, err := automation.RunMonteCarlo(context.Background(), &automation.MonteCarloConfig{
		Preset:     preset,
		Trials:     mcTrials,
		Events:     mcEvents,
		MaxDelta:   mcDelta,
		RewindOdds: mcRewind,
		Seed:       mcSeed,
	}, experiment.NewRegistry(), os.Stdout)
	if err != nil {
		return err
	}

	clean, broken := automation.MonteCarloStats(results)
	settled := 0
	for _, r := range results {
		if r.Settled {
			settled++
		}
	}
	fmt.Printf("\ntrials: %d  clean: %d  broken: %d  settled: %d\n", len(results), clean, broken, settled)
	for _, r := range results {
		if r.BoundViolations > 0 || r.Overshoots > 0 {
			fmt.Printf("  trial %d: %.0f bound violations, %.0f overshoots\n", r.TrialID, r.BoundViolations, r.Overshoots)
		}
	}
	return nil
}
