package main

import (
	"encoding/csv"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/fieldlab/internal/config"
	"github.com/san-kum/fieldlab/internal/field"
	"github.com/san-kum/fieldlab/internal/gui"
	"github.com/san-kum/fieldlab/internal/metrics"
	"github.com/san-kum/fieldlab/internal/ramp"
	"github.com/san-kum/fieldlab/internal/render"
	"github.com/san-kum/fieldlab/internal/scenario"
	"github.com/san-kum/fieldlab/internal/storage"
	"github.com/san-kum/fieldlab/internal/tui"
)

var (
	dataDir    string
	configFile string
	preset     string
	rampName   string
	seed       int64
	// bench
	benchFrames  int
	benchCharges int
	benchGPU     bool
	// snapshot
	snapOut    string
	snapWidth  int
	snapHeight int
	snapTicks  int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "fieldlab",
		Short: "GPU electric potential field lab",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Default to the windowed viewer when no command given
			return gui.Run(loadConfig(cmd, ""))
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", config.DefaultDataDir, "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")
	rootCmd.PersistentFlags().StringVar(&rampName, "ramp", "", "color ramp")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 0, "random seed (0 = time)")

	guiCmd := &cobra.Command{
		Use:   "gui [scenario]",
		Short: "windowed viewer",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := ""
			if len(args) > 0 {
				name = args[0]
			}
			return gui.Run(loadConfig(cmd, name))
		},
	}

	tuiCmd := &cobra.Command{
		Use:   "tui [scenario]",
		Short: "terminal preview on the CPU grid",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig(cmd, "")
			if len(args) > 0 {
				cfg.Scenario = args[0]
			}
			return tui.Run(cfg.Scenario, cfg.Ramp, cfg.Seed)
		},
	}

	probeCmd := &cobra.Command{
		Use:   "probe",
		Short: "check driver float texture support",
		RunE:  runProbe,
	}

	benchCmd := &cobra.Command{
		Use:   "bench [scenario]",
		Short: "benchmark diff accumulation",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runBench,
	}
	benchCmd.Flags().IntVar(&benchFrames, "frames", config.DefaultFrames, "frames to run")
	benchCmd.Flags().IntVar(&benchCharges, "charges", config.DefaultCharges, "charge count for churn")
	benchCmd.Flags().BoolVar(&benchGPU, "gpu", false, "use the GPU pipeline (hidden window)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list bench runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run frame times",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run frames to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	snapshotCmd := &cobra.Command{
		Use:   "snapshot [scenario]",
		Short: "render a scenario to PNG off-screen",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSnapshot,
	}
	snapshotCmd.Flags().StringVar(&snapOut, "out", "field.png", "output file")
	snapshotCmd.Flags().IntVar(&snapWidth, "width", 800, "image width")
	snapshotCmd.Flags().IntVar(&snapHeight, "height", 600, "image height")
	snapshotCmd.Flags().IntVar(&snapTicks, "ticks", 60, "scenario ticks before capture")

	scenariosCmd := &cobra.Command{
		Use:   "scenarios",
		Short: "list scenarios",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := scenario.NewRegistry()
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tDESCRIPTION")
			for _, name := range reg.Names() {
				sc, err := reg.Get(name)
				if err != nil {
					continue
				}
				fmt.Fprintf(w, "%s\t%s\n", sc.Name(), sc.Description())
			}
			return w.Flush()
		},
	}

	rampsCmd := &cobra.Command{
		Use:   "ramps",
		Short: "list color ramps",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tNEGATIVE\tZERO\tPOSITIVE\tSATURATES AT")
			for _, r := range ramp.Ramps {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.0f\n",
					r.Name, r.Negative.Hex(), r.Zero.Hex(), r.Positive.Hex(), r.PositiveScale)
			}
			return w.Flush()
		},
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [scenario]",
		Short: "list presets for a scenario",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for scenario: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	rootCmd.AddCommand(guiCmd, tuiCmd, probeCmd, benchCmd, listCmd, plotCmd,
		exportCmd, exportCSVCmd, snapshotCmd, scenariosCmd, rampsCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig resolves defaults, preset, config file, and flags, in that
// order. scenarioArg overrides the configured scenario when non-empty.
func loadConfig(cmd *cobra.Command, scenarioArg string) *config.Config {
	cfg := config.DefaultConfig()

	if scenarioArg != "" {
		cfg.Scenario = scenarioArg
	}

	if preset != "" {
		if p := config.GetPreset(cfg.Scenario, preset); p != nil {
			cfg.Scenario = p.Scenario
			if p.Ramp != "" {
				cfg.Ramp = p.Ramp
			}
			if p.Camera.Zoom != 0 {
				cfg.Camera = p.Camera
			}
			if p.Seed != 0 {
				cfg.Seed = p.Seed
			}
			if p.Bench.Frames != 0 {
				cfg.Bench = p.Bench
			}
		} else {
			fmt.Fprintf(os.Stderr, "unknown preset %q for %s (available: %v)\n",
				preset, cfg.Scenario, config.ListPresets(cfg.Scenario))
		}
	}

	if configFile != "" {
		if loaded, err := config.Load(configFile); err == nil {
			cfg = loaded
			if scenarioArg != "" {
				cfg.Scenario = scenarioArg
			}
		} else {
			fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		}
	}

	if rampName != "" {
		cfg.Ramp = rampName
	}
	if seed != 0 {
		cfg.Seed = seed
	}
	if dataDir != "" {
		cfg.DataDir = dataDir
	}
	return cfg
}

func runProbe(cmd *cobra.Command, args []string) error {
	rl.SetConfigFlags(rl.FlagWindowHidden)
	rl.InitWindow(64, 64, "fieldlab probe")
	defer rl.CloseWindow()

	if err := render.ProbeFloatTextures(); err != nil {
		fmt.Printf("float textures: UNSUPPORTED (%v)\n", err)
		return err
	}
	fmt.Println("float textures: ok")
	return nil
}

func runBench(cmd *cobra.Command, args []string) error {
	cfg := loadConfig(cmd, "")
	scenarioName := "churn"
	if len(args) > 0 {
		scenarioName = args[0]
	}

	if !cmd.Flags().Changed("frames") && cfg.Bench.Frames != 0 {
		benchFrames = cfg.Bench.Frames
	}
	if !cmd.Flags().Changed("charges") && cfg.Bench.Charges != 0 {
		benchCharges = cfg.Bench.Charges
	}
	if !cmd.Flags().Changed("gpu") {
		benchGPU = benchGPU || cfg.Bench.GPU
	}

	reg := scenario.NewRegistry()
	sc, err := reg.Get(scenarioName)
	if err != nil {
		return err
	}
	if churn, ok := sc.(*scenario.Churn); ok {
		churn.MaxCharges = benchCharges
	}

	benchSeed := cfg.Seed
	if benchSeed == 0 {
		benchSeed = 42
	}
	rng := rand.New(rand.NewSource(benchSeed))

	tracker := field.NewTracker()
	sc.Setup(tracker, rng)

	const canvasW, canvasH = 512, 512
	cam := field.NewCamera()
	tr, err := cam.Transform(canvasW, canvasH)
	if err != nil {
		return err
	}

	backend := "cpu"
	if benchGPU {
		backend = "gpu"
	}
	fmt.Printf("benchmarking %s on %s (%d frames, %dx%d)...\n",
		scenarioName, backend, benchFrames, canvasW, canvasH)

	frameTime := metrics.NewFrameTime()
	peakQueue := metrics.NewPeakQueue()
	extrema := metrics.NewExtrema()
	frames := make([]storage.FrameRecord, 0, benchFrames)

	var fieldValues []float32

	if benchGPU {
		rl.SetConfigFlags(rl.FlagWindowHidden)
		rl.InitWindow(canvasW, canvasH, "fieldlab bench")
		defer rl.CloseWindow()

		painter, err := render.NewPainter(tracker, canvasW, canvasH, tr)
		if err != nil {
			return err
		}
		defer painter.Dispose()

		r := ramp.Get(cfg.Ramp)
		for i := 0; i < benchFrames; i++ {
			sc.Step(tracker, rng, i)
			pending := tracker.Pending()
			peakQueue.Observe(float64(pending))

			start := time.Now()
			if _, err := painter.Paint(render.Frame{
				Visible: true, CanvasW: canvasW, CanvasH: canvasH,
				Transform: tr, Ramp: r,
			}); err != nil {
				return err
			}
			ms := float64(time.Since(start).Microseconds()) / 1000
			frameTime.Observe(ms)
			frames = append(frames, storage.FrameRecord{Frame: i, Diffs: pending, Millis: ms})
		}
		fieldValues, _, _ = painter.ReadField()
	} else {
		grid, err := field.NewGrid(canvasW, canvasH)
		if err != nil {
			return err
		}
		for i := 0; i < benchFrames; i++ {
			sc.Step(tracker, rng, i)
			pending := tracker.Pending()
			peakQueue.Observe(float64(pending))

			start := time.Now()
			grid.ApplyAll(tracker.Drain(), tr)
			ms := float64(time.Since(start).Microseconds()) / 1000
			frameTime.Observe(ms)
			frames = append(frames, storage.FrameRecord{Frame: i, Diffs: pending, Millis: ms})
		}
		fieldValues = make([]float32, 0, canvasW*canvasH)
		for ty := 0; ty < canvasH; ty++ {
			for tx := 0; tx < canvasW; tx++ {
				fieldValues = append(fieldValues, grid.At(tx, ty))
			}
		}
	}

	for _, v := range fieldValues {
		extrema.Observe(float64(v))
	}

	st := storage.New(cfg.DataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(storage.RunMetadata{
		Scenario: scenarioName,
		Backend:  backend,
		Seed:     benchSeed,
		CanvasW:  canvasW,
		CanvasH:  canvasH,
		Metrics: map[string]float64{
			frameTime.Name(): frameTime.Value(),
			peakQueue.Name(): peakQueue.Value(),
			"field_min":      extrema.Min(),
			"field_max":      extrema.Max(),
			"saturated":      float64(extrema.Saturated()),
		},
	}, frames)
	if err != nil {
		return err
	}

	fmt.Printf("run id: %s\n\n", runID)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METRIC\tVALUE")
	fmt.Fprintf(w, "mean frame\t%.3f ms\n", frameTime.Value())
	fmt.Fprintf(w, "peak queue\t%.0f diffs\n", peakQueue.Value())
	fmt.Fprintf(w, "field min\t%.3f\n", extrema.Min())
	fmt.Fprintf(w, "field max\t%.3f\n", extrema.Max())
	fmt.Fprintf(w, "saturated texels\t%d\n", extrema.Saturated())
	return w.Flush()
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
	fmt.Fprintln(w, "ID\tSCENARIO\tBACKEND\tTIME\tFRAMES\tCANVAS")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%dx%d\n",
			run.ID,
			run.Scenario,
			run.Backend,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Frames,
			run.CanvasW, run.CanvasH,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	frames, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}
	if len(frames) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scenario: %s (%s)\n", meta.Scenario, meta.Backend)
	fmt.Printf("frames: %d\n\n", len(frames))

	ms := make([]float64, len(frames))
	diffs := make([]float64, len(frames))
	for i, f := range frames {
		ms[i] = f.Millis
		diffs[i] = float64(f.Diffs)
	}

	fmt.Println(asciigraph.Plot(ms,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("frame time (ms)"),
	))
	fmt.Println()
	fmt.Println(asciigraph.Plot(diffs,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("diffs per frame"),
	))
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	frames, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}
	return storage.ExportJSONStdout(meta, frames)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	frames, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}
	if len(frames) == 0 {
		return fmt.Errorf("no data to export")
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	if err := w.Write([]string{"frame", "diffs", "ms"}); err != nil {
		return err
	}
	for _, f := range frames {
		row := []string{
			strconv.Itoa(f.Frame),
			strconv.Itoa(f.Diffs),
			strconv.FormatFloat(f.Millis, 'f', 4, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	cfg := loadConfig(cmd, "")
	if len(args) > 0 {
		cfg.Scenario = args[0]
	}

	reg := scenario.NewRegistry()
	sc, err := reg.Get(cfg.Scenario)
	if err != nil {
		return err
	}

	snapSeed := cfg.Seed
	if snapSeed == 0 {
		snapSeed = 42
	}
	rng := rand.New(rand.NewSource(snapSeed))
	tracker := field.NewTracker()
	sc.Setup(tracker, rng)

	rl.SetConfigFlags(rl.FlagWindowHidden)
	rl.InitWindow(int32(snapWidth), int32(snapHeight), "fieldlab snapshot")
	defer rl.CloseWindow()

	cam := field.Camera{
		Center: field.Vec2{X: cfg.Camera.X, Y: cfg.Camera.Y},
		Zoom:   cfg.Camera.Zoom,
	}
	tr, err := cam.Transform(snapWidth, snapHeight)
	if err != nil {
		return err
	}

	painter, err := render.NewPainter(tracker, snapWidth, snapHeight, tr)
	if err != nil {
		return err
	}
	defer painter.Dispose()

	r := ramp.Get(cfg.Ramp)
	for i := 0; i < snapTicks; i++ {
		sc.Step(tracker, rng, i)
		if _, err := painter.Paint(render.Frame{
			Visible: true, CanvasW: snapWidth, CanvasH: snapHeight,
			Transform: tr, Ramp: r,
		}); err != nil {
			return err
		}
	}

	pixels, w, h := painter.ReadDisplay()
	if err := gui.WritePNG(snapOut, pixels, w, h); err != nil {
		return err
	}
	fmt.Printf("wrote %s (%dx%d, %d charges)\n", snapOut, w, h, tracker.Len())
	return nil
}
