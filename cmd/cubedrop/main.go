package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/jakecoffman/cp/v2"
	"github.com/san-kum/cubedrop/internal/config"
	"github.com/san-kum/cubedrop/internal/experiment"
	"github.com/san-kum/cubedrop/internal/export"
	"github.com/san-kum/cubedrop/internal/gui"
	"github.com/san-kum/cubedrop/internal/metrics"
	"github.com/san-kum/cubedrop/internal/sim"
	"github.com/san-kum/cubedrop/internal/store"
	"github.com/san-kum/cubedrop/internal/viz"
	"github.com/spf13/cobra"
)

var (
	configFile string
	preset     string
	dataDir    string
	// simulate
	frames    int
	dt        float64
	cursor    string
	svgPath   string
	save      bool
	restLimit float64
	// live
	theme string
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#e74c3c"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#7f8c8d")).Width(14)
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "cubedrop",
		Short:         "falling cubes in a 2D rigid-body world",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return gui.Run(cmd.Context(), cfg)
		},
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset scene")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".cubedrop", "data directory for saved runs")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run the scene in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return viz.RunLive(cfg, theme)
		},
	}
	liveCmd.Flags().StringVar(&theme, "theme", "flat", "color theme ("+strings.Join(viz.ThemeNames(), ", ")+")")

	simulateCmd := &cobra.Command{
		Use:   "simulate",
		Short: "step the scene headless and report metrics",
		RunE:  runSimulate,
	}
	simulateCmd.Flags().IntVar(&frames, "frames", 600, "number of frames")
	simulateCmd.Flags().Float64Var(&dt, "dt", 1.0/60, "frame time in seconds")
	simulateCmd.Flags().StringVar(&cursor, "cursor", "", "hold the cursor at x,y")
	simulateCmd.Flags().StringVar(&svgPath, "svg", "", "write the final frame as svg")
	simulateCmd.Flags().BoolVar(&save, "save", false, "save the run to the data directory")
	simulateCmd.Flags().Float64Var(&restLimit, "rest", 1.0, "kinetic energy at or below which the scene counts as at rest")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list scene presets",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range config.ListPresets() {
				cfg := config.GetPreset(name)
				fmt.Printf("  %-10s %d cubes\n", name, cfg.Scene.CubeCount())
			}
		},
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "print the effective configuration as yaml",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			data, err := cfg.Marshal()
			if err != nil {
				return err
			}
			_, err = os.Stdout.Write(data)
			return err
		},
	}

	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a saved run as json",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	compareCmd := &cobra.Command{
		Use:   "compare [preset...]",
		Short: "run presets side by side and compare metrics",
		RunE:  comparePresets,
	}
	compareCmd.Flags().IntVar(&frames, "frames", 600, "number of frames")
	compareCmd.Flags().Float64Var(&dt, "dt", 1.0/60, "frame time in seconds")
	compareCmd.Flags().Float64Var(&restLimit, "rest", 1.0, "kinetic energy at or below which the scene counts as at rest")

	rootCmd.AddCommand(liveCmd, simulateCmd, compareCmd, presetsCmd, configCmd, runsCmd, plotCmd, exportJSONCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// loadConfig applies --preset, then --config on top of the defaults. A
// config file wins over a preset.
func loadConfig() (*config.Config, error) {
	if configFile != "" {
		return config.Load(configFile)
	}
	if preset != "" {
		cfg := config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		return cfg, nil
	}
	return config.DefaultConfig(), nil
}

func presetName() string {
	switch {
	case configFile != "":
		return "custom"
	case preset != "":
		return preset
	}
	return "reference"
}

func parseCursor(s string) (cp.Vector, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return cp.Vector{}, fmt.Errorf("cursor must be x,y: %q", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return cp.Vector{}, fmt.Errorf("cursor x: %w", err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return cp.Vector{}, fmt.Errorf("cursor y: %w", err)
	}
	return cp.Vector{X: x, Y: y}, nil
}

func runSimulate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	var path sim.CursorPath
	if cursor != "" {
		p, err := parseCursor(cursor)
		if err != nil {
			return err
		}
		path = sim.FixedCursor(p)
	}

	var svg *export.SVG
	run := experiment.Config{
		Name:      presetName(),
		Scene:     cfg,
		Frames:    frames,
		Dt:        dt,
		Cursor:    path,
		RestLimit: restLimit,
	}
	if svgPath != "" {
		svg = export.NewSVG(cfg.Window.Width, cfg.Window.Height)
		run.Frame = svg
	}

	res, err := experiment.Run(cmd.Context(), run)
	if err != nil {
		return err
	}
	s := res.Scene

	history := res.Samples
	values := res.Values
	latest := history[len(history)-1]

	fmt.Println(titleStyle.Render(cfg.Window.Title))
	row := func(label, value string) {
		fmt.Println(labelStyle.Render(label) + value)
	}
	row("frames", strconv.Itoa(res.Frames))
	row("sim time", fmt.Sprintf("%.2fs", s.Timer()))
	row("physics time", fmt.Sprintf("%.2fs", s.World().Elapsed()))
	row("cubes", strconv.Itoa(len(s.Cubes())))
	row("mean energy", fmt.Sprintf("%.2f", values["energy"]))
	row("final energy", fmt.Sprintf("%.2f", latest.KineticEnergy))
	row("peak height", fmt.Sprintf("%.1f", values["peak_height"]))
	row("at rest", fmt.Sprintf("%.0f%%", values["stability"]*100))
	row("target", fmt.Sprintf("%.1f, %.1f", latest.Target.X, latest.Target.Y))
	fmt.Println()

	if len(history) > 1 {
		plotSamples(history)
	}

	if svg != nil {
		trail := make([]cp.Vector, len(history))
		for i, smp := range history {
			trail[i] = smp.Target
		}
		svg.Path(trail, "#3498db")
		if err := svg.WriteFile(svgPath); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", svgPath)
	}

	if save {
		st := store.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(store.RunMetadata{
			Preset:    res.Name,
			Frames:    res.Frames,
			Dt:        dt,
			TimeScale: s.TimeScale(),
			Cubes:     len(s.Cubes()),
			Metrics:   values,
		}, history)
		if err != nil {
			return err
		}
		fmt.Printf("saved run %s\n", runID)
	}
	return nil
}

func plotSamples(samples []metrics.Sample) {
	energy := make([]float64, len(samples))
	height := make([]float64, len(samples))
	for i, smp := range samples {
		energy[i] = smp.KineticEnergy
		height[i] = smp.StackHeight
	}
	fmt.Println(asciigraph.Plot(energy, asciigraph.Height(10), asciigraph.Width(80), asciigraph.Caption("kinetic energy")))
	fmt.Println()
	fmt.Println(asciigraph.Plot(height, asciigraph.Height(10), asciigraph.Width(80), asciigraph.Caption("stack height")))
	fmt.Println()
}

func comparePresets(cmd *cobra.Command, args []string) error {
	names := args
	if len(names) == 0 {
		names = config.ListPresets()
	}
	cfgs, err := experiment.Presets(names, frames, dt, restLimit)
	if err != nil {
		return err
	}
	results, err := experiment.RunAll(cmd.Context(), cfgs)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tCUBES\tMEAN ENERGY\tFINAL ENERGY\tPEAK HEIGHT\tAT REST")
	for _, res := range results {
		final := res.Samples[len(res.Samples)-1]
		fmt.Fprintf(w, "%s\t%d\t%.2f\t%.2f\t%.1f\t%.0f%%\n",
			res.Name,
			res.Cubes,
			res.Values["energy"],
			final.KineticEnergy,
			res.Values["peak_height"],
			res.Values["stability"]*100,
		)
	}
	return w.Flush()
}

func listRuns(cmd *cobra.Command, args []string) error {
	runs, err := store.New(dataDir).List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPRESET\tTIME\tFRAMES\tDT\tCUBES\tENERGY")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.4fs\t%d\t%.2f\n",
			run.ID,
			run.Preset,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Frames,
			run.Dt,
			run.Cubes,
			run.Metrics["energy"],
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	samples, err := st.LoadSamples(args[0])
	if err != nil {
		return err
	}
	if len(samples) < 2 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("preset: %s\n", meta.Preset)
	fmt.Printf("samples: %d\n\n", len(samples))
	plotSamples(samples)
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	samples, err := st.LoadSamples(args[0])
	if err != nil {
		return err
	}
	return store.ExportJSON(os.Stdout, *meta, samples)
}
