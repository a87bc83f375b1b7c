package main

import (
	"fmt"
	"io"
	"math/rand"
	"os"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	charmlog "github.com/charmbracelet/log"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/kyra-dean/rosette/internal/audio"
	"github.com/kyra-dean/rosette/internal/config"
	"github.com/kyra-dean/rosette/internal/export"
	"github.com/kyra-dean/rosette/internal/gui"
	"github.com/kyra-dean/rosette/internal/layout"
	"github.com/kyra-dean/rosette/internal/scene"
	"github.com/kyra-dean/rosette/internal/viz"
)

var (
	configFile string
	preset     string
	width      int
	height     int
	wheels     int
	groups     int
	seed       int64
	audioSrc   string
	audioPath  string
	outFile    string
	verbose    bool
)

var logger = newLogger(os.Stderr, charmlog.InfoLevel)

// newLogger creates a logger with timestamp formatting, writing to w.
func newLogger(w io.Writer, level charmlog.Level) *charmlog.Logger {
	return charmlog.NewWithOptions(w, charmlog.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "rosette",
		Short: "audio-reactive circle-packed wheel compositions",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				logger.SetLevel(charmlog.DebugLevel)
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return gui.Run(cfg)
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "named preset configuration")
	rootCmd.PersistentFlags().IntVar(&width, "width", config.DefaultWidth, "canvas width")
	rootCmd.PersistentFlags().IntVar(&height, "height", config.DefaultHeight, "canvas height")
	rootCmd.PersistentFlags().IntVar(&wheels, "wheels", config.DefaultWheels, "target wheel count")
	rootCmd.PersistentFlags().IntVar(&groups, "groups", config.DefaultColorGroups, "number of color groups")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 0, "random seed (0 picks one from the clock)")

	rootCmd.Flags().StringVar(&audioSrc, "audio", "", "audio source: synth, mic, or file")
	rootCmd.Flags().StringVar(&audioPath, "file", "", "audio file to play (implies --audio file)")

	layoutCmd := &cobra.Command{
		Use:   "layout",
		Short: "generate a layout and report placement statistics",
		RunE:  runLayout,
	}

	svgCmd := &cobra.Command{
		Use:   "svg",
		Short: "render a generated layout to an SVG file",
		RunE:  runSVG,
	}
	svgCmd.Flags().StringVar(&outFile, "out", "rosette.svg", "output path")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "drive the scene in the terminal against a synthetic spectrum",
		RunE:  runLive,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list named presets",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Printf("  %-8s %dx%d, %d wheels, %d color groups\n",
					name, p.Width, p.Height, p.Wheels, p.ColorGroups)
			}
		},
	}

	rootCmd.AddCommand(layoutCmd, svgCmd, liveCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		logger.Error("command failed", "err", err)
		os.Exit(1)
	}
}

// loadConfig builds the effective config: preset, then config file, then
// CLI flags, each layer overriding the previous.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("width") {
		cfg.Width = width
	}
	if cmd.Flags().Changed("height") {
		cfg.Height = height
	}
	if cmd.Flags().Changed("wheels") {
		cfg.Wheels = wheels
	}
	if cmd.Flags().Changed("groups") {
		cfg.ColorGroups = groups
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = seed
	}
	if cmd.Flags().Changed("audio") {
		cfg.Audio.Source = audioSrc
	}
	if cmd.Flags().Changed("file") {
		cfg.Audio.Source = "file"
		cfg.Audio.Path = audioPath
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func effectiveSeed(cfg *config.Config) int64 {
	if cfg.Seed != 0 {
		return cfg.Seed
	}
	return time.Now().UnixNano()
}

func runLayout(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	rng := rand.New(rand.NewSource(effectiveSeed(cfg)))

	placed, conns, report := layout.Generate(float64(cfg.Width), float64(cfg.Height), cfg.LayoutOptions(), rng)
	if report.Exhausted() {
		logger.Warn("placement exhausted", "placed", report.Placed, "requested", report.Requested)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintf(w, "canvas\t%dx%d\n", cfg.Width, cfg.Height)
	fmt.Fprintf(w, "wheels\t%d of %d\n", report.Placed, report.Requested)
	fmt.Fprintf(w, "connectors\t%d\n", len(conns))
	fmt.Fprintf(w, "attempts\t%d\n", report.Attempts)
	w.Flush()

	if len(placed) > 1 {
		radii := make([]float64, len(placed))
		for i, wh := range placed {
			radii[i] = wh.BaseRadius
		}
		fmt.Println()
		fmt.Println(asciigraph.Plot(radii,
			asciigraph.Height(8),
			asciigraph.Width(60),
			asciigraph.Caption("wheel radii in placement order")))
	}
	return nil
}

func runSVG(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	rng := rand.New(rand.NewSource(effectiveSeed(cfg)))

	placed, conns, report := layout.Generate(float64(cfg.Width), float64(cfg.Height), cfg.LayoutOptions(), rng)
	if report.Exhausted() {
		logger.Warn("placement exhausted", "placed", report.Placed, "requested", report.Requested)
	}

	doc := export.LayoutToSVG(placed, conns, float64(cfg.Width), float64(cfg.Height))
	if err := os.WriteFile(outFile, []byte(doc), 0644); err != nil {
		return err
	}
	logger.Info("wrote layout", "path", outFile, "wheels", report.Placed, "connectors", len(conns))
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	s := effectiveSeed(cfg)

	sc := scene.New(float64(cfg.Width), float64(cfg.Height), cfg.LayoutOptions(), s)
	src := audio.NewSynthetic(s)

	p := tea.NewProgram(viz.NewModel(sc, src, s))
	_, err = p.Run()
	return err
}
