package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/backdrop/internal/automation"
	"github.com/san-kum/backdrop/internal/config"
	"github.com/san-kum/backdrop/internal/scene"
	"github.com/san-kum/backdrop/internal/screen"
	"github.com/san-kum/backdrop/internal/viz"
	"github.com/spf13/cobra"
)

var (
	configFile string
	preset     string
	envFile    string
	theme      string
	seed       int64
	frameRate  int
	scale      float64
	logFile    string

	// live view
	pick      bool
	autopilot bool
	noColor   bool
	gifPath   string
	svgPath   string

	// headless runs
	width      int
	height     int
	frames     int
	outBase    string
	gifStep    int
	scriptFile string

	benchFrames int

	// sweeps
	sweepMin   float64
	sweepMax   float64
	sweepSteps int

	saveDir string
	runsDir string
	force   bool
)

// main registers the commands and runs the live view when no subcommand is
// given.
func main() {
	rootCmd := &cobra.Command{
		Use:          "backdrop",
		Short:        "particle field and cursor trail in the terminal",
		SilenceUsage: true,
		RunE:         runLive,
	}

	addConfigFlags(rootCmd)
	addLiveFlags(rootCmd)

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run the layers in a Bubble Tea view",
		RunE:  runLive,
	}
	addLiveFlags(liveCmd)

	termCmd := &cobra.Command{
		Use:   "term",
		Short: "run the layers full screen with tcell",
		RunE:  runTerm,
	}
	termCmd.Flags().BoolVar(&autopilot, "autopilot", false, "drive the pointer without a mouse")

	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "render frames headless to GIF, PNG and SVG",
		RunE:  runRender,
	}
	addHeadlessFlags(renderCmd)
	renderCmd.Flags().StringVarP(&outBase, "out", "o", "backdrop", "output path without extension")
	renderCmd.Flags().IntVar(&gifStep, "gif-every", 2, "keep every nth frame in the GIF")
	renderCmd.Flags().StringVar(&scriptFile, "script", "", "scenario file (yaml) driving the pointer")

	sweepCmd := &cobra.Command{
		Use:   "sweep [param]",
		Short: "run headless over a range of one parameter",
		Long:  "run headless over a range of one parameter\n\nparameters: " + strings.Join(automation.SweepParams(), ", "),
		Args:  cobra.ExactArgs(1),
		RunE:  runSweep,
	}
	addHeadlessFlags(sweepCmd)
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 40, "first value")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 160, "last value")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 7, "number of values")
	sweepCmd.Flags().StringVar(&saveDir, "save", "", "store the run under this directory")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark frame time over several viewports",
		RunE:  runBench,
	}
	benchCmd.Flags().IntVar(&benchFrames, "frames", 120, "frames per viewport")

	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "run headless and chart field metrics",
		RunE:  runStats,
	}
	addHeadlessFlags(statsCmd)
	statsCmd.Flags().StringVar(&saveDir, "save", "", "store the run under this directory")

	runsCmd := &cobra.Command{
		Use:   "runs [id]",
		Short: "list stored runs, or chart one",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runRuns,
	}
	runsCmd.Flags().StringVar(&runsDir, "dir", "runs", "run store directory")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "PRESET\tDESCRIPTION")
			for _, name := range config.ListPresets() {
				fmt.Fprintf(w, "%s\t%s\n", name, config.PresetInfo[name])
			}
			return w.Flush()
		},
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "manage config files",
	}
	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write the effective config to a yaml file",
		Args:  cobra.MaximumNArgs(1),
		RunE:  initConfig,
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	configCmd.AddCommand(initCmd)

	rootCmd.AddCommand(liveCmd, termCmd, renderCmd, sweepCmd, benchCmd, statsCmd, runsCmd, presetsCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addConfigFlags(cmd *cobra.Command) {
	pf := cmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.StringVar(&envFile, "env", ".env", "dotenv file with BACKDROP_* overrides")
	pf.StringVar(&theme, "theme", config.DefaultTheme, "dark or light")
	pf.Int64Var(&seed, "seed", 0, "random seed (0 picks one from the clock)")
	pf.IntVar(&frameRate, "fps", config.DefaultFPS, "frame rate")
	pf.Float64Var(&scale, "scale", config.DefaultPixelsPerDot, "surface pixels per braille dot")
	pf.StringVar(&logFile, "log", "", "write debug logs to this file")
}

func addLiveFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&pick, "pick", false, "choose a preset from a menu first")
	cmd.Flags().BoolVar(&autopilot, "autopilot", false, "drive the pointer without a mouse")
	cmd.Flags().BoolVar(&noColor, "no-color", os.Getenv("NO_COLOR") != "", "draw the canvas without color")
	cmd.Flags().StringVar(&gifPath, "gif", "backdrop.gif", "GIF recording path")
	cmd.Flags().StringVar(&svgPath, "svg", "backdrop.svg", "SVG snapshot path")
}

func addHeadlessFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&width, "width", 1280, "viewport width in pixels")
	cmd.Flags().IntVar(&height, "height", 720, "viewport height in pixels")
	cmd.Flags().IntVar(&frames, "frames", 180, "frames to run")
}

// loadConfig layers defaults, preset, config file, environment and explicit
// flags, in that order.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	if err := config.LoadDotEnv(envFile); err != nil {
		return nil, fmt.Errorf("load %s: %w", envFile, err)
	}

	cfg := config.DefaultConfig()
	if preset != "" && !cfg.Apply(preset) {
		return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
	}
	if configFile != "" {
		if err := cfg.Merge(configFile); err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("theme") {
		cfg.Theme = theme
	}
	if flags.Changed("fps") {
		cfg.FPS = frameRate
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("scale") {
		cfg.PixelsPerDot = scale
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// pickSeed replaces a zero seed with one from the clock.
func pickSeed(cfg *config.Config) {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
}

func sceneOptions(cfg *config.Config, logger *slog.Logger) scene.Options {
	return scene.Options{
		Field:      cfg.FieldParams(),
		LinkRadius: cfg.Link.Radius,
		Trail:      cfg.TrailParams(),
		Dark:       cfg.Dark(),
		Seed:       cfg.Seed,
		Logger:     logger,
	}
}

// newLogger writes to --log when given. Terminal hosts pass quiet so the
// screen is never written to; headless commands fall back to stderr.
func newLogger(quiet bool) (*slog.Logger, func(), error) {
	if logFile == "" {
		if quiet {
			return slog.New(slog.DiscardHandler), func() {}, nil
		}
		return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})), func() {}, nil
	}
	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log: %w", err)
	}
	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return logger, func() { f.Close() }, nil
}

// headlessLogger is the logger for commands that never own the screen.
func headlessLogger() (*slog.Logger, func(), error) { return newLogger(false) }

func runLive(cmd *cobra.Command, args []string) error {
	logger, closeLog, err := newLogger(true)
	if err != nil {
		return err
	}
	defer closeLog()

	build := func(name string) (viz.Model, error) {
		saved := preset
		if name != "" {
			preset = name
		}
		defer func() { preset = saved }()
		cfg, err := loadConfig(cmd)
		if err != nil {
			return viz.Model{}, err
		}
		pickSeed(cfg)
		logger.Info("live view", "preset", preset, "theme", cfg.Theme, "seed", cfg.Seed, "fps", cfg.FPS)
		return viz.NewModel(viz.Options{
			Scene:     sceneOptions(cfg, logger),
			FPS:       cfg.FPS,
			Scale:     cfg.PixelsPerDot,
			Autopilot: autopilot,
			NoColor:   noColor,
			GIFPath:   gifPath,
			SVGPath:   svgPath,
			Logger:    logger,
		}), nil
	}

	var m tea.Model
	if pick {
		// validate flags before the alt screen takes over
		if _, err := loadConfig(cmd); err != nil {
			return err
		}
		m = viz.NewPicker(config.ListPresets(), config.PresetInfo, build)
	} else {
		live, err := build("")
		if err != nil {
			return err
		}
		m = live
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion())
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func runTerm(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	pickSeed(cfg)
	logger, closeLog, err := newLogger(true)
	if err != nil {
		return err
	}
	defer closeLog()

	app, err := screen.Open(screen.Options{
		Scene:     sceneOptions(cfg, logger),
		FPS:       cfg.FPS,
		Scale:     cfg.PixelsPerDot,
		Autopilot: autopilot,
		Logger:    logger,
	})
	if err != nil {
		return err
	}
	defer app.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return app.Run(ctx)
}

func initConfig(cmd *cobra.Command, args []string) error {
	path := "backdrop.yaml"
	if len(args) > 0 {
		path = args[0]
	}
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	if err := config.Save(path, cfg); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}
