package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"g13lcd/apps"
	"g13lcd/hal"
	"g13lcd/internal/buildinfo"
	"g13lcd/internal/config"
	"g13lcd/internal/logging"
	"g13lcd/kernel"
	"g13lcd/media/mopidy"
)

var (
	lcdPath    string
	keysPath   string
	initialApp string

	terminal     bool
	previewScale int
	headless     bool
	capturePath  string
	duration     time.Duration
)

func init() {
	rootCmd.PersistentFlags().StringVar(&initialApp, "app", "", "Application shown first (default: menu)")

	runCmd.Flags().StringVar(&lcdPath, "lcd", "", "LCD pipe written with frames (default: $G13_IN or "+config.DefaultLCDPath+")")
	runCmd.Flags().StringVar(&keysPath, "keys", "", "Key pipe read for buttons (default: $G13_OUT or "+config.DefaultKeysPath+")")

	previewCmd.Flags().BoolVar(&terminal, "terminal", false, "Draw the LCD in the terminal instead of a window")
	previewCmd.Flags().IntVar(&previewScale, "scale", 0, "Window pixels per LCD pixel (default: preview.scale)")
	previewCmd.Flags().BoolVar(&headless, "headless", false, "No front-end: read key tokens from stdin")
	previewCmd.Flags().StringVar(&capturePath, "capture", "", "Record every frame to this file (headless only)")
	previewCmd.Flags().DurationVar(&duration, "duration", 0, "Stop after this long (headless only, 0 = until stdin and signals)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(playersCmd)
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the daemon against the G13 driver",
	Long: `Open the driver's LCD and key pipes and run the applications.

The daemon exits when either pipe is closed by the driver, or on SIGINT and
SIGTERM.`,
	Example: `  # Default pipes
  g13lcd run

  # Explicit pipes, starting on the clock
  g13lcd run --lcd /tmp/g13-0 --keys /tmp/g13-0_out --app clock`,
	RunE: runDaemon,
}

func runDaemon(cmd *cobra.Command, args []string) error {
	cfg, err := setup(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = logging.Sync() }()

	if lcdPath != "" {
		cfg.Device.LCD = lcdPath
	}
	if keysPath != "" {
		cfg.Device.Keys = keysPath
	}

	log := logging.Named("daemon")
	log.Info("Opening driver pipes", zap.String("lcd", cfg.Device.LCD), zap.String("keys", cfg.Device.Keys))
	dev, err := hal.OpenPipes(cfg.Device.LCD, cfg.Device.Keys)
	if err != nil {
		return err
	}
	defer dev.Close()

	k, err := newKernel(cfg)
	if err != nil {
		return err
	}
	err = k.Run(cmd.Context(), dev.Keys(), dev.LCD())
	if errors.Is(err, context.Canceled) {
		log.Info("Stopped")
		return nil
	}
	return err
}

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Run the applications on a virtual LCD",
	Long: `Run the applications without a G13, on a virtual LCD.

The window maps Esc to the dismiss key, Enter to the primary key, S to the
secondary key and the arrow keys to previous/next. The terminal view uses
the same keys and q to quit.

Headless mode reads driver tokens (BD, L1 to L4) from stdin and can record
the frames for fbdump.`,
	Example: `  # Desktop window, 6x zoom
  g13lcd preview --scale 6

  # Terminal view
  g13lcd preview --terminal

  # Open the clock from the menu and record five seconds of it
  printf 'L4\nL1\n' | g13lcd preview --headless --capture clock.bin --duration 5s
  fbdump -in clock.bin -out clock.png`,
	RunE: runPreview,
}

func runPreview(cmd *cobra.Command, args []string) error {
	if terminal && !cmd.Flags().Changed("log-level") {
		// The terminal view owns the screen.
		logLevel = "off"
	}
	cfg, err := setup(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = logging.Sync() }()

	k, err := newKernel(cfg)
	if err != nil {
		return err
	}
	fn := func(ctx context.Context, dev hal.Device) error {
		return k.Run(ctx, dev.Keys(), dev.LCD())
	}
	switch {
	case headless:
		return runHeadless(cmd.Context(), fn)
	case terminal:
		return hal.RunTerminal(cmd.Context(), fn)
	}
	scale := cfg.Preview.Scale
	if previewScale > 0 {
		scale = previewScale
	}
	return hal.RunWindow(cmd.Context(), fn, scale)
}

func runHeadless(ctx context.Context, fn hal.Runner) error {
	cfg := hal.HeadlessConfig{Keys: os.Stdin, Duration: duration}
	if capturePath != "" {
		f, err := os.Create(capturePath)
		if err != nil {
			return fmt.Errorf("failed to create capture file: %w", err)
		}
		defer f.Close()
		cfg.Capture = f
	}
	return hal.RunHeadless(ctx, fn, cfg)
}

var playersCmd = &cobra.Command{
	Use:   "players",
	Short: "List reachable Mopidy servers",
	Long: `List the media players offered by the music application: the servers
from the config file plus those announcing _mopidy-http._tcp over mDNS.`,
	RunE: runPlayers,
}

func runPlayers(cmd *cobra.Command, args []string) error {
	cfg, err := setup(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = logging.Sync() }()

	if cfg.Media.MDNS {
		fmt.Printf("Browsing for Mopidy servers (timeout: %s)...\n\n", cfg.Media.BrowseTimeout)
	}
	targets, err := newTransport(cfg).Targets(cmd.Context())
	if err != nil {
		return fmt.Errorf("discovery failed: %w", err)
	}
	if len(targets) == 0 {
		fmt.Println("No players found.")
		return nil
	}
	fmt.Printf("Found %d player(s):\n", len(targets))
	for i, name := range targets {
		fmt.Printf("%d. %s\n", i+1, name)
	}
	return nil
}

// setup loads the config file and starts logging. The --log-level flag wins
// over the file.
func setup(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if err := logging.Initialize(cfg.LogLevel); err != nil {
		return nil, err
	}
	logging.Info("g13lcd starting", zap.String("version", buildinfo.Short()))
	logging.Debug("Loaded config", zap.String("path", configPath), zap.Strings("menu", cfg.Menu))
	return cfg, nil
}

func newTransport(cfg *config.Config) *mopidy.Transport {
	var browser *mopidy.Browser
	if cfg.Media.MDNS {
		browser = mopidy.NewBrowser()
		if cfg.Media.BrowseTimeout > 0 {
			browser.Timeout = cfg.Media.BrowseTimeout
		}
	}
	return mopidy.NewTransport(cfg.Servers(), browser, cfg.Media.CallTimeout, logging.Named("media"))
}

func newKernel(cfg *config.Config) (*kernel.Kernel, error) {
	env := &apps.Env{
		Media:    newTransport(cfg),
		Menu:     cfg.Menu,
		Greeting: cfg.Greeting,
		Ticks:    cfg.AppTicks(),
		Log:      logging.Named("apps"),
	}
	var initial apps.Application
	if initialApp != "" {
		kind, err := apps.ParseKind(initialApp)
		if err != nil {
			return nil, fmt.Errorf("--app: %w", err)
		}
		initial = env.New(kind)
	}
	return kernel.New(kernel.Config{Env: env, Log: logging.Named("kernel"), Initial: initial}), nil
}
