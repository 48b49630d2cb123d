// G13lcd drives the 160x43 LCD and keypad of a Logitech G13.
//
// It talks to the userspace G13 driver through two named pipes: frames are
// written to the LCD pipe and button tokens are read from the key pipe.
//
// Usage:
//
//	g13lcd [command] [flags]
//
// Running without arguments is the same as 'g13lcd run'.
// See 'g13lcd --help' for available commands.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"g13lcd/internal/buildinfo"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var (
	configPath string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "g13lcd",
	Short: "Logitech G13 LCD daemon",
	Long: `A daemon for the Logitech G13 gameboard LCD.

Shows a menu of small applications (a clock, a greeting and a music remote
for Mopidy servers) on the 160x43 panel and drives them with the four keys
under the screen.

If no command is specified, the daemon runs against the driver pipes.`,
	Version:       buildinfo.Short(),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runDaemon,
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: platform config dir)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error, off)")

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(buildinfo.String("g13lcd"))
	},
}
