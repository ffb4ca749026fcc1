// Package cmd wires the cobra command tree for demotimer.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"demotimer/internal/config"
	"demotimer/internal/tui"
)

// Version information set from main.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// SetVersionInfo sets the version information for the CLI.
func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
	rootCmd.Version = fmt.Sprintf("%s (commit %s, built %s)", version, commit, date)
}

var (
	segmentsFile string
	startPaused  bool
	mute         bool
)

var rootCmd = &cobra.Command{
	Use:   "demotimer",
	Short: "Segment countdown timer for live demos and presentations",
	Long: `Demotimer counts down a list of named presentation segments, one at a
time, with live controls for pausing, skipping, and adjusting durations
mid-demo. The segment list is read from segments.txt next to the working
directory or the binary; without one a built-in list is used.

Controls:
  space - pause/resume
  n / p - next/previous segment
  + / - - add/remove 10 seconds
  m     - mute the completion signal
  e     - edit the segment list
  q     - quit`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.RunE = runRoot
	rootCmd.PersistentFlags().StringVarP(&segmentsFile, "segments", "f", "", "Path to the segments file (default: segments.txt)")
	rootCmd.PersistentFlags().BoolVar(&startPaused, "start-paused", false, "Start with the countdown paused")
	rootCmd.PersistentFlags().BoolVar(&mute, "mute", false, "Start with the completion signal muted")

	rootCmd.AddCommand(guiCmd)
	rootCmd.AddCommand(segmentsCmd)
	rootCmd.AddCommand(configCmd)
}

func runRoot(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	return tui.Run(cfg)
}

// loadConfig loads the configuration and applies CLI flag overrides,
// the highest-precedence source. A broken config file degrades to the
// embedded defaults rather than refusing to start.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v, using defaults\n", err)
		cfg = config.Default()
	}
	flags := rootCmd.PersistentFlags()
	if segmentsFile != "" {
		cfg.SegmentsFile = segmentsFile
	}
	// Gate on Changed so an explicit --start-paused=false can override a
	// config-file true.
	if flags.Changed("start-paused") {
		cfg.StartPaused = startPaused
	}
	if flags.Changed("mute") {
		cfg.Mute = mute
	}
	return cfg, nil
}
