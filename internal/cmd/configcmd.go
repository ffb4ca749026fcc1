package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"demotimer/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage demotimer configuration",
	Long:  `View and manage demotimer configuration.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show resolved configuration with source annotations",
	Long: `Show the fully resolved configuration with annotations indicating
where each value came from.

Configuration is loaded from multiple sources with the following precedence:
  1. Embedded defaults (built into binary)
  2. User config (~/.config/demotimer/config.yaml)
  3. Environment variables (DEMOTIMER_*)
  4. CLI flags (highest precedence)`,
	RunE: runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default config file",
	Long:  `Create ~/.config/demotimer/config.yaml with the default settings if it does not exist yet.`,
	RunE:  runConfigInit,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
}

func runConfigShow(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	fmt.Println("# Demotimer Configuration")
	fmt.Println()
	fmt.Println("## Sources (in order of precedence)")
	for _, src := range cfg.Sources() {
		fmt.Printf("  - %s\n", src)
	}
	fmt.Println()

	fmt.Println("## Directories")
	fmt.Printf("  Config dir: %s\n", cfg.ConfigDir())
	fmt.Println()

	fmt.Println("## Timer Settings")
	if cfg.SegmentsFile != "" {
		fmt.Printf("  segments_file: %s\n", cfg.SegmentsFile)
	} else {
		fmt.Printf("  segments_file: (auto-detect segments.txt)\n")
	}
	fmt.Printf("  tick_ms:       %d\n", cfg.TickMs)
	fmt.Printf("  frame_ms:      %d\n", cfg.FrameMs)
	fmt.Printf("  hold_ms:       %d\n", cfg.HoldMs)
	fmt.Printf("  start_paused:  %t\n", cfg.StartPaused)
	fmt.Printf("  track_elapsed: %t\n", cfg.TrackElapsed)
	fmt.Printf("  mute:          %t\n", cfg.Mute)

	return nil
}

func runConfigInit(_ *cobra.Command, _ []string) error {
	dir := config.DefaultConfigDir()
	if err := config.InstallDefaults(dir); err != nil {
		return err
	}
	fmt.Printf("config file ready at %s/config.yaml\n", dir)
	return nil
}
