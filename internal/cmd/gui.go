package cmd

import (
	"github.com/spf13/cobra"

	"demotimer/internal/gui"
)

var guiCmd = &cobra.Command{
	Use:   "gui",
	Short: "Run the graphical timer window",
	Long: `Run the timer in a graphical window instead of the terminal.

The window starts paused so the presenter controls the first un-pause.
Keyboard controls match the terminal shell.`,
	RunE: runGUI,
}

func runGUI(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	return gui.Run(cfg)
}
