package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"demotimer/internal/segment"
)

var segmentsCmd = &cobra.Command{
	Use:   "segments",
	Short: "Print the resolved segment list",
	Long: `Print the segment list that a timer run would use, with the resolved
file path and the planned total.`,
	RunE: runSegments,
}

func runSegments(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	path := segment.FindFile(cfg.SegmentsFile)
	segments, err := segment.Load(path)
	if err != nil {
		return err
	}
	if len(segments) == 0 {
		fmt.Printf("# no segments file at %s, using built-in list\n", path)
		segments = segment.Default()
	} else {
		fmt.Printf("# %s\n", path)
	}

	for i, s := range segments {
		fmt.Printf("%2d. %-40s %s\n", i+1, s.Name, segment.FormatClock(s.Duration))
	}
	fmt.Printf("\nPlanned total: %s\n", segment.FormatClock(segment.Total(segments)))
	return nil
}
