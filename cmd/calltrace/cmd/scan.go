/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ssargent/calltrace/pkg/locator"
	"github.com/ssargent/calltrace/pkg/timestamp"
)

// scanCmd represents the scan command
var scanCmd = &cobra.Command{
	Use:   "scan <file>",
	Short: "Show how record blocks are laid out in a capture",
	Long: `Locate record blocks without decoding them and print a layout summary:
block count, first offsets, block sizes and the number of raw timestamps.

Examples:
	  calltrace scan capture.log
	  calltrace scan capture.log --marker=transaction`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadSettings(cmd)
		if err != nil {
			return err
		}
		marker, err := locator.ForName(cfg.Decode.Marker)
		if err != nil {
			return err
		}

		buf, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read capture: %w", err)
		}

		summary := locator.Summarize(locator.Split(buf, marker))
		stamps := timestamp.FindAll(buf, []byte(cfg.Decode.TimestampMarker))

		cmd.Printf("Capture: %s (%d bytes)\n", args[0], len(buf))
		cmd.Printf("Marker: %q\n", marker)
		cmd.Printf("Blocks: %d\n", summary.Count)
		if summary.Count > 0 {
			cmd.Printf("First offsets: %v\n", summary.FirstOffsets)
			cmd.Printf("Block size: min %d, max %d, avg %d\n", summary.Smallest, summary.Largest, summary.Average)
			cmd.Printf("Bytes in blocks: %d\n", summary.Covered)
		}
		cmd.Printf("Timestamps: %d\n", len(stamps))
		if len(stamps) > 0 {
			earliest, latest := stamps[0], stamps[0]
			for _, ts := range stamps[1:] {
				if ts.Before(earliest) {
					earliest = ts
				}
				if ts.After(latest) {
					latest = ts
				}
			}
			cmd.Printf("Time span: %s .. %s\n", earliest.Format(time.RFC3339), latest.Format(time.RFC3339))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(scanCmd)

	scanCmd.Flags().String("marker", "", "Block delimiter: bplist or transaction")
}
