/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ssargent/calltrace/pkg/calllog"
	"github.com/ssargent/calltrace/pkg/locator"
	"github.com/ssargent/calltrace/pkg/logging"
)

// decodeCmd represents the decode command
var decodeCmd = &cobra.Command{
	Use:   "decode <file>",
	Short: "Decode call records from a capture",
	Long: `Decode every call record in a capture and write them to stdout as
newline-delimited JSON, ordered by call time. Run counters are logged to stderr.

Examples:
	  calltrace decode capture.log
	  calltrace decode capture.log --marker=transaction --workers=4
	  calltrace decode capture.log --metrics-file=/var/lib/node_exporter/calltrace.prom`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if container == nil {
			return fmt.Errorf("dependency container not initialized")
		}

		cfg, err := loadSettings(cmd)
		if err != nil {
			return err
		}

		logger, err := container.GetLoggerFactory().CreateLogger(cfg.Logging.Level, cfg.Logging.Format)
		if err != nil {
			return err
		}
		defer logger.Sync() //nolint:errcheck
		logger, _ = logging.WithRunID(logger)

		buf, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read capture: %w", err)
		}
		logger.Debug("read capture", zap.String("path", args[0]), zap.Int("bytes", len(buf)))

		marker, err := locator.ForName(cfg.Decode.Marker)
		if err != nil {
			return err
		}
		opts := calllog.Options{
			Workers:         cfg.Decode.Workers,
			Marker:          marker,
			TimestampMarker: []byte(cfg.Decode.TimestampMarker),
		}

		m := container.GetMetricsFactory().CreateMetrics()
		sink := calllog.MultiSink{logging.NewSink(logger), m}

		pipeline := container.GetPipelineFactory().CreatePipeline(opts, sink)
		result, err := pipeline.Decode(cmd.Context(), buf)
		if err != nil {
			return fmt.Errorf("decode cancelled: %w", err)
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		for i := range result.Records {
			if err := enc.Encode(&result.Records[i]); err != nil {
				return fmt.Errorf("failed to write record: %w", err)
			}
		}

		if cfg.Metrics.Textfile != "" {
			if err := m.WriteTextfile(cfg.Metrics.Textfile); err != nil {
				return err
			}
			logger.Debug("wrote metrics", zap.String("path", cfg.Metrics.Textfile))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(decodeCmd)

	decodeCmd.Flags().Int("workers", 0, "Concurrent block decoders (0 = number of CPUs)")
	decodeCmd.Flags().String("marker", "", "Block delimiter: bplist or transaction")
	decodeCmd.Flags().String("metrics-file", "", "Write Prometheus metrics to this textfile")
}
