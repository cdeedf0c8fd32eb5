package main

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/zhyswan/fingerprintjs/internal/history"
	"github.com/zhyswan/fingerprintjs/internal/identity"
	"github.com/zhyswan/fingerprintjs/internal/logging"
	"github.com/zhyswan/fingerprintjs/internal/probe"
	"github.com/zhyswan/fingerprintjs/internal/probes"
)

func newIdentifyCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool
	var showComponents bool
	var noHistory bool
	var exclude []string

	cmd := &cobra.Command{
		Use:   "identify",
		Short: "Run all probes and print the environment fingerprint",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger := ctx.ensureLogger()

			engine, err := identity.NewEngine(
				probes.Builtin(probes.Options{StorageTimeout: cfg.StorageTimeout()}),
				identity.Config{
					SliceBudget: cfg.SliceBudget(),
					Exclude:     append(append([]string(nil), cfg.Probes.Exclude...), exclude...),
					Logger:      logger,
				})
			if err != nil {
				return fmt.Errorf("build engine: %w", err)
			}

			result, err := engine.Identify(cmd.Context(), probe.NewEnvironment())
			if err != nil {
				return err
			}

			if cfg.History.Enabled && !noHistory {
				recordRun(cmd, ctx, result)
			}

			if jsonOut {
				return writeJSON(cmd, result)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Identifier: %s\n", result.Identifier())
			fmt.Fprintf(out, "Confidence: %.2f (%s)\n", result.Confidence.Score, result.Confidence.Detail)
			failed := 0
			for _, c := range result.Components.Components() {
				if c.Outcome.Failed() {
					failed++
				}
			}
			fmt.Fprintf(out, "Components: %d (%d failed)\n", result.Components.Len(), failed)

			if showComponents {
				rows := make([][]string, 0, result.Components.Len())
				for _, c := range result.Components.Components() {
					value := "error: " + errorText(c.Outcome.Err)
					if !c.Outcome.Failed() {
						if encoded, err := json.Marshal(c.Outcome.Value); err == nil {
							value = string(encoded)
						}
					}
					rows = append(rows, []string{
						c.Name,
						value,
						strconv.FormatInt(c.Outcome.Duration.Milliseconds(), 10),
					})
				}
				fmt.Fprintln(out, renderTable(out,
					[]string{"Probe", "Value", "ms"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignRight}))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit the full result as JSON")
	cmd.Flags().BoolVar(&showComponents, "components", false, "Show the per-probe component table")
	cmd.Flags().BoolVar(&noHistory, "no-history", false, "Skip recording this run in the history database")
	cmd.Flags().StringSliceVar(&exclude, "exclude", nil, "Additional probe names to skip")
	return cmd
}

// recordRun persists the result when history is enabled. History failures are
// reported but never fail the identification itself.
func recordRun(cmd *cobra.Command, ctx *commandContext, result *identity.Result) {
	cfg, _ := ctx.ensureConfig()
	logger := ctx.ensureLogger()

	store, err := history.Open(cfg, logger)
	if err != nil {
		logger.Warn("history unavailable",
			logging.Error(err),
			logging.String(logging.FieldEventType, "history_open_failed"),
			logging.String(logging.FieldErrorHint, "run with --no-history or fix history.path"))
		return
	}
	defer store.Close()

	if err := store.Record(cmd.Context(), result); err != nil {
		logger.Warn("failed to record run",
			logging.Error(err),
			logging.String(logging.FieldEventType, "history_record_failed"),
			logging.String(logging.FieldRunID, result.RunID))
	}
}

func errorText(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
