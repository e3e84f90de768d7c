package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/bnema/pmc-telemetry/internal/adapters/emit/memory"
	"github.com/bnema/pmc-telemetry/internal/adapters/emit/multi"
	tomlscript "github.com/bnema/pmc-telemetry/internal/adapters/script/toml"
	"github.com/bnema/pmc-telemetry/internal/adapters/render/summary"
	"github.com/bnema/pmc-telemetry/internal/application"
	"github.com/bnema/pmc-telemetry/internal/domain"
	"github.com/bnema/pmc-telemetry/internal/ports"
	"github.com/spf13/cobra"
)

type replayOutput struct {
	Result application.ReplayResult `json:"result"`
	Events []domain.CombinedEvent   `json:"events"`
}

func newReplayCmd(app *app) *cobra.Command {
	var (
		asJSON     bool
		sinksFlag  string
		prefixFlag string
	)

	cmd := &cobra.Command{
		Use:   "replay <script.toml>",
		Short: "Replay a recorded host session through the aggregator",
		Long:  "Replay feeds the steps of a session script (event records, solution opened/closed, instance closed) to a fresh aggregator and ships every combined event to the configured sinks.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := app.newLogger(cmd.ErrOrStderr())
			if cmd.Flags().Changed("sinks") {
				app.config.Set(sinksKey, sinksFlag)
			}
			if cmd.Flags().Changed("prefix") {
				app.config.Set(prefixKey, prefixFlag)
			}

			names, err := parseSinks(app.config.GetString(sinksKey))
			if err != nil {
				return err
			}

			sinks, err := app.openSinks(ctx, names)
			if err != nil {
				return err
			}

			capture := memory.NewSink()
			emitters := append([]ports.Emitter{capture}, sinks.emitters...)
			prefix := app.config.GetString(prefixKey)
			svc := application.NewReplayService(multi.New(emitters...), logger, application.WithPrefix(prefix))

			result, replayErr := svc.Load(ctx, tomlscript.NewSource(args[0]))

			var closeErr error
			if sinks.flushes {
				closeErr = runSinkFlushSpinner(ctx, cmd.ErrOrStderr(), sinks, capture.Len())
			} else {
				closeErr = sinks.close(ctx)
			}
			if replayErr != nil {
				return replayErr
			}
			if closeErr != nil {
				return fmt.Errorf("close sinks: %w", closeErr)
			}

			events := capture.Events()
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(replayOutput{Result: result, Events: events})
			}

			rendered, err := app.summaryRenderer(events, summary.RenderOptions{
				Title:  "Replay: " + result.Script,
				Prefix: prefix,
				Footer: replayFooter(result),
			})
			if err != nil {
				return fmt.Errorf("render summary: %w", err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")
	cmd.Flags().StringVar(&sinksFlag, "sinks", sinkLog, "Comma separated sinks receiving combined events (log|jsonl|otel)")
	cmd.Flags().StringVar(&prefixFlag, "prefix", "", "Property namespace of combined events (default from config)")

	return cmd
}

func replayFooter(result application.ReplayResult) []string {
	closed := "no"
	if result.InstanceClosed {
		closed = "yes"
	}

	footer := []string{
		fmt.Sprintf("steps: %d, records: %d, solutions: %d, instance closed: %s",
			result.StepsApplied, result.RecordsAdded, result.SolutionCount, closed),
	}
	if result.PendingRecords > 0 {
		footer = append(footer, fmt.Sprintf("pending solution records never flushed: %d", result.PendingRecords))
	}

	return footer
}
