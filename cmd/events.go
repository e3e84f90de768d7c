package cmd

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/bnema/pmc-telemetry/internal/adapters/render/summary"
	"github.com/bnema/pmc-telemetry/internal/domain"
	"github.com/spf13/cobra"
)

func newEventsCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events",
		Short: "Inspect the local combined event log",
	}

	cmd.AddCommand(
		newEventsListCmd(app),
		newEventsClearCmd(app),
	)

	return cmd
}

func newEventsListCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List combined events stored in the event log",
		RunE: func(cmd *cobra.Command, _ []string) error {
			stored, err := app.eventLog.List(cmd.Context())
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(stored)
			}

			events := make([]domain.CombinedEvent, 0, len(stored))
			for _, entry := range stored {
				events = append(events, entry.Event)
			}

			footer := []string{"log: " + app.eventLog.Path()}
			if len(stored) > 0 {
				footer = append(footer, fmt.Sprintf("last emitted: %s", stored[len(stored)-1].EmittedAt.Format(time.RFC3339)))
			}

			rendered, err := app.summaryRenderer(events, summary.RenderOptions{
				Title:  "Event Log",
				Prefix: app.config.GetString(prefixKey),
				Footer: footer,
			})
			if err != nil {
				return fmt.Errorf("render summary: %w", err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}

func newEventsClearCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every event from the event log",
		RunE: func(cmd *cobra.Command, _ []string) error {
			removed, err := app.eventLog.Clear(cmd.Context())
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "removed %d events\n", removed)
			return err
		},
	}
}
