package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "pmct",
		Short:         "Package console telemetry (pmct): replay and inspect console session telemetry",
		Long:          "pmct replays recorded host lifecycles through the console telemetry aggregator, ships the combined solution and instance events to the configured sinks, and inspects the local event log.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.PersistentFlags().BoolVarP(&app.verbose, "verbose", "v", false, "Log aggregation decisions and dropped telemetry to stderr")

	rootCmd.AddCommand(
		newVersionCmd(),
		newReplayCmd(app),
		newEventsCmd(app),
	)

	return rootCmd
}
