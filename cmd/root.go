package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "compass",
		Short:         "Adventurous Compass: discover destinations from the terminal",
		Long:          "compass links a simulated travel wallet, keeps your traveler profile, and searches the recommendation service for attractions with images.",
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

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		return app.sessions.Restore(cmd.Context())
	}
	rootCmd.PersistentPostRunE = func(_ *cobra.Command, _ []string) error {
		return app.close(context.Background())
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newConnectCmd(app),
		newDisconnectCmd(app),
		newStatusCmd(app),
		newProfileCmd(app),
		newSearchCmd(app),
	)

	return rootCmd
}
