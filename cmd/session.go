package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/FulinM/waib-2025-LM3-adventurous-compass/internal/application"
)

func newConnectCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "connect",
		Short: "Link a travel wallet and remember it for later runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			connect := func(ctx context.Context) error {
				return app.sessions.Connect(ctx)
			}

			var err error
			if asJSON {
				err = connect(cmd.Context())
			} else {
				err = runSpinner(cmd.Context(), cmd.ErrOrStderr(), "Connecting wallet...", connect)
			}
			if err != nil {
				return err
			}

			return writeSessionOutput(cmd, app.sessions.Snapshot(), asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}

func newDisconnectCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "disconnect",
		Short: "Release the wallet and forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.sessions.Disconnect(cmd.Context()); err != nil {
				return err
			}

			_, err := fmt.Fprintln(cmd.OutOrStdout(), app.sessions.Snapshot().State.Label())
			return err
		},
	}
}

func writeSessionOutput(cmd *cobra.Command, snapshot application.SessionSnapshot, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(snapshot.Session)
	}

	if !snapshot.Connected() {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), snapshot.State.Label())
		return err
	}

	session := snapshot.Session
	_, err := fmt.Fprintf(cmd.OutOrStdout(), "Connected as %s (%s)\n", session.Handle, session.Address)
	return err
}
