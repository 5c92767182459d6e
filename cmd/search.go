package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/FulinM/waib-2025-LM3-adventurous-compass/internal/adapters/render/cards"
)

func newSearchCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "search <query...>",
		Short: "Search destinations and attractions with their images",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")

			search := func(ctx context.Context) error {
				if err := app.orchestrator.Submit(ctx, query); err != nil {
					return err
				}
				return waitForEnrichment(ctx, app)
			}

			var err error
			if asJSON {
				err = search(cmd.Context())
			} else {
				err = runSpinner(cmd.Context(), cmd.ErrOrStderr(), "Searching destinations...", search)
			}
			if err != nil {
				return err
			}

			return writeSearchOutput(cmd, app, asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}

func waitForEnrichment(ctx context.Context, app *app) error {
	done := make(chan struct{})
	go func() {
		app.orchestrator.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		app.orchestrator.Close()
		<-done
		return ctx.Err()
	}
}

func writeSearchOutput(cmd *cobra.Command, app *app, asJSON bool) error {
	views := app.orchestrator.Cards()
	if asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(views)
	}

	rendered, err := app.renderCards(cards.Results{Query: app.orchestrator.Query(), Cards: views, Err: app.orchestrator.Err()})
	if err != nil {
		return fmt.Errorf("render results: %w", err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return err
}
