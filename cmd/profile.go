package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/FulinM/waib-2025-LM3-adventurous-compass/internal/adapters/render/cards"
	"github.com/FulinM/waib-2025-LM3-adventurous-compass/internal/application"
	"github.com/FulinM/waib-2025-LM3-adventurous-compass/internal/domain"
)

func newProfileCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or update the traveler profile of the connected wallet",
	}

	cmd.AddCommand(newProfileShowCmd(app), newProfileSetCmd(app))

	return cmd
}

func newProfileShowCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the traveler profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			status, err := app.service.GetStatus(cmd.Context())
			if err != nil {
				return err
			}
			if status.Session == nil {
				return domain.ErrNotConnected
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(status.Profile)
			}

			return writeStatusOutput(cmd, app, status, false)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}

func newProfileSetCmd(app *app) *cobra.Command {
	var name string
	var email string
	var style string

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Create or replace the traveler profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			profile, err := app.service.SetProfile(cmd.Context(), application.SetProfileCommand{
				Name:        name,
				Email:       email,
				TravelStyle: style,
			})
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Profile saved: %s (%s)\n", profile.Name, cards.TravelStyleLabel(profile.Preferences.TravelStyle))
			return err
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Traveler name")
	cmd.Flags().StringVar(&email, "email", "", "Contact email")
	cmd.Flags().StringVar(&style, "style", "", "Travel style: "+travelStyleList())
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func travelStyleList() string {
	styles := domain.TravelStyles()
	names := make([]string, 0, len(styles))
	for _, style := range styles {
		names = append(names, string(style))
	}

	return strings.Join(names, ", ")
}
