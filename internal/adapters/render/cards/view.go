package cards

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/FulinM/waib-2025-LM3-adventurous-compass/internal/application"
	"github.com/FulinM/waib-2025-LM3-adventurous-compass/internal/domain"
)

const (
	EmptyMessage     = "No recommendations yet — try a search above."
	NoAddressMessage = "No address available"
	scoreBarWidth    = 20
)

type Results struct {
	Query string
	Cards []application.CardView
	Err   error
}

type StatusView struct {
	Status application.Status
}

func renderResults(results Results, s styles) string {
	lines := []string{}
	if strings.TrimSpace(results.Query) != "" {
		lines = append(lines, s.title.Render(fmt.Sprintf("Recommendations for %q", results.Query)))
	}
	if results.Err != nil {
		lines = append(lines, s.warning.Render("Error: "+results.Err.Error()))
	}

	if len(results.Cards) == 0 {
		lines = append(lines, s.empty.Render(EmptyMessage))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	lines = append(lines, s.header.Render(fmt.Sprintf("results: %d", len(results.Cards))))
	for _, card := range results.Cards {
		lines = append(lines, s.card.Render(renderCard(card, s)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderCard(card application.CardView, s styles) string {
	item := card.Item
	name := strings.TrimSpace(item.NameOrEmpty())
	if name == "" {
		name = "Unnamed destination"
	}

	address := NoAddressMessage
	if item.Address != nil {
		address = *item.Address
	}

	parts := []string{
		s.name.Render(name),
		imageLine(card.Enrichment, s),
		s.detail.Render(address),
	}
	if item.Tags != nil && strings.TrimSpace(*item.Tags) != "" {
		parts = append(parts, s.tags.Render(*item.Tags))
	}
	if item.URL != nil && strings.TrimSpace(*item.URL) != "" {
		parts = append(parts, s.detail.Render(*item.URL))
	}
	if item.Phone != nil && strings.TrimSpace(*item.Phone) != "" {
		parts = append(parts, s.detail.Render(*item.Phone))
	}
	if item.Score != nil {
		parts = append(parts, scoreLine(*item.Score, s))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func imageLine(state domain.EnrichmentState, s styles) string {
	label := s.key.Render("image:")
	switch {
	case state.Status == domain.EnrichmentLoading:
		return label + " " + s.imageMuted.Render("Loading image...")
	case state.ImageURL == "":
		return label + " " + s.imageMuted.Render("No image")
	case state.ImageURL == domain.PlaceholderImageURL:
		return label + " " + s.imageMuted.Render(state.ImageURL)
	default:
		return label + " " + s.image.Render(state.ImageURL)
	}
}

func scoreLine(score float64, s styles) string {
	percent := clampPercent(score * 100)
	if score > 1 {
		percent = clampPercent(score)
	}
	percentStyle := lipgloss.NewStyle().Foreground(interpolateColor(percent, 0, 100))

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.key.Render("match:"),
		" ",
		renderProgressBar(percent, scoreBarWidth, s),
		" ",
		percentStyle.Render(fmt.Sprintf("%.0f%%", percent)),
	)
}

func renderStatus(view StatusView, s styles) string {
	status := view.Status
	lines := []string{
		s.title.Render("Compass session"),
		field(s, "state", s.detail.Render(status.State.Label())),
	}

	if status.Session == nil {
		lines = append(lines, s.empty.Render("Run `compass connect` to link a wallet."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	wallet := status.Session.Address
	if status.Session.Handle != "" {
		wallet = fmt.Sprintf("%s (%s)", wallet, status.Session.Handle)
	}
	lines = append(lines,
		field(s, "wallet", s.detail.Render(wallet)),
		field(s, "traveler", s.name.Render(status.DisplayName)),
	)

	if status.Profile != nil {
		if status.Profile.Email != "" {
			lines = append(lines, field(s, "email", s.detail.Render(status.Profile.Email)))
		}
		lines = append(lines, field(s, "travel style", s.detail.Render(TravelStyleLabel(status.Profile.Preferences.TravelStyle))))
		if destinations := status.Profile.Preferences.FavoriteDestinations; len(destinations) > 0 {
			lines = append(lines, field(s, "favourites", s.tags.Render(strings.Join(destinations, ", "))))
		}
	}
	if status.IsAdmin {
		lines = append(lines, s.warning.Render("admin"))
	}
	if status.NeedsProfileSetup {
		lines = append(lines, s.card.Render(s.warning.Render("Complete your profile: compass profile set --name <name>")))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// TravelStyleLabel turns a style into its display form, "family" -> "Family".
func TravelStyleLabel(style domain.TravelStyle) string {
	return cases.Title(language.English).String(string(style))
}

func field(s styles, key string, value string) string {
	return s.key.Render(key+":") + " " + value
}

func renderProgressBar(percent float64, width int, s styles) string {
	if width <= 0 {
		return ""
	}

	filled := int(math.Round(float64(width) * clampPercent(percent) / 100))
	if filled > width {
		filled = width
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.barBracket.Render("["),
		s.barFill.Render(strings.Repeat("=", filled)),
		s.barEmpty.Render(strings.Repeat("-", width-filled)),
		s.barBracket.Render("]"),
	)
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func interpolateColor(value, min, max float64) lipgloss.Color {
	if max == min {
		return lipgloss.Color("255")
	}

	normalized := (value - min) / (max - min)
	if normalized < 0 {
		normalized = 0
	}
	if normalized > 1 {
		normalized = 1
	}

	// ANSI 256 greyscale ramp, 240 at min up to 255 at max.
	interpolated := 240.0 + 15.0*normalized
	return lipgloss.Color(fmt.Sprintf("%d", int(interpolated)))
}
