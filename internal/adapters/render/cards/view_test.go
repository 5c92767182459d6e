package cards

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FulinM/waib-2025-LM3-adventurous-compass/internal/application"
	"github.com/FulinM/waib-2025-LM3-adventurous-compass/internal/domain"
)

func TestRenderEmptyResults(t *testing.T) {
	output, err := Render(Results{})
	require.NoError(t, err)
	assert.Contains(t, output, EmptyMessage)
	assert.NotContains(t, output, "results:")
}

func TestRenderResolvedAndPlaceholderCards(t *testing.T) {
	score := 0.8
	output, err := Render(Results{
		Query: "Japan",
		Cards: []application.CardView{
			{
				Item: domain.AttractionResult{
					Name:    domain.StringPtr("Tokyo"),
					Address: domain.StringPtr("Tokyo, Japan"),
					Tags:    domain.StringPtr("city, food"),
					Score:   &score,
				},
				Enrichment: domain.EnrichmentState{Status: domain.EnrichmentResolved, ImageURL: "https://img.example/tokyo.jpg"},
			},
			{
				Item:       domain.AttractionResult{Name: domain.StringPtr("Nara")},
				Enrichment: domain.EnrichmentState{Status: domain.EnrichmentFailed, ImageURL: domain.PlaceholderImageURL},
			},
			{
				Item:       domain.AttractionResult{Name: domain.StringPtr("Osaka")},
				Enrichment: domain.EnrichmentState{Status: domain.EnrichmentLoading},
			},
		},
	})
	require.NoError(t, err)

	assert.Contains(t, output, `Recommendations for "Japan"`)
	assert.Contains(t, output, "results: 3")
	assert.Contains(t, output, "Tokyo, Japan")
	assert.Contains(t, output, "city, food")
	assert.Contains(t, output, "https://img.example/tokyo.jpg")
	assert.Contains(t, output, "80%")
	assert.Contains(t, output, NoAddressMessage)
	assert.Contains(t, output, domain.PlaceholderImageURL)
	assert.Contains(t, output, "Loading image...")
}

func TestRenderShowsSearchError(t *testing.T) {
	output, err := Render(Results{Query: "Tokyo", Err: &domain.RemoteError{StatusCode: 500, Body: "boom"}})
	require.NoError(t, err)
	assert.Contains(t, output, "Error: API error: 500 boom")
	assert.Contains(t, output, EmptyMessage)
}

func TestRenderStatusDisconnected(t *testing.T) {
	output, err := RenderStatus(StatusView{Status: application.Status{State: domain.SessionDisconnected}})
	require.NoError(t, err)
	assert.Contains(t, output, "state: Disconnected")
	assert.Contains(t, output, "compass connect")
}

func TestRenderStatusConnectedWithProfile(t *testing.T) {
	profile := &domain.UserProfile{
		Name:  "Ada",
		Email: "ada@example.com",
		Preferences: domain.Preferences{
			FavoriteDestinations: []string{"Lisbon", "Porto"},
			TravelStyle:          domain.TravelStyleRelaxation,
		},
	}
	output, err := RenderStatus(StatusView{Status: application.Status{
		State:       domain.SessionConnected,
		Session:     &domain.Session{Address: "0xabc", Handle: "traveler_abc123", Connected: true},
		Profile:     profile,
		DisplayName: "Ada",
		IsAdmin:     true,
	}})
	require.NoError(t, err)

	assert.Contains(t, output, "state: Connected")
	assert.Contains(t, output, "0xabc (traveler_abc123)")
	assert.Contains(t, output, "traveler: Ada")
	assert.Contains(t, output, "travel style: Relaxation")
	assert.Contains(t, output, "Lisbon, Porto")
	assert.Contains(t, output, "admin")
	assert.NotContains(t, output, "Complete your profile")
}

func TestRenderStatusPromptsProfileSetup(t *testing.T) {
	output, err := RenderStatus(StatusView{Status: application.Status{
		State:             domain.SessionConnected,
		Session:           &domain.Session{Address: "0xabc", Connected: true},
		NeedsProfileSetup: true,
	}})
	require.NoError(t, err)
	assert.Contains(t, output, "Complete your profile")
}

func TestTravelStyleLabel(t *testing.T) {
	assert.Equal(t, "Adventure", TravelStyleLabel(domain.TravelStyleAdventure))
	assert.Equal(t, "Family", TravelStyleLabel(domain.TravelStyleFamily))
}

func TestRenderProgressBarBounds(t *testing.T) {
	s := newStyles()
	assert.Equal(t, "[==========]", renderProgressBar(150, 10, s))
	assert.Equal(t, "[----------]", renderProgressBar(-5, 10, s))
	assert.Equal(t, "", renderProgressBar(50, 0, s))
}
