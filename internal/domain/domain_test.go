package domain

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionStateLabel(t *testing.T) {
	tests := []struct {
		name  string
		state SessionState
		want  string
	}{
		{name: "disconnected", state: SessionDisconnected, want: "Disconnected"},
		{name: "connecting", state: SessionConnecting, want: "Connecting..."},
		{name: "connected", state: SessionConnected, want: "Connected"},
		{name: "disconnecting", state: SessionDisconnecting, want: "Disconnecting..."},
		{name: "unknown state returns raw value", state: SessionState("paused"), want: "paused"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.state.Label())
		})
	}
}

func TestSessionValidateRequiresAddress(t *testing.T) {
	t.Parallel()

	err := Session{Handle: "traveler_abc123", Connected: true}.Validate()
	require.ErrorIs(t, err, ErrValidation)

	assert.NoError(t, Session{Address: "0xabc", Connected: true}.Validate())
}

func TestNewUserProfile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   [3]string
		want    UserProfile
		wantErr string
	}{
		{
			name:  "trims and defaults style",
			input: [3]string{"  Ada ", " ada@example.com ", ""},
			want: UserProfile{
				Name:        "Ada",
				Email:       "ada@example.com",
				Preferences: Preferences{FavoriteDestinations: []string{}, TravelStyle: TravelStyleAdventure},
			},
		},
		{
			name:  "explicit style is case insensitive",
			input: [3]string{"Ada", "", "Luxury"},
			want: UserProfile{
				Name:        "Ada",
				Preferences: Preferences{FavoriteDestinations: []string{}, TravelStyle: TravelStyleLuxury},
			},
		},
		{name: "blank name", input: [3]string{"   ", "", ""}, wantErr: "please enter your name"},
		{name: "unknown style", input: [3]string{"Ada", "", "space"}, wantErr: "unsupported travel style"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := NewUserProfile(tc.input[0], tc.input[1], tc.input[2])
			if tc.wantErr != "" {
				require.ErrorIs(t, err, ErrValidation)
				assert.ErrorContains(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestProfileStatusStaleDetection(t *testing.T) {
	fetchedAt := time.Date(2026, 2, 14, 12, 0, 0, 0, time.UTC)
	s := ProfileStatus{Fetched: true, FetchedAt: fetchedAt}

	assert.False(t, s.IsStale(fetchedAt.Add(5*time.Minute), 10*time.Minute))
	assert.True(t, s.IsStale(fetchedAt.Add(11*time.Minute), 10*time.Minute))
	assert.False(t, s.IsStale(fetchedAt.Add(24*time.Hour), 0))
	assert.True(t, ProfileStatus{}.IsStale(fetchedAt, time.Hour))
}

func TestDisplayNamePrefersProfileName(t *testing.T) {
	session := &Session{Address: "0x1", Handle: "traveler_x1y2z3", Connected: true}

	assert.Equal(t, "Ada", DisplayName(&UserProfile{Name: "Ada"}, session))
	assert.Equal(t, "traveler_x1y2z3", DisplayName(&UserProfile{Name: " "}, session))
	assert.Equal(t, "traveler_x1y2z3", DisplayName(nil, session))
	assert.Equal(t, "", DisplayName(nil, nil))
}

func TestAttractionResultKeyAndIdentity(t *testing.T) {
	t.Parallel()

	withID := AttractionResult{ID: StringPtr("42"), Name: StringPtr("Tokyo")}
	nameOnly := AttractionResult{Name: StringPtr("Tokyo")}
	empty := AttractionResult{}

	assert.Equal(t, "id:42", withID.Key())
	assert.Equal(t, "name:Tokyo", nameOnly.Key())
	assert.Equal(t, "", empty.Key())

	withImage := nameOnly
	withImage.ImageURL = StringPtr("https://img.example/tokyo.jpg")
	assert.NotEqual(t, nameOnly.Identity(), withImage.Identity())
	assert.True(t, withImage.HasImage())
	assert.False(t, AttractionResult{ImageURL: StringPtr("  ")}.HasImage())
}

func TestAttractionResultMarshalJSONKeepsExtras(t *testing.T) {
	t.Parallel()

	score := 0.75
	item := AttractionResult{
		Name:  StringPtr("Tokyo"),
		Tags:  StringPtr("city"),
		Score: &score,
		Extra: map[string]json.RawMessage{"Country": json.RawMessage(`"Japan"`)},
	}

	data, err := json.Marshal(item)
	require.NoError(t, err)
	assert.JSONEq(t, `{"Name":"Tokyo","Tags":"city","score":0.75,"Country":"Japan"}`, string(data))
}

func TestErrorTaxonomy(t *testing.T) {
	t.Parallel()

	remote := &RemoteError{StatusCode: 502, Body: "upstream down"}
	assert.Equal(t, "API error: 502 upstream down", remote.Error())
	assert.Equal(t, "API error: 404", (&RemoteError{StatusCode: 404}).Error())

	var target *RemoteError
	require.ErrorAs(t, fmt.Errorf("search: %w", remote), &target)
	assert.Equal(t, 502, target.StatusCode)

	assert.True(t, IsCanceled(fmt.Errorf("fetch: %w", context.Canceled)))
	assert.True(t, IsCanceled(ErrConnectAborted))
	assert.False(t, IsCanceled(errors.New("boom")))
	assert.False(t, IsCanceled(remote))
}

func TestEnrichmentStateSettled(t *testing.T) {
	assert.False(t, EnrichmentState{Status: EnrichmentLoading}.Settled())
	assert.True(t, EnrichmentState{Status: EnrichmentFailed}.Settled())
	assert.True(t, EnrichmentState{Status: EnrichmentNotStarted}.Settled())
}
