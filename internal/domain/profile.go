package domain

import (
	"strings"
	"time"
)

type TravelStyle string

const (
	TravelStyleAdventure  TravelStyle = "adventure"
	TravelStyleRelaxation TravelStyle = "relaxation"
	TravelStyleCultural   TravelStyle = "cultural"
	TravelStyleLuxury     TravelStyle = "luxury"
	TravelStyleBudget     TravelStyle = "budget"
	TravelStyleFamily     TravelStyle = "family"

	DefaultTravelStyle = TravelStyleAdventure
)

var travelStyles = []TravelStyle{
	TravelStyleAdventure,
	TravelStyleRelaxation,
	TravelStyleCultural,
	TravelStyleLuxury,
	TravelStyleBudget,
	TravelStyleFamily,
}

func TravelStyles() []TravelStyle {
	out := make([]TravelStyle, len(travelStyles))
	copy(out, travelStyles)
	return out
}

func ParseTravelStyle(raw string) (TravelStyle, error) {
	trimmed := strings.ToLower(strings.TrimSpace(raw))
	if trimmed == "" {
		return DefaultTravelStyle, nil
	}
	for _, style := range travelStyles {
		if string(style) == trimmed {
			return style, nil
		}
	}

	return "", &ValidationError{Field: "travelStyle", Reason: "unsupported travel style " + `"` + raw + `"`}
}

type Preferences struct {
	FavoriteDestinations []string
	TravelStyle          TravelStyle
}

type UserProfile struct {
	Name        string
	Email       string
	Preferences Preferences
}

// NewUserProfile builds a profile from setup form input.
func NewUserProfile(name, email, style string) (UserProfile, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return UserProfile{}, &ValidationError{Field: "name", Reason: "please enter your name"}
	}

	travelStyle, err := ParseTravelStyle(style)
	if err != nil {
		return UserProfile{}, err
	}

	return UserProfile{
		Name:  name,
		Email: strings.TrimSpace(email),
		Preferences: Preferences{
			FavoriteDestinations: []string{},
			TravelStyle:          travelStyle,
		},
	}, nil
}

// ProfileStatus mirrors the fetch lifecycle of the caller profile.
type ProfileStatus struct {
	Loading   bool
	Fetched   bool
	FetchedAt time.Time
}

func (s ProfileStatus) IsStale(now time.Time, maxAge time.Duration) bool {
	if !s.Fetched || s.FetchedAt.IsZero() {
		return true
	}

	if maxAge <= 0 {
		return false
	}

	return now.Sub(s.FetchedAt) > maxAge
}

// DisplayName prefers the profile name and falls back to the wallet handle.
func DisplayName(profile *UserProfile, session *Session) string {
	if profile != nil && strings.TrimSpace(profile.Name) != "" {
		return profile.Name
	}
	if session != nil {
		return session.Handle
	}

	return ""
}
