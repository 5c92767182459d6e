package application

import (
	"context"
	"fmt"

	"github.com/FulinM/waib-2025-LM3-adventurous-compass/internal/domain"
)

// Service answers questions that span the session and the caller profile.
type Service struct {
	sessions *SessionManager
	profiles *ProfileQuery
}

func NewService(sessions *SessionManager, profiles *ProfileQuery) *Service {
	sessions.Subscribe(profiles.HandleSession)

	return &Service{sessions: sessions, profiles: profiles}
}

func (s *Service) GetStatus(ctx context.Context) (Status, error) {
	snapshot := s.sessions.Snapshot()
	status := Status{State: snapshot.State, Session: snapshot.Session}
	if !snapshot.Connected() {
		return status, nil
	}

	caller := snapshot.Session.Address
	profile, err := s.profiles.Fetch(ctx, caller)
	if err != nil {
		return Status{}, err
	}

	admin, err := s.profiles.IsAdmin(ctx, caller)
	if err != nil {
		return Status{}, err
	}

	status.Profile = profile
	status.DisplayName = domain.DisplayName(profile, snapshot.Session)
	status.IsAdmin = admin
	status.NeedsProfileSetup = s.profiles.Gate(true)

	return status, nil
}

// SetProfile validates the form and saves it for the connected caller,
// keeping any favourite destinations already on file.
func (s *Service) SetProfile(ctx context.Context, cmd SetProfileCommand) (domain.UserProfile, error) {
	snapshot := s.sessions.Snapshot()
	if !snapshot.Connected() {
		return domain.UserProfile{}, domain.ErrNotConnected
	}
	caller := snapshot.Session.Address

	profile, err := domain.NewUserProfile(cmd.Name, cmd.Email, cmd.TravelStyle)
	if err != nil {
		return domain.UserProfile{}, err
	}

	existing, err := s.profiles.Fetch(ctx, caller)
	if err != nil {
		return domain.UserProfile{}, err
	}
	if existing != nil && len(existing.Preferences.FavoriteDestinations) > 0 {
		profile.Preferences.FavoriteDestinations = existing.Preferences.FavoriteDestinations
	}

	if err := s.profiles.Save(ctx, caller, profile); err != nil {
		return domain.UserProfile{}, fmt.Errorf("set profile: %w", err)
	}

	return profile, nil
}
