// Package memory is a process-local profile service for the browser build and
// tests.
package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/FulinM/waib-2025-LM3-adventurous-compass/internal/domain"
	"github.com/FulinM/waib-2025-LM3-adventurous-compass/internal/ports"
)

type Service struct {
	mu       sync.RWMutex
	profiles map[string]domain.UserProfile
	admins   map[string]struct{}
}

var _ ports.ProfileService = (*Service)(nil)

func NewService(admins ...string) *Service {
	s := &Service{
		profiles: map[string]domain.UserProfile{},
		admins:   map[string]struct{}{},
	}
	for _, admin := range admins {
		s.admins[normalizeCaller(admin)] = struct{}{}
	}

	return s
}

func (s *Service) GetCallerUserProfile(ctx context.Context, caller string) (*domain.UserProfile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	profile, ok := s.profiles[normalizeCaller(caller)]
	if !ok {
		return nil, nil
	}
	profile.Preferences.FavoriteDestinations = append([]string{}, profile.Preferences.FavoriteDestinations...)

	return &profile, nil
}

func (s *Service) SaveCallerUserProfile(ctx context.Context, caller string, profile domain.UserProfile) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if normalizeCaller(caller) == "" {
		return domain.ErrNotConnected
	}
	if strings.TrimSpace(profile.Name) == "" {
		return &domain.ValidationError{Field: "name", Reason: "please enter your name"}
	}

	profile.Preferences.FavoriteDestinations = append([]string{}, profile.Preferences.FavoriteDestinations...)

	s.mu.Lock()
	s.profiles[normalizeCaller(caller)] = profile
	s.mu.Unlock()

	return nil
}

func (s *Service) IsCallerAdmin(ctx context.Context, caller string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.admins[normalizeCaller(caller)]
	return ok, nil
}

func normalizeCaller(caller string) string {
	return strings.ToLower(strings.TrimSpace(caller))
}
