package ports

import (
	"context"

	"github.com/FulinM/waib-2025-LM3-adventurous-compass/internal/domain"
)

// ProfileService is the remote profile actor. The caller is the session address.
// GetCallerUserProfile returns nil when the caller has no profile yet.
type ProfileService interface {
	GetCallerUserProfile(ctx context.Context, caller string) (*domain.UserProfile, error)
	SaveCallerUserProfile(ctx context.Context, caller string, profile domain.UserProfile) error
	IsCallerAdmin(ctx context.Context, caller string) (bool, error)
}
