package application

import "github.com/FulinM/waib-2025-LM3-adventurous-compass/internal/domain"

// MustShowProfileSetup reports whether a connected caller has finished
// fetching and has no profile yet.
func MustShowProfileSetup(connected bool, status domain.ProfileStatus, profile *domain.UserProfile) bool {
	return connected && status.Fetched && !status.Loading && profile == nil
}
