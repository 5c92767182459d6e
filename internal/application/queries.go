package application

import "github.com/FulinM/waib-2025-LM3-adventurous-compass/internal/domain"

type Status struct {
	State             domain.SessionState
	Session           *domain.Session
	Profile           *domain.UserProfile
	DisplayName       string
	IsAdmin           bool
	NeedsProfileSetup bool
}
