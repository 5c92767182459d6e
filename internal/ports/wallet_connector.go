package ports

import (
	"context"

	"github.com/FulinM/waib-2025-LM3-adventurous-compass/internal/domain"
)

type WalletConnector interface {
	Acquire(ctx context.Context) (domain.Credential, error)
	Release(ctx context.Context, session domain.Session) error
}
