// Package wallet provides a stand-in wallet that hands out random identities
// after a short delay.
package wallet

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"math/big"
	"time"

	"github.com/FulinM/waib-2025-LM3-adventurous-compass/internal/domain"
	"github.com/FulinM/waib-2025-LM3-adventurous-compass/internal/ports"
)

const (
	DefaultConnectDelay = 1500 * time.Millisecond
	DefaultReleaseDelay = 300 * time.Millisecond

	addressBytes   = 20
	handlePrefix   = "traveler_"
	handleLength   = 6
	handleAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
)

type Simulated struct {
	ConnectDelay time.Duration
	ReleaseDelay time.Duration
	Random       io.Reader
}

var _ ports.WalletConnector = Simulated{}

func NewSimulated(connectDelay time.Duration) Simulated {
	return Simulated{ConnectDelay: connectDelay, ReleaseDelay: DefaultReleaseDelay}
}

func (s Simulated) Acquire(ctx context.Context) (domain.Credential, error) {
	if err := sleep(ctx, s.ConnectDelay); err != nil {
		return domain.Credential{}, err
	}

	address, err := s.newAddress()
	if err != nil {
		return domain.Credential{}, fmt.Errorf("generate wallet address: %w", err)
	}
	handle, err := s.newHandle()
	if err != nil {
		return domain.Credential{}, fmt.Errorf("generate wallet handle: %w", err)
	}

	return domain.Credential{Address: address, Handle: handle}, nil
}

func (s Simulated) Release(ctx context.Context, _ domain.Session) error {
	return sleep(ctx, s.ReleaseDelay)
}

func (s Simulated) newAddress() (string, error) {
	raw := make([]byte, addressBytes)
	if _, err := io.ReadFull(s.random(), raw); err != nil {
		return "", err
	}

	return "0x" + hex.EncodeToString(raw), nil
}

func (s Simulated) newHandle() (string, error) {
	limit := big.NewInt(int64(len(handleAlphabet)))
	out := make([]byte, handleLength)
	for i := range out {
		n, err := rand.Int(s.random(), limit)
		if err != nil {
			return "", err
		}
		out[i] = handleAlphabet[n.Int64()]
	}

	return handlePrefix + string(out), nil
}

func (s Simulated) random() io.Reader {
	if s.Random != nil {
		return s.Random
	}
	return rand.Reader
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
