package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/FulinM/waib-2025-LM3-adventurous-compass/internal/domain"
	"github.com/FulinM/waib-2025-LM3-adventurous-compass/internal/ports"
)

const (
	ConnectionFlagKey = "origin_wallet_connection"
	UserPayloadKey    = "origin_wallet_user"

	connectionFlagValue = "true"
)

// credentialRecord is the pair of store entries that lets a session survive a
// reload. The payload is written before the flag and cleared after it, so a
// flag never points at a missing payload.
type credentialRecord struct {
	store ports.PersistentStore
}

func (r credentialRecord) save(ctx context.Context, session domain.Session) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode session payload: %w", err)
	}

	if err := r.store.Put(ctx, UserPayloadKey, string(payload)); err != nil {
		return fmt.Errorf("store session payload: %w", err)
	}

	if err := r.store.Put(ctx, ConnectionFlagKey, connectionFlagValue); err != nil {
		if rollbackErr := r.store.Delete(ctx, UserPayloadKey); rollbackErr != nil {
			return fmt.Errorf("store connection flag and rollback session payload: %w", errors.Join(err, rollbackErr))
		}

		return fmt.Errorf("store connection flag: %w", err)
	}

	return nil
}

// load returns ok=false when nothing is persisted. A record that is present
// but unusable is reported as domain.ErrCorruptRecord.
func (r credentialRecord) load(ctx context.Context) (domain.Session, bool, error) {
	flag, flagErr := r.store.Get(ctx, ConnectionFlagKey)
	if flagErr != nil && !errors.Is(flagErr, domain.ErrKeyNotFound) {
		return domain.Session{}, false, fmt.Errorf("read connection flag: %w", flagErr)
	}
	payload, payloadErr := r.store.Get(ctx, UserPayloadKey)
	if payloadErr != nil && !errors.Is(payloadErr, domain.ErrKeyNotFound) {
		return domain.Session{}, false, fmt.Errorf("read session payload: %w", payloadErr)
	}

	flagFound := flagErr == nil
	payloadFound := payloadErr == nil
	switch {
	case !flagFound && !payloadFound:
		return domain.Session{}, false, nil
	case !payloadFound:
		return domain.Session{}, false, fmt.Errorf("connection flag without session payload: %w", domain.ErrCorruptRecord)
	case !flagFound || flag != connectionFlagValue:
		return domain.Session{}, false, fmt.Errorf("session payload without connection flag: %w", domain.ErrCorruptRecord)
	}

	var session domain.Session
	if err := json.Unmarshal([]byte(payload), &session); err != nil {
		return domain.Session{}, false, fmt.Errorf("decode session payload: %w", errors.Join(domain.ErrCorruptRecord, err))
	}
	if err := session.Validate(); err != nil {
		return domain.Session{}, false, fmt.Errorf("validate session payload: %w", errors.Join(domain.ErrCorruptRecord, err))
	}
	session.Connected = true

	return session, true, nil
}

func (r credentialRecord) clear(ctx context.Context) error {
	flagErr := r.store.Delete(ctx, ConnectionFlagKey)
	payloadErr := r.store.Delete(ctx, UserPayloadKey)
	if flagErr == nil && payloadErr == nil {
		return nil
	}

	return fmt.Errorf("clear credential record: %w", errors.Join(flagErr, payloadErr))
}
