package chain

import (
	"context"
	"errors"
	"fmt"

	filestore "github.com/FulinM/waib-2025-LM3-adventurous-compass/internal/adapters/store/file"
	sqlitestore "github.com/FulinM/waib-2025-LM3-adventurous-compass/internal/adapters/store/sqlite"
	"github.com/FulinM/waib-2025-LM3-adventurous-compass/internal/domain"
	"github.com/FulinM/waib-2025-LM3-adventurous-compass/internal/ports"
)

// Store writes to primary and falls back when it fails. Deletes always reach
// both backends so a fallback copy cannot outlive a cleared record, and a
// write that lands in the fallback drops the key from primary so Get never
// pairs an older primary value with newer fallback ones.
type Store struct {
	primary  ports.PersistentStore
	fallback ports.PersistentStore
}

var _ ports.PersistentStore = (*Store)(nil)

var (
	errNilPrimaryStore  = errors.New("primary store is nil")
	errNilFallbackStore = errors.New("fallback store is nil")
)

func NewStore(primary ports.PersistentStore, fallback ports.PersistentStore) *Store {
	store, err := NewStoreChecked(primary, fallback)
	if err != nil {
		panic(err)
	}

	return store
}

func NewStoreChecked(primary ports.PersistentStore, fallback ports.PersistentStore) (*Store, error) {
	if primary == nil {
		return nil, errNilPrimaryStore
	}
	if fallback == nil {
		return nil, errNilFallbackStore
	}

	return &Store{primary: primary, fallback: fallback}, nil
}

func NewSQLiteFirstWithFileFallback(dsn string, fileRoot string) (*Store, error) {
	primary, err := sqlitestore.Open(dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite store: %w", err)
	}

	return NewStoreChecked(primary, filestore.NewStore(fileRoot))
}

func (s *Store) Put(ctx context.Context, key string, value string) error {
	err := s.primary.Put(ctx, key, value)
	if err == nil {
		return nil
	}
	if shouldSkipFallback(err) {
		return err
	}

	fallbackErr := s.fallback.Put(ctx, key, value)
	if fallbackErr != nil {
		return fmt.Errorf("primary backend put failed: %w; fallback backend put failed: %w", err, fallbackErr)
	}

	if deleteErr := s.primary.Delete(ctx, key); deleteErr != nil && !errors.Is(deleteErr, domain.ErrKeyNotFound) {
		return fmt.Errorf("primary backend put failed: %w; drop stale primary entry: %w", err, deleteErr)
	}

	return nil
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	value, err := s.primary.Get(ctx, key)
	if err == nil {
		return value, nil
	}
	if shouldSkipFallback(err) {
		return "", err
	}

	fallbackValue, fallbackErr := s.fallback.Get(ctx, key)
	if fallbackErr == nil {
		return fallbackValue, nil
	}
	if errors.Is(err, domain.ErrKeyNotFound) && errors.Is(fallbackErr, domain.ErrKeyNotFound) {
		return "", fmt.Errorf("entry %q: %w", key, domain.ErrKeyNotFound)
	}

	return "", fmt.Errorf("primary backend get failed: %w; fallback backend get failed: %w", err, fallbackErr)
}

func (s *Store) Delete(ctx context.Context, key string) error {
	err := s.primary.Delete(ctx, key)
	if shouldSkipFallback(err) {
		return err
	}

	fallbackErr := s.fallback.Delete(ctx, key)
	if err == nil && fallbackErr == nil {
		return nil
	}

	return fmt.Errorf("delete %q: %w", key, errors.Join(err, fallbackErr))
}

// Close releases backends that hold resources.
func (s *Store) Close() error {
	var errs []error
	for _, backend := range []ports.PersistentStore{s.primary, s.fallback} {
		if closer, ok := backend.(interface{ Close() error }); ok {
			errs = append(errs, closer.Close())
		}
	}

	return errors.Join(errs...)
}

func shouldSkipFallback(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
