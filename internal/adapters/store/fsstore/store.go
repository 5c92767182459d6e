// Package fsstore stores entries as files on a hackpadfs file system, which
// lets the same store run on IndexedDB in the browser and in memory in tests.
package fsstore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"
	"sync"

	"github.com/FulinM/waib-2025-LM3-adventurous-compass/internal/domain"
	"github.com/FulinM/waib-2025-LM3-adventurous-compass/internal/ports"
	"github.com/hack-pad/hackpadfs"
)

const (
	dirMode   = 0o700
	entryMode = 0o600
)

type Store struct {
	fs   hackpadfs.FS
	root string
	mu   sync.RWMutex
}

var _ ports.PersistentStore = (*Store)(nil)

// NewStore keeps entries under root, a slash-separated path relative to the
// file system root.
func NewStore(fsys hackpadfs.FS, root string) (*Store, error) {
	root = path.Clean(strings.Trim(root, "/"))
	if !fs.ValidPath(root) {
		return nil, fmt.Errorf("invalid store root %q", root)
	}
	if err := hackpadfs.MkdirAll(fsys, root, dirMode); err != nil {
		return nil, fmt.Errorf("create store root: %w", err)
	}

	return &Store{fs: fsys, root: root}, nil
}

func (s *Store) Put(ctx context.Context, key string, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	name, err := s.nameForKey(key)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := hackpadfs.WriteFullFile(s.fs, name, []byte(value), entryMode); err != nil {
		return fmt.Errorf("write entry %q: %w", key, err)
	}

	return nil
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	name, err := s.nameForKey(key)
	if err != nil {
		return "", err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := hackpadfs.ReadFile(s.fs, name)
	if err != nil {
		if errors.Is(err, hackpadfs.ErrNotExist) {
			return "", fmt.Errorf("entry %q: %w", key, domain.ErrKeyNotFound)
		}
		return "", fmt.Errorf("read entry %q: %w", key, err)
	}

	return string(data), nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	name, err := s.nameForKey(key)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	err = hackpadfs.Remove(s.fs, name)
	if err != nil && !errors.Is(err, hackpadfs.ErrNotExist) {
		return fmt.Errorf("delete entry %q: %w", key, err)
	}

	return nil
}

func (s *Store) nameForKey(key string) (string, error) {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return "", errors.New("store key is empty")
	}
	if strings.Contains(trimmed, "/") || !fs.ValidPath(trimmed) {
		return "", fmt.Errorf("invalid store key %q", key)
	}

	return path.Join(s.root, trimmed), nil
}
