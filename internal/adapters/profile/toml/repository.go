package toml

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	"github.com/FulinM/waib-2025-LM3-adventurous-compass/internal/domain"
	"github.com/FulinM/waib-2025-LM3-adventurous-compass/internal/ports"
)

const (
	ProfilesPathKey = "profiles.path"

	profilesFileMode   = 0o600
	profilesDirMode    = 0o700
	profilesConfigDir  = ".compass"
	profilesConfigFile = "profiles.toml"
	tempFilePattern    = ".profiles-*.toml.tmp"
)

// Repository keeps caller profiles and the admin list in one TOML file.
type Repository struct {
	profilesPath string
	clock        ports.Clock
	mu           *sync.RWMutex
}

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

var _ ports.ProfileService = (*Repository)(nil)

// NewRepository resolves the file from profiles.path, defaulting to
// ~/.compass/profiles.toml.
func NewRepository(cfg *viper.Viper, clock ports.Clock) (*Repository, error) {
	if cfg == nil {
		cfg = viper.New()
	}
	if clock == nil {
		clock = ports.SystemClock{}
	}

	profilesPath := cfg.GetString(ProfilesPathKey)
	if profilesPath == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home directory: %w", err)
		}
		profilesPath = filepath.Join(homeDir, profilesConfigDir, profilesConfigFile)
	}

	profilesPath, err := normalizeProfilesPath(profilesPath)
	if err != nil {
		return nil, err
	}

	return &Repository{profilesPath: profilesPath, clock: clock, mu: lockForPath(profilesPath)}, nil
}

func (r *Repository) Path() string {
	return r.profilesPath
}

func (r *Repository) GetCallerUserProfile(ctx context.Context, caller string) (*domain.UserProfile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return nil, err
	}

	for _, entry := range file.Profiles {
		if sameCaller(entry.Caller, caller) {
			profile := fromSchema(entry)
			return &profile, nil
		}
	}

	return nil, nil
}

func (r *Repository) SaveCallerUserProfile(ctx context.Context, caller string, profile domain.UserProfile) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(caller) == "" {
		return domain.ErrNotConnected
	}
	if strings.TrimSpace(profile.Name) == "" {
		return &domain.ValidationError{Field: "name", Reason: "please enter your name"}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.readSchema()
	if err != nil {
		return err
	}

	encoded := toSchema(caller, profile, r.clock.Now())
	updated := false
	for i := range file.Profiles {
		if sameCaller(file.Profiles[i].Caller, caller) {
			file.Profiles[i] = encoded
			updated = true
			break
		}
	}
	if !updated {
		file.Profiles = append(file.Profiles, encoded)
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	return r.writeSchema(file)
}

func (r *Repository) IsCallerAdmin(ctx context.Context, caller string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if strings.TrimSpace(caller) == "" {
		return false, nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return false, err
	}

	for _, admin := range file.Admins {
		if sameCaller(admin, caller) {
			return true, nil
		}
	}

	return false, nil
}

func (r *Repository) readSchema() (fileSchema, error) {
	data, err := os.ReadFile(r.profilesPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			file := fileSchema{}
			file.applyDefaults()
			return file, nil
		}
		return fileSchema{}, fmt.Errorf("read profiles file: %w", err)
	}

	var file fileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return fileSchema{}, fmt.Errorf("decode profiles file: %w", err)
	}
	if err := file.validateVersion(); err != nil {
		return fileSchema{}, err
	}
	file.applyDefaults()

	return file, nil
}

func (r *Repository) writeSchema(file fileSchema) error {
	file.applyDefaults()

	if err := os.MkdirAll(filepath.Dir(r.profilesPath), profilesDirMode); err != nil {
		return fmt.Errorf("create profiles directory: %w", err)
	}

	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode profiles file: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(r.profilesPath), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp profiles file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp profiles file: %w", err)
	}
	if err := tempFile.Chmod(profilesFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp profiles file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp profiles file: %w", err)
	}

	if err := os.Rename(tempName, r.profilesPath); err != nil {
		return fmt.Errorf("replace profiles file: %w", err)
	}
	cleanup = false

	return nil
}

func normalizeProfilesPath(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve profiles path: %w", err)
	}

	return filepath.Clean(absPath), nil
}

func lockForPath(path string) *sync.RWMutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLockMap[path]; ok {
		return mu
	}

	mu := &sync.RWMutex{}
	pathLockMap[path] = mu
	return mu
}

// Wallet addresses are hex, so callers compare case-insensitively.
func sameCaller(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

func toSchema(caller string, profile domain.UserProfile, now time.Time) profileSchema {
	destinations := profile.Preferences.FavoriteDestinations
	if destinations == nil {
		destinations = []string{}
	}

	return profileSchema{
		Caller:               strings.TrimSpace(caller),
		Name:                 profile.Name,
		Email:                profile.Email,
		TravelStyle:          string(profile.Preferences.TravelStyle),
		FavoriteDestinations: destinations,
		UpdatedAt:            now.UTC().Format(time.RFC3339),
	}
}

func fromSchema(entry profileSchema) domain.UserProfile {
	style, err := domain.ParseTravelStyle(entry.TravelStyle)
	if err != nil {
		style = domain.DefaultTravelStyle
	}
	destinations := entry.FavoriteDestinations
	if destinations == nil {
		destinations = []string{}
	}

	return domain.UserProfile{
		Name:  entry.Name,
		Email: entry.Email,
		Preferences: domain.Preferences{
			FavoriteDestinations: destinations,
			TravelStyle:          style,
		},
	}
}
