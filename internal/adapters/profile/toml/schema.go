package toml

import "fmt"

const currentSchemaVersion = 1

type fileSchema struct {
	Version  int             `toml:"version"`
	Admins   []string        `toml:"admins,omitempty"`
	Profiles []profileSchema `toml:"profiles"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported profiles schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

type profileSchema struct {
	Caller               string   `toml:"caller"`
	Name                 string   `toml:"name"`
	Email                string   `toml:"email,omitempty"`
	TravelStyle          string   `toml:"travel_style"`
	FavoriteDestinations []string `toml:"favorite_destinations"`
	UpdatedAt            string   `toml:"updated_at,omitempty"`
}
