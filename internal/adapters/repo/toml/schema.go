package toml

import "fmt"

const (
	currentRecordsSchemaVersion  = 1
	currentSessionsSchemaVersion = 1
)

type recordsFileSchema struct {
	Version int            `toml:"version"`
	Records []recordSchema `toml:"records"`
}

func (s *recordsFileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentRecordsSchemaVersion
	}
}

func (s recordsFileSchema) validateVersion() error {
	if s.Version > currentRecordsSchemaVersion {
		return fmt.Errorf("unsupported records schema version %d (current %d)", s.Version, currentRecordsSchemaVersion)
	}

	return nil
}

type recordSchema struct {
	ID         string                      `toml:"id"`
	Type       string                      `toml:"type"`
	UpdatedAt  string                      `toml:"updated_at,omitempty"`
	Attributes map[string]any              `toml:"attributes"`
	Relations  map[string][]map[string]any `toml:"relations,omitempty"`
}

type sessionsFileSchema struct {
	Version  int             `toml:"version"`
	Sessions []sessionSchema `toml:"sessions"`
}

func (s *sessionsFileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSessionsSchemaVersion
	}
}

func (s sessionsFileSchema) validateVersion() error {
	if s.Version > currentSessionsSchemaVersion {
		return fmt.Errorf("unsupported sessions schema version %d (current %d)", s.Version, currentSessionsSchemaVersion)
	}

	return nil
}

type sessionSchema struct {
	ID                string          `toml:"id"`
	Page              string          `toml:"page,omitempty"`
	RecordID          string          `toml:"record_id,omitempty"`
	ActiveComponentID string          `toml:"active_component_id,omitempty"`
	UpdatedAt         string          `toml:"updated_at,omitempty"`
	Scratch           []scratchSchema `toml:"scratch,omitempty"`
}

type scratchSchema struct {
	ComponentID string         `toml:"component_id"`
	Fields      map[string]any `toml:"fields"`
}
