package toml

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	"github.com/bnema/editable-entry/internal/domain"
	"github.com/bnema/editable-entry/internal/ports"
)

const (
	sessionsPathKey = "sessions.path"
	sessionsFile    = "sessions.toml"
)

// SessionRepository keeps edit sessions between turns so a CLI host can
// start an edit in one invocation and save it in the next.
type SessionRepository struct {
	path string
	mu   *sync.RWMutex
}

var _ ports.SessionRepository = (*SessionRepository)(nil)

func NewSessionRepository(cfg *viper.Viper) (*SessionRepository, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	path := cfg.GetString(sessionsPathKey)
	if path == "" {
		path = filepath.Join(homeDir, configDir, sessionsFile)
	}

	path, err = normalizePath(path)
	if err != nil {
		return nil, err
	}

	return &SessionRepository{path: path, mu: lockForPath(path)}, nil
}

func (r *SessionRepository) GetByID(ctx context.Context, id domain.SessionID) (domain.EditSession, error) {
	if err := ctx.Err(); err != nil {
		return domain.EditSession{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return domain.EditSession{}, err
	}

	for _, entry := range file.Sessions {
		if entry.ID == string(id) {
			return fromSessionSchema(entry), nil
		}
	}

	return domain.EditSession{}, domain.ErrSessionNotFound
}

func (r *SessionRepository) Save(ctx context.Context, session domain.EditSession) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.readSchema()
	if err != nil {
		return err
	}
	file.applyDefaults()

	encoded := toSessionSchema(session)
	updated := false
	for i := range file.Sessions {
		if file.Sessions[i].ID == encoded.ID {
			file.Sessions[i] = encoded
			updated = true
			break
		}
	}
	if !updated {
		file.Sessions = append(file.Sessions, encoded)
	}

	return writeTOMLFile(r.path, file)
}

func (r *SessionRepository) Delete(ctx context.Context, id domain.SessionID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.readSchema()
	if err != nil {
		return err
	}

	kept := file.Sessions[:0]
	for _, entry := range file.Sessions {
		if entry.ID != string(id) {
			kept = append(kept, entry)
		}
	}
	if len(kept) == len(file.Sessions) {
		return nil
	}
	file.Sessions = kept

	return writeTOMLFile(r.path, file)
}

func (r *SessionRepository) readSchema() (sessionsFileSchema, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return sessionsFileSchema{}, nil
		}
		return sessionsFileSchema{}, fmt.Errorf("read sessions file: %w", err)
	}

	var file sessionsFileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return sessionsFileSchema{}, fmt.Errorf("decode sessions file: %w", err)
	}
	if err := file.validateVersion(); err != nil {
		return sessionsFileSchema{}, err
	}
	file.applyDefaults()

	return file, nil
}

func toSessionSchema(session domain.EditSession) sessionSchema {
	scratch := make([]scratchSchema, 0, len(session.Scratch))
	ids := make(map[string]map[string]any, len(session.Scratch))
	for id, fields := range session.Scratch {
		ids[string(id)] = fields
	}
	for _, id := range sortedKeys(ids) {
		scratch = append(scratch, scratchSchema{ComponentID: id, Fields: compactMap(ids[id])})
	}

	return sessionSchema{
		ID:                string(session.ID),
		Page:              session.Page,
		RecordID:          string(session.RecordID),
		ActiveComponentID: string(session.ActiveComponentID),
		UpdatedAt:         formatTime(session.UpdatedAt),
		Scratch:           scratch,
	}
}

func fromSessionSchema(schema sessionSchema) domain.EditSession {
	session := domain.NewEditSession(domain.SessionID(schema.ID))
	session.Page = schema.Page
	session.RecordID = domain.RecordID(schema.RecordID)
	session.ActiveComponentID = domain.ComponentID(schema.ActiveComponentID)
	session.UpdatedAt = parseTime(schema.UpdatedAt)
	for _, entry := range schema.Scratch {
		fields := entry.Fields
		if fields == nil {
			fields = map[string]any{}
		}
		session.Scratch[domain.ComponentID(entry.ComponentID)] = fields
	}

	return *session
}
