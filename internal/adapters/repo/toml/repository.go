package toml

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	"github.com/bnema/editable-entry/internal/domain"
	"github.com/bnema/editable-entry/internal/ports"
)

const (
	configName      = "config"
	configType      = "toml"
	recordsPathKey  = "records.path"
	dataFileMode    = 0o600
	dataDirMode     = 0o700
	configDir       = ".editable-entry"
	recordsFile     = "records.toml"
	tempFilePattern = ".editable-entry-*.toml.tmp"
)

// RecordRepository stores records in a single TOML file. Attribute values
// keep their TOML types; nil values are dropped since TOML has no null.
type RecordRepository struct {
	path string
	mu   *sync.RWMutex
}

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

var _ ports.RecordRepository = (*RecordRepository)(nil)

func NewRecordRepository(cfg *viper.Viper) (*RecordRepository, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	cfg.SetConfigName(configName)
	cfg.SetConfigType(configType)
	cfg.AddConfigPath(filepath.Join(homeDir, configDir))
	cfg.SetDefault(recordsPathKey, filepath.Join(homeDir, configDir, recordsFile))

	err = cfg.ReadInConfig()
	if err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	path := cfg.GetString(recordsPathKey)
	if path == "" {
		return nil, errors.New("records path is empty")
	}
	path, err = normalizePath(path)
	if err != nil {
		return nil, err
	}

	return &RecordRepository{path: path, mu: lockForPath(path)}, nil
}

func (r *RecordRepository) GetByID(ctx context.Context, id domain.RecordID) (domain.Record, error) {
	if err := ctx.Err(); err != nil {
		return domain.Record{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return domain.Record{}, err
	}

	for _, entry := range file.Records {
		if entry.ID == string(id) {
			return fromRecordSchema(entry), nil
		}
	}

	return domain.Record{}, domain.ErrRecordNotFound
}

func (r *RecordRepository) List(ctx context.Context) ([]domain.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return nil, err
	}

	records := make([]domain.Record, 0, len(file.Records))
	for _, entry := range file.Records {
		records = append(records, fromRecordSchema(entry))
	}

	return records, nil
}

// Put inserts or replaces a record.
func (r *RecordRepository) Put(ctx context.Context, record domain.Record) error {
	return r.modify(ctx, record.ID, true, func(stored *recordSchema) {
		*stored = toRecordSchema(record)
	})
}

// Update replaces the attributes of an existing record. Relations already
// stored are kept when the record carries none.
func (r *RecordRepository) Update(ctx context.Context, record domain.Record) error {
	return r.modify(ctx, record.ID, false, func(stored *recordSchema) {
		encoded := toRecordSchema(record)
		if len(encoded.Relations) == 0 {
			encoded.Relations = stored.Relations
		}
		*stored = encoded
	})
}

func (r *RecordRepository) SaveRelation(ctx context.Context, record domain.Record, relation string, items []domain.Attributes) error {
	if relation == "" {
		return errors.New("relation name is empty")
	}

	return r.modify(ctx, record.ID, false, func(stored *recordSchema) {
		if stored.Relations == nil {
			stored.Relations = map[string][]map[string]any{}
		}
		stored.Relations[relation] = toItemsSchema(items)
	})
}

func (r *RecordRepository) modify(ctx context.Context, id domain.RecordID, create bool, apply func(*recordSchema)) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.readSchema()
	if err != nil {
		return err
	}

	index := -1
	for i := range file.Records {
		if file.Records[i].ID == string(id) {
			index = i
			break
		}
	}
	if index < 0 {
		if !create {
			return fmt.Errorf("record %s: %w", id, domain.ErrRecordNotFound)
		}
		file.Records = append(file.Records, recordSchema{ID: string(id)})
		index = len(file.Records) - 1
	}
	apply(&file.Records[index])

	if err := ctx.Err(); err != nil {
		return err
	}

	return writeTOMLFile(r.path, file)
}

func (r *RecordRepository) readSchema() (recordsFileSchema, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return recordsFileSchema{}, nil
		}
		return recordsFileSchema{}, fmt.Errorf("read records file: %w", err)
	}

	var file recordsFileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return recordsFileSchema{}, fmt.Errorf("decode records file: %w", err)
	}
	if err := file.validateVersion(); err != nil {
		return recordsFileSchema{}, err
	}
	file.applyDefaults()

	return file, nil
}

func normalizePath(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve data path: %w", err)
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

func writeTOMLFile(path string, file any) error {
	if err := os.MkdirAll(filepath.Dir(path), dataDirMode); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode file: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(path), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
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
		return fmt.Errorf("write temp file: %w", err)
	}

	if err := tempFile.Chmod(dataFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tempName, path); err != nil {
		return fmt.Errorf("replace file: %w", err)
	}

	cleanup = false

	if err := os.Chmod(path, dataFileMode); err != nil {
		return fmt.Errorf("chmod file: %w", err)
	}

	return nil
}

func toRecordSchema(record domain.Record) recordSchema {
	encoded := recordSchema{
		ID:         string(record.ID),
		Type:       string(record.Type),
		UpdatedAt:  formatTime(record.UpdatedAt),
		Attributes: compactMap(record.Attributes),
	}

	if len(record.Relations) > 0 {
		encoded.Relations = make(map[string][]map[string]any, len(record.Relations))
		for name, items := range record.Relations {
			encoded.Relations[name] = toItemsSchema(items)
		}
	}

	return encoded
}

func fromRecordSchema(schema recordSchema) domain.Record {
	record := domain.Record{
		ID:         domain.RecordID(schema.ID),
		Type:       domain.RecordType(schema.Type),
		Attributes: domain.Attributes(schema.Attributes),
		UpdatedAt:  parseTime(schema.UpdatedAt),
	}
	if record.Attributes == nil {
		record.Attributes = domain.Attributes{}
	}

	if len(schema.Relations) > 0 {
		record.Relations = make(map[string][]domain.Attributes, len(schema.Relations))
		for name, items := range schema.Relations {
			decoded := make([]domain.Attributes, 0, len(items))
			for _, item := range items {
				decoded = append(decoded, domain.Attributes(item))
			}
			record.Relations[name] = decoded
		}
	}

	return record
}

func toItemsSchema(items []domain.Attributes) []map[string]any {
	out := make([]map[string]any, 0, len(items))
	for _, item := range items {
		out = append(out, compactMap(item))
	}

	return out
}

// compactMap copies values into a TOML-encodable map, dropping nils.
func compactMap[M ~map[string]any](values M) map[string]any {
	out := make(map[string]any, len(values))
	for key, value := range values {
		if compacted, ok := compactValue(value); ok {
			out[key] = compacted
		}
	}

	return out
}

func compactValue(value any) (any, bool) {
	switch v := value.(type) {
	case nil:
		return nil, false
	case map[string]any:
		return compactMap(v), true
	case domain.Attributes:
		return compactMap(v), true
	case []map[string]any:
		out := make([]map[string]any, 0, len(v))
		for _, item := range v {
			out = append(out, compactMap(item))
		}
		return out, true
	case []domain.Attributes:
		out := make([]map[string]any, 0, len(v))
		for _, item := range v {
			out = append(out, compactMap(item))
		}
		return out, true
	case []any:
		out := make([]any, 0, len(v))
		for _, item := range v {
			if compacted, ok := compactValue(item); ok {
				out = append(out, compacted)
			}
		}
		return out, true
	default:
		return v, true
	}
}

func sortedKeys[V any](values map[string]V) []string {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	return keys
}

func parseTime(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}

	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}
	}

	return parsed
}

func formatTime(value time.Time) string {
	if value.IsZero() {
		return ""
	}

	return value.Format(time.RFC3339)
}
