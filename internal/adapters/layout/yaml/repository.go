package yaml

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/bnema/editable-entry/internal/domain"
	"github.com/bnema/editable-entry/internal/layout"
	"github.com/bnema/editable-entry/internal/ports"
)

const (
	layoutsDirKey = "layouts.dir"
	configDir     = ".editable-entry"
	layoutsDir    = "layouts"
	fileExt       = ".yaml"
)

// Repository reads page layouts from one YAML file per page,
// "<dir>/<name>.yaml".
type Repository struct {
	dir string
}

var _ ports.LayoutRepository = (*Repository)(nil)

func NewRepository(cfg *viper.Viper) (*Repository, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	dir := cfg.GetString(layoutsDirKey)
	if dir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home directory: %w", err)
		}
		dir = filepath.Join(homeDir, configDir, layoutsDir)
	}

	dir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve layouts dir: %w", err)
	}

	return &Repository{dir: filepath.Clean(dir)}, nil
}

func (r *Repository) GetByName(ctx context.Context, name string) (layout.Page, error) {
	if err := ctx.Err(); err != nil {
		return layout.Page{}, err
	}

	name = strings.TrimSpace(name)
	if name == "" || strings.ContainsAny(name, `/\`) {
		return layout.Page{}, fmt.Errorf("layout %q: %w", name, domain.ErrLayoutNotFound)
	}

	data, err := os.ReadFile(filepath.Join(r.dir, name+fileExt))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return layout.Page{}, fmt.Errorf("layout %q: %w", name, domain.ErrLayoutNotFound)
		}
		return layout.Page{}, fmt.Errorf("read layout file: %w", err)
	}

	page, err := decode(data)
	if err != nil {
		return layout.Page{}, fmt.Errorf("decode layout %s: %w", name, err)
	}
	if page.Name == "" {
		page.Name = name
	}

	return page, nil
}

func (r *Repository) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(r.dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("read layouts dir: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != fileExt {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), fileExt))
	}
	sort.Strings(names)

	return names, nil
}

func decode(data []byte) (layout.Page, error) {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	var file pageFile
	if err := decoder.Decode(&file); err != nil {
		return layout.Page{}, err
	}

	return file.toPage(), nil
}
