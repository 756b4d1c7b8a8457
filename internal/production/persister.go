// Package production provides production integrations: persistence, step
// publishing, visualization.

package production

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/comalice/automatonx/internal/primitives"
)

// Persister stores automaton documents by ID.
type Persister interface {
	Save(ctx context.Context, config primitives.AutomatonConfig) error
	Load(ctx context.Context, id string) (primitives.AutomatonConfig, error)
	List(ctx context.Context) ([]string, error)
}

// fileStore holds the directory handling shared by the file persisters.
type fileStore struct {
	dir string
	ext string
}

func newFileStore(dir, ext string) (fileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fileStore{}, fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return fileStore{dir: dir, ext: ext}, nil
}

func (s fileStore) path(id string) (string, error) {
	if id == "" || strings.ContainsAny(id, `/\`) || id == "." || id == ".." {
		return "", fmt.Errorf("invalid automaton id %q", id)
	}
	return filepath.Join(s.dir, id+s.ext), nil
}

func (s fileStore) write(ctx context.Context, id string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	fn, err := s.path(id)
	if err != nil {
		return err
	}
	if err := os.WriteFile(fn, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", fn, err)
	}
	return nil
}

func (s fileStore) read(ctx context.Context, id string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	fn, err := s.path(id)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(fn)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("automaton %q: %w", id, os.ErrNotExist)
		}
		return nil, fmt.Errorf("read %s: %w", fn, err)
	}
	return data, nil
}

func (s fileStore) list(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read dir %s: %w", s.dir, err)
	}
	var ids []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), s.ext) {
			continue
		}
		ids = append(ids, strings.TrimSuffix(e.Name(), s.ext))
	}
	sort.Strings(ids)
	return ids, nil
}

// JSONPersister is a stdlib-only file-based persister using JSON serialization.
type JSONPersister struct {
	store fileStore
}

// NewJSONPersister creates a JSONPersister, ensuring the directory exists.
func NewJSONPersister(dir string) (*JSONPersister, error) {
	s, err := newFileStore(dir, ".json")
	if err != nil {
		return nil, err
	}
	return &JSONPersister{store: s}, nil
}

func (p *JSONPersister) Save(ctx context.Context, config primitives.AutomatonConfig) error {
	if err := config.Validate(); err != nil {
		return fmt.Errorf("save: %w", err)
	}
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	return p.store.write(ctx, config.ID, data)
}

func (p *JSONPersister) Load(ctx context.Context, id string) (primitives.AutomatonConfig, error) {
	data, err := p.store.read(ctx, id)
	if err != nil {
		return primitives.AutomatonConfig{}, err
	}

	var config primitives.AutomatonConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return primitives.AutomatonConfig{}, fmt.Errorf("json unmarshal: %w", err)
	}
	config.ID = id // Ensure ID
	if err := config.Validate(); err != nil {
		return primitives.AutomatonConfig{}, fmt.Errorf("config validation after load: %w", err)
	}
	return config, nil
}

func (p *JSONPersister) List(ctx context.Context) ([]string, error) {
	return p.store.list(ctx)
}

// YAMLPersister is a file-based persister using YAML serialization.
type YAMLPersister struct {
	store fileStore
}

// NewYAMLPersister creates a YAMLPersister, ensuring the directory exists.
func NewYAMLPersister(dir string) (*YAMLPersister, error) {
	s, err := newFileStore(dir, ".yaml")
	if err != nil {
		return nil, err
	}
	return &YAMLPersister{store: s}, nil
}

func (p *YAMLPersister) Save(ctx context.Context, config primitives.AutomatonConfig) error {
	if err := config.Validate(); err != nil {
		return fmt.Errorf("save: %w", err)
	}
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("yaml marshal: %w", err)
	}
	return p.store.write(ctx, config.ID, data)
}

func (p *YAMLPersister) Load(ctx context.Context, id string) (primitives.AutomatonConfig, error) {
	data, err := p.store.read(ctx, id)
	if err != nil {
		return primitives.AutomatonConfig{}, err
	}

	var config primitives.AutomatonConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return primitives.AutomatonConfig{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	config.ID = id // Ensure ID
	if err := config.Validate(); err != nil {
		return primitives.AutomatonConfig{}, fmt.Errorf("config validation after load: %w", err)
	}
	return config, nil
}

func (p *YAMLPersister) List(ctx context.Context) ([]string, error) {
	return p.store.list(ctx)
}

// DecodeFile reads a single automaton document from path, choosing YAML or
// JSON by extension. Files without an ID take the base name.
func DecodeFile(path string) (primitives.AutomatonConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return primitives.AutomatonConfig{}, fmt.Errorf("read %s: %w", path, err)
	}

	var config primitives.AutomatonConfig
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		err = json.Unmarshal(data, &config)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &config)
	default:
		return primitives.AutomatonConfig{}, fmt.Errorf("unsupported automaton file extension %q", ext)
	}
	if err != nil {
		return primitives.AutomatonConfig{}, fmt.Errorf("decode %s: %w", path, err)
	}
	if config.ID == "" {
		config.ID = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return config, nil
}
