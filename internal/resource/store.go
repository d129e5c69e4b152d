package resource

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/scenecore/internal/engine/scene"
	"github.com/Faultbox/scenecore/internal/logger"
)

var (
	ErrSceneNotFound = errors.New("scene not found")
	ErrInvalidName   = errors.New("invalid resource name")
)

const (
	sceneExt     = ".scene.yaml"
	newSceneName = "new_scene"
)

// SceneStore keeps scene snapshots as YAML files in one directory.
type SceneStore struct {
	dir string
}

func NewSceneStore(dir string) *SceneStore {
	return &SceneStore{dir: dir}
}

// Dir is the directory snapshots are stored in.
func (s *SceneStore) Dir() string { return s.dir }

// Path returns the file a scene is stored in.
func (s *SceneStore) Path(name string) (string, error) {
	if err := validateName(name); err != nil {
		return "", err
	}
	return filepath.Join(s.dir, name+sceneExt), nil
}

// CreateResourceAndSave writes snap under name, replacing any existing
// snapshot.
func (s *SceneStore) CreateResourceAndSave(name string, snap scene.Snapshot) error {
	path, err := s.Path(name)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("creating scene dir: %w", err)
	}

	data, err := yaml.Marshal(&snap)
	if err != nil {
		return fmt.Errorf("encoding scene %s: %w", name, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing scene %s: %w", name, err)
	}

	logger.Debug("snapshot written", zap.String("name", name), zap.String("path", path))
	return nil
}

// LoadSnapshot reads the snapshot stored under name.
func (s *SceneStore) LoadSnapshot(name string) (scene.Snapshot, error) {
	var snap scene.Snapshot

	path, err := s.Path(name)
	if err != nil {
		return snap, err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return snap, fmt.Errorf("%s: %w", name, ErrSceneNotFound)
	}
	if err != nil {
		return snap, fmt.Errorf("reading scene %s: %w", name, err)
	}
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return snap, fmt.Errorf("decoding scene %s: %w", name, err)
	}
	return snap, nil
}

// NewResourceName returns the first of new_scene, new_scene_0, new_scene_1
// and so on that has no stored snapshot.
func (s *SceneStore) NewResourceName() string {
	if !s.exists(newSceneName) {
		return newSceneName
	}
	for i := 0; ; i++ {
		name := fmt.Sprintf("%s_%d", newSceneName, i)
		if !s.exists(name) {
			return name
		}
	}
}

// List returns the stored scene names in order. A missing directory is an
// empty list.
func (s *SceneStore) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("listing scenes: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), sceneExt) {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), sceneExt))
	}
	sort.Strings(names)
	return names, nil
}

func (s *SceneStore) exists(name string) bool {
	_, err := os.Stat(filepath.Join(s.dir, name+sceneExt))
	return err == nil
}

func validateName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%q: %w", name, ErrInvalidName)
	}
	return nil
}
