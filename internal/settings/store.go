package settings

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"sigs.k8s.io/yaml"
)

const defaultConfigType = "yaml"

// Store is a Provider backed by a settings file. Each write is persisted immediately.
type Store struct {
	lock sync.Mutex
	v    *viper.Viper
	path string
}

// NewStore reads the settings file at path. A missing file is not an error: it will be created
// on the first write. The file format is given by the file extension (yaml, json, toml), yaml
// when the path has no extension.
func NewStore(path string, appName string) (*Store, error) {
	v := viper.New()
	for k, val := range Defaults(appName) {
		v.SetDefault(k, val)
	}

	v.SetConfigFile(path)
	if filepath.Ext(path) == "" {
		v.SetConfigType(defaultConfigType)
	}

	err := v.ReadInConfig()
	if err != nil && !isNotExist(err) {
		return nil, fmt.Errorf("cannot read settings file '%s': '%w'", path, err)
	}

	return &Store{v: v, path: path}, nil
}

func (s *Store) Bool(key string) bool {
	s.lock.Lock()
	defer s.lock.Unlock()

	return s.v.GetBool(key)
}

func (s *Store) SetBool(key string, value bool) {
	s.set(key, value)
}

func (s *Store) String(key string) string {
	s.lock.Lock()
	defer s.lock.Unlock()

	return s.v.GetString(key)
}

func (s *Store) SetString(key string, value string) {
	s.set(key, value)
}

func (s *Store) set(key string, value interface{}) {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.v.Set(key, value)

	if err := s.persist(); err != nil {
		zap.S().Errorw("cannot persist settings", "error", err, "key", key, "file", s.path)
	}
}

func (s *Store) persist() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return err
	}

	if filepath.Ext(s.path) == "" {
		// viper takes the output format from the extension only
		data, err := yaml.Marshal(s.v.AllSettings())
		if err != nil {
			return err
		}

		return os.WriteFile(s.path, data, 0644)
	}

	return s.v.WriteConfigAs(s.path)
}

func isNotExist(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.Is(err, fs.ErrNotExist) || errors.As(err, &notFound)
}
