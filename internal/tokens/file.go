package tokens

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
)

type fileContents struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// FileStore persists the token pair as a JSON file under the user config
// dir, mode 0600. It is the default for the CLI, which has no process
// lifetime to hold tokens in.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// DefaultTokenPath resolves the token file location under the user config
// directory, creating intermediate directories as needed.
func DefaultTokenPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	appDir := filepath.Join(configDir, "nexus")
	if err := os.MkdirAll(appDir, 0o755); err != nil {
		return "", err
	}
	return filepath.Join(appDir, "tokens.json"), nil
}

func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		var err error
		path, err = DefaultTokenPath()
		if err != nil {
			return nil, err
		}
	}
	return &FileStore{path: path}, nil
}

func (s *FileStore) load() fileContents {
	var c fileContents
	data, err := os.ReadFile(s.path)
	if err != nil {
		return c
	}
	_ = json.Unmarshal(data, &c)
	return c
}

func (s *FileStore) save(c fileContents) error {
	data, err := json.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o600)
}

func (s *FileStore) Access() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.load()
	return c.AccessToken, c.AccessToken != ""
}

func (s *FileStore) Refresh() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.load()
	return c.RefreshToken, c.RefreshToken != ""
}

func (s *FileStore) SetAccess(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.load()
	c.AccessToken = token
	return s.save(c)
}

func (s *FileStore) SetPair(access, refresh string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(fileContents{AccessToken: access, RefreshToken: refresh})
}

func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
