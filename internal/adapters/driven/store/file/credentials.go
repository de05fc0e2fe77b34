// Package file provides file-backed persistence for the OAuth
// credential record.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/custodia-labs/deskhub/internal/core/domain"
	"github.com/custodia-labs/deskhub/internal/core/ports/driven"
)

// Ensure CredentialsStore implements the interface.
var _ driven.CredentialsStore = (*CredentialsStore)(nil)

// credentialsFile is the well-known file name inside the data directory.
const credentialsFile = "token.json"

// CredentialsStore persists the credential record as a JSON file with
// owner-only permissions. Writes go through a temp file and rename so a
// crash mid-write never leaves a torn record.
type CredentialsStore struct {
	mu   sync.Mutex
	path string
	log  zerolog.Logger
}

// NewCredentialsStore creates a store rooted at dataDir.
// If dataDir is empty, defaults to ~/.deskhub.
func NewCredentialsStore(dataDir string, log zerolog.Logger) (*CredentialsStore, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		dataDir = filepath.Join(home, ".deskhub")
	}
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, err
	}

	return &CredentialsStore{
		path: filepath.Join(dataDir, credentialsFile),
		log:  log.With().Str("component", "credstore").Logger(),
	}, nil
}

// Load reads the persisted record.
func (s *CredentialsStore) Load(_ context.Context) (*domain.Credentials, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read()
}

// Save replaces the persisted record wholesale.
func (s *CredentialsStore) Save(_ context.Context, creds *domain.Credentials) error {
	if creds == nil {
		return domain.ErrInvalidInput
	}

	data, err := json.Marshal(creds)
	if err != nil {
		return fmt.Errorf("encode credentials: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("write credentials: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace credentials file: %w", err)
	}
	return nil
}

// Path returns the credential file path.
func (s *CredentialsStore) Path() string {
	return s.path
}

func (s *CredentialsStore) read() (*domain.Credentials, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("read credentials: %w", err)
	}

	var creds domain.Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return nil, fmt.Errorf("decode credentials: %w", err)
	}
	return &creds, nil
}

// Watch reloads the record whenever the file changes on disk and hands
// it to onChange. This picks up tokens rewritten by another process
// (e.g. a manual re-auth) without a restart. Blocks until ctx is done.
func (s *CredentialsStore) Watch(ctx context.Context, onChange func(*domain.Credentials)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory: editors and atomic renames replace the file
	// node, which would silently detach a file-level watch.
	if err := watcher.Add(filepath.Dir(s.path)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(s.path), err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Name != s.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			s.mu.Lock()
			creds, err := s.read()
			s.mu.Unlock()
			if err != nil {
				s.log.Warn().Err(err).Msg("reloading changed credential file failed")
				continue
			}
			s.log.Debug().Msg("credential file changed on disk, reloaded")
			onChange(creds)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.log.Warn().Err(err).Msg("credential watcher error")
		}
	}
}
