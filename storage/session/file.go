package sessionstore

import (
	"context"
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/Sky-walkerX/Examcell/core/auth"
)

type fileStore struct {
	path string
}

// NewFileStore returns a Store that keeps the Session in a JSON file readable by the current user only.
func NewFileStore(path string) auth.Store {
	return &fileStore{path: path}
}

func (s *fileStore) Load(_ context.Context) (auth.Session, error) {
	data, err := ioutil.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return auth.Session{}, auth.ErrNoSession
		}
		return auth.Session{}, errors.Wrapf(err, "reading session file %s", s.path)
	}

	var sess auth.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return auth.Session{}, errors.Wrapf(err, "parsing session file %s", s.path)
	}
	if sess.Token == "" {
		return auth.Session{}, auth.ErrNoSession
	}
	return sess, nil
}

func (s *fileStore) Save(_ context.Context, sess auth.Session) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return errors.Wrap(err, "creating session directory")
	}
	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encoding session")
	}

	// replace atomically
	tmp := s.path + ".tmp"
	if err := ioutil.WriteFile(tmp, data, 0600); err != nil {
		return errors.Wrap(err, "writing session file")
	}
	return errors.Wrap(os.Rename(tmp, s.path), "replacing session file")
}

func (s *fileStore) Clear(_ context.Context) error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "removing session file")
	}
	return nil
}
