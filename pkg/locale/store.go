package locale

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

const preferenceKey = "locale"

// FileStore keeps the preferred locale in a small JSON file. Other keys in
// the file are preserved on save.
type FileStore struct {
	path string
}

// NewFileStore returns a store backed by path.
func NewFileStore(path string) (store *FileStore) {
	store = &FileStore{path: path}
	return store
}

// Path returns the backing file.
func (f *FileStore) Path() (path string) {
	path = f.path
	return path
}

// Load returns the stored locale, or "" when nothing was saved yet.
func (f *FileStore) Load() (raw string, err error) {
	var data []byte
	data, err = os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			err = nil
			return raw, err
		}
		err = errors.Wrapf(err, "failed to read preferences: %s", f.path)
		return raw, err
	}

	if !gjson.ValidBytes(data) {
		err = errors.Errorf("malformed preferences file: %s", f.path)
		return raw, err
	}

	raw = gjson.GetBytes(data, preferenceKey).String()
	return raw, err
}

// Save writes raw as the stored locale.
func (f *FileStore) Save(raw string) (err error) {
	var data []byte
	data, err = os.ReadFile(f.path)
	if err != nil && !os.IsNotExist(err) {
		err = errors.Wrapf(err, "failed to read preferences: %s", f.path)
		return err
	}
	if len(data) == 0 || !gjson.ValidBytes(data) {
		data = []byte("{}")
	}

	data, err = sjson.SetBytes(data, preferenceKey, raw)
	if err != nil {
		err = errors.Wrap(err, "failed to update preferences")
		return err
	}

	dir := filepath.Dir(f.path)
	err = os.MkdirAll(dir, 0750)
	if err != nil {
		err = errors.Wrapf(err, "failed to create preferences directory: %s", dir)
		return err
	}

	err = os.WriteFile(f.path, data, 0600)
	if err != nil {
		err = errors.Wrapf(err, "failed to write preferences: %s", f.path)
		return err
	}

	return err
}
