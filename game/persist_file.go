package game

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

const saveFileExt = ".json"

// FileGameStore writes one JSON file per game into a directory.
type FileGameStore struct {
	dir string
}

func NewFileGameStore(dir string) (*FileGameStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrapf(err, "Error creating save directory [%s]", dir)
	}
	return &FileGameStore{dir: dir}, nil
}

func (f *FileGameStore) path(gameID string) string {
	return filepath.Join(f.dir, gameID+saveFileExt)
}

func (f *FileGameStore) Load(gameID string) ([]byte, error) {
	data, err := ioutil.ReadFile(f.path(gameID))
	if os.IsNotExist(err) {
		return nil, GameNotFoundError{GameID: gameID}
	} else if err != nil {
		return nil, errors.Wrapf(err, "Error reading save file [%s]", f.path(gameID))
	}
	return data, nil
}

func (f *FileGameStore) Save(gameID string, state []byte) error {
	err := ioutil.WriteFile(f.path(gameID), state, 0644)
	if err != nil {
		return errors.Wrapf(err, "Error writing save file [%s]", f.path(gameID))
	}
	return nil
}

func (f *FileGameStore) Remove(gameID string) error {
	err := os.Remove(f.path(gameID))
	if err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "Error removing save file [%s]", f.path(gameID))
	}
	return nil
}

func (f *FileGameStore) List() ([]string, error) {
	files, err := ioutil.ReadDir(f.dir)
	if err != nil {
		return nil, errors.Wrapf(err, "Error reading save directory [%s]", f.dir)
	}
	var ids []string
	for _, file := range files {
		if !file.IsDir() && strings.HasSuffix(file.Name(), saveFileExt) {
			ids = append(ids, strings.TrimSuffix(file.Name(), saveFileExt))
		}
	}
	sort.Strings(ids)
	return ids, nil
}
