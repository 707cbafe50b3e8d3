package repository

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"regexp"
	"sync"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
)

var validKey = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// FileStateRepo implements StateRepo with one JSON file per key on a billy
// filesystem. Writes go to a temp file and are renamed into place.
type FileStateRepo struct {
	fs billy.Filesystem
	mu sync.Mutex
}

// NewFileStateRepo creates a FileStateRepo rooted at fs.
func NewFileStateRepo(fs billy.Filesystem) *FileStateRepo {
	return &FileStateRepo{fs: fs}
}

func (r *FileStateRepo) Get(ctx context.Context, key string) ([]byte, error) {
	name, err := fileName(key)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.read(name, key)
}

func (r *FileStateRepo) Update(ctx context.Context, key string, fn UpdateFunc) error {
	name, err := fileName(key)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	current, err := r.read(name, key)
	found := err == nil
	if err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}

	next, err := fn(current, found)
	if err != nil {
		return err
	}

	tmp, err := util.TempFile(r.fs, "", "."+key+"-")
	if err != nil {
		return fmt.Errorf("creating temp file for %q: %w", key, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(next); err != nil {
		tmp.Close()
		_ = r.fs.Remove(tmpName)
		return fmt.Errorf("writing state %q: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		_ = r.fs.Remove(tmpName)
		return fmt.Errorf("closing state %q: %w", key, err)
	}
	if err := r.fs.Rename(tmpName, name); err != nil {
		_ = r.fs.Remove(tmpName)
		return fmt.Errorf("replacing state %q: %w", key, err)
	}
	return nil
}

func (r *FileStateRepo) Delete(ctx context.Context, key string) error {
	name, err := fileName(key)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.fs.Remove(name); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("deleting state %q: %w", key, err)
	}
	return nil
}

func (r *FileStateRepo) read(name, key string) ([]byte, error) {
	data, err := util.ReadFile(r.fs, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("state %q: %w", key, ErrNotFound)
		}
		return nil, fmt.Errorf("reading state %q: %w", key, err)
	}
	return data, nil
}

func fileName(key string) (string, error) {
	if !validKey.MatchString(key) {
		return "", fmt.Errorf("invalid state key %q", key)
	}
	return key + ".json", nil
}
