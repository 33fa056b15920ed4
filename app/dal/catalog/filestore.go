package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
)

const (
	idsFileName       = "ids.json"
	productsDirName   = "products"
	productFileName   = "product.json"
	changelogFileName = "changelog.json"
)

var _ Store = (*FileStore)(nil)

// FileStore reads the crawler's on-disk layout:
//
//	<root>/ids.json
//	<root>/products/<id>/product.json
//	<root>/products/<id>/changelog.json
type FileStore struct {
	root string
}

func NewFileStore(root string) (*FileStore, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("open catalog dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrInvalidParam, root)
	}
	return &FileStore{root: root}, nil
}

func (s *FileStore) productDir(id int64) string {
	return filepath.Join(s.root, productsDirName, strconv.FormatInt(id, 10))
}

// ListIds returns the ids in the order of ids.json. Without an ids file the product
// directories are listed in ascending id order.
func (s *FileStore) ListIds(ctx context.Context) ([]int64, error) {
	var ids []int64
	err := readJSON(filepath.Join(s.root, idsFileName), &ids)
	if err == nil {
		return ids, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	entries, err := os.ReadDir(filepath.Join(s.root, productsDirName))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []int64{}, nil
		}
		return nil, fmt.Errorf("list product dirs: %w", err)
	}

	ids = make([]int64, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		id, err := strconv.ParseInt(entry.Name(), 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (s *FileStore) LoadProduct(ctx context.Context, id int64) (*Product, error) {
	var prod Product
	if err := readJSON(filepath.Join(s.productDir(id), productFileName), &prod); err != nil {
		return nil, err
	}
	return &prod, nil
}

func (s *FileStore) LoadChangelog(ctx context.Context, id int64) ([]ChangeRecord, error) {
	var changelog []ChangeRecord
	if err := readJSON(filepath.Join(s.productDir(id), changelogFileName), &changelog); err != nil {
		return nil, err
	}
	if changelog == nil {
		changelog = []ChangeRecord{}
	}
	return changelog, nil
}

func (s *FileStore) Close() error {
	return nil
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ErrNotFound
		}
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
