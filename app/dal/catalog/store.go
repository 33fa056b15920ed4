// Package catalog is the read side of the index rebuild: the primary store that holds
// the canonical product records and their changelogs, keyed by product id.
package catalog

import (
	"context"
	"fmt"
	"strings"
)

const (
	DriverFile   = "file"
	DriverPebble = "pebble"
)

// Store is what the indexer needs from the primary store. LoadProduct and
// LoadChangelog return ErrNotFound when the id has no such record.
type Store interface {
	ListIds(ctx context.Context) ([]int64, error)
	LoadProduct(ctx context.Context, id int64) (*Product, error)
	LoadChangelog(ctx context.Context, id int64) ([]ChangeRecord, error)
	Close() error
}

type Conf struct {
	Driver string `json:",default=file,options=file|pebble"`
	Path   string
}

// Open opens the store described by c.
func Open(c Conf) (Store, error) {
	if strings.TrimSpace(c.Path) == "" {
		return nil, fmt.Errorf("%w: empty catalog path", ErrInvalidParam)
	}

	switch c.Driver {
	case DriverFile, "":
		return NewFileStore(c.Path)
	case DriverPebble:
		return OpenPebbleStore(c.Path)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, c.Driver)
	}
}

func MustOpen(c Conf) Store {
	s, err := Open(c)
	if err != nil {
		panic(err)
	}
	return s
}
