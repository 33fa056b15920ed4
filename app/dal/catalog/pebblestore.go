package catalog

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/cockroachdb/pebble"
)

const (
	idKeyPrefix        = 'i'
	productKeyPrefix   = 'p'
	changelogKeyPrefix = 'c'
)

var _ Store = (*PebbleStore)(nil)

// PebbleStore keeps the catalog in a pebble key-value store. Keys are a one byte
// prefix followed by the big-endian id, so ids iterate in ascending order:
//
//	i<id> -> empty          (id registry)
//	p<id> -> product JSON
//	c<id> -> changelog JSON
type PebbleStore struct {
	db *pebble.DB
}

func OpenPebbleStore(dir string) (*PebbleStore, error) {
	db, err := pebble.Open(dir, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("open pebble catalog: %w", err)
	}
	return &PebbleStore{db: db}, nil
}

func pebbleKey(prefix byte, id int64) []byte {
	key := make([]byte, 9)
	key[0] = prefix
	binary.BigEndian.PutUint64(key[1:], uint64(id))
	return key
}

func (s *PebbleStore) ListIds(ctx context.Context) ([]int64, error) {
	iter, err := s.db.NewIter(&pebble.IterOptions{
		LowerBound: []byte{idKeyPrefix},
		UpperBound: []byte{idKeyPrefix + 1},
	})
	if err != nil {
		return nil, fmt.Errorf("iterate ids: %w", err)
	}
	defer iter.Close()

	ids := []int64{}
	for valid := iter.First(); valid; valid = iter.Next() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		key := iter.Key()
		if len(key) != 9 {
			continue
		}
		ids = append(ids, int64(binary.BigEndian.Uint64(key[1:])))
	}
	if err := iter.Error(); err != nil {
		return nil, fmt.Errorf("iterate ids: %w", err)
	}
	return ids, nil
}

func (s *PebbleStore) LoadProduct(ctx context.Context, id int64) (*Product, error) {
	var prod Product
	if err := s.get(pebbleKey(productKeyPrefix, id), &prod); err != nil {
		return nil, err
	}
	return &prod, nil
}

func (s *PebbleStore) LoadChangelog(ctx context.Context, id int64) ([]ChangeRecord, error) {
	var changelog []ChangeRecord
	if err := s.get(pebbleKey(changelogKeyPrefix, id), &changelog); err != nil {
		return nil, err
	}
	if changelog == nil {
		changelog = []ChangeRecord{}
	}
	return changelog, nil
}

func (s *PebbleStore) get(key []byte, v any) error {
	value, closer, err := s.db.Get(key)
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("pebble get %q: %w", key[:1], err)
	}
	defer closer.Close()

	if err := json.Unmarshal(value, v); err != nil {
		return fmt.Errorf("decode %c%d: %w", key[0], int64(binary.BigEndian.Uint64(key[1:])), err)
	}
	return nil
}

// AddIds registers ids without touching their records.
func (s *PebbleStore) AddIds(ids ...int64) error {
	batch := s.db.NewBatch()
	defer batch.Close()
	for _, id := range ids {
		if id < 0 {
			return fmt.Errorf("%w: negative id %d", ErrInvalidParam, id)
		}
		if err := batch.Set(pebbleKey(idKeyPrefix, id), nil, nil); err != nil {
			return err
		}
	}
	return batch.Commit(pebble.Sync)
}

// PutProduct stores prod and registers its id.
func (s *PebbleStore) PutProduct(prod *Product) error {
	if prod == nil || prod.Id < 0 {
		return ErrInvalidParam
	}
	data, err := json.Marshal(prod)
	if err != nil {
		return fmt.Errorf("encode product %d: %w", prod.Id, err)
	}

	batch := s.db.NewBatch()
	defer batch.Close()
	if err := batch.Set(pebbleKey(idKeyPrefix, prod.Id), nil, nil); err != nil {
		return err
	}
	if err := batch.Set(pebbleKey(productKeyPrefix, prod.Id), data, nil); err != nil {
		return err
	}
	return batch.Commit(pebble.Sync)
}

func (s *PebbleStore) PutChangelog(id int64, changelog []ChangeRecord) error {
	if id < 0 {
		return ErrInvalidParam
	}
	data, err := json.Marshal(changelog)
	if err != nil {
		return fmt.Errorf("encode changelog %d: %w", id, err)
	}
	return s.db.Set(pebbleKey(changelogKeyPrefix, id), data, pebble.Sync)
}

func (s *PebbleStore) Close() error {
	return s.db.Close()
}
