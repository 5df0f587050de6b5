package testutil

import (
	"bytes"
	"context"
	"sort"

	corestore "cosmossdk.io/core/store"
)

// memKVStoreService is the in-memory cosmossdk.io/core/store.KVStoreService
// backing testutil.Host. A real host backs its ValidationContext/
// ExecutionContext with an IAVL-or-similar tree-backed multistore; this
// fixture only needs something collections.Map/collections.Item can
// address, so a single in-process map stands in.
type memKVStoreService struct {
	store *memKVStore
}

// newMemKVStoreService returns a ready-to-use in-memory store service.
func newMemKVStoreService() *memKVStoreService {
	return &memKVStoreService{store: &memKVStore{data: make(map[string][]byte)}}
}

// OpenKVStore satisfies corestore.KVStoreService. This fixture never
// scopes state by ctx (there is only ever one store), unlike a real
// multistore that resolves a per-block branch from ctx.
func (s *memKVStoreService) OpenKVStore(context.Context) corestore.KVStore {
	return s.store
}

// memKVStore is the corestore.KVStore a single testutil.Host's state
// lives in, keyed by the collections-prefixed byte keys the schema
// builder assigns per Item/Map.
type memKVStore struct {
	data map[string][]byte
}

func (s *memKVStore) Get(key []byte) ([]byte, error) {
	v, ok := s.data[string(key)]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), v...), nil
}

func (s *memKVStore) Has(key []byte) (bool, error) {
	_, ok := s.data[string(key)]
	return ok, nil
}

func (s *memKVStore) Set(key, value []byte) error {
	s.data[string(key)] = append([]byte(nil), value...)
	return nil
}

func (s *memKVStore) Delete(key []byte) error {
	delete(s.data, string(key))
	return nil
}

func (s *memKVStore) Iterator(start, end []byte) (corestore.Iterator, error) {
	return s.newIterator(start, end, false), nil
}

func (s *memKVStore) ReverseIterator(start, end []byte) (corestore.Iterator, error) {
	return s.newIterator(start, end, true), nil
}

// newIterator snapshots every matching key in sorted order: an in-memory
// Go map has no stable iteration order of its own, and collections.Map's
// Iterate/Keys helpers depend on the underlying store returning keys in
// lexicographic order the same way a real IAVL tree would.
func (s *memKVStore) newIterator(start, end []byte, reverse bool) *memIterator {
	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		kb := []byte(k)
		if start != nil && bytes.Compare(kb, start) < 0 {
			continue
		}
		if end != nil && bytes.Compare(kb, end) >= 0 {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	if reverse {
		for i, j := 0, len(keys)-1; i < j; i, j = i+1, j-1 {
			keys[i], keys[j] = keys[j], keys[i]
		}
	}
	return &memIterator{store: s, keys: keys, start: start, end: end, pos: 0}
}

type memIterator struct {
	store *memKVStore
	keys  []string
	start []byte
	end   []byte
	pos   int
}

var _ corestore.Iterator = (*memIterator)(nil)

func (it *memIterator) Domain() ([]byte, []byte) { return it.start, it.end }

func (it *memIterator) Valid() bool { return it.pos >= 0 && it.pos < len(it.keys) }

func (it *memIterator) Next() {
	if it.pos < len(it.keys) {
		it.pos++
	}
}

func (it *memIterator) Key() []byte { return []byte(it.keys[it.pos]) }

func (it *memIterator) Value() []byte { return it.store.data[it.keys[it.pos]] }

func (it *memIterator) Error() error { return nil }

func (it *memIterator) Close() error { return nil }
