// Marquee - Movie Catalog Query API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package source

import (
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
)

const stateKeyPrefix = "source:"

// ErrStateNotFound is returned when a URI has never been fetched.
var ErrStateNotFound = errors.New("fetch state not found")

// State records the last successful fetch of a source URI.
type State struct {
	URI          string    `json:"uri"`
	LocalPath    string    `json:"local_path"`
	ETag         string    `json:"etag,omitempty"`
	LastModified string    `json:"last_modified,omitempty"`
	SHA256       string    `json:"sha256,omitempty"`
	Size         int64     `json:"size"`
	ModTime      time.Time `json:"mod_time,omitempty"`
	FetchedAt    time.Time `json:"fetched_at"`
}

// StateStore persists fetch state in BadgerDB.
type StateStore struct {
	db *badger.DB
}

// OpenStateStore opens BadgerDB at path, or an in-memory instance when path is empty.
func OpenStateStore(path string) (*StateStore, error) {
	var opts badger.Options
	if path == "" {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		opts = badger.DefaultOptions(path)
	}
	opts.Logger = nil // Suppress BadgerDB logs

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger db for fetch state: %w", err)
	}
	return &StateStore{db: db}, nil
}

// Get returns the state for uri or ErrStateNotFound.
func (s *StateStore) Get(uri string) (*State, error) {
	var st State
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(stateKeyPrefix + uri))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrStateNotFound
		}
		if err != nil {
			return fmt.Errorf("get fetch state: %w", err)
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &st)
		})
	})
	if err != nil {
		return nil, err
	}
	return &st, nil
}

// Put stores st under st.URI.
func (s *StateStore) Put(st *State) error {
	data, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("marshal fetch state: %w", err)
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(stateKeyPrefix+st.URI), data)
	})
}

// List returns every stored state.
func (s *StateStore) List() ([]State, error) {
	var out []State
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(stateKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var st State
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &st)
			}); err != nil {
				return err
			}
			out = append(out, st)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list fetch state: %w", err)
	}
	return out, nil
}

// Close closes the underlying BadgerDB.
func (s *StateStore) Close() error {
	return s.db.Close()
}
