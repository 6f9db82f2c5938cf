// Package store persists named dictionary snapshots in a single-file Bolt
// database. Each snapshot is the packed MessagePack message of a tree,
// stored under its name in one bucket.
//
// Loading follows the dictionary's merge semantics: Load refreshes an
// existing tree (update), LoadExtend grows it with inferred types (extend).
package store

import (
	"errors"
	"time"

	"go.etcd.io/bbolt"

	"github.com/mpdict/mpdict"
)

var ErrNotFound = errors.New("store: dictionary not found")

var dictsBucket = []byte("dicts")

type Store struct {
	bdb *bbolt.DB
}

// Open opens or creates the database at path.
func Open(path string) (*Store, error) {
	bdb, err := bbolt.Open(path, 0o644, &bbolt.Options{Timeout: 10 * time.Second})
	if err != nil {
		return nil, err
	}
	err = bdb.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(dictsBucket)
		return err
	})
	if err != nil {
		bdb.Close()
		return nil, err
	}
	return &Store{bdb: bdb}, nil
}

func (s *Store) Close() error {
	return s.bdb.Close()
}

// Save packs d and stores it under name, replacing any previous snapshot.
func (s *Store) Save(name string, d *mpdict.Dictionary) error {
	data, err := d.Pack()
	if err != nil {
		return err
	}
	return s.bdb.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(dictsBucket).Put([]byte(name), data)
	})
}

// Load refreshes d from the snapshot stored under name, with update
// semantics: only keys already present in d are populated. It fails with
// ErrNotFound when no snapshot has that name.
func (s *Store) Load(name string, d *mpdict.Dictionary) error {
	data, err := s.get(name)
	if err != nil {
		return err
	}
	return d.Update(data)
}

// LoadExtend grows d from the snapshot stored under name, with extend
// semantics: keys not yet in d are inserted with inferred native types.
func (s *Store) LoadExtend(name string, d *mpdict.Dictionary) error {
	data, err := s.get(name)
	if err != nil {
		return err
	}
	return d.Extend(data)
}

func (s *Store) get(name string) ([]byte, error) {
	var data []byte
	err := s.bdb.View(func(tx *bbolt.Tx) error {
		raw := tx.Bucket(dictsBucket).Get([]byte(name))
		if raw == nil {
			return ErrNotFound
		}
		// Bolt memory is only valid inside the transaction.
		data = make([]byte, len(raw))
		copy(data, raw)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Names returns the names of all stored snapshots in lexical order.
func (s *Store) Names() ([]string, error) {
	var names []string
	err := s.bdb.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(dictsBucket).ForEach(func(k, v []byte) error {
			names = append(names, string(k))
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return names, nil
}

// Delete removes the snapshot stored under name. Deleting a missing name is
// a no-op.
func (s *Store) Delete(name string) error {
	return s.bdb.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(dictsBucket).Delete([]byte(name))
	})
}
