/*
 * SPDX-FileCopyrightText: © Searchmesh, Inc. <hello@searchmesh.io>
 * SPDX-License-Identifier: Apache-2.0
 */

// Package snapshot persists the metadata registry across process restarts.
// It is the durable side of the engine's aux hooks: the registry blob is
// written to a single auxiliary slot after the main data section, and loads
// merge back through the engine rather than replacing its state.
package snapshot

import (
	"github.com/dgraph-io/badger/v4"
	"github.com/golang/glog"
	"github.com/pkg/errors"

	"github.com/searchmesh/metasync/metadata"
)

// auxMetadataKey is the auxiliary slot holding the serialized GlobalMetadata.
var auxMetadataKey = []byte("!metasync!aux/global-metadata")

// Store is a durable snapshot store backed by badger.
type Store struct {
	db *badger.DB
}

// Open opens (creating if needed) the snapshot store in dir.
func Open(dir string) (*Store, error) {
	opt := badger.DefaultOptions(dir).WithLogger(nil)
	db, err := badger.Open(opt)
	if err != nil {
		return nil, errors.Wrapf(err, "opening snapshot store at %s", dir)
	}
	return &Store{db: db}, nil
}

// Save writes the manager's current metadata into the auxiliary slot. The
// aux hook only emits a blob at the after-data phase, mirroring where the
// slot sits in the snapshot stream.
func (s *Store) Save(m *metadata.Manager) error {
	blob, err := m.AuxSave(metadata.AuxAfterData)
	if err != nil {
		return err
	}
	if blob == nil {
		return nil
	}
	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(auxMetadataKey, blob)
	})
	if err != nil {
		return errors.Wrap(err, "writing metadata snapshot")
	}
	glog.V(1).Infof("Saved metadata snapshot, %d bytes", len(blob))
	return nil
}

// Load reads the auxiliary slot, if present, and hands it to the manager's
// aux-load hook. Whether it merges immediately or stages depends on whether
// a replication window is open on the manager.
func (s *Store) Load(m *metadata.Manager) error {
	var blob []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(auxMetadataKey)
		if err != nil {
			return err
		}
		blob, err = item.ValueCopy(nil)
		return err
	})
	switch {
	case err == badger.ErrKeyNotFound:
		// Fresh store, nothing to restore.
		return nil
	case err != nil:
		return errors.Wrap(err, "reading metadata snapshot")
	}
	return m.AuxLoad(blob, metadata.AuxAfterData)
}

// Close syncs and closes the underlying badger instance.
func (s *Store) Close() error {
	return s.db.Close()
}
