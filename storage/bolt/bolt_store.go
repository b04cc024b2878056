/*
   Copyright 2019-2020 Arboria Project

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package bolt

import (
	"bytes"
	"fmt"

	bolt "github.com/coreos/bbolt"

	"github.com/arboria/smt/storage"
)

var tables = []storage.Table{
	storage.DefaultTable,
	storage.NodeTable,
	storage.MetaTable,
}

// BoltStore persists every table in its own bucket of a single bolt file.
type BoltStore struct {
	db *bolt.DB
}

func NewBoltStore(path string) (*BoltStore, error) {
	db, err := bolt.Open(path, 0600, nil)
	if err != nil {
		return nil, err
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, table := range tables {
			if _, err := tx.CreateBucketIfNotExists([]byte(table.String())); err != nil {
				return fmt.Errorf("create bucket %s: %s", table, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &BoltStore{db: db}, nil
}

func (s BoltStore) Mutate(mutations []*storage.Mutation) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		for _, m := range mutations {
			b := tx.Bucket([]byte(m.Table.String()))
			if err := b.Put(m.Key, m.Value); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s BoltStore) Get(table storage.Table, key []byte) (*storage.KVPair, error) {
	result := new(storage.KVPair)
	result.Key = key
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(table.String()))
		v := b.Get(key)
		if v == nil {
			return storage.ErrKeyNotFound
		}
		result.Value = make([]byte, len(v))
		copy(result.Value, v)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s BoltStore) GetRange(table storage.Table, start, end []byte) (storage.KVRange, error) {
	result := make(storage.KVRange, 0)
	err := s.db.View(func(tx *bolt.Tx) error {
		cursor := tx.Bucket([]byte(table.String())).Cursor()
		for k, v := cursor.Seek(start); k != nil && bytes.Compare(k, end) <= 0; k, v = cursor.Next() {
			key := make([]byte, len(k))
			copy(key, k)
			value := make([]byte, len(v))
			copy(value, v)
			result = append(result, storage.KVPair{Key: key, Value: value})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

type BoltKVPairReader struct {
	table   storage.Table
	db      *bolt.DB
	lastKey []byte
}

func NewBoltKVPairReader(table storage.Table, db *bolt.DB) *BoltKVPairReader {
	return &BoltKVPairReader{table: table, db: db}
}

func (r *BoltKVPairReader) Read(buffer []*storage.KVPair) (n int, err error) {
	err = r.db.View(func(tx *bolt.Tx) error {
		cursor := tx.Bucket([]byte(r.table.String())).Cursor()

		var k, v []byte
		if r.lastKey == nil {
			k, v = cursor.First()
		} else {
			cursor.Seek(r.lastKey)
			k, v = cursor.Next()
		}

		for ; k != nil && n < len(buffer); k, v = cursor.Next() {
			key := make([]byte, len(k))
			copy(key, k)
			value := make([]byte, len(v))
			copy(value, v)
			buffer[n] = &storage.KVPair{Key: key, Value: value}
			r.lastKey = key
			n++
		}
		return nil
	})
	return n, err
}

func (r *BoltKVPairReader) Close() {
	r.db = nil
}

func (s BoltStore) GetAll(table storage.Table) storage.KVPairReader {
	return NewBoltKVPairReader(table, s.db)
}

func (s BoltStore) Delete(table storage.Table, key []byte) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(table.String())).Delete(key)
	})
}

func (s BoltStore) Close() error {
	return s.db.Close()
}
