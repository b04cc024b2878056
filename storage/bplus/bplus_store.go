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

// Package bplus implements an in-memory, non-durable store over a B-tree.
// It is meant for tests and benchmarks, not for production trees.
package bplus

import (
	"bytes"

	"github.com/google/btree"

	"github.com/arboria/smt/storage"
)

type BPlusTreeStore struct {
	db *btree.BTree
}

func NewBPlusTreeStore() *BPlusTreeStore {
	return &BPlusTreeStore{btree.New(2)}
}

type KVItem struct {
	Key, Value []byte
}

func (p KVItem) Less(b btree.Item) bool {
	return bytes.Compare(p.Key, b.(KVItem).Key) < 0
}

func (s *BPlusTreeStore) Mutate(mutations []*storage.Mutation) error {
	for _, m := range mutations {
		key := append([]byte{m.Table.Prefix()}, m.Key...)
		s.db.ReplaceOrInsert(KVItem{key, m.Value})
	}
	return nil
}

func (s BPlusTreeStore) Get(table storage.Table, key []byte) (*storage.KVPair, error) {
	result := new(storage.KVPair)
	result.Key = key
	k := append([]byte{table.Prefix()}, key...)
	item := s.db.Get(KVItem{k, nil})
	if item == nil {
		return nil, storage.ErrKeyNotFound
	}
	result.Value = item.(KVItem).Value
	return result, nil
}

func (s BPlusTreeStore) GetRange(table storage.Table, start, end []byte) (storage.KVRange, error) {
	result := make(storage.KVRange, 0)
	startKey := append([]byte{table.Prefix()}, start...)
	endKey := append([]byte{table.Prefix()}, end...)
	s.db.AscendGreaterOrEqual(KVItem{startKey, nil}, func(i btree.Item) bool {
		key := i.(KVItem).Key
		if bytes.Compare(key, endKey) > 0 {
			return false
		}
		result = append(result, storage.KVPair{Key: key[1:], Value: i.(KVItem).Value})
		return true
	})
	return result, nil
}

type BPlusKVPairReader struct {
	prefix  byte
	db      *btree.BTree
	lastKey []byte
}

func NewBPlusKVPairReader(table storage.Table, db *btree.BTree) *BPlusKVPairReader {
	return &BPlusKVPairReader{
		prefix:  table.Prefix(),
		db:      db,
		lastKey: []byte{table.Prefix()},
	}
}

func (r *BPlusKVPairReader) Read(buffer []*storage.KVPair) (n int, err error) {
	n = 0
	r.db.AscendGreaterOrEqual(KVItem{r.lastKey, nil}, func(i btree.Item) bool {
		if n >= len(buffer) {
			return false
		}
		key := i.(KVItem).Key
		if key[0] != r.prefix {
			return false
		}
		if !bytes.Equal(key, r.lastKey) {
			buffer[n] = &storage.KVPair{Key: key[1:], Value: i.(KVItem).Value}
			n++
		}
		r.lastKey = key
		return true
	})
	return n, nil
}

func (r *BPlusKVPairReader) Close() {
	r.db = nil
}

func (s BPlusTreeStore) GetAll(table storage.Table) storage.KVPairReader {
	return NewBPlusKVPairReader(table, s.db)
}

func (s BPlusTreeStore) Delete(table storage.Table, key []byte) error {
	k := append([]byte{table.Prefix()}, key...)
	s.db.Delete(KVItem{k, nil})
	return nil
}

func (s BPlusTreeStore) Close() error {
	s.db.Clear(false)
	return nil
}
