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

package cache

import (
	lru "github.com/hashicorp/golang-lru"

	"github.com/arboria/smt/storage"
)

// LruReadThroughCache falls back to the underlying store on miss and keeps
// the fetched record for later reads. Safe because node records are
// immutable: a cached record can never diverge from the stored one.
type LruReadThroughCache struct {
	table  storage.Table
	store  storage.Store
	cached *lru.Cache
}

func NewLruReadThroughCache(table storage.Table, store storage.Store, cacheSize int) (*LruReadThroughCache, error) {
	cached, err := lru.New(cacheSize)
	if err != nil {
		return nil, err
	}
	return &LruReadThroughCache{
		table:  table,
		store:  store,
		cached: cached,
	}, nil
}

func (c LruReadThroughCache) Get(key []byte) ([]byte, bool) {
	value, ok := c.cached.Get(string(key))
	if ok {
		return value.([]byte), true
	}
	pair, err := c.store.Get(c.table, key)
	if err != nil {
		return nil, false
	}
	c.cached.Add(string(key), pair.Value)
	return pair.Value, true
}

func (c *LruReadThroughCache) Put(key []byte, value []byte) {
	c.cached.Add(string(key), value)
}

func (c *LruReadThroughCache) Fill(r storage.KVPairReader) (err error) {
	defer r.Close()
	for {
		entries := make([]*storage.KVPair, 100)
		n, err := r.Read(entries)
		if err != nil || n == 0 {
			break
		}
		for _, entry := range entries[:n] {
			if entry != nil {
				c.cached.Add(string(entry.Key), entry.Value)
			}
		}
	}
	return nil
}

func (c LruReadThroughCache) Size() int {
	return c.cached.Len()
}
