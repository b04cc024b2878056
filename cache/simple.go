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
	"github.com/arboria/smt/storage"
)

// SimpleCache is an unbounded map cache. Useful for tests and for trees
// whose node set is known to be small.
type SimpleCache struct {
	cached map[string][]byte
}

func NewSimpleCache(initialSize uint64) *SimpleCache {
	return &SimpleCache{make(map[string][]byte, initialSize)}
}

func (c SimpleCache) Get(key []byte) ([]byte, bool) {
	value, ok := c.cached[string(key)]
	return value, ok
}

func (c *SimpleCache) Put(key []byte, value []byte) {
	c.cached[string(key)] = value
}

func (c *SimpleCache) Fill(r storage.KVPairReader) (err error) {
	defer r.Close()
	for {
		entries := make([]*storage.KVPair, 100)
		n, err := r.Read(entries)
		if err != nil || n == 0 {
			break
		}
		for _, entry := range entries[:n] {
			if entry != nil {
				c.cached[string(entry.Key)] = entry.Value
			}
		}
	}
	return nil
}

func (c SimpleCache) Size() int {
	return len(c.cached)
}
