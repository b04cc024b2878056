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
	"testing"

	assert "github.com/stretchr/testify/require"

	"github.com/arboria/smt/storage"
	"github.com/arboria/smt/storage/bplus"
	"github.com/arboria/smt/testutils/rand"
)

func TestModifiableCaches(t *testing.T) {

	lruStore := bplus.NewBPlusTreeStore()
	defer lruStore.Close()
	lruCache, err := NewLruReadThroughCache(storage.NodeTable, lruStore, 100)
	assert.NoError(t, err)

	testCases := []struct {
		name  string
		cache ModifiableCache
	}{
		{"simple", NewSimpleCache(10)},
		{"fast", NewFastCache(1 << 20)},
		{"free", NewFreeCache(1 << 20)},
		{"lru", lruCache},
	}

	for _, c := range testCases {
		key := rand.Bytes(32)
		value := rand.Bytes(64)

		_, ok := c.cache.Get(key)
		assert.Falsef(t, ok, "[%s] The key should not exist before Put", c.name)

		c.cache.Put(key, value)

		cached, ok := c.cache.Get(key)
		assert.Truef(t, ok, "[%s] The key should exist after Put", c.name)
		assert.Equalf(t, value, cached, "[%s] The cached value should match the put value", c.name)
	}
}

func TestFill(t *testing.T) {

	store := bplus.NewBPlusTreeStore()
	defer store.Close()

	numElems := 250
	for i := 0; i < numElems; i++ {
		err := store.Mutate([]*storage.Mutation{
			{Table: storage.NodeTable, Key: rand.Bytes(32), Value: rand.Bytes(64)},
		})
		assert.NoError(t, err)
	}

	testCases := []struct {
		name  string
		cache ModifiableCache
	}{
		{"simple", NewSimpleCache(0)},
		{"fast", NewFastCache(1 << 20)},
		{"free", NewFreeCache(1 << 20)},
	}

	for _, c := range testCases {
		err := c.cache.Fill(store.GetAll(storage.NodeTable))
		assert.NoErrorf(t, err, "[%s] Filling should not fail", c.name)
	}
}

func TestLruReadThrough(t *testing.T) {

	store := bplus.NewBPlusTreeStore()
	defer store.Close()

	key := rand.Bytes(32)
	value := rand.Bytes(64)
	err := store.Mutate([]*storage.Mutation{
		{Table: storage.NodeTable, Key: key, Value: value},
	})
	assert.NoError(t, err)

	cache, err := NewLruReadThroughCache(storage.NodeTable, store, 10)
	assert.NoError(t, err)

	// a miss must fall back to the store
	cached, ok := cache.Get(key)
	assert.True(t, ok, "The key should be fetched from the store")
	assert.Equal(t, value, cached)
	assert.Equal(t, 1, cache.Size(), "The fetched record should now be cached")
}

func TestPassThroughCache(t *testing.T) {

	store := bplus.NewBPlusTreeStore()
	defer store.Close()
	cache := NewPassThroughCache(storage.NodeTable, store)

	key := rand.Bytes(32)
	value := rand.Bytes(64)

	_, ok := cache.Get(key)
	assert.False(t, ok, "The key should not exist yet")

	err := store.Mutate([]*storage.Mutation{
		{Table: storage.NodeTable, Key: key, Value: value},
	})
	assert.NoError(t, err)

	cached, ok := cache.Get(key)
	assert.True(t, ok, "The key should be visible through the cache")
	assert.Equal(t, value, cached)
}
