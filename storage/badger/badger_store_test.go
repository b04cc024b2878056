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

package badger

import (
	"io/ioutil"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arboria/smt/storage"
	"github.com/arboria/smt/testutils/rand"
)

func openBadgerStore(t testing.TB) (*BadgerStore, func()) {
	path, err := ioutil.TempDir("", "badger_store_test")
	require.NoError(t, err)
	store, err := NewBadgerStore(path)
	require.NoError(t, err)
	return store, func() {
		store.Close()
		os.RemoveAll(path)
	}
}

func TestMutate(t *testing.T) {
	store, closeF := openBadgerStore(t)
	defer closeF()

	tests := []struct {
		testname      string
		table         storage.Table
		key, value    []byte
		expectedError error
	}{
		{"Mutate Key=Value", storage.NodeTable, []byte("Key"), []byte("Value"), nil},
	}

	for _, test := range tests {
		err := store.Mutate([]*storage.Mutation{
			{Table: test.table, Key: test.key, Value: test.value},
		})
		require.Equalf(t, test.expectedError, err, "Error mutating in test: %s", test.testname)
		_, err = store.Get(test.table, test.key)
		require.Equalf(t, test.expectedError, err, "Error getting key in test: %s", test.testname)
	}
}

func TestGetExistentKey(t *testing.T) {
	store, closeF := openBadgerStore(t)
	defer closeF()

	testCases := []struct {
		table         storage.Table
		key, value    []byte
		expectedError error
	}{
		{storage.NodeTable, []byte("Key1"), []byte("Value1"), nil},
		{storage.NodeTable, []byte("Key2"), []byte("Value2"), nil},
		{storage.MetaTable, []byte("Key3"), []byte("Value3"), nil},
		{storage.MetaTable, []byte("Key4"), []byte("Value4"), storage.ErrKeyNotFound},
	}

	for _, test := range testCases {
		if test.expectedError == nil {
			err := store.Mutate([]*storage.Mutation{
				{Table: test.table, Key: test.key, Value: test.value},
			})
			require.NoError(t, err)
		}

		stored, err := store.Get(test.table, test.key)
		if test.expectedError == nil {
			require.NoError(t, err)
			require.Equalf(t, test.key, stored.Key, "The stored key does not match the original: expected %d, actual %d", test.key, stored.Key)
			require.Equalf(t, test.value, stored.Value, "The stored value does not match the original: expected %d, actual %d", test.value, stored.Value)
		} else {
			require.Equal(t, test.expectedError, err)
		}
	}
}

func TestTablesDoNotCollide(t *testing.T) {
	store, closeF := openBadgerStore(t)
	defer closeF()

	key := rand.Bytes(32)
	err := store.Mutate([]*storage.Mutation{
		{Table: storage.NodeTable, Key: key, Value: []byte("node")},
	})
	require.NoError(t, err)

	_, err = store.Get(storage.MetaTable, key)
	require.Equal(t, storage.ErrKeyNotFound, err, "A node key must not be visible through the meta table")
}

func TestGetRange(t *testing.T) {
	store, closeF := openBadgerStore(t)
	defer closeF()

	var testCases = []struct {
		size       int
		start, end byte
	}{
		{40, 10, 50},
		{0, 1, 9},
		{11, 1, 20},
		{10, 40, 60},
		{0, 60, 100},
		{0, 20, 10},
	}

	table := storage.NodeTable
	for i := 10; i < 50; i++ {
		err := store.Mutate([]*storage.Mutation{
			{Table: table, Key: []byte{byte(i)}, Value: []byte("Value")},
		})
		require.NoError(t, err)
	}

	for _, test := range testCases {
		slice, err := store.GetRange(table, []byte{test.start}, []byte{test.end})
		require.NoError(t, err)
		require.Equalf(t, test.size, len(slice), "Slice length invalid: expected %d, actual %d", test.size, len(slice))
	}
}

func TestGetAll(t *testing.T) {
	store, closeF := openBadgerStore(t)
	defer closeF()

	table := storage.NodeTable
	numElems := 20
	for i := 0; i < numElems; i++ {
		err := store.Mutate([]*storage.Mutation{
			{Table: table, Key: []byte{byte(i)}, Value: rand.Bytes(8)},
		})
		require.NoError(t, err)
	}

	reader := store.GetAll(table)
	defer reader.Close()

	read := 0
	for {
		entries := make([]*storage.KVPair, 7)
		n, _ := reader.Read(entries)
		if n == 0 {
			break
		}
		read += n
	}
	require.Equal(t, numElems, read, "GetAll must visit every pair exactly once")
}

func TestDelete(t *testing.T) {
	store, closeF := openBadgerStore(t)
	defer closeF()

	table := storage.NodeTable
	key, value := []byte("Key"), []byte("Value")

	err := store.Mutate([]*storage.Mutation{
		{Table: table, Key: key, Value: value},
	})
	require.NoError(t, err)

	require.NoError(t, store.Delete(table, key))

	_, err = store.Get(table, key)
	require.Equal(t, storage.ErrKeyNotFound, err)
}
