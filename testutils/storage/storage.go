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

// Package storage opens throwaway store instances for tests, returning the
// store together with a cleanup closure.
package storage

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/arboria/smt/storage/badger"
	"github.com/arboria/smt/storage/bolt"
	"github.com/arboria/smt/storage/bplus"
)

func NewBPlusTreeStore() (*bplus.BPlusTreeStore, func()) {
	store := bplus.NewBPlusTreeStore()
	return store, func() {
		store.Close()
	}
}

func NewBadgerStore(t testing.TB, path string) (*badger.BadgerStore, func()) {
	store, err := badger.NewBadgerStore(path)
	if err != nil {
		t.Fatalf("Error opening badger store: %v", err)
	}
	return store, func() {
		store.Close()
		os.RemoveAll(path)
	}
}

func NewTmpBadgerStore(t testing.TB) (*badger.BadgerStore, func()) {
	path, err := ioutil.TempDir("", "badger_store_test")
	if err != nil {
		t.Fatalf("Error creating temp dir: %v", err)
	}
	return NewBadgerStore(t, path)
}

func NewBoltStore(t testing.TB, path string) (*bolt.BoltStore, func()) {
	store, err := bolt.NewBoltStore(path)
	if err != nil {
		t.Fatalf("Error opening bolt store: %v", err)
	}
	return store, func() {
		store.Close()
		os.RemoveAll(path)
	}
}

func NewTmpBoltStore(t testing.TB) (*bolt.BoltStore, func()) {
	dir, err := ioutil.TempDir("", "bolt_store_test")
	if err != nil {
		t.Fatalf("Error creating temp dir: %v", err)
	}
	store, err := bolt.NewBoltStore(filepath.Join(dir, "bolt.db"))
	if err != nil {
		t.Fatalf("Error opening bolt store: %v", err)
	}
	return store, func() {
		store.Close()
		os.RemoveAll(dir)
	}
}
