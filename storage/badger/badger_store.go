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
	"bytes"
	"time"

	b "github.com/dgraph-io/badger"
	bo "github.com/dgraph-io/badger/options"

	"github.com/arboria/smt/log"
	"github.com/arboria/smt/storage"
)

type BadgerStore struct {
	db                  *b.DB
	vlogTicker          *time.Ticker // runs every 1m, check size of vlog and run GC conditionally.
	mandatoryVlogTicker *time.Ticker // runs every 10m, we always run vlog GC.
}

// Options contains all the configuration used to open the Badger db
type Options struct {
	// Path is the directory path to the Badger db to use.
	Path string

	// BadgerOptions contains any specific Badger options you might
	// want to specify.
	BadgerOptions *b.Options

	// NoSync causes the database to skip fsync calls after each
	// write to the log. This is unsafe, so it should be used
	// with caution.
	NoSync bool

	// ValueLogGC enables a periodic goroutine that does a garbage
	// collection of the value log while the underlying Badger is online.
	ValueLogGC bool

	// GCInterval is the interval between conditionally running the garbage
	// collection process, based on the size of the vlog. By default, runs every 1m.
	GCInterval time.Duration

	// MandatoryGCInterval is the interval between mandatory running the
	// garbage collection process. By default, runs every 10m.
	MandatoryGCInterval time.Duration

	// GCThreshold sets threshold in bytes for the vlog size to be included in the
	// garbage collection cycle. By default, 1GB.
	GCThreshold int64
}

func NewBadgerStore(path string) (*BadgerStore, error) {
	return NewBadgerStoreOpts(&Options{Path: path})
}

func NewBadgerStoreOpts(opts *Options) (*BadgerStore, error) {

	var bOpts b.Options
	if bOpts = b.DefaultOptions(opts.Path); opts.BadgerOptions != nil {
		bOpts = *opts.BadgerOptions
	}

	bOpts.TableLoadingMode = bo.MemoryMap
	bOpts.ValueLogLoadingMode = bo.FileIO
	bOpts.SyncWrites = !opts.NoSync
	bOpts.Logger = nil

	db, err := b.Open(bOpts)
	if err != nil {
		return nil, err
	}

	store := &BadgerStore{db: db}
	// Start GC routine
	if opts.ValueLogGC {

		var gcInterval time.Duration
		var mandatoryGCInterval time.Duration
		var threshold int64

		if gcInterval = 1 * time.Minute; opts.GCInterval != 0 {
			gcInterval = opts.GCInterval
		}
		if mandatoryGCInterval = 10 * time.Minute; opts.MandatoryGCInterval != 0 {
			mandatoryGCInterval = opts.MandatoryGCInterval
		}
		if threshold = int64(1 << 30); opts.GCThreshold != 0 {
			threshold = opts.GCThreshold
		}

		store.vlogTicker = time.NewTicker(gcInterval)
		store.mandatoryVlogTicker = time.NewTicker(mandatoryGCInterval)
		go store.runVlogGC(db, threshold)
	}

	return store, nil
}

func (s BadgerStore) Mutate(mutations []*storage.Mutation) error {
	return s.db.Update(func(txn *b.Txn) error {
		for _, m := range mutations {
			key := append([]byte{m.Table.Prefix()}, m.Key...)
			if err := txn.Set(key, m.Value); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s BadgerStore) Get(table storage.Table, key []byte) (*storage.KVPair, error) {
	result := new(storage.KVPair)
	result.Key = key
	err := s.db.View(func(txn *b.Txn) error {
		k := append([]byte{table.Prefix()}, key...)
		item, err := txn.Get(k)
		if err != nil {
			return err
		}
		value, err := item.ValueCopy(nil)
		if err != nil {
			return err
		}
		result.Value = value
		return nil
	})
	switch err {
	case nil:
		return result, nil
	case b.ErrKeyNotFound:
		return nil, storage.ErrKeyNotFound
	default:
		return nil, err
	}
}

func (s BadgerStore) GetRange(table storage.Table, start, end []byte) (storage.KVRange, error) {
	result := make(storage.KVRange, 0)
	startKey := append([]byte{table.Prefix()}, start...)
	endKey := append([]byte{table.Prefix()}, end...)
	err := s.db.View(func(txn *b.Txn) error {
		opts := b.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Seek(startKey); it.Valid(); it.Next() {
			item := it.Item()
			key := item.KeyCopy(nil)
			if bytes.Compare(key, endKey) > 0 {
				break
			}
			value, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			result = append(result, storage.KVPair{Key: key[1:], Value: value})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

type BadgerKVPairReader struct {
	prefix byte
	txn    *b.Txn
	it     *b.Iterator
}

func NewBadgerKVPairReader(table storage.Table, txn *b.Txn) *BadgerKVPairReader {
	opts := b.DefaultIteratorOptions
	opts.PrefetchSize = 10
	it := txn.NewIterator(opts)
	it.Seek([]byte{table.Prefix()})
	return &BadgerKVPairReader{table.Prefix(), txn, it}
}

func (r *BadgerKVPairReader) Read(buffer []*storage.KVPair) (n int, err error) {
	for n = 0; r.it.ValidForPrefix([]byte{r.prefix}) && n < len(buffer); r.it.Next() {
		item := r.it.Item()
		key := item.KeyCopy(nil)
		value, err := item.ValueCopy(nil)
		if err != nil {
			break
		}
		buffer[n] = &storage.KVPair{Key: key[1:], Value: value}
		n++
	}
	return n, err
}

func (r *BadgerKVPairReader) Close() {
	r.it.Close()
	r.txn.Discard()
}

func (s BadgerStore) GetAll(table storage.Table) storage.KVPairReader {
	return NewBadgerKVPairReader(table, s.db.NewTransaction(false))
}

func (s BadgerStore) Delete(table storage.Table, key []byte) error {
	return s.db.Update(func(txn *b.Txn) error {
		k := append([]byte{table.Prefix()}, key...)
		return txn.Delete(k)
	})
}

func (s BadgerStore) Close() error {
	if s.vlogTicker != nil {
		s.vlogTicker.Stop()
	}
	if s.mandatoryVlogTicker != nil {
		s.mandatoryVlogTicker.Stop()
	}
	return s.db.Close()
}

func (s *BadgerStore) runVlogGC(db *b.DB, threshold int64) {
	// Get initial size on start.
	_, lastVlogSize := db.Size()

	runGC := func() {
		var err error
		for err == nil {
			// If a GC is successful, immediately run it again.
			log.Debug("VlogGC task: running...")
			err = db.RunValueLogGC(0.7)
		}
		log.Debug("VlogGC task: done.")
		_, lastVlogSize = db.Size()
	}

	for {
		select {
		case <-s.vlogTicker.C:
			_, currentVlogSize := db.Size()
			if currentVlogSize < lastVlogSize+threshold {
				continue
			}
			runGC()
		case <-s.mandatoryVlogTicker.C:
			runGC()
		}
	}
}
