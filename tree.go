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

// Package smt implements a persistent, fixed-depth, indexable sparse Merkle
// tree on top of a key-value store. Internal nodes are content-addressed:
// each record is keyed by its own digest and holds the concatenation of its
// two child digests. Subtrees never written to are not materialized; their
// digests come from a precomputed default hash table. Updates are
// copy-on-write: they add the O(depth) records on the path to the changed
// leaf and repoint the root, leaving old records untouched.
package smt

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/arboria/smt/cache"
	"github.com/arboria/smt/hashing"
	"github.com/arboria/smt/log"
	"github.com/arboria/smt/metrics"
	"github.com/arboria/smt/storage"
)

const (
	// LeafSize is the exact size in bytes of every leaf value.
	LeafSize = 64

	// MinDepth and MaxDepth bound the tree depth fixed at creation.
	MinDepth = 1
	MaxDepth = 32
)

// Tree is a handle on a named persistent tree. Obtain it through Open only.
type Tree struct {
	name          []byte
	depth         uint16
	root          hashing.Digest
	store         storage.Store
	cache         cache.Cache
	hasher        hashing.Hasher
	leafHash      hashing.LeafHasher
	interiorHash  hashing.InteriorHasher
	defaultHashes []hashing.Digest
	hashSize      int
	sync.RWMutex
}

// Option configures a Tree before it touches storage.
type Option func(*Tree)

// WithHasher selects the hasher used for leaf digests and node compression.
// Defaults to SHA256. The hasher of an existing tree must match the one it
// was created with, or every digest comparison will fail.
func WithHasher(hasher hashing.Hasher) Option {
	return func(t *Tree) {
		t.hasher = hasher
	}
}

// WithCache sets a node cache consulted before the store. Node records are
// immutable, so any cache keyed by node digest preserves semantics.
func WithCache(c cache.Cache) Option {
	return func(t *Tree) {
		t.cache = c
	}
}

// Open restores the tree persisted under name or, when no metadata exists
// yet, creates an empty tree of defaultDepth levels. A restored tree keeps
// the depth it was created with; defaultDepth is ignored in that case.
func Open(store storage.Store, name []byte, defaultDepth uint16, opts ...Option) (*Tree, error) {

	t := &Tree{
		name:   append([]byte{}, name...),
		store:  store,
		hasher: hashing.NewSha256Hasher(),
	}
	for _, opt := range opts {
		opt(t)
	}
	t.leafHash = hashing.LeafHasherF(t.hasher)
	t.interiorHash = hashing.InteriorHasherF(t.hasher)
	t.hashSize = int(t.hasher.Len() / 8)

	meta, err := store.Get(storage.MetaTable, t.name)
	switch err {
	case nil:
		root, depth, derr := decodeMetadata(meta.Value, t.hashSize)
		if derr != nil {
			return nil, derr
		}
		t.root = root
		t.depth = depth
		t.defaultHashes = computeDefaultHashes(t.leafHash, t.interiorHash, depth)
		log.Debugf("Restored tree %x with depth %d and root %x", t.name, t.depth, t.root)

	case storage.ErrKeyNotFound:
		if defaultDepth < MinDepth || defaultDepth > MaxDepth {
			return nil, ErrInvalidDepth
		}
		t.depth = defaultDepth
		t.defaultHashes = computeDefaultHashes(t.leafHash, t.interiorHash, defaultDepth)
		if ierr := t.initialize(); ierr != nil {
			return nil, ierr
		}
		log.Debugf("Created empty tree %x with depth %d and root %x", t.name, t.depth, t.root)

	default:
		return nil, err
	}

	metrics.SmtOpenTotal.Inc()
	return t, nil
}

// initialize writes the all-default spine bottom-up, one internal record per
// level, plus the metadata record, in a single mutation batch. Later updates
// reuse these records as siblings until overwritten.
func (t *Tree) initialize() error {
	mutations := make([]*storage.Mutation, 0, t.depth+1)
	for layer := uint16(1); layer <= t.depth; layer++ {
		child := t.defaultHashes[layer-1]
		record := make([]byte, 0, 2*t.hashSize)
		record = append(record, child...)
		record = append(record, child...)
		mutations = append(mutations, storage.NewMutation(storage.NodeTable, t.defaultHashes[layer], record))
	}
	t.root = t.defaultHashes[t.depth]
	mutations = append(mutations, storage.NewMutation(storage.MetaTable, t.name, encodeMetadata(t.root, t.depth)))

	if err := t.store.Mutate(mutations); err != nil {
		return err
	}
	t.cacheNodes(mutations)
	return nil
}

// Name returns the persistence key that identifies the tree.
func (t *Tree) Name() []byte {
	return append([]byte{}, t.name...)
}

// Depth returns the number of levels fixed at creation.
func (t *Tree) Depth() uint16 {
	return t.depth
}

// Root returns the digest committing to the current leaf set. It never
// fails: an empty tree answers its default root.
func (t *Tree) Root() hashing.Digest {
	t.RLock()
	defer t.RUnlock()
	root := make(hashing.Digest, len(t.root))
	copy(root, t.root)
	return root
}

// Update sets the leaf at index to value and recomputes the root. It
// rewrites only the internal records on the path to the leaf: every new
// parent is keyed by its own digest and holds its two child digests. The
// new records and the refreshed metadata are committed as one mutation
// batch; the in-memory root is repointed only after the commit succeeds, so
// a failed update leaves the tree at its previous state. Returns the new
// root.
func (t *Tree) Update(index int64, value []byte) (hashing.Digest, error) {
	if index < 0 || index >= int64(1)<<t.depth {
		return nil, ErrIndexOutOfRange
	}
	if len(value) != LeafSize {
		return nil, ErrInvalidLeafSize
	}

	t.Lock()
	defer t.Unlock()

	timer := prometheus.NewTimer(metrics.SmtUpdateDurationSeconds)
	defer timer.ObserveDuration()

	mutations := make([]*storage.Mutation, 0, t.depth+1)
	newRoot, err := t.update(t.root, t.depth, index, value, &mutations)
	if err != nil {
		return nil, err
	}
	mutations = append(mutations, storage.NewMutation(storage.MetaTable, t.name, encodeMetadata(newRoot, t.depth)))

	if err := t.store.Mutate(mutations); err != nil {
		return nil, err
	}
	t.cacheNodes(mutations)
	t.root = newRoot

	metrics.SmtUpdateTotal.Inc()
	log.Debugf("Updated index %d of tree %x: new root %x", index, t.name, newRoot)
	return append(hashing.Digest{}, newRoot...), nil
}

// update descends from current to the leaf level and recomposes the path
// bottom-up. Nothing is persisted here: new records are staged in mutations
// so the caller can commit them in one batch.
func (t *Tree) update(current hashing.Digest, layer uint16, index int64, value []byte, mutations *[]*storage.Mutation) (hashing.Digest, error) {

	if layer == 0 {
		return t.leafHash(value), nil
	}

	record, err := t.fetchNode(current)
	if err != nil {
		return nil, err
	}

	var left, right hashing.Digest
	switch {
	case record == nil:
		// unmaterialized subtree: both children are default
		left = t.defaultHashes[layer-1]
		right = t.defaultHashes[layer-1]
	case len(record) == 2*t.hashSize:
		left = hashing.Digest(record[:t.hashSize])
		right = hashing.Digest(record[t.hashSize:])
	default:
		return nil, ErrCorruptNode
	}

	if bit(index, layer-1) == 0 {
		child, err := t.update(left, layer-1, index, value, mutations)
		if err != nil {
			return nil, err
		}
		left = child
	} else {
		child, err := t.update(right, layer-1, index, value, mutations)
		if err != nil {
			return nil, err
		}
		right = child
	}

	parent := t.interiorHash(left, right)
	record = make([]byte, 0, 2*t.hashSize)
	record = append(record, left...)
	record = append(record, right...)
	*mutations = append(*mutations, storage.NewMutation(storage.NodeTable, parent, record))
	return parent, nil
}

// WarmCache preloads every stored node record into the configured cache.
// It is a no-op when the cache cannot be filled.
func (t *Tree) WarmCache() error {
	mc, ok := t.cache.(cache.ModifiableCache)
	if !ok {
		return nil
	}
	return mc.Fill(t.store.GetAll(storage.NodeTable))
}

// fetchNode returns the stored record keyed by the given digest, or nil
// when the key has no record, which marks a default subtree.
func (t *Tree) fetchNode(key hashing.Digest) ([]byte, error) {
	if t.cache != nil {
		if value, ok := t.cache.Get(key); ok {
			metrics.SmtCacheHitsTotal.Inc()
			return value, nil
		}
		metrics.SmtCacheMissesTotal.Inc()
	}

	pair, err := t.store.Get(storage.NodeTable, key)
	switch err {
	case nil:
		if mc, ok := t.cache.(cache.ModifiableCache); ok {
			mc.Put(key, pair.Value)
		}
		return pair.Value, nil
	case storage.ErrKeyNotFound:
		return nil, nil
	default:
		return nil, err
	}
}

func (t *Tree) cacheNodes(mutations []*storage.Mutation) {
	mc, ok := t.cache.(cache.ModifiableCache)
	if !ok {
		return
	}
	for _, m := range mutations {
		if m.Table == storage.NodeTable {
			mc.Put(m.Key, m.Value)
		}
	}
}

// bit returns the child selector for the given layer: 0 descends left,
// 1 descends right. Layers count from the leaf level (0) upward.
func bit(index int64, layer uint16) byte {
	return byte(index >> layer & 1)
}
