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

package smt

import (
	"github.com/arboria/smt/hashing"
	"github.com/arboria/smt/metrics"
)

// PathPair holds both child digests of an internal node visited on the way
// to a leaf.
type PathPair struct {
	Left, Right hashing.Digest
}

// HashPath is the ordered sibling-pair sequence proving a leaf's membership
// under a root. Pairs are ordered leaf-to-root: index 0 is the pair nearest
// the leaf, index len-1 the pair under the root. Its length always equals
// the tree depth.
type HashPath []PathPair

// HashPath returns the sibling pairs for the leaf at index. Never-written
// indices are answered too: once the walk leaves the materialized region,
// the remaining pairs come from the default hash table.
func (t *Tree) HashPath(index int64) (HashPath, error) {
	if index < 0 || index >= int64(1)<<t.depth {
		return nil, ErrIndexOutOfRange
	}

	// a single root snapshot keeps the walk consistent: records reachable
	// from a committed root are immutable
	t.RLock()
	current := t.root
	t.RUnlock()

	path := make(HashPath, 0, t.depth)
	for layer := t.depth; layer >= 1; layer-- {
		record, err := t.fetchNode(current)
		if err != nil {
			return nil, err
		}

		if record == nil {
			metrics.SmtDefaultNodeReadsTotal.Inc()
			def := t.defaultHashes[layer-1]
			path = append(path, PathPair{Left: def, Right: def})
			current = def
			continue
		}
		if len(record) != 2*t.hashSize {
			return nil, ErrCorruptNode
		}

		left := hashing.Digest(record[:t.hashSize])
		right := hashing.Digest(record[t.hashSize:])
		path = append(path, PathPair{Left: left, Right: right})
		if bit(index, layer-1) == 0 {
			current = left
		} else {
			current = right
		}
	}

	// collected root-to-leaf, returned leaf-to-root
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	metrics.SmtHashPathTotal.Inc()
	return path, nil
}
