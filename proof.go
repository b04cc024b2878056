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
	"bytes"

	"github.com/arboria/smt/hashing"
	"github.com/arboria/smt/metrics"
)

// MembershipProof binds a leaf value at an index to a root through its
// hash path.
type MembershipProof struct {
	Index  int64
	Value  []byte
	Path   HashPath
	hasher hashing.Hasher
}

// ProveMembership returns a verifiable proof that value sits at index under
// the tree's current root. The caller supplies the value: leaves are never
// stored, only committed to.
func (t *Tree) ProveMembership(index int64, value []byte) (*MembershipProof, error) {
	if len(value) != LeafSize {
		return nil, ErrInvalidLeafSize
	}
	path, err := t.HashPath(index)
	if err != nil {
		return nil, err
	}
	metrics.SmtProveMembershipTotal.Inc()
	return &MembershipProof{
		Index:  index,
		Value:  value,
		Path:   path,
		hasher: t.hasher,
	}, nil
}

// Verify recomputes the root from the leaf digest upward, choosing the
// composition order by the index bit at each level and taking the sibling
// from the recorded pair, and compares it against the expected root.
func (p MembershipProof) Verify(expectedRoot hashing.Digest) bool {
	leafHash := hashing.LeafHasherF(p.hasher)
	interiorHash := hashing.InteriorHasherF(p.hasher)

	current := leafHash(p.Value)
	for i, pair := range p.Path {
		if bit(p.Index, uint16(i)) == 0 {
			current = interiorHash(current, pair.Right)
		} else {
			current = interiorHash(pair.Left, current)
		}
	}
	return bytes.Equal(current, expectedRoot)
}
