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
)

// computeDefaultHashes precomputes the digest of the all-zero subtree at
// every level: index 0 holds the default leaf, index depth the root of a
// fully empty tree. The table answers lookups for unmaterialized subtrees
// without touching storage.
func computeDefaultHashes(leafHash hashing.LeafHasher, interiorHash hashing.InteriorHasher, depth uint16) []hashing.Digest {
	defaults := make([]hashing.Digest, depth+1)
	defaults[0] = leafHash(make([]byte, LeafSize))
	for i := uint16(1); i <= depth; i++ {
		defaults[i] = interiorHash(defaults[i-1], defaults[i-1])
	}
	return defaults
}
