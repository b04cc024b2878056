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
	"github.com/arboria/smt/util"
)

// The metadata record persisted under the tree name is the root digest
// followed by the depth as a little-endian uint32: exactly hashSize+4
// bytes. It is the sole durable pointer to the tree's current state.
const metadataDepthSize = 4

func encodeMetadata(root hashing.Digest, depth uint16) []byte {
	record := make([]byte, 0, len(root)+metadataDepthSize)
	record = append(record, root...)
	record = append(record, util.Uint32AsBytes(uint32(depth))...)
	return record
}

func decodeMetadata(record []byte, hashSize int) (hashing.Digest, uint16, error) {
	if len(record) != hashSize+metadataDepthSize {
		return nil, 0, ErrCorruptMetadata
	}
	root := make(hashing.Digest, hashSize)
	copy(root, record[:hashSize])
	depth := util.BytesAsUint32(record[hashSize:])
	if depth < MinDepth || depth > MaxDepth {
		return nil, 0, ErrCorruptMetadata
	}
	return root, uint16(depth), nil
}
