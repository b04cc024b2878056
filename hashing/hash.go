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

// Package hashing implements the hashers used to derive node digests and
// their pairwise compression.
package hashing

import (
	"crypto/sha256"
	"fmt"
	"hash"

	"golang.org/x/crypto/blake2b"
)

type Digest []byte

type Hasher interface {
	Salted([]byte, ...[]byte) Digest
	Do(...[]byte) Digest
	Len() uint16
}

// LeafHasher computes the digest of a raw leaf block.
type LeafHasher func([]byte) Digest

// InteriorHasher combines two child digests into their parent digest. It is
// order-sensitive: InteriorHasher(a, b) and InteriorHasher(b, a) differ in
// general.
type InteriorHasher func(Digest, Digest) Digest

func LeafHasherF(hasher Hasher) LeafHasher {
	return func(value []byte) Digest {
		return hasher.Do(value)
	}
}

func InteriorHasherF(hasher Hasher) InteriorHasher {
	return func(left, right Digest) Digest {
		return hasher.Do(left, right)
	}
}

// XorHasher implements the Hasher interface and computes a 2 bit hash
// function. Handy for testing hash tree implementations.
type XorHasher struct{}

func NewXorHasher() Hasher {
	return new(XorHasher)
}

// Salted function adds a seed to the input data before hashing it.
func (x XorHasher) Salted(salt []byte, data ...[]byte) Digest {
	data = append(data, salt)
	return x.Do(data...)
}

// Do function hashes input data using the XOR hash function.
func (x XorHasher) Do(data ...[]byte) Digest {
	var result byte
	for _, elem := range data {
		var sum byte
		for _, b := range elem {
			sum = sum ^ b
		}
		result = result ^ sum
	}
	return []byte{result}
}

// Len function returns the size of the resulting hash.
func (x XorHasher) Len() uint16 { return uint16(8) }

type KeyHasher struct {
	underlying hash.Hash
}

// NewBlake2bHasher implements the Hasher interface and computes a 256 bit hash
// function using the Blake2 hashing algorithm.
func NewBlake2bHasher() Hasher {
	hasher, err := blake2b.New256(nil)
	if err != nil {
		panic(fmt.Sprintf("Error creating BLAKE2b hasher %v", err))
	}
	return &KeyHasher{underlying: hasher}
}

// NewSha256Hasher implements the Hasher interface and computes a 256 bit hash
// function using the SHA256 hashing algorithm.
func NewSha256Hasher() Hasher {
	return &KeyHasher{underlying: sha256.New()}
}

// Salted function adds a seed to the input data before hashing it.
func (s *KeyHasher) Salted(salt []byte, data ...[]byte) Digest {
	data = append(data, salt)
	return s.Do(data...)
}

// Do function hashes input data using the hashing function given by the KeyHasher.
func (s *KeyHasher) Do(data ...[]byte) Digest {
	s.underlying.Reset()
	for i := 0; i < len(data); i++ {
		_, _ = s.underlying.Write(data[i])
	}
	return s.underlying.Sum(nil)[:]
}

// Len function returns the size of the resulting hash.
func (s KeyHasher) Len() uint16 { return uint16(256) }

// FakeHasher implements the Hasher interface and computes a hash
// function depending on the caller.
// Here, 'Salted' function does nothing but act as a passthrough to 'Do' function.
// Handy for testing hash tree implementations.
type FakeHasher struct {
	underlying Hasher
}

// Salted function directly hashes data, similarly to Do function.
func (h *FakeHasher) Salted(salt []byte, data ...[]byte) Digest {
	return h.underlying.Do(data...)
}

// Do function hashes input data using the hashing function given by the KeyHasher.
func (h *FakeHasher) Do(data ...[]byte) Digest {
	return h.underlying.Do(data...)
}

// Len function returns the size of the resulting hash.
func (h FakeHasher) Len() uint16 {
	return h.underlying.Len()
}

func NewFakeXorHasher() Hasher {
	return &FakeHasher{NewXorHasher()}
}

func NewFakeSha256Hasher() Hasher {
	return &FakeHasher{NewSha256Hasher()}
}
