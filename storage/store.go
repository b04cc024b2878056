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

// Package storage defines the key-value contract the tree engine persists
// through. Keys and values are opaque byte strings grouped into tables.
package storage

import (
	"errors"
)

// Table groups the records of a single concern under a one-byte key prefix.
type Table byte

const (
	// DefaultTable is reserved for ad-hoc records in tests and tools.
	DefaultTable Table = iota

	// NodeTable holds the content-addressed internal node records: the key
	// is the node digest, the value the concatenation of both child digests.
	NodeTable

	// MetaTable holds one record per tree name with its root digest and depth.
	MetaTable
)

func (t Table) Prefix() byte {
	return byte(t)
}

func (t Table) String() string {
	switch t {
	case DefaultTable:
		return "default"
	case NodeTable:
		return "node"
	case MetaTable:
		return "meta"
	default:
		return "unknown"
	}
}

// ErrKeyNotFound is returned by Get when a key has no record. An absent node
// record is a meaningful answer for the tree engine, not a failure.
var ErrKeyNotFound = errors.New("key not found")

type Store interface {
	// Mutate applies a batch of writes atomically: either every mutation
	// becomes durable or none does.
	Mutate(mutations []*Mutation) error
	Get(table Table, key []byte) (*KVPair, error)
	GetRange(table Table, start, end []byte) (KVRange, error)
	GetAll(table Table) KVPairReader
	Close() error
}

type DeletableStore interface {
	Store
	Delete(table Table, key []byte) error
}

type Mutation struct {
	Table      Table
	Key, Value []byte
}

func NewMutation(table Table, key, value []byte) *Mutation {
	return &Mutation{table, key, value}
}

type KVPair struct {
	Key, Value []byte
}

func NewKVPair(key, value []byte) KVPair {
	return KVPair{Key: key, Value: value}
}

type KVRange []KVPair

type KVPairReader interface {
	Read([]*KVPair) (n int, err error)
	Close()
}
