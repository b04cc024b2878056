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

import "errors"

var (
	// ErrInvalidDepth is returned by Open when creating a tree with a depth
	// outside [MinDepth, MaxDepth].
	ErrInvalidDepth = errors.New("depth must be between 1 and 32")

	// ErrIndexOutOfRange is returned when a leaf index is negative or not
	// below 2^depth. The check happens before any I/O.
	ErrIndexOutOfRange = errors.New("leaf index out of range")

	// ErrInvalidLeafSize is returned when a leaf value is not exactly
	// LeafSize bytes. The check happens before any I/O.
	ErrInvalidLeafSize = errors.New("leaf value must be exactly 64 bytes")

	// ErrCorruptNode is returned when a fetched node record has a size
	// matching neither an internal record nor an absent node.
	ErrCorruptNode = errors.New("corrupt node record")

	// ErrCorruptMetadata is returned when a tree metadata record cannot be
	// parsed back.
	ErrCorruptMetadata = errors.New("corrupt tree metadata record")
)
