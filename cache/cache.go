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

// Package cache implements node caches keyed by node digest. Node records
// are content-addressed and immutable once written, so cached entries can
// never go stale.
package cache

import (
	"github.com/arboria/smt/storage"
)

type Cache interface {
	Get(key []byte) ([]byte, bool)
}

type ModifiableCache interface {
	Put(key []byte, value []byte)
	Fill(r storage.KVPairReader) error
	Cache
}
