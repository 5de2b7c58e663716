// Copyright 2025 Google Inc. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package nestedset

import (
	"fmt"
	"reflect"
	"sync"
	"unsafe"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"

	"github.com/buildgraph/nestedset/order"
)

// wrapCacheSize bounds the wrap cache. Go has no portable weak-keyed map
// (unique/weak intern comparable values, not arbitrary slice identity), so
// a bounded LRU stands in for the "evict once the original sequence is
// unreachable" behavior a weak-keyed cache would give: entries age out
// under pressure instead of at GC time. See DESIGN.md for the Open Question
// this resolves.
const wrapCacheSize = 4096

// wrapKey identifies a slice by its backing array's identity and length,
// not its contents: two distinct slices with equal elements get distinct
// keys, matching the reference-identity semantics Wrap's cache promises.
type wrapKey struct {
	elemType reflect.Type
	data     unsafe.Pointer
	length   int
}

var (
	wrapCacheOnce sync.Once
	wrapCache     *lru.Cache[wrapKey, any]
	wrapGroup     singleflight.Group
)

func getWrapCache() *lru.Cache[wrapKey, any] {
	wrapCacheOnce.Do(func() {
		c, err := lru.New[wrapKey, any](wrapCacheSize)
		if err != nil {
			// Only returns an error for a non-positive size, which
			// wrapCacheSize never is.
			panic(err)
		}
		wrapCache = c
	})
	return wrapCache
}

// Wrap builds a NestedSet over an externally supplied, already-ordered
// sequence. If seq has at most one element, the corresponding empty or
// singleton set is returned directly without consulting any cache.
// Otherwise, under Stable order, Wrap consults a process-wide cache keyed
// by seq's identity (its backing array pointer and length): wrapping the
// same sequence value twice returns the same NestedSet, until the cache
// evicts the entry under size pressure. Under any other order, Wrap always
// builds a fresh set.
func Wrap[T comparable](ord order.Order, seq []T) NestedSet[T] {
	if len(seq) <= 1 {
		return New(ord, seq, nil)
	}
	if ord != order.Stable {
		return New(ord, seq, nil)
	}

	key := wrapKey{
		elemType: reflect.TypeOf(seq).Elem(),
		data:     unsafe.Pointer(unsafe.SliceData(seq)),
		length:   len(seq),
	}
	cache := getWrapCache()
	if v, ok := cache.Get(key); ok {
		return v.(NestedSet[T])
	}

	// Coalesce concurrent wraps of the same sequence into a single Build:
	// benign to race (the spec only promises "last writer wins, all
	// candidates structurally equivalent"), but wasteful not to.
	groupKey := fmt.Sprintf("%s:%p:%d", key.elemType, key.data, key.length)
	v, _, _ := wrapGroup.Do(groupKey, func() (any, error) {
		if v, ok := cache.Get(key); ok {
			return v, nil
		}
		built := New(ord, seq, nil)
		cache.Add(key, built)
		return built, nil
	})
	return v.(NestedSet[T])
}
