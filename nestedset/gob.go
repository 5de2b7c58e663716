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
	"github.com/buildgraph/nestedset/internal/gobtools"
	"github.com/buildgraph/nestedset/order"
)

// gobForm is the flat representation a NestedSet is encoded to and decoded
// from. Encoding always resolves async contents first and ships them as
// eager direct members: gob has no notion of a pending producer, so a
// decoded set can never be async-backed. This is the concrete encode/decode
// pair behind the "streaming deserialization" scenario async-backed sets
// exist to support.
type gobForm[T comparable] struct {
	Order      order.Order
	Direct     []T
	Transitive []NestedSet[T]
}

// ToGob implements gobtools.CustomGob. If s is async-backed, it blocks to
// resolve it, exactly like ToList would.
//
// ToGob and FromGob both take a pointer receiver, matching the teacher's
// DepSet, so that *NestedSet[T] — not NestedSet[T] — is the single type
// satisfying gobtools.CustomGob[gobForm[T]].
func (s *NestedSet[T]) ToGob() *gobForm[T] {
	form := &gobForm[T]{}
	if s.isZero() {
		return form
	}
	impl := s.impl()
	form.Order = impl.order
	if impl.async != nil {
		// A failed resolve here leaves form.Direct empty: ToGob has no
		// error return, so EncodeGob, which reports the failure, is the
		// entry point callers should use for an async-backed set.
		resolved, err := resolveAsync(impl.async)
		if err == nil {
			form.Direct = resolved
		}
		return form
	}
	form.Direct = impl.direct.ToSlice()
	form.Transitive = impl.transitive.ToSlice()
	return form
}

// FromGob implements gobtools.CustomGob, reconstructing a NestedSet that
// re-interns to the same handle as any other set built from equal content —
// DAG sharing across a decoded stream is preserved automatically.
func (s *NestedSet[T]) FromGob(form *gobForm[T]) {
	*s = New(form.Order, form.Direct, form.Transitive)
}

// EncodeGob serializes s, resolving any async contents first. Use this
// instead of relying on ToGob directly when s might be async-backed, since
// it reports a resolution failure as an error instead of silently encoding
// an empty set.
func EncodeGob[T comparable](s NestedSet[T]) ([]byte, error) {
	if !s.isZero() {
		if impl := s.impl(); impl.async != nil {
			if _, err := resolveAsync(impl.async); err != nil {
				return nil, err
			}
		}
	}
	return gobtools.Encode[gobForm[T]](&s)
}

// DecodeGob deserializes data into a NestedSet.
func DecodeGob[T comparable](data []byte) (NestedSet[T], error) {
	var s NestedSet[T]
	err := gobtools.Decode[gobForm[T]](data, &s)
	return s, err
}

// GobEncode implements gob.GobEncoder, so the transitive sets listed in a
// gobForm are themselves encoded through EncodeGob.
func (s NestedSet[T]) GobEncode() ([]byte, error) {
	return EncodeGob(s)
}

// GobDecode implements gob.GobDecoder, the counterpart of GobEncode.
func (s *NestedSet[T]) GobDecode(data []byte) error {
	decoded, err := DecodeGob[T](data)
	if err != nil {
		return err
	}
	*s = decoded
	return nil
}
