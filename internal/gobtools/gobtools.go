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

// Package gobtools adapts a type with a custom flat gob representation
// (anything satisfying CustomGob) into bytes and back, without every such
// type having to repeat the bytes.Buffer/gob.Encoder boilerplate.
package gobtools

import (
	"bytes"
	"encoding/gob"
)

// CustomGob is implemented by a type whose wire representation (Repr) is
// simpler than its in-memory form — typically because the in-memory form
// has invariants (interning, lazily resolved fields) that gob cannot
// express directly.
type CustomGob[Repr any] interface {
	ToGob() *Repr
	FromGob(data *Repr)
}

// Encode serializes cg's ToGob representation.
func Encode[Repr any](cg CustomGob[Repr]) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(cg.ToGob()); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode deserializes data into a Repr and hands it to cg.FromGob.
func Decode[Repr any](data []byte, cg CustomGob[Repr]) error {
	var repr Repr
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&repr); err != nil {
		return err
	}
	cg.FromGob(&repr)
	return nil
}
