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

	"github.com/buildgraph/nestedset/order"
)

// OrderMismatch reports that a transitive set of one order was added to a
// builder of an incompatible order. Callers must not catch and continue;
// it indicates a structural bug in the caller, not a runtime condition to
// recover from.
type OrderMismatch struct {
	Builder order.Order
	Added   order.Order
}

func (e *OrderMismatch) Error() string {
	return fmt.Sprintf("nestedset: incompatible order: builder is %s, added transitive is %s", e.Builder, e.Added)
}

// NullElement reports an attempt to add a nil pointer, interface, map, or
// slice element to a builder. Like OrderMismatch, this is fatal at the call
// site.
type NullElement struct{}

func (e *NullElement) Error() string {
	return "nestedset: attempted to add a null element"
}

// AsyncBackingFailed wraps the error returned by an AsyncProducer. It is
// returned, never panicked, and is re-raised verbatim (same wrapped error)
// on every subsequent operation against the same set.
type AsyncBackingFailed struct {
	Err error
}

func (e *AsyncBackingFailed) Error() string {
	return fmt.Sprintf("nestedset: async contents failed to resolve: %s", e.Err)
}

func (e *AsyncBackingFailed) Unwrap() error {
	return e.Err
}
