// Copyright 2024 ColumnKit Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package compare resolves equality between two rows of one column by
// index, without materializing the values. Null compares equal to null, so
// grouping folds nulls into one group per key combination.
package compare

import (
	"bytes"

	"github.com/columnkit/columnkit/pkg/common/moerr"
	"github.com/columnkit/columnkit/pkg/container/nulls"
	"github.com/columnkit/columnkit/pkg/container/types"
	"github.com/columnkit/columnkit/pkg/container/vector"
)

// EqualityCompare compares, within one column, the elements at two row
// indices.
type EqualityCompare interface {
	Eq(a, b uint32) bool
}

// New builds a comparator bound to vec's typed storage, precomputed once
// so repeated probes skip type dispatch.
func New(vec *vector.Vector) EqualityCompare {
	if vec.GetType().IsVarlen() {
		return &bytesEq{col: vector.MustBytesCol(vec), nsp: vec.GetNulls()}
	}
	switch vec.GetType().Oid {
	case types.T_bool:
		return newFixedEq[bool](vec)
	case types.T_int8:
		return newFixedEq[int8](vec)
	case types.T_int16:
		return newFixedEq[int16](vec)
	case types.T_int32, types.T_date:
		return newFixedEq[int32](vec)
	case types.T_int64, types.T_datetime:
		return newFixedEq[int64](vec)
	case types.T_uint8:
		return newFixedEq[uint8](vec)
	case types.T_uint16:
		return newFixedEq[uint16](vec)
	case types.T_uint32:
		return newFixedEq[uint32](vec)
	case types.T_uint64:
		return newFixedEq[uint64](vec)
	case types.T_float32:
		return newFloatEq[float32](vec)
	case types.T_float64:
		return newFloatEq[float64](vec)
	}
	panic(moerr.NewNYI("equality compare for type %s", vec.GetType()))
}

// NewList builds one comparator per vector, in order.
func NewList(vecs []*vector.Vector) []EqualityCompare {
	cmps := make([]EqualityCompare, len(vecs))
	for i, vec := range vecs {
		cmps[i] = New(vec)
	}
	return cmps
}

// EqualElement is the one-shot form of New(vec).Eq(a, b).
func EqualElement(vec *vector.Vector, a, b uint32) bool {
	return New(vec).Eq(a, b)
}

type fixedEq[T types.FixedSizeT] struct {
	col []T
	nsp *nulls.Nulls
}

func newFixedEq[T types.FixedSizeT](vec *vector.Vector) *fixedEq[T] {
	return &fixedEq[T]{col: vector.MustFixedCol[T](vec), nsp: vec.GetNulls()}
}

func (c *fixedEq[T]) Eq(a, b uint32) bool {
	if na, nb := nulls.Contains(c.nsp, a), nulls.Contains(c.nsp, b); na || nb {
		return na && nb
	}
	return c.col[a] == c.col[b]
}

// floatEq compares by bit pattern, the relation the row hasher groups by:
// identical-bit NaNs are equal, +0.0 and -0.0 are not. Plain == would let
// rows hash equal but never compare equal, leaving NaN rows in singleton
// groups at the end of ever-longer probe chains.
type floatEq[T float32 | float64] struct {
	col []T
	nsp *nulls.Nulls
}

func newFloatEq[T float32 | float64](vec *vector.Vector) *floatEq[T] {
	return &floatEq[T]{col: vector.MustFixedCol[T](vec), nsp: vec.GetNulls()}
}

func (c *floatEq[T]) Eq(a, b uint32) bool {
	if na, nb := nulls.Contains(c.nsp, a), nulls.Contains(c.nsp, b); na || nb {
		return na && nb
	}
	return types.AsUint64(c.col[a]) == types.AsUint64(c.col[b])
}

type bytesEq struct {
	col [][]byte
	nsp *nulls.Nulls
}

func (c *bytesEq) Eq(a, b uint32) bool {
	if na, nb := nulls.Contains(c.nsp, a), nulls.Contains(c.nsp, b); na || nb {
		return na && nb
	}
	return bytes.Equal(c.col[a], c.col[b])
}
