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

package vector

import (
	"fmt"

	"github.com/columnkit/columnkit/pkg/common/moerr"
	"github.com/columnkit/columnkit/pkg/container/nulls"
	"github.com/columnkit/columnkit/pkg/container/types"
)

// Vector represents one column. Fixed-width types keep their elements in a
// typed slice behind col; varlen types keep one byte slice per row.
type Vector struct {
	typ types.Type
	nsp *nulls.Nulls

	// col is []T for fixed-width T, [][]byte for varlen.
	col any

	length int
}

func NewVec(typ types.Type) *Vector {
	return &Vector{
		typ: typ,
		nsp: &nulls.Nulls{},
	}
}

func (v *Vector) Length() int {
	return v.length
}

func (v *Vector) GetType() types.Type {
	return v.typ
}

func (v *Vector) GetNulls() *nulls.Nulls {
	return v.nsp
}

func (v *Vector) SetNulls(nsp *nulls.Nulls) {
	v.nsp = nsp
}

// MustFixedCol gives the typed elements of a fixed-width vector.
func MustFixedCol[T types.FixedSizeT](v *Vector) []T {
	if v.col == nil {
		return nil
	}
	return v.col.([]T)
}

// MustBytesCol gives the per-row byte slices of a varlen vector.
func MustBytesCol(v *Vector) [][]byte {
	if v.col == nil {
		return nil
	}
	return v.col.([][]byte)
}

func (v *Vector) GetBytesAt(i int) []byte {
	return v.col.([][]byte)[i]
}

func (v *Vector) GetStringAt(i int) string {
	return string(v.col.([][]byte)[i])
}

// AppendFixed appends one element. A null row still occupies a slot so the
// column stays row-aligned.
func AppendFixed[T types.FixedSizeT](v *Vector, w T, isNull bool) error {
	if v.typ.IsVarlen() {
		return moerr.NewInternalError("append fixed value to %s vector", v.typ)
	}
	col, _ := v.col.([]T)
	if isNull {
		var zero T
		w = zero
		nulls.Add(v.nsp, uint32(v.length))
	}
	v.col = append(col, w)
	v.length++
	return nil
}

func AppendFixedList[T types.FixedSizeT](v *Vector, ws []T) error {
	for _, w := range ws {
		if err := AppendFixed(v, w, false); err != nil {
			return err
		}
	}
	return nil
}

func AppendBytes(v *Vector, w []byte, isNull bool) error {
	if !v.typ.IsVarlen() {
		return moerr.NewInternalError("append bytes to %s vector", v.typ)
	}
	col, _ := v.col.([][]byte)
	if isNull {
		w = nil
		nulls.Add(v.nsp, uint32(v.length))
	}
	v.col = append(col, w)
	v.length++
	return nil
}

func AppendBytesList(v *Vector, ws [][]byte) error {
	for _, w := range ws {
		if err := AppendBytes(v, w, false); err != nil {
			return err
		}
	}
	return nil
}

func AppendStringList(v *Vector, ws []string) error {
	for _, w := range ws {
		if err := AppendBytes(v, []byte(w), false); err != nil {
			return err
		}
	}
	return nil
}

// Window returns a zero-copy view of rows [start, end). The view shares the
// underlying storage; its nulls are rebased to the window.
func (v *Vector) Window(start, end int) *Vector {
	w := &Vector{
		typ:    v.typ,
		nsp:    &nulls.Nulls{},
		length: end - start,
	}
	nulls.Range(v.nsp, uint32(start), uint32(end), uint32(start), w.nsp)
	switch col := v.col.(type) {
	case nil:
	case [][]byte:
		w.col = col[start:end]
	default:
		w.col = windowFixed(v, start, end)
	}
	return w
}

func windowFixed(v *Vector, start, end int) any {
	switch col := v.col.(type) {
	case []bool:
		return col[start:end]
	case []int8:
		return col[start:end]
	case []int16:
		return col[start:end]
	case []int32:
		return col[start:end]
	case []int64:
		return col[start:end]
	case []uint8:
		return col[start:end]
	case []uint16:
		return col[start:end]
	case []uint32:
		return col[start:end]
	case []uint64:
		return col[start:end]
	case []float32:
		return col[start:end]
	case []float64:
		return col[start:end]
	}
	panic(fmt.Sprintf("unknown fixed column storage %T", v.col))
}

func (v *Vector) String() string {
	return fmt.Sprintf("%s-%v", v.typ, v.col)
}
