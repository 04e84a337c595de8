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

// Package hashing turns the key columns of a table into one 64-bit hash
// per row, and assigns hashed rows to worker partitions.
package hashing

import (
	"github.com/columnkit/columnkit/pkg/common/moerr"
	"github.com/columnkit/columnkit/pkg/common/worker"
	"github.com/columnkit/columnkit/pkg/container/batch"
	"github.com/columnkit/columnkit/pkg/container/hashtable"
	"github.com/columnkit/columnkit/pkg/container/nulls"
	"github.com/columnkit/columnkit/pkg/container/types"
	"github.com/columnkit/columnkit/pkg/container/vector"
)

// nullMarker replaces the element hash of a null row so that nulls fold
// into one group per key combination.
const nullMarker uint64 = 0x9e3779b97f4a7c15

// HashRows computes one combined hash per row over all key columns,
// column by column. The same seed always yields the same hashes. It is the
// engine's one fallible entry point: structurally incompatible columns
// (no columns, mismatched lengths) surface as an error, not a panic.
func HashRows(vecs []*vector.Vector, seed uint64) ([]uint64, error) {
	if err := validate(vecs); err != nil {
		return nil, err
	}
	out := make([]uint64, vecs[0].Length())
	hashRowsInto(vecs, seed, out)
	return out, nil
}

// HashRowsThreaded splits the key columns into nChunks row-aligned chunks
// and hashes them on the worker pool. The output is indexed by global row
// order, not chunk-local order.
func HashRowsThreaded(bat *batch.Batch, nChunks int, seed uint64) ([]uint64, error) {
	if err := validate(bat.Vecs); err != nil {
		return nil, err
	}
	if nChunks <= 1 {
		return HashRows(bat.Vecs, seed)
	}

	chunks, err := batch.Split(bat, nChunks)
	if err != nil {
		return nil, err
	}

	out := make([]uint64, bat.RowCount())
	offsets := make([]int, len(chunks))
	for i, off := 0, 0; i < len(chunks); i++ {
		offsets[i] = off
		off += chunks[i].RowCount()
	}

	worker.RunParallel(len(chunks), func(i int) {
		off := offsets[i]
		hashRowsInto(chunks[i].Vecs, seed, out[off:off+chunks[i].RowCount()])
	})
	return out, nil
}

func validate(vecs []*vector.Vector) error {
	if len(vecs) == 0 {
		return moerr.NewInvalidInput("hash rows: no key columns")
	}
	n := vecs[0].Length()
	for i, vec := range vecs {
		if vec.Length() != n {
			return moerr.NewInvalidInput(
				"hash rows: key column %d has %d rows, want %d", i, vec.Length(), n)
		}
	}
	return nil
}

// hashRowsInto accumulates per-column element hashes into out. The first
// column seeds the accumulator; later columns are folded in, so the result
// reflects the full composite key.
func hashRowsInto(vecs []*vector.Vector, seed uint64, out []uint64) {
	for i := range out {
		out[i] = seed
	}
	for _, vec := range vecs {
		hashColumn(vec, seed, out)
	}
}

func hashColumn(vec *vector.Vector, seed uint64, out []uint64) {
	if vec.GetType().IsVarlen() {
		col := vector.MustBytesCol(vec)
		nsp := vec.GetNulls()
		for i := range out {
			h := nullMarker
			if !nulls.Contains(nsp, uint32(i)) {
				h = hashtable.BytesHash(col[i], seed)
			}
			out[i] = hashtable.CombineHash(out[i], h)
		}
		return
	}

	switch vec.GetType().Oid {
	case types.T_bool:
		col := vector.MustFixedCol[bool](vec)
		nsp := vec.GetNulls()
		for i := range out {
			h := nullMarker
			if !nulls.Contains(nsp, uint32(i)) {
				var x uint64
				if col[i] {
					x = 1
				}
				h = hashtable.Int64Hash(x, seed)
			}
			out[i] = hashtable.CombineHash(out[i], h)
		}
	case types.T_int8:
		hashFixedColumn(vector.MustFixedCol[int8](vec), vec.GetNulls(), seed, out)
	case types.T_int16:
		hashFixedColumn(vector.MustFixedCol[int16](vec), vec.GetNulls(), seed, out)
	case types.T_int32, types.T_date:
		hashFixedColumn(vector.MustFixedCol[int32](vec), vec.GetNulls(), seed, out)
	case types.T_int64, types.T_datetime:
		hashFixedColumn(vector.MustFixedCol[int64](vec), vec.GetNulls(), seed, out)
	case types.T_uint8:
		hashFixedColumn(vector.MustFixedCol[uint8](vec), vec.GetNulls(), seed, out)
	case types.T_uint16:
		hashFixedColumn(vector.MustFixedCol[uint16](vec), vec.GetNulls(), seed, out)
	case types.T_uint32:
		hashFixedColumn(vector.MustFixedCol[uint32](vec), vec.GetNulls(), seed, out)
	case types.T_uint64:
		hashFixedColumn(vector.MustFixedCol[uint64](vec), vec.GetNulls(), seed, out)
	case types.T_float32:
		hashFixedColumn(vector.MustFixedCol[float32](vec), vec.GetNulls(), seed, out)
	case types.T_float64:
		hashFixedColumn(vector.MustFixedCol[float64](vec), vec.GetNulls(), seed, out)
	default:
		panic(moerr.NewNYI("hash column of type %s", vec.GetType()))
	}
}

func hashFixedColumn[T types.Number](col []T, nsp *nulls.Nulls, seed uint64, out []uint64) {
	if !nulls.Any(nsp) {
		for i := range out {
			out[i] = hashtable.CombineHash(out[i], hashtable.Int64Hash(types.AsUint64(col[i]), seed))
		}
		return
	}
	for i := range out {
		h := nullMarker
		if !nulls.Contains(nsp, uint32(i)) {
			h = hashtable.Int64Hash(types.AsUint64(col[i]), seed)
		}
		out[i] = hashtable.CombineHash(out[i], h)
	}
}
