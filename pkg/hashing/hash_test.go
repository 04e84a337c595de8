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

package hashing

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/columnkit/columnkit/pkg/common/moerr"
	"github.com/columnkit/columnkit/pkg/container/batch"
	"github.com/columnkit/columnkit/pkg/container/types"
	"github.com/columnkit/columnkit/pkg/container/vector"
)

func TestOwnsAssignsExactlyOneWorker(t *testing.T) {
	for _, n := range []uint64{1, 2, 8, 64} {
		for h := uint64(0); h < 1000; h++ {
			owners := 0
			for w := uint64(0); w < n; w++ {
				if Owns(h*0x9e3779b97f4a7c15, w, n) {
					owners++
				}
			}
			require.Equal(t, 1, owners, "hash must belong to exactly one of %d workers", n)
		}
	}
}

func TestOwnsUsesLowBits(t *testing.T) {
	// Partition choice must ignore everything above the mask.
	require.True(t, Owns(0b1010_0110, 0b0110, 16))
	require.True(t, Owns(0b1111_0110, 0b0110, 16))
	require.False(t, Owns(0b0110, 0b0111, 16))
}

func TestMustPowerOfTwo(t *testing.T) {
	require.Panics(t, func() { MustPowerOfTwo(3) })
	require.Panics(t, func() { MustPowerOfTwo(0) })
	require.Panics(t, func() { MustPowerOfTwo(12) })
	for _, n := range []uint64{1, 2, 64, 1 << 40} {
		require.NotPanics(t, func() { MustPowerOfTwo(n) })
	}
}

func newKeyBatch(t *testing.T, ss []string, is []int64) *batch.Batch {
	sv := vector.NewVec(types.New(types.T_varchar))
	require.NoError(t, vector.AppendStringList(sv, ss))
	iv := vector.NewVec(types.New(types.T_int64))
	require.NoError(t, vector.AppendFixedList(iv, is))
	return batch.NewWithVectors([]*vector.Vector{sv, iv})
}

func TestHashRowsDeterministicPerSeed(t *testing.T) {
	bat := newKeyBatch(t,
		[]string{"a", "a", "b", "longer key that spills past sixteen bytes"},
		[]int64{1, 1, 1, 2})

	h1, err := HashRows(bat.Vecs, 42)
	require.NoError(t, err)
	h2, err := HashRows(bat.Vecs, 42)
	require.NoError(t, err)
	require.Equal(t, h1, h2)

	h3, err := HashRows(bat.Vecs, 43)
	require.NoError(t, err)
	require.NotEqual(t, h1, h3)

	// Equal composite keys hash equal; the engine relies on nothing more.
	require.Equal(t, h1[0], h1[1])
	require.NotEqual(t, h1[1], h1[2])
}

func TestHashRowsShapeErrors(t *testing.T) {
	_, err := HashRows(nil, 0)
	require.True(t, moerr.IsMoErrCode(err, moerr.ErrInvalidInput))

	sv := vector.NewVec(types.New(types.T_varchar))
	require.NoError(t, vector.AppendStringList(sv, []string{"a", "b"}))
	iv := vector.NewVec(types.New(types.T_int64))
	require.NoError(t, vector.AppendFixedList(iv, []int64{1, 2, 3}))
	_, err = HashRows([]*vector.Vector{sv, iv}, 0)
	require.True(t, moerr.IsMoErrCode(err, moerr.ErrInvalidInput))
}

func TestHashRowsNullMarker(t *testing.T) {
	vec := vector.NewVec(types.New(types.T_int64))
	require.NoError(t, vector.AppendFixed[int64](vec, 5, false))
	require.NoError(t, vector.AppendFixed[int64](vec, 0, true))
	require.NoError(t, vector.AppendFixed[int64](vec, 0, true))
	require.NoError(t, vector.AppendFixed[int64](vec, 0, false))

	hs, err := HashRows([]*vector.Vector{vec}, 0)
	require.NoError(t, err)
	require.Equal(t, hs[1], hs[2])
	require.NotEqual(t, hs[1], hs[3], "null must not hash like zero")
}

// Threaded hashing must be global-row-order-correct: identical to the
// sequential hash of the whole table, whatever the chunk count.
func TestHashRowsThreadedMatchesSequential(t *testing.T) {
	ss := make([]string, 1000)
	is := make([]int64, 1000)
	for i := range ss {
		ss[i] = string(rune('a' + i%7))
		is[i] = int64(i % 13)
	}
	bat := newKeyBatch(t, ss, is)

	want, err := HashRows(bat.Vecs, 7)
	require.NoError(t, err)
	for _, n := range []int{1, 2, 3, 8} {
		got, err := HashRowsThreaded(bat, n, 7)
		require.NoError(t, err)
		require.Equal(t, want, got, "nChunks=%d", n)
	}
}

func TestHashRowsAllTypes(t *testing.T) {
	mk := func(oid types.T, fill func(v *vector.Vector)) *vector.Vector {
		vec := vector.NewVec(types.New(oid))
		fill(vec)
		return vec
	}
	vecs := []*vector.Vector{
		mk(types.T_bool, func(v *vector.Vector) {
			require.NoError(t, vector.AppendFixedList(v, []bool{true, false, true}))
		}),
		mk(types.T_int8, func(v *vector.Vector) {
			require.NoError(t, vector.AppendFixedList(v, []int8{-1, 0, 1}))
		}),
		mk(types.T_uint16, func(v *vector.Vector) {
			require.NoError(t, vector.AppendFixedList(v, []uint16{1, 2, 3}))
		}),
		mk(types.T_float32, func(v *vector.Vector) {
			require.NoError(t, vector.AppendFixedList(v, []float32{1.5, 2.5, 3.5}))
		}),
		mk(types.T_float64, func(v *vector.Vector) {
			require.NoError(t, vector.AppendFixedList(v, []float64{-1.5, 0, 1.5}))
		}),
	}
	hs, err := HashRows(vecs, 0)
	require.NoError(t, err)
	require.Len(t, hs, 3)
	require.NotEqual(t, hs[0], hs[1])
}
