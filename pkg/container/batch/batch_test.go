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

package batch

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/columnkit/columnkit/pkg/container/types"
	"github.com/columnkit/columnkit/pkg/container/vector"
)

func testBatch(t *testing.T, rows int) *Batch {
	iv := vector.NewVec(types.New(types.T_int64))
	sv := vector.NewVec(types.New(types.T_varchar))
	for i := 0; i < rows; i++ {
		require.NoError(t, vector.AppendFixed(iv, int64(i), false))
		require.NoError(t, vector.AppendBytes(sv, []byte{byte('a' + i%3)}, false))
	}
	return NewWithVectors([]*vector.Vector{iv, sv})
}

func TestSplitCoversAllRows(t *testing.T) {
	for _, rows := range []int{0, 1, 9, 10, 11} {
		bat := testBatch(t, rows)
		chunks, err := Split(bat, 4)
		require.NoError(t, err)
		require.Len(t, chunks, 4)

		total := 0
		next := int64(0)
		for _, c := range chunks {
			require.True(t, c.Aligned())
			col := vector.MustFixedCol[int64](c.GetVector(0))
			for _, v := range col {
				require.Equal(t, next, v, "rows must stay in global order")
				next++
			}
			total += c.RowCount()
		}
		require.Equal(t, rows, total)
	}
}

func TestSplitErrors(t *testing.T) {
	bat := testBatch(t, 5)
	_, err := Split(bat, 0)
	require.Error(t, err)

	short := vector.NewVec(types.New(types.T_int64))
	require.NoError(t, vector.AppendFixed(short, int64(1), false))
	bad := NewWithVectors([]*vector.Vector{bat.GetVector(0), short})
	require.False(t, bad.Aligned())
	_, err = Split(bad, 2)
	require.Error(t, err)
}

func TestWindow(t *testing.T) {
	bat := testBatch(t, 6)
	w := bat.Window(2, 5)
	require.Equal(t, 3, w.RowCount())
	require.Equal(t, []int64{2, 3, 4}, vector.MustFixedCol[int64](w.GetVector(0)))
}

func TestEmptyBatch(t *testing.T) {
	bat := NewWithVectors(nil)
	require.Equal(t, 0, bat.RowCount())
	require.True(t, bat.Aligned())
}
