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
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/columnkit/columnkit/pkg/container/nulls"
	"github.com/columnkit/columnkit/pkg/container/types"
)

func TestAppendFixed(t *testing.T) {
	vec := NewVec(types.New(types.T_int64))
	require.NoError(t, AppendFixedList(vec, []int64{3, 1, 4}))
	require.NoError(t, AppendFixed[int64](vec, 0, true))

	require.Equal(t, 4, vec.Length())
	require.Equal(t, []int64{3, 1, 4, 0}, MustFixedCol[int64](vec))
	require.True(t, nulls.Contains(vec.GetNulls(), 3))
	require.False(t, nulls.Contains(vec.GetNulls(), 0))
}

func TestAppendTypeMismatch(t *testing.T) {
	vec := NewVec(types.New(types.T_varchar))
	require.Error(t, AppendFixed[int64](vec, 1, false))

	iv := NewVec(types.New(types.T_int32))
	require.Error(t, AppendBytes(iv, []byte("x"), false))
}

func TestAppendBytes(t *testing.T) {
	vec := NewVec(types.New(types.T_varchar))
	require.NoError(t, AppendStringList(vec, []string{"foo", ""}))
	require.NoError(t, AppendBytes(vec, nil, true))

	require.Equal(t, 3, vec.Length())
	require.Equal(t, "foo", vec.GetStringAt(0))
	require.Equal(t, []byte(""), append([]byte{}, vec.GetBytesAt(1)...))
	require.True(t, nulls.Contains(vec.GetNulls(), 2))
}

func TestWindowFixed(t *testing.T) {
	vec := NewVec(types.New(types.T_int32))
	require.NoError(t, AppendFixedList(vec, []int32{0, 1, 2, 3, 4, 5}))
	require.NoError(t, AppendFixed[int32](vec, 0, true)) // row 6

	w := vec.Window(4, 7)
	require.Equal(t, 3, w.Length())
	require.Equal(t, []int32{4, 5, 0}, MustFixedCol[int32](w))
	// Nulls are rebased to the window.
	require.True(t, nulls.Contains(w.GetNulls(), 2))
	require.False(t, nulls.Contains(w.GetNulls(), 0))
	// The source keeps its own numbering.
	require.True(t, nulls.Contains(vec.GetNulls(), 6))
}

func TestWindowBytes(t *testing.T) {
	vec := NewVec(types.New(types.T_varchar))
	require.NoError(t, AppendStringList(vec, []string{"a", "b", "c", "d"}))

	w := vec.Window(1, 3)
	require.Equal(t, 2, w.Length())
	require.Equal(t, "b", w.GetStringAt(0))
	require.Equal(t, "c", w.GetStringAt(1))
}

func TestWindowEmptyVector(t *testing.T) {
	vec := NewVec(types.New(types.T_int64))
	w := vec.Window(0, 0)
	require.Equal(t, 0, w.Length())
}
