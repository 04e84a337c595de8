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

package types

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTypeSize(t *testing.T) {
	require.Equal(t, 1, New(T_int8).TypeSize())
	require.Equal(t, 4, New(T_float32).TypeSize())
	require.Equal(t, 8, New(T_datetime).TypeSize())
	require.Equal(t, -1, New(T_varchar).TypeSize())
	require.True(t, New(T_char).IsVarlen())
	require.False(t, New(T_uint64).IsVarlen())
}

func TestAsUint64Injective(t *testing.T) {
	require.Equal(t, uint64(0xff), AsUint64(uint8(0xff)))
	require.NotEqual(t, AsUint64(int8(-1)), AsUint64(int8(1)))
	require.Equal(t, AsUint64(int64(-1)), AsUint64(int64(-1)))

	require.Equal(t, uint64(math.Float64bits(1.5)), AsUint64(1.5))
	require.NotEqual(t, AsUint64(float32(1.5)), AsUint64(float32(-1.5)))
	// Positive and negative zero carry different bits, on purpose: the
	// grouping engine groups by bit pattern.
	require.NotEqual(t, AsUint64(math.Copysign(0, -1)), AsUint64(0.0))
}
