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

package nulls

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAddContains(t *testing.T) {
	nsp := &Nulls{}
	require.False(t, Any(nsp))
	require.False(t, Contains(nsp, 0))

	Add(nsp, 3, 5)
	require.True(t, Any(nsp))
	require.True(t, Contains(nsp, 3))
	require.True(t, Contains(nsp, 5))
	require.False(t, Contains(nsp, 4))
	require.Equal(t, 2, Size(nsp))
}

func TestNilSafety(t *testing.T) {
	var nsp *Nulls
	require.False(t, Any(nsp))
	require.False(t, Contains(nsp, 1))
	require.Equal(t, 0, Size(nsp))
	require.Nil(t, nsp.Clone())
}

func TestRange(t *testing.T) {
	nsp := &Nulls{}
	Add(nsp, 1, 4, 9)

	m := &Nulls{}
	Range(nsp, 2, 8, 2, m)
	require.False(t, Contains(m, 1-2+2)) // row 1 is before the window
	require.True(t, Contains(m, 2))      // row 4 rebased by 2
	require.False(t, Contains(m, 7))     // row 9 is past the window
	require.Equal(t, 1, Size(m))
}

func TestClone(t *testing.T) {
	nsp := &Nulls{}
	Add(nsp, 7)
	c := nsp.Clone()
	Add(c, 8)
	require.True(t, Contains(c, 7))
	require.True(t, Contains(c, 8))
	require.False(t, Contains(nsp, 8))
}
