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
	"github.com/columnkit/columnkit/pkg/common/moerr"
	"github.com/columnkit/columnkit/pkg/container/vector"
)

// Batch is an ordered set of row-aligned vectors. For the grouping engine
// it carries the key columns of one table.
type Batch struct {
	Attrs []string
	Vecs  []*vector.Vector
}

func New(attrs []string) *Batch {
	return &Batch{
		Attrs: attrs,
		Vecs:  make([]*vector.Vector, len(attrs)),
	}
}

func NewWithVectors(vecs []*vector.Vector) *Batch {
	return &Batch{Vecs: vecs}
}

func (bat *Batch) VectorCount() int {
	return len(bat.Vecs)
}

func (bat *Batch) GetVector(i int) *vector.Vector {
	return bat.Vecs[i]
}

func (bat *Batch) SetVector(i int, vec *vector.Vector) {
	bat.Vecs[i] = vec
}

// RowCount is the length of the first vector; Aligned reports whether all
// vectors agree on it.
func (bat *Batch) RowCount() int {
	if len(bat.Vecs) == 0 {
		return 0
	}
	return bat.Vecs[0].Length()
}

func (bat *Batch) Aligned() bool {
	n := bat.RowCount()
	for _, vec := range bat.Vecs {
		if vec.Length() != n {
			return false
		}
	}
	return true
}

// Window returns a zero-copy view of rows [start, end) of every vector.
func (bat *Batch) Window(start, end int) *Batch {
	w := &Batch{
		Attrs: bat.Attrs,
		Vecs:  make([]*vector.Vector, len(bat.Vecs)),
	}
	for i, vec := range bat.Vecs {
		w.Vecs[i] = vec.Window(start, end)
	}
	return w
}

// Split carves the batch into n roughly-equal row-aligned chunks. The last
// chunk takes the remainder. Chunks are zero-copy windows; their
// concatenation in order is the original batch.
func Split(bat *Batch, n int) ([]*Batch, error) {
	if n <= 0 {
		return nil, moerr.NewInvalidInput("split count %d must be positive", n)
	}
	if !bat.Aligned() {
		return nil, moerr.NewInvalidInput("cannot split batch with misaligned vectors")
	}
	rows := bat.RowCount()
	chunk := rows / n
	out := make([]*Batch, 0, n)
	for i := 0; i < n; i++ {
		start := i * chunk
		end := start + chunk
		if i == n-1 {
			end = rows
		}
		out = append(out, bat.Window(start, end))
	}
	return out, nil
}
