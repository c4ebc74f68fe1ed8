package core

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// ErrRagged is returned when nested rows do not share a length.
var ErrRagged = errors.New("rows have different lengths")

// Matrix is a row-major numeric table of R observations by C dimensions.
type Matrix struct {
	R, C int
	Data []float64
}

// New Matrix Allocates Zero Matrix
func NewMatrix(r, c int) *Matrix {
	return &Matrix{R: r, C: c, Data: make([]float64, r*c)}
}

// FromSlice creates a Matrix from a nested slice (copies data).
func FromSlice(a [][]float64) (*Matrix, error) {
	r := len(a)
	if r == 0 {
		return &Matrix{}, nil
	}

	c := len(a[0])
	m := NewMatrix(r, c)
	for i, row := range a {
		if len(row) != c {
			return nil, fmt.Errorf("row %d has %d columns, want %d: %w", i, len(row), c, ErrRagged)
		}
		copy(m.Data[i*c:(i+1)*c], row)
	}
	return m, nil
}

// FromVector wraps a 1-D series as an (n,1) column table (copies data).
func FromVector(x []float64) *Matrix {
	m := NewMatrix(len(x), 1)
	copy(m.Data, x)
	return m
}

// FromDense copies a gonum matrix.
func FromDense(d mat.Matrix) *Matrix {
	r, c := d.Dims()
	m := NewMatrix(r, c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			m.Data[i*c+j] = d.At(i, j)
		}
	}
	return m
}

// Dense returns a gonum copy of the matrix. An empty matrix yields nil
// since gonum does not allow zero-sized dense matrices.
func (m *Matrix) Dense() *mat.Dense {
	if m.R == 0 || m.C == 0 {
		return nil
	}
	data := make([]float64, len(m.Data))
	copy(data, m.Data)
	return mat.NewDense(m.R, m.C, data)
}

// At returns element (i, j)
func (m *Matrix) At(i, j int) float64 { return m.Data[i*m.C+j] }

// Set sets element (i, j)
func (m *Matrix) Set(i, j int, v float64) { m.Data[i*m.C+j] = v }

// Clone Deep Copies of Matrix
func (m *Matrix) Clone() *Matrix {
	n := &Matrix{R: m.R, C: m.C, Data: make([]float64, len(m.Data))}
	copy(n.Data, m.Data)
	return n
}

// Row returns row i without copying. Callers must not write through it.
func (m *Matrix) Row(i int) []float64 { return m.Data[i*m.C : (i+1)*m.C : (i+1)*m.C] }

// Rows returns a view of rows [start, end) sharing the backing array.
func (m *Matrix) Rows(start, end int) *Matrix {
	return &Matrix{R: end - start, C: m.C, Data: m.Data[start*m.C : end*m.C : end*m.C]}
}

// Col returns a copy of column j.
func (m *Matrix) Col(j int) []float64 {
	v := make([]float64, m.R)
	for i := 0; i < m.R; i++ {
		v[i] = m.Data[i*m.C+j]
	}
	return v
}

// ToSlice returns the table as freshly allocated nested rows.
func (m *Matrix) ToSlice() [][]float64 {
	out := make([][]float64, m.R)
	for i := range out {
		out[i] = make([]float64, m.C)
		copy(out[i], m.Row(i))
	}
	return out
}

// Flatten returns a copy of the row-major data.
func (m *Matrix) Flatten() []float64 {
	out := make([]float64, len(m.Data))
	copy(out, m.Data)
	return out
}

// Drop returns a new matrix without the rows whose mask entry is true.
// The mask must have exactly R entries.
func (m *Matrix) Drop(mask []bool) *Matrix {
	kept := 0
	for _, out := range mask {
		if !out {
			kept++
		}
	}
	n := NewMatrix(kept, m.C)
	k := 0
	for i, out := range mask {
		if out {
			continue
		}
		copy(n.Data[k*m.C:(k+1)*m.C], m.Row(i))
		k++
	}
	return n
}
