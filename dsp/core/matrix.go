package core

import (
	"errors"
	"fmt"
)

// ErrShape indicates inconsistent matrix dimensions.
var ErrShape = errors.New("core: inconsistent matrix shape")

// Matrix is a dense row-major sample matrix. Rows are time-ordered samples,
// columns are independent channels. A Matrix may have zero rows.
type Matrix struct {
	rows, cols int
	data       []float64
}

// NewMatrix returns a zero-filled rows x cols matrix.
// Negative dimensions are treated as zero.
func NewMatrix(rows, cols int) *Matrix {
	rows = max(rows, 0)
	cols = max(cols, 0)

	return &Matrix{rows: rows, cols: cols, data: make([]float64, rows*cols)}
}

// NewMatrixFrom wraps row-major data without copying.
func NewMatrixFrom(rows, cols int, data []float64) (*Matrix, error) {
	if rows < 0 || cols < 0 || len(data) != rows*cols {
		return nil, fmt.Errorf("%w: %dx%d with %d values", ErrShape, rows, cols, len(data))
	}

	return &Matrix{rows: rows, cols: cols, data: data}, nil
}

// FromRows builds a matrix by copying rows. All rows must share one length.
func FromRows(rows [][]float64) (*Matrix, error) {
	if len(rows) == 0 {
		return NewMatrix(0, 0), nil
	}

	cols := len(rows[0])
	m := NewMatrix(len(rows), cols)

	for i, r := range rows {
		if len(r) != cols {
			return nil, fmt.Errorf("%w: row %d has %d values, want %d", ErrShape, i, len(r), cols)
		}

		copy(m.data[i*cols:], r)
	}

	return m, nil
}

// FromColumns builds a matrix by copying channel columns. All columns must
// share one length.
func FromColumns(columns ...[]float64) (*Matrix, error) {
	if len(columns) == 0 {
		return NewMatrix(0, 0), nil
	}

	rows := len(columns[0])
	m := NewMatrix(rows, len(columns))

	for j, c := range columns {
		if len(c) != rows {
			return nil, fmt.Errorf("%w: column %d has %d values, want %d", ErrShape, j, len(c), rows)
		}

		m.SetColumn(j, c)
	}

	return m, nil
}

// Rows returns the number of samples.
func (m *Matrix) Rows() int { return m.rows }

// Cols returns the number of channels.
func (m *Matrix) Cols() int { return m.cols }

// Dims returns rows and columns.
func (m *Matrix) Dims() (int, int) { return m.rows, m.cols }

// At returns the value at row i, column j.
func (m *Matrix) At(i, j int) float64 {
	return m.data[i*m.cols+j]
}

// Set stores v at row i, column j.
func (m *Matrix) Set(i, j int, v float64) {
	m.data[i*m.cols+j] = v
}

// RawRow returns row i as a view into the backing data.
func (m *Matrix) RawRow(i int) []float64 {
	return m.data[i*m.cols : (i+1)*m.cols : (i+1)*m.cols]
}

// RawData returns the row-major backing slice.
func (m *Matrix) RawData() []float64 { return m.data }

// Column copies channel j into a new slice.
func (m *Matrix) Column(j int) []float64 {
	return m.ColumnInto(nil, j)
}

// ColumnInto copies channel j into dst, growing it when needed, and returns it.
func (m *Matrix) ColumnInto(dst []float64, j int) []float64 {
	dst = EnsureLen(dst, m.rows)
	for i := range m.rows {
		dst[i] = m.data[i*m.cols+j]
	}

	return dst
}

// SetColumn overwrites channel j with v. len(v) must equal Rows.
func (m *Matrix) SetColumn(j int, v []float64) {
	v = v[:m.rows]
	for i := range m.rows {
		m.data[i*m.cols+j] = v[i]
	}
}

// Clone returns a deep copy.
func (m *Matrix) Clone() *Matrix {
	data := make([]float64, len(m.data))
	copy(data, m.data)

	return &Matrix{rows: m.rows, cols: m.cols, data: data}
}

// Equal reports whether both matrices have the same shape and values.
func (m *Matrix) Equal(o *Matrix) bool {
	if m == nil || o == nil {
		return m == o
	}

	if m.rows != o.rows || m.cols != o.cols {
		return false
	}

	for i, v := range m.data {
		if o.data[i] != v {
			return false
		}
	}

	return true
}
