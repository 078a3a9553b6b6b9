// Copyright 2025 Lincoln Institute of Land Policy
// SPDX-License-Identifier: Apache-2.0

package correlation

import (
	"fmt"
	"math"

	"github.com/internetofwater/housing/pkg"

	"github.com/rocketlaunchr/dataframe-go"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// A square, symmetric matrix of correlation coefficients
// indexed by the numeric column names of a dataframe
type Matrix struct {
	Names  []string
	Values *mat.SymDense
}

// Dim is the number of features on each side of the matrix
func (m Matrix) Dim() int {
	return len(m.Names)
}

func (m Matrix) At(i, j int) float64 {
	return m.Values.At(i, j)
}

// Index returns the position of a feature or -1 if it is not in the matrix
func (m Matrix) Index(name string) int {
	for i, n := range m.Names {
		if n == name {
			return i
		}
	}
	return -1
}

// NumericColumns returns the numeric series of df in column order
func NumericColumns(df *dataframe.DataFrame) (names []string, columns [][]float64) {
	for _, series := range df.Series {
		switch s := series.(type) {
		case *dataframe.SeriesFloat64:
			names = append(names, s.Name())
			columns = append(columns, s.Values)
		case *dataframe.SeriesInt64:
			values := make([]float64, s.NRows())
			for i := range values {
				if v := s.Value(i); v == nil {
					values[i] = math.NaN()
				} else {
					values[i] = float64(v.(int64))
				}
			}
			names = append(names, s.Name())
			columns = append(columns, values)
		}
	}
	return names, columns
}

// Pearson computes the pairwise Pearson correlation of every numeric column.
// Each pair only uses rows where both values are present. The diagonal is 1
// unless the column is constant or has fewer than two values, in which case
// it is NaN like any other undefined coefficient
func Pearson(df *dataframe.DataFrame) (Matrix, error) {
	if df == nil {
		return Matrix{}, fmt.Errorf("%w: dataframe is nil", pkg.ErrDegenerateInput)
	}
	names, columns := NumericColumns(df)
	if len(names) == 0 {
		return Matrix{}, fmt.Errorf("%w: none of the %d columns are numeric", pkg.ErrDegenerateInput, len(df.Series))
	}

	k := len(names)
	values := mat.NewSymDense(k, nil)
	for i := 0; i < k; i++ {
		for j := i; j < k; j++ {
			r := pairwise(columns[i], columns[j])
			if i == j && !math.IsNaN(r) {
				r = 1
			}
			values.SetSym(i, j, r)
		}
	}
	return Matrix{Names: names, Values: values}, nil
}

func pairwise(x, y []float64) float64 {
	xs := make([]float64, 0, len(x))
	ys := make([]float64, 0, len(y))
	for i := range x {
		if math.IsNaN(x[i]) || math.IsNaN(y[i]) {
			continue
		}
		xs = append(xs, x[i])
		ys = append(ys, y[i])
	}
	if len(xs) < 2 || constant(xs) || constant(ys) {
		return math.NaN()
	}
	r := stat.Correlation(xs, ys, nil)
	// rounding can push a perfect correlation just past the bounds
	return math.Max(-1, math.Min(1, r))
}

func constant(values []float64) bool {
	for _, v := range values[1:] {
		if v != values[0] {
			return false
		}
	}
	return true
}
