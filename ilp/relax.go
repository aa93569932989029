// Copyright 2010-2025 Google LLC
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ilp

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"
)

// simplex is replaced in tests.
var simplex = lp.Simplex

type relaxStatus int

const (
	relaxOptimal relaxStatus = iota
	relaxInfeasible
	relaxUnbounded
	// relaxFailed means the LP could not be solved, e.g. lp.ErrBland or lp.ErrSingular on a
	// degenerate node. The node has no bound and must be split without one.
	relaxFailed
)

// relaxation is the result of solving the continuous relaxation of a node.
type relaxation struct {
	status relaxStatus
	// value is `cost . x`, without the objective offset.
	value float64
	x     []float64
	// err is set when status is relaxFailed.
	err error
}

// row is one equality `coeffs . y (+/- slack) = rhs` of the standard form, over free columns.
type row struct {
	cols   []int
	coeffs []float64
	slack  float64 // +1 for <=, -1 for >=, 0 for equality.
	rhs    float64
}

// relax solves `min cost . x` subject to the constraints of `m` and `lo <= x <= hi`, with x
// continuous.
//
// Variables with lo == hi are substituted by their value. Every other variable is shifted to
// y = x - lo so that the problem can be given to lp.Simplex in standard form `A z = b, z >= 0`,
// where z holds y, one slack per inequality row, and one slack per bound row `y + t = hi - lo`.
func relax(m *Model, cost []float64, lo, hi []int64, tol float64) relaxation {
	n := len(m.Variables)
	col := make([]int, n)
	var free []int
	x := make([]float64, n)
	value := 0.0
	for j := 0; j < n; j++ {
		if lo[j] > hi[j] {
			return relaxation{status: relaxInfeasible}
		}
		col[j] = -1
		if lo[j] < hi[j] {
			col[j] = len(free)
			free = append(free, j)
		}
		x[j] = float64(lo[j])
		value += cost[j] * float64(lo[j])
	}

	var rows []row
	for _, ct := range m.Constraints {
		shift := 0.0
		var r row
		for i, v := range ct.Vars {
			shift += ct.Coeffs[i] * float64(lo[v])
			if c := col[v]; c >= 0 {
				r.cols = append(r.cols, c)
				r.coeffs = append(r.coeffs, ct.Coeffs[i])
			}
		}
		lb, ub := ct.LowerBound-shift, ct.UpperBound-shift
		if len(r.cols) == 0 {
			if lb > tol || ub < -tol {
				return relaxation{status: relaxInfeasible}
			}
			continue
		}
		switch {
		case lb == ub:
			r.rhs = ub
			rows = append(rows, r)
		default:
			if !math.IsInf(ub, 1) {
				le := r
				le.slack, le.rhs = 1, ub
				rows = append(rows, le)
			}
			if !math.IsInf(lb, -1) {
				ge := r
				ge.slack, ge.rhs = -1, lb
				rows = append(rows, ge)
			}
		}
	}

	k := len(free)
	if k == 0 {
		return relaxation{status: relaxOptimal, value: value, x: x}
	}

	slacks := 0
	for _, r := range rows {
		if r.slack != 0 {
			slacks++
		}
	}
	numRows := len(rows) + k
	numCols := 2*k + slacks
	if numRows > numCols {
		return relaxation{status: relaxFailed, err: fmt.Errorf("relaxation has %d rows for %d columns: too many equality constraints", numRows, numCols)}
	}

	// Rows are negated where needed so that b >= 0. When every row then has a +1 slack, the
	// slack columns form an identity basis that is feasible for `A z = b`.
	a := mat.NewDense(numRows, numCols, nil)
	b := make([]float64, numRows)
	basic := make([]int, numRows)
	hasBasis := true
	slackCol := k
	for i, r := range rows {
		sign := 1.0
		if r.rhs < 0 {
			sign = -1
		}
		for p, c := range r.cols {
			a.Set(i, c, a.At(i, c)+sign*r.coeffs[p])
		}
		b[i] = sign * r.rhs
		switch {
		case r.slack == 0:
			hasBasis = false
		case sign*r.slack > 0:
			a.Set(i, slackCol, 1)
			basic[i] = slackCol
			slackCol++
		default:
			a.Set(i, slackCol, -1)
			hasBasis = false
			slackCol++
		}
	}
	for c, j := range free {
		i := len(rows) + c
		a.Set(i, c, 1)
		a.Set(i, k+slacks+c, 1)
		b[i] = float64(hi[j] - lo[j])
		basic[i] = k + slacks + c
	}
	var initialBasic []int
	if hasBasis {
		initialBasic = basic
	}

	cz := make([]float64, numCols)
	for c, j := range free {
		cz[c] = cost[j]
	}

	opt, z, err := simplex(cz, a, b, 0, initialBasic)
	switch {
	case errors.Is(err, lp.ErrInfeasible):
		return relaxation{status: relaxInfeasible}
	case errors.Is(err, lp.ErrUnbounded):
		return relaxation{status: relaxUnbounded}
	case err != nil:
		return relaxation{status: relaxFailed, err: fmt.Errorf("solving LP relaxation: %w", err)}
	}

	for c, j := range free {
		x[j] += z[c]
	}
	return relaxation{status: relaxOptimal, value: value + opt, x: x}
}

// domainBound returns the minimum of `cost . x` over `lo <= x <= hi`, ignoring constraints.
func domainBound(cost []float64, lo, hi []int64) float64 {
	bound := 0.0
	for j, c := range cost {
		bound += math.Min(c*float64(lo[j]), c*float64(hi[j]))
	}
	return bound
}
