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
	"fmt"
	"math"
	"sync/atomic"
	"time"

	log "github.com/golang/glog"
)

const defaultTolerance = 1e-6

// Parameters controls the branch-and-bound search.
type Parameters struct {
	// MaxTime stops the search after the given wall time. Zero means no limit.
	MaxTime time.Duration
	// MaxNodes stops the search after the given number of explored nodes. Zero means no limit.
	MaxNodes int64
	// Tolerance is used for integrality, feasibility and pruning. Zero means 1e-6.
	Tolerance float64
	// LogSearchProgress logs every improving solution at info level.
	LogSearchProgress bool
}

func (p *Parameters) tolerance() float64 {
	if p == nil || p.Tolerance <= 0 {
		return defaultTolerance
	}
	return p.Tolerance
}

// Response is the result of a solve.
type Response struct {
	Status Status
	// ObjectiveValue is the objective of Solution, including the offset.
	ObjectiveValue float64
	// BestBound is the best proven bound on the objective.
	BestBound float64
	// Solution holds one value per model variable when Status.HasSolution().
	Solution []int64
	// NodeCount is the number of explored branch-and-bound nodes.
	NodeCount int64
	// WallTime is the time spent in the solve.
	WallTime time.Duration
	// SolutionInfo explains the status when the model is invalid or a limit was reached.
	SolutionInfo string
}

// SolveModel solves the model and returns a Response.
func SolveModel(m *Model) (*Response, error) {
	return SolveModelWithParameters(m, nil)
}

// SolveModelWithParameters solves the model with the given parameters and returns a Response.
func SolveModelWithParameters(m *Model, params *Parameters) (*Response, error) {
	return solve(m, params, nil)
}

// SolveModelInterruptibleWithParameters solves the model with the given parameters and returns a
// Response. The solve can be interrupted by triggering the `interrupt`; the response then holds
// the best solution found so far.
func SolveModelInterruptibleWithParameters(m *Model, params *Parameters, interrupt <-chan struct{}) (*Response, error) {
	var stop atomic.Bool

	solveDone := make(chan struct{})
	defer close(solveDone)
	// Wait for either the solve to finish or the solve to be interrupted.
	go func() {
		select {
		case <-interrupt:
			stop.Store(true)
		case <-solveDone:
		}
	}()

	// The goroutine above may not run before the search starts.
	select {
	case <-interrupt:
		stop.Store(true)
	default:
	}

	return solve(m, params, &stop)
}

// validateModel returns a non empty string explaining the issue if the model is invalid.
func validateModel(m *Model) string {
	n := VarIndex(len(m.Variables))
	for i, v := range m.Variables {
		if v.LowerBound > v.UpperBound {
			return fmt.Sprintf("variable #%d %q has empty domain [%d, %d]", i, v.Name, v.LowerBound, v.UpperBound)
		}
	}
	checkTerms := func(what string, vars []VarIndex, coeffs []float64) string {
		if len(vars) != len(coeffs) {
			return fmt.Sprintf("%s has %d variables and %d coefficients", what, len(vars), len(coeffs))
		}
		for i, v := range vars {
			if v < 0 || v >= n {
				return fmt.Sprintf("%s references unknown variable %d", what, v)
			}
			if math.IsNaN(coeffs[i]) || math.IsInf(coeffs[i], 0) {
				return fmt.Sprintf("%s has non-finite coefficient %v", what, coeffs[i])
			}
		}
		return ""
	}
	for i, ct := range m.Constraints {
		what := fmt.Sprintf("constraint #%d %q", i, ct.Name)
		if s := checkTerms(what, ct.Vars, ct.Coeffs); s != "" {
			return s
		}
		if math.IsNaN(ct.LowerBound) || math.IsNaN(ct.UpperBound) || ct.LowerBound > ct.UpperBound {
			return fmt.Sprintf("%s has invalid bounds [%v, %v]", what, ct.LowerBound, ct.UpperBound)
		}
	}
	if o := m.Objective; o != nil {
		if s := checkTerms("objective", o.Vars, o.Coeffs); s != "" {
			return s
		}
	}
	return ""
}

// isFeasible reports whether the integer assignment `x` satisfies every constraint of `m`.
func isFeasible(m *Model, x []int64, tol float64) bool {
	for j, v := range m.Variables {
		if x[j] < v.LowerBound || x[j] > v.UpperBound {
			return false
		}
	}
	for _, ct := range m.Constraints {
		act := 0.0
		for i, v := range ct.Vars {
			act += ct.Coeffs[i] * float64(x[v])
		}
		if act < ct.LowerBound-tol || act > ct.UpperBound+tol {
			return false
		}
	}
	return true
}

// mostFractional returns the variable whose relaxed value is farthest from an integer, or -1 if
// all are integral within `tol`.
func mostFractional(x []float64, tol float64) int {
	best, bestFrac := -1, tol
	for j, v := range x {
		f := math.Abs(v - math.Round(v))
		if f > bestFrac {
			best, bestFrac = j, f
		}
	}
	return best
}

// firstUnfixed returns the first variable with lo < hi, or -1 if all are fixed.
func firstUnfixed(lo, hi []int64) int {
	for j := range lo {
		if lo[j] < hi[j] {
			return j
		}
	}
	return -1
}

type node struct {
	lo, hi []int64
	// bound is a lower bound for this node: the relaxation value of the parent, or the domain
	// bound when the parent relaxation failed.
	bound float64
}

func solve(m *Model, params *Parameters, stop *atomic.Bool) (*Response, error) {
	start := time.Now()
	tol := params.tolerance()
	if s := validateModel(m); s != "" {
		return &Response{Status: StatusModelInvalid, SolutionInfo: s, WallTime: time.Since(start)}, nil
	}

	// The search always minimizes `cost . x`; a maximization objective is negated.
	n := len(m.Variables)
	cost := make([]float64, n)
	sense, offset := 1.0, 0.0
	if o := m.Objective; o != nil {
		if o.Maximize {
			sense = -1
		}
		offset = o.Offset
		for i, v := range o.Vars {
			cost[v] += sense * o.Coeffs[i]
		}
	}

	root := node{lo: make([]int64, n), hi: make([]int64, n), bound: math.Inf(-1)}
	for j, v := range m.Variables {
		root.lo[j], root.hi[j] = v.LowerBound, v.UpperBound
	}

	var (
		incumbent    []int64
		incumbentVal = math.Inf(1)
		nodes        int64
		limit        string
		stack        = []node{root}
	)
	for len(stack) > 0 {
		switch {
		case stop != nil && stop.Load():
			limit = "interrupted"
		case params != nil && params.MaxNodes > 0 && nodes >= params.MaxNodes:
			limit = fmt.Sprintf("node limit %d reached", params.MaxNodes)
		case params != nil && params.MaxTime > 0 && time.Since(start) >= params.MaxTime:
			limit = fmt.Sprintf("time limit %v reached", params.MaxTime)
		}
		if limit != "" {
			break
		}

		nd := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if nd.bound >= incumbentVal-tol {
			continue
		}
		nodes++

		rel := relax(m, cost, nd.lo, nd.hi, tol)
		switch rel.status {
		case relaxInfeasible:
			continue
		case relaxUnbounded:
			// Bounds are finite, so this only happens when the LP solver fails to see them.
			return &Response{Status: StatusUnbounded, NodeCount: nodes, WallTime: time.Since(start)}, nil
		case relaxFailed:
			// Without an LP bound the node is split on its first unfixed variable, which ends in
			// enumeration in the worst case.
			bound := math.Max(nd.bound, domainBound(cost, nd.lo, nd.hi))
			if bound >= incumbentVal-tol {
				continue
			}
			j := firstUnfixed(nd.lo, nd.hi)
			log.V(1).Infof("node %d: %v, splitting variable %d without a bound", nodes, rel.err, j)
			mid := nd.lo[j] + (nd.hi[j]-nd.lo[j])/2
			down := node{lo: nd.lo, hi: append([]int64(nil), nd.hi...), bound: bound}
			down.hi[j] = mid
			up := node{lo: append([]int64(nil), nd.lo...), hi: nd.hi, bound: bound}
			up.lo[j] = mid + 1
			stack = append(stack, down, up)
			continue
		}
		if rel.value >= incumbentVal-tol {
			continue
		}

		j := mostFractional(rel.x, tol)
		if j < 0 {
			sol := make([]int64, n)
			for k, v := range rel.x {
				sol[k] = int64(math.Round(v))
			}
			if !isFeasible(m, sol, tol) {
				log.Warningf("node %d: rounded relaxation is not feasible, dropping it", nodes)
				continue
			}
			val := 0.0
			for k, v := range sol {
				val += cost[k] * float64(v)
			}
			if val < incumbentVal {
				incumbent, incumbentVal = sol, val
				if params != nil && params.LogSearchProgress {
					log.Infof("#%d solution objective=%v elapsed=%v", nodes, sense*val+offset, time.Since(start))
				}
			}
			continue
		}

		log.V(2).Infof("node %d: branching on variable %d = %v, bound %v", nodes, j, rel.x[j], rel.value)
		down := node{lo: nd.lo, hi: append([]int64(nil), nd.hi...), bound: rel.value}
		down.hi[j] = int64(math.Floor(rel.x[j]))
		up := node{lo: append([]int64(nil), nd.lo...), hi: nd.hi, bound: rel.value}
		up.lo[j] = int64(math.Ceil(rel.x[j]))
		// The up branch is explored first.
		stack = append(stack, down, up)
	}

	resp := &Response{NodeCount: nodes, SolutionInfo: limit}
	bound := incumbentVal
	if limit != "" {
		for _, nd := range stack {
			if nd.bound < bound {
				bound = nd.bound
			}
		}
	}
	switch {
	case incumbent != nil && limit == "":
		resp.Status = StatusOptimal
	case incumbent != nil:
		resp.Status = StatusFeasible
	case limit == "":
		resp.Status = StatusInfeasible
	default:
		resp.Status = StatusNotSolved
	}
	if incumbent != nil {
		resp.Solution = incumbent
		resp.ObjectiveValue = objectiveValue(m, incumbent)
	}
	resp.BestBound = sense*bound + offset
	resp.WallTime = time.Since(start)
	log.V(1).Infof("solve finished: status=%v objective=%v nodes=%d wall=%v", resp.Status, resp.ObjectiveValue, nodes, resp.WallTime)
	return resp, nil
}

func objectiveValue(m *Model, x []int64) float64 {
	if m.Objective == nil {
		return 0
	}
	val := m.Objective.Offset
	for i, v := range m.Objective.Vars {
		val += m.Objective.Coeffs[i] * float64(x[v])
	}
	return val
}

// SolutionBooleanValue returns the value of BoolVar `bv` in the response.
func SolutionBooleanValue(r *Response, bv BoolVar) bool {
	return bv.evaluateSolutionValue(r) != 0
}

// SolutionValue returns the value of LinearArgument `la` in the response.
func SolutionValue(r *Response, la LinearArgument) float64 {
	return la.evaluateSolutionValue(r)
}
