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

// Package ilp offers a small API to build and solve integer linear programs.
//
// The `Builder` struct holds the model under construction and provides helper methods for
// adding variables, linear constraints and the objective.
// The `IntVar` and `BoolVar` structs are references to specific variables in the model and
// provide helpful methods for interacting with those variables.
// The `LinearExpr` struct provides helper methods for creating constraints and the
// objective from expressions with many variables and coefficients.
//
// Models are solved with `SolveModel`, a branch-and-bound search over LP relaxations.
package ilp

import (
	"errors"
	"fmt"
	"math"
	"sort"

	log "github.com/golang/glog"
)

var (
	// ErrMixedModels holds the error when elements added to a model are different.
	ErrMixedModels = errors.New("elements are not part of the same model")
	// ErrDuplicateName holds the error when two variables or two constraints share a name.
	ErrDuplicateName = errors.New("name already in use")
)

type (
	// VarIndex is the index of a variable in the model, if positive. If this value is
	// negative, it represents the negation of a Boolean variable in the position (-1*VarIndex-1).
	VarIndex int32
	// ConstrIndex is the index of a constraint in the model.
	ConstrIndex int32
)

func (v VarIndex) positiveIndex() VarIndex {
	if v >= 0 {
		return v
	}
	return -1*v - 1
}

// Variable is an integer decision variable with domain [LowerBound, UpperBound].
type Variable struct {
	Name       string
	LowerBound int64
	UpperBound int64
}

// IsBoolean reports whether the variable's domain is [0, 1].
func (v *Variable) IsBoolean() bool {
	return v.LowerBound == 0 && v.UpperBound == 1
}

// LinearConstraint enforces `LowerBound <= sum(Coeffs[i] * x[Vars[i]]) <= UpperBound`.
// Either bound may be infinite.
type LinearConstraint struct {
	Name       string
	Vars       []VarIndex
	Coeffs     []float64
	LowerBound float64
	UpperBound float64
}

// Objective is `Offset + sum(Coeffs[i] * x[Vars[i]])`.
type Objective struct {
	Vars     []VarIndex
	Coeffs   []float64
	Offset   float64
	Maximize bool
}

// Model is a built integer linear program. All variable indices are positive.
type Model struct {
	Name        string
	Variables   []*Variable
	Constraints []*LinearConstraint
	Objective   *Objective
}

// LinearArgument provides an interface for BoolVar, IntVar, and LinearExpr.
type LinearArgument interface {
	addToLinearExpr(e *LinearExpr, c float64)
	evaluateSolutionValue(r *Response) float64
}

// LinearExpr is a container for a linear expression.
type LinearExpr struct {
	varCoeffs []varCoeff
	offset    float64
}

type varCoeff struct {
	ind   VarIndex
	coeff float64
	// cpb is the Builder that created the variable.
	cpb *Builder
}

// NewLinearExpr creates a new empty LinearExpr.
func NewLinearExpr() *LinearExpr {
	return &LinearExpr{}
}

// NewConstant creates and returns a LinearExpr containing the constant `c`.
func NewConstant(c float64) *LinearExpr {
	return &LinearExpr{offset: c}
}

// Add adds the linear argument term to the LinearExpr and returns itself.
func (l *LinearExpr) Add(la LinearArgument) *LinearExpr {
	l.AddTerm(la, 1)
	return l
}

// AddConstant adds the constant to the LinearExpr and returns itself.
func (l *LinearExpr) AddConstant(c float64) *LinearExpr {
	l.offset += c
	return l
}

// AddTerm adds the linear argument term with the given coefficient to the LinearExpr and returns itself.
func (l *LinearExpr) AddTerm(la LinearArgument, coeff float64) *LinearExpr {
	la.addToLinearExpr(l, coeff)
	return l
}

// AddSum adds the sum of the linear arguments to the LinearExpr and returns itself.
func (l *LinearExpr) AddSum(las ...LinearArgument) *LinearExpr {
	for _, la := range las {
		l.Add(la)
	}
	return l
}

// AddWeightedSum adds the linear arguments with the corresponding coefficients to the LinearExpr
// and returns itself.
func (l *LinearExpr) AddWeightedSum(las []LinearArgument, coeffs []float64) *LinearExpr {
	if len(coeffs) != len(las) {
		log.Fatalf("las and coeffs must be the same length: %v != %v", len(las), len(coeffs))
	}
	for i, la := range las {
		l.AddTerm(la, coeffs[i])
	}
	return l
}

func (l *LinearExpr) addToLinearExpr(e *LinearExpr, c float64) {
	for _, vc := range l.varCoeffs {
		e.varCoeffs = append(e.varCoeffs, varCoeff{ind: vc.ind, coeff: vc.coeff * c, cpb: vc.cpb})
	}
	e.offset += l.offset * c
}

func (l *LinearExpr) evaluateSolutionValue(r *Response) float64 {
	result := l.offset
	for _, vc := range l.varCoeffs {
		result += float64(r.Solution[vc.ind]) * vc.coeff
	}
	return result
}

// merged returns the terms of `l` with one entry per variable, sorted by index, and without
// zero coefficients.
func (l *LinearExpr) merged() ([]VarIndex, []float64) {
	sums := make(map[VarIndex]float64)
	for _, vc := range l.varCoeffs {
		sums[vc.ind] += vc.coeff
	}
	var vars []VarIndex
	for ind, c := range sums {
		if c != 0 {
			vars = append(vars, ind)
		}
	}
	if len(vars) == 0 {
		return nil, nil
	}
	sort.Slice(vars, func(i, j int) bool { return vars[i] < vars[j] })
	coeffs := make([]float64, len(vars))
	for i, ind := range vars {
		coeffs[i] = sums[ind]
	}
	return vars, coeffs
}

// IntVar is a reference to an integer variable in the model.
type IntVar struct {
	ind VarIndex
	cpb *Builder
}

// Name returns the name of the variable.
func (i IntVar) Name() string {
	return i.cpb.model.Variables[i.ind].Name
}

// Bounds returns the domain of the variable.
func (i IntVar) Bounds() (lb, ub int64) {
	v := i.cpb.model.Variables[i.ind]
	return v.LowerBound, v.UpperBound
}

// Index returns the index of the variable.
func (i IntVar) Index() VarIndex {
	return i.ind
}

// WithName sets the name of the variable.
func (i IntVar) WithName(s string) IntVar {
	i.cpb.renameVar(i.ind, s)
	return i
}

func (i IntVar) addToLinearExpr(e *LinearExpr, c float64) {
	e.varCoeffs = append(e.varCoeffs, varCoeff{ind: i.ind, coeff: c, cpb: i.cpb})
}

func (i IntVar) evaluateSolutionValue(r *Response) float64 {
	return float64(r.Solution[i.ind])
}

// BoolVar is a reference to a Boolean variable or the negation of a Boolean variable in the
// model.
type BoolVar struct {
	ind VarIndex
	cpb *Builder
}

// Not returns the logical Not of the Boolean variable
func (b BoolVar) Not() BoolVar {
	return BoolVar{ind: -1*b.ind - 1, cpb: b.cpb}
}

// Name returns the name of the variable.
func (b BoolVar) Name() string {
	return b.cpb.model.Variables[b.ind.positiveIndex()].Name
}

// Index returns the index of the variable. If the variable is a negation of another variable v,
// its index is `-1*v.index-1`.
func (b BoolVar) Index() VarIndex {
	return b.ind
}

// WithName sets the name of the variable.
func (b BoolVar) WithName(s string) BoolVar {
	b.cpb.renameVar(b.ind.positiveIndex(), s)
	return b
}

func (b BoolVar) addToLinearExpr(e *LinearExpr, c float64) {
	if b.ind < 0 {
		e.varCoeffs = append(e.varCoeffs, varCoeff{ind: b.ind.positiveIndex(), coeff: -c, cpb: b.cpb})
		e.offset += c
	} else {
		e.varCoeffs = append(e.varCoeffs, varCoeff{ind: b.ind, coeff: c, cpb: b.cpb})
	}
}

func (b BoolVar) evaluateSolutionValue(r *Response) float64 {
	if b.ind < 0 {
		return float64(1 - r.Solution[b.ind.positiveIndex()])
	}
	return float64(r.Solution[b.ind])
}

// Constraint is a reference to a constraint in the model.
type Constraint struct {
	ind ConstrIndex
	cpb *Builder
}

// WithName sets the name of the constraint.
func (c Constraint) WithName(s string) Constraint {
	if other := c.cpb.LookupConstraint(s); s != "" && other != nil && other.ind != c.ind {
		c.cpb.setErrorf("constraint %v renamed to %q: %w", c.ind, s, ErrDuplicateName)
		return c
	}
	c.cpb.model.Constraints[c.ind].Name = s
	return c
}

// Name returns the name of the constraint.
func (c Constraint) Name() string {
	return c.cpb.model.Constraints[c.ind].Name
}

// Index returns the index of the constraint.
func (c Constraint) Index() ConstrIndex {
	return c.ind
}

// setErrorf records the error built from `format` if no error has been recorded yet.
func (cp *Builder) setErrorf(format string, a ...any) {
	err := fmt.Errorf(format, a...)
	log.Errorf("%v; use `-log_backtrace_at` flag to get the error stack", err)
	if cp.err == nil {
		cp.err = err
	}
}

// checkSameModelAndSetErrorf returns true if `cp` and `cp2` point to the same Builder.
// If false, an error with the error message `errString` is set on `cp` if `cp.err`
// is nil.
func (cp *Builder) checkSameModelAndSetErrorf(cp2 *Builder, format string, a ...any) bool {
	if cp == cp2 {
		return true
	}
	var args = make([]any, len(a)+1)
	copy(args, a)
	args[len(a)] = ErrMixedModels
	cp.setErrorf(format+": %w", args...)
	return false
}

// Builder provides a wrapper for building a Model.
type Builder struct {
	model *Model
	// The first and only the first error is reported in Model.
	err error
}

// NewModelBuilder creates and returns a new model Builder.
func NewModelBuilder() *Builder {
	return &Builder{model: &Model{}}
}

// SetName sets the name of the model.
func (cp *Builder) SetName(name string) {
	cp.model.Name = name
}

// Name returns the name of the model.
func (cp *Builder) Name() string {
	return cp.model.Name
}

func (cp *Builder) renameVar(ind VarIndex, s string) {
	if s != "" {
		if other := cp.LookupVar(s); other != nil && other.ind != ind {
			cp.setErrorf("variable %v renamed to %q: %w", ind, s, ErrDuplicateName)
			return
		}
	}
	cp.model.Variables[ind].Name = s
}

// NewIntVar creates a new IntVar with domain [lb, ub] in the model.
//
// An empty domain (lb > ub) is not rejected here; solving such a model returns
// StatusModelInvalid.
func (cp *Builder) NewIntVar(lb, ub int64) IntVar {
	intVar := IntVar{cpb: cp, ind: VarIndex(len(cp.model.Variables))}
	cp.model.Variables = append(cp.model.Variables, &Variable{LowerBound: lb, UpperBound: ub})
	return intVar
}

// NewBoolVar creates a new BoolVar in the model.
func (cp *Builder) NewBoolVar() BoolVar {
	boolVar := BoolVar{cpb: cp, ind: VarIndex(len(cp.model.Variables))}
	cp.model.Variables = append(cp.model.Variables, &Variable{LowerBound: 0, UpperBound: 1})
	return boolVar
}

// LookupVar returns the variable with the given name, or nil if not found.
func (cp *Builder) LookupVar(name string) *IntVar {
	for i, v := range cp.model.Variables {
		if v.Name == name {
			return &IntVar{cpb: cp, ind: VarIndex(i)}
		}
	}
	return nil
}

// LookupConstraint returns the constraint with the given name, or nil if not found.
func (cp *Builder) LookupConstraint(name string) *Constraint {
	for i, c := range cp.model.Constraints {
		if c.Name == name {
			return &Constraint{cpb: cp, ind: ConstrIndex(i)}
		}
	}
	return nil
}

// checkExpr verifies that every variable in `le` belongs to `cp`, including variables that
// reached `le` through another LinearExpr.
func (cp *Builder) checkExpr(le *LinearExpr, what string) bool {
	n := VarIndex(len(cp.model.Variables))
	for _, vc := range le.varCoeffs {
		if !cp.checkSameModelAndSetErrorf(vc.cpb, "invalid variable %v added to %s", vc.ind, what) {
			return false
		}
		if vc.ind < 0 || vc.ind >= n {
			cp.setErrorf("invalid variable index %v in linear expression: %w", vc.ind, ErrMixedModels)
			return false
		}
	}
	return true
}

// addLinearConstraint adds a linear constraint that enforces the value of `le` to be in
// `[lb, ub]`. The constant offset of `le` is subtracted from both bounds.
func (cp *Builder) addLinearConstraint(le *LinearExpr, lb, ub float64) Constraint {
	cp.checkExpr(le, fmt.Sprintf("constraint %v", len(cp.model.Constraints)))
	vars, coeffs := le.merged()
	ct := &LinearConstraint{
		Vars:       vars,
		Coeffs:     coeffs,
		LowerBound: lb - le.offset,
		UpperBound: ub - le.offset,
	}
	cp.model.Constraints = append(cp.model.Constraints, ct)
	return Constraint{cpb: cp, ind: ConstrIndex(len(cp.model.Constraints) - 1)}
}

// AddLinearConstraint adds the linear constraint `lb <= expr <= ub`. Use math.Inf for a
// missing bound.
func (cp *Builder) AddLinearConstraint(expr LinearArgument, lb, ub float64) Constraint {
	return cp.addLinearConstraint(NewLinearExpr().Add(expr), lb, ub)
}

// AddEquality adds the linear constraint `lhs == rhs`.
func (cp *Builder) AddEquality(lhs LinearArgument, rhs LinearArgument) Constraint {
	return cp.addLinearConstraint(NewLinearExpr().Add(lhs).AddTerm(rhs, -1), 0, 0)
}

// AddLessOrEqual adds the linear constraint `lhs <= rhs`.
func (cp *Builder) AddLessOrEqual(lhs LinearArgument, rhs LinearArgument) Constraint {
	return cp.addLinearConstraint(NewLinearExpr().Add(lhs).AddTerm(rhs, -1), math.Inf(-1), 0)
}

// AddGreaterOrEqual adds the linear constraint `lhs >= rhs`.
func (cp *Builder) AddGreaterOrEqual(lhs LinearArgument, rhs LinearArgument) Constraint {
	return cp.addLinearConstraint(NewLinearExpr().Add(lhs).AddTerm(rhs, -1), 0, math.Inf(1))
}

// AddAtMostOne adds the constraint that at most one of the literals must be true.
func (cp *Builder) AddAtMostOne(bvs ...BoolVar) Constraint {
	e := NewLinearExpr()
	for _, bv := range bvs {
		e.Add(bv)
	}
	return cp.addLinearConstraint(e, math.Inf(-1), 1)
}

func (cp *Builder) setObjective(obj LinearArgument, maximize bool) {
	o := NewLinearExpr().Add(obj)
	cp.checkExpr(o, "objective")
	vars, coeffs := o.merged()
	cp.model.Objective = &Objective{
		Vars:     vars,
		Coeffs:   coeffs,
		Offset:   o.offset,
		Maximize: maximize,
	}
}

// Minimize adds a linear minimization objective.
func (cp *Builder) Minimize(obj LinearArgument) {
	cp.setObjective(obj, false)
}

// Maximize adds a linear maximization objective.
func (cp *Builder) Maximize(obj LinearArgument) {
	cp.setObjective(obj, true)
}

// Model returns the built model. The model returned is a pointer to the model in Builder,
// and if modified, future calls to the Builder API can fail or result in an invalid model.
//
// Model returns an error when invalid parameters have been used during model building (e.g.
// passing variables from other builders).
func (cp *Builder) Model() (*Model, error) {
	if cp.err != nil {
		return nil, cp.err
	}
	return cp.model, nil
}
