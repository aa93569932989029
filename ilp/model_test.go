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
	"testing"

	"github.com/google/go-cmp/cmp"

	log "github.com/golang/glog"
)

func Example() {
	model := NewModelBuilder()

	x := model.NewBoolVar().WithName("x")
	y := model.NewBoolVar().WithName("y")
	z := model.NewBoolVar().WithName("z")

	weight := NewLinearExpr().AddTerm(x, 3).AddTerm(y, 4).AddTerm(z, 2)
	model.AddLessOrEqual(weight, NewConstant(6))
	model.Maximize(NewLinearExpr().AddTerm(x, 10).AddTerm(y, 13).AddTerm(z, 7))

	m, err := model.Model()
	if err != nil {
		log.Fatalf("Building model returned with error %v", err)
	}
	res, err := SolveModel(m)
	if err != nil {
		log.Fatalf("Solver returned with unexpected err %v", err)
	}
	if res.Status != StatusOptimal {
		log.Fatalf("Solver returned with status %v", res.Status)
	}

	fmt.Println("Objective:", res.ObjectiveValue)
	fmt.Println("x:", SolutionBooleanValue(res, x))
	fmt.Println("y:", SolutionBooleanValue(res, y))
	fmt.Println("z:", SolutionBooleanValue(res, z))
	// Output:
	// Objective: 20
	// x: false
	// y: true
	// z: true
}

func TestBoolVar_Not(t *testing.T) {
	model := NewModelBuilder()

	bv1 := model.NewBoolVar().WithName("bv1")
	bv2 := bv1.Not()
	bv3 := bv2.Not()

	want := -1*bv1.Index() - 1
	if got := bv2.Index(); got != want {
		t.Errorf("Index() = %v, want %v", got, want)
	}
	want = bv1.Index()
	if got := bv3.Index(); got != want {
		t.Errorf("Index() = %v, want %v", got, want)
	}
	if got := bv2.Name(); got != "bv1" {
		t.Errorf("Not().Name() = %q, want %q", got, "bv1")
	}
}

func TestVar_Name(t *testing.T) {
	testCases := []struct {
		name    string
		varName func() string
		want    string
	}{
		{
			name: "IntVar",
			varName: func() string {
				return NewModelBuilder().NewIntVar(0, 3).WithName("int").Name()
			},
			want: "int",
		},
		{
			name: "BoolVar",
			varName: func() string {
				return NewModelBuilder().NewBoolVar().WithName("bool").Name()
			},
			want: "bool",
		},
		{
			name: "NegatedBoolVar",
			varName: func() string {
				return NewModelBuilder().NewBoolVar().Not().WithName("not").Name()
			},
			want: "not",
		},
		{
			name: "Unnamed",
			varName: func() string {
				return NewModelBuilder().NewBoolVar().Name()
			},
			want: "",
		},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			if got := test.varName(); got != test.want {
				t.Errorf("Name() = %q, want %q", got, test.want)
			}
		})
	}
}

func TestIntVar_Bounds(t *testing.T) {
	model := NewModelBuilder()
	iv := model.NewIntVar(-2, 7)

	lb, ub := iv.Bounds()
	if lb != -2 || ub != 7 {
		t.Errorf("Bounds() = (%v, %v), want (-2, 7)", lb, ub)
	}
}

func TestBuilder_LookupVar(t *testing.T) {
	model := NewModelBuilder()
	model.NewBoolVar().WithName("a")
	b := model.NewIntVar(0, 4).WithName("b")

	got := model.LookupVar("b")
	if got == nil {
		t.Fatalf("LookupVar(%q) = nil, want variable %v", "b", b.Index())
	}
	if got.Index() != b.Index() {
		t.Errorf("LookupVar(%q).Index() = %v, want %v", "b", got.Index(), b.Index())
	}
	if got := model.LookupVar("c"); got != nil {
		t.Errorf("LookupVar(%q) = %v, want nil", "c", got.Index())
	}
}

func TestLinearExpr_Terms(t *testing.T) {
	model := NewModelBuilder()
	x := model.NewBoolVar()
	y := model.NewBoolVar()
	z := model.NewIntVar(0, 10)

	testCases := []struct {
		name       string
		expr       *LinearExpr
		wantVars   []VarIndex
		wantCoeffs []float64
		wantOffset float64
	}{
		{
			name:       "Constant",
			expr:       NewConstant(4.5),
			wantOffset: 4.5,
		},
		{
			name:       "AddSum",
			expr:       NewLinearExpr().AddSum(x, y, z),
			wantVars:   []VarIndex{0, 1, 2},
			wantCoeffs: []float64{1, 1, 1},
		},
		{
			name:       "NegatedBoolVar",
			expr:       NewLinearExpr().AddTerm(x.Not(), 3),
			wantVars:   []VarIndex{0},
			wantCoeffs: []float64{-3},
			wantOffset: 3,
		},
		{
			name:       "MergedDuplicates",
			expr:       NewLinearExpr().AddTerm(z, 2).AddTerm(x, 1.5).AddTerm(z, 0.5),
			wantVars:   []VarIndex{0, 2},
			wantCoeffs: []float64{1.5, 2.5},
		},
		{
			name:       "CancelledTerm",
			expr:       NewLinearExpr().AddTerm(y, 2).AddTerm(y, -2).AddConstant(1),
			wantOffset: 1,
		},
		{
			name:       "AddWeightedSum",
			expr:       NewLinearExpr().AddWeightedSum([]LinearArgument{x, NewLinearExpr().AddTerm(z, 2).AddConstant(1)}, []float64{4, 3}),
			wantVars:   []VarIndex{0, 2},
			wantCoeffs: []float64{4, 6},
			wantOffset: 3,
		},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			vars, coeffs := test.expr.merged()
			if diff := cmp.Diff(test.wantVars, vars); diff != "" {
				t.Errorf("merged() vars returned unexpected diff (-want+got): %v", diff)
			}
			if diff := cmp.Diff(test.wantCoeffs, coeffs); diff != "" {
				t.Errorf("merged() coeffs returned unexpected diff (-want+got): %v", diff)
			}
			if test.expr.offset != test.wantOffset {
				t.Errorf("offset = %v, want %v", test.expr.offset, test.wantOffset)
			}
		})
	}
}

func TestBuilder_AddConstraints(t *testing.T) {
	model := NewModelBuilder()
	x := model.NewBoolVar()
	y := model.NewBoolVar()

	testCases := []struct {
		name  string
		build func() Constraint
		want  *LinearConstraint
	}{
		{
			name: "AddLessOrEqual",
			build: func() Constraint {
				return model.AddLessOrEqual(NewLinearExpr().AddTerm(x, 2).AddTerm(y, 3), NewConstant(4))
			},
			want: &LinearConstraint{Vars: []VarIndex{0, 1}, Coeffs: []float64{2, 3}, LowerBound: math.Inf(-1), UpperBound: 4},
		},
		{
			name: "AddGreaterOrEqual",
			build: func() Constraint {
				return model.AddGreaterOrEqual(x, y.Not())
			},
			want: &LinearConstraint{Vars: []VarIndex{0, 1}, Coeffs: []float64{1, 1}, LowerBound: 1, UpperBound: math.Inf(1)},
		},
		{
			name: "AddEquality",
			build: func() Constraint {
				return model.AddEquality(NewLinearExpr().AddSum(x, y).AddConstant(1), NewConstant(2))
			},
			want: &LinearConstraint{Vars: []VarIndex{0, 1}, Coeffs: []float64{1, 1}, LowerBound: 1, UpperBound: 1},
		},
		{
			name: "AddLinearConstraint",
			build: func() Constraint {
				return model.AddLinearConstraint(NewLinearExpr().AddTerm(y, 5), -1, 3).WithName("range")
			},
			want: &LinearConstraint{Name: "range", Vars: []VarIndex{1}, Coeffs: []float64{5}, LowerBound: -1, UpperBound: 3},
		},
		{
			name: "AddAtMostOne",
			build: func() Constraint {
				return model.AddAtMostOne(x, y)
			},
			want: &LinearConstraint{Vars: []VarIndex{0, 1}, Coeffs: []float64{1, 1}, LowerBound: math.Inf(-1), UpperBound: 1},
		},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			c := test.build()
			m, err := model.Model()
			if err != nil {
				t.Fatalf("Model() returned with unexpected error %v", err)
			}
			got := m.Constraints[c.Index()]
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("constraint returned unexpected diff (-want+got): %v", diff)
			}
		})
	}
}

func TestBuilder_Objective(t *testing.T) {
	testCases := []struct {
		name     string
		maximize bool
	}{
		{name: "Maximize", maximize: true},
		{name: "Minimize", maximize: false},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			model := NewModelBuilder()
			x := model.NewBoolVar()
			y := model.NewIntVar(0, 3)
			obj := NewLinearExpr().AddTerm(x.Not(), 2).AddTerm(y, 7)
			if test.maximize {
				model.Maximize(obj)
			} else {
				model.Minimize(obj)
			}

			m, err := model.Model()
			if err != nil {
				t.Fatalf("Model() returned with unexpected error %v", err)
			}
			want := &Objective{Vars: []VarIndex{0, 1}, Coeffs: []float64{-2, 7}, Offset: 2, Maximize: test.maximize}
			if diff := cmp.Diff(want, m.Objective); diff != "" {
				t.Errorf("Objective returned unexpected diff (-want+got): %v", diff)
			}
		})
	}
}

func TestBuilder_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		build   func() *Builder
		wantErr error
	}{
		{
			name: "MixedModelsInConstraint",
			build: func() *Builder {
				model := NewModelBuilder()
				other := NewModelBuilder()
				x := model.NewBoolVar()
				y := other.NewBoolVar()
				model.AddLessOrEqual(x, y)
				return model
			},
			wantErr: ErrMixedModels,
		},
		{
			name: "MixedModelsInObjective",
			build: func() *Builder {
				model := NewModelBuilder()
				other := NewModelBuilder()
				model.NewBoolVar()
				model.Maximize(other.NewIntVar(0, 2))
				return model
			},
			wantErr: ErrMixedModels,
		},
		{
			name: "UnknownIndexInExpression",
			build: func() *Builder {
				model := NewModelBuilder()
				other := NewModelBuilder()
				other.NewBoolVar()
				other.NewBoolVar()
				model.AddLessOrEqual(NewLinearExpr().Add(other.NewBoolVar()), NewConstant(1))
				return model
			},
			wantErr: ErrMixedModels,
		},
		{
			name: "MixedModelsInsideExpression",
			build: func() *Builder {
				model := NewModelBuilder()
				other := NewModelBuilder()
				model.NewBoolVar()
				foreign := other.NewBoolVar()
				model.AddLessOrEqual(NewLinearExpr().Add(foreign), NewConstant(1))
				return model
			},
			wantErr: ErrMixedModels,
		},
		{
			name: "MixedModelsInsideObjectiveExpression",
			build: func() *Builder {
				model := NewModelBuilder()
				other := NewModelBuilder()
				x := model.NewBoolVar()
				foreign := other.NewBoolVar()
				model.Maximize(NewLinearExpr().AddSum(x, NewLinearExpr().AddTerm(foreign.Not(), 2)))
				return model
			},
			wantErr: ErrMixedModels,
		},
		{
			name: "DuplicateVarName",
			build: func() *Builder {
				model := NewModelBuilder()
				model.NewBoolVar().WithName("a")
				model.NewBoolVar().WithName("a")
				return model
			},
			wantErr: ErrDuplicateName,
		},
		{
			name: "DuplicateConstraintName",
			build: func() *Builder {
				model := NewModelBuilder()
				x := model.NewBoolVar()
				model.AddLessOrEqual(x, NewConstant(1)).WithName("c")
				model.AddGreaterOrEqual(x, NewConstant(0)).WithName("c")
				return model
			},
			wantErr: ErrDuplicateName,
		},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			model := test.build()
			if _, err := model.Model(); !errors.Is(err, test.wantErr) {
				t.Errorf("Model() returned error %v, want %v", err, test.wantErr)
			}
		})
	}
}

func TestBuilder_RenameKeepsName(t *testing.T) {
	model := NewModelBuilder()
	x := model.NewBoolVar().WithName("a")
	x.WithName("a")

	if _, err := model.Model(); err != nil {
		t.Errorf("Model() returned with unexpected error %v", err)
	}
}
