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

package trip

import (
	"fmt"

	"github.com/wnwp/tripopt/ilp"
)

// Model and constraint names.
const (
	ModelName            = "Sokcho_Trip_Optimizer"
	TimeConstraintName   = "Total_Time_Constraint"
	BudgetConstraintName = "Total_Budget_Constraint"
)

// Limits are the traveller's bounds on the whole trip.
type Limits struct {
	TotalHours  float64
	TotalBudget int64 // won
}

// DefaultLimits returns 8 hours and 50,000 won.
func DefaultLimits() Limits {
	return Limits{TotalHours: 8, TotalBudget: 50000}
}

// Plan is the outcome of Optimize.
type Plan struct {
	Status ilp.Status
	// Selected is empty unless Status is ilp.StatusOptimal. Places keep their input order.
	Selected          []Place
	TotalSatisfaction float64
	TotalHours        float64
	TotalCost         int64
	Response          *ilp.Response
}

// BuildModel builds the visit selection model: one Boolean variable per place, maximizing the
// summed satisfaction under the time and budget limits. The returned variables are in the
// order of `places`.
func BuildModel(places []Place, travel TravelAssumptions, limits Limits) (*ilp.Builder, []ilp.BoolVar) {
	model := ilp.NewModelBuilder()
	model.SetName(ModelName)

	visits := make([]ilp.BoolVar, len(places))
	satisfaction := ilp.NewLinearExpr()
	hours := ilp.NewLinearExpr()
	cost := ilp.NewLinearExpr()
	for i, p := range places {
		visits[i] = model.NewBoolVar().WithName("Visit_" + p.Name)
		satisfaction.AddTerm(visits[i], float64(p.Satisfaction))
		hours.AddTerm(visits[i], p.VisitHours(travel))
		cost.AddTerm(visits[i], float64(p.VisitCost(travel)))
	}

	model.Maximize(satisfaction)
	model.AddLessOrEqual(hours, ilp.NewConstant(limits.TotalHours)).WithName(TimeConstraintName)
	model.AddLessOrEqual(cost, ilp.NewConstant(float64(limits.TotalBudget))).WithName(BudgetConstraintName)

	return model, visits
}

// Optimize selects the places to visit. An error is returned only if the model cannot be built
// or solved; an infeasible trip is reported through Plan.Status.
func Optimize(places []Place, travel TravelAssumptions, limits Limits, params *ilp.Parameters) (*Plan, error) {
	model, visits := BuildModel(places, travel, limits)
	m, err := model.Model()
	if err != nil {
		return nil, fmt.Errorf("failed to instantiate the trip model: %w", err)
	}
	response, err := ilp.SolveModelWithParameters(m, params)
	if err != nil {
		return nil, fmt.Errorf("failed to solve the trip model: %w", err)
	}

	plan := &Plan{Status: response.Status, Response: response}
	if response.Status != ilp.StatusOptimal {
		return plan, nil
	}
	plan.TotalSatisfaction = response.ObjectiveValue
	for i, p := range places {
		if !ilp.SolutionBooleanValue(response, visits[i]) {
			continue
		}
		plan.Selected = append(plan.Selected, p)
		plan.TotalHours += p.VisitHours(travel)
		plan.TotalCost += p.VisitCost(travel)
	}
	return plan, nil
}
