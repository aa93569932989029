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

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

// PlanStruct returns the limits and the plan as a google.protobuf.Struct.
func PlanStruct(limits Limits, plan *Plan) (*structpb.Struct, error) {
	selected := []any{}
	for _, p := range plan.Selected {
		selected = append(selected, map[string]any{
			"name":         p.Name,
			"satisfaction": p.Satisfaction,
			"hours":        p.Hours,
			"admission":    p.Admission,
			"food":         p.Food,
		})
	}
	s, err := structpb.NewStruct(map[string]any{
		"limits": map[string]any{
			"totalHours":  limits.TotalHours,
			"totalBudget": limits.TotalBudget,
		},
		"status":            plan.Status.String(),
		"selected":          selected,
		"totalSatisfaction": plan.TotalSatisfaction,
		"totalHours":        plan.TotalHours,
		"totalCost":         plan.TotalCost,
	})
	if err != nil {
		return nil, fmt.Errorf("converting plan to struct: %w", err)
	}
	return s, nil
}

// MarshalPlanJSON returns the limits and the plan as indented JSON.
func MarshalPlanJSON(limits Limits, plan *Plan) ([]byte, error) {
	s, err := PlanStruct(limits, plan)
	if err != nil {
		return nil, err
	}
	return protojson.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(s)
}
