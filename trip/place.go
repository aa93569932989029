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

// Package trip selects which sightseeing places to visit so that the total satisfaction is
// maximal while the trip stays within a time and a budget limit.
package trip

import "slices"

// Place is a candidate sightseeing spot.
type Place struct {
	Name         string
	Satisfaction int
	// Hours is the time spent at the place.
	Hours float64
	// Admission and Food are in won.
	Admission int64
	Food      int64
}

// TravelAssumptions holds the average cost of getting to each visited place.
type TravelAssumptions struct {
	HoursPerVisit float64
	CostPerVisit  int64
}

// DefaultTravel returns half an hour and 5,000 won per visit.
func DefaultTravel() TravelAssumptions {
	return TravelAssumptions{HoursPerVisit: 0.5, CostPerVisit: 5000}
}

// VisitHours is the time a visit to `p` takes, travel included.
func (p Place) VisitHours(t TravelAssumptions) float64 {
	return p.Hours + t.HoursPerVisit
}

// VisitCost is the money a visit to `p` takes, transport included.
func (p Place) VisitCost(t TravelAssumptions) int64 {
	return p.Admission + p.Food + t.CostPerVisit
}

var sokchoPlaces = []Place{
	{Name: "설악산", Satisfaction: 95, Hours: 4, Admission: 3500, Food: 10000},
	{Name: "속초중앙시장", Satisfaction: 85, Hours: 2, Admission: 0, Food: 20000},
	{Name: "속초해수욕장", Satisfaction: 80, Hours: 1.5, Admission: 0, Food: 5000},
	{Name: "영금정", Satisfaction: 75, Hours: 1, Admission: 0, Food: 0},
	{Name: "아바이마을", Satisfaction: 70, Hours: 1.5, Admission: 0, Food: 15000},
	{Name: "국립산악박물관", Satisfaction: 60, Hours: 1.5, Admission: 0, Food: 0},
}

// SokchoPlaces returns the six Sokcho places. The returned slice is a copy.
func SokchoPlaces() []Place {
	return slices.Clone(sokchoPlaces)
}
