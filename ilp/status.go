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

import "fmt"

// Status is the outcome of a solve.
type Status int

const (
	// StatusNotSolved means the search stopped before finding any solution.
	StatusNotSolved Status = iota
	// StatusOptimal means the returned solution is proven optimal.
	StatusOptimal
	// StatusFeasible means a solution was found but a limit stopped the proof of optimality.
	StatusFeasible
	// StatusInfeasible means the model has no solution.
	StatusInfeasible
	// StatusUnbounded means the objective can be improved without limit.
	StatusUnbounded
	// StatusModelInvalid means the model failed validation.
	StatusModelInvalid
)

var statusNames = map[Status]string{
	StatusNotSolved:    "Not Solved",
	StatusOptimal:      "Optimal",
	StatusFeasible:     "Feasible",
	StatusInfeasible:   "Infeasible",
	StatusUnbounded:    "Unbounded",
	StatusModelInvalid: "Model Invalid",
}

func (s Status) String() string {
	if n, ok := statusNames[s]; ok {
		return n
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// HasSolution reports whether a response with this status carries a solution.
func (s Status) HasSolution() bool {
	return s == StatusOptimal || s == StatusFeasible
}
