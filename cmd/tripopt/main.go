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

// The tripopt command recommends which Sokcho places to visit within a time and a budget.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	log "github.com/golang/glog"

	"github.com/wnwp/tripopt/ilp"
	"github.com/wnwp/tripopt/trip"
)

var (
	totalTime   = flag.Float64("total_time", 8, "Maximum total trip time, in hours.")
	totalBudget = flag.Int64("total_budget", 50000, "Maximum total trip budget, in won.")
	format      = flag.String("format", "text", "Output format: text or json.")
	exportLP    = flag.Bool("export_lp", false, "Also print the optimization model in LP format.")
	timeLimit   = flag.Duration("time_limit", 10*time.Second, "Solver time limit; 0 disables it.")
	maxNodes    = flag.Int64("max_nodes", 0, "Solver node limit; 0 disables it.")
)

func run(w io.Writer) error {
	if *format != "text" && *format != "json" {
		return fmt.Errorf("unknown -format %q, want text or json", *format)
	}

	places := trip.SokchoPlaces()
	travel := trip.DefaultTravel()
	limits := trip.Limits{TotalHours: *totalTime, TotalBudget: *totalBudget}
	params := &ilp.Parameters{MaxTime: *timeLimit, MaxNodes: *maxNodes}

	plan, err := trip.Optimize(places, travel, limits, params)
	if err != nil {
		return err
	}
	log.V(1).Infof("trip solved: status=%v nodes=%d wall=%v", plan.Status, plan.Response.NodeCount, plan.Response.WallTime)

	switch *format {
	case "json":
		b, err := trip.MarshalPlanJSON(limits, plan)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w, string(b)); err != nil {
			return err
		}
	default:
		if err := trip.WriteReport(w, limits, plan); err != nil {
			return err
		}
	}

	if *exportLP {
		model, _ := trip.BuildModel(places, travel, limits)
		m, err := model.Model()
		if err != nil {
			return fmt.Errorf("failed to instantiate the trip model: %w", err)
		}
		lpText, err := ilp.ExportModelAsLpFormat(m)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "\n%s", lpText); err != nil {
			return err
		}
	}
	return nil
}

func main() {
	flag.Parse()
	if err := run(os.Stdout); err != nil {
		log.Exitf("tripopt returned with error: %v", err)
	}
}
