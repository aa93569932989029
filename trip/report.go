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
	"bufio"
	"fmt"
	"io"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/wnwp/tripopt/ilp"
)

var won = message.NewPrinter(language.Korean)

// formatWon formats an amount with thousands separators, e.g. "50,000".
func formatWon(amount int64) string {
	return won.Sprintf("%d", amount)
}

// WriteReport prints the limits followed by the recommended plan, or by the reason no plan
// could be recommended.
func WriteReport(w io.Writer, limits Limits, plan *Plan) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, "--- 속초 여행 최적 경로 추천 ---")
	fmt.Fprintln(bw, "\n[입력 조건]")
	fmt.Fprintf(bw, "  - 최대 여행 시간: %s시간\n", strconv.FormatFloat(limits.TotalHours, 'f', -1, 64))
	fmt.Fprintf(bw, "  - 최대 여행 예산: %s원\n\n", formatWon(limits.TotalBudget))

	if plan.Status == ilp.StatusOptimal {
		fmt.Fprintln(bw, "[추천 여행 계획]")
		for _, p := range plan.Selected {
			fmt.Fprintf(bw, "  - %s (만족도: %d)\n", p.Name, p.Satisfaction)
		}
		fmt.Fprintln(bw, "\n[예상 결과]")
		fmt.Fprintf(bw, "  - 총 만족도: %.2f\n", plan.TotalSatisfaction)
		fmt.Fprintf(bw, "  - 총 소요 시간: %.1f시간\n", plan.TotalHours)
		fmt.Fprintf(bw, "  - 총 예상 비용: %s원\n", formatWon(plan.TotalCost))
	} else {
		fmt.Fprintln(bw, "최적의 여행 계획을 찾을 수 없습니다.")
		fmt.Fprintf(bw, "이유: %v\n", plan.Status)
	}

	return bw.Flush()
}
