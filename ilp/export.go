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
	"strconv"
	"strings"
	"unicode/utf8"
)

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// lpSymbols are the characters other than ASCII letters and digits allowed in LP names.
const lpSymbols = "!\"#$%&()/,.;?@_`'{}|~"

// validLPName reports whether `s` can be written as a name in LP format: at most 255 ASCII
// characters, not starting with a digit or a period.
func validLPName(s string) bool {
	if s == "" || len(s) > 255 || s[0] == '.' || ('0' <= s[0] && s[0] <= '9') {
		return false
	}
	for _, r := range s {
		switch {
		case 'a' <= r && r <= 'z', 'A' <= r && r <= 'Z', '0' <= r && r <= '9':
		case r < utf8.RuneSelf && strings.ContainsRune(lpSymbols, r):
		default:
			return false
		}
	}
	return true
}

func varName(m *Model, v VarIndex) string {
	if name := m.Variables[v].Name; validLPName(name) {
		return name
	}
	return fmt.Sprintf("x%d", v)
}

func writeTerms(sb *strings.Builder, m *Model, vars []VarIndex, coeffs []float64) {
	if len(vars) == 0 {
		sb.WriteString("0")
		return
	}
	for i, v := range vars {
		c := coeffs[i]
		switch {
		case i == 0 && c < 0:
			sb.WriteString("- ")
			c = -c
		case i > 0 && c < 0:
			sb.WriteString(" - ")
			c = -c
		case i > 0:
			sb.WriteString(" + ")
		}
		if c != 1 {
			sb.WriteString(formatNumber(c))
			sb.WriteString(" ")
		}
		sb.WriteString(varName(m, v))
	}
}

// ExportModelAsLpFormat outputs the model as a string in CPLEX LP format.
//
// Constraints with two finite, different bounds are written as two rows suffixed with `_lb` and
// `_ub`. Variables and constraints whose name is empty or not a valid LP name (non-ASCII
// characters, spaces, a leading digit) are written as `x<index>` and `c<index>`, so the output is
// always plain ASCII apart from the model name comment.
func ExportModelAsLpFormat(m *Model) (string, error) {
	if s := validateModel(m); s != "" {
		return "", fmt.Errorf("cannot export an invalid model as LP format: %s", s)
	}

	var sb strings.Builder
	if m.Name != "" {
		fmt.Fprintf(&sb, "\\ Model: %s\n", m.Name)
	}
	obj := m.Objective
	if obj == nil {
		obj = &Objective{}
	}
	if obj.Maximize {
		sb.WriteString("Maximize\n")
	} else {
		sb.WriteString("Minimize\n")
	}
	sb.WriteString(" obj: ")
	writeTerms(&sb, m, obj.Vars, obj.Coeffs)
	if obj.Offset > 0 {
		fmt.Fprintf(&sb, " + %s", formatNumber(obj.Offset))
	} else if obj.Offset < 0 {
		fmt.Fprintf(&sb, " - %s", formatNumber(-obj.Offset))
	}
	sb.WriteString("\n")

	sb.WriteString("Subject To\n")
	for i, ct := range m.Constraints {
		name := ct.Name
		if !validLPName(name) {
			name = fmt.Sprintf("c%d", i)
		}
		writeRow := func(name, op string, rhs float64) {
			fmt.Fprintf(&sb, " %s: ", name)
			writeTerms(&sb, m, ct.Vars, ct.Coeffs)
			fmt.Fprintf(&sb, " %s %s\n", op, formatNumber(rhs))
		}
		lbFinite, ubFinite := !math.IsInf(ct.LowerBound, -1), !math.IsInf(ct.UpperBound, 1)
		switch {
		case lbFinite && ubFinite && ct.LowerBound == ct.UpperBound:
			writeRow(name, "=", ct.UpperBound)
		case lbFinite && ubFinite:
			writeRow(name+"_lb", ">=", ct.LowerBound)
			writeRow(name+"_ub", "<=", ct.UpperBound)
		case ubFinite:
			writeRow(name, "<=", ct.UpperBound)
		case lbFinite:
			writeRow(name, ">=", ct.LowerBound)
		}
	}

	var binaries, generals []string
	var bounds strings.Builder
	for i, v := range m.Variables {
		name := varName(m, VarIndex(i))
		if v.IsBoolean() {
			binaries = append(binaries, name)
			continue
		}
		generals = append(generals, name)
		if v.LowerBound == v.UpperBound {
			fmt.Fprintf(&bounds, " %s = %d\n", name, v.LowerBound)
		} else {
			fmt.Fprintf(&bounds, " %d <= %s <= %d\n", v.LowerBound, name, v.UpperBound)
		}
	}
	if bounds.Len() > 0 {
		sb.WriteString("Bounds\n")
		sb.WriteString(bounds.String())
	}
	if len(binaries) > 0 {
		sb.WriteString("Binaries\n ")
		sb.WriteString(strings.Join(binaries, " "))
		sb.WriteString("\n")
	}
	if len(generals) > 0 {
		sb.WriteString("Generals\n ")
		sb.WriteString(strings.Join(generals, " "))
		sb.WriteString("\n")
	}
	sb.WriteString("End\n")
	return sb.String(), nil
}
