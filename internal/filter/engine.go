// Copyright (c) 2025 Askdb
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package filter evaluates the result table's ad-hoc filter language.
// Per-column expressions support ranges ("5..10"), comparisons
// (">2024-01-01"), and case-insensitive substring match; a global term
// matches against the row's serialized form.
package filter

import "strings"

// comparison operators, two-character ones first so ">=" is not read
// as ">" followed by "=...".
var operators = []string{">=", "<=", ">", "<", "="}

// Matches evaluates one per-column expression against a cell value.
// It never fails: expressions that do not fit a typed interpretation
// degrade to text comparison.
func Matches(value any, expr string) bool {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return true
	}

	text := DisplayText(value)

	if low, high, ok := strings.Cut(expr, ".."); ok {
		return matchRange(text, low, high)
	}

	for _, op := range operators {
		if rest, ok := strings.CutPrefix(expr, op); ok {
			return matchComparison(text, op, strings.TrimSpace(rest))
		}
	}

	return strings.Contains(strings.ToLower(text), strings.ToLower(expr))
}

// matchRange applies an inclusive range. Both bounds must agree on a
// numeric or date reading and the cell must follow it; otherwise the
// bounds act as lexicographic limits on the lower-cased text.
func matchRange(text, low, high string) bool {
	lo := inferOperand(low)
	hi := inferOperand(high)

	if lo.kind == kindNumber && hi.kind == kindNumber {
		if n, ok := parseNumber(text); ok {
			return n >= lo.number && n <= hi.number
		}
	}
	if lo.kind == kindDate && hi.kind == kindDate {
		if d, ok := parseDate(text); ok {
			return !d.Before(lo.date) && !d.After(hi.date)
		}
	}

	t := strings.ToLower(text)
	return t >= strings.ToLower(strings.TrimSpace(low)) && t <= strings.ToLower(strings.TrimSpace(high))
}

// matchComparison applies one comparison operator. When the operand and
// cell do not share a numeric or date reading, "=" degrades to exact
// text equality and the ordering operators degrade to a substring test.
func matchComparison(text, op, rhs string) bool {
	operand := inferOperand(rhs)

	if operand.kind == kindNumber {
		if n, ok := parseNumber(text); ok {
			switch op {
			case ">=":
				return n >= operand.number
			case "<=":
				return n <= operand.number
			case ">":
				return n > operand.number
			case "<":
				return n < operand.number
			case "=":
				return n == operand.number
			}
		}
	}

	if operand.kind == kindDate {
		if d, ok := parseDate(text); ok {
			switch op {
			case ">=":
				return !d.Before(operand.date)
			case "<=":
				return !d.After(operand.date)
			case ">":
				return d.After(operand.date)
			case "<":
				return d.Before(operand.date)
			case "=":
				return d.Equal(operand.date)
			}
		}
	}

	lowered := strings.ToLower(text)
	target := strings.ToLower(rhs)
	if op == "=" {
		return lowered == target
	}
	return strings.Contains(lowered, target)
}

// MatchRow evaluates all active filters against one row: the global
// term is a coarse pre-filter over the row's serialized form, and every
// per-column expression must also hold.
func MatchRow(row map[string]any, columnFilters map[string]string, global string) bool {
	if global = strings.TrimSpace(global); global != "" {
		if !strings.Contains(strings.ToLower(structural(row)), strings.ToLower(global)) {
			return false
		}
	}

	for column, expr := range columnFilters {
		if !Matches(row[column], expr) {
			return false
		}
	}
	return true
}
