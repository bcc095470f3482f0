// Copyright (c) 2025 Askdb
// Licensed under the MIT License. See LICENSE file in the project root for details.

package filter

import (
	"strconv"
	"strings"
	"time"
)

// dateLayouts are the formats a cell or operand may use for dates.
// Tried in order; the first match wins.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"02.01.2006",
}

// parseNumber reports whether s is numeric and returns its value.
func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// parseDate reports whether s looks like a date and returns its value.
// Numbers are not dates; inference tries numeric first, so a plain
// "2024" stays a number.
func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// operandKind is the inferred type of one side of a comparison.
type operandKind int

const (
	kindText operandKind = iota
	kindNumber
	kindDate
)

// operand is one side of a comparison with its inferred type. Number
// wins over date, date over text, each side inferred independently.
type operand struct {
	kind   operandKind
	number float64
	date   time.Time
	text   string
}

func inferOperand(s string) operand {
	if n, ok := parseNumber(s); ok {
		return operand{kind: kindNumber, number: n, text: s}
	}
	if d, ok := parseDate(s); ok {
		return operand{kind: kindDate, date: d, text: s}
	}
	return operand{kind: kindText, text: s}
}
