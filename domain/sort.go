package domain

import (
	"fmt"
	"strings"
)

// SortMode selects the ranking applied by the upstream listing.
type SortMode string

const (
	SortTop SortMode = "top"
	SortNew SortMode = "new"
	SortHot SortMode = "hot"
)

// SortModes lists every sort mode in display order.
var SortModes = []SortMode{SortTop, SortNew, SortHot}

// ParseSortMode resolves a case-insensitive sort name.
func ParseSortMode(s string) (SortMode, error) {
	mode := SortMode(strings.ToLower(strings.TrimSpace(s)))
	if !mode.Valid() {
		return "", fmt.Errorf("unknown sort mode %q", s)
	}
	return mode, nil
}

// Valid reports whether s is one of the known sort modes.
func (s SortMode) Valid() bool {
	for _, m := range SortModes {
		if s == m {
			return true
		}
	}
	return false
}

// Label is the capitalized name shown in tabs.
func (s SortMode) Label() string {
	if s == "" {
		return ""
	}
	return strings.ToUpper(string(s[:1])) + string(s[1:])
}

// Step returns the sort mode n positions away, wrapping around.
func (s SortMode) Step(n int) SortMode {
	cur := 0
	for i, m := range SortModes {
		if m == s {
			cur = i
			break
		}
	}
	next := (cur + n) % len(SortModes)
	if next < 0 {
		next += len(SortModes)
	}
	return SortModes[next]
}
