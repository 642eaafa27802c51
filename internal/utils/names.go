package utils

import (
	"strings"

	"golang.org/x/text/cases"
)

// FoldName returns the case-folded, trimmed form of a display name.
// Two names collide on a wheel when their folded forms are equal.
func FoldName(name string) string {
	return cases.Fold().String(strings.TrimSpace(name))
}

// SameName reports whether two display names collide
func SameName(a, b string) bool {
	return FoldName(a) == FoldName(b)
}
