package domain

import "golang.org/x/text/cases"

// Fold returns the Unicode case-folded form of s. Word comparisons use it so
// that "Кот" and "кот" match. A Caser is stateful, so a fresh one is built
// per call.
func Fold(s string) string {
	return cases.Fold().String(s)
}
