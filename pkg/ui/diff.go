package ui

import (
	"github.com/pmezard/go-difflib/difflib"
)

// DiffContext is the number of unchanged lines kept around each hunk.
const DiffContext = 3

// Diff returns a unified diff between the documents a and b. It is empty
// when they are identical.
func Diff(a, b []byte, fromName, toName string) (string, error) {
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(a)),
		B:        difflib.SplitLines(string(b)),
		FromFile: fromName,
		ToFile:   toName,
		Context:  DiffContext,
	})
}
