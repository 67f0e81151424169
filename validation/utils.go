package validation

import (
	"errors"
	"slices"
	"strings"
)

// SortByFile orders results by file path. Results for the same file keep their relative order, so
// violations stay in traversal order. Errors without a file are moved to the end in original order.
func SortByFile(allErrors []error) {
	if len(allErrors) == 0 {
		return
	}

	type entry struct {
		file string
		err  error
	}

	var withFile []entry
	var others []error
	for _, err := range allErrors {
		if file, ok := FileOf(err); ok {
			withFile = append(withFile, entry{file: file, err: err})
		} else {
			others = append(others, err)
		}
	}

	slices.SortStableFunc(withFile, func(a, b entry) int {
		return strings.Compare(a.file, b.file)
	})

	idx := 0
	for _, e := range withFile {
		allErrors[idx] = e.err
		idx++
	}
	for _, err := range others {
		allErrors[idx] = err
		idx++
	}
}

// FileOf returns the file a violation or diagnostic is attributed to.
func FileOf(err error) (string, bool) {
	var v *Violation
	if errors.As(err, &v) && v.File != "" {
		return v.File, true
	}

	var d *Diagnostic
	if errors.As(err, &d) && d.File != "" {
		return d.File, true
	}

	return "", false
}
