// Package format renders lint results for terminals, CI systems and review tooling.
//
// Every formatter accepts the []error produced by the linter: *validation.Violation values for rule
// findings, *validation.Diagnostic values for files that could not be analyzed, and any other error
// as an internal failure.
package format

type Formatter interface {
	Format(results []error) (string, error)
}
