// Package commands implements the cachelint subcommands.
package commands

import "github.com/spf13/cobra"

// Apply adds the cachelint subcommands to root.
func Apply(root *cobra.Command) {
	root.AddCommand(NewLintCmd())
	root.AddCommand(NewRulesCmd())
}
