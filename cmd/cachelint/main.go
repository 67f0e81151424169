package main

import (
	"fmt"
	"runtime/debug"
	"strings"

	"github.com/addonreview/cachelint/cmd/cachelint/commands"
	"github.com/addonreview/cachelint/cmd/cachelint/commands/cmdutil"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// getVersionInfo returns version information, prioritizing ldflags values over build info
func getVersionInfo() (string, string, string) {
	if version != "dev" || commit != "none" || date != "unknown" {
		return version, commit, date
	}

	buildInfo, ok := debug.ReadBuildInfo()
	if !ok {
		return version, commit, date
	}

	moduleVersion := version
	if buildInfo.Main.Version != "" && buildInfo.Main.Version != "(devel)" {
		moduleVersion = buildInfo.Main.Version
	}

	vcsCommit := commit
	vcsTime := date

	for _, setting := range buildInfo.Settings {
		switch setting.Key {
		case "vcs.revision":
			if len(setting.Value) >= 7 {
				vcsCommit = setting.Value[:7] // Short commit hash
			} else {
				vcsCommit = setting.Value
			}
		case "vcs.time":
			vcsTime = setting.Value
		}
	}

	return moduleVersion, vcsCommit, vcsTime
}

var rootCmd = &cobra.Command{
	Use:   "cachelint",
	Short: "Find platform requests that skip the cache path segment in addon scripts",
	Long: `Review client-side addon scripts for requests to the platform domains that
bypass the /cache/ path segment.

Checks:
- fetch, $.get, $.post and $.ajax calls with a literal URL on shoptet.cz or
  myshoptet.com that lacks /cache/ (blocker)
- direct XMLHttpRequest construction (recommendation)

Findings are reported on the console, as GitHub Actions annotations, JSON, SARIF
or plain text. The command exits with status 1 when a blocker is found.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version and build information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		currentVersion, currentCommit, currentDate := getVersionInfo()
		fmt.Fprintf(cmd.OutOrStdout(), "cachelint %s\n", currentVersion)
		if currentCommit != "none" && currentCommit != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "Build: %s\n", currentCommit)
		}
		if currentDate != "unknown" && currentDate != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "Built: %s\n", currentDate)
		}
	},
}

func init() {
	currentVersion, currentCommit, currentDate := getVersionInfo()

	rootCmd.Version = currentVersion

	var versionTemplate strings.Builder
	versionTemplate.WriteString(`{{printf "%s" .Version}}`)

	if currentCommit != "none" && currentCommit != "" {
		versionTemplate.WriteString("\nBuild: " + currentCommit)
	}

	if currentDate != "unknown" && currentDate != "" {
		versionTemplate.WriteString("\nBuilt: " + currentDate)
	}

	rootCmd.SetVersionTemplate(versionTemplate.String() + "\n")

	commands.Apply(rootCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		cmdutil.Die(err)
	}
}
