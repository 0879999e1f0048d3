package main

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"github.com/spf13/cobra"
	"github.com/vango-dev/reactor/reactor"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const banner = `
  ┬─┐┌─┐┌─┐┌─┐┌┬┐┌─┐┬─┐
  ├┬┘├┤ ├─┤│   │ │ │├┬┘
  ┴└─└─┘┴ ┴└─┘ ┴ └─┘┴└─
`

func main() {
	rootCmd := &cobra.Command{
		Use:   "reactor",
		Short: "A glitch-free reactive value-propagation engine",
		Long: `reactor is a dependency-graph engine for sources, derived values,
and effects.

  • Push notification with lazy pull recomputation
  • Glitch-free: a derived never observes a partially-updated graph
  • Batched writes; effects run once the outermost batch exits
  • Cycle detection, fatal to the current read`,
		Version:       buildVersionString(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	rootCmd.AddCommand(
		demoCmd(),
		benchCmd(),
		serveCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		slog.Default().With("component", "cli").Error("command failed", "error", err)
		fmt.Fprintf(os.Stderr, "\033[31mError:\033[0m %s\n", err)
		os.Exit(1)
	}
}

// buildVersionString is what --version on the root command prints: build
// metadata plus the one engine tunable a caller might actually need to know
// at a glance, the cycle-guard drain-pass limit.
func buildVersionString() string {
	return fmt.Sprintf(
		"reactor %s (commit %s, built %s)\n  %s %s/%s\n  cycle guard limit: %d drain passes",
		version, commit, date, runtime.Version(), runtime.GOOS, runtime.GOARCH, reactor.CycleGuardLimit,
	)
}

func printBanner() {
	fmt.Print(banner)
}

func success(format string, args ...any) {
	fmt.Printf("\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

func info(format string, args ...any) {
	fmt.Printf("  %s\n", fmt.Sprintf(format, args...))
}

func errorMsg(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "\033[31m✗\033[0m %s\n", fmt.Sprintf(format, args...))
}
