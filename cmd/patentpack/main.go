// Command patentpack is a thin CLI harness over the resolution engine: it
// wires the Variant Planner, Registry Client, and Name Resolver together
// for ad-hoc and batch organization-name resolution against a patent data
// provider. CLI argument semantics are a demonstration harness, not a
// designed UX.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Build-time variables injected via ldflags, following cmd/keyip/main.go's
// pattern.
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:     "patentpack",
		Short:   "Organization-name resolution engine for patent provider queries",
		Long:    "patentpack resolves a free-form organization name into the set of names\na patent data provider (USPTO PatentsView, EPO OPS) actually recognizes,\ncross-referencing the GLEIF legal-entity registry and a local CPC\nclassification codebook along the way.",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildDate),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.init(cmd)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&opts.configPath, "config", "c", "", "config file path (YAML)")
	pf.StringVar(&opts.logLevel, "log-level", "", "override log.level from config (debug, info, warn, error)")
	pf.StringVarP(&opts.outputFormat, "output", "o", "text", "output format; accepted but not used, every command prints text")

	root.AddCommand(
		newResolveCmd(opts),
		newRegistrySearchCmd(opts),
		newCodebookCmd(opts),
	)
	return root
}
