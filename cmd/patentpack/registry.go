package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/JPK85/patentpack/internal/registry"
)

func newRegistrySearchCmd(g *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "registry-search [organization name]",
		Short: "Query the GLEIF legal-entity registry and rank candidate matches",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			client := buildRegistryClient(g)
			records := client.SearchUnion(cmd.Context(), name)
			if len(records) == 0 {
				fmt.Printf("%s\tstatus=%s\n", name, registry.StatusNoMatch)
				return nil
			}

			matches, status, _ := registry.PickTopMatches(records, name)
			fmt.Printf("%s\tstatus=%s\tcandidates=%d\n", name, status, len(records))
			for _, m := range matches {
				fmt.Printf("  lei=%s\trule=%s\tlegal=%q\thq=%s\n", m.LEI, m.Rule, m.Legal, m.HQCountry)
			}
			return nil
		},
	}
	return cmd
}
