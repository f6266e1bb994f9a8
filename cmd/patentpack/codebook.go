package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/JPK85/patentpack/internal/codebook"
)

func newCodebookCmd(g *globalOptions) *cobra.Command {
	var roots string
	var exportYAML string

	cmd := &cobra.Command{
		Use:   "codebook [section|class|subclass|group]",
		Short: "Fetch and disk-cache a CPC classification code list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			level := codebook.Level(args[0])
			switch level {
			case codebook.LevelSection, codebook.LevelClass, codebook.LevelSubclass, codebook.LevelGroup:
			default:
				return fmt.Errorf("codebook: unknown level %q (want section, class, subclass, or group)", args[0])
			}

			var rootPrefixes []string
			if roots != "" {
				rootPrefixes = strings.Split(roots, ",")
			}

			cb := codebook.New(codebook.Config{
				CacheDir:          g.cfg.Cache.Dir,
				APIKey:            g.cfg.USPTO.APIKey,
				RequestsPerMinute: g.cfg.USPTO.RequestsPerMinute,
			}, g.log)

			codes, meta, err := cb.Get(cmd.Context(), level, rootPrefixes)
			if err != nil {
				return err
			}

			fmt.Printf("level=%s\tsource=%s\tcount=%d\tpath=%s\n", meta.Level, meta.Source, meta.Count, meta.Path)
			for _, c := range codes {
				fmt.Println(c)
			}

			if exportYAML != "" {
				if err := codebook.ExportSnapshotYAML(exportYAML, codes, meta); err != nil {
					return err
				}
				fmt.Printf("snapshot written to %s\n", exportYAML)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&roots, "roots", "", "comma-separated root prefixes to filter the returned codes to")
	cmd.Flags().StringVar(&exportYAML, "export-yaml", "", "also write a human-inspectable YAML snapshot to this path")
	return cmd
}
