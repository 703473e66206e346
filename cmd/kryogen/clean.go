package main

import (
	"github.com/spf13/cobra"

	"github.com/kryolite/kryogen/internal/cli"
)

func newCleanCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "clean [directories...]",
		Short: "Remove generated output directories and manifests",
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := loadConfig(opts)
			if err != nil {
				return report(newReporter(cmd, nil), err)
			}
			diagnostics := newDiagnostics(cmd, opts, config)

			if len(args) == 0 {
				args = []string{"./..."}
			}

			diagnostics.StartProgress("Cleaning generated files")
			removed, err := cli.NewCleaner(config).CleanGeneratedFiles(args)
			if err != nil {
				diagnostics.EndProgress(false)
				return report(newReporter(cmd, config), err)
			}
			diagnostics.EndProgress(true)

			for _, path := range removed {
				diagnostics.List("removed %s", path)
			}
			diagnostics.Success("Removed %d generated paths", len(removed))
			return nil
		},
	}
}
