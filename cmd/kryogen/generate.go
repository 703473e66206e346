package main

import (
	"github.com/spf13/cobra"

	"github.com/kryolite/kryogen/internal/cli"
)

func newGenerateCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "generate [directories...]",
		Short: "Generate export wrappers and manifests (default command)",
		Long: `Generate scans the given directories, ./... when none are given, and
processes every package that declares a //kryolite:smart_contract type. The first
package that fails stops the run before its manifest is written.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, opts, args)
		},
	}
}

func runGenerate(cmd *cobra.Command, opts *options, args []string) error {
	config, err := loadConfig(opts)
	if err != nil {
		return report(newReporter(cmd, nil), err)
	}

	diagnostics := newDiagnostics(cmd, opts, config)
	reporter := newReporter(cmd, config)
	logger := newLogger(config)
	defer logger.Sync() //nolint:errcheck

	diagnostics.Header("generating contracts")

	generator := cli.NewGenerator(config, diagnostics, logger)
	if err := generator.Run(args); err != nil {
		return report(reporter, err)
	}

	summary := generator.GetSummary()
	diagnostics.Summary("Generation Complete!", map[string]interface{}{
		"Packages scanned":    summary.PackagesScanned,
		"Contracts generated": summary.ContractsGenerated,
		"Methods exported":    summary.MethodsExported,
		"Literals rewritten":  summary.LiteralsRewritten,
	})
	if config.Verbose {
		diagnostics.Section("Generated Files")
		for _, file := range summary.GeneratedFiles {
			diagnostics.List("%s", file)
		}
	}
	if summary.ContractsGenerated == 0 {
		diagnostics.Warn("No //kryolite:smart_contract type found")
	}
	return nil
}
