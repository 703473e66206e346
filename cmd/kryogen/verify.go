package main

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	kerrors "github.com/kryolite/kryogen/internal/errors"
	"github.com/kryolite/kryogen/internal/manifest"
	"github.com/kryolite/kryogen/internal/verify"
)

func newVerifyCmd(opts *options) *cobra.Command {
	var wasmPath string

	cmd := &cobra.Command{
		Use:   "verify --wasm <file> [--manifest <file>]",
		Short: "Check a compiled contract binary against its manifest",
		Long: `Verify compiles the binary with wazero without running it and checks that
__init, __destroy and every manifest method are exported and that the binary
imports only host functions a node provides.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := loadConfig(opts)
			if err != nil {
				return report(newReporter(cmd, nil), err)
			}
			diagnostics := newDiagnostics(cmd, opts, config)
			reporter := newReporter(cmd, config)
			logger := newLogger(config)
			defer logger.Sync() //nolint:errcheck

			binary, err := os.ReadFile(wasmPath)
			if err != nil {
				return report(reporter, kerrors.WrapFileSystemError("read", wasmPath, err))
			}
			record, err := manifest.Load(config.ManifestPath)
			if err != nil {
				return report(reporter, err)
			}

			diagnostics.StartProgress("Verifying %s against %s", wasmPath, config.ManifestPath)
			result, err := verify.NewVerifier(logger).Verify(cmd.Context(), binary, record)
			if err != nil {
				diagnostics.EndProgress(false)
				return report(reporter, err)
			}
			diagnostics.EndProgress(true)

			diagnostics.Verbose("Exports: %s", strings.Join(result.Exports, ", "))
			diagnostics.Success("%s exports all %d manifest methods", record.Name, len(record.Methods))
			return nil
		},
	}

	cmd.Flags().StringVar(&wasmPath, "wasm", "", "Compiled contract binary")
	_ = cmd.MarkFlagRequired("wasm")
	return cmd
}
