package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kryolite/kryogen/internal/cli"
	"github.com/kryolite/kryogen/internal/utils"
)

// options holds the persistent flags shared by every command
type options struct {
	configPath string
	verbose    bool
	quiet      bool
	output     string
	manifest   string
}

// reportedError marks an error the diagnostic reporter already printed
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "kryogen [directories...]",
		Short: "Kryolite smart contract code generator",
		Long: `kryogen turns annotated Go contract packages into WebAssembly-ready sources.

For every package with a //kryolite:smart_contract type it rewrites unit literals
such as 100kryo, writes the sources plus autogen_contract.go with the //export
surface into the output directory and writes the contract manifest.

Directory Patterns:
  ./...              Scan the current directory and all subdirectories
  ./contracts/...    Scan contracts and all its subdirectories
  ./lottery          Scan only the given directory`,
		Example: `  kryogen ./...                     # Generate every contract in the module
  kryogen generate ./lottery        # Generate a single package
  kryogen --output wasm ./...       # Write generated sources to <pkg>/wasm
  kryogen clean ./...               # Remove generated output and manifests
  kryogen verify --wasm lottery.wasm --manifest lottery/pkg/manifest.json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, opts, args)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "Config file (default ./kryogen.yaml when present)")
	flags.BoolVar(&opts.verbose, "verbose", false, "Enable verbose output and structured logs")
	flags.BoolVar(&opts.quiet, "quiet", false, "Only show errors")
	flags.StringVar(&opts.output, "output", "", "Output directory, relative to each package (default build)")
	flags.StringVar(&opts.manifest, "manifest", "", "Manifest path, relative to each package (default pkg/manifest.json)")
	root.MarkFlagsMutuallyExclusive("verbose", "quiet")

	root.AddCommand(newGenerateCmd(opts))
	root.AddCommand(newCleanCmd(opts))
	root.AddCommand(newVerifyCmd(opts))

	return root
}

// loadConfig reads the config file and applies flag overrides
func loadConfig(opts *options) (*cli.Config, error) {
	config, err := cli.LoadConfig(opts.configPath)
	if err != nil {
		return nil, err
	}
	if opts.output != "" {
		config.OutputDir = opts.output
	}
	if opts.manifest != "" {
		config.ManifestPath = opts.manifest
	}
	if opts.verbose {
		config.Verbose = true
	}
	return config, nil
}

func newDiagnostics(cmd *cobra.Command, opts *options, config *cli.Config) *utils.DiagnosticSystem {
	var diagnostics *utils.DiagnosticSystem
	switch {
	case opts.quiet:
		diagnostics = utils.NewQuietDiagnostics()
	case config != nil && config.Verbose:
		diagnostics = utils.NewVerboseDiagnostics()
	default:
		diagnostics = utils.NewDiagnosticSystem(utils.DiagnosticInfo)
	}
	if redirected(cmd.OutOrStdout(), os.Stdout) || redirected(cmd.ErrOrStderr(), os.Stderr) {
		diagnostics.SetOutput(cmd.OutOrStdout(), cmd.ErrOrStderr())
	}
	return diagnostics
}

func newReporter(cmd *cobra.Command, config *cli.Config) *cli.DiagnosticReporter {
	reporter := cli.NewDiagnosticReporter(config != nil && config.Verbose)
	reporter.SetOutput(cmd.ErrOrStderr())
	return reporter
}

// newLogger returns a development logger in verbose mode and a no-op logger otherwise
func newLogger(config *cli.Config) *zap.Logger {
	if config == nil || !config.Verbose {
		return zap.NewNop()
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

// report prints err through the reporter and marks it as printed
func report(reporter *cli.DiagnosticReporter, err error) error {
	reporter.ReportError(err)
	return &reportedError{err: err}
}

func redirected(w io.Writer, std *os.File) bool {
	f, ok := w.(*os.File)
	return !ok || f != std
}
