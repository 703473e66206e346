// Package verify checks a compiled contract binary against its manifest.
package verify

import (
	"context"
	"sort"
	"strings"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	kerrors "github.com/kryolite/kryogen/internal/errors"
	"github.com/kryolite/kryogen/internal/models"
)

// HostModule is the import module the guest runtime binds host callbacks from
const HostModule = "env"

// HostFunctions lists the callbacks a node provides
var HostFunctions = []string{
	"__exit",
	"__rand",
	"__transfer",
	"__transfer_token",
	"__consume_token",
	"__approval",
	"__println",
	"__append_event",
	"__publish_event",
	"__return",
	"__submit_state",
}

// Report is the outcome of one verification
type Report struct {
	Exports        []string // exported function names, sorted
	Missing        []string // manifest methods or entry points without an export
	UnknownImports []string // host imports the node does not provide
	HasState       bool
}

// OK reports whether the binary satisfies the manifest
func (r *Report) OK() bool {
	return len(r.Missing) == 0 && len(r.UnknownImports) == 0
}

// Verifier compiles binaries with wazero without instantiating them
type Verifier struct {
	logger *zap.Logger
}

// NewVerifier creates a verifier
func NewVerifier(logger *zap.Logger) *Verifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Verifier{logger: logger.With(zap.String("component", "verify"))}
}

// Verify compiles the binary and checks that every manifest method, the
// constructor entry point and the destroy entry point are exported, and that
// the binary imports nothing the node does not provide.
func (v *Verifier) Verify(ctx context.Context, binary []byte, record models.ContractRecord) (*Report, error) {
	runtime := wazero.NewRuntimeWithConfig(ctx, wazero.NewRuntimeConfigInterpreter())
	defer runtime.Close(ctx)

	compiled, err := runtime.CompileModule(ctx, binary)
	if err != nil {
		return nil, kerrors.Wrap(kerrors.VerificationErrorCode, "invalid wasm binary", err)
	}
	defer compiled.Close(ctx)

	exports := compiled.ExportedFunctions()
	report := &Report{Exports: make([]string, 0, len(exports))}
	for name := range exports {
		report.Exports = append(report.Exports, name)
	}
	sort.Strings(report.Exports)
	_, report.HasState = exports["__state"]

	if init, ok := exports["__init"]; !ok {
		report.Missing = append(report.Missing, "__init")
	} else if results := init.ResultTypes(); len(results) != 1 || results[0] != api.ValueTypeI32 {
		return report, kerrors.NewVerificationError("__init must return a single i32 handle, got %s", valueTypes(results))
	}
	if _, ok := exports["__destroy"]; !ok {
		report.Missing = append(report.Missing, "__destroy")
	}
	for _, method := range record.Methods {
		if _, ok := exports[method.Name]; !ok {
			report.Missing = append(report.Missing, method.Name)
		}
	}

	known := make(map[string]bool, len(HostFunctions))
	for _, name := range HostFunctions {
		known[name] = true
	}
	for _, imported := range compiled.ImportedFunctions() {
		module, name, _ := imported.Import()
		if module == HostModule && !known[name] {
			report.UnknownImports = append(report.UnknownImports, name)
		}
	}

	v.logger.Debug("verified binary",
		zap.String("contract", record.Name),
		zap.Int("exports", len(report.Exports)),
		zap.Strings("missing", report.Missing),
		zap.Strings("unknown_imports", report.UnknownImports))

	if !report.OK() {
		var problems []string
		if len(report.Missing) > 0 {
			problems = append(problems, "missing exports "+strings.Join(report.Missing, ", "))
		}
		if len(report.UnknownImports) > 0 {
			problems = append(problems, "unknown host imports "+strings.Join(report.UnknownImports, ", "))
		}
		err := kerrors.NewVerificationError("binary does not match the manifest of %s: %s", record.Name, strings.Join(problems, "; "))
		if len(report.Missing) > 0 {
			err.WithSuggestion("Run kryogen generate again and rebuild the binary from the output directory")
		}
		return report, err
	}
	return report, nil
}

func valueTypes(types []api.ValueType) string {
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = api.ValueTypeName(t)
	}
	return "(" + strings.Join(names, ",") + ")"
}
