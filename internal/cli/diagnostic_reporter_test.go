package cli

import (
	"bytes"
	"go/token"
	"io/fs"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	kerrors "github.com/kryolite/kryogen/internal/errors"
)

func newTestReporter(verbose bool) (*DiagnosticReporter, *bytes.Buffer) {
	var buf bytes.Buffer
	reporter := NewDiagnosticReporter(verbose)
	reporter.SetOutput(&buf)
	return reporter, &buf
}

func TestDiagnosticReporter_ReportWarning(t *testing.T) {
	reporter, buf := newTestReporter(false)
	reporter.ReportWarning("package util has no contract")
	assert.Contains(t, buf.String(), "package util has no contract\n")
}

func TestDiagnosticReporter_MalformedInput(t *testing.T) {
	reporter, buf := newTestReporter(false)

	pos := token.Position{Filename: "lottery.go", Line: 4, Column: 6}
	err := kerrors.NewMalformedInput(pos, "contract %s has no constructor", "Lottery").
		WithSuggestion("Declare func New() *Lottery in package main").
		WithContext("root_type", "Lottery").
		WithContext("package", "./lottery")

	reporter.ReportError(err)
	output := buf.String()

	assert.Contains(t, output, "ERROR: Code Generation Failed")
	assert.Contains(t, output, "Type: Malformed Input")
	assert.Contains(t, output, "Location: lottery.go:4:6")
	assert.Contains(t, output, "Message: contract Lottery has no constructor\n")
	assert.Contains(t, output, "   Package: ./lottery\n   Contract: Lottery\n")
	assert.Contains(t, output, "   1. Declare func New() *Lottery in package main")
	assert.Contains(t, output, "Contract Requirements:")
	assert.NotContains(t, output, "Error Chain:")
}

func TestDiagnosticReporter_IOFailure(t *testing.T) {
	reporter, buf := newTestReporter(true)

	cause := &fs.PathError{Op: "open", Path: "pkg/manifest.json", Err: os.ErrPermission}
	reporter.ReportError(kerrors.WrapFileSystemError("write", "pkg/manifest.json", cause))
	output := buf.String()

	assert.Contains(t, output, "Type: I/O Failure")
	assert.Contains(t, output, "Message: open pkg/manifest.json: permission denied\n")
	assert.Contains(t, output, "   Path: pkg/manifest.json")
	assert.Contains(t, output, "Error Chain:")
}

func TestDiagnosticReporter_MultipleErrors(t *testing.T) {
	reporter, buf := newTestReporter(false)

	errs := kerrors.NewMultipleErrors()
	errs.Add(kerrors.New(kerrors.MalformedInputCode, "first marker is invalid"))
	errs.Add(kerrors.New(kerrors.SerializationFailureCode, "chan types have no manifest representation"))

	reporter.ReportError(errs)
	output := buf.String()

	assert.Contains(t, output, "Message: first marker is invalid")
	assert.Contains(t, output, "Type: Serialization Failure")
	assert.Contains(t, output, "Supported Types:")
}

func TestDiagnosticReporter_PlainError(t *testing.T) {
	reporter, buf := newTestReporter(false)
	reporter.ReportError(assert.AnError)
	assert.Contains(t, buf.String(), "Message: "+assert.AnError.Error())

	buf.Reset()
	reporter.ReportError(nil)
	assert.Empty(t, buf.String())
}

func TestDiagnosticReporter_ReportSuccess(t *testing.T) {
	reporter, _ := newTestReporter(true)

	var out bytes.Buffer
	reporter.ReportSuccess(&out, GenerationSummary{
		PackagesScanned:    3,
		ContractsGenerated: 1,
		MethodsExported:    4,
		LiteralsRewritten:  2,
		Manifests:          []string{"lottery/pkg/manifest.json"},
		GeneratedFiles:     []string{"lottery/build/autogen_contract.go"},
	})

	output := out.String()
	require.Contains(t, output, "Scanned 3 packages")
	assert.Contains(t, output, "Generated 1 contracts exporting 4 methods")
	assert.Contains(t, output, "Rewrote 2 unit literals")
	assert.Contains(t, output, "  - lottery/pkg/manifest.json")
	assert.Contains(t, output, "  - lottery/build/autogen_contract.go")
}

func TestFormatContextKey(t *testing.T) {
	assert.Equal(t, "Contract", formatContextKey("root_type"))
	assert.Equal(t, "Run ID", formatContextKey("run_id"))
	assert.Equal(t, "Marker Error", formatContextKey("marker_error"))
}
