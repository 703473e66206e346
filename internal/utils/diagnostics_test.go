package utils

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestDiagnostics(level DiagnosticLevel) (*DiagnosticSystem, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	d := NewDiagnosticSystem(level)
	d.SetOutput(&out, &errOut)
	return d, &out, &errOut
}

func TestDiagnosticLevels(t *testing.T) {
	d, out, errOut := newTestDiagnostics(DiagnosticInfo)

	d.Info("parsed %d files", 2)
	d.Verbose("hidden")
	d.Error("failed: %s", "boom")

	assert.Equal(t, "[INFO] parsed 2 files\n", out.String())
	assert.Equal(t, "[ERROR] failed: boom\n", errOut.String())
}

func TestDiagnosticQuietSuppressesInfo(t *testing.T) {
	d, out, errOut := newTestDiagnostics(DiagnosticError)

	d.Info("hidden")
	d.Success("hidden")
	d.Error("shown")

	assert.Empty(t, out.String())
	assert.Equal(t, "[ERROR] shown\n", errOut.String())
}

func TestDiagnosticProgress(t *testing.T) {
	d, out, errOut := newTestDiagnostics(DiagnosticInfo)

	d.StartProgress("Parsing %s", "lottery")
	d.EndProgress(true)
	d.StartProgress("Writing manifest")
	d.EndProgress(false)
	d.EndProgress(true)

	assert.Equal(t, "✓ Parsing lottery\n", out.String())
	assert.Equal(t, "✗ Writing manifest\n", errOut.String())
}

func TestDiagnosticSummaryIsSorted(t *testing.T) {
	d, out, _ := newTestDiagnostics(DiagnosticInfo)

	d.Indent()
	d.List("lottery")
	d.Unindent()
	d.Summary("Done", map[string]interface{}{"packages": 2, "methods": 7, "exports": 9})

	assert.Equal(t, "  - lottery\n\nDone\n   exports: 9\n   methods: 7\n   packages: 2\n\n", out.String())
}
