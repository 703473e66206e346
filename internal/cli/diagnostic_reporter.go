package cli

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/fatih/color"

	kerrors "github.com/kryolite/kryogen/internal/errors"
)

// DiagnosticReporter prints failures with their location, context and suggestions
type DiagnosticReporter struct {
	verbose bool
	out     io.Writer
}

// NewDiagnosticReporter creates a reporter writing to stderr
func NewDiagnosticReporter(verbose bool) *DiagnosticReporter {
	return &DiagnosticReporter{
		verbose: verbose,
		out:     os.Stderr,
	}
}

// SetOutput redirects the reporter
func (r *DiagnosticReporter) SetOutput(out io.Writer) {
	r.out = out
}

// ReportWarning prints a single warning line
func (r *DiagnosticReporter) ReportWarning(message string) {
	orange := color.New(color.FgYellow, color.Bold)
	orange.Fprint(r.out, "! ")
	fmt.Fprintf(r.out, "%s\n", message)
}

// ReportError prints err. Kryogen errors anywhere in the chain get the full
// treatment; anything else is printed as is.
func (r *DiagnosticReporter) ReportError(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(r.out, "\nERROR: Code Generation Failed\n")
	fmt.Fprintf(r.out, "=============================\n\n")

	var multi *kerrors.MultipleErrors
	var kerr kerrors.KryogenError
	switch {
	case kerrors.As(err, &multi):
		for i, e := range multi.Errors {
			if i > 0 {
				fmt.Fprintf(r.out, "---\n\n")
			}
			r.reportKryogenError(e)
		}
	case kerrors.As(err, &kerr):
		r.reportKryogenError(kerr)
	default:
		fmt.Fprintf(r.out, "Message: %s\n\n", err.Error())
	}

	fmt.Fprintf(r.out, "\n")
}

func (r *DiagnosticReporter) reportKryogenError(err kerrors.KryogenError) {
	r.printErrorHeader(err.ErrorCode())

	// Error() already carries the location, so the message is taken without it
	message := err.Error()
	if loc := err.Location(); !loc.IsEmpty() {
		message = strings.TrimPrefix(message, loc.String()+": ")
		fmt.Fprintf(r.out, "Location: %s\n", loc.String())
	}
	fmt.Fprintf(r.out, "Message: %s\n\n", message)

	if context := err.Context(); len(context) > 0 {
		r.printContext(context)
	}
	if suggestions := err.Suggestions(); len(suggestions) > 0 {
		r.printSuggestions(suggestions)
	}
	r.printAdditionalHelp(err.ErrorCode())

	if r.verbose {
		r.printErrorChain(err)
	}
}

func (r *DiagnosticReporter) printErrorHeader(code kerrors.ErrorCode) {
	var title string
	switch code {
	case kerrors.MalformedInputCode:
		title = "Malformed Input"
	case kerrors.IOFailureCode:
		title = "I/O Failure"
	case kerrors.SerializationFailureCode:
		title = "Serialization Failure"
	case kerrors.ConfigurationErrorCode:
		title = "Configuration Error"
	case kerrors.VerificationErrorCode:
		title = "Verification Error"
	default:
		title = "Unknown Error"
	}

	fmt.Fprintf(r.out, "Type: %s\n", title)
	fmt.Fprintf(r.out, "%s\n\n", strings.Repeat("-", len(title)+6))
}

// printContext prints context entries, well-known keys first
func (r *DiagnosticReporter) printContext(context map[string]interface{}) {
	fmt.Fprintf(r.out, "Context:\n")

	importantKeys := []string{"package", "function", "root_type", "path"}
	printed := make(map[string]bool)
	for _, key := range importantKeys {
		if value, ok := context[key]; ok {
			fmt.Fprintf(r.out, "   %s: %v\n", formatContextKey(key), value)
			printed[key] = true
		}
	}

	keys := make([]string, 0, len(context))
	for key := range context {
		if !printed[key] {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Fprintf(r.out, "   %s: %v\n", formatContextKey(key), context[key])
	}

	fmt.Fprintf(r.out, "\n")
}

// formatContextKey turns snake_case keys into Title Case
func formatContextKey(key string) string {
	switch key {
	case "root_type":
		return "Contract"
	case "run_id":
		return "Run ID"
	}
	parts := strings.Split(key, "_")
	for i, part := range parts {
		if len(part) > 0 {
			parts[i] = strings.ToUpper(part[:1]) + part[1:]
		}
	}
	return strings.Join(parts, " ")
}

func (r *DiagnosticReporter) printSuggestions(suggestions []string) {
	fmt.Fprintf(r.out, "Suggestions:\n")
	for i, suggestion := range suggestions {
		lines := strings.Split(suggestion, "\n")
		fmt.Fprintf(r.out, "   %d. %s\n", i+1, lines[0])
		for _, line := range lines[1:] {
			if strings.TrimSpace(line) != "" {
				fmt.Fprintf(r.out, "      %s\n", line)
			}
		}
	}
	fmt.Fprintf(r.out, "\n")
}

func (r *DiagnosticReporter) printAdditionalHelp(code kerrors.ErrorCode) {
	switch code {
	case kerrors.MalformedInputCode:
		fmt.Fprintf(r.out, "Contract Requirements:\n")
		fmt.Fprintf(r.out, "  - One type per package carries //kryolite:smart_contract\n")
		fmt.Fprintf(r.out, "  - The package declares func New() returning that type\n")
		fmt.Fprintf(r.out, "  - Exported methods take named parameters and return at most one value\n\n")
	case kerrors.SerializationFailureCode:
		fmt.Fprintf(r.out, "Supported Types:\n")
		fmt.Fprintf(r.out, "  - Named types, pointers, slices, arrays and maps of them\n")
		fmt.Fprintf(r.out, "  - No channels, funcs, variadics or anonymous structs\n\n")
	case kerrors.VerificationErrorCode:
		fmt.Fprintf(r.out, "Rebuild the binary from the generated build directory and pass the matching manifest\n\n")
	}

	fmt.Fprintf(r.out, "Run with --verbose for more detailed output\n")
}

func (r *DiagnosticReporter) printErrorChain(err error) {
	fmt.Fprintf(r.out, "\nError Chain:\n")
	level := 1
	for err != nil {
		fmt.Fprintf(r.out, "    %d. %s\n", level, err.Error())
		err = stderrors.Unwrap(err)
		level++
	}
}

// ReportSuccess prints the summary of a successful run
func (r *DiagnosticReporter) ReportSuccess(out io.Writer, summary GenerationSummary) {
	fmt.Fprintf(out, "\nCode Generation Completed Successfully!\n")
	fmt.Fprintf(out, "=======================================\n\n")

	fmt.Fprintf(out, "Scanned %d packages\n", summary.PackagesScanned)
	if summary.ContractsGenerated > 0 {
		fmt.Fprintf(out, "Generated %d contracts exporting %d methods\n", summary.ContractsGenerated, summary.MethodsExported)
	}
	if summary.LiteralsRewritten > 0 {
		fmt.Fprintf(out, "Rewrote %d unit literals\n", summary.LiteralsRewritten)
	}

	if len(summary.Manifests) > 0 {
		fmt.Fprintf(out, "\nManifests:\n")
		for _, path := range summary.Manifests {
			fmt.Fprintf(out, "  - %s\n", path)
		}
	}
	if r.verbose && len(summary.GeneratedFiles) > 0 {
		fmt.Fprintf(out, "\nGenerated files:\n")
		for _, path := range summary.GeneratedFiles {
			fmt.Fprintf(out, "  - %s\n", path)
		}
	}
}

// GenerationSummary contains information about a generate run
type GenerationSummary struct {
	PackagesScanned    int
	ContractsGenerated int
	MethodsExported    int
	LiteralsRewritten  int
	Manifests          []string
	GeneratedFiles     []string
}
