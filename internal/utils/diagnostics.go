package utils

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/fatih/color"
)

// DiagnosticLevel represents the level of diagnostic output
type DiagnosticLevel int

const (
	DiagnosticSilent DiagnosticLevel = iota
	DiagnosticError
	DiagnosticWarn
	DiagnosticInfo
	DiagnosticVerbose
	DiagnosticDebug
)

// DiagnosticSystem provides structured, user-friendly output
type DiagnosticSystem struct {
	level     DiagnosticLevel
	useColors bool
	showTime  bool
	output    io.Writer
	errorOut  io.Writer
	indent    int

	progress      string
	progressStart time.Time
}

// NewDiagnosticSystem creates a new diagnostic system
func NewDiagnosticSystem(level DiagnosticLevel) *DiagnosticSystem {
	return &DiagnosticSystem{
		level:     level,
		useColors: shouldUseColors(),
		showTime:  level >= DiagnosticVerbose,
		output:    os.Stdout,
		errorOut:  os.Stderr,
	}
}

// NewQuietDiagnostics creates a diagnostic system that only shows errors
func NewQuietDiagnostics() *DiagnosticSystem {
	return NewDiagnosticSystem(DiagnosticError)
}

// NewVerboseDiagnostics creates a diagnostic system with full output
func NewVerboseDiagnostics() *DiagnosticSystem {
	return NewDiagnosticSystem(DiagnosticVerbose)
}

// SetOutput redirects regular and error output. Colors and timestamps are
// turned off so the output can be compared in tests.
func (d *DiagnosticSystem) SetOutput(out, errOut io.Writer) {
	d.output = out
	d.errorOut = errOut
	d.useColors = false
	d.showTime = false
}

// Level returns the configured level
func (d *DiagnosticSystem) Level() DiagnosticLevel {
	return d.level
}

// Error is printed at every level except silent, on the error writer
func (d *DiagnosticSystem) Error(format string, args ...interface{}) {
	d.emit(DiagnosticError, d.errorOut, "ERROR", color.FgRed, format, args...)
}

func (d *DiagnosticSystem) Warn(format string, args ...interface{}) {
	d.emit(DiagnosticWarn, d.output, "WARN", color.FgYellow, format, args...)
}

func (d *DiagnosticSystem) Info(format string, args ...interface{}) {
	d.emit(DiagnosticInfo, d.output, "INFO", color.FgBlue, format, args...)
}

// Success is printed at info level with a green tag
func (d *DiagnosticSystem) Success(format string, args ...interface{}) {
	d.emit(DiagnosticInfo, d.output, "SUCCESS", color.FgGreen, format, args...)
}

func (d *DiagnosticSystem) Verbose(format string, args ...interface{}) {
	d.emit(DiagnosticVerbose, d.output, "VERBOSE", color.FgHiBlack, format, args...)
}

func (d *DiagnosticSystem) Debug(format string, args ...interface{}) {
	d.emit(DiagnosticDebug, d.output, "DEBUG", color.FgMagenta, format, args...)
}

// Header outputs the kryogen banner line
func (d *DiagnosticSystem) Header(message string) {
	if d.level >= DiagnosticInfo {
		d.colored(color.FgCyan).Fprintf(d.output, "Kryogen: %s\n", message)
	}
}

// Section creates a prominent section header
func (d *DiagnosticSystem) Section(title string) {
	if d.level >= DiagnosticInfo {
		d.colored(color.FgBlue, color.Bold).Fprintf(d.output, "%s%s\n", d.getIndent(), title)
	}
}

// List outputs a bulleted list item
func (d *DiagnosticSystem) List(format string, args ...interface{}) {
	if d.level >= DiagnosticInfo {
		fmt.Fprintf(d.output, "%s- %s\n", d.getIndent(), fmt.Sprintf(format, args...))
	}
}

// StartProgress announces a step. The matching EndProgress prints its outcome.
func (d *DiagnosticSystem) StartProgress(format string, args ...interface{}) {
	d.progress = fmt.Sprintf(format, args...)
	d.progressStart = time.Now()
	if d.level >= DiagnosticVerbose {
		fmt.Fprintf(d.output, "%s… %s\n", d.getIndent(), d.progress)
	}
}

// EndProgress closes the current step with a check mark or a cross
func (d *DiagnosticSystem) EndProgress(ok bool) {
	if d.progress == "" {
		return
	}
	step := d.progress
	d.progress = ""

	if ok && d.level < DiagnosticInfo {
		return
	}
	if !ok && d.level < DiagnosticError {
		return
	}

	mark, attr, out := "✓", color.FgGreen, d.output
	if !ok {
		mark, attr, out = "✗", color.FgRed, d.errorOut
	}

	suffix := ""
	if d.showTime {
		suffix = fmt.Sprintf(" (%s)", time.Since(d.progressStart).Round(time.Millisecond))
	}
	fmt.Fprintf(out, "%s%s %s%s\n", d.getIndent(), d.colored(attr).Sprint(mark), step, suffix)
}

// Indent increases the indentation level
func (d *DiagnosticSystem) Indent() {
	d.indent++
}

// Unindent decreases the indentation level
func (d *DiagnosticSystem) Unindent() {
	if d.indent > 0 {
		d.indent--
	}
}

// Summary outputs a final summary with statistics in key order
func (d *DiagnosticSystem) Summary(title string, stats map[string]interface{}) {
	if d.level < DiagnosticInfo {
		return
	}
	fmt.Fprintf(d.output, "\n%s\n", title)

	keys := make([]string, 0, len(stats))
	for key := range stats {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Fprintf(d.output, "   %s: %v\n", key, stats[key])
	}
	fmt.Fprintln(d.output)
}

// emit writes one tagged line when the system is at least at level
func (d *DiagnosticSystem) emit(level DiagnosticLevel, w io.Writer, tag string, attr color.Attribute, format string, args ...interface{}) {
	if d.level < level {
		return
	}

	var line strings.Builder
	line.WriteString(d.getIndent())
	if d.showTime {
		line.WriteString(time.Now().Format("15:04:05 "))
	}
	line.WriteString(d.colored(attr).Sprintf("[%s] ", tag))
	fmt.Fprintf(&line, format, args...)
	line.WriteByte('\n')

	io.WriteString(w, line.String())
}

// colored returns a color printer that honors the color setting of this system
func (d *DiagnosticSystem) colored(attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if d.useColors {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c
}

func (d *DiagnosticSystem) getIndent() string {
	return strings.Repeat("  ", d.indent)
}

// shouldUseColors determines if colors should be used
func shouldUseColors() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if os.Getenv("FORCE_COLOR") != "" {
		return true
	}
	term := os.Getenv("TERM")
	return term != "" && term != "dumb"
}
