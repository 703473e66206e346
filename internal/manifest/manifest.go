// Package manifest writes and reads the JSON interface record of a contract.
package manifest

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/tidwall/pretty"
	"go.uber.org/zap"

	kerrors "github.com/kryolite/kryogen/internal/errors"
	"github.com/kryolite/kryogen/internal/models"
)

// DefaultPath is where the manifest goes, relative to the package directory
const DefaultPath = "pkg/manifest.json"

// Document is the manifest layout. Field order is the key order on disk.
type Document struct {
	Name    string   `json:"name"`
	Methods []Method `json:"methods"`
}

// Method is one exported method in the manifest
type Method struct {
	Name         string      `json:"name"`
	Readonly     bool        `json:"readonly"`
	MethodParams []Param     `json:"method_params"`
	ReturnValue  ReturnValue `json:"return_value"`
}

// Param is one method parameter in the manifest
type Param struct {
	Name      string `json:"name"`
	ParamType string `json:"param_type"`
}

// ReturnValue describes the result of a method
type ReturnValue struct {
	ValueType string `json:"value_type"`
}

var prettyOptions = &pretty.Options{Width: 80, Indent: "  "}

// FromRecord converts a contract record to its manifest form. Parameter
// lists are never nil so they encode as [].
func FromRecord(record models.ContractRecord) Document {
	doc := Document{Name: record.Name, Methods: make([]Method, 0, len(record.Methods))}
	for _, m := range record.Methods {
		params := make([]Param, 0, len(m.Params))
		for _, p := range m.Params {
			params = append(params, Param{Name: p.Name, ParamType: p.DeclaredType})
		}
		doc.Methods = append(doc.Methods, Method{
			Name:         m.Name,
			Readonly:     m.Readonly,
			MethodParams: params,
			ReturnValue:  ReturnValue{ValueType: m.ReturnType},
		})
	}
	return doc
}

// Record converts a manifest back to a contract record
func (d Document) Record() models.ContractRecord {
	record := models.ContractRecord{Name: d.Name, Methods: make([]models.MethodRecord, 0, len(d.Methods))}
	for _, m := range d.Methods {
		params := make([]models.ParamRecord, 0, len(m.MethodParams))
		for _, p := range m.MethodParams {
			params = append(params, models.ParamRecord{Name: p.Name, DeclaredType: p.ParamType})
		}
		record.Methods = append(record.Methods, models.MethodRecord{
			Name:       m.Name,
			Readonly:   m.Readonly,
			Params:     params,
			ReturnType: m.ReturnValue.ValueType,
		})
	}
	return record
}

// Encode renders a record as pretty printed manifest JSON
func Encode(record models.ContractRecord) ([]byte, error) {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(FromRecord(record)); err != nil {
		return nil, kerrors.WrapSerializationError("manifest "+record.Name, err)
	}
	return pretty.PrettyOptions(buf.Bytes(), prettyOptions), nil
}

// Writer flushes contract records to a manifest file
type Writer struct {
	path   string
	logger *zap.Logger
}

// NewWriter creates a writer for the given manifest path
func NewWriter(path string, logger *zap.Logger) *Writer {
	if path == "" {
		path = DefaultPath
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Writer{path: path, logger: logger.With(zap.String("component", "manifest"))}
}

// Path returns the manifest path
func (w *Writer) Path() string {
	return w.path
}

// Flush writes the record in a single create or truncate write. Filesystem
// errors come back as IOFailure carrying the underlying error text.
func (w *Writer) Flush(record models.ContractRecord) error {
	data, err := Encode(record)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(w.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return kerrors.WrapFileSystemError("create directory", dir, err)
		}
	}
	if err := os.WriteFile(w.path, data, 0o644); err != nil {
		return kerrors.WrapFileSystemError("write", w.path, err)
	}

	w.logger.Debug("manifest written",
		zap.String("path", w.path),
		zap.String("contract", record.Name),
		zap.Int("methods", len(record.Methods)))
	return nil
}

// Load reads a manifest file back into a contract record
func Load(path string) (models.ContractRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.ContractRecord{}, kerrors.WrapFileSystemError("read", path, err)
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return models.ContractRecord{}, kerrors.Wrap(kerrors.MalformedInputCode, "invalid manifest "+path, err)
	}
	return doc.Record(), nil
}
