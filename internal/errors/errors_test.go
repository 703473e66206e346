package errors

import (
	stderrors "errors"
	"go/token"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorCodeString(t *testing.T) {
	tests := []struct {
		code     ErrorCode
		expected string
	}{
		{MalformedInputCode, "MalformedInput"},
		{IOFailureCode, "IOFailure"},
		{SerializationFailureCode, "SerializationFailure"},
		{ConfigurationErrorCode, "ConfigurationError"},
		{VerificationErrorCode, "VerificationError"},
		{UnknownErrorCode, "UnknownError"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.code.String())
		})
	}
}

func TestBaseErrorFormatting(t *testing.T) {
	pos := token.Position{Filename: "contract.go", Line: 12, Column: 3}
	err := NewMalformedInput(pos, "constructor %s is missing", "New")

	assert.Equal(t, "contract.go:12:3: constructor New is missing", err.Error())
	assert.Equal(t, MalformedInputCode, err.ErrorCode())
	assert.Equal(t, 12, err.Location().Line)

	err.WithSuggestion("declare func New() *T").WithContext("type", "T")
	assert.Equal(t, []string{"declare func New() *T"}, err.Suggestions())
	assert.Equal(t, "T", err.Context()["type"])
}

func TestWrapKeepsCauseInChain(t *testing.T) {
	cause := stderrors.New("unexpected token")
	err := WrapParseError("contract.go", cause)

	assert.True(t, Is(err, cause))
	assert.Contains(t, err.Error(), "failed to parse contract.go")
	assert.Contains(t, err.Error(), "unexpected token")
	assert.Equal(t, MalformedInputCode, CodeOf(err))
}

func TestFileSystemErrorSurfacesRawMessage(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "pkg")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	mkErr := os.MkdirAll(filepath.Join(blocker, "nested"), 0o755)
	require.Error(t, mkErr)

	err := WrapFileSystemError("create directory", blocker, mkErr)
	assert.Equal(t, mkErr.Error(), err.Error())
	assert.Equal(t, IOFailureCode, err.ErrorCode())

	var pathErr *fs.PathError
	assert.True(t, stderrors.As(err, &pathErr))
}

func TestMultipleErrors(t *testing.T) {
	multi := NewMultipleErrors()
	assert.NoError(t, multi.ErrOrNil())

	multi.Add(New(MalformedInputCode, "first"))
	multi.Add(New(SerializationFailureCode, "second"))

	require.Error(t, multi.ErrOrNil())
	assert.Contains(t, multi.Error(), "multiple errors (2 total)")
	assert.True(t, multi.HasCode(SerializationFailureCode))
	assert.False(t, multi.HasCode(IOFailureCode))
	assert.True(t, HasCode(multi, MalformedInputCode))
}
