package generator

import (
	"testing"

	"github.com/dave/dst"
	"github.com/dave/dst/decorator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kryolite/kryogen/internal/models"
)

func TestPackageNameOf(t *testing.T) {
	tests := map[string]string{
		"fmt":                                      "fmt",
		"github.com/kryolite/kryogen/pkg/kryolite": "kryolite",
		"github.com/fxamacker/cbor/v2":             "cbor",
		"github.com/mattn/go-isatty":               "isatty",
		"example.com/some-lib":                     "some_lib",
		"v2":                                       "v2",
	}
	for path, expected := range tests {
		assert.Equal(t, expected, packageNameOf(path), path)
	}
}

func decorateFile(t *testing.T, source string) *models.SourceFile {
	t.Helper()
	file, err := decorator.Parse(source)
	require.NoError(t, err)
	return &models.SourceFile{Name: "source.go", Dst: file}
}

func TestImportManagerAddReferenced(t *testing.T) {
	file := decorateFile(t, `package p

import (
	"github.com/kryolite/kryogen/pkg/kryolite"
	u "github.com/holiman/uint256"
)

var a map[kryolite.Address][]*u.Int
`)
	expr := file.Dst.Decls[1].(*dst.GenDecl).Specs[0].(*dst.ValueSpec).Type

	im := NewImportManager()
	require.NoError(t, im.AddReferenced(file, expr))
	assert.Equal(t, []ImportSpec{
		{Alias: "u", Path: "github.com/holiman/uint256"},
		{Alias: "kryolite", Path: "github.com/kryolite/kryogen/pkg/kryolite"},
	}, im.Specs())
}

func TestImportManagerRejectsConflicts(t *testing.T) {
	im := NewImportManager()
	require.NoError(t, im.Add("kryolite", "github.com/kryolite/kryogen/pkg/kryolite"))
	require.NoError(t, im.Add("kryolite", "github.com/kryolite/kryogen/pkg/kryolite"))
	assert.Error(t, im.Add("kryolite", "example.com/other/kryolite"))
}

func TestImportManagerUnknownPackage(t *testing.T) {
	file := decorateFile(t, `package p

var a missing.Type
`)
	expr := file.Dst.Decls[0].(*dst.GenDecl).Specs[0].(*dst.ValueSpec).Type

	err := NewImportManager().AddReferenced(file, expr)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no import provides package missing")
}
