package generator

import (
	"bytes"
	"testing"

	"github.com/dave/dst"
	"github.com/dave/dst/decorator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func printDecls(t *testing.T, decls ...dst.Decl) string {
	t.Helper()
	file := &dst.File{Name: dst.NewIdent("p"), Decls: decls}
	var buf bytes.Buffer
	require.NoError(t, decorator.Fprint(&buf, file))
	return buf.String()
}

func TestBuilderExport(t *testing.T) {
	b := NewBuilder("kryolite")
	fn := b.Export("Get", "kryoliteExportGet",
		[]*dst.Field{b.Field("handle", b.Ident("uint32"))}, nil,
		b.Expr(b.Call(b.Runtime("PushReturnJSON"),
			b.Call(b.Method(b.Call(b.Instantiate("Lookup", b.Pointer(b.Ident("T"))), b.Ident("handle")), "Get")))))

	assert.Contains(t, printDecls(t, fn), `//export Get
func kryoliteExportGet(handle uint32) {
	kryolite.PushReturnJSON(kryolite.Lookup[*T](handle).Get())
}`)
}

func TestTagIsIdempotent(t *testing.T) {
	b := NewBuilder("kryolite")
	fn := b.Func("Ping", nil, nil)
	Tag(fn, "Ping")
	Tag(fn, "Ping")

	assert.Equal(t, dst.Decorations{"//export Ping"}, fn.Decs.Start)
}

func TestBuilderImport(t *testing.T) {
	b := NewBuilder("kryolite")
	decl := b.Import([]ImportSpec{
		{Alias: "kryolite", Path: "github.com/kryolite/kryogen/pkg/kryolite"},
		{Alias: "u", Path: "github.com/holiman/uint256"},
	})

	require.True(t, decl.Lparen)
	require.Len(t, decl.Specs, 2)
	assert.Nil(t, decl.Specs[0].(*dst.ImportSpec).Name)
	assert.Equal(t, "u", decl.Specs[1].(*dst.ImportSpec).Name.Name)
}
