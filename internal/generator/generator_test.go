package generator

import (
	"go/ast"
	goparser "go/parser"
	"go/token"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/kryolite/kryogen/internal/models"
	"github.com/kryolite/kryogen/internal/parser"
	"github.com/kryolite/kryogen/internal/rewrite"
	"github.com/kryolite/kryogen/internal/transform"
)

const counterSource = `package counter

//kryolite:smart_contract
type T struct {
	Count uint64
}

func New() *T {
	return &T{Count: 1kryo}
}

func (t T) GetCount() uint64 {
	return t.Count
}

func (t *T) Add(a, b uint64) {
	t.Count += a + b
}
`

const lotterySource = `package main

import (
	"github.com/kryolite/kryogen/pkg/kryolite"
	sdk "github.com/kryolite/kryogen/pkg/kryolite"
)

//kryolite:smart_contract
//kryolite:state
type Lottery struct {
	Owner   kryolite.Address
	Tickets []kryolite.Address
}

func New() Lottery {
	return Lottery{}
}

func (l *Lottery) BuyTicket(buyer kryolite.Address, handle uint32) {}

func (l *Lottery) Winners(limit uint32) []sdk.Address {
	return l.Tickets
}

//kryolite:exported
func Version() string {
	return "1.0"
}

//kryolite:exported
func Ping() {}
`

type generated struct {
	metadata *models.PackageMetadata
	module   *models.GeneratedModule
}

func generate(t *testing.T, filename, source string) generated {
	t.Helper()
	rewriter := rewrite.New(nil)
	p := parser.NewParser(rewriter, zaptest.NewLogger(t))

	metadata, err := p.ParseSource(filename, source)
	require.NoError(t, err)
	metadata.PackagePath = "/src/contract"

	walked, err := transform.NewWalker(p, rewriter, zaptest.NewLogger(t)).Walk(metadata)
	require.NoError(t, err)

	module, err := NewGenerator("", "", zaptest.NewLogger(t)).GenerateModule(metadata, walked)
	require.NoError(t, err)
	return generated{metadata: metadata, module: module}
}

func (g generated) file(t *testing.T, name string) string {
	t.Helper()
	for _, file := range g.module.Files {
		if filepath.Base(file.Path) == name {
			return string(file.Content)
		}
	}
	t.Fatalf("no generated file %s", name)
	return ""
}

// exportsOf parses a generated file and maps each function to its export directive
func exportsOf(t *testing.T, source string) map[string]string {
	t.Helper()
	file, err := goparser.ParseFile(token.NewFileSet(), GeneratedFileName, source, goparser.ParseComments)
	require.NoError(t, err, source)

	exports := make(map[string]string)
	for _, decl := range file.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if !ok || fn.Doc == nil {
			continue
		}
		for _, comment := range fn.Doc.List {
			if symbol, found := strings.CutPrefix(comment.Text, "//export "); found {
				exports[fn.Name.Name] = symbol
			}
		}
	}
	return exports
}

func TestGenerateModuleCounter(t *testing.T) {
	g := generate(t, "counter.go", counterSource)

	assert.Equal(t, "counter", g.module.PackageName)
	assert.Equal(t, filepath.Join("/src/contract", DefaultOutputDir), g.module.OutputDir)
	assert.Equal(t, []string{InitSymbol, DestroySymbol, "GetCount", "Add"}, g.module.Exports)
	assert.Equal(t, []string{"GetCount", "Add"}, g.module.Record.MethodNames())

	require.Len(t, g.module.Files, 2)
	assert.Equal(t, filepath.Join("/src/contract/build", "counter.go"), g.module.Files[0].Path)
	assert.Equal(t, filepath.Join("/src/contract/build", GeneratedFileName), g.module.Files[1].Path)

	autogen := g.file(t, GeneratedFileName)
	assert.True(t, strings.HasPrefix(autogen, "// Code generated by kryogen. DO NOT EDIT."))
	assert.Contains(t, autogen, `import "github.com/kryolite/kryogen/pkg/kryolite"`)
	assert.Contains(t, autogen, "func kryoliteInit() uint32 {\n\treturn kryolite.Register(New())\n}")
	assert.Contains(t, autogen, "func kryoliteDestroy(handle uint32) {\n\tkryolite.Release(handle)\n}")
	assert.Contains(t, autogen,
		"func kryoliteExportGetCount(handle uint32) {\n\tkryolite.PushReturnJSON(kryolite.Lookup[*T](handle).GetCount())\n}")
	assert.Contains(t, autogen,
		"func kryoliteExportAdd(handle uint32, a uint64, b uint64) {\n\tkryolite.Lookup[*T](handle).Add(a, b)\n}")
	assert.NotContains(t, autogen, "__state")
	assert.NotContains(t, autogen, "func main()", "only main packages get an entry point")

	assert.Equal(t, map[string]string{
		"kryoliteInit":           InitSymbol,
		"kryoliteDestroy":        DestroySymbol,
		"kryoliteExportGetCount": "GetCount",
		"kryoliteExportAdd":      "Add",
	}, exportsOf(t, autogen))

	rewritten := g.file(t, "counter.go")
	assert.Contains(t, strings.ReplaceAll(rewritten, " ", ""), "Count:(1*1000000)")
	assert.NotContains(t, rewritten, "1kryo")
}

func TestGenerateModuleMainPackage(t *testing.T) {
	g := generate(t, "lottery.go", lotterySource)

	assert.Equal(t, []string{InitSymbol, DestroySymbol, StateSymbol, "BuyTicket", "Winners", "Version", "Ping"}, g.module.Exports)

	autogen := g.file(t, GeneratedFileName)
	assert.Contains(t, autogen, "instance := New()\n\treturn kryolite.Register(&instance)")
	assert.Contains(t, autogen, "func kryoliteState() {\n\tkryolite.SubmitState(kryolite.Latest[*Lottery]())\n}")
	assert.Contains(t, autogen,
		"func kryoliteExportBuyTicket(_handle uint32, buyer kryolite.Address, handle uint32) {\n\tkryolite.Lookup[*Lottery](_handle).BuyTicket(buyer, handle)\n}")
	assert.Contains(t, autogen, "kryolite.PushReturnJSON(kryolite.Lookup[*Lottery](handle).Winners(limit))")
	assert.Contains(t, autogen, "func kryoliteExportVersion() {\n\tkryolite.PushReturnJSON(Version())\n}")
	assert.NotContains(t, autogen, "kryoliteExportPing", "void package functions are exported in place")
	assert.Contains(t, autogen, "func main() {}")

	exports := exportsOf(t, autogen)
	assert.Equal(t, StateSymbol, exports["kryoliteState"])
	assert.Equal(t, "Version", exports["kryoliteExportVersion"])

	rewritten := g.file(t, "lottery.go")
	assert.Contains(t, rewritten, "//kryolite:exported\n//export Ping\nfunc Ping() {}")
	assert.Equal(t, "Ping", exportsOf(t, rewritten)["Ping"])
}

func TestGenerateModuleIsRepeatable(t *testing.T) {
	first := generate(t, "lottery.go", lotterySource)
	second := generate(t, "lottery.go", lotterySource)

	require.Len(t, second.module.Files, len(first.module.Files))
	for i := range first.module.Files {
		assert.Equal(t, string(first.module.Files[i].Content), string(second.module.Files[i].Content))
	}
}

func TestGenerateModuleRequiresWalk(t *testing.T) {
	_, err := NewGenerator("", "", nil).GenerateModule(&models.PackageMetadata{}, nil)
	require.Error(t, err)
}

func TestOutputDir(t *testing.T) {
	assert.Equal(t, filepath.Join("pkg", "build"), NewGenerator("", "", nil).OutputDir("pkg"))
	assert.Equal(t, "/tmp/out", NewGenerator("", "/tmp/out", nil).OutputDir("pkg"))
}

func TestHandleName(t *testing.T) {
	assert.Equal(t, "handle", handleName(nil))
	assert.Equal(t, "_handle", handleName([]string{"handle"}))
	assert.Equal(t, "__handle", handleName([]string{"_handle", "handle"}))
}
