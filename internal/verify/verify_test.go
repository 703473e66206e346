package verify

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	kerrors "github.com/kryolite/kryogen/internal/errors"
	"github.com/kryolite/kryogen/internal/models"
	"github.com/kryolite/kryogen/internal/verify/wasmtest"
)

func counterRecord() models.ContractRecord {
	return models.ContractRecord{
		Name: "T",
		Methods: []models.MethodRecord{
			{Name: "GetCount", Readonly: true, Params: []models.ParamRecord{}, ReturnType: "uint64"},
			{Name: "Increment", Params: []models.ParamRecord{}, ReturnType: models.VoidType},
		},
	}
}

func TestVerifyMatchingBinary(t *testing.T) {
	binary := wasmtest.Module{
		Imports: []string{"__return", "__exit"},
		Exports: []string{"__init", "__destroy", "__state", "GetCount", "Increment", "__malloc"},
	}.Bytes()

	report, err := NewVerifier(zaptest.NewLogger(t)).Verify(context.Background(), binary, counterRecord())
	require.NoError(t, err)
	assert.True(t, report.OK())
	assert.True(t, report.HasState)
	assert.Equal(t, []string{"GetCount", "Increment", "__destroy", "__init", "__malloc", "__state"}, report.Exports)
}

func TestVerifyMissingMethod(t *testing.T) {
	binary := wasmtest.Module{Exports: []string{"__init", "__destroy", "GetCount"}}.Bytes()

	report, err := NewVerifier(nil).Verify(context.Background(), binary, counterRecord())
	require.Error(t, err)
	assert.True(t, kerrors.HasCode(err, kerrors.VerificationErrorCode))
	assert.Contains(t, err.Error(), "missing exports Increment")
	assert.Equal(t, []string{"Increment"}, report.Missing)
	assert.False(t, report.HasState)
}

func TestVerifyMissingEntryPoints(t *testing.T) {
	binary := wasmtest.Module{Exports: []string{"GetCount", "Increment"}}.Bytes()

	report, err := NewVerifier(nil).Verify(context.Background(), binary, counterRecord())
	require.Error(t, err)
	assert.Equal(t, []string{"__init", "__destroy"}, report.Missing)
}

func TestVerifyUnknownImport(t *testing.T) {
	binary := wasmtest.Module{
		Imports: []string{"__return", "__sleep"},
		Exports: []string{"__init", "__destroy", "GetCount", "Increment"},
	}.Bytes()

	report, err := NewVerifier(nil).Verify(context.Background(), binary, counterRecord())
	require.Error(t, err)
	assert.Equal(t, []string{"__sleep"}, report.UnknownImports)
	assert.Contains(t, err.Error(), "unknown host imports __sleep")
}

func TestVerifyInvalidBinary(t *testing.T) {
	_, err := NewVerifier(nil).Verify(context.Background(), []byte("not wasm"), counterRecord())
	require.Error(t, err)
	assert.True(t, kerrors.HasCode(err, kerrors.VerificationErrorCode))
}
