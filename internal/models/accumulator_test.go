package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccumulatorLifecycle(t *testing.T) {
	acc := NewAccumulator()
	assert.Equal(t, AccumulatorEmpty, acc.State())

	err := acc.Append(MethodRecord{Name: "GetCount", ReturnType: "uint64"})
	require.Error(t, err, "append before a subject is observed must fail")

	require.NoError(t, acc.Observe("Counter"))
	assert.Equal(t, AccumulatorAccumulating, acc.State())

	require.NoError(t, acc.Observe("KRC721"))
	assert.Equal(t, "Counter", acc.Name(), "only the first subject names the contract")

	require.NoError(t, acc.Append(MethodRecord{Name: "GetCount", Readonly: true, ReturnType: "uint64"}))
	require.NoError(t, acc.Append(MethodRecord{Name: "Increment", ReturnType: VoidType}))

	record, err := acc.Flush()
	require.NoError(t, err)
	assert.Equal(t, AccumulatorFlushed, acc.State())
	assert.Equal(t, "Counter", record.Name)
	assert.Equal(t, []string{"GetCount", "Increment"}, record.MethodNames())
	assert.NotNil(t, record.Methods[0].Params, "params are never nil so they encode as []")

	assert.Error(t, acc.Observe("Other"))
	assert.Error(t, acc.Append(MethodRecord{Name: "Late"}))
	_, err = acc.Flush()
	assert.Error(t, err)
}

func TestAccumulatorRejectsDuplicates(t *testing.T) {
	acc := NewAccumulator()
	require.NoError(t, acc.Observe("Counter"))
	require.NoError(t, acc.Append(MethodRecord{Name: "GetCount", ReturnType: "uint64"}))

	err := acc.Append(MethodRecord{Name: "GetCount", ReturnType: "uint64"})
	assert.Error(t, err)
}

func TestAccumulatorRejectsEmptySubject(t *testing.T) {
	acc := NewAccumulator()
	assert.Error(t, acc.Observe(""))
	assert.Equal(t, AccumulatorEmpty, acc.State())
}

func TestAccumulatorsAreIndependent(t *testing.T) {
	first := NewAccumulator()
	second := NewAccumulator()

	require.NoError(t, first.Observe("Lottery"))
	require.NoError(t, first.Append(MethodRecord{Name: "BuyTicket", ReturnType: VoidType}))

	require.NoError(t, second.Observe("Beer"))
	record, err := second.Flush()
	require.NoError(t, err)

	assert.Equal(t, "Beer", record.Name)
	assert.Empty(t, record.Methods)
}

func TestDeclKind(t *testing.T) {
	assert.True(t, DeclQuery.IsExported())
	assert.True(t, DeclMutation.IsExported())
	assert.True(t, DeclStaticCall.IsExported())
	assert.False(t, DeclConstructor.IsExported())
	assert.False(t, DeclIgnored.IsExported())
	assert.Equal(t, "mutation", DeclMutation.String())
}

func TestBlockClaims(t *testing.T) {
	inherent := Block{Kind: InherentBlock, Subject: "Lottery"}
	assert.True(t, inherent.Claims("Anything"))

	iface := Block{Kind: InterfaceBlock, Subject: "KRC721", Methods: []string{"BalanceOf", "OwnerOf"}}
	assert.True(t, iface.Claims("OwnerOf"))
	assert.False(t, iface.Claims("BuyTicket"))
}
