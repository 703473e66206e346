package kryolite

import (
	"encoding/json"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type counter struct {
	Count uint64 `json:"count"`
}

func useRecordingHost(t *testing.T) *RecordingHost {
	t.Helper()
	h := NewRecordingHost()
	previous := SetHost(h)
	t.Cleanup(func() { SetHost(previous) })
	return h
}

func mustAddress(t *testing.T, s string) Address {
	t.Helper()
	a, err := ParseAddress(s)
	require.NoError(t, err)
	return a
}

func TestHandleTable(t *testing.T) {
	useRecordingHost(t)
	before := Live()

	first := Register(&counter{Count: 1})
	second := Register(&counter{Count: 2})
	t.Cleanup(func() {
		Release(first)
		Release(second)
	})

	assert.NotZero(t, first)
	assert.NotEqual(t, first, second)
	assert.Equal(t, before+2, Live())

	assert.Equal(t, uint64(1), Lookup[*counter](first).Count)
	assert.Equal(t, uint64(2), Latest[*counter]().Count)

	_, ok := TryLookup[*Address](first)
	assert.False(t, ok, "a handle only resolves to the type it was registered with")

	assert.True(t, Release(second))
	assert.False(t, Release(second))
	assert.Equal(t, uint64(1), Latest[*counter]().Count)
}

func TestLatestWithoutInstance(t *testing.T) {
	type unused struct{}
	assert.Nil(t, Latest[*unused]())
}

func TestLookupUnknownHandleExits(t *testing.T) {
	h := useRecordingHost(t)

	assert.PanicsWithError(t, "kryolite: contract exited with code -1", func() {
		Lookup[*counter](0)
	})
	assert.Equal(t, []string{"__exit"}, h.CallNames())
}

func TestRequire(t *testing.T) {
	h := useRecordingHost(t)

	assert.NotPanics(t, func() { Require(true) })
	assert.Panics(t, func() { Require(false) })
	require.Len(t, h.Calls, 1)
	assert.Equal(t, Call{Name: "__exit", Args: []any{int32(-1)}}, h.Calls[0])
}

func TestPushReturnJSON(t *testing.T) {
	h := useRecordingHost(t)

	PushReturnJSON(counter{Count: 7})
	PushReturnJSON(uint64(42))
	PushReturn("raw")

	require.Len(t, h.Returned, 3)
	assert.JSONEq(t, `{"count":7}`, string(h.Returned[0]))
	assert.Equal(t, "42", string(h.Returned[1]))
	assert.Equal(t, "raw", string(h.Returned[2]))
}

func TestEvent(t *testing.T) {
	h := useRecordingHost(t)
	winner := mustAddress(t, "kryo:abcdefghijklmnopqrstu")

	Event("AnnounceWinner", winner, uint64(5))
	Event("RegistrationsOpen")

	require.Len(t, h.Events, 2)
	assert.Equal(t, []EventValue{
		{Type: "str", Value: []byte("AnnounceWinner")},
		{Type: "Address", Value: winner[:]},
		{Type: "&u64", Value: []byte{5, 0, 0, 0, 0, 0, 0, 0}},
	}, h.Events[0])
	assert.Equal(t, []EventValue{{Type: "str", Value: []byte("RegistrationsOpen")}}, h.Events[1])
}

func TestPrintln(t *testing.T) {
	h := useRecordingHost(t)

	Println("hello")
	Println(true)
	Println(int32(-2))
	Println(map[string]int{"a": 1})

	assert.Equal(t, []EventValue{
		{Type: "str", Value: []byte("hello")},
		{Type: "&bool", Value: []byte{1}},
		{Type: "&i32", Value: []byte{0xfe, 0xff, 0xff, 0xff}},
		{Type: "str", Value: []byte(`{"a":1}`)},
	}, h.Printed)
}

func TestSubmitStateIsDeterministic(t *testing.T) {
	h := useRecordingHost(t)
	state := map[string]uint64{"b": 2, "a": 1, "c": 3}

	SubmitState(state)
	SubmitState(state)

	require.Len(t, h.States, 2)
	assert.Equal(t, h.States[0], h.States[1])

	var decoded map[string]uint64
	require.NoError(t, DecodeState(h.States[0], &decoded))
	assert.Equal(t, state, decoded)
}

func TestTransfers(t *testing.T) {
	h := useRecordingHost(t)
	owner := mustAddress(t, "kryo:aaaaaaaaaaaaaaaaaaaaa")
	token := U256FromUint64(9)

	owner.Transfer(100)
	KRC721Event.Transfer(&NullAddress, &owner, &token)
	KRC721Event.Approval(&owner, &NullAddress, &token)
	KRC721Event.Consume(&owner, &token)

	assert.Equal(t, []string{"__transfer", "__transfer_token", "__approval", "__consume_token"}, h.CallNames())
	assert.Equal(t, []any{owner, uint64(100)}, h.Calls[0].Args)
}

func TestAddress(t *testing.T) {
	_, err := ParseAddress("short")
	assert.Error(t, err)

	a := mustAddress(t, "kryo:abcdefghijklmnopqrstu")
	assert.False(t, a.IsNull())
	assert.True(t, NullAddress.IsNull())

	data, err := json.Marshal(a)
	require.NoError(t, err)
	assert.Equal(t, `"kryo:abcdefghijklmnopqrstu"`, string(data))

	var decoded Address
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, a, decoded)
}

func TestU256Arithmetic(t *testing.T) {
	useRecordingHost(t)
	a := U256FromUint64(1000)
	b := U256FromUint64(7)

	assert.Equal(t, U256FromUint64(1007), a.Add(b))
	assert.Equal(t, U256FromUint64(993), a.Sub(b))
	assert.Equal(t, U256FromUint64(7000), a.Mul(b))
	assert.Equal(t, U256FromUint64(142), a.Div(b))
	assert.Equal(t, U256FromUint64(6), a.Rem(b))
	assert.Equal(t, 1, a.Cmp(b))

	max := U256FromBig(new(big.Int).Sub(two256, big.NewInt(1)))
	assert.True(t, max.Add(U256FromUint64(1)).IsZero(), "addition wraps modulo 2^256")
	assert.Equal(t, max, U256{}.Sub(U256FromUint64(1)))

	assert.Panics(t, func() { a.Div(U256{}) })
}

func TestU256Text(t *testing.T) {
	token := Sha256([]byte("Kryolite Lottery Ticket #1"))

	parsed, err := ParseU256(token.String())
	require.NoError(t, err)
	assert.Equal(t, token, parsed)

	data, err := json.Marshal(token)
	require.NoError(t, err)
	var decoded U256
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, token, decoded)

	_, err = ParseU256("0OIl")
	assert.Error(t, err, "characters outside the alphabet are rejected")
}

func TestContext(t *testing.T) {
	owner := mustAddress(t, "kryo:ownerownerownerownero")
	sender := mustAddress(t, "kryo:sendersendersendersen")

	SetContext(ContractData{Owner: owner, Balance: 500}, TransactionData{From: sender, Value: 100})
	t.Cleanup(func() { SetContext(ContractData{}, TransactionData{}) })

	assert.Equal(t, owner, Contract().Owner)
	assert.Equal(t, uint64(500), Contract().Balance)
	assert.Equal(t, sender, Transaction().From)
	assert.Equal(t, uint64(100), Transaction().Value)
}
