//go:build !wasm

package kryolite

import (
	"fmt"
	"sync"
)

// ExitError is the panic value of an aborted call outside wasm
type ExitError struct {
	Code int32
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("kryolite: contract exited with code %d", e.Code)
}

// Call is one recorded host callback
type Call struct {
	Name string
	Args []any
}

// EventValue is one appended event value
type EventValue struct {
	Type  string
	Value []byte
}

// RecordingHost keeps every callback in memory
type RecordingHost struct {
	mu sync.Mutex

	RandValue float32
	Calls     []Call
	Printed   []EventValue
	Events    [][]EventValue // published events
	Returned  [][]byte
	States    [][]byte

	pending []EventValue
}

// NewRecordingHost creates an empty recording host
func NewRecordingHost() *RecordingHost {
	return &RecordingHost{}
}

func defaultHost() Host {
	return NewRecordingHost()
}

// SetContext sets the contract and transaction context seen by the next calls
func SetContext(contract ContractData, transaction TransactionData) {
	packContext(&contractData, contract.Address, contract.Owner, contract.Balance)
	packContext(&transactionData, transaction.From, transaction.To, transaction.Value)
}

func (h *RecordingHost) record(name string, args ...any) {
	h.Calls = append(h.Calls, Call{Name: name, Args: args})
}

// Exit records the call and panics with an ExitError
func (h *RecordingHost) Exit(code int32) {
	h.mu.Lock()
	h.record("__exit", code)
	h.mu.Unlock()
	panic(&ExitError{Code: code})
}

func (h *RecordingHost) Rand() float32 {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.record("__rand")
	return h.RandValue
}

func (h *RecordingHost) Transfer(to *Address, value uint64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.record("__transfer", *to, value)
}

func (h *RecordingHost) TransferToken(from, to *Address, token *U256) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.record("__transfer_token", *from, *to, *token)
}

func (h *RecordingHost) ConsumeToken(owner *Address, token *U256) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.record("__consume_token", *owner, *token)
}

func (h *RecordingHost) Approval(from, to *Address, token *U256) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.record("__approval", *from, *to, *token)
}

func (h *RecordingHost) Println(typ string, value []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.record("__println", typ, value)
	h.Printed = append(h.Printed, EventValue{Type: typ, Value: value})
}

func (h *RecordingHost) AppendEvent(typ string, value []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.record("__append_event", typ, value)
	h.pending = append(h.pending, EventValue{Type: typ, Value: value})
}

func (h *RecordingHost) PublishEvent() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.record("__publish_event")
	h.Events = append(h.Events, h.pending)
	h.pending = nil
}

func (h *RecordingHost) Return(data []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.record("__return", data)
	h.Returned = append(h.Returned, data)
}

func (h *RecordingHost) SubmitState(data []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.record("__submit_state", data)
	h.States = append(h.States, data)
}

// CallNames lists the recorded callbacks in order
func (h *RecordingHost) CallNames() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	names := make([]string, len(h.Calls))
	for i, call := range h.Calls {
		names[i] = call.Name
	}
	return names
}
