//go:build wasm

package kryolite

import "unsafe"

//go:wasmimport env __exit
func hostExit(code int32)

//go:wasmimport env __rand
func hostRand() float32

//go:wasmimport env __transfer
func hostTransfer(addr unsafe.Pointer, value uint64)

//go:wasmimport env __transfer_token
func hostTransferToken(from, to, token unsafe.Pointer)

//go:wasmimport env __consume_token
func hostConsumeToken(owner, token unsafe.Pointer)

//go:wasmimport env __approval
func hostApproval(from, to, token unsafe.Pointer)

//go:wasmimport env __println
func hostPrintln(typ unsafe.Pointer, typLen uint32, val unsafe.Pointer, valLen uint32)

//go:wasmimport env __append_event
func hostAppendEvent(typ unsafe.Pointer, typLen uint32, val unsafe.Pointer, valLen uint32)

//go:wasmimport env __publish_event
func hostPublishEvent()

//go:wasmimport env __return
func hostReturn(ptr unsafe.Pointer, length uint32)

//go:wasmimport env __submit_state
func hostSubmitState(ptr unsafe.Pointer, length uint32)

type wasmHost struct{}

func defaultHost() Host {
	return wasmHost{}
}

func (wasmHost) Exit(code int32) {
	hostExit(code)
	panic("kryolite: host returned from __exit")
}

func (wasmHost) Rand() float32 {
	return hostRand()
}

func (wasmHost) Transfer(to *Address, value uint64) {
	hostTransfer(unsafe.Pointer(to), value)
}

func (wasmHost) TransferToken(from, to *Address, token *U256) {
	hostTransferToken(unsafe.Pointer(from), unsafe.Pointer(to), unsafe.Pointer(token))
}

func (wasmHost) ConsumeToken(owner *Address, token *U256) {
	hostConsumeToken(unsafe.Pointer(owner), unsafe.Pointer(token))
}

func (wasmHost) Approval(from, to *Address, token *U256) {
	hostApproval(unsafe.Pointer(from), unsafe.Pointer(to), unsafe.Pointer(token))
}

func (wasmHost) Println(typ string, value []byte) {
	hostPrintln(unsafe.Pointer(unsafe.StringData(typ)), uint32(len(typ)), bytesPointer(value), uint32(len(value)))
}

func (wasmHost) AppendEvent(typ string, value []byte) {
	hostAppendEvent(unsafe.Pointer(unsafe.StringData(typ)), uint32(len(typ)), bytesPointer(value), uint32(len(value)))
}

func (wasmHost) PublishEvent() {
	hostPublishEvent()
}

func (wasmHost) Return(data []byte) {
	hostReturn(bytesPointer(data), uint32(len(data)))
}

func (wasmHost) SubmitState(data []byte) {
	hostSubmitState(bytesPointer(data), uint32(len(data)))
}

func bytesPointer(b []byte) unsafe.Pointer {
	if len(b) == 0 {
		return nil
	}
	return unsafe.Pointer(unsafe.SliceData(b))
}

// buffers keeps host allocated memory reachable until the host frees it
var buffers = map[uintptr][]byte{}

//export __malloc
func guestMalloc(size uint32) unsafe.Pointer {
	if size == 0 {
		return nil
	}
	buf := make([]byte, size)
	ptr := unsafe.Pointer(unsafe.SliceData(buf))
	buffers[uintptr(ptr)] = buf
	return ptr
}

//export __free
func guestFree(ptr unsafe.Pointer, size uint32) {
	delete(buffers, uintptr(ptr))
}

//export __contract
func contractContext() unsafe.Pointer {
	return unsafe.Pointer(&contractData)
}

//export __transaction
func transactionContext() unsafe.Pointer {
	return unsafe.Pointer(&transactionData)
}
