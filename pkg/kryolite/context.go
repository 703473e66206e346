package kryolite

import "encoding/binary"

// contextSize is the packed size of two addresses and a uint64
const contextSize = 2*AddressSize + 8

// The host writes the call context into these buffers before each call
var (
	contractData    [contextSize]byte
	transactionData [contextSize]byte
)

// ContractData describes the running contract
type ContractData struct {
	Address Address
	Owner   Address
	Balance uint64
}

// TransactionData describes the transaction that triggered the call
type TransactionData struct {
	From  Address
	To    Address
	Value uint64
}

// Contract returns the context of the running contract
func Contract() ContractData {
	a, b, v := unpackContext(&contractData)
	return ContractData{Address: a, Owner: b, Balance: v}
}

// Transaction returns the context of the current transaction
func Transaction() TransactionData {
	a, b, v := unpackContext(&transactionData)
	return TransactionData{From: a, To: b, Value: v}
}

func unpackContext(buf *[contextSize]byte) (first, second Address, value uint64) {
	copy(first[:], buf[:AddressSize])
	copy(second[:], buf[AddressSize:2*AddressSize])
	value = binary.LittleEndian.Uint64(buf[2*AddressSize:])
	return first, second, value
}

func packContext(buf *[contextSize]byte, first, second Address, value uint64) {
	copy(buf[:AddressSize], first[:])
	copy(buf[AddressSize:2*AddressSize], second[:])
	binary.LittleEndian.PutUint64(buf[2*AddressSize:], value)
}
