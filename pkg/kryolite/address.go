package kryolite

import (
	"encoding/json"
	"fmt"
)

// AddressSize is the length of an encoded address
const AddressSize = 26

// Address is a Kryolite account or contract address in its text form
type Address [AddressSize]byte

// NullAddress is the all zero address
var NullAddress Address

// ParseAddress converts the text form of an address
func ParseAddress(s string) (Address, error) {
	var a Address
	if len(s) != AddressSize {
		return a, fmt.Errorf("address %q has %d bytes, want %d", s, len(s), AddressSize)
	}
	copy(a[:], s)
	return a, nil
}

// String returns the address text
func (a Address) String() string {
	return string(a[:])
}

// IsNull reports whether a is the null address
func (a Address) IsNull() bool {
	return a == NullAddress
}

// MarshalJSON encodes the address as a JSON string
func (a Address) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

// UnmarshalJSON decodes an address from a JSON string
func (a *Address) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseAddress(s)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// Transfer moves amount from the contract balance to a
func (a *Address) Transfer(amount uint64) {
	currentHost().Transfer(a, amount)
}
