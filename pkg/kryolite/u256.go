package kryolite

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/mr-tron/base58"
)

// U256 is an unsigned 256-bit integer stored as 32 little-endian bytes,
// the layout the host reads token ids in
type U256 [32]byte

var two256 = new(big.Int).Lsh(big.NewInt(1), 256)

// U256FromUint64 widens a uint64
func U256FromUint64(v uint64) U256 {
	var u U256
	for i := 0; i < 8; i++ {
		u[i] = byte(v >> (8 * i))
	}
	return u
}

// U256FromBig converts a big integer, reducing it modulo 2^256
func U256FromBig(v *big.Int) U256 {
	reduced := new(big.Int).Mod(v, two256)
	be := reduced.FillBytes(make([]byte, 32))
	var u U256
	for i := range u {
		u[i] = be[31-i]
	}
	return u
}

// ParseU256 decodes the base58 text form
func ParseU256(s string) (U256, error) {
	var u U256
	raw, err := base58.DecodeAlphabet(s, base58.FlickrAlphabet)
	if err != nil {
		return u, fmt.Errorf("invalid token id %q: %w", s, err)
	}
	if len(raw) != len(u) {
		return u, fmt.Errorf("token id %q decodes to %d bytes, want %d", s, len(raw), len(u))
	}
	copy(u[:], raw)
	return u, nil
}

// Sha256 hashes a message into a U256 holding the digest bytes
func Sha256(message []byte) U256 {
	return U256(sha256.Sum256(message))
}

// Big returns u as a big integer
func (u U256) Big() *big.Int {
	be := make([]byte, len(u))
	for i := range u {
		be[31-i] = u[i]
	}
	return new(big.Int).SetBytes(be)
}

// Add returns u+v modulo 2^256
func (u U256) Add(v U256) U256 {
	return U256FromBig(new(big.Int).Add(u.Big(), v.Big()))
}

// Sub returns u-v modulo 2^256
func (u U256) Sub(v U256) U256 {
	return U256FromBig(new(big.Int).Sub(u.Big(), v.Big()))
}

// Mul returns u*v modulo 2^256
func (u U256) Mul(v U256) U256 {
	return U256FromBig(new(big.Int).Mul(u.Big(), v.Big()))
}

// Div returns u/v. Division by zero aborts the call.
func (u U256) Div(v U256) U256 {
	Require(!v.IsZero())
	return U256FromBig(new(big.Int).Quo(u.Big(), v.Big()))
}

// Rem returns u%v. Division by zero aborts the call.
func (u U256) Rem(v U256) U256 {
	Require(!v.IsZero())
	return U256FromBig(new(big.Int).Rem(u.Big(), v.Big()))
}

// Cmp compares u and v
func (u U256) Cmp(v U256) int {
	return u.Big().Cmp(v.Big())
}

// IsZero reports whether u is zero
func (u U256) IsZero() bool {
	return u == U256{}
}

// String returns the base58 text form of the raw bytes
func (u U256) String() string {
	return base58.EncodeAlphabet(u[:], base58.FlickrAlphabet)
}

// MarshalJSON encodes the token id as its base58 string
func (u U256) MarshalJSON() ([]byte, error) {
	return json.Marshal(u.String())
}

// UnmarshalJSON decodes a base58 token id string
func (u *U256) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseU256(s)
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}
