// Package kryolite is the guest runtime of Kryolite smart contracts.
//
// Code generated by kryogen calls into this package: instances live in a
// handle table, results go back to the host as JSON and state snapshots as
// deterministic CBOR. Contracts use the same package for host services such
// as transfers, events and randomness.
//
// In wasm builds the host functions are imported
// from the "env" module. Every other build gets a RecordingHost that keeps
// the calls in memory, which is what contract unit tests run against.
package kryolite
