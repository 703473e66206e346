package kryolite

import "github.com/fxamacker/cbor/v2"

var stateMode = func() cbor.EncMode {
	mode, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	return mode
}()

// EncodeState encodes a state snapshot with core deterministic CBOR
func EncodeState(v any) ([]byte, error) {
	return stateMode.Marshal(v)
}

// DecodeState decodes a snapshot produced by EncodeState
func DecodeState(data []byte, v any) error {
	return cbor.Unmarshal(data, v)
}

// SubmitState sends a state snapshot to the host
func SubmitState(v any) {
	data, err := EncodeState(v)
	if err != nil {
		Println("kryolite: cannot encode state: " + err.Error())
		currentHost().Exit(-1)
		return
	}
	currentHost().SubmitState(data)
}
