package kryolite

import (
	"encoding/binary"
	"encoding/json"
	"math"
)

// Require aborts the call with exit code -1 unless cond holds
func Require(cond bool) {
	if !cond {
		currentHost().Exit(-1)
	}
}

// Rand returns a host supplied random number in [0, 1)
func Rand() float32 {
	return currentHost().Rand()
}

// Println writes a value to the host log
func Println(v any) {
	typ, value := encodeValue(v)
	currentHost().Println(typ, value)
}

// AppendEvent adds a value to the pending event
func AppendEvent(v any) {
	typ, value := encodeValue(v)
	currentHost().AppendEvent(typ, value)
}

// PublishEvent emits the pending event
func PublishEvent() {
	currentHost().PublishEvent()
}

// Event appends the event name and its arguments, then publishes it
func Event(name string, args ...any) {
	AppendEvent(name)
	for _, arg := range args {
		AppendEvent(arg)
	}
	PublishEvent()
}

// PushReturn sends a raw result string to the host
func PushReturn(s string) {
	currentHost().Return([]byte(s))
}

// PushReturnJSON sends a method result to the host as JSON text
func PushReturnJSON(v any) {
	data, err := json.Marshal(v)
	if err != nil {
		Println("kryolite: cannot encode result: " + err.Error())
		currentHost().Exit(-1)
		return
	}
	currentHost().Return(data)
}

// encodeValue returns the host type tag and the raw bytes of a value.
// Numeric tags follow the names the node expects.
func encodeValue(v any) (string, []byte) {
	switch x := v.(type) {
	case string:
		return "str", []byte(x)
	case Address:
		return "Address", x[:]
	case *Address:
		return "Address", x[:]
	case U256:
		return "U256", x[:]
	case *U256:
		return "U256", x[:]
	case bool:
		if x {
			return "&bool", []byte{1}
		}
		return "&bool", []byte{0}
	case uint8:
		return "&u8", []byte{x}
	case int8:
		return "&i8", []byte{byte(x)}
	case uint16:
		return "&u16", binary.LittleEndian.AppendUint16(nil, x)
	case int16:
		return "&i16", binary.LittleEndian.AppendUint16(nil, uint16(x))
	case uint32:
		return "&u32", binary.LittleEndian.AppendUint32(nil, x)
	case int32:
		return "&i32", binary.LittleEndian.AppendUint32(nil, uint32(x))
	case uint:
		return "&usize", binary.LittleEndian.AppendUint32(nil, uint32(x))
	case int:
		return "&isize", binary.LittleEndian.AppendUint32(nil, uint32(x))
	case uint64:
		return "&u64", binary.LittleEndian.AppendUint64(nil, x)
	case int64:
		return "&i64", binary.LittleEndian.AppendUint64(nil, uint64(x))
	case float32:
		return "&f32", binary.LittleEndian.AppendUint32(nil, math.Float32bits(x))
	case float64:
		return "&f64", binary.LittleEndian.AppendUint64(nil, math.Float64bits(x))
	}
	data, err := json.Marshal(v)
	if err != nil {
		return "str", nil
	}
	return "str", data
}
