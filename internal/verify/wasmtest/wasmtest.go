// Package wasmtest assembles minimal WebAssembly binaries for tests.
package wasmtest

// Module describes a binary whose functions take no arguments. Imports come
// from the env module and have type () -> (); the __init export returns an
// i32, every other export returns nothing.
type Module struct {
	Imports []string
	Exports []string
}

// Bytes encodes the module
func (m Module) Bytes() []byte {
	out := []byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00}

	// type 0: () -> (), type 1: () -> (i32)
	out = append(out, section(1, 2, []byte{0x60, 0x00, 0x00, 0x60, 0x00, 0x01, 0x7f})...)

	if len(m.Imports) > 0 {
		var body []byte
		for _, imported := range m.Imports {
			body = append(body, name("env")...)
			body = append(body, name(imported)...)
			body = append(body, 0x00, 0x00)
		}
		out = append(out, section(2, len(m.Imports), body)...)
	}

	var funcs, exports, code []byte
	for i, export := range m.Exports {
		index := uint32(len(m.Imports) + i)
		if export == "__init" {
			funcs = append(funcs, 0x01)
			code = append(code, 0x04, 0x00, 0x41, 0x01, 0x0b) // i32.const 1
		} else {
			funcs = append(funcs, 0x00)
			code = append(code, 0x02, 0x00, 0x0b)
		}
		exports = append(exports, name(export)...)
		exports = append(exports, 0x00)
		exports = append(exports, uleb(index)...)
	}
	out = append(out, section(3, len(m.Exports), funcs)...)
	out = append(out, section(7, len(m.Exports), exports)...)
	out = append(out, section(10, len(m.Exports), code)...)
	return out
}

func uleb(v uint32) []byte {
	var out []byte
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v != 0 {
			out = append(out, b|0x80)
			continue
		}
		return append(out, b)
	}
}

func name(s string) []byte {
	return append(uleb(uint32(len(s))), s...)
}

func section(id byte, count int, body []byte) []byte {
	content := append(uleb(uint32(count)), body...)
	return append(append([]byte{id}, uleb(uint32(len(content)))...), content...)
}
