package models

// VoidType is the return type recorded for functions without results
const VoidType = "void"

// ContractRecord is the interface record of one contract package
type ContractRecord struct {
	Name    string         // contract or interface name, set once
	Methods []MethodRecord // methods in source visitation order
}

// MethodRecord describes one exported contract method
type MethodRecord struct {
	Name       string        // source method name, also the export symbol
	Readonly   bool          // true only for value receivers
	Params     []ParamRecord // parameters in declaration order, receiver excluded
	ReturnType string        // rendered result type or VoidType
}

// ParamRecord describes one method parameter
type ParamRecord struct {
	Name         string // parameter name
	DeclaredType string // rendered type with pointer markers and whitespace removed
}

// HasReturn reports whether the method produces a value
func (m MethodRecord) HasReturn() bool {
	return m.ReturnType != VoidType
}

// MethodNames returns the method names in record order
func (c *ContractRecord) MethodNames() []string {
	names := make([]string, len(c.Methods))
	for i, method := range c.Methods {
		names[i] = method.Name
	}
	return names
}
