package annotations

// SmartContractAnnotationSchema defines the schema for //kryolite:smart_contract
var SmartContractAnnotationSchema = AnnotationSchema{
	Type:        SmartContractAnnotation,
	Description: "Marks the contract root type; its exported methods form the contract interface",
	Parameters:  map[string]ParameterSpec{},
	Targets:     []TargetKind{TypeTarget},
	Examples: []string{
		"//kryolite:smart_contract",
	},
}

// StateAnnotationSchema defines the schema for //kryolite:state
var StateAnnotationSchema = AnnotationSchema{
	Type:        StateAnnotation,
	Description: "Marks the type whose value is persisted through the state snapshot export",
	Parameters:  map[string]ParameterSpec{},
	Targets:     []TargetKind{TypeTarget},
	Examples: []string{
		"//kryolite:state",
	},
}

// ExportedAnnotationSchema defines the schema for //kryolite:exported
var ExportedAnnotationSchema = AnnotationSchema{
	Type:        ExportedAnnotation,
	Description: "Exports a package function as a static contract call",
	Parameters:  map[string]ParameterSpec{},
	Targets:     []TargetKind{FuncTarget, MethodTarget},
	Examples: []string{
		"//kryolite:exported",
	},
}

// InterfaceAnnotationSchema defines the schema for //kryolite:interface
var InterfaceAnnotationSchema = AnnotationSchema{
	Type:        InterfaceAnnotation,
	Description: "Declares that the contract root implements a named interface",
	Positional:  []string{"Name"},
	Parameters: map[string]ParameterSpec{
		"Name": {
			Type:        StringType,
			Required:    true,
			Description: "Interface name recorded in the manifest when this block is observed first",
			Validator:   ValidateIdentifier,
		},
		"Methods": {
			Type:        StringSliceType,
			Required:    false,
			Description: "Method names of the interface when it is not declared in the package",
			Validator:   ValidateIdentifierList,
		},
	},
	Targets:    []TargetKind{TypeTarget},
	Repeatable: true,
	Examples: []string{
		"//kryolite:interface KRC721",
		"//kryolite:interface KRC721Metadata -Methods=Name,Symbol,TokenURI",
	},
}

// RegisterBuiltinSchemas adds the kryolite markers to registry
func RegisterBuiltinSchemas(registry AnnotationRegistry) error {
	for _, schema := range BuiltinSchemas() {
		if err := registry.Register(schema); err != nil {
			return err
		}
	}
	return nil
}

// BuiltinSchemas returns the schemas of the kryolite markers
func BuiltinSchemas() []AnnotationSchema {
	return []AnnotationSchema{
		SmartContractAnnotationSchema,
		StateAnnotationSchema,
		ExportedAnnotationSchema,
		InterfaceAnnotationSchema,
	}
}
