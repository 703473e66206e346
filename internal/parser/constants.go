package parser

const (
	// ConstructorName is the package function that builds the contract instance
	ConstructorName = "New"

	// ReservedInitName is the export symbol of the synthesized constructor.
	// A declaration with this name is treated as a constructor and never exported.
	ReservedInitName = "__init"

	// GeneratedFilePrefix marks files written by kryogen; they are never parsed
	GeneratedFilePrefix = "autogen_"

	// BlankIdentifier cannot name a manifest parameter
	BlankIdentifier = "_"
)
