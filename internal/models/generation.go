package models

// GeneratedFile is one file produced for a contract package
type GeneratedFile struct {
	Path    string // path where the file should be written
	Content []byte // formatted Go source
}

// GeneratedModule is the output of one package transformation
type GeneratedModule struct {
	PackageName string
	OutputDir   string
	Files       []GeneratedFile
	Record      ContractRecord
	Exports     []string // export symbols in emission order
}
