package cli

import (
	"path/filepath"

	"github.com/kryolite/kryogen/internal/utils"
)

// Cleaner removes generated output directories and manifests
type Cleaner struct {
	config        *Config
	scanner       *DirectoryScanner
	fileProcessor *utils.FileProcessor
}

// NewCleaner creates a cleaner for the given configuration
func NewCleaner(config *Config) *Cleaner {
	if config == nil {
		config = DefaultConfig()
	}
	return &Cleaner{
		config:        config,
		scanner:       NewDirectoryScanner(config.OutputDir),
		fileProcessor: utils.NewFileProcessor(),
	}
}

// Targets returns the generated paths that belong to a package directory
func (c *Cleaner) Targets(packageDir string) []string {
	output := c.config.OutputDir
	if !filepath.IsAbs(output) {
		output = filepath.Join(packageDir, output)
	}
	return []string{output, filepath.Join(packageDir, c.config.ManifestPath)}
}

// CleanGeneratedFiles removes the output directory and manifest of every
// package found in directories and returns the removed paths
func (c *Cleaner) CleanGeneratedFiles(directories []string) ([]string, error) {
	packageDirs, err := c.scanner.ScanDirectories(directories)
	if err != nil {
		return nil, err
	}

	var removed []string
	for _, dir := range packageDirs {
		paths, err := c.fileProcessor.RemovePaths(c.Targets(dir))
		removed = append(removed, paths...)
		if err != nil {
			return removed, err
		}
	}
	return removed, nil
}
