package cli

import (
	"sort"
	"strings"

	"github.com/spf13/viper"

	kerrors "github.com/kryolite/kryogen/internal/errors"
	"github.com/kryolite/kryogen/internal/generator"
	"github.com/kryolite/kryogen/internal/manifest"
	"github.com/kryolite/kryogen/internal/rewrite"
	"github.com/kryolite/kryogen/internal/utils"
)

const (
	// DefaultConfigName is the config file looked up in the working directory
	DefaultConfigName = "kryogen"

	// EnvPrefix prefixes environment overrides, e.g. KRYOGEN_OUTPUT_DIR
	EnvPrefix = "KRYOGEN"
)

// Config holds the configuration for one kryogen run
type Config struct {
	// Directories is the list of directories to scan; ./... patterns recurse
	Directories []string `mapstructure:"-"`

	// OutputDir receives the re-emitted sources and autogen_contract.go,
	// relative to each package directory unless absolute
	OutputDir string `mapstructure:"output_dir"`

	// ManifestPath is where the manifest is written, relative to each package directory
	ManifestPath string `mapstructure:"manifest_path"`

	// RuntimeImport is the import path of the guest runtime used by generated code
	RuntimeImport string `mapstructure:"runtime_import"`

	// Units maps literal suffixes to their scale
	Units map[string]int64 `mapstructure:"units"`

	Verbose bool `mapstructure:"verbose"`
}

// SetDefaults registers the default value of every config key
func SetDefaults(v *viper.Viper) {
	v.SetDefault("output_dir", generator.DefaultOutputDir)
	v.SetDefault("manifest_path", manifest.DefaultPath)
	v.SetDefault("runtime_import", generator.DefaultRuntimeImport)
	v.SetDefault("units", map[string]interface{}{"kryo": rewrite.KryoScale})
	v.SetDefault("verbose", false)
}

// DefaultConfig returns the configuration used when no file is present
func DefaultConfig() *Config {
	return &Config{
		OutputDir:     generator.DefaultOutputDir,
		ManifestPath:  manifest.DefaultPath,
		RuntimeImport: generator.DefaultRuntimeImport,
		Units:         rewrite.DefaultUnits(),
	}
}

// LoadConfig reads the configuration. An explicit path must exist; without
// one, kryogen.yaml in the working directory is used when present.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, kerrors.WrapConfigurationError(path, "read", err).
				WithSuggestion("Check that the file exists and is valid YAML")
		}
	} else {
		v.SetConfigName(DefaultConfigName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !kerrors.As(err, &notFound) {
				return nil, kerrors.WrapConfigurationError(DefaultConfigName+".yaml", "read", err)
			}
		}
	}

	return LoadWithViper(v)
}

// LoadWithViper decodes and validates the configuration held by v
func LoadWithViper(v *viper.Viper) (*Config, error) {
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, kerrors.WrapConfigurationError(configName(v), "decode", err)
	}
	if err := config.Validate(); err != nil {
		return nil, kerrors.WrapConfigurationError(configName(v), "validate", err)
	}
	return &config, nil
}

// Validate checks the values a run depends on
func (c *Config) Validate() error {
	required := []struct{ field, value string }{
		{"output_dir", c.OutputDir},
		{"manifest_path", c.ManifestPath},
		{"runtime_import", c.RuntimeImport},
	}
	for _, r := range required {
		if err := utils.NotEmpty(r.field)(r.value); err != nil {
			return err
		}
	}

	units := make([]string, 0, len(c.Units))
	for unit := range c.Units {
		units = append(units, unit)
	}
	sort.Strings(units)
	unit := utils.NewValidatorChain(utils.IsValidGoIdentifier("unit"), utils.UnitSuffix("unit"))
	if err := utils.ValidateEach("units", unit.Validate)(units); err != nil {
		return err
	}
	for _, name := range units {
		if err := utils.Positive("units." + name)(c.Units[name]); err != nil {
			return err
		}
	}
	return nil
}

// Rewriter builds the literal rewriter for the configured unit table
func (c *Config) Rewriter() *rewrite.Rewriter {
	return rewrite.New(c.Units)
}

func configName(v *viper.Viper) string {
	if used := v.ConfigFileUsed(); used != "" {
		return used
	}
	return "defaults"
}
