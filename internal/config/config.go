package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/origadmin/confgen/internal/directive"
	"github.com/origadmin/confgen/internal/generator"
)

// Setting keys, shared by the config file, the CONFGEN_* environment and the
// command line flags.
const (
	KeyOutput  = "output"
	KeyTag     = "tag"
	KeyRuntime = "runtime"
	KeyStrict  = "strict"
	KeyDryRun  = "dry-run"
	KeyDebug   = "debug"
	KeyLogFile = "log-file"
)

// FileName is the optional settings file looked up in the target directory.
const FileName = ".confgen.yaml"

// EnvPrefix prefixes the environment variables overriding settings.
const EnvPrefix = "CONFGEN"

// Settings controls a generate or inspect run.
type Settings struct {
	Output  string `mapstructure:"output"`
	Tag     string `mapstructure:"tag"`
	Runtime string `mapstructure:"runtime"`
	Strict  bool   `mapstructure:"strict"`
	DryRun  bool   `mapstructure:"dry-run"`
	Debug   bool   `mapstructure:"debug"`
	LogFile string `mapstructure:"log-file"`
}

// NewViper returns a viper instance holding the default settings and reading
// CONFGEN_* environment variables.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyOutput, "")
	v.SetDefault(KeyTag, directive.DefaultTagName)
	v.SetDefault(KeyRuntime, generator.DefaultRuntimePath)
	v.SetDefault(KeyStrict, false)
	v.SetDefault(KeyDryRun, false)
	v.SetDefault(KeyDebug, false)
	v.SetDefault(KeyLogFile, "")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// Load merges the settings file of dir, if any, into v and decodes the result.
// Flags bound to v take precedence over the environment, which takes
// precedence over the file.
func Load(v *viper.Viper, dir string) (*Settings, error) {
	path := filepath.Join(dir, FileName)
	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("failed to decode settings: %w", err)
	}
	if s.Tag == "" {
		s.Tag = directive.DefaultTagName
	}
	if s.Runtime == "" {
		s.Runtime = generator.DefaultRuntimePath
	}
	return &s, nil
}
