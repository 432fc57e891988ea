package cli

import (
	"reflect"

	"github.com/alecthomas/kong"
)

const (
	// defaultConfigPath is the default path to the .filehash.toml configuration file
	defaultConfigPath = ".filehash.toml"
)

// globalFlags reads the top-level --verbose and --config flags from the parsed CLI model.
func globalFlags(ctx *kong.Context) (configPath string, verbose bool) {
	configPath = defaultConfigPath
	if ctx == nil {
		return configPath, false
	}

	if model := ctx.Model; model != nil && model.Target.IsValid() {
		if verboseField := model.Target.FieldByName("Verbose"); verboseField.IsValid() && verboseField.Kind() == reflect.Bool {
			verbose = verboseField.Bool()
		}
		if configField := model.Target.FieldByName("Config"); configField.IsValid() && configField.Kind() == reflect.String && configField.String() != "" {
			configPath = configField.String()
		}
	}

	return configPath, verbose
}
