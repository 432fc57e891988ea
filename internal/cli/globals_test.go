package cli

import (
	"testing"

	"github.com/alecthomas/kong"
)

func TestGlobalFlags(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		wantConfig  string
		wantVerbose bool
	}{
		{
			name:       "defaults",
			args:       []string{"algorithms"},
			wantConfig: defaultConfigPath,
		},
		{
			name:        "verbose and custom config",
			args:        []string{"-v", "--config", "custom.toml", "algorithms"},
			wantConfig:  "custom.toml",
			wantVerbose: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cli struct {
				Verbose    bool          `short:"v"`
				Config     string        `default:".filehash.toml"`
				Algorithms AlgorithmsCmd `cmd:""`
			}

			parser, err := kong.New(&cli)
			if err != nil {
				t.Fatalf("kong.New() error = %v", err)
			}
			ctx, err := parser.Parse(tt.args)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}

			configPath, verbose := globalFlags(ctx)
			if configPath != tt.wantConfig {
				t.Errorf("configPath = %q, want %q", configPath, tt.wantConfig)
			}
			if verbose != tt.wantVerbose {
				t.Errorf("verbose = %v, want %v", verbose, tt.wantVerbose)
			}
		})
	}
}

func TestGlobalFlags_NilContext(t *testing.T) {
	configPath, verbose := globalFlags(nil)
	if configPath != defaultConfigPath || verbose {
		t.Errorf("globalFlags(nil) = %q, %v", configPath, verbose)
	}
}
