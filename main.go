package main

import (
	"os"

	"github.com/alecthomas/kong"

	"github.com/mazrean/filehash/internal/cli"
)

// CLI represents the command-line interface structure
var CLI struct {
	Verbose bool             `help:"Enable verbose output" short:"v"`
	Config  string           `help:"Path to the configuration file" default:".filehash.toml" type:"path"`
	Version kong.VersionFlag `help:"Print version information and quit"`

	Hash       cli.HashCmd       `cmd:"" help:"Compute digests of files"`
	Algorithms cli.AlgorithmsCmd `cmd:"" help:"List supported digest algorithms"`
	Init       cli.InitCmd       `cmd:"" help:"Create a .filehash.toml configuration file"`
}

// Version information (will be injected by GoReleaser via ldflags)
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("filehash"),
		kong.Description("Compute MD5, SHA, xxHash and BLAKE digests of files"),
		kong.UsageOnError(),
		kong.Vars{
			"version": version + " (" + commit + ", " + date + ")",
		},
	)

	// Commands report their own failures; only the exit code is decided here.
	if err := ctx.Run(); err != nil {
		os.Exit(1)
	}
	os.Exit(0)
}
