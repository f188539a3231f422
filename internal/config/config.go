// Package config holds the root command line of fourccgen. Every flag can
// also be set from a JSON, YAML or TOML file; see configpaths for the
// lookup order.
package config

import (
	"github.com/alecthomas/kong"

	"github.com/Alia5/fourccgen/internal/cmd"
)

type CLI struct {
	Config  string           `help:"Configuration file (json, yaml or toml)" type:"path" placeholder:"FILE" env:"FOURCCGEN_CONFIG"`
	Log     cmd.LogFlags     `embed:"" prefix:"log."`
	Version kong.VersionFlag `help:"Print version and exit"`

	Generate  cmd.Generate      `cmd:"" default:"withargs" help:"Generate the constant table and the enumeration (default)"`
	Scan      cmd.Scan          `cmd:"" help:"Print the format definitions found in the header"`
	ConfigCmd cmd.ConfigCommand `cmd:"" name:"config" help:"Configuration file helpers"`
}
