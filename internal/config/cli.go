package config

import "github.com/Alia5/sheetgen/internal/cmd"

// CLI is the root command line of sheetgen. Every field can also be set in
// a JSON, YAML or TOML configuration file.
type CLI struct {
	Config string `help:"Path to a configuration file (JSON, YAML or TOML)" type:"path" env:"SHEETGEN_CONFIG"`

	Log Log `embed:"" prefix:"log."`

	Generate  cmd.Generate      `cmd:"" help:"Translate workbooks into C source and header files"`
	ConfigCmd cmd.ConfigCommand `cmd:"" name:"config" help:"Configuration helpers"`
}

type Log struct {
	Level   string `help:"Log level" default:"info" enum:"trace,debug,info,warn,error" env:"SHEETGEN_LOG_LEVEL"`
	File    string `help:"Also write logs to this file" type:"path" env:"SHEETGEN_LOG_FILE"`
	Format  string `help:"Log format" default:"text" enum:"text,json" env:"SHEETGEN_LOG_FORMAT"`
	RowFile string `help:"Dump every dispatched row to this file" type:"path" env:"SHEETGEN_LOG_ROW_FILE"`
}
