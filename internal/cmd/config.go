package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/Alia5/sheetgen/internal/codegen/meta"
	"github.com/Alia5/sheetgen/internal/configpaths"

	toml "github.com/pelletier/go-toml"
	yaml "gopkg.in/yaml.v3"
)

// ConfigCommand groups config-related subcommands.
type ConfigCommand struct {
	Init ConfigInit `cmd:"" help:"Generate a configuration template"`
}

// ConfigInit scaffolds a configuration file for the generate command, or a
// sample pragma table or file description.
type ConfigInit struct {
	Command string `arg:"" name:"command" help:"What to generate a template for" enum:"generate,pragmas,fileinfo"`
	Format  string `help:"Output format" enum:"json,yaml,toml" default:"json"`
	Output  string `help:"Destination file path (defaults to current directory)"`
	Force   bool   `help:"Overwrite if the file already exists"`
	Global  bool   `help:"Write into the user configuration directory instead of the current directory"`
}

// Run writes the template. Generate templates are derived from the flag tags
// of the generate command so they track new flags automatically.
func (c *ConfigInit) Run() error {
	format := normalizeFormat(c.Format)
	if format == "" {
		return fmt.Errorf("unsupported format: %s", c.Format)
	}

	var root any
	switch c.Command {
	case "generate":
		root = buildMapFromStruct(reflect.TypeOf(Generate{}))
	case "pragmas":
		root = samplePragmas()
	case "fileinfo":
		root = sampleFiles()
	default:
		return errors.New("unknown command; expected 'generate', 'pragmas' or 'fileinfo'")
	}

	dest := c.Output
	if dest == "" && c.Global {
		p, err := configpaths.DefaultNamedConfigPath(c.Command, format)
		if err != nil {
			return fmt.Errorf("resolve config dir: %w", err)
		}
		dest = p
	}
	if dest == "" {
		dest = c.Command + configpaths.Ext(format)
	}

	if !c.Force {
		if _, err := os.Stat(dest); err == nil {
			return errors.New("destination exists; use --force to overwrite")
		}
	}
	if err := configpaths.EnsureDir(dest); err != nil {
		return err
	}

	var data []byte
	var err error
	switch format {
	case "json":
		data, err = json.MarshalIndent(root, "", "  ")
	case "yaml":
		data, err = yaml.Marshal(root)
	case "toml":
		data, err = toml.Marshal(root)
	}
	if err != nil {
		return fmt.Errorf("encode %s template: %w", format, err)
	}
	return os.WriteFile(dest, data, 0o644)
}

func samplePragmas() *meta.PragmaTable {
	return &meta.PragmaTable{Pragmas: []meta.Pragma{{
		Keyword: "CALIB",
		Classes: []meta.PragmaClass{
			{Class: "const", EnterID: ".calib_const", ExitID: "default", EnterAddrMode: "far"},
			{Class: "data", EnterID: ".calib_data", ExitID: "default", EnterAddrMode: "far"},
		},
	}}}
}

func sampleFiles() meta.Files {
	return meta.Files{
		Source: meta.FileInfo{
			FileName: "table.c",
			Brief:    "Generated tables",
			Version:  "1.0.0",
			History:  []meta.History{{Version: "1.0.0", Description: "Initial version"}},
			Includes: "stdint.h",
		},
		Header: meta.FileInfo{
			FileName: "table.h",
			Brief:    "Generated table declarations",
			Version:  "1.0.0",
			Includes: "<stdint.h>",
		},
	}
}

func normalizeFormat(f string) string {
	switch strings.ToLower(f) {
	case "json":
		return "json"
	case "yaml", "yml":
		return "yaml"
	case "toml":
		return "toml"
	default:
		return ""
	}
}

// configKey is the key kong's resolvers look up for a field: the flag name
// with dashes replaced by underscores.
func configKey(f reflect.StructField) string {
	if name := f.Tag.Get("name"); name != "" {
		return strings.ReplaceAll(name, "-", "_")
	}
	var b strings.Builder
	for i, r := range f.Name {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}

// buildMapFromStruct lists every configurable flag of a command struct with
// its default. Positional arguments are skipped; they cannot come from a file.
func buildMapFromStruct(t reflect.Type) map[string]any {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	out := map[string]any{}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() || f.Tag.Get("kong") == "-" {
			continue
		}
		if _, ok := f.Tag.Lookup("arg"); ok {
			continue
		}
		if _, ok := f.Tag.Lookup("embed"); ok {
			sub := buildMapFromStruct(f.Type)
			if name := strings.TrimSuffix(f.Tag.Get("prefix"), "."); name != "" {
				out[name] = sub
			} else {
				maps.Copy(out, sub)
			}
			continue
		}
		if val := defaultValue(f.Type, f.Tag.Get("default")); val != nil {
			out[configKey(f)] = val
		}
	}
	return out
}

var durationType = reflect.TypeOf(time.Duration(0))

func defaultValue(t reflect.Type, def string) any {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == durationType {
		if def == "" {
			return "0s"
		}
		return def
	}
	switch t.Kind() {
	case reflect.String:
		return def
	case reflect.Bool:
		b, _ := strconv.ParseBool(def)
		return b
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, _ := strconv.ParseInt(def, 10, 64)
		return n
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, _ := strconv.ParseUint(def, 10, 64)
		return n
	case reflect.Float32, reflect.Float64:
		f, _ := strconv.ParseFloat(def, 64)
		return f
	case reflect.Struct:
		return buildMapFromStruct(t)
	default:
		return nil
	}
}
