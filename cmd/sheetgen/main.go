package main

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/Alia5/sheetgen/internal/config"
	"github.com/Alia5/sheetgen/internal/configpaths"
	"github.com/Alia5/sheetgen/internal/log"

	"github.com/alecthomas/kong"
	kongtoml "github.com/alecthomas/kong-toml"
	kongyaml "github.com/alecthomas/kong-yaml"
)

func main() {
	userCfg := findUserConfig(os.Args[1:])
	jsonPaths, yamlPaths, tomlPaths := configpaths.ConfigCandidatePaths(userCfg)

	var cli config.CLI
	ctx := kong.Parse(&cli,
		kong.Name("sheetgen"),
		kong.Description("Spreadsheet to C source/header generator"),
		kong.UsageOnError(),
		// Load configuration from JSON/YAML/TOML in priority order; flags/env override config values.
		kong.Configuration(kong.JSON, jsonPaths...),
		kong.Configuration(kongyaml.Loader, yamlPaths...),
		kong.Configuration(kongtoml.Loader, tomlPaths...),
	)

	logger, closeFiles, err := log.SetupLogger(cli.Log.Level, cli.Log.File, cli.Log.Format)
	if err != nil {
		_, _ = os.Stderr.WriteString("failed to setup logger: " + err.Error() + "\n")
		os.Exit(2)
	}
	defer func() {
		for _, c := range closeFiles {
			_ = c.Close()
		}
	}()

	tracer, f := rowTracer(logger, cli.Log)
	if f != nil {
		closeFiles = append(closeFiles, f)
	}

	ctx.Bind(logger)
	ctx.BindTo(tracer, (*log.RowTracer)(nil))

	err = ctx.Run()
	ctx.FatalIfErrorf(err)
}

// rowTracer opens the row dump selected by the log flags. Without a row
// file, trace level dumps rows to stdout.
func rowTracer(logger *slog.Logger, cfg config.Log) (log.RowTracer, io.Closer) {
	switch {
	case cfg.RowFile != "":
		f, err := os.OpenFile(cfg.RowFile, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
		if err != nil {
			logger.Error("failed to open row log file", "file", cfg.RowFile, "error", err)
			return log.NewRowTracer(nil), nil
		}
		return log.NewRowTracer(f), f
	case log.ParseLevel(cfg.Level) <= log.LevelTrace:
		return log.NewRowTracer(os.Stdout), nil
	}
	return log.NewRowTracer(nil), nil
}

func findUserConfig(args []string) string {
	for i := 0; i < len(args); i++ {
		a := args[i]
		if strings.HasPrefix(a, "--config=") {
			return a[len("--config="):]
		}
		if a == "--config" && i+1 < len(args) {
			return args[i+1]
		}
	}
	if v := os.Getenv("SHEETGEN_CONFIG"); v != "" {
		return v
	}
	return ""
}
