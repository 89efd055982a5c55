package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Alia5/sheetgen/internal/codegen/generator"
	cgen "github.com/Alia5/sheetgen/internal/codegen/generator/c"
	"github.com/Alia5/sheetgen/internal/codegen/meta"
	"github.com/Alia5/sheetgen/internal/grid"
	"github.com/Alia5/sheetgen/internal/log"
	"github.com/Alia5/sheetgen/internal/output"
)

type Generate struct {
	Inputs     []string      `arg:"" name:"input" help:"Workbooks (.xlsx) or sheets (.csv) to translate" type:"existingfile"`
	Output     string        `help:"Output directory for generated .c/.h files" default:"." env:"SHEETGEN_OUTPUT"`
	FileInfo   string        `help:"File description for source and header (YAML, TOML or JSON); defaults to the FileInfo sheet" type:"path" env:"SHEETGEN_FILE_INFO"`
	Pragmas    string        `help:"Pragma table (YAML, TOML, JSON or HCL)" type:"path" env:"SHEETGEN_PRAGMAS"`
	Encoding   string        `help:"Encoding of csv inputs" default:"utf8" enum:"utf8,sjis,eucjp,utf16,utf16be" env:"SHEETGEN_ENCODING"`
	Company    string        `help:"First line of the generation banner" env:"SHEETGEN_COMPANY"`
	Workers    int           `help:"Goroutines reading array rows (0 = unbounded)" default:"0" env:"SHEETGEN_WORKERS"`
	BatchRows  int           `help:"Array rows per read batch" default:"64" env:"SHEETGEN_BATCH_ROWS"`
	CacheSize  int           `help:"Cells kept in the per-sheet read cache (0 disables it)" default:"4096" env:"SHEETGEN_CACHE_SIZE"`
	MaxCells   int           `help:"Abort when a workbook has more cells than this (0 = no limit)" default:"0" env:"SHEETGEN_MAX_CELLS"`
	Timeout    time.Duration `help:"Abort a workbook taking longer than this (0 = no limit)" default:"0s" env:"SHEETGEN_TIMEOUT"`
	ErrorLimit int           `help:"Errors listed in the generated banner" default:"10" env:"SHEETGEN_ERROR_LIMIT"`
	DryRun     bool          `help:"Generate but do not write files"`
	Strict     bool          `help:"Fail when any cell-content error was recorded" env:"SHEETGEN_STRICT"`
	Color      string        `help:"Color the run summary" default:"auto" enum:"auto,always,never" env:"SHEETGEN_COLOR"`
}

// Run is called by Kong when the generate command is executed.
func (g *Generate) Run(logger *slog.Logger, tracer log.RowTracer) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	sum, err := g.Execute(ctx, logger, tracer)
	if sum != nil {
		sum.Print(os.Stdout, useColor(g.Color, os.Stdout))
	}
	return err
}

// Execute translates every input and writes the results. The returned
// summary is non-nil whenever at least one input was attempted.
func (g *Generate) Execute(ctx context.Context, logger *slog.Logger, tracer log.RowTracer) (*Summary, error) {
	logger.Info("Starting sheet translation", "inputs", len(g.Inputs), "output", g.Output)

	enc, err := grid.Encoding(g.Encoding)
	if err != nil {
		return nil, err
	}
	md := &meta.Metadata{}
	if g.FileInfo != "" {
		files, err := meta.LoadFiles(g.FileInfo)
		if err != nil {
			return nil, fmt.Errorf("load file info: %w", err)
		}
		md.Files = files
	}
	if g.Pragmas != "" {
		table, err := meta.LoadPragmas(g.Pragmas)
		if err != nil {
			return nil, fmt.Errorf("load pragma table: %w", err)
		}
		md.Pragmas = table
		logger.Debug("Loaded pragma table", "path", g.Pragmas, "keywords", len(table.Pragmas))
	}

	run := generator.NewRun()
	gen := generator.New(logger, generator.Options{
		Workers:    g.Workers,
		BatchRows:  g.BatchRows,
		CacheSize:  g.CacheSize,
		MaxCells:   g.MaxCells,
		Timeout:    g.Timeout,
		ErrorLimit: g.ErrorLimit,
		Company:    g.Company,
		Tracer:     tracer,
	})
	w := output.NewWriter(logger, g.Output, g.DryRun)

	sum := &Summary{Errors: run.Errors}
	for _, in := range g.Inputs {
		wb, err := grid.Load(in, enc)
		if err != nil {
			return sum, fmt.Errorf("load %s: %w", in, err)
		}
		md.SourceName = in
		out, err := gen.Generate(ctx, run, wb, md)
		if err != nil {
			return sum, fmt.Errorf("generate %s: %w", in, err)
		}
		sum.Workbooks++
		sum.Skipped = append(sum.Skipped, out.Skipped...)
		for _, f := range []struct {
			name  string
			lines []string
		}{
			{out.SourceFile, out.Source},
			{out.HeaderFile, out.Header},
		} {
			res, err := w.Write(f.name, cgen.JoinCRLF(f.lines))
			if err != nil {
				return sum, err
			}
			sum.Files = append(sum.Files, res)
		}
	}

	if n := run.Errors.Len(); g.Strict && n > 0 {
		return sum, fmt.Errorf("%d cell errors recorded", n)
	}
	return sum, nil
}
