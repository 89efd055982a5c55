// Package generator runs a whole workbook through the scanner, the array
// engine and the C emitter and returns the assembled source and header.
package generator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/Alia5/sheetgen/internal/codegen/array"
	"github.com/Alia5/sheetgen/internal/codegen/common"
	"github.com/Alia5/sheetgen/internal/codegen/diag"
	cgen "github.com/Alia5/sheetgen/internal/codegen/generator/c"
	"github.com/Alia5/sheetgen/internal/codegen/meta"
	"github.com/Alia5/sheetgen/internal/codegen/scanner"
	"github.com/Alia5/sheetgen/internal/grid"
	"github.com/Alia5/sheetgen/internal/log"
)

// Options tunes a generation. The zero value is usable.
type Options struct {
	// Workers bounds the goroutines reading array rows. Zero means unbounded.
	Workers int
	// BatchRows is the number of array rows handed to one worker.
	BatchRows int
	// CacheSize is the capacity of the per-sheet cell cache. Zero disables it.
	CacheSize int
	// MaxCells aborts workbooks larger than this many cells. Zero disables it.
	MaxCells int
	// Timeout bounds one Generate call. Zero disables it.
	Timeout time.Duration
	// CheckEvery is the number of rows scanned between cancellation checks.
	CheckEvery int
	// ErrorLimit is how many errors the banner lists.
	ErrorLimit int
	Company    string
	Now        func() time.Time
	Tracer     log.RowTracer
}

// Run is the state shared by every workbook generated in one invocation:
// the cumulative error list and the output file names already claimed.
type Run struct {
	Errors *diag.List

	mu   sync.Mutex
	used map[string]string
}

func NewRun() *Run {
	return &Run{Errors: &diag.List{}, used: map[string]string{}}
}

// claim registers name for owner and reports whether it was still free.
func (r *Run) claim(name, owner string) (string, bool) {
	key := strings.ToLower(filepath.Clean(name))
	r.mu.Lock()
	defer r.mu.Unlock()
	if prev, ok := r.used[key]; ok {
		return prev, false
	}
	r.used[key] = owner
	return "", true
}

// Output is one generated source/header pair.
type Output struct {
	SourceFile string
	HeaderFile string
	Source     []string
	Header     []string
	// Sheets is the number of sheets translated.
	Sheets int
	// Skipped lists sheets aborted by a structural error.
	Skipped []string
}

type Generator struct {
	logger *slog.Logger
	opts   Options
}

func New(logger *slog.Logger, opts Options) *Generator {
	if logger == nil {
		logger = log.Discard()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Generator{logger: logger, opts: opts}
}

type scanned struct {
	res *scanner.Result
	acc grid.Accessor
}

// Generate translates every sheet of wb into one source/header pair.
// Cell-content errors are recorded in run and do not fail the call. A
// cancelled context or an exceeded limit returns an error matching
// diag.ErrCancelled or diag.ErrLimitExceeded and no output.
func (g *Generator) Generate(ctx context.Context, run *Run, wb *grid.Workbook, md *meta.Metadata) (*Output, error) {
	if run == nil {
		run = NewRun()
	}
	if md == nil {
		md = &meta.Metadata{}
	}
	if g.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.opts.Timeout)
		defer cancel()
	}
	if err := g.checkCells(wb); err != nil {
		return nil, err
	}

	files := md.Files
	if fi, ok := wb.Sheet(meta.FileInfoSheet); ok && files.Empty() {
		files = meta.FilesFromGrid(fi.Grid)
		g.logger.Debug("Using file info sheet", "workbook", wb.Name)
	}
	srcName, hdrName := g.fileNames(run, wb, files)

	if md.Pragmas != nil && !md.Pragmas.Indexed() {
		md.Pragmas.Index(run.Errors)
	}

	out := &Output{SourceFile: srcName, HeaderFile: hdrName}
	var sheets []scanned
	for _, sh := range wb.Sheets {
		if strings.EqualFold(sh.Name, meta.FileInfoSheet) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, diag.FromContext(err)
		}
		acc, err := grid.NewCached(sh.Grid, g.opts.CacheSize)
		if err != nil {
			return nil, fmt.Errorf("cell cache for sheet %s: %w", sh.Name, err)
		}
		res, err := scanner.Scan(ctx, grid.Sheet{Name: sh.Name, Grid: acc}, scanner.Options{
			Errors:     run.Errors,
			Pragmas:    md.Pragmas,
			Logger:     g.logger,
			Tracer:     g.opts.Tracer,
			CheckEvery: g.opts.CheckEvery,
		})
		var serr *diag.StructuralError
		switch {
		case errors.As(err, &serr):
			run.Errors.AddStructural(serr)
			out.Skipped = append(out.Skipped, sh.Name)
			g.logger.Warn("Skipping sheet", "sheet", sh.Name, "error", serr)
			continue
		case err != nil:
			return nil, err
		}
		g.logger.Debug("Scanned sheet", "sheet", sh.Name, "sections", len(res.Sections), "arrays", len(res.Arrays))
		sheets = append(sheets, scanned{res: res, acc: acc})
	}

	for _, s := range sheets {
		if err := array.ReadAll(ctx, s.acc, s.res.Arrays, g.opts.Workers, g.opts.BatchRows); err != nil {
			return nil, diag.FromContext(err)
		}
		for _, a := range s.res.Arrays {
			a.Measure()
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, diag.FromContext(err)
	}

	v := &variants{errs: run.Errors}
	var body cgen.Buffers
	for _, s := range sheets {
		v.sheet(&body, s.res)
	}
	body.Both(v.close()...)
	out.Sheets = len(sheets)

	version, err := common.GetVersion()
	if err != nil {
		return nil, fmt.Errorf("get version: %w", err)
	}
	sourceName := wb.Name
	if md.SourceName != "" {
		sourceName = filepath.Base(md.SourceName)
	}
	doc := cgen.Document{
		Company:    g.opts.Company,
		Version:    version,
		Date:       g.opts.Now(),
		SourceName: sourceName,
		SourceFile: filepath.Base(srcName),
		HeaderFile: filepath.Base(hdrName),
		Files:      files,
		Errors:     run.Errors.Errors(),
		ErrorLimit: g.opts.ErrorLimit,
	}
	final, err := cgen.Assemble(doc, body)
	if err != nil {
		return nil, err
	}
	out.Source, out.Header = final.Source, final.Header

	g.logger.Info("Generated sources", "workbook", wb.Name, "source", srcName, "header", hdrName,
		"sheets", out.Sheets, "errors", run.Errors.Len())
	return out, nil
}

func (g *Generator) checkCells(wb *grid.Workbook) error {
	if g.opts.MaxCells <= 0 {
		return nil
	}
	total := 0
	for _, sh := range wb.Sheets {
		total += sh.Grid.Rows() * sh.Grid.Cols()
	}
	if total > g.opts.MaxCells {
		return fmt.Errorf("%w: workbook %s has %d cells, limit is %d", diag.ErrLimitExceeded, wb.Name, total, g.opts.MaxCells)
	}
	return nil
}

// fileNames picks the output names from the file info, defaulting to the
// workbook name, and records misnamed or reused files.
func (g *Generator) fileNames(run *Run, wb *grid.Workbook, files meta.Files) (string, string) {
	stem := strings.TrimSuffix(filepath.Base(wb.Name), filepath.Ext(wb.Name))
	src := strings.TrimSpace(files.Source.FileName)
	hdr := strings.TrimSpace(files.Header.FileName)
	if src == "" {
		src = stem + ".c"
	}
	if hdr == "" {
		hdr = strings.TrimSuffix(src, filepath.Ext(src)) + ".h"
	}

	check := func(name, ext string) {
		if !strings.EqualFold(filepath.Ext(name), ext) {
			run.Errors.Add(diag.FileNameExtensionMismatch, wb.Name, diag.NoPos, "%s should end in %s", name, ext)
		}
		if prev, ok := run.claim(name, wb.Name); !ok {
			run.Errors.Add(diag.FileNameAlreadyUsed, wb.Name, diag.NoPos, "%s is already written for %s", name, prev)
		}
	}
	check(src, ".c")
	check(hdr, ".h")
	return src, hdr
}
