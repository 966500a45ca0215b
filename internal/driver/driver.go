// Package driver orchestrates parsing for the command-line tools. The IR
// core is single-threaded; the driver gets its parallelism by giving each
// file its own Module.
package driver

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/evanacox/dawn/internal/ir"
	"github.com/evanacox/dawn/internal/parser"
)

// FileResult is the outcome of parsing one file: either a module or the
// parse error the text produced.
type FileResult struct {
	Path   string
	Source string
	Module *ir.Module
	Err    *parser.ParseError
}

// ParseFile reads and parses a single file. An I/O failure is returned as
// the error; a parse failure lands in the result.
func ParseFile(path string) (FileResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return FileResult{}, err
	}
	src := string(data)
	mod, perr := parser.Parse(src)
	return FileResult{Path: path, Source: src, Module: mod, Err: perr}, nil
}

// listIRFiles returns every *.dawn file under dir, sorted for
// deterministic ordering.
func listIRFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".dawn") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// ParseDir parses every *.dawn file under dir, up to jobs files at a time
// (0 means one per CPU). Results come back in sorted path order.
func ParseDir(ctx context.Context, dir string, jobs int) ([]FileResult, error) {
	files, err := listIRFiles(dir)
	if err != nil {
		return nil, err
	}
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}

	results := make([]FileResult, len(files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)

	for i, path := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			result, err := ParseFile(path)
			if err != nil {
				return err
			}
			results[i] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
