package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/cxcorp/js-to-flasm-as2-compiler/ast"
	"github.com/cxcorp/js-to-flasm-as2-compiler/codegen"
	"github.com/cxcorp/js-to-flasm-as2-compiler/internal/logging"
	"github.com/cxcorp/js-to-flasm-as2-compiler/optimize"
	"github.com/cxcorp/js-to-flasm-as2-compiler/register"
	"github.com/cxcorp/js-to-flasm-as2-compiler/reporter"
	"github.com/cxcorp/js-to-flasm-as2-compiler/simulate"
)

// compileSource runs one AST document through the full pipeline, in
// order: decode, generate, coalesce, simulate. On a generator failure it
// still returns whatever lines were emitted before the error, so callers
// running with --debug can dump the partial output.
func compileSource(path string, src []byte, bindings map[string]register.Register, log *logrus.Logger) ([]string, error) {
	prog, err := ast.Decode(src)
	if err != nil {
		return nil, err
	}

	var entry *logrus.Entry
	if log != nil {
		entry = logging.ForFile(log, path)
	}
	e := codegen.New(entry)
	if len(bindings) > 0 {
		e.PushRegisterVariables(bindings)
		defer e.PopRegisterVariables()
	}

	if err := e.GenerateProgram(prog); err != nil {
		return e.Lines(), err
	}

	lines := optimize.CoalescePushes(e.Lines())
	lines, err = simulate.Simulate(lines)
	return lines, err
}

// compileFile compiles one input file to one output file, reporting a
// framed diagnostic on stderr and, in debug mode, writing whatever
// partial output exists and the wrapped stack trace.
func compileFile(inPath, outPath string, bindings map[string]register.Register, log *logrus.Logger, debug, useColor bool) error {
	src, err := os.ReadFile(inPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}

	lines, err := compileSource(inPath, src, bindings, log)
	if err != nil {
		fmt.Fprintln(os.Stderr, reporter.Frame(inPath, src, err, useColor))
		if debug {
			fmt.Fprintf(os.Stderr, "%+v\n", err)
			if len(lines) > 0 {
				_ = writeLines(outPath, lines)
			}
		}
		return err
	}

	if err := writeLines(outPath, lines); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}
	return nil
}

func writeLines(outPath string, lines []string) error {
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return err
	}
	content := strings.Join(lines, "\n")
	if len(lines) > 0 {
		content += "\n"
	}
	return os.WriteFile(outPath, []byte(content), 0o644)
}

// flasmPath swaps path's extension for .flasm.
func flasmPath(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ".flasm"
}

// compileTree walks dir for *.json AST files and compiles each into
// outDir, preserving dir's relative directory structure. Compilation
// runs single-threaded and one file's failure doesn't stop the walk;
// compileTree reports the number of files that failed.
func compileTree(dir, outDir string, bindings map[string]register.Register, log *logrus.Logger, debug, useColor bool) (failed int, err error) {
	err = filepath.WalkDir(dir, func(path string, d os.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() || filepath.Ext(path) != ".json" {
			return nil
		}
		rel, relErr := filepath.Rel(dir, path)
		if relErr != nil {
			return relErr
		}
		outPath := filepath.Join(outDir, flasmPath(rel))
		if compileErr := compileFile(path, outPath, bindings, log, debug, useColor); compileErr != nil {
			failed++
		}
		return nil
	})
	return failed, err
}
