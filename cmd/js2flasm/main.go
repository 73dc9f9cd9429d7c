// Command js2flasm drives the compiler pipeline (package ast's decoder,
// package codegen's generator, package optimize's push coalescer, and
// package simulate's stack simulator) over a JSON AST document or a
// directory of them, writing textual .flasm assembly.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cxcorp/js-to-flasm-as2-compiler/internal/logging"
)

type options struct {
	out     string
	debug   bool
	noColor bool
	config  string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:           "js2flasm <input>",
		Short:         "Compile a restricted-JS AST to AS2 VM assembly",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "output file or directory (default: alongside input)")
	cmd.Flags().BoolVar(&opts.debug, "debug", false, "emit partial output on failure and print wrapped error stack traces")
	cmd.Flags().BoolVar(&opts.noColor, "no-color", false, "disable colored diagnostic output")
	cmd.Flags().StringVar(&opts.config, "config", "", "JSON sidecar of directive defaults (predeclared register-variable bindings)")

	return cmd
}

// run prints every diagnostic itself (framed per-file errors via
// reporter.Frame, plain messages otherwise) so main only needs the
// returned error to decide the process exit code.
func run(input string, opts *options) error {
	info, err := os.Stat(input)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}

	bindings, err := loadConfig(opts.config)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}

	log := logging.New(opts.debug)
	useColor := !opts.noColor

	if info.IsDir() {
		outDir := opts.out
		if outDir == "" {
			outDir = input
		}
		failed, err := compileTree(input, outDir, bindings, log, opts.debug, useColor)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return err
		}
		if failed > 0 {
			err := fmt.Errorf("%d file(s) failed to compile", failed)
			fmt.Fprintln(os.Stderr, err)
			return err
		}
		return nil
	}

	outPath := opts.out
	if outPath == "" {
		outPath = flasmPath(input)
	}
	return compileFile(input, outPath, bindings, log, opts.debug, useColor)
}
