// Package cmd wires the Sood compiler driver's command-line surface:
// flag parsing, source acquisition, pipeline sequencing, and the object
// emission / native link step, handed to the host's gcc since Sood lowers
// to LLVM and needs a real system linker rather than a hand-rolled
// assembler backend.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"sood/internal/ast"
	"sood/internal/codegen"
	"sood/internal/frontend"
	"sood/internal/logging"
	"sood/internal/source"
)

const defaultOutput = "a.sood.out"

var (
	flagDebug           bool
	flagNoVerify        bool
	flagPrintAST        bool
	flagPrintLLVMIR     bool
	flagRunLLVMIR       bool
	flagStopAfterAST    bool
	flagStopAfterLLVMIR bool
	flagStopAfterObject bool
	flagOutput          string
)

var rootCmd = &cobra.Command{
	Use:   "sood [input]",
	Short: "Sood compiler: lowers a Sood syntax tree to LLVM IR and a native binary",
	Long: `sood lowers a Sood program to LLVM IR, then to a native binary by way of
an object file and the host linker.

Examples:
  sood program.sood
  sood --print-llvm-ir program.sood
  sood --run-llvm-ir program.sood
  sood --stop-after-object -o program.o program.sood`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCompile,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true

	rootCmd.Flags().BoolVar(&flagDebug, "debug", false, "enable verbose logging")
	rootCmd.Flags().BoolVar(&flagNoVerify, "no-verify", false, "skip IR verification")
	rootCmd.Flags().BoolVar(&flagPrintAST, "print-ast", false, "dump AST to stdout")
	rootCmd.Flags().BoolVar(&flagPrintLLVMIR, "print-llvm-ir", false, "dump IR to stdout")
	rootCmd.Flags().BoolVar(&flagRunLLVMIR, "run-llvm-ir", false, "JIT-execute the module")
	rootCmd.Flags().BoolVar(&flagStopAfterAST, "stop-after-ast", false, "write AST to the output path and exit")
	rootCmd.Flags().BoolVar(&flagStopAfterLLVMIR, "stop-after-llvm-ir", false, "write IR to the output path and exit")
	rootCmd.Flags().BoolVar(&flagStopAfterObject, "stop-after-object", false, "emit object file only, skip native-link step")
	rootCmd.Flags().StringVarP(&flagOutput, "output", "o", defaultOutput, "output path")
}

func runCompile(_ *cobra.Command, args []string) error {
	log := logging.New(os.Stderr, flagDebug)
	log.Info().Msg("starting Sood compiler")

	var path string
	if len(args) == 1 {
		path = args[0]
	}

	log.Debug().Str("input", path).Msg("reading source")
	src, err := source.Read(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not read source: %s\n", err)
		return exitError{code: 1}
	}

	root, err := frontend.Parse(src)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: parse error: %s\n", err)
		return exitError{code: 1}
	}

	if flagPrintAST {
		log.Debug().Msg("printing AST to stdout")
		fmt.Print(ast.String(root))
	}

	if flagStopAfterAST {
		log.Info().Str("output", flagOutput).Msg("writing AST and stopping")
		if err := os.WriteFile(flagOutput, []byte(ast.String(root)), 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "Error: could not write AST: %s\n", err)
			return exitError{code: 1}
		}
		return nil
	}

	ctx := codegen.NewContext("mod_main")
	// After a JIT run the execution engine owns the module, so the Context
	// is then neither disposed nor used for object emission.
	jitRan := false
	defer func() {
		if !jitRan {
			ctx.Dispose()
		}
	}()

	if err := ctx.Generate(root); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		return exitError{code: 2}
	}

	if !flagNoVerify {
		log.Debug().Msg("verifying LLVM module")
		if err := ctx.Verify(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err)
			return exitError{code: 1}
		}
	}

	if flagPrintLLVMIR {
		log.Debug().Msg("printing LLVM IR to stdout")
		ctx.PrintIR(os.Stdout)
	}

	if flagStopAfterLLVMIR {
		log.Info().Str("output", flagOutput).Msg("writing LLVM IR and stopping")
		f, err := os.Create(flagOutput)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: could not write IR: %s\n", err)
			return exitError{code: 1}
		}
		defer f.Close()
		ctx.PrintIR(f)
		return nil
	}

	if flagRunLLVMIR {
		log.Info().Msg("running LLVM module")
		jitRan = true
		if _, err := ctx.RunJIT(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err)
			return exitError{code: 1}
		}
		return nil
	}

	return emitAndLink(log, ctx)
}

// exitError carries a process exit code through cobra's RunE without
// cobra printing its own "Error:" prefix a second time; main translates it
// to os.Exit.
type exitError struct{ code int }

func (e exitError) Error() string { return "" }

// ExitCode reports the process exit code main should use.
func (e exitError) ExitCode() int { return e.code }
