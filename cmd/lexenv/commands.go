package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"lexenv/interpreter-go/pkg/ast"
	"lexenv/interpreter-go/pkg/binding"
	"lexenv/interpreter-go/pkg/driver"
	"lexenv/interpreter-go/pkg/interpreter"
	"lexenv/interpreter-go/pkg/logging"
)

func loadProgramFile(path string) (*ast.Program, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	program, err := driver.LoadProgram(path, data)
	if err != nil {
		return nil, errors.New(driver.DescribeDiagnostic(driver.DiagnosticFor(path, err)))
	}
	return program, nil
}

func newRunCommand(opts *cliOptions) *cobra.Command {
	var quiet bool
	cmd := &cobra.Command{
		Use:   "run <file>",
		Short: "Evaluate a .js script or an ESTree .json program and print its completion value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			program, err := loadProgramFile(path)
			if err != nil {
				return err
			}
			logging.Logger(cmd.Context()).WithField("path", path).Debug("running script")
			interp := opts.newInterpreter(cmd.OutOrStdout())
			value, err := interp.EvaluateProgram(program)
			if err != nil {
				return errors.New(driver.DescribeDiagnostic(driver.DiagnosticFor(path, err)))
			}
			if !quiet {
				fmt.Fprintln(cmd.OutOrStdout(), interpreter.FormatValue(value))
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "do not print the completion value")
	return cmd
}

func newParseCommand(_ *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "parse <file>",
		Short: "Print the syntax tree of a script as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			program, err := loadProgramFile(args[0])
			if err != nil {
				return err
			}
			encoded, err := json.MarshalIndent(program, "", "  ")
			if err != nil {
				return errors.Wrap(err, "encode syntax tree")
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(encoded))
			return nil
		},
	}
}

func newNamesCommand(_ *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "names <file>",
		Short: "List the names bound by each top-level declaration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			program, err := loadProgramFile(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, stmt := range program.Body {
				var kind string
				switch decl := stmt.(type) {
				case *ast.VariableDeclaration:
					kind = string(decl.Kind)
				case *ast.FunctionDeclaration:
					kind = "function"
				default:
					continue
				}
				for _, name := range binding.BoundNames(stmt) {
					fmt.Fprintf(out, "%s\t%s\n", kind, name)
				}
			}
			return nil
		},
	}
}
