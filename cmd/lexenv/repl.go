package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/adrg/xdg"
	"github.com/mattn/go-isatty"
	"github.com/peterh/liner"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"lexenv/interpreter-go/pkg/driver"
	"lexenv/interpreter-go/pkg/interpreter"
	"lexenv/interpreter-go/pkg/logging"
)

const historyFile = "lexenv/history"

func newReplCommand(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Evaluate lines interactively in one global environment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			session := &replSession{
				interp: opts.newInterpreter(cmd.OutOrStdout()),
				out:    cmd.OutOrStdout(),
				errOut: cmd.ErrOrStderr(),
			}
			if f, ok := opts.stdin.(*os.File); ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
				return session.interactive(cmd)
			}
			return session.scripted(opts.stdin)
		},
	}
}

type replSession struct {
	interp *interpreter.Interpreter
	out    io.Writer
	errOut io.Writer
	line   int
}

// eval runs one line as a script. Declarations persist across lines.
func (s *replSession) eval(source string) {
	s.line++
	name := fmt.Sprintf("repl:%d", s.line)
	program, err := driver.LoadProgram(name+".js", []byte(source))
	if err != nil {
		s.report(name, err)
		return
	}
	value, err := s.interp.EvaluateProgram(program)
	if err != nil {
		s.report(name, err)
		return
	}
	fmt.Fprintln(s.out, interpreter.FormatValue(value))
}

func (s *replSession) report(name string, err error) {
	fmt.Fprintln(s.errOut, driver.DescribeDiagnostic(driver.DiagnosticFor(name, err)))
}

func (s *replSession) scripted(in io.Reader) error {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			s.eval(line)
		}
	}
	return errors.Wrap(scanner.Err(), "repl: read input")
}

func (s *replSession) interactive(cmd *cobra.Command) error {
	logger := logging.Logger(cmd.Context())
	cli := liner.NewLiner()
	defer cli.Close()
	cli.SetCtrlCAborts(true)

	historyPath, err := xdg.StateFile(historyFile)
	if err != nil {
		logger.Debugf("history disabled: %v", err)
	} else if f, err := os.Open(historyPath); err == nil {
		_, _ = cli.ReadHistory(f)
		f.Close()
	}

	fmt.Fprintf(s.out, "%s (.exit to quit)\n", cliToolVersion)
	for {
		line, err := cli.Prompt("> ")
		if err == liner.ErrPromptAborted {
			continue
		}
		if err != nil {
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == ".exit" {
			break
		}
		cli.AppendHistory(line)
		s.eval(line)
	}

	if historyPath != "" {
		if f, err := os.Create(historyPath); err == nil {
			_, _ = cli.WriteHistory(f)
			f.Close()
		}
	}
	return nil
}
