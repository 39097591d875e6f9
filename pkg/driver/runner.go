package driver

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"slices"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"lexenv/interpreter-go/pkg/ast"
	"lexenv/interpreter-go/pkg/interpreter"
	"lexenv/interpreter-go/pkg/logging"
	"lexenv/interpreter-go/pkg/parser"
	"lexenv/interpreter-go/pkg/runtime"
)

// LoadProgram builds a program from JavaScript source or, for .json names,
// from an ESTree document.
func LoadProgram(name string, data []byte) (*ast.Program, error) {
	if strings.EqualFold(path.Ext(name), ".json") {
		program, err := ast.DecodeProgram(data)
		if err != nil {
			return nil, errors.Wrapf(err, "load %s", name)
		}
		return program, nil
	}
	return parser.ParseProgram(data)
}

// Status is the verdict for one fixture.
type Status string

const (
	StatusPass Status = "pass"
	StatusFail Status = "fail"
	StatusSkip Status = "skip"
)

// Outcome records what a fixture produced and how it compared.
type Outcome struct {
	Fixture    string
	Status     Status
	Result     string
	Stdout     []string
	Error      string
	Reason     string
	Mismatches []string
}

// Runner evaluates fixtures with settings taken from a Config.
type Runner struct {
	Config  *Config
	Version string
}

func NewRunner(cfg *Config) *Runner {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Runner{Config: cfg, Version: EngineVersion}
}

// RunAll runs fixtures in order, stopping early only when ctx is done.
func (r *Runner) RunAll(ctx context.Context, fixtures []*Fixture) ([]*Outcome, error) {
	outcomes := make([]*Outcome, 0, len(fixtures))
	for _, fixture := range fixtures {
		if err := ctx.Err(); err != nil {
			return outcomes, err
		}
		outcomes = append(outcomes, r.Run(ctx, fixture))
	}
	return outcomes, nil
}

// Run evaluates a single fixture. Load, parse and evaluation failures are
// reported in the outcome, not returned.
func (r *Runner) Run(ctx context.Context, fixture *Fixture) *Outcome {
	logger := logging.Logger(ctx).WithField("fixture", fixture.Name())
	outcome := &Outcome{Fixture: fixture.Name()}
	m := fixture.Manifest

	if m.Skip != "" {
		outcome.Status = StatusSkip
		outcome.Reason = m.Skip
		logger.WithField("reason", m.Skip).Debug("fixture skipped")
		return outcome
	}
	supported, err := m.SupportsEngine(r.Version)
	if err != nil || !supported {
		outcome.Status = StatusSkip
		outcome.Reason = fmt.Sprintf("engine %s does not satisfy %q", r.Version, m.Engine)
		logger.WithField("reason", outcome.Reason).Debug("fixture skipped")
		return outcome
	}

	r.execute(fixture, outcome, logger)
	outcome.Mismatches = compare(m.Expect, outcome)
	if len(outcome.Mismatches) == 0 {
		outcome.Status = StatusPass
	} else {
		outcome.Status = StatusFail
	}
	logger.WithFields(logrus.Fields{
		"status":     outcome.Status,
		"mismatches": len(outcome.Mismatches),
	}).Debug("fixture finished")
	return outcome
}

func (r *Runner) execute(fixture *Fixture, outcome *Outcome, logger logrus.FieldLogger) {
	source, err := fixture.Source()
	if err != nil {
		outcome.Error = err.Error()
		return
	}
	program, err := LoadProgram(fixture.Manifest.Entry, source)
	if err != nil {
		outcome.Error = errorText(err)
		return
	}

	var stdout bytes.Buffer
	interp := interpreter.NewWithOptions(interpreter.Options{
		Strict:       r.Config.Strict || fixture.Manifest.Strict,
		MaxDepth:     r.Config.MaxDepth,
		MaxCallDepth: r.Config.MaxCallDepth,
		Logger:       logger,
		Stdout:       &stdout,
	})
	value, err := interp.EvaluateProgram(program)
	outcome.Stdout = splitLines(stdout.String())
	if err != nil {
		outcome.Error = errorText(err)
		return
	}
	outcome.Result = interpreter.FormatValue(value)
}

// errorText renders thrown values the way console.log would print them.
func errorText(err error) string {
	if tc, ok := runtime.AsThrow(err); ok {
		return interpreter.FormatValue(tc.Value)
	}
	var parseErr *parser.ParseError
	if errors.As(err, &parseErr) {
		return parseErr.Message
	}
	return err.Error()
}

func splitLines(s string) []string {
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return []string{}
	}
	return strings.Split(s, "\n")
}

// compare lists every way the outcome departs from the expectation. An
// expected error matches any error text containing it.
func compare(expect Expectation, outcome *Outcome) []string {
	var mismatches []string
	switch {
	case expect.Error != "" && outcome.Error == "":
		mismatches = append(mismatches, fmt.Sprintf("error: expected %q, got result %q", expect.Error, outcome.Result))
	case expect.Error != "" && !strings.Contains(outcome.Error, expect.Error):
		mismatches = append(mismatches, fmt.Sprintf("error: expected %q, got %q", expect.Error, outcome.Error))
	case expect.Error == "" && outcome.Error != "":
		mismatches = append(mismatches, fmt.Sprintf("unexpected error: %s", outcome.Error))
	}
	if expect.Result != nil && outcome.Error == "" && *expect.Result != outcome.Result {
		mismatches = append(mismatches, fmt.Sprintf("result: expected %q, got %q", *expect.Result, outcome.Result))
	}
	if expect.Stdout != nil && !slices.Equal(expect.Stdout, outcome.Stdout) {
		mismatches = append(mismatches, fmt.Sprintf("stdout: expected %q, got %q", expect.Stdout, outcome.Stdout))
	}
	return mismatches
}

// Summary counts outcomes by status.
type Summary struct {
	Passed  int
	Failed  int
	Skipped int
}

func Summarize(outcomes []*Outcome) Summary {
	var s Summary
	for _, o := range outcomes {
		switch o.Status {
		case StatusPass:
			s.Passed++
		case StatusFail:
			s.Failed++
		case StatusSkip:
			s.Skipped++
		}
	}
	return s
}

func (s Summary) String() string {
	return fmt.Sprintf("%d passed, %d failed, %d skipped", s.Passed, s.Failed, s.Skipped)
}
