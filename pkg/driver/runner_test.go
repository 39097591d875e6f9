package driver

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lexenv/interpreter-go/pkg/logging"
)

func runCorpus(t *testing.T, cfg *Config, files map[string]string) map[string]*Outcome {
	t.Helper()
	logger, _ := test.NewNullLogger()
	ctx := logging.WithLogger(context.Background(), logger)

	fixtures, err := memCorpus(t, files).Fixtures(ctx)
	require.NoError(t, err)
	outcomes, err := NewRunner(cfg).RunAll(ctx, fixtures)
	require.NoError(t, err)

	byName := make(map[string]*Outcome, len(outcomes))
	for _, o := range outcomes {
		byName[o.Fixture] = o
	}
	return byName
}

func TestRunnerOutcomes(t *testing.T) {
	outcomes := runCorpus(t, nil, map[string]string{
		"result/manifest.yml": `
expect:
  result: "3"
`,
		"result/main.js": "let a = 1; const b = a + 2; b;",

		"stdout/manifest.yml": `
expect:
  stdout: ["hi", "1 x"]
`,
		"stdout/main.js": "console.log('hi'); console.log(1, 'x');",

		"wrong/manifest.yml": `
expect:
  result: "3"
`,
		"wrong/main.js": "1 + 1;",

		"tdz/manifest.yml": `
expect:
  error: "ReferenceError: Cannot access 'x' before initialization"
`,
		"tdz/main.js": "{ x; let x = 1; }",

		"uncaught/manifest.yml": "description: throws without expecting it",
		"uncaught/main.js":      "null.x;",

		"skipped/manifest.yml": "skip: needs classes",
		"skipped/main.js":      "class A {}",

		"future/manifest.yml": `engine: ">= 9.0"`,
		"future/main.js":      "1;",

		"syntax/manifest.yml": `
expect:
  error: "rest element must be last element"
`,
		"syntax/main.js": "let [...a, b] = [];",

		"estree/manifest.yml": `
entry: program.json
expect:
  result: "7"
`,
		"estree/program.json": `{"type": "Program", "body": [{"type": "ExpressionStatement", "expression": {"type": "Literal", "value": 7}}]}`,
	})

	require.Len(t, outcomes, 9)

	assert.Equal(t, StatusPass, outcomes["result"].Status)
	assert.Equal(t, "3", outcomes["result"].Result)

	stdout := outcomes["stdout"]
	assert.Equal(t, StatusPass, stdout.Status, stdout.Mismatches)
	assert.Equal(t, []string{"hi", "1 x"}, stdout.Stdout)
	assert.Equal(t, "undefined", stdout.Result)

	wrong := outcomes["wrong"]
	assert.Equal(t, StatusFail, wrong.Status)
	assert.Equal(t, []string{`result: expected "3", got "2"`}, wrong.Mismatches)

	assert.Equal(t, StatusPass, outcomes["tdz"].Status, outcomes["tdz"].Mismatches)

	uncaught := outcomes["uncaught"]
	assert.Equal(t, StatusFail, uncaught.Status)
	assert.Contains(t, uncaught.Error, "TypeError")
	require.Len(t, uncaught.Mismatches, 1)
	assert.Contains(t, uncaught.Mismatches[0], "unexpected error: TypeError")

	assert.Equal(t, StatusSkip, outcomes["skipped"].Status)
	assert.Equal(t, "needs classes", outcomes["skipped"].Reason)

	future := outcomes["future"]
	assert.Equal(t, StatusSkip, future.Status)
	assert.Contains(t, future.Reason, ">= 9.0")

	syntax := outcomes["syntax"]
	assert.Equal(t, StatusPass, syntax.Status, syntax.Mismatches)
	assert.Equal(t, "parser: rest element must be last element", syntax.Error)

	assert.Equal(t, StatusPass, outcomes["estree"].Status, outcomes["estree"].Mismatches)

	summary := Summarize([]*Outcome{outcomes["result"], outcomes["wrong"], outcomes["skipped"]})
	assert.Equal(t, Summary{Passed: 1, Failed: 1, Skipped: 1}, summary)
	assert.Equal(t, "1 passed, 1 failed, 1 skipped", summary.String())
}

func TestRunnerStrictness(t *testing.T) {
	files := map[string]string{
		"sloppy/manifest.yml": `
expect:
  result: "1"
`,
		"sloppy/main.js": "undeclared = 1; undeclared;",
	}

	outcomes := runCorpus(t, nil, files)
	assert.Equal(t, StatusPass, outcomes["sloppy"].Status, outcomes["sloppy"].Mismatches)

	cfg := DefaultConfig()
	cfg.Strict = true
	outcomes = runCorpus(t, cfg, files)
	strict := outcomes["sloppy"]
	assert.Equal(t, StatusFail, strict.Status)
	assert.Equal(t, "ReferenceError: undeclared is not defined", strict.Error)
}

func TestRunnerStopsOnCancelledContext(t *testing.T) {
	corpus := memCorpus(t, map[string]string{
		"one/manifest.yml": "description: one",
		"one/main.js":      "1;",
	})
	fixtures, err := corpus.Fixtures(context.Background())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	outcomes, err := NewRunner(nil).RunAll(ctx, fixtures)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, outcomes)
}

func TestCompare(t *testing.T) {
	result := "1"
	cases := map[string]struct {
		expect  Expectation
		outcome Outcome
		want    []string
	}{
		"no expectations": {
			outcome: Outcome{Result: "5", Stdout: []string{"x"}},
		},
		"missing error": {
			expect:  Expectation{Error: "TypeError"},
			outcome: Outcome{Result: "undefined"},
			want:    []string{`error: expected "TypeError", got result "undefined"`},
		},
		"other error": {
			expect:  Expectation{Error: "TypeError"},
			outcome: Outcome{Error: "RangeError: boom"},
			want:    []string{`error: expected "TypeError", got "RangeError: boom"`},
		},
		"result and stdout": {
			expect:  Expectation{Result: &result, Stdout: []string{}},
			outcome: Outcome{Result: "2", Stdout: []string{"noise"}},
			want: []string{
				`result: expected "1", got "2"`,
				`stdout: expected [], got ["noise"]`,
			},
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, compare(tc.expect, &tc.outcome))
		})
	}
}
