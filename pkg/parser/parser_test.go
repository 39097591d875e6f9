package parser

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lexenv/interpreter-go/pkg/ast"
)

func parse(t *testing.T, source string) *ast.Program {
	t.Helper()
	program, err := ParseProgram([]byte(source))
	require.NoError(t, err)
	return program
}

func TestParseDeclarations(t *testing.T) {
	program := parse(t, `var a = 1; let [b, , ...c] = d; const {e, f: g = 2, ...h} = i;`)
	require.Len(t, program.Body, 3)

	first := program.Body[0].(*ast.VariableDeclaration)
	assert.Equal(t, ast.DeclarationVar, first.Kind)
	assert.Equal(t, "a", first.Declarations[0].ID.(*ast.Identifier).Name)
	assert.Equal(t, 1.0, first.Declarations[0].Init.(*ast.NumericLiteral).Value)

	second := program.Body[1].(*ast.VariableDeclaration)
	assert.Equal(t, ast.DeclarationLet, second.Kind)
	arr := second.Declarations[0].ID.(*ast.ArrayPattern)
	require.Len(t, arr.Elements, 3)
	assert.Nil(t, arr.Elements[1])
	rest := arr.Elements[2].(*ast.RestElement)
	assert.Equal(t, "c", rest.Argument.(*ast.Identifier).Name)

	third := program.Body[2].(*ast.VariableDeclaration)
	assert.Equal(t, ast.DeclarationConst, third.Kind)
	obj := third.Declarations[0].ID.(*ast.ObjectPattern)
	require.Len(t, obj.Properties, 3)
	short := obj.Properties[0].(*ast.BindingProperty)
	assert.True(t, short.Shorthand)
	assert.Equal(t, "e", short.Value.(*ast.Identifier).Name)
	renamed := obj.Properties[1].(*ast.BindingProperty)
	assert.Equal(t, "f", renamed.Key.(*ast.Identifier).Name)
	def := renamed.Value.(*ast.AssignmentPattern)
	assert.Equal(t, "g", def.Left.(*ast.Identifier).Name)
	assert.IsType(t, &ast.RestElement{}, obj.Properties[2])
}

func TestParseShorthandDefault(t *testing.T) {
	program := parse(t, `let {x = 5} = {};`)
	decl := program.Body[0].(*ast.VariableDeclaration)
	prop := decl.Declarations[0].ID.(*ast.ObjectPattern).Properties[0].(*ast.BindingProperty)
	assert.True(t, prop.Shorthand)
	assert.Equal(t, "x", prop.Key.(*ast.Identifier).Name)
	def := prop.Value.(*ast.AssignmentPattern)
	assert.Equal(t, "x", def.Left.(*ast.Identifier).Name)
	assert.Equal(t, 5.0, def.Right.(*ast.NumericLiteral).Value)
}

func TestParseFunctions(t *testing.T) {
	program := parse(t, `
function f(a, b = a, ...rest) { "use strict"; return a; }
const g = (x) => x * 2;
const h = function named() {};
`)
	require.Len(t, program.Body, 3)
	assert.False(t, program.Strict)

	fn := program.Body[0].(*ast.FunctionDeclaration)
	assert.Equal(t, "f", fn.ID.Name)
	require.Len(t, fn.Params, 3)
	assert.IsType(t, &ast.AssignmentPattern{}, fn.Params[1])
	assert.IsType(t, &ast.RestElement{}, fn.Params[2])
	directive := fn.Body.Body[0].(*ast.ExpressionStatement)
	assert.Equal(t, "use strict", directive.Directive)

	arrow := program.Body[1].(*ast.VariableDeclaration).Declarations[0].Init.(*ast.ArrowFunctionExpression)
	assert.True(t, arrow.ExpressionBody)
	require.Len(t, arrow.Params, 1)
	ret := arrow.Body.Body[0].(*ast.ReturnStatement)
	assert.Equal(t, "*", ret.Argument.(*ast.BinaryExpression).Operator)

	expr := program.Body[2].(*ast.VariableDeclaration).Declarations[0].Init.(*ast.FunctionExpression)
	assert.Equal(t, "named", expr.ID.Name)
}

func TestParseStrictProgram(t *testing.T) {
	program := parse(t, "'use strict';\nx = 1;")
	assert.True(t, program.Strict)

	escaped := parse(t, `'use\x20strict'; x = 1;`)
	assert.False(t, escaped.Strict)
}

func TestParseLoops(t *testing.T) {
	program := parse(t, `
for (let [k, v] of pairs) {}
for (var key in obj) {}
for (x of xs) ;
for (let i = 0; i < 3; i++) {}
for (;;) { break; }
`)
	require.Len(t, program.Body, 5)

	forOf := program.Body[0].(*ast.ForOfStatement)
	decl := forOf.Left.(*ast.VariableDeclaration)
	assert.Equal(t, ast.DeclarationLet, decl.Kind)
	assert.IsType(t, &ast.ArrayPattern{}, decl.Declarations[0].ID)

	forIn := program.Body[1].(*ast.ForInStatement)
	assert.Equal(t, ast.DeclarationVar, forIn.Left.(*ast.VariableDeclaration).Kind)

	bare := program.Body[2].(*ast.ForOfStatement)
	assert.Equal(t, "x", bare.Left.(*ast.Identifier).Name)

	loop := program.Body[3].(*ast.ForStatement)
	assert.Equal(t, ast.DeclarationLet, loop.Init.(*ast.VariableDeclaration).Kind)
	assert.Equal(t, "<", loop.Test.(*ast.BinaryExpression).Operator)
	update := loop.Update.(*ast.UpdateExpression)
	assert.False(t, update.Prefix)

	empty := program.Body[4].(*ast.ForStatement)
	assert.Nil(t, empty.Init)
	assert.Nil(t, empty.Test)
	assert.Nil(t, empty.Update)
}

func TestParseAssignmentTargets(t *testing.T) {
	program := parse(t, `[a, b] = [b, a]; ({c, d: o.e} = src); x += 1; obj[k] ??= 2;`)
	require.Len(t, program.Body, 4)

	swap := program.Body[0].(*ast.ExpressionStatement).Expression.(*ast.AssignmentExpression)
	assert.IsType(t, &ast.ArrayPattern{}, swap.Left)

	objAssign := program.Body[1].(*ast.ExpressionStatement).Expression.(*ast.AssignmentExpression)
	pattern := objAssign.Left.(*ast.ObjectPattern)
	member := pattern.Properties[1].(*ast.BindingProperty).Value
	assert.IsType(t, &ast.MemberExpression{}, member)

	compound := program.Body[2].(*ast.ExpressionStatement).Expression.(*ast.AssignmentExpression)
	assert.Equal(t, "+=", compound.Operator)

	logical := program.Body[3].(*ast.ExpressionStatement).Expression.(*ast.AssignmentExpression)
	assert.Equal(t, "??=", logical.Operator)
	assert.True(t, logical.Left.(*ast.MemberExpression).Computed)
}

func TestParseLiterals(t *testing.T) {
	program := parse(t, "[1, , 'a\\n', `x${y}z`, 0x10, 1_000, {k, m() {}, get g() { return 1; }, [q]: 2, ...r}, true && null];")
	arr := program.Body[0].(*ast.ExpressionStatement).Expression.(*ast.ArrayExpression)
	require.Len(t, arr.Elements, 8)
	assert.Nil(t, arr.Elements[1])
	assert.Equal(t, "a\n", arr.Elements[2].(*ast.StringLiteral).Value)

	tmpl := arr.Elements[3].(*ast.TemplateLiteral)
	assert.Equal(t, []string{"x", "z"}, tmpl.Quasis)
	require.Len(t, tmpl.Expressions, 1)

	assert.Equal(t, 16.0, arr.Elements[4].(*ast.NumericLiteral).Value)
	assert.Equal(t, 1000.0, arr.Elements[5].(*ast.NumericLiteral).Value)

	obj := arr.Elements[6].(*ast.ObjectExpression)
	require.Len(t, obj.Properties, 5)
	assert.True(t, obj.Properties[0].(*ast.Property).Shorthand)
	assert.True(t, obj.Properties[1].(*ast.Property).Method)
	assert.Equal(t, ast.PropertyGet, obj.Properties[2].(*ast.Property).Kind)
	assert.True(t, obj.Properties[3].(*ast.Property).Computed)
	assert.IsType(t, &ast.SpreadElement{}, obj.Properties[4])

	assert.Equal(t, "&&", arr.Elements[7].(*ast.LogicalExpression).Operator)
}

func TestCookString(t *testing.T) {
	cases := map[string]string{
		`plain`:            "plain",
		`tab\there`:        "tab\there",
		`\x41B`:            "AB",
		`\u{1F600}`:        "\U0001F600",
		`\uD83D\uDE00`:     "\U0001F600",
		`\0`:               "\x00",
		`\101`:             "A",
		"\\$\\`":           "$`",
		"line\\\nnext":     "linenext",
		`\xe9`:             "é",
		`quote \' and ": `: "quote ' and \": ",
	}
	for raw, want := range cases {
		got, err := cookString(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, got, raw)
	}

	_, err := cookString(`\u12`)
	assert.Error(t, err)
}

func TestParseNumber(t *testing.T) {
	cases := map[string]float64{
		"42":    42,
		"1.5e3": 1500,
		".5":    0.5,
		"0b101": 5,
		"0o17":  15,
		"017":   15,
		"0xFF":  255,
		"1_000": 1000,
	}
	for text, want := range cases {
		got, err := parseNumber(text)
		require.NoError(t, err, text)
		assert.Equal(t, want, got, text)
	}

	inf, err := parseNumber("1e400")
	require.NoError(t, err)
	assert.True(t, math.IsInf(inf, 1))

	_, err = parseNumber("10n")
	assert.Error(t, err)
}

func TestParseSpans(t *testing.T) {
	program := parse(t, "let a = 1;\nlet b = a;")
	second := program.Body[1]
	span := second.Span()
	assert.Equal(t, ast.Position{Line: 2, Column: 1}, span.Start)
	assert.Equal(t, ast.Position{Line: 2, Column: 11}, span.End)
}

func TestParseSyntaxError(t *testing.T) {
	_, err := ParseProgram([]byte("var x = ;"))
	require.Error(t, err)
	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Contains(t, parseErr.Message, "parser: syntax error")
	assert.Equal(t, 1, parseErr.Location.Line)
}

func TestSyntaxErrorPointsAtFirstProblem(t *testing.T) {
	_, err := ParseProgram([]byte("let a = 1;\nfoo(1, 2;\nlet b = ;"))
	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.True(t, strings.HasPrefix(parseErr.Message, "parser: syntax error"), parseErr.Message)
	assert.Equal(t, 2, parseErr.Location.Line)
	if parseErr.Construct != "" {
		assert.Contains(t, parseErr.Message, "in "+parseErr.Construct+":")
	}
}

func TestDescribeToken(t *testing.T) {
	tests := map[string]string{
		";":                     "';'",
		")":                     "')'",
		"identifier":            "an identifier",
		"property_identifier":   "a property name",
		"template_substitution": "template substitution",
		"":                      "a token",
	}
	for kind, want := range tests {
		assert.Equal(t, want, describeToken(kind), kind)
	}
	assert.Equal(t, "", enclosingConstruct(nil))
}

func TestParseUnsupported(t *testing.T) {
	_, err := ParseProgram([]byte("class A {}"))
	require.Error(t, err)
	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, "parser: unsupported class_declaration", parseErr.Message)

	_, err = ParseProgram([]byte("a?.b;"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "optional chaining")
}

func TestParserReuse(t *testing.T) {
	p, err := NewParser()
	require.NoError(t, err)
	defer p.Close()

	for _, source := range []string{"let a = 1;", "function f() { return 2; }"} {
		program, err := p.ParseProgram([]byte(source))
		require.NoError(t, err)
		assert.Len(t, program.Body, 1)
	}
}
