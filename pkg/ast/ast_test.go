package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeProgramDestructuring(t *testing.T) {
	src := `{
	  "type": "Program",
	  "body": [{
	    "type": "VariableDeclaration",
	    "kind": "let",
	    "loc": {"start": {"line": 1, "column": 0}, "end": {"line": 1, "column": 28}},
	    "declarations": [{
	      "type": "VariableDeclarator",
	      "id": {
	        "type": "ObjectPattern",
	        "properties": [
	          {"type": "Property", "key": {"type": "Identifier", "name": "a"},
	           "value": {"type": "Identifier", "name": "a"}, "shorthand": true, "kind": "init"},
	          {"type": "Property", "key": {"type": "Identifier", "name": "b"},
	           "value": {"type": "AssignmentPattern",
	                     "left": {"type": "Identifier", "name": "c"},
	                     "right": {"type": "Literal", "value": 2}}},
	          {"type": "RestElement", "argument": {"type": "Identifier", "name": "rest"}}
	        ]
	      },
	      "init": {"type": "Identifier", "name": "obj"}
	    }]
	  }]
	}`
	program, err := DecodeProgram([]byte(src))
	require.NoError(t, err)
	require.Len(t, program.Body, 1)

	decl, ok := program.Body[0].(*VariableDeclaration)
	require.True(t, ok)
	assert.Equal(t, DeclarationLet, decl.Kind)
	assert.Equal(t, 28, decl.Span().End.Column)

	pattern, ok := decl.Declarations[0].ID.(*ObjectPattern)
	require.True(t, ok)
	require.Len(t, pattern.Properties, 3)
	assert.True(t, pattern.Properties[0].(*BindingProperty).Shorthand)
	def, ok := pattern.Properties[1].(*BindingProperty).Value.(*AssignmentPattern)
	require.True(t, ok)
	assert.Equal(t, "c", def.Left.(*Identifier).Name)
	assert.Equal(t, 2.0, def.Right.(*NumericLiteral).Value)
	_, ok = pattern.Properties[2].(*RestElement)
	assert.True(t, ok)
}

func TestDecodeProgramArrayHolesAndStrictness(t *testing.T) {
	src := `{
	  "type": "File",
	  "program": {
	    "type": "Program",
	    "body": [
	      {"type": "ExpressionStatement", "directive": "use strict",
	       "expression": {"type": "StringLiteral", "value": "use strict"}},
	      {"type": "ExpressionStatement", "expression": {
	        "type": "AssignmentExpression", "operator": "=",
	        "left": {"type": "ArrayPattern", "elements": [null, {"type": "Identifier", "name": "x"}]},
	        "right": {"type": "ArrayExpression", "elements": []}
	      }}
	    ]
	  }
	}`
	program, err := DecodeProgram([]byte(src))
	require.NoError(t, err)
	assert.True(t, program.Strict)

	assign := program.Body[1].(*ExpressionStatement).Expression.(*AssignmentExpression)
	pattern := assign.Left.(*ArrayPattern)
	require.Len(t, pattern.Elements, 2)
	assert.Nil(t, pattern.Elements[0])
	assert.Equal(t, "x", pattern.Elements[1].(*Identifier).Name)
}

func TestDecodeRejectsUnknownNodes(t *testing.T) {
	_, err := DecodeProgram([]byte(`{"type": "Program", "body": [{"type": "ClassDeclaration"}]}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ClassDeclaration")
}

func TestExpressionToPatternConvertsAssignmentTargets(t *testing.T) {
	expr := Arr(nil, ID("a"), Assign(ID("b"), Num(1)), Spread(ID("rest")))
	pattern, err := ExpressionToPattern(expr)
	require.NoError(t, err)

	arr := pattern.(*ArrayPattern)
	require.Len(t, arr.Elements, 4)
	assert.Nil(t, arr.Elements[0])
	assert.IsType(t, &AssignmentPattern{}, arr.Elements[2])
	assert.IsType(t, &RestElement{}, arr.Elements[3])

	_, err = ExpressionToPattern(Arr(Spread(ID("r")), ID("a")))
	assert.Error(t, err)
	_, err = ExpressionToPattern(Num(1))
	assert.Error(t, err)
}

func TestArrowConciseBodyBecomesReturn(t *testing.T) {
	arrow := Arrow(Params(ID("x")), ID("x"))
	assert.True(t, arrow.ExpressionBody)
	require.Len(t, arrow.Body.Body, 1)
	ret, ok := arrow.Body.Body[0].(*ReturnStatement)
	require.True(t, ok)
	assert.Equal(t, "x", ret.Argument.(*Identifier).Name)

	assert.True(t, IsAnonymousFunctionDefinition(arrow))
	assert.True(t, IsAnonymousFunctionDefinition(Fn(nil)))
	assert.False(t, IsAnonymousFunctionDefinition(NamedFn("f", nil)))
}

func TestWalkVisitsPatternsAndSkipsHoles(t *testing.T) {
	program := Prog(
		Let(ArrP(nil, ID("a"), Default(ID("b"), Num(1))), ID("xs")),
		FnDecl("f", Params(ObjP(Short("k"))), Ret(ID("k"))),
	)
	var names []string
	Walk(program, func(node Node) bool {
		if id, ok := node.(*Identifier); ok {
			names = append(names, id.Name)
		}
		return true
	})
	assert.Equal(t, []string{"a", "b", "xs", "f", "k", "k", "k"}, names)

	var visited int
	Walk(program, func(node Node) bool {
		visited++
		_, isDecl := node.(*FunctionDeclaration)
		return !isDecl
	})
	assert.Less(t, visited, 14)
}
