package binding

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"lexenv/interpreter-go/pkg/ast"
)

func TestBoundNames(t *testing.T) {
	tests := []struct {
		name string
		node ast.Node
		want []string
	}{
		{"identifier", ast.ID("x"), []string{"x"}},
		{"yield", ast.NewYieldExpression(nil, false), []string{"yield"}},
		{"array with holes", ast.ArrP(nil, ast.ID("a"), nil, ast.ID("b")), []string{"a", "b"}},
		{"only holes", ast.ArrP(nil, nil), nil},
		{"object with rest", ast.ObjP(ast.Short("a"), ast.PropP("k", ast.ID("b")), ast.Rest(ast.ID("c"))), []string{"a", "b", "c"}},
		{"defaults", ast.ArrP(ast.Default(ast.ID("a"), ast.Num(1)), ast.ObjP(ast.ShortDefault("b", ast.Num(1)))), []string{"a", "b"}},
		{"nested", ast.ObjP(ast.PropP("x", ast.ArrP(ast.ID("a"), ast.Rest(ast.ObjP(ast.Short("b")))))), []string{"a", "b"}},
		{"declaration", ast.Decl(ast.DeclarationLet, ast.Declarator(ast.ID("a"), nil), ast.Declarator(ast.ObjP(ast.Short("b")), nil)), []string{"a", "b"}},
		{"function", ast.FnDecl("f", nil), []string{"f"}},
		{"member target", ast.Member(ast.ID("o"), "p"), nil},
		{"expression", ast.Num(1), nil},
		{"nil", nil, nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, BoundNames(tc.node))
		})
	}
}

func TestContainsExpression(t *testing.T) {
	tests := []struct {
		name string
		node ast.Node
		want bool
	}{
		{"identifier", ast.ID("x"), false},
		{"plain array", ast.ArrP(ast.ID("a"), nil, ast.Rest(ast.ID("b"))), false},
		{"default", ast.Default(ast.ID("a"), ast.Num(1)), true},
		{"nested default", ast.ArrP(ast.ObjP(ast.ShortDefault("a", ast.Num(1)))), true},
		{"rest with default inside", ast.ArrP(ast.Rest(ast.ArrP(ast.Default(ast.ID("a"), ast.Num(1))))), true},
		{"computed key", ast.ObjP(ast.PropPC(ast.ID("k"), ast.ID("v"))), true},
		{"plain object", ast.ObjP(ast.Short("a"), ast.PropP("b", ast.ID("c"))), false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ContainsExpression(tc.node))
		})
	}
}

func TestIsDestructuring(t *testing.T) {
	assert.True(t, IsDestructuring(ast.Let(ast.ArrP(ast.ID("a")), nil)))
	assert.True(t, IsDestructuring(ast.Var(ast.Default(ast.ID("a"), ast.Num(1)), nil)))
	assert.False(t, IsDestructuring(ast.Let(ast.ID("a"), nil)))
	assert.True(t, IsDestructuring(ast.ObjP()))
	assert.True(t, IsDestructuring(ast.Arr()))
	assert.True(t, IsDestructuring(ast.Obj()))
	assert.False(t, IsDestructuring(ast.ID("a")))
}
