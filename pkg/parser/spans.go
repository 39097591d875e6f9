package parser

import (
	sitter "github.com/tree-sitter/go-tree-sitter"

	"lexenv/interpreter-go/pkg/ast"
)

func spanFromNode(node *sitter.Node) ast.Span {
	if node == nil {
		return ast.Span{}
	}
	start := node.StartPosition()
	end := node.EndPosition()
	return ast.Span{
		Start: ast.Position{Line: int(start.Row) + 1, Column: int(start.Column) + 1},
		End:   ast.Position{Line: int(end.Row) + 1, Column: int(end.Column) + 1},
	}
}

func annotateSpan(node ast.Node, tsNode *sitter.Node) {
	if node == nil || tsNode == nil {
		return
	}
	ast.SetSpan(node, spanFromNode(tsNode))
}
