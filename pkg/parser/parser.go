package parser

import (
	"fmt"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"lexenv/interpreter-go/pkg/ast"
	"lexenv/interpreter-go/pkg/parser/language"
)

// Parser wraps a tree-sitter parser configured for scripts.
type Parser struct {
	parser *sitter.Parser
}

// NewParser constructs a parser with the JavaScript language loaded.
func NewParser() (*Parser, error) {
	lang := language.JavaScript()
	if lang == nil {
		return nil, fmt.Errorf("parser: javascript language not available")
	}

	p := sitter.NewParser()
	if err := p.SetLanguage(lang); err != nil {
		return nil, fmt.Errorf("parser: %w", err)
	}

	return &Parser{parser: p}, nil
}

// Close releases parser resources.
func (p *Parser) Close() {
	if p == nil || p.parser == nil {
		return
	}
	p.parser.Close()
}

// ParseProgram parses script source into a Program. A leading "use strict"
// directive marks the program strict.
func (p *Parser) ParseProgram(source []byte) (*ast.Program, error) {
	if p == nil || p.parser == nil {
		return nil, fmt.Errorf("parser: nil parser")
	}

	tree := p.parser.Parse(source, nil)
	if tree == nil {
		return nil, fmt.Errorf("parser: parse failed")
	}
	defer tree.Close()

	root := tree.RootNode()
	if root == nil || root.Kind() != "program" {
		return nil, fmt.Errorf("parser: unexpected root node")
	}
	if root.HasError() {
		return nil, syntaxError(root, source)
	}

	ctx := newParseContext(source)
	body, err := ctx.parseBody(namedChildren(root))
	if err != nil {
		return nil, err
	}
	program := ast.NewProgram(body, hasUseStrict(body))
	annotateSpan(program, root)
	return program, nil
}

// ParseProgram parses source with a throwaway parser.
func ParseProgram(source []byte) (*ast.Program, error) {
	p, err := NewParser()
	if err != nil {
		return nil, err
	}
	defer p.Close()
	return p.ParseProgram(source)
}

type parseContext struct {
	source []byte
}

func newParseContext(source []byte) *parseContext {
	return &parseContext{source: source}
}

func (ctx *parseContext) text(node *sitter.Node) string {
	return sliceContent(node, ctx.source)
}

func sliceContent(node *sitter.Node, source []byte) string {
	if node == nil {
		return ""
	}
	start := int(node.StartByte())
	end := int(node.EndByte())
	if start < 0 || end < start || end > len(source) {
		return ""
	}
	return string(source[start:end])
}

// namedChildren lists the named children of node without comments.
func namedChildren(node *sitter.Node) []*sitter.Node {
	if node == nil {
		return nil
	}
	out := make([]*sitter.Node, 0, node.NamedChildCount())
	for i := uint(0); i < node.NamedChildCount(); i++ {
		child := node.NamedChild(i)
		if child == nil || isIgnorableNode(child) {
			continue
		}
		out = append(out, child)
	}
	return out
}

func firstNamedChild(node *sitter.Node) *sitter.Node {
	children := namedChildren(node)
	if len(children) == 0 {
		return nil
	}
	return children[0]
}

// hasToken reports whether node has an anonymous child token with the given
// text, such as `async` or `*`.
func hasToken(node *sitter.Node, token string) bool {
	if node == nil {
		return false
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child != nil && !child.IsNamed() && child.Kind() == token {
			return true
		}
	}
	return false
}

func isIgnorableNode(node *sitter.Node) bool {
	if node == nil {
		return false
	}
	switch node.Kind() {
	case "comment", "hash_bang_line", "html_comment":
		return true
	default:
		return false
	}
}

// hasUseStrict reports whether the directive prologue of body contains
// "use strict".
func hasUseStrict(body []ast.Statement) bool {
	for _, stmt := range body {
		expr, ok := stmt.(*ast.ExpressionStatement)
		if !ok || expr.Directive == "" {
			return false
		}
		if expr.Directive == "use strict" {
			return true
		}
	}
	return false
}
