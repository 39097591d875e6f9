package parser

import (
	"errors"
	"fmt"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// SourceLocation is a 1-based source span.
type SourceLocation struct {
	Line      int
	Column    int
	EndLine   int
	EndColumn int
}

// ParseError reports rejected source. Construct names the enclosing
// JavaScript construct when one could be identified.
type ParseError struct {
	Message   string
	Construct string
	Location  SourceLocation
}

func (e *ParseError) Error() string {
	if e.Location.Line == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (%d:%d)", e.Message, e.Location.Line, e.Location.Column)
}

// constructs maps tree-sitter-javascript node kinds to the names used in
// syntax error messages.
var constructs = map[string]string{
	"variable_declaration":     "var declaration",
	"lexical_declaration":      "let or const declaration",
	"variable_declarator":      "declarator",
	"function_declaration":     "function declaration",
	"function_expression":      "function expression",
	"arrow_function":           "arrow function",
	"formal_parameters":        "parameter list",
	"statement_block":          "block",
	"if_statement":             "if statement",
	"for_statement":            "for loop",
	"for_in_statement":         "for-in or for-of loop",
	"while_statement":          "while loop",
	"do_statement":             "do-while loop",
	"try_statement":            "try statement",
	"catch_clause":             "catch clause",
	"return_statement":         "return statement",
	"throw_statement":          "throw statement",
	"labeled_statement":        "labeled statement",
	"object":                   "object literal",
	"array":                    "array literal",
	"object_pattern":           "object pattern",
	"array_pattern":            "array pattern",
	"assignment_pattern":       "default value",
	"call_expression":          "call",
	"new_expression":           "new expression",
	"arguments":                "argument list",
	"member_expression":        "member access",
	"subscript_expression":     "computed member access",
	"parenthesized_expression": "parenthesized expression",
	"template_string":          "template literal",
	"string":                   "string literal",
}

// tokenNames spells out named terminals tree-sitter reports as missing.
var tokenNames = map[string]string{
	"identifier":          "an identifier",
	"property_identifier": "a property name",
	"number":              "a number",
	"string":              "a string",
	"expression":          "an expression",
	"statement":           "a statement",
}

func wrapParseError(node *sitter.Node, err error) error {
	if err == nil {
		return nil
	}
	var parseErr *ParseError
	if errors.As(err, &parseErr) {
		return parseErr
	}
	if node == nil {
		return err
	}
	return &ParseError{
		Message:   err.Error(),
		Construct: enclosingConstruct(node),
		Location:  locationForNode(node),
	}
}

// unsupported reports a construct the front end does not lower.
func unsupported(node *sitter.Node, what string) error {
	if what == "" && node != nil {
		what = node.Kind()
	}
	return &ParseError{
		Message:  fmt.Sprintf("parser: unsupported %s", what),
		Location: locationForNode(node),
	}
}

// syntaxError describes the first MISSING or ERROR node of a tree that
// failed to parse.
func syntaxError(root *sitter.Node, source []byte) *ParseError {
	problem := firstProblem(root)
	if problem == nil {
		return &ParseError{Message: "parser: syntax error", Location: locationForNode(root)}
	}
	construct := enclosingConstruct(problem)
	var detail string
	if problem.IsMissing() {
		detail = "expected " + describeToken(problem.Kind())
	} else {
		detail = "unexpected " + describeUnexpected(problem, source)
	}
	message := "parser: syntax error: " + detail
	if construct != "" {
		message = fmt.Sprintf("parser: syntax error in %s: %s", construct, detail)
	}
	return &ParseError{
		Message:   message,
		Construct: construct,
		Location:  locationForNode(problem),
	}
}

// firstProblem descends only into subtrees that contain errors, so the
// first MISSING or ERROR child found is also the first in source order.
func firstProblem(node *sitter.Node) *sitter.Node {
	for node != nil {
		var next *sitter.Node
		for idx := uint(0); idx < node.ChildCount(); idx++ {
			child := node.Child(idx)
			if child == nil {
				continue
			}
			if child.IsMissing() || child.IsError() {
				return child
			}
			if child.HasError() {
				next = child
				break
			}
		}
		if next == nil {
			return nil
		}
		node = next
	}
	return nil
}

func enclosingConstruct(node *sitter.Node) string {
	for n := node; n != nil; n = n.Parent() {
		if name, ok := constructs[n.Kind()]; ok {
			return name
		}
	}
	return ""
}

// describeToken renders a grammar symbol: punctuation and keywords are
// quoted, named terminals are spelled out.
func describeToken(kind string) string {
	kind = strings.TrimSpace(kind)
	if kind == "" {
		return "a token"
	}
	if name, ok := tokenNames[kind]; ok {
		return name
	}
	if strings.Contains(kind, "_") {
		return strings.ReplaceAll(kind, "_", " ")
	}
	return fmt.Sprintf("'%s'", kind)
}

// describeUnexpected quotes the first token swallowed by an ERROR node.
func describeUnexpected(node *sitter.Node, source []byte) string {
	leaf := node
	for leaf.ChildCount() > 0 {
		leaf = leaf.Child(0)
	}
	text := strings.TrimSpace(leaf.Utf8Text(source))
	if text == "" {
		return "end of input"
	}
	if runes := []rune(text); len(runes) > 20 {
		text = string(runes[:20]) + "..."
	}
	return fmt.Sprintf("'%s'", text)
}

func locationForNode(node *sitter.Node) SourceLocation {
	if node == nil {
		return SourceLocation{}
	}
	start := node.StartPosition()
	end := node.EndPosition()
	return SourceLocation{
		Line:      int(start.Row) + 1,
		Column:    int(start.Column) + 1,
		EndLine:   int(end.Row) + 1,
		EndColumn: int(end.Column) + 1,
	}
}
