package parser

import (
	"fmt"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"lexenv/interpreter-go/pkg/ast"
)

// parsePattern lowers a binding or assignment target. Array and object
// literals in target position are reinterpreted as patterns.
func (ctx *parseContext) parsePattern(node *sitter.Node) (ast.Pattern, error) {
	if node == nil {
		return nil, fmt.Errorf("parser: missing pattern")
	}
	if node.Kind() == "parenthesized_expression" {
		return ctx.parseSimpleTarget(firstNamedChild(node))
	}
	pattern, err := ctx.pattern(node)
	if err != nil {
		return nil, wrapParseError(node, err)
	}
	annotateSpan(pattern, node)
	return pattern, nil
}

func (ctx *parseContext) pattern(node *sitter.Node) (ast.Pattern, error) {
	switch node.Kind() {
	case "identifier", "undefined", "shorthand_property_identifier_pattern", "shorthand_property_identifier":
		return ast.NewIdentifier(ctx.text(node)), nil
	case "member_expression", "subscript_expression":
		return ctx.parseMemberExpression(node)
	case "array_pattern", "array":
		return ctx.parseArrayPattern(node)
	case "object_pattern", "object":
		return ctx.parseObjectPattern(node)
	case "assignment_pattern", "assignment_expression", "object_assignment_pattern":
		left, err := ctx.parsePattern(node.ChildByFieldName("left"))
		if err != nil {
			return nil, err
		}
		right, err := ctx.parseExpression(node.ChildByFieldName("right"))
		if err != nil {
			return nil, err
		}
		return ast.NewAssignmentPattern(left, right), nil
	case "rest_pattern", "spread_element":
		argument, err := ctx.parsePattern(firstNamedChild(node))
		if err != nil {
			return nil, err
		}
		return ast.NewRestElement(argument), nil
	default:
		return nil, unsupported(node, "pattern "+node.Kind())
	}
}

// parseSimpleTarget accepts only identifiers and member expressions, the
// targets of compound assignment and update expressions.
func (ctx *parseContext) parseSimpleTarget(node *sitter.Node) (ast.Pattern, error) {
	if node == nil {
		return nil, fmt.Errorf("parser: missing assignment target")
	}
	switch node.Kind() {
	case "parenthesized_expression":
		return ctx.parseSimpleTarget(firstNamedChild(node))
	case "identifier", "undefined", "member_expression", "subscript_expression":
		return ctx.parsePattern(node)
	default:
		return nil, &ParseError{
			Message:  "parser: invalid assignment target",
			Location: locationForNode(node),
		}
	}
}

func (ctx *parseContext) parseArrayPattern(node *sitter.Node) (*ast.ArrayPattern, error) {
	var elements []ast.Pattern
	err := ctx.eachElement(node, func(child *sitter.Node) error {
		if child == nil {
			elements = append(elements, nil)
			return nil
		}
		element, err := ctx.parsePattern(child)
		if err != nil {
			return err
		}
		elements = append(elements, element)
		return nil
	})
	if err != nil {
		return nil, err
	}
	for idx, element := range elements {
		if _, ok := element.(*ast.RestElement); ok && idx != len(elements)-1 {
			return nil, &ParseError{
				Message:  "parser: rest element must be last element",
				Location: locationForNode(node),
			}
		}
	}
	return ast.NewArrayPattern(elements), nil
}

func (ctx *parseContext) parseObjectPattern(node *sitter.Node) (*ast.ObjectPattern, error) {
	children := namedChildren(node)
	members := make([]ast.ObjectPatternMember, 0, len(children))
	for idx, child := range children {
		member, err := ctx.parseObjectPatternMember(child)
		if err != nil {
			return nil, err
		}
		if _, ok := member.(*ast.RestElement); ok && idx != len(children)-1 {
			return nil, &ParseError{
				Message:  "parser: rest element must be last element",
				Location: locationForNode(child),
			}
		}
		annotateSpan(member, child)
		members = append(members, member)
	}
	return ast.NewObjectPattern(members), nil
}

func (ctx *parseContext) parseObjectPatternMember(node *sitter.Node) (ast.ObjectPatternMember, error) {
	switch node.Kind() {
	case "shorthand_property_identifier_pattern", "shorthand_property_identifier":
		name := ctx.text(node)
		key := ast.NewIdentifier(name)
		value := ast.NewIdentifier(name)
		annotateSpan(key, node)
		annotateSpan(value, node)
		return ast.NewBindingProperty(key, value, false, true), nil
	case "object_assignment_pattern":
		leftNode := node.ChildByFieldName("left")
		if leftNode == nil || (leftNode.Kind() != "shorthand_property_identifier_pattern" && leftNode.Kind() != "identifier") {
			return nil, unsupported(node, "object pattern default")
		}
		key := ast.NewIdentifier(ctx.text(leftNode))
		annotateSpan(key, leftNode)
		value, err := ctx.parsePattern(node)
		if err != nil {
			return nil, err
		}
		return ast.NewBindingProperty(key, value, false, true), nil
	case "pair_pattern", "pair":
		key, computed, err := ctx.parsePropertyName(node.ChildByFieldName("key"))
		if err != nil {
			return nil, err
		}
		value, err := ctx.parsePattern(node.ChildByFieldName("value"))
		if err != nil {
			return nil, err
		}
		return ast.NewBindingProperty(key, value, computed, false), nil
	case "rest_pattern", "spread_element":
		argument, err := ctx.parsePattern(firstNamedChild(node))
		if err != nil {
			return nil, err
		}
		return ast.NewRestElement(argument), nil
	default:
		return nil, unsupported(node, "object pattern member "+node.Kind())
	}
}

func (ctx *parseContext) parseFormalParameters(node *sitter.Node) ([]ast.Pattern, error) {
	if node == nil {
		return nil, fmt.Errorf("parser: missing parameter list")
	}
	children := namedChildren(node)
	params := make([]ast.Pattern, 0, len(children))
	for idx, child := range children {
		param, err := ctx.parsePattern(child)
		if err != nil {
			return nil, err
		}
		if _, ok := param.(*ast.RestElement); ok && idx != len(children)-1 {
			return nil, &ParseError{
				Message:  "parser: rest parameter must be last formal parameter",
				Location: locationForNode(child),
			}
		}
		params = append(params, param)
	}
	return params, nil
}
