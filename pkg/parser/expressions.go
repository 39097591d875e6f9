package parser

import (
	"fmt"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"lexenv/interpreter-go/pkg/ast"
)

func (ctx *parseContext) parseExpression(node *sitter.Node) (ast.Expression, error) {
	if node == nil {
		return nil, fmt.Errorf("parser: missing expression")
	}
	if node.Kind() == "parenthesized_expression" {
		return ctx.parseExpression(firstNamedChild(node))
	}
	expr, err := ctx.expression(node)
	if err != nil {
		return nil, wrapParseError(node, err)
	}
	annotateSpan(expr, node)
	return expr, nil
}

func (ctx *parseContext) expression(node *sitter.Node) (ast.Expression, error) {
	switch node.Kind() {
	case "identifier", "undefined":
		return ast.NewIdentifier(ctx.text(node)), nil
	case "this":
		return ast.NewThisExpression(), nil
	case "true":
		return ast.NewBooleanLiteral(true), nil
	case "false":
		return ast.NewBooleanLiteral(false), nil
	case "null":
		return ast.NewNullLiteral(), nil
	case "number":
		value, err := parseNumber(ctx.text(node))
		if err != nil {
			return nil, err
		}
		return ast.NewNumericLiteral(value), nil
	case "string":
		return ctx.parseStringLiteral(node)
	case "template_string":
		return ctx.parseTemplateString(node)
	case "array":
		return ctx.parseArray(node)
	case "object":
		return ctx.parseObject(node)
	case "function_expression", "function", "generator_function":
		return ctx.parseFunctionExpression(node)
	case "arrow_function":
		return ctx.parseArrowFunction(node)
	case "call_expression":
		return ctx.parseCallExpression(node)
	case "new_expression":
		callee, err := ctx.parseExpression(node.ChildByFieldName("constructor"))
		if err != nil {
			return nil, err
		}
		var args []ast.Expression
		if argsNode := node.ChildByFieldName("arguments"); argsNode != nil {
			args, err = ctx.parseArguments(argsNode)
			if err != nil {
				return nil, err
			}
		}
		return ast.NewNewExpression(callee, args), nil
	case "member_expression", "subscript_expression":
		return ctx.parseMemberExpression(node)
	case "assignment_expression":
		left, err := ctx.parsePattern(node.ChildByFieldName("left"))
		if err != nil {
			return nil, err
		}
		right, err := ctx.parseExpression(node.ChildByFieldName("right"))
		if err != nil {
			return nil, err
		}
		return ast.NewAssignmentExpression("=", left, right), nil
	case "augmented_assignment_expression":
		left, err := ctx.parseSimpleTarget(node.ChildByFieldName("left"))
		if err != nil {
			return nil, err
		}
		right, err := ctx.parseExpression(node.ChildByFieldName("right"))
		if err != nil {
			return nil, err
		}
		return ast.NewAssignmentExpression(ctx.text(node.ChildByFieldName("operator")), left, right), nil
	case "binary_expression":
		left, err := ctx.parseExpression(node.ChildByFieldName("left"))
		if err != nil {
			return nil, err
		}
		right, err := ctx.parseExpression(node.ChildByFieldName("right"))
		if err != nil {
			return nil, err
		}
		op := ctx.text(node.ChildByFieldName("operator"))
		switch op {
		case "&&", "||", "??":
			return ast.NewLogicalExpression(op, left, right), nil
		default:
			return ast.NewBinaryExpression(op, left, right), nil
		}
	case "unary_expression":
		argument, err := ctx.parseExpression(node.ChildByFieldName("argument"))
		if err != nil {
			return nil, err
		}
		return ast.NewUnaryExpression(ctx.text(node.ChildByFieldName("operator")), argument), nil
	case "update_expression":
		argNode := node.ChildByFieldName("argument")
		opNode := node.ChildByFieldName("operator")
		if argNode == nil || opNode == nil {
			return nil, fmt.Errorf("parser: malformed update expression")
		}
		argument, err := ctx.parseSimpleTarget(argNode)
		if err != nil {
			return nil, err
		}
		target, ok := argument.(ast.Expression)
		if !ok {
			return nil, fmt.Errorf("parser: invalid update target")
		}
		return ast.NewUpdateExpression(ctx.text(opNode), target, opNode.StartByte() < argNode.StartByte()), nil
	case "ternary_expression":
		test, err := ctx.parseExpression(node.ChildByFieldName("condition"))
		if err != nil {
			return nil, err
		}
		consequent, err := ctx.parseExpression(node.ChildByFieldName("consequence"))
		if err != nil {
			return nil, err
		}
		alternate, err := ctx.parseExpression(node.ChildByFieldName("alternative"))
		if err != nil {
			return nil, err
		}
		return ast.NewConditionalExpression(test, consequent, alternate), nil
	case "sequence_expression":
		var exprs []ast.Expression
		for _, child := range flattenSequence(node) {
			expr, err := ctx.parseExpression(child)
			if err != nil {
				return nil, err
			}
			exprs = append(exprs, expr)
		}
		return ast.NewSequenceExpression(exprs), nil
	case "yield_expression":
		var argument ast.Expression
		if child := firstNamedChild(node); child != nil {
			expr, err := ctx.parseExpression(child)
			if err != nil {
				return nil, err
			}
			argument = expr
		}
		return ast.NewYieldExpression(argument, hasToken(node, "*")), nil
	case "spread_element":
		argument, err := ctx.parseExpression(firstNamedChild(node))
		if err != nil {
			return nil, err
		}
		return ast.NewSpreadElement(argument), nil
	default:
		return nil, unsupported(node, "")
	}
}

func flattenSequence(node *sitter.Node) []*sitter.Node {
	var out []*sitter.Node
	for _, child := range namedChildren(node) {
		if child.Kind() == "sequence_expression" {
			out = append(out, flattenSequence(child)...)
			continue
		}
		out = append(out, child)
	}
	return out
}

func (ctx *parseContext) parseArguments(node *sitter.Node) ([]ast.Expression, error) {
	if node == nil {
		return nil, nil
	}
	if node.Kind() != "arguments" {
		return nil, unsupported(node, "tagged template")
	}
	children := namedChildren(node)
	args := make([]ast.Expression, 0, len(children))
	for _, child := range children {
		arg, err := ctx.parseExpression(child)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	return args, nil
}

func (ctx *parseContext) parseCallExpression(node *sitter.Node) (ast.Expression, error) {
	if node.ChildByFieldName("optional_chain") != nil {
		return nil, unsupported(node, "optional chaining")
	}
	calleeNode := node.ChildByFieldName("function")
	if calleeNode == nil {
		return nil, fmt.Errorf("parser: call without callee")
	}
	switch calleeNode.Kind() {
	case "super", "import":
		return nil, unsupported(calleeNode, calleeNode.Kind()+" call")
	}
	callee, err := ctx.parseExpression(calleeNode)
	if err != nil {
		return nil, err
	}
	args, err := ctx.parseArguments(node.ChildByFieldName("arguments"))
	if err != nil {
		return nil, err
	}
	return ast.NewCallExpression(callee, args), nil
}

func (ctx *parseContext) parseMemberExpression(node *sitter.Node) (*ast.MemberExpression, error) {
	if node.ChildByFieldName("optional_chain") != nil {
		return nil, unsupported(node, "optional chaining")
	}
	objNode := node.ChildByFieldName("object")
	if objNode != nil && objNode.Kind() == "super" {
		return nil, unsupported(objNode, "super property")
	}
	object, err := ctx.parseExpression(objNode)
	if err != nil {
		return nil, err
	}
	if node.Kind() == "subscript_expression" {
		index, err := ctx.parseExpression(node.ChildByFieldName("index"))
		if err != nil {
			return nil, err
		}
		return ast.NewMemberExpression(object, index, true), nil
	}
	propNode := node.ChildByFieldName("property")
	if propNode == nil {
		return nil, fmt.Errorf("parser: member expression missing property")
	}
	if propNode.Kind() == "private_property_identifier" {
		return nil, unsupported(propNode, "private name")
	}
	prop := ast.NewIdentifier(ctx.text(propNode))
	annotateSpan(prop, propNode)
	return ast.NewMemberExpression(object, prop, false), nil
}

func (ctx *parseContext) parseArray(node *sitter.Node) (*ast.ArrayExpression, error) {
	var elements []ast.Expression
	err := ctx.eachElement(node, func(child *sitter.Node) error {
		if child == nil {
			elements = append(elements, nil)
			return nil
		}
		expr, err := ctx.parseExpression(child)
		if err != nil {
			return err
		}
		elements = append(elements, expr)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ast.NewArrayExpression(elements), nil
}

// eachElement visits the elements of an array literal or pattern. Elisions
// are reported as nil; a trailing comma adds nothing.
func (ctx *parseContext) eachElement(node *sitter.Node, visit func(child *sitter.Node) error) error {
	pending := false
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child == nil || isIgnorableNode(child) {
			continue
		}
		switch child.Kind() {
		case "[", "]":
			continue
		case ",":
			if !pending {
				if err := visit(nil); err != nil {
					return err
				}
			}
			pending = false
			continue
		}
		if err := visit(child); err != nil {
			return err
		}
		pending = true
	}
	return nil
}

func (ctx *parseContext) parseObject(node *sitter.Node) (*ast.ObjectExpression, error) {
	var members []ast.ObjectMember
	for _, child := range namedChildren(node) {
		var member ast.ObjectMember
		switch child.Kind() {
		case "pair":
			key, computed, err := ctx.parsePropertyName(child.ChildByFieldName("key"))
			if err != nil {
				return nil, err
			}
			value, err := ctx.parseExpression(child.ChildByFieldName("value"))
			if err != nil {
				return nil, err
			}
			member = ast.NewProperty(key, value, ast.PropertyInit, computed, false, false)
		case "shorthand_property_identifier":
			name := ctx.text(child)
			key := ast.NewIdentifier(name)
			value := ast.NewIdentifier(name)
			annotateSpan(key, child)
			annotateSpan(value, child)
			member = ast.NewProperty(key, value, ast.PropertyInit, false, true, false)
		case "method_definition":
			prop, err := ctx.parseMethodDefinition(child)
			if err != nil {
				return nil, err
			}
			member = prop
		case "spread_element":
			argument, err := ctx.parseExpression(firstNamedChild(child))
			if err != nil {
				return nil, err
			}
			member = ast.NewSpreadElement(argument)
		default:
			return nil, unsupported(child, "")
		}
		annotateSpan(member, child)
		members = append(members, member)
	}
	return ast.NewObjectExpression(members), nil
}

// parsePropertyName lowers a property key. Computed keys return the key
// expression and true.
func (ctx *parseContext) parsePropertyName(node *sitter.Node) (ast.Expression, bool, error) {
	if node == nil {
		return nil, false, fmt.Errorf("parser: missing property name")
	}
	var key ast.Expression
	switch node.Kind() {
	case "property_identifier", "identifier", "shorthand_property_identifier", "shorthand_property_identifier_pattern":
		key = ast.NewIdentifier(ctx.text(node))
	case "string":
		lit, err := ctx.parseStringLiteral(node)
		if err != nil {
			return nil, false, err
		}
		key = lit
	case "number":
		value, err := parseNumber(ctx.text(node))
		if err != nil {
			return nil, false, wrapParseError(node, err)
		}
		key = ast.NewNumericLiteral(value)
	case "computed_property_name":
		expr, err := ctx.parseExpression(firstNamedChild(node))
		if err != nil {
			return nil, false, err
		}
		return expr, true, nil
	case "private_property_identifier":
		return nil, false, unsupported(node, "private name")
	default:
		return nil, false, unsupported(node, "property name "+node.Kind())
	}
	annotateSpan(key, node)
	return key, false, nil
}

func (ctx *parseContext) parseMethodDefinition(node *sitter.Node) (*ast.Property, error) {
	nameNode := node.ChildByFieldName("name")
	kind := ast.PropertyInit
	generator, async := false, false
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child == nil || child.IsNamed() {
			continue
		}
		switch child.Kind() {
		case "get":
			kind = ast.PropertyGet
		case "set":
			kind = ast.PropertySet
		case "*":
			generator = true
		case "async":
			async = true
		case "static", "static get":
			return nil, unsupported(child, "static member")
		}
	}
	key, computed, err := ctx.parsePropertyName(nameNode)
	if err != nil {
		return nil, err
	}
	params, body, err := ctx.parseFunctionSignature(node)
	if err != nil {
		return nil, err
	}
	fn := ast.NewFunctionExpression(nil, params, body)
	fn.Generator = generator
	fn.Async = async
	annotateSpan(fn, node)
	return ast.NewProperty(key, fn, kind, computed, false, kind == ast.PropertyInit), nil
}

// parseFunctionSignature reads the parameters and body fields shared by
// declarations, expressions and methods.
func (ctx *parseContext) parseFunctionSignature(node *sitter.Node) ([]ast.Pattern, *ast.BlockStatement, error) {
	params, err := ctx.parseFormalParameters(node.ChildByFieldName("parameters"))
	if err != nil {
		return nil, nil, err
	}
	bodyNode := node.ChildByFieldName("body")
	if bodyNode == nil || bodyNode.Kind() != "statement_block" {
		return nil, nil, fmt.Errorf("parser: function body must be a block")
	}
	stmts, err := ctx.parseBody(namedChildren(bodyNode))
	if err != nil {
		return nil, nil, err
	}
	body := ast.NewBlockStatement(stmts)
	annotateSpan(body, bodyNode)
	return params, body, nil
}

func (ctx *parseContext) parseFunctionExpression(node *sitter.Node) (*ast.FunctionExpression, error) {
	var name *ast.Identifier
	if nameNode := node.ChildByFieldName("name"); nameNode != nil {
		name = ast.NewIdentifier(ctx.text(nameNode))
		annotateSpan(name, nameNode)
	}
	params, body, err := ctx.parseFunctionSignature(node)
	if err != nil {
		return nil, err
	}
	fn := ast.NewFunctionExpression(name, params, body)
	fn.Generator = node.Kind() == "generator_function" || hasToken(node, "*")
	fn.Async = hasToken(node, "async")
	return fn, nil
}

func (ctx *parseContext) parseArrowFunction(node *sitter.Node) (*ast.ArrowFunctionExpression, error) {
	var params []ast.Pattern
	if single := node.ChildByFieldName("parameter"); single != nil {
		id := ast.NewIdentifier(ctx.text(single))
		annotateSpan(id, single)
		params = []ast.Pattern{id}
	} else {
		list, err := ctx.parseFormalParameters(node.ChildByFieldName("parameters"))
		if err != nil {
			return nil, err
		}
		params = list
	}
	bodyNode := node.ChildByFieldName("body")
	if bodyNode == nil {
		return nil, fmt.Errorf("parser: arrow function missing body")
	}
	var body ast.Node
	if bodyNode.Kind() == "statement_block" {
		stmts, err := ctx.parseBody(namedChildren(bodyNode))
		if err != nil {
			return nil, err
		}
		block := ast.NewBlockStatement(stmts)
		annotateSpan(block, bodyNode)
		body = block
	} else {
		expr, err := ctx.parseExpression(bodyNode)
		if err != nil {
			return nil, err
		}
		body = expr
	}
	arrow := ast.NewArrowFunctionExpression(params, body)
	arrow.Async = hasToken(node, "async")
	return arrow, nil
}
