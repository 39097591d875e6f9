package ast

import (
	"encoding/json"
	"fmt"
	"math"
)

// DecodeProgram decodes an ESTree (or Babel) JSON document into a Program.
// A Babel `File` wrapper is unwrapped.
func DecodeProgram(data []byte) (*Program, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	node, err := DecodeNode(raw)
	if err != nil {
		return nil, err
	}
	program, ok := node.(*Program)
	if !ok {
		return nil, fmt.Errorf("decode: expected Program, got %s", node.NodeType())
	}
	return program, nil
}

// DecodeNode decodes a single JSON node.
func DecodeNode(node map[string]any) (Node, error) {
	if node == nil {
		return nil, fmt.Errorf("decode: node is nil")
	}
	typ, _ := node["type"].(string)
	decoded, err := decodeNodeOfType(typ, node)
	if err != nil {
		return nil, err
	}
	if span, ok := decodeSpan(node); ok {
		SetSpan(decoded, span)
	}
	return decoded, nil
}

func decodeNodeOfType(typ string, node map[string]any) (Node, error) {
	switch typ {
	case "File":
		program, ok := node["program"].(map[string]any)
		if !ok {
			return nil, fmt.Errorf("decode: File missing program")
		}
		return DecodeNode(program)
	case "Program":
		body, err := decodeStatements(node["body"])
		if err != nil {
			return nil, err
		}
		strict, _ := node["strict"].(bool)
		if !strict {
			strict = hasUseStrict(node)
		}
		return NewProgram(body, strict), nil
	case "Identifier":
		name, _ := node["name"].(string)
		if name == "" {
			return nil, fmt.Errorf("decode: identifier missing name")
		}
		return NewIdentifier(name), nil
	case "Literal":
		return decodeLiteral(node)
	case "NumericLiteral":
		value, ok := node["value"].(float64)
		if !ok {
			return nil, fmt.Errorf("decode: numeric literal value %T", node["value"])
		}
		return NewNumericLiteral(value), nil
	case "StringLiteral":
		value, _ := node["value"].(string)
		return NewStringLiteral(value), nil
	case "BooleanLiteral":
		value, _ := node["value"].(bool)
		return NewBooleanLiteral(value), nil
	case "NullLiteral":
		return NewNullLiteral(), nil
	case "TemplateLiteral":
		return decodeTemplate(node)
	case "ArrayExpression":
		elements, err := decodeOptionalExpressions(node["elements"])
		if err != nil {
			return nil, err
		}
		return NewArrayExpression(elements), nil
	case "ObjectExpression":
		return decodeObjectExpression(node)
	case "SpreadElement", "SpreadProperty":
		argument, err := decodeExpression(node["argument"])
		if err != nil {
			return nil, err
		}
		return NewSpreadElement(argument), nil
	case "FunctionExpression":
		return decodeFunction(node, func(id *Identifier, params []Pattern, body *BlockStatement) Node {
			return NewFunctionExpression(id, params, body)
		})
	case "FunctionDeclaration":
		return decodeFunction(node, func(id *Identifier, params []Pattern, body *BlockStatement) Node {
			return NewFunctionDeclaration(id, params, body)
		})
	case "ArrowFunctionExpression":
		params, err := decodePatterns(node["params"])
		if err != nil {
			return nil, err
		}
		bodyRaw, ok := node["body"].(map[string]any)
		if !ok {
			return nil, fmt.Errorf("decode: arrow function missing body")
		}
		body, err := DecodeNode(bodyRaw)
		if err != nil {
			return nil, err
		}
		arrow := NewArrowFunctionExpression(params, body)
		arrow.Async, _ = node["async"].(bool)
		return arrow, nil
	case "CallExpression", "NewExpression":
		callee, err := decodeExpression(node["callee"])
		if err != nil {
			return nil, err
		}
		args, err := decodeExpressions(node["arguments"])
		if err != nil {
			return nil, err
		}
		if typ == "NewExpression" {
			return NewNewExpression(callee, args), nil
		}
		return NewCallExpression(callee, args), nil
	case "MemberExpression":
		object, err := decodeExpression(node["object"])
		if err != nil {
			return nil, err
		}
		property, err := decodeExpression(node["property"])
		if err != nil {
			return nil, err
		}
		computed, _ := node["computed"].(bool)
		return NewMemberExpression(object, property, computed), nil
	case "AssignmentExpression":
		left, err := decodePattern(node["left"])
		if err != nil {
			return nil, err
		}
		right, err := decodeExpression(node["right"])
		if err != nil {
			return nil, err
		}
		operator, _ := node["operator"].(string)
		return NewAssignmentExpression(operator, left, right), nil
	case "BinaryExpression", "LogicalExpression":
		left, err := decodeExpression(node["left"])
		if err != nil {
			return nil, err
		}
		right, err := decodeExpression(node["right"])
		if err != nil {
			return nil, err
		}
		operator, _ := node["operator"].(string)
		if typ == "LogicalExpression" {
			return NewLogicalExpression(operator, left, right), nil
		}
		return NewBinaryExpression(operator, left, right), nil
	case "UnaryExpression", "UpdateExpression":
		argument, err := decodeExpression(node["argument"])
		if err != nil {
			return nil, err
		}
		operator, _ := node["operator"].(string)
		if typ == "UpdateExpression" {
			prefix, _ := node["prefix"].(bool)
			return NewUpdateExpression(operator, argument, prefix), nil
		}
		return NewUnaryExpression(operator, argument), nil
	case "ConditionalExpression":
		test, err := decodeExpression(node["test"])
		if err != nil {
			return nil, err
		}
		consequent, err := decodeExpression(node["consequent"])
		if err != nil {
			return nil, err
		}
		alternate, err := decodeExpression(node["alternate"])
		if err != nil {
			return nil, err
		}
		return NewConditionalExpression(test, consequent, alternate), nil
	case "ThisExpression":
		return NewThisExpression(), nil
	case "SequenceExpression":
		expressions, err := decodeExpressions(node["expressions"])
		if err != nil {
			return nil, err
		}
		return NewSequenceExpression(expressions), nil
	case "YieldExpression":
		var argument Expression
		if node["argument"] != nil {
			arg, err := decodeExpression(node["argument"])
			if err != nil {
				return nil, err
			}
			argument = arg
		}
		delegate, _ := node["delegate"].(bool)
		return NewYieldExpression(argument, delegate), nil
	case "ArrayPattern":
		elements, err := decodeOptionalPatterns(node["elements"])
		if err != nil {
			return nil, err
		}
		return NewArrayPattern(elements), nil
	case "ObjectPattern":
		return decodeObjectPattern(node)
	case "RestElement", "RestProperty":
		argument, err := decodePattern(node["argument"])
		if err != nil {
			return nil, err
		}
		return NewRestElement(argument), nil
	case "AssignmentPattern":
		left, err := decodePattern(node["left"])
		if err != nil {
			return nil, err
		}
		right, err := decodeExpression(node["right"])
		if err != nil {
			return nil, err
		}
		return NewAssignmentPattern(left, right), nil
	case "BindingProperty":
		return decodeBindingProperty(node)
	case "VariableDeclaration":
		kind, _ := node["kind"].(string)
		rawDecls, _ := node["declarations"].([]any)
		declarators := make([]*VariableDeclarator, 0, len(rawDecls))
		for _, raw := range rawDecls {
			decoded, err := decodeChild(raw)
			if err != nil {
				return nil, err
			}
			declarator, ok := decoded.(*VariableDeclarator)
			if !ok {
				return nil, fmt.Errorf("decode: invalid declarator %s", decoded.NodeType())
			}
			declarators = append(declarators, declarator)
		}
		switch DeclarationKind(kind) {
		case DeclarationVar, DeclarationLet, DeclarationConst:
		default:
			return nil, fmt.Errorf("decode: unsupported declaration kind %q", kind)
		}
		return NewVariableDeclaration(DeclarationKind(kind), declarators), nil
	case "VariableDeclarator":
		id, err := decodePattern(node["id"])
		if err != nil {
			return nil, err
		}
		var init Expression
		if node["init"] != nil {
			if init, err = decodeExpression(node["init"]); err != nil {
				return nil, err
			}
		}
		return NewVariableDeclarator(id, init), nil
	case "ExpressionStatement":
		expression, err := decodeExpression(node["expression"])
		if err != nil {
			return nil, err
		}
		stmt := NewExpressionStatement(expression)
		stmt.Directive, _ = node["directive"].(string)
		return stmt, nil
	case "BlockStatement":
		return decodeBlock(node)
	case "EmptyStatement":
		return NewEmptyStatement(), nil
	case "IfStatement":
		test, err := decodeExpression(node["test"])
		if err != nil {
			return nil, err
		}
		consequent, err := decodeStatement(node["consequent"])
		if err != nil {
			return nil, err
		}
		var alternate Statement
		if node["alternate"] != nil {
			if alternate, err = decodeStatement(node["alternate"]); err != nil {
				return nil, err
			}
		}
		return NewIfStatement(test, consequent, alternate), nil
	case "ForStatement":
		return decodeFor(node)
	case "ForOfStatement", "ForInStatement":
		leftRaw, ok := node["left"].(map[string]any)
		if !ok {
			return nil, fmt.Errorf("decode: %s missing left", typ)
		}
		left, err := DecodeNode(leftRaw)
		if err != nil {
			return nil, err
		}
		if _, isDecl := left.(*VariableDeclaration); !isDecl {
			if _, isPattern := left.(Pattern); !isPattern {
				return nil, fmt.Errorf("decode: invalid %s head %s", typ, left.NodeType())
			}
		}
		right, err := decodeExpression(node["right"])
		if err != nil {
			return nil, err
		}
		body, err := decodeStatement(node["body"])
		if err != nil {
			return nil, err
		}
		if typ == "ForInStatement" {
			return NewForInStatement(left, right, body), nil
		}
		return NewForOfStatement(left, right, body), nil
	case "WhileStatement":
		test, err := decodeExpression(node["test"])
		if err != nil {
			return nil, err
		}
		body, err := decodeStatement(node["body"])
		if err != nil {
			return nil, err
		}
		return NewWhileStatement(test, body), nil
	case "ReturnStatement", "ThrowStatement":
		var argument Expression
		if node["argument"] != nil {
			arg, err := decodeExpression(node["argument"])
			if err != nil {
				return nil, err
			}
			argument = arg
		}
		if typ == "ThrowStatement" {
			if argument == nil {
				return nil, fmt.Errorf("decode: throw without argument")
			}
			return NewThrowStatement(argument), nil
		}
		return NewReturnStatement(argument), nil
	case "TryStatement":
		return decodeTry(node)
	case "BreakStatement", "ContinueStatement":
		var label *Identifier
		if raw, ok := node["label"].(map[string]any); ok {
			decoded, err := DecodeNode(raw)
			if err != nil {
				return nil, err
			}
			label, _ = decoded.(*Identifier)
		}
		if typ == "BreakStatement" {
			return NewBreakStatement(label), nil
		}
		return NewContinueStatement(label), nil
	case "LabeledStatement":
		labelRaw, _ := node["label"].(map[string]any)
		decoded, err := DecodeNode(labelRaw)
		if err != nil {
			return nil, err
		}
		label, ok := decoded.(*Identifier)
		if !ok {
			return nil, fmt.Errorf("decode: invalid label %s", decoded.NodeType())
		}
		body, err := decodeStatement(node["body"])
		if err != nil {
			return nil, err
		}
		return NewLabeledStatement(label, body), nil
	default:
		return nil, fmt.Errorf("decode: unsupported node type %q", typ)
	}
}

func decodeChild(raw any) (Node, error) {
	node, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("decode: expected node object, got %T", raw)
	}
	return DecodeNode(node)
}

func decodeExpression(raw any) (Expression, error) {
	node, err := decodeChild(raw)
	if err != nil {
		return nil, err
	}
	expr, ok := node.(Expression)
	if !ok {
		return nil, fmt.Errorf("decode: %s is not an expression", node.NodeType())
	}
	return expr, nil
}

func decodeExpressions(raw any) ([]Expression, error) {
	items, _ := raw.([]any)
	out := make([]Expression, 0, len(items))
	for _, item := range items {
		expr, err := decodeExpression(item)
		if err != nil {
			return nil, err
		}
		out = append(out, expr)
	}
	return out, nil
}

func decodeOptionalExpressions(raw any) ([]Expression, error) {
	items, _ := raw.([]any)
	out := make([]Expression, 0, len(items))
	for _, item := range items {
		if item == nil {
			out = append(out, nil)
			continue
		}
		expr, err := decodeExpression(item)
		if err != nil {
			return nil, err
		}
		out = append(out, expr)
	}
	return out, nil
}

func decodePattern(raw any) (Pattern, error) {
	node, err := decodeChild(raw)
	if err != nil {
		return nil, err
	}
	switch n := node.(type) {
	case Pattern:
		return n, nil
	case *ArrayExpression:
		return arrayExpressionToPattern(n)
	case *ObjectExpression:
		return objectExpressionToPattern(n)
	default:
		return nil, fmt.Errorf("decode: %s is not a pattern", node.NodeType())
	}
}

func decodePatterns(raw any) ([]Pattern, error) {
	items, _ := raw.([]any)
	out := make([]Pattern, 0, len(items))
	for _, item := range items {
		pattern, err := decodePattern(item)
		if err != nil {
			return nil, err
		}
		out = append(out, pattern)
	}
	return out, nil
}

func decodeOptionalPatterns(raw any) ([]Pattern, error) {
	items, _ := raw.([]any)
	out := make([]Pattern, 0, len(items))
	for _, item := range items {
		if item == nil {
			out = append(out, nil)
			continue
		}
		pattern, err := decodePattern(item)
		if err != nil {
			return nil, err
		}
		out = append(out, pattern)
	}
	return out, nil
}

func decodeStatement(raw any) (Statement, error) {
	node, err := decodeChild(raw)
	if err != nil {
		return nil, err
	}
	stmt, ok := node.(Statement)
	if !ok {
		return nil, fmt.Errorf("decode: %s is not a statement", node.NodeType())
	}
	return stmt, nil
}

func decodeStatements(raw any) ([]Statement, error) {
	items, _ := raw.([]any)
	out := make([]Statement, 0, len(items))
	for _, item := range items {
		stmt, err := decodeStatement(item)
		if err != nil {
			return nil, err
		}
		out = append(out, stmt)
	}
	return out, nil
}

func decodeBlock(node map[string]any) (*BlockStatement, error) {
	body, err := decodeStatements(node["body"])
	if err != nil {
		return nil, err
	}
	return NewBlockStatement(body), nil
}

func decodeLiteral(node map[string]any) (Node, error) {
	switch v := node["value"].(type) {
	case nil:
		if _, isRegex := node["regex"]; isRegex {
			return nil, fmt.Errorf("decode: regular expression literals are not supported")
		}
		return NewNullLiteral(), nil
	case bool:
		return NewBooleanLiteral(v), nil
	case float64:
		return NewNumericLiteral(v), nil
	case string:
		return NewStringLiteral(v), nil
	default:
		return nil, fmt.Errorf("decode: unsupported literal value %T", v)
	}
}

func decodeTemplate(node map[string]any) (Node, error) {
	rawQuasis, _ := node["quasis"].([]any)
	quasis := make([]string, 0, len(rawQuasis))
	for _, raw := range rawQuasis {
		element, _ := raw.(map[string]any)
		value, _ := element["value"].(map[string]any)
		cooked, _ := value["cooked"].(string)
		quasis = append(quasis, cooked)
	}
	expressions, err := decodeExpressions(node["expressions"])
	if err != nil {
		return nil, err
	}
	if len(quasis) != len(expressions)+1 {
		return nil, fmt.Errorf("decode: template literal has %d quasis for %d expressions", len(quasis), len(expressions))
	}
	return NewTemplateLiteral(quasis, expressions), nil
}

func decodeObjectExpression(node map[string]any) (Node, error) {
	rawProps, _ := node["properties"].([]any)
	members := make([]ObjectMember, 0, len(rawProps))
	for _, raw := range rawProps {
		propNode, ok := raw.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("decode: invalid object member %T", raw)
		}
		typ, _ := propNode["type"].(string)
		switch typ {
		case "SpreadElement", "SpreadProperty":
			decoded, err := DecodeNode(propNode)
			if err != nil {
				return nil, err
			}
			members = append(members, decoded.(*SpreadElement))
		case "Property", "ObjectProperty", "ObjectMethod":
			prop, err := decodeProperty(propNode)
			if err != nil {
				return nil, err
			}
			members = append(members, prop)
		default:
			return nil, fmt.Errorf("decode: unsupported object member %q", typ)
		}
	}
	return NewObjectExpression(members), nil
}

func decodeProperty(node map[string]any) (*Property, error) {
	key, err := decodeExpression(node["key"])
	if err != nil {
		return nil, err
	}
	computed, _ := node["computed"].(bool)
	shorthand, _ := node["shorthand"].(bool)
	method, _ := node["method"].(bool)
	kind, _ := node["kind"].(string)
	var value Expression
	if typ, _ := node["type"].(string); typ == "ObjectMethod" {
		decoded, err := decodeFunction(node, func(_ *Identifier, params []Pattern, body *BlockStatement) Node {
			return NewFunctionExpression(nil, params, body)
		})
		if err != nil {
			return nil, err
		}
		value = decoded.(*FunctionExpression)
		if kind == "method" {
			kind = string(PropertyInit)
			method = true
		}
	} else {
		if value, err = decodeExpression(node["value"]); err != nil {
			return nil, err
		}
	}
	switch PropertyKind(kind) {
	case "", PropertyInit, PropertyGet, PropertySet:
	default:
		return nil, fmt.Errorf("decode: unsupported property kind %q", kind)
	}
	prop := NewProperty(key, value, PropertyKind(kind), computed, shorthand, method)
	if span, ok := decodeSpan(node); ok {
		prop.setSpan(span)
	}
	return prop, nil
}

func decodeObjectPattern(node map[string]any) (Node, error) {
	rawProps, _ := node["properties"].([]any)
	members := make([]ObjectPatternMember, 0, len(rawProps))
	for _, raw := range rawProps {
		propNode, ok := raw.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("decode: invalid object pattern member %T", raw)
		}
		typ, _ := propNode["type"].(string)
		switch typ {
		case "RestElement", "RestProperty":
			decoded, err := DecodeNode(propNode)
			if err != nil {
				return nil, err
			}
			members = append(members, decoded.(*RestElement))
		case "Property", "ObjectProperty", "BindingProperty":
			prop, err := decodeBindingProperty(propNode)
			if err != nil {
				return nil, err
			}
			members = append(members, prop)
		default:
			return nil, fmt.Errorf("decode: unsupported object pattern member %q", typ)
		}
	}
	return NewObjectPattern(members), nil
}

func decodeBindingProperty(node map[string]any) (*BindingProperty, error) {
	key, err := decodeExpression(node["key"])
	if err != nil {
		return nil, err
	}
	value, err := decodePattern(node["value"])
	if err != nil {
		return nil, err
	}
	computed, _ := node["computed"].(bool)
	shorthand, _ := node["shorthand"].(bool)
	prop := NewBindingProperty(key, value, computed, shorthand)
	if span, ok := decodeSpan(node); ok {
		prop.setSpan(span)
	}
	return prop, nil
}

func decodeFunction(node map[string]any, build func(*Identifier, []Pattern, *BlockStatement) Node) (Node, error) {
	var id *Identifier
	if raw, ok := node["id"].(map[string]any); ok {
		decoded, err := DecodeNode(raw)
		if err != nil {
			return nil, err
		}
		id, _ = decoded.(*Identifier)
	}
	params, err := decodePatterns(node["params"])
	if err != nil {
		return nil, err
	}
	bodyRaw, ok := node["body"].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("decode: function missing body")
	}
	body, err := decodeBlock(bodyRaw)
	if err != nil {
		return nil, err
	}
	if span, ok := decodeSpan(bodyRaw); ok {
		body.setSpan(span)
	}
	fn := build(id, params, body)
	if holder, ok := fn.(FunctionNode); ok {
		parts := holder.Parts()
		parts.Generator, _ = node["generator"].(bool)
		parts.Async, _ = node["async"].(bool)
	}
	return fn, nil
}

func decodeFor(node map[string]any) (Node, error) {
	var init Statement
	if raw, ok := node["init"].(map[string]any); ok {
		decoded, err := DecodeNode(raw)
		if err != nil {
			return nil, err
		}
		switch n := decoded.(type) {
		case *VariableDeclaration:
			init = n
		case Expression:
			init = NewExpressionStatement(n)
		default:
			return nil, fmt.Errorf("decode: invalid for init %s", decoded.NodeType())
		}
	}
	var test, update Expression
	var err error
	if node["test"] != nil {
		if test, err = decodeExpression(node["test"]); err != nil {
			return nil, err
		}
	}
	if node["update"] != nil {
		if update, err = decodeExpression(node["update"]); err != nil {
			return nil, err
		}
	}
	body, err := decodeStatement(node["body"])
	if err != nil {
		return nil, err
	}
	return NewForStatement(init, test, update, body), nil
}

func decodeTry(node map[string]any) (Node, error) {
	blockRaw, _ := node["block"].(map[string]any)
	block, err := decodeBlock(blockRaw)
	if err != nil {
		return nil, err
	}
	var handler *CatchClause
	if raw, ok := node["handler"].(map[string]any); ok {
		var param Pattern
		if raw["param"] != nil {
			if param, err = decodePattern(raw["param"]); err != nil {
				return nil, err
			}
		}
		bodyRaw, _ := raw["body"].(map[string]any)
		body, err := decodeBlock(bodyRaw)
		if err != nil {
			return nil, err
		}
		handler = NewCatchClause(param, body)
	}
	var finalizer *BlockStatement
	if raw, ok := node["finalizer"].(map[string]any); ok {
		if finalizer, err = decodeBlock(raw); err != nil {
			return nil, err
		}
	}
	if handler == nil && finalizer == nil {
		return nil, fmt.Errorf("decode: try statement without catch or finally")
	}
	return NewTryStatement(block, handler, finalizer), nil
}

func decodeSpan(node map[string]any) (Span, bool) {
	loc, ok := node["loc"].(map[string]any)
	if !ok {
		return Span{}, false
	}
	start, _ := loc["start"].(map[string]any)
	end, _ := loc["end"].(map[string]any)
	return Span{Start: decodePosition(start), End: decodePosition(end)}, true
}

func decodePosition(raw map[string]any) Position {
	line, _ := raw["line"].(float64)
	column, _ := raw["column"].(float64)
	return Position{Line: int(math.Round(line)), Column: int(math.Round(column))}
}

func hasUseStrict(node map[string]any) bool {
	if directives, ok := node["directives"].([]any); ok {
		for _, raw := range directives {
			directive, _ := raw.(map[string]any)
			value, _ := directive["value"].(map[string]any)
			if v, _ := value["value"].(string); v == "use strict" {
				return true
			}
		}
	}
	body, _ := node["body"].([]any)
	if len(body) == 0 {
		return false
	}
	first, _ := body[0].(map[string]any)
	directive, _ := first["directive"].(string)
	return directive == "use strict"
}

func arrayExpressionToPattern(expr *ArrayExpression) (Pattern, error) {
	elements := make([]Pattern, 0, len(expr.Elements))
	for idx, element := range expr.Elements {
		if element == nil {
			elements = append(elements, nil)
			continue
		}
		if spread, ok := element.(*SpreadElement); ok {
			if idx != len(expr.Elements)-1 {
				return nil, fmt.Errorf("decode: rest element must be last")
			}
			argument, err := expressionToPattern(spread.Argument)
			if err != nil {
				return nil, err
			}
			elements = append(elements, NewRestElement(argument))
			continue
		}
		pattern, err := expressionToPattern(element)
		if err != nil {
			return nil, err
		}
		elements = append(elements, pattern)
	}
	pattern := NewArrayPattern(elements)
	pattern.setSpan(expr.Span())
	return pattern, nil
}

func objectExpressionToPattern(expr *ObjectExpression) (Pattern, error) {
	members := make([]ObjectPatternMember, 0, len(expr.Properties))
	for _, member := range expr.Properties {
		switch m := member.(type) {
		case *SpreadElement:
			argument, err := expressionToPattern(m.Argument)
			if err != nil {
				return nil, err
			}
			members = append(members, NewRestElement(argument))
		case *Property:
			if m.Kind != PropertyInit || m.Method {
				return nil, fmt.Errorf("decode: invalid destructuring target")
			}
			value, err := expressionToPattern(m.Value)
			if err != nil {
				return nil, err
			}
			members = append(members, NewBindingProperty(m.Key, value, m.Computed, m.Shorthand))
		}
	}
	pattern := NewObjectPattern(members)
	pattern.setSpan(expr.Span())
	return pattern, nil
}

// expressionToPattern reinterprets an assignment-target expression as a pattern.
func expressionToPattern(expr Expression) (Pattern, error) {
	switch e := expr.(type) {
	case *Identifier:
		return e, nil
	case *MemberExpression:
		return e, nil
	case *ArrayExpression:
		return arrayExpressionToPattern(e)
	case *ObjectExpression:
		return objectExpressionToPattern(e)
	case *AssignmentExpression:
		if e.Operator != "=" {
			return nil, fmt.Errorf("decode: invalid destructuring default")
		}
		return NewAssignmentPattern(e.Left, e.Right), nil
	default:
		return nil, fmt.Errorf("decode: %s is not a valid assignment target", expr.NodeType())
	}
}

// ExpressionToPattern is exposed for front ends that parse destructuring
// assignment targets as expressions first.
func ExpressionToPattern(expr Expression) (Pattern, error) {
	return expressionToPattern(expr)
}
