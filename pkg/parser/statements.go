package parser

import (
	"fmt"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"lexenv/interpreter-go/pkg/ast"
)

func (ctx *parseContext) parseStatementList(nodes []*sitter.Node) ([]ast.Statement, error) {
	body := make([]ast.Statement, 0, len(nodes))
	for _, node := range nodes {
		stmt, err := ctx.parseStatement(node)
		if err != nil {
			return nil, err
		}
		body = append(body, stmt)
	}
	return body, nil
}

// parseBody parses a script or function body and tags its directive
// prologue. Directives keep their raw text, so an escaped "use strict" is
// not a strictness directive.
func (ctx *parseContext) parseBody(nodes []*sitter.Node) ([]ast.Statement, error) {
	body, err := ctx.parseStatementList(nodes)
	if err != nil {
		return nil, err
	}
	for idx, node := range nodes {
		if node.Kind() != "expression_statement" {
			break
		}
		lit := firstNamedChild(node)
		if lit == nil || lit.Kind() != "string" {
			break
		}
		raw := ctx.text(lit)
		body[idx].(*ast.ExpressionStatement).Directive = raw[1 : len(raw)-1]
	}
	return body, nil
}

func (ctx *parseContext) parseStatement(node *sitter.Node) (ast.Statement, error) {
	if node == nil {
		return nil, fmt.Errorf("parser: nil statement")
	}
	stmt, err := ctx.statement(node)
	if err != nil {
		return nil, wrapParseError(node, err)
	}
	annotateSpan(stmt, node)
	return stmt, nil
}

func (ctx *parseContext) statement(node *sitter.Node) (ast.Statement, error) {
	switch node.Kind() {
	case "expression_statement":
		expr, err := ctx.parseExpression(firstNamedChild(node))
		if err != nil {
			return nil, err
		}
		return ast.NewExpressionStatement(expr), nil
	case "variable_declaration":
		return ctx.parseVariableDeclaration(node, ast.DeclarationVar)
	case "lexical_declaration":
		kind := ast.DeclarationKind(ctx.text(node.ChildByFieldName("kind")))
		if kind != ast.DeclarationLet && kind != ast.DeclarationConst {
			return nil, unsupported(node, fmt.Sprintf("declaration kind %q", kind))
		}
		return ctx.parseVariableDeclaration(node, kind)
	case "function_declaration", "generator_function_declaration":
		return ctx.parseFunctionDeclaration(node)
	case "statement_block":
		return ctx.parseBlock(node)
	case "empty_statement", "debugger_statement":
		return ast.NewEmptyStatement(), nil
	case "if_statement":
		return ctx.parseIfStatement(node)
	case "for_statement":
		return ctx.parseForStatement(node)
	case "for_in_statement":
		return ctx.parseForInStatement(node)
	case "while_statement":
		test, err := ctx.parseExpression(node.ChildByFieldName("condition"))
		if err != nil {
			return nil, err
		}
		body, err := ctx.parseStatement(node.ChildByFieldName("body"))
		if err != nil {
			return nil, err
		}
		return ast.NewWhileStatement(test, body), nil
	case "return_statement":
		var argument ast.Expression
		if child := firstNamedChild(node); child != nil {
			expr, err := ctx.parseExpression(child)
			if err != nil {
				return nil, err
			}
			argument = expr
		}
		return ast.NewReturnStatement(argument), nil
	case "throw_statement":
		argument, err := ctx.parseExpression(firstNamedChild(node))
		if err != nil {
			return nil, err
		}
		return ast.NewThrowStatement(argument), nil
	case "try_statement":
		return ctx.parseTryStatement(node)
	case "break_statement":
		return ast.NewBreakStatement(ctx.parseLabel(node.ChildByFieldName("label"))), nil
	case "continue_statement":
		return ast.NewContinueStatement(ctx.parseLabel(node.ChildByFieldName("label"))), nil
	case "labeled_statement":
		body, err := ctx.parseStatement(node.ChildByFieldName("body"))
		if err != nil {
			return nil, err
		}
		return ast.NewLabeledStatement(ctx.parseLabel(node.ChildByFieldName("label")), body), nil
	default:
		return nil, unsupported(node, "")
	}
}

func (ctx *parseContext) parseLabel(node *sitter.Node) *ast.Identifier {
	if node == nil {
		return nil
	}
	id := ast.NewIdentifier(ctx.text(node))
	annotateSpan(id, node)
	return id
}

func (ctx *parseContext) parseBlock(node *sitter.Node) (*ast.BlockStatement, error) {
	if node == nil || node.Kind() != "statement_block" {
		return nil, fmt.Errorf("parser: expected statement block")
	}
	body, err := ctx.parseStatementList(namedChildren(node))
	if err != nil {
		return nil, err
	}
	block := ast.NewBlockStatement(body)
	annotateSpan(block, node)
	return block, nil
}

func (ctx *parseContext) parseVariableDeclaration(node *sitter.Node, kind ast.DeclarationKind) (*ast.VariableDeclaration, error) {
	var declarators []*ast.VariableDeclarator
	for _, child := range namedChildren(node) {
		if child.Kind() != "variable_declarator" {
			continue
		}
		id, err := ctx.parsePattern(child.ChildByFieldName("name"))
		if err != nil {
			return nil, err
		}
		var init ast.Expression
		if value := child.ChildByFieldName("value"); value != nil {
			init, err = ctx.parseExpression(value)
			if err != nil {
				return nil, err
			}
		}
		d := ast.NewVariableDeclarator(id, init)
		annotateSpan(d, child)
		declarators = append(declarators, d)
	}
	if len(declarators) == 0 {
		return nil, fmt.Errorf("parser: %s declaration without declarators", kind)
	}
	return ast.NewVariableDeclaration(kind, declarators), nil
}

func (ctx *parseContext) parseFunctionDeclaration(node *sitter.Node) (*ast.FunctionDeclaration, error) {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return nil, fmt.Errorf("parser: function declaration missing name")
	}
	name := ast.NewIdentifier(ctx.text(nameNode))
	annotateSpan(name, nameNode)
	params, body, err := ctx.parseFunctionSignature(node)
	if err != nil {
		return nil, err
	}
	decl := ast.NewFunctionDeclaration(name, params, body)
	decl.Generator = node.Kind() == "generator_function_declaration"
	decl.Async = hasToken(node, "async")
	return decl, nil
}

func (ctx *parseContext) parseIfStatement(node *sitter.Node) (*ast.IfStatement, error) {
	test, err := ctx.parseExpression(node.ChildByFieldName("condition"))
	if err != nil {
		return nil, err
	}
	consequent, err := ctx.parseStatement(node.ChildByFieldName("consequence"))
	if err != nil {
		return nil, err
	}
	var alternate ast.Statement
	if alt := node.ChildByFieldName("alternative"); alt != nil {
		if alt.Kind() == "else_clause" {
			alt = firstNamedChild(alt)
		}
		alternate, err = ctx.parseStatement(alt)
		if err != nil {
			return nil, err
		}
	}
	return ast.NewIfStatement(test, consequent, alternate), nil
}

func (ctx *parseContext) parseForStatement(node *sitter.Node) (*ast.ForStatement, error) {
	var init ast.Statement
	if initNode := node.ChildByFieldName("initializer"); initNode != nil {
		switch initNode.Kind() {
		case "empty_statement":
		case "variable_declaration", "lexical_declaration", "expression_statement":
			stmt, err := ctx.parseStatement(initNode)
			if err != nil {
				return nil, err
			}
			init = stmt
		default:
			expr, err := ctx.parseExpression(initNode)
			if err != nil {
				return nil, err
			}
			stmt := ast.NewExpressionStatement(expr)
			annotateSpan(stmt, initNode)
			init = stmt
		}
	}

	var test ast.Expression
	if condNode := node.ChildByFieldName("condition"); condNode != nil {
		switch condNode.Kind() {
		case "empty_statement":
		case "expression_statement":
			expr, err := ctx.parseExpression(firstNamedChild(condNode))
			if err != nil {
				return nil, err
			}
			test = expr
		default:
			expr, err := ctx.parseExpression(condNode)
			if err != nil {
				return nil, err
			}
			test = expr
		}
	}

	var update ast.Expression
	if incNode := node.ChildByFieldName("increment"); incNode != nil {
		expr, err := ctx.parseExpression(incNode)
		if err != nil {
			return nil, err
		}
		update = expr
	}

	body, err := ctx.parseStatement(node.ChildByFieldName("body"))
	if err != nil {
		return nil, err
	}
	return ast.NewForStatement(init, test, update, body), nil
}

// parseForInStatement covers both `for (x in o)` and `for (x of it)`.
func (ctx *parseContext) parseForInStatement(node *sitter.Node) (ast.Statement, error) {
	if hasToken(node, "await") {
		return nil, unsupported(node, "for await")
	}
	if node.ChildByFieldName("value") != nil {
		return nil, unsupported(node, "for-in initializer")
	}
	leftNode := node.ChildByFieldName("left")
	target, err := ctx.parsePattern(leftNode)
	if err != nil {
		return nil, err
	}
	var left ast.Node = target
	if kindNode := node.ChildByFieldName("kind"); kindNode != nil {
		d := ast.NewVariableDeclarator(target, nil)
		annotateSpan(d, leftNode)
		decl := ast.NewVariableDeclaration(ast.DeclarationKind(ctx.text(kindNode)), []*ast.VariableDeclarator{d})
		annotateSpan(decl, leftNode)
		left = decl
	}
	right, err := ctx.parseExpression(node.ChildByFieldName("right"))
	if err != nil {
		return nil, err
	}
	body, err := ctx.parseStatement(node.ChildByFieldName("body"))
	if err != nil {
		return nil, err
	}
	switch op := ctx.text(node.ChildByFieldName("operator")); op {
	case "of":
		return ast.NewForOfStatement(left, right, body), nil
	case "in":
		return ast.NewForInStatement(left, right, body), nil
	default:
		return nil, unsupported(node, fmt.Sprintf("loop operator %q", op))
	}
}

func (ctx *parseContext) parseTryStatement(node *sitter.Node) (*ast.TryStatement, error) {
	block, err := ctx.parseBlock(node.ChildByFieldName("body"))
	if err != nil {
		return nil, err
	}
	var handler *ast.CatchClause
	if handlerNode := node.ChildByFieldName("handler"); handlerNode != nil {
		var param ast.Pattern
		if paramNode := handlerNode.ChildByFieldName("parameter"); paramNode != nil {
			param, err = ctx.parsePattern(paramNode)
			if err != nil {
				return nil, err
			}
		}
		body, err := ctx.parseBlock(handlerNode.ChildByFieldName("body"))
		if err != nil {
			return nil, err
		}
		handler = ast.NewCatchClause(param, body)
		annotateSpan(handler, handlerNode)
	}
	var finalizer *ast.BlockStatement
	if finalNode := node.ChildByFieldName("finalizer"); finalNode != nil {
		finalizer, err = ctx.parseBlock(finalNode.ChildByFieldName("body"))
		if err != nil {
			return nil, err
		}
	}
	if handler == nil && finalizer == nil {
		return nil, fmt.Errorf("parser: try statement without catch or finally")
	}
	return ast.NewTryStatement(block, handler, finalizer), nil
}
