package ast

// Walk visits node and its descendants depth first. Children are skipped
// when visit returns false. Nil children (array holes, absent initializers)
// are never passed to visit.
func Walk(node Node, visit func(Node) bool) {
	if isNilNode(node) || !visit(node) {
		return
	}
	for _, child := range Children(node) {
		Walk(child, visit)
	}
}

// Children lists the direct child nodes in source order.
func Children(node Node) []Node {
	var out []Node
	add := func(children ...Node) {
		for _, child := range children {
			if !isNilNode(child) {
				out = append(out, child)
			}
		}
	}
	switch n := node.(type) {
	case *Program:
		for _, stmt := range n.Body {
			add(stmt)
		}
	case *TemplateLiteral:
		for _, expr := range n.Expressions {
			add(expr)
		}
	case *ArrayExpression:
		for _, el := range n.Elements {
			add(el)
		}
	case *ObjectExpression:
		for _, member := range n.Properties {
			add(member)
		}
	case *Property:
		add(n.Key, n.Value)
	case *SpreadElement:
		add(n.Argument)
	case *FunctionExpression:
		add(n.ID)
		addFunctionParts(add, &n.FunctionParts)
	case *ArrowFunctionExpression:
		addFunctionParts(add, &n.FunctionParts)
	case *FunctionDeclaration:
		add(n.ID)
		addFunctionParts(add, &n.FunctionParts)
	case *CallExpression:
		add(n.Callee)
		for _, arg := range n.Arguments {
			add(arg)
		}
	case *NewExpression:
		add(n.Callee)
		for _, arg := range n.Arguments {
			add(arg)
		}
	case *MemberExpression:
		add(n.Object, n.Property)
	case *AssignmentExpression:
		add(n.Left, n.Right)
	case *BinaryExpression:
		add(n.Left, n.Right)
	case *LogicalExpression:
		add(n.Left, n.Right)
	case *UnaryExpression:
		add(n.Argument)
	case *UpdateExpression:
		add(n.Argument)
	case *ConditionalExpression:
		add(n.Test, n.Consequent, n.Alternate)
	case *SequenceExpression:
		for _, expr := range n.Expressions {
			add(expr)
		}
	case *YieldExpression:
		add(n.Argument)
	case *ArrayPattern:
		for _, el := range n.Elements {
			add(el)
		}
	case *ObjectPattern:
		for _, member := range n.Properties {
			add(member)
		}
	case *BindingProperty:
		add(n.Key, n.Value)
	case *RestElement:
		add(n.Argument)
	case *AssignmentPattern:
		add(n.Left, n.Right)
	case *VariableDeclaration:
		for _, decl := range n.Declarations {
			add(decl)
		}
	case *VariableDeclarator:
		add(n.ID, n.Init)
	case *ExpressionStatement:
		add(n.Expression)
	case *BlockStatement:
		for _, stmt := range n.Body {
			add(stmt)
		}
	case *IfStatement:
		add(n.Test, n.Consequent, n.Alternate)
	case *ForStatement:
		add(n.Init, n.Test, n.Update, n.Body)
	case *ForOfStatement:
		add(n.Left, n.Right, n.Body)
	case *ForInStatement:
		add(n.Left, n.Right, n.Body)
	case *WhileStatement:
		add(n.Test, n.Body)
	case *ReturnStatement:
		add(n.Argument)
	case *ThrowStatement:
		add(n.Argument)
	case *TryStatement:
		add(n.Block, n.Handler, n.Finalizer)
	case *CatchClause:
		add(n.Param, n.Body)
	case *BreakStatement:
		add(n.Label)
	case *ContinueStatement:
		add(n.Label)
	case *LabeledStatement:
		add(n.Label, n.Body)
	}
	return out
}

func addFunctionParts(add func(...Node), parts *FunctionParts) {
	for _, param := range parts.Params {
		add(param)
	}
	add(parts.Body)
}

// isNilNode catches typed nil pointers stored in interfaces.
func isNilNode(node Node) bool {
	if node == nil {
		return true
	}
	switch n := node.(type) {
	case *Identifier:
		return n == nil
	case *BlockStatement:
		return n == nil
	case *CatchClause:
		return n == nil
	case *VariableDeclaration:
		return n == nil
	case *VariableDeclarator:
		return n == nil
	case *FunctionDeclaration:
		return n == nil
	case *FunctionExpression:
		return n == nil
	case *ExpressionStatement:
		return n == nil
	}
	return false
}
