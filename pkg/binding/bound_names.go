package binding

import "lexenv/interpreter-go/pkg/ast"

// BoundNames lists the identifiers a declaration or pattern introduces, in
// source order. Shapes that bind nothing yield nil.
func BoundNames(node ast.Node) []string {
	var names []string
	collectBoundNames(node, &names)
	return names
}

func collectBoundNames(node ast.Node, names *[]string) {
	switch n := node.(type) {
	case nil:
	case *ast.Identifier:
		if n != nil {
			*names = append(*names, n.Name)
		}
	case *ast.YieldExpression:
		*names = append(*names, "yield")
	case *ast.ObjectPattern:
		if n == nil {
			return
		}
		for _, prop := range n.Properties {
			collectBoundNames(prop, names)
		}
	case *ast.ArrayPattern:
		if n == nil {
			return
		}
		for _, elem := range n.Elements {
			if elem == nil {
				continue
			}
			collectBoundNames(elem, names)
		}
	case *ast.BindingProperty:
		if n != nil {
			collectBoundNames(n.Value, names)
		}
	case *ast.RestElement:
		if n != nil {
			collectBoundNames(n.Argument, names)
		}
	case *ast.AssignmentPattern:
		if n != nil {
			collectBoundNames(n.Left, names)
		}
	case *ast.VariableDeclaration:
		if n == nil {
			return
		}
		for _, decl := range n.Declarations {
			collectBoundNames(decl, names)
		}
	case *ast.VariableDeclarator:
		if n != nil {
			collectBoundNames(n.ID, names)
		}
	case *ast.FunctionDeclaration:
		if n != nil && n.ID != nil {
			*names = append(*names, n.ID.Name)
		}
	}
}

// ContainsExpression reports whether evaluating a pattern may run code: a
// default value or a computed key anywhere inside it.
func ContainsExpression(node ast.Node) bool {
	switch n := node.(type) {
	case *ast.AssignmentPattern:
		return n != nil
	case *ast.ObjectPattern:
		if n == nil {
			return false
		}
		for _, prop := range n.Properties {
			if ContainsExpression(prop) {
				return true
			}
		}
		return false
	case *ast.ArrayPattern:
		if n == nil {
			return false
		}
		for _, elem := range n.Elements {
			if elem != nil && ContainsExpression(elem) {
				return true
			}
		}
		return false
	case *ast.BindingProperty:
		if n == nil {
			return false
		}
		return n.Computed || ContainsExpression(n.Value)
	case *ast.RestElement:
		return n != nil && ContainsExpression(n.Argument)
	default:
		return false
	}
}

// IsDestructuring reports whether node binds through a pattern rather than a
// single name.
func IsDestructuring(node ast.Node) bool {
	switch n := node.(type) {
	case *ast.VariableDeclaration:
		if n == nil {
			return false
		}
		for _, decl := range n.Declarations {
			if decl == nil {
				continue
			}
			switch decl.ID.(type) {
			case *ast.ArrayPattern, *ast.ObjectPattern, *ast.AssignmentPattern:
				return true
			}
		}
		return false
	case *ast.ArrayPattern, *ast.ObjectPattern, *ast.ArrayExpression, *ast.ObjectExpression:
		return true
	default:
		return false
	}
}
