package binding

import (
	"fmt"

	"lexenv/interpreter-go/pkg/ast"
)

// UnsupportedPatternError reports a node shape that binding initialization
// does not handle in the requested position.
type UnsupportedPatternError struct {
	Node   ast.Node
	Reason string
}

func (e *UnsupportedPatternError) Error() string {
	kind := "<nil>"
	if e.Node != nil {
		kind = string(e.Node.NodeType())
	}
	if e.Reason == "" {
		return fmt.Sprintf("binding: unsupported pattern %s", kind)
	}
	return fmt.Sprintf("binding: unsupported pattern %s: %s", kind, e.Reason)
}

func unsupported(node ast.Node, reason string) error {
	return &UnsupportedPatternError{Node: node, Reason: reason}
}
