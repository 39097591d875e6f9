package ast

// Patterns

// ArrayPattern elements may be nil; a nil element is an elision hole.
type ArrayPattern struct {
	nodeImpl
	patternMarker

	Elements []Pattern `json:"elements"`
}

func NewArrayPattern(elements []Pattern) *ArrayPattern {
	return &ArrayPattern{nodeImpl: newNodeImpl(NodeArrayPattern), Elements: elements}
}

type ObjectPattern struct {
	nodeImpl
	patternMarker

	Properties []ObjectPatternMember `json:"properties"`
}

func NewObjectPattern(properties []ObjectPatternMember) *ObjectPattern {
	return &ObjectPattern{nodeImpl: newNodeImpl(NodeObjectPattern), Properties: properties}
}

// BindingProperty is `key: value` inside an object pattern. Shorthand
// properties (`{a}` or `{a = 1}`) carry an Identifier key and a value that
// binds the same name.
type BindingProperty struct {
	nodeImpl
	objectPatternMemberMarker

	Key       Expression `json:"key"`
	Value     Pattern    `json:"value"`
	Computed  bool       `json:"computed,omitempty"`
	Shorthand bool       `json:"shorthand,omitempty"`
}

func NewBindingProperty(key Expression, value Pattern, computed bool, shorthand bool) *BindingProperty {
	return &BindingProperty{nodeImpl: newNodeImpl(NodeBindingProperty), Key: key, Value: value, Computed: computed, Shorthand: shorthand}
}

type RestElement struct {
	nodeImpl
	patternMarker
	objectPatternMemberMarker

	Argument Pattern `json:"argument"`
}

func NewRestElement(argument Pattern) *RestElement {
	return &RestElement{nodeImpl: newNodeImpl(NodeRestElement), Argument: argument}
}

// AssignmentPattern is a binding target with a default value initializer.
type AssignmentPattern struct {
	nodeImpl
	patternMarker

	Left  Pattern    `json:"left"`
	Right Expression `json:"right"`
}

func NewAssignmentPattern(left Pattern, right Expression) *AssignmentPattern {
	return &AssignmentPattern{nodeImpl: newNodeImpl(NodeAssignmentPattern), Left: left, Right: right}
}
