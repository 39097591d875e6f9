package ast

// Array and object literals

// ArrayExpression elements may be nil; a nil element is an elision hole.
type ArrayExpression struct {
	nodeImpl
	expressionMarker

	Elements []Expression `json:"elements"`
}

func NewArrayExpression(elements []Expression) *ArrayExpression {
	return &ArrayExpression{nodeImpl: newNodeImpl(NodeArrayExpression), Elements: elements}
}

type ObjectExpression struct {
	nodeImpl
	expressionMarker

	Properties []ObjectMember `json:"properties"`
}

func NewObjectExpression(properties []ObjectMember) *ObjectExpression {
	return &ObjectExpression{nodeImpl: newNodeImpl(NodeObjectExpression), Properties: properties}
}

type PropertyKind string

const (
	PropertyInit PropertyKind = "init"
	PropertyGet  PropertyKind = "get"
	PropertySet  PropertyKind = "set"
)

type Property struct {
	nodeImpl
	objectMemberMarker

	Key       Expression   `json:"key"`
	Value     Expression   `json:"value"`
	Kind      PropertyKind `json:"kind"`
	Computed  bool         `json:"computed,omitempty"`
	Shorthand bool         `json:"shorthand,omitempty"`
	Method    bool         `json:"method,omitempty"`
}

func NewProperty(key Expression, value Expression, kind PropertyKind, computed bool, shorthand bool, method bool) *Property {
	if kind == "" {
		kind = PropertyInit
	}
	return &Property{nodeImpl: newNodeImpl(NodeProperty), Key: key, Value: value, Kind: kind, Computed: computed, Shorthand: shorthand, Method: method}
}

type SpreadElement struct {
	nodeImpl
	expressionMarker
	objectMemberMarker

	Argument Expression `json:"argument"`
}

func NewSpreadElement(argument Expression) *SpreadElement {
	return &SpreadElement{nodeImpl: newNodeImpl(NodeSpreadElement), Argument: argument}
}

// Functions

// FunctionParts is shared by declarations, function expressions and arrows.
type FunctionParts struct {
	Params    []Pattern       `json:"params"`
	Body      *BlockStatement `json:"body"`
	Generator bool            `json:"generator,omitempty"`
	Async     bool            `json:"async,omitempty"`
}

// FunctionNode is implemented by every node that creates a function object.
type FunctionNode interface {
	Node
	Parts() *FunctionParts
}

type FunctionExpression struct {
	nodeImpl
	expressionMarker
	FunctionParts

	ID *Identifier `json:"id,omitempty"`
}

func NewFunctionExpression(id *Identifier, params []Pattern, body *BlockStatement) *FunctionExpression {
	return &FunctionExpression{
		nodeImpl:      newNodeImpl(NodeFunctionExpression),
		FunctionParts: FunctionParts{Params: params, Body: body},
		ID:            id,
	}
}

func (f *FunctionExpression) Parts() *FunctionParts { return &f.FunctionParts }

// ArrowFunctionExpression keeps a concise body as a block holding a single
// return statement; ExpressionBody records the original form.
type ArrowFunctionExpression struct {
	nodeImpl
	expressionMarker
	FunctionParts

	ExpressionBody bool `json:"expression,omitempty"`
}

func NewArrowFunctionExpression(params []Pattern, body Node) *ArrowFunctionExpression {
	arrow := &ArrowFunctionExpression{nodeImpl: newNodeImpl(NodeArrowFunctionExpression)}
	arrow.Params = params
	switch b := body.(type) {
	case *BlockStatement:
		arrow.Body = b
	case Expression:
		ret := NewReturnStatement(b)
		ret.setSpan(b.Span())
		block := NewBlockStatement([]Statement{ret})
		block.setSpan(b.Span())
		arrow.Body = block
		arrow.ExpressionBody = true
	default:
		arrow.Body = NewBlockStatement(nil)
	}
	return arrow
}

func (f *ArrowFunctionExpression) Parts() *FunctionParts { return &f.FunctionParts }

// IsAnonymousFunctionDefinition reports whether expr creates a function
// without its own binding name.
func IsAnonymousFunctionDefinition(expr Expression) bool {
	switch e := expr.(type) {
	case *FunctionExpression:
		return e.ID == nil
	case *ArrowFunctionExpression:
		return true
	default:
		return false
	}
}

// Calls and members

type CallExpression struct {
	nodeImpl
	expressionMarker

	Callee    Expression   `json:"callee"`
	Arguments []Expression `json:"arguments"`
}

func NewCallExpression(callee Expression, arguments []Expression) *CallExpression {
	return &CallExpression{nodeImpl: newNodeImpl(NodeCallExpression), Callee: callee, Arguments: arguments}
}

type NewExpression struct {
	nodeImpl
	expressionMarker

	Callee    Expression   `json:"callee"`
	Arguments []Expression `json:"arguments"`
}

func NewNewExpression(callee Expression, arguments []Expression) *NewExpression {
	return &NewExpression{nodeImpl: newNodeImpl(NodeNewExpression), Callee: callee, Arguments: arguments}
}

// MemberExpression doubles as an assignment target.
type MemberExpression struct {
	nodeImpl
	expressionMarker
	patternMarker

	Object   Expression `json:"object"`
	Property Expression `json:"property"`
	Computed bool       `json:"computed,omitempty"`
}

func NewMemberExpression(object Expression, property Expression, computed bool) *MemberExpression {
	return &MemberExpression{nodeImpl: newNodeImpl(NodeMemberExpression), Object: object, Property: property, Computed: computed}
}

// Operators

type AssignmentExpression struct {
	nodeImpl
	expressionMarker

	Operator string     `json:"operator"`
	Left     Pattern    `json:"left"`
	Right    Expression `json:"right"`
}

func NewAssignmentExpression(operator string, left Pattern, right Expression) *AssignmentExpression {
	return &AssignmentExpression{nodeImpl: newNodeImpl(NodeAssignmentExpression), Operator: operator, Left: left, Right: right}
}

type BinaryExpression struct {
	nodeImpl
	expressionMarker

	Operator string     `json:"operator"`
	Left     Expression `json:"left"`
	Right    Expression `json:"right"`
}

func NewBinaryExpression(operator string, left, right Expression) *BinaryExpression {
	return &BinaryExpression{nodeImpl: newNodeImpl(NodeBinaryExpression), Operator: operator, Left: left, Right: right}
}

type LogicalExpression struct {
	nodeImpl
	expressionMarker

	Operator string     `json:"operator"`
	Left     Expression `json:"left"`
	Right    Expression `json:"right"`
}

func NewLogicalExpression(operator string, left, right Expression) *LogicalExpression {
	return &LogicalExpression{nodeImpl: newNodeImpl(NodeLogicalExpression), Operator: operator, Left: left, Right: right}
}

type UnaryExpression struct {
	nodeImpl
	expressionMarker

	Operator string     `json:"operator"`
	Argument Expression `json:"argument"`
}

func NewUnaryExpression(operator string, argument Expression) *UnaryExpression {
	return &UnaryExpression{nodeImpl: newNodeImpl(NodeUnaryExpression), Operator: operator, Argument: argument}
}

type UpdateExpression struct {
	nodeImpl
	expressionMarker

	Operator string     `json:"operator"`
	Argument Expression `json:"argument"`
	Prefix   bool       `json:"prefix"`
}

func NewUpdateExpression(operator string, argument Expression, prefix bool) *UpdateExpression {
	return &UpdateExpression{nodeImpl: newNodeImpl(NodeUpdateExpression), Operator: operator, Argument: argument, Prefix: prefix}
}

type ConditionalExpression struct {
	nodeImpl
	expressionMarker

	Test       Expression `json:"test"`
	Consequent Expression `json:"consequent"`
	Alternate  Expression `json:"alternate"`
}

func NewConditionalExpression(test, consequent, alternate Expression) *ConditionalExpression {
	return &ConditionalExpression{nodeImpl: newNodeImpl(NodeConditionalExpression), Test: test, Consequent: consequent, Alternate: alternate}
}

type ThisExpression struct {
	nodeImpl
	expressionMarker
}

func NewThisExpression() *ThisExpression {
	return &ThisExpression{nodeImpl: newNodeImpl(NodeThisExpression)}
}

type SequenceExpression struct {
	nodeImpl
	expressionMarker

	Expressions []Expression `json:"expressions"`
}

func NewSequenceExpression(expressions []Expression) *SequenceExpression {
	return &SequenceExpression{nodeImpl: newNodeImpl(NodeSequenceExpression), Expressions: expressions}
}

type YieldExpression struct {
	nodeImpl
	expressionMarker

	Argument Expression `json:"argument,omitempty"`
	Delegate bool       `json:"delegate,omitempty"`
}

func NewYieldExpression(argument Expression, delegate bool) *YieldExpression {
	return &YieldExpression{nodeImpl: newNodeImpl(NodeYieldExpression), Argument: argument, Delegate: delegate}
}
