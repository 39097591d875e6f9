package ast

type NodeType string

const (
	NodeProgram                 NodeType = "Program"
	NodeIdentifier              NodeType = "Identifier"
	NodeNumericLiteral          NodeType = "NumericLiteral"
	NodeStringLiteral           NodeType = "StringLiteral"
	NodeBooleanLiteral          NodeType = "BooleanLiteral"
	NodeNullLiteral             NodeType = "NullLiteral"
	NodeTemplateLiteral         NodeType = "TemplateLiteral"
	NodeArrayExpression         NodeType = "ArrayExpression"
	NodeObjectExpression        NodeType = "ObjectExpression"
	NodeProperty                NodeType = "Property"
	NodeSpreadElement           NodeType = "SpreadElement"
	NodeFunctionExpression      NodeType = "FunctionExpression"
	NodeArrowFunctionExpression NodeType = "ArrowFunctionExpression"
	NodeCallExpression          NodeType = "CallExpression"
	NodeNewExpression           NodeType = "NewExpression"
	NodeMemberExpression        NodeType = "MemberExpression"
	NodeAssignmentExpression    NodeType = "AssignmentExpression"
	NodeBinaryExpression        NodeType = "BinaryExpression"
	NodeLogicalExpression       NodeType = "LogicalExpression"
	NodeUnaryExpression         NodeType = "UnaryExpression"
	NodeUpdateExpression        NodeType = "UpdateExpression"
	NodeConditionalExpression   NodeType = "ConditionalExpression"
	NodeThisExpression          NodeType = "ThisExpression"
	NodeSequenceExpression      NodeType = "SequenceExpression"
	NodeYieldExpression         NodeType = "YieldExpression"
	NodeArrayPattern            NodeType = "ArrayPattern"
	NodeObjectPattern           NodeType = "ObjectPattern"
	NodeBindingProperty         NodeType = "BindingProperty"
	NodeRestElement             NodeType = "RestElement"
	NodeAssignmentPattern       NodeType = "AssignmentPattern"
	NodeVariableDeclaration     NodeType = "VariableDeclaration"
	NodeVariableDeclarator      NodeType = "VariableDeclarator"
	NodeFunctionDeclaration     NodeType = "FunctionDeclaration"
	NodeExpressionStatement     NodeType = "ExpressionStatement"
	NodeBlockStatement          NodeType = "BlockStatement"
	NodeEmptyStatement          NodeType = "EmptyStatement"
	NodeIfStatement             NodeType = "IfStatement"
	NodeForStatement            NodeType = "ForStatement"
	NodeForOfStatement          NodeType = "ForOfStatement"
	NodeForInStatement          NodeType = "ForInStatement"
	NodeWhileStatement          NodeType = "WhileStatement"
	NodeReturnStatement         NodeType = "ReturnStatement"
	NodeThrowStatement          NodeType = "ThrowStatement"
	NodeTryStatement            NodeType = "TryStatement"
	NodeCatchClause             NodeType = "CatchClause"
	NodeBreakStatement          NodeType = "BreakStatement"
	NodeContinueStatement       NodeType = "ContinueStatement"
	NodeLabeledStatement        NodeType = "LabeledStatement"
)

type Node interface {
	NodeType() NodeType
	Span() Span
	isNode()
}

type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

type Span struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

type nodeImpl struct {
	Type NodeType `json:"type"`
	span Span
}

func newNodeImpl(kind NodeType) nodeImpl {
	return nodeImpl{Type: kind}
}

func (n nodeImpl) NodeType() NodeType { return n.Type }
func (n nodeImpl) Span() Span         { return n.span }
func (nodeImpl) isNode()              {}
func (n *nodeImpl) setSpan(span Span) { n.span = span }

type spanSetter interface {
	setSpan(Span)
}

// SetSpan records source positions on nodes created by a front end.
func SetSpan(node Node, span Span) {
	if setter, ok := node.(spanSetter); ok {
		setter.setSpan(span)
	}
}

// Marker interfaces.

type Expression interface {
	Node
	expressionNode()
}

type expressionMarker struct{}

func (expressionMarker) expressionNode() {}

type Statement interface {
	Node
	statementNode()
}

type statementMarker struct{}

func (statementMarker) statementNode() {}

// Pattern is anything that may appear on the binding side of a declaration,
// parameter list or destructuring assignment.
type Pattern interface {
	Node
	patternNode()
}

type patternMarker struct{}

func (patternMarker) patternNode() {}

// ObjectPatternMember is either a *BindingProperty or a *RestElement.
type ObjectPatternMember interface {
	Node
	objectPatternMember()
}

type objectPatternMemberMarker struct{}

func (objectPatternMemberMarker) objectPatternMember() {}

// ObjectMember is either a *Property or a *SpreadElement.
type ObjectMember interface {
	Node
	objectMember()
}

type objectMemberMarker struct{}

func (objectMemberMarker) objectMember() {}

// Program

type Program struct {
	nodeImpl

	Body   []Statement `json:"body"`
	Strict bool        `json:"strict,omitempty"`
}

func NewProgram(body []Statement, strict bool) *Program {
	return &Program{nodeImpl: newNodeImpl(NodeProgram), Body: body, Strict: strict}
}

// Identifier

type Identifier struct {
	nodeImpl
	expressionMarker
	patternMarker

	Name string `json:"name"`
}

func NewIdentifier(name string) *Identifier {
	return &Identifier{nodeImpl: newNodeImpl(NodeIdentifier), Name: name}
}

// Literals

type NumericLiteral struct {
	nodeImpl
	expressionMarker

	Value float64 `json:"value"`
}

func NewNumericLiteral(value float64) *NumericLiteral {
	return &NumericLiteral{nodeImpl: newNodeImpl(NodeNumericLiteral), Value: value}
}

type StringLiteral struct {
	nodeImpl
	expressionMarker

	Value string `json:"value"`
}

func NewStringLiteral(value string) *StringLiteral {
	return &StringLiteral{nodeImpl: newNodeImpl(NodeStringLiteral), Value: value}
}

type BooleanLiteral struct {
	nodeImpl
	expressionMarker

	Value bool `json:"value"`
}

func NewBooleanLiteral(value bool) *BooleanLiteral {
	return &BooleanLiteral{nodeImpl: newNodeImpl(NodeBooleanLiteral), Value: value}
}

type NullLiteral struct {
	nodeImpl
	expressionMarker
}

func NewNullLiteral() *NullLiteral {
	return &NullLiteral{nodeImpl: newNodeImpl(NodeNullLiteral)}
}

// TemplateLiteral holds len(Expressions)+1 cooked string parts.
type TemplateLiteral struct {
	nodeImpl
	expressionMarker

	Quasis      []string     `json:"quasis"`
	Expressions []Expression `json:"expressions"`
}

func NewTemplateLiteral(quasis []string, expressions []Expression) *TemplateLiteral {
	return &TemplateLiteral{nodeImpl: newNodeImpl(NodeTemplateLiteral), Quasis: quasis, Expressions: expressions}
}
