package ast

// Declarations

type DeclarationKind string

const (
	DeclarationVar   DeclarationKind = "var"
	DeclarationLet   DeclarationKind = "let"
	DeclarationConst DeclarationKind = "const"
)

type VariableDeclaration struct {
	nodeImpl
	statementMarker

	Kind         DeclarationKind       `json:"kind"`
	Declarations []*VariableDeclarator `json:"declarations"`
}

func NewVariableDeclaration(kind DeclarationKind, declarations []*VariableDeclarator) *VariableDeclaration {
	return &VariableDeclaration{nodeImpl: newNodeImpl(NodeVariableDeclaration), Kind: kind, Declarations: declarations}
}

// IsLexical reports whether the declaration is block scoped.
func (d *VariableDeclaration) IsLexical() bool {
	return d != nil && d.Kind != DeclarationVar
}

type VariableDeclarator struct {
	nodeImpl

	ID   Pattern    `json:"id"`
	Init Expression `json:"init,omitempty"`
}

func NewVariableDeclarator(id Pattern, init Expression) *VariableDeclarator {
	return &VariableDeclarator{nodeImpl: newNodeImpl(NodeVariableDeclarator), ID: id, Init: init}
}

type FunctionDeclaration struct {
	nodeImpl
	statementMarker
	FunctionParts

	ID *Identifier `json:"id"`
}

func NewFunctionDeclaration(id *Identifier, params []Pattern, body *BlockStatement) *FunctionDeclaration {
	return &FunctionDeclaration{
		nodeImpl:      newNodeImpl(NodeFunctionDeclaration),
		FunctionParts: FunctionParts{Params: params, Body: body},
		ID:            id,
	}
}

func (f *FunctionDeclaration) Parts() *FunctionParts { return &f.FunctionParts }

// Statements

type ExpressionStatement struct {
	nodeImpl
	statementMarker

	Expression Expression `json:"expression"`
	Directive  string     `json:"directive,omitempty"`
}

func NewExpressionStatement(expression Expression) *ExpressionStatement {
	return &ExpressionStatement{nodeImpl: newNodeImpl(NodeExpressionStatement), Expression: expression}
}

type BlockStatement struct {
	nodeImpl
	statementMarker

	Body []Statement `json:"body"`
}

func NewBlockStatement(body []Statement) *BlockStatement {
	return &BlockStatement{nodeImpl: newNodeImpl(NodeBlockStatement), Body: body}
}

type EmptyStatement struct {
	nodeImpl
	statementMarker
}

func NewEmptyStatement() *EmptyStatement {
	return &EmptyStatement{nodeImpl: newNodeImpl(NodeEmptyStatement)}
}

type IfStatement struct {
	nodeImpl
	statementMarker

	Test       Expression `json:"test"`
	Consequent Statement  `json:"consequent"`
	Alternate  Statement  `json:"alternate,omitempty"`
}

func NewIfStatement(test Expression, consequent Statement, alternate Statement) *IfStatement {
	return &IfStatement{nodeImpl: newNodeImpl(NodeIfStatement), Test: test, Consequent: consequent, Alternate: alternate}
}

// ForStatement Init is a *VariableDeclaration, an *ExpressionStatement or nil.
type ForStatement struct {
	nodeImpl
	statementMarker

	Init   Statement  `json:"init,omitempty"`
	Test   Expression `json:"test,omitempty"`
	Update Expression `json:"update,omitempty"`
	Body   Statement  `json:"body"`
}

func NewForStatement(init Statement, test Expression, update Expression, body Statement) *ForStatement {
	return &ForStatement{nodeImpl: newNodeImpl(NodeForStatement), Init: init, Test: test, Update: update, Body: body}
}

// ForOfStatement Left is a *VariableDeclaration with one declarator or an
// assignment target pattern.
type ForOfStatement struct {
	nodeImpl
	statementMarker

	Left  Node       `json:"left"`
	Right Expression `json:"right"`
	Body  Statement  `json:"body"`
}

func NewForOfStatement(left Node, right Expression, body Statement) *ForOfStatement {
	return &ForOfStatement{nodeImpl: newNodeImpl(NodeForOfStatement), Left: left, Right: right, Body: body}
}

type ForInStatement struct {
	nodeImpl
	statementMarker

	Left  Node       `json:"left"`
	Right Expression `json:"right"`
	Body  Statement  `json:"body"`
}

func NewForInStatement(left Node, right Expression, body Statement) *ForInStatement {
	return &ForInStatement{nodeImpl: newNodeImpl(NodeForInStatement), Left: left, Right: right, Body: body}
}

type WhileStatement struct {
	nodeImpl
	statementMarker

	Test Expression `json:"test"`
	Body Statement  `json:"body"`
}

func NewWhileStatement(test Expression, body Statement) *WhileStatement {
	return &WhileStatement{nodeImpl: newNodeImpl(NodeWhileStatement), Test: test, Body: body}
}

type ReturnStatement struct {
	nodeImpl
	statementMarker

	Argument Expression `json:"argument,omitempty"`
}

func NewReturnStatement(argument Expression) *ReturnStatement {
	return &ReturnStatement{nodeImpl: newNodeImpl(NodeReturnStatement), Argument: argument}
}

type ThrowStatement struct {
	nodeImpl
	statementMarker

	Argument Expression `json:"argument"`
}

func NewThrowStatement(argument Expression) *ThrowStatement {
	return &ThrowStatement{nodeImpl: newNodeImpl(NodeThrowStatement), Argument: argument}
}

type TryStatement struct {
	nodeImpl
	statementMarker

	Block     *BlockStatement `json:"block"`
	Handler   *CatchClause    `json:"handler,omitempty"`
	Finalizer *BlockStatement `json:"finalizer,omitempty"`
}

func NewTryStatement(block *BlockStatement, handler *CatchClause, finalizer *BlockStatement) *TryStatement {
	return &TryStatement{nodeImpl: newNodeImpl(NodeTryStatement), Block: block, Handler: handler, Finalizer: finalizer}
}

type CatchClause struct {
	nodeImpl

	Param Pattern         `json:"param,omitempty"`
	Body  *BlockStatement `json:"body"`
}

func NewCatchClause(param Pattern, body *BlockStatement) *CatchClause {
	return &CatchClause{nodeImpl: newNodeImpl(NodeCatchClause), Param: param, Body: body}
}

type BreakStatement struct {
	nodeImpl
	statementMarker

	Label *Identifier `json:"label,omitempty"`
}

func NewBreakStatement(label *Identifier) *BreakStatement {
	return &BreakStatement{nodeImpl: newNodeImpl(NodeBreakStatement), Label: label}
}

type ContinueStatement struct {
	nodeImpl
	statementMarker

	Label *Identifier `json:"label,omitempty"`
}

func NewContinueStatement(label *Identifier) *ContinueStatement {
	return &ContinueStatement{nodeImpl: newNodeImpl(NodeContinueStatement), Label: label}
}

type LabeledStatement struct {
	nodeImpl
	statementMarker

	Label *Identifier `json:"label"`
	Body  Statement   `json:"body"`
}

func NewLabeledStatement(label *Identifier, body Statement) *LabeledStatement {
	return &LabeledStatement{nodeImpl: newNodeImpl(NodeLabeledStatement), Label: label, Body: body}
}
