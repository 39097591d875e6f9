package ast

// Identifier and literal helpers.

func ID(name string) *Identifier {
	return NewIdentifier(name)
}

func Num(value float64) *NumericLiteral {
	return NewNumericLiteral(value)
}

func Str(value string) *StringLiteral {
	return NewStringLiteral(value)
}

func Bool(value bool) *BooleanLiteral {
	return NewBooleanLiteral(value)
}

func Null() *NullLiteral {
	return NewNullLiteral()
}

func Arr(elements ...Expression) *ArrayExpression {
	return NewArrayExpression(elements)
}

func Obj(properties ...ObjectMember) *ObjectExpression {
	return NewObjectExpression(properties)
}

func Prop(key string, value Expression) *Property {
	return NewProperty(ID(key), value, PropertyInit, false, false, false)
}

func PropC(key Expression, value Expression) *Property {
	return NewProperty(key, value, PropertyInit, true, false, false)
}

func Method(key string, fn *FunctionExpression) *Property {
	return NewProperty(ID(key), fn, PropertyInit, false, false, true)
}

func Getter(key string, fn *FunctionExpression) *Property {
	return NewProperty(ID(key), fn, PropertyGet, false, false, false)
}

func Spread(argument Expression) *SpreadElement {
	return NewSpreadElement(argument)
}

// Function helpers.

func Params(patterns ...Pattern) []Pattern {
	return patterns
}

func Fn(params []Pattern, body ...Statement) *FunctionExpression {
	return NewFunctionExpression(nil, params, Block(body...))
}

func NamedFn(name string, params []Pattern, body ...Statement) *FunctionExpression {
	return NewFunctionExpression(ID(name), params, Block(body...))
}

// Arrow builds an arrow function; body is a *BlockStatement or an Expression.
func Arrow(params []Pattern, body Node) *ArrowFunctionExpression {
	return NewArrowFunctionExpression(params, body)
}

func FnDecl(name string, params []Pattern, body ...Statement) *FunctionDeclaration {
	return NewFunctionDeclaration(ID(name), params, Block(body...))
}

// Expression helpers.

func Call(callee Expression, args ...Expression) *CallExpression {
	return NewCallExpression(callee, args)
}

func New(callee Expression, args ...Expression) *NewExpression {
	return NewNewExpression(callee, args)
}

func Member(object Expression, name string) *MemberExpression {
	return NewMemberExpression(object, ID(name), false)
}

func Index(object Expression, key Expression) *MemberExpression {
	return NewMemberExpression(object, key, true)
}

func Assign(target Pattern, value Expression) *AssignmentExpression {
	return NewAssignmentExpression("=", target, value)
}

func AssignOp(operator string, target Pattern, value Expression) *AssignmentExpression {
	return NewAssignmentExpression(operator, target, value)
}

func Bin(operator string, left, right Expression) *BinaryExpression {
	return NewBinaryExpression(operator, left, right)
}

func Logic(operator string, left, right Expression) *LogicalExpression {
	return NewLogicalExpression(operator, left, right)
}

func Unary(operator string, argument Expression) *UnaryExpression {
	return NewUnaryExpression(operator, argument)
}

func Inc(argument Expression) *UpdateExpression {
	return NewUpdateExpression("++", argument, false)
}

func Cond(test, consequent, alternate Expression) *ConditionalExpression {
	return NewConditionalExpression(test, consequent, alternate)
}

func This() *ThisExpression {
	return NewThisExpression()
}

// Pattern helpers. A nil element passed to ArrP is an elision hole.

func ArrP(elements ...Pattern) *ArrayPattern {
	return NewArrayPattern(elements)
}

func ObjP(properties ...ObjectPatternMember) *ObjectPattern {
	return NewObjectPattern(properties)
}

func PropP(key string, value Pattern) *BindingProperty {
	return NewBindingProperty(ID(key), value, false, false)
}

func PropPC(key Expression, value Pattern) *BindingProperty {
	return NewBindingProperty(key, value, true, false)
}

// Short builds the shorthand `{name}` binding property.
func Short(name string) *BindingProperty {
	return NewBindingProperty(ID(name), ID(name), false, true)
}

// ShortDefault builds the shorthand `{name = value}` binding property.
func ShortDefault(name string, value Expression) *BindingProperty {
	return NewBindingProperty(ID(name), Default(ID(name), value), false, true)
}

func Rest(argument Pattern) *RestElement {
	return NewRestElement(argument)
}

func Default(left Pattern, right Expression) *AssignmentPattern {
	return NewAssignmentPattern(left, right)
}

// Statement helpers.

func Declarator(id Pattern, init Expression) *VariableDeclarator {
	return NewVariableDeclarator(id, init)
}

func Decl(kind DeclarationKind, declarators ...*VariableDeclarator) *VariableDeclaration {
	return NewVariableDeclaration(kind, declarators)
}

func Let(id Pattern, init Expression) *VariableDeclaration {
	return Decl(DeclarationLet, Declarator(id, init))
}

func Const(id Pattern, init Expression) *VariableDeclaration {
	return Decl(DeclarationConst, Declarator(id, init))
}

func Var(id Pattern, init Expression) *VariableDeclaration {
	return Decl(DeclarationVar, Declarator(id, init))
}

func Block(body ...Statement) *BlockStatement {
	return NewBlockStatement(body)
}

func Expr(expression Expression) *ExpressionStatement {
	return NewExpressionStatement(expression)
}

func Ret(argument Expression) *ReturnStatement {
	return NewReturnStatement(argument)
}

func Throw(argument Expression) *ThrowStatement {
	return NewThrowStatement(argument)
}

func If(test Expression, consequent Statement, alternate Statement) *IfStatement {
	return NewIfStatement(test, consequent, alternate)
}

func ForOf(left Node, right Expression, body ...Statement) *ForOfStatement {
	return NewForOfStatement(left, right, Block(body...))
}

func ForIn(left Node, right Expression, body ...Statement) *ForInStatement {
	return NewForInStatement(left, right, Block(body...))
}

func While(test Expression, body ...Statement) *WhileStatement {
	return NewWhileStatement(test, Block(body...))
}

func Try(block *BlockStatement, param Pattern, handler *BlockStatement, finalizer *BlockStatement) *TryStatement {
	var clause *CatchClause
	if handler != nil {
		clause = NewCatchClause(param, handler)
	}
	return NewTryStatement(block, clause, finalizer)
}

func Break() *BreakStatement {
	return NewBreakStatement(nil)
}

func Continue() *ContinueStatement {
	return NewContinueStatement(nil)
}

func Prog(body ...Statement) *Program {
	return NewProgram(body, false)
}

func StrictProg(body ...Statement) *Program {
	return NewProgram(body, true)
}
