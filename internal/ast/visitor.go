package ast

// Visitor walks the closed set of node kinds. Adding a node kind means
// adding a method here, which every implementation must then provide.
type Visitor interface {
	VisitProgram(node *Program)
	VisitBlockStatement(node *BlockStatement)
	VisitVariableDeclaration(node *VariableDeclaration)
	VisitExpressionStatement(node *ExpressionStatement)
	VisitReturnStatement(node *ReturnStatement)
	VisitIfStatement(node *IfStatement)
	VisitWhileStatement(node *WhileStatement)
	VisitForInStatement(node *ForInStatement)
	VisitEmptyStatement(node *EmptyStatement)

	VisitIdentifier(node *Identifier)
	VisitLiteral(node *Literal)
	VisitUnaryExpression(node *UnaryExpression)
	VisitBinaryExpression(node *BinaryExpression)
	VisitAssignmentExpression(node *AssignmentExpression)
	VisitSequenceExpression(node *SequenceExpression)
	VisitFunctionExpression(node *FunctionExpression)
	VisitCallExpression(node *CallExpression)
	VisitMemberExpression(node *MemberExpression)
	VisitNewExpression(node *NewExpression)
	VisitThisExpression(node *ThisExpression)
	VisitArgumentsExpression(node *ArgumentsExpression)
	VisitClassExpression(node *ClassExpression)
	VisitImportExpression(node *ImportExpression)
	VisitExportExpression(node *ExportExpression)
}
