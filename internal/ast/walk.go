package ast

// Inspect traverses the tree rooted at node in depth-first order, calling
// f for each node. If f returns false the children of that node are
// skipped. Nil children are not visited.
func Inspect(node Node, f func(Node) bool) {
	if node == nil || !f(node) {
		return
	}
	for _, child := range Children(node) {
		Inspect(child, f)
	}
}

// Children returns the direct children of node in source order.
func Children(node Node) []Node {
	var out []Node
	add := func(nodes ...Node) {
		for _, n := range nodes {
			if !isNil(n) {
				out = append(out, n)
			}
		}
	}
	switch n := node.(type) {
	case *Program:
		add(n.Body)
	case *BlockStatement:
		for _, s := range n.Statements {
			add(s)
		}
	case *VariableDeclaration:
		add(n.Name, n.Value)
	case *ExpressionStatement:
		add(n.Expression)
	case *ReturnStatement:
		add(n.Value)
	case *IfStatement:
		add(n.Test, n.Consequent, n.Alternate)
	case *WhileStatement:
		add(n.Test, n.Body)
	case *ForInStatement:
		for _, id := range n.Names {
			add(id)
		}
		add(n.Object, n.Body)
	case *UnaryExpression:
		add(n.Operand)
	case *BinaryExpression:
		add(n.Left, n.Right)
	case *AssignmentExpression:
		add(n.Target, n.Value)
	case *SequenceExpression:
		for _, e := range n.Expressions {
			add(e)
		}
	case *FunctionExpression:
		add(n.Name, n.Body)
		for _, p := range n.Parameters {
			add(p.Name, p.Default)
		}
	case *CallExpression:
		add(n.Callee)
		for _, a := range n.Arguments {
			add(a)
		}
	case *MemberExpression:
		add(n.Property, n.Object)
	case *NewExpression:
		add(n.Class)
		for _, a := range n.Arguments {
			add(a)
		}
	case *ClassExpression:
		add(n.Name, n.Parent)
		for _, p := range n.Properties {
			add(p.Key, p.Value)
		}
	case *ImportExpression:
		add(n.Module)
	case *ExportExpression:
		add(n.Value, n.Name)
	}
	return out
}

// isNil catches typed nil pointers stored in interfaces, such as an
// absent *Identifier name or *BlockStatement.
func isNil(n Node) bool {
	switch v := n.(type) {
	case nil:
		return true
	case *Identifier:
		return v == nil
	case *BlockStatement:
		return v == nil
	}
	return false
}
