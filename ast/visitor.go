package ast

// Visitor is called once per node during a Walk. Each method receives
// the node and its depth below the walked root, and reports whether the
// walk should descend into the node's children.
type Visitor interface {
	VisitToplevelBody(node *ToplevelBody, depth int) bool
	VisitFunctionCall(node *FunctionCall, depth int) bool
	VisitIfBlock(node *IfBlock, depth int) bool
	VisitIfStatement(node *IfStatement, depth int) bool
	VisitElseIfStatement(node *ElseIfStatement, depth int) bool
	VisitElseStatement(node *ElseStatement, depth int) bool
	VisitForeachStatement(node *ForeachStatement, depth int) bool
	VisitWhileStatement(node *WhileStatement, depth int) bool
	VisitFunctionDefinition(node *FunctionDefinition, depth int) bool
	VisitMacroDefinition(node *MacroDefinition, depth int) bool
	VisitWord(node *Word, depth int) bool
}

// BaseVisitor visits nothing and descends everywhere. Embed it to
// implement only the methods a traversal cares about.
type BaseVisitor struct{}

func (BaseVisitor) VisitToplevelBody(*ToplevelBody, int) bool             { return true }
func (BaseVisitor) VisitFunctionCall(*FunctionCall, int) bool             { return true }
func (BaseVisitor) VisitIfBlock(*IfBlock, int) bool                       { return true }
func (BaseVisitor) VisitIfStatement(*IfStatement, int) bool               { return true }
func (BaseVisitor) VisitElseIfStatement(*ElseIfStatement, int) bool       { return true }
func (BaseVisitor) VisitElseStatement(*ElseStatement, int) bool           { return true }
func (BaseVisitor) VisitForeachStatement(*ForeachStatement, int) bool     { return true }
func (BaseVisitor) VisitWhileStatement(*WhileStatement, int) bool         { return true }
func (BaseVisitor) VisitFunctionDefinition(*FunctionDefinition, int) bool { return true }
func (BaseVisitor) VisitMacroDefinition(*MacroDefinition, int) bool       { return true }
func (BaseVisitor) VisitWord(*Word, int) bool                             { return true }

// Walk traverses the tree depth-first in source order. The root is
// visited at depth zero and every node's children one level deeper;
// bodies are transparent, so statements are direct children of the
// enclosing block. The walk never mutates the tree.
func Walk(v Visitor, node AstNode) {
	walk(v, node, 0)
}

func walk(v Visitor, node AstNode, depth int) {
	switch n := node.(type) {
	case *ToplevelBody:
		if !v.VisitToplevelBody(n, depth) {
			return
		}
		walkBody(v, n.Statements, depth+1)
	case *FunctionCall:
		if !v.VisitFunctionCall(n, depth) {
			return
		}
		if n.Name != nil {
			walk(v, n.Name, depth+1)
		}
		for _, arg := range n.Arguments {
			walk(v, arg, depth+1)
		}
	case *IfBlock:
		if !v.VisitIfBlock(n, depth) {
			return
		}
		if n.IfStatement != nil {
			walk(v, n.IfStatement, depth+1)
		}
		for _, elseIf := range n.ElseIfStatements {
			walk(v, elseIf, depth+1)
		}
		if n.ElseStatement != nil {
			walk(v, n.ElseStatement, depth+1)
		}
		if n.Footer != nil {
			walk(v, n.Footer, depth+1)
		}
	case *IfStatement:
		if !v.VisitIfStatement(n, depth) {
			return
		}
		if n.Header != nil {
			walk(v, n.Header, depth+1)
		}
		walkBody(v, n.Body, depth+1)
	case *ElseIfStatement:
		if !v.VisitElseIfStatement(n, depth) {
			return
		}
		if n.Header != nil {
			walk(v, n.Header, depth+1)
		}
		walkBody(v, n.Body, depth+1)
	case *ElseStatement:
		if !v.VisitElseStatement(n, depth) {
			return
		}
		if n.Header != nil {
			walk(v, n.Header, depth+1)
		}
		walkBody(v, n.Body, depth+1)
	case *ForeachStatement:
		if !v.VisitForeachStatement(n, depth) {
			return
		}
		walkBlock(v, n.Header, n.Body, n.Footer, depth)
	case *WhileStatement:
		if !v.VisitWhileStatement(n, depth) {
			return
		}
		walkBlock(v, n.Header, n.Body, n.Footer, depth)
	case *FunctionDefinition:
		if !v.VisitFunctionDefinition(n, depth) {
			return
		}
		walkBlock(v, n.Header, n.Body, n.Footer, depth)
	case *MacroDefinition:
		if !v.VisitMacroDefinition(n, depth) {
			return
		}
		walkBlock(v, n.Header, n.Body, n.Footer, depth)
	case *Word:
		v.VisitWord(n, depth)
	}
}

func walkBody(v Visitor, body Body, depth int) {
	for _, stmt := range body {
		walk(v, stmt, depth)
	}
}

func walkBlock(v Visitor, header *FunctionCall, body Body, footer *FunctionCall, depth int) {
	if header != nil {
		walk(v, header, depth+1)
	}
	walkBody(v, body, depth+1)
	if footer != nil {
		walk(v, footer, depth+1)
	}
}

// Inspect traverses the tree with a single callback, in the manner of
// go/ast. The callback reports whether to descend into children.
func Inspect(node AstNode, f func(node AstNode, depth int) bool) {
	Walk(inspector(f), node)
}

type inspector func(AstNode, int) bool

func (f inspector) VisitToplevelBody(n *ToplevelBody, depth int) bool { return f(n, depth) }
func (f inspector) VisitFunctionCall(n *FunctionCall, depth int) bool { return f(n, depth) }
func (f inspector) VisitIfBlock(n *IfBlock, depth int) bool           { return f(n, depth) }
func (f inspector) VisitIfStatement(n *IfStatement, depth int) bool   { return f(n, depth) }
func (f inspector) VisitElseIfStatement(n *ElseIfStatement, depth int) bool {
	return f(n, depth)
}
func (f inspector) VisitElseStatement(n *ElseStatement, depth int) bool { return f(n, depth) }
func (f inspector) VisitForeachStatement(n *ForeachStatement, depth int) bool {
	return f(n, depth)
}
func (f inspector) VisitWhileStatement(n *WhileStatement, depth int) bool { return f(n, depth) }
func (f inspector) VisitFunctionDefinition(n *FunctionDefinition, depth int) bool {
	return f(n, depth)
}
func (f inspector) VisitMacroDefinition(n *MacroDefinition, depth int) bool {
	return f(n, depth)
}
func (f inspector) VisitWord(n *Word, depth int) bool { return f(n, depth) }
