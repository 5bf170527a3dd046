package ast

import (
	"fmt"
	"strings"

	"github.com/polysquare/cmake-ast/tokenizer"
)

// AstNode represents AST (Abstract Syntax Tree) node interface
type AstNode interface {
	Type() NodeType
	Position() tokenizer.Position
	String() string
}

// Statement is an AstNode that may appear directly in a body
type Statement interface {
	AstNode
	stmtNode()
}

// Body is an ordered sequence of statements
type Body []Statement

// NodeType represents the type of AST node
type NodeType int

const (
	TOPLEVEL_BODY NodeType = iota + 1
	FUNCTION_CALL
	IF_BLOCK
	IF_STATEMENT
	ELSEIF_STATEMENT
	ELSE_STATEMENT
	FOREACH_STATEMENT
	WHILE_STATEMENT
	FUNCTION_DEFINITION
	MACRO_DEFINITION
	WORD
)

// String returns string representation of NodeType
func (n NodeType) String() string {
	switch n {
	case TOPLEVEL_BODY:
		return "TOPLEVEL_BODY"
	case FUNCTION_CALL:
		return "FUNCTION_CALL"
	case IF_BLOCK:
		return "IF_BLOCK"
	case IF_STATEMENT:
		return "IF_STATEMENT"
	case ELSEIF_STATEMENT:
		return "ELSEIF_STATEMENT"
	case ELSE_STATEMENT:
		return "ELSE_STATEMENT"
	case FOREACH_STATEMENT:
		return "FOREACH_STATEMENT"
	case WHILE_STATEMENT:
		return "WHILE_STATEMENT"
	case FUNCTION_DEFINITION:
		return "FUNCTION_DEFINITION"
	case MACRO_DEFINITION:
		return "MACRO_DEFINITION"
	case WORD:
		return "WORD"
	default:
		return "UNKNOWN"
	}
}

// WordType classifies a single argument word
type WordType int

const (
	VARIABLE             WordType = iota + 1 // bare identifier
	STRING                                   // quoted literal
	NUMBER                                   // integer literal
	COMPOUND_LITERAL                         // any other unquoted run
	VARIABLE_DEREFERENCE                     // ${...}
)

// String returns string representation of WordType
func (w WordType) String() string {
	switch w {
	case VARIABLE:
		return "VARIABLE"
	case STRING:
		return "STRING"
	case NUMBER:
		return "NUMBER"
	case COMPOUND_LITERAL:
		return "COMPOUND_LITERAL"
	case VARIABLE_DEREFERENCE:
		return "VARIABLE_DEREFERENCE"
	default:
		return "UNKNOWN"
	}
}

// Word represents a single argument or command name
type Word struct {
	WordType WordType
	Contents string
	Pos      tokenizer.Position
}

func (w *Word) Type() NodeType               { return WORD }
func (w *Word) Position() tokenizer.Position { return w.Pos }

func (w *Word) String() string {
	return fmt.Sprintf("%s %s", w.WordType, w.Contents)
}

// FunctionCall represents a command invocation: name(arguments...)
type FunctionCall struct {
	Name      *Word
	Arguments []*Word
	Pos       tokenizer.Position
}

func (c *FunctionCall) Type() NodeType               { return FUNCTION_CALL }
func (c *FunctionCall) Position() tokenizer.Position { return c.Pos }
func (c *FunctionCall) stmtNode()                    {}

func (c *FunctionCall) String() string {
	name := ""
	if c.Name != nil {
		name = c.Name.Contents
	}
	parts := make([]string, len(c.Arguments))
	for i, arg := range c.Arguments {
		parts[i] = arg.Contents
	}
	return name + "(" + strings.Join(parts, " ") + ")"
}

// IfStatement represents the if header and the statements it guards
type IfStatement struct {
	Header *FunctionCall
	Body   Body
	Pos    tokenizer.Position
}

func (s *IfStatement) Type() NodeType               { return IF_STATEMENT }
func (s *IfStatement) Position() tokenizer.Position { return s.Pos }

func (s *IfStatement) String() string {
	return headerString(s.Header, "if")
}

// ElseIfStatement represents one elseif header and its statements
type ElseIfStatement struct {
	Header *FunctionCall
	Body   Body
	Pos    tokenizer.Position
}

func (s *ElseIfStatement) Type() NodeType               { return ELSEIF_STATEMENT }
func (s *ElseIfStatement) Position() tokenizer.Position { return s.Pos }

func (s *ElseIfStatement) String() string {
	return headerString(s.Header, "elseif")
}

// ElseStatement represents the else header and its statements
type ElseStatement struct {
	Header *FunctionCall
	Body   Body
	Pos    tokenizer.Position
}

func (s *ElseStatement) Type() NodeType               { return ELSE_STATEMENT }
func (s *ElseStatement) Position() tokenizer.Position { return s.Pos }

func (s *ElseStatement) String() string {
	return headerString(s.Header, "else")
}

// IfBlock represents a whole if/elseif/else/endif region
type IfBlock struct {
	IfStatement      *IfStatement
	ElseIfStatements []*ElseIfStatement
	ElseStatement    *ElseStatement // nil when absent
	Footer           *FunctionCall
	Pos              tokenizer.Position
}

func (b *IfBlock) Type() NodeType               { return IF_BLOCK }
func (b *IfBlock) Position() tokenizer.Position { return b.Pos }
func (b *IfBlock) stmtNode()                    {}

func (b *IfBlock) String() string {
	var parts []string
	if b.IfStatement != nil {
		parts = append(parts, b.IfStatement.String())
	}
	for _, elseIf := range b.ElseIfStatements {
		parts = append(parts, elseIf.String())
	}
	if b.ElseStatement != nil {
		parts = append(parts, b.ElseStatement.String())
	}
	if b.Footer != nil {
		parts = append(parts, b.Footer.String())
	}
	return strings.Join(parts, " ... ")
}

// ForeachStatement represents a foreach/endforeach block
type ForeachStatement struct {
	Header *FunctionCall
	Body   Body
	Footer *FunctionCall
	Pos    tokenizer.Position
}

func (s *ForeachStatement) Type() NodeType               { return FOREACH_STATEMENT }
func (s *ForeachStatement) Position() tokenizer.Position { return s.Pos }
func (s *ForeachStatement) stmtNode()                    {}

func (s *ForeachStatement) String() string {
	return blockString(s.Header, s.Footer, "foreach")
}

// WhileStatement represents a while/endwhile block
type WhileStatement struct {
	Header *FunctionCall
	Body   Body
	Footer *FunctionCall
	Pos    tokenizer.Position
}

func (s *WhileStatement) Type() NodeType               { return WHILE_STATEMENT }
func (s *WhileStatement) Position() tokenizer.Position { return s.Pos }
func (s *WhileStatement) stmtNode()                    {}

func (s *WhileStatement) String() string {
	return blockString(s.Header, s.Footer, "while")
}

// FunctionDefinition represents a function/endfunction block
type FunctionDefinition struct {
	Header *FunctionCall
	Body   Body
	Footer *FunctionCall
	Pos    tokenizer.Position
}

func (s *FunctionDefinition) Type() NodeType               { return FUNCTION_DEFINITION }
func (s *FunctionDefinition) Position() tokenizer.Position { return s.Pos }
func (s *FunctionDefinition) stmtNode()                    {}

func (s *FunctionDefinition) String() string {
	return blockString(s.Header, s.Footer, "function")
}

// MacroDefinition represents a macro/endmacro block
type MacroDefinition struct {
	Header *FunctionCall
	Body   Body
	Footer *FunctionCall
	Pos    tokenizer.Position
}

func (s *MacroDefinition) Type() NodeType               { return MACRO_DEFINITION }
func (s *MacroDefinition) Position() tokenizer.Position { return s.Pos }
func (s *MacroDefinition) stmtNode()                    {}

func (s *MacroDefinition) String() string {
	return blockString(s.Header, s.Footer, "macro")
}

// ToplevelBody is the root node covering the whole script
type ToplevelBody struct {
	Statements Body
}

func (b *ToplevelBody) Type() NodeType { return TOPLEVEL_BODY }

func (b *ToplevelBody) Position() tokenizer.Position {
	return tokenizer.Position{Line: 1, Column: 1, Offset: 0}
}

func (b *ToplevelBody) String() string {
	parts := make([]string, len(b.Statements))
	for i, stmt := range b.Statements {
		parts[i] = stmt.String()
	}
	return strings.Join(parts, "\n")
}

func headerString(header *FunctionCall, fallback string) string {
	if header == nil {
		return fallback
	}
	return header.String()
}

func blockString(header, footer *FunctionCall, fallback string) string {
	head := headerString(header, fallback)
	if footer == nil {
		return head + " ..."
	}
	return head + " ... " + footer.String()
}
