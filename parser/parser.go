package parser

import (
	"fmt"
	"strings"

	"github.com/polysquare/cmake-ast/ast"
	"github.com/polysquare/cmake-ast/tokenizer"
)

// ParseError represents parse error. It unwraps to one of the package
// sentinel errors so callers can branch with errors.Is.
type ParseError struct {
	Err      error
	Position tokenizer.Position
	Token    tokenizer.Token
}

func (e *ParseError) Error() string {
	if e.Token.Value == "" {
		return fmt.Sprintf("%s at line %d, column %d",
			e.Err, e.Position.Line, e.Position.Column)
	}
	return fmt.Sprintf("%s at line %d, column %d (token: %s)",
		e.Err, e.Position.Line, e.Position.Column, e.Token.Value)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Block terminator keywords, matched case-insensitively
var terminators = []string{
	"elseif", "else", "endif",
	"endforeach", "endwhile", "endfunction", "endmacro",
}

// Terminators that may close a clause of an if block
var ifTerminators = []string{"elseif", "else", "endif"}

// argContext selects how bare words in an argument list are classified.
// Conditions and loop headers treat them as variables; everywhere else
// they are opaque compound literals.
type argContext int

const (
	literalArgs argContext = iota
	variableArgs
)

// Parse tokenizes src and parses the whole script. The first tokenize or
// parse failure aborts; no partial tree is returned.
func Parse(src string) (*ast.ToplevelBody, error) {
	tokens, err := tokenizer.Tokenize(src)
	if err != nil {
		return nil, err
	}
	return ParseTokens(tokens)
}

// ParseTokens parses an already tokenized script. The token slice must
// be the tokenizer's output for one script; whether comments were kept
// or skipped makes no difference to the tree.
func ParseTokens(tokens []tokenizer.Token) (*ast.ToplevelBody, error) {
	p := &parser{tokens: stripComments(tokens)}
	statements, err := p.parseBody(nil)
	if err != nil {
		return nil, err
	}
	return &ast.ToplevelBody{Statements: statements}, nil
}

// stripComments drops COMMENT and RST tokens. Comments are legal
// anywhere between tokens and never affect the tree.
func stripComments(tokens []tokenizer.Token) []tokenizer.Token {
	filtered := make([]tokenizer.Token, 0, len(tokens))
	for _, token := range tokens {
		if token.Type == tokenizer.COMMENT || token.Type == tokenizer.RST {
			continue
		}
		filtered = append(filtered, token)
	}
	return filtered
}

// parser is a cursor over the token slice
type parser struct {
	tokens  []tokenizer.Token
	current int
}

// parseBody parses statements until end of input or until one of the
// terminators listed in stop. The terminator is left unconsumed for the
// caller. A terminator keyword that is not listed is fatal: either a
// stray terminator at the toplevel, or a footer that does not match the
// innermost open block.
func (p *parser) parseBody(stop []string) (ast.Body, error) {
	var body ast.Body

	for !p.isAtEnd() {
		token := p.currentToken()
		if token.Type != tokenizer.WORD {
			return nil, &ParseError{Err: ErrExpectedCommandName, Position: token.Position, Token: token}
		}
		if isTerminator(token.Value) {
			if matchesAny(token.Value, stop) {
				return body, nil
			}
			return nil, &ParseError{Err: ErrUnmatchedTerminator, Position: token.Position, Token: token}
		}

		statement, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		body = append(body, statement)
	}

	return body, nil
}

// parseStatement dispatches on the command name. Block openers produce
// compound statements; every other command is a plain function call.
func (p *parser) parseStatement() (ast.Statement, error) {
	name := p.currentToken().Value

	switch {
	case strings.EqualFold(name, "if"):
		return p.parseIfBlock()
	case strings.EqualFold(name, "foreach"):
		header, body, footer, err := p.parseBlock("endforeach", variableArgs)
		if err != nil {
			return nil, err
		}
		return &ast.ForeachStatement{Header: header, Body: body, Footer: footer, Pos: header.Pos}, nil
	case strings.EqualFold(name, "while"):
		header, body, footer, err := p.parseBlock("endwhile", variableArgs)
		if err != nil {
			return nil, err
		}
		return &ast.WhileStatement{Header: header, Body: body, Footer: footer, Pos: header.Pos}, nil
	case strings.EqualFold(name, "function"):
		header, body, footer, err := p.parseBlock("endfunction", literalArgs)
		if err != nil {
			return nil, err
		}
		return &ast.FunctionDefinition{Header: header, Body: body, Footer: footer, Pos: header.Pos}, nil
	case strings.EqualFold(name, "macro"):
		header, body, footer, err := p.parseBlock("endmacro", literalArgs)
		if err != nil {
			return nil, err
		}
		return &ast.MacroDefinition{Header: header, Body: body, Footer: footer, Pos: header.Pos}, nil
	default:
		return p.parseFunctionCall(literalArgs)
	}
}

// parseBlock parses the header, body and footer of a simple block. Only
// the given terminator may close the body; a missing footer is reported
// at the header's position.
func (p *parser) parseBlock(terminator string, headerArgs argContext) (*ast.FunctionCall, ast.Body, *ast.FunctionCall, error) {
	header, err := p.parseFunctionCall(headerArgs)
	if err != nil {
		return nil, nil, nil, err
	}

	body, err := p.parseBody([]string{terminator})
	if err != nil {
		return nil, nil, nil, err
	}

	if p.isAtEnd() {
		return nil, nil, nil, &ParseError{Err: ErrUnterminatedBlock, Position: header.Pos}
	}

	footer, err := p.parseFunctionCall(literalArgs)
	if err != nil {
		return nil, nil, nil, err
	}

	return header, body, footer, nil
}

// parseIfBlock parses if/elseif/else/endif. Any number of elseif
// clauses may follow the if clause, then at most one else clause,
// closed by endif.
func (p *parser) parseIfBlock() (*ast.IfBlock, error) {
	header, err := p.parseFunctionCall(variableArgs)
	if err != nil {
		return nil, err
	}

	body, err := p.parseBody(ifTerminators)
	if err != nil {
		return nil, err
	}

	block := &ast.IfBlock{
		IfStatement: &ast.IfStatement{Header: header, Body: body, Pos: header.Pos},
		Pos:         header.Pos,
	}

	for {
		if p.isAtEnd() {
			return nil, &ParseError{Err: ErrUnterminatedBlock, Position: header.Pos}
		}

		token := p.currentToken()
		switch {
		case strings.EqualFold(token.Value, "elseif"):
			if block.ElseStatement != nil {
				return nil, &ParseError{Err: ErrElseIfAfterElse, Position: token.Position, Token: token}
			}
			clauseHeader, clauseBody, err := p.parseIfClause(variableArgs)
			if err != nil {
				return nil, err
			}
			block.ElseIfStatements = append(block.ElseIfStatements, &ast.ElseIfStatement{
				Header: clauseHeader,
				Body:   clauseBody,
				Pos:    clauseHeader.Pos,
			})
		case strings.EqualFold(token.Value, "else"):
			if block.ElseStatement != nil {
				return nil, &ParseError{Err: ErrDuplicateElse, Position: token.Position, Token: token}
			}
			clauseHeader, clauseBody, err := p.parseIfClause(literalArgs)
			if err != nil {
				return nil, err
			}
			block.ElseStatement = &ast.ElseStatement{
				Header: clauseHeader,
				Body:   clauseBody,
				Pos:    clauseHeader.Pos,
			}
		default:
			// endif, the only remaining terminator parseBody stops at
			footer, err := p.parseFunctionCall(literalArgs)
			if err != nil {
				return nil, err
			}
			block.Footer = footer
			return block, nil
		}
	}
}

// parseIfClause parses the header and body of one elseif or else clause
func (p *parser) parseIfClause(headerArgs argContext) (*ast.FunctionCall, ast.Body, error) {
	header, err := p.parseFunctionCall(headerArgs)
	if err != nil {
		return nil, nil, err
	}
	body, err := p.parseBody(ifTerminators)
	if err != nil {
		return nil, nil, err
	}
	return header, body, nil
}

// parseFunctionCall parses name(arguments...). Parentheses inside the
// argument list become compound literal words, so the list ends only at
// the matching close paren.
func (p *parser) parseFunctionCall(args argContext) (*ast.FunctionCall, error) {
	nameToken := p.currentToken()
	if nameToken.Type != tokenizer.WORD {
		return nil, &ParseError{Err: ErrExpectedCommandName, Position: nameToken.Position, Token: nameToken}
	}
	p.advance()

	if !p.match(tokenizer.LEFT_PAREN) {
		token := p.currentToken()
		position := token.Position
		if p.isAtEnd() {
			position = nameToken.Position
		}
		return nil, &ParseError{Err: ErrExpectedOpenParen, Position: position, Token: token}
	}
	openToken := p.previousToken()

	call := &ast.FunctionCall{
		Name: &ast.Word{WordType: ast.VARIABLE, Contents: nameToken.Value, Pos: nameToken.Position},
		Pos:  nameToken.Position,
	}

	depth := 0
	for {
		if p.isAtEnd() {
			return nil, &ParseError{Err: ErrExpectedCloseParen, Position: openToken.Position, Token: openToken}
		}

		token := p.advance()
		switch token.Type {
		case tokenizer.RIGHT_PAREN:
			if depth == 0 {
				return call, nil
			}
			depth--
			call.Arguments = append(call.Arguments, &ast.Word{
				WordType: ast.COMPOUND_LITERAL,
				Contents: token.Value,
				Pos:      token.Position,
			})
		case tokenizer.LEFT_PAREN:
			depth++
			call.Arguments = append(call.Arguments, &ast.Word{
				WordType: ast.COMPOUND_LITERAL,
				Contents: token.Value,
				Pos:      token.Position,
			})
		default:
			call.Arguments = append(call.Arguments, wordFromToken(token, args))
		}
	}
}

// wordFromToken maps an argument token to a word. The token kinds are
// disjoint; quoted literals keep their quotes, dereferences reduce to
// the dereferenced name. A bare word is a variable only where variable
// syntax applies, so set(x 1) carries a compound literal but if(x)
// carries a variable.
func wordFromToken(token tokenizer.Token, args argContext) *ast.Word {
	word := &ast.Word{Contents: token.Value, Pos: token.Position}

	switch token.Type {
	case tokenizer.NUMBER:
		word.WordType = ast.NUMBER
	case tokenizer.DEREF:
		word.WordType = ast.VARIABLE_DEREFERENCE
		word.Contents = derefContents(token.Value)
	case tokenizer.QUOTED_LITERAL:
		word.WordType = ast.STRING
	case tokenizer.WORD:
		if args == variableArgs {
			word.WordType = ast.VARIABLE
		} else {
			word.WordType = ast.COMPOUND_LITERAL
		}
	default:
		word.WordType = ast.COMPOUND_LITERAL
	}

	return word
}

// derefContents strips the outer ${...} and keeps unwrapping while the
// remainder is itself a single dereference, so ${${A}} names A.
func derefContents(value string) string {
	inner := value
	for isSingleDeref(inner) {
		inner = inner[2 : len(inner)-1]
	}
	return inner
}

// isSingleDeref reports whether s is exactly one balanced ${...}
func isSingleDeref(s string) bool {
	if !strings.HasPrefix(s, "${") || !strings.HasSuffix(s, "}") {
		return false
	}
	depth := 0
	for i, ch := range s {
		switch ch {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i == len(s)-1
			}
		}
	}
	return false
}

func isTerminator(word string) bool {
	return matchesAny(word, terminators)
}

func matchesAny(word string, candidates []string) bool {
	for _, candidate := range candidates {
		if strings.EqualFold(word, candidate) {
			return true
		}
	}
	return false
}

// isAtEnd checks if we've reached the end of tokens
func (p *parser) isAtEnd() bool {
	return p.current >= len(p.tokens)
}

// currentToken returns the current token, or a zero token at the end
func (p *parser) currentToken() tokenizer.Token {
	if p.isAtEnd() {
		return tokenizer.Token{}
	}
	return p.tokens[p.current]
}

// previousToken returns the most recently consumed token
func (p *parser) previousToken() tokenizer.Token {
	if p.current == 0 {
		return tokenizer.Token{}
	}
	return p.tokens[p.current-1]
}

// advance consumes and returns the current token
func (p *parser) advance() tokenizer.Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previousToken()
}

// check tests the current token type without consuming it
func (p *parser) check(tokenType tokenizer.TokenType) bool {
	if p.isAtEnd() {
		return false
	}
	return p.currentToken().Type == tokenType
}

// match consumes the current token if it has one of the given types
func (p *parser) match(types ...tokenizer.TokenType) bool {
	for _, tokenType := range types {
		if p.check(tokenType) {
			p.advance()
			return true
		}
	}
	return false
}
