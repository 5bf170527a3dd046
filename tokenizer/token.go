package tokenizer

import (
	"errors"
	"fmt"
)

// Sentinel errors
var (
	ErrUnterminatedString = errors.New("unterminated quoted literal")
	ErrUnterminatedDeref  = errors.New("unterminated variable dereference")
)

// TokenType represents the type of a token
type TokenType int

const (
	// Structural tokens
	LEFT_PAREN  TokenType = iota + 1 // (
	RIGHT_PAREN                      // )

	// Argument-bearing tokens
	QUOTED_LITERAL   // "text", may span lines
	WORD             // identifiers: command names, variable names
	NUMBER           // integer literals, optionally negative
	DEREF            // ${VAR}, nesting allowed
	UNQUOTED_LITERAL // any other unquoted run, e.g. 0ABC, a="b", ${A}/x

	// Comment tokens
	COMMENT // # to end of line
	RST     // ## doc comment at the start of a line
)

// String returns the string representation of TokenType
func (t TokenType) String() string {
	switch t {
	case LEFT_PAREN:
		return "LEFT_PAREN"
	case RIGHT_PAREN:
		return "RIGHT_PAREN"
	case QUOTED_LITERAL:
		return "QUOTED_LITERAL"
	case WORD:
		return "WORD"
	case NUMBER:
		return "NUMBER"
	case DEREF:
		return "DEREF"
	case UNQUOTED_LITERAL:
		return "UNQUOTED_LITERAL"
	case COMMENT:
		return "COMMENT"
	case RST:
		return "RST"
	default:
		return "UNKNOWN"
	}
}

// Position represents a position in the source code
type Position struct {
	Line   int // 1-based
	Column int // 1-based
	Offset int // 0-based byte offset
}

// Token represents a token
type Token struct {
	Type     TokenType
	Value    string
	Position Position
}

// String returns the string representation of Token
func (t Token) String() string {
	return t.Type.String() + ": " + t.Value
}

// TokenizeError reports a scanning failure at the position where the
// failed construct started. It unwraps to one of the sentinel errors.
type TokenizeError struct {
	Err      error
	Position Position
}

func (e *TokenizeError) Error() string {
	return fmt.Sprintf("%s at line %d, column %d", e.Err, e.Position.Line, e.Position.Column)
}

func (e *TokenizeError) Unwrap() error {
	return e.Err
}
