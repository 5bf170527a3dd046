package tokenizer

import (
	"iter"
	"strings"
	"unicode"
	"unicode/utf8"
)

// TokenIterator uses the Go iterator pattern
type TokenIterator iter.Seq2[Token, error]

// ScriptTokenizer is a tokenizer that returns an iterator
type ScriptTokenizer struct {
	input   string
	options TokenizerOptions
}

// TokenizerOptions are options for the tokenizer
type TokenizerOptions struct {
	SkipComments bool // drop COMMENT and RST tokens from the stream
}

// NewScriptTokenizer creates a new ScriptTokenizer
func NewScriptTokenizer(input string, options ...TokenizerOptions) *ScriptTokenizer {
	opts := TokenizerOptions{}
	if len(options) > 0 {
		opts = options[0]
	}

	return &ScriptTokenizer{
		input:   input,
		options: opts,
	}
}

// Tokens returns an iterator of tokens. Scanning stops at the first
// error; the iterator yields it and terminates.
func (t *ScriptTokenizer) Tokens() TokenIterator {
	return func(yield func(Token, error) bool) {
		scanner := &tokenizer{
			input:    t.input,
			position: 0,
			line:     1,
			column:   1,
		}

		scanner.readChar()

		for {
			scanner.skipWhitespace()
			if scanner.current == 0 {
				return
			}

			token, err := scanner.nextToken()
			if err != nil {
				yield(Token{}, err)
				return
			}

			// Filtering based on options
			if t.options.SkipComments && (token.Type == COMMENT || token.Type == RST) {
				continue
			}

			if !yield(token, nil) {
				return
			}
		}
	}
}

// AllTokens gets all tokens as a slice. On failure the partial token
// sequence is discarded and only the error is returned.
func (t *ScriptTokenizer) AllTokens() ([]Token, error) {
	tokens := make([]Token, 0, 64)

	for token, err := range t.Tokens() {
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, token)
	}

	return tokens, nil
}

// Tokenize scans input in a single call.
func Tokenize(input string, options ...TokenizerOptions) ([]Token, error) {
	return NewScriptTokenizer(input, options...).AllTokens()
}

// Internal tokenizer implementation
type tokenizer struct {
	input    string
	position int
	line     int
	column   int
	current  rune
	width    int
}

// nextToken gets the next token. The caller has already skipped
// whitespace, so the current character starts a token.
func (t *tokenizer) nextToken() (Token, error) {
	switch t.current {
	case '(':
		token := t.newToken(LEFT_PAREN, string(t.current))
		t.readChar()
		return token, nil
	case ')':
		token := t.newToken(RIGHT_PAREN, string(t.current))
		t.readChar()
		return token, nil
	case '"':
		return t.readQuotedLiteral()
	case '#':
		return t.readComment(), nil
	case '$':
		if t.peekChar() == '{' {
			return t.readDeref()
		}
		return t.readRun(), nil
	default:
		return t.readRun(), nil
	}
}

// readChar reads the next character
func (t *tokenizer) readChar() {
	if t.position >= len(t.input) {
		t.current = 0
		t.width = 0
		t.position++
		return
	}

	r, w := utf8.DecodeRuneInString(t.input[t.position:])
	t.current = r
	t.width = w
	t.position += w

	if t.current == '\n' {
		t.line++
		t.column = 1
	} else {
		t.column++
	}
}

// peekChar looks ahead at the next character
func (t *tokenizer) peekChar() rune {
	if t.position >= len(t.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(t.input[t.position:])
	return r
}

// skipWhitespace consumes whitespace between tokens
func (t *tokenizer) skipWhitespace() {
	for t.current == ' ' || t.current == '\t' || t.current == '\r' || t.current == '\n' {
		t.readChar()
	}
}

// isSeparator reports whether ch ends an unquoted run. Parentheses and
// whitespace delimit tokens; everything else glues into the run.
func isSeparator(ch rune) bool {
	switch ch {
	case 0, ' ', '\t', '\r', '\n', '(', ')':
		return true
	}
	return false
}

// readQuotedLiteral reads a double-quoted literal. The value keeps both
// quotes and may span lines. Backslash escapes a quote without closing
// the literal. A run continuing past the closing quote (e.g. "abc"def)
// turns the whole token into an unquoted literal.
func (t *tokenizer) readQuotedLiteral() (Token, error) {
	var builder strings.Builder
	startLine := t.line
	startColumn := t.column - 1
	startOffset := t.position - t.width

	builder.WriteRune(t.current) // include opening quote
	t.readChar()

	for t.current != 0 && t.current != '"' {
		if t.current == '\\' {
			builder.WriteRune(t.current)
			t.readChar()
			if t.current != 0 {
				builder.WriteRune(t.current)
				t.readChar()
			}
		} else {
			builder.WriteRune(t.current)
			t.readChar()
		}
	}

	if t.current == 0 {
		return Token{}, &TokenizeError{
			Err:      ErrUnterminatedString,
			Position: Position{Line: startLine, Column: startColumn, Offset: startOffset},
		}
	}

	builder.WriteRune(t.current) // include closing quote
	t.readChar()

	tokenType := QUOTED_LITERAL
	if !isSeparator(t.current) {
		t.finishRun(&builder)
		tokenType = UNQUOTED_LITERAL
	}

	return Token{
		Type:  tokenType,
		Value: builder.String(),
		Position: Position{
			Line:   startLine,
			Column: startColumn,
			Offset: startOffset,
		},
	}, nil
}

// readDeref reads a ${...} variable dereference, counting brace depth so
// nested dereferences stay in one token. A run continuing past the
// closing brace (e.g. ${A}/b) turns the token into an unquoted literal.
func (t *tokenizer) readDeref() (Token, error) {
	var builder strings.Builder
	startLine := t.line
	startColumn := t.column - 1
	startOffset := t.position - t.width

	builder.WriteRune(t.current) // '$'
	t.readChar()
	builder.WriteRune(t.current) // '{'
	t.readChar()

	depth := 1
	for depth > 0 && t.current != 0 {
		switch t.current {
		case '{':
			depth++
		case '}':
			depth--
		}
		builder.WriteRune(t.current)
		t.readChar()
	}

	if depth > 0 {
		return Token{}, &TokenizeError{
			Err:      ErrUnterminatedDeref,
			Position: Position{Line: startLine, Column: startColumn, Offset: startOffset},
		}
	}

	tokenType := DEREF
	if !isSeparator(t.current) {
		t.finishRun(&builder)
		tokenType = UNQUOTED_LITERAL
	}

	return Token{
		Type:  tokenType,
		Value: builder.String(),
		Position: Position{
			Line:   startLine,
			Column: startColumn,
			Offset: startOffset,
		},
	}, nil
}

// readComment reads a comment to the end of the line. A comment opening
// with ## as the first non-blank content of its line is a doc comment.
func (t *tokenizer) readComment() Token {
	var builder strings.Builder
	startLine := t.line
	startColumn := t.column - 1
	startOffset := t.position - t.width

	tokenType := COMMENT
	if t.peekChar() == '#' && t.atLineStart(startOffset) {
		tokenType = RST
	}

	for t.current != 0 && t.current != '\n' {
		builder.WriteRune(t.current)
		t.readChar()
	}

	return Token{
		Type:  tokenType,
		Value: builder.String(),
		Position: Position{
			Line:   startLine,
			Column: startColumn,
			Offset: startOffset,
		},
	}
}

// atLineStart reports whether only blanks precede offset on its line
func (t *tokenizer) atLineStart(offset int) bool {
	for i := offset - 1; i >= 0; i-- {
		switch t.input[i] {
		case '\n':
			return true
		case ' ', '\t', '\r':
			continue
		default:
			return false
		}
	}
	return true
}

// readRun reads a maximal unquoted run and classifies it
func (t *tokenizer) readRun() Token {
	var builder strings.Builder
	startLine := t.line
	startColumn := t.column - 1
	startOffset := t.position - t.width

	t.finishRun(&builder)
	value := builder.String()

	return Token{
		Type:  classifyRun(value),
		Value: value,
		Position: Position{
			Line:   startLine,
			Column: startColumn,
			Offset: startOffset,
		},
	}
}

// finishRun consumes characters up to the next separator
func (t *tokenizer) finishRun(builder *strings.Builder) {
	for !isSeparator(t.current) {
		builder.WriteRune(t.current)
		t.readChar()
	}
}

// classifyRun decides between NUMBER, WORD and UNQUOTED_LITERAL
func classifyRun(value string) TokenType {
	if isNumberRun(value) {
		return NUMBER
	}
	if isWordRun(value) {
		return WORD
	}
	return UNQUOTED_LITERAL
}

// isNumberRun matches integer literals with an optional leading minus
func isNumberRun(value string) bool {
	digits := strings.TrimPrefix(value, "-")
	if digits == "" {
		return false
	}
	for _, ch := range digits {
		if !unicode.IsDigit(ch) {
			return false
		}
	}
	return true
}

// isWordRun matches identifier runs: letters, digits and underscores,
// not starting with a digit
func isWordRun(value string) bool {
	for i, ch := range value {
		if ch == '_' || unicode.IsLetter(ch) {
			continue
		}
		if i > 0 && unicode.IsDigit(ch) {
			continue
		}
		return false
	}
	return value != ""
}

// newToken creates a new token for a single-character lexeme
func (t *tokenizer) newToken(tokenType TokenType, value string) Token {
	return Token{
		Type:  tokenType,
		Value: value,
		Position: Position{
			Line:   t.line,
			Column: t.column - len([]rune(value)),
			Offset: t.position - len(value),
		},
	}
}
