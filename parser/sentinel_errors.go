package parser

import "errors"

// Sentinel errors
var (
	// Statement and call shape errors
	ErrExpectedCommandName = errors.New("expected command name")
	ErrExpectedOpenParen   = errors.New("expected '('")
	ErrExpectedCloseParen  = errors.New("expected ')'")

	// Block structure errors
	ErrUnterminatedBlock   = errors.New("unterminated block")
	ErrUnmatchedTerminator = errors.New("unmatched block terminator")

	// If chain errors
	ErrDuplicateElse   = errors.New("duplicate else clause")
	ErrElseIfAfterElse = errors.New("elseif after else")
)
