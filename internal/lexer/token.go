// Package lexer provides incremental tokenization of HL7 v2.x wire bytes.
package lexer

import (
	"github.com/jcomellas/ex-hl7/message"
)

// TokenKind identifies a token type.
type TokenKind int

const (
	// TokLiteral is uninterpreted content: a segment ID, the MSH.1 field
	// separator, or the MSH.2 encoding characters.
	TokLiteral TokenKind = iota
	// TokValue is the raw content of one field, to be decoded by the codec.
	TokValue
	// TokSeparator is a field separator or segment terminator.
	TokSeparator
)

// String returns the token kind name.
func (k TokenKind) String() string {
	switch k {
	case TokLiteral:
		return "literal"
	case TokValue:
		return "value"
	case TokSeparator:
		return "separator"
	default:
		return "unknown"
	}
}

// Token is one lexed unit. Bytes is set for literals and values; Sep is set
// for separators.
type Token struct {
	Kind  TokenKind
	Sep   message.DelimiterKind
	Bytes []byte
}

// NewLiteral creates a literal token.
func NewLiteral(b []byte) Token {
	return Token{Kind: TokLiteral, Bytes: b}
}

// NewValue creates a value token.
func NewValue(b []byte) Token {
	return Token{Kind: TokValue, Bytes: b}
}

// NewSeparator creates a separator token.
func NewSeparator(kind message.DelimiterKind) Token {
	return Token{Kind: TokSeparator, Sep: kind}
}
