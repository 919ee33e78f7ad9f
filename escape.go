package hl7

import "github.com/jcomellas/ex-hl7/internal/codec"

// Escape replaces active delimiter bytes inside a string value with their
// escape sequences.
func Escape(value string, opts ...Option) string {
	cfg := buildOptions(opts)
	return string(codec.Escape([]byte(value), cfg.seps))
}

// Unescape replaces recognized escape sequences with their delimiter bytes.
// Unrecognized sequences pass through unchanged.
func Unescape(value string, opts ...Option) string {
	cfg := buildOptions(opts)
	return string(codec.Unescape([]byte(value), cfg.seps))
}
