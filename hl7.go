// Package hl7 reads and writes HL7 v2.x messages in their delimiter-based
// wire form, exposing them as sequences of segments with named, typed
// fields driven by schema tables.
package hl7

import (
	"log/slog"

	"github.com/jcomellas/ex-hl7/message"
	"github.com/jcomellas/ex-hl7/schema"
)

// LevelTrace is a custom log level more verbose than Debug.
// Use for per-item iteration logging (tokens, fields, segments).
// Enable with: &slog.HandlerOptions{Level: slog.Level(-8)}
const LevelTrace = slog.Level(-8)

// Format selects the segment terminator byte.
type Format int

const (
	// FormatWire terminates segments with carriage return (0x0D), the HL7
	// wire convention.
	FormatWire Format = iota
	// FormatText terminates segments with line feed (0x0A), convenient for
	// files and fixtures.
	FormatText
)

// Terminator returns the terminator byte for the format.
func (f Format) Terminator() byte {
	if f == FormatText {
		return '\n'
	}
	return '\r'
}

// Option configures Read, Write, NewReader, Escape and Unescape.
type Option func(*options)

type options struct {
	inputFormat  Format
	outputFormat Format
	trim         bool
	seps         message.Separators
	registry     *schema.Registry
	logger       *slog.Logger
}

func defaultOptions() options {
	return options{
		inputFormat:  FormatWire,
		outputFormat: FormatWire,
		trim:         true,
		seps:         message.DefaultSeparators(),
		registry:     schema.Default(),
	}
}

func buildOptions(opts []Option) options {
	cfg := defaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithInputFormat sets the expected segment terminator on input.
func WithInputFormat(f Format) Option {
	return func(o *options) { o.inputFormat = f }
}

// WithOutputFormat sets the segment terminator on output.
func WithOutputFormat(f Format) Option {
	return func(o *options) { o.outputFormat = f }
}

// WithTrim controls trailing-empties elision on read and write.
// The default is true.
func WithTrim(trim bool) Option {
	return func(o *options) { o.trim = trim }
}

// WithSeparators overrides the default delimiter set. On input an MSH header
// still takes precedence; on output the message's own MSH header does.
func WithSeparators(seps message.Separators) Option {
	return func(o *options) { o.seps = seps }
}

// WithRegistry sets the schema registry. The default is schema.Default().
func WithRegistry(r *schema.Registry) Option {
	return func(o *options) { o.registry = r }
}

// WithLogger sets the logger for debug/trace output.
// If not set, no logging occurs (zero overhead).
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

func componentLogger(logger *slog.Logger, component string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(slog.String("component", component))
}
