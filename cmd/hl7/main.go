// Command hl7 is a CLI tool for inspecting and converting HL7 v2.x messages.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	hl7 "github.com/jcomellas/ex-hl7"
	"github.com/jcomellas/ex-hl7/mllp"
)

// Exit codes.
const (
	exitOK    = 0 // success
	exitError = 1 // user error or processing failure
)

const usage = `hl7 - HL7 v2.x message inspection tool

Usage:
  hl7 <command> [options] <file>

Commands:
  dump    Print every segment with its decoded fields
  check   Read the message and verify it round-trips byte-exactly
  frame   Wrap the file bytes in an MLLP envelope (stdout)
  strip   Remove the MLLP envelope (stdout)
  convert Rewrite between wire (CR) and text (LF) dialects (stdout)

Options:
  -text       Input uses LF segment terminators
  -notrim     Keep trailing empty fields
  -v          Enable debug logging
  -vv         Enable trace logging (implies -v)
  -h, --help  Show help

Examples:
  hl7 dump message.hl7
  hl7 check -text message.txt
  hl7 convert -text message.txt > message.hl7
`

type cli struct {
	text    bool
	notrim  bool
	verbose int
}

func main() {
	os.Exit(run())
}

func run() int {
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }

	var c cli
	args := os.Args[1:]
	if len(args) == 0 {
		flag.Usage()
		return exitError
	}
	cmd := args[0]
	rest := args[1:]

	var files []string
	for _, arg := range rest {
		switch arg {
		case "-text":
			c.text = true
		case "-notrim":
			c.notrim = true
		case "-v":
			c.verbose = 1
		case "-vv":
			c.verbose = 2
		case "-h", "--help":
			flag.Usage()
			return exitOK
		default:
			files = append(files, arg)
		}
	}

	if cmd == "help" {
		flag.Usage()
		return exitOK
	}
	if len(files) != 1 {
		fmt.Fprintln(os.Stderr, "hl7: exactly one input file required")
		return exitError
	}
	data, err := os.ReadFile(files[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "hl7: %v\n", err)
		return exitError
	}

	switch cmd {
	case "dump":
		return c.dump(data)
	case "check":
		return c.check(data)
	case "frame":
		os.Stdout.Write(mllp.Frame(data))
		return exitOK
	case "strip":
		inner, err := mllp.Unframe(data)
		if err != nil {
			fmt.Fprintf(os.Stderr, "hl7: %v\n", err)
			return exitError
		}
		os.Stdout.Write(inner)
		return exitOK
	case "convert":
		return c.convert(data)
	default:
		fmt.Fprintf(os.Stderr, "hl7: unknown command %q\n", cmd)
		flag.Usage()
		return exitError
	}
}

func (c *cli) options() []hl7.Option {
	opts := []hl7.Option{hl7.WithTrim(!c.notrim)}
	if c.text {
		opts = append(opts, hl7.WithInputFormat(hl7.FormatText),
			hl7.WithOutputFormat(hl7.FormatText))
	}
	if c.verbose > 0 {
		level := slog.LevelDebug
		if c.verbose > 1 {
			level = hl7.LevelTrace
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr,
			&slog.HandlerOptions{Level: level}))
		opts = append(opts, hl7.WithLogger(logger))
	}
	return opts
}

func (c *cli) read(data []byte) (*hl7.Message, bool) {
	msg, err := hl7.Read(data, c.options()...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "hl7: %v\n", err)
		return nil, false
	}
	return msg, true
}

func (c *cli) dump(data []byte) int {
	msg, ok := c.read(data)
	if !ok {
		return exitError
	}
	for seg := range msg.Segments() {
		fmt.Println(seg.ID())
		for _, name := range seg.FieldNames() {
			v, _ := seg.Field(name)
			if seg.FieldIsNull(name) {
				fmt.Printf("  %-28s <null>\n", name)
				continue
			}
			fmt.Printf("  %-28s %v\n", name, v)
		}
	}
	return exitOK
}

func (c *cli) check(data []byte) int {
	msg, ok := c.read(data)
	if !ok {
		return exitError
	}
	out, err := hl7.Write(msg, c.options()...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "hl7: %v\n", err)
		return exitError
	}
	if string(out) != string(data) {
		fmt.Fprintln(os.Stderr, "hl7: message does not round-trip byte-exactly")
		fmt.Fprintf(os.Stderr, "  in:  %q\n  out: %q\n", data, out)
		return exitError
	}
	fmt.Printf("%d segments, round-trip OK\n", msg.Len())
	return exitOK
}

func (c *cli) convert(data []byte) int {
	msg, ok := c.read(data)
	if !ok {
		return exitError
	}
	outFormat := hl7.FormatWire
	if !c.text {
		outFormat = hl7.FormatText
	}
	opts := append(c.options(), hl7.WithOutputFormat(outFormat))
	out, err := hl7.Write(msg, opts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "hl7: %v\n", err)
		return exitError
	}
	os.Stdout.Write(out)
	return exitOK
}
