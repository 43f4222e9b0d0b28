// Command xrefix rebuilds the cross-reference stream of a PDF file.
//
// Usage:
//
//	xrefix [flags] <input.pdf> [output.pdf]
//
// With an output path the rebuilt document is written there. Without one the
// resolved table is printed to standard output.
package main

import (
	"compress/zlib"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/tsawler/xrefix"
	"github.com/tsawler/xrefix/logging"
)

type options struct {
	input        string
	output       string
	verbose      bool
	level        int
	strictHeader bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command and returns the process exit status
func run(args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		fmt.Fprintf(stderr, "xrefix: %v\n", err)
		return 2
	}

	level := slog.LevelWarn
	if opts.verbose {
		level = slog.LevelDebug
	}
	logging.SetLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})))

	rb := xrefix.Open(opts.input).CompressionLevel(opts.level)
	if opts.strictHeader {
		rb = rb.StrictHeader()
	}

	var warnings []xrefix.Warning
	if opts.output == "" {
		warnings, err = rb.Inspect(stdout)
	} else {
		warnings, err = rb.WriteFile(opts.output)
	}
	for _, w := range warnings {
		fmt.Fprintf(stderr, "xrefix: warning: %s\n", w)
	}
	if err != nil {
		fmt.Fprintf(stderr, "xrefix: %v\n", err)
		return 1
	}
	return 0
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("xrefix", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: xrefix [flags] <input.pdf> [output.pdf]\n")
		fs.PrintDefaults()
	}
	fs.BoolVar(&opts.verbose, "v", false, "Log pipeline stages to stderr")
	fs.IntVar(&opts.level, "level", zlib.BestCompression, "zlib compression level for the rebuilt stream (-2 to 9)")
	fs.BoolVar(&opts.strictHeader, "strict-header", false, "Fail when the %PDF- header is missing")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}

	switch fs.NArg() {
	case 1:
		opts.input = fs.Arg(0)
	case 2:
		opts.input = fs.Arg(0)
		opts.output = fs.Arg(1)
	default:
		fs.Usage()
		return options{}, fmt.Errorf("expected 1 or 2 arguments, got %d", fs.NArg())
	}
	return opts, nil
}
