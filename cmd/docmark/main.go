// Package main is the docmark format converter. It reads a document from
// a file or stdin, rebuilds the document tree, and renders it in the
// requested output format.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dshills/docmark/convert"
	"github.com/dshills/docmark/document"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	src, err := readInput(opts.Input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	doc, err := decode(opts.From, src)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	out, err := encode(opts.To, doc)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	if err := writeOutput(opts.Output, out); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

type options struct {
	From   string
	To     string
	Input  string
	Output string
}

func parseFlags() options {
	var opts options
	var showVersion bool

	flag.StringVar(&opts.From, "from", "", "Input format (markdown, json); default derived from the input file extension")
	flag.StringVar(&opts.From, "f", "", "Input format (shorthand)")
	flag.StringVar(&opts.To, "to", "markdown", "Output format (markdown, html, json)")
	flag.StringVar(&opts.To, "t", "markdown", "Output format (shorthand)")
	flag.StringVar(&opts.Output, "o", "", "Output file (default stdout)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "docmark - structured document format converter\n\n")
		fmt.Fprintf(os.Stderr, "Usage: docmark [options] [file]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  docmark -t html notes.md        Render markdown as HTML\n")
		fmt.Fprintf(os.Stderr, "  docmark -t json notes.md        Export the interchange form\n")
		fmt.Fprintf(os.Stderr, "  docmark -f json -t markdown doc.json\n")
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("docmark %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	opts.Input = flag.Arg(0)
	if opts.From == "" {
		opts.From = "markdown"
		if strings.EqualFold(filepath.Ext(opts.Input), ".json") {
			opts.From = "json"
		}
	}
	return opts
}

func readInput(path string) ([]byte, error) {
	if path == "" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func decode(format string, src []byte) (*document.Document, error) {
	switch format {
	case "markdown", "md":
		return convert.FromMarkdown(string(src))
	case "json":
		return convert.FromJSON(src)
	default:
		return nil, fmt.Errorf("unknown input format %q", format)
	}
}

func encode(format string, doc *document.Document) ([]byte, error) {
	switch format {
	case "markdown", "md":
		out, err := convert.ToMarkdown(doc)
		if err != nil {
			return nil, err
		}
		return []byte(out + "\n"), nil
	case "html":
		return []byte(convert.ToHTML(doc) + "\n"), nil
	case "json":
		return convert.ToJSON(doc)
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}

func writeOutput(path string, data []byte) error {
	if path == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
