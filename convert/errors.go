package convert

import "fmt"

// IngestError reports a malformed lexical event stream. Index is the
// position of the offending event in the stream.
type IngestError struct {
	Msg   string
	Index int
}

func (e *IngestError) Error() string {
	return fmt.Sprintf("ingest: %s (event %d)", e.Msg, e.Index)
}

// ParseError reports malformed source text handed to a converter. Format
// names the input format ("json", "toml", "markdown").
type ParseError struct {
	Format string
	Msg    string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %s", e.Format, e.Msg)
}
