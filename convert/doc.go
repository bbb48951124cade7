// Package convert moves documents between the in-memory tree and external
// representations: markdown ingestion driven by a flat lexical event
// stream, plus markdown, HTML and JSON interchange rendering.
//
// Ingestion is split in two. Tokenize flattens the goldmark parse tree
// into Events; Ingest consumes any Events stream, so producers other than
// the markdown tokenizer can feed the same state machine through
// NewEvents.
package convert
