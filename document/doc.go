// Package document defines the typed node tree at the core of a structured
// document: block and inline node variants, the document container with its
// metadata, path-based node addressing, and the anchor/focus selection
// model. It also provides the primitive text operations (insert, delete,
// format, split) that editing commands build on.
//
// The package holds pure data and invertible primitives only; undoable
// editing lives in the editor package and markup conversion in convert.
package document
