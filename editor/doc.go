// Package editor provides command-based editing over a document tree with
// bounded undo/redo history and atomic transactions.
//
// Every mutation is a Command that captures enough prior state during
// Execute for Undo to restore a structurally identical tree. The Editor
// owns the document and the history stacks; executing a new command clears
// the redo stack and evicts the oldest history entry once the configured
// bound is reached. Transactions run a batch of commands against the live
// document and either commit them as a single undo unit or roll every step
// back in reverse order.
package editor
