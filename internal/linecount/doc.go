// Package linecount is the demo program behind the diagctx CLI: it counts
// uppercase ASCII letters per line and aborts a line with a panic as soon
// as it meets a non-ASCII byte. The line loop recovers, prints the context
// stack that led to the failure and reconciles the stack before moving on.
package linecount
