// Package log provides the logging abstraction used by diagctx.
//
// The core stack only logs contract violations, through
// the Logger interface defined here. The default is a no-op logger, so a
// stack built without WithLogger never writes anything.
//
// # Usage
//
// Wrap a zerolog logger:
//
//	logger := log.NewZerologAdapterWithLogger(zerolog.New(os.Stderr))
//	stack, err := diagctx.New[Message](8, diagctx.WithLogger[Message](logger))
//
// Or build a console logger for a terminal:
//
//	logger := log.NewConsoleLogger(os.Stderr, zerolog.InfoLevel, true)
//
// Implement the Logger interface to plug in any other logging library.
//
// # Version
//
// Current version: 1.0.0
// Minimum compatible version: 1.0.0
package log
