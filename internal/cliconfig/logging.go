package cliconfig

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"

	"github.com/bft-labs/diagctx/pkg/log"
)

// NewLogger returns a console logger on f, colored only when f is a terminal.
func NewLogger(f *os.File, level zerolog.Level) *log.ZerologAdapter {
	color := isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	return log.NewConsoleLogger(f, level, color)
}
