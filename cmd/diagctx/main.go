package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/bft-labs/diagctx/internal/cliconfig"
	"github.com/bft-labs/diagctx/internal/linecount"
	"github.com/bft-labs/diagctx/internal/watch"
	"github.com/bft-labs/diagctx/pkg/diagctx"
	"github.com/bft-labs/diagctx/pkg/log"
)

const longHelp = `
Count uppercase ASCII letters per line and show the diagnostic context
stack whenever a line holds a non-ASCII byte.

Each nested step pushes a context message on a bounded stack. A non-ASCII
byte aborts the line with a panic; the line loop recovers, prints every
frame that led to the failure (frames over capacity show as
"??? (no memory available)") and repairs the stack before the next line.

Without input files the built-in sample text is processed.
`

var exampleUsage = strings.TrimSpace(`
  diagctx
  diagctx --capacity 10 notes.txt
  diagctx --watch --debounce 250ms notes.txt
  diagctx --config $HOME/.diagctx/config.toml
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	cfg := cliconfig.DefaultConfig()
	var cfgPath string

	root := &cobra.Command{
		Use:           "diagctx [file...]",
		Short:         "Count uppercase letters per line with a diagnostic context trace on errors",
		Long:          strings.TrimSpace(longHelp),
		Example:       exampleUsage,
		Version:       fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgFile := cfgPath
			if cfgFile == "" {
				cfgFile = cliconfig.DefaultConfigPath()
			}

			changed := map[string]bool{}
			cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })
			if len(args) > 0 {
				cfg.Inputs = args
				changed["input"] = true
			}

			if cfgFile != "" && cliconfig.FileExists(cfgFile) {
				fc, err := cliconfig.LoadFileConfig(cfgFile)
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				if err := cliconfig.ApplyFileConfig(&cfg, fc, changed); err != nil {
					return err
				}
			}
			if err := cliconfig.ApplyEnvConfig(&cfg, changed); err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			return run(cmd.Context(), cfg)
		},
	}

	root.Flags().StringVar(&cfgPath, "config", "", "path to config file (default: $HOME/.diagctx/config.toml)")
	root.Flags().IntVar(&cfg.Capacity, "capacity", cfg.Capacity, "number of context messages stored; deeper frames are dropped")
	root.Flags().StringVar(&cfg.Indent, "indent", cfg.Indent, "indentation unit of error traces")
	root.Flags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")
	root.Flags().BoolVar(&cfg.FailFast, "fail-fast", cfg.FailFast, "panic on context stack misuse instead of logging it")
	root.Flags().BoolVar(&cfg.Watch, "watch", cfg.Watch, "re-run when an input file changes")
	root.Flags().DurationVar(&cfg.Debounce, "debounce", cfg.Debounce, "quiet period before re-running in watch mode")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := root.ExecuteContext(ctx); err != nil {
		lvl, _ := cfg.Level()
		cliconfig.NewLogger(os.Stderr, lvl).Error("diagctx", log.Err(err))
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg cliconfig.Config) error {
	lvl, err := cfg.Level()
	if err != nil {
		return err
	}
	logger := cliconfig.NewLogger(os.Stderr, lvl)
	logger.Debug("configuration",
		log.Int("capacity", cfg.Capacity),
		log.Bool("fail_fast", cfg.FailFast),
		log.Bool("watch", cfg.Watch),
		log.Any("inputs", cfg.Inputs),
	)

	policy := diagctx.PolicyReturn
	if cfg.FailFast {
		policy = diagctx.PolicyPanic
	}
	counter, err := linecount.NewCounter(cfg.Capacity,
		linecount.WithIndent(cfg.Indent),
		linecount.WithLogger(logger),
		linecount.WithPolicy(policy),
	)
	if err != nil {
		return err
	}
	defer counter.ReportPending(os.Stderr)

	if _, err := counter.Run(cfg.Inputs); err != nil {
		return err
	}
	if !cfg.Watch {
		return nil
	}

	w, err := watch.New(cfg.Inputs, func(path string) {
		if _, err := counter.Run([]string{path}); err != nil {
			logger.Warn("re-run failed", log.String("path", path), log.Err(err))
		}
	}, watch.Config{Debounce: cfg.Debounce, Logger: logger})
	if err != nil {
		return err
	}
	return w.Run(ctx)
}
