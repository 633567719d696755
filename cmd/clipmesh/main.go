package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/hpungsan/clipmesh/internal/clipboard"
	"github.com/hpungsan/clipmesh/internal/config"
	"github.com/hpungsan/clipmesh/internal/history"
	"github.com/hpungsan/clipmesh/internal/logging"
)

// Version is set via -ldflags at build time.
var Version = "dev"

// isHelpOrVersion returns true if the user is requesting help or version info.
func isHelpOrVersion() bool {
	if len(os.Args) < 2 {
		return false
	}
	arg := os.Args[1]
	return arg == "--help" || arg == "-h" || arg == "--version" || arg == "-v" || arg == "help"
}

func main() {
	// --help/--version need no data directory.
	if isHelpOrVersion() {
		app := newCLIApp(&appEnv{logger: zap.NewNop(), stdout: os.Stdout, stdin: os.Stdin})
		if err := app.Run(os.Args); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	baseDir, err := config.DefaultBaseDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: could not determine data directory: %v\n", err)
		os.Exit(1)
	}

	if err := os.MkdirAll(baseDir, 0700); err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to create data directory: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load(baseDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to initialize logging: %v\n", err)
		os.Exit(1)
	}

	env := &appEnv{
		baseDir: baseDir,
		cfg:     cfg,
		logger:  logger,
		stdout:  os.Stdout,
		stdin:   os.Stdin,
		openHistory: func() (*history.Store, error) {
			return history.Open(history.PathIn(baseDir))
		},
		openClipboard: func() (clipboard.Provider, error) {
			return clipboard.NewSystem()
		},
	}

	app := newCLIApp(env)
	err = app.Run(os.Args)
	_ = logging.Sync(logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
