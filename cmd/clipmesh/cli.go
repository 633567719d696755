package main

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/hpungsan/clipmesh/internal/clip"
	"github.com/hpungsan/clipmesh/internal/clipboard"
	"github.com/hpungsan/clipmesh/internal/config"
	"github.com/hpungsan/clipmesh/internal/errors"
	"github.com/hpungsan/clipmesh/internal/history"
	"github.com/hpungsan/clipmesh/internal/mcp"
	"github.com/hpungsan/clipmesh/internal/monitor"
	"github.com/hpungsan/clipmesh/internal/ops"
	"github.com/hpungsan/clipmesh/internal/transform"
	"github.com/hpungsan/clipmesh/internal/ui"
)

const timestampLayout = "2006-01-02 15:04:05"

// appEnv carries everything a command needs. History and clipboard are opened
// lazily so that help output works without a data directory.
type appEnv struct {
	baseDir       string
	cfg           *config.Config
	logger        *zap.Logger
	stdout        io.Writer
	stdin         io.Reader
	openHistory   func() (*history.Store, error)
	openClipboard func() (clipboard.Provider, error)
}

// newCLIApp creates the CLI application with all commands.
func newCLIApp(env *appEnv) *cli.App {
	app := &cli.App{
		Name:    "clipmesh",
		Usage:   "Clipboard history manager",
		Version: Version,
		Writer:  env.stdout,
		Commands: []*cli.Command{
			monitorCmd(env),
			listCmd(env),
			searchCmd(env),
			showCmd(env),
			exportCmd(env),
			mcpCmd(env),
		},
		// No subcommand runs the monitor.
		Action: func(c *cli.Context) error {
			if c.NArg() > 0 {
				return cli.Exit(fmt.Sprintf("unknown command %q; run 'clipmesh --help' for usage", c.Args().First()), 1)
			}
			return runMonitor(c.Context, env)
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// monitorCmd creates the monitor command.
func monitorCmd(env *appEnv) *cli.Command {
	return &cli.Command{
		Name:  "monitor",
		Usage: "Watch the clipboard and record every new value (default)",
		Action: func(c *cli.Context) error {
			return runMonitor(c.Context, env)
		},
	}
}

// runMonitor loads the history and clipboard (both fatal on failure), then
// polls until SIGINT/SIGTERM or ctx cancellation.
func runMonitor(parent context.Context, env *appEnv) error {
	store, err := env.openHistory()
	if err != nil {
		return outputError(err)
	}
	cb, err := env.openClipboard()
	if err != nil {
		return outputError(err)
	}

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := ui.NewManager(env.logger).Initialize(ctx); err != nil {
		return outputError(err)
	}

	env.logger.Info("starting clipboard monitor",
		zap.String("history", store.Path()),
		zap.Int("items", store.Len()),
	)
	m := monitor.New(cb, transform.Default(env.logger), store, clip.NewDeviceID(), env.logger)
	return m.Run(ctx)
}

// listCmd creates the list command.
func listCmd(env *appEnv) *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List the most recent clipboard items",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "limit", Aliases: []string{"l"}, Value: ops.DefaultListLimit, Usage: "Number of items to show"},
			&cli.BoolFlag{Name: "json", Usage: "Print JSON instead of text"},
		},
		Action: func(c *cli.Context) error {
			store, err := env.openHistory()
			if err != nil {
				return outputError(err)
			}

			output := ops.List(store, ops.ListInput{Limit: c.Int("limit")})
			if c.Bool("json") {
				return outputJSON(env.stdout, output)
			}

			if len(output.Items) == 0 {
				fmt.Fprintln(env.stdout, "No clipboard history found.")
				return nil
			}
			fmt.Fprintf(env.stdout, "Clipboard History (last %d items):\n", len(output.Items))
			printSummaries(env.stdout, output.Items)
			return nil
		},
	}
}

// searchCmd creates the search command.
func searchCmd(env *appEnv) *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "Search clipboard history (case-insensitive substring)",
		ArgsUsage: "QUERY",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "json", Usage: "Print JSON instead of text"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				return outputError(errors.NewInvalidRequest("query is required"))
			}
			query := strings.Join(c.Args().Slice(), " ")

			store, err := env.openHistory()
			if err != nil {
				return outputError(err)
			}

			output, err := ops.Search(store, ops.SearchInput{Query: query})
			if err != nil {
				return outputError(err)
			}
			if c.Bool("json") {
				return outputJSON(env.stdout, output)
			}

			if output.Total == 0 {
				fmt.Fprintf(env.stdout, "No items found matching '%s'\n", query)
				return nil
			}
			fmt.Fprintf(env.stdout, "Search results for '%s' (%d items):\n", query, output.Total)
			printSummaries(env.stdout, output.Items)
			return nil
		},
	}
}

// showCmd creates the show command.
func showCmd(env *appEnv) *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "Show full details of one item",
		ArgsUsage: "ID",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "json", Usage: "Print JSON instead of text"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				return outputError(errors.NewInvalidRequest("id is required"))
			}
			id := c.Args().First()

			store, err := env.openHistory()
			if err != nil {
				return outputError(err)
			}

			item, err := ops.Show(store, ops.ShowInput{ID: id})
			if errors.Is(err, errors.ErrNotFound) && !c.Bool("json") {
				fmt.Fprintf(env.stdout, "Item with ID '%s' not found\n", id)
				return nil
			}
			if err != nil {
				return outputError(err)
			}
			if c.Bool("json") {
				return outputJSON(env.stdout, item)
			}

			printItem(env.stdout, item)
			return nil
		},
	}
}

// exportCmd creates the export command.
func exportCmd(env *appEnv) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Export the whole history to a JSONL file",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "path", Aliases: []string{"p"}, Usage: "Destination .jsonl file (default: <data dir>/exports/history-<timestamp>.jsonl)"},
		},
		Action: func(c *cli.Context) error {
			store, err := env.openHistory()
			if err != nil {
				return outputError(err)
			}

			output, err := ops.Export(c.Context, store, env.cfg, config.ExportsDir(env.baseDir), ops.ExportInput{
				Path: c.String("path"),
			})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(env.stdout, output)
		},
	}
}

// mcpCmd creates the mcp command.
func mcpCmd(env *appEnv) *cli.Command {
	return &cli.Command{
		Name:  "mcp",
		Usage: "Serve history queries as MCP tools over stdio",
		Action: func(c *cli.Context) error {
			store, err := env.openHistory()
			if err != nil {
				return outputError(err)
			}
			watcher, err := store.Watch(env.logger)
			if err != nil {
				return outputError(errors.NewInternal(err))
			}

			s := mcp.NewServer(store, env.cfg, config.ExportsDir(env.baseDir), Version, env.logger)

			ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
			defer stop()
			ctx, cancel := context.WithCancel(ctx)
			defer cancel()

			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				return watcher.Run(gctx)
			})
			g.Go(func() error {
				// Closing stdin ends the session and stops the watcher.
				defer cancel()
				err := mcp.Serve(gctx, s, env.stdin, env.stdout)
				if stderrors.Is(err, context.Canceled) {
					return nil
				}
				return err
			})
			return g.Wait()
		},
	}
}

// printSummaries renders list and search results.
func printSummaries(w io.Writer, items []ops.Summary) {
	fmt.Fprintln(w, strings.Repeat("─", 80))
	for i, s := range items {
		fmt.Fprintf(w, "%2d. [%s] %s - %s\n", i+1, s.Timestamp.Format(timestampLayout), s.ContentType, s.Preview)
		if s.Transformations > 0 {
			fmt.Fprintf(w, "    Transformations: %d\n", s.Transformations)
		}
	}
}

// printItem renders the show output.
func printItem(w io.Writer, item *clip.Item) {
	fmt.Fprintln(w, "Item Details:")
	fmt.Fprintf(w, "ID: %s\n", item.ID)
	fmt.Fprintf(w, "Type: %s\n", item.ContentType)
	fmt.Fprintf(w, "Timestamp: %s\n", item.Timestamp.Format(timestampLayout))
	fmt.Fprintf(w, "Device: %s\n", item.DeviceID)
	fmt.Fprintln(w, "Content:")
	fmt.Fprintln(w, strings.Repeat("─", 40))
	fmt.Fprintln(w, item.Content)
	fmt.Fprintln(w, strings.Repeat("─", 40))

	if len(item.Transformations) > 0 {
		fmt.Fprintln(w, "\nTransformations:")
		for i, t := range item.Transformations {
			fmt.Fprintf(w, "%d. %s -> %s\n", i+1, t.TransformType, t.Result)
		}
	}

	if len(item.Tags) > 0 {
		fmt.Fprintf(w, "\nTags: %s\n", strings.Join(item.Tags, ", "))
	}
}

// outputJSON writes result to w as indented JSON.
func outputJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError formats error for CLI.
func outputError(err error) error {
	if clipErr, ok := err.(*errors.ClipError); ok {
		return cli.Exit(fmt.Sprintf("[%s] %s", clipErr.Code, clipErr.Message), 1)
	}
	return cli.Exit(err.Error(), 1)
}
