package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/hpungsan/clipmesh/internal/clip"
	"github.com/hpungsan/clipmesh/internal/clipboard"
	"github.com/hpungsan/clipmesh/internal/config"
	"github.com/hpungsan/clipmesh/internal/errors"
	"github.com/hpungsan/clipmesh/internal/history"
	"github.com/hpungsan/clipmesh/internal/ops"
)

// newTestEnv returns an environment rooted in a temp dir, backed by an
// in-memory clipboard. Command output is captured in the returned buffer.
func newTestEnv(t *testing.T, cb clipboard.Provider) (*appEnv, *bytes.Buffer) {
	t.Helper()
	baseDir := t.TempDir()
	out := &bytes.Buffer{}
	return &appEnv{
		baseDir: baseDir,
		cfg:     config.DefaultConfig(),
		logger:  zaptest.NewLogger(t),
		stdout:  out,
		stdin:   strings.NewReader(""),
		openHistory: func() (*history.Store, error) {
			return history.Open(history.PathIn(baseDir))
		},
		openClipboard: func() (clipboard.Provider, error) {
			return cb, nil
		},
	}, out
}

func runApp(ctx context.Context, env *appEnv, args ...string) error {
	return newCLIApp(env).RunContext(ctx, append([]string{"clipmesh"}, args...))
}

// seed adds items directly to the history under env, oldest first.
func seed(t *testing.T, env *appEnv, items ...clip.Item) {
	t.Helper()
	store, err := env.openHistory()
	require.NoError(t, err)
	for _, item := range items {
		require.NoError(t, store.Add(item))
	}
}

// runMonitorUntil starts the monitor with args and stops it once cond holds.
func runMonitorUntil(t *testing.T, env *appEnv, cond func() bool, args ...string) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- runApp(ctx, env, args...) }()

	require.Eventually(t, cond, 5*time.Second, 20*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("monitor did not stop after cancel")
	}
}

func hasOneItem(env *appEnv) func() bool {
	return func() bool {
		store, err := env.openHistory()
		return err == nil && store.Len() == 1
	}
}

func TestMonitor_CapturesNumber(t *testing.T) {
	cb := clipboard.NewMemory()
	require.NoError(t, cb.WriteText("1000000"))
	env, out := newTestEnv(t, cb)

	runMonitorUntil(t, env, hasOneItem(env), "monitor")

	require.NoError(t, runApp(context.Background(), env, "list", "--limit", "1"))
	text := out.String()
	assert.Contains(t, text, "Clipboard History (last 1 items):")
	assert.Contains(t, text, strings.Repeat("─", 80))
	assert.Contains(t, text, "] Number - 1000000")
	assert.Contains(t, text, "    Transformations: 1")

	store, err := env.openHistory()
	require.NoError(t, err)
	item := store.Get(1)[0]
	require.Len(t, item.Transformations, 1)
	assert.Equal(t, "1,000,000", item.Transformations[0].Result)

	out.Reset()
	require.NoError(t, runApp(context.Background(), env, "show", item.ID))
	text = out.String()
	assert.Contains(t, text, "Item Details:")
	assert.Contains(t, text, "ID: "+item.ID)
	assert.Contains(t, text, "Type: Number")
	assert.Contains(t, text, "Device: "+item.DeviceID)
	assert.Contains(t, text, "1. NumberFormat -> 1,000,000")
}

func TestMonitor_DefaultAction(t *testing.T) {
	cb := clipboard.NewMemory()
	require.NoError(t, cb.WriteText("https://example.com/page"))
	env, _ := newTestEnv(t, cb)

	runMonitorUntil(t, env, hasOneItem(env))

	store, err := env.openHistory()
	require.NoError(t, err)
	assert.Equal(t, clip.TypeURL, store.Get(1)[0].ContentType)
}

func TestMonitor_ClipboardUnavailable(t *testing.T) {
	env, _ := newTestEnv(t, nil)
	env.openClipboard = func() (clipboard.Provider, error) {
		return nil, errors.NewClipboardUnavailable("no clipboard utility available on this system")
	}

	err := runApp(context.Background(), env, "monitor")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "[CLIPBOARD]")
}

func TestCorruptHistoryIsFatal(t *testing.T) {
	env, _ := newTestEnv(t, clipboard.NewMemory())
	require.NoError(t, os.WriteFile(history.PathIn(env.baseDir), []byte("{not json"), 0600))

	for _, args := range [][]string{{"monitor"}, {"list"}, {"search", "x"}, {"show", "x"}} {
		err := runApp(context.Background(), env, args...)
		require.Error(t, err, "args %v", args)
		assert.Contains(t, err.Error(), "[CORRUPT_HISTORY]", "args %v", args)
	}
}

func TestUnknownCommand(t *testing.T) {
	env, _ := newTestEnv(t, clipboard.NewMemory())
	err := runApp(context.Background(), env, "frobnicate")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown command")
}

func TestList_Empty(t *testing.T) {
	env, out := newTestEnv(t, nil)
	require.NoError(t, runApp(context.Background(), env, "list"))
	assert.Equal(t, "No clipboard history found.\n", out.String())
}

func TestList_DefaultLimitAndOrder(t *testing.T) {
	env, out := newTestEnv(t, nil)
	var items []clip.Item
	for i := 0; i < 12; i++ {
		items = append(items, clip.NewItem("entry "+string(rune('a'+i)), "dev"))
	}
	seed(t, env, items...)

	require.NoError(t, runApp(context.Background(), env, "list"))
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	assert.Equal(t, "Clipboard History (last 10 items):", lines[0])
	assert.Contains(t, lines[2], " 1. [")
	assert.Contains(t, lines[2], "Text - entry l")
	assert.Contains(t, lines[11], "10. [")
	assert.Contains(t, lines[11], "Text - entry c")
}

func TestList_PreviewTruncated(t *testing.T) {
	env, out := newTestEnv(t, nil)
	seed(t, env, clip.NewItem(strings.Repeat("x", 60)+"\nsecond line", "dev"))

	require.NoError(t, runApp(context.Background(), env, "list"))
	assert.Contains(t, out.String(), "Text - "+strings.Repeat("x", 50)+"...\n")
}

func TestList_JSON(t *testing.T) {
	env, out := newTestEnv(t, nil)
	seed(t, env, clip.NewItem("one", "dev"), clip.NewItem("two", "dev"))

	require.NoError(t, runApp(context.Background(), env, "list", "--json", "-l", "1"))

	var output ops.ListOutput
	require.NoError(t, json.Unmarshal(out.Bytes(), &output))
	require.Len(t, output.Items, 1)
	assert.Equal(t, "two", output.Items[0].Preview)
	assert.Equal(t, 1, output.Limit)
}

func TestSearch(t *testing.T) {
	env, out := newTestEnv(t, nil)
	seed(t, env,
		clip.NewItem("Hello World", "dev"),
		clip.NewItem("nothing here", "dev"),
		clip.NewItem("say hello", "dev"),
	)

	require.NoError(t, runApp(context.Background(), env, "search", "HELLO"))
	text := out.String()
	assert.Contains(t, text, "Search results for 'HELLO' (2 items):")
	first := strings.Index(text, "say hello")
	second := strings.Index(text, "Hello World")
	require.True(t, first > 0 && second > 0)
	assert.Less(t, first, second, "newest match first")
	assert.NotContains(t, text, "nothing here")
}

func TestSearch_NoMatches(t *testing.T) {
	env, out := newTestEnv(t, nil)
	seed(t, env, clip.NewItem("alpha", "dev"))

	require.NoError(t, runApp(context.Background(), env, "search", "omega"))
	assert.Equal(t, "No items found matching 'omega'\n", out.String())
}

func TestSearch_MissingQuery(t *testing.T) {
	env, _ := newTestEnv(t, nil)
	err := runApp(context.Background(), env, "search")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "[INVALID_REQUEST]")
}

func TestShow_NotFound(t *testing.T) {
	env, out := newTestEnv(t, nil)
	require.NoError(t, runApp(context.Background(), env, "show", "01MISSING"))
	assert.Equal(t, "Item with ID '01MISSING' not found\n", out.String())

	err := runApp(context.Background(), env, "show", "--json", "01MISSING")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "[NOT_FOUND]")
}

func TestShow_TagsAndContent(t *testing.T) {
	env, out := newTestEnv(t, nil)
	item := clip.NewItem("line one\nline two", "dev")
	item.Tags = []string{"work", "urgent"}
	seed(t, env, item)

	require.NoError(t, runApp(context.Background(), env, "show", item.ID))
	text := out.String()
	assert.Contains(t, text, "line one\nline two\n")
	assert.Contains(t, text, "\nTags: work, urgent\n")
	assert.NotContains(t, text, "Transformations:")
}

func TestShow_JSON(t *testing.T) {
	env, out := newTestEnv(t, nil)
	item := clip.NewItem("{\"a\": 1}", "dev")
	seed(t, env, item)

	require.NoError(t, runApp(context.Background(), env, "show", "--json", item.ID))
	var got clip.Item
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, item.ID, got.ID)
	assert.Equal(t, clip.TypeJSON, got.ContentType)
}

func TestExport(t *testing.T) {
	env, out := newTestEnv(t, nil)
	seed(t, env, clip.NewItem("a", "dev"), clip.NewItem("b", "dev"))

	require.NoError(t, runApp(context.Background(), env, "export"))
	var output ops.ExportOutput
	require.NoError(t, json.Unmarshal(out.Bytes(), &output))
	assert.Equal(t, 2, output.Count)
	assert.Equal(t, config.ExportsDir(env.baseDir), filepath.Dir(output.Path))

	err := runApp(context.Background(), env, "export", "--path", filepath.Join(t.TempDir(), "x.jsonl"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "[INVALID_REQUEST]")
}

func TestMCP_ExitsOnClosedStdin(t *testing.T) {
	env, _ := newTestEnv(t, nil)

	done := make(chan error, 1)
	go func() { done <- runApp(context.Background(), env, "mcp") }()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("mcp command did not exit after stdin closed")
	}
}

func TestOutputError(t *testing.T) {
	err := outputError(errors.NewNotFound("abc"))
	assert.Equal(t, "[NOT_FOUND] item not found: abc", err.Error())

	err = outputError(os.ErrClosed)
	assert.Equal(t, os.ErrClosed.Error(), err.Error())
}
