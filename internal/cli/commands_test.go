package cli

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/todolist/internal/model"
)

type harness struct {
	t       *testing.T
	dataDir string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	for _, k := range []string{
		"TODOLIST_STORAGE_KEY", "TODOLIST_BACKEND", "TODOLIST_DATA_DIR",
		"TODOLIST_DB", "TODOLIST_THEME", "TODOLIST_LOG_LEVEL",
	} {
		t.Setenv(k, "")
	}
	t.Setenv("TODOLIST_THEME", "mono")
	return &harness{t: t, dataDir: t.TempDir()}
}

// run executes the CLI against the harness data dir.
func (h *harness) run(stdin string, args ...string) (code int, stdout, stderr string) {
	h.t.Helper()
	var out, errOut bytes.Buffer
	full := append([]string{"--data-dir", h.dataDir}, args...)
	code = Execute(context.Background(), full, strings.NewReader(stdin), &out, &errOut)
	return code, out.String(), errOut.String()
}

func (h *harness) stored(key string) []model.Todo {
	h.t.Helper()
	b, err := os.ReadFile(filepath.Join(h.dataDir, key+".json"))
	require.NoError(h.t, err)
	var todos []model.Todo
	require.NoError(h.t, json.Unmarshal(b, &todos))
	return todos
}

func TestAddListToggleFlow(t *testing.T) {
	h := newHarness(t)

	code, out, _ := h.run("", "add", "buy", "milk")
	require.Equal(t, ExitSuccess, code)
	assert.Contains(t, out, "added")

	code, _, _ = h.run("", "add", "walk dog")
	require.Equal(t, ExitSuccess, code)

	todos := h.stored("todos")
	require.Len(t, todos, 2)
	assert.Equal(t, "buy milk", todos[0].Text)
	assert.False(t, todos[0].Completed)

	code, out, _ = h.run("", "toggle", todos[0].ID)
	require.Equal(t, ExitSuccess, code)
	assert.Contains(t, out, "buy milk is done")
	assert.True(t, h.stored("todos")[0].Completed)

	code, _, _ = h.run("", "toggle", "2")
	require.Equal(t, ExitSuccess, code)
	assert.True(t, h.stored("todos")[1].Completed)

	code, out, _ = h.run("", "ls")
	require.Equal(t, ExitSuccess, code)
	assert.Contains(t, out, "buy milk")
	assert.Contains(t, out, "walk dog")
	assert.Contains(t, out, "100%")
}

func TestListHideCompletedKeepsIndexes(t *testing.T) {
	h := newHarness(t)
	h.run("", "add", "first")
	h.run("", "add", "second")
	h.run("", "toggle", "1")

	code, out, _ := h.run("", "ls", "--hide-completed")
	require.Equal(t, ExitSuccess, code)
	assert.NotContains(t, out, "first")
	assert.Contains(t, out, " 2.")
	assert.Contains(t, out, "second")

	code, out, _ = h.run("", "ls", "--group")
	require.Equal(t, ExitSuccess, code)
	assert.Contains(t, out, "Pending")
	assert.Contains(t, out, "Done")
}

func TestListTruncatesByWidth(t *testing.T) {
	h := newHarness(t)
	short := strings.Repeat("é", 45)
	long := strings.Repeat("日", 50)
	h.run("", "add", short)
	h.run("", "add", long)

	code, out, _ := h.run("", "ls")
	require.Equal(t, ExitSuccess, code)
	require.True(t, utf8.ValidString(out), "ls output is not valid UTF-8")
	assert.Contains(t, out, short, "text narrower than the limit is printed whole")
	assert.NotContains(t, out, long)
	assert.Contains(t, out, strings.Repeat("日", 38)+"...")
	assert.NotContains(t, out, strings.Repeat("日", 39))

	assert.Equal(t, long, h.stored("todos")[1].Text, "only the display is cut")
}

func TestListJSON(t *testing.T) {
	h := newHarness(t)
	h.run("", "add", "a")

	code, out, _ := h.run("", "--format", "json", "ls")
	require.Equal(t, ExitSuccess, code)

	var resp struct {
		Status string       `json:"status"`
		Data   []model.Todo `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "a", resp.Data[0].Text)
}

func TestSeparateKeysAreSeparateLists(t *testing.T) {
	h := newHarness(t)
	h.run("", "--key", "work", "add", "ship it")
	h.run("", "--key", "home", "add", "water plants")

	assert.Len(t, h.stored("work"), 1)
	assert.Equal(t, "water plants", h.stored("home")[0].Text)
}

func TestClear(t *testing.T) {
	h := newHarness(t)
	h.run("", "add", "a")

	code, out, _ := h.run("n\n", "clear")
	require.Equal(t, ExitSuccess, code)
	assert.Contains(t, out, "cancelled")
	assert.Len(t, h.stored("todos"), 1)

	code, _, _ = h.run("y\n", "clear")
	require.Equal(t, ExitSuccess, code)
	assert.Empty(t, h.stored("todos"))

	code, _, _ = h.run("", "clear", "--yes")
	require.Equal(t, ExitSuccess, code)
	assert.Empty(t, h.stored("todos"))
}

func TestExport(t *testing.T) {
	h := newHarness(t)

	code, out, _ := h.run("", "export")
	require.Equal(t, ExitSuccess, code)
	assert.Equal(t, "[]\n", out)

	h.run("", "add", "a")
	code, out, _ = h.run("", "export")
	require.Equal(t, ExitSuccess, code)
	assert.True(t, strings.HasPrefix(out, `[{"id":"`))
}

func TestTable(t *testing.T) {
	h := newHarness(t)
	h.run("", "add", "a task")

	code, out, _ := h.run("", "table")
	require.Equal(t, ExitSuccess, code)
	assert.Contains(t, out, "Task")
	assert.Contains(t, out, "a task")
	assert.Contains(t, out, "Updated at:")
}

func TestTableWatchNeedsFileBackend(t *testing.T) {
	h := newHarness(t)
	code, _, errOut := h.run("", "--backend", "memory", "table", "--watch")
	assert.Equal(t, ExitUsage, code)
	assert.Contains(t, errOut, "file backend")
}

func TestMalformedDataFails(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, os.WriteFile(filepath.Join(h.dataDir, "bad-key.json"), []byte("not json"), 0o644))

	code, _, errOut := h.run("", "--key", "bad-key", "ls")
	assert.Equal(t, ExitFailure, code)
	assert.Contains(t, errOut, "malformed todo data")

	code, out, _ := h.run("", "--key", "bad-key", "--format", "json", "add", "x")
	assert.Equal(t, ExitFailure, code)
	assert.Contains(t, out, `"code":"DATA_FORMAT"`)

	b, err := os.ReadFile(filepath.Join(h.dataDir, "bad-key.json"))
	require.NoError(t, err)
	assert.Equal(t, "not json", string(b), "bad data is never overwritten")
}

func TestEmptyStorageKeyInConfig(t *testing.T) {
	h := newHarness(t)
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("storage_key: \"\"\n"), 0o644))

	code, _, errOut := h.run("", "--config", cfgPath, "ls")
	assert.Equal(t, ExitUsage, code)
	assert.Contains(t, errOut, "StorageKey")
}

func TestUsageErrors(t *testing.T) {
	h := newHarness(t)
	tests := []struct {
		name string
		args []string
	}{
		{"unknown command", []string{"frobnicate"}},
		{"unknown config command", []string{"config", "frobnicate"}},
		{"add without text", []string{"add"}},
		{"toggle without arg", []string{"toggle"}},
		{"toggle unknown id", []string{"toggle", "nope"}},
		{"toggle index out of range", []string{"toggle", "3"}},
		{"bad format", []string{"--format", "xml", "ls"}},
		{"unknown flag", []string{"ls", "--nope"}},
		{"bad backend", []string{"--backend", "redis", "ls"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, _ := h.run("", tt.args...)
			assert.Equal(t, ExitUsage, code)
		})
	}
}

func TestRootWithoutCommandPrintsHelp(t *testing.T) {
	h := newHarness(t)
	code, out, _ := h.run("")
	assert.Equal(t, ExitSuccess, code)
	assert.Contains(t, out, "Available Commands")
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"yes", "y\n", true},
		{"yes word", " YES \n", true},
		{"no", "n\n", false},
		{"empty", "\n", false},
		{"eof", "", false},
		{"no trailing newline", "y", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var prompt bytes.Buffer
			got := confirm(bufio.NewScanner(strings.NewReader(tt.input)), &prompt, "sure? ")
			assert.Equal(t, tt.want, got)
			assert.Equal(t, "sure? ", prompt.String())
		})
	}
}

func TestConfirmReadsOneLinePerAnswer(t *testing.T) {
	in := bufio.NewScanner(strings.NewReader("n\ny\n"))
	assert.False(t, confirm(in, io.Discard, "first? "))
	assert.True(t, confirm(in, io.Discard, "second? "))
	assert.False(t, confirm(in, io.Discard, "third? "))
}

func TestConfigInit(t *testing.T) {
	h := newHarness(t)
	cfgPath := filepath.Join(t.TempDir(), "nested", "config.yaml")

	code, out, _ := h.run("", "--config", cfgPath, "--key", "groceries", "config", "init")
	require.Equal(t, ExitSuccess, code)
	assert.Contains(t, out, cfgPath)

	b, err := os.ReadFile(cfgPath)
	require.NoError(t, err)
	assert.Contains(t, string(b), "storage_key: groceries")

	code, _, errOut := h.run("", "--config", cfgPath, "config", "init")
	assert.Equal(t, ExitFailure, code)
	assert.Contains(t, errOut, "already exists")

	code, _, _ = h.run("", "--config", cfgPath, "config", "init", "--force")
	require.Equal(t, ExitSuccess, code)
	b, err = os.ReadFile(cfgPath)
	require.NoError(t, err)
	assert.Contains(t, string(b), "storage_key: todos")

	code, out, _ = h.run("", "--config", cfgPath, "config", "path")
	require.Equal(t, ExitSuccess, code)
	assert.Equal(t, cfgPath+"\n", out)
}

func TestConfigInitIsUsedByLaterCommands(t *testing.T) {
	h := newHarness(t)
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")

	code, _, _ := h.run("", "--config", cfgPath, "--key", "work", "config", "init")
	require.Equal(t, ExitSuccess, code)

	code, _, _ = h.run("", "--config", cfgPath, "add", "ship it")
	require.Equal(t, ExitSuccess, code)
	assert.Equal(t, "ship it", h.stored("work")[0].Text)
}

func TestSQLiteBackend(t *testing.T) {
	h := newHarness(t)
	db := filepath.Join(t.TempDir(), "todos.db")

	code, _, _ := h.run("", "--backend", "sqlite", "--db", db, "add", "in sqlite")
	require.Equal(t, ExitSuccess, code)

	code, out, _ := h.run("", "--backend", "sqlite", "--db", db, "export")
	require.Equal(t, ExitSuccess, code)
	assert.Contains(t, out, `"text":"in sqlite"`)
}
