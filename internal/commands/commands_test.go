package commands_test

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	log "github.com/sirupsen/logrus"

	"win98todo/internal/app"
	"win98todo/internal/bridge"
	"win98todo/internal/commands"
	"win98todo/internal/config"
	"win98todo/internal/exitcode"
	"win98todo/internal/persist"
	"win98todo/internal/task"
	"win98todo/internal/testutil"
)

func quietLogger() *log.Logger {
	l := log.New()
	l.SetOutput(io.Discard)
	return l
}

func sampleTasks() []task.Task {
	return []task.Task{
		{ID: 1, Text: "Buy milk", Priority: task.PriorityNormal},
		{ID: 2, Text: "Fix printer", Priority: task.PriorityHigh, DueDate: "2025-06-01"},
		{ID: 3, Text: "Water plants", Completed: true, Priority: task.PriorityLow},
	}
}

// newApp creates a session over an in-memory store holding tasks.
func newApp(t *testing.T, host *testutil.FakeHost, tasks []task.Task) *app.App {
	t.Helper()
	if host == nil {
		host = testutil.NewFakeHost()
	}
	a := app.New(context.Background(), app.Options{
		KV:     persist.NewMemoryKV(),
		Host:   host,
		Logger: quietLogger(),
	})
	a.Store().ReplaceAll(tasks)
	t.Cleanup(a.Stop)
	return a
}

func newConfig(t *testing.T, quiet bool) *config.Config {
	t.Helper()
	return &config.Config{
		Dir:      t.TempDir(),
		Quiet:    quiet,
		Logger:   quietLogger(),
		Settings: config.DefaultSettings(),
	}
}

// runCommand is a helper to run a command against a session.
func runCommand(t *testing.T, cmd commands.Command, a *app.App, args []string, quiet bool) (stdout, stderr string, code int) {
	t.Helper()

	var outBuf, errBuf bytes.Buffer
	code = cmd.Run(context.Background(), newConfig(t, quiet), a, args, &outBuf, &errBuf)
	return outBuf.String(), errBuf.String(), code
}

func texts(a *app.App) []string {
	var out []string
	for _, tk := range a.Store().Tasks() {
		out = append(out, tk.Text)
	}
	return out
}

func completed(t *testing.T, a *app.App, id int64) bool {
	t.Helper()
	tk, ok := a.Store().Find(id)
	if !ok {
		t.Fatalf("task %d missing", id)
	}
	return tk.Completed
}

func expectOK(t *testing.T, stdout, stderr string, code int) {
	t.Helper()
	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d (stderr %q)", exitcode.Success, code, stderr)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "ok\n" {
		t.Errorf("expected %q, got %q", "ok\n", stdout)
	}
}

func expectUserError(t *testing.T, stderr string, code int, want string) {
	t.Helper()
	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != want {
		t.Errorf("expected %q, got %q", want, stderr)
	}
}

// Tests for version, help and about
func TestVersionCommand(t *testing.T) {
	stdout, stderr, code := runCommand(t, &commands.VersionCmd{}, nil, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "win98todo 4.5b1\n" {
		t.Errorf("expected version output, got %q", stdout)
	}
}

func TestHelpCommand(t *testing.T) {
	stdout, _, code := runCommand(t, &commands.HelpCmd{}, nil, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	for _, want := range []string{
		"Usage:",
		"win98todo toggle <ref...>",
		"(alias: done)",
		"win98todo import <path>",
		"--storage <kind>",
	} {
		if !strings.Contains(stdout, want) {
			t.Errorf("expected help output to contain %q", want)
		}
	}
}

func TestAboutCommand(t *testing.T) {
	stdout, _, code := runCommand(t, &commands.AboutCmd{}, nil, nil, false)
	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "TODO List\nVersion 4.5b1\n" {
		t.Errorf("unexpected about output %q", stdout)
	}
}

// Tests for list command
func TestListCommand_Default(t *testing.T) {
	a := newApp(t, nil, sampleTasks())

	stdout, stderr, code := runCommand(t, &commands.ListCmd{}, a, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	testutil.GoldenString(t, "list_default", stdout)
}

func TestListCommand_FilterKeepsRowNumbers(t *testing.T) {
	a := newApp(t, nil, sampleTasks())

	cmd := &commands.ListCmd{}
	cmd.SetFilter("completed")
	stdout, _, code := runCommand(t, cmd, a, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	expected := "   3  [x] Water plants (low)\n" +
		"------------\n" +
		"2 active | 1 completed\n" +
		"Filter: Completed\n" +
		"3 total tasks\n"
	if stdout != expected {
		t.Errorf("expected %q, got %q", expected, stdout)
	}
}

func TestListCommand_Search(t *testing.T) {
	a := newApp(t, nil, sampleTasks())

	cmd := &commands.ListCmd{}
	cmd.SetSearch("MILK")
	stdout, _, _ := runCommand(t, cmd, a, nil, true)
	if stdout != "   2  [ ] Buy milk\n" {
		t.Errorf("unexpected output %q", stdout)
	}

	cmd = &commands.ListCmd{}
	cmd.SetSearch("nothing like this")
	stdout, _, _ = runCommand(t, cmd, a, nil, false)
	if !strings.HasPrefix(stdout, "No matching tasks found!\n") {
		t.Errorf("unexpected output %q", stdout)
	}
}

func TestListCommand_Empty(t *testing.T) {
	a := newApp(t, nil, nil)

	stdout, _, _ := runCommand(t, &commands.ListCmd{}, a, nil, false)
	expected := "No tasks yet. Add one above!\n" +
		"------------\n" +
		"0 active | 0 completed\n" +
		"Filter: All\n" +
		"0 total tasks\n"
	if stdout != expected {
		t.Errorf("expected %q, got %q", expected, stdout)
	}

	stdout, _, _ = runCommand(t, &commands.ListCmd{}, a, nil, true)
	if stdout != "" {
		t.Errorf("expected no output in quiet mode, got %q", stdout)
	}
}

func TestListCommand_InvalidFilter(t *testing.T) {
	a := newApp(t, nil, sampleTasks())
	cmd := &commands.ListCmd{}
	cmd.SetFilter("bogus")

	_, stderr, code := runCommand(t, cmd, a, nil, false)
	expectUserError(t, stderr, code, "error: invalid filter: bogus\n")
}

// Tests for add command
func TestAddCommand_Success(t *testing.T) {
	a := newApp(t, nil, sampleTasks())
	cmd := &commands.AddCmd{}
	cmd.SetPriority("HIGH")
	cmd.SetDue("2025-12-24")

	stdout, stderr, code := runCommand(t, cmd, a, []string{"Wrap", "presents"}, false)
	expectOK(t, stdout, stderr, code)

	tasks := a.Store().Tasks()
	if len(tasks) != 4 {
		t.Fatalf("expected 4 tasks, got %d", len(tasks))
	}
	got := tasks[3]
	if got.Text != "Wrap presents" || got.Priority != task.PriorityHigh || got.DueDate != "2025-12-24" {
		t.Errorf("unexpected task %#v", got)
	}
	if got.ID <= 3 {
		t.Errorf("expected a fresh id, got %d", got.ID)
	}
}

func TestAddCommand_Quiet(t *testing.T) {
	a := newApp(t, nil, nil)

	stdout, _, code := runCommand(t, &commands.AddCmd{}, a, []string{"Task"}, true)
	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "" {
		t.Errorf("expected no stdout in quiet mode, got %q", stdout)
	}
	if a.Store().Tasks()[0].Priority != task.PriorityNormal {
		t.Errorf("expected normal priority by default")
	}
}

func TestAddCommand_Rejects(t *testing.T) {
	tests := []struct {
		name     string
		priority string
		due      string
		args     []string
		want     string
	}{
		{"no text", "", "", nil, "error: task text required\n"},
		{"blank text", "", "", []string{"  "}, "error: task text required\n"},
		{"priority", "urgent", "", []string{"x"}, "error: invalid priority: urgent\n"},
		{"due", "", "tomorrow", []string{"x"}, "error: invalid due date: tomorrow\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newApp(t, nil, sampleTasks())
			cmd := &commands.AddCmd{}
			cmd.SetPriority(tt.priority)
			cmd.SetDue(tt.due)

			_, stderr, code := runCommand(t, cmd, a, tt.args, false)
			expectUserError(t, stderr, code, tt.want)
			if a.Store().Len() != 3 {
				t.Errorf("store changed on a rejected add")
			}
		})
	}
}

// Tests for toggle and rm commands
func TestToggleCommand_Row(t *testing.T) {
	a := newApp(t, nil, sampleTasks())

	stdout, stderr, code := runCommand(t, &commands.ToggleCmd{}, a, []string{"2"}, false)
	expectOK(t, stdout, stderr, code)
	if !completed(t, a, 1) {
		t.Error("expected row 2 (Buy milk) to be completed")
	}
}

func TestToggleCommand_SeveralRowsUseOneSnapshot(t *testing.T) {
	a := newApp(t, nil, sampleTasks())

	_, _, code := runCommand(t, &commands.ToggleCmd{}, a, []string{"1", "3"}, true)
	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if !completed(t, a, 2) {
		t.Error("expected Fix printer completed")
	}
	if completed(t, a, 3) {
		t.Error("expected Water plants active again")
	}
}

func TestToggleCommand_ByID(t *testing.T) {
	a := newApp(t, nil, sampleTasks())

	stdout, stderr, code := runCommand(t, &commands.ToggleCmd{}, a, []string{"@3"}, false)
	expectOK(t, stdout, stderr, code)
	if completed(t, a, 3) {
		t.Error("expected task 3 to be active")
	}
}

func TestToggleCommand_UnknownIDIsNoop(t *testing.T) {
	a := newApp(t, nil, sampleTasks())

	stdout, stderr, code := runCommand(t, &commands.ToggleCmd{}, a, []string{"@99"}, false)
	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "no such task\n" {
		t.Errorf("expected %q, got %q", "no such task\n", stdout)
	}

	stdout, _, _ = runCommand(t, &commands.ToggleCmd{}, a, []string{"@99"}, true)
	if stdout != "" {
		t.Errorf("expected no output in quiet mode, got %q", stdout)
	}
}

func TestToggleCommand_BadRefs(t *testing.T) {
	a := newApp(t, nil, sampleTasks())

	_, stderr, code := runCommand(t, &commands.ToggleCmd{}, a, nil, false)
	expectUserError(t, stderr, code, "error: task reference required\n")

	_, stderr, code = runCommand(t, &commands.ToggleCmd{}, a, []string{"x1"}, false)
	expectUserError(t, stderr, code, "error: invalid task reference: x1\n")

	_, stderr, code = runCommand(t, &commands.ToggleCmd{}, a, []string{"9"}, false)
	expectUserError(t, stderr, code, "error: task number out of range: 9\n")

	_, stderr, code = runCommand(t, &commands.ToggleCmd{}, a, []string{"0"}, false)
	expectUserError(t, stderr, code, "error: task number out of range: 0\n")
}

func TestRmCommand_Success(t *testing.T) {
	a := newApp(t, nil, sampleTasks())

	stdout, stderr, code := runCommand(t, &commands.RmCmd{}, a, []string{"1", "2"}, false)
	expectOK(t, stdout, stderr, code)

	got := texts(a)
	if len(got) != 1 || got[0] != "Water plants" {
		t.Errorf("unexpected tasks left: %v", got)
	}
}

func TestRmCommand_NoRef(t *testing.T) {
	a := newApp(t, nil, sampleTasks())
	_, stderr, code := runCommand(t, &commands.RmCmd{}, a, nil, false)
	expectUserError(t, stderr, code, "error: task reference required\n")
}

// Tests for edit command
func TestEditCommand(t *testing.T) {
	a := newApp(t, nil, sampleTasks())

	stdout, stderr, code := runCommand(t, &commands.EditCmd{}, a, []string{"2", "Buy", "oat", "milk"}, false)
	expectOK(t, stdout, stderr, code)
	if tk, _ := a.Store().Find(1); tk.Text != "Buy oat milk" {
		t.Errorf("unexpected text %q", tk.Text)
	}
	if _, _, editing := a.Store().Editing(); editing {
		t.Error("edit left open")
	}
}

func TestEditCommand_Empty(t *testing.T) {
	a := newApp(t, nil, sampleTasks())

	_, stderr, code := runCommand(t, &commands.EditCmd{}, a, []string{"2"}, false)
	expectUserError(t, stderr, code, "error: task text required (use --empty to clear it)\n")

	cmd := &commands.EditCmd{}
	cmd.SetAllowEmpty(true)
	_, _, code = runCommand(t, cmd, a, []string{"@1"}, true)
	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if tk, _ := a.Store().Find(1); tk.Text != "" {
		t.Errorf("expected empty text, got %q", tk.Text)
	}
}

func TestEditCommand_UnknownID(t *testing.T) {
	a := newApp(t, nil, sampleTasks())
	stdout, _, code := runCommand(t, &commands.EditCmd{}, a, []string{"@99", "x"}, false)
	if code != exitcode.Success || stdout != "no such task\n" {
		t.Errorf("unexpected result %d %q", code, stdout)
	}
}

// Tests for the bulk commands
func TestClearCommand(t *testing.T) {
	a := newApp(t, nil, sampleTasks())

	stdout, _, code := runCommand(t, &commands.ClearCmd{}, a, nil, false)
	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "removed 1\n" {
		t.Errorf("unexpected output %q", stdout)
	}
	if a.Store().Len() != 2 {
		t.Errorf("expected 2 tasks, got %d", a.Store().Len())
	}
}

func TestSelectAllUnselectAll(t *testing.T) {
	a := newApp(t, nil, sampleTasks())

	stdout, stderr, code := runCommand(t, &commands.SelectAllCmd{}, a, nil, false)
	expectOK(t, stdout, stderr, code)
	if a.StatusLine() != "0 active | 3 completed" {
		t.Errorf("unexpected status %q", a.StatusLine())
	}

	stdout, stderr, code = runCommand(t, &commands.UnselectAllCmd{}, a, nil, false)
	expectOK(t, stdout, stderr, code)
	if a.StatusLine() != "3 active | 0 completed" {
		t.Errorf("unexpected status %q", a.StatusLine())
	}
}

func TestNewCommand(t *testing.T) {
	a := newApp(t, nil, sampleTasks())

	stdout, stderr, code := runCommand(t, &commands.NewCmd{}, a, nil, false)
	expectOK(t, stdout, stderr, code)
	if a.Store().Len() != 0 {
		t.Errorf("expected empty list, got %d tasks", a.Store().Len())
	}
}

// Tests for export and import commands
func TestExportImport(t *testing.T) {
	a := newApp(t, nil, sampleTasks())
	path := filepath.Join(t.TempDir(), "todos.json")

	cmd := &commands.ExportCmd{}
	cmd.SetOut(path)
	stdout, _, code := runCommand(t, cmd, a, nil, false)
	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "saved "+path+"\n" {
		t.Errorf("unexpected output %q", stdout)
	}

	b := newApp(t, nil, nil)
	stdout, stderr, code := runCommand(t, &commands.ImportCmd{}, b, []string{path}, false)
	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (%s)", exitcode.Success, code, stderr)
	}
	if stdout != "loaded 3 tasks\n" {
		t.Errorf("unexpected output %q", stdout)
	}
	if len(b.Store().Tasks()) != 3 || b.Store().Tasks()[1] != sampleTasks()[1] {
		t.Errorf("imported list differs: %#v", b.Store().Tasks())
	}
}

func TestExportCommand_Stdout(t *testing.T) {
	a := newApp(t, nil, sampleTasks())
	cmd := &commands.ExportCmd{}
	cmd.SetOut("-")

	stdout, _, code := runCommand(t, cmd, a, nil, false)
	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d", exitcode.Success, code)
	}
	tasks, err := persist.Import(strings.NewReader(stdout))
	if err != nil {
		t.Fatalf("export is not importable: %v", err)
	}
	if len(tasks) != 3 {
		t.Errorf("expected 3 tasks, got %d", len(tasks))
	}
	if !strings.Contains(stdout, "\n  {") {
		t.Errorf("expected pretty-printed output, got %q", stdout)
	}
}

func TestImportCommand_BadFileLeavesList(t *testing.T) {
	a := newApp(t, nil, sampleTasks())
	dir := t.TempDir()

	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte(`[{"id":1,"text":"x","completed":false,"priority":"urgent","dueDate":""}]`), 0o600); err != nil {
		t.Fatal(err)
	}

	for _, path := range []string{bad, filepath.Join(dir, "missing.json")} {
		_, stderr, code := runCommand(t, &commands.ImportCmd{}, a, []string{path}, false)
		if code != exitcode.UserError {
			t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
		}
		if !strings.HasPrefix(stderr, "error: Error loading file: ") {
			t.Errorf("unexpected stderr %q", stderr)
		}
	}
	if a.Store().Len() != 3 || texts(a)[0] != "Buy milk" {
		t.Errorf("list changed: %v", texts(a))
	}

	_, stderr, code := runCommand(t, &commands.ImportCmd{}, a, nil, false)
	expectUserError(t, stderr, code, "error: file path required\n")
}

// Tests for news, calc and window commands
func TestNewsCommand(t *testing.T) {
	host := testutil.NewFakeHost(testutil.Headlines()...)
	a := newApp(t, host, nil)

	stdout, _, code := runCommand(t, &commands.NewsCmd{}, a, nil, false)
	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if !strings.HasPrefix(stdout, "1. Go 1.24 released\n     Gopher Times - ") {
		t.Errorf("unexpected output %q", stdout)
	}
	if !strings.Contains(stdout, "\n\n2. Floppy disks make a comeback\n") {
		t.Errorf("unexpected output %q", stdout)
	}
}

func TestNewsCommand_Empty(t *testing.T) {
	a := newApp(t, nil, nil)
	stdout, _, _ := runCommand(t, &commands.NewsCmd{}, a, nil, false)
	if stdout != "No headlines available.\n" {
		t.Errorf("unexpected output %q", stdout)
	}
}

func TestCalcCommand(t *testing.T) {
	stdout, _, code := runCommand(t, &commands.CalcCmd{}, nil, []string{"2", "+", "3", "*", "4"}, false)
	if code != exitcode.Success || stdout != "14\n" {
		t.Errorf("unexpected result %d %q", code, stdout)
	}

	_, stderr, code := runCommand(t, &commands.CalcCmd{}, nil, []string{"1/0"}, false)
	if code != exitcode.UserError || !strings.HasPrefix(stderr, "error: ") {
		t.Errorf("unexpected result %d %q", code, stderr)
	}

	_, stderr, code = runCommand(t, &commands.CalcCmd{}, nil, nil, false)
	expectUserError(t, stderr, code, "error: expression required\n")
}

func TestWindowCommand(t *testing.T) {
	host := testutil.NewFakeHost()
	a := newApp(t, host, nil)

	for _, op := range []string{"minimize", "maximize", "close"} {
		stdout, stderr, code := runCommand(t, &commands.WindowCmd{}, a, []string{op}, false)
		expectOK(t, stdout, stderr, code)
	}
	calls := host.Calls()
	if strings.Join(calls, ",") != "minimize,maximize,close" {
		t.Errorf("unexpected host calls %v", calls)
	}

	_, stderr, code := runCommand(t, &commands.WindowCmd{}, a, []string{"shake"}, false)
	expectUserError(t, stderr, code, "error: unknown window operation: shake\n")
}

// Tests for host command
func TestHostCommand_StopsOnClose(t *testing.T) {
	cmd := &commands.HostCmd{}
	cmd.SetListen("127.0.0.1:0")
	addrCh := make(chan string, 1)
	cmd.OnReady(func(addr string) { addrCh <- addr })

	var out, errOut bytes.Buffer
	done := make(chan int, 1)
	go func() {
		done <- cmd.Run(context.Background(), newConfig(t, false), nil, nil, &out, &errOut)
	}()

	var addr string
	select {
	case addr = <-addrCh:
	case <-time.After(5 * time.Second):
		t.Fatal("host did not start")
	}

	client := bridge.NewClient("http://"+addr, nil, quietLogger())
	client.Close(context.Background())

	select {
	case code := <-done:
		if code != exitcode.Success {
			t.Errorf("expected exit code %d, got %d (%s)", exitcode.Success, code, errOut.String())
		}
	case <-time.After(5 * time.Second):
		t.Fatal("host did not stop")
	}
	if out.String() != "listening on http://"+addr+"\n" {
		t.Errorf("unexpected output %q", out.String())
	}
}

func TestHostCommand_BadAddress(t *testing.T) {
	cmd := &commands.HostCmd{}
	cmd.SetListen("not-an-address")

	_, stderr, code := runCommand(t, cmd, nil, nil, false)
	if code != exitcode.HostError {
		t.Errorf("expected exit code %d, got %d", exitcode.HostError, code)
	}
	if !strings.HasPrefix(stderr, "error: host error: ") {
		t.Errorf("unexpected stderr %q", stderr)
	}
}
