package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rogpeppe/go-internal/testscript"

	"todomvc/pkg/session"
)

func TestMain(m *testing.M) {
	os.Exit(testscript.RunMain(m, map[string]func() int{
		"todomvc": func() int {
			return Execute(func(s *session.Session) error {
				return errors.New("no terminal in tests")
			})
		},
	}))
}

func TestScripts(t *testing.T) {
	testscript.Run(t, testscript.Params{
		Dir: filepath.Join("testdata", "script"),
		Setup: func(env *testscript.Env) error {
			home := filepath.Join(env.WorkDir, "home")
			if err := os.MkdirAll(home, 0o755); err != nil {
				return err
			}
			env.Setenv("HOME", home)
			return nil
		},
	})
}

func runCLI(t *testing.T, stdin string, runTUI TUIRunner, args ...string) (string, string, int) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	var out, errOut bytes.Buffer
	code := run(args, strings.NewReader(stdin), &out, &errOut, runTUI)
	return out.String(), errOut.String(), code
}

func TestRootRunsTUIWithSession(t *testing.T) {
	var got *session.Session
	_, errOut, code := runCLI(t, "", func(s *session.Session) error {
		got = s
		return nil
	})
	if code != 0 {
		t.Fatalf("exit code = %d, stderr: %s", code, errOut)
	}
	if got == nil || got.Controller == nil {
		t.Fatalf("TUI runner got no session")
	}
}

func TestRootWithoutTUI(t *testing.T) {
	_, errOut, code := runCLI(t, "", nil)
	if code != 1 || !strings.Contains(errOut, "no interactive interface") {
		t.Errorf("code = %d, stderr = %q", code, errOut)
	}
}

func TestTUISeesImportedTasks(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "tasks.txt")
	if err := os.WriteFile(file, []byte("- [ ] Milch kaufen +Einkauf\n- [x] Bericht\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	var titles []string
	_, errOut, code := runCLI(t, "", func(s *session.Session) error {
		for _, task := range s.Controller.ListTasks() {
			titles = append(titles, task.Title)
		}
		return nil
	}, "--import", file)
	if code != 0 {
		t.Fatalf("exit code = %d, stderr: %s", code, errOut)
	}
	if strings.Join(titles, ",") != "Milch kaufen,Bericht" {
		t.Errorf("titles = %v", titles)
	}
}

func TestPurgeReadsConfirmationFromStdin(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "tasks.txt")
	if err := os.WriteFile(file, []byte("- [x] a\n- [x] b\n- [ ] c\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	out, errOut, code := runCLI(t, "n\n", nil, "--import", file, "purge", "--done")
	if code != 0 {
		t.Fatalf("exit code = %d, stderr: %s", code, errOut)
	}
	if !strings.Contains(out, "Operation cancelled.") {
		t.Errorf("stdout = %q", out)
	}

	out, _, _ = runCLI(t, "y\n", nil, "--import", file, "purge", "--done")
	if !strings.Contains(out, "Successfully deleted 2 task(s)") {
		t.Errorf("stdout = %q", out)
	}
}

func TestNormalizeFlagName(t *testing.T) {
	if got := normalizeFlagName(nil, "import_format"); got != "import-format" {
		t.Errorf("normalizeFlagName = %q", got)
	}
}
