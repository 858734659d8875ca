package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"sift/internal/config"
	"sift/internal/diag"
	"sift/internal/diagfmt"
	"sift/internal/rules"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

// execute runs the CLI with a fresh command tree and captures its output.
func execute(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	root := newRootCmd()
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	code := run(root, append([]string{"--color", "off"}, args...))
	return code, stdout.String(), stderr.String()
}

type project struct {
	dir    string
	config string
	cache  string
}

func newProject(t *testing.T, rulesTOML string) *project {
	t.Helper()
	dir := t.TempDir()
	p := &project{
		dir:    dir,
		config: filepath.Join(dir, config.FileName),
		cache:  filepath.Join(dir, "lint.cache"),
	}
	writeFile(t, p.config, "[rules]\n"+rulesTOML)
	return p
}

func (p *project) file(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(p.dir, name)
	writeFile(t, path, content)
	return path
}

func decodeReport(t *testing.T, out string) []diagfmt.FileJSON {
	t.Helper()
	var files []diagfmt.FileJSON
	if err := json.Unmarshal([]byte(out), &files); err != nil {
		t.Fatalf("invalid JSON %v:\n%s", err, out)
	}
	return files
}

func TestLintFixDryRunReportsOutput(t *testing.T) {
	p := newProject(t, "semi = \"error\"\nno-var = \"warn\"\n")
	path := p.file(t, "a.js", "var x=1")

	code, out, errOut := execute(t, "lint", "--format", "json", "--fix-dry-run", "--cache-location", p.cache, path)
	if code != exitOK {
		t.Fatalf("exit code = %d, stderr=%s", code, errOut)
	}
	files := decodeReport(t, out)
	if len(files) != 1 || files[0].Output == nil || *files[0].Output != "var x=1;" {
		t.Fatalf("report = %+v", files)
	}
	msgs := files[0].Messages
	if len(msgs) != 1 || *msgs[0].RuleID != "no-var" || msgs[0].Fix != nil || len(msgs[0].Suggestions) != 1 {
		t.Fatalf("messages = %+v", msgs)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "var x=1" {
		t.Fatalf("dry run wrote the file: %q", data)
	}
}

func TestLintFixWritesFiles(t *testing.T) {
	p := newProject(t, "semi = \"error\"\n")
	path := p.file(t, "a.js", "let a = 1\nlet b = 2\n")

	code, _, errOut := execute(t, "lint", "--fix", "--cache-location", p.cache, path)
	if code != exitOK {
		t.Fatalf("exit code = %d, stderr=%s", code, errOut)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "let a = 1;\nlet b = 2;\n" {
		t.Fatalf("file = %q", data)
	}
}

func TestLintExitCodes(t *testing.T) {
	p := newProject(t, "semi = \"error\"\neqeqeq = \"warn\"\n")
	dirty := p.file(t, "dirty.js", "let a = 1\n")
	warn := p.file(t, "warn.js", "if (a == b) {}\n")

	code, out, _ := execute(t, "lint", "--cache-location", p.cache, dirty)
	if code != exitProblem {
		t.Fatalf("errors should exit %d, got %d", exitProblem, code)
	}
	if !strings.Contains(out, "1 problem (1 error, 0 warnings)") {
		t.Fatalf("stylish output = %q", out)
	}

	if code, _, _ = execute(t, "lint", "--cache-location", p.cache, warn); code != exitOK {
		t.Fatalf("warnings alone should exit 0, got %d", code)
	}
	code, _, errOut := execute(t, "lint", "--max-warnings", "0", "--cache-location", p.cache, warn)
	if code != exitProblem || !strings.Contains(errOut, "too many warnings") {
		t.Fatalf("max-warnings: code=%d stderr=%q", code, errOut)
	}

	code, _, errOut = execute(t, "lint", "--rule", "no-such-rule=error", "--cache-location", p.cache, warn)
	if code != exitFailure || !strings.Contains(errOut, "unknown rule") {
		t.Fatalf("unknown rule: code=%d stderr=%q", code, errOut)
	}
	if code, _, _ = execute(t, "lint", "--format", "xml", warn); code != exitFailure {
		t.Fatalf("bad format should exit %d, got %d", exitFailure, code)
	}
}

func TestLintQuietHidesWarnings(t *testing.T) {
	p := newProject(t, "eqeqeq = \"warn\"\n")
	path := p.file(t, "a.js", "if (a == b) {}\n")
	code, out, _ := execute(t, "lint", "--quiet", "--cache-location", p.cache, path)
	if code != exitOK || out != "" {
		t.Fatalf("code=%d out=%q", code, out)
	}
}

func TestLintRuleOverride(t *testing.T) {
	p := newProject(t, "semi = \"error\"\n")
	path := p.file(t, "a.js", "let a = 1\n")
	code, _, errOut := execute(t, "lint", "--rule", "semi=off", "--cache-location", p.cache, path)
	if code != exitOK {
		t.Fatalf("override ignored: code=%d stderr=%s", code, errOut)
	}
}

func TestLintCacheLifecycle(t *testing.T) {
	p := newProject(t, "semi = \"error\"\n")
	path := p.file(t, "a.js", "let a = 1;\n")

	if code, _, errOut := execute(t, "lint", "--cache", "--cache-location", p.cache, path); code != exitOK {
		t.Fatalf("code=%d stderr=%s", code, errOut)
	}
	if _, err := os.Stat(p.cache); err != nil {
		t.Fatalf("cache file not written: %v", err)
	}

	_, _, errOut := execute(t, "lint", "--cache", "--stats", "--cache-location", p.cache, path)
	if !strings.Contains(errOut, "0 linted, 1 cached") {
		t.Fatalf("second run should hit the cache, stats:\n%s", errOut)
	}

	if code, _, _ := execute(t, "lint", "--cache-location", p.cache, path); code != exitOK {
		t.Fatalf("lint without cache failed")
	}
	if _, err := os.Stat(p.cache); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("cache file should be deleted without --cache, stat err = %v", err)
	}
}

func TestCacheClean(t *testing.T) {
	dir := t.TempDir()
	cacheFile := filepath.Join(dir, "lint.cache")
	writeFile(t, cacheFile, "x")

	code, out, _ := execute(t, "cache", "clean", "--cache-location", cacheFile)
	if code != exitOK || !strings.Contains(out, "removed") {
		t.Fatalf("code=%d out=%q", code, out)
	}
	code, out, _ = execute(t, "cache", "clean", "--cache-location", cacheFile)
	if code != exitOK || !strings.Contains(out, "not found") {
		t.Fatalf("code=%d out=%q", code, out)
	}
}

func TestRulesCommand(t *testing.T) {
	code, out, _ := execute(t, "rules", "--format", "json")
	if code != exitOK {
		t.Fatalf("code = %d", code)
	}
	var payload []rulePayload
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatal(err)
	}
	if len(payload) != len(rules.Builtin().All()) {
		t.Fatalf("rules = %d", len(payload))
	}
	code, out, _ = execute(t, "rules")
	if code != exitOK || !strings.Contains(out, "semi") {
		t.Fatalf("pretty rules: code=%d out=%q", code, out)
	}
}

func TestVersionCommand(t *testing.T) {
	code, out, _ := execute(t, "version", "--format", "json", "--full")
	if code != exitOK {
		t.Fatalf("code = %d", code)
	}
	var payload versionPayload
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatal(err)
	}
	if payload.Tool != "sift" || payload.GitCommit != "unknown" || payload.Runtime == "" {
		t.Fatalf("payload = %+v", payload)
	}
}

func TestReadUIMode(t *testing.T) {
	for in, want := range map[string]uiMode{"": uiModeAuto, "ON": uiModeOn, " off ": uiModeOff} {
		got, err := readUIMode("ui", in)
		if err != nil || got != want {
			t.Errorf("readUIMode(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := readUIMode("ui", "sometimes"); err == nil {
		t.Errorf("expected error")
	}
}

func TestErrorsOnly(t *testing.T) {
	diags := []diag.Diagnostic{{Severity: diag.SevWarning}, {Severity: diag.SevError}}
	if got := errorsOnly(diags); len(got) != 1 || got[0].Severity != diag.SevError {
		t.Fatalf("errorsOnly = %+v", got)
	}
}
