package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/minios-linux/stringsync/android"
	"github.com/minios-linux/stringsync/config"
	"github.com/minios-linux/stringsync/lockfile"
	"github.com/spf13/pflag"
)

func TestLangListValue(t *testing.T) {
	var l langList
	if err := l.Set("ar, pt-br"); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	if err := l.Set("DE"); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	if want := (langList{"ar", "pt-BR", "de"}); !reflect.DeepEqual(l, want) {
		t.Fatalf("langList = %v, want %v", l, want)
	}
	if got := l.String(); got != "ar,pt-BR,de" {
		t.Fatalf("String() = %q", got)
	}
	if err := l.Set("not a language"); err == nil {
		t.Fatal("Set should reject an invalid code")
	}
}

func TestPercentBar(t *testing.T) {
	old := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = old })

	tests := []struct {
		percent, width int
		want           string
	}{
		{-10, 4, "░░░░   0%"},
		{50, 4, "██░░  50%"},
		{120, 4, "████ 100%"},
	}
	for _, tc := range tests {
		if got := percentBar(tc.percent, tc.width); got != tc.want {
			t.Fatalf("percentBar(%d, %d) = %q, want %q", tc.percent, tc.width, got, tc.want)
		}
	}
}

func TestMergeLanguages(t *testing.T) {
	got := mergeLanguages([]string{"ar", "de"}, []string{"de", "fr", "ar", "pt-BR"})
	want := []string{"ar", "de", "fr", "pt-BR"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("mergeLanguages() = %v, want %v", got, want)
	}
	if got := langColumnWidth(want); got != len("pt-BR") {
		t.Fatalf("langColumnWidth() = %d", got)
	}
}

func TestApplySyncFlags(t *testing.T) {
	var f syncFlags
	fs := pflag.NewFlagSet("sync", pflag.ContinueOnError)
	addSyncFlags(fs, &f)
	if err := fs.Parse([]string{"--key", "save,discard", "--lang", "pt-br", "--retries", "0", "--delay", "100ms", "--provider", "ollama"}); err != nil {
		t.Fatalf("Parse: %v", err)
	}

	cfg := config.Default()
	cfg.Provider.Model = "from-config"
	if err := applySyncFlags(cfg, fs, &f); err != nil {
		t.Fatalf("applySyncFlags: %v", err)
	}

	if !reflect.DeepEqual(cfg.Keys, []string{"save", "discard"}) {
		t.Errorf("Keys = %v", cfg.Keys)
	}
	if !reflect.DeepEqual(cfg.Languages, []string{"pt-BR"}) {
		t.Errorf("Languages = %v", cfg.Languages)
	}
	if cfg.Provider.Name != "ollama" || cfg.Provider.Model != "from-config" {
		t.Errorf("Provider = %+v", cfg.Provider)
	}
	if cfg.Provider.Retries() != 0 || cfg.Provider.RequestDelay != 100*time.Millisecond {
		t.Errorf("retries = %d, delay = %v", cfg.Provider.Retries(), cfg.Provider.RequestDelay)
	}
	if cfg.ResDir != config.DefaultResDir {
		t.Errorf("ResDir changed without --res-dir: %q", cfg.ResDir)
	}
}

func TestApplySyncFlagsRejectsDuplicateKeys(t *testing.T) {
	var f syncFlags
	fs := pflag.NewFlagSet("sync", pflag.ContinueOnError)
	addSyncFlags(fs, &f)
	if err := fs.Parse([]string{"--key", "a", "--key", "a"}); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if err := applySyncFlags(config.Default(), fs, &f); err == nil {
		t.Fatal("expected a duplicate key error")
	}
}

func TestResolveProviderKeyPrecedence(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	t.Setenv("STRINGSYNC_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "")

	cfg := config.Default()
	cfg.Provider.Name = "openai"
	cfg.Provider.APIKey = "config-key"

	if got := resolveProvider(cfg, "").APIKey; got != "config-key" {
		t.Errorf("APIKey = %q, want config-key", got)
	}
	t.Setenv("STRINGSYNC_API_KEY", "env-key")
	if got := resolveProvider(cfg, "").APIKey; got != "env-key" {
		t.Errorf("APIKey = %q, want env-key", got)
	}
	if got := resolveProvider(cfg, "flag-key").APIKey; got != "flag-key" {
		t.Errorf("APIKey = %q, want flag-key", got)
	}
	if got := resolveProvider(cfg, "").SourceLang; got != "en" {
		t.Errorf("SourceLang = %q", got)
	}
}

func TestRootCommandSyncsProject(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	t.Setenv("STRINGSYNC_API_KEY", "")

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"content":"تطبيق التغييرات"}}]}`))
	}))
	defer srv.Close()

	root := t.TempDir()
	cfg := "res_dir: res\nlanguages: [ar]\nkeys: [apply_changes]\n"
	if err := os.WriteFile(filepath.Join(root, config.FileName), []byte(cfg), 0644); err != nil {
		t.Fatal(err)
	}

	args := []string{"--root", root, "--provider", "ollama", "--model", "llama3.2", "--base-url", srv.URL, "--no-progress"}
	for run := 0; run < 2; run++ {
		cmd := newRootCmd()
		cmd.SetArgs(args)
		if err := cmd.ExecuteContext(context.Background()); err != nil {
			t.Fatalf("run %d: %v", run+1, err)
		}
	}
	if n := calls.Load(); n != 1 {
		t.Errorf("provider calls = %d, want 1 (second run has nothing to translate)", n)
	}

	res := filepath.Join(root, "res")
	en, err := android.Load(android.SourceStringsXMLPath(res))
	if err != nil {
		t.Fatal(err)
	}
	if v, _ := en.Get("apply_changes"); v != "Apply changes" {
		t.Errorf("English value = %q", v)
	}

	arData, err := os.ReadFile(android.StringsXMLPath(res, "ar"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(arData), `<string name="apply_changes">تطبيق التغييرات</string>`) {
		t.Errorf("Arabic file:\n%s", arData)
	}

	if _, err := os.Stat(filepath.Join(root, lockfile.LockFileName)); err != nil {
		t.Errorf("lock file not written: %v", err)
	}

	status := newRootCmd()
	status.SetArgs([]string{"status", "--root", root, "--verbose"})
	if err := status.ExecuteContext(context.Background()); err != nil {
		t.Errorf("status: %v", err)
	}
}

func TestInitCommandWritesConfig(t *testing.T) {
	root := t.TempDir()
	res := filepath.Join(root, "res")
	for _, dir := range []string{"values-de", "values-en", "values-pt-rBR"} {
		if err := os.MkdirAll(filepath.Join(res, dir), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(res, dir, android.FileName), []byte("<resources/>"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	run := func(args ...string) error {
		cmd := newRootCmd()
		cmd.SetArgs(append([]string{"init", "--root", root, "--res-dir", "res"}, args...))
		return cmd.ExecuteContext(context.Background())
	}
	if err := run("--key", "save"); err != nil {
		t.Fatalf("init: %v", err)
	}

	cfg, err := config.LoadDir(root)
	if err != nil {
		t.Fatalf("LoadDir: %v", err)
	}
	if cfg.ResDir != "res" || !reflect.DeepEqual(cfg.Keys, []string{"save"}) {
		t.Errorf("config = %+v", cfg)
	}
	if !reflect.DeepEqual(cfg.Languages, []string{"de", "pt-BR"}) {
		t.Errorf("Languages = %v, want detected [de pt-BR] without the source language", cfg.Languages)
	}

	if err := run(); err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Errorf("second init: error = %v, want already exists", err)
	}
	if err := run("--force", "--lang", "ar"); err != nil {
		t.Fatalf("init --force: %v", err)
	}
	if cfg, _ := config.LoadDir(root); !reflect.DeepEqual(cfg.Languages, []string{"ar"}) {
		t.Errorf("Languages after --force = %v", cfg.Languages)
	}
}

func TestRootCommandReportsBadConfig(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, config.FileName), []byte("provider:\n  name: babelfish\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cmd := newRootCmd()
	cmd.SetArgs([]string{"--root", root, "--no-progress"})
	err := cmd.ExecuteContext(context.Background())
	if err == nil || !strings.Contains(err.Error(), "unknown provider") {
		t.Fatalf("error = %v, want unknown provider", err)
	}
	if _, statErr := os.Stat(filepath.Join(root, config.DefaultResDir)); !os.IsNotExist(statErr) {
		t.Errorf("res directory created despite the config error")
	}
}

func TestDescribeLanguages(t *testing.T) {
	if got := describeLanguages([]string{"ar", "de"}); got != "ar (العربية), de (Deutsch)" {
		t.Fatalf("describeLanguages() = %q", got)
	}
}
