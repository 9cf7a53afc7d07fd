package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	f, err := LoadDir(t.TempDir())
	if err != nil {
		t.Fatalf("LoadDir error: %v", err)
	}
	if f.Path() != "" {
		t.Errorf("Path() = %q, want empty for defaults", f.Path())
	}
	if !reflect.DeepEqual(f.Keys, []string{"apply_changes"}) {
		t.Errorf("Keys = %v", f.Keys)
	}
	if !reflect.DeepEqual(f.Languages, []string{"ar"}) {
		t.Errorf("Languages = %v", f.Languages)
	}
	if f.SourceLang != "en" || f.ResDir != DefaultResDir || f.Provider.Name != "google" {
		t.Errorf("defaults = %+v", f)
	}
	if f.Provider.Retries() != DefaultMaxRetries {
		t.Errorf("Retries() = %d", f.Provider.Retries())
	}
}

func TestLoadParsesAndNormalizes(t *testing.T) {
	dir := t.TempDir()
	yaml := `res_dir: res
languages: [pt-br, ar]
keys:
  - apply_changes
  - discard_changes
only_configured: true
provider:
  name: openai
  model: gpt-4o
  timeout: 45s
  max_retries: 0
  request_delay: 250ms
`
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, []byte(yaml), 0644); err != nil {
		t.Fatal(err)
	}

	f, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if f.Path() != path {
		t.Errorf("Path() = %q", f.Path())
	}
	if !reflect.DeepEqual(f.Languages, []string{"pt-BR", "ar"}) {
		t.Errorf("Languages = %v, want [pt-BR ar]", f.Languages)
	}
	if !f.OnlyConfigured || f.ResDir != "res" {
		t.Errorf("f = %+v", f)
	}
	p := f.Provider
	if p.Name != "openai" || p.Model != "gpt-4o" || p.Timeout != 45*time.Second || p.RequestDelay != 250*time.Millisecond {
		t.Errorf("Provider = %+v", p)
	}
	if p.Retries() != 0 {
		t.Errorf("explicit max_retries: 0 gave %d", p.Retries())
	}
}

func TestParseEmptyFileIsDefaults(t *testing.T) {
	f, err := Parse(nil)
	if err != nil {
		t.Fatalf("Parse(empty) error: %v", err)
	}
	if !reflect.DeepEqual(f, Default()) {
		t.Errorf("Parse(empty) = %+v, want defaults", f)
	}
}

func TestParseValidation(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"unknown key", "langs: [ar]\n", "field langs not found"},
		{"bad language", "languages: [\"not a lang!\"]\n", "languages[0]"},
		{"source as target", "languages: [en]\n", "source language"},
		{"duplicate language", "languages: [ar, AR]\n", "duplicate language"},
		{"empty key", "keys: [\"\"]\n", "empty key"},
		{"duplicate key", "keys: [a, a]\n", "duplicate key"},
		{"unknown provider", "provider:\n  name: babelfish\n", "unknown provider"},
		{"negative retries", "provider:\n  max_retries: -1\n", "max_retries"},
		{"bad duration", "provider:\n  timeout: soon\n", "parsing config"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.yaml))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("error %q does not contain %q", err, tc.want)
			}
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	retries := 4

	f := Default()
	f.Languages = []string{"ar", "de"}
	f.Provider.Timeout = time.Minute
	f.Provider.MaxRetries = &retries
	if err := f.Save(path); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if !reflect.DeepEqual(loaded.Languages, f.Languages) || loaded.Provider.Timeout != time.Minute || loaded.Provider.Retries() != 4 {
		t.Errorf("loaded = %+v", loaded)
	}
}

func TestLoadEnv(t *testing.T) {
	dir := t.TempDir()
	if err := LoadEnv(dir); err != nil {
		t.Fatalf("LoadEnv without .env: %v", err)
	}

	env := "STRINGSYNC_TEST_NEW=from-file\nSTRINGSYNC_TEST_SET=from-file\n"
	if err := os.WriteFile(filepath.Join(dir, EnvFileName), []byte(env), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("STRINGSYNC_TEST_SET", "from-shell")
	t.Setenv("STRINGSYNC_TEST_NEW", "")
	os.Unsetenv("STRINGSYNC_TEST_NEW")

	if err := LoadEnv(dir); err != nil {
		t.Fatalf("LoadEnv error: %v", err)
	}
	if got := os.Getenv("STRINGSYNC_TEST_NEW"); got != "from-file" {
		t.Errorf("STRINGSYNC_TEST_NEW = %q, want from-file", got)
	}
	if got := os.Getenv("STRINGSYNC_TEST_SET"); got != "from-shell" {
		t.Errorf("STRINGSYNC_TEST_SET = %q, must not be overridden", got)
	}
}
