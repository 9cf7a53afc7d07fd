// Package config loads .stringsync.yaml, the per-project configuration
// file, and the optional .env file next to it.
//
// A project without .stringsync.yaml runs with Default(): the single key
// apply_changes, translated from English into Arabic.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/minios-linux/stringsync/langmeta"
	"github.com/minios-linux/stringsync/translate"
	"gopkg.in/yaml.v3"
)

// FileName is the default config file name.
const FileName = ".stringsync.yaml"

// EnvFileName is the dotenv file loaded from the project root.
const EnvFileName = ".env"

// DefaultResDir is the res directory of a standard Gradle app module.
const DefaultResDir = "app/src/main/res"

// DefaultMaxRetries is the number of extra provider attempts per string.
const DefaultMaxRetries = 2

// ---------------------------------------------------------------------------
// YAML schema
// ---------------------------------------------------------------------------

// File is the top-level .stringsync.yaml structure.
type File struct {
	// ResDir is the Android res directory, relative to the project root.
	ResDir string `yaml:"res_dir,omitempty"`
	// SourceLang is the language of values/strings.xml (default "en").
	SourceLang string `yaml:"source_lang,omitempty"`
	// Languages are the target locales, in processing order.
	Languages []string `yaml:"languages,omitempty"`
	// Keys are the snake_case resource names to make sure exist.
	Keys []string `yaml:"keys,omitempty"`
	// OnlyConfigured limits translation to Keys.
	OnlyConfigured bool `yaml:"only_configured,omitempty"`
	// Provider selects and tunes the translation service.
	Provider Provider `yaml:"provider,omitempty"`

	path string `yaml:"-"`
}

// Provider is the provider: section.
type Provider struct {
	Name    string `yaml:"name,omitempty"`
	APIKey  string `yaml:"api_key,omitempty"`
	BaseURL string `yaml:"base_url,omitempty"`
	Model   string `yaml:"model,omitempty"`
	Prompt  string `yaml:"prompt,omitempty"`
	// Timeout is the per-request timeout ("30s").
	Timeout time.Duration `yaml:"timeout,omitempty"`
	// MaxRetries is nil when unset so that an explicit 0 disables retries.
	MaxRetries   *int          `yaml:"max_retries,omitempty"`
	RequestDelay time.Duration `yaml:"request_delay,omitempty"`
}

// Default returns the configuration used when no config file exists.
func Default() *File {
	f := &File{}
	f.applyDefaults()
	return f
}

// Path returns the file the configuration was read from, or "" for
// Default().
func (f *File) Path() string {
	return f.path
}

// Retries returns the effective max_retries value.
func (p Provider) Retries() int {
	if p.MaxRetries == nil {
		return DefaultMaxRetries
	}
	return *p.MaxRetries
}

// ---------------------------------------------------------------------------
// Loading
// ---------------------------------------------------------------------------

// Load reads the config file at path. A missing file yields Default();
// an empty file is a valid configuration of defaults.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	f.path = path
	return f, nil
}

// LoadDir loads FileName from a project root.
func LoadDir(root string) (*File, error) {
	return Load(filepath.Join(root, FileName))
}

// Parse decodes and validates a configuration. Unknown keys are rejected
// so that typos do not silently fall back to defaults.
func Parse(data []byte) (*File, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	f.applyDefaults()
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

func (f *File) applyDefaults() {
	if f.ResDir == "" {
		f.ResDir = DefaultResDir
	}
	if f.SourceLang == "" {
		f.SourceLang = "en"
	}
	if len(f.Languages) == 0 {
		f.Languages = []string{"ar"}
	}
	if len(f.Keys) == 0 {
		f.Keys = []string{"apply_changes"}
	}
	if f.Provider.Name == "" {
		f.Provider.Name = translate.ProviderGoogle
	}
}

// Validate checks the configuration and normalizes language codes to
// their canonical BCP-47 form.
func (f *File) Validate() error {
	src, err := langmeta.Normalize(f.SourceLang)
	if err != nil {
		return fmt.Errorf("source_lang: %w", err)
	}
	f.SourceLang = src

	seenLang := make(map[string]bool)
	for i, lang := range f.Languages {
		norm, err := langmeta.Normalize(lang)
		if err != nil {
			return fmt.Errorf("languages[%d]: %w", i, err)
		}
		if norm == f.SourceLang {
			return fmt.Errorf("languages[%d]: %q is the source language", i, lang)
		}
		if seenLang[norm] {
			return fmt.Errorf("languages[%d]: duplicate language %q", i, norm)
		}
		seenLang[norm] = true
		f.Languages[i] = norm
	}

	seenKey := make(map[string]bool)
	for i, key := range f.Keys {
		if key == "" {
			return fmt.Errorf("keys[%d]: empty key", i)
		}
		if seenKey[key] {
			return fmt.Errorf("keys[%d]: duplicate key %q", i, key)
		}
		seenKey[key] = true
	}

	if _, ok := translate.DefaultProviders()[f.Provider.Name]; !ok {
		return fmt.Errorf("provider.name: unknown provider %q", f.Provider.Name)
	}
	if f.Provider.MaxRetries != nil && *f.Provider.MaxRetries < 0 {
		return fmt.Errorf("provider.max_retries: must not be negative")
	}
	if f.Provider.Timeout < 0 || f.Provider.RequestDelay < 0 {
		return fmt.Errorf("provider: durations must not be negative")
	}
	return nil
}

// Save writes the configuration as YAML.
func (f *File) Save(path string) error {
	data, err := yaml.Marshal(f)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	f.path = path
	return nil
}

// ---------------------------------------------------------------------------
// Environment
// ---------------------------------------------------------------------------

// LoadEnv loads root/.env into the process environment. Variables that
// are already set are left alone and a missing file is not an error.
func LoadEnv(root string) error {
	path := filepath.Join(root, EnvFileName)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("checking %s: %w", path, err)
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}
