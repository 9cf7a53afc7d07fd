// Package translate machine-translates string resources through an
// external provider: the free Google Translate web endpoint, the Google
// Cloud Translation API, or an OpenAI-compatible chat endpoint (OpenAI,
// Ollama, ...). Every string is sent as its own request.
package translate

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/minios-linux/stringsync/android"
)

// Translator translates a single piece of text into the target language.
type Translator interface {
	Translate(ctx context.Context, text, targetLang string) (string, error)
}

// Func adapts a plain function to the Translator interface.
type Func func(ctx context.Context, text, targetLang string) (string, error)

// Translate calls f.
func (f Func) Translate(ctx context.Context, text, targetLang string) (string, error) {
	return f(ctx, text, targetLang)
}

// Error reports a string that could not be translated after all attempts.
type Error struct {
	// Key is the resource name of the string.
	Key string
	// Lang is the target language code.
	Lang string
	// Attempts is the number of provider calls made.
	Attempts int
	Err      error
}

func (e *Error) Error() string {
	return fmt.Sprintf("translating %q to %s (%d attempt(s)): %v", e.Key, e.Lang, e.Attempts, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// ---------------------------------------------------------------------------
// Provider configuration
// ---------------------------------------------------------------------------

// Provider IDs.
const (
	ProviderGoogle      = "google"
	ProviderGoogleCloud = "google-cloud"
	ProviderOpenAI      = "openai"
	ProviderOllama      = "ollama"
)

// Provider holds the configuration for a translation service.
type Provider struct {
	// ID is the provider identifier (google, google-cloud, openai, ollama).
	ID string
	// Name is the display name.
	Name string
	// BaseURL is the API base URL (chat providers only).
	BaseURL string
	// APIKey is the authentication key (empty for keyless services).
	APIKey string
	// Model is the model identifier (chat providers only).
	Model string
	// SourceLang is the language of the source strings.
	SourceLang string
	// Timeout is the per-request timeout.
	Timeout time.Duration
}

// DefaultProviders returns the pre-configured provider definitions.
func DefaultProviders() map[string]Provider {
	return map[string]Provider{
		ProviderGoogle: {
			ID:      ProviderGoogle,
			Name:    "Google Translate (web)",
			Timeout: 30 * time.Second,
		},
		ProviderGoogleCloud: {
			ID:      ProviderGoogleCloud,
			Name:    "Google Cloud Translation",
			Timeout: 30 * time.Second,
		},
		ProviderOpenAI: {
			ID:      ProviderOpenAI,
			Name:    "OpenAI",
			BaseURL: "https://api.openai.com/v1",
			Model:   "gpt-4o-mini",
			Timeout: 60 * time.Second,
		},
		ProviderOllama: {
			ID:      ProviderOllama,
			Name:    "Ollama",
			BaseURL: "http://localhost:11434/v1",
			Timeout: 120 * time.Second,
		},
	}
}

// ProviderIDs returns the known provider IDs, sorted.
func ProviderIDs() []string {
	var ids []string
	for id := range DefaultProviders() {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Resolve fills the empty fields of p from the provider defaults.
func Resolve(p Provider) (Provider, error) {
	def, ok := DefaultProviders()[p.ID]
	if !ok {
		return p, fmt.Errorf("unknown provider %q (valid: %s)", p.ID, strings.Join(ProviderIDs(), ", "))
	}
	def.APIKey = p.APIKey
	if p.BaseURL != "" {
		def.BaseURL = p.BaseURL
	}
	if p.Model != "" {
		def.Model = p.Model
	}
	if p.Timeout > 0 {
		def.Timeout = p.Timeout
	}
	def.SourceLang = p.SourceLang
	if def.SourceLang == "" {
		def.SourceLang = "en"
	}
	return def, nil
}

// New builds the Translator for a provider. The result may also implement
// io.Closer; callers should close it when done.
func New(ctx context.Context, p Provider) (Translator, error) {
	p, err := Resolve(p)
	if err != nil {
		return nil, err
	}
	switch p.ID {
	case ProviderGoogle:
		return &Google{SourceLang: p.SourceLang}, nil
	case ProviderGoogleCloud:
		if p.APIKey == "" {
			return nil, fmt.Errorf("%s requires an API key", p.Name)
		}
		return NewGoogleCloud(ctx, p.APIKey, p.SourceLang)
	case ProviderOpenAI:
		if p.APIKey == "" {
			return nil, fmt.Errorf("%s requires an API key", p.Name)
		}
	}
	if p.Model == "" {
		return nil, fmt.Errorf("%s requires a model (set provider.model or --model)", p.Name)
	}
	return NewChat(p), nil
}

// ---------------------------------------------------------------------------
// Translation options
// ---------------------------------------------------------------------------

// Options controls Strings.
type Options struct {
	// Language is the target language code (e.g., "ar", "pt-BR").
	Language string
	// MaxRetries is the number of extra attempts after a failed call.
	// Zero means a failure is reported immediately.
	MaxRetries int
	// RetryDelay is the first backoff delay; it doubles on every retry.
	// Default: 1s.
	RetryDelay time.Duration
	// RequestDelay is the pause between consecutive strings.
	RequestDelay time.Duration
	// OnProgress is called after each string is translated.
	OnProgress func(lang string, done, total int)
	// OnLog emits log messages during translation.
	OnLog func(format string, args ...any)
	// Verbose enables per-string logging.
	Verbose bool
}

func (o *Options) log(format string, args ...any) {
	if o.OnLog != nil {
		o.OnLog(format, args...)
	}
}

func (o *Options) effectiveRetryDelay() time.Duration {
	if o.RetryDelay > 0 {
		return o.RetryDelay
	}
	return time.Second
}

// ---------------------------------------------------------------------------
// Core translation logic
// ---------------------------------------------------------------------------

// Strings translates the value of every entry into opts.Language, one
// request per entry, strictly in order. The result has the same names in
// the same order. Empty values are passed through without a request.
// For markup entries a reply that is not well-formed XML content counts
// as a failed attempt, so broken tags never reach a resource file.
//
// The first entry that still fails after opts.MaxRetries retries stops the
// run with a *Error; no partial result is returned.
func Strings(ctx context.Context, tr Translator, entries []android.Entry, opts Options) ([]android.Entry, error) {
	out := make([]android.Entry, 0, len(entries))

	for i, e := range entries {
		if i > 0 && opts.RequestDelay > 0 {
			if err := sleep(ctx, opts.RequestDelay); err != nil {
				return nil, err
			}
		}

		text := e.Value
		if strings.TrimSpace(text) != "" {
			translated, err := translateOne(ctx, tr, e, opts)
			if err != nil {
				return nil, err
			}
			text = translated
		}

		if opts.Verbose {
			opts.log("  %s: %q -> %q", e.Name, e.Value, text)
		}
		out = append(out, android.Entry{Name: e.Name, Value: text, Translatable: true, Markup: e.Markup})

		if opts.OnProgress != nil {
			opts.OnProgress(opts.Language, i+1, len(entries))
		}
	}
	return out, nil
}

// translateOne calls the provider with exponential backoff between attempts.
func translateOne(ctx context.Context, tr Translator, e android.Entry, opts Options) (string, error) {
	key := e.Name
	var lastErr error
	attempts := 0
	for attempt := 0; attempt <= opts.MaxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return "", &Error{Key: key, Lang: opts.Language, Attempts: attempts, Err: err}
		}

		attempts++
		translated, err := tr.Translate(ctx, e.Value, opts.Language)
		if err == nil {
			err = checkReply(e, translated)
			if err == nil {
				return translated, nil
			}
		}
		lastErr = err

		if attempt < opts.MaxRetries {
			wait := opts.effectiveRetryDelay() << attempt
			opts.log("Translation of %q failed (%v), retrying in %v", key, err, wait)
			if err := sleep(ctx, wait); err != nil {
				return "", &Error{Key: key, Lang: opts.Language, Attempts: attempts, Err: err}
			}
		}
	}
	return "", &Error{Key: key, Lang: opts.Language, Attempts: attempts, Err: lastErr}
}

func checkReply(e android.Entry, reply string) error {
	if strings.TrimSpace(reply) == "" {
		return fmt.Errorf("provider returned an empty translation")
	}
	if e.Markup {
		if _, err := android.ParseContent(reply); err != nil {
			return fmt.Errorf("reply is not well-formed markup: %w", err)
		}
	}
	return nil
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// truncate truncates a string to maxLen bytes.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
