package translate

import (
	"context"
	"fmt"

	gcloud "cloud.google.com/go/translate"
	"github.com/bregydoc/gtranslate"
	"golang.org/x/text/language"
	"google.golang.org/api/option"
)

// ---------------------------------------------------------------------------
// Google Translate web endpoint (no key)
// ---------------------------------------------------------------------------

// Google translates through the public Google Translate web endpoint. It
// needs no credentials but is rate limited by Google.
type Google struct {
	// SourceLang is the source language code ("en").
	SourceLang string
}

// Translate translates text into targetLang. The underlying client has no
// context support, so cancellation is only checked before the call.
func (g *Google) Translate(ctx context.Context, text, targetLang string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	out, err := gtranslate.TranslateWithParams(text, gtranslate.TranslationParams{
		From: g.SourceLang,
		To:   targetLang,
	})
	if err != nil {
		return "", fmt.Errorf("google translate: %w", err)
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Google Cloud Translation API (v2, API key)
// ---------------------------------------------------------------------------

// GoogleCloud translates through the Cloud Translation API.
type GoogleCloud struct {
	client *gcloud.Client
	source language.Tag
}

// NewGoogleCloud creates a Cloud Translation client authenticated with an
// API key.
func NewGoogleCloud(ctx context.Context, apiKey, sourceLang string) (*GoogleCloud, error) {
	source, err := language.Parse(sourceLang)
	if err != nil {
		return nil, fmt.Errorf("invalid source language %q: %w", sourceLang, err)
	}
	client, err := gcloud.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("creating Cloud Translation client: %w", err)
	}
	return &GoogleCloud{client: client, source: source}, nil
}

// Translate translates text into targetLang as plain text (no HTML).
func (g *GoogleCloud) Translate(ctx context.Context, text, targetLang string) (string, error) {
	target, err := language.Parse(targetLang)
	if err != nil {
		return "", fmt.Errorf("invalid target language %q: %w", targetLang, err)
	}
	resp, err := g.client.Translate(ctx, []string{text}, target, &gcloud.Options{
		Source: g.source,
		Format: gcloud.Text,
	})
	if err != nil {
		return "", fmt.Errorf("cloud translation: %w", err)
	}
	if len(resp) == 0 {
		return "", fmt.Errorf("cloud translation: empty response")
	}
	return resp[0].Text, nil
}

// Close releases the client's resources.
func (g *GoogleCloud) Close() error {
	return g.client.Close()
}
