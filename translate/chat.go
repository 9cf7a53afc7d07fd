package translate

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/minios-linux/stringsync/langmeta"
)

// ---------------------------------------------------------------------------
// OpenAI-compatible chat provider (OpenAI, Ollama, custom endpoints)
// ---------------------------------------------------------------------------

// SystemPrompt is the system prompt for translating one Android UI string.
// {{targetLang}} and {{sourceLang}} are replaced with language names.
const SystemPrompt = `You are a professional translator specializing in mobile app localization. You are translating a UI string for an Android application from {{sourceLang}} to {{targetLang}}.

IMPORTANT TRANSLATION PRINCIPLES:
- Translate for NATURALNESS and FLUENCY in {{targetLang}}, not word-for-word
- Use established terminology in {{targetLang}} appropriate for mobile apps
- Follow platform-specific conventions for {{targetLang}} on Android (button labels, menu items, etc.)

TECHNICAL REQUIREMENTS:
- Preserve all Android format specifiers exactly as-is (%s, %d, %1$s, %2$d, etc.).
- Preserve inline markup such as <xliff:g> or <b> exactly as-is.
- Keep brand names and proper nouns unchanged.
- Return ONLY the translated string: no quotes, explanations, or markdown.`

// Chat translates through an OpenAI-compatible chat/completions endpoint.
type Chat struct {
	prov Provider
	http *resty.Client
	// Prompt overrides SystemPrompt when set.
	Prompt string
}

// NewChat creates a chat translator for the provider.
func NewChat(p Provider) *Chat {
	c := resty.New()
	if p.Timeout > 0 {
		c.SetTimeout(p.Timeout)
	}
	return &Chat{prov: p, http: c}
}

// Translate sends one chat request and returns the cleaned reply.
func (c *Chat) Translate(ctx context.Context, text, targetLang string) (string, error) {
	body, err := buildOpenAIChatRequest(c.prov.Model, c.systemPrompt(targetLang), userPrompt(text, targetLang), 0.3)
	if err != nil {
		return "", fmt.Errorf("building request: %w", err)
	}

	req := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body)
	if c.prov.APIKey != "" {
		req.SetAuthToken(c.prov.APIKey)
	}

	resp, err := req.Post(chatEndpoint(c.prov.BaseURL))
	if err != nil {
		return "", fmt.Errorf("%s request failed: %w", c.prov.Name, err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("%s returned status %d: %s", c.prov.Name, resp.StatusCode(), truncate(resp.String(), 500))
	}

	reply, err := extractResponseText(resp.Body())
	if err != nil {
		return "", err
	}
	return cleanReply(reply, text), nil
}

func (c *Chat) systemPrompt(targetLang string) string {
	prompt := c.Prompt
	if prompt == "" {
		prompt = SystemPrompt
	}
	prompt = strings.ReplaceAll(prompt, "{{targetLang}}", langmeta.Name(targetLang))
	return strings.ReplaceAll(prompt, "{{sourceLang}}", langmeta.Name(c.prov.SourceLang))
}

func userPrompt(text, targetLang string) string {
	return fmt.Sprintf("Translate this string to %s:\n\n%s", langmeta.Name(targetLang), text)
}

// chatEndpoint appends /chat/completions unless the base URL already
// points at it.
func chatEndpoint(baseURL string) string {
	baseURL = strings.TrimRight(baseURL, "/")
	if strings.HasSuffix(baseURL, "/chat/completions") {
		return baseURL
	}
	return baseURL + "/chat/completions"
}

func buildOpenAIChatRequest(model, systemPrompt, userPrompt string, temperature float64) ([]byte, error) {
	type msg struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	}
	req := struct {
		Model       string  `json:"model"`
		Messages    []msg   `json:"messages"`
		Temperature float64 `json:"temperature"`
		Stream      bool    `json:"stream"`
	}{
		Model: model,
		Messages: []msg{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		Temperature: temperature,
		Stream:      false,
	}
	return json.Marshal(req)
}

// extractResponseText returns the assistant text of a chat response.
// Ollama's native {"response": "..."} shape is accepted as well.
func extractResponseText(body []byte) (string, error) {
	var raw struct {
		Error   json.RawMessage `json:"error"`
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
		Response *string `json:"response"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return "", fmt.Errorf("invalid JSON response: %w", err)
	}

	if len(raw.Error) > 0 && string(raw.Error) != "null" {
		var apiErr struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(raw.Error, &apiErr) == nil && apiErr.Message != "" {
			return "", fmt.Errorf("API error: %s", apiErr.Message)
		}
		return "", fmt.Errorf("API error: %s", truncate(string(raw.Error), 300))
	}

	if len(raw.Choices) > 0 {
		return raw.Choices[0].Message.Content, nil
	}
	if raw.Response != nil {
		return *raw.Response, nil
	}
	return "", fmt.Errorf("could not extract text from response: %s", truncate(string(body), 500))
}

var markdownCodeBlock = regexp.MustCompile("(?s)^```[a-zA-Z]*\\s*(.*?)\\s*```$")

// quotePairs are opening/closing quotes stripped from replies.
var quotePairs = [][2]string{{`"`, `"`}, {"«", "»"}, {"“", "”"}}

// cleanReply strips what models commonly wrap around a bare answer: code
// fences, surrounding whitespace and quotes the source did not have.
func cleanReply(reply, source string) string {
	reply = strings.TrimSpace(reply)
	if m := markdownCodeBlock.FindStringSubmatch(reply); len(m) > 1 {
		reply = m[1]
	}
	for _, q := range quotePairs {
		if len(reply) > len(q[0])+len(q[1]) && strings.HasPrefix(reply, q[0]) && strings.HasSuffix(reply, q[1]) && !strings.HasPrefix(source, q[0]) {
			return reply[len(q[0]) : len(reply)-len(q[1])]
		}
	}
	return reply
}
