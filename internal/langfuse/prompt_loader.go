package langfuse

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
)

// PromptSource tells where a loaded prompt came from.
type PromptSource string

const (
	SourceLangfuse PromptSource = "langfuse"
	SourceFile     PromptSource = "file"
)

// Prompt is a system prompt resolved from prompt management or the local
// fallback file. Version is zero for file prompts.
type Prompt struct {
	Name    string
	Version int64
	Text    string
	Source  PromptSource
}

// PromptLoaderConfig describes how to load a prompt from Langfuse or fallback storage.
type PromptLoaderConfig struct {
	BaseURL   string
	PublicKey string
	SecretKey string

	PromptName  string
	PromptLabel string
	// SavePath is the local fallback; a successful fetch refreshes it.
	SavePath string

	Logger *logrus.Logger
}

var errLangfuseDisabled = errors.New("langfuse integration disabled")

// LoadPrompt fetches the labelled prompt from Langfuse and falls back to
// the local file when the fetch is not possible.
func LoadPrompt(ctx context.Context, cfg PromptLoaderConfig) (Prompt, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	log := logger.WithFields(logrus.Fields{"component": "langfuse", "prompt": cfg.PromptName})

	if cfg.PromptName != "" {
		prompt, err := fetchPrompt(ctx, cfg)
		if err == nil {
			if err := savePromptToFile(cfg.SavePath, prompt.Text); err != nil {
				log.WithError(err).Warn("failed to cache prompt locally")
			}
			log.WithField("version", prompt.Version).Info("prompt loaded")
			return prompt, nil
		}
		if !errors.Is(err, errLangfuseDisabled) {
			log.WithError(err).Warn("prompt fetch failed, using local fallback")
		}
	}

	text, err := readPromptFromFile(cfg.SavePath)
	if err != nil {
		return Prompt{}, err
	}
	return Prompt{Name: cfg.PromptName, Text: text, Source: SourceFile}, nil
}

func promptURL(cfg PromptLoaderConfig) (string, error) {
	parsed, err := url.Parse(strings.TrimSuffix(cfg.BaseURL, "/"))
	if err != nil {
		return "", fmt.Errorf("invalid LANGFUSE_BASE_URL: %w", err)
	}
	prefix := strings.TrimSuffix(parsed.EscapedPath(), "/") + "/api/public/v2/prompts/"
	parsed.RawPath = prefix + url.PathEscape(cfg.PromptName)
	parsed.Path, err = url.PathUnescape(parsed.RawPath)
	if err != nil {
		return "", fmt.Errorf("invalid prompt path: %w", err)
	}
	if cfg.PromptLabel != "" {
		parsed.RawQuery = url.Values{"label": {cfg.PromptLabel}}.Encode()
	}
	return parsed.String(), nil
}

func fetchPrompt(ctx context.Context, cfg PromptLoaderConfig) (Prompt, error) {
	if cfg.BaseURL == "" || cfg.PublicKey == "" || cfg.SecretKey == "" {
		return Prompt{}, errLangfuseDisabled
	}

	endpoint, err := promptURL(cfg)
	if err != nil {
		return Prompt{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Prompt{}, fmt.Errorf("create prompt request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.SetBasicAuth(cfg.PublicKey, cfg.SecretKey)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return Prompt{}, fmt.Errorf("call Langfuse prompt API: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return Prompt{}, fmt.Errorf("read prompt response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return Prompt{}, fmt.Errorf("Langfuse prompt API returned %d: %s", resp.StatusCode, truncate(strings.TrimSpace(string(body)), 512))
	}
	if !gjson.ValidBytes(body) {
		return Prompt{}, errors.New("prompt response is not valid JSON")
	}

	text, err := promptText(gjson.GetBytes(body, "type").String(), gjson.GetBytes(body, "prompt"))
	if err != nil {
		return Prompt{}, err
	}
	return Prompt{
		Name:    cfg.PromptName,
		Version: gjson.GetBytes(body, "version").Int(),
		Text:    text,
		Source:  SourceLangfuse,
	}, nil
}

// promptText returns text prompts as-is and renders chat prompts as
// "ROLE: content" blocks. Placeholders stay as {{name}}.
func promptText(kind string, prompt gjson.Result) (string, error) {
	switch kind {
	case "", "text":
		if prompt.Type != gjson.String {
			return "", errors.New("text prompt is not a string")
		}
		return prompt.String(), nil
	case "chat":
		if !prompt.IsArray() {
			return "", errors.New("chat prompt is not an array")
		}
		var blocks []string
		prompt.ForEach(func(_, msg gjson.Result) bool {
			content := msg.Get("content").String()
			if msg.Get("type").String() == "placeholder" {
				content = ""
				if name := msg.Get("name").String(); name != "" {
					content = "{{" + name + "}}"
				}
			}
			if content == "" {
				return true
			}
			role := msg.Get("role").String()
			if role == "" {
				role = "message"
			}
			blocks = append(blocks, strings.ToUpper(role)+": "+content)
			return true
		})
		return strings.Join(blocks, "\n\n"), nil
	default:
		return "", fmt.Errorf("unsupported prompt type %q", kind)
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

func readPromptFromFile(path string) (string, error) {
	if path == "" {
		return "", errors.New("no local prompt file configured")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read local prompt file: %w", err)
	}
	return string(data), nil
}

func savePromptToFile(path, prompt string) error {
	if path == "" {
		return nil
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, []byte(prompt), 0o600)
}
