// Package ai implements the external correction collaborator on top of
// an OpenAI-compatible chat endpoint. The pipeline treats it as opaque:
// text in, corrected text plus an optional correction list out.
package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"go.uber.org/zap"

	"github.com/vyakarni1/vyakarni/internal/model"
	"github.com/vyakarni1/vyakarni/internal/pipeline"
)

const defaultModel = string(openai.ChatModelGPT4oMini)

const systemPrompt = `आप एक हिन्दी व्याकरण सुधारक हैं। दिए गए पाठ की वर्तनी, व्याकरण और विराम चिह्नों को सुधारें। केवल निम्न JSON लौटाएँ, और कुछ नहीं:
{"correctedText": "...", "corrections": [{"incorrect": "...", "correct": "...", "reason": "...", "type": "grammar|spelling|punctuation|style"}]}
पाठ का अर्थ और शैली न बदलें; केवल त्रुटियाँ सुधारें।`

// Config holds the corrector's client settings.
type Config struct {
	APIKey     string
	Model      string
	BaseURL    string        // optional, for compatible endpoints and tests
	Timeout    time.Duration // HTTP timeout
	MaxRetries int           // attempts for transient failures
	RetryDelay time.Duration // base backoff delay
	HTTPClient *http.Client  // optional (tests)
}

// Corrector calls the chat endpoint and maps its answer to the
// pipeline's ExternalResult shape.
type Corrector struct {
	client     openai.Client
	model      string
	maxRetries int
	retryDelay time.Duration
	log        *zap.Logger
}

// New creates a Corrector. Zero-value config fields get conservative
// defaults.
func New(cfg Config, log *zap.Logger) *Corrector {
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 60 * time.Second
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}
	if cfg.RetryDelay == 0 {
		cfg.RetryDelay = 2 * time.Second
	}
	if log == nil {
		log = zap.NewNop()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithHTTPClient(httpClient),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	return &Corrector{
		client:     openai.NewClient(opts...),
		model:      cfg.Model,
		maxRetries: cfg.MaxRetries,
		retryDelay: cfg.RetryDelay,
		log:        log,
	}
}

// chatAnswer is the JSON shape the system prompt asks the model for.
type chatAnswer struct {
	CorrectedText string `json:"correctedText"`
	Corrections   []struct {
		Incorrect string `json:"incorrect"`
		Correct   string `json:"correct"`
		Reason    string `json:"reason"`
		Type      string `json:"type"`
	} `json:"corrections"`
}

// Correct sends text for correction. Transient failures are retried with
// backoff inside this collaborator; the pipeline itself never retries.
func (c *Corrector) Correct(ctx context.Context, text string) (*pipeline.ExternalResult, error) {
	var content string
	err := retry.Do(
		func() error {
			resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
				Model: openai.ChatModel(c.model),
				Messages: []openai.ChatCompletionMessageParamUnion{
					openai.SystemMessage(systemPrompt),
					openai.UserMessage(text),
				},
				Temperature: openai.Float(0.2),
			})
			if err != nil {
				return err
			}
			if len(resp.Choices) == 0 {
				return fmt.Errorf("empty completion response")
			}
			content = resp.Choices[0].Message.Content
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(uint(c.maxRetries)),
		retry.Delay(c.retryDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("ai correction call: %w", err)
	}
	res := parseAnswer(content, text)
	c.log.Debug("ai correction received",
		zap.Int("input_len", len(text)),
		zap.Int("output_len", len(res.CorrectedText)),
		zap.Int("corrections", len(res.Corrections)))
	return res, nil
}

// Func adapts the corrector to the pipeline's injected-function contract.
func (c *Corrector) Func() pipeline.ExternalFunc {
	return c.Correct
}

// parseAnswer maps the model's reply to an ExternalResult. A reply that
// is not the requested JSON is treated as plain corrected text with no
// correction list; the pipeline derives corrections by alignment then.
func parseAnswer(content, original string) *pipeline.ExternalResult {
	raw := strings.TrimSpace(content)
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")
	raw = strings.TrimSpace(raw)

	var ans chatAnswer
	if err := json.Unmarshal([]byte(raw), &ans); err != nil || ans.CorrectedText == "" {
		if raw == "" {
			raw = original
		}
		return &pipeline.ExternalResult{CorrectedText: raw}
	}

	out := &pipeline.ExternalResult{CorrectedText: ans.CorrectedText}
	for _, c := range ans.Corrections {
		if c.Incorrect == "" || c.Correct == "" || c.Incorrect == c.Correct {
			continue
		}
		typ := model.CorrectionType(c.Type)
		switch typ {
		case model.TypeGrammar, model.TypeSpelling, model.TypePunctuation, model.TypeStyle:
		default:
			typ = model.TypeGrammar
		}
		reason := c.Reason
		if reason == "" {
			reason = fmt.Sprintf("'%s' के स्थान पर '%s' उपयुक्त है", c.Incorrect, c.Correct)
		}
		out.Corrections = append(out.Corrections, model.Correction{
			Incorrect: c.Incorrect,
			Correct:   c.Correct,
			Reason:    reason,
			Type:      typ,
			Source:    model.SourceAI,
		})
	}
	return out
}
