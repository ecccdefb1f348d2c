package interpreter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Kullendorff/systembolaget/internal/domain"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// interpretPrompt instructs the model to turn a natural-language wine
// question into the filter-parameter JSON the engine consumes. The examples
// pin the output contract; the engine never sees free text.
const interpretPrompt = `Analysera denna vinförfrågan och extrahera sökparametrar: %q

Svara med JSON enligt detta format:
{
  "country": "Land eller utelämna",
  "grapes": ["lista med druvor"],
  "minPrice": nummer,
  "maxPrice": nummer,
  "categoryLevel1": "Rött vin/Vitt vin/Rosévin/Mousserande vin",
  "tasteClockBodyMin": 1-12,
  "tasteClockBodyMax": 1-12,
  "searchText": "fritextsökning",
  "dish": "maträtt om det är matmatchning"
}

Utelämna fält du inte kan härleda ur frågan.

Exempel:
"Italienskt rött under 200 kr" -> {"country": "Italien", "categoryLevel1": "Rött vin", "maxPrice": 200}
"Vad passar till lax?" -> {"dish": "lax", "categoryLevel1": "Vitt vin", "tasteClockBodyMin": 3, "tasteClockBodyMax": 8}
"Fylliga Barolo" -> {"searchText": "Barolo", "categoryLevel1": "Rött vin", "tasteClockBodyMin": 8}
"runt 200 kr" -> {"minPrice": 150, "maxPrice": 250}

VIKTIGT: När någon säger "runt X kr" eller "omkring X kr", sätt minPrice till X-50 och maxPrice till X+50.

SVARA ENDAST MED JSON!`

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model,omitempty"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Config holds interpreter client configuration
type Config struct {
	Host       string
	Model      string
	Timeout    time.Duration
	MaxRetries int
	// RequestsPerMinute caps outbound calls to the interpretation service.
	RequestsPerMinute int
}

// Client translates free-form questions into filter parameters through an
// OpenAI-compatible chat-completions endpoint.
type Client struct {
	httpClient  *http.Client
	host        string
	model       string
	maxRetries  int
	rateLimiter *rate.Limiter
	logger      *zap.Logger
}

// NewClient creates an interpreter client with sensible defaults for any
// unset config field.
func NewClient(cfg Config, logger *zap.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}
	if cfg.RequestsPerMinute <= 0 {
		cfg.RequestsPerMinute = 60
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	limiter := rate.NewLimiter(rate.Limit(float64(cfg.RequestsPerMinute)/60.0), 5)

	return &Client{
		httpClient:  &http.Client{Timeout: cfg.Timeout},
		host:        strings.TrimRight(cfg.Host, "/"),
		model:       cfg.Model,
		maxRetries:  cfg.MaxRetries,
		rateLimiter: limiter,
		logger:      logger,
	}
}

// Interpret asks the model for filter parameters. A response that is not
// valid JSON degrades to empty parameters rather than an error: an empty
// filter is a valid (match-everything) query, and the search pipeline
// handles it like any other.
func (c *Client) Interpret(ctx context.Context, query string) (*domain.FilterParams, error) {
	if strings.TrimSpace(query) == "" {
		return nil, domain.ErrInvalidRequest
	}

	reqBody := chatRequest{
		Model:       c.model,
		Messages:    []chatMessage{{Role: "user", Content: fmt.Sprintf(interpretPrompt, query)}},
		Temperature: 0,
		MaxTokens:   500,
	}
	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal interpret request: %w", err)
	}

	url := c.host + "/v1/chat/completions"

	var lastErr error
	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter error: %w", err)
		}

		body, err := c.doRequest(ctx, url, jsonBody)
		if err != nil {
			lastErr = err
			if ctx.Err() != nil {
				break
			}
			c.logger.Warn("interpreter request failed",
				zap.Int("attempt", attempt), zap.Error(err))
			time.Sleep(exponentialBackoff(attempt))
			continue
		}

		var resp chatResponse
		if err := json.Unmarshal(body, &resp); err != nil {
			return nil, fmt.Errorf("decode interpreter response: %w", err)
		}
		if len(resp.Choices) == 0 {
			return nil, fmt.Errorf("%w: empty response", domain.ErrInterpreterFailure)
		}

		params := parseParams(resp.Choices[0].Message.Content, c.logger)
		c.logger.Debug("query interpreted",
			zap.String("query", query),
			zap.Bool("empty", params.IsEmpty()))
		return params, nil
	}

	return nil, fmt.Errorf("%w: %v", domain.ErrInterpreterFailure, lastErr)
}

func (c *Client) doRequest(ctx context.Context, url string, body []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create interpret request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read interpreter response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", domain.ErrInterpreterFailure, resp.StatusCode)
	}
	return respBody, nil
}

// parseParams extracts filter parameters from the model's reply. Models
// wrap JSON in code fences or prose despite instructions, so the first
// JSON object in the text is extracted before unmarshaling. Unparsable
// content yields empty parameters.
func parseParams(content string, logger *zap.Logger) *domain.FilterParams {
	var params domain.FilterParams

	raw := extractJSONObject(content)
	if raw == "" {
		logger.Warn("interpreter reply contained no JSON object")
		return &params
	}
	if err := json.Unmarshal([]byte(raw), &params); err != nil {
		logger.Warn("interpreter reply not parsable, falling back to empty filter",
			zap.Error(err))
		return &domain.FilterParams{}
	}
	return &params
}

// extractJSONObject returns the first balanced {...} block in s, or "".
func extractJSONObject(s string) string {
	start := strings.Index(s, "{")
	if start < 0 {
		return ""
	}
	depth := 0
	for i := start; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}
	return ""
}

// exponentialBackoff returns the wait before the next retry attempt.
func exponentialBackoff(attempt int) time.Duration {
	return time.Duration(1<<(attempt-1)) * 500 * time.Millisecond
}
