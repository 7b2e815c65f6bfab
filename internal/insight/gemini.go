package insight

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"

	"github.com/mmynk/aquaflow/internal/models"
)

const generatePath = "/v1beta/models/{model}:generateContent"

// GeminiClient calls the Gemini generateContent REST endpoint.
type GeminiClient struct {
	http    *resty.Client
	model   string
	limiter *rate.Limiter
}

// Ensure GeminiClient implements both provider interfaces
var (
	_ Analyzer    = (*GeminiClient)(nil)
	_ MeterReader = (*GeminiClient)(nil)
)

// GeminiOptions configures NewGeminiClient.
type GeminiOptions struct {
	APIKey            string
	Model             string
	BaseURL           string
	Timeout           time.Duration
	RequestsPerSecond float64
}

// NewGeminiClient creates a client; calls are rate limited to
// RequestsPerSecond with a burst of one.
func NewGeminiClient(opts GeminiOptions) *GeminiClient {
	client := resty.New().
		SetBaseURL(strings.TrimRight(opts.BaseURL, "/")).
		SetTimeout(opts.Timeout).
		SetHeader("x-goog-api-key", opts.APIKey).
		SetHeader("Content-Type", "application/json")

	return &GeminiClient{
		http:    client,
		model:   opts.Model,
		limiter: rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), 1),
	}
}

type generateRequest struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inlineData,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type generationConfig struct {
	ResponseMimeType string `json:"responseMimeType,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

type apiError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// Analyze asks the model for a JSON analysis of the customer's recent readings.
func (c *GeminiClient) Analyze(ctx context.Context, customer models.Customer) (Result, error) {
	text, err := c.generate(ctx, generateRequest{
		Contents:         []content{{Parts: []part{{Text: AnalysisPrompt(customer)}}}},
		GenerationConfig: &generationConfig{ResponseMimeType: "application/json"},
	})
	if err != nil {
		return Result{}, err
	}
	return parseAnalysis(text)
}

// ExtractReading asks the model to read the meter display in image.
func (c *GeminiClient) ExtractReading(ctx context.Context, image []byte, mimeType string) (string, error) {
	if len(image) == 0 {
		return "", ErrNoReading
	}
	if mimeType == "" {
		mimeType = "image/jpeg"
	}
	text, err := c.generate(ctx, generateRequest{
		Contents: []content{{Parts: []part{
			{InlineData: &inlineData{MimeType: mimeType, Data: base64.StdEncoding.EncodeToString(image)}},
			{Text: OCRPrompt},
		}}},
	})
	if err != nil {
		return "", err
	}
	return parseMeterValue(text)
}

func (c *GeminiClient) generate(ctx context.Context, req generateRequest) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit wait: %w", err)
	}

	var out generateResponse
	var apiErr apiError
	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParam("model", c.model).
		SetBody(req).
		SetResult(&out).
		SetError(&apiErr).
		Post(generatePath)
	if err != nil {
		return "", fmt.Errorf("generateContent request failed: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("generateContent returned %d: %s", resp.StatusCode(), apiErr.Error.Message)
	}

	for _, cand := range out.Candidates {
		for _, p := range cand.Content.Parts {
			if p.Text != "" {
				return p.Text, nil
			}
		}
	}
	return "", fmt.Errorf("generateContent returned no text")
}

// parseAnalysis decodes {"analysis": ..., "alertLevel": ...}, tolerating a
// markdown code fence around the JSON.
func parseAnalysis(text string) (Result, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")

	var raw struct {
		Analysis   string `json:"analysis"`
		AlertLevel string `json:"alertLevel"`
	}
	if err := json.Unmarshal([]byte(strings.TrimSpace(text)), &raw); err != nil {
		return Result{}, fmt.Errorf("failed to decode analysis: %w", err)
	}
	if strings.TrimSpace(raw.Analysis) == "" {
		return Result{}, fmt.Errorf("analysis is empty")
	}
	level, err := models.ParseAlertLevel(strings.ToLower(strings.TrimSpace(raw.AlertLevel)))
	if err != nil {
		return Result{}, err
	}
	return Result{Analysis: strings.TrimSpace(raw.Analysis), AlertLevel: level}, nil
}

// meterValue is what a meter display can show: digits with an optional
// fractional part. Signs, exponents, hex and NaN/Inf are not readings.
var meterValue = regexp.MustCompile(`^[0-9]+(\.[0-9]+)?$`)

// parseMeterValue returns the reading with thousands separators removed.
func parseMeterValue(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" || strings.EqualFold(text, "ERROR") {
		return "", ErrNoReading
	}
	value := strings.ReplaceAll(text, ",", "")
	if !meterValue.MatchString(value) {
		return "", fmt.Errorf("%w: %q is not a meter value", ErrNoReading, text)
	}
	return value, nil
}
