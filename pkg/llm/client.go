// Package llm 提供了调用 Gemini generateContent 接口的客户端。
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"seyone-academy-go/internal/config"
)

var (
	// ErrMissingCredential is returned before any request is made when no API key is configured.
	ErrMissingCredential = errors.New("llm api key is not configured")
	// ErrEmptyReply is returned when the response carries no candidate text.
	ErrEmptyReply = errors.New("llm returned no text")
)

// Client defines the interface for an LLM client.
type Client interface {
	// GenerateReply sends the prior conversation plus one new user message and
	// returns the model's text.
	GenerateReply(ctx context.Context, req GenerateRequest) (string, error)
}

// Message is one prior conversation turn. Role is "user" or "model".
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// GenerationParams controls sampling. Nil fields fall back to the configured values.
type GenerationParams struct {
	Temperature *float64
	TopP        *float64
	MaxTokens   *int
}

// GenerateRequest is one advisor call.
type GenerateRequest struct {
	SystemInstruction string
	History           []Message
	Message           string
	Generation        *GenerationParams
}

type geminiClient struct {
	cfg    config.LLMConfig
	client *http.Client
}

// NewClient 根据配置创建一个新的 LLM 客户端
func NewClient(cfg config.LLMConfig) Client {
	return NewClientWithHTTP(cfg, &http.Client{})
}

// NewClientWithHTTP is NewClient with a caller-supplied http.Client.
func NewClientWithHTTP(cfg config.LLMConfig, hc *http.Client) Client {
	return &geminiClient{cfg: cfg, client: hc}
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type generationConfig struct {
	Temperature     *float64 `json:"temperature,omitempty"`
	TopP            *float64 `json:"topP,omitempty"`
	MaxOutputTokens *int     `json:"maxOutputTokens,omitempty"`
}

type generateContentRequest struct {
	Contents          []content         `json:"contents"`
	SystemInstruction *content          `json:"systemInstruction,omitempty"`
	GenerationConfig  *generationConfig `json:"generationConfig,omitempty"`
}

type generateContentResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

func (c *geminiClient) GenerateReply(ctx context.Context, in GenerateRequest) (string, error) {
	if strings.TrimSpace(c.cfg.APIKey) == "" {
		return "", ErrMissingCredential
	}

	reqBody := generateContentRequest{
		Contents:         make([]content, 0, len(in.History)+1),
		GenerationConfig: c.generationConfig(in.Generation),
	}
	for _, m := range in.History {
		reqBody.Contents = append(reqBody.Contents, content{Role: m.Role, Parts: []part{{Text: m.Content}}})
	}
	reqBody.Contents = append(reqBody.Contents, content{Role: "user", Parts: []part{{Text: in.Message}}})
	if in.SystemInstruction != "" {
		reqBody.SystemInstruction = &content{Parts: []part{{Text: in.SystemInstruction}}}
	}

	reqBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal generate request: %w", err)
	}

	url := strings.TrimRight(c.cfg.BaseURL, "/") + "/models/" + c.cfg.Model + ":generateContent"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(reqBytes))
	if err != nil {
		return "", fmt.Errorf("failed to create generate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.cfg.APIKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to call generate api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("generate api returned non-200 status: %s, body: %s", resp.Status, string(bodyBytes))
	}

	var out generateContentResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("failed to decode generate response: %w", err)
	}
	if len(out.Candidates) == 0 {
		return "", ErrEmptyReply
	}
	var sb strings.Builder
	for _, p := range out.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	if strings.TrimSpace(sb.String()) == "" {
		return "", ErrEmptyReply
	}
	return sb.String(), nil
}

// generationConfig merges per-call params over the configured defaults. Zero
// config values are left out of the request.
func (c *geminiClient) generationConfig(gen *GenerationParams) *generationConfig {
	gc := &generationConfig{}
	if c.cfg.Generation.Temperature != 0 {
		t := c.cfg.Generation.Temperature
		gc.Temperature = &t
	}
	if c.cfg.Generation.TopP != 0 {
		p := c.cfg.Generation.TopP
		gc.TopP = &p
	}
	if c.cfg.Generation.MaxTokens != 0 {
		m := c.cfg.Generation.MaxTokens
		gc.MaxOutputTokens = &m
	}
	if gen != nil {
		if gen.Temperature != nil {
			gc.Temperature = gen.Temperature
		}
		if gen.TopP != nil {
			gc.TopP = gen.TopP
		}
		if gen.MaxTokens != nil {
			gc.MaxOutputTokens = gen.MaxTokens
		}
	}
	if gc.Temperature == nil && gc.TopP == nil && gc.MaxOutputTokens == nil {
		return nil
	}
	return gc
}
