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

	"inmo_backend/internal/config"
	"inmo_backend/internal/domain"
	"log/slog"
)

// ErrDisabled возвращается noop-клиентом, когда Gemini выключен конфигом.
var ErrDisabled = errors.New("llm service is disabled")

// Client — клиент Gemini API для AI-функций бэкенда.
type Client interface {
	// ExtractSearchFilter извлекает структурированный фильтр поиска
	// из запроса на естественном языке.
	ExtractSearchFilter(ctx context.Context, query string) (*domain.SearchFilter, error)
	// GenerateListing генерирует заголовок и HTML-описание объявления.
	GenerateListing(ctx context.Context, req GenerateListingRequest) (*GenerateListingResponse, error)
	// IsEnabled проверяет, включен ли сервис.
	IsEnabled() bool
}

// GenerateListingRequest — запрос на генерацию текста объявления.
type GenerateListingRequest struct {
	BaseText  string
	Latitude  float64
	Longitude float64
}

// GenerateListingResponse — сгенерированный контент объявления.
// Поля повторяют JSON-контракт ответа модели.
type GenerateListingResponse struct {
	Title       string `json:"titulo_generado"`
	Description string `json:"descripcion_generada"`
}

type client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
	log        *slog.Logger
}

// NewClient создаёт новый клиент Gemini API.
func NewClient(cfg config.GeminiConfig, log *slog.Logger) Client {
	if !cfg.Enabled {
		return &noopClient{log: log}
	}

	return &client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		log:     log,
	}
}

// ExtractSearchFilter извлекает фильтр поиска из запроса пользователя.
func (c *client) ExtractSearchFilter(ctx context.Context, query string) (*domain.SearchFilter, error) {
	const op = "llm.Client.ExtractSearchFilter"

	prompt := buildExtractionPrompt(query)

	text, err := c.generateContent(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var filter domain.SearchFilter
	jsonStr := extractJSON(text)
	if err := json.Unmarshal([]byte(jsonStr), &filter); err != nil {
		return nil, fmt.Errorf("%s: failed to parse response: %w", op, err)
	}

	return &filter, nil
}

// GenerateListing генерирует маркетинговый текст объявления.
func (c *client) GenerateListing(ctx context.Context, req GenerateListingRequest) (*GenerateListingResponse, error) {
	const op = "llm.Client.GenerateListing"

	prompt := buildListingPrompt(req)

	text, err := c.generateContent(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var result GenerateListingResponse
	jsonStr := extractJSON(text)
	if err := json.Unmarshal([]byte(jsonStr), &result); err != nil {
		return nil, fmt.Errorf("%s: failed to parse response: %w", op, err)
	}

	return &result, nil
}

func (c *client) IsEnabled() bool {
	return true
}

// generateContentRequest — запрос к Gemini generateContent API.
type generateContentRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

// generateContentResponse — ответ Gemini generateContent API.
type generateContentResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

func (c *client) generateContent(ctx context.Context, prompt string) (string, error) {
	const op = "llm.Client.generateContent"

	url := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, c.model)

	reqBody, err := json.Marshal(generateContentRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("%s: failed to marshal request: %w", op, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(reqBody))
	if err != nil {
		return "", fmt.Errorf("%s: failed to create request: %w", op, err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("x-goog-api-key", c.apiKey)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("%s: failed to send request: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("%s: unexpected status code %d: %s", op, resp.StatusCode, string(body))
	}

	var genResp generateContentResponse
	if err := json.NewDecoder(resp.Body).Decode(&genResp); err != nil {
		return "", fmt.Errorf("%s: failed to decode response: %w", op, err)
	}

	if len(genResp.Candidates) == 0 || len(genResp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("%s: no candidates in response", op)
	}

	return genResp.Candidates[0].Content.Parts[0].Text, nil
}

// extractJSON извлекает JSON из текста ответа модели.
func extractJSON(text string) string {
	// Ищем первую { и последнюю }
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")

	if start != -1 && end != -1 && end > start {
		return text[start : end+1]
	}
	return text
}

// noopClient — заглушка для случая, когда Gemini отключен.
type noopClient struct {
	log *slog.Logger
}

func (c *noopClient) ExtractSearchFilter(ctx context.Context, query string) (*domain.SearchFilter, error) {
	c.log.Debug("LLM service is disabled")
	return nil, ErrDisabled
}

func (c *noopClient) GenerateListing(ctx context.Context, req GenerateListingRequest) (*GenerateListingResponse, error) {
	c.log.Debug("LLM service is disabled")
	return nil, ErrDisabled
}

func (c *noopClient) IsEnabled() bool {
	return false
}
