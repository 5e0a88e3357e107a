package llm

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"inmo_backend/internal/config"
)

func TestNewClient_Disabled(t *testing.T) {
	cfg := config.GeminiConfig{
		Enabled: false,
	}
	log := slog.New(slog.NewTextHandler(os.Stdout, nil))

	c := NewClient(cfg, log)

	if c.IsEnabled() {
		t.Error("expected client to be disabled")
	}
}

func TestNewClient_Enabled(t *testing.T) {
	cfg := config.GeminiConfig{
		Enabled: true,
		BaseURL: "https://generativelanguage.googleapis.com/v1beta",
		APIKey:  "test-key",
		Model:   "gemini-2.5-pro",
	}
	log := slog.New(slog.NewTextHandler(os.Stdout, nil))

	c := NewClient(cfg, log)

	if !c.IsEnabled() {
		t.Error("expected client to be enabled")
	}
}

func TestNoopClient_ExtractSearchFilter(t *testing.T) {
	log := slog.New(slog.NewTextHandler(os.Stdout, nil))
	c := &noopClient{log: log}

	_, err := c.ExtractSearchFilter(context.Background(), "casa con piscina")
	if !errors.Is(err, ErrDisabled) {
		t.Errorf("expected ErrDisabled, got %v", err)
	}
}

// geminiResponse собирает JSON в форме ответа generateContent.
func geminiResponse(t *testing.T, text string) []byte {
	t.Helper()
	resp := map[string]any{
		"candidates": []any{
			map[string]any{
				"content": map[string]any{
					"parts": []any{map[string]any{"text": text}},
				},
			},
		},
	}
	b, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("failed to marshal response: %v", err)
	}
	return b
}

func newTestClient(t *testing.T, srvURL string) Client {
	t.Helper()
	log := slog.New(slog.NewTextHandler(os.Stdout, nil))
	return NewClient(config.GeminiConfig{
		Enabled: true,
		BaseURL: srvURL,
		APIKey:  "test-key",
		Model:   "gemini-2.5-pro",
	}, log)
}

func TestClient_ExtractSearchFilter(t *testing.T) {
	var gotPath string
	var gotKey string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-goog-api-key")

		// Модель часто оборачивает JSON в пояснительный текст
		text := "Claro, aquí está el JSON:\n" +
			`{"tipo_propiedad": "Apartamento", "amenities": ["balcón"], "precio_max": 400, "tipo_transaccion": "Alquiler", "ubicacion_palabra_clave": "universidad"}` +
			"\nEspero que sirva."
		w.Write(geminiResponse(t, text))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)

	filter, err := c.ExtractSearchFilter(context.Background(), "departamento con balcón cerca de la universidad, menos de 400 USD")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotPath != "/models/gemini-2.5-pro:generateContent" {
		t.Errorf("unexpected path: %s", gotPath)
	}
	if gotKey != "test-key" {
		t.Errorf("expected api key header, got %q", gotKey)
	}

	if filter.PropertyType == nil || *filter.PropertyType != "Apartamento" {
		t.Errorf("unexpected property type: %v", filter.PropertyType)
	}
	if filter.PriceMax == nil || *filter.PriceMax != 400 {
		t.Errorf("unexpected price max: %v", filter.PriceMax)
	}
	if filter.TransactionType == nil || string(*filter.TransactionType) != "Alquiler" {
		t.Errorf("unexpected transaction type: %v", filter.TransactionType)
	}
	if len(filter.Amenities) != 1 || filter.Amenities[0] != "balcón" {
		t.Errorf("unexpected amenities: %v", filter.Amenities)
	}
	if filter.PriceMin != nil || filter.BedroomsMin != nil {
		t.Error("expected absent fields to stay nil")
	}
}

func TestClient_ExtractSearchFilter_BadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(geminiResponse(t, "no puedo ayudarte con eso"))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)

	_, err := c.ExtractSearchFilter(context.Background(), "algo raro")
	if err == nil {
		t.Fatal("expected error on non-JSON response")
	}
}

func TestClient_GenerateListing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := json.Marshal(map[string]string{
			"titulo_generado":      "Casa amplia en zona 10 con jardín",
			"descripcion_generada": "<p>Un hogar para su familia.</p>",
		})
		w.Write(geminiResponse(t, string(body)))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)

	resp, err := c.GenerateListing(context.Background(), GenerateListingRequest{
		BaseText:  "casa de 3 habitaciones con jardín",
		Latitude:  14.6,
		Longitude: -90.5,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(resp.Title, "zona 10") {
		t.Errorf("unexpected title: %s", resp.Title)
	}
	if !strings.Contains(resp.Description, "<p>") {
		t.Errorf("expected HTML description, got %s", resp.Description)
	}
}

func TestClient_GenerateContent_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)

	_, err := c.ExtractSearchFilter(context.Background(), "casa")
	if err == nil {
		t.Fatal("expected error on non-200 status")
	}
}

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", `{"a":1}`, `{"a":1}`},
		{"fenced", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"narrated", "el resultado es {\"a\":1} listo", `{"a":1}`},
		{"no json", "sin datos", "sin datos"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractJSON(tt.in); got != tt.want {
				t.Errorf("extractJSON(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
