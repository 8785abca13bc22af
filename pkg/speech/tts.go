package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// HTTPSynthesizer produces WAV audio through an OpenAI-compatible
// /audio/speech endpoint.
type HTTPSynthesizer struct {
	BaseURL   string
	APIKey    string
	ModelName string
	Voice     string
	Client    *http.Client
}

// NewHTTPSynthesizer creates a text-to-speech client
func NewHTTPSynthesizer(baseURL, apiKey, modelName, voice string) *HTTPSynthesizer {
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	if modelName == "" {
		modelName = "tts-1"
	}
	if voice == "" {
		voice = "alloy"
	}
	return &HTTPSynthesizer{
		BaseURL:   baseURL,
		APIKey:    apiKey,
		ModelName: modelName,
		Voice:     voice,
		Client:    &http.Client{Timeout: 60 * time.Second},
	}
}

type speechRequest struct {
	Model          string `json:"model"`
	Input          string `json:"input"`
	Voice          string `json:"voice"`
	ResponseFormat string `json:"response_format"`
}

// Synthesize converts text to WAV audio bytes
func (s *HTTPSynthesizer) Synthesize(ctx context.Context, text string) ([]byte, error) {
	payload, err := json.Marshal(speechRequest{
		Model:          s.ModelName,
		Input:          text,
		Voice:          s.Voice,
		ResponseFormat: "wav",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal speech request: %w", err)
	}

	url := s.BaseURL + "/audio/speech"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.APIKey)

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call speech API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("speech API returned status %d: %s", resp.StatusCode, string(respBody))
	}

	return io.ReadAll(resp.Body)
}
