package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"
)

// WhisperTranscriber transcribes audio through an OpenAI-compatible
// /audio/transcriptions endpoint.
type WhisperTranscriber struct {
	BaseURL   string
	APIKey    string
	ModelName string
	Language  string
	Client    *http.Client
}

// NewWhisperTranscriber creates a Whisper transcription client
func NewWhisperTranscriber(baseURL, apiKey, modelName string) *WhisperTranscriber {
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	if modelName == "" {
		modelName = "whisper-1"
	}
	return &WhisperTranscriber{
		BaseURL:   baseURL,
		APIKey:    apiKey,
		ModelName: modelName,
		Client:    &http.Client{Timeout: 120 * time.Second},
	}
}

// Transcribe uploads the audio as a multipart form and returns the recognized text
func (w *WhisperTranscriber) Transcribe(ctx context.Context, audio io.Reader, filename string) (string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := io.Copy(part, audio); err != nil {
		return "", fmt.Errorf("failed to copy audio data: %w", err)
	}

	writer.WriteField("model", w.ModelName)
	writer.WriteField("response_format", "json")
	if w.Language != "" {
		writer.WriteField("language", w.Language)
	}
	writer.Close()

	url := w.BaseURL + "/audio/transcriptions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &body)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+w.APIKey)

	resp, err := w.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to call transcription API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("transcription API returned status %d: %s", resp.StatusCode, string(respBody))
	}

	var result struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode transcription response: %w", err)
	}

	return result.Text, nil
}
