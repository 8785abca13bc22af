package speech

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
)

// FallbackTranscriber tries each transcriber in order until one succeeds.
// The audio is buffered up front so a failed attempt does not consume it.
type FallbackTranscriber struct {
	transcribers []Transcriber
	logger       *log.Logger
}

// NewFallbackTranscriber creates a transcription chain
func NewFallbackTranscriber(logger *log.Logger, transcribers ...Transcriber) *FallbackTranscriber {
	return &FallbackTranscriber{
		transcribers: transcribers,
		logger:       logger,
	}
}

// Transcribe returns the first successful transcription in the chain
func (f *FallbackTranscriber) Transcribe(ctx context.Context, audio io.Reader, filename string) (string, error) {
	if len(f.transcribers) == 0 {
		return "", fmt.Errorf("no transcribers configured")
	}

	data, err := io.ReadAll(audio)
	if err != nil {
		return "", fmt.Errorf("failed to read audio data: %w", err)
	}

	var lastErr error
	for i, tr := range f.transcribers {
		text, err := tr.Transcribe(ctx, bytes.NewReader(data), filename)
		if err == nil {
			if i > 0 {
				f.logger.Printf("[INFO] Transcription succeeded on fallback attempt %d", i+1)
			}
			return text, nil
		}
		lastErr = err
		f.logger.Printf("[DEBUG] Transcriber %d failed: %v", i+1, err)
	}
	return "", fmt.Errorf("all transcribers failed: %w", lastErr)
}
