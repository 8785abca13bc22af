// Package speech provides speech-to-text and text-to-speech clients for the
// voice endpoints.
package speech

import (
	"context"
	"io"
)

// Transcriber converts spoken audio into text
type Transcriber interface {
	Transcribe(ctx context.Context, audio io.Reader, filename string) (string, error)
}

// Synthesizer converts text into spoken audio (WAV)
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}
