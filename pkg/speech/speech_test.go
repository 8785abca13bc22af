package speech

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWhisperTranscriber(t *testing.T) {
	t.Run("sends multipart form and returns text", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/audio/transcriptions", r.URL.Path)
			assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

			require.NoError(t, r.ParseMultipartForm(1<<20))
			assert.Equal(t, "whisper-1", r.FormValue("model"))
			file, header, err := r.FormFile("file")
			require.NoError(t, err)
			defer file.Close()
			assert.Equal(t, "question.wav", header.Filename)
			data, err := io.ReadAll(file)
			require.NoError(t, err)
			assert.Equal(t, "fake-audio", string(data))

			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"text": "schedule a demo tomorrow at 3pm"}`))
		}))
		defer srv.Close()

		tr := NewWhisperTranscriber(srv.URL, "test-key", "")
		text, err := tr.Transcribe(context.Background(), strings.NewReader("fake-audio"), "question.wav")
		require.NoError(t, err)
		assert.Equal(t, "schedule a demo tomorrow at 3pm", text)
	})

	t.Run("non-200 status is an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "model overloaded", http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		tr := NewWhisperTranscriber(srv.URL, "test-key", "")
		_, err := tr.Transcribe(context.Background(), strings.NewReader("fake-audio"), "question.wav")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "503")
	})
}

type stubTranscriber struct {
	text string
	err  error
	seen string
}

func (s *stubTranscriber) Transcribe(ctx context.Context, audio io.Reader, filename string) (string, error) {
	data, _ := io.ReadAll(audio)
	s.seen = string(data)
	return s.text, s.err
}

func TestFallbackTranscriber(t *testing.T) {
	logger := log.New(os.Stderr, "", 0)

	t.Run("first success wins", func(t *testing.T) {
		primary := &stubTranscriber{text: "primary"}
		secondary := &stubTranscriber{text: "secondary"}
		f := NewFallbackTranscriber(logger, primary, secondary)

		text, err := f.Transcribe(context.Background(), strings.NewReader("audio"), "a.wav")
		require.NoError(t, err)
		assert.Equal(t, "primary", text)
	})

	t.Run("falls back and replays the full audio", func(t *testing.T) {
		primary := &stubTranscriber{err: errors.New("engine down")}
		secondary := &stubTranscriber{text: "secondary"}
		f := NewFallbackTranscriber(logger, primary, secondary)

		text, err := f.Transcribe(context.Background(), strings.NewReader("audio-bytes"), "a.wav")
		require.NoError(t, err)
		assert.Equal(t, "secondary", text)
		assert.Equal(t, "audio-bytes", primary.seen)
		assert.Equal(t, "audio-bytes", secondary.seen)
	})

	t.Run("all failed reports last error", func(t *testing.T) {
		f := NewFallbackTranscriber(logger,
			&stubTranscriber{err: errors.New("first down")},
			&stubTranscriber{err: errors.New("second down")},
		)
		_, err := f.Transcribe(context.Background(), strings.NewReader("audio"), "a.wav")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "second down")
	})

	t.Run("empty chain is an error", func(t *testing.T) {
		f := NewFallbackTranscriber(logger)
		_, err := f.Transcribe(context.Background(), strings.NewReader("audio"), "a.wav")
		require.Error(t, err)
	})
}

func TestHTTPSynthesizer(t *testing.T) {
	t.Run("requests wav audio", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/audio/speech", r.URL.Path)
			body, err := io.ReadAll(r.Body)
			require.NoError(t, err)
			assert.Contains(t, string(body), `"response_format":"wav"`)
			assert.Contains(t, string(body), `"voice":"alloy"`)

			w.Header().Set("Content-Type", "audio/wav")
			w.Write([]byte("RIFF-fake-wav"))
		}))
		defer srv.Close()

		s := NewHTTPSynthesizer(srv.URL, "test-key", "", "")
		audio, err := s.Synthesize(context.Background(), "Your demo is booked.")
		require.NoError(t, err)
		assert.Equal(t, []byte("RIFF-fake-wav"), audio)
	})

	t.Run("non-200 status is an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "bad voice", http.StatusBadRequest)
		}))
		defer srv.Close()

		s := NewHTTPSynthesizer(srv.URL, "test-key", "", "")
		_, err := s.Synthesize(context.Background(), "hello")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "400")
	})
}
