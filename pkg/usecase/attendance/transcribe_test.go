package attendance_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/m-mizutani/gt"
	"google.golang.org/genai"

	"github.com/e-c-centric/ClassHelper/pkg/repository"
	"github.com/e-c-centric/ClassHelper/pkg/usecase/attendance"
)

// mockStorage is an in-memory adapter.Storage for testing
type mockStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
	putErr  error
}

type mockWriter struct {
	buf     bytes.Buffer
	key     string
	storage *mockStorage
}

func (w *mockWriter) Write(p []byte) (int, error) {
	return w.buf.Write(p)
}

func (w *mockWriter) Close() error {
	w.storage.mu.Lock()
	defer w.storage.mu.Unlock()
	w.storage.objects[w.key] = w.buf.Bytes()
	return nil
}

func (m *mockStorage) Put(ctx context.Context, key string) (io.WriteCloser, error) {
	if m.putErr != nil {
		return nil, m.putErr
	}
	return &mockWriter{key: key, storage: m}, nil
}

func (m *mockStorage) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.objects[key]
	if !ok {
		return nil, errors.New("object not found")
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func TestTranscribe(t *testing.T) {
	ctx := context.Background()
	storage := &mockStorage{objects: make(map[string][]byte)}
	gemini := &mockGemini{
		transcribeFunc: func(ctx context.Context, audio []byte, mimeType string, instruction string) (*genai.GenerateContentResponse, error) {
			gt.V(t, mimeType).Equal("audio/webm")
			gt.S(t, instruction).Contains("Transcribe")
			return textResponse("John? Here. Jane? Present."), nil
		},
	}

	uc := attendance.New(repository.NewMemory(), gemini, attendance.WithStorage(storage))
	result, err := uc.Transcribe(ctx, attendance.TranscribeInput{
		ClassID:  "class-1",
		Audio:    []byte("audio-bytes"),
		MIMEType: "audio/webm",
	})
	gt.NoError(t, err)

	gt.V(t, result.Transcription).Equal("John? Here. Jane? Present.")
	gt.S(t, result.RecordingKey).Contains("recordings/class-1/")

	r, err := storage.Get(ctx, result.RecordingKey)
	gt.NoError(t, err)
	archived, err := io.ReadAll(r)
	gt.NoError(t, err)
	gt.V(t, string(archived)).Equal("audio-bytes")
}

func TestTranscribeWithoutStorage(t *testing.T) {
	ctx := context.Background()
	gemini := &mockGemini{
		transcribeFunc: func(ctx context.Context, audio []byte, mimeType string, instruction string) (*genai.GenerateContentResponse, error) {
			return textResponse("transcript"), nil
		},
	}

	uc := attendance.New(repository.NewMemory(), gemini)
	result, err := uc.Transcribe(ctx, attendance.TranscribeInput{
		ClassID:  "class-1",
		Audio:    []byte("audio-bytes"),
		MIMEType: "audio/mpeg",
	})
	gt.NoError(t, err)
	gt.V(t, result.Transcription).Equal("transcript")
	gt.V(t, result.RecordingKey).Equal("")
}

func TestTranscribeArchiveFailureIsBestEffort(t *testing.T) {
	ctx := context.Background()
	storage := &mockStorage{objects: make(map[string][]byte), putErr: errors.New("bucket gone")}
	gemini := &mockGemini{
		transcribeFunc: func(ctx context.Context, audio []byte, mimeType string, instruction string) (*genai.GenerateContentResponse, error) {
			return textResponse("transcript"), nil
		},
	}

	uc := attendance.New(repository.NewMemory(), gemini, attendance.WithStorage(storage))
	result, err := uc.Transcribe(ctx, attendance.TranscribeInput{
		ClassID:  "class-1",
		Audio:    []byte("audio-bytes"),
		MIMEType: "audio/webm",
	})
	gt.NoError(t, err)
	gt.V(t, result.Transcription).Equal("transcript")
	gt.V(t, result.RecordingKey).Equal("")
}

func TestTranscribeEmptyAudio(t *testing.T) {
	ctx := context.Background()
	uc := attendance.New(repository.NewMemory(), &mockGemini{})

	_, err := uc.Transcribe(ctx, attendance.TranscribeInput{
		ClassID:  "class-1",
		Audio:    nil,
		MIMEType: "audio/webm",
	})
	gt.Error(t, err)
	gt.S(t, strings.ToLower(err.Error())).Contains("no audio")
}
