package attendance_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"google.golang.org/genai"

	"github.com/e-c-centric/ClassHelper/pkg/model"
	"github.com/e-c-centric/ClassHelper/pkg/repository"
	"github.com/e-c-centric/ClassHelper/pkg/usecase/attendance"
)

// mockGemini is a mock implementation of adapter.Gemini for testing
type mockGemini struct {
	generateFunc   func(ctx context.Context, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
	transcribeFunc func(ctx context.Context, audio []byte, mimeType string, instruction string) (*genai.GenerateContentResponse, error)
	generateCalls  int
}

func (m *mockGemini) GenerateContent(ctx context.Context, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	m.generateCalls++
	if m.generateFunc != nil {
		return m.generateFunc(ctx, contents, config)
	}
	return nil, errors.New("not implemented")
}

func (m *mockGemini) Transcribe(ctx context.Context, audio []byte, mimeType string, instruction string) (*genai.GenerateContentResponse, error) {
	if m.transcribeFunc != nil {
		return m.transcribeFunc(ctx, audio, mimeType, instruction)
	}
	return nil, errors.New("not implemented")
}

func textResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{
				Content: &genai.Content{
					Parts: []*genai.Part{{Text: text}},
				},
			},
		},
	}
}

func seedRoster(t *testing.T, repo *repository.Memory, classID model.ClassID, names ...string) []*model.Student {
	t.Helper()
	students := make([]*model.Student, 0, len(names))
	for i, name := range names {
		student := &model.Student{
			ID:         model.StudentID(name),
			ClassID:    classID,
			RollNumber: string(rune('A' + i)),
			Name:       name,
			CreatedAt:  time.Now(),
		}
		gt.NoError(t, repo.PutStudent(context.Background(), student))
		students = append(students, student)
	}
	return students
}

func TestReconcile(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemory()
	seedRoster(t, repo, "class-1", "John Smith", "Jane Doe", "Michael Lee")

	gemini := &mockGemini{
		generateFunc: func(ctx context.Context, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
			return textResponse(`["John", "Jane Doe"]`), nil
		},
	}

	uc := attendance.New(repo, gemini)
	result, err := uc.Reconcile(ctx, attendance.ReconcileInput{
		ClassID:       "class-1",
		Date:          "2026-03-02",
		Transcription: "John? Here. Jane Doe? Present.",
	})
	gt.NoError(t, err)

	gt.V(t, result.TotalPresent).Equal(2)
	gt.A(t, result.Matched).Length(2)
	gt.A(t, result.Ambiguous).Length(0)

	rec := repo.Attendance("class-1", "John Smith", "2026-03-02")
	gt.V(t, rec).NotNil()
	gt.V(t, rec.Present).Equal(true)

	rec = repo.Attendance("class-1", "Michael Lee", "2026-03-02")
	gt.V(t, rec).NotNil()
	gt.V(t, rec.Present).Equal(false)
}

func TestReconcileWrappedModelOutput(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemory()
	seedRoster(t, repo, "class-1", "Jane Doe")

	gemini := &mockGemini{
		generateFunc: func(ctx context.Context, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
			return textResponse(`Sure, here you go: ["Jane Doe"]`), nil
		},
	}

	uc := attendance.New(repo, gemini)
	result, err := uc.Reconcile(ctx, attendance.ReconcileInput{
		ClassID:       "class-1",
		Date:          "2026-03-02",
		Transcription: "Jane Doe is here",
	})
	gt.NoError(t, err)
	gt.V(t, result.TotalPresent).Equal(1)
}

func TestReconcileGarbageModelOutput(t *testing.T) {
	// Unparseable completion output degrades to zero claims: everyone is
	// marked absent, the request still succeeds.
	ctx := context.Background()
	repo := repository.NewMemory()
	seedRoster(t, repo, "class-1", "John Smith", "Jane Doe")

	gemini := &mockGemini{
		generateFunc: func(ctx context.Context, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
			return textResponse("I cannot comply"), nil
		},
	}

	uc := attendance.New(repo, gemini)
	result, err := uc.Reconcile(ctx, attendance.ReconcileInput{
		ClassID:       "class-1",
		Date:          "2026-03-02",
		Transcription: "noise",
	})
	gt.NoError(t, err)
	gt.V(t, result.TotalPresent).Equal(0)
	gt.A(t, result.Matched).Length(0)

	for _, name := range []string{"John Smith", "Jane Doe"} {
		rec := repo.Attendance("class-1", model.StudentID(name), "2026-03-02")
		gt.V(t, rec).NotNil()
		gt.V(t, rec.Present).Equal(false)
	}
}

func TestReconcileAmbiguousMention(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemory()
	seedRoster(t, repo, "class-1", "Ann Lee", "Ann Park")

	gemini := &mockGemini{
		generateFunc: func(ctx context.Context, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
			return textResponse(`["Ann"]`), nil
		},
	}

	uc := attendance.New(repo, gemini)
	result, err := uc.Reconcile(ctx, attendance.ReconcileInput{
		ClassID:       "class-1",
		Date:          "2026-03-02",
		Transcription: "Ann, good answer",
	})
	gt.NoError(t, err)

	gt.V(t, result.TotalPresent).Equal(2)
	gt.A(t, result.Ambiguous).Length(2)
}

func TestReconcileIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemory()
	seedRoster(t, repo, "class-1", "John Smith")

	gemini := &mockGemini{
		generateFunc: func(ctx context.Context, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
			return textResponse(`["John Smith"]`), nil
		},
	}

	uc := attendance.New(repo, gemini)
	input := attendance.ReconcileInput{
		ClassID:       "class-1",
		Date:          "2026-03-02",
		Transcription: "John Smith",
	}

	_, err := uc.Reconcile(ctx, input)
	gt.NoError(t, err)
	first := repo.Attendance("class-1", "John Smith", "2026-03-02")

	_, err = uc.Reconcile(ctx, input)
	gt.NoError(t, err)
	second := repo.Attendance("class-1", "John Smith", "2026-03-02")

	gt.V(t, first).NotNil()
	gt.V(t, second).NotNil()
	gt.V(t, *first).Equal(*second)
}

func TestReconcileLastWriteWins(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemory()
	seedRoster(t, repo, "class-1", "John Smith")

	responses := []string{`["John Smith"]`, `[]`}
	call := 0
	gemini := &mockGemini{
		generateFunc: func(ctx context.Context, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
			resp := textResponse(responses[call])
			call++
			return resp, nil
		},
	}

	uc := attendance.New(repo, gemini)
	input := attendance.ReconcileInput{
		ClassID:       "class-1",
		Date:          "2026-03-02",
		Transcription: "John Smith",
	}

	_, err := uc.Reconcile(ctx, input)
	gt.NoError(t, err)
	gt.V(t, repo.Attendance("class-1", "John Smith", "2026-03-02").Present).Equal(true)

	_, err = uc.Reconcile(ctx, input)
	gt.NoError(t, err)
	gt.V(t, repo.Attendance("class-1", "John Smith", "2026-03-02").Present).Equal(false)
}

func TestReconcileEmptyRoster(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemory()
	gemini := &mockGemini{}

	uc := attendance.New(repo, gemini)
	_, err := uc.Reconcile(ctx, attendance.ReconcileInput{
		ClassID:       "class-missing",
		Date:          "2026-03-02",
		Transcription: "anyone",
	})
	gt.Error(t, err)
	gt.V(t, errors.Is(err, model.ErrRosterNotFound)).Equal(true)
	gt.V(t, gemini.generateCalls).Equal(0)
}

func TestReconcileInvalidDate(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemory()
	uc := attendance.New(repo, &mockGemini{})

	_, err := uc.Reconcile(ctx, attendance.ReconcileInput{
		ClassID:       "class-1",
		Date:          "03/02/2026",
		Transcription: "John",
	})
	gt.Error(t, err)
	gt.V(t, errors.Is(err, model.ErrInvalidDate)).Equal(true)
}

func TestReconcileModelFailure(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemory()
	seedRoster(t, repo, "class-1", "John Smith")

	gemini := &mockGemini{
		generateFunc: func(ctx context.Context, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
			return nil, errors.New("upstream unavailable")
		},
	}

	uc := attendance.New(repo, gemini)
	_, err := uc.Reconcile(ctx, attendance.ReconcileInput{
		ClassID:       "class-1",
		Date:          "2026-03-02",
		Transcription: "John Smith",
	})
	gt.Error(t, err)

	// Nothing written on failure.
	gt.V(t, repo.Attendance("class-1", "John Smith", "2026-03-02")).Nil()
}
