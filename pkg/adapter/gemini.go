package adapter

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/genai"
)

// Gemini is the completion service used for report synthesis, roster
// matching, and audio transcription. Both text and audio tasks are
// single-shot: prompt in, raw text out.
type Gemini interface {
	GenerateContent(ctx context.Context, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
	Transcribe(ctx context.Context, audio []byte, mimeType string, instruction string) (*genai.GenerateContentResponse, error)
}

type GeminiClient struct {
	client             *genai.Client
	generativeModel    string
	transcriptionModel string
}

type GeminiOption func(*GeminiClient)

func WithGenerativeModel(model string) GeminiOption {
	return func(g *GeminiClient) {
		g.generativeModel = model
	}
}

func WithTranscriptionModel(model string) GeminiOption {
	return func(g *GeminiClient) {
		g.transcriptionModel = model
	}
}

func NewGemini(ctx context.Context, projectID, location string, opts ...GeminiOption) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		Project:  projectID,
		Location: location,
		Backend:  genai.BackendVertexAI,
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create genai client")
	}

	g := &GeminiClient{
		client:             client,
		generativeModel:    "gemini-2.5-flash",
		transcriptionModel: "gemini-2.5-flash",
	}

	for _, opt := range opts {
		opt(g)
	}

	return g, nil
}

func (g *GeminiClient) GenerateContent(ctx context.Context, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.generativeModel, contents, config)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to generate content")
	}
	return resp, nil
}

func (g *GeminiClient) Transcribe(ctx context.Context, audio []byte, mimeType string, instruction string) (*genai.GenerateContentResponse, error) {
	contents := []*genai.Content{
		{
			Role: genai.RoleUser,
			Parts: []*genai.Part{
				{Text: instruction},
				{InlineData: &genai.Blob{MIMEType: mimeType, Data: audio}},
			},
		},
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.transcriptionModel, contents, nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to transcribe audio", goerr.V("mime_type", mimeType))
	}
	return resp, nil
}
