package gemini

import (
	"context"
	"errors"
	"testing"

	"google.golang.org/genai"

	"github.com/spigell/skillscribe/internal/ai"
)

type fakeModels struct {
	resp *genai.GenerateContentResponse
	err  error

	model    string
	contents []*genai.Content
	config   *genai.GenerateContentConfig
}

func (f *fakeModels) GenerateContent(_ context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.model = model
	f.contents = contents
	f.config = config
	return f.resp, f.err
}

func textResponse(texts ...string) *genai.GenerateContentResponse {
	parts := make([]*genai.Part, 0, len(texts))
	for _, text := range texts {
		parts = append(parts, &genai.Part{Text: text})
	}
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: &genai.Content{Parts: parts}}},
	}
}

func TestGenerateTextJoinsParts(t *testing.T) {
	models := &fakeModels{resp: textResponse(" first ", "", "second")}
	g := newGenerator(models, "")

	output, err := g.GenerateText(context.Background(), "  review this  ")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if output != "first\nsecond" {
		t.Fatalf("unexpected output: %q", output)
	}
	if models.model != defaultModel {
		t.Fatalf("expected default model, got %q", models.model)
	}
	if models.config != nil {
		t.Fatalf("expected no config for text generation")
	}
	if got := models.contents[0].Parts[0].Text; got != "review this" {
		t.Fatalf("unexpected prompt: %q", got)
	}
}

func TestGenerateTextErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		models *fakeModels
		prompt string
	}{
		{name: "empty prompt", models: &fakeModels{resp: textResponse("x")}, prompt: "  "},
		{name: "api error", models: &fakeModels{err: errors.New("quota")}, prompt: "hi"},
		{name: "empty response", models: &fakeModels{resp: textResponse("   ")}, prompt: "hi"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if _, err := newGenerator(tt.models, "gemini-pro").GenerateText(context.Background(), tt.prompt); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestGenerateJSONAttachesDocument(t *testing.T) {
	models := &fakeModels{resp: textResponse(`{"name":"Ada","email":"ada@example.com"}`)}
	g := newGenerator(models, "gemini-pro")

	req := ai.JSONRequest{
		Prompt: "extract",
		Schema: &ai.Schema{
			Type: ai.TypeObject,
			Properties: map[string]*ai.Schema{
				"name":  {Type: ai.TypeString},
				"email": {Type: ai.TypeString},
			},
			Required: []string{"name", "email"},
		},
		Document: &ai.Document{Name: "cv.pdf", MIMEType: "application/pdf", Data: []byte("%PDF")},
	}

	if _, err := g.GenerateJSON(context.Background(), req); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if models.config == nil || models.config.ResponseMIMEType != "application/json" {
		t.Fatalf("expected json response config, got %+v", models.config)
	}

	schema := models.config.ResponseSchema
	if schema.Type != genai.TypeObject || schema.Properties["email"].Type != genai.TypeString || len(schema.Required) != 2 {
		t.Fatalf("unexpected schema: %+v", schema)
	}

	parts := models.contents[0].Parts
	if len(parts) != 2 {
		t.Fatalf("expected document and prompt parts, got %d", len(parts))
	}
	if parts[0].InlineData == nil || parts[0].InlineData.MIMEType != "application/pdf" || string(parts[0].InlineData.Data) != "%PDF" {
		t.Fatalf("unexpected inline data: %+v", parts[0].InlineData)
	}
	if parts[1].Text != "extract" {
		t.Fatalf("unexpected prompt part: %q", parts[1].Text)
	}
	if models.contents[0].Role != genai.RoleUser {
		t.Fatalf("expected user role, got %q", models.contents[0].Role)
	}
}

func TestToSchemaArray(t *testing.T) {
	schema := toSchema(&ai.Schema{Type: ai.TypeArray, Items: &ai.Schema{Type: ai.TypeString}})
	if schema.Type != genai.TypeArray || schema.Items == nil || schema.Items.Type != genai.TypeString {
		t.Fatalf("unexpected schema: %+v", schema)
	}
	if toSchema(nil) != nil {
		t.Fatal("expected nil schema")
	}
}

func TestNewGeneratorValidatesConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  Config
	}{
		{name: "missing key", cfg: Config{}},
		{name: "vertex without project", cfg: Config{Backend: BackendVertex}},
		{name: "unknown backend", cfg: Config{APIKey: "k", Backend: "bedrock"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if _, err := NewGenerator(context.Background(), tt.cfg); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestGeneratorImplementsInterface(t *testing.T) {
	var _ ai.Generator = newGenerator(&fakeModels{}, "")
}
