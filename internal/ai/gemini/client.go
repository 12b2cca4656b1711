package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/spigell/skillscribe/internal/ai"
)

const (
	defaultModel    = "gemini-2.5-flash"
	defaultLocation = "us-central1"

	BackendGemini = "gemini"
	BackendVertex = "vertex"
)

// Config selects the backend and model used by the Generator.
type Config struct {
	APIKey   string
	Model    string
	Backend  string
	Project  string
	Location string
}

type modelsClient interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Generator wraps the Google GenAI client to provide simple prompt-based interactions.
type Generator struct {
	models    modelsClient
	modelName string
}

// NewGenerator creates a Generator for either the Gemini API or Vertex AI backend.
func NewGenerator(ctx context.Context, cfg Config) (*Generator, error) {
	clientCfg := &genai.ClientConfig{}

	switch strings.ToLower(strings.TrimSpace(cfg.Backend)) {
	case "", BackendGemini:
		apiKey := strings.TrimSpace(cfg.APIKey)
		if apiKey == "" {
			return nil, errors.New("gemini api key is required")
		}
		clientCfg.APIKey = apiKey
		clientCfg.Backend = genai.BackendGeminiAPI
	case BackendVertex:
		project := strings.TrimSpace(cfg.Project)
		if project == "" {
			return nil, errors.New("vertex backend requires a project")
		}
		location := strings.TrimSpace(cfg.Location)
		if location == "" {
			location = defaultLocation
		}
		clientCfg.Backend = genai.BackendVertexAI
		clientCfg.Project = project
		clientCfg.Location = location
	default:
		return nil, fmt.Errorf("unknown gemini backend %q", cfg.Backend)
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return newGenerator(client.Models, cfg.Model), nil
}

func newGenerator(models modelsClient, model string) *Generator {
	if model = strings.TrimSpace(model); model == "" {
		model = defaultModel
	}
	return &Generator{models: models, modelName: model}
}

// GenerateText sends the prompt to Gemini and returns the textual response.
func (g *Generator) GenerateText(ctx context.Context, prompt string) (string, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", errors.New("prompt must not be empty")
	}
	return g.generateContent(ctx, genai.Text(prompt), nil)
}

// GenerateJSON asks for a JSON answer constrained by the request schema. An
// attached document is sent inline next to the prompt.
func (g *Generator) GenerateJSON(ctx context.Context, req ai.JSONRequest) (string, error) {
	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		return "", errors.New("prompt must not be empty")
	}

	parts := []*genai.Part{}
	if req.Document != nil {
		parts = append(parts, &genai.Part{InlineData: &genai.Blob{
			Data:     req.Document.Data,
			MIMEType: req.Document.MIMEType,
		}})
	}
	parts = append(parts, genai.NewPartFromText(prompt))

	cfg := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   toSchema(req.Schema),
	}

	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}
	return g.generateContent(ctx, contents, cfg)
}

func (g *Generator) generateContent(ctx context.Context, contents []*genai.Content, config *genai.GenerateContentConfig) (string, error) {
	if g == nil || g.models == nil {
		return "", errors.New("gemini generator is not initialized")
	}

	resp, err := g.models.GenerateContent(ctx, g.modelName, contents, config)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil {
				continue
			}
			text := strings.TrimSpace(part.Text)
			if text == "" {
				continue
			}
			if builder.Len() > 0 {
				builder.WriteString("\n")
			}
			builder.WriteString(text)
		}
	}

	output := strings.TrimSpace(builder.String())
	if output == "" {
		return "", errors.New("gemini api returned empty response")
	}

	return output, nil
}

func toSchema(s *ai.Schema) *genai.Schema {
	if s == nil {
		return nil
	}

	out := &genai.Schema{
		Description: s.Description,
		Required:    s.Required,
		Items:       toSchema(s.Items),
	}

	switch s.Type {
	case ai.TypeObject:
		out.Type = genai.TypeObject
	case ai.TypeArray:
		out.Type = genai.TypeArray
	case ai.TypeString:
		out.Type = genai.TypeString
	}

	if len(s.Properties) > 0 {
		out.Properties = make(map[string]*genai.Schema, len(s.Properties))
		for name, prop := range s.Properties {
			out.Properties[name] = toSchema(prop)
		}
	}

	return out
}

func (g *Generator) Provider() string {
	return "gemini"
}

func (g *Generator) Model() string {
	if g == nil {
		return ""
	}
	return g.modelName
}
