package openai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared"

	"github.com/spigell/skillscribe/internal/ai"
)

const (
	defaultModel = "gpt-4o-mini"
	mimePDF      = "application/pdf"
)

// ErrUnsupportedDocument is returned for documents chat completions cannot
// take as a file part. Only PDF files and text documents are sent.
var ErrUnsupportedDocument = errors.New("document type is not supported by openai file input")

type completionsClient interface {
	New(ctx context.Context, body openai.ChatCompletionNewParams, opts ...option.RequestOption) (*openai.ChatCompletion, error)
}

// Generator talks to the OpenAI chat completions API.
type Generator struct {
	completions completionsClient
	modelName   string
}

func NewGenerator(apiKey, model string, opts ...option.RequestOption) (*Generator, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("openai api key is required")
	}

	options := append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)
	client := openai.NewClient(options...)

	return newGenerator(&client.Chat.Completions, model), nil
}

func newGenerator(completions completionsClient, model string) *Generator {
	if model = strings.TrimSpace(model); model == "" {
		model = defaultModel
	}
	return &Generator{completions: completions, modelName: model}
}

func (g *Generator) GenerateText(ctx context.Context, prompt string) (string, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", errors.New("prompt must not be empty")
	}

	return g.complete(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{openai.UserMessage(prompt)},
		Model:    g.modelName,
	})
}

// GenerateJSON requests a json_schema formatted answer. Text documents are
// inlined into the prompt and PDF files go as a base64 file part. Other
// document types are refused before any request is made.
func (g *Generator) GenerateJSON(ctx context.Context, req ai.JSONRequest) (string, error) {
	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		return "", errors.New("prompt must not be empty")
	}

	parts := []openai.ChatCompletionContentPartUnionParam{}
	if doc := req.Document; doc != nil {
		switch {
		case strings.HasPrefix(doc.MIMEType, "text/"):
			parts = append(parts, openai.TextContentPart(string(doc.Data)))
		case doc.MIMEType == mimePDF:
			parts = append(parts, openai.FileContentPart(openai.ChatCompletionContentPartFileFileParam{
				FileData: openai.String(fmt.Sprintf("data:%s;base64,%s", doc.MIMEType, doc.Base64())),
				Filename: openai.String(doc.Name),
			}))
		default:
			return "", fmt.Errorf("%w: %s (%s)", ErrUnsupportedDocument, doc.Name, doc.MIMEType)
		}
	}
	parts = append(parts, openai.TextContentPart(prompt))

	params := openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{openai.UserMessage(parts)},
		Model:    g.modelName,
	}

	if req.Schema != nil {
		params.ResponseFormat = openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: &shared.ResponseFormatJSONSchemaParam{
				JSONSchema: shared.ResponseFormatJSONSchemaJSONSchemaParam{
					Name:   "schema",
					Schema: toSchema(req.Schema),
				},
			},
		}
	} else {
		params.ResponseFormat = openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		}
	}

	return g.complete(ctx, params)
}

func (g *Generator) complete(ctx context.Context, params openai.ChatCompletionNewParams) (string, error) {
	if g == nil || g.completions == nil {
		return "", errors.New("openai generator is not initialized")
	}

	completion, err := g.completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}

	if len(completion.Choices) == 0 {
		return "", errors.New("no choices in response")
	}

	output := strings.TrimSpace(completion.Choices[0].Message.Content)
	if output == "" {
		return "", errors.New("openai api returned empty response")
	}
	return output, nil
}

func toSchema(s *ai.Schema) map[string]any {
	out := map[string]any{"type": string(s.Type)}
	if s.Description != "" {
		out["description"] = s.Description
	}
	if s.Items != nil {
		out["items"] = toSchema(s.Items)
	}
	if len(s.Properties) > 0 {
		props := make(map[string]any, len(s.Properties))
		for name, prop := range s.Properties {
			props[name] = toSchema(prop)
		}
		out["properties"] = props
	}
	if len(s.Required) > 0 {
		out["required"] = s.Required
	}
	return out
}

func (g *Generator) Provider() string {
	return "openai"
}

func (g *Generator) Model() string {
	if g == nil {
		return ""
	}
	return g.modelName
}
