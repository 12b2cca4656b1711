package ai

import "context"

type SchemaType string

const (
	TypeObject SchemaType = "object"
	TypeArray  SchemaType = "array"
	TypeString SchemaType = "string"
)

// Schema describes the JSON shape a model has to answer with. Providers
// translate it to their own schema types.
type Schema struct {
	Type        SchemaType
	Description string
	Properties  map[string]*Schema
	Items       *Schema
	Required    []string
}

// JSONRequest asks for a schema constrained answer. Document is optional.
type JSONRequest struct {
	Prompt   string
	Schema   *Schema
	Document *Document
}

// Generator is a language model backend.
type Generator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
	GenerateJSON(ctx context.Context, req JSONRequest) (string, error)
	Provider() string
	Model() string
}

var cvSchema = &Schema{
	Type: TypeObject,
	Properties: map[string]*Schema{
		"name":  {Type: TypeString, Description: "The candidate's full name."},
		"email": {Type: TypeString, Description: "The candidate's email address."},
	},
	Required: []string{"name", "email"},
}

var questionsSchema = &Schema{
	Type: TypeObject,
	Properties: map[string]*Schema{
		"questions": {
			Type:  TypeArray,
			Items: &Schema{Type: TypeString, Description: "An interview question."},
		},
	},
}
