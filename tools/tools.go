package tools

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/fintools/utils"
)

//go:generate mockgen -destination=../mocks/mocktools/tools_mock.gen.go -package mocktools github.com/effective-security/fintools/tools ITool,Callback,Group

var (
	// ErrFailedUnmarshalInput is returned when the tool input does not match the schema
	ErrFailedUnmarshalInput = errors.New("failed to unmarshal input: check the schema and try again")
)

// Kind of the callable
type Kind string

const (
	// KindTool is a tool returning data
	KindTool Kind = "tool"
	// KindPrompt is a prompt template returning a message
	KindPrompt Kind = "prompt"
)

// ITool is a callable tool for an agent.
type ITool interface {
	// Name returns the name of the Tool.
	Name() string
	// Description returns the description of the tool, to be used in the prompt.
	Description() string
	// Parameters returns the JSON schema of the input object.
	Parameters() any

	// Call executes the tool with the given JSON input and returns the result.
	// If the tool fails to parse the input, it should return ErrFailedUnmarshalInput error.
	Call(context.Context, string) (string, error)
}

// Tool is a typed tool
type Tool[I any, O any] interface {
	ITool
	Run(context.Context, *I) (*O, error)
}

// Tagged is implemented by tools with classification tags
type Tagged interface {
	Tags() []string
}

// Annotations describe the behavior of the tool
type Annotations struct {
	Title string `json:"title,omitempty"`
	// ReadOnly tool does not modify its environment
	ReadOnly bool `json:"readOnly,omitempty"`
	// OpenWorld tool interacts with external entities
	OpenWorld bool `json:"openWorld,omitempty"`
}

// Annotated is implemented by tools with annotations
type Annotated interface {
	Annotations() *Annotations
}

// Argument of a prompt
type Argument struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Required    bool   `json:"required,omitempty"`
}

// Prompter is a prompt template callable as a tool
type Prompter interface {
	ITool
	Arguments() []Argument
}

// Callback receives the tool events
type Callback interface {
	OnToolStart(ctx context.Context, tool ITool, input string)
	OnToolEnd(ctx context.Context, tool ITool, input string, output string)
	OnToolError(ctx context.Context, tool ITool, input string, err error)
	OnToolNotFound(ctx context.Context, name string)
}

// KindOf returns the kind of the tool
func KindOf(tool ITool) Kind {
	if _, ok := tool.(Prompter); ok {
		return KindPrompt
	}
	return KindTool
}

// TagsOf returns the tags of the tool, or nil
func TagsOf(tool ITool) []string {
	if t, ok := tool.(Tagged); ok {
		return t.Tags()
	}
	return nil
}

// AnnotationsOf returns the annotations of the tool, or nil
func AnnotationsOf(tool ITool) *Annotations {
	if t, ok := tool.(Annotated); ok {
		return t.Annotations()
	}
	return nil
}

// Unmarshal decodes the tool input, text around the JSON object is ignored.
// An empty input is decoded as an empty object.
func Unmarshal(input string, v any) error {
	input = strings.TrimSpace(input)
	if input == "" {
		input = "{}"
	}
	if err := json.Unmarshal(utils.CleanJSON([]byte(input)), v); err != nil {
		return errors.WithStack(ErrFailedUnmarshalInput)
	}
	return nil
}
