package tools

import (
	"context"
	"slices"
)

// Group is a named set of tools
type Group interface {
	// Name returns the name of the group, used as the prefix when merged
	Name() string
	// Tools returns the tools of the group
	Tools() []ITool
}

// Loader is implemented by groups that must be populated before they are merged
type Loader interface {
	Load(ctx context.Context) error
}

type staticGroup struct {
	name  string
	tools []ITool
}

// NewGroup returns a group with the tools defined locally
func NewGroup(name string, list ...ITool) Group {
	return &staticGroup{
		name:  name,
		tools: list,
	}
}

func (g *staticGroup) Name() string {
	return g.name
}

func (g *staticGroup) Tools() []ITool {
	return slices.Clone(g.tools)
}

// alias re-publishes a tool under a different name,
// the calls are forwarded to the original tool
type alias struct {
	ITool
	name string
	tags []string
}

// Alias returns the tool published under name.
// If tags are not provided, the tags of the tool are used.
func Alias(tool ITool, name string, tags ...string) ITool {
	if len(tags) == 0 {
		tags = TagsOf(tool)
	}
	a := &alias{
		ITool: tool,
		name:  name,
		tags:  tags,
	}
	if p, ok := tool.(Prompter); ok {
		return &promptAlias{alias: a, args: p.Arguments}
	}
	return a
}

func (a *alias) Name() string {
	return a.name
}

func (a *alias) Tags() []string {
	return a.tags
}

func (a *alias) Annotations() *Annotations {
	return AnnotationsOf(a.ITool)
}

// Target returns the original tool
func (a *alias) Target() ITool {
	return a.ITool
}

type promptAlias struct {
	*alias
	args func() []Argument
}

func (a *promptAlias) Arguments() []Argument {
	return a.args()
}
