package layout

import (
	"fmt"
	"strings"

	"github.com/bnema/editable-entry/internal/domain"
	"github.com/bnema/editable-entry/internal/entry"
	"github.com/bnema/editable-entry/internal/schema"
)

var transforms = map[string]func(any) any{
	"trim":  stringTransform(strings.TrimSpace),
	"lower": stringTransform(strings.ToLower),
	"upper": stringTransform(strings.ToUpper),
}

func stringTransform(fn func(string) string) func(any) any {
	return func(value any) any {
		if text, ok := value.(string); ok {
			return fn(text)
		}
		return value
	}
}

// Build turns the page declaration into component trees bound to record.
// Every editable container of the page shares the record pointer.
func Build(page Page, record *domain.Record) ([]entry.Component, error) {
	if err := page.Validate(); err != nil {
		return nil, fmt.Errorf("validate layout %s: %w", page.Name, err)
	}

	trees := make([]entry.Component, 0, len(page.Nodes))
	for _, node := range page.Nodes {
		trees = append(trees, buildNode(node, record))
	}

	return trees, nil
}

func buildNode(node Node, record *domain.Record) entry.Component {
	switch node.Kind {
	case NodeSection:
		section := entry.NewSection(node.ID, node.Heading).
			Description(node.Description).
			Collapsible(node.Collapsible).
			Label(node.Label).
			Record(record).
			ViewSchema(schema.New(fields(node.View)...)).
			EditSchema(schema.New(fields(node.Edit)...)).
			ConfigureStartAction(override(node.Actions.Start)).
			ConfigureSaveAction(override(node.Actions.Save)).
			ConfigureCancelAction(override(node.Actions.Cancel))
		if node.StatePath != "" {
			section.StatePath(node.StatePath)
		}
		return section
	case NodeEntry:
		e := entry.NewEntry(node.ID).
			Label(node.Label).
			Record(record).
			ViewSchema(schema.New(fields(node.View)...)).
			EditSchema(schema.New(fields(node.Edit)...)).
			ConfigureStartAction(override(node.Actions.Start)).
			ConfigureSaveAction(override(node.Actions.Save)).
			ConfigureCancelAction(override(node.Actions.Cancel))
		if node.StatePath != "" {
			e.StatePath(node.StatePath)
		}
		return e
	default:
		children := make([]entry.Component, 0, len(node.Children))
		for _, child := range node.Children {
			children = append(children, buildNode(child, record))
		}
		return entry.NewGroup(node.Label, children...)
	}
}

func override(spec *ActionSpec) func(*entry.Action) {
	if spec == nil {
		return nil
	}

	return func(action *entry.Action) {
		if spec.Label != "" {
			action.Label = spec.Label
		}
		if spec.Icon != "" {
			action.Icon = spec.Icon
		}
		if spec.Color != "" {
			action.Color = spec.Color
		}
	}
}

func fields(specs []FieldSpec) []schema.Field {
	out := make([]schema.Field, 0, len(specs))
	for _, spec := range specs {
		out = append(out, field(spec))
	}

	return out
}

func field(spec FieldSpec) schema.Field {
	kind := schema.Kind(spec.Kind)
	if kind == "" {
		kind = schema.KindText
	}

	f := schema.Field{
		Name:         spec.Name,
		Label:        spec.Label,
		Kind:         kind,
		Required:     spec.Required,
		MinLength:    spec.MinLength,
		MaxLength:    spec.MaxLength,
		Min:          spec.Min,
		Max:          spec.Max,
		Options:      spec.Options,
		Pattern:      spec.Pattern,
		Default:      spec.Default,
		Dehydrated:   spec.Dehydrated,
		Items:        fields(spec.Items),
		Relationship: spec.Relationship,
	}
	if spec.Transform != "" {
		f.Dehydrate = transforms[spec.Transform]
	}

	return f
}
