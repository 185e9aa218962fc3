package yaml

import (
	"github.com/bnema/editable-entry/internal/domain"
	"github.com/bnema/editable-entry/internal/layout"
)

type pageFile struct {
	Name       string     `yaml:"name"`
	Title      string     `yaml:"title"`
	RecordType string     `yaml:"record-type"`
	Nodes      []nodeFile `yaml:"nodes"`
}

type nodeFile struct {
	Kind        string      `yaml:"kind"`
	ID          string      `yaml:"id"`
	Label       string      `yaml:"label"`
	Heading     string      `yaml:"heading"`
	Description string      `yaml:"description"`
	Collapsible bool        `yaml:"collapsible"`
	StatePath   string      `yaml:"state-path"`
	View        []fieldFile `yaml:"view"`
	Edit        []fieldFile `yaml:"edit"`
	Actions     actionsFile `yaml:"actions"`
	Children    []nodeFile  `yaml:"children"`
}

type actionsFile struct {
	Start  *actionFile `yaml:"start"`
	Save   *actionFile `yaml:"save"`
	Cancel *actionFile `yaml:"cancel"`
}

type actionFile struct {
	Label string `yaml:"label"`
	Icon  string `yaml:"icon"`
	Color string `yaml:"color"`
}

type fieldFile struct {
	Name         string      `yaml:"name"`
	Label        string      `yaml:"label"`
	Kind         string      `yaml:"kind"`
	Required     bool        `yaml:"required"`
	MinLength    int         `yaml:"min-length"`
	MaxLength    int         `yaml:"max-length"`
	Min          *float64    `yaml:"min"`
	Max          *float64    `yaml:"max"`
	Options      []string    `yaml:"options"`
	Pattern      string      `yaml:"pattern"`
	Default      any         `yaml:"default"`
	Transform    string      `yaml:"transform"`
	Dehydrated   *bool       `yaml:"dehydrated"`
	Items        []fieldFile `yaml:"items"`
	Relationship string      `yaml:"relationship"`
}

func (p pageFile) toPage() layout.Page {
	return layout.Page{
		Name:       p.Name,
		Title:      p.Title,
		RecordType: domain.RecordType(p.RecordType),
		Nodes:      toNodes(p.Nodes),
	}
}

func toNodes(files []nodeFile) []layout.Node {
	nodes := make([]layout.Node, 0, len(files))
	for _, n := range files {
		kind := layout.NodeKind(n.Kind)
		if kind == "" {
			kind = layout.NodeEntry
		}
		nodes = append(nodes, layout.Node{
			Kind:        kind,
			ID:          domain.ComponentID(n.ID),
			Label:       n.Label,
			Heading:     n.Heading,
			Description: n.Description,
			Collapsible: n.Collapsible,
			StatePath:   n.StatePath,
			View:        toFields(n.View),
			Edit:        toFields(n.Edit),
			Actions: layout.ActionOverrides{
				Start:  toAction(n.Actions.Start),
				Save:   toAction(n.Actions.Save),
				Cancel: toAction(n.Actions.Cancel),
			},
			Children: toNodes(n.Children),
		})
	}

	return nodes
}

func toAction(a *actionFile) *layout.ActionSpec {
	if a == nil {
		return nil
	}

	return &layout.ActionSpec{Label: a.Label, Icon: a.Icon, Color: a.Color}
}

func toFields(files []fieldFile) []layout.FieldSpec {
	fields := make([]layout.FieldSpec, 0, len(files))
	for _, f := range files {
		fields = append(fields, layout.FieldSpec{
			Name:         f.Name,
			Label:        f.Label,
			Kind:         f.Kind,
			Required:     f.Required,
			MinLength:    f.MinLength,
			MaxLength:    f.MaxLength,
			Min:          f.Min,
			Max:          f.Max,
			Options:      f.Options,
			Pattern:      f.Pattern,
			Default:      f.Default,
			Transform:    f.Transform,
			Dehydrated:   f.Dehydrated,
			Items:        toFields(f.Items),
			Relationship: f.Relationship,
		})
	}

	return fields
}
