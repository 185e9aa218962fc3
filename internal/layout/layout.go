// Package layout describes pages declaratively and builds the component
// trees a host page mounts.
package layout

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bnema/editable-entry/internal/domain"
)

var (
	ErrEmptyName        = errors.New("layout name is empty")
	ErrUnknownNodeKind  = errors.New("unknown layout node kind")
	ErrUnknownTransform = errors.New("unknown field transform")
)

type NodeKind string

const (
	NodeEntry   NodeKind = "entry"
	NodeSection NodeKind = "section"
	NodeGroup   NodeKind = "group"
)

// Page is one page declaration: a named set of component trees shown for
// records of one type.
type Page struct {
	Name       string
	Title      string
	RecordType domain.RecordType
	Nodes      []Node
}

type Node struct {
	Kind        NodeKind
	ID          domain.ComponentID
	Label       string
	Heading     string
	Description string
	Collapsible bool
	StatePath   string
	View        []FieldSpec
	Edit        []FieldSpec
	Actions     ActionOverrides
	Children    []Node
}

// ActionOverrides changes how the Start, Save and Cancel actions of one
// node are presented.
type ActionOverrides struct {
	Start  *ActionSpec
	Save   *ActionSpec
	Cancel *ActionSpec
}

type ActionSpec struct {
	Label string
	Icon  string
	Color string
}

type FieldSpec struct {
	Name         string
	Label        string
	Kind         string
	Required     bool
	MinLength    int
	MaxLength    int
	Min          *float64
	Max          *float64
	Options      []string
	Pattern      string
	Default      any
	Transform    string
	Dehydrated   *bool
	Items        []FieldSpec
	Relationship string
}

func (p Page) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrEmptyName
	}

	var errs []error
	for _, node := range p.Nodes {
		if err := node.validate(); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

func (n Node) validate() error {
	switch n.Kind {
	case NodeEntry, NodeSection, NodeGroup:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownNodeKind, n.Kind)
	}

	var errs []error
	for _, field := range append(append([]FieldSpec{}, n.View...), n.Edit...) {
		if err := field.validate(); err != nil {
			errs = append(errs, fmt.Errorf("node %s: %w", n.ID, err))
		}
	}
	for _, child := range n.Children {
		if err := child.validate(); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

func (f FieldSpec) validate() error {
	if _, ok := transforms[f.Transform]; f.Transform != "" && !ok {
		return fmt.Errorf("field %s: %w: %q", f.Name, ErrUnknownTransform, f.Transform)
	}
	for _, item := range f.Items {
		if err := item.validate(); err != nil {
			return fmt.Errorf("field %s: %w", f.Name, err)
		}
	}

	return nil
}

// Editables lists the ids of every editable node in declaration order.
func (p Page) Editables() []domain.ComponentID {
	var ids []domain.ComponentID
	var visit func(nodes []Node)
	visit = func(nodes []Node) {
		for _, node := range nodes {
			if node.Kind != NodeGroup {
				ids = append(ids, node.ID)
			}
			visit(node.Children)
		}
	}
	visit(p.Nodes)

	return ids
}
