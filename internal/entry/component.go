package entry

import (
	"github.com/bnema/editable-entry/internal/domain"
	"github.com/bnema/editable-entry/internal/schema"
)

// Component is a node of a page's component tree.
type Component interface {
	Children() []Component
}

// Editable is implemented only by the inline-editable containers of this
// package; the unexported method seals it.
type Editable interface {
	Component
	ID() domain.ComponentID
	GetLabel() string
	GetRecord() *domain.Record
	GetViewSchema() *schema.Schema
	Actions() []Action
	HintActions(h Host) []BoundAction
	ResolvedSchema(h Host) (*schema.Schema, error)

	base() *container
}

// Group is a plain layout node holding other components.
type Group struct {
	Name  string
	Items []Component
}

func NewGroup(name string, items ...Component) *Group {
	return &Group{Name: name, Items: items}
}

func (g *Group) Children() []Component {
	if g == nil {
		return nil
	}

	return g.Items
}

// Find returns the first editable with the given id, walking the trees
// depth first in declaration order.
func Find(trees []Component, id domain.ComponentID) (Editable, bool) {
	if id == "" {
		return nil, false
	}

	var found Editable
	_ = Walk(trees, func(e Editable) error {
		if e.ID() == id {
			found = e
			return errStopWalk
		}
		return nil
	})

	return found, found != nil
}

// Walk calls fn for every editable in the trees. A non-nil error from fn
// stops the walk and is returned, except for the internal stop marker.
func Walk(trees []Component, fn func(Editable) error) error {
	for _, tree := range trees {
		if err := walk(tree, fn); err != nil {
			if err == errStopWalk {
				return nil
			}
			return err
		}
	}

	return nil
}

func walk(c Component, fn func(Editable) error) error {
	if c == nil {
		return nil
	}

	if e, ok := c.(Editable); ok {
		if err := fn(e); err != nil {
			return err
		}
	}

	for _, child := range c.Children() {
		if err := walk(child, fn); err != nil {
			return err
		}
	}

	return nil
}

var errStopWalk = stopWalk{}

type stopWalk struct{}

func (stopWalk) Error() string { return "stop walk" }
