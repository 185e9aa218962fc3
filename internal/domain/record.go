package domain

import (
	"maps"
	"time"
)

type RecordID string

type RecordType string

// Attributes holds the persisted column values of a record, keyed by field name.
type Attributes map[string]any

type Record struct {
	ID         RecordID
	Type       RecordType
	Attributes Attributes
	Relations  map[string][]Attributes
	UpdatedAt  time.Time
}

func (a Attributes) Clone() Attributes {
	if a == nil {
		return Attributes{}
	}

	return maps.Clone(a)
}

// AttributesToMap returns a detached copy of the record attributes suitable
// for filling a form.
func (r Record) AttributesToMap() map[string]any {
	out := make(map[string]any, len(r.Attributes))
	for key, value := range r.Attributes {
		out[key] = value
	}

	return out
}

func (r Record) Relation(name string) []Attributes {
	items := r.Relations[name]
	out := make([]Attributes, 0, len(items))
	for _, item := range items {
		out = append(out, item.Clone())
	}

	return out
}

// Merge returns a copy of the record with values written over its attributes.
func (r Record) Merge(values map[string]any) Record {
	merged := r
	merged.Attributes = r.Attributes.Clone()
	for key, value := range values {
		merged.Attributes[key] = value
	}

	merged.Relations = make(map[string][]Attributes, len(r.Relations))
	for name := range r.Relations {
		merged.Relations[name] = r.Relation(name)
	}

	return merged
}
