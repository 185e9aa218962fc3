// Package schema implements declarative field schemas: their binding to a
// host state path, filling from records, and evaluation into validated
// state on save.
package schema

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/bnema/editable-entry/internal/domain"
)

// RelationshipSaver persists the validated items of a repeater relation.
type RelationshipSaver interface {
	SaveRelation(ctx context.Context, record domain.Record, relation string, items []domain.Attributes) error
}

type Schema struct {
	fields    []Field
	statePath string
	model     domain.RecordType
	record    *domain.Record
	store     StateStore
	mutate    func(map[string]any) map[string]any

	evaluated bool
	relations map[string][]domain.Attributes
}

func New(fields ...Field) *Schema {
	return &Schema{fields: slicesClone(fields)}
}

// Clone copies the declaration only. Bindings, record and evaluated state are
// left behind so every container gets its own instance.
func (s *Schema) Clone() *Schema {
	if s == nil {
		return New()
	}

	return &Schema{fields: slicesClone(s.fields), mutate: s.mutate}
}

func (s *Schema) Fields() []Field {
	return slicesClone(s.fields)
}

func (s *Schema) Field(name string) (Field, bool) {
	for _, field := range s.fields {
		if field.Name == name {
			return field, true
		}
	}

	return Field{}, false
}

func (s *Schema) Check() error {
	return checkFields(s.fields)
}

func (s *Schema) AtPath(path string) *Schema {
	s.statePath = JoinPath(SplitPath(path)...)
	return s
}

func (s *Schema) Path() string {
	return s.statePath
}

func (s *Schema) Model(recordType domain.RecordType) *Schema {
	s.model = recordType
	return s
}

func (s *Schema) RecordType() domain.RecordType {
	return s.model
}

func (s *Schema) ForRecord(record *domain.Record) *Schema {
	s.record = record
	return s
}

func (s *Schema) Record() *domain.Record {
	return s.record
}

func (s *Schema) Bind(store StateStore) *Schema {
	s.store = store
	return s
}

func (s *Schema) Bound() bool {
	return s.store != nil && s.statePath != ""
}

// MutateStateUsing registers a hook that runs over the validated state right
// before it is handed to the caller.
func (s *Schema) MutateStateUsing(fn func(map[string]any) map[string]any) *Schema {
	s.mutate = fn
	return s
}

// Fill replaces the bound state with values projected onto the declared
// fields. Missing values fall back to the field default.
func (s *Schema) Fill(values map[string]any) error {
	if !s.Bound() {
		return ErrUnbound
	}

	s.evaluated = false
	s.relations = nil

	if err := s.store.Set(s.statePath, project(s.fields, values)); err != nil {
		return fmt.Errorf("fill %s: %w", s.statePath, err)
	}

	return nil
}

// FillFromRecord fills the bound state from the record's attributes and, for
// repeaters with a relationship, from the related items.
func (s *Schema) FillFromRecord() error {
	if s.record == nil {
		return ErrNoRecord
	}

	return s.Fill(recordValues(s.fields, *s.record))
}

// RawState returns the unvalidated values currently held at the state path.
func (s *Schema) RawState() map[string]any {
	if !s.Bound() {
		return map[string]any{}
	}

	value, ok := s.store.Get(s.statePath)
	if !ok {
		return map[string]any{}
	}
	state, ok := value.(map[string]any)
	if !ok {
		return map[string]any{}
	}

	return state
}

// Values returns what the schema displays: the bound state for edit schemas,
// the record for schemas that read it directly.
func (s *Schema) Values() map[string]any {
	if s.Bound() {
		return s.RawState()
	}
	if s.record != nil {
		return recordValues(s.fields, *s.record)
	}

	return map[string]any{}
}

// State validates, coerces and dehydrates the bound values. Repeaters that
// save a relationship are kept apart and persisted by SaveRelationships.
func (s *Schema) State() (map[string]any, error) {
	if !s.Bound() {
		return nil, ErrUnbound
	}

	raw := s.RawState()
	verr := &ValidationError{}
	state := make(map[string]any, len(s.fields))
	relations := map[string][]domain.Attributes{}

	for _, field := range s.fields {
		if field.Kind == KindDisplay {
			continue
		}

		if field.Kind == KindRepeater {
			items := evaluateItems(field, raw[field.Name], verr)
			if field.Relationship != "" {
				relations[field.Relationship] = items
				continue
			}
			if field.isDehydrated() {
				state[field.Name] = items
			}
			continue
		}

		value, messages := field.evaluate(raw[field.Name])
		for _, message := range messages {
			verr.Add(field.Name, message)
		}
		if len(messages) > 0 || !field.isDehydrated() {
			continue
		}
		if field.Dehydrate != nil {
			value = field.Dehydrate(value)
		}
		state[field.Name] = value
	}

	if !verr.Empty() {
		return nil, verr
	}

	if s.mutate != nil {
		state = s.mutate(state)
	}

	s.evaluated = true
	s.relations = relations

	return state, nil
}

// RelationshipState returns the relation items validated by the last State
// call.
func (s *Schema) RelationshipState() map[string][]domain.Attributes {
	out := make(map[string][]domain.Attributes, len(s.relations))
	for name, items := range s.relations {
		copied := make([]domain.Attributes, 0, len(items))
		for _, item := range items {
			copied = append(copied, item.Clone())
		}
		out[name] = copied
	}

	return out
}

func (s *Schema) SaveRelationships(ctx context.Context, saver RelationshipSaver) error {
	if !s.evaluated {
		return ErrNotEvaluated
	}
	if len(s.relations) == 0 {
		return nil
	}
	if s.record == nil {
		return ErrNoRecord
	}

	names := make([]string, 0, len(s.relations))
	for name := range s.relations {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := saver.SaveRelation(ctx, *s.record, name, s.relations[name]); err != nil {
			return fmt.Errorf("save relationship %s: %w", name, err)
		}
	}

	return nil
}

func evaluateItems(field Field, raw any, verr *ValidationError) []domain.Attributes {
	items := itemsOf(raw)
	if len(items) == 0 && field.Required {
		verr.Add(field.Name, fmt.Sprintf("The %s field is required.", field.DisplayLabel()))
		return nil
	}

	out := make([]domain.Attributes, 0, len(items))
	for i, item := range items {
		evaluated := domain.Attributes{}
		for _, sub := range field.Items {
			if sub.Kind == KindDisplay || sub.Kind == KindRepeater {
				continue
			}
			value, messages := sub.evaluate(item[sub.Name])
			for _, message := range messages {
				verr.Add(JoinPath(field.Name, strconv.Itoa(i), sub.Name), message)
			}
			if len(messages) > 0 || !sub.isDehydrated() {
				continue
			}
			if sub.Dehydrate != nil {
				value = sub.Dehydrate(value)
			}
			evaluated[sub.Name] = value
		}
		out = append(out, evaluated)
	}

	return out
}

func project(fields []Field, values map[string]any) map[string]any {
	state := make(map[string]any, len(fields))
	for _, field := range fields {
		if field.Kind == KindDisplay {
			continue
		}

		value, ok := values[field.Name]
		if field.Kind == KindRepeater {
			items := itemsOf(value)
			projected := make([]map[string]any, 0, len(items))
			for _, item := range items {
				projected = append(projected, project(field.Items, item))
			}
			state[field.Name] = projected
			continue
		}

		if !ok || value == nil {
			value = field.Default
		}
		state[field.Name] = value
	}

	return state
}

func recordValues(fields []Field, record domain.Record) map[string]any {
	values := record.AttributesToMap()
	for _, field := range fields {
		if field.Kind == KindRepeater && field.Relationship != "" {
			values[field.Name] = record.Relation(field.Relationship)
		}
	}

	return values
}

func slicesClone(fields []Field) []Field {
	out := make([]Field, len(fields))
	copy(out, fields)
	return out
}
