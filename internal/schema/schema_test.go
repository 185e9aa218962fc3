package schema

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/bnema/editable-entry/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contactSchema() *Schema {
	name := Text("name")
	name.Required = true
	name.MaxLength = 20

	age := Number("age")
	age.Min = Float(0)
	age.Max = Float(150)

	status := Select("status", "active", "archived")
	status.Default = "active"

	phone := Text("number")
	phone.Required = true

	phones := Repeater("phones", phone, Text("label"))
	phones.Relationship = "phones"

	return New(name, age, status, Toggle("vip"), Display("created_at"), phones)
}

func boundContact(t *testing.T) (*Schema, MapStore) {
	t.Helper()

	store := MapStore{}
	record := &domain.Record{
		ID:         "r-1",
		Type:       "contact",
		Attributes: domain.Attributes{"name": "Alice", "age": int64(30), "vip": true, "created_at": "2026-01-01"},
		Relations: map[string][]domain.Attributes{
			"phones": {{"number": "555-0100", "label": "home"}},
		},
	}

	s := contactSchema().AtPath("editableEntryData.c1").Model(record.Type).ForRecord(record).Bind(store)
	require.NoError(t, s.Check())

	return s, store
}

func TestSchemaFillFromRecordProjectsDeclaredFields(t *testing.T) {
	t.Parallel()

	s, store := boundContact(t)
	require.NoError(t, s.FillFromRecord())

	state, ok := store.Get("editableEntryData.c1")
	require.True(t, ok)
	values := state.(map[string]any)

	assert.Equal(t, "Alice", values["name"])
	assert.Equal(t, "active", values["status"])
	assert.NotContains(t, values, "created_at")
	require.Len(t, values["phones"], 1)
	assert.Equal(t, "555-0100", values["phones"].([]map[string]any)[0]["number"])
}

func TestSchemaFillReplacesStaleState(t *testing.T) {
	t.Parallel()

	s, store := boundContact(t)
	require.NoError(t, store.Set("editableEntryData.c1", map[string]any{"name": "Stale", "ghost": 1}))

	require.NoError(t, s.FillFromRecord())

	assert.Equal(t, "Alice", s.RawState()["name"])
	assert.NotContains(t, s.RawState(), "ghost")
}

func TestSchemaStateCoercesAndSeparatesRelationships(t *testing.T) {
	t.Parallel()

	s, store := boundContact(t)
	require.NoError(t, s.FillFromRecord())
	require.NoError(t, store.Set("editableEntryData.c1.age", "42"))
	require.NoError(t, store.Set("editableEntryData.c1.vip", "off"))
	require.NoError(t, store.Set("editableEntryData.c1.phones.0.number", "555-0199"))

	state, err := s.State()
	require.NoError(t, err)

	assert.Equal(t, map[string]any{
		"name":   "Alice",
		"age":    int64(42),
		"status": "active",
		"vip":    false,
	}, state)
	assert.Equal(t, map[string][]domain.Attributes{
		"phones": {{"number": "555-0199", "label": "home"}},
	}, s.RelationshipState())
}

func TestSchemaStateReportsEveryFailingField(t *testing.T) {
	t.Parallel()

	s, store := boundContact(t)
	require.NoError(t, s.FillFromRecord())
	require.NoError(t, store.Set("editableEntryData.c1.name", "  "))
	require.NoError(t, store.Set("editableEntryData.c1.age", "two hundred"))
	require.NoError(t, store.Set("editableEntryData.c1.status", "deleted"))
	require.NoError(t, store.Set("editableEntryData.c1.phones.0.number", ""))

	_, err := s.State()

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"The name field is required."}, verr.Fields["name"])
	assert.Equal(t, []string{"The age field must be a number."}, verr.Fields["age"])
	assert.Equal(t, []string{"The selected status is invalid."}, verr.Fields["status"])
	assert.Equal(t, []string{"The number field is required."}, verr.Fields["phones.0.number"])
	assert.True(t, strings.HasPrefix(err.Error(), "validation failed: age:"))
}

func TestSchemaStateRangeAndLengthRules(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		field   string
		value   any
		wantErr string
	}{
		{name: "too long", field: "name", value: strings.Repeat("x", 21), wantErr: "must not be greater than 20 characters"},
		{name: "below min", field: "age", value: -1, wantErr: "must be at least 0"},
		{name: "above max", field: "age", value: 150.5, wantErr: "must not be greater than 150"},
		{name: "toggle garbage", field: "vip", value: "maybe", wantErr: "must be true or false"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s, store := boundContact(t)
			require.NoError(t, s.FillFromRecord())
			require.NoError(t, store.Set(JoinPath("editableEntryData.c1", tc.field), tc.value))

			_, err := s.State()
			require.Error(t, err)
			assert.ErrorContains(t, err, tc.wantErr)
		})
	}
}

func TestSchemaStateRunsDehydrateAndMutateHooks(t *testing.T) {
	t.Parallel()

	email := Text("email")
	email.Pattern = `^[^@\s]+@[^@\s]+$`
	email.Dehydrate = func(v any) any { return strings.ToLower(v.(string)) }
	secret := Text("confirm")
	secret.Dehydrated = Bool(false)

	store := MapStore{}
	s := New(email, secret).AtPath("page.form").Bind(store).MutateStateUsing(func(state map[string]any) map[string]any {
		state["source"] = "inline"
		return state
	})
	require.NoError(t, s.Fill(map[string]any{"email": "Alice@Example.COM", "confirm": "x"}))

	state, err := s.State()
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"email": "alice@example.com", "source": "inline"}, state)

	require.NoError(t, store.Set("page.form.email", "not-an-email"))
	_, err = s.State()
	assert.ErrorContains(t, err, "The email field format is invalid.")
}

type recordingSaver struct {
	calls []string
	err   error
}

func (r *recordingSaver) SaveRelation(_ context.Context, record domain.Record, relation string, items []domain.Attributes) error {
	r.calls = append(r.calls, string(record.ID)+":"+relation)
	return r.err
}

func TestSchemaSaveRelationships(t *testing.T) {
	t.Parallel()

	s, _ := boundContact(t)
	require.NoError(t, s.FillFromRecord())

	saver := &recordingSaver{}
	assert.ErrorIs(t, s.SaveRelationships(context.Background(), saver), ErrNotEvaluated)

	_, err := s.State()
	require.NoError(t, err)
	require.NoError(t, s.SaveRelationships(context.Background(), saver))
	assert.Equal(t, []string{"r-1:phones"}, saver.calls)

	failing := &recordingSaver{err: errors.New("disk full")}
	err = s.SaveRelationships(context.Background(), failing)
	assert.ErrorContains(t, err, "save relationship phones: disk full")
}

func TestSchemaUnboundOperations(t *testing.T) {
	t.Parallel()

	s := contactSchema()

	assert.ErrorIs(t, s.Fill(nil), ErrUnbound)
	_, err := s.State()
	assert.ErrorIs(t, err, ErrUnbound)
	assert.Empty(t, s.RawState())
}

func TestSchemaValuesReadsRecordWhenUnbound(t *testing.T) {
	t.Parallel()

	record := &domain.Record{Attributes: domain.Attributes{"name": "Alice"}}
	s := New(Display("name")).ForRecord(record)

	assert.Equal(t, "Alice", s.Values()["name"])
	record.Attributes["name"] = "Carol"
	assert.Equal(t, "Carol", s.Values()["name"])
}

func TestSchemaCheckRejectsBadDeclarations(t *testing.T) {
	t.Parallel()

	pattern := Text("code")
	pattern.Pattern = "("

	tests := []struct {
		name   string
		fields []Field
	}{
		{name: "empty name", fields: []Field{Text("")}},
		{name: "dotted name", fields: []Field{Text("a.b")}},
		{name: "unknown kind", fields: []Field{{Name: "x", Kind: "slider"}}},
		{name: "bad pattern", fields: []Field{pattern}},
		{name: "select without options", fields: []Field{Select("status")}},
		{name: "empty repeater", fields: []Field{Repeater("phones")}},
		{name: "duplicate", fields: []Field{Text("name"), Text("name")}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, New(tc.fields...).Check(), ErrInvalidField)
		})
	}
}

func TestSchemaCloneDropsBindings(t *testing.T) {
	t.Parallel()

	s, _ := boundContact(t)
	clone := s.Clone()

	assert.False(t, clone.Bound())
	assert.Nil(t, clone.Record())
	assert.Len(t, clone.Fields(), len(s.Fields()))
}
