package yaml

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/editable-entry/internal/domain"
	"github.com/bnema/editable-entry/internal/layout"
)

const profileYAML = `
title: User profile
record-type: user
nodes:
  - kind: group
    label: main
    children:
      - id: identity
        label: Identity
        view:
          - {name: name, kind: display}
        edit:
          - {name: name, required: true, max-length: 40, transform: trim}
          - {name: age, kind: number, min: 0, max: 150}
          - name: status
            kind: select
            options: [active, inactive]
            default: active
        actions:
          save: {label: Store, color: success}
  - kind: section
    id: phones
    heading: Phones
    collapsible: true
    edit:
      - name: phones
        kind: repeater
        relationship: phones
        items:
          - {name: number, required: true}
`

func newTestRepository(t *testing.T, files map[string]string) *Repository {
	t.Helper()

	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
	}

	config := viper.New()
	config.Set("layouts.dir", dir)
	repo, err := NewRepository(config)
	require.NoError(t, err)

	return repo
}

func TestRepositoryGetByName(t *testing.T) {
	t.Parallel()

	repo := newTestRepository(t, map[string]string{"profile.yaml": profileYAML})

	page, err := repo.GetByName(context.Background(), "profile")
	require.NoError(t, err)

	assert.Equal(t, "profile", page.Name)
	assert.Equal(t, "User profile", page.Title)
	assert.Equal(t, domain.RecordType("user"), page.RecordType)
	require.Len(t, page.Nodes, 2)

	identity := page.Nodes[0].Children[0]
	assert.Equal(t, layout.NodeEntry, identity.Kind)
	assert.Equal(t, domain.ComponentID("identity"), identity.ID)
	require.Len(t, identity.Edit, 3)
	assert.Equal(t, 40, identity.Edit[0].MaxLength)
	assert.Equal(t, "trim", identity.Edit[0].Transform)
	require.NotNil(t, identity.Edit[1].Max)
	assert.Equal(t, 150.0, *identity.Edit[1].Max)
	assert.Equal(t, "active", identity.Edit[2].Default)
	assert.Equal(t, &layout.ActionSpec{Label: "Store", Color: "success"}, identity.Actions.Save)
	assert.Nil(t, identity.Actions.Start)

	phones := page.Nodes[1]
	assert.Equal(t, layout.NodeSection, phones.Kind)
	assert.True(t, phones.Collapsible)
	assert.Equal(t, "phones", phones.Edit[0].Relationship)
	assert.Equal(t, []domain.ComponentID{"identity", "phones"}, page.Editables())

	_, err = layout.Build(page, &domain.Record{ID: "u1"})
	require.NoError(t, err)
}

func TestRepositoryRejectsUnknownKeys(t *testing.T) {
	t.Parallel()

	repo := newTestRepository(t, map[string]string{"broken.yaml": "nodes:\n  - id: a\n    colour: red\n"})

	_, err := repo.GetByName(context.Background(), "broken")
	require.Error(t, err)
	assert.ErrorContains(t, err, "decode layout broken")
}

func TestRepositoryMissingLayout(t *testing.T) {
	t.Parallel()

	repo := newTestRepository(t, nil)

	_, err := repo.GetByName(context.Background(), "profile")
	require.ErrorIs(t, err, domain.ErrLayoutNotFound)
	_, err = repo.GetByName(context.Background(), "../secrets")
	require.ErrorIs(t, err, domain.ErrLayoutNotFound)
}

func TestRepositoryList(t *testing.T) {
	t.Parallel()

	repo := newTestRepository(t, map[string]string{
		"profile.yaml": profileYAML,
		"billing.yaml": "nodes: []\n",
		"notes.txt":    "ignored",
	})

	names, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"billing", "profile"}, names)
}

func TestRepositoryListMissingDir(t *testing.T) {
	t.Parallel()

	config := viper.New()
	config.Set("layouts.dir", filepath.Join(t.TempDir(), "absent"))
	repo, err := NewRepository(config)
	require.NoError(t, err)

	names, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, names)
}
