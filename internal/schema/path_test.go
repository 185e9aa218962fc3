package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitAndJoinPath(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"editableEntryData", "c1", "name"}, SplitPath(" editableEntryData..c1.name "))
	assert.Empty(t, SplitPath(""))
	assert.Equal(t, "editableEntryData.c1.name", JoinPath("editableEntryData.", "c1", "", "name"))
}

func TestSetPathCreatesIntermediateMaps(t *testing.T) {
	t.Parallel()

	root := map[string]any{}
	require.NoError(t, SetPath(root, []string{"a", "b", "c"}, 1))

	value, ok := GetPath(root, []string{"a", "b", "c"})
	require.True(t, ok)
	assert.Equal(t, 1, value)
}

func TestSetPathAddressesSliceItems(t *testing.T) {
	t.Parallel()

	root := map[string]any{
		"phones": []map[string]any{{"number": "1"}},
		"tags":   []any{"x"},
	}

	require.NoError(t, SetPath(root, []string{"phones", "0", "number"}, "2"))
	require.NoError(t, SetPath(root, []string{"tags", "0"}, "y"))

	assert.Equal(t, "2", root["phones"].([]map[string]any)[0]["number"])
	assert.Equal(t, "y", root["tags"].([]any)[0])

	assert.ErrorIs(t, SetPath(root, []string{"phones", "3", "number"}, "2"), ErrPathConflict)
	assert.ErrorIs(t, SetPath(root, []string{"tags", "0", "deeper"}, "z"), ErrPathConflict)
	assert.ErrorIs(t, SetPath(root, nil, "z"), ErrEmptyPath)
}

func TestDeletePath(t *testing.T) {
	t.Parallel()

	root := map[string]any{"a": map[string]any{"b": 1, "c": 2}}
	DeletePath(root, []string{"a", "b"})
	DeletePath(root, []string{"missing", "x"})

	assert.Equal(t, map[string]any{"a": map[string]any{"c": 2}}, root)
}
