package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecordMergeDoesNotMutateOriginal(t *testing.T) {
	t.Parallel()

	record := Record{
		ID:         "r-1",
		Type:       "contact",
		Attributes: Attributes{"name": "Alice", "email": "alice@example.com"},
		Relations: map[string][]Attributes{
			"phones": {{"number": "555-0100"}},
		},
	}

	merged := record.Merge(map[string]any{"name": "Bob"})

	assert.Equal(t, "Bob", merged.Attributes["name"])
	assert.Equal(t, "alice@example.com", merged.Attributes["email"])
	assert.Equal(t, "Alice", record.Attributes["name"])

	merged.Relations["phones"][0]["number"] = "555-0199"
	assert.Equal(t, "555-0100", record.Relations["phones"][0]["number"])
}

func TestRecordAttributesToMapIsDetached(t *testing.T) {
	t.Parallel()

	record := Record{Attributes: Attributes{"name": "Alice"}}
	values := record.AttributesToMap()
	values["name"] = "Bob"

	assert.Equal(t, "Alice", record.Attributes["name"])
}

func TestAttributesCloneNil(t *testing.T) {
	t.Parallel()

	var attrs Attributes
	assert.NotNil(t, attrs.Clone())
}
