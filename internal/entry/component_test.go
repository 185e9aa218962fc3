package entry_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/editable-entry/internal/domain"
	"github.com/bnema/editable-entry/internal/entry"
	"github.com/bnema/editable-entry/internal/schema"
)

func TestFindWalksNestedGroups(t *testing.T) {
	record := userRecord()
	trees := []entry.Component{
		entry.NewGroup("header"),
		entry.NewGroup("body",
			entry.NewGroup("left", profileEntry(record)),
			entry.NewGroup("right", addressSection(record)),
		),
	}

	found, ok := entry.Find(trees, "c2")
	require.True(t, ok)
	assert.Equal(t, "Address", found.GetLabel())

	_, ok = entry.Find(trees, "missing")
	assert.False(t, ok)
	_, ok = entry.Find(trees, "")
	assert.False(t, ok)
	_, ok = entry.Find(nil, "c1")
	assert.False(t, ok)
}

func TestSectionPresentation(t *testing.T) {
	section := addressSection(userRecord()).Collapsible(true)

	assert.Equal(t, "Address", section.GetHeading())
	assert.Equal(t, "Where the user lives", section.GetDescription())
	assert.True(t, section.IsCollapsible())
	assert.Equal(t, "Address", section.GetLabel())
	assert.Equal(t, "Home", section.Label("Home").GetLabel())
}

func TestMountRejectsMissingAndDuplicateIDs(t *testing.T) {
	record := userRecord()

	page := entry.NewPage(nil, nil, nil)
	err := page.Mount(entry.NewEntry("").Label("Nameless").Record(record))
	assert.ErrorIs(t, err, entry.ErrMissingComponentID)

	page = entry.NewPage(nil, nil, nil)
	err = page.Mount(
		entry.NewGroup("a", profileEntry(record)),
		entry.NewGroup("b", profileEntry(record)),
	)
	assert.ErrorIs(t, err, entry.ErrDuplicateComponentID)
	assert.Empty(t, page.Editables())
}

func TestMountRejectsUnbackedStatePath(t *testing.T) {
	c := profileEntry(userRecord()).StatePath("drafts.profile")

	err := entry.NewPage(nil, nil, nil).Mount(c)

	require.ErrorIs(t, err, entry.ErrInvalidStatePath)
	assert.ErrorContains(t, err, `no "drafts" slot`)
	assert.Panics(t, func() {
		entry.NewPage(nil, nil, nil).MustMount(profileEntry(userRecord()).StatePath("drafts.profile"))
	})
}

func TestMountRejectsStatePathOwnedByAnotherEntry(t *testing.T) {
	record := userRecord()

	err := entry.NewPage(nil, nil, nil).Mount(
		profileEntry(record),
		addressSection(record).StatePath("editableEntryData.c1"),
	)
	require.ErrorIs(t, err, entry.ErrStatePathConflict)
	assert.ErrorContains(t, err, "mount c2")

	page := entry.NewPage(nil, nil, nil, entry.WithExtraSlot("drafts"))
	err = page.Mount(
		profileEntry(record).StatePath("drafts.shared"),
		addressSection(record).StatePath("drafts.shared"),
	)
	require.ErrorIs(t, err, entry.ErrStatePathConflict)
	assert.Empty(t, page.Editables())

	err = entry.NewPage(nil, nil, nil).Mount(profileEntry(record).StatePath("editableEntryData"))
	require.ErrorIs(t, err, entry.ErrInvalidStatePath)

	err = entry.NewPage(nil, nil, nil).Mount(
		profileEntry(record).StatePath("editableEntryData.draft"),
		addressSection(record),
	)
	assert.NoError(t, err)
}

func TestMountRejectsInvalidSchemas(t *testing.T) {
	c := entry.NewEntry("c1").EditSchema(schema.New(schema.Select("status")))

	err := entry.NewPage(nil, nil, nil).Mount(c)

	require.ErrorIs(t, err, entry.ErrInvalidSchema)
	assert.ErrorIs(t, err, schema.ErrInvalidField)
}

func TestExtraSlotBacksCustomStatePath(t *testing.T) {
	record := userRecord()
	c := profileEntry(record).StatePath("drafts.profile")
	page := entry.NewPage(nil, nil, nil, entry.WithExtraSlot("drafts"))
	require.NoError(t, page.Mount(c))

	assert.Equal(t, []string{domain.ScratchSlot, "drafts"}, page.ScratchSlots())
	require.NoError(t, page.StartEditableEntryAction("c1").Run(context.Background(), page))

	name, ok := page.Get("drafts.profile.name")
	require.True(t, ok)
	assert.Equal(t, "Alice", name)
	assert.False(t, page.Session().HasScratch("c1"))
}

func TestPageStateStore(t *testing.T) {
	page := entry.NewPage(domain.NewEditSession("s1"), nil, nil)

	require.NoError(t, page.Set("editableEntryData.c1", map[string]any{"name": "Alice"}))
	require.NoError(t, page.Set("editableEntryData.c1.city", "Paris"))

	value, ok := page.Get("editableEntryData.c1")
	require.True(t, ok)
	assert.Equal(t, map[string]any{"name": "Alice", "city": "Paris"}, value)

	_, ok = page.Get("editableEntryData.c2.name")
	assert.False(t, ok)
	_, ok = page.Get("unknown.c1")
	assert.False(t, ok)

	assert.ErrorIs(t, page.Set("editableEntryData", map[string]any{}), schema.ErrPathConflict)
	assert.ErrorIs(t, page.Set("editableEntryData.c1", "not a map"), schema.ErrPathConflict)
	assert.ErrorIs(t, page.Set("unknown.c1", "x"), entry.ErrUnknownSlot)
}

func TestReportAndClearErrors(t *testing.T) {
	page := entry.NewPage(nil, nil, nil)
	verr := &schema.ValidationError{}
	verr.Add("name", "The name field is required.")

	page.ReportErrors("c1", verr)
	assert.Equal(t, map[string][]string{"name": {"The name field is required."}}, page.FieldErrors("c1"))

	page.ClearErrors("c1")
	assert.Empty(t, page.FieldErrors("c1"))
}
