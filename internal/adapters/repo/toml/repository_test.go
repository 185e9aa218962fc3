package toml

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/editable-entry/internal/domain"
)

func newTestRecordRepository(t *testing.T, path string) *RecordRepository {
	t.Helper()

	config := viper.New()
	config.Set("records.path", path)
	repo, err := NewRecordRepository(config)
	require.NoError(t, err)

	return repo
}

func sampleRecord() domain.Record {
	return domain.Record{
		ID:   "u1",
		Type: "user",
		Attributes: domain.Attributes{
			"name":   "Alice",
			"age":    int64(36),
			"score":  4.5,
			"active": true,
		},
		Relations: map[string][]domain.Attributes{
			"phones": {{"number": "555-0100", "label": "home"}},
		},
		UpdatedAt: time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC),
	}
}

func TestRecordRepositoryRoundTrip(t *testing.T) {
	t.Parallel()

	repo := newTestRecordRepository(t, filepath.Join(t.TempDir(), "records.toml"))
	first := sampleRecord()
	second := domain.Record{ID: "u2", Type: "user", Attributes: domain.Attributes{"name": "Bob"}}

	require.NoError(t, repo.Put(context.Background(), first))
	require.NoError(t, repo.Put(context.Background(), second))

	got, err := repo.GetByID(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, first, got)

	records, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.ElementsMatch(t, []domain.Record{first, second}, records)
}

func TestRecordRepositoryUpdateKeepsStoredRelations(t *testing.T) {
	t.Parallel()

	repo := newTestRecordRepository(t, filepath.Join(t.TempDir(), "records.toml"))
	require.NoError(t, repo.Put(context.Background(), sampleRecord()))

	update := domain.Record{ID: "u1", Type: "user", Attributes: domain.Attributes{"name": "Bob", "age": nil}}
	require.NoError(t, repo.Update(context.Background(), update))

	got, err := repo.GetByID(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, domain.Attributes{"name": "Bob"}, got.Attributes)
	assert.Equal(t, []domain.Attributes{{"number": "555-0100", "label": "home"}}, got.Relations["phones"])
}

func TestRecordRepositoryUpdateMissingRecord(t *testing.T) {
	t.Parallel()

	repo := newTestRecordRepository(t, filepath.Join(t.TempDir(), "records.toml"))

	err := repo.Update(context.Background(), domain.Record{ID: "ghost"})
	require.ErrorIs(t, err, domain.ErrRecordNotFound)

	err = repo.SaveRelation(context.Background(), domain.Record{ID: "ghost"}, "phones", nil)
	require.ErrorIs(t, err, domain.ErrRecordNotFound)
}

func TestRecordRepositorySaveRelation(t *testing.T) {
	t.Parallel()

	repo := newTestRecordRepository(t, filepath.Join(t.TempDir(), "records.toml"))
	require.NoError(t, repo.Put(context.Background(), domain.Record{ID: "u1", Attributes: domain.Attributes{"name": "Alice"}}))

	items := []domain.Attributes{{"number": "555-0199"}, {"number": "555-0200"}}
	require.NoError(t, repo.SaveRelation(context.Background(), domain.Record{ID: "u1"}, "phones", items))

	got, err := repo.GetByID(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, items, got.Relations["phones"])
	assert.Equal(t, "Alice", got.Attributes["name"])

	assert.Error(t, repo.SaveRelation(context.Background(), domain.Record{ID: "u1"}, "", items))
}

func TestRecordRepositoryCreatesDefaultPathAndEnforcesPermissions(t *testing.T) {
	homeDir := t.TempDir()
	t.Setenv("HOME", homeDir)

	repo, err := NewRecordRepository(viper.New())
	require.NoError(t, err)

	require.NoError(t, repo.Put(context.Background(), domain.Record{ID: "u1"}))

	info, err := os.Stat(filepath.Join(homeDir, ".editable-entry", "records.toml"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestRecordRepositoryMissingFileBehaviors(t *testing.T) {
	t.Parallel()

	repo := newTestRecordRepository(t, filepath.Join(t.TempDir(), "missing", "records.toml"))

	records, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, records)

	_, err = repo.GetByID(context.Background(), "u1")
	require.ErrorIs(t, err, domain.ErrRecordNotFound)
}

func TestRecordRepositoryMalformedTOMLReturnsError(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "records.toml")
	require.NoError(t, os.WriteFile(path, []byte("records = ["), 0o600))
	repo := newTestRecordRepository(t, path)

	_, err := repo.List(context.Background())
	require.Error(t, err)
	assert.ErrorContains(t, err, "decode records file")
}

func TestRecordRepositoryCanceledContextReturnsContextError(t *testing.T) {
	t.Parallel()

	repo := newTestRecordRepository(t, filepath.Join(t.TempDir(), "records.toml"))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := repo.Put(ctx, domain.Record{ID: "u1"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestRecordRepositoryFutureSchemaVersionReturnsError(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "records.toml")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join([]string{
		"version = 999",
		"",
		"records = []",
		"",
	}, "\n")), 0o600))
	repo := newTestRecordRepository(t, path)

	_, err := repo.List(context.Background())
	require.Error(t, err)
	assert.ErrorContains(t, err, "unsupported records schema version")
}

func TestRecordRepositoryReadsHandWrittenFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "records.toml")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join([]string{
		"version = 1",
		"",
		"[[records]]",
		`id = "u1"`,
		`type = "user"`,
		"",
		"[records.attributes]",
		`name = "Alice"`,
		"age = 36",
		"",
		"[[records.relations.phones]]",
		`number = "555-0100"`,
		"",
	}, "\n")), 0o600))
	repo := newTestRecordRepository(t, path)

	got, err := repo.GetByID(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, domain.Attributes{"name": "Alice", "age": int64(36)}, got.Attributes)
	assert.Equal(t, []domain.Attributes{{"number": "555-0100"}}, got.Relations["phones"])
}

func TestRecordRepositoryConcurrentPutsAcrossInstancesPreserveAllRecords(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "records.toml")
	repoA := newTestRecordRepository(t, path)
	repoB := newTestRecordRepository(t, path)

	const perRepoWrites = 50
	start := make(chan struct{})
	errCh := make(chan error, perRepoWrites*2)
	var wg sync.WaitGroup
	wg.Add(2)

	write := func(repo *RecordRepository, prefix string) {
		defer wg.Done()
		<-start
		for i := 0; i < perRepoWrites; i++ {
			errCh <- repo.Put(context.Background(), domain.Record{ID: domain.RecordID(prefix + strconv.Itoa(i))})
		}
	}
	go write(repoA, "a-")
	go write(repoB, "b-")

	close(start)
	wg.Wait()
	close(errCh)

	for err := range errCh {
		require.NoError(t, err)
	}

	records, err := repoA.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, records, perRepoWrites*2)
}
