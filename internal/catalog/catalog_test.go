package catalog_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vytor/regexplorer/internal/catalog"
	"github.com/vytor/regexplorer/internal/matcher"
	"github.com/vytor/regexplorer/internal/models"
	"github.com/vytor/regexplorer/internal/repository/memory"
	"github.com/vytor/regexplorer/internal/testutil/mocks"
)

func embeddedPuzzles(t *testing.T) []models.NewPuzzle {
	data, err := catalog.Read("")
	require.NoError(t, err)
	puzzles, err := catalog.Parse(data)
	require.NoError(t, err)
	return puzzles
}

func TestParse_EmbeddedCatalogIsTiered(t *testing.T) {
	puzzles := embeddedPuzzles(t)
	require.Len(t, puzzles, 60)

	counts := map[models.Difficulty]int{}
	for _, p := range puzzles {
		counts[p.Difficulty]++
	}
	assert.Equal(t, 20, counts[models.Easy])
	assert.Equal(t, 20, counts[models.Medium])
	assert.Equal(t, 20, counts[models.Hard])

	// Tiers load easy, medium, hard.
	assert.Equal(t, models.Easy, puzzles[0].Difficulty)
	assert.Equal(t, models.Medium, puzzles[20].Difficulty)
	assert.Equal(t, models.Hard, puzzles[59].Difficulty)
	assert.Equal(t, `[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`, puzzles[0].Solution)
}

func TestParse_Rejects(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"not yaml", "version: [", "parse catalog"},
		{"wrong version", "version: 2\ntiers: {}\n", "unsupported catalog version"},
		{"unknown tier", "version: 1\ntiers:\n  expert:\n    - order: 1\n", "unknown difficulty tier"},
		{"missing solution", "version: 1\ntiers:\n  easy:\n    - order: 1\n      instructions: x\n      text: y\n", "missing solution"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := catalog.Parse([]byte(tt.data))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestSeed_LoadsEmbeddedCatalog(t *testing.T) {
	ctx := context.Background()
	store := memory.New()

	loaded := catalog.Seed(ctx, store.Puzzles(), "")
	assert.Equal(t, 60, loaded)

	hard, err := store.Puzzles().List(ctx, models.Hard)
	require.NoError(t, err)
	assert.Len(t, hard, 20)
	for i := 1; i < len(hard); i++ {
		assert.LessOrEqual(t, hard[i-1].Order, hard[i].Order)
	}

	// A second seed must not duplicate the catalog.
	assert.Equal(t, 0, catalog.Seed(ctx, store.Puzzles(), ""))
	count, err := store.Puzzles().Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 60, count)
}

func TestSeed_MissingFileLeavesCatalogEmpty(t *testing.T) {
	ctx := context.Background()
	store := memory.New()

	loaded := catalog.Seed(ctx, store.Puzzles(), filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Equal(t, 0, loaded)

	all, err := store.Puzzles().List(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestSeed_CorruptFileLeavesCatalogEmpty(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("version: 1\ntiers: [oops"), 0o600))

	store := memory.New()
	assert.Equal(t, 0, catalog.Seed(ctx, store.Puzzles(), path))
}

func TestSeed_CustomFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "mini.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`version: 1
tiers:
  hard:
    - order: 2
      instructions: Match doubled words.
      text: 'it it is'
      solution: '\b(\w+) \1\b'
      hint: Backreferences.
  easy:
    - order: 1
      instructions: Match digits.
      text: 'a1b2'
      solution: '\d'
      hint: Use \d.
`), 0o600))

	store := memory.New()
	require.Equal(t, 2, catalog.Seed(ctx, store.Puzzles(), path))

	first, err := store.Puzzles().Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, models.Easy, first.Difficulty)
}

func TestSeed_CountFailureSkipsLoad(t *testing.T) {
	repo := new(mocks.MockPuzzleRepository)
	repo.On("Count", mock.Anything).Return(0, assert.AnError)

	assert.Equal(t, 0, catalog.Seed(context.Background(), repo, ""))
	repo.AssertNotCalled(t, "Create")
}

func TestValidate_EmbeddedSolutionsGradeThemselves(t *testing.T) {
	var tiers []models.NewPuzzle
	for _, p := range embeddedPuzzles(t) {
		if p.Difficulty != models.Hard {
			tiers = append(tiers, p)
		}
	}

	problems := catalog.Validate(context.Background(), matcher.New(), tiers, 4)
	assert.Empty(t, problems)
}

func TestValidate_ReportsBrokenPuzzles(t *testing.T) {
	puzzles := []models.NewPuzzle{
		{Difficulty: models.Easy, Order: 1, Text: "abc", Solution: "["},
		{Difficulty: models.Easy, Order: 2, Text: "abc", Solution: `\d`},
		{Difficulty: models.Easy, Order: 3, Text: "abc", Solution: `b`},
	}

	problems := catalog.Validate(context.Background(), matcher.New(), puzzles, 2)
	require.Len(t, problems, 2)
	assert.Equal(t, 1, problems[0].Order)
	assert.Equal(t, 2, problems[1].Order)
	assert.Contains(t, problems[1].String(), "matches nothing")
}
