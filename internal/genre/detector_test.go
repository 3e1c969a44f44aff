package genre_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/0x5457/book-rec/internal/genre"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetect(t *testing.T) {
	d := genre.NewDetector(genre.DefaultTable())

	tests := []struct {
		query string
		want  []string
	}{
		{"romance", []string{"romance"}},
		{"  Sci-Fi ", []string{"science fiction"}},
		{"ya", []string{"young adult"}},
		{"I want a dystopian thriller", []string{"dystopia", "thriller"}},
		{"historical romance please!", []string{"history", "romance"}},
		{"coming of age stories", []string{"coming-of-age"}},
		{"something NON-FICTION about politics", []string{"nonfiction", "political fiction"}},
		{"xyzzyunknownwords", []string{}},
		{"", []string{}},
		// substring matching: "sf" occurs inside "transform"
		{"books that transform you", []string{"science fiction"}},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Equal(t, tt.want, d.Detect(tt.query).Sorted())
		})
	}
}

func TestDetect_Deterministic(t *testing.T) {
	d := genre.NewDetector(genre.DefaultTable())
	first := d.Detect("epic fantasy adventure with politics").Sorted()
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, d.Detect("epic fantasy adventure with politics").Sorted())
	}
}

func TestSet_MatchesAny(t *testing.T) {
	s := genre.Set{"science fiction": {}}
	assert.True(t, s.MatchesAny([]string{"Adventure", "Science Fiction"}))
	assert.False(t, s.MatchesAny([]string{"Romance"}))
	assert.False(t, genre.Set{}.MatchesAny([]string{"Romance"}))
}

func TestLoadTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "genres.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
horror: [scary, spooky]
Science Fiction: [sci-fi]
`), 0o644))

	table, err := genre.LoadTable(path)
	require.NoError(t, err)
	d := genre.NewDetector(table)
	assert.Equal(t, []string{"horror"}, d.Detect("something spooky").Sorted())
	assert.Equal(t, []string{"science fiction"}, d.Detect("science fiction").Sorted())
	assert.Empty(t, d.Detect("romance").Sorted())
}

func TestLoadTable_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := genre.LoadTable(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("- not\n- a map\n"), 0o644))
	_, err = genre.LoadTable(bad)
	assert.Error(t, err)

	conflict := filepath.Join(dir, "conflict.yaml")
	require.NoError(t, os.WriteFile(conflict, []byte("a: [x]\nb: [x]\n"), 0o644))
	_, err = genre.LoadTable(conflict)
	assert.Error(t, err)
}
