package fieldpath_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/fieldcheck/pkg/fieldpath"
)

func TestParse(t *testing.T) {
	t.Parallel()

	t.Run("parses keys indices and wildcards", func(t *testing.T) {
		t.Parallel()
		segs, err := fieldpath.Parse("items[2].tags[*].name.*")
		require.NoError(t, err)
		assert.Equal(t, []fieldpath.Segment{
			{Key: "items"},
			{Index: 2, IsIndex: true},
			{Key: "tags"},
			{Wildcard: true},
			{Key: "name"},
			{Wildcard: true},
		}, segs)
	})

	t.Run("empty path addresses the root", func(t *testing.T) {
		t.Parallel()
		segs, err := fieldpath.Parse("")
		require.NoError(t, err)
		assert.Empty(t, segs)
	})

	t.Run("rejects malformed paths", func(t *testing.T) {
		t.Parallel()
		for _, p := range []string{"a..b", ".a", "a.", "a[1", "a[x]", "a[-1]", "a]b", "a[0]b"} {
			_, err := fieldpath.Parse(p)
			assert.ErrorIs(t, err, fieldpath.ErrInvalidPath, p)
		}
	})
}

func TestFormat(t *testing.T) {
	t.Parallel()

	for _, p := range []string{"a", "a.b", "a[0].b", "[1]", "a.*.c", "a[3][4]"} {
		segs, err := fieldpath.Parse(p)
		require.NoError(t, err)
		assert.Equal(t, p, fieldpath.Format(segs))
	}
}

func TestHasWildcard(t *testing.T) {
	t.Parallel()

	assert.True(t, fieldpath.HasWildcard("a.*"))
	assert.True(t, fieldpath.HasWildcard("a[*].b"))
	assert.False(t, fieldpath.HasWildcard("a.b[0]"))
	assert.False(t, fieldpath.HasWildcard("a..b"))
}
