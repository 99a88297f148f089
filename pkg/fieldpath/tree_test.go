package fieldpath_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/fieldcheck/pkg/fieldpath"
)

func sampleTree() map[string]any {
	return map[string]any{
		"user": map[string]any{
			"email": "a@b.c",
			"roles": []any{"admin", "dev"},
		},
		"items": []any{
			map[string]any{"sku": "A"},
			map[string]any{"sku": "B"},
			map[string]any{"qty": 1.0},
		},
	}
}

func TestGet(t *testing.T) {
	t.Parallel()
	tree := sampleTree()

	v, ok := fieldpath.Get(tree, "user.email")
	assert.True(t, ok)
	assert.Equal(t, "a@b.c", v)

	v, ok = fieldpath.Get(tree, "user.roles[1]")
	assert.True(t, ok)
	assert.Equal(t, "dev", v)

	v, ok = fieldpath.Get(tree, "user.roles.0")
	assert.True(t, ok)
	assert.Equal(t, "admin", v)

	_, ok = fieldpath.Get(tree, "user.name")
	assert.False(t, ok)

	_, ok = fieldpath.Get(tree, "items[9].sku")
	assert.False(t, ok)

	_, ok = fieldpath.Get(tree, "items[*].sku")
	assert.False(t, ok)

	v, ok = fieldpath.Get(tree, "")
	assert.True(t, ok)
	assert.Equal(t, tree, v)
}

func TestSet(t *testing.T) {
	t.Parallel()

	t.Run("overwrites existing leaf in place", func(t *testing.T) {
		t.Parallel()
		tree := sampleTree()
		root, err := fieldpath.Set(tree, "user.email", "x@y.z")
		require.NoError(t, err)
		v, _ := fieldpath.Get(tree, "user.email")
		assert.Equal(t, "x@y.z", v)
		assert.Equal(t, tree, root)
	})

	t.Run("creates missing containers", func(t *testing.T) {
		t.Parallel()
		root, err := fieldpath.Set(nil, "a.b[1].c", 5)
		require.NoError(t, err)
		assert.Equal(t, map[string]any{
			"a": map[string]any{
				"b": []any{nil, map[string]any{"c": 5}},
			},
		}, root)
	})

	t.Run("grows slices", func(t *testing.T) {
		t.Parallel()
		tree := sampleTree()
		_, err := fieldpath.Set(tree, "user.roles[3]", "owner")
		require.NoError(t, err)
		v, ok := fieldpath.Get(tree, "user.roles")
		require.True(t, ok)
		assert.Equal(t, []any{"admin", "dev", nil, "owner"}, v)
	})

	t.Run("replaces the root for empty path", func(t *testing.T) {
		t.Parallel()
		root, err := fieldpath.Set(map[string]any{"a": 1}, "", "scalar")
		require.NoError(t, err)
		assert.Equal(t, "scalar", root)
	})

	t.Run("rejects wildcards", func(t *testing.T) {
		t.Parallel()
		_, err := fieldpath.Set(sampleTree(), "items[*].sku", "x")
		assert.ErrorIs(t, err, fieldpath.ErrWildcardNotAllowed)
	})

	t.Run("rejects object keys on lists", func(t *testing.T) {
		t.Parallel()
		_, err := fieldpath.Set(sampleTree(), "items.sku", "x")
		assert.ErrorIs(t, err, fieldpath.ErrTypeMismatch)
	})
}

func TestExpand(t *testing.T) {
	t.Parallel()
	tree := sampleTree()

	t.Run("returns plain paths unchanged", func(t *testing.T) {
		t.Parallel()
		paths, err := fieldpath.Expand(tree, "user.email")
		require.NoError(t, err)
		assert.Equal(t, []string{"user.email"}, paths)
	})

	t.Run("expands slice wildcards by index", func(t *testing.T) {
		t.Parallel()
		paths, err := fieldpath.Expand(tree, "items[*].sku")
		require.NoError(t, err)
		assert.Equal(t, []string{"items[0].sku", "items[1].sku", "items[2].sku"}, paths)
	})

	t.Run("expands object wildcards in key order", func(t *testing.T) {
		t.Parallel()
		paths, err := fieldpath.Expand(tree, "user.*")
		require.NoError(t, err)
		assert.Equal(t, []string{"user.email", "user.roles"}, paths)
	})

	t.Run("produces nothing for missing containers", func(t *testing.T) {
		t.Parallel()
		paths, err := fieldpath.Expand(tree, "missing.*")
		require.NoError(t, err)
		assert.Empty(t, paths)
	})

	t.Run("propagates parse errors", func(t *testing.T) {
		t.Parallel()
		_, err := fieldpath.Expand(tree, "a[")
		assert.ErrorIs(t, err, fieldpath.ErrInvalidPath)
	})
}
