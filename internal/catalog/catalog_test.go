package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zachkp/portfolio-gallery/internal/gallery"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "catalog.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSeedAndList(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	require.NoError(t, s.Seed(ctx, Defaults()))

	cats, err := s.Categories(ctx)
	require.NoError(t, err)
	require.Len(t, cats, len(Defaults()))
	assert.Equal(t, Defaults(), cats)
}

func TestSeedReplaces(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	require.NoError(t, s.Seed(ctx, Defaults()))
	require.NoError(t, s.Seed(ctx, []Category{{Slug: "only", Title: "Only", Images: []Image{{Ref: "/images/a.png"}}}}))

	cats, err := s.Categories(ctx)
	require.NoError(t, err)
	require.Len(t, cats, 1)
	assert.Equal(t, "only", cats[0].Slug)

	_, err = s.Set(ctx, "tui-mail")
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestSet(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	require.NoError(t, s.Seed(ctx, []Category{
		{Slug: "shots", Title: "Shots", Images: []Image{{Ref: "/images/b.png"}, {Ref: "/images/a.png"}}},
		{Slug: "bare", Title: "Bare"},
	}))

	set, err := s.Set(ctx, "shots")
	require.NoError(t, err)
	assert.Equal(t, "shots", set.Category)
	assert.Equal(t, []gallery.ImageRef{"/images/b.png", "/images/a.png"}, set.Refs())

	bare, err := s.Set(ctx, "bare")
	require.NoError(t, err)
	assert.Equal(t, 0, bare.Len())

	_, err = s.Set(ctx, "missing")
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestCategory(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	require.NoError(t, s.Seed(ctx, []Category{
		{Slug: "shots", Title: "Shots", Description: "Screens", Images: []Image{
			{Ref: "/images/b.png", Alt: "B"}, {Ref: "/images/a.png"},
		}},
		{Slug: "other", Title: "Other", Images: []Image{{Ref: "/images/z.png"}}},
		{Slug: "bare", Title: "Bare"},
	}))

	c, err := s.Category(ctx, "shots")
	require.NoError(t, err)
	assert.Equal(t, Category{Slug: "shots", Title: "Shots", Description: "Screens", Images: []Image{
		{Ref: "/images/b.png", Alt: "B"}, {Ref: "/images/a.png"},
	}}, c)

	bare, err := s.Category(ctx, "bare")
	require.NoError(t, err)
	assert.Equal(t, "Bare", bare.Title)
	assert.Empty(t, bare.Images)

	_, err = s.Category(ctx, "missing")
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestMigrateIsIdempotent(t *testing.T) {
	s := newStore(t)
	assert.NoError(t, s.Migrate(context.Background()))
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gallery.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
categories:
  - slug: tui-mail
    title: Terminal mail client
    images:
      - ref: /images/inbox.png
        alt: Inbox
      - ref: /images/search.png
`), 0o644))

	cats, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, cats, 1)
	assert.Equal(t, "Terminal mail client", cats[0].Title)
	assert.Equal(t, []Image{{Ref: "/images/inbox.png", Alt: "Inbox"}, {Ref: "/images/search.png"}}, cats[0].Images)
}

func TestLoadFileErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadFile(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	noSlug := filepath.Join(dir, "noslug.yaml")
	require.NoError(t, os.WriteFile(noSlug, []byte("categories:\n  - title: x\n"), 0o644))
	_, err = LoadFile(noSlug)
	assert.ErrorContains(t, err, "no slug")

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("categories: [unclosed"), 0o644))
	_, err = LoadFile(bad)
	assert.Error(t, err)
}
