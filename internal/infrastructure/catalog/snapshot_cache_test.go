package catalog

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/decohogar/backend/internal/domain"
)

func nullString() sql.NullString { return sql.NullString{} }

func validString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: true}
}

func TestSnapshotCache_MissWhenEmpty(t *testing.T) {
	cache := newSnapshotCache(time.Minute)

	got, ok := cache.get()
	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestSnapshotCache_HitWithinTTL(t *testing.T) {
	cache := newSnapshotCache(time.Minute)
	s := &snapshot{
		products: []domain.Product{{ID: 1, Name: "Silla Moderna"}},
	}

	cache.set(s)

	got, ok := cache.get()
	assert.True(t, ok)
	assert.Same(t, s, got)
}

func TestSnapshotCache_MissAfterExpiry(t *testing.T) {
	cache := newSnapshotCache(time.Millisecond)
	cache.set(&snapshot{})

	time.Sleep(5 * time.Millisecond)

	_, ok := cache.get()
	assert.False(t, ok)
}

func TestSnapshotCache_Clear(t *testing.T) {
	cache := newSnapshotCache(time.Minute)
	cache.set(&snapshot{})

	cache.clear()

	_, ok := cache.get()
	assert.False(t, ok)
}

func TestParseAttributes(t *testing.T) {
	t.Run("null column", func(t *testing.T) {
		attrs := parseAttributes(nullString())
		assert.Empty(t, attrs.Color)
		assert.Nil(t, attrs.Variants)
	})

	t.Run("color and material", func(t *testing.T) {
		attrs := parseAttributes(validString(`{"color": "gris", "material": "roble"}`))
		assert.Equal(t, "gris", attrs.Color)
		assert.Equal(t, "roble", attrs.Material)
	})

	t.Run("color variants", func(t *testing.T) {
		attrs := parseAttributes(validString(`{"variantes": {"color": ["gris", "negro"]}}`))
		assert.True(t, attrs.HasColorVariants())
	})

	t.Run("garbage payload degrades to empty", func(t *testing.T) {
		attrs := parseAttributes(validString(`not json at all`))
		assert.Empty(t, attrs.Color)
		assert.False(t, attrs.HasColorVariants())
	})
}
