package client

import (
	"testing"

	"github.com/PrayerJournal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddCustomCategory(t *testing.T) {
	s := NewCategoryStore(testStore(t), nil)

	cat, err := s.Add("Small Group!", "#FF0000")
	require.NoError(t, err)
	assert.Equal(t, "small-group", cat.Category_Value)
	assert.Equal(t, "Small Group!", cat.Label)

	all := s.All()
	assert.Len(t, all, len(models.DefaultCategories)+1)
	assert.Equal(t, "small-group", all[len(all)-1].Category_Value)
}

func TestAddRejectsDuplicates(t *testing.T) {
	s := NewCategoryStore(testStore(t), nil)

	_, err := s.Add("Family", "#FF0000")
	assert.ErrorIs(t, err, ErrDuplicateCategory, "collides with a default category")

	_, err = s.Add("Work", "#FF0000")
	require.NoError(t, err)
	_, err = s.Add("  work ", "#00FF00")
	assert.ErrorIs(t, err, ErrDuplicateCategory)
}

func TestAddRejectsBlankLabel(t *testing.T) {
	s := NewCategoryStore(testStore(t), nil)
	_, err := s.Add("   ", "#FF0000")
	assert.Error(t, err)
}

func TestRemoveOnlyAffectsCustom(t *testing.T) {
	s := NewCategoryStore(testStore(t), nil)

	cat, err := s.Add("Missions", "#FF0000")
	require.NoError(t, err)

	assert.False(t, s.Remove("family"), "defaults cannot be removed")
	assert.True(t, s.Remove(cat.Category_Value))
	assert.Len(t, s.Custom(), 0)
}

func TestLookupFallsBack(t *testing.T) {
	s := NewCategoryStore(testStore(t), nil)

	family := s.Lookup("family")
	assert.Equal(t, "Family", family.Label)

	ghost := s.Lookup("deleted-category")
	assert.Equal(t, "deleted-category", ghost.Label)
	assert.Equal(t, "#9333EA", ghost.Color)
}
