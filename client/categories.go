package client

import (
	"errors"
	"regexp"
	"strings"

	"github.com/PrayerJournal/localstore"
	"github.com/PrayerJournal/models"
)

var ErrDuplicateCategory = errors.New("a category with that name already exists")

var categorySlugStrip = regexp.MustCompile(`[^a-z0-9-]`)

// CategoryStore manages the user's custom categories; the built-in
// defaults are merged in on read and never persisted.
type CategoryStore struct {
	col *Collection[models.Category]
}

func NewCategoryStore(store *localstore.Store, table Table[models.Category]) *CategoryStore {
	return &CategoryStore{
		col: NewCollection("prayer-journal-custom-categories", store, table, func(c models.Category) string {
			return c.Category_Value
		}),
	}
}

// All returns default categories followed by custom ones.
func (s *CategoryStore) All() []models.Category {
	return append(append([]models.Category(nil), models.DefaultCategories...), s.col.Items()...)
}

func (s *CategoryStore) Custom() []models.Category {
	return s.col.Items()
}

// Add creates a custom category. The value is the slugged label; a value
// colliding with a default or existing custom category is rejected before
// any state changes.
func (s *CategoryStore) Add(label, color string) (models.Category, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return models.Category{}, errors.New("category name is required")
	}

	value := slugCategory(label)
	for _, c := range s.All() {
		if c.Category_Value == value {
			return models.Category{}, ErrDuplicateCategory
		}
	}

	cat := models.Category{
		Category_Value: value,
		Label:          label,
		Color:          color,
	}
	s.col.Append(cat)
	return cat, nil
}

// Remove deletes a custom category. Defaults cannot be removed.
func (s *CategoryStore) Remove(value string) bool {
	return s.col.Remove(value)
}

// Lookup resolves a category value, falling back to a synthetic category
// so a prayer whose category was deleted still renders.
func (s *CategoryStore) Lookup(value string) models.Category {
	for _, c := range s.All() {
		if c.Category_Value == value {
			return c
		}
	}
	return models.Category{Category_Value: value, Label: value, Color: "#9333EA"}
}

func slugCategory(label string) string {
	value := strings.ToLower(strings.TrimSpace(label))
	value = strings.Join(strings.Fields(value), "-")
	return categorySlugStrip.ReplaceAllString(value, "")
}
