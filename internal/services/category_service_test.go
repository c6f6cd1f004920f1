// internal/services/category_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Educação":       "educacao",
		"Saúde":          "saude",
		"Meio Ambiente":  "meio-ambiente",
		"Esporte":        "esporte",
		"Emergências":    "emergencias",
		"Ação & Cultura": "acao-cultura",
	}

	for name, want := range cases {
		assert.Equal(t, want, slugify(name), "slug of %q", name)
	}
}

func TestCreateCategory(t *testing.T) {
	service := NewCategoryService(setupTestDB(t))

	category, err := service.CreateCategory(&CreateCategoryRequest{
		Name:        "Meio Ambiente",
		Description: "Projetos de preservação",
	})
	require.NoError(t, err)
	assert.Equal(t, "meio-ambiente", category.Slug)
}

func TestDeleteCategoryInUse(t *testing.T) {
	db := setupTestDB(t)
	service := NewCategoryService(db)

	creator := createTestUser(t, db, "criadora@example.com", "52998224725", "SenhaForte123")
	category := createTestCategory(t, db, "Animais", "animais")
	createTestProject(t, db, creator.ID, category.ID, 1000)

	assert.ErrorIs(t, service.DeleteCategory(category.ID), ErrCategoryInUse)

	empty := createTestCategory(t, db, "Cultura", "cultura")
	require.NoError(t, service.DeleteCategory(empty.ID))
	assert.ErrorIs(t, service.DeleteCategory(empty.ID), ErrCategoryNotFound)
}

func TestListCategories(t *testing.T) {
	db := setupTestDB(t)
	service := NewCategoryService(db)

	createTestCategory(t, db, "Saúde", "saude")
	createTestCategory(t, db, "Animais", "animais")

	categories, err := service.ListCategories()
	require.NoError(t, err)
	require.Len(t, categories, 2)

	// Alphabetical by name
	assert.Equal(t, "Animais", categories[0].Name)
}
