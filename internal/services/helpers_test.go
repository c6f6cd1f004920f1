// internal/services/helpers_test.go
package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/juntai-br/juntai-backend/internal/config"
	"github.com/juntai-br/juntai-backend/internal/models"
	"github.com/juntai-br/juntai-backend/internal/utils"
)

func init() {
	utils.SetJWTSecret("test-secret")
}

// setupTestDB opens a uniquely named in-memory database so tests do not see
// each other's data. cache=shared keeps the pooled connections on the same
// database.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Project{},
		&models.ProjectMedia{},
		&models.Donation{},
		&models.Comment{},
	)
	require.NoError(t, err)

	return db
}

func paginationDefaults() utils.PaginationParams {
	return utils.PaginationParams{Page: 1, Limit: 20, Sort: "created_at", Order: "desc"}
}

func testConfig() *config.Config {
	return &config.Config{
		Environment: "test",
		JWT: config.JWTConfig{
			SecretKey: "test-secret",
			TokenTTL:  720,
		},
		PayPal: config.PayPalConfig{
			Currency: "BRL",
		},
		Stripe: config.StripeConfig{
			SecretKey: "sk_test_juntai",
		},
	}
}

func createTestUser(t *testing.T, db *gorm.DB, email, cpf, password string) *models.User {
	t.Helper()

	user := &models.User{
		FirstName: "Maria",
		LastName:  "Silva",
		Email:     email,
		CPF:       cpf,
	}
	require.NoError(t, user.SetPassword(password))
	require.NoError(t, db.Create(user).Error)

	return user
}

func createTestCategory(t *testing.T, db *gorm.DB, name, slug string) *models.Category {
	t.Helper()

	category := &models.Category{Name: name, Slug: slug}
	require.NoError(t, db.Create(category).Error)

	return category
}

func createTestProject(t *testing.T, db *gorm.DB, creatorID, categoryID uuid.UUID, goal float64) *models.Project {
	t.Helper()

	project := &models.Project{
		CreatorID:        creatorID,
		CategoryID:       categoryID,
		Title:            "Reforma da escola municipal",
		ShortDescription: "Reforma do telhado e das salas de aula",
		Description:      "Campanha para reformar a escola do bairro antes do período de chuvas.",
		GoalAmount:       goal,
		EndDate:          time.Now().Add(30 * 24 * time.Hour),
		IsActive:         true,
	}
	require.NoError(t, db.Create(project).Error)

	return project
}
