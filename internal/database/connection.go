// internal/database/connection.go
package database

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/juntai-br/juntai-backend/internal/config"
	"github.com/juntai-br/juntai-backend/internal/models"
)

func Initialize(cfg config.DatabaseConfig) (*gorm.DB, error) {
	var gormConfig *gorm.Config

	// Configure GORM logger
	if cfg.LogLevel == "silent" {
		gormConfig = &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		}
	} else {
		gormConfig = &gorm.Config{
			Logger: logger.Default.LogMode(logger.Info),
		}
	}

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.DSN()), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying sql.DB
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Configure connection pool
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.MaxLifetime) * time.Second)

	// Test connection
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Println("Database connection established successfully")
	return db, nil
}

func Close(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("Error getting underlying sql.DB: %v", err)
		return
	}

	if err := sqlDB.Close(); err != nil {
		log.Printf("Error closing database connection: %v", err)
	} else {
		log.Println("Database connection closed successfully")
	}
}

func RunMigrations(db *gorm.DB) error {
	log.Println("Running database migrations...")

	// Run auto-migrations
	err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Project{},
		&models.ProjectMedia{},
		&models.Donation{},
		&models.Comment{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	// Create indexes
	if err := createIndexes(db); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

func createIndexes(db *gorm.DB) error {
	indexes := []string{
		// User indexes
		"CREATE INDEX IF NOT EXISTS idx_users_email ON users(email)",
		"CREATE INDEX IF NOT EXISTS idx_users_cpf ON users(cpf)",

		// Project indexes
		"CREATE INDEX IF NOT EXISTS idx_projects_creator ON projects(creator_id)",
		"CREATE INDEX IF NOT EXISTS idx_projects_category ON projects(category_id)",
		"CREATE INDEX IF NOT EXISTS idx_projects_active_featured ON projects(is_active, is_featured)",
		"CREATE INDEX IF NOT EXISTS idx_projects_end_date ON projects(end_date)",
		"CREATE INDEX IF NOT EXISTS idx_projects_created_at ON projects(created_at DESC)",

		// Donation indexes
		"CREATE INDEX IF NOT EXISTS idx_donations_donor ON donations(donor_id)",
		"CREATE INDEX IF NOT EXISTS idx_donations_project_status ON donations(project_id, status)",
		"CREATE INDEX IF NOT EXISTS idx_donations_created_at ON donations(created_at DESC)",

		// Comment indexes
		"CREATE INDEX IF NOT EXISTS idx_comments_project ON comments(project_id, created_at DESC)",

		// Media indexes
		"CREATE INDEX IF NOT EXISTS idx_project_media_project ON project_media(project_id, position)",

		// Full-text search index over project copy
		"CREATE INDEX IF NOT EXISTS idx_projects_search ON projects USING GIN(to_tsvector('portuguese', title || ' ' || short_description || ' ' || description))",
	}

	for _, index := range indexes {
		if err := db.Exec(index).Error; err != nil {
			log.Printf("Warning: Failed to create index: %s, Error: %v", index, err)
			// Continue with other indexes instead of failing completely
		}
	}

	return nil
}

// Seed initial data
func SeedInitialData(db *gorm.DB) error {
	log.Println("Seeding initial data...")

	defaultCategories := []models.Category{
		{Name: "Educação", Slug: "educacao", Description: "Escolas, bolsas e material escolar", Icon: "book"},
		{Name: "Saúde", Slug: "saude", Description: "Tratamentos, equipamentos e campanhas de saúde", Icon: "heart-pulse"},
		{Name: "Meio Ambiente", Slug: "meio-ambiente", Description: "Reflorestamento, limpeza e conservação", Icon: "leaf"},
		{Name: "Animais", Slug: "animais", Description: "Resgate, abrigo e castração", Icon: "paw"},
		{Name: "Cultura", Slug: "cultura", Description: "Arte, música e projetos culturais", Icon: "palette"},
		{Name: "Esporte", Slug: "esporte", Description: "Projetos esportivos e sociais", Icon: "trophy"},
		{Name: "Comunidade", Slug: "comunidade", Description: "Melhorias de bairro e ações comunitárias", Icon: "users"},
		{Name: "Emergências", Slug: "emergencias", Description: "Desastres e situações de urgência", Icon: "siren"},
	}

	for _, category := range defaultCategories {
		var count int64
		db.Model(&models.Category{}).Where("slug = ?", category.Slug).Count(&count)

		if count == 0 {
			if err := db.Create(&category).Error; err != nil {
				log.Printf("Warning: Failed to create category %s: %v", category.Slug, err)
			}
		}
	}

	log.Println("Initial data seeding completed")
	return nil
}

// Transaction helper
func WithTransaction(db *gorm.DB, fn func(*gorm.DB) error) error {
	tx := db.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}
