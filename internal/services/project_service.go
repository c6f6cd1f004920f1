// internal/services/project_service.go
package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/juntai-br/juntai-backend/internal/database"
	"github.com/juntai-br/juntai-backend/internal/models"
	"github.com/juntai-br/juntai-backend/internal/utils"
)

// DeletionCoolOff is the mandatory wait between deactivating a project and
// being allowed to delete it permanently.
const DeletionCoolOff = 48 * time.Hour

var (
	ErrProjectNotFound   = errors.New("project not found")
	ErrNotProjectOwner   = errors.New("unauthorized to modify this project")
	ErrProjectStillLive  = errors.New("project must be deactivated before deletion")
	ErrCoolOffNotElapsed = errors.New("project must stay deactivated for 48 hours before deletion")
	ErrWrongPassword     = errors.New("password does not match")
)

type ProjectService struct {
	db *gorm.DB
}

type CreateProjectRequest struct {
	Title            string    `json:"title" validate:"required,min=3,max=255"`
	ShortDescription string    `json:"short_description" validate:"required,max=500"`
	Description      string    `json:"description" validate:"required,min=10"`
	GoalAmount       float64   `json:"goal_amount" validate:"required,gt=0"`
	EndDate          time.Time `json:"end_date" validate:"required"`
	CategoryID       uuid.UUID `json:"category_id" validate:"required"`
	Tags             []string  `json:"tags,omitempty"`
}

type UpdateProjectRequest struct {
	Title            string     `json:"title,omitempty" validate:"omitempty,min=3,max=255"`
	ShortDescription string     `json:"short_description,omitempty" validate:"omitempty,max=500"`
	Description      string     `json:"description,omitempty" validate:"omitempty,min=10"`
	GoalAmount       float64    `json:"goal_amount,omitempty" validate:"omitempty,gt=0"`
	EndDate          *time.Time `json:"end_date,omitempty"`
	CategoryID       *uuid.UUID `json:"category_id,omitempty"`
	IsFeatured       *bool      `json:"is_featured,omitempty"`
	Tags             []string   `json:"tags,omitempty"`
}

type DeleteProjectRequest struct {
	Password string `json:"password" validate:"required"`
}

type AddMediaRequest struct {
	URL       string           `json:"url" validate:"required,url"`
	MediaType models.MediaType `json:"media_type" validate:"required,oneof=image video"`
	Position  int              `json:"position" validate:"min=0"`
}

// ProjectView decorates a project with the computed fields the detail page
// renders.
type ProjectView struct {
	models.Project
	ProgressPercentage float64 `json:"progress_percentage"`
	DaysRemaining      int     `json:"days_remaining"`
	DonationCount      int64   `json:"donation_count"`
	CoverImageURL      string  `json:"cover_image_url"`
}

func NewProjectService(db *gorm.DB) *ProjectService {
	return &ProjectService{db: db}
}

func (s *ProjectService) CreateProject(creatorID uuid.UUID, req *CreateProjectRequest) (*models.Project, error) {
	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var category models.Category
	if err := s.db.First(&category, req.CategoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	project := &models.Project{
		CreatorID:        creatorID,
		CategoryID:       req.CategoryID,
		Title:            req.Title,
		ShortDescription: req.ShortDescription,
		Description:      req.Description,
		GoalAmount:       req.GoalAmount,
		CurrentAmount:    0,
		EndDate:          req.EndDate,
		IsActive:         true,
		Tags:             req.Tags,
	}

	if err := s.db.Create(project).Error; err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	s.db.Preload("Creator").Preload("Category").First(project, project.ID)

	return project, nil
}

func (s *ProjectService) GetProject(id uuid.UUID) (*ProjectView, error) {
	var project models.Project
	query := s.db.Preload("Creator").Preload("Category").
		Preload("Media", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Preload("Donations", func(db *gorm.DB) *gorm.DB {
			return db.Where("status = ?", models.DonationStatusCompleted).Order("created_at DESC")
		}).
		Preload("Donations.Donor").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		Preload("Comments.Author")

	if err := query.First(&project, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	return s.buildView(&project), nil
}

func (s *ProjectService) UpdateProject(id uuid.UUID, ownerID uuid.UUID, req *UpdateProjectRequest) (*models.Project, error) {
	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	project, err := s.findOwned(id, ownerID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.Title != "" {
		updates["title"] = req.Title
	}
	if req.ShortDescription != "" {
		updates["short_description"] = req.ShortDescription
	}
	if req.Description != "" {
		updates["description"] = req.Description
	}
	if req.GoalAmount > 0 {
		updates["goal_amount"] = req.GoalAmount
	}
	if req.EndDate != nil {
		updates["end_date"] = *req.EndDate
	}
	if req.CategoryID != nil {
		updates["category_id"] = *req.CategoryID
	}
	if req.IsFeatured != nil {
		updates["is_featured"] = *req.IsFeatured
	}
	if req.Tags != nil {
		updates["tags"] = req.Tags
	}

	if err := s.db.Model(project).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	s.db.Preload("Creator").Preload("Category").First(project, id)

	return project, nil
}

// DeactivateProject unpublishes the project and stamps DeactivatedAt, which
// starts the deletion cool-off clock.
func (s *ProjectService) DeactivateProject(id uuid.UUID, ownerID uuid.UUID) (*models.Project, error) {
	project, err := s.findOwned(id, ownerID)
	if err != nil {
		return nil, err
	}

	if !project.IsActive {
		return project, nil
	}

	now := time.Now()
	updates := map[string]interface{}{
		"is_active":      false,
		"deactivated_at": &now,
	}

	if err := s.db.Model(project).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to deactivate project: %w", err)
	}

	return project, nil
}

// ActivateProject resumes a previously unpublished project and clears the
// cool-off clock.
func (s *ProjectService) ActivateProject(id uuid.UUID, ownerID uuid.UUID) (*models.Project, error) {
	project, err := s.findOwned(id, ownerID)
	if err != nil {
		return nil, err
	}

	if project.IsActive {
		return project, nil
	}

	updates := map[string]interface{}{
		"is_active":      true,
		"deactivated_at": nil,
	}

	if err := s.db.Model(project).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to activate project: %w", err)
	}

	return project, nil
}

// DeleteProject hard-removes a project. Three independent guards must all
// pass: the project is inactive, it has been inactive for at least 48 hours,
// and the supplied account password matches the owner's hash. The cool-off is
// measured from DeactivatedAt, not CreatedAt.
func (s *ProjectService) DeleteProject(id uuid.UUID, ownerID uuid.UUID, req *DeleteProjectRequest) error {
	if err := utils.ValidateStruct(req); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	project, err := s.findOwned(id, ownerID)
	if err != nil {
		return err
	}

	if project.IsActive {
		return ErrProjectStillLive
	}

	if project.DeactivatedAt == nil || time.Since(*project.DeactivatedAt) < DeletionCoolOff {
		return ErrCoolOffNotElapsed
	}

	var owner models.User
	if err := s.db.First(&owner, ownerID).Error; err != nil {
		return fmt.Errorf("owner not found: %w", err)
	}

	if err := owner.CheckPassword(req.Password); err != nil {
		return ErrWrongPassword
	}

	return database.WithTransaction(s.db, func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("project_id = ?", id).Delete(&models.ProjectMedia{}).Error; err != nil {
			return fmt.Errorf("failed to delete project media: %w", err)
		}
		if err := tx.Unscoped().Where("project_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return fmt.Errorf("failed to delete project comments: %w", err)
		}
		if err := tx.Unscoped().Where("project_id = ?", id).Delete(&models.Donation{}).Error; err != nil {
			return fmt.Errorf("failed to delete project donations: %w", err)
		}
		if err := tx.Unscoped().Delete(&models.Project{}, id).Error; err != nil {
			return fmt.Errorf("failed to delete project: %w", err)
		}
		return nil
	})
}

func (s *ProjectService) SearchProjects(params utils.PaginationParams) ([]ProjectView, int64, error) {
	query := s.db.Model(&models.Project{}).
		Preload("Creator").Preload("Category").Preload("Media").
		Where("is_active = ?", true)

	if params.Category != "" {
		query = query.Joins("JOIN categories ON categories.id = projects.category_id").
			Where("categories.slug = ?", params.Category)
	}

	if params.Featured {
		query = query.Where("is_featured = ?", true)
	}

	if params.Search != "" {
		searchTerm := "%" + strings.ToLower(params.Search) + "%"
		query = query.Where(
			"LOWER(projects.title) LIKE ? OR LOWER(projects.short_description) LIKE ? OR LOWER(projects.description) LIKE ?",
			searchTerm, searchTerm, searchTerm,
		)
	}

	// Get total count
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count projects: %w", err)
	}

	// Apply sorting and pagination. The sort column is qualified because the
	// category filter joins a table that shares column names with projects.
	allowedSortFields := []string{"created_at", "end_date", "goal_amount", "current_amount", "title"}
	query = utils.ApplyQualifiedSort(query, params, allowedSortFields, "projects")
	query = utils.ApplyPagination(query, params)

	var projects []models.Project
	if err := query.Find(&projects).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch projects: %w", err)
	}

	views := make([]ProjectView, 0, len(projects))
	for i := range projects {
		views = append(views, *s.buildView(&projects[i]))
	}

	return views, total, nil
}

func (s *ProjectService) GetCreatorProjects(creatorID uuid.UUID, params utils.PaginationParams) ([]models.Project, int64, error) {
	query := s.db.Model(&models.Project{}).Where("creator_id = ?", creatorID).
		Preload("Category").Preload("Media")

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count creator projects: %w", err)
	}

	allowedSortFields := []string{"created_at", "end_date", "current_amount", "title"}
	query = utils.ApplySort(query, params, allowedSortFields)
	query = utils.ApplyPagination(query, params)

	var projects []models.Project
	if err := query.Find(&projects).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch creator projects: %w", err)
	}

	return projects, total, nil
}

func (s *ProjectService) AddMedia(projectID uuid.UUID, ownerID uuid.UUID, req *AddMediaRequest) (*models.ProjectMedia, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if _, err := s.findOwned(projectID, ownerID); err != nil {
		return nil, err
	}

	media := &models.ProjectMedia{
		ProjectID: projectID,
		URL:       req.URL,
		MediaType: req.MediaType,
		Position:  req.Position,
	}

	if err := s.db.Create(media).Error; err != nil {
		return nil, fmt.Errorf("failed to add project media: %w", err)
	}

	return media, nil
}

func (s *ProjectService) findOwned(id uuid.UUID, ownerID uuid.UUID) (*models.Project, error) {
	var project models.Project
	if err := s.db.First(&project, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if project.CreatorID != ownerID {
		return nil, ErrNotProjectOwner
	}

	return &project, nil
}

func (s *ProjectService) buildView(project *models.Project) *ProjectView {
	var donationCount int64
	s.db.Model(&models.Donation{}).
		Where("project_id = ? AND status = ?", project.ID, models.DonationStatusCompleted).
		Count(&donationCount)

	return &ProjectView{
		Project:            *project,
		ProgressPercentage: project.ProgressPercentage(),
		DaysRemaining:      project.DaysRemaining(time.Now()),
		DonationCount:      donationCount,
		CoverImageURL:      project.CoverImageURL(),
	}
}
