// internal/services/comment_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/juntai-br/juntai-backend/internal/models"
	"github.com/juntai-br/juntai-backend/internal/utils"
)

var (
	ErrCommentNotFound  = errors.New("comment not found")
	ErrNotCommentAuthor = errors.New("unauthorized to modify this comment")
)

type CommentService struct {
	db *gorm.DB
}

type CreateCommentRequest struct {
	ProjectID uuid.UUID `json:"project_id" validate:"required"`
	Content   string    `json:"content" validate:"required,min=1,max=2000"`
}

type UpdateCommentRequest struct {
	Content string `json:"content" validate:"required,min=1,max=2000"`
}

func NewCommentService(db *gorm.DB) *CommentService {
	return &CommentService{db: db}
}

func (s *CommentService) CreateComment(authorID uuid.UUID, req *CreateCommentRequest) (*models.Comment, error) {
	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var project models.Project
	if err := s.db.First(&project, req.ProjectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	comment := &models.Comment{
		AuthorID:  authorID,
		ProjectID: req.ProjectID,
		Content:   req.Content,
	}

	if err := s.db.Create(comment).Error; err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	s.db.Preload("Author").First(comment, comment.ID)

	return comment, nil
}

func (s *CommentService) UpdateComment(id uuid.UUID, authorID uuid.UUID, req *UpdateCommentRequest) (*models.Comment, error) {
	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	comment, err := s.findAuthored(id, authorID)
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(comment).Update("content", req.Content).Error; err != nil {
		return nil, fmt.Errorf("failed to update comment: %w", err)
	}

	s.db.Preload("Author").First(comment, id)

	return comment, nil
}

func (s *CommentService) DeleteComment(id uuid.UUID, authorID uuid.UUID) error {
	comment, err := s.findAuthored(id, authorID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(comment).Error; err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}

	return nil
}

func (s *CommentService) GetProjectComments(projectID uuid.UUID, params utils.PaginationParams) ([]models.Comment, int64, error) {
	query := s.db.Model(&models.Comment{}).
		Where("project_id = ?", projectID).
		Preload("Author")

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count comments: %w", err)
	}

	allowedSortFields := []string{"created_at"}
	query = utils.ApplySort(query, params, allowedSortFields)
	query = utils.ApplyPagination(query, params)

	var comments []models.Comment
	if err := query.Find(&comments).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch comments: %w", err)
	}

	return comments, total, nil
}

func (s *CommentService) findAuthored(id uuid.UUID, authorID uuid.UUID) (*models.Comment, error) {
	var comment models.Comment
	if err := s.db.First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if comment.AuthorID != authorID {
		return nil, ErrNotCommentAuthor
	}

	return &comment, nil
}
