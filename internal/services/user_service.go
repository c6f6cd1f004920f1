// internal/services/user_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/juntai-br/juntai-backend/internal/models"
	"github.com/juntai-br/juntai-backend/internal/utils"
)

var ErrUserNotFound = errors.New("user not found")

type UserService struct {
	db *gorm.DB
}

type UpdateProfileRequest struct {
	FirstName    string `json:"first_name,omitempty" validate:"omitempty,min=2,max=100"`
	LastName     string `json:"last_name,omitempty" validate:"omitempty,min=2,max=100"`
	Bio          string `json:"bio,omitempty" validate:"omitempty,max=1000"`
	AvatarURL    string `json:"avatar_url,omitempty" validate:"omitempty,url"`
	CEP          string `json:"cep,omitempty" validate:"omitempty,len=8"`
	Street       string `json:"street,omitempty"`
	Number       string `json:"number,omitempty"`
	Complement   string `json:"complement,omitempty"`
	Neighborhood string `json:"neighborhood,omitempty"`
	City         string `json:"city,omitempty"`
	State        string `json:"state,omitempty" validate:"omitempty,len=2"`
}

// PublicProfile is the subset of a user safe to show to anyone.
type PublicProfile struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	AvatarURL string    `json:"avatar_url"`
	Bio       string    `json:"bio"`
	City      string    `json:"city"`
	State     string    `json:"state"`
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

func (s *UserService) GetPublicProfile(id uuid.UUID) (*PublicProfile, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	return &PublicProfile{
		ID:        user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		AvatarURL: user.AvatarURL,
		Bio:       user.Bio,
		City:      user.City,
		State:     user.State,
	}, nil
}

func (s *UserService) UpdateProfile(id uuid.UUID, req *UpdateProfileRequest) (*models.User, error) {
	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	updates := make(map[string]interface{})
	if req.FirstName != "" {
		updates["first_name"] = req.FirstName
	}
	if req.LastName != "" {
		updates["last_name"] = req.LastName
	}
	if req.Bio != "" {
		updates["bio"] = req.Bio
	}
	if req.AvatarURL != "" {
		updates["avatar_url"] = req.AvatarURL
	}
	if req.CEP != "" {
		updates["cep"] = req.CEP
	}
	if req.Street != "" {
		updates["street"] = req.Street
	}
	if req.Number != "" {
		updates["number"] = req.Number
	}
	if req.Complement != "" {
		updates["complement"] = req.Complement
	}
	if req.Neighborhood != "" {
		updates["neighborhood"] = req.Neighborhood
	}
	if req.City != "" {
		updates["city"] = req.City
	}
	if req.State != "" {
		updates["state"] = req.State
	}

	if err := s.db.Model(&user).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	return &user, nil
}
