// internal/services/auth_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/juntai-br/juntai-backend/internal/config"
	"github.com/juntai-br/juntai-backend/internal/models"
	"github.com/juntai-br/juntai-backend/internal/utils"
)

var (
	ErrEmailTaken         = errors.New("user with this email already exists")
	ErrCPFTaken           = errors.New("user with this CPF already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

type AuthService struct {
	db  *gorm.DB
	cfg *config.Config
}

type RegisterRequest struct {
	FirstName string `json:"first_name" validate:"required,min=2,max=100"`
	LastName  string `json:"last_name" validate:"required,min=2,max=100"`
	Email     string `json:"email" validate:"required,email"`
	CPF       string `json:"cpf" validate:"required,cpf"`
	Password  string `json:"password" validate:"required,strong_password"`
	CEP       string `json:"cep,omitempty"`
	City      string `json:"city,omitempty"`
	State     string `json:"state,omitempty" validate:"omitempty,len=2"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	User      *models.User `json:"user"`
	Token     string       `json:"token"`
	TokenType string       `json:"token_type"`
	ExpiresIn int          `json:"expires_in"` // in seconds
}

func NewAuthService(db *gorm.DB, cfg *config.Config) *AuthService {
	return &AuthService{
		db:  db,
		cfg: cfg,
	}
}

func (s *AuthService) Register(req *RegisterRequest) (*AuthResponse, error) {
	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	// CPF is stored digits-only; duplicates are compared after stripping
	// punctuation so "123.456.789-09" and "12345678909" collide.
	cpf := utils.NormalizeCPF(req.CPF)

	var existingUser models.User
	if err := s.db.Where("email = ? OR cpf = ?", req.Email, cpf).First(&existingUser).Error; err == nil {
		if existingUser.Email == req.Email {
			return nil, ErrEmailTaken
		}
		return nil, ErrCPFTaken
	}

	user := &models.User{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		CPF:       cpf,
		CEP:       req.CEP,
		City:      req.City,
		State:     req.State,
	}

	if err := user.SetPassword(req.Password); err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.db.Create(user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return s.buildAuthResponse(user)
}

func (s *AuthService) Login(req *LoginRequest) (*AuthResponse, error) {
	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var user models.User
	if err := s.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if err := user.CheckPassword(req.Password); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.buildAuthResponse(&user)
}

// Refresh re-issues a session token for a still-valid session, sliding the
// 30-day expiry window.
func (s *AuthService) Refresh(userID uuid.UUID) (*AuthResponse, error) {
	user, err := s.GetUserByID(userID)
	if err != nil {
		return nil, err
	}
	return s.buildAuthResponse(user)
}

func (s *AuthService) GetUserByID(userID uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("user not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &user, nil
}

func (s *AuthService) buildAuthResponse(user *models.User) (*AuthResponse, error) {
	token, err := utils.GenerateJWT(
		user.ID,
		user.FirstName,
		user.LastName,
		user.AvatarURL,
		user.IsAdmin,
		s.cfg.JWT.TokenTTL,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &AuthResponse{
		User:      user,
		Token:     token,
		TokenType: "Bearer",
		ExpiresIn: s.cfg.JWT.TokenTTL * int(time.Hour.Seconds()),
	}, nil
}
