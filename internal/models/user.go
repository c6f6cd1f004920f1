// internal/models/user.go
package models

import (
	"golang.org/x/crypto/bcrypt"
)

type User struct {
	BaseModel
	FirstName    string `json:"first_name" gorm:"size:100;not null"`
	LastName     string `json:"last_name" gorm:"size:100;not null"`
	Email        string `json:"email" gorm:"uniqueIndex;size:255;not null"`
	CPF          string `json:"cpf" gorm:"uniqueIndex;size:11;not null"`
	PasswordHash string `json:"-" gorm:"size:255;not null"`
	AvatarURL    string `json:"avatar_url" gorm:"size:512"`
	Bio          string `json:"bio" gorm:"type:text"`
	IsAdmin      bool   `json:"is_admin" gorm:"default:false"`

	// Address
	CEP          string `json:"cep" gorm:"size:8"`
	Street       string `json:"street" gorm:"size:255"`
	Number       string `json:"number" gorm:"size:20"`
	Complement   string `json:"complement" gorm:"size:255"`
	Neighborhood string `json:"neighborhood" gorm:"size:255"`
	City         string `json:"city" gorm:"size:255"`
	State        string `json:"state" gorm:"size:2"`

	// Relationships
	Projects  []Project  `json:"projects,omitempty" gorm:"foreignKey:CreatorID"`
	Donations []Donation `json:"donations,omitempty" gorm:"foreignKey:DonorID"`
	Comments  []Comment  `json:"comments,omitempty" gorm:"foreignKey:AuthorID"`
}

func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hashedPassword)
	return nil
}

func (u *User) CheckPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
}

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
