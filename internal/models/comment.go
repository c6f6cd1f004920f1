// internal/models/comment.go
package models

import (
	"github.com/google/uuid"
)

type Comment struct {
	BaseModel
	AuthorID  uuid.UUID `json:"author_id" gorm:"type:uuid;not null;index"`
	ProjectID uuid.UUID `json:"project_id" gorm:"type:uuid;not null;index"`
	Content   string    `json:"content" gorm:"type:text;not null"`

	// Relationships
	Author  User    `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
	Project Project `json:"project,omitempty" gorm:"foreignKey:ProjectID"`
}
