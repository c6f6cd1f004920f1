// internal/models/category.go
package models

type Category struct {
	BaseModel
	Name        string `json:"name" gorm:"uniqueIndex;size:100;not null"`
	Slug        string `json:"slug" gorm:"uniqueIndex;size:100;not null"`
	Description string `json:"description" gorm:"type:text"`
	Icon        string `json:"icon" gorm:"size:100"`

	// Relationships
	Projects []Project `json:"projects,omitempty" gorm:"foreignKey:CategoryID"`
}
