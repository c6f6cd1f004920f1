// internal/models/project.go
package models

import (
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type Project struct {
	BaseModel
	CreatorID        uuid.UUID      `json:"creator_id" gorm:"type:uuid;not null;index"`
	CategoryID       uuid.UUID      `json:"category_id" gorm:"type:uuid;not null;index"`
	Title            string         `json:"title" gorm:"size:255;not null"`
	ShortDescription string         `json:"short_description" gorm:"size:500"`
	Description      string         `json:"description" gorm:"type:text"`
	GoalAmount       float64        `json:"goal_amount" gorm:"type:decimal(12,2);not null"`
	CurrentAmount    float64        `json:"current_amount" gorm:"type:decimal(12,2);default:0"`
	EndDate          time.Time      `json:"end_date" gorm:"not null"`
	IsActive         bool           `json:"is_active" gorm:"default:true;index"`
	IsFeatured       bool           `json:"is_featured" gorm:"default:false;index"`
	DeactivatedAt    *time.Time     `json:"deactivated_at"`
	Tags             pq.StringArray `json:"tags" gorm:"type:text[]"`

	// Relationships
	Creator   User           `json:"creator,omitempty" gorm:"foreignKey:CreatorID"`
	Category  Category       `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	Media     []ProjectMedia `json:"media,omitempty" gorm:"foreignKey:ProjectID"`
	Donations []Donation     `json:"donations,omitempty" gorm:"foreignKey:ProjectID"`
	Comments  []Comment      `json:"comments,omitempty" gorm:"foreignKey:ProjectID"`
}

// ProgressPercentage is clamped to [0, 100] even when the raised amount
// overshoots the goal.
func (p *Project) ProgressPercentage() float64 {
	if p.GoalAmount <= 0 {
		return 0
	}
	pct := p.CurrentAmount / p.GoalAmount * 100
	if pct > 100 {
		return 100
	}
	if pct < 0 {
		return 0
	}
	return pct
}

// DaysRemaining is never negative; it is 0 exactly when the end date has passed.
func (p *Project) DaysRemaining(now time.Time) int {
	if !p.EndDate.After(now) {
		return 0
	}
	return int(math.Ceil(p.EndDate.Sub(now).Hours() / 24))
}

// CoverImageURL returns the first image attached to the project, if any.
func (p *Project) CoverImageURL() string {
	for _, m := range p.Media {
		if m.MediaType == MediaTypeImage {
			return m.URL
		}
	}
	return ""
}

type ProjectMedia struct {
	BaseModel
	ProjectID uuid.UUID `json:"project_id" gorm:"type:uuid;not null;index"`
	URL       string    `json:"url" gorm:"size:512;not null"`
	MediaType MediaType `json:"media_type" gorm:"type:varchar(10);default:'image'"`
	Position  int       `json:"position" gorm:"default:0"`
}
