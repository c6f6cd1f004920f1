// internal/models/donation.go
package models

import (
	"time"

	"github.com/google/uuid"
)

type Donation struct {
	BaseModel
	DonorID     uuid.UUID       `json:"donor_id" gorm:"type:uuid;not null;index"`
	ProjectID   uuid.UUID       `json:"project_id" gorm:"type:uuid;not null;index"`
	Amount      float64         `json:"amount" gorm:"type:decimal(12,2);not null"`
	Currency    string          `json:"currency" gorm:"size:3;default:'BRL'"`
	Message     string          `json:"message" gorm:"type:text"`
	IsAnonymous bool            `json:"is_anonymous" gorm:"default:false"`
	Provider    PaymentProvider `json:"provider" gorm:"type:varchar(10);not null;index"`

	// ProviderOrderID is the provider-side order (PayPal) or intent (Stripe)
	// identifier. The unique index doubles as the idempotency key for capture.
	ProviderOrderID string         `json:"provider_order_id" gorm:"size:255;uniqueIndex;not null"`
	Status          DonationStatus `json:"status" gorm:"type:varchar(30);default:'CREATED';index"`
	CapturedAt      *time.Time     `json:"captured_at"`

	// ProviderPayload keeps the provider's raw capture response for support
	// and reconciliation.
	ProviderPayload JSONB `json:"provider_payload,omitempty" gorm:"type:jsonb"`

	// Relationships
	Donor   User    `json:"donor,omitempty" gorm:"foreignKey:DonorID"`
	Project Project `json:"project,omitempty" gorm:"foreignKey:ProjectID"`
}
