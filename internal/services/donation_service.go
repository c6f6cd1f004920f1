// internal/services/donation_service.go
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/paymentintent"
	"gorm.io/gorm"

	"github.com/juntai-br/juntai-backend/internal/config"
	"github.com/juntai-br/juntai-backend/internal/models"
	"github.com/juntai-br/juntai-backend/internal/paypal"
	"github.com/juntai-br/juntai-backend/internal/utils"
)

var (
	ErrDonationNotFound = errors.New("donation not found")
	ErrProjectInactive  = errors.New("project is not accepting donations")
)

// CaptureDeclinedError is returned when the provider reports a terminal
// non-completed status for a capture. The donation keeps the provider's status
// and the project balance is left untouched.
type CaptureDeclinedError struct {
	Status string
}

func (e *CaptureDeclinedError) Error() string {
	return fmt.Sprintf("capture was not completed, provider status: %s", e.Status)
}

// IntentPendingError is returned when a Stripe payment intent has not reached
// a terminal state yet. The donation stays CREATED and the confirmation can
// be retried once the intent settles.
type IntentPendingError struct {
	Status string
}

func (e *IntentPendingError) Error() string {
	return fmt.Sprintf("payment intent has not settled, status: %s", e.Status)
}

// OrderProvider is the slice of the PayPal client the donation workflow
// needs. It exists so tests can substitute a fake provider.
type OrderProvider interface {
	CreateOrder(ctx context.Context, amount float64, currency, description string) (*paypal.Order, error)
	CaptureOrder(ctx context.Context, orderID string) (*paypal.CaptureResult, error)
}

type DonationService struct {
	db     *gorm.DB
	cfg    *config.Config
	paypal OrderProvider
}

type CreateDonationRequest struct {
	ProjectID   uuid.UUID `json:"project_id" validate:"required"`
	Amount      float64   `json:"amount" validate:"required,gt=0"`
	Message     string    `json:"message,omitempty" validate:"omitempty,max=500"`
	IsAnonymous bool      `json:"is_anonymous,omitempty"`
}

type CreateDonationResponse struct {
	Donation    *models.Donation `json:"donation"`
	PayPalOrder *paypal.Order    `json:"paypal_order"`
}

type CaptureDonationRequest struct {
	OrderID string `json:"order_id" validate:"required"`
}

type CaptureDonationResponse struct {
	Donation   *models.Donation      `json:"donation"`
	PayPalData *paypal.CaptureResult `json:"paypal_data,omitempty"`
}

type CreateIntentRequest struct {
	ProjectID   uuid.UUID `json:"project_id" validate:"required"`
	Amount      float64   `json:"amount" validate:"required,gt=0"`
	Message     string    `json:"message,omitempty" validate:"omitempty,max=500"`
	IsAnonymous bool      `json:"is_anonymous,omitempty"`
}

type CreateIntentResponse struct {
	Donation     *models.Donation `json:"donation"`
	ClientSecret string           `json:"client_secret"`
}

type ConfirmIntentRequest struct {
	PaymentIntentID string `json:"payment_intent_id" validate:"required"`
}

func NewDonationService(db *gorm.DB, cfg *config.Config, provider OrderProvider) *DonationService {
	// Initialize Stripe for the card-donation path
	stripe.Key = cfg.Stripe.SecretKey

	return &DonationService{
		db:     db,
		cfg:    cfg,
		paypal: provider,
	}
}

// CreateDonation opens the donation lifecycle: a provider order is created
// first, then a pending donation row is inserted with status CREATED. No money
// has moved at this point; the payer still has to approve the order in the
// provider's checkout.
func (s *DonationService) CreateDonation(ctx context.Context, donorID uuid.UUID, req *CreateDonationRequest) (*CreateDonationResponse, error) {
	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	project, err := s.activeProject(req.ProjectID)
	if err != nil {
		return nil, err
	}

	description := fmt.Sprintf("Doação para %s", project.Title)
	order, err := s.paypal.CreateOrder(ctx, req.Amount, s.cfg.PayPal.Currency, description)
	if err != nil {
		return nil, err
	}

	donation := &models.Donation{
		DonorID:         donorID,
		ProjectID:       req.ProjectID,
		Amount:          req.Amount,
		Currency:        s.cfg.PayPal.Currency,
		Message:         req.Message,
		IsAnonymous:     req.IsAnonymous,
		Provider:        models.PaymentProviderPayPal,
		ProviderOrderID: order.ID,
		Status:          models.DonationStatusCreated,
	}

	if err := s.db.Create(donation).Error; err != nil {
		return nil, fmt.Errorf("failed to create donation: %w", err)
	}

	return &CreateDonationResponse{
		Donation:    donation,
		PayPalOrder: order,
	}, nil
}

// CaptureDonation finalizes an approved order. The status update and the
// project balance increment run inside one database transaction, and the
// provider order id acts as an idempotency key: capturing an already-completed
// donation is a no-op and never double-increments the balance.
func (s *DonationService) CaptureDonation(ctx context.Context, req *CaptureDonationRequest) (*CaptureDonationResponse, error) {
	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var donation models.Donation
	if err := s.db.Where("provider_order_id = ?", req.OrderID).First(&donation).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDonationNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if donation.Status == models.DonationStatusCompleted {
		return &CaptureDonationResponse{Donation: &donation}, nil
	}

	result, err := s.paypal.CaptureOrder(ctx, req.OrderID)
	if err != nil {
		return nil, err
	}

	var payload models.JSONB
	if len(result.Raw) > 0 {
		// Best effort, a payload that fails to decode is not worth failing
		// the capture over.
		_ = json.Unmarshal(result.Raw, &payload)
	}

	if err := s.settleCapture(&donation, result.Status, payload); err != nil {
		return &CaptureDonationResponse{Donation: &donation, PayPalData: result}, err
	}

	return &CaptureDonationResponse{Donation: &donation, PayPalData: result}, nil
}

// CreateIntent is the Stripe card-donation counterpart of CreateDonation: a
// PaymentIntent plays the role of the provider order.
func (s *DonationService) CreateIntent(donorID uuid.UUID, req *CreateIntentRequest) (*CreateIntentResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	project, err := s.activeProject(req.ProjectID)
	if err != nil {
		return nil, err
	}

	// Stripe amounts are in centavos. Round instead of truncating so values
	// like 10.29 do not come out a centavo short.
	amountInCents := int64(math.Round(req.Amount * 100))

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amountInCents),
		Currency: stripe.String("brl"),
	}
	params.AddMetadata("project_id", project.ID.String())
	params.AddMetadata("donor_id", donorID.String())

	pi, err := paymentintent.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment intent: %w", err)
	}

	donation := &models.Donation{
		DonorID:         donorID,
		ProjectID:       req.ProjectID,
		Amount:          req.Amount,
		Currency:        "BRL",
		Message:         req.Message,
		IsAnonymous:     req.IsAnonymous,
		Provider:        models.PaymentProviderStripe,
		ProviderOrderID: pi.ID,
		Status:          models.DonationStatusCreated,
	}

	if err := s.db.Create(donation).Error; err != nil {
		return nil, fmt.Errorf("failed to create donation: %w", err)
	}

	return &CreateIntentResponse{
		Donation:     donation,
		ClientSecret: pi.ClientSecret,
	}, nil
}

// ConfirmIntent checks the PaymentIntent status with Stripe and settles the
// donation the same way a PayPal capture does.
func (s *DonationService) ConfirmIntent(req *ConfirmIntentRequest) (*models.Donation, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var donation models.Donation
	if err := s.db.Where("provider_order_id = ?", req.PaymentIntentID).First(&donation).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDonationNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if donation.Status == models.DonationStatusCompleted {
		return &donation, nil
	}

	pi, err := paymentintent.Get(req.PaymentIntentID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get payment intent: %w", err)
	}

	switch pi.Status {
	case stripe.PaymentIntentStatusSucceeded:
		if err := s.settleCapture(&donation, string(models.DonationStatusCompleted), nil); err != nil {
			return &donation, err
		}
		return &donation, nil
	case stripe.PaymentIntentStatusCanceled:
		return &donation, s.settleCapture(&donation, string(pi.Status), nil)
	default:
		// Statuses like processing or requires_action are not terminal. The
		// donation stays CREATED so the client can confirm again later.
		return &donation, &IntentPendingError{Status: string(pi.Status)}
	}
}

func (s *DonationService) GetDonorDonations(donorID uuid.UUID, params utils.PaginationParams) ([]models.Donation, int64, error) {
	query := s.db.Model(&models.Donation{}).
		Where("donor_id = ?", donorID).
		Preload("Project")

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count donations: %w", err)
	}

	allowedSortFields := []string{"created_at", "amount", "status"}
	query = utils.ApplySort(query, params, allowedSortFields)
	query = utils.ApplyPagination(query, params)

	var donations []models.Donation
	if err := query.Find(&donations).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch donations: %w", err)
	}

	return donations, total, nil
}

// settleCapture applies a provider capture status to a donation. On COMPLETED
// the donation status and the project's running total are written in one
// transaction; an atomic field-level increment keeps concurrent donations to
// the same project from losing updates. Any other status is stored verbatim
// as a terminal failure and the balance is untouched.
func (s *DonationService) settleCapture(donation *models.Donation, providerStatus string, payload models.JSONB) error {
	if providerStatus != string(models.DonationStatusCompleted) {
		if err := s.db.Model(donation).Update("status", providerStatus).Error; err != nil {
			return fmt.Errorf("failed to record capture status: %w", err)
		}
		donation.Status = models.DonationStatus(providerStatus)
		return &CaptureDeclinedError{Status: providerStatus}
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		// Re-read inside the transaction so a concurrent retry that already
		// completed this donation is observed.
		var current models.Donation
		if err := tx.Where("provider_order_id = ?", donation.ProviderOrderID).First(&current).Error; err != nil {
			return fmt.Errorf("database error: %w", err)
		}

		if current.Status == models.DonationStatusCompleted {
			return nil
		}

		now := time.Now()
		updates := map[string]interface{}{
			"status":      models.DonationStatusCompleted,
			"captured_at": &now,
		}
		if payload != nil {
			updates["provider_payload"] = payload
		}
		// The status predicate guards against a concurrent capture that
		// committed between our read and this update. Under READ COMMITTED
		// both transactions can read CREATED; only the one whose update
		// still matches may increment the balance.
		res := tx.Model(&models.Donation{}).
			Where("id = ? AND status <> ?", current.ID, models.DonationStatusCompleted).
			Updates(updates)
		if res.Error != nil {
			return fmt.Errorf("failed to complete donation: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return nil
		}

		if err := tx.Model(&models.Project{}).Where("id = ?", current.ProjectID).
			UpdateColumn("current_amount", gorm.Expr("current_amount + ?", current.Amount)).Error; err != nil {
			return fmt.Errorf("failed to update project balance: %w", err)
		}

		return nil
	})

	if err != nil {
		return err
	}

	donation.Status = models.DonationStatusCompleted
	return nil
}

func (s *DonationService) activeProject(projectID uuid.UUID) (*models.Project, error) {
	var project models.Project
	if err := s.db.First(&project, projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if !project.IsActive {
		return nil, ErrProjectInactive
	}

	return &project, nil
}
