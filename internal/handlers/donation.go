// internal/handlers/donation.go
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/juntai-br/juntai-backend/internal/paypal"
	"github.com/juntai-br/juntai-backend/internal/services"
	"github.com/juntai-br/juntai-backend/internal/utils"
)

type DonationHandler struct {
	donationService *services.DonationService
}

func NewDonationHandler(donationService *services.DonationService) *DonationHandler {
	return &DonationHandler{donationService: donationService}
}

// CreateOrder starts a PayPal donation. The response carries both the pending
// donation and the provider order so the frontend can redirect the payer to
// the approval link.
func (h *DonationHandler) CreateOrder(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "Authentication required")
		return
	}

	var req services.CreateDonationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request format", err.Error())
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		utils.ValidationErrorResponse(c, utils.GetValidationErrors(err))
		return
	}

	resp, err := h.donationService.CreateDonation(c.Request.Context(), userID, &req)
	if err != nil {
		respondDonationError(c, err)
		return
	}

	utils.CreatedResponse(c, resp)
}

// CaptureOrder finalizes an approved PayPal order. Retrying a capture for an
// already-completed donation returns the same donation unchanged.
func (h *DonationHandler) CaptureOrder(c *gin.Context) {
	var req services.CaptureDonationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request format", err.Error())
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		utils.ValidationErrorResponse(c, utils.GetValidationErrors(err))
		return
	}

	resp, err := h.donationService.CaptureDonation(c.Request.Context(), &req)
	if err != nil {
		var declined *services.CaptureDeclinedError
		if errors.As(err, &declined) {
			utils.ErrorResponse(c, http.StatusPaymentRequired, "CAPTURE_DECLINED", declined.Error(), resp)
			return
		}
		respondDonationError(c, err)
		return
	}

	utils.SuccessResponse(c, resp)
}

// CreateIntent starts a Stripe card donation and hands the client secret back
// to the frontend.
func (h *DonationHandler) CreateIntent(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "Authentication required")
		return
	}

	var req services.CreateIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request format", err.Error())
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		utils.ValidationErrorResponse(c, utils.GetValidationErrors(err))
		return
	}

	resp, err := h.donationService.CreateIntent(userID, &req)
	if err != nil {
		respondDonationError(c, err)
		return
	}

	utils.CreatedResponse(c, resp)
}

// ConfirmIntent settles a Stripe donation after the frontend confirms the
// payment.
func (h *DonationHandler) ConfirmIntent(c *gin.Context) {
	var req services.ConfirmIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request format", err.Error())
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		utils.ValidationErrorResponse(c, utils.GetValidationErrors(err))
		return
	}

	donation, err := h.donationService.ConfirmIntent(&req)
	if err != nil {
		var declined *services.CaptureDeclinedError
		if errors.As(err, &declined) {
			utils.ErrorResponse(c, http.StatusPaymentRequired, "CAPTURE_DECLINED", declined.Error(), donation)
			return
		}
		var pending *services.IntentPendingError
		if errors.As(err, &pending) {
			utils.ErrorResponse(c, http.StatusConflict, "INTENT_PENDING", pending.Error(), donation)
			return
		}
		respondDonationError(c, err)
		return
	}

	utils.SuccessResponse(c, donation)
}

// GetMyDonations lists the authenticated user's donations, newest first.
func (h *DonationHandler) GetMyDonations(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "Authentication required")
		return
	}

	params := utils.GetPaginationParams(c)
	donations, total, err := h.donationService.GetDonorDonations(userID, params)
	if err != nil {
		utils.InternalErrorResponse(c, "Failed to fetch donations")
		return
	}

	result := utils.CreatePaginationResult(donations, total, params)
	utils.PaginatedResponse(c, result)
}

// respondDonationError maps donation errors onto the API error envelope. A
// provider failure forwards the raw provider response body so the frontend
// can show PayPal's own error details.
func respondDonationError(c *gin.Context, err error) {
	var apiErr *paypal.APIError
	switch {
	case errors.Is(err, services.ErrProjectNotFound):
		utils.NotFoundResponse(c, "Project")
	case errors.Is(err, services.ErrDonationNotFound):
		utils.NotFoundResponse(c, "Donation")
	case errors.Is(err, services.ErrProjectInactive):
		utils.BadRequestResponse(c, "Project is not accepting donations", nil)
	case errors.As(err, &apiErr):
		details := interface{}(apiErr.Body)
		if json.Valid([]byte(apiErr.Body)) {
			details = json.RawMessage(apiErr.Body)
		}
		utils.UpstreamErrorResponse(c, "Payment provider error", details)
	default:
		utils.InternalErrorResponse(c, "Failed to process donation")
	}
}
