// internal/handlers/address.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/juntai-br/juntai-backend/internal/services"
	"github.com/juntai-br/juntai-backend/internal/utils"
)

type AddressHandler struct {
	addressService *services.AddressService
}

func NewAddressHandler(addressService *services.AddressService) *AddressHandler {
	return &AddressHandler{addressService: addressService}
}

// LookupCEP resolves a Brazilian postal code into a normalized address.
func (h *AddressHandler) LookupCEP(c *gin.Context) {
	address, err := h.addressService.LookupCEP(c.Request.Context(), c.Param("cep"))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidCEP):
			utils.BadRequestResponse(c, err.Error(), nil)
		case errors.Is(err, services.ErrCEPNotFound):
			utils.NotFoundResponse(c, "CEP")
		default:
			utils.UpstreamErrorResponse(c, "CEP lookup failed", nil)
		}
		return
	}

	utils.SuccessResponse(c, address)
}
