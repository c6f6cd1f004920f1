// internal/services/address_service.go
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"
)

var (
	ErrInvalidCEP  = errors.New("CEP must have exactly 8 digits")
	ErrCEPNotFound = errors.New("CEP not found")

	cepDigits = regexp.MustCompile(`\D`)
)

// AddressService proxies the ViaCEP postal-code API, normalizing its
// Portuguese field names into the shape the frontend expects.
type AddressService struct {
	baseURL    string
	httpClient *http.Client
}

// Address is the normalized lookup result.
type Address struct {
	CEP          string `json:"cep"`
	Street       string `json:"street"`
	Complement   string `json:"complement"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
}

type viaCEPResponse struct {
	CEP         string `json:"cep"`
	Logradouro  string `json:"logradouro"`
	Complemento string `json:"complemento"`
	Bairro      string `json:"bairro"`
	Localidade  string `json:"localidade"`
	UF          string `json:"uf"`
	Erro        bool   `json:"erro,omitempty"`
}

func NewAddressService(baseURL string) *AddressService {
	return &AddressService{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: http.DefaultClient,
	}
}

func (s *AddressService) LookupCEP(ctx context.Context, cep string) (*Address, error) {
	cep = cepDigits.ReplaceAllString(cep, "")
	if len(cep) != 8 {
		return nil, ErrInvalidCEP
	}

	url := fmt.Sprintf("%s/ws/%s/json/", s.baseURL, cep)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("CEP lookup failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("CEP provider returned status %d", resp.StatusCode)
	}

	var payload viaCEPResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode CEP response: %w", err)
	}

	// ViaCEP answers 200 with {"erro": true} for unknown codes
	if payload.Erro {
		return nil, ErrCEPNotFound
	}

	return &Address{
		CEP:          cepDigits.ReplaceAllString(payload.CEP, ""),
		Street:       payload.Logradouro,
		Complement:   payload.Complemento,
		Neighborhood: payload.Bairro,
		City:         payload.Localidade,
		State:        payload.UF,
	}, nil
}
