package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/avicennajr/gofdisms/internal/request"
	"github.com/avicennajr/gofdisms/internal/response"
	"github.com/avicennajr/gofdisms/internal/service"
	"github.com/avicennajr/gofdisms/pkg/fdi"
)

// AccountHandler exposes provider account operations: balance, traffic
// statistics and number validation.
type AccountHandler struct {
	accSvc service.AccountService
}

// NewAccountHandler constructs a new AccountHandler.
func NewAccountHandler(accSvc service.AccountService) *AccountHandler {
	return &AccountHandler{accSvc: accSvc}
}

// GetBalance godoc
// @Summary     Credit balance
// @Description Returns the current credit balance, or the closing balance for a past date. Cached briefly server-side.
// @Tags        account
// @Produce     json
// @Param       date query string false "Date (YYYY-MM-DD) for the closing balance"
// @Success     200 {object} response.ProviderResponse
// @Failure     502 {object} map[string]string
// @Router      /balance [get]
func (h *AccountHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	raw, err := h.accSvc.Balance(r.Context(), r.URL.Query().Get("date"))
	if err != nil {
		response.RespondError(w, http.StatusBadGateway, err.Error())
		return
	}

	response.RespondRaw(w, http.StatusOK, raw)
}

// GetStats godoc
// @Summary     Traffic statistics
// @Description Returns MT/MO message statistics for today, or for a past date. Cached briefly server-side.
// @Tags        account
// @Produce     json
// @Param       date query string false "Date (YYYY-MM-DD)"
// @Success     200 {object} response.ProviderResponse
// @Failure     502 {object} map[string]string
// @Router      /stats [get]
func (h *AccountHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	raw, err := h.accSvc.Stats(r.Context(), r.URL.Query().Get("date"))
	if err != nil {
		response.RespondError(w, http.StatusBadGateway, err.Error())
		return
	}

	response.RespondRaw(w, http.StatusOK, raw)
}

// Validate godoc
// @Summary     Validate mobile numbers
// @Description Asks the provider whether the given number (or list of numbers) is valid for a country.
// @Tags        account
// @Accept      json
// @Produce     json
// @Param       request body request.ValidateRequest true "Number(s) and ISO 3166-1 country code"
// @Success     200 {object} response.ProviderResponse
// @Failure     400 {object} map[string]string
// @Failure     502 {object} map[string]string
// @Router      /validate [post]
func (h *AccountHandler) Validate(w http.ResponseWriter, r *http.Request) {
	var req request.ValidateRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	msisdns := req.MSISDNList
	if len(msisdns) == 0 && req.MSISDN != "" {
		msisdns = []string{req.MSISDN}
	}
	if len(msisdns) == 0 {
		response.RespondError(w, http.StatusBadRequest, "msisdn or msisdn_list is required")
		return
	}

	resp, err := h.accSvc.Validate(r.Context(), msisdns, req.CountryCode)
	if err != nil {
		if errors.Is(err, fdi.ErrInvalidMobileNumber) {
			response.RespondError(w, http.StatusBadRequest, err.Error())
			return
		}
		response.RespondError(w, http.StatusBadGateway, err.Error())
		return
	}

	response.RespondRaw(w, http.StatusOK, resp.Raw)
}
