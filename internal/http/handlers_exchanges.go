package httpapi

import (
	"net/http"

	"github.com/aishnaga/cookie-ordering-system-2026/internal/model"
)

type createExchangeRequest struct {
	RequestingFamilyID string `json:"requesting_family_id"`
	ProvidingFamilyID  string `json:"providing_family_id"`
	VarietyID          string `json:"cookie_variety_id"`
	Quantity           int    `json:"quantity"`
}

func (a *App) createExchangeHandler(w http.ResponseWriter, r *http.Request) {
	var req createExchangeRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	e, err := a.Exchanges.Request(req.RequestingFamilyID, req.ProvidingFamilyID, req.VarietyID, req.Quantity)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, e)
}

func (a *App) listExchangesHandler(w http.ResponseWriter, r *http.Request) {
	if !a.requireAdmin(w, r) {
		return
	}
	writeJSON(w, http.StatusOK, a.Exchanges.List())
}

func (a *App) familyExchangesHandler(w http.ResponseWriter, r *http.Request) {
	familyID := r.PathValue("id")
	if !a.Directory.Exists(familyID) {
		WriteDomainError(w, model.ErrNotFound)
		return
	}
	writeJSON(w, http.StatusOK, a.Exchanges.ListByFamily(familyID))
}

type resolveExchangeRequest struct {
	Decision model.ExchangeDecision `json:"decision"`
}

func (a *App) resolveExchangeHandler(w http.ResponseWriter, r *http.Request) {
	if !a.requireAdmin(w, r) {
		return
	}
	var req resolveExchangeRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	e, err := a.Exchanges.Resolve(r.PathValue("id"), req.Decision)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}
