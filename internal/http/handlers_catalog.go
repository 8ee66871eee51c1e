package httpapi

import (
	"net/http"

	"github.com/shopspring/decimal"
)

type cookieRequest struct {
	Name        string          `json:"name"`
	PricePerBox decimal.Decimal `json:"price_per_box"`
	Active      *bool           `json:"active,omitempty"`
}

func (a *App) listCookiesHandler(w http.ResponseWriter, r *http.Request) {
	includeInactive := r.URL.Query().Get("all") == "true"
	writeJSON(w, http.StatusOK, a.Catalog.List(includeInactive))
}

func (a *App) createCookieHandler(w http.ResponseWriter, r *http.Request) {
	if !a.requireAdmin(w, r) {
		return
	}
	var req cookieRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	v, err := a.Catalog.Create(req.Name, req.PricePerBox)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, v)
}

func (a *App) updateCookieHandler(w http.ResponseWriter, r *http.Request) {
	if !a.requireAdmin(w, r) {
		return
	}
	var req cookieRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	active := true
	if req.Active != nil {
		active = *req.Active
	}
	v, err := a.Catalog.Update(r.PathValue("id"), req.Name, req.PricePerBox, active)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

type familyRequest struct {
	Name        string `json:"name"`
	ContactInfo string `json:"contact_info,omitempty"`
}

func (a *App) listFamiliesHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.Directory.List())
}

func (a *App) createFamilyHandler(w http.ResponseWriter, r *http.Request) {
	if !a.requireAdmin(w, r) {
		return
	}
	var req familyRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	f, err := a.Directory.Create(req.Name, req.ContactInfo)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, f)
}

func (a *App) updateFamilyHandler(w http.ResponseWriter, r *http.Request) {
	if !a.requireAdmin(w, r) {
		return
	}
	var req familyRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	f, err := a.Directory.Update(r.PathValue("id"), req.Name, req.ContactInfo)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, f)
}

func (a *App) deleteFamilyHandler(w http.ResponseWriter, r *http.Request) {
	if !a.requireAdmin(w, r) {
		return
	}
	if err := a.Directory.Delete(r.PathValue("id")); err != nil {
		WriteDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *App) familyBalanceHandler(w http.ResponseWriter, r *http.Request) {
	b, err := a.Balances.ComputeFamilyBalance(r.PathValue("id"))
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}
