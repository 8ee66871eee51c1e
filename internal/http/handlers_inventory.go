package httpapi

import (
	"net/http"

	"github.com/aishnaga/cookie-ordering-system-2026/internal/ledger"
	"github.com/aishnaga/cookie-ordering-system-2026/internal/model"
)

func (a *App) centralInventoryHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.Ledger.Pool(model.CentralPool()))
}

type addStockRequest struct {
	VarietyID string            `json:"cookie_variety_id"`
	Quantity  int               `json:"quantity"`
	Status    model.StockStatus `json:"status,omitempty"`
}

func (a *App) addCentralStockHandler(w http.ResponseWriter, r *http.Request) {
	if !a.requireAdmin(w, r) {
		return
	}
	var req addStockRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Status == "" {
		req.Status = model.StockOnHand
	}
	if _, err := a.Catalog.Get(req.VarietyID); err != nil {
		WriteDomainError(w, model.Validationf("unknown cookie variety %q", req.VarietyID))
		return
	}
	err := a.Ledger.Credit(model.CentralPool(), req.VarietyID, req.Status, req.Quantity, model.ReasonCouncilDelivery)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]bool{"success": true})
}

func (a *App) familyInventoryHandler(w http.ResponseWriter, r *http.Request) {
	familyID := r.PathValue("id")
	if !a.Directory.Exists(familyID) {
		WriteDomainError(w, model.ErrNotFound)
		return
	}
	writeJSON(w, http.StatusOK, a.Ledger.Pool(model.FamilyPool(familyID)))
}

type bulkSetRequest struct {
	Items []ledger.ItemQuantity `json:"items"`
}

func (a *App) setFamilyInventoryHandler(w http.ResponseWriter, r *http.Request) {
	familyID := r.PathValue("id")
	if !a.Directory.Exists(familyID) {
		WriteDomainError(w, model.ErrNotFound)
		return
	}
	var req bulkSetRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := a.Ledger.BulkSetFamilyPool(familyID, req.Items); err != nil {
		WriteDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (a *App) allFamilyInventoryHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.Ledger.AllFamilyPools())
}

type adjustRequest struct {
	FamilyID  string               `json:"family_id,omitempty"`
	VarietyID string               `json:"cookie_variety_id"`
	Status    model.StockStatus    `json:"status,omitempty"`
	Quantity  int                  `json:"quantity"`
	Reason    model.TransferReason `json:"reason,omitempty"`
}

func (a *App) adjustInventoryHandler(w http.ResponseWriter, r *http.Request) {
	if !a.requireAdmin(w, r) {
		return
	}
	var req adjustRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if _, err := a.Catalog.Get(req.VarietyID); err != nil {
		WriteDomainError(w, model.Validationf("unknown cookie variety %q", req.VarietyID))
		return
	}
	pool := model.CentralPool()
	if req.FamilyID != "" {
		if !a.Directory.Exists(req.FamilyID) {
			WriteDomainError(w, model.ErrNotFound)
			return
		}
		pool = model.FamilyPool(req.FamilyID)
	}
	if req.Status == "" {
		req.Status = model.StockOnHand
	}
	if err := a.Ledger.SetAbsolute(pool, req.VarietyID, req.Status, req.Quantity, req.Reason); err != nil {
		WriteDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (a *App) inventoryTransactionsHandler(w http.ResponseWriter, r *http.Request) {
	if !a.requireAdmin(w, r) {
		return
	}
	writeJSON(w, http.StatusOK, a.Ledger.Transactions())
}
