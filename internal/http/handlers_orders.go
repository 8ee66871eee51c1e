package httpapi

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/aishnaga/cookie-ordering-system-2026/internal/ledger"
	"github.com/aishnaga/cookie-ordering-system-2026/internal/model"
)

type createOrderRequest struct {
	FamilyID string                `json:"family_id"`
	Items    []ledger.ItemQuantity `json:"items"`
}

func (a *App) createOrderHandler(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	o, err := a.Orders.Create(req.FamilyID, req.Items)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, viewOrder(o))
}

func (a *App) listOrdersHandler(w http.ResponseWriter, r *http.Request) {
	if !a.requireAdmin(w, r) {
		return
	}
	orders, err := a.Orders.List(model.OrderStatus(r.URL.Query().Get("status")))
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, viewOrders(orders))
}

func (a *App) getOrderHandler(w http.ResponseWriter, r *http.Request) {
	o, err := a.Orders.Get(r.PathValue("id"))
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, viewOrder(o))
}

func (a *App) familyOrdersHandler(w http.ResponseWriter, r *http.Request) {
	familyID := r.PathValue("id")
	if !a.Directory.Exists(familyID) {
		WriteDomainError(w, model.ErrNotFound)
		return
	}
	writeJSON(w, http.StatusOK, viewOrders(a.Orders.ListByFamily(familyID)))
}

type editOrderRequest struct {
	Items []ledger.ItemQuantity `json:"items"`
}

func (a *App) editOrderItemsHandler(w http.ResponseWriter, r *http.Request) {
	if !a.requireAdmin(w, r) {
		return
	}
	var req editOrderRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	o, err := a.Orders.EditLineItems(r.PathValue("id"), req.Items)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, viewOrder(o))
}

func (a *App) deleteOrderHandler(w http.ResponseWriter, r *http.Request) {
	if !a.requireAdmin(w, r) {
		return
	}
	if err := a.Orders.Delete(r.PathValue("id")); err != nil {
		WriteDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type orderStatusRequest struct {
	Status model.OrderStatus `json:"status"`
}

func (a *App) orderStatusHandler(w http.ResponseWriter, r *http.Request) {
	if !a.requireAdmin(w, r) {
		return
	}
	var req orderStatusRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	o, err := a.Orders.TransitionStatus(r.PathValue("id"), req.Status)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, viewOrder(o))
}

type paymentRequest struct {
	PaymentType model.PaymentMethod `json:"payment_type"`
	Amount      decimal.Decimal     `json:"amount"`
	Notes       string              `json:"notes,omitempty"`
}

func (a *App) recordPaymentHandler(w http.ResponseWriter, r *http.Request) {
	if !a.requireAdmin(w, r) {
		return
	}
	var req paymentRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	o, err := a.Orders.RecordPayment(r.PathValue("id"), req.PaymentType, req.Amount, req.Notes)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, viewOrder(o))
}

type setPaymentsRequest struct {
	Cash       decimal.Decimal `json:"cash"`
	Check      decimal.Decimal `json:"check"`
	CreditCard decimal.Decimal `json:"credit_card"`
}

func (a *App) setPaymentsHandler(w http.ResponseWriter, r *http.Request) {
	if !a.requireAdmin(w, r) {
		return
	}
	var req setPaymentsRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	o, err := a.Orders.SetPayments(r.PathValue("id"), req.Cash, req.Check, req.CreditCard)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, viewOrder(o))
}
