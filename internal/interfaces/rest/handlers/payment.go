package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/commercekit/monext-connector/internal/interfaces/rest"
	"github.com/commercekit/monext-connector/internal/payments"
)

type createPaymentBody struct {
	PaymentMethod string `json:"paymentMethod"`
	LanguageCode  string `json:"languageCode,omitempty"`
}

// createPayment starts a checkout session for the caller's cart. The cart
// and session identity arrive as headers set by the session-verification
// middleware in front of this service.
func (h *Handlers) createPayment(w http.ResponseWriter, r *http.Request) {
	var body createPaymentBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	cartID := r.Header.Get("X-Cart-Id")
	sessionID := r.Header.Get("X-Session-Id")
	if cartID == "" || sessionID == "" {
		http.Error(w, "missing cart or session identity", http.StatusBadRequest)
		return
	}

	result, err := h.service.CreatePayment(r.Context(), payments.CreatePaymentRequest{
		Cart: payments.CartContext{
			CartID:            cartID,
			SessionID:         sessionID,
			PaymentInterface:  r.Header.Get("X-Payment-Interface"),
			MerchantReturnURL: r.Header.Get("X-Merchant-Return-Url"),
		},
		PaymentMethod: body.PaymentMethod,
		LanguageCode:  body.LanguageCode,
	})
	if err != nil {
		rest.WriteError(w, err)
		return
	}

	rest.WriteJSON(w, http.StatusOK, result)
}
