package handlers

import (
	"net/http"

	"github.com/commercekit/monext-connector/internal/interfaces/rest"
	"github.com/commercekit/monext-connector/internal/payments"
)

// confirmPayment is the browser return-redirect channel: the buyer lands
// here after the hosted checkout and is sent on to the merchant.
func (h *Handlers) confirmPayment(w http.ResponseWriter, r *http.Request) {
	paymentReference := r.URL.Query().Get("paymentReference")
	token := r.URL.Query().Get("token")
	if paymentReference == "" || token == "" {
		http.Error(w, "missing payment reference or token", http.StatusBadRequest)
		return
	}

	result, err := h.service.ConfirmPayment(r.Context(), payments.ConfirmRequest{
		PaymentReference:  paymentReference,
		Token:             token,
		MerchantReturnURL: r.Header.Get("X-Merchant-Return-Url"),
	})
	if err != nil {
		h.logger.Error("return handling failed", "payment_reference", paymentReference, "error", err)
		rest.WriteError(w, err)
		return
	}

	http.Redirect(w, r, result.ReturnURL, http.StatusFound)
}
