package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/commercekit/monext-connector/internal/interfaces/rest"
	"github.com/commercekit/monext-connector/internal/payments"
)

// notifyPayment is the server-to-server callback channel. Monext delivers
// it at least once; the service guarantees at most one ledger write.
func (h *Handlers) notifyPayment(w http.ResponseWriter, r *http.Request) {
	paymentID := chi.URLParam(r, "paymentID")
	token := r.URL.Query().Get("token")
	if paymentID == "" || token == "" {
		http.Error(w, "missing payment id or token", http.StatusBadRequest)
		return
	}

	result, err := h.service.NotifyPayment(r.Context(), payments.NotificationRequest{
		PaymentID: paymentID,
		Token:     token,
	})
	if err != nil {
		h.logger.Error("notification handling failed", "payment_id", paymentID, "error", err)
		rest.WriteError(w, err)
		return
	}

	rest.WriteJSON(w, http.StatusOK, result)
}
