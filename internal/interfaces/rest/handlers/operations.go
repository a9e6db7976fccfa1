package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/commercekit/monext-connector/internal/interfaces/rest"
	"github.com/commercekit/monext-connector/internal/ledger"
	"github.com/commercekit/monext-connector/internal/payments"
)

func (h *Handlers) getConfig(w http.ResponseWriter, r *http.Request) {
	rest.WriteJSON(w, http.StatusOK, h.service.ConfigSummary())
}

func (h *Handlers) getStatus(w http.ResponseWriter, r *http.Request) {
	report := h.service.Status(r.Context(), h.statusTimeout)

	statusCode := http.StatusOK
	if report.Status != "UP" {
		statusCode = http.StatusServiceUnavailable
	}
	rest.WriteJSON(w, statusCode, report)
}

func (h *Handlers) getComponents(w http.ResponseWriter, r *http.Request) {
	rest.WriteJSON(w, http.StatusOK, map[string][]payments.Component{
		"components": h.service.SupportedComponents(),
	})
}

type amountBody struct {
	CentAmount   int64  `json:"centAmount"`
	CurrencyCode string `json:"currencyCode"`
}

type paymentIntentBody struct {
	Action payments.ModificationKind `json:"action"`
	Amount *amountBody               `json:"amount,omitempty"`
}

// paymentIntent dispatches capture/cancel/refund requests. The service only
// authorizes and executes the PSP call; this handler records the resulting
// ledger transaction afterwards.
func (h *Handlers) paymentIntent(w http.ResponseWriter, r *http.Request) {
	paymentID := chi.URLParam(r, "paymentID")

	var body paymentIntentBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var (
		result *payments.ModificationResult
		amount ledger.Money
		err    error
	)

	switch body.Action {
	case payments.KindCapture:
		if body.Amount == nil {
			http.Error(w, "capture requires an amount", http.StatusBadRequest)
			return
		}
		amount = ledger.Money{CentAmount: body.Amount.CentAmount, CurrencyCode: body.Amount.CurrencyCode}
		result, err = h.service.CapturePayment(r.Context(), payments.CaptureRequest{
			PaymentID: paymentID,
			Amount:    body.Amount.CentAmount,
		})
	case payments.KindCancel:
		result, err = h.service.CancelPayment(r.Context(), payments.CancelRequest{
			PaymentID: paymentID,
		})
	case payments.KindRefund:
		if body.Amount == nil {
			http.Error(w, "refund requires an amount", http.StatusBadRequest)
			return
		}
		amount = ledger.Money{CentAmount: body.Amount.CentAmount, CurrencyCode: body.Amount.CurrencyCode}
		result, err = h.service.RefundPayment(r.Context(), payments.RefundRequest{
			PaymentID: paymentID,
			Amount:    body.Amount.CentAmount,
		})
	default:
		http.Error(w, "unsupported action", http.StatusBadRequest)
		return
	}

	if err != nil {
		h.logger.Error("payment modification failed", "payment_id", paymentID, "action", body.Action, "error", err)
		rest.WriteError(w, err)
		return
	}

	if err := h.service.RecordModification(r.Context(), paymentID, body.Action, amount, result); err != nil {
		h.logger.Error("failed to record modification", "payment_id", paymentID, "action", body.Action, "error", err)
		rest.WriteError(w, err)
		return
	}

	rest.WriteJSON(w, http.StatusOK, result)
}
