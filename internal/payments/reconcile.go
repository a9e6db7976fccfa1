package payments

import (
	"context"
	"fmt"

	"github.com/commercekit/monext-connector/internal/ledger"
	"github.com/commercekit/monext-connector/internal/monext"
	"github.com/commercekit/monext-connector/pkg/metrics"
)

// ConfirmPayment handles the browser return-redirect channel. It reconciles
// the session outcome into the ledger (at most once) and always yields a
// merchant redirect URL.
func (s *Service) ConfirmPayment(ctx context.Context, req ConfirmRequest) (*ConfirmResult, error) {
	environment, err := s.resolveEnvironment(ctx, "", req.PaymentReference)
	if err != nil {
		return nil, err
	}

	payment, err := s.ledger.GetPayment(ctx, req.PaymentReference)
	if err != nil {
		return nil, err
	}
	if len(payment.Transactions) == 0 {
		return nil, fmt.Errorf("payment %s has no transactions", payment.ID)
	}

	// Reconciliation already happened through the other channel; answer
	// without contacting the PSP again.
	if payment.Transactions[0].State != ledger.StateInitial {
		metrics.IncReconciliation("return", "duplicate")
		return &ConfirmResult{
			PaymentReference: payment.ID,
			ReturnURL:        s.merchantRedirectURL(payment.ID, req.MerchantReturnURL),
		}, nil
	}

	details := s.monext.GetSessionDetails(ctx, req.Token, environment)

	if isAbnormalSession(details) {
		// Session cancelled or expired before completion. Keep the
		// transaction's original type; only the state moves.
		err = s.writeOutcome(ctx, payment, req.Token, LabelMonext, payment.Transactions[0].Type, ledger.StateFailure)
	} else {
		err = s.writeOutcome(ctx, payment, req.Token, paymentMethodLabel(details), sessionTransactionType(details), sessionTransactionState(details))
	}
	if err != nil {
		if !ledger.IsConflict(err) {
			return nil, err
		}
		// Lost the race against the notification channel; the outcome is
		// already recorded.
		metrics.IncReconciliation("return", "duplicate")
	} else {
		metrics.IncReconciliation("return", "reconciled")
	}

	return &ConfirmResult{
		PaymentReference: payment.ID,
		ReturnURL:        s.merchantRedirectURL(payment.ID, req.MerchantReturnURL),
	}, nil
}

// NotifyPayment handles the asynchronous server notification channel. Both
// channels deliver at least once; the conditional ledger update guarantees
// at most one of them writes.
func (s *Service) NotifyPayment(ctx context.Context, req NotificationRequest) (*NotificationResult, error) {
	environment, err := s.resolveEnvironment(ctx, "", req.PaymentID)
	if err != nil {
		return nil, err
	}

	payment, err := s.ledger.GetPayment(ctx, req.PaymentID)
	if err != nil {
		return nil, err
	}
	if len(payment.Transactions) == 0 {
		return nil, fmt.Errorf("payment %s has no transactions", payment.ID)
	}

	if payment.Transactions[0].State != ledger.StateInitial {
		metrics.IncReconciliation("notification", "duplicate")
		return &NotificationResult{
			Status: StatusAlreadyConfirmed,
			Type:   string(payment.Transactions[0].Type),
		}, nil
	}

	details := s.monext.GetSessionDetails(ctx, req.Token, environment)

	var result *NotificationResult
	if isAbnormalSession(details) {
		err = s.writeOutcome(ctx, payment, req.Token, paymentMethodLabel(details), payment.Transactions[0].Type, ledger.StateFailure)
		result = &NotificationResult{
			Status: details.Title,
			Type:   string(payment.Transactions[0].Type),
		}
	} else {
		txType := sessionTransactionType(details)
		err = s.writeOutcome(ctx, payment, req.Token, paymentMethodLabel(details), txType, sessionTransactionState(details))

		status := details.Title
		if details.Result != nil {
			status = details.Result.Title
		}
		result = &NotificationResult{
			Status: status,
			Type:   string(txType),
		}
	}
	if err != nil {
		if !ledger.IsConflict(err) {
			return nil, err
		}
		metrics.IncReconciliation("notification", "duplicate")
		return &NotificationResult{
			Status: StatusAlreadyConfirmed,
			Type:   string(payment.Transactions[0].Type),
		}, nil
	}

	metrics.IncReconciliation("notification", "reconciled")
	return result, nil
}

// writeOutcome records the terminal reconciliation state. The precondition
// on the first transaction's state makes the idempotency guard atomic: a
// racing writer gets a conflict instead of a duplicate append.
func (s *Service) writeOutcome(
	ctx context.Context,
	payment *ledger.Payment,
	token string,
	paymentMethod string,
	txType ledger.TransactionType,
	state ledger.TransactionState,
) error {
	_, err := s.ledger.UpdatePayment(ctx, payment.ID, ledger.PaymentUpdate{
		PSPReference:  token,
		PaymentMethod: paymentMethod,
		Transaction: &ledger.TransactionDraft{
			Type:          txType,
			Amount:        payment.AmountPlanned,
			InteractionID: token,
			State:         state,
		},
		IfFirstTransactionState: ledger.StateInitial,
	})
	return err
}

// isAbnormalSession reports whether the detail lookup returned a problem
// document (user cancellation, expired token, degraded read) instead of a
// session result.
func isAbnormalSession(details *monext.SessionDetails) bool {
	return details.Title != "" && details.Title != monext.ResultAccepted
}

// sessionTransactionType classifies the ledger transaction from the PSP's
// first reported transaction: AUTHORIZATION stays an authorization, anything
// else charged the buyer directly.
func sessionTransactionType(details *monext.SessionDetails) ledger.TransactionType {
	if len(details.Transactions) > 0 && details.Transactions[0].Type == monext.TransactionAuthorization {
		return ledger.TransactionAuthorization
	}
	return ledger.TransactionCharge
}

func sessionTransactionState(details *monext.SessionDetails) ledger.TransactionState {
	if details.Result != nil && details.Result.Title == monext.ResultAccepted {
		return ledger.StateSuccess
	}
	return ledger.StateFailure
}

// paymentMethodLabel derives the reported payment method: a card label when
// the buyer paid by card, the raw instrument type code otherwise, and the
// PSP identifier when the session reported no transactions at all.
func paymentMethodLabel(details *monext.SessionDetails) string {
	if len(details.Transactions) == 0 {
		return LabelMonext
	}
	instrument := details.Transactions[0].PaymentInstrumentData
	if instrument == nil {
		return LabelMonext
	}
	if instrument.UsedPaymentInstrument == monext.UsedInstrumentCard {
		return LabelCreditCard
	}
	return instrument.PaymentInstrumentType.Code
}
