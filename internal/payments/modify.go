package payments

import (
	"context"

	"github.com/commercekit/monext-connector/internal/ledger"
	"github.com/commercekit/monext-connector/internal/monext"
)

// CapturePayment captures a previously authorized payment. The request is
// rejected, with the existing PSP reference unchanged, when the PSP history
// does not show a capturable authorization or when the requested amount
// differs from the authorized one; partial capture is not supported.
func (s *Service) CapturePayment(ctx context.Context, req CaptureRequest) (*ModificationResult, error) {
	environment, err := s.resolveEnvironment(ctx, "", req.PaymentID)
	if err != nil {
		return nil, err
	}

	payment, err := s.ledger.GetPayment(ctx, req.PaymentID)
	if err != nil {
		return nil, err
	}

	details := s.monext.GetSessionDetails(ctx, payment.InterfaceID, environment)

	authTx := findSessionTransaction(details, monext.TransactionAuthorization)
	if authTx == nil || authTx.RequestedAmount != req.Amount {
		return rejected(payment.InterfaceID), nil
	}

	txDetails := s.monext.GetTransactionDetails(ctx, authTx.ID, environment)
	if txDetails.AssociatedTransactions == nil {
		return rejected(payment.InterfaceID), nil
	}

	if hasSuccessfulTransactionOfType(txDetails.AssociatedTransactions, captureDisqualifiers) {
		return rejected(payment.InterfaceID), nil
	}

	resp, err := s.monext.CaptureTransaction(ctx, authTx.ID, monext.ModificationRequest{
		Amount: authTx.RequestedAmount,
	}, environment)
	if err != nil {
		return nil, err
	}

	return fromModificationResponse(resp), nil
}

// CancelPayment cancels an authorization that was not yet captured.
func (s *Service) CancelPayment(ctx context.Context, req CancelRequest) (*ModificationResult, error) {
	environment, err := s.resolveEnvironment(ctx, "", req.PaymentID)
	if err != nil {
		return nil, err
	}

	payment, err := s.ledger.GetPayment(ctx, req.PaymentID)
	if err != nil {
		return nil, err
	}

	details := s.monext.GetSessionDetails(ctx, payment.InterfaceID, environment)

	authTx := findSessionTransaction(details, monext.TransactionAuthorization)
	if authTx == nil {
		return rejected(payment.InterfaceID), nil
	}

	txDetails := s.monext.GetTransactionDetails(ctx, authTx.ID, environment)
	if txDetails.AssociatedTransactions == nil {
		return rejected(payment.InterfaceID), nil
	}

	if hasSuccessfulTransactionOfType(txDetails.AssociatedTransactions, cancelDisqualifiers) {
		return rejected(payment.InterfaceID), nil
	}

	resp, err := s.monext.CancelTransaction(ctx, authTx.ID, monext.ModificationRequest{
		Amount: authTx.RequestedAmount,
	}, environment)
	if err != nil {
		return nil, err
	}

	return fromModificationResponse(resp), nil
}

// RefundPayment refunds part or all of a captured payment. Refunds are
// bounded by the captured amount: once the successful refunds add up to it,
// further attempts are rejected without contacting the PSP.
func (s *Service) RefundPayment(ctx context.Context, req RefundRequest) (*ModificationResult, error) {
	environment, err := s.resolveEnvironment(ctx, "", req.PaymentID)
	if err != nil {
		return nil, err
	}

	payment, err := s.ledger.GetPayment(ctx, req.PaymentID)
	if err != nil {
		return nil, err
	}

	details := s.monext.GetSessionDetails(ctx, payment.InterfaceID, environment)
	if len(details.Transactions) == 0 {
		return rejected(payment.InterfaceID), nil
	}

	txDetails := s.monext.GetTransactionDetails(ctx, details.Transactions[0].ID, environment)
	if txDetails.AssociatedTransactions == nil {
		return rejected(payment.InterfaceID), nil
	}

	captureTx := findCaptureTransaction(txDetails.AssociatedTransactions)
	if captureTx == nil {
		return rejected(payment.InterfaceID), nil
	}

	fullyRefunded := refundedAmount(txDetails.AssociatedTransactions) == captureTx.Amount
	if fullyRefunded || hasSuccessfulTransactionOfType(txDetails.AssociatedTransactions, refundDisqualifiers) {
		return rejected(payment.InterfaceID), nil
	}

	resp, err := s.monext.RefundTransaction(ctx, captureTx.OriginTransactionID, monext.ModificationRequest{
		Amount: req.Amount,
	}, environment)
	if err != nil {
		return nil, err
	}

	return fromModificationResponse(resp), nil
}

// RecordModification appends the ledger transaction for a completed
// modification. The authorizers above deliberately do not touch the ledger;
// their caller records the outcome with this method. A zero amount (the
// cancel case, which has no request amount) falls back to the payment's
// planned amount.
func (s *Service) RecordModification(ctx context.Context, paymentID string, kind ModificationKind, amount ledger.Money, result *ModificationResult) error {
	if amount == (ledger.Money{}) {
		payment, err := s.ledger.GetPayment(ctx, paymentID)
		if err != nil {
			return err
		}
		amount = payment.AmountPlanned
	}

	var txType ledger.TransactionType
	switch kind {
	case KindCapture:
		txType = ledger.TransactionCharge
	case KindCancel:
		txType = ledger.TransactionCancelAuthorization
	case KindRefund:
		txType = ledger.TransactionRefund
	}

	state := ledger.StateFailure
	if result.Outcome == OutcomeApproved {
		state = ledger.StateSuccess
	}

	_, err := s.ledger.UpdatePayment(ctx, paymentID, ledger.PaymentUpdate{
		Transaction: &ledger.TransactionDraft{
			Type:          txType,
			Amount:        amount,
			InteractionID: result.PSPReference,
			State:         state,
		},
	})
	return err
}

func findSessionTransaction(details *monext.SessionDetails, txType monext.TransactionType) *monext.Transaction {
	for i := range details.Transactions {
		if details.Transactions[i].Type == txType {
			return &details.Transactions[i]
		}
	}
	return nil
}

func rejected(pspReference string) *ModificationResult {
	return &ModificationResult{
		Outcome:      OutcomeRejected,
		PSPReference: pspReference,
	}
}

func fromModificationResponse(resp *monext.TransactionResponse) *ModificationResult {
	outcome := OutcomeRejected
	if resp.Result.Title == monext.ResultAccepted {
		outcome = OutcomeApproved
	}
	return &ModificationResult{
		Outcome:      outcome,
		PSPReference: resp.Transaction.ID,
	}
}
