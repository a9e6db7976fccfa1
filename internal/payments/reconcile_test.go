package payments

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/commercekit/monext-connector/internal/ledger"
	"github.com/commercekit/monext-connector/internal/monext"
)

func acceptedSessionDetails(txType monext.TransactionType, instrument *monext.PaymentInstrumentData) *monext.SessionDetails {
	return &monext.SessionDetails{
		Result: &monext.Result{Title: monext.ResultAccepted},
		Transactions: []monext.Transaction{
			{
				ID:                    "tx-1",
				Type:                  txType,
				RequestedAmount:       2499,
				PaymentInstrumentData: instrument,
			},
		},
	}
}

func TestConfirmPayment_RecordsSuccess(t *testing.T) {
	ml := newMockLedger()
	ml.payments["payment-1"] = initialPayment(ledger.TransactionAuthorization)

	mm := &mockMonext{
		GetSessionDetailsFn: func(ctx context.Context, sessionID, environment string) *monext.SessionDetails {
			assert.Equal(t, "monextToken1", sessionID)
			return acceptedSessionDetails(monext.TransactionAuthorization,
				&monext.PaymentInstrumentData{UsedPaymentInstrument: monext.UsedInstrumentCard})
		},
	}

	s := newTestService(ml, mm, monext.EnvironmentHomologation, monext.CaptureManual)

	result, err := s.ConfirmPayment(context.Background(), ConfirmRequest{
		PaymentReference: "payment-1",
		Token:            "monextToken1",
	})
	require.NoError(t, err)

	assert.Equal(t, "payment-1", result.PaymentReference)
	assert.Equal(t,
		"https://merchant.example.com/checkout?paymentReference=payment-1",
		result.ReturnURL)

	update := ml.lastUpdate()
	assert.Equal(t, "monextToken1", update.PSPReference)
	assert.Equal(t, LabelCreditCard, update.PaymentMethod)
	assert.Equal(t, ledger.StateInitial, update.IfFirstTransactionState)
	require.NotNil(t, update.Transaction)
	assert.Equal(t, ledger.TransactionAuthorization, update.Transaction.Type)
	assert.Equal(t, ledger.StateSuccess, update.Transaction.State)
}

func TestConfirmPayment_DuplicateSkipsPSP(t *testing.T) {
	payment := initialPayment(ledger.TransactionCharge)
	payment.Transactions[0].State = ledger.StateSuccess

	ml := newMockLedger()
	ml.payments["payment-1"] = payment

	mm := &mockMonext{
		GetSessionDetailsFn: func(ctx context.Context, sessionID, environment string) *monext.SessionDetails {
			return acceptedSessionDetails(monext.TransactionAuthorization, nil)
		},
	}

	s := newTestService(ml, mm, monext.EnvironmentHomologation, monext.CaptureManual)

	result, err := s.ConfirmPayment(context.Background(), ConfirmRequest{
		PaymentReference: "payment-1",
		Token:            "monextToken1",
	})
	require.NoError(t, err)

	// The duplicate path still hands the browser somewhere to go, without a
	// single extra PSP call or ledger write.
	assert.Equal(t,
		"https://merchant.example.com/checkout?paymentReference=payment-1",
		result.ReturnURL)
	assert.Zero(t, mm.sessionDetailCalls)
	assert.Empty(t, ml.updates)
}

func TestConfirmPayment_AbnormalSessionKeepsTransactionType(t *testing.T) {
	ml := newMockLedger()
	ml.payments["payment-1"] = initialPayment(ledger.TransactionCharge)

	mm := &mockMonext{
		GetSessionDetailsFn: func(ctx context.Context, sessionID, environment string) *monext.SessionDetails {
			return &monext.SessionDetails{Title: monext.ResultCancelled, Detail: "buyer cancelled"}
		},
	}

	s := newTestService(ml, mm, monext.EnvironmentHomologation, monext.CaptureAutomatic)

	_, err := s.ConfirmPayment(context.Background(), ConfirmRequest{
		PaymentReference: "payment-1",
		Token:            "monextToken1",
	})
	require.NoError(t, err)

	update := ml.lastUpdate()
	assert.Equal(t, LabelMonext, update.PaymentMethod)
	require.NotNil(t, update.Transaction)
	assert.Equal(t, ledger.TransactionCharge, update.Transaction.Type)
	assert.Equal(t, ledger.StateFailure, update.Transaction.State)
}

func TestConfirmPayment_RefusedSessionRecordsFailure(t *testing.T) {
	ml := newMockLedger()
	ml.payments["payment-1"] = initialPayment(ledger.TransactionAuthorization)

	mm := &mockMonext{
		GetSessionDetailsFn: func(ctx context.Context, sessionID, environment string) *monext.SessionDetails {
			d := acceptedSessionDetails(monext.TransactionAuthorization, nil)
			d.Result.Title = monext.ResultRefused
			return d
		},
	}

	s := newTestService(ml, mm, monext.EnvironmentHomologation, monext.CaptureManual)

	_, err := s.ConfirmPayment(context.Background(), ConfirmRequest{
		PaymentReference: "payment-1",
		Token:            "monextToken1",
	})
	require.NoError(t, err)

	update := ml.lastUpdate()
	require.NotNil(t, update.Transaction)
	assert.Equal(t, ledger.StateFailure, update.Transaction.State)
}

func TestConfirmPayment_LosingTheRaceIsNotAnError(t *testing.T) {
	ml := newMockLedger()
	ml.payments["payment-1"] = initialPayment(ledger.TransactionAuthorization)
	ml.UpdatePaymentFn = func(ctx context.Context, paymentID string, update ledger.PaymentUpdate) (*ledger.Payment, error) {
		// The notification channel committed first.
		return nil, &ledger.APIError{StatusCode: 409, Message: "transaction state precondition failed"}
	}

	mm := &mockMonext{
		GetSessionDetailsFn: func(ctx context.Context, sessionID, environment string) *monext.SessionDetails {
			return acceptedSessionDetails(monext.TransactionAuthorization, nil)
		},
	}

	s := newTestService(ml, mm, monext.EnvironmentHomologation, monext.CaptureManual)

	result, err := s.ConfirmPayment(context.Background(), ConfirmRequest{
		PaymentReference: "payment-1",
		Token:            "monextToken1",
	})
	require.NoError(t, err)
	assert.Equal(t, "payment-1", result.PaymentReference)
}

func TestNotifyPayment_RecordsOutcome(t *testing.T) {
	ml := newMockLedger()
	ml.payments["payment-1"] = initialPayment(ledger.TransactionAuthorization)

	mm := &mockMonext{
		GetSessionDetailsFn: func(ctx context.Context, sessionID, environment string) *monext.SessionDetails {
			return acceptedSessionDetails(monext.TransactionAuthorization,
				&monext.PaymentInstrumentData{UsedPaymentInstrument: monext.UsedInstrumentCard})
		},
	}

	s := newTestService(ml, mm, monext.EnvironmentHomologation, monext.CaptureManual)

	result, err := s.NotifyPayment(context.Background(), NotificationRequest{
		PaymentID: "payment-1",
		Token:     "monextToken1",
	})
	require.NoError(t, err)

	assert.Equal(t, monext.ResultAccepted, result.Status)
	assert.Equal(t, string(ledger.TransactionAuthorization), result.Type)

	update := ml.lastUpdate()
	assert.Equal(t, LabelCreditCard, update.PaymentMethod)
	assert.Equal(t, ledger.StateInitial, update.IfFirstTransactionState)
	require.NotNil(t, update.Transaction)
	assert.Equal(t, ledger.StateSuccess, update.Transaction.State)
}

func TestNotifyPayment_DuplicateAnswersWithoutPSP(t *testing.T) {
	payment := initialPayment(ledger.TransactionCharge)
	payment.Transactions[0].State = ledger.StateSuccess

	ml := newMockLedger()
	ml.payments["payment-1"] = payment

	mm := &mockMonext{
		GetSessionDetailsFn: func(ctx context.Context, sessionID, environment string) *monext.SessionDetails {
			return acceptedSessionDetails(monext.TransactionAuthorization, nil)
		},
	}

	s := newTestService(ml, mm, monext.EnvironmentHomologation, monext.CaptureManual)

	result, err := s.NotifyPayment(context.Background(), NotificationRequest{
		PaymentID: "payment-1",
		Token:     "monextToken1",
	})
	require.NoError(t, err)

	assert.Equal(t, StatusAlreadyConfirmed, result.Status)
	assert.Equal(t, string(ledger.TransactionCharge), result.Type)
	assert.Zero(t, mm.sessionDetailCalls)
	assert.Empty(t, ml.updates)
}

func TestNotifyPayment_ConflictReportsAlreadyConfirmed(t *testing.T) {
	ml := newMockLedger()
	ml.payments["payment-1"] = initialPayment(ledger.TransactionCharge)
	ml.UpdatePaymentFn = func(ctx context.Context, paymentID string, update ledger.PaymentUpdate) (*ledger.Payment, error) {
		return nil, &ledger.APIError{StatusCode: 409, Message: "transaction state precondition failed"}
	}

	mm := &mockMonext{
		GetSessionDetailsFn: func(ctx context.Context, sessionID, environment string) *monext.SessionDetails {
			return acceptedSessionDetails(monext.TransactionAuthorizationAndCapture, nil)
		},
	}

	s := newTestService(ml, mm, monext.EnvironmentHomologation, monext.CaptureAutomatic)

	result, err := s.NotifyPayment(context.Background(), NotificationRequest{
		PaymentID: "payment-1",
		Token:     "monextToken1",
	})
	require.NoError(t, err)
	assert.Equal(t, StatusAlreadyConfirmed, result.Status)
}

func TestNotifyPayment_AbnormalSessionReportsTitle(t *testing.T) {
	ml := newMockLedger()
	ml.payments["payment-1"] = initialPayment(ledger.TransactionCharge)

	mm := &mockMonext{
		GetSessionDetailsFn: func(ctx context.Context, sessionID, environment string) *monext.SessionDetails {
			return &monext.SessionDetails{Title: monext.ResultError, Detail: "token expired"}
		},
	}

	s := newTestService(ml, mm, monext.EnvironmentHomologation, monext.CaptureAutomatic)

	result, err := s.NotifyPayment(context.Background(), NotificationRequest{
		PaymentID: "payment-1",
		Token:     "monextToken1",
	})
	require.NoError(t, err)

	assert.Equal(t, monext.ResultError, result.Status)
	assert.Equal(t, string(ledger.TransactionCharge), result.Type)

	update := ml.lastUpdate()
	require.NotNil(t, update.Transaction)
	assert.Equal(t, ledger.StateFailure, update.Transaction.State)
}

func TestPaymentMethodLabel(t *testing.T) {
	tests := []struct {
		name    string
		details *monext.SessionDetails
		want    string
	}{
		{
			name:    "no transactions",
			details: &monext.SessionDetails{Result: &monext.Result{Title: monext.ResultAccepted}},
			want:    LabelMonext,
		},
		{
			name: "card instrument",
			details: acceptedSessionDetails(monext.TransactionAuthorization,
				&monext.PaymentInstrumentData{UsedPaymentInstrument: monext.UsedInstrumentCard}),
			want: LabelCreditCard,
		},
		{
			name: "alternative instrument reports its code",
			details: acceptedSessionDetails(monext.TransactionAuthorization,
				&monext.PaymentInstrumentData{
					UsedPaymentInstrument: "UsedWallet",
					PaymentInstrumentType: monext.PaymentInstrumentType{Code: "PAYPAL"},
				}),
			want: "PAYPAL",
		},
		{
			name:    "missing instrument data",
			details: acceptedSessionDetails(monext.TransactionAuthorization, nil),
			want:    LabelMonext,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, paymentMethodLabel(tt.details))
		})
	}
}

func TestSessionTransactionType(t *testing.T) {
	assert.Equal(t, ledger.TransactionAuthorization,
		sessionTransactionType(acceptedSessionDetails(monext.TransactionAuthorization, nil)))
	assert.Equal(t, ledger.TransactionCharge,
		sessionTransactionType(acceptedSessionDetails(monext.TransactionAuthorizationAndCapture, nil)))
	assert.Equal(t, ledger.TransactionCharge,
		sessionTransactionType(&monext.SessionDetails{Result: &monext.Result{Title: monext.ResultAccepted}}))
}
