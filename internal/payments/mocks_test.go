package payments

import (
	"context"
	"sync"

	"github.com/commercekit/monext-connector/internal/ledger"
	"github.com/commercekit/monext-connector/internal/monext"
)

// mockLedger implements LedgerClient with overridable functions. Updates
// honor the IfFirstTransactionState precondition the way the real ledger
// does, so the reconciliation guard is exercised for real.
type mockLedger struct {
	mu       sync.Mutex
	payments map[string]*ledger.Payment
	carts    map[string]*ledger.Cart

	GetCartFn            func(ctx context.Context, cartID string) (*ledger.Cart, error)
	GetCartByPaymentIDFn func(ctx context.Context, paymentID string) (*ledger.CartPagedQueryResponse, error)
	GetCustomerByIDFn    func(ctx context.Context, customerID string) (*ledger.Customer, error)
	CreatePaymentFn      func(ctx context.Context, draft ledger.PaymentDraft) (*ledger.Payment, error)
	UpdatePaymentFn      func(ctx context.Context, paymentID string, update ledger.PaymentUpdate) (*ledger.Payment, error)

	updates         []ledger.PaymentUpdate
	addPaymentCalls int
}

func newMockLedger() *mockLedger {
	return &mockLedger{
		payments: make(map[string]*ledger.Payment),
		carts:    make(map[string]*ledger.Cart),
	}
}

func (m *mockLedger) GetCart(ctx context.Context, cartID string) (*ledger.Cart, error) {
	if m.GetCartFn != nil {
		return m.GetCartFn(ctx, cartID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.carts[cartID]; ok {
		return c, nil
	}
	return nil, &ledger.APIError{StatusCode: 404, Message: "cart not found"}
}

func (m *mockLedger) GetCartByPaymentID(ctx context.Context, paymentID string) (*ledger.CartPagedQueryResponse, error) {
	if m.GetCartByPaymentIDFn != nil {
		return m.GetCartByPaymentIDFn(ctx, paymentID)
	}
	return &ledger.CartPagedQueryResponse{}, nil
}

func (m *mockLedger) GetCustomerByID(ctx context.Context, customerID string) (*ledger.Customer, error) {
	if m.GetCustomerByIDFn != nil {
		return m.GetCustomerByIDFn(ctx, customerID)
	}
	return &ledger.Customer{ID: customerID}, nil
}

func (m *mockLedger) CreatePayment(ctx context.Context, draft ledger.PaymentDraft) (*ledger.Payment, error) {
	if m.CreatePaymentFn != nil {
		return m.CreatePaymentFn(ctx, draft)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	p := &ledger.Payment{
		ID:            "payment-1",
		Version:       1,
		AmountPlanned: draft.AmountPlanned,
		PaymentMethodInfo: ledger.PaymentMethodInfo{
			PaymentInterface: draft.PaymentInterface,
		},
	}
	m.payments[p.ID] = p
	return p, nil
}

func (m *mockLedger) AddPaymentToCart(ctx context.Context, cartID string, cartVersion int64, paymentID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.addPaymentCalls++
	return nil
}

func (m *mockLedger) GetPayment(ctx context.Context, paymentID string) (*ledger.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.payments[paymentID]; ok {
		return p, nil
	}
	return nil, &ledger.APIError{StatusCode: 404, Message: "payment not found"}
}

func (m *mockLedger) UpdatePayment(ctx context.Context, paymentID string, update ledger.PaymentUpdate) (*ledger.Payment, error) {
	if m.UpdatePaymentFn != nil {
		return m.UpdatePaymentFn(ctx, paymentID, update)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.payments[paymentID]
	if !ok {
		return nil, &ledger.APIError{StatusCode: 404, Message: "payment not found"}
	}

	if update.IfFirstTransactionState != "" {
		if len(p.Transactions) == 0 || p.Transactions[0].State != update.IfFirstTransactionState {
			return nil, &ledger.APIError{StatusCode: 409, Message: "transaction state precondition failed"}
		}
	}

	m.updates = append(m.updates, update)
	if update.PSPReference != "" {
		p.InterfaceID = update.PSPReference
	}
	if update.PaymentMethod != "" {
		p.PaymentMethodInfo.Method = update.PaymentMethod
	}
	if update.Transaction != nil {
		tx := ledger.Transaction{
			Type:          update.Transaction.Type,
			Amount:        update.Transaction.Amount,
			InteractionID: update.Transaction.InteractionID,
			State:         update.Transaction.State,
		}
		if update.IfFirstTransactionState != "" && len(p.Transactions) > 0 {
			// Terminal state lands on the guarded transaction.
			p.Transactions[0] = tx
		} else {
			p.Transactions = append(p.Transactions, tx)
		}
	}
	p.Version++
	return p, nil
}

func (m *mockLedger) Ping(ctx context.Context) error {
	return nil
}

func (m *mockLedger) lastUpdate() ledger.PaymentUpdate {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.updates[len(m.updates)-1]
}

// mockMonext implements MonextClient with overridable functions and call
// counters.
type mockMonext struct {
	mu sync.Mutex

	HealthCheckFn           func(ctx context.Context, environment string) error
	CreateSessionFn         func(ctx context.Context, payload *monext.Session, environment string) (*monext.SessionResponse, error)
	GetSessionDetailsFn     func(ctx context.Context, sessionID, environment string) *monext.SessionDetails
	GetTransactionDetailsFn func(ctx context.Context, transactionID, environment string) *monext.TransactionDetails
	CaptureTransactionFn    func(ctx context.Context, transactionID string, payload monext.ModificationRequest, environment string) (*monext.TransactionResponse, error)
	CancelTransactionFn     func(ctx context.Context, transactionID string, payload monext.ModificationRequest, environment string) (*monext.TransactionResponse, error)
	RefundTransactionFn     func(ctx context.Context, transactionID string, payload monext.ModificationRequest, environment string) (*monext.TransactionResponse, error)

	sessionDetailCalls int
	captureCalls       int
	cancelCalls        int
	refundCalls        int
}

func (m *mockMonext) HealthCheck(ctx context.Context, environment string) error {
	if m.HealthCheckFn != nil {
		return m.HealthCheckFn(ctx, environment)
	}
	return nil
}

func (m *mockMonext) CreateSession(ctx context.Context, payload *monext.Session, environment string) (*monext.SessionResponse, error) {
	return m.CreateSessionFn(ctx, payload, environment)
}

func (m *mockMonext) GetSessionDetails(ctx context.Context, sessionID, environment string) *monext.SessionDetails {
	m.mu.Lock()
	m.sessionDetailCalls++
	m.mu.Unlock()
	return m.GetSessionDetailsFn(ctx, sessionID, environment)
}

func (m *mockMonext) GetTransactionDetails(ctx context.Context, transactionID, environment string) *monext.TransactionDetails {
	return m.GetTransactionDetailsFn(ctx, transactionID, environment)
}

func (m *mockMonext) CaptureTransaction(ctx context.Context, transactionID string, payload monext.ModificationRequest, environment string) (*monext.TransactionResponse, error) {
	m.mu.Lock()
	m.captureCalls++
	m.mu.Unlock()
	return m.CaptureTransactionFn(ctx, transactionID, payload, environment)
}

func (m *mockMonext) CancelTransaction(ctx context.Context, transactionID string, payload monext.ModificationRequest, environment string) (*monext.TransactionResponse, error) {
	m.mu.Lock()
	m.cancelCalls++
	m.mu.Unlock()
	return m.CancelTransactionFn(ctx, transactionID, payload, environment)
}

func (m *mockMonext) RefundTransaction(ctx context.Context, transactionID string, payload monext.ModificationRequest, environment string) (*monext.TransactionResponse, error) {
	m.mu.Lock()
	m.refundCalls++
	m.mu.Unlock()
	return m.RefundTransactionFn(ctx, transactionID, payload, environment)
}
