package payments

import (
	"context"

	"github.com/commercekit/monext-connector/internal/ledger"
	"github.com/commercekit/monext-connector/internal/monext"
)

// LedgerClient is the port for the commerce ledger system of record.
type LedgerClient interface {
	GetCart(ctx context.Context, cartID string) (*ledger.Cart, error)
	GetCartByPaymentID(ctx context.Context, paymentID string) (*ledger.CartPagedQueryResponse, error)
	GetCustomerByID(ctx context.Context, customerID string) (*ledger.Customer, error)
	CreatePayment(ctx context.Context, draft ledger.PaymentDraft) (*ledger.Payment, error)
	AddPaymentToCart(ctx context.Context, cartID string, cartVersion int64, paymentID string) error
	GetPayment(ctx context.Context, paymentID string) (*ledger.Payment, error)
	UpdatePayment(ctx context.Context, paymentID string, update ledger.PaymentUpdate) (*ledger.Payment, error)
	Ping(ctx context.Context) error
}

// MonextClient is the port for the Monext checkout API. The two detail
// lookups never fail: on any error they return a problem document with a
// non-ACCEPTED title, which callers treat as a failure outcome.
type MonextClient interface {
	HealthCheck(ctx context.Context, environment string) error
	CreateSession(ctx context.Context, payload *monext.Session, environment string) (*monext.SessionResponse, error)
	GetSessionDetails(ctx context.Context, sessionID, environment string) *monext.SessionDetails
	GetTransactionDetails(ctx context.Context, transactionID, environment string) *monext.TransactionDetails
	CaptureTransaction(ctx context.Context, transactionID string, payload monext.ModificationRequest, environment string) (*monext.TransactionResponse, error)
	CancelTransaction(ctx context.Context, transactionID string, payload monext.ModificationRequest, environment string) (*monext.TransactionResponse, error)
	RefundTransaction(ctx context.Context, transactionID string, payload monext.ModificationRequest, environment string) (*monext.TransactionResponse, error)
}
