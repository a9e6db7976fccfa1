package payments

import (
	"context"

	"github.com/commercekit/monext-connector/internal/ledger"
	"github.com/commercekit/monext-connector/internal/monext"
)

// CreatePayment creates a ledger payment for the caller's cart, opens a
// Monext checkout session tied 1:1 to it, and records a single Initial
// transaction. The browser is always given somewhere to go: when the PSP
// call fails the payment is marked failed and the redirect degrades to the
// merchant return URL instead of surfacing the error.
func (s *Service) CreatePayment(ctx context.Context, req CreatePaymentRequest) (*CreatePaymentResult, error) {
	cart, err := s.ledger.GetCart(ctx, req.Cart.CartID)
	if err != nil {
		return nil, err
	}

	var customer *ledger.Customer
	if cart.CustomerID != "" {
		customer, err = s.ledger.GetCustomerByID(ctx, cart.CustomerID)
		if err != nil {
			return nil, err
		}
	}

	paymentInterface := req.Cart.PaymentInterface
	if paymentInterface == "" {
		paymentInterface = LabelMonext
	}

	draft := ledger.PaymentDraft{
		AmountPlanned:    cart.TotalPrice,
		PaymentInterface: paymentInterface,
	}
	if cart.CustomerID != "" {
		draft.CustomerID = cart.CustomerID
	} else if cart.AnonymousID != "" {
		draft.AnonymousID = cart.AnonymousID
	}

	payment, err := s.ledger.CreatePayment(ctx, draft)
	if err != nil {
		return nil, err
	}

	if err := s.ledger.AddPaymentToCart(ctx, cart.ID, cart.Version, payment.ID); err != nil {
		return nil, err
	}

	captureMode := s.captureMode(cart)
	payload := s.buildSessionPayload(payment, cart, customer, req.Cart.SessionID, req.LanguageCode, captureMode)

	storeKey := ""
	if cart.Store != nil {
		storeKey = cart.Store.Key
	}
	environment, err := s.resolveEnvironment(ctx, storeKey, "")
	if err != nil {
		return nil, err
	}

	sessionResp, err := s.monext.CreateSession(ctx, payload, environment)
	if err != nil {
		s.logger.Error("monext session creation failed", "payment_id", payment.ID, "error", err)
		return s.failPaymentCreation(ctx, payment, req)
	}

	transactionType := ledger.TransactionAuthorization
	if captureMode == monext.CaptureAutomatic {
		transactionType = ledger.TransactionCharge
	}

	_, err = s.ledger.UpdatePayment(ctx, payment.ID, ledger.PaymentUpdate{
		PSPReference: sessionResp.SessionID,
		Transaction: &ledger.TransactionDraft{
			Type:          transactionType,
			Amount:        payment.AmountPlanned,
			InteractionID: sessionResp.SessionID,
			State:         ledger.StateInitial,
		},
	})
	if err != nil {
		return nil, err
	}

	return &CreatePaymentResult{RedirectURL: sessionResp.RedirectURL}, nil
}

// failPaymentCreation records a Failure transaction and redirects the buyer
// back to the merchant. PSP errors never propagate to the HTTP caller on
// this path.
func (s *Service) failPaymentCreation(ctx context.Context, payment *ledger.Payment, req CreatePaymentRequest) (*CreatePaymentResult, error) {
	_, err := s.ledger.UpdatePayment(ctx, payment.ID, ledger.PaymentUpdate{
		PaymentMethod: req.PaymentMethod,
		Transaction: &ledger.TransactionDraft{
			Type:   ledger.TransactionAuthorization,
			Amount: payment.AmountPlanned,
			State:  ledger.StateFailure,
		},
	})
	if err != nil {
		return nil, err
	}

	return &CreatePaymentResult{
		RedirectURL: s.merchantRedirectURL(payment.ID, req.Cart.MerchantReturnURL),
	}, nil
}
