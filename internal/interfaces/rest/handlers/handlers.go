package handlers

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/commercekit/monext-connector/internal/ledger"
	"github.com/commercekit/monext-connector/internal/payments"
)

// PaymentService is what the HTTP surface needs from the reconciliation
// core.
type PaymentService interface {
	CreatePayment(ctx context.Context, req payments.CreatePaymentRequest) (*payments.CreatePaymentResult, error)
	ConfirmPayment(ctx context.Context, req payments.ConfirmRequest) (*payments.ConfirmResult, error)
	NotifyPayment(ctx context.Context, req payments.NotificationRequest) (*payments.NotificationResult, error)
	CapturePayment(ctx context.Context, req payments.CaptureRequest) (*payments.ModificationResult, error)
	CancelPayment(ctx context.Context, req payments.CancelRequest) (*payments.ModificationResult, error)
	RefundPayment(ctx context.Context, req payments.RefundRequest) (*payments.ModificationResult, error)
	RecordModification(ctx context.Context, paymentID string, kind payments.ModificationKind, amount ledger.Money, result *payments.ModificationResult) error
	ConfigSummary() payments.ConfigSummary
	SupportedComponents() []payments.Component
	Status(ctx context.Context, timeout time.Duration) payments.StatusReport
}

type Handlers struct {
	service       PaymentService
	statusTimeout time.Duration
	logger        *slog.Logger
}

func NewHandlers(service PaymentService, statusTimeout time.Duration, logger *slog.Logger) *Handlers {
	return &Handlers{
		service:       service,
		statusTimeout: statusTimeout,
		logger:        logger,
	}
}

// Routes mounts the connector surface. Session-header verification and
// authentication middleware sit in front of these routes and are not part
// of this package.
func (h *Handlers) Routes(r chi.Router) {
	r.Post("/payment", h.createPayment)
	r.Get("/notification/{paymentID}", h.notifyPayment)
	r.Get("/return", h.confirmPayment)

	r.Route("/operations", func(r chi.Router) {
		r.Get("/config", h.getConfig)
		r.Get("/status", h.getStatus)
		r.Get("/payment-components", h.getComponents)
		r.Post("/payment-intents/{paymentID}", h.paymentIntent)
	})
}
