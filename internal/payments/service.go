package payments

import (
	"log/slog"
	"net/url"

	"github.com/commercekit/monext-connector/internal/config"
)

// Version is reported in status metadata.
const Version = "1.2.0"

// Service is the reconciliation core: it creates Monext checkout sessions
// for ledger payments, collapses the racing return/notification callbacks
// into one ledger state transition, and authorizes capture/cancel/refund
// requests against the PSP transaction history. It holds no durable state;
// both collaborators are systems of record.
type Service struct {
	ledger LedgerClient
	monext MonextClient

	environmentCfg config.StoreScopedValue
	pointOfSaleCfg config.StoreScopedValue
	captureTypeCfg config.StoreScopedValue

	rawEnvironment    string
	processorURL      string
	merchantReturnURL string

	logger *slog.Logger
}

func NewService(
	ledgerClient LedgerClient,
	monextClient MonextClient,
	monextCfg config.MonextConfig,
	urls config.URLConfig,
	logger *slog.Logger,
) *Service {
	return &Service{
		ledger:            ledgerClient,
		monext:            monextClient,
		environmentCfg:    config.ParseStoreScoped(monextCfg.Environment),
		pointOfSaleCfg:    config.ParseStoreScoped(monextCfg.PointOfSaleRef),
		captureTypeCfg:    config.ParseStoreScoped(monextCfg.CaptureType),
		rawEnvironment:    monextCfg.Environment,
		processorURL:      urls.ProcessorURL,
		merchantReturnURL: urls.MerchantReturnURL,
		logger:            logger,
	}
}

// merchantRedirectURL builds the browser destination after checkout: the
// merchant return URL (per-request override, else the configured fallback)
// with the payment reference appended.
func (s *Service) merchantRedirectURL(paymentReference, override string) string {
	base := override
	if base == "" {
		base = s.merchantReturnURL
	}

	u, err := url.Parse(base)
	if err != nil {
		s.logger.Error("invalid merchant return URL", "url", base, "error", err)
		u = &url.URL{}
	}
	q := u.Query()
	q.Set("paymentReference", paymentReference)
	u.RawQuery = q.Encode()
	return u.String()
}
