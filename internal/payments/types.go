package payments

// Labels reported as payment method / component identifiers.
const (
	LabelMonext     = "monext"
	LabelCreditCard = "Credit Card"

	defaultLanguageCode = "EN"
)

// ModificationOutcome is the result of a capture, cancel or refund request.
type ModificationOutcome string

const (
	OutcomeApproved ModificationOutcome = "approved"
	OutcomeRejected ModificationOutcome = "rejected"
)

// ModificationKind names the requested payment modification.
type ModificationKind string

const (
	KindCapture ModificationKind = "capturePayment"
	KindCancel  ModificationKind = "cancelPayment"
	KindRefund  ModificationKind = "refundPayment"
)

// CartContext carries the per-request caller context: which cart the
// checkout session belongs to, the caller's session id (embedded in the
// return/notification URLs) and an optional merchant return URL override.
// Header extraction and session verification happen upstream.
type CartContext struct {
	CartID            string
	SessionID         string
	PaymentInterface  string
	MerchantReturnURL string
}

type CreatePaymentRequest struct {
	Cart          CartContext
	PaymentMethod string
	LanguageCode  string
}

type CreatePaymentResult struct {
	RedirectURL string `json:"redirectURL"`
}

// ConfirmRequest is the browser return-redirect channel.
type ConfirmRequest struct {
	PaymentReference  string
	Token             string
	MerchantReturnURL string
}

type ConfirmResult struct {
	PaymentReference string `json:"paymentReference"`
	ReturnURL        string `json:"returnUrl"`
}

// NotificationRequest is the server-to-server notification channel.
type NotificationRequest struct {
	PaymentID string
	Token     string
}

type NotificationResult struct {
	Status string `json:"status"`
	Type   string `json:"type"`
}

// StatusAlreadyConfirmed is reported when a notification arrives after the
// payment already left its Initial transaction state.
const StatusAlreadyConfirmed = "Already confirmed"

type CaptureRequest struct {
	PaymentID string
	Amount    int64
}

type CancelRequest struct {
	PaymentID string
}

type RefundRequest struct {
	PaymentID string
	Amount    int64
}

// ModificationResult carries the outcome of a modification request. On
// rejection PSPReference is the payment's existing PSP reference, unchanged;
// on approval it is the id of the new PSP transaction.
type ModificationResult struct {
	Outcome      ModificationOutcome `json:"outcome"`
	PSPReference string              `json:"pspReference"`
}

// Component describes a supported payment component.
type Component struct {
	Type string `json:"type"`
}

// CheckResult is one named check inside a status report.
type CheckResult struct {
	Name    string            `json:"name"`
	Status  string            `json:"status"`
	Message string            `json:"message,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}

// StatusReport aggregates the health of the external collaborators.
type StatusReport struct {
	Status   string            `json:"status"`
	Checks   []CheckResult     `json:"checks"`
	Metadata map[string]string `json:"metadata"`
}

// ConfigSummary is the public configuration surface.
type ConfigSummary struct {
	Environment string `json:"environment"`
}
