package monext

// Environment names understood by the Monext checkout API. Anything other
// than "PRODUCTION" (case-insensitive) is routed to the sandbox base path.
const (
	EnvironmentHomologation = "HOMOLOGATION"
	EnvironmentProduction   = "PRODUCTION"
)

// Default base paths for the two Monext operating environments.
const (
	SandboxBasePath    = "https://api-sandbox.retail.monext.com/v1/"
	ProductionBasePath = "https://api.retail.monext.com/v1/"
)

// Session result titles reported by Monext.
const (
	ResultAccepted      = "ACCEPTED"
	ResultRefused       = "REFUSED"
	ResultCancelled     = "CANCELLED"
	ResultInProgress    = "INPROGRESS"
	ResultOnHoldPartner = "ONHOLD_PARTNER"
	ResultPendingRisk   = "PENDING_RISK"
	ResultError         = "ERROR"
)

// Capture modes accepted by the session payment block.
const (
	CaptureAutomatic = "AUTOMATIC"
	CaptureManual    = "MANUAL"
	CaptureDeferred  = "DEFERRED"
)

// TransactionType is the type reported for a Monext transaction or one of
// its associated transactions.
type TransactionType string

const (
	TransactionAuthorization           TransactionType = "AUTHORIZATION"
	TransactionAuthorizationAndCapture TransactionType = "AUTHORIZATION_AND_CAPTURE"
	TransactionCancelAuthorization     TransactionType = "CANCEL_AUTHORIZATION"
	TransactionCapture                 TransactionType = "CAPTURE"
	TransactionRefund                  TransactionType = "REFUND"
	TransactionReset                   TransactionType = "RESET"
)

// Associated transaction statuses.
const (
	StatusOK = "OK"
	StatusKO = "KO"
)

// UsedInstrumentCard is the usedPaymentInstrument value reported when the
// buyer paid by card.
const UsedInstrumentCard = "UsedCard"

// PaymentTypeOneOff is the only payment type this connector creates.
const PaymentTypeOneOff = "ONE_OFF"

// Result is the outcome descriptor attached to session and transaction
// responses.
type Result struct {
	Title  string `json:"title"`
	Code   string `json:"code,omitempty"`
	Detail string `json:"detail,omitempty"`
}

type Item struct {
	Reference string `json:"reference,omitempty"`
	Price     int64  `json:"price,omitempty"`
	Quantity  int64  `json:"quantity,omitempty"`
	Brand     string `json:"brand,omitempty"`
	Category  string `json:"category,omitempty"`
	// Tax rate in 1/10000 units, e.g. 2000 for 20%.
	TaxRate int64 `json:"taxRate,omitempty"`
}

type Order struct {
	Reference string `json:"reference"`
	Amount    int64  `json:"amount"`
	Taxes     int64  `json:"taxes,omitempty"`
	Discount  int64  `json:"discount,omitempty"`
	Currency  string `json:"currency"`
	Date      string `json:"date,omitempty"`
	Origin    string `json:"origin,omitempty"`
	Country   string `json:"country,omitempty"`
	Items     []Item `json:"items,omitempty"`
}

type Payment struct {
	PaymentType         string `json:"paymentType"`
	Capture             string `json:"capture,omitempty"`
	DeferredCaptureDate string `json:"deferredCaptureDate,omitempty"`
	Amount              int64  `json:"amount,omitempty"`
}

type Address struct {
	Title        string `json:"title,omitempty"`
	FirstName    string `json:"firstName,omitempty"`
	LastName     string `json:"lastName,omitempty"`
	Email        string `json:"email,omitempty"`
	Mobile       string `json:"mobile,omitempty"`
	StreetNumber string `json:"streetNumber,omitempty"`
	Street       string `json:"street,omitempty"`
	Complement   string `json:"complement,omitempty"`
	City         string `json:"city,omitempty"`
	Zip          string `json:"zip,omitempty"`
	Country      string `json:"country,omitempty"`
}

type Buyer struct {
	ID             string   `json:"id,omitempty"`
	Title          string   `json:"title,omitempty"`
	FirstName      string   `json:"firstName,omitempty"`
	LastName       string   `json:"lastName,omitempty"`
	Email          string   `json:"email,omitempty"`
	Mobile         string   `json:"mobile,omitempty"`
	BirthDate      string   `json:"birthDate,omitempty"`
	LegalStatus    string   `json:"legalStatus,omitempty"`
	BillingAddress *Address `json:"billingAddress,omitempty"`
}

type Delivery struct {
	Charge   int64    `json:"charge,omitempty"`
	Provider string   `json:"provider,omitempty"`
	Mode     string   `json:"mode,omitempty"`
	Address  *Address `json:"address,omitempty"`
}

// Session is the create-session request payload.
type Session struct {
	PointOfSaleReference string            `json:"pointOfSaleReference"`
	Order                Order             `json:"order"`
	Payment              *Payment          `json:"payment,omitempty"`
	Buyer                *Buyer            `json:"buyer,omitempty"`
	Delivery             *Delivery         `json:"delivery,omitempty"`
	PrivateData          map[string]string `json:"privateData,omitempty"`
	ReturnURL            string            `json:"returnURL"`
	NotificationURL      string            `json:"notificationURL,omitempty"`
	LanguageCode         string            `json:"languageCode,omitempty"`
}

// SessionResponse is the create-session result.
type SessionResponse struct {
	Result      Result `json:"result"`
	SessionID   string `json:"sessionId"`
	RedirectURL string `json:"redirectURL"`
}

type PaymentInstrumentType struct {
	Code string `json:"code,omitempty"`
}

type PaymentInstrumentData struct {
	UsedPaymentInstrument string                `json:"usedPaymentInstrument,omitempty"`
	HolderName            string                `json:"holderName,omitempty"`
	MaskedNumber          string                `json:"maskedNumber,omitempty"`
	Country               string                `json:"country,omitempty"`
	Network               string                `json:"network,omitempty"`
	PaymentInstrumentType PaymentInstrumentType `json:"paymentInstrumentType,omitempty"`
}

// Transaction is a transaction reported under a session or transaction
// detail. Produced by Monext; read-only for this connector.
type Transaction struct {
	ID                    string                 `json:"id,omitempty"`
	Date                  string                 `json:"date,omitempty"`
	Type                  TransactionType        `json:"type,omitempty"`
	Currency              string                 `json:"currency,omitempty"`
	PaymentType           string                 `json:"paymentType,omitempty"`
	Capture               string                 `json:"capture,omitempty"`
	RequestedAmount       int64                  `json:"requestedAmount,omitempty"`
	AuthorizedAmount      int64                  `json:"authorizedAmount,omitempty"`
	PaymentInstrumentData *PaymentInstrumentData `json:"paymentInstrumentData,omitempty"`
}

// AssociatedTransaction is an append-only audit entry recording a later
// operation (capture/cancel/refund/reset) against a transaction.
type AssociatedTransaction struct {
	ID                  string          `json:"id"`
	Date                string          `json:"date,omitempty"`
	Type                TransactionType `json:"type,omitempty"`
	Amount              int64           `json:"amount,omitempty"`
	Status              string          `json:"status,omitempty"`
	OriginTransactionID string          `json:"originTransactionId,omitempty"`
}

// SessionDetails is the get-session-details response. On abnormal sessions
// (user cancellation, expired token) Monext returns a problem document whose
// fields land in Title/Code/Detail instead of Result.
type SessionDetails struct {
	Result       *Result       `json:"result,omitempty"`
	Transactions []Transaction `json:"transactions,omitempty"`
	Order        *Order        `json:"order,omitempty"`
	Buyer        *Buyer        `json:"buyer,omitempty"`
	Delivery     *Delivery     `json:"delivery,omitempty"`

	Title  string `json:"title,omitempty"`
	Code   string `json:"code,omitempty"`
	Detail string `json:"detail,omitempty"`
}

// TransactionDetails is the get-transaction-details response.
type TransactionDetails struct {
	Result                 *Result                 `json:"result,omitempty"`
	Transaction            *Transaction            `json:"transaction,omitempty"`
	AssociatedTransactions []AssociatedTransaction `json:"associatedTransactions,omitempty"`

	Title  string `json:"title,omitempty"`
	Code   string `json:"code,omitempty"`
	Detail string `json:"detail,omitempty"`
}

// ModificationRequest is the body for capture, cancel and refund calls.
type ModificationRequest struct {
	Amount            int64  `json:"amount"`
	Comment           string `json:"comment,omitempty"`
	MerchantReference string `json:"merchantReference,omitempty"`
}

// TransactionResponse is the result of a capture, cancel or refund call.
type TransactionResponse struct {
	Result      Result `json:"result"`
	Transaction struct {
		ID   string `json:"id,omitempty"`
		Date string `json:"date,omitempty"`
		Type string `json:"type,omitempty"`
	} `json:"transaction"`
}
