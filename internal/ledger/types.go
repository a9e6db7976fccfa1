package ledger

// TransactionType is a ledger payment transaction type.
type TransactionType string

const (
	TransactionAuthorization       TransactionType = "Authorization"
	TransactionCancelAuthorization TransactionType = "CancelAuthorization"
	TransactionCharge              TransactionType = "Charge"
	TransactionRefund              TransactionType = "Refund"
	TransactionChargeback          TransactionType = "Chargeback"
)

// TransactionState is the lifecycle state of a ledger transaction.
type TransactionState string

const (
	StateInitial TransactionState = "Initial"
	StatePending TransactionState = "Pending"
	StateSuccess TransactionState = "Success"
	StateFailure TransactionState = "Failure"
)

// Money is an amount in minor units of the given currency.
type Money struct {
	CentAmount   int64  `json:"centAmount"`
	CurrencyCode string `json:"currencyCode"`
}

type Address struct {
	Title                string `json:"title,omitempty"`
	Salutation           string `json:"salutation,omitempty"`
	FirstName            string `json:"firstName,omitempty"`
	LastName             string `json:"lastName,omitempty"`
	Email                string `json:"email,omitempty"`
	Mobile               string `json:"mobile,omitempty"`
	StreetNumber         string `json:"streetNumber,omitempty"`
	StreetName           string `json:"streetName,omitempty"`
	AdditionalStreetInfo string `json:"additionalStreetInfo,omitempty"`
	City                 string `json:"city,omitempty"`
	PostalCode           string `json:"postalCode,omitempty"`
	Country              string `json:"country,omitempty"`
}

type TaxRate struct {
	// Fractional rate, e.g. 0.2 for 20%.
	Amount float64 `json:"amount"`
}

type ProductVariant struct {
	SKU string `json:"sku,omitempty"`
}

type LineItem struct {
	ID         string         `json:"id"`
	Variant    ProductVariant `json:"variant"`
	Quantity   int64          `json:"quantity"`
	TotalPrice Money          `json:"totalPrice"`
	TaxRate    *TaxRate       `json:"taxRate,omitempty"`
}

type ShippingInfo struct {
	Price              Money  `json:"price"`
	ShippingMethodName string `json:"shippingMethodName,omitempty"`
}

type DiscountOnTotalPrice struct {
	DiscountedAmount Money `json:"discountedAmount"`
}

type StoreRef struct {
	Key string `json:"key"`
}

type Cart struct {
	ID                   string                `json:"id"`
	Version              int64                 `json:"version"`
	CustomerID           string                `json:"customerId,omitempty"`
	AnonymousID          string                `json:"anonymousId,omitempty"`
	Store                *StoreRef             `json:"store,omitempty"`
	Country              string                `json:"country,omitempty"`
	LineItems            []LineItem            `json:"lineItems"`
	TotalPrice           Money                 `json:"totalPrice"`
	DiscountOnTotalPrice *DiscountOnTotalPrice `json:"discountOnTotalPrice,omitempty"`
	BillingAddress       *Address              `json:"billingAddress,omitempty"`
	ShippingAddress      *Address              `json:"shippingAddress,omitempty"`
	ShippingInfo         *ShippingInfo         `json:"shippingInfo,omitempty"`
}

// CartPagedQueryResponse is the paged result of a cart query.
type CartPagedQueryResponse struct {
	Count   int64  `json:"count"`
	Total   int64  `json:"total"`
	Results []Cart `json:"results"`
}

type Customer struct {
	ID          string `json:"id"`
	Title       string `json:"title,omitempty"`
	Salutation  string `json:"salutation,omitempty"`
	FirstName   string `json:"firstName,omitempty"`
	LastName    string `json:"lastName,omitempty"`
	Email       string `json:"email,omitempty"`
	DateOfBirth string `json:"dateOfBirth,omitempty"`
}

type PaymentMethodInfo struct {
	PaymentInterface string `json:"paymentInterface,omitempty"`
	Method           string `json:"method,omitempty"`
}

type Transaction struct {
	ID            string           `json:"id,omitempty"`
	Type          TransactionType  `json:"type"`
	Amount        Money            `json:"amount"`
	InteractionID string           `json:"interactionId,omitempty"`
	State         TransactionState `json:"state"`
}

// Payment is the ledger payment record. Transactions are ordered: the first
// one is created at session initiation and carries the reconciliation state.
type Payment struct {
	ID                string            `json:"id"`
	Version           int64             `json:"version"`
	AmountPlanned     Money             `json:"amountPlanned"`
	InterfaceID       string            `json:"interfaceId,omitempty"`
	PaymentMethodInfo PaymentMethodInfo `json:"paymentMethodInfo"`
	Transactions      []Transaction     `json:"transactions"`
}

// PaymentDraft creates a new payment. Exactly one of CustomerID and
// AnonymousID is set, matching the cart's ownership.
type PaymentDraft struct {
	AmountPlanned    Money  `json:"amountPlanned"`
	PaymentInterface string `json:"paymentInterface,omitempty"`
	CustomerID       string `json:"customerId,omitempty"`
	AnonymousID      string `json:"anonymousId,omitempty"`
}

// TransactionDraft appends a transaction to a payment.
type TransactionDraft struct {
	Type          TransactionType  `json:"type"`
	Amount        Money            `json:"amount"`
	InteractionID string           `json:"interactionId,omitempty"`
	State         TransactionState `json:"state"`
}

// PaymentUpdate updates a payment and appends a transaction in one call.
// When IfFirstTransactionState is set the ledger applies the update only if
// the payment's first transaction is currently in that state; otherwise it
// answers with a conflict. This is the atomic variant of the reconciliation
// guard: two racing reconciliations cannot both commit.
type PaymentUpdate struct {
	PSPReference            string            `json:"pspReference,omitempty"`
	PaymentMethod           string            `json:"paymentMethod,omitempty"`
	Transaction             *TransactionDraft `json:"transaction,omitempty"`
	IfFirstTransactionState TransactionState  `json:"ifFirstTransactionState,omitempty"`
}
