package payments

import (
	"fmt"
	"math"

	"github.com/commercekit/monext-connector/internal/ledger"
	"github.com/commercekit/monext-connector/internal/monext"
)

// privateDataPaymentID keys the ledger payment id inside the session's
// private data so Monext echoes it back on every detail lookup.
const privateDataPaymentID = "ledgerPaymentId"

func lineItemsToItems(lineItems []ledger.LineItem) []monext.Item {
	items := make([]monext.Item, 0, len(lineItems))
	for _, li := range lineItems {
		item := monext.Item{
			Reference: li.Variant.SKU,
			Price:     li.TotalPrice.CentAmount,
			Quantity:  li.Quantity,
		}
		if li.TaxRate != nil {
			// Monext expects the rate in 1/10000 units, e.g. 2000 for 20%.
			item.TaxRate = int64(math.Floor(li.TaxRate.Amount * 10000))
		}
		items = append(items, item)
	}
	return items
}

func addressFromCart(a *ledger.Address) *monext.Address {
	if a == nil {
		return nil
	}
	title := a.Title
	if title == "" {
		title = a.Salutation
	}
	return &monext.Address{
		Title:        title,
		FirstName:    a.FirstName,
		LastName:     a.LastName,
		Email:        a.Email,
		Mobile:       a.Mobile,
		StreetNumber: a.StreetNumber,
		Street:       a.StreetName,
		Complement:   a.AdditionalStreetInfo,
		City:         a.City,
		Zip:          a.PostalCode,
		Country:      a.Country,
	}
}

// buildSessionPayload assembles the create-session request from the ledger
// cart, payment and customer. The return and notification URLs point back at
// this connector and embed the ledger payment id plus the caller's session
// id, so both callback channels can locate the payment.
func (s *Service) buildSessionPayload(
	payment *ledger.Payment,
	cart *ledger.Cart,
	customer *ledger.Customer,
	sessionID string,
	languageCode string,
	captureMode string,
) *monext.Session {
	storeKey := ""
	if cart.Store != nil {
		storeKey = cart.Store.Key
	}

	if languageCode == "" {
		languageCode = defaultLanguageCode
	}

	payload := &monext.Session{
		PointOfSaleReference: s.pointOfSaleCfg.Resolve(storeKey),
		ReturnURL:            fmt.Sprintf("%s/return?paymentReference=%s&sessionID=%s", s.processorURL, payment.ID, sessionID),
		NotificationURL:      fmt.Sprintf("%s/notification/%s?sessionID=%s", s.processorURL, payment.ID, sessionID),
		LanguageCode:         languageCode,
		Order: monext.Order{
			Reference: cart.ID,
			Amount:    cart.TotalPrice.CentAmount,
			Currency:  cart.TotalPrice.CurrencyCode,
			Origin:    "E_COM",
			Country:   cart.Country,
			Items:     lineItemsToItems(cart.LineItems),
		},
		Payment: &monext.Payment{
			PaymentType: monext.PaymentTypeOneOff,
			Capture:     captureMode,
			Amount:      payment.AmountPlanned.CentAmount,
		},
		PrivateData: map[string]string{
			privateDataPaymentID: payment.ID,
		},
	}

	if cart.DiscountOnTotalPrice != nil {
		payload.Order.Discount = cart.DiscountOnTotalPrice.DiscountedAmount.CentAmount
	}

	buyer := &monext.Buyer{LegalStatus: "PRIVATE"}
	if customer != nil {
		buyer.ID = customer.ID
		buyer.FirstName = customer.FirstName
		buyer.LastName = customer.LastName
		buyer.Email = customer.Email
		buyer.BirthDate = customer.DateOfBirth
		buyer.Title = customer.Title
		if buyer.Title == "" {
			buyer.Title = customer.Salutation
		}
	}
	buyer.BillingAddress = addressFromCart(cart.BillingAddress)
	payload.Buyer = buyer

	delivery := &monext.Delivery{}
	if cart.ShippingInfo != nil {
		delivery.Charge = cart.ShippingInfo.Price.CentAmount
		delivery.Provider = cart.ShippingInfo.ShippingMethodName
	}
	delivery.Address = addressFromCart(cart.ShippingAddress)
	if cart.ShippingInfo != nil || cart.ShippingAddress != nil {
		payload.Delivery = delivery
	}

	return payload
}

// captureMode resolves the configured capture behavior for the cart's store.
func (s *Service) captureMode(cart *ledger.Cart) string {
	storeKey := ""
	if cart.Store != nil {
		storeKey = cart.Store.Key
	}
	return s.captureTypeCfg.Resolve(storeKey)
}
