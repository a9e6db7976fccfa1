package payments

import "github.com/commercekit/monext-connector/internal/monext"

// Disqualifying associated-transaction types per modification. A capture or
// cancel is invalid once the authorization was cancelled, reset or already
// captured; a refund only once the authorization was cancelled or reset.
var (
	captureDisqualifiers = []monext.TransactionType{
		monext.TransactionCancelAuthorization,
		monext.TransactionReset,
		monext.TransactionCapture,
		monext.TransactionAuthorizationAndCapture,
	}
	cancelDisqualifiers = captureDisqualifiers
	refundDisqualifiers = []monext.TransactionType{
		monext.TransactionCancelAuthorization,
		monext.TransactionReset,
	}
)

// hasSuccessfulTransactionOfType reports whether any associated transaction
// has one of the given types AND status OK. Only successful entries count:
// a failed capture attempt does not block a later one.
func hasSuccessfulTransactionOfType(assoc []monext.AssociatedTransaction, types []monext.TransactionType) bool {
	for _, tx := range assoc {
		if tx.Status != monext.StatusOK {
			continue
		}
		for _, t := range types {
			if tx.Type == t {
				return true
			}
		}
	}
	return false
}

// findCaptureTransaction locates the associated transaction that moved the
// money: a CAPTURE or a direct AUTHORIZATION_AND_CAPTURE.
func findCaptureTransaction(assoc []monext.AssociatedTransaction) *monext.AssociatedTransaction {
	for i := range assoc {
		if assoc[i].Type == monext.TransactionCapture || assoc[i].Type == monext.TransactionAuthorizationAndCapture {
			return &assoc[i]
		}
	}
	return nil
}

// refundedAmount sums the successfully refunded minor units.
func refundedAmount(assoc []monext.AssociatedTransaction) int64 {
	var sum int64
	for _, tx := range assoc {
		if tx.Type == monext.TransactionRefund && tx.Status == monext.StatusOK {
			sum += tx.Amount
		}
	}
	return sum
}
