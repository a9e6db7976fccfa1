package payments

import "context"

// resolveEnvironment maps a store to its Monext operating environment.
//
// With neither a store key nor a payment id it falls back to the default:
// the literal, or the first map value for per-store configuration. Given a
// payment id but no store key, the owning cart is looked up to obtain one.
// An empty result is valid and means "use the PSP default routing".
func (s *Service) resolveEnvironment(ctx context.Context, storeKey, paymentID string) (string, error) {
	if storeKey == "" && paymentID == "" {
		return s.environmentCfg.Default(), nil
	}

	if storeKey == "" {
		carts, err := s.ledger.GetCartByPaymentID(ctx, paymentID)
		if err != nil {
			return "", err
		}
		if len(carts.Results) > 0 && carts.Results[0].Store != nil {
			storeKey = carts.Results[0].Store.Key
		}
	}

	return s.environmentCfg.Resolve(storeKey), nil
}
