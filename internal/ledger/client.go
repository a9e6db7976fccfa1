package ledger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/google/uuid"

	"github.com/commercekit/monext-connector/internal/config"
	"github.com/commercekit/monext-connector/pkg/metrics"
)

// Client talks to the commerce ledger, the system of record for carts and
// payments. The connector only reads carts and customers, and creates or
// appends to payments; it never removes anything.
type Client struct {
	baseURL    string
	authToken  string
	httpClient *http.Client
}

func NewClient(cfg config.LedgerConfig) *Client {
	return &Client{
		baseURL:   cfg.BaseURL,
		authToken: cfg.AuthToken,
		httpClient: &http.Client{
			Timeout: cfg.ConnTimeout,
		},
	}
}

func (c *Client) GetCart(ctx context.Context, cartID string) (*Cart, error) {
	u := fmt.Sprintf("%s/carts/%s", c.baseURL, cartID)
	return send[struct{}, Cart](c, ctx, http.MethodGet, u, "get_cart", nil)
}

// GetCartByPaymentID queries carts whose payment info references the given
// payment. The ledger answers with a paged list; callers use the first
// result.
func (c *Client) GetCartByPaymentID(ctx context.Context, paymentID string) (*CartPagedQueryResponse, error) {
	where := fmt.Sprintf(`paymentInfo(payments(typeId="payment" and id="%s"))`, paymentID)
	u := fmt.Sprintf("%s/carts?where=%s", c.baseURL, url.QueryEscape(where))
	return send[struct{}, CartPagedQueryResponse](c, ctx, http.MethodGet, u, "get_cart_by_payment", nil)
}

func (c *Client) GetCustomerByID(ctx context.Context, customerID string) (*Customer, error) {
	u := fmt.Sprintf("%s/customers/%s", c.baseURL, customerID)
	return send[struct{}, Customer](c, ctx, http.MethodGet, u, "get_customer", nil)
}

func (c *Client) CreatePayment(ctx context.Context, draft PaymentDraft) (*Payment, error) {
	u := fmt.Sprintf("%s/payments", c.baseURL)
	return send[PaymentDraft, Payment](c, ctx, http.MethodPost, u, "create_payment", &draft)
}

// AddPaymentToCart links a payment to its cart.
func (c *Client) AddPaymentToCart(ctx context.Context, cartID string, cartVersion int64, paymentID string) error {
	u := fmt.Sprintf("%s/carts/%s/payments", c.baseURL, cartID)
	body := struct {
		Version   int64  `json:"version"`
		PaymentID string `json:"paymentId"`
	}{Version: cartVersion, PaymentID: paymentID}

	_, err := send[struct {
		Version   int64  `json:"version"`
		PaymentID string `json:"paymentId"`
	}, Cart](c, ctx, http.MethodPost, u, "add_payment_to_cart", &body)
	return err
}

func (c *Client) GetPayment(ctx context.Context, paymentID string) (*Payment, error) {
	u := fmt.Sprintf("%s/payments/%s", c.baseURL, paymentID)
	return send[struct{}, Payment](c, ctx, http.MethodGet, u, "get_payment", nil)
}

// UpdatePayment applies a payment update. When the update carries an
// IfFirstTransactionState precondition and it does not hold, the ledger
// answers 409 and the error satisfies IsConflict.
func (c *Client) UpdatePayment(ctx context.Context, paymentID string, update PaymentUpdate) (*Payment, error) {
	u := fmt.Sprintf("%s/payments/%s", c.baseURL, paymentID)
	return send[PaymentUpdate, Payment](c, ctx, http.MethodPost, u, "update_payment", &update)
}

// Ping probes the ledger API; used by the status aggregation.
func (c *Client) Ping(ctx context.Context) error {
	u := fmt.Sprintf("%s/health", c.baseURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.authToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.IncLedgerRequest("ping", "error")
		return fmt.Errorf("error making request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.IncLedgerRequest("ping", "error")
		return &APIError{StatusCode: resp.StatusCode, Message: "ledger health check failed"}
	}

	metrics.IncLedgerRequest("ping", "ok")
	return nil
}

func send[Req any, Resp any](c *Client, ctx context.Context, method, url, endpoint string, reqBody *Req) (*Resp, error) {
	var bodyReader io.Reader
	if reqBody != nil {
		jsonData, err := json.Marshal(reqBody)
		if err != nil {
			return nil, fmt.Errorf("error marshalling json: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}

	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.authToken)
	httpReq.Header.Set("X-Request-ID", uuid.NewString())
	if reqBody != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		metrics.IncLedgerRequest(endpoint, "error")
		return nil, fmt.Errorf("error making request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.IncLedgerRequest(endpoint, "error")
		body, _ := io.ReadAll(resp.Body)
		var errBody apiErrorBody
		if err := json.Unmarshal(body, &errBody); err != nil {
			return nil, fmt.Errorf("ledger returned status %d: %s", resp.StatusCode, string(body))
		}
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Code:       errBody.Err,
			Message:    errBody.Message,
		}
	}

	var apiResp Resp
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		metrics.IncLedgerRequest(endpoint, "error")
		return nil, fmt.Errorf("error decoding json response: %w", err)
	}

	metrics.IncLedgerRequest(endpoint, "ok")
	return &apiResp, nil
}
