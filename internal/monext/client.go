package monext

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/commercekit/monext-connector/internal/config"
	"github.com/commercekit/monext-connector/pkg/metrics"
)

// API resource paths relative to the environment base path.
const (
	pathHealthCheck        = "checkout/alive"
	pathCreateSession      = "checkout/sessions"
	pathSessionDetails     = "checkout/sessions/%s"
	pathTransactionDetails = "checkout/transactions/%s"
	pathCapture            = "checkout/transactions/%s/captures"
	pathCancel             = "checkout/transactions/%s/cancels"
	pathRefund             = "checkout/transactions/%s/refunds"
)

// Client talks to the Monext checkout API. The target environment is chosen
// per call: "PRODUCTION" selects the production base path, anything else the
// sandbox one.
type Client struct {
	sandboxURL    string
	productionURL string
	apiKey        string
	httpClient    *http.Client
	logger        *slog.Logger
}

func NewClient(cfg config.MonextConfig, logger *slog.Logger) *Client {
	sandboxURL := cfg.SandboxURL
	if sandboxURL == "" {
		sandboxURL = SandboxBasePath
	}
	productionURL := cfg.ProductionURL
	if productionURL == "" {
		productionURL = ProductionBasePath
	}

	return &Client{
		sandboxURL:    sandboxURL,
		productionURL: productionURL,
		apiKey:        cfg.APIKey,
		httpClient: &http.Client{
			Timeout: cfg.ConnTimeout,
		},
		logger: logger,
	}
}

// HealthCheck probes the checkout/alive endpoint of the given environment.
func (c *Client) HealthCheck(ctx context.Context, environment string) error {
	url := c.resourceURL(environment, pathHealthCheck)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}
	c.setHeaders(req, false)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.IncPSPRequest("health_check", "error")
		return fmt.Errorf("error making request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.IncPSPRequest("health_check", "error")
		return &APIError{StatusCode: resp.StatusCode, Title: ResultError, Detail: "health check failed"}
	}

	metrics.IncPSPRequest("health_check", "ok")
	return nil
}

// CreateSession starts a hosted checkout session. Failures are returned to
// the caller; the payment service degrades them to a failure transaction.
func (c *Client) CreateSession(ctx context.Context, payload *Session, environment string) (*SessionResponse, error) {
	url := c.resourceURL(environment, pathCreateSession)
	return send[Session, SessionResponse](c, ctx, http.MethodPost, url, "create_session", payload)
}

// GetSessionDetails fetches the current state of a session by its token.
// This is a read-only lookup: any failure degrades to a problem document
// with a non-ACCEPTED title, which downstream logic treats as a failure
// outcome instead of an error.
func (c *Client) GetSessionDetails(ctx context.Context, sessionID, environment string) *SessionDetails {
	url := c.resourceURL(environment, fmt.Sprintf(pathSessionDetails, sessionID))

	details, err := send[struct{}, SessionDetails](c, ctx, http.MethodGet, url, "get_session_details", nil)
	if err != nil {
		if apiErr, ok := IsAPIError(err); ok {
			return &SessionDetails{Title: apiErr.Title, Code: apiErr.Code, Detail: apiErr.Detail}
		}
		c.logger.Error("error getting session details", "session_id", sessionID, "error", err)
		return &SessionDetails{Title: ResultError, Detail: "error while getting session details"}
	}
	return details
}

// GetTransactionDetails fetches a transaction and its associated-transaction
// audit trail. Degrades the same way as GetSessionDetails.
func (c *Client) GetTransactionDetails(ctx context.Context, transactionID, environment string) *TransactionDetails {
	url := c.resourceURL(environment, fmt.Sprintf(pathTransactionDetails, transactionID))

	details, err := send[struct{}, TransactionDetails](c, ctx, http.MethodGet, url, "get_transaction_details", nil)
	if err != nil {
		if apiErr, ok := IsAPIError(err); ok {
			return &TransactionDetails{Title: apiErr.Title, Code: apiErr.Code, Detail: apiErr.Detail}
		}
		c.logger.Error("error getting transaction details", "transaction_id", transactionID, "error", err)
		return &TransactionDetails{Title: ResultError, Detail: "error while getting transaction details"}
	}
	return details
}

// CaptureTransaction captures a previously authorized transaction.
func (c *Client) CaptureTransaction(ctx context.Context, transactionID string, payload ModificationRequest, environment string) (*TransactionResponse, error) {
	url := c.resourceURL(environment, fmt.Sprintf(pathCapture, transactionID))
	return send[ModificationRequest, TransactionResponse](c, ctx, http.MethodPost, url, "capture", &payload)
}

// CancelTransaction cancels an authorization.
func (c *Client) CancelTransaction(ctx context.Context, transactionID string, payload ModificationRequest, environment string) (*TransactionResponse, error) {
	url := c.resourceURL(environment, fmt.Sprintf(pathCancel, transactionID))
	return send[ModificationRequest, TransactionResponse](c, ctx, http.MethodPost, url, "cancel", &payload)
}

// RefundTransaction refunds a captured transaction.
func (c *Client) RefundTransaction(ctx context.Context, transactionID string, payload ModificationRequest, environment string) (*TransactionResponse, error) {
	url := c.resourceURL(environment, fmt.Sprintf(pathRefund, transactionID))
	return send[ModificationRequest, TransactionResponse](c, ctx, http.MethodPost, url, "refund", &payload)
}

func (c *Client) resourceURL(environment, resource string) string {
	base := c.sandboxURL
	if strings.EqualFold(environment, EnvironmentProduction) {
		base = c.productionURL
	}
	return base + resource
}

func (c *Client) setHeaders(req *http.Request, hasBody bool) {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Basic "+c.apiKey)
	req.Header.Set("X-Request-ID", uuid.NewString())
	if hasBody {
		req.Header.Set("Content-Type", "application/json")
	}
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
	c.setHeaders(httpReq, reqBody != nil)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		metrics.IncPSPRequest(endpoint, "error")
		return nil, fmt.Errorf("error making request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.IncPSPRequest(endpoint, "error")
		body, _ := io.ReadAll(resp.Body)
		var errBody apiErrorBody
		if err := json.Unmarshal(body, &errBody); err != nil {
			return nil, fmt.Errorf("monext returned status %d: %s", resp.StatusCode, string(body))
		}
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Title:      errBody.Title,
			Code:       errBody.Code,
			Detail:     errBody.Detail,
		}
	}

	var apiResp Resp
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		metrics.IncPSPRequest(endpoint, "error")
		return nil, fmt.Errorf("error decoding json response: %w", err)
	}

	metrics.IncPSPRequest(endpoint, "ok")
	return &apiResp, nil
}
