package paygate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

const (
	currencyCacheKey = "paygate:currencies"
	currencyCacheTTL = 10 * time.Minute
)

// Client talks to the Paygate hosted-invoice API. Payment initiation
// creates an invoice; settlement arrives later via webhook.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	cache   *gocache.Cache
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 30 * time.Second},
		cache:   gocache.New(currencyCacheTTL, 2*currencyCacheTTL),
	}
}

type InvoiceRequest struct {
	OrderId     string  `json:"order_id"`
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
	Email       string  `json:"email,omitempty"`
	CallbackURL string  `json:"callback_url"`
	SuccessURL  string  `json:"success_url,omitempty"`
	CancelURL   string  `json:"cancel_url,omitempty"`
}

type Invoice struct {
	TransactionId string  `json:"transaction_id"`
	PaymentURL    string  `json:"payment_url"`
	Status        string  `json:"status"`
	Amount        float64 `json:"amount"`
	Currency      string  `json:"currency"`
}

type Currency struct {
	Code    string `json:"code"`
	Name    string `json:"name"`
	Network string `json:"network,omitempty"`
}

type apiError struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// CreateInvoice registers a payment with the gateway and returns the
// hosted payment page the customer should be redirected to.
func (c *Client) CreateInvoice(ctx context.Context, req *InvoiceRequest) (*Invoice, error) {
	var invoice Invoice
	if err := c.post(ctx, "/api/v1/invoices", req, &invoice); err != nil {
		return nil, err
	}
	if invoice.TransactionId == "" {
		return nil, fmt.Errorf("paygate returned invoice without transaction id")
	}
	return &invoice, nil
}

// Currencies returns the gateway's accepted currency list. The list is
// near-static so responses are cached for a few minutes.
func (c *Client) Currencies(ctx context.Context) ([]Currency, error) {
	if cached, ok := c.cache.Get(currencyCacheKey); ok {
		return cached.([]Currency), nil
	}

	var result struct {
		Currencies []Currency `json:"currencies"`
	}
	if err := c.get(ctx, "/api/v1/currencies", &result); err != nil {
		return nil, err
	}

	c.cache.Set(currencyCacheKey, result.Currencies, gocache.DefaultExpiration)
	return result.Currencies, nil
}

func (c *Client) post(ctx context.Context, path string, payload, out interface{}) error {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.apiKey))

	return c.do(req, out)
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.apiKey))

	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("paygate request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, _ := io.ReadAll(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr apiError
		if json.Unmarshal(bodyBytes, &apiErr) == nil && (apiErr.Message != "" || apiErr.Error != "") {
			msg := apiErr.Message
			if msg == "" {
				msg = apiErr.Error
			}
			return fmt.Errorf("paygate api error (status %d): %s", resp.StatusCode, msg)
		}
		return fmt.Errorf("paygate api error (status %d): %s", resp.StatusCode, string(bodyBytes))
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(bodyBytes, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
