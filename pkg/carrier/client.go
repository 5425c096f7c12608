package carrier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	pkgerrors "github.com/devmarket-mx/tienda-backend/pkg/errors"
	"github.com/shopspring/decimal"
)

const (
	defaultTimeout              = 10 * time.Second
	requestBodyReadLimit  int64 = 1024
)

var errBaseURLRequired = errors.New("carrier base url is required")

// Client wraps the carrier rate-quoting API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// NewClient builds the carrier client for the given base URL.
func NewClient(baseURL, apiKey string, opts ...Option) (*Client, error) {
	trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if trimmed == "" {
		return nil, errBaseURLRequired
	}

	client := &Client{
		baseURL:    trimmed,
		apiKey:     strings.TrimSpace(apiKey),
		httpClient: &http.Client{Timeout: defaultTimeout},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}

	if client.httpClient == nil {
		client.httpClient = &http.Client{Timeout: defaultTimeout}
	}

	return client, nil
}

// QuoteRequest describes the destination sent to the carrier API.
type QuoteRequest struct {
	Street     string `json:"street"`
	ExtNumber  string `json:"ext_number"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

// Rate is one quoted candidate returned by the carrier API.
type Rate struct {
	Total        decimal.Decimal `json:"total"`
	DeliveryDays int             `json:"delivery_days"`
	Carrier      string          `json:"carrier"`
	Service      string          `json:"service"`
	Success      bool            `json:"success"`
}

// Quote requests candidate rates for the destination. The response is decoded
// into typed rates before any caller arithmetic runs; entries that fail
// structural validation are dropped rather than passed through.
func (c *Client) Quote(ctx context.Context, req QuoteRequest) ([]Rate, error) {
	if c == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "carrier client not configured")
	}
	if strings.TrimSpace(req.PostalCode) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "destination postal code is required")
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "marshal quote request")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/cotizar", bytes.NewReader(payload))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "build quote request")
	}

	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "execute quote request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, requestBodyReadLimit))
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg))), "quote request failed")
	}

	var apiResp struct {
		Rates []struct {
			Total        *decimal.Decimal `json:"total"`
			DeliveryDays int              `json:"delivery_days"`
			Carrier      string           `json:"carrier"`
			Service      string           `json:"service"`
			Success      bool             `json:"success"`
		} `json:"rates"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode quote response")
	}
	if apiResp.Rates == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "quote response missing rates")
	}

	rates := make([]Rate, 0, len(apiResp.Rates))
	for _, r := range apiResp.Rates {
		if r.Success && (r.Total == nil || r.Total.IsNegative()) {
			// Successful entry with no usable price is a contract breach;
			// treat it as unsuccessful instead of trusting it.
			r.Success = false
		}
		total := decimal.Zero
		if r.Total != nil {
			total = *r.Total
		}
		rates = append(rates, Rate{
			Total:        total,
			DeliveryDays: r.DeliveryDays,
			Carrier:      r.Carrier,
			Service:      r.Service,
			Success:      r.Success,
		})
	}

	return rates, nil
}
