// Package stripe provides read-only integration with the Stripe payment
// service: it lists active payment links with their checkout sessions and
// charges, and flattens them into a sales report.
package stripe

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	stripeapi "github.com/stripe/stripe-go/v82"
)

const (
	// DefaultAPIBaseURL is the production Stripe REST API endpoint.
	DefaultAPIBaseURL = "https://api.stripe.com"
	// pageLimit is the page size requested from every list endpoint.
	pageLimit = "100"
)

// Client wraps an HTTP client for direct calls against the Stripe REST API.
// The secret key is caller-supplied and scoped to this client instance, it is
// never stored anywhere else.
type Client struct {
	key        string
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new Stripe client for the given secret key. An empty
// baseURL selects the production API endpoint.
func NewClient(key, baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultAPIBaseURL
	}
	return &Client{
		key:     key,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// ActivePaymentLinks retrieves every active payment link with its line items
// expanded, following cursor pagination until exhausted.
func (c *Client) ActivePaymentLinks(ctx context.Context) ([]PaymentLink, error) {
	query := url.Values{}
	query.Set("active", "true")
	query.Add("expand[]", "data.line_items")
	return paginate(ctx, c, "/v1/payment_links", query, func(l PaymentLink) string {
		return l.ID
	})
}

// CheckoutSessions retrieves every checkout session of the given payment
// link, with the payment intent and its charges expanded, following cursor
// pagination until exhausted.
func (c *Client) CheckoutSessions(ctx context.Context, paymentLinkID string) ([]CheckoutSession, error) {
	query := url.Values{}
	query.Set("payment_link", paymentLinkID)
	query.Add("expand[]", "data.payment_intent")
	query.Add("expand[]", "data.payment_intent.charges")
	return paginate(ctx, c, "/v1/checkout/sessions", query, func(s CheckoutSession) string {
		return s.ID
	})
}

// get performs an authenticated GET against the API and decodes the JSON
// answer into v. Non-2xx statuses and undecodable payloads are surfaced as
// StripeError values; there are no retries.
func (c *Client) get(ctx context.Context, path string, query url.Values, v any) error {
	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return NewStripeError(ErrCodeRequestFailed, fmt.Sprintf("failed to build request for %s", path), err)
	}
	req.Header.Set("Authorization", "Bearer "+c.key)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return NewStripeError(ErrCodeRequestFailed, fmt.Sprintf("request to %s failed", path), err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return NewStripeError(ErrCodeRequestFailed, fmt.Sprintf("failed to read response from %s", path), err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return NewStripeError(ErrCodeUpstreamStatus,
			fmt.Sprintf("stripe API returned %d %s: %s",
				resp.StatusCode, http.StatusText(resp.StatusCode), upstreamErrorDetail(body)),
			nil)
	}

	if err := json.Unmarshal(body, v); err != nil {
		return NewStripeError(ErrCodeInvalidResponse, fmt.Sprintf("failed to decode response from %s", path), err)
	}
	return nil
}

// upstreamErrorDetail extracts the message from a Stripe error envelope
// ({"error": {...}}), falling back to the raw body text.
func upstreamErrorDetail(body []byte) string {
	var envelope struct {
		Error *stripeapi.Error `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil &&
		envelope.Error != nil && envelope.Error.Msg != "" {
		return envelope.Error.Msg
	}
	return string(body)
}

// paginate repeatedly fetches path until the cursor convention is exhausted:
// each page carries a data array and a has_more flag, and the next cursor is
// the identifier of the last element of the current page. An empty page with
// has_more still set terminates the loop, since no cursor can be derived.
// Pages are fetched strictly sequentially to preserve encounter order.
func paginate[T any](ctx context.Context, c *Client, path string, query url.Values, lastID func(T) string) ([]T, error) {
	var all []T
	cursor := ""
	for {
		q := url.Values{}
		for k, vs := range query {
			q[k] = vs
		}
		q.Set("limit", pageLimit)
		if cursor != "" {
			q.Set("starting_after", cursor)
		}
		var pg page[T]
		if err := c.get(ctx, path, q, &pg); err != nil {
			return nil, err
		}
		all = append(all, pg.Data...)
		if !pg.HasMore || len(pg.Data) == 0 {
			break
		}
		cursor = lastID(pg.Data[len(pg.Data)-1])
	}
	return all, nil
}
