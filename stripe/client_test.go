package stripe

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	qt "github.com/frankban/quicktest"
	"go.vocdoni.io/dvote/log"
)

func TestMain(m *testing.M) {
	log.Init("debug", "stdout", nil)
	m.Run()
}

// makeLinks builds n sequential payment links starting at offset start.
func makeLinks(start, n int) []PaymentLink {
	links := make([]PaymentLink, 0, n)
	for i := start; i < start+n; i++ {
		links = append(links, PaymentLink{
			ID:     fmt.Sprintf("plink_%03d", i),
			Active: true,
			URL:    fmt.Sprintf("https://buy.stripe.com/%03d", i),
		})
	}
	return links
}

func TestPaginationAccumulatesPages(t *testing.T) {
	c := qt.New(t)

	var calls []url.Values
	var authHeaders []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c.Check(r.Method, qt.Equals, http.MethodGet)
		c.Check(r.URL.Path, qt.Equals, "/v1/payment_links")
		calls = append(calls, r.URL.Query())
		authHeaders = append(authHeaders, r.Header.Get("Authorization"))

		var pg page[PaymentLink]
		if r.URL.Query().Get("starting_after") == "" {
			pg = page[PaymentLink]{Data: makeLinks(0, 100), HasMore: true}
		} else {
			pg = page[PaymentLink]{Data: makeLinks(100, 50), HasMore: false}
		}
		w.Header().Set("Content-Type", "application/json")
		c.Assert(json.NewEncoder(w).Encode(pg), qt.IsNil)
	}))
	defer srv.Close()

	client := NewClient("sk_test_x", srv.URL)
	links, err := client.ActivePaymentLinks(context.Background())
	c.Assert(err, qt.IsNil)

	// 150 records at page size 100 means exactly two calls
	c.Assert(calls, qt.HasLen, 2)
	c.Assert(links, qt.HasLen, 150)
	// order matches page-then-within-page order
	c.Assert(links[0].ID, qt.Equals, "plink_000")
	c.Assert(links[99].ID, qt.Equals, "plink_099")
	c.Assert(links[149].ID, qt.Equals, "plink_149")
	// the cursor of the second call is the last element of the first page
	c.Assert(calls[0].Get("starting_after"), qt.Equals, "")
	c.Assert(calls[1].Get("starting_after"), qt.Equals, "plink_099")
	for _, call := range calls {
		c.Assert(call.Get("limit"), qt.Equals, "100")
		c.Assert(call.Get("active"), qt.Equals, "true")
		c.Assert(call["expand[]"], qt.DeepEquals, []string{"data.line_items"})
	}
	for _, h := range authHeaders {
		c.Assert(h, qt.Equals, "Bearer sk_test_x")
	}
}

func TestPaginationStopsOnEmptyPageWithHasMore(t *testing.T) {
	c := qt.New(t)

	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		// no cursor can be derived from an empty page, the loop must stop
		_, _ = w.Write([]byte(`{"data":[],"has_more":true}`))
	}))
	defer srv.Close()

	client := NewClient("sk_test_x", srv.URL)
	links, err := client.ActivePaymentLinks(context.Background())
	c.Assert(err, qt.IsNil)
	c.Assert(links, qt.HasLen, 0)
	c.Assert(calls, qt.Equals, 1)
}

func TestCheckoutSessionsQuery(t *testing.T) {
	c := qt.New(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c.Check(r.URL.Path, qt.Equals, "/v1/checkout/sessions")
		q := r.URL.Query()
		c.Check(q.Get("payment_link"), qt.Equals, "plink_123")
		c.Check(q.Get("limit"), qt.Equals, "100")
		c.Check(q["expand[]"], qt.DeepEquals, []string{
			"data.payment_intent",
			"data.payment_intent.charges",
		})
		_, _ = w.Write([]byte(`{"data":[],"has_more":false}`))
	}))
	defer srv.Close()

	client := NewClient("sk_test_x", srv.URL)
	sessions, err := client.CheckoutSessions(context.Background(), "plink_123")
	c.Assert(err, qt.IsNil)
	c.Assert(sessions, qt.HasLen, 0)
}

func TestUpstreamStatusError(t *testing.T) {
	c := qt.New(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"type":"invalid_request_error","message":"No such payment link"}}`))
	}))
	defer srv.Close()

	client := NewClient("sk_test_bad", srv.URL)
	_, err := client.ActivePaymentLinks(context.Background())
	c.Assert(err, qt.IsNotNil)

	var stripeErr *StripeError
	c.Assert(stderrors.As(err, &stripeErr), qt.IsTrue)
	c.Assert(stripeErr.Code, qt.Equals, ErrCodeUpstreamStatus)
	c.Assert(err.Error(), qt.Contains, "400")
	c.Assert(err.Error(), qt.Contains, "Bad Request")
	c.Assert(err.Error(), qt.Contains, "No such payment link")
}

func TestUpstreamStatusErrorWithRawBody(t *testing.T) {
	c := qt.New(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream exploded"))
	}))
	defer srv.Close()

	client := NewClient("sk_test_x", srv.URL)
	_, err := client.ActivePaymentLinks(context.Background())
	c.Assert(err, qt.IsNotNil)
	c.Assert(err.Error(), qt.Contains, "502")
	c.Assert(err.Error(), qt.Contains, "upstream exploded")
}

func TestInvalidResponseError(t *testing.T) {
	c := qt.New(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("this is not JSON"))
	}))
	defer srv.Close()

	client := NewClient("sk_test_x", srv.URL)
	_, err := client.ActivePaymentLinks(context.Background())
	c.Assert(err, qt.IsNotNil)

	var stripeErr *StripeError
	c.Assert(stderrors.As(err, &stripeErr), qt.IsTrue)
	c.Assert(stripeErr.Code, qt.Equals, ErrCodeInvalidResponse)
}

func TestTransportError(t *testing.T) {
	c := qt.New(t)

	// closed server, the dial fails
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()

	client := NewClient("sk_test_x", srv.URL)
	_, err := client.ActivePaymentLinks(context.Background())
	c.Assert(err, qt.IsNotNil)

	var stripeErr *StripeError
	c.Assert(stderrors.As(err, &stripeErr), qt.IsTrue)
	c.Assert(stripeErr.Code, qt.Equals, ErrCodeRequestFailed)
}

func TestProductRelationDecoding(t *testing.T) {
	c := qt.New(t)

	// expanded object form
	var expanded Price
	err := json.Unmarshal([]byte(`{"id":"price_1","product":{"id":"prod_1","name":"T-shirt"}}`), &expanded)
	c.Assert(err, qt.IsNil)
	c.Assert(expanded.Product.Name, qt.Equals, "T-shirt")

	// bare identifier form
	var bare Price
	err = json.Unmarshal([]byte(`{"id":"price_2","product":"prod_2"}`), &bare)
	c.Assert(err, qt.IsNil)
	c.Assert(bare.Product.Name, qt.Equals, "")
}
