package stripe

import (
	"encoding/json"

	stripeapi "github.com/stripe/stripe-go/v82"
)

// page is the common list envelope of the Stripe API. Every list endpoint
// answers with a data array plus a has_more flag used for cursor pagination.
type page[T any] struct {
	Data    []T  `json:"data"`
	HasMore bool `json:"has_more"`
}

// PaymentLink is a provider-hosted, shareable checkout URL bundling one or
// more priced line items. Parsed from the expanded representation returned by
// GET /v1/payment_links.
type PaymentLink struct {
	ID        string       `json:"id"`
	Active    bool         `json:"active"`
	URL       string       `json:"url"`
	LineItems LineItemList `json:"line_items"`
}

// LineItemList wraps the nested line_items list of a payment link.
type LineItemList struct {
	Data []LineItem `json:"data"`
}

// LineItem is one priced entry of a payment link.
type LineItem struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Price       Price  `json:"price"`
	Quantity    int64  `json:"quantity"`
	AmountTotal int64  `json:"amount_total"`
}

// Price carries the price identifier and its product relation.
type Price struct {
	ID      string  `json:"id"`
	Product Product `json:"product"`
}

// Product holds the product name read through the price→product relation.
type Product struct {
	Name string `json:"name"`
}

// UnmarshalJSON accepts both representations the API uses for the product
// relation: a bare identifier string when the relation is not expanded, and a
// full object when it is. With a bare identifier the name stays empty.
func (p *Product) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var id string
		if err := json.Unmarshal(data, &id); err != nil {
			return err
		}
		*p = Product{}
		return nil
	}
	type product Product
	var obj product
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	*p = Product(obj)
	return nil
}

// CheckoutSession is one customer's attempt to complete a payment link.
// Only sessions with payment_status "paid" contribute to the report.
type CheckoutSession struct {
	ID            string                                 `json:"id"`
	PaymentLink   string                                 `json:"payment_link"`
	PaymentStatus stripeapi.CheckoutSessionPaymentStatus `json:"payment_status"`
	PaymentIntent *PaymentIntent                         `json:"payment_intent"`
}

// PaymentIntent is the payment attempt attached to a checkout session, with
// its charges expanded.
type PaymentIntent struct {
	ID      string     `json:"id"`
	Charges ChargeList `json:"charges"`
}

// ChargeList wraps the nested charges list of a payment intent.
type ChargeList struct {
	Data []Charge `json:"data"`
}

// Charge is one attempted capture of funds. Only charges with status
// "succeeded" represent completed revenue. Amount is in minor currency units,
// Created in seconds since epoch. Optional fields decode to empty strings.
type Charge struct {
	ID             string                 `json:"id"`
	Status         stripeapi.ChargeStatus `json:"status"`
	Amount         int64                  `json:"amount"`
	Currency       string                 `json:"currency"`
	Created        int64                  `json:"created"`
	ReceiptURL     string                 `json:"receipt_url"`
	BillingDetails BillingDetails         `json:"billing_details"`
}

// BillingDetails carries the customer email attached to a charge.
type BillingDetails struct {
	Email string `json:"email"`
}
