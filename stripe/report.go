package stripe

import (
	"context"

	stripeapi "github.com/stripe/stripe-go/v82"
	"go.vocdoni.io/dvote/log"
)

// Transaction is one succeeded charge inside a paid checkout session,
// flattened for reporting. Amount is in minor currency units.
type Transaction struct {
	PaymentIntentID string `json:"payment_intent_id"`
	ChargeID        string `json:"charge_id"`
	Amount          int64  `json:"amount"`
	Currency        string `json:"currency"`
	Created         int64  `json:"created"`
	CustomerEmail   string `json:"customer_email"`
	ReceiptURL      string `json:"receipt_url"`
}

// ReportLineItem is the flattened view of a payment link line item.
type ReportLineItem struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	PriceID     string `json:"price_id"`
	ProductName string `json:"product_name"`
	Quantity    int64  `json:"quantity"`
	AmountTotal int64  `json:"amount_total"`
}

// ReportLink is a payment link's public fields plus its successful
// transactions.
type ReportLink struct {
	ID           string           `json:"id"`
	Active       bool             `json:"active"`
	URL          string           `json:"url"`
	LineItems    []ReportLineItem `json:"line_items"`
	Transactions []Transaction    `json:"transactions"`
}

// Summary aggregates the report across every active payment link.
type Summary struct {
	TotalActivePaymentLinks     int          `json:"total_active_payment_links"`
	TotalSuccessfulTransactions int          `json:"total_successful_transactions"`
	TotalRevenueCents           int64        `json:"total_revenue_cents"`
	PaymentLinks                []ReportLink `json:"payment_links"`
}

// BuildReportLink flattens a payment link and its checkout sessions into a
// ReportLink. Only charges with status "succeeded" inside sessions with
// payment_status "paid" become transactions; session and charge order is
// preserved and duplicate charge identifiers across sessions are all
// retained. Line items are mapped 1:1 without filtering. The function is pure
// and deterministic.
func BuildReportLink(link PaymentLink, sessions []CheckoutSession) ReportLink {
	lineItems := make([]ReportLineItem, 0, len(link.LineItems.Data))
	for _, item := range link.LineItems.Data {
		lineItems = append(lineItems, ReportLineItem{
			ID:          item.ID,
			Description: item.Description,
			PriceID:     item.Price.ID,
			ProductName: item.Price.Product.Name,
			Quantity:    item.Quantity,
			AmountTotal: item.AmountTotal,
		})
	}

	transactions := make([]Transaction, 0)
	for _, session := range sessions {
		if session.PaymentStatus != stripeapi.CheckoutSessionPaymentStatusPaid {
			continue
		}
		if session.PaymentIntent == nil {
			continue
		}
		for _, charge := range session.PaymentIntent.Charges.Data {
			if charge.Status != stripeapi.ChargeStatusSucceeded {
				continue
			}
			transactions = append(transactions, Transaction{
				PaymentIntentID: session.PaymentIntent.ID,
				ChargeID:        charge.ID,
				Amount:          charge.Amount,
				Currency:        charge.Currency,
				Created:         charge.Created,
				CustomerEmail:   charge.BillingDetails.Email,
				ReceiptURL:      charge.ReceiptURL,
			})
		}
	}

	return ReportLink{
		ID:           link.ID,
		Active:       link.Active,
		URL:          link.URL,
		LineItems:    lineItems,
		Transactions: transactions,
	}
}

// BuildSummary fetches every active payment link and, sequentially for each
// one, its checkout sessions, and aggregates the flattened report. Any
// upstream failure aborts the whole aggregation, no partial results are
// returned.
func (c *Client) BuildSummary(ctx context.Context) (*Summary, error) {
	links, err := c.ActivePaymentLinks(ctx)
	if err != nil {
		return nil, err
	}

	summary := &Summary{
		TotalActivePaymentLinks: len(links),
		PaymentLinks:            make([]ReportLink, 0, len(links)),
	}
	for _, link := range links {
		sessions, err := c.CheckoutSessions(ctx, link.ID)
		if err != nil {
			return nil, err
		}
		reportLink := BuildReportLink(link, sessions)
		summary.TotalSuccessfulTransactions += len(reportLink.Transactions)
		for _, tx := range reportLink.Transactions {
			summary.TotalRevenueCents += tx.Amount
		}
		summary.PaymentLinks = append(summary.PaymentLinks, reportLink)
	}
	log.Debugw("payment links report built",
		"links", summary.TotalActivePaymentLinks,
		"transactions", summary.TotalSuccessfulTransactions,
		"revenueCents", summary.TotalRevenueCents)
	return summary, nil
}
