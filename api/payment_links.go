package api

import (
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/openstripedashboard/report-backend/api/apicommon"
	"github.com/openstripedashboard/report-backend/errors"
	"github.com/openstripedashboard/report-backend/stripe"
	"go.vocdoni.io/dvote/log"
)

// paymentLinksReportHandler builds and serves the payment links sales report.
// It creates a Stripe client scoped to the caller-supplied secret key,
// fetches every active payment link and, sequentially for each one, its
// checkout sessions, and answers with the aggregated summary as
// pretty-printed JSON. Any failure during the fetch or aggregation phase is
// rendered as a single 500 error envelope, no partial results are returned.
func (a *API) paymentLinksReportHandler(w http.ResponseWriter, r *http.Request) {
	key, ok := apicommon.APIKeyFromContext(r.Context())
	if !ok {
		errors.ErrUnauthorized.Write(w)
		return
	}

	client := stripe.NewClient(key, a.stripeBaseURL)
	summary, err := client.BuildSummary(r.Context())
	if err != nil {
		errors.ErrPaymentLinksProcessing.WithErr(err).Write(w)
		return
	}

	log.Infow("payment links report served",
		"requestID", middleware.GetReqID(r.Context()),
		"links", summary.TotalActivePaymentLinks,
		"transactions", summary.TotalSuccessfulTransactions,
		"revenueCents", summary.TotalRevenueCents)
	apicommon.HTTPWriteJSONIndent(w, summary)
}
