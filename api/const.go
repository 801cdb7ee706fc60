package api

const (
	// ping routes

	// GET /ping to check the server is alive
	pingEndpoint = "/ping"

	// report routes

	// any method, any path: the payment links sales report
	reportEndpoint = "/*"
)

const (
	// legacyHostname is the hostname the service answered on before the
	// rename; requests for it (with or without www.) are redirected.
	legacyHostname = "openstripedashboard.com"
	// canonicalURL is the destination of the legacy hostname redirect.
	canonicalURL = "https://app.openstripedashboard.dev/"
)
