package apicommon

// ContextKey is the type used for values stored in a request context.
type ContextKey string

// APIKeyContextKey is the context key holding the caller-supplied Stripe
// secret key, set by the key authenticator middleware.
const APIKeyContextKey ContextKey = "stripeAPIKey"
