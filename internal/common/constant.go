package common

// AccessTokenHeaderName is the gRPC metadata key used to carry the
// access token on outbound requests.
const AccessTokenHeaderName = "access_token"

// RequestIDHeaderName carries a per-call id so client and server log lines
// can be correlated.
const RequestIDHeaderName = "x-request-id"
