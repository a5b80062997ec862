package common

// AccessTokenHeaderName is the HTTP header machine clients use to present
// their session access token.
const AccessTokenHeaderName = "X-AccessToken"

// DefaultCookieName is the name of the cookie carrying the signed access
// token for browser clients.
const DefaultCookieName = "session_token"
