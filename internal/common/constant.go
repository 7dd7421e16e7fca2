package common

// AuthorizationHeaderName is the HTTP header used to carry the access token
// on requests to protected endpoints.
const AuthorizationHeaderName = "Authorization"

// BearerPrefix is the required scheme prefix in the authorization header.
const BearerPrefix = "Bearer "
