package common

// AccessTokenHeaderName is the gRPC metadata key accepted as an alternative
// to the standard "authorization" bearer header.
const AccessTokenHeaderName = "access_token"

// AuthorizationHeaderName is the HTTP header / gRPC metadata key carrying
// "Bearer <token>".
const AuthorizationHeaderName = "authorization"

// BearerScheme is the token type reported to clients and expected in the
// authorization header.
const BearerScheme = "bearer"
