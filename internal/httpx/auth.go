package httpx

import "encoding/base64"

// AuthStrategy is a pure transform applied to an outgoing request before it
// is sent. Strategies hold no state and only touch the header set.
type AuthStrategy func(*Builder) *Builder

// Basic sets an Authorization header with the base64-encoded credentials.
func Basic(username, password string) AuthStrategy {
	encoded := base64.StdEncoding.EncodeToString([]byte(username + ":" + password))
	return func(b *Builder) *Builder {
		return b.Header("Authorization", "Basic "+encoded)
	}
}

// Bearer sets an Authorization header carrying a bearer token.
func Bearer(token string) AuthStrategy {
	return func(b *Builder) *Builder {
		return b.Header("Authorization", "Bearer "+token)
	}
}

// HeaderToken sets an arbitrary named header to the token value, for vendor
// APIs that use X-Auth-Token style headers.
func HeaderToken(name, token string) AuthStrategy {
	return func(b *Builder) *Builder {
		return b.Header(name, token)
	}
}
