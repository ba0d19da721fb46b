package cognito

import (
	"github.com/golang-jwt/jwt/v5"
)

// Claims read from the Cognito ID token.
const (
	claimUsername = "cognito:username"
	claimSubject  = "sub"
)

// principalFromToken returns the canonical user name carried by a Cognito
// ID token, or fallback when the token is absent or unreadable.
//
// The signature is not checked: the token was just received over TLS from
// the user pool and only names the principal in the audit log.
func principalFromToken(idToken *string, fallback string) string {
	if idToken == nil || *idToken == "" {
		return fallback
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(*idToken, claims); err != nil {
		return fallback
	}

	if name, ok := claims[claimUsername].(string); ok && name != "" {
		return name
	}
	if sub, err := claims.GetSubject(); err == nil && sub != "" {
		return sub
	}
	return fallback
}
