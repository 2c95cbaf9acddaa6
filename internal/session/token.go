package session

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ResolveUserID decodes the subject claim out of a bearer token without
// verifying the signature. Verification is the server's job; the decoded
// value is a UX hint (cart clear path, whoami), never an authorization
// input. Returns ok=false on any decode failure.
func ResolveUserID(token string) (string, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return "", false
	}
	sub, err := claims.GetSubject()
	if err == nil && sub != "" {
		return sub, true
	}
	// Some backends issue numeric subjects under a custom claim instead.
	if v, ok := claims["userId"]; ok {
		return fmt.Sprintf("%v", v), true
	}
	return "", false
}

// tokenUsable reports whether the token decodes at all and, when it carries
// an exp claim, whether that claim is still in the future. A malformed token
// counts as unusable: the holder transitions to logged-out instead of
// sending requests doomed to 401.
func tokenUsable(token string, now time.Time) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil {
		return false
	}
	if exp == nil {
		// No expiry claim; the server is the authority.
		return true
	}
	return exp.After(now)
}
